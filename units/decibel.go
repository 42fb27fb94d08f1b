// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package units

import (
	"fmt"
	"strconv"
	"strings"
)

// Decibel is a relative gain stored as a float64 in dB.  Codec
// register helpers convert it to whatever step size the target gain
// stage uses.
type Decibel float64

// ParseDecibel sets the gain based on the string provided.  Both a
// number and units are required, e.g. "-12dB", "3.5 dB".
func ParseDecibel(s string) (Decibel, error) {
	suffixes := []string{"dbfs", "db"}

	trimmed := strings.TrimSpace(s)
	for _, suffix := range suffixes {
		if !strings.HasSuffix(strings.ToLower(trimmed), suffix) {
			continue
		}

		num := strings.TrimSpace(trimmed[:len(trimmed)-len(suffix)])
		n, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0.0, fmt.Errorf("%w: '%s' %v", ErrInvalidUnit, s, err)
		}
		return Decibel(n), nil
	}

	return 0.0, fmt.Errorf("%w: unknown unit for '%s' valid: %s",
		ErrInvalidUnit, s, strings.Join(suffixes, ", "))
}

// String returns the gain formatted as a string in dB.
func (d Decibel) String() string {
	return fmt.Sprintf("%.2fdB", float64(d))
}
