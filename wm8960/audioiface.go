// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package wm8960

import "fmt"

// Digital audio interface.  The chip resets to I2S format, peripheral
// mode, 24 bit words; fixed at setup time with no runtime
// renegotiation.

// SetWordLength sets the sample width on the I2S port.
func (d *Dev) SetWordLength(wl WordLength) error {
	d.m.Lock()
	defer d.m.Unlock()

	if wl < WordLength16 || wl > WordLength32 {
		return fmt.Errorf("%w: word length %d", ErrInvalidParam, wl)
	}
	return d.updateBits(regAudioInterface1, 0x3<<2, uint16(wl)<<2)
}

// SetI2SFormat selects standard I2S framing.  The reset default is
// already I2S; this exists so bring-up sequences can be explicit.
func (d *Dev) SetI2SFormat() error {
	d.m.Lock()
	defer d.m.Unlock()

	return d.updateBits(regAudioInterface1, 0x3, 0x2)
}

// SetControllerMode makes the codec drive BCLK and LRCLK.  Off leaves
// it a clock peripheral, the reset default.
func (d *Dev) SetControllerMode(on bool) error {
	d.m.Lock()
	defer d.m.Unlock()

	return d.setBit(regAudioInterface1, 6, on)
}

// SetLoopback feeds the ADC interface output straight into the DAC
// input, bypassing the host entirely.  Useful to prove the analog
// paths before any I2S wiring exists.
func (d *Dev) SetLoopback(on bool) error {
	d.m.Lock()
	defer d.m.Unlock()

	return d.setBit(regAudioInterface2, 0, on)
}
