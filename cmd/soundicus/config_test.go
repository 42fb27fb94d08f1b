// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"testing"

	"github.com/mitchellh/mapstructure"
	"github.com/schmidtw/soundicus-maximus/units"
	"github.com/schmidtw/soundicus-maximus/wm8960"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecibelHook(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	type target struct {
		Volume units.Decibel
		Name   string
	}

	var out target
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: decibelHook(),
		Result:     &out,
	})
	require.NoError(err)

	require.NoError(dec.Decode(map[string]any{
		"Volume": "-12dB",
		"Name":   "left",
	}))
	assert.Equal(units.Decibel(-12.0), out.Volume)
	assert.Equal("left", out.Name)

	assert.Error(dec.Decode(map[string]any{"Volume": "loud"}))
}

func TestParseALCMode(t *testing.T) {
	tests := []struct {
		in        string
		expect    wm8960.ALCMode
		expectErr bool
	}{
		{in: "", expect: wm8960.ALCOff},
		{in: "off", expect: wm8960.ALCOff},
		{in: "left", expect: wm8960.ALCLeftOnly},
		{in: "right", expect: wm8960.ALCRightOnly},
		{in: "stereo", expect: wm8960.ALCStereo},
		{in: "both", expectErr: true},
	}

	for _, tc := range tests {
		got, err := parseALCMode(tc.in)
		if tc.expectErr {
			assert.ErrorIs(t, err, errBadConfig)
			continue
		}
		assert.NoError(t, err)
		assert.Equal(t, tc.expect, got)
	}
}

func TestParseMicBoost(t *testing.T) {
	tests := []struct {
		in        int
		expect    wm8960.MicBoost
		expectErr bool
	}{
		{in: 0, expect: wm8960.MicBoost0dB},
		{in: 13, expect: wm8960.MicBoost13dB},
		{in: 20, expect: wm8960.MicBoost20dB},
		{in: 29, expect: wm8960.MicBoost29dB},
		{in: 6, expectErr: true},
	}

	for _, tc := range tests {
		got, err := parseMicBoost(tc.in)
		if tc.expectErr {
			assert.ErrorIs(t, err, errBadConfig)
			continue
		}
		assert.NoError(t, err)
		assert.Equal(t, tc.expect, got)
	}
}
