// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package wm8960

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Each case starts from the reset defaults, applies one setter and
// checks the resulting shadow value of the touched register.
func TestSetters(t *testing.T) {
	tests := []struct {
		description string
		fn          func(*Dev) error
		reg         uint8
		expect      uint16
		expectErr   error
	}{
		{
			description: "vref on",
			fn:          func(d *Dev) error { return d.SetVREF(true) },
			reg:         regPwrMgmt1,
			expect:      0x0040,
		}, {
			description: "vmid at 2x50k",
			fn:          func(d *Dev) error { return d.SetVMID(true) },
			reg:         regPwrMgmt1,
			expect:      0x0080,
		}, {
			description: "left pga powered",
			fn:          func(d *Dev) error { return d.SetPGA(Left, true) },
			reg:         regPwrMgmt3,
			expect:      0x0020,
		}, {
			description: "right pga powered",
			fn:          func(d *Dev) error { return d.SetPGA(Right, true) },
			reg:         regPwrMgmt3,
			expect:      0x0010,
		}, {
			description: "left pga input2 selected",
			fn:          func(d *Dev) error { return d.SelectPGAInput(Left, PGAInput2) },
			reg:         regADCLSignalPath,
			// LMN1 is set out of reset and survives the select.
			expect: 0x0100 | 0x0040,
		}, {
			description: "right pga vmid selected",
			fn:          func(d *Dev) error { return d.SelectPGAInput(Right, PGAInputVMID) },
			reg:         regADCRSignalPath,
			expect:      0x0100,
		}, {
			description: "bad pga input",
			fn:          func(d *Dev) error { return d.SelectPGAInput(Left, PGAInput(9)) },
			expectErr:   ErrInvalidParam,
		}, {
			description: "left input1 inverting disconnect",
			fn:          func(d *Dev) error { return d.ConnectPGAInverting(Left, false) },
			reg:         regADCLSignalPath,
			expect:      0x0000,
		}, {
			description: "left pga to boost mixer",
			fn:          func(d *Dev) error { return d.ConnectPGAToBoost(Left, true) },
			reg:         regADCLSignalPath,
			expect:      0x0100 | 0x0008,
		}, {
			description: "right mic boost 29dB",
			fn:          func(d *Dev) error { return d.SetMicBoost(Right, MicBoost29dB) },
			reg:         regADCRSignalPath,
			expect:      0x0100 | 0x0030,
		}, {
			description: "pga volume latches ipvu",
			fn:          func(d *Dev) error { return d.SetPGAVolume(Left, 0x2f) },
			reg:         regLeftInputVolume,
			// defaults carry LINVOL=0x17 plus the mute bit; volume
			// bits replaced, mute untouched.
			expect: 0x0097&^uint16(0x3f) | 0x100 | 0x2f,
		}, {
			description: "pga volume out of range",
			fn:          func(d *Dev) error { return d.SetPGAVolume(Left, 64) },
			expectErr:   ErrOutOfRange,
		}, {
			description: "left boost mixer input3 at +6dB",
			fn:          func(d *Dev) error { return d.SetBoostGain(Left, 3, Boost6dB) },
			reg:         regInputBoostMixer1,
			expect:      0x0070,
		}, {
			description: "boost mixer input1 has no tap",
			fn:          func(d *Dev) error { return d.SetBoostGain(Left, 1, Boost0dB) },
			expectErr:   ErrInvalidParam,
		}, {
			description: "mic bias on",
			fn:          func(d *Dev) error { return d.SetMicBias(true) },
			reg:         regPwrMgmt1,
			expect:      0x0002,
		}, {
			description: "left adc powered",
			fn:          func(d *Dev) error { return d.SetADC(Left, true) },
			reg:         regPwrMgmt1,
			expect:      0x0008,
		}, {
			description: "right adc volume with latch",
			fn:          func(d *Dev) error { return d.SetADCVolume(Right, 0xc3) },
			reg:         regRightADCVolume,
			expect:      0x01c3,
		}, {
			description: "alc stereo",
			fn:          func(d *Dev) error { return d.SetALCMode(ALCStereo) },
			reg:         regALC1,
			expect:      0x007b | 0x3<<7,
		}, {
			description: "alc target keeps max gain bits",
			fn:          func(d *Dev) error { return d.SetALCTarget(4) },
			reg:         regALC1,
			expect:      0x007b&^uint16(0xf) | 4,
		}, {
			description: "alc target out of range",
			fn:          func(d *Dev) error { return d.SetALCTarget(16) },
			expectErr:   ErrOutOfRange,
		}, {
			description: "alc hold",
			fn:          func(d *Dev) error { return d.SetALCHold(5) },
			reg:         regALC2,
			expect:      0x0100&^uint16(0xf) | 5,
		}, {
			description: "alc decay",
			fn:          func(d *Dev) error { return d.SetALCDecay(3) },
			reg:         regALC3,
			expect:      0x0032&^uint16(0xf0) | 3<<4,
		}, {
			description: "alc attack out of range",
			fn:          func(d *Dev) error { return d.SetALCAttack(11) },
			expectErr:   ErrOutOfRange,
		}, {
			description: "peak limiter on",
			fn:          func(d *Dev) error { return d.SetPeakLimiter(true) },
			reg:         regALC3,
			expect:      0x0032 | 0x100,
		}, {
			description: "noise gate threshold",
			fn:          func(d *Dev) error { return d.SetNoiseGateThreshold(31) },
			reg:         regNoiseGate,
			expect:      0x1f << 3,
		}, {
			description: "left dac powered",
			fn:          func(d *Dev) error { return d.SetDAC(Left, true) },
			reg:         regPwrMgmt2,
			expect:      0x0100,
		}, {
			description: "dac unmute clears the reset default",
			fn:          func(d *Dev) error { return d.SetDACMute(false) },
			reg:         regADCDACControl1,
			expect:      0x0008 &^ uint16(0x8),
		}, {
			description: "3d depth",
			fn:          func(d *Dev) error { return d.Set3DDepth(15) },
			reg:         reg3DControl,
			expect:      0xf << 1,
		}, {
			description: "left dac to output mixer",
			fn:          func(d *Dev) error { return d.ConnectDACToMixer(Left, true) },
			reg:         regLeftOutMix,
			expect:      0x0050 | 0x100,
		}, {
			description: "right boost bypass volume",
			fn:          func(d *Dev) error { return d.SetBoostToMixerVolume(Right, 7) },
			reg:         regBypass2,
			expect:      0x7 << 4,
		}, {
			description: "left headphone powered",
			fn:          func(d *Dev) error { return d.SetHeadphone(Left, true) },
			reg:         regPwrMgmt2,
			expect:      0x0040,
		}, {
			description: "speaker dc gain",
			fn:          func(d *Dev) error { return d.SetSpeakerDCGain(5) },
			reg:         regClassDControl3,
			expect:      0x0080&^uint16(0x38) | 5<<3,
		}, {
			description: "word length 16",
			fn:          func(d *Dev) error { return d.SetWordLength(WordLength16) },
			reg:         regAudioInterface1,
			expect:      0x000a &^ uint16(0xc),
		}, {
			description: "loopback on",
			fn:          func(d *Dev) error { return d.SetLoopback(true) },
			reg:         regAudioInterface2,
			expect:      0x0001,
		}, {
			description: "pll prescale",
			fn:          func(d *Dev) error { return d.SetPLLPrescale(true) },
			reg:         regPLLN,
			expect:      0x0008 | 0x10,
		}, {
			description: "sysclk div 2",
			fn:          func(d *Dev) error { return d.SetSysClkDiv(2) },
			reg:         regClocking1,
			expect:      0x2 << 1,
		}, {
			description: "sysclk div reserved",
			fn:          func(d *Dev) error { return d.SetSysClkDiv(3) },
			expectErr:   ErrInvalidParam,
		},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert := assert.New(t)

			d, c := openForTest(t)

			err := tc.fn(d)
			if tc.expectErr != nil {
				assert.ErrorIs(err, tc.expectErr)
				assert.Empty(c.writes)
				return
			}

			require.NoError(t, err)
			got, err := d.Register(tc.reg)
			assert.NoError(err)
			assert.Equal(tc.expect, got)
		})
	}
}

// The class D output enables sit in CLASS D CONTROL 1 [7:6] with
// left on bit 6 and right on bit 7, the reverse of the power
// management ordering.
func TestSpeakerEnableBits(t *testing.T) {
	tests := []struct {
		description string
		ch          Channel
		expectPwr   uint16
		expectOp    uint16
	}{
		{
			description: "left speaker",
			ch:          Left,
			expectPwr:   1 << 4,
			expectOp:    0x0037 | 1<<6,
		}, {
			description: "right speaker",
			ch:          Right,
			expectPwr:   1 << 3,
			expectOp:    0x0037 | 1<<7,
		},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert := assert.New(t)

			d, _ := openForTest(t)
			require.NoError(t, d.SetSpeaker(tc.ch, true))

			pwr, err := d.Register(regPwrMgmt2)
			assert.NoError(err)
			assert.Equal(tc.expectPwr, pwr)

			classD, err := d.Register(regClassDControl1)
			assert.NoError(err)
			assert.Equal(tc.expectOp, classD)

			// Disabling puts the register back to its reset value.
			require.NoError(t, d.SetSpeaker(tc.ch, false))
			classD, err = d.Register(regClassDControl1)
			assert.NoError(err)
			assert.Equal(uint16(0x0037), classD)
		})
	}
}

func TestStereoVolumeLatch(t *testing.T) {
	assert := assert.New(t)

	d, c := openForTest(t)

	assert.NoError(d.SetHeadphoneVolume(120))
	require.Len(t, c.writes, 2)

	// Left write must not carry the update latch, the right one must.
	assert.Equal(byte(regLOUT1Volume<<1), c.writes[0][0])
	assert.Equal(byte(120), c.writes[0][1])
	assert.Equal(byte(regROUT1Volume<<1|0x01), c.writes[1][0])
	assert.Equal(byte(120), c.writes[1][1])

	assert.ErrorIs(d.SetSpeakerVolume(128), ErrOutOfRange)
}

func TestConfigure44100From24MHz(t *testing.T) {
	assert := assert.New(t)

	d, c := openForTest(t)

	assert.NoError(d.Configure44100From24MHz())
	assert.Len(c.writes, 13)

	pllN, _ := d.Register(regPLLN)
	assert.Equal(uint16(0x0037), pllN) // SDM | PRESCALE | N=7

	k1, _ := d.Register(regPLLK1)
	k2, _ := d.Register(regPLLK2)
	k3, _ := d.Register(regPLLK3)
	assert.Equal(uint32(0x86c226), uint32(k1)<<16|uint32(k2)<<8|uint32(k3))

	clk1, _ := d.Register(regClocking1)
	assert.Equal(uint16(0x2<<1|0x1), clk1)

	clk2, _ := d.Register(regClocking2)
	assert.Equal(uint16(0x7<<6|0x4), clk2)

	pwr2, _ := d.Register(regPwrMgmt2)
	assert.Equal(uint16(0x0001), pwr2)
}
