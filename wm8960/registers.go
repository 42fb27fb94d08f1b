// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package wm8960

// The WM8960 exposes 9 bit, write-only registers at addresses
// 0x00-0x37.  Names follow the datasheet register map.
const (
	regLeftInputVolume   = 0x00
	regRightInputVolume  = 0x01
	regLOUT1Volume       = 0x02
	regROUT1Volume       = 0x03
	regClocking1         = 0x04
	regADCDACControl1    = 0x05
	regADCDACControl2    = 0x06
	regAudioInterface1   = 0x07
	regClocking2         = 0x08
	regAudioInterface2   = 0x09
	regLeftDACVolume     = 0x0a
	regRightDACVolume    = 0x0b
	regReset             = 0x0f
	reg3DControl         = 0x10
	regALC1              = 0x11
	regALC2              = 0x12
	regALC3              = 0x13
	regNoiseGate         = 0x14
	regLeftADCVolume     = 0x15
	regRightADCVolume    = 0x16
	regAdditionalCtrl1   = 0x17
	regAdditionalCtrl2   = 0x18
	regPwrMgmt1          = 0x19
	regPwrMgmt2          = 0x1a
	regAdditionalCtrl3   = 0x1b
	regAntiPop1          = 0x1c
	regAntiPop2          = 0x1d
	regADCLSignalPath    = 0x20
	regADCRSignalPath    = 0x21
	regLeftOutMix        = 0x22
	regRightOutMix       = 0x25
	regMonoOutMix1       = 0x26
	regMonoOutMix2       = 0x27
	regLOUT2Volume       = 0x28
	regROUT2Volume       = 0x29
	regMonoOutVolume     = 0x2a
	regInputBoostMixer1  = 0x2b
	regInputBoostMixer2  = 0x2c
	regBypass1           = 0x2d
	regBypass2           = 0x2e
	regPwrMgmt3          = 0x2f
	regAdditionalCtrl4   = 0x30
	regClassDControl1    = 0x31
	regClassDControl3    = 0x33
	regPLLN              = 0x34
	regPLLK1             = 0x35
	regPLLK2             = 0x36
	regPLLK3             = 0x37

	registerCount = 0x38
)

// Post-reset register values from the datasheet.  The chip cannot be
// read back, so this table seeds the shadow copy.
var registerDefaults = [registerCount]uint16{
	0x0097, 0x0097, 0x0000, 0x0000, 0x0000, 0x0008, 0x0000, 0x000a,
	0x01c0, 0x0000, 0x00ff, 0x00ff, 0x0000, 0x0000, 0x0000, 0x0000,
	0x0000, 0x007b, 0x0100, 0x0032, 0x0000, 0x00c3, 0x00c3, 0x01c0,
	0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000,
	0x0100, 0x0100, 0x0050, 0x0050, 0x0050, 0x0050, 0x0000, 0x0000,
	0x0000, 0x0000, 0x0040, 0x0000, 0x0000, 0x0050, 0x0050, 0x0000,
	0x0002, 0x0037, 0x004d, 0x0080, 0x0008, 0x0031, 0x0026, 0x00e9,
}

// Channel selects the left or right half of a stereo pair.
type Channel int

const (
	Left Channel = iota
	Right
)

func (c Channel) String() string {
	if c == Right {
		return "right"
	}
	return "left"
}

// PGAInput selects the source feeding the non-inverting PGA input.
// INPUT1 is permanently wired to the inverting input.
type PGAInput int

const (
	PGAInput2 PGAInput = iota // LINPUT2/RINPUT2
	PGAInput3                 // LINPUT3/RINPUT3
	PGAInputVMID
)

// MicBoost is the PGA output boost ahead of the boost mixer.
type MicBoost int

const (
	MicBoost0dB MicBoost = iota
	MicBoost13dB
	MicBoost20dB
	MicBoost29dB
)

// BoostGain is the gain applied to INPUT2/INPUT3 at the boost mixer,
// 3 dB steps from mute up to +6 dB.
type BoostGain int

const (
	BoostMute BoostGain = iota
	BoostNeg12dB
	BoostNeg9dB
	BoostNeg6dB
	BoostNeg3dB
	Boost0dB
	Boost3dB
	Boost6dB
)

// ALCMode selects which channels the automatic level control drives.
type ALCMode int

const (
	ALCOff ALCMode = iota
	ALCRightOnly
	ALCLeftOnly
	ALCStereo
)

func (m ALCMode) String() string {
	switch m {
	case ALCRightOnly:
		return "right"
	case ALCLeftOnly:
		return "left"
	case ALCStereo:
		return "stereo"
	}
	return "off"
}

// WordLength is the digital audio interface sample width.
type WordLength int

const (
	WordLength16 WordLength = iota
	WordLength20
	WordLength24
	WordLength32
)

// MicBiasVoltage selects the MICBIAS output level.
type MicBiasVoltage int

const (
	MicBias0v9AVDD  MicBiasVoltage = iota // 0.9 * AVDD
	MicBias0v65AVDD                       // 0.65 * AVDD
)
