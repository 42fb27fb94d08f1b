// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package wm8960

import "fmt"

// SetDAC powers the left or right DAC.
func (d *Dev) SetDAC(ch Channel, on bool) error {
	d.m.Lock()
	defer d.m.Unlock()

	bit := uint(8)
	if ch == Right {
		bit = 7
	}
	return d.setBit(regPwrMgmt2, bit, on)
}

// SetDACVolume sets the DAC digital volume.  0 mutes, 1 is -127 dB,
// then 0.5 dB steps up to 0 dB at 255.  The DACVU latch is set so
// both channels update together.
func (d *Dev) SetDACVolume(ch Channel, volume uint8) error {
	d.m.Lock()
	defer d.m.Unlock()

	reg := uint8(regLeftDACVolume)
	if ch == Right {
		reg = regRightDACVolume
	}
	return d.write(reg, 1<<8|uint16(volume))
}

// SetDACMute engages the DAC soft mute.  The chip ships with this
// set, so playback setup must clear it.
func (d *Dev) SetDACMute(mute bool) error {
	d.m.Lock()
	defer d.m.Unlock()

	return d.setBit(regADCDACControl1, 3, mute)
}

// SetDACAttenuation applies a fixed -6 dB to the DAC output.
func (d *Dev) SetDACAttenuation(on bool) error {
	d.m.Lock()
	defer d.m.Unlock()

	return d.setBit(regADCDACControl1, 7, on)
}

// Set3D enables the 3D stereo enhancement.
func (d *Dev) Set3D(on bool) error {
	d.m.Lock()
	defer d.m.Unlock()

	return d.setBit(reg3DControl, 0, on)
}

// Set3DDepth sets the enhancement depth, 0 = 0% to 15 = 100%.
func (d *Dev) Set3DDepth(depth uint8) error {
	d.m.Lock()
	defer d.m.Unlock()

	if depth > 15 {
		return fmt.Errorf("%w: 3d depth %d", ErrOutOfRange, depth)
	}
	return d.updateBits(reg3DControl, 0xf<<1, uint16(depth)<<1)
}
