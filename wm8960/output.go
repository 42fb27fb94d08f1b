// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package wm8960

import (
	"fmt"
	"math"

	"github.com/schmidtw/soundicus-maximus/units"
)

// Headphone (OUT1) and class D speaker (OUT2) drivers.

// SetHeadphone powers one headphone driver.
func (d *Dev) SetHeadphone(ch Channel, on bool) error {
	d.m.Lock()
	defer d.m.Unlock()

	bit := uint(6)
	if ch == Right {
		bit = 5
	}
	return d.setBit(regPwrMgmt2, bit, on)
}

// SetHeadphoneStandby puts the headphone drivers in their low power
// standby state without a full power down.
func (d *Dev) SetHeadphoneStandby(standby bool) error {
	d.m.Lock()
	defer d.m.Unlock()

	return d.setBit(regAntiPop1, 0, standby)
}

// SetHeadphoneVolume sets both headphone outputs.  48 is -73 dB, 1 dB
// steps up to +6 dB at 127; 47 and below mute.  The OUT1VU latch is
// set on the second write so both channels change at once.
func (d *Dev) SetHeadphoneVolume(volume uint8) error {
	d.m.Lock()
	defer d.m.Unlock()

	return d.setStereoVolume(regLOUT1Volume, regROUT1Volume, volume)
}

// SetHeadphoneVolumeDB is SetHeadphoneVolume with the level given in
// dB, -73 to +6.  Anything below -73 dB mutes.
func (d *Dev) SetHeadphoneVolumeDB(db units.Decibel) error {
	d.m.Lock()
	defer d.m.Unlock()

	return d.setStereoVolume(regLOUT1Volume, regROUT1Volume, outVolumeSteps(db))
}

// SetHeadphoneZeroCross makes headphone volume changes wait for a
// zero crossing on both channels.
func (d *Dev) SetHeadphoneZeroCross(on bool) error {
	d.m.Lock()
	defer d.m.Unlock()

	if err := d.setBit(regLOUT1Volume, 7, on); err != nil {
		return err
	}
	return d.setBit(regROUT1Volume, 7, on)
}

// SetSpeaker powers one class D speaker driver.  Both the power
// management bit and the class D output enable are handled.  The
// SPK_OP_EN field puts left on bit 6 and right on bit 7, the reverse
// of the power management ordering.
func (d *Dev) SetSpeaker(ch Channel, on bool) error {
	d.m.Lock()
	defer d.m.Unlock()

	bit := uint(4)
	opBit := uint(6)
	if ch == Right {
		bit = 3
		opBit = 7
	}
	if err := d.setBit(regPwrMgmt2, bit, on); err != nil {
		return err
	}
	return d.setBit(regClassDControl1, opBit, on)
}

// SetSpeakerVolume sets both speaker outputs.  Same scale as the
// headphone volume: 48 is -73 dB, 1 dB steps to +6 dB at 127, 47 and
// below mute.
func (d *Dev) SetSpeakerVolume(volume uint8) error {
	d.m.Lock()
	defer d.m.Unlock()

	return d.setStereoVolume(regLOUT2Volume, regROUT2Volume, volume)
}

// SetSpeakerVolumeDB is SetSpeakerVolume with the level in dB.
func (d *Dev) SetSpeakerVolumeDB(db units.Decibel) error {
	d.m.Lock()
	defer d.m.Unlock()

	return d.setStereoVolume(regLOUT2Volume, regROUT2Volume, outVolumeSteps(db))
}

// SetSpeakerZeroCross makes speaker volume changes wait for a zero
// crossing on both channels.
func (d *Dev) SetSpeakerZeroCross(on bool) error {
	d.m.Lock()
	defer d.m.Unlock()

	if err := d.setBit(regLOUT2Volume, 7, on); err != nil {
		return err
	}
	return d.setBit(regROUT2Volume, 7, on)
}

// SetSpeakerDCGain boosts the class D DC gain, 0 = 1.0x up to
// 5 = 1.8x.  Only safe when SPKVDD has the headroom.
func (d *Dev) SetSpeakerDCGain(gain uint8) error {
	d.m.Lock()
	defer d.m.Unlock()

	if gain > 5 {
		return fmt.Errorf("%w: speaker dc gain %d", ErrOutOfRange, gain)
	}
	return d.updateBits(regClassDControl3, 0x7<<3, uint16(gain)<<3)
}

// SetSpeakerACGain boosts the class D AC gain, 0 = 1.0x up to
// 5 = 1.8x.
func (d *Dev) SetSpeakerACGain(gain uint8) error {
	d.m.Lock()
	defer d.m.Unlock()

	if gain > 5 {
		return fmt.Errorf("%w: speaker ac gain %d", ErrOutOfRange, gain)
	}
	return d.updateBits(regClassDControl3, 0x7, uint16(gain))
}

// setStereoVolume writes a left/right analog volume pair, setting
// the volume-update latch on the second write only.  Callers hold
// d.m.
func (d *Dev) setStereoVolume(left, right uint8, volume uint8) error {
	if volume > 127 {
		return fmt.Errorf("%w: output volume %d", ErrOutOfRange, volume)
	}
	if err := d.updateBits(left, 0x7f, uint16(volume)); err != nil {
		return err
	}
	return d.updateBits(right, 1<<8|0x7f, 1<<8|uint16(volume))
}

// outVolumeSteps converts dB to OUT1/OUT2 register steps.  48 steps
// is -73 dB, one step per dB, capped at +6 dB.  Below -73 dB falls
// into the mute band.
func outVolumeSteps(db units.Decibel) uint8 {
	if db > 6 {
		db = 6
	}
	if db < -73.5 {
		return 0
	}
	return uint8(int(math.Round(float64(db))) + 121)
}
