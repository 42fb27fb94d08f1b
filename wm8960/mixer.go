// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package wm8960

import "fmt"

// Output mixers.  Each side has a mixer fed by the DAC, the boost
// mixer and the raw input; OUT3 has its own mono mixer.  Datasheet
// page 35 has the routing diagram.

// SetOutputMixer powers the left or right output mixer.
func (d *Dev) SetOutputMixer(ch Channel, on bool) error {
	d.m.Lock()
	defer d.m.Unlock()

	bit := uint(3)
	if ch == Right {
		bit = 2
	}
	return d.setBit(regPwrMgmt3, bit, on)
}

// SetMonoMixer powers the OUT3 mono mixer.
func (d *Dev) SetMonoMixer(on bool) error {
	d.m.Lock()
	defer d.m.Unlock()

	return d.setBit(regPwrMgmt2, 1, on)
}

func (d *Dev) outMixReg(ch Channel) uint8 {
	if ch == Right {
		return regRightOutMix
	}
	return regLeftOutMix
}

// ConnectDACToMixer routes the DAC into its output mixer.  This is
// the normal playback path.
func (d *Dev) ConnectDACToMixer(ch Channel, connect bool) error {
	d.m.Lock()
	defer d.m.Unlock()

	return d.setBit(d.outMixReg(ch), 8, connect)
}

// ConnectInputToMixer routes the raw INPUT3 signal into the output
// mixer, an analog bypass around the converters.
func (d *Dev) ConnectInputToMixer(ch Channel, connect bool) error {
	d.m.Lock()
	defer d.m.Unlock()

	return d.setBit(d.outMixReg(ch), 7, connect)
}

// SetInputToMixerVolume attenuates the input bypass, 0 = 0 dB down
// to 7 = -21 dB in 3 dB steps.
func (d *Dev) SetInputToMixerVolume(ch Channel, volume uint8) error {
	d.m.Lock()
	defer d.m.Unlock()

	if volume > 7 {
		return fmt.Errorf("%w: mixer volume %d", ErrOutOfRange, volume)
	}
	return d.updateBits(d.outMixReg(ch), 0x7<<4, uint16(volume)<<4)
}

// ConnectBoostToMixer routes the boost mixer output (the mic path)
// into the output mixer.
func (d *Dev) ConnectBoostToMixer(ch Channel, connect bool) error {
	d.m.Lock()
	defer d.m.Unlock()

	reg := uint8(regBypass1)
	if ch == Right {
		reg = regBypass2
	}
	return d.setBit(reg, 7, connect)
}

// SetBoostToMixerVolume attenuates the boost bypass, 0 = 0 dB down
// to 7 = -21 dB in 3 dB steps.
func (d *Dev) SetBoostToMixerVolume(ch Channel, volume uint8) error {
	d.m.Lock()
	defer d.m.Unlock()

	if volume > 7 {
		return fmt.Errorf("%w: mixer volume %d", ErrOutOfRange, volume)
	}
	reg := uint8(regBypass1)
	if ch == Right {
		reg = regBypass2
	}
	return d.updateBits(reg, 0x7<<4, uint16(volume)<<4)
}

// ConnectInputToMono taps the left or right input into the mono
// mixer.
func (d *Dev) ConnectInputToMono(ch Channel, connect bool) error {
	d.m.Lock()
	defer d.m.Unlock()

	reg := uint8(regMonoOutMix1)
	if ch == Right {
		reg = regMonoOutMix2
	}
	return d.setBit(reg, 7, connect)
}

// SetOUT3AsVMID disconnects both mono mixer taps so OUT3 carries a
// buffered VMID, the reference for capless headphone wiring.  The
// mono mixer must also be powered via SetMonoMixer.
func (d *Dev) SetOUT3AsVMID() error {
	d.m.Lock()
	defer d.m.Unlock()

	if err := d.setBit(regMonoOutMix1, 7, false); err != nil {
		return err
	}
	return d.setBit(regMonoOutMix2, 7, false)
}
