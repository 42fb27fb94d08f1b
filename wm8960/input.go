// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package wm8960

import "fmt"

// Analog input path: INPUT1/2/3 -> PGA -> mic boost -> boost mixer.

// SetVREF powers the internal voltage reference.  Nearly everything
// else on the chip needs it, so this is normally the first call after
// Open.
func (d *Dev) SetVREF(on bool) error {
	d.m.Lock()
	defer d.m.Unlock()

	return d.setBit(regPwrMgmt1, 6, on)
}

// SetVMID powers the VMID divider at 2x50k, the playback/record
// setting.  Off powers the divider down entirely.
func (d *Dev) SetVMID(on bool) error {
	d.m.Lock()
	defer d.m.Unlock()

	val := uint16(0)
	if on {
		val = 1 << 7 // VMIDSEL = 01, 2x50k
	}
	return d.updateBits(regPwrMgmt1, 0x3<<7, val)
}

// SetInputStage powers the left or right analogue input circuitry
// (AINL/AINR).
func (d *Dev) SetInputStage(ch Channel, on bool) error {
	d.m.Lock()
	defer d.m.Unlock()

	bit := uint(5)
	if ch == Right {
		bit = 4
	}
	return d.setBit(regPwrMgmt1, bit, on)
}

// SetPGA powers the left or right input PGA.
func (d *Dev) SetPGA(ch Channel, on bool) error {
	d.m.Lock()
	defer d.m.Unlock()

	bit := uint(5)
	if ch == Right {
		bit = 4
	}
	return d.setBit(regPwrMgmt3, bit, on)
}

func (d *Dev) signalPathReg(ch Channel) uint8 {
	if ch == Right {
		return regADCRSignalPath
	}
	return regADCLSignalPath
}

// SelectPGAInput routes INPUT2, INPUT3 or VMID to the non-inverting
// PGA input.  INPUT1 stays wired to the inverting input regardless.
func (d *Dev) SelectPGAInput(ch Channel, in PGAInput) error {
	d.m.Lock()
	defer d.m.Unlock()

	var val uint16
	switch in {
	case PGAInput2:
		val = 1 << 6
	case PGAInput3:
		val = 1 << 7
	case PGAInputVMID:
		val = 0
	default:
		return fmt.Errorf("%w: pga input %d", ErrInvalidParam, in)
	}
	return d.updateBits(d.signalPathReg(ch), 0x3<<6, val)
}

// ConnectPGAInverting connects or disconnects INPUT1 from the
// inverting PGA input.
func (d *Dev) ConnectPGAInverting(ch Channel, connect bool) error {
	d.m.Lock()
	defer d.m.Unlock()

	return d.setBit(d.signalPathReg(ch), 8, connect)
}

// ConnectPGAToBoost connects the PGA output to the input boost mixer.
// Without this the PGA drives nothing.
func (d *Dev) ConnectPGAToBoost(ch Channel, connect bool) error {
	d.m.Lock()
	defer d.m.Unlock()

	return d.setBit(d.signalPathReg(ch), 3, connect)
}

// SetMicBoost sets the PGA boost stage to 0, +13, +20 or +29 dB.
func (d *Dev) SetMicBoost(ch Channel, boost MicBoost) error {
	d.m.Lock()
	defer d.m.Unlock()

	if boost < MicBoost0dB || boost > MicBoost29dB {
		return fmt.Errorf("%w: mic boost %d", ErrOutOfRange, boost)
	}
	return d.updateBits(d.signalPathReg(ch), 0x3<<4, uint16(boost)<<4)
}

// SetPGAVolume sets the PGA gain in 0.75 dB steps; 0 is -17.25 dB, 63
// is +30 dB.  The IPVU latch is set so both channels take effect
// together.
func (d *Dev) SetPGAVolume(ch Channel, volume uint8) error {
	d.m.Lock()
	defer d.m.Unlock()

	if volume > 63 {
		return fmt.Errorf("%w: pga volume %d", ErrOutOfRange, volume)
	}
	reg := uint8(regLeftInputVolume)
	if ch == Right {
		reg = regRightInputVolume
	}
	return d.updateBits(reg, 1<<8|0x3f, 1<<8|uint16(volume))
}

// SetPGAMute mutes one PGA.  Muting survives volume updates.
func (d *Dev) SetPGAMute(ch Channel, mute bool) error {
	d.m.Lock()
	defer d.m.Unlock()

	reg := uint8(regLeftInputVolume)
	if ch == Right {
		reg = regRightInputVolume
	}
	val := uint16(1 << 8)
	if mute {
		val |= 1 << 7
	}
	return d.updateBits(reg, 1<<8|1<<7, val)
}

// SetPGAZeroCross makes PGA gain changes wait for a zero crossing,
// which avoids zipper noise.  Applies to both channels.
func (d *Dev) SetPGAZeroCross(on bool) error {
	d.m.Lock()
	defer d.m.Unlock()

	if err := d.setBit(regLeftInputVolume, 6, on); err != nil {
		return err
	}
	return d.setBit(regRightInputVolume, 6, on)
}

// SetBoostGain sets the INPUT2 or INPUT3 feed into the boost mixer.
// Only inputs 2 and 3 have boost mixer taps.
func (d *Dev) SetBoostGain(ch Channel, input int, gain BoostGain) error {
	d.m.Lock()
	defer d.m.Unlock()

	if gain < BoostMute || gain > Boost6dB {
		return fmt.Errorf("%w: boost gain %d", ErrOutOfRange, gain)
	}
	reg := uint8(regInputBoostMixer1)
	if ch == Right {
		reg = regInputBoostMixer2
	}
	switch input {
	case 2:
		return d.updateBits(reg, 0x7<<1, uint16(gain)<<1)
	case 3:
		return d.updateBits(reg, 0x7<<4, uint16(gain)<<4)
	}
	return fmt.Errorf("%w: boost mixer input %d", ErrInvalidParam, input)
}

// SetMicBias powers the MICBIAS output for electret capsules.
func (d *Dev) SetMicBias(on bool) error {
	d.m.Lock()
	defer d.m.Unlock()

	return d.setBit(regPwrMgmt1, 1, on)
}

// SetMicBiasVoltage selects 0.9*AVDD or 0.65*AVDD on MICBIAS.
func (d *Dev) SetMicBiasVoltage(v MicBiasVoltage) error {
	d.m.Lock()
	defer d.m.Unlock()

	return d.setBit(regAdditionalCtrl4, 0, v == MicBias0v65AVDD)
}
