// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package wm8960

import "fmt"

// The automatic level control is a hardware feedback loop: the chip
// rides the PGA gain to hold the ADC output near the target level.
// The host only writes the loop parameters.  While the ALC is
// engaged, the manual PGA volume, zero-cross and mute settings in
// registers 0 and 1 are ignored by the chip.

// SetALCMode engages the ALC on the selected channels, or switches
// it off.
func (d *Dev) SetALCMode(mode ALCMode) error {
	d.m.Lock()
	defer d.m.Unlock()

	if mode < ALCOff || mode > ALCStereo {
		return fmt.Errorf("%w: alc mode %d", ErrInvalidParam, mode)
	}
	return d.updateBits(regALC1, 0x3<<7, uint16(mode)<<7)
}

// SetALCTarget sets the level the ALC regulates toward.  0 is
// -22.5 dBFS, 1.5 dB steps up to -1.5 dBFS at 14; 15 is also
// -1.5 dBFS.
func (d *Dev) SetALCTarget(target uint8) error {
	d.m.Lock()
	defer d.m.Unlock()

	if target > 15 {
		return fmt.Errorf("%w: alc target %d", ErrOutOfRange, target)
	}
	return d.updateBits(regALC1, 0xf, uint16(target))
}

// SetALCMaxGain caps the gain the ALC may apply, 0 = -12 dB up to
// 7 = +30 dB in 6 dB steps.
func (d *Dev) SetALCMaxGain(gain uint8) error {
	d.m.Lock()
	defer d.m.Unlock()

	if gain > 7 {
		return fmt.Errorf("%w: alc max gain %d", ErrOutOfRange, gain)
	}
	return d.updateBits(regALC1, 0x7<<4, uint16(gain)<<4)
}

// SetALCMinGain floors the gain the ALC may apply, 0 = -17.25 dB up
// to 7 = +24.75 dB in 6 dB steps.
func (d *Dev) SetALCMinGain(gain uint8) error {
	d.m.Lock()
	defer d.m.Unlock()

	if gain > 7 {
		return fmt.Errorf("%w: alc min gain %d", ErrOutOfRange, gain)
	}
	return d.updateBits(regALC2, 0x7<<4, uint16(gain)<<4)
}

// SetALCHold sets how long the level must sit below target before
// the gain starts to ramp up.  0 is 0 ms, 1 is 2.67 ms, doubling each
// step up to 15.
func (d *Dev) SetALCHold(hold uint8) error {
	d.m.Lock()
	defer d.m.Unlock()

	if hold > 15 {
		return fmt.Errorf("%w: alc hold %d", ErrOutOfRange, hold)
	}
	return d.updateBits(regALC2, 0xf, uint16(hold))
}

// SetALCDecay sets the gain ramp-up time constant.  0 is 24 ms,
// doubling each step up to roughly 24.6 s at 10.
func (d *Dev) SetALCDecay(decay uint8) error {
	d.m.Lock()
	defer d.m.Unlock()

	if decay > 10 {
		return fmt.Errorf("%w: alc decay %d", ErrOutOfRange, decay)
	}
	return d.updateBits(regALC3, 0xf<<4, uint16(decay)<<4)
}

// SetALCAttack sets the gain ramp-down time constant.  0 is 6 ms,
// doubling each step up to roughly 6.14 s at 10.
func (d *Dev) SetALCAttack(attack uint8) error {
	d.m.Lock()
	defer d.m.Unlock()

	if attack > 10 {
		return fmt.Errorf("%w: alc attack %d", ErrOutOfRange, attack)
	}
	return d.updateBits(regALC3, 0xf, uint16(attack))
}

// SetPeakLimiter controls the fast peak limiter that backs the ALC
// off immediately on clipping.
func (d *Dev) SetPeakLimiter(on bool) error {
	d.m.Lock()
	defer d.m.Unlock()

	return d.setBit(regALC3, 8, on)
}

// SetNoiseGate keeps the ALC from amplifying noise floor during
// silence.
func (d *Dev) SetNoiseGate(on bool) error {
	d.m.Lock()
	defer d.m.Unlock()

	return d.setBit(regNoiseGate, 0, on)
}

// SetNoiseGateThreshold sets the gate threshold, 0 = -76.5 dBFS up
// to 31 = -30 dBFS in 1.5 dB steps.
func (d *Dev) SetNoiseGateThreshold(threshold uint8) error {
	d.m.Lock()
	defer d.m.Unlock()

	if threshold > 31 {
		return fmt.Errorf("%w: noise gate threshold %d", ErrOutOfRange, threshold)
	}
	return d.updateBits(regNoiseGate, 0x1f<<3, uint16(threshold)<<3)
}
