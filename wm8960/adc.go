// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package wm8960

// SetADC powers the left or right ADC.
func (d *Dev) SetADC(ch Channel, on bool) error {
	d.m.Lock()
	defer d.m.Unlock()

	bit := uint(3)
	if ch == Right {
		bit = 2
	}
	return d.setBit(regPwrMgmt1, bit, on)
}

// SetADCVolume sets the ADC digital volume.  0 mutes, 1 is -97 dB,
// then 0.5 dB steps up to +30 dB at 255.  The ADCVU latch is set so
// both channels update together.
func (d *Dev) SetADCVolume(ch Channel, volume uint8) error {
	d.m.Lock()
	defer d.m.Unlock()

	reg := uint8(regLeftADCVolume)
	if ch == Right {
		reg = regRightADCVolume
	}
	return d.write(reg, 1<<8|uint16(volume))
}

// SetHighPassFilter controls the ADC high pass filter that strips DC
// from the capture path.  Disabling it is only useful for
// measurement work.
func (d *Dev) SetHighPassFilter(on bool) error {
	d.m.Lock()
	defer d.m.Unlock()

	// ADCHPD is a disable bit.
	return d.setBit(regADCDACControl1, 0, !on)
}
