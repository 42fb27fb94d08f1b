// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package wm8960

import "fmt"

// Clock tree: MCLK or the PLL output feeds SYSCLK through SYSCLKDIV;
// the ADC, DAC, bit clock and class D clock each divide down from
// SYSCLK.

// SetPLL powers the PLL.
func (d *Dev) SetPLL(on bool) error {
	d.m.Lock()
	defer d.m.Unlock()

	return d.setBit(regPwrMgmt2, 0, on)
}

// SetPLLPrescale divides MCLK by 2 ahead of the PLL when set.
func (d *Dev) SetPLLPrescale(divideBy2 bool) error {
	d.m.Lock()
	defer d.m.Unlock()

	return d.setBit(regPLLN, 4, divideBy2)
}

// SetPLLN sets the integer part of the PLL ratio, 5-12 per the
// datasheet's stable range.
func (d *Dev) SetPLLN(n uint8) error {
	d.m.Lock()
	defer d.m.Unlock()

	if n > 0xf {
		return fmt.Errorf("%w: pll n %d", ErrOutOfRange, n)
	}
	return d.updateBits(regPLLN, 0xf, uint16(n))
}

// SetPLLK sets the 24-bit fractional part of the PLL ratio,
// K = 2^24 * (R - N).
func (d *Dev) SetPLLK(k uint32) error {
	d.m.Lock()
	defer d.m.Unlock()

	if k > 0xffffff {
		return fmt.Errorf("%w: pll k 0x%x", ErrOutOfRange, k)
	}
	if err := d.updateBits(regPLLK1, 0xff, uint16(k>>16)); err != nil {
		return err
	}
	if err := d.updateBits(regPLLK2, 0xff, uint16(k>>8)&0xff); err != nil {
		return err
	}
	return d.updateBits(regPLLK3, 0xff, uint16(k)&0xff)
}

// SetPLLFractional selects fractional (sigma delta) mode instead of
// integer mode.
func (d *Dev) SetPLLFractional(fractional bool) error {
	d.m.Lock()
	defer d.m.Unlock()

	return d.setBit(regPLLN, 5, fractional)
}

// SetClockFromPLL selects the PLL output as SYSCLK source; off
// selects MCLK directly.
func (d *Dev) SetClockFromPLL(fromPLL bool) error {
	d.m.Lock()
	defer d.m.Unlock()

	return d.setBit(regClocking1, 0, fromPLL)
}

// SetSysClkDiv divides the SYSCLK source by 1 (0) or 2 (2).  1 and 3
// are reserved by the chip.
func (d *Dev) SetSysClkDiv(div uint8) error {
	d.m.Lock()
	defer d.m.Unlock()

	if div != 0 && div != 2 {
		return fmt.Errorf("%w: sysclk divider %d", ErrInvalidParam, div)
	}
	return d.updateBits(regClocking1, 0x3<<1, uint16(div)<<1)
}

// SetADCDiv sets the ADC sample rate divider, SYSCLK / (setting*256).
func (d *Dev) SetADCDiv(setting uint8) error {
	d.m.Lock()
	defer d.m.Unlock()

	if setting > 7 {
		return fmt.Errorf("%w: adc divider %d", ErrOutOfRange, setting)
	}
	return d.updateBits(regClocking1, 0x7<<6, uint16(setting)<<6)
}

// SetDACDiv sets the DAC sample rate divider, SYSCLK / (setting*256).
func (d *Dev) SetDACDiv(setting uint8) error {
	d.m.Lock()
	defer d.m.Unlock()

	if setting > 7 {
		return fmt.Errorf("%w: dac divider %d", ErrOutOfRange, setting)
	}
	return d.updateBits(regClocking1, 0x7<<3, uint16(setting)<<3)
}

// SetBClkDiv sets the bit clock divider used in controller mode.
func (d *Dev) SetBClkDiv(setting uint8) error {
	d.m.Lock()
	defer d.m.Unlock()

	if setting > 0xf {
		return fmt.Errorf("%w: bclk divider %d", ErrOutOfRange, setting)
	}
	return d.updateBits(regClocking2, 0xf, uint16(setting))
}

// SetDClkDiv sets the class D switching clock divider.  7 is
// SYSCLK/16, the datasheet recommendation.
func (d *Dev) SetDClkDiv(setting uint8) error {
	d.m.Lock()
	defer d.m.Unlock()

	if setting > 7 {
		return fmt.Errorf("%w: dclk divider %d", ErrOutOfRange, setting)
	}
	return d.updateBits(regClocking2, 0x7<<6, uint16(setting)<<6)
}

// Configure44100From24MHz programs the full 44.1 kHz clock recipe for
// a 24 MHz MCLK, the crystal on the SparkFun breakout: prescale /2,
// N=7, K=0x86C226 fractional, SYSCLK /2 for 11.2896 MHz, unity
// ADC/DAC dividers, BCLK at 64fs and the class D clock at 705.6 kHz.
func (d *Dev) Configure44100From24MHz() error {
	steps := []func() error{
		func() error { return d.SetPLLPrescale(true) },
		func() error { return d.SetPLLN(7) },
		func() error { return d.SetPLLK(0x86c226) },
		func() error { return d.SetPLLFractional(true) },
		func() error { return d.SetSysClkDiv(2) },
		func() error { return d.SetADCDiv(0) },
		func() error { return d.SetDACDiv(0) },
		func() error { return d.SetBClkDiv(4) },
		func() error { return d.SetDClkDiv(7) },
		func() error { return d.SetClockFromPLL(true) },
		func() error { return d.SetPLL(true) },
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
