// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package dial

import (
	"sync"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
)

var channels = [...]ads1x15.Channel{
	ads1x15.Channel0,
	ads1x15.Channel1,
	ads1x15.Channel2,
	ads1x15.Channel3,
}

type hwWrapper struct {
	m   sync.Mutex
	bus i2c.BusCloser
	pin ads1x15.PinADC
}

func (h *hwWrapper) Open(file string, channel int) (err error) {
	h.m.Lock()
	defer h.m.Unlock()

	if h.bus != nil {
		return errAlreadyStarted
	}

	h.bus, err = i2creg.Open(file)
	if err != nil {
		return err
	}

	adc, err := ads1x15.NewADS1115(h.bus, &ads1x15.DefaultOpts)
	if err != nil {
		_ = h.bus.Close()
		h.bus = nil
		return err
	}

	// The pot runs rail to rail on the 3.3V supply.
	h.pin, err = adc.PinForChannel(channels[channel],
		3300*physic.MilliVolt, 860*physic.Hertz, ads1x15.BestQuality)
	if err != nil {
		_ = h.bus.Close()
		h.bus = nil
		return err
	}

	return nil
}

func (h *hwWrapper) Close() (err error) {
	h.m.Lock()
	defer h.m.Unlock()

	if h.pin != nil {
		err = h.pin.Halt()
		h.pin = nil
	}
	if h.bus != nil {
		e := h.bus.Close()
		if e != nil && err == nil {
			err = e
		}
		h.bus = nil
	}

	return err
}

func (h *hwWrapper) Read() (int32, error) {
	h.m.Lock()
	defer h.m.Unlock()

	sample, err := h.pin.Read()
	if err != nil {
		return 0, err
	}
	return sample.Raw, nil
}
