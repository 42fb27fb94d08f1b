// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package wm8960

import (
	"sync"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
)

type hwWrapper struct {
	m   sync.Mutex
	bus i2c.BusCloser
}

func (h *hwWrapper) Open(file string) (err error) {
	h.m.Lock()
	defer h.m.Unlock()

	if h.bus != nil {
		return ErrAlreadyOpen
	}

	h.bus, err = i2creg.Open(file)
	return err
}

func (h *hwWrapper) Close() error {
	h.m.Lock()
	defer h.m.Unlock()

	if h.bus == nil {
		return ErrNotOpen
	}

	err := h.bus.Close()
	h.bus = nil
	return err
}

func (h *hwWrapper) Connect(addr uint16) (register9Conn, error) {
	h.m.Lock()
	defer h.m.Unlock()

	if h.bus == nil {
		return nil, ErrNotOpen
	}

	return &i2c.Dev{Bus: h.bus, Addr: addr}, nil
}
