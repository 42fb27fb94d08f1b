// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

// Package wm8960 drives the Wolfson WM8960 stereo codec over I2C.
//
// The chip is write-only; every register is shadowed locally and all
// bit-level changes are applied read-modify-write against the shadow.
// The audio samples themselves never cross I2C, only the control
// plane does.  Audio moves over the chip's I2S port, which on Linux
// shows up as an ALSA PCM device.
package wm8960

import (
	"errors"
	"fmt"
	"sync"
)

// DefaultAddress is the 7-bit I2C address of the WM8960.  The chip
// has no address pins, so this is the only option.
const DefaultAddress = 0x1a

var (
	ErrNotOpen      = errors.New("device not open")
	ErrAlreadyOpen  = errors.New("device already open")
	ErrOutOfRange   = errors.New("value out of range")
	ErrNoHandshake  = errors.New("codec did not acknowledge")
	ErrInvalidParam = errors.New("invalid parameter")
)

// Config provides the codec configuration options.
type Config struct {
	// I2CFile is the bus device, e.g. "/dev/i2c-1".  Empty selects
	// the first available bus.
	I2CFile string `yaml:"i2c_file"`

	// Address overrides the 7-bit device address.  Zero means
	// DefaultAddress.
	Address uint16 `yaml:"address"`
}

// Dev is a handle to a WM8960.
type Dev struct {
	m      sync.Mutex
	config Config
	bus    busWrapper
	conn   register9Conn
	shadow [registerCount]uint16
}

// busWrapper abstracts the periph.io bus plumbing so tests can swap
// in a mock.
type busWrapper interface {
	Open(string) error
	Close() error
	Connect(addr uint16) (register9Conn, error)
}

// register9Conn is the 9-bit register write transaction.  The first
// byte carries the register address in [7:1] and data bit 8 in [0],
// the second byte carries data [7:0].
type register9Conn interface {
	Tx(w, r []byte) error
}

// New makes a new codec handle.  Nothing touches the bus until Open.
func New(c Config) (*Dev, error) {
	if c.Address == 0 {
		c.Address = DefaultAddress
	}
	if c.Address > 0x7f {
		return nil, fmt.Errorf("%w: i2c address 0x%x", ErrInvalidParam, c.Address)
	}

	d := &Dev{
		config: c,
		bus:    &hwWrapper{},
	}
	d.shadow = registerDefaults

	return d, nil
}

// Open claims the bus and performs the address-only handshake.  A
// codec that does not acknowledge is fatal; there is no retry.
func (d *Dev) Open() error {
	d.m.Lock()
	defer d.m.Unlock()

	if d.conn != nil {
		return ErrAlreadyOpen
	}

	if err := d.bus.Open(d.config.I2CFile); err != nil {
		return err
	}

	conn, err := d.bus.Connect(d.config.Address)
	if err != nil {
		_ = d.bus.Close()
		return err
	}

	if err := conn.Tx(nil, nil); err != nil {
		_ = d.bus.Close()
		return fmt.Errorf("%w: %v", ErrNoHandshake, err)
	}

	d.conn = conn
	return nil
}

// Close releases the bus.  The chip keeps whatever state it was left
// in; call Reset first if that matters.
func (d *Dev) Close() error {
	d.m.Lock()
	defer d.m.Unlock()

	if d.conn == nil {
		return ErrNotOpen
	}
	d.conn = nil

	return d.bus.Close()
}

// Reset writes the reset register and rewinds the shadow copy to the
// datasheet defaults.  Any nonzero write to the register resets the
// chip.
func (d *Dev) Reset() error {
	d.m.Lock()
	defer d.m.Unlock()

	if err := d.write(regReset, 0x1ff); err != nil {
		return err
	}
	d.shadow = registerDefaults
	return nil
}

// WriteRegister is the raw escape hatch.  The shadow copy is kept in
// sync, so bit-level setters remain usable afterwards.
func (d *Dev) WriteRegister(reg uint8, value uint16) error {
	d.m.Lock()
	defer d.m.Unlock()

	return d.write(reg, value)
}

// Register returns the shadow copy of a register.  The hardware
// cannot be read back, so this reflects writes made through this
// handle only.
func (d *Dev) Register(reg uint8) (uint16, error) {
	d.m.Lock()
	defer d.m.Unlock()

	if int(reg) >= registerCount {
		return 0, fmt.Errorf("%w: register 0x%02x", ErrOutOfRange, reg)
	}
	return d.shadow[reg], nil
}

// write sends one 9-bit register value.  Callers hold d.m.
func (d *Dev) write(reg uint8, value uint16) error {
	if d.conn == nil {
		return ErrNotOpen
	}
	if int(reg) >= registerCount {
		return fmt.Errorf("%w: register 0x%02x", ErrOutOfRange, reg)
	}
	if value > 0x1ff {
		return fmt.Errorf("%w: register value 0x%x", ErrOutOfRange, value)
	}

	buf := []byte{
		byte(reg)<<1 | byte(value>>8),
		byte(value),
	}
	if err := d.conn.Tx(buf, nil); err != nil {
		return fmt.Errorf("write register 0x%02x: %w", reg, err)
	}

	d.shadow[reg] = value
	return nil
}

// updateBits clears mask in the shadow copy, ors in value and writes
// the result.  Callers hold d.m.
func (d *Dev) updateBits(reg uint8, mask, value uint16) error {
	next := (d.shadow[reg] &^ mask) | (value & mask)
	return d.write(reg, next)
}

// setBit sets or clears a single bit.  Callers hold d.m.
func (d *Dev) setBit(reg uint8, bit uint, on bool) error {
	if on {
		return d.updateBits(reg, 1<<bit, 1<<bit)
	}
	return d.updateBits(reg, 1<<bit, 0)
}
