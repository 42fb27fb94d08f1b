// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package wm8960

import (
	"github.com/stretchr/testify/mock"
)

type mockWrapper struct {
	mock.Mock
}

func (m *mockWrapper) Open(file string) error {
	a := m.Called(file)
	return a.Error(0)
}

func (m *mockWrapper) Close() error {
	a := m.Called()
	return a.Error(0)
}

func (m *mockWrapper) Connect(addr uint16) (register9Conn, error) {
	a := m.Called(addr)
	c, _ := a.Get(0).(register9Conn)
	return c, a.Error(1)
}

type mockConn struct {
	mock.Mock

	// writes collects every Tx write buffer in order.
	writes [][]byte
}

func (m *mockConn) Tx(w, r []byte) error {
	a := m.Called(w, r)
	if w != nil {
		cp := make([]byte, len(w))
		copy(cp, w)
		m.writes = append(m.writes, cp)
	}
	return a.Error(0)
}

// openForTest wires a Dev to a permissive mock conn and returns both.
func openForTest(t interface {
	Fatalf(format string, args ...any)
}) (*Dev, *mockConn) {
	d, err := New(Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	c := new(mockConn)
	c.On("Tx", mock.Anything, mock.Anything).Return(nil)

	w := new(mockWrapper)
	w.On("Open", mock.Anything).Return(nil)
	w.On("Connect", uint16(DefaultAddress)).Return(c, nil)
	w.On("Close").Return(nil)
	d.bus = w

	if err := d.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	c.writes = nil // drop the handshake

	return d, c
}
