// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package dial

import (
	"github.com/stretchr/testify/mock"
)

type mockWrapper struct {
	mock.Mock
}

func (m *mockWrapper) Open(file string, channel int) error {
	a := m.Called(file, channel)
	return a.Error(0)
}

func (m *mockWrapper) Close() error {
	a := m.Called()
	return a.Error(0)
}

func (m *mockWrapper) Read() (int32, error) {
	a := m.Called()
	return a.Get(0).(int32), a.Error(1)
}
