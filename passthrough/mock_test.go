// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package passthrough

import (
	"github.com/stretchr/testify/mock"
)

type mockOpener struct {
	mock.Mock
}

func (m *mockOpener) OpenCapture(c Config) (captureStream, error) {
	a := m.Called(c)
	s, _ := a.Get(0).(captureStream)
	return s, a.Error(1)
}

func (m *mockOpener) OpenPlayback(c Config) (playbackStream, error) {
	a := m.Called(c)
	s, _ := a.Get(0).(playbackStream)
	return s, a.Error(1)
}

type mockCapture struct {
	mock.Mock

	fill byte
}

func (m *mockCapture) Read(buf []byte) error {
	a := m.Called(buf)
	if a.Error(0) == nil {
		for i := range buf {
			buf[i] = m.fill
		}
	}
	return a.Error(0)
}

func (m *mockCapture) Close() error {
	a := m.Called()
	return a.Error(0)
}

type mockPlayback struct {
	mock.Mock

	got chan []byte
}

func (m *mockPlayback) Write(buf []byte, frames int) error {
	a := m.Called(buf, frames)
	if m.got != nil && a.Error(0) == nil {
		cp := make([]byte, len(buf))
		copy(cp, buf)
		select {
		case m.got <- cp:
		default:
		}
	}
	return a.Error(0)
}

func (m *mockPlayback) Close() error {
	a := m.Called()
	return a.Error(0)
}
