// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package passthrough

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	assert := assert.New(t)

	l := New(Config{Namespace: "new_defaults"}, nil)
	require.NotNil(t, l)

	assert.Equal(44100, l.config.Rate)
	assert.Equal(2, l.config.Channels)
	assert.Equal(256, l.config.PeriodFrames)
	assert.NotNil(l.log)
}

func TestStartFailures(t *testing.T) {
	errOpen := errors.New("open failed")

	tests := []struct {
		description string
		captureErr  error
		playbackErr error
	}{
		{
			description: "capture open fails",
			captureErr:  errOpen,
		}, {
			description: "playback open fails, capture closed",
			playbackErr: errOpen,
		},
	}

	for i, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert := assert.New(t)

			l := New(Config{Namespace: "start_failures_" + string(rune('a'+i))}, nil)

			capture := new(mockCapture)
			capture.On("Close").Return(nil)

			o := new(mockOpener)
			if tc.captureErr != nil {
				o.On("OpenCapture", mock.Anything).Return(nil, tc.captureErr)
			} else {
				o.On("OpenCapture", mock.Anything).Return(capture, nil)
				o.On("OpenPlayback", mock.Anything).Return(nil, tc.playbackErr)
			}
			l.opener = o

			assert.ErrorIs(l.Start(context.Background()), errOpen)

			if tc.playbackErr != nil {
				capture.AssertCalled(t, "Close")
			}
		})
	}
}

func TestShuttle(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	l := New(Config{
		Namespace:    "shuttle",
		Channels:     2,
		PeriodFrames: 4,
	}, nil)

	capture := &mockCapture{fill: 0x5a}
	capture.On("Read", mock.Anything).Return(nil)
	capture.On("Close").Return(nil)

	playback := &mockPlayback{got: make(chan []byte, 1)}
	playback.On("Write", mock.Anything, 4).Return(nil)
	playback.On("Close").Return(nil)

	o := new(mockOpener)
	o.On("OpenCapture", mock.Anything).Return(capture, nil)
	o.On("OpenPlayback", mock.Anything).Return(playback, nil)
	l.opener = o

	ctx := context.Background()
	require.NoError(l.Start(ctx))
	assert.ErrorIs(l.Start(ctx), errAlreadyStarted)

	select {
	case buf := <-playback.got:
		// 4 frames x 2 channels x 2 bytes, captured bytes forwarded
		// unchanged.
		require.Len(buf, 16)
		for _, b := range buf {
			assert.Equal(byte(0x5a), b)
		}
	case <-time.After(time.Second):
		t.Fatal("no data shuttled")
	}

	l.Stop(ctx)
	capture.AssertCalled(t, "Close")
	playback.AssertCalled(t, "Close")

	// Stopping twice is harmless.
	l.Stop(ctx)
}

func TestTransferErrorsAreNotFatal(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	errIO := errors.New("xrun")

	l := New(Config{
		Namespace:    "transfer_errors",
		Channels:     2,
		PeriodFrames: 4,
	}, nil)

	capture := &mockCapture{fill: 0x01}
	capture.On("Read", mock.Anything).Return(errIO).Once()
	capture.On("Read", mock.Anything).Return(nil)
	capture.On("Close").Return(nil)

	playback := &mockPlayback{got: make(chan []byte, 1)}
	playback.On("Write", mock.Anything, 4).Return(errIO).Once()
	playback.On("Write", mock.Anything, 4).Return(nil)
	playback.On("Close").Return(nil)

	o := new(mockOpener)
	o.On("OpenCapture", mock.Anything).Return(capture, nil)
	o.On("OpenPlayback", mock.Anything).Return(playback, nil)
	l.opener = o

	ctx := context.Background()
	require.NoError(l.Start(ctx))

	// The loop must ride through both failures and still deliver.
	select {
	case <-playback.got:
	case <-time.After(time.Second):
		t.Fatal("loop did not recover from transfer errors")
	}

	l.Stop(ctx)
	assert.True(len(capture.Calls) > 1)
}

func TestCaptureErrorBackoff(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	errIO := errors.New("device gone")
	mclock := clock.NewMock()

	l := New(Config{
		Namespace:    "capture_backoff",
		Channels:     2,
		PeriodFrames: 4,
	}, nil, UseClock(mclock))

	capture := &mockCapture{fill: 0x22}
	capture.On("Read", mock.Anything).Return(errIO).Times(3)
	capture.On("Read", mock.Anything).Return(nil)
	capture.On("Close").Return(nil)

	playback := &mockPlayback{got: make(chan []byte, 1)}
	playback.On("Write", mock.Anything, 4).Return(nil)
	playback.On("Close").Return(nil)

	o := new(mockOpener)
	o.On("OpenCapture", mock.Anything).Return(capture, nil)
	o.On("OpenPlayback", mock.Anything).Return(playback, nil)
	l.opener = o

	ctx := context.Background()
	require.NoError(l.Start(ctx))

	// The first read fails immediately and the loop must park on the
	// clock rather than spinning into the next read.
	time.Sleep(10 * time.Millisecond)
	assert.Empty(playback.got)

	// Each tick releases exactly one retry; the third one reaches the
	// read that succeeds.
	for i := 0; i < 3; i++ {
		mclock.Add(retryDelay)
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-playback.got:
	case <-time.After(time.Second):
		t.Fatal("loop never recovered after backoff")
	}

	l.Stop(ctx)
}
