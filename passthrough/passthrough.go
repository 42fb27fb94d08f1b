// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

// Package passthrough pumps fixed size sample buffers from the
// codec's capture stream back out to its playback stream.  On Linux
// the WM8960's I2S port is an ALSA PCM device, so this is an ALSA to
// ALSA copy with no resampling, no format negotiation at runtime and
// no buffering policy beyond the fixed period size.
package passthrough

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

const bytesPerSample = 2 // fixed 16-bit samples

// retryDelay paces the loop after a capture error.  A healthy read
// blocks at the hardware rate; a dead device returns immediately and
// would otherwise spin a core.
const retryDelay = 10 * time.Millisecond

var (
	errAlreadyStarted = errors.New("already started")

	ErrNoDevice = errors.New("no matching pcm device")
)

// Config provides the passthrough configuration options.
type Config struct {
	// CaptureDevice and PlaybackDevice select PCM devices by title
	// substring.  Empty matches the first capable device.
	CaptureDevice  string `yaml:"capture_device"`
	PlaybackDevice string `yaml:"playback_device"`

	// Rate is the sample rate in Hz.  Fixed once started.
	Rate int `yaml:"rate"`

	// Channels per frame.
	Channels int `yaml:"channels"`

	// PeriodFrames is the fixed transfer size in frames.
	PeriodFrames int `yaml:"period_frames"`

	// Namespace of the metrics for the loop.
	Namespace string `yaml:"-"`
}

// Loop shuttles buffers between the capture and playback streams.
type Loop struct {
	m      sync.Mutex
	config Config
	clock  clock.Clock
	cancel context.CancelFunc
	wg     sync.WaitGroup
	log    *zap.Logger

	opener   streamOpener
	capture  captureStream
	playback playbackStream

	// Metrics
	frames       prometheus.Counter
	captureErrs  prometheus.Counter
	playbackErrs prometheus.Counter
}

type streamOpener interface {
	OpenCapture(Config) (captureStream, error)
	OpenPlayback(Config) (playbackStream, error)
}

type captureStream interface {
	Read(buf []byte) error
	Close() error
}

type playbackStream interface {
	Write(buf []byte, frames int) error
	Close() error
}

// Option configures optional Loop behavior.
type Option interface {
	apply(l *Loop)
}

// New makes a new passthrough loop.  Nothing touches the hardware
// until Start.
func New(c Config, log *zap.Logger, opts ...Option) *Loop {
	if c.Rate < 1 {
		c.Rate = 44100
	}
	if c.Channels < 1 {
		c.Channels = 2
	}
	if c.PeriodFrames < 1 {
		c.PeriodFrames = 256
	}
	if log == nil {
		log = zap.NewNop()
	}

	l := &Loop{
		config: c,
		clock:  clock.New(),
		log:    log,
		opener: &alsaOpener{},
		frames: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: c.Namespace,
			Subsystem: "audio",
			Name:      "passthrough_frames_total",
			Help:      "Frames copied from capture to playback.",
		}),
		captureErrs: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: c.Namespace,
			Subsystem: "audio",
			Name:      "passthrough_capture_errors_total",
			Help:      "Capture side transfer errors.",
		}),
		playbackErrs: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: c.Namespace,
			Subsystem: "audio",
			Name:      "passthrough_playback_errors_total",
			Help:      "Playback side transfer errors.",
		}),
	}

	for _, opt := range opts {
		opt.apply(l)
	}

	return l
}

// Start opens both streams and begins shuttling.  Stream setup
// failures are returned; transfer errors after that are counted and
// the loop keeps running.
func (l *Loop) Start(ctx context.Context) error {
	l.m.Lock()
	defer l.m.Unlock()

	if l.cancel != nil {
		return errAlreadyStarted
	}

	capture, err := l.opener.OpenCapture(l.config)
	if err != nil {
		return err
	}

	playback, err := l.opener.OpenPlayback(l.config)
	if err != nil {
		_ = capture.Close()
		return err
	}

	l.capture = capture
	l.playback = playback

	ctx, l.cancel = context.WithCancel(ctx)
	l.wg.Add(1)
	go l.run(ctx)

	l.log.Info("passthrough started",
		zap.Int("rate", l.config.Rate),
		zap.Int("channels", l.config.Channels),
		zap.Int("period_frames", l.config.PeriodFrames))

	return nil
}

// Stop halts the loop and closes both streams.
func (l *Loop) Stop(ctx context.Context) {
	l.m.Lock()
	defer l.m.Unlock()

	if l.cancel == nil {
		return
	}
	l.cancel()
	l.wg.Wait()
	l.cancel = nil

	_ = l.capture.Close()
	_ = l.playback.Close()
	l.capture = nil
	l.playback = nil

	l.log.Info("passthrough stopped")
}

func (l *Loop) run(ctx context.Context) {
	defer l.wg.Done()

	period := l.config.PeriodFrames
	buf := make([]byte, period*l.config.Channels*bytesPerSample)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		// Reads block until a full period is available, pacing the
		// loop at the hardware rate.
		if err := l.capture.Read(buf); err != nil {
			l.captureErrs.Inc()
			l.log.Debug("capture error", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-l.clock.After(retryDelay):
			}
			continue
		}

		if err := l.playback.Write(buf, period); err != nil {
			l.playbackErrs.Inc()
			l.log.Debug("playback error", zap.Error(err))
			continue
		}

		l.frames.Add(float64(period))
	}
}

// UseClock provides a way to set the clock used.  This is used for
// testing.
func UseClock(c clock.Clock) Option {
	return &clockOption{clk: c}
}

type clockOption struct {
	clk clock.Clock
}

func (c clockOption) apply(l *Loop) {
	l.clock = c.clk
}
