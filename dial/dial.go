// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

// Package dial watches a potentiometer on an ADS1115 channel and
// turns it into the WM8960 ALC target level.  The pot is noisy, so
// each evaluation averages a fixed number of raw reads before
// scaling down to the 0-15 target range.
package dial

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

// sampleCount is how many raw reads are averaged per evaluation.
const sampleCount = 250

// levels is the ALC target range, 0-15.
const levels = 16

var (
	errAlreadyStarted = errors.New("already started")

	ErrInvalidParameter = errors.New("invalid parameter")
)

// Config provides the dial configuration options.
type Config struct {
	// I2CFile is the bus the ADS1115 sits on, e.g. "/dev/i2c-1".
	I2CFile string `yaml:"i2c_file"`

	// Channel is the ADS1115 input the pot wiper drives, 0-3.
	Channel int `yaml:"channel"`

	// MaxRaw is the raw reading at full deflection.  The default is
	// the ADS1115 positive full scale.
	MaxRaw int32 `yaml:"max_raw"`

	// SamplePeriod is how often the pot is evaluated.
	SamplePeriod time.Duration `yaml:"sample_period"`

	// Namespace of the metrics for the dial.
	Namespace string `yaml:"-"`
}

// Dial periodically evaluates the pot and pushes level changes.
type Dial struct {
	m       sync.Mutex
	config  Config
	clock   clock.Clock
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	log     *zap.Logger
	wrapper adcWrapper
	set     func(level uint8) error
	last    int

	// Metrics
	target prometheus.Gauge
}

// adcWrapper abstracts the periph.io ADS1115 plumbing so tests can
// swap in a mock.
type adcWrapper interface {
	Open(file string, channel int) error
	Close() error
	Read() (int32, error)
}

// Option configures optional Dial behavior.
type Option interface {
	apply(d *Dial)
}

// New makes a new dial.  The set function receives the 0-15 level
// whenever the averaged position moves to a new step.
func New(c Config, set func(level uint8) error, log *zap.Logger, opts ...Option) (*Dial, error) {
	if set == nil {
		return nil, ErrInvalidParameter
	}
	if c.Channel < 0 || c.Channel > 3 {
		return nil, ErrInvalidParameter
	}
	if c.MaxRaw < 1 {
		c.MaxRaw = 0x7fff
	}
	if log == nil {
		log = zap.NewNop()
	}
	if c.SamplePeriod < 1 {
		c.SamplePeriod = time.Second
	}

	d := &Dial{
		config:  c,
		clock:   clock.New(),
		log:     log,
		wrapper: &hwWrapper{},
		set:     set,
		last:    -1,
		target: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: c.Namespace,
			Subsystem: "audio",
			Name:      "alc_target_level",
			Help:      "ALC target level selected by the pot (0-15).",
		}),
	}

	for _, opt := range opts {
		opt.apply(d)
	}

	return d, nil
}

// Start claims the ADC and begins sampling.
func (d *Dial) Start(ctx context.Context) error {
	d.m.Lock()
	defer d.m.Unlock()

	if d.cancel != nil {
		return errAlreadyStarted
	}

	if err := d.wrapper.Open(d.config.I2CFile, d.config.Channel); err != nil {
		return err
	}

	ctx, d.cancel = context.WithCancel(ctx)
	d.wg.Add(1)
	go d.run(ctx)

	return nil
}

// Stop halts sampling and releases the ADC.
func (d *Dial) Stop(ctx context.Context) {
	d.m.Lock()
	defer d.m.Unlock()

	if d.cancel == nil {
		return
	}
	d.cancel()
	d.wg.Wait()
	d.cancel = nil

	_ = d.wrapper.Close()
}

func (d *Dial) run(ctx context.Context) {
	defer d.wg.Done()

	ticker := d.clock.Ticker(d.config.SamplePeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.evaluate()
		}
	}
}

// evaluate averages sampleCount reads and pushes the level if the
// step changed.
func (d *Dial) evaluate() {
	var sum int64
	n := 0
	for i := 0; i < sampleCount; i++ {
		raw, err := d.wrapper.Read()
		if err != nil {
			continue
		}
		sum += int64(raw)
		n++
	}
	if n == 0 {
		return
	}

	level := scale(int32(sum/int64(n)), d.config.MaxRaw)

	// last is only touched from the run goroutine.
	if level == d.last {
		return
	}

	if err := d.set(uint8(level)); err != nil {
		// Leave last alone so the push is retried next tick.
		d.log.Warn("failed to push level", zap.Int("level", level), zap.Error(err))
		return
	}

	d.last = level
	d.target.Set(float64(level))
	d.log.Info("alc target changed", zap.Int("level", level))
}

// scale maps an averaged raw reading onto 0-15.
func scale(raw, maxRaw int32) int {
	if raw < 0 {
		raw = 0
	}
	if raw > maxRaw {
		raw = maxRaw
	}

	level := int(int64(raw) * levels / (int64(maxRaw) + 1))
	if level > levels-1 {
		level = levels - 1
	}
	return level
}

// UseClock provides a way to set the clock used.  This is used for
// testing.
func UseClock(c clock.Clock) Option {
	return &clockOption{clk: c}
}

type clockOption struct {
	clk clock.Clock
}

func (c clockOption) apply(d *Dial) {
	d.clock = c.clk
}
