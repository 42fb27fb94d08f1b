// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/schmidtw/soundicus-maximus/dial"
	"github.com/schmidtw/soundicus-maximus/httpserver"
	"github.com/schmidtw/soundicus-maximus/passthrough"
	"github.com/schmidtw/soundicus-maximus/wm8960"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

type RunCmd struct{}

func (r *RunCmd) Run(cli *CLI) error {
	cfg, err := load(cli.File)
	if err != nil {
		return err
	}

	log, err := cfg.Logging.Build()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	app := fx.New(
		fx.Supply(cfg, log),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Provide(
			newCodec,
			newDial,
			newLoop,
			newMetricsHandler,
			func(cfg Config) httpserver.Config { return cfg.Metrics },
			httpserver.New,
		),
		fx.Invoke(
			hookHardware,
			func(*http.Server) {},
		),
	)

	app.Run()
	return nil
}

func newCodec(cfg Config) (*wm8960.Dev, error) {
	return wm8960.New(cfg.Codec)
}

// newDial points the dial at the codec's ALC target register.
func newDial(cfg Config, dev *wm8960.Dev, log *zap.Logger) (*dial.Dial, error) {
	return dial.New(cfg.Dial, dev.SetALCTarget, log)
}

func newLoop(cfg Config, log *zap.Logger) *passthrough.Loop {
	return passthrough.New(cfg.Passthrough, log)
}

func newMetricsHandler() http.Handler {
	return promhttp.Handler()
}

// hookHardware sequences the hardware on the fx lifecycle.  The codec
// comes first; a failed bus handshake aborts startup and the daemon
// exits rather than retrying.
func hookHardware(lc fx.Lifecycle, cfg Config, dev *wm8960.Dev, d *dial.Dial, loop *passthrough.Loop, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if err := dev.Open(); err != nil {
				return err
			}
			return bringUp(dev, cfg.Audio, log)
		},
		OnStop: func(context.Context) error {
			return dev.Close()
		},
	})

	lc.Append(fx.Hook{
		OnStart: loop.Start,
		OnStop: func(ctx context.Context) error {
			loop.Stop(ctx)
			return nil
		},
	})

	lc.Append(fx.Hook{
		OnStart: d.Start,
		OnStop: func(ctx context.Context) error {
			d.Stop(ctx)
			return nil
		},
	})
}
