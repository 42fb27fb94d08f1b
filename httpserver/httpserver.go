// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

// Package httpserver serves the prometheus metrics endpoint.  The
// daemon has no other web surface; control happens over the CLI.
package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/xmidt-org/arrange/arrangetls"
	"github.com/xmidt-org/httpaux"
	serveraux "github.com/xmidt-org/httpaux/server"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config provides the metrics server configuration options.
type Config struct {
	// Address corresponds to http.Server.Addr.
	Address string `yaml:"address"`

	// Path is the url path of the metrics handler.  Defaults to
	// "/metrics".
	Path string `yaml:"path"`

	// ReadTimeout corresponds to http.Server.ReadTimeout.
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout corresponds to http.Server.WriteTimeout.
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout corresponds to http.Server.IdleTimeout.
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// KeepAlive corresponds to net.ListenConfig.KeepAlive.
	KeepAlive time.Duration `yaml:"keep_alive"`

	// Headers supplies HTTP headers to emit on every response.
	Headers http.Header `yaml:"headers"`

	// TLS is the optional TLS configuration.  If set, the server
	// speaks HTTPS.
	TLS *arrangetls.Config `yaml:"tls"`
}

// Server builds the http.Server from the configuration and handler.
func (c Config) Server(h http.Handler) (*http.Server, error) {
	path := "/metrics"
	if len(c.Path) > 0 {
		path = c.Path
	}

	headers := httpaux.NewHeader(c.Headers)
	handler := serveraux.Header(headers.SetTo)(h)

	mux := http.NewServeMux()
	mux.Handle(path, handler)

	server := &http.Server{
		Addr:         c.Address,
		Handler:      mux,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
		IdleTimeout:  c.IdleTimeout,
	}

	var err error
	server.TLSConfig, err = c.TLS.New()

	return server, err
}

// New hangs the server off the fx lifecycle.
func New(lc fx.Lifecycle, handler http.Handler, cfg Config, log *zap.Logger) (*http.Server, error) {
	srv, err := cfg.Server(handler)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			lc := net.ListenConfig{
				KeepAlive: cfg.KeepAlive,
			}
			ln, err := lc.Listen(ctx, "tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("starting metrics server", zap.String("addr", srv.Addr))
			go func() { _ = srv.Serve(ln) }()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping metrics server", zap.String("addr", srv.Addr))
			return srv.Shutdown(ctx)
		},
	})

	return srv, nil
}
