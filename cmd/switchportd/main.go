// Copyright 2026 The Floodlight Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command switchportd announces a configured set of switch ports through a
// reporter and serves them over REST in the edge endpoint wire format.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/floodlight/topology-go/config"
	"github.com/floodlight/topology-go/web"
)

func main() {
	flags := pflag.NewFlagSet("switchportd", pflag.ExitOnError)
	configFile := flags.StringP("config", "c", "", "configuration file (yaml or json)")
	config.RegisterFlags(flags)
	_ = flags.Parse(os.Args[1:])

	if err := run(*configFile, flags); err != nil {
		logrus.WithError(err).Fatal("switchportd failed")
	}
}

func run(configFile string, flags *pflag.FlagSet) error {
	cfg, err := config.Load(configFile, flags)
	if err != nil {
		return err
	}
	logger, err := cfg.Logger()
	if err != nil {
		return err
	}
	npts, err := cfg.NodePortTuples()
	if err != nil {
		return err
	}

	rep, err := newReporter(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := rep.Close(); err != nil {
			logger.WithError(err).Warn("failed to close reporter")
		}
	}()
	for _, npt := range npts {
		rep.Send(npt)
	}
	logger.WithFields(logrus.Fields{
		"reporter":    cfg.Reporter.Type,
		"switchports": len(npts),
	}).Info("announced switch ports")

	mux := http.NewServeMux()
	mux.Handle(cfg.HTTP.Path, web.LogRequests(logger,
		web.NewSwitchPortHandler(web.StaticLister(npts), web.Logger(logger))))
	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errC := make(chan error, 1)
	go func() {
		logger.WithField("addr", cfg.HTTP.Addr).Info("serving switch ports")
		errC <- srv.ListenAndServe()
	}()

	select {
	case err = <-errC:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
