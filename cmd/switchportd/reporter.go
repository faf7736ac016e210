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

package main

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"

	"github.com/floodlight/topology-go/config"
	"github.com/floodlight/topology-go/reporter"
	"github.com/floodlight/topology-go/reporter/amqp"
	reporterhttp "github.com/floodlight/topology-go/reporter/http"
	"github.com/floodlight/topology-go/reporter/kafka"
	reporterlog "github.com/floodlight/topology-go/reporter/log"
	"github.com/floodlight/topology-go/reporter/pulsar"
)

func newReporter(cfg *config.Config, logger *logrus.Logger) (reporter.Reporter, error) {
	s, err := cfg.Serializer()
	if err != nil {
		return nil, err
	}

	rc := cfg.Reporter
	if rc.Type != config.ReporterNone && rc.Type != config.ReporterLog && rc.Address == "" {
		return nil, errors.Newf("reporter %s requires reporter.address", rc.Type)
	}

	switch rc.Type {
	case "", config.ReporterNone:
		return reporter.NewNoopReporter(), nil
	case config.ReporterLog:
		l := logrus.New()
		l.SetOutput(logger.Out)
		l.SetFormatter(new(reporterlog.LineFormatter))
		return reporterlog.NewReporter(reporterlog.Logger(l), reporterlog.Serializer(s)), nil
	case config.ReporterHTTP:
		return reporterhttp.NewReporter(rc.Address,
			reporterhttp.Logger(logger),
			reporterhttp.Serializer(s),
		), nil
	case config.ReporterKafka:
		opts := []kafka.ReporterOption{kafka.Logger(logger), kafka.Serializer(s)}
		if rc.Topic != "" {
			opts = append(opts, kafka.Topic(rc.Topic))
		}
		return kafka.NewReporter(strings.Split(rc.Address, ","), opts...)
	case config.ReporterAMQP:
		opts := []amqp.ReporterOption{amqp.Logger(logger), amqp.Serializer(s)}
		if rc.Topic != "" {
			opts = append(opts, amqp.Exchange(rc.Topic), amqp.Queue(rc.Topic))
		}
		return amqp.NewReporter(rc.Address, opts...)
	case config.ReporterPulsar:
		opts := []pulsar.ReporterOption{pulsar.Logger(logger), pulsar.Serializer(s)}
		if rc.Topic != "" {
			opts = append(opts, pulsar.Topic(rc.Topic))
		}
		return pulsar.NewReporter(rc.Address, opts...)
	default:
		return nil, errors.Newf("unknown reporter type %q", rc.Type)
	}
}
