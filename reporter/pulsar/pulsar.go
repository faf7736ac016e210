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

/*
Package pulsar implements a Pulsar reporter to send edge endpoints to a
Pulsar server/cluster.
*/
package pulsar

import (
	"context"

	"github.com/apache/pulsar-client-go/pulsar"
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"

	"github.com/floodlight/topology-go/model"
	"github.com/floodlight/topology-go/reporter"
	"github.com/floodlight/topology-go/serializer"
)

// defaultPulsarTopic sets the standard Pulsar topic our Reporter will publish
// on.
const defaultPulsarTopic = "switchports"

// pulsarReporter implements Reporter by publishing endpoints to a Pulsar broker.
type pulsarReporter struct {
	e          chan error
	client     pulsar.Client
	producer   pulsar.Producer
	logger     logrus.FieldLogger
	topic      string
	serializer serializer.Serializer
}

// ReporterOption sets a parameter for the pulsarReporter
type ReporterOption func(c *pulsarReporter)

// Logger sets the logger used to report errors in the collection
// process.
func Logger(logger logrus.FieldLogger) ReporterOption {
	return func(c *pulsarReporter) {
		c.logger = logger
	}
}

// Topic sets the pulsar topic to attach the reporter producer on.
func Topic(t string) ReporterOption {
	return func(c *pulsarReporter) {
		c.topic = t
	}
}

// Serializer sets the serialization function to use for sending endpoint
// data.
func Serializer(s serializer.Serializer) ReporterOption {
	return func(c *pulsarReporter) {
		if s != nil {
			c.serializer = s
		}
	}
}

// Client sets the Pulsar client to use for the reporter.
func Client(p pulsar.Client) ReporterOption {
	return func(c *pulsarReporter) {
		c.client = p
	}
}

// Producer sets the Pulsar producer to use for the reporter.
func Producer(p pulsar.Producer) ReporterOption {
	return func(c *pulsarReporter) {
		c.producer = p
	}
}

func (p *pulsarReporter) logErrors() {
	for err := range p.e {
		p.logger.WithError(err).Error("failed to produce msg")
	}
}

// NewReporter returns a new Pulsar-backed Reporter.
func NewReporter(address string, options ...ReporterOption) (reporter.Reporter, error) {
	p := &pulsarReporter{
		logger:     logrus.StandardLogger(),
		topic:      defaultPulsarTopic,
		serializer: serializer.JSONSerializer{},
		e:          make(chan error),
	}

	for _, option := range options {
		option(p)
	}

	var err error
	if p.client == nil {
		p.client, err = pulsar.NewClient(pulsar.ClientOptions{
			URL: address,
		})
		if err != nil {
			return nil, errors.Wrap(err, "create pulsar client")
		}
	}
	if p.producer == nil {
		p.producer, err = p.client.CreateProducer(pulsar.ProducerOptions{
			Topic: p.topic,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "create producer on %q", p.topic)
		}
	}

	go p.logErrors()

	return p, nil
}

func (p *pulsarReporter) Send(npt model.NodePortTuple) {
	m, err := p.serializer.Serialize([]model.NodePortTuple{npt})
	if err != nil {
		p.e <- errors.Wrap(err, "failed when marshalling the endpoint")
		return
	}

	message := &pulsar.ProducerMessage{
		Payload:    m,
		Properties: map[string]string{"content-type": p.serializer.ContentType()},
	}
	p.producer.SendAsync(context.Background(), message, func(_ pulsar.MessageID, _ *pulsar.ProducerMessage, err error) {
		if err != nil {
			p.e <- errors.Wrap(err, "failed to produce msg")
		}
	})
}

func (p *pulsarReporter) Close() error {
	p.producer.Close()
	p.client.Close()
	return nil
}
