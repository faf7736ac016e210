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
Package amqp implements a RabbitMq reporter to send edge endpoints to a
Rabbit server/cluster.
*/
package amqp

import (
	"context"

	"github.com/cockroachdb/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/floodlight/topology-go/model"
	"github.com/floodlight/topology-go/reporter"
	"github.com/floodlight/topology-go/serializer"
)

// defaultRmqRoutingKey/Exchange/Kind sets the standard RabbitMQ queue our Reporter will publish on.
const (
	defaultRmqRoutingKey = "switchports"
	defaultRmqExchange   = "switchports"
	defaultExchangeKind  = "direct"
)

// rmqReporter implements Reporter by publishing endpoints to a RabbitMQ exchange
type rmqReporter struct {
	e          chan error
	channel    *amqp.Channel
	conn       *amqp.Connection
	exchange   string
	queue      string
	logger     logrus.FieldLogger
	serializer serializer.Serializer
}

// ReporterOption sets a parameter for the rmqReporter
type ReporterOption func(c *rmqReporter)

// Logger sets the logger used to report errors in the collection
// process.
func Logger(logger logrus.FieldLogger) ReporterOption {
	return func(c *rmqReporter) {
		c.logger = logger
	}
}

// Exchange sets the Exchange used to send messages
func Exchange(exchange string) ReporterOption {
	return func(c *rmqReporter) {
		c.exchange = exchange
	}
}

// Queue sets the Queue used to send messages
func Queue(queue string) ReporterOption {
	return func(c *rmqReporter) {
		c.queue = queue
	}
}

// Channel sets the Channel used to send messages
func Channel(ch *amqp.Channel) ReporterOption {
	return func(c *rmqReporter) {
		c.channel = ch
	}
}

// Connection sets the Connection used to send messages
func Connection(conn *amqp.Connection) ReporterOption {
	return func(c *rmqReporter) {
		c.conn = conn
	}
}

// Serializer sets the serialization function to use for sending endpoint
// data.
func Serializer(s serializer.Serializer) ReporterOption {
	return func(c *rmqReporter) {
		if s != nil {
			c.serializer = s
		}
	}
}

// NewReporter returns a new RabbitMq-backed Reporter. address should be as described here: https://www.rabbitmq.com/uri-spec.html
func NewReporter(address string, options ...ReporterOption) (reporter.Reporter, error) {
	r := &rmqReporter{
		logger:     logrus.StandardLogger(),
		queue:      defaultRmqRoutingKey,
		exchange:   defaultRmqExchange,
		serializer: serializer.JSONSerializer{},
		e:          make(chan error),
	}

	for _, option := range options {
		option(r)
	}

	checks := []func() error{
		r.queueVerify,
		r.exchangeVerify,
		r.queueBindVerify,
	}

	var err error

	if r.conn == nil {
		r.conn, err = amqp.Dial(address)
		if err != nil {
			return nil, errors.Wrap(err, "dial rabbitmq")
		}
	}

	if r.channel == nil {
		r.channel, err = r.conn.Channel()
		if err != nil {
			return nil, errors.Wrap(err, "open channel")
		}
	}

	for i := 0; i < len(checks); i++ {
		if err := checks[i](); err != nil {
			return nil, err
		}
	}

	go r.logErrors()

	return r, nil
}

func (r *rmqReporter) logErrors() {
	for err := range r.e {
		r.logger.WithError(err).Error("failed to publish endpoint")
	}
}

func (r *rmqReporter) Send(npt model.NodePortTuple) {
	m, err := r.serializer.Serialize([]model.NodePortTuple{npt})
	if err != nil {
		r.e <- errors.Wrap(err, "failed when marshalling the endpoint")
		return
	}

	msg := amqp.Publishing{
		ContentType: r.serializer.ContentType(),
		Body:        m,
	}

	err = r.channel.PublishWithContext(context.Background(), r.exchange, r.queue, false, false, msg)
	if err != nil {
		r.e <- errors.Wrap(err, "failed when publishing the endpoint")
	}
}

func (r *rmqReporter) queueBindVerify() error {
	return r.channel.QueueBind(
		r.queue,
		r.queue,
		r.exchange,
		false,
		nil)
}

func (r *rmqReporter) exchangeVerify() error {
	return r.channel.ExchangeDeclare(
		r.exchange,
		defaultExchangeKind,
		true,
		false,
		false,
		false,
		nil,
	)
}

func (r *rmqReporter) queueVerify() error {
	_, err := r.channel.QueueDeclare(
		r.queue,
		true,
		false,
		false,
		false,
		nil,
	)
	return err
}

func (r *rmqReporter) Close() error {
	if err := r.channel.Close(); err != nil {
		return err
	}
	return r.conn.Close()
}
