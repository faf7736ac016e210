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
Package kafka implements a Kafka reporter to send edge endpoints to a Kafka
server/cluster.
*/
package kafka

import (
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/sirupsen/logrus"

	"github.com/floodlight/topology-go/model"
	"github.com/floodlight/topology-go/reporter"
	"github.com/floodlight/topology-go/serializer"
)

// defaults
const (
	defaultBatchInterval = time.Second * 1 // BatchInterval in seconds
	defaultBatchSize     = 100
	defaultMaxBacklog    = 1000
	defaultKafkaTopic    = "switchports"

	contentTypeHeader = "content-type"
)

// kafkaReporter implements Reporter by publishing endpoints to a Kafka
// broker.
type kafkaReporter struct {
	producer      sarama.AsyncProducer
	logger        logrus.FieldLogger
	topic         string
	serializer    serializer.Serializer
	batchInterval time.Duration
	batchSize     int
	maxBacklog    int
	batchMtx      *sync.Mutex
	batch         []model.NodePortTuple
	nptC          chan model.NodePortTuple
	sendC         chan struct{}
	quit          chan struct{}
	shutdown      chan error
}

// ReporterOption sets a parameter for the kafkaReporter
type ReporterOption func(c *kafkaReporter)

// Logger sets the logger used to report errors in the collection
// process.
func Logger(logger logrus.FieldLogger) ReporterOption {
	return func(c *kafkaReporter) {
		c.logger = logger
	}
}

// Producer sets the producer used to produce to Kafka.
func Producer(p sarama.AsyncProducer) ReporterOption {
	return func(c *kafkaReporter) {
		c.producer = p
	}
}

// BatchSize sets the maximum batch size, after which a collect will be
// triggered. The default batch size is 100 endpoints.
func BatchSize(n int) ReporterOption {
	return func(r *kafkaReporter) { r.batchSize = n }
}

// BatchInterval sets the maximum duration we will buffer endpoints before
// emitting them. The default batch interval is 1 second.
func BatchInterval(d time.Duration) ReporterOption {
	return func(r *kafkaReporter) { r.batchInterval = d }
}

// MaxBacklog sets the maximum backlog size. When batch size reaches this
// threshold, endpoints from the beginning of the batch will be disposed.
func MaxBacklog(n int) ReporterOption {
	return func(r *kafkaReporter) { r.maxBacklog = n }
}

// Topic sets the kafka topic to attach the reporter producer on.
func Topic(t string) ReporterOption {
	return func(c *kafkaReporter) {
		c.topic = t
	}
}

// Serializer sets the serialization function to use for sending endpoint
// data.
func Serializer(s serializer.Serializer) ReporterOption {
	return func(c *kafkaReporter) {
		if s != nil {
			c.serializer = s
		}
	}
}

// NewReporter returns a new Kafka-backed Reporter. address should be a slice of
// TCP endpoints of the form "host:port".
func NewReporter(address []string, options ...ReporterOption) (reporter.Reporter, error) {
	r := &kafkaReporter{
		logger:        logrus.StandardLogger(),
		topic:         defaultKafkaTopic,
		serializer:    serializer.JSONSerializer{},
		batchInterval: defaultBatchInterval,
		batchSize:     defaultBatchSize,
		maxBacklog:    defaultMaxBacklog,
		batch:         []model.NodePortTuple{},
		nptC:          make(chan model.NodePortTuple),
		sendC:         make(chan struct{}, 1),
		quit:          make(chan struct{}, 1),
		shutdown:      make(chan error, 1),
		batchMtx:      &sync.Mutex{},
	}

	for _, option := range options {
		option(r)
	}
	if r.producer == nil {
		p, err := sarama.NewAsyncProducer(address, nil)
		if err != nil {
			return nil, err
		}
		r.producer = p
	}

	go r.loop()
	go r.sendLoop()
	go r.logErrors()

	return r, nil
}

func (r *kafkaReporter) logErrors() {
	for pe := range r.producer.Errors() {
		r.logger.WithError(pe.Err).WithField("topic", pe.Msg.Topic).Error("failed to produce msg")
	}
}

func (r *kafkaReporter) Send(npt model.NodePortTuple) {
	r.nptC <- npt
}

func (r *kafkaReporter) Close() error {
	close(r.quit)
	<-r.shutdown
	return r.producer.Close()
}

func (r *kafkaReporter) loop() {
	var (
		nextSend   = time.Now().Add(r.batchInterval)
		ticker     = time.NewTicker(r.batchInterval / 10)
		tickerChan = ticker.C
	)
	defer ticker.Stop()

	for {
		select {
		case npt := <-r.nptC:
			currentBatchSize := r.append(npt)
			if currentBatchSize >= r.batchSize {
				nextSend = time.Now().Add(r.batchInterval)
				r.enqueueSend()
			}
		case <-tickerChan:
			if time.Now().After(nextSend) {
				nextSend = time.Now().Add(r.batchInterval)
				r.enqueueSend()
			}
		case <-r.quit:
			close(r.sendC)
			return
		}
	}
}

func (r *kafkaReporter) sendLoop() {
	for range r.sendC {
		_ = r.sendBatch()
	}
	r.shutdown <- r.sendBatch()
}

func (r *kafkaReporter) enqueueSend() {
	select {
	case r.sendC <- struct{}{}:
	default:
		// Do nothing if there's a pending send request already
	}
}

func (r *kafkaReporter) sendBatch() error {
	r.batchMtx.Lock()
	sendBatch := r.batch[:]
	r.batchMtx.Unlock()

	if len(sendBatch) == 0 {
		return nil
	}

	// One message per switch, keyed by datapath id, so a switch's ports
	// always land on the same partition in the order they were sent.
	var (
		order    []model.DatapathID
		bySwitch = make(map[model.DatapathID][]model.NodePortTuple)
	)
	for _, npt := range sendBatch {
		if _, ok := bySwitch[npt.NodeID]; !ok {
			order = append(order, npt.NodeID)
		}
		bySwitch[npt.NodeID] = append(bySwitch[npt.NodeID], npt)
	}

	var firstErr error
	for _, dpid := range order {
		m, err := r.serializer.Serialize(bySwitch[dpid])
		if err != nil {
			r.logger.WithError(err).WithField("switch", dpid.String()).
				Error("failed when marshalling the endpoints")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		r.producer.Input() <- &sarama.ProducerMessage{
			Topic: r.topic,
			Key:   sarama.StringEncoder(dpid.String()),
			Value: sarama.ByteEncoder(m),
			Headers: []sarama.RecordHeader{
				{Key: []byte(contentTypeHeader), Value: []byte(r.serializer.ContentType())},
			},
		}
	}

	// Remove sent endpoints from the batch even if they were not saved
	r.batchMtx.Lock()
	r.batch = r.batch[len(sendBatch):]
	r.batchMtx.Unlock()
	return firstErr
}

func (r *kafkaReporter) append(npt model.NodePortTuple) (newBatchSize int) {
	r.batchMtx.Lock()

	r.batch = append(r.batch, npt)
	if len(r.batch) > r.maxBacklog {
		dispose := len(r.batch) - r.maxBacklog
		r.logger.Warnf("backlog too long, disposing %d endpoints", dispose)
		r.batch = r.batch[dispose:]
	}
	newBatchSize = len(r.batch)

	r.batchMtx.Unlock()
	return
}
