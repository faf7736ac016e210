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
Package http implements a HTTP reporter to POST batches of edge endpoints to
a REST collector.
*/
package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"

	"github.com/floodlight/topology-go/model"
	"github.com/floodlight/topology-go/reporter"
	"github.com/floodlight/topology-go/serializer"
)

// defaults
const (
	defaultTimeout       = 5 * time.Second // timeout for http request in seconds
	defaultBatchInterval = 1 * time.Second // BatchInterval in seconds
	defaultBatchSize     = 100
	defaultMaxBacklog    = 1000
	defaultMaxRetries    = 3
	defaultRetryInterval = 500 * time.Millisecond
)

// httpReporter will send endpoints to a REST collector.
type httpReporter struct {
	url           string
	client        *http.Client
	logger        logrus.FieldLogger
	batchInterval time.Duration
	batchSize     int
	maxBacklog    int
	maxRetries    uint64
	retryInterval time.Duration
	sendMtx       *sync.Mutex
	batchMtx      *sync.Mutex
	batch         []model.NodePortTuple
	nptC          chan model.NodePortTuple
	sendC         chan struct{}
	quit          chan struct{}
	shutdown      chan error
	reqCallback   RequestCallbackFn
	reqTimeout    time.Duration
	serializer    serializer.Serializer
}

// Send implements reporter
func (r *httpReporter) Send(npt model.NodePortTuple) {
	r.nptC <- npt
}

// Close implements reporter
func (r *httpReporter) Close() error {
	close(r.quit)
	return <-r.shutdown
}

func (r *httpReporter) loop() {
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

func (r *httpReporter) sendLoop() {
	for range r.sendC {
		_ = r.sendBatch()
	}
	r.shutdown <- r.sendBatch()
}

func (r *httpReporter) enqueueSend() {
	select {
	case r.sendC <- struct{}{}:
	default:
		// Do nothing if there's a pending send request already
	}
}

func (r *httpReporter) append(npt model.NodePortTuple) (newBatchSize int) {
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

func (r *httpReporter) sendBatch() error {
	// Select all current endpoints in the batch to be sent
	r.sendMtx.Lock()
	defer r.sendMtx.Unlock()

	r.batchMtx.Lock()
	sendBatch := r.batch[:]
	r.batchMtx.Unlock()

	if len(sendBatch) == 0 {
		return nil
	}

	body, err := r.serializer.Serialize(sendBatch)
	if err != nil {
		r.logger.WithError(err).Error("failed when marshalling the endpoints")
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.retryInterval
	b.MaxElapsedTime = 0
	err = backoff.Retry(func() error { return r.post(body) }, backoff.WithMaxRetries(b, r.maxRetries))
	if err != nil {
		r.logger.WithError(err).WithField("endpoints", len(sendBatch)).Error("failed to send the request")
	}

	// Remove sent endpoints from the batch even if they were not saved
	r.batchMtx.Lock()
	r.batch = r.batch[len(sendBatch):]
	r.batchMtx.Unlock()

	return err
}

func (r *httpReporter) post(body []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.reqTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", r.serializer.ContentType())
	if r.reqCallback != nil {
		r.reqCallback(req)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return errors.Newf("collector responded with %d", resp.StatusCode)
	case resp.StatusCode >= 300:
		return backoff.Permanent(errors.Newf("collector responded with %d", resp.StatusCode))
	}
	return nil
}

// RequestCallbackFn receives the initialized request from the Collector before
// sending it over the wire. This allows one to plug in additional headers or
// do other customization.
type RequestCallbackFn func(*http.Request)

// ReporterOption sets a parameter for the HTTP Reporter
type ReporterOption func(r *httpReporter)

// Timeout sets maximum timeout for http request.
func Timeout(duration time.Duration) ReporterOption {
	return func(r *httpReporter) { r.reqTimeout = duration }
}

// BatchSize sets the maximum batch size, after which a collect will be
// triggered. The default batch size is 100 endpoints.
func BatchSize(n int) ReporterOption {
	return func(r *httpReporter) { r.batchSize = n }
}

// MaxBacklog sets the maximum backlog size. When batch size reaches this
// threshold, endpoints from the beginning of the batch will be disposed.
func MaxBacklog(n int) ReporterOption {
	return func(r *httpReporter) { r.maxBacklog = n }
}

// BatchInterval sets the maximum duration we will buffer endpoints before
// emitting them to the collector. The default batch interval is 1 second.
func BatchInterval(d time.Duration) ReporterOption {
	return func(r *httpReporter) { r.batchInterval = d }
}

// MaxRetries sets how many times a failed POST is retried. Client errors
// (4xx) are never retried.
func MaxRetries(n uint64) ReporterOption {
	return func(r *httpReporter) { r.maxRetries = n }
}

// RetryInterval sets the delay before the first retry; later retries back
// off exponentially.
func RetryInterval(d time.Duration) ReporterOption {
	return func(r *httpReporter) { r.retryInterval = d }
}

// Client sets a custom http client to use.
func Client(client *http.Client) ReporterOption {
	return func(r *httpReporter) { r.client = client }
}

// RequestCallback registers a callback function to adjust the reporter
// *http.Request before it sends the request to the collector.
func RequestCallback(rc RequestCallbackFn) ReporterOption {
	return func(r *httpReporter) { r.reqCallback = rc }
}

// Logger sets the logger used to report errors in the collection
// process.
func Logger(l logrus.FieldLogger) ReporterOption {
	return func(r *httpReporter) { r.logger = l }
}

// Serializer sets the serialization function to use for sending endpoint
// data.
func Serializer(s serializer.Serializer) ReporterOption {
	return func(r *httpReporter) {
		if s != nil {
			r.serializer = s
		}
	}
}

// NewReporter returns a new HTTP Reporter.
// url should be the endpoint to send the endpoints to.
func NewReporter(url string, opts ...ReporterOption) reporter.Reporter {
	r := httpReporter{
		url:           url,
		logger:        logrus.StandardLogger(),
		client:        &http.Client{},
		batchInterval: defaultBatchInterval,
		batchSize:     defaultBatchSize,
		maxBacklog:    defaultMaxBacklog,
		maxRetries:    defaultMaxRetries,
		retryInterval: defaultRetryInterval,
		batch:         []model.NodePortTuple{},
		nptC:          make(chan model.NodePortTuple),
		sendC:         make(chan struct{}, 1),
		quit:          make(chan struct{}, 1),
		shutdown:      make(chan error, 1),
		sendMtx:       &sync.Mutex{},
		batchMtx:      &sync.Mutex{},
		reqTimeout:    defaultTimeout,
		serializer:    serializer.JSONSerializer{},
	}

	for _, opt := range opts {
		opt(&r)
	}

	go r.loop()
	go r.sendLoop()

	return &r
}
