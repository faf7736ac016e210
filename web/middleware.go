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

package web

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

type accessLog struct {
	logger logrus.FieldLogger
	next   http.Handler
}

// LogRequests wraps h so every request is logged at debug level with its
// status code, response size and duration.
func LogRequests(logger logrus.FieldLogger, h http.Handler) http.Handler {
	return &accessLog{logger: logger, next: h}
}

// ServeHTTP implements http.Handler.
func (a accessLog) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ri := &rwInterceptor{w: w, statusCode: http.StatusOK}

	defer func() {
		a.logger.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"remote":   r.RemoteAddr,
			"status":   ri.statusCode,
			"size":     atomic.LoadUint64(&ri.size),
			"duration": time.Since(start),
		}).Debug("request served")
	}()

	a.next.ServeHTTP(ri, r)
}

// rwInterceptor intercepts the ResponseWriter so it can track response size
// and returned status code.
type rwInterceptor struct {
	w          http.ResponseWriter
	size       uint64
	statusCode int
}

func (r *rwInterceptor) Header() http.Header {
	return r.w.Header()
}

func (r *rwInterceptor) Write(b []byte) (n int, err error) {
	n, err = r.w.Write(b)
	atomic.AddUint64(&r.size, uint64(n))
	return
}

func (r *rwInterceptor) WriteHeader(i int) {
	r.statusCode = i
	r.w.WriteHeader(i)
}
