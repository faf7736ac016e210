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
Package recorder implements a reporter to record edge endpoints in memory.
*/
package recorder

import (
	"sync"

	"github.com/floodlight/topology-go/model"
)

// Reporter records edge endpoints.
type Reporter struct {
	mtx  sync.Mutex
	npts []model.NodePortTuple
}

// NewReporter returns a new recording reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Send adds the provided endpoint to the list held by the recorder.
func (r *Reporter) Send(npt model.NodePortTuple) {
	r.mtx.Lock()
	r.npts = append(r.npts, npt)
	r.mtx.Unlock()
}

// Flush returns all recorded endpoints and clears the internal storage.
func (r *Reporter) Flush() []model.NodePortTuple {
	r.mtx.Lock()
	npts := r.npts
	r.npts = nil
	r.mtx.Unlock()
	return npts
}

// Close flushes the reporter
func (r *Reporter) Close() error {
	_ = r.Flush()
	return nil
}
