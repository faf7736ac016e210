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

package recorder

import (
	"testing"

	"github.com/floodlight/topology-go/model"
)

func TestFlushInRecorderSuccess(t *testing.T) {
	rec := NewReporter()

	npt := model.NodePortTuple{NodeID: 1, PortID: 2}
	rec.Send(npt)

	if len(rec.npts) != 1 {
		t.Fatalf("Endpoint Count want 1, have %d", len(rec.npts))
	}

	flushed := rec.Flush()
	if len(flushed) != 1 || flushed[0] != npt {
		t.Fatalf("Flush want [%s], have %v", npt, flushed)
	}

	if len(rec.npts) != 0 {
		t.Fatalf("Endpoint Count want 0, have %d", len(rec.npts))
	}
}

func TestCloseInRecorderSuccess(t *testing.T) {
	rec := NewReporter()

	rec.Send(model.NodePortTuple{})

	if len(rec.npts) != 1 {
		t.Fatalf("Endpoint Count want 1, have %d", len(rec.npts))
	}

	if err := rec.Close(); err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}

	if len(rec.npts) != 0 {
		t.Fatalf("Endpoint Count want 0, have %d", len(rec.npts))
	}
}
