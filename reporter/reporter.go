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
Package reporter holds the Reporter interface used to publish edge endpoints
to consumers outside the controller.

Subpackages of package reporter contain the supported reporter
implementations.
*/
package reporter

import "github.com/floodlight/topology-go/model"

// Reporter interface can be used to provide custom implementations to
// publish edge endpoints.
type Reporter interface {
	Send(model.NodePortTuple) // Send an edge endpoint to the reporter
	Close() error             // Close the reporter
}

type noopReporter struct{}

func (noopReporter) Send(model.NodePortTuple) {}
func (noopReporter) Close() error             { return nil }

// NewNoopReporter returns a no-op Reporter implementation.
func NewNoopReporter() Reporter {
	return noopReporter{}
}
