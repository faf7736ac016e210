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

package serializer

import (
	"fmt"

	"github.com/floodlight/topology-go/model"
)

// Field names of a serialized edge endpoint. REST clients depend on both the
// names and the order in which they appear; do not reorder.
const (
	FieldSwitch = "switch"
	FieldPort   = "port"
)

// ObjectWriter is the subset of a JSON token writer needed to emit a flat
// object of string fields.
type ObjectWriter interface {
	WriteStartObject() error
	WriteStringField(name, value string) error
	WriteEndObject() error
}

// SerializeEdgeEndpoint writes {"switch":<switchID>,"port":<portID>} to w
// using the String rendering of each identifier. Errors from w are returned
// as is; a partially written object is left for the caller to discard.
func SerializeEdgeEndpoint(switchID, portID fmt.Stringer, w ObjectWriter) error {
	if err := w.WriteStartObject(); err != nil {
		return err
	}
	if err := w.WriteStringField(FieldSwitch, switchID.String()); err != nil {
		return err
	}
	if err := w.WriteStringField(FieldPort, portID.String()); err != nil {
		return err
	}
	return w.WriteEndObject()
}

// SerializeNodePortTuple writes npt to w as an edge endpoint object.
func SerializeNodePortTuple(npt model.NodePortTuple, w ObjectWriter) error {
	return SerializeEdgeEndpoint(npt.NodeID, npt.PortID, w)
}
