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

package model

import "fmt"

// NodePortTuple names one end of a link: a port on a switch.
//
// The json tags mirror the field names and order the serializer package
// writes, so the plain encoding/json rendering of a NodePortTuple matches
// the REST wire format.
type NodePortTuple struct {
	NodeID DatapathID `json:"switch"`
	PortID Port       `json:"port"`
}

// NewNodePortTuple parses the string renderings of a switch and a port.
func NewNodePortTuple(dpid, port string) (NodePortTuple, error) {
	d, err := ParseDatapathID(dpid)
	if err != nil {
		return NodePortTuple{}, err
	}
	p, err := ParsePort(port)
	if err != nil {
		return NodePortTuple{}, err
	}
	return NodePortTuple{NodeID: d, PortID: p}, nil
}

func (n NodePortTuple) String() string {
	return fmt.Sprintf("[id=%s, port=%s]", n.NodeID, n.PortID)
}
