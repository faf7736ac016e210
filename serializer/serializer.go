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
	"github.com/cockroachdb/errors"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/floodlight/topology-go/model"
)

// Serializer describes the methods needed for allowing to set the edge
// endpoint encoding of the various reporters.
type Serializer interface {
	Serialize([]model.NodePortTuple) ([]byte, error)
	ContentType() string
}

// JSONSerializer implements the default JSON encoding Serializer. A nil
// Registry uses DefaultRegistry.
type JSONSerializer struct {
	Registry *Registry
}

// Serialize returns the JSON array of the given endpoints.
func (s JSONSerializer) Serialize(npts []model.NodePortTuple) ([]byte, error) {
	r := s.Registry
	if r == nil {
		r = DefaultRegistry
	}
	if npts == nil {
		npts = []model.NodePortTuple{}
	}
	return r.Marshal(npts)
}

// ContentType returns the ContentType needed for this encoding.
func (JSONSerializer) ContentType() string {
	return "application/json"
}

// ProtoSerializer encodes endpoints as a google.protobuf.ListValue of
// Structs carrying the same two string fields as the JSON form.
type ProtoSerializer struct{}

// Serialize returns the deterministic protobuf encoding of the endpoints.
func (ProtoSerializer) Serialize(npts []model.NodePortTuple) ([]byte, error) {
	list := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(npts))}
	for _, npt := range npts {
		list.Values = append(list.Values, structpb.NewStructValue(&structpb.Struct{
			Fields: map[string]*structpb.Value{
				FieldSwitch: structpb.NewStringValue(npt.NodeID.String()),
				FieldPort:   structpb.NewStringValue(npt.PortID.String()),
			},
		}))
	}
	return proto.MarshalOptions{Deterministic: true}.Marshal(list)
}

// ContentType returns the ContentType needed for this encoding.
func (ProtoSerializer) ContentType() string {
	return "application/x-protobuf"
}

// ParseProtoNodePortTuples decodes endpoints produced by ProtoSerializer.
func ParseProtoNodePortTuples(b []byte) ([]model.NodePortTuple, error) {
	var list structpb.ListValue
	if err := proto.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	npts := make([]model.NodePortTuple, 0, len(list.Values))
	for i, v := range list.Values {
		s := v.GetStructValue()
		if s == nil {
			return nil, errors.Newf("element %d: expected a struct", i)
		}
		npt, err := model.NewNodePortTuple(
			s.Fields[FieldSwitch].GetStringValue(),
			s.Fields[FieldPort].GetStringValue(),
		)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		npts = append(npts, npt)
	}
	return npts, nil
}
