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

package serializer_test

import (
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"google.golang.org/grpc/encoding"

	"github.com/floodlight/topology-go/model"
	"github.com/floodlight/topology-go/serializer"
)

var npts = []model.NodePortTuple{
	{NodeID: 1, PortID: 1},
	{NodeID: 1, PortID: model.PortLocal},
	{NodeID: 0x0a0b0c0d, PortID: 48},
}

func TestJSONSerializer(t *testing.T) {
	var s serializer.Serializer = serializer.JSONSerializer{}

	b, err := s.Serialize(nil)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if want, have := "[]", string(b); want != have {
		t.Errorf("want %s, have %s", want, have)
	}

	b, err = s.Serialize(npts[:2])
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	want := `[{"switch":"00:00:00:00:00:00:00:01","port":"1"},{"switch":"00:00:00:00:00:00:00:01","port":"local"}]`
	if have := string(b); want != have {
		t.Errorf("want %s, have %s", want, have)
	}
}

func TestProtoSerializer(t *testing.T) {
	var s serializer.Serializer = serializer.ProtoSerializer{}
	if want, have := "application/x-protobuf", s.ContentType(); want != have {
		t.Errorf("want %s, have %s", want, have)
	}

	b, err := s.Serialize(npts)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	again, err := s.Serialize(npts)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if string(b) != string(again) {
		t.Errorf("expected deterministic output")
	}

	have, err := serializer.ParseProtoNodePortTuples(b)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if !reflect.DeepEqual(npts, have) {
		t.Errorf("want %s, have %s", spew.Sdump(npts), spew.Sdump(have))
	}

	if _, err = serializer.ParseProtoNodePortTuples([]byte{0xff}); err == nil {
		t.Errorf("Expected error got nil")
	}
}

func TestGRPCCodec(t *testing.T) {
	c := encoding.GetCodec(serializer.CodecName)
	if c == nil {
		t.Fatalf("codec %q not registered", serializer.CodecName)
	}

	b, err := c.Marshal(npts)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}

	var have []model.NodePortTuple
	if err = c.Unmarshal(b, &have); err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if !reflect.DeepEqual(npts, have) {
		t.Errorf("want %s, have %s", spew.Sdump(npts), spew.Sdump(have))
	}
}
