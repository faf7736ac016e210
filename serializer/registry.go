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
	"reflect"
	"sync"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
	"github.com/modern-go/reflect2"

	"github.com/floodlight/topology-go/model"
)

type encodeFunc func(ptr unsafe.Pointer, g *Generator) error

// wireConfig is the jsoniter configuration of every document this package
// writes, whether through a Registry or a standalone Generator.
var wireConfig = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}

// Registry maps Go types to the functions that serialize them. The mapping
// is frozen into a jsoniter.API the first time API is called; registering
// afterwards panics.
type Registry struct {
	mtx      sync.Mutex
	encoders map[reflect.Type]encodeFunc
	api      jsoniter.API
}

// DefaultRegistry has every model type of this module registered.
var DefaultRegistry = NewRegistry()

func init() {
	Register(DefaultRegistry, func(npt model.NodePortTuple, g *Generator) error {
		return SerializeNodePortTuple(npt, g)
	})
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{encoders: make(map[reflect.Type]encodeFunc)}
}

// Register routes values of type T to fn, which must write exactly one JSON
// value to g.
func Register[T any](r *Registry, fn func(v T, g *Generator) error) {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if r.api != nil {
		panic("serializer: Register on a frozen registry: " + typ.String())
	}
	r.encoders[typ] = func(ptr unsafe.Pointer, g *Generator) error {
		return fn(*(*T)(ptr), g)
	}
}

// Registered reports whether values of type T have a serializer.
func Registered[T any](r *Registry) bool {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	_, ok := r.encoders[reflect.TypeOf((*T)(nil)).Elem()]
	return ok
}

// API returns the jsoniter.API dispatching registered types to their
// serializers. Types without a serializer fall back to jsoniter's default
// encoding.
func (r *Registry) API() jsoniter.API {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if r.api == nil {
		encoders := make(map[reflect.Type]encodeFunc, len(r.encoders))
		for typ, fn := range r.encoders {
			encoders[typ] = fn
		}
		api := wireConfig.Froze()
		api.RegisterExtension(&registryExtension{encoders: encoders})
		r.api = api
	}
	return r.api
}

// Marshal returns the JSON encoding of v. An error returned by a registered
// serializer is returned as is, wherever the value sits in the document.
func (r *Registry) Marshal(v any) ([]byte, error) {
	api := r.API()
	stream := api.BorrowStream(nil)
	defer api.ReturnStream(stream)

	state := &encodeState{}
	stream.Attachment = state
	stream.WriteVal(v)
	if state.err != nil {
		return nil, state.err
	}
	if stream.Error != nil {
		return nil, stream.Error
	}
	b := make([]byte, len(stream.Buffer()))
	copy(b, stream.Buffer())
	return b, nil
}

// encodeState keeps the first serializer error of a Marshal call, unwrapped
// by the container encoders that rewrite stream.Error.
type encodeState struct {
	err error
}

type registryExtension struct {
	jsoniter.DummyExtension
	encoders map[reflect.Type]encodeFunc
}

func (e *registryExtension) CreateEncoder(typ reflect2.Type) jsoniter.ValEncoder {
	fn, ok := e.encoders[typ.Type1()]
	if !ok {
		return nil
	}
	return funcEncoder(fn)
}

type funcEncoder encodeFunc

func (funcEncoder) IsEmpty(unsafe.Pointer) bool { return false }

func (fn funcEncoder) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	err := fn(ptr, newStreamGenerator(stream))
	if err == nil {
		return
	}
	if state, ok := stream.Attachment.(*encodeState); ok && state.err == nil {
		state.err = err
	}
	if stream.Error == nil {
		stream.Error = err
	}
}
