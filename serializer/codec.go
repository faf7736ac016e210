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

import "google.golang.org/grpc/encoding"

// CodecName is the gRPC content-subtype of Codec.
const CodecName = "npt-json"

func init() {
	encoding.RegisterCodec(Codec{})
}

// Codec is a gRPC codec using the JSON wire format of registered types.
// A nil Registry uses DefaultRegistry.
type Codec struct {
	Registry *Registry
}

// Marshal implements encoding.Codec.
func (c Codec) Marshal(v any) ([]byte, error) {
	return c.registry().Marshal(v)
}

// Unmarshal implements encoding.Codec.
func (c Codec) Unmarshal(data []byte, v any) error {
	return c.registry().API().Unmarshal(data, v)
}

// Name implements encoding.Codec.
func (Codec) Name() string {
	return CodecName
}

func (c Codec) registry() *Registry {
	if c.Registry == nil {
		return DefaultRegistry
	}
	return c.Registry
}
