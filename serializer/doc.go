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
Package serializer renders controller types in the JSON wire format of the
REST API.

SerializeNodePortTuple is the canonical encoder for edge endpoints. It writes
through an ObjectWriter, normally a Generator streaming to an io.Writer.
Registry binds such encoders to Go types so they are used wherever the type
appears inside a larger document marshaled through Registry.API.
*/
package serializer
