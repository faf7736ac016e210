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
	"encoding/json"

	"github.com/onsi/gomega"
)

func mustStdJSON(v any) string {
	b, err := json.Marshal(v)
	gomega.Expect(err).ToNot(gomega.HaveOccurred())
	return string(b)
}
