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
	"bytes"
	"errors"
	"sync"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/floodlight/topology-go/model"
	"github.com/floodlight/topology-go/serializer"
)

var errBoom = errors.New("boom")

// scriptedWriter records every call and fails the one at index failAt.
type scriptedWriter struct {
	failAt int
	calls  []string
}

func (w *scriptedWriter) record(call string) error {
	w.calls = append(w.calls, call)
	if len(w.calls)-1 == w.failAt {
		return errBoom
	}
	return nil
}

func (w *scriptedWriter) WriteStartObject() error { return w.record("start") }

func (w *scriptedWriter) WriteStringField(name, value string) error {
	return w.record(name + "=" + value)
}

func (w *scriptedWriter) WriteEndObject() error { return w.record("end") }

type errWriter struct {
	writes int
}

func (w *errWriter) Write([]byte) (int, error) {
	w.writes++
	return 0, errBoom
}

type name string

func (n name) String() string { return string(n) }

type brokenID struct{}

func (brokenID) String() string { panic("broken id") }

func encode(npt model.NodePortTuple) string {
	var buf bytes.Buffer
	g := serializer.NewGenerator(&buf)
	gomega.Expect(serializer.SerializeNodePortTuple(npt, g)).To(gomega.Succeed())
	gomega.Expect(g.Close()).To(gomega.Succeed())
	return buf.String()
}

var _ = ginkgo.Describe("SerializeNodePortTuple", func() {
	ginkgo.It("writes the switch then the port", func() {
		npt := model.NodePortTuple{NodeID: 1, PortID: 2}
		gomega.Expect(encode(npt)).To(gomega.Equal(`{"switch":"00:00:00:00:00:00:00:01","port":"2"}`))
	})

	ginkgo.It("passes symbolic port names through", func() {
		npt := model.NodePortTuple{NodeID: 0xab, PortID: model.PortLocal}
		gomega.Expect(encode(npt)).To(gomega.Equal(`{"switch":"00:00:00:00:00:00:00:ab","port":"local"}`))
	})

	ginkgo.It("is deterministic across generators", func() {
		npt := model.NodePortTuple{NodeID: 0x0102030405060708, PortID: 48}
		gomega.Expect(encode(npt)).To(gomega.Equal(encode(npt)))
	})

	ginkgo.It("matches the encoding/json rendering of the model", func() {
		npt := model.NodePortTuple{NodeID: 7, PortID: model.PortController}
		gomega.Expect(encode(npt)).To(gomega.Equal(mustStdJSON(npt)))
	})

	ginkgo.It("emits exactly four tokens in order", func() {
		w := &scriptedWriter{failAt: -1}
		npt := model.NodePortTuple{NodeID: 1, PortID: 2}
		gomega.Expect(serializer.SerializeNodePortTuple(npt, w)).To(gomega.Succeed())
		gomega.Expect(w.calls).To(gomega.Equal([]string{
			"start",
			"switch=00:00:00:00:00:00:00:01",
			"port=2",
			"end",
		}))
	})

	ginkgo.DescribeTable("propagates writer failures unchanged",
		func(failAt int) {
			w := &scriptedWriter{failAt: failAt}
			err := serializer.SerializeNodePortTuple(model.NodePortTuple{NodeID: 1, PortID: 2}, w)
			gomega.Expect(err).To(gomega.BeIdenticalTo(errBoom))
			gomega.Expect(w.calls).To(gomega.HaveLen(failAt + 1))
		},
		ginkgo.Entry("start of object", 0),
		ginkgo.Entry("switch field", 1),
		ginkgo.Entry("port field", 2),
		ginkgo.Entry("end of object", 3),
	)

	ginkgo.It("stops at the first failed write of the underlying stream", func() {
		w := &errWriter{}
		g := serializer.NewGenerator(w, serializer.FlushThreshold(0))
		err := serializer.SerializeNodePortTuple(model.NodePortTuple{NodeID: 1, PortID: 2}, g)
		gomega.Expect(err).To(gomega.MatchError(errBoom))
		gomega.Expect(w.writes).To(gomega.Equal(1))
		gomega.Expect(g.Close()).To(gomega.MatchError(errBoom))
	})

	ginkgo.It("lets a failing identifier rendering escape unchanged", func() {
		w := &scriptedWriter{failAt: -1}
		gomega.Expect(func() {
			_ = serializer.SerializeEdgeEndpoint(brokenID{}, name("1"), w)
		}).To(gomega.PanicWith("broken id"))
		gomega.Expect(w.calls).To(gomega.Equal([]string{"start"}))
	})

	ginkgo.It("is safe for concurrent use with separate writers", func() {
		npt := model.NodePortTuple{NodeID: 42, PortID: model.PortFlood}
		want := encode(npt)

		var wg sync.WaitGroup
		results := make([]string, 32)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				defer ginkgo.GinkgoRecover()
				results[i] = encode(npt)
			}(i)
		}
		wg.Wait()
		for _, have := range results {
			gomega.Expect(have).To(gomega.Equal(want))
		}
	})
})

var _ = ginkgo.Describe("SerializeEdgeEndpoint", func() {
	ginkgo.It("accepts any identifier with a string rendering", func() {
		var buf bytes.Buffer
		g := serializer.NewGenerator(&buf)
		gomega.Expect(serializer.SerializeEdgeEndpoint(name("leaf-1"), name("eth0"), g)).To(gomega.Succeed())
		gomega.Expect(g.Flush()).To(gomega.Succeed())
		gomega.Expect(buf.String()).To(gomega.Equal(`{"switch":"leaf-1","port":"eth0"}`))
	})

	ginkgo.It("escapes renderings as JSON strings", func() {
		var buf bytes.Buffer
		g := serializer.NewGenerator(&buf)
		gomega.Expect(serializer.SerializeEdgeEndpoint(name(`a"b`), name("c\\d"), g)).To(gomega.Succeed())
		gomega.Expect(g.Flush()).To(gomega.Succeed())
		gomega.Expect(buf.String()).To(gomega.Equal(`{"switch":"a\"b","port":"c\\d"}`))
	})
})
