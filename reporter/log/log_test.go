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

package log_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/floodlight/topology-go/model"
	zlog "github.com/floodlight/topology-go/reporter/log"
)

type failingSerializer struct{}

func (failingSerializer) Serialize([]model.NodePortTuple) ([]byte, error) {
	return nil, errors.New("nope")
}

func (failingSerializer) ContentType() string { return "text/plain" }

func TestLogReporterWritesLines(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.Out = &buf
	l.Formatter = new(zlog.LineFormatter)

	r := zlog.NewReporter(zlog.Logger(l))
	r.Send(model.NodePortTuple{NodeID: 1, PortID: 2})
	r.Send(model.NodePortTuple{NodeID: 2, PortID: model.PortLocal})
	if err := r.Close(); err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}

	want := `[{"switch":"00:00:00:00:00:00:00:01","port":"2"}]` + "\n" +
		`[{"switch":"00:00:00:00:00:00:00:02","port":"local"}]` + "\n"
	if have := buf.String(); want != have {
		t.Errorf("want %q, have %q", want, have)
	}
}

func TestLogReporterSerializeFailure(t *testing.T) {
	l, hook := test.NewNullLogger()

	r := zlog.NewReporter(zlog.Logger(l), zlog.Serializer(failingSerializer{}))
	r.Send(model.NodePortTuple{NodeID: 1, PortID: 2})

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("expected a log entry")
	}
	if want, have := logrus.WarnLevel, entry.Level; want != have {
		t.Errorf("want level %s, have %s", want, have)
	}
	if want, have := "[id=00:00:00:00:00:00:00:01, port=2]", entry.Data["endpoint"]; want != have {
		t.Errorf("want endpoint %q, have %v", want, have)
	}
}
