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
Package log implements a reporter writing edge endpoints in their JSON wire
format through a logrus Logger, one array per line.
*/
package log

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/floodlight/topology-go/model"
	"github.com/floodlight/topology-go/reporter"
	"github.com/floodlight/topology-go/serializer"
)

// logReporter will send endpoints to a logrus Logger.
type logReporter struct {
	logger     *logrus.Logger
	serializer serializer.Serializer
}

// LineFormatter renders only the entry message followed by a newline.
type LineFormatter struct{}

// Format renders a single log entry
func (f *LineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	b := make([]byte, 0, len(entry.Message)+1)
	b = append(b, entry.Message...)
	return append(b, '\n'), nil
}

// ReporterOption sets a parameter for the logReporter
type ReporterOption func(r *logReporter)

// Logger sets the logger endpoints are written to.
func Logger(l *logrus.Logger) ReporterOption {
	return func(r *logReporter) {
		if l != nil {
			r.logger = l
		}
	}
}

// Serializer sets the serialization used for each log line. It should
// produce text.
func Serializer(s serializer.Serializer) ReporterOption {
	return func(r *logReporter) {
		if s != nil {
			r.serializer = s
		}
	}
}

// NewReporter returns a new log reporter. Without the Logger option it
// writes to stderr.
func NewReporter(options ...ReporterOption) reporter.Reporter {
	r := &logReporter{
		logger: &logrus.Logger{
			Out:       os.Stderr,
			Formatter: new(LineFormatter),
			Hooks:     make(logrus.LevelHooks),
			Level:     logrus.InfoLevel,
		},
		serializer: serializer.JSONSerializer{},
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// Send outputs an endpoint to the logger.
func (r *logReporter) Send(npt model.NodePortTuple) {
	b, err := r.serializer.Serialize([]model.NodePortTuple{npt})
	if err != nil {
		r.logger.WithError(err).WithField("endpoint", npt.String()).Warn("failed to serialize endpoint")
		return
	}
	r.logger.Info(string(b))
}

// Close closes the reporter
func (*logReporter) Close() error { return nil }
