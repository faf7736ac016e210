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
Package web exposes edge endpoints over the controller's REST API.
*/
package web

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/floodlight/topology-go/model"
	"github.com/floodlight/topology-go/serializer"
)

// DefaultPath is where the switch port list is served by default.
const DefaultPath = "/wm/topology/switchports/json"

// Lister supplies the endpoints a handler serves.
type Lister interface {
	SwitchPorts(ctx context.Context) ([]model.NodePortTuple, error)
}

// ListerFunc adapts a function to the Lister interface.
type ListerFunc func(ctx context.Context) ([]model.NodePortTuple, error)

// SwitchPorts implements Lister.
func (f ListerFunc) SwitchPorts(ctx context.Context) ([]model.NodePortTuple, error) {
	return f(ctx)
}

// StaticLister serves a fixed list of endpoints.
type StaticLister []model.NodePortTuple

// SwitchPorts implements Lister.
func (s StaticLister) SwitchPorts(context.Context) ([]model.NodePortTuple, error) {
	return s, nil
}

type handler struct {
	lister         Lister
	logger         logrus.FieldLogger
	flushThreshold int
}

// HandlerOption allows the handler to be optionally configured.
type HandlerOption func(*handler)

// Logger sets the logger used to report failed responses.
func Logger(l logrus.FieldLogger) HandlerOption {
	return func(h *handler) { h.logger = l }
}

// FlushThreshold sets how many bytes are buffered before they are written
// to the client. See serializer.FlushThreshold.
func FlushThreshold(n int) HandlerOption {
	return func(h *handler) { h.flushThreshold = n }
}

// NewSwitchPortHandler returns a http.Handler answering GET requests with
// the JSON array of the endpoints returned by lister.
func NewSwitchPortHandler(lister Lister, options ...HandlerOption) http.Handler {
	h := &handler{
		lister:         lister,
		logger:         logrus.StandardLogger(),
		flushThreshold: 4096,
	}
	for _, option := range options {
		option(h)
	}
	return h
}

// ServeHTTP implements http.Handler.
func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	npts, err := h.lister.SwitchPorts(r.Context())
	if err != nil {
		h.logger.WithError(err).WithField("path", r.URL.Path).Error("failed to list switch ports")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}

	g := serializer.NewGenerator(w, serializer.FlushThreshold(h.flushThreshold))
	if err = writeSwitchPorts(g, npts); err != nil {
		// the status line may already be out; the client sees a truncated body
		h.logger.WithError(err).WithField("path", r.URL.Path).Warn("abandoned switch port response")
	}
}

func writeSwitchPorts(g *serializer.Generator, npts []model.NodePortTuple) error {
	if err := g.WriteStartArray(); err != nil {
		return err
	}
	for _, npt := range npts {
		if err := serializer.SerializeNodePortTuple(npt, g); err != nil {
			return err
		}
	}
	if err := g.WriteEndArray(); err != nil {
		return err
	}
	return g.Close()
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	g := serializer.NewGenerator(w)
	_ = g.WriteStartObject()
	_ = g.WriteStringField("error", msg)
	_ = g.WriteEndObject()
	_ = g.Close()
}
