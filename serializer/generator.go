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
	"io"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
)

// ErrInvalidState is returned when a token would produce malformed JSON at
// the generator's current position.
var ErrInvalidState = errors.New("serializer: invalid generator state")

var generatorAPI = wireConfig.Froze()

// defaults
const (
	defaultBufferSize     = 512
	defaultFlushThreshold = 4096
)

type frameKind uint8

const (
	frameRoot frameKind = iota
	frameObject
	frameArray
)

type frame struct {
	kind  frameKind
	n     int  // values (or fields) written so far
	named bool // object field name written, value pending
}

// Generator is a streaming JSON token writer. It keeps track of container
// nesting and separators so callers only emit tokens. Root level values are
// separated by a newline.
//
// Once the underlying writer fails, every subsequent call returns that same
// error. A Generator is not safe for concurrent use.
type Generator struct {
	stream         *jsoniter.Stream
	stack          []frame
	bufferSize     int
	flushThreshold int
	embedded       bool
}

// GeneratorOption sets a parameter for the Generator.
type GeneratorOption func(g *Generator)

// BufferSize sets the initial size of the internal buffer.
func BufferSize(n int) GeneratorOption {
	return func(g *Generator) { g.bufferSize = n }
}

// FlushThreshold sets the number of buffered bytes after which a token
// triggers a write to the underlying writer. A threshold of 0 writes
// through on every token.
func FlushThreshold(n int) GeneratorOption {
	return func(g *Generator) { g.flushThreshold = n }
}

// NewGenerator returns a Generator writing to w.
func NewGenerator(w io.Writer, options ...GeneratorOption) *Generator {
	g := &Generator{
		bufferSize:     defaultBufferSize,
		flushThreshold: defaultFlushThreshold,
	}
	for _, option := range options {
		option(g)
	}
	g.stream = jsoniter.NewStream(generatorAPI, w, g.bufferSize)
	g.stack = []frame{{kind: frameRoot}}
	return g
}

// newStreamGenerator wraps a stream owned by a jsoniter encoder. It never
// flushes; the owner decides when bytes leave the buffer.
func newStreamGenerator(stream *jsoniter.Stream) *Generator {
	return &Generator{
		stream:   stream,
		stack:    []frame{{kind: frameRoot}},
		embedded: true,
	}
}

// WriteStartObject opens a JSON object.
func (g *Generator) WriteStartObject() error {
	if err := g.beforeValue(); err != nil {
		return err
	}
	g.stream.WriteObjectStart()
	g.stack = append(g.stack, frame{kind: frameObject})
	return g.after()
}

// WriteEndObject closes the innermost object.
func (g *Generator) WriteEndObject() error {
	if err := g.stream.Error; err != nil {
		return err
	}
	top := g.top()
	if top.kind != frameObject {
		return errors.Wrap(ErrInvalidState, "end of object outside an object")
	}
	if top.named {
		return errors.Wrap(ErrInvalidState, "end of object after a field name")
	}
	g.stream.WriteObjectEnd()
	g.stack = g.stack[:len(g.stack)-1]
	return g.after()
}

// WriteStartArray opens a JSON array.
func (g *Generator) WriteStartArray() error {
	if err := g.beforeValue(); err != nil {
		return err
	}
	g.stream.WriteArrayStart()
	g.stack = append(g.stack, frame{kind: frameArray})
	return g.after()
}

// WriteEndArray closes the innermost array.
func (g *Generator) WriteEndArray() error {
	if err := g.stream.Error; err != nil {
		return err
	}
	if g.top().kind != frameArray {
		return errors.Wrap(ErrInvalidState, "end of array outside an array")
	}
	g.stream.WriteArrayEnd()
	g.stack = g.stack[:len(g.stack)-1]
	return g.after()
}

// WriteFieldName writes the name of the next field of the innermost object.
func (g *Generator) WriteFieldName(name string) error {
	if err := g.stream.Error; err != nil {
		return err
	}
	top := g.top()
	if top.kind != frameObject {
		return errors.Wrapf(ErrInvalidState, "field %q outside an object", name)
	}
	if top.named {
		return errors.Wrapf(ErrInvalidState, "field %q follows a field name", name)
	}
	if top.n > 0 {
		g.stream.WriteMore()
	}
	g.stream.WriteObjectField(name)
	top.named = true
	top.n++
	return g.after()
}

// WriteString writes a JSON string value.
func (g *Generator) WriteString(value string) error {
	if err := g.beforeValue(); err != nil {
		return err
	}
	g.stream.WriteString(value)
	return g.after()
}

// WriteStringField writes a field name followed by a string value.
func (g *Generator) WriteStringField(name, value string) error {
	if err := g.WriteFieldName(name); err != nil {
		return err
	}
	return g.WriteString(value)
}

// Flush writes buffered bytes to the underlying writer.
func (g *Generator) Flush() error {
	if g.embedded {
		return g.stream.Error
	}
	return g.stream.Flush()
}

// Close verifies that every container has been closed and flushes.
func (g *Generator) Close() error {
	if err := g.stream.Error; err != nil {
		return err
	}
	if len(g.stack) > 1 {
		return errors.Wrapf(ErrInvalidState, "%d unclosed containers", len(g.stack)-1)
	}
	return g.Flush()
}

func (g *Generator) top() *frame {
	return &g.stack[len(g.stack)-1]
}

func (g *Generator) beforeValue() error {
	if err := g.stream.Error; err != nil {
		return err
	}
	top := g.top()
	switch top.kind {
	case frameObject:
		if !top.named {
			return errors.Wrap(ErrInvalidState, "object value without a field name")
		}
		top.named = false
		return nil
	case frameArray:
		if top.n > 0 {
			g.stream.WriteMore()
		}
	case frameRoot:
		if top.n > 0 {
			g.stream.WriteRaw("\n")
		}
	}
	top.n++
	return nil
}

func (g *Generator) after() error {
	if !g.embedded && g.stream.Buffered() >= g.flushThreshold {
		_ = g.stream.Flush()
	}
	return g.stream.Error
}
