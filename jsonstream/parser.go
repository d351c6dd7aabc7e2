// Copyright 2026 The pistis-json-go Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package jsonstream

import (
	"github.com/tomault/pistis-json-go/charset"
	"github.com/tomault/pistis-json-go/source"
	"github.com/tomault/pistis-json-go/streamreader"
)

// DefaultChunkSize matches streamreader's own default and the teacher's
// common.ReadWriteBlockSize sizing convention.
const DefaultChunkSize = streamreader.DefaultChunkSize

type config struct {
	chunkSize     int
	maxStringSize int
	maxDepth      int
	encoder       charset.Encoder
	log           Logger
}

// Option configures a Parser at construction time.
type Option func(*config)

// WithChunkSize overrides the reader's buffer growth increment.
func WithChunkSize(n int) Option {
	return func(c *config) { c.chunkSize = n }
}

// WithMaxStringSize bounds the decoded-string accumulator used for
// escape-laden strings (0 means unbounded).
func WithMaxStringSize(n int) Option {
	return func(c *config) { c.maxStringSize = n }
}

// WithEncoder overrides the \uXXXX escape encoder (defaults to UTF-8).
func WithEncoder(e charset.Encoder) Option {
	return func(c *config) { c.encoder = e }
}

// WithLogger attaches a sink for per-event tracing, useful when
// diagnosing AGAIN/resume behavior across chunk boundaries.
func WithLogger(l Logger) Option {
	return func(c *config) { c.log = l }
}

// WithMaxDepth bounds how many nested arrays/objects an EventStream will
// descend into before reporting an error. Zero (the default) is
// unbounded; the source places no limit here, so this is purely a guard
// against adversarial nesting.
func WithMaxDepth(n int) Option {
	return func(c *config) { c.maxDepth = n }
}

// Parser constructs EventStreams sharing a PayloadFactory and a fixed set
// of reader options, mirroring FlexibleStreamingJsonParser's surface.
type Parser[I, F, S any] struct {
	factory PayloadFactory[I, F, S]
	cfg     config
}

// NewParser creates a Parser that will hand token text to factory.
func NewParser[I, F, S any](factory PayloadFactory[I, F, S], opts ...Option) *Parser[I, F, S] {
	cfg := config{chunkSize: DefaultChunkSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Parser[I, F, S]{factory: factory, cfg: cfg}
}

// ParseStream builds an EventStream over an arbitrary byte source. name
// is used only for diagnostics.
func (p *Parser[I, F, S]) ParseStream(name string, src source.Source) *EventStream[I, F, S] {
	reader := streamreader.New(src, p.cfg.chunkSize, p.cfg.maxStringSize, p.cfg.encoder)
	return newEventStream(name, reader, p.factory, p.cfg.log, p.cfg.maxDepth)
}

// ParseFile opens path and builds an EventStream over its contents,
// using path as the stream name.
func (p *Parser[I, F, S]) ParseFile(path string) (*EventStream[I, F, S], error) {
	src, err := source.NewFile(path)
	if err != nil {
		return nil, err
	}
	return p.ParseStream(path, src), nil
}

// ParseString builds an EventStream over an in-memory document.
func (p *Parser[I, F, S]) ParseString(name, text string) *EventStream[I, F, S] {
	return p.ParseStream(name, source.NewString(text))
}
