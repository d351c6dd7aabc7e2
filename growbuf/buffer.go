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

// Package growbuf implements an owned, growable byte buffer used to hold
// decoded string content (escape sequences expanded) once a string token
// can no longer be returned as a zero-copy slice into the reader's window.
package growbuf

import (
	"github.com/pkg/errors"
	"github.com/valyala/bytebufferpool"
)

// ErrOutOfCapacity is returned when a write would grow the buffer past
// its configured maximum size.
var ErrOutOfCapacity = errors.New("growbuf: out of capacity")

const defaultInitialSize = 16

var pool bytebufferpool.Pool

// Buffer is an owned byte buffer that doubles its capacity on growth, up
// to maxSize. Reset shrinks the backing array back toward initialSize;
// Clear only resets the length, keeping whatever capacity was allocated.
type Buffer struct {
	buf         []byte
	initialSize int
	maxSize     int
	pooled      *bytebufferpool.ByteBuffer
}

// New creates a Buffer whose backing array starts at initialSize bytes
// and never grows past maxSize. A maxSize of 0 means unbounded.
func New(initialSize, maxSize int) *Buffer {
	if initialSize <= 0 {
		initialSize = defaultInitialSize
	}
	pb := pool.Get()
	if cap(pb.B) < initialSize {
		pb.B = make([]byte, 0, initialSize)
	}
	return &Buffer{
		buf:         pb.B[:0:initialSize],
		initialSize: initialSize,
		maxSize:     maxSize,
		pooled:      pb,
	}
}

// Len returns the number of bytes currently written.
func (b *Buffer) Len() int { return len(b.buf) }

// Cap returns the buffer's current allocated capacity.
func (b *Buffer) Cap() int { return cap(b.buf) }

// Bytes returns the written region. The returned slice aliases the
// buffer's backing array and is invalidated by the next Write, Clear, or
// Reset call.
func (b *Buffer) Bytes() []byte { return b.buf }

// WriteByte appends a single byte, growing the buffer if necessary.
func (b *Buffer) WriteByte(c byte) error {
	if len(b.buf) == cap(b.buf) {
		if err := b.grow(len(b.buf) + 1); err != nil {
			return err
		}
	}
	b.buf = append(b.buf, c)
	return nil
}

// Write appends p, growing the buffer as necessary.
func (b *Buffer) Write(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	need := len(b.buf) + len(p)
	if need > cap(b.buf) {
		if err := b.grow(need); err != nil {
			return err
		}
	}
	b.buf = append(b.buf, p...)
	return nil
}

// Clear resets the length to zero but retains the current allocation, so
// the next token decoded into this buffer reuses the same backing array.
func (b *Buffer) Clear() {
	b.buf = b.buf[:0]
}

// Reset clears the buffer and, if it grew past initialSize, releases the
// larger allocation and returns to a fresh initialSize-byte buffer. Unlike
// Clear, Reset is meant to be called between documents, not between
// tokens within one document.
func (b *Buffer) Reset() {
	if cap(b.buf) > b.initialSize {
		b.buf = make([]byte, 0, b.initialSize)
		return
	}
	b.buf = b.buf[:0]
}

// Release returns the buffer's backing array to the shared pool. The
// Buffer must not be used again afterward.
func (b *Buffer) Release() {
	if b.pooled == nil {
		return
	}
	b.pooled.B = b.buf[:0]
	pool.Put(b.pooled)
	b.pooled = nil
	b.buf = nil
}

func (b *Buffer) grow(minCap int) error {
	newCap := cap(b.buf)
	if newCap == 0 {
		newCap = b.initialSize
	}
	for newCap < minCap {
		newCap *= 2
	}
	if b.maxSize > 0 && newCap > b.maxSize {
		if minCap > b.maxSize {
			return errors.Wrapf(ErrOutOfCapacity, "need %d bytes, max is %d", minCap, b.maxSize)
		}
		newCap = b.maxSize
	}
	grown := make([]byte, len(b.buf), newCap)
	copy(grown, b.buf)
	b.buf = grown
	return nil
}
