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

// Package streamreader implements the sliding-window byte reader and the
// three resumable token recognizers (string, number, keyword) that sit
// beneath the structural state machine in package jsonstream. The reader
// never blocks: whenever its source reports it would block, a recognizer
// saves enough state to resume at the identical byte on the next call.
package streamreader

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/tomault/pistis-json-go/charset"
	"github.com/tomault/pistis-json-go/events"
	"github.com/tomault/pistis-json-go/growbuf"
	"github.com/tomault/pistis-json-go/source"
)

// DefaultChunkSize is the buffer growth increment used when an explicit
// chunk size isn't supplied to New.
const DefaultChunkSize = 4096

// LookAheadStatus reports the outcome of a LookAhead call.
type LookAheadStatus int

const (
	// Ready means a non-whitespace byte is available at the cursor; call
	// Char to read it.
	Ready LookAheadStatus = iota
	// Again means the source has no bytes right now; try later.
	Again
	// EndOfStream means the source is exhausted.
	EndOfStream
)

// ErrMisaligned indicates a recognizer was invoked when the cursor was not
// positioned at that token's lead byte, which signals a bug in the caller
// (jsonstream's dispatch). RecognizeWord also reports it when the bytes
// after the lead do not spell the expected keyword, when the stream ends
// inside the keyword, or when an alphanumeric byte follows it.
var ErrMisaligned = errors.New("streamreader: misaligned recognizer")

type fillResult int

const (
	fillFilled fillResult = iota
	fillAgain
	fillEOF
	fillError
)

// snapshot is the (cursor, lineStart, lineNumber) triple captured before an
// operation that might need to resume later -- either to anchor an
// in-progress token across a refill, or to revert the reader's externally
// visible cursor to the token's start before reporting Again.
type snapshot struct {
	cursor     int
	lineStart  uint64
	lineNumber uint32
}

// Reader is a non-blocking, resumable sliding-window byte reader over a
// source.Source, with the three JSON token recognizers built on top of it.
type Reader struct {
	src     source.Source
	encoder charset.Encoder

	buf            []byte
	bufEnd         int
	cursor         int
	chunkSize      int
	extensionLimit int

	baseOffset uint64
	lineStart  uint64
	lineNumber uint32

	saved snapshot

	stringBuf      *growbuf.Buffer
	lastCopyAnchor int

	numberState int
	numberKind  events.Kind

	readErr error
}

// New creates a Reader pulling from src. chunkSize controls both the
// initial buffer size and the refill granularity; maxStringSize bounds the
// decoded-string accumulator (0 means unbounded). A nil encoder defaults
// to charset.UTF8Encoder{}.
func New(src source.Source, chunkSize, maxStringSize int, encoder charset.Encoder) *Reader {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if encoder == nil {
		encoder = charset.UTF8Encoder{}
	}
	return &Reader{
		src:            src,
		encoder:        encoder,
		buf:            make([]byte, chunkSize),
		chunkSize:      chunkSize,
		extensionLimit: chunkSize - (chunkSize >> 8),
		lineNumber:     1,
		stringBuf:      growbuf.New(chunkSize, maxStringSize),
		lastCopyAnchor: -1,
		numberKind:     events.IntValue,
	}
}

// Close releases the reader's internal buffers, and closes the source if
// it implements io.Closer.
func (r *Reader) Close() error {
	r.stringBuf.Release()
	if c, ok := r.src.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// Position returns the origin of the byte at the cursor.
func (r *Reader) Position() events.Origin {
	offset := r.baseOffset + uint64(r.cursor)
	return events.Origin{
		Line:   r.lineNumber,
		Column: uint32(offset-r.lineStart) + 1,
		Offset: offset,
	}
}

func (r *Reader) snapshot() snapshot {
	return snapshot{cursor: r.cursor, lineStart: r.lineStart, lineNumber: r.lineNumber}
}

func (r *Reader) restore(s snapshot) {
	r.cursor = s.cursor
	r.lineStart = s.lineStart
	r.lineNumber = s.lineNumber
}

// LookAhead skips ASCII whitespace, updating line tracking on '\n', and
// reports the next significant byte without consuming it.
func (r *Reader) LookAhead() (byte, LookAheadStatus, error) {
	for {
		if r.cursor == r.bufEnd {
			switch r.fillBuffer(nil) {
			case fillAgain:
				return 0, Again, nil
			case fillEOF:
				return 0, EndOfStream, nil
			case fillError:
				return 0, EndOfStream, r.readErr
			}
		}

		c := r.buf[r.cursor]
		switch c {
		case '\n':
			r.lineNumber++
			r.cursor++
			r.lineStart = r.baseOffset + uint64(r.cursor)
		case ' ', '\t', '\r':
			r.cursor++
		default:
			return c, Ready, nil
		}
	}
}

// Advance unconditionally moves the cursor forward one byte. The caller
// must have confirmed (via LookAhead) that the cursor is not at bufEnd.
func (r *Reader) Advance() {
	r.cursor++
}

// fillBuffer refills the window. With anchor == nil, the consumed prefix
// is discarded entirely. With a non-nil anchor, bytes from anchor.cursor
// onward (an in-progress token) are preserved, shifting down or, past the
// extension threshold, into a freshly grown buffer; anchor.cursor is
// updated in place to track the new location.
func (r *Reader) fillBuffer(anchor *snapshot) fillResult {
	if anchor == nil {
		r.baseOffset += uint64(r.bufEnd)
		r.bufEnd = 0
		r.cursor = 0

		n, again, err := r.src.Read(r.buf)
		return r.applyReadResult(n, again, err)
	}

	preserve := anchor.cursor
	numToKeep := r.bufEnd - preserve
	numToRemove := preserve

	if len(r.buf)-numToKeep >= r.extensionLimit {
		copy(r.buf, r.buf[preserve:r.bufEnd])
		r.bufEnd -= numToRemove
		r.cursor = r.bufEnd
		r.baseOffset += uint64(numToRemove)
		anchor.cursor = 0
	} else {
		newBuf := make([]byte, len(r.buf)+r.chunkSize)
		copy(newBuf, r.buf[preserve:r.bufEnd])
		r.buf = newBuf
		r.bufEnd = numToKeep
		r.cursor = r.bufEnd
		r.baseOffset += uint64(numToRemove)
		anchor.cursor = 0
	}

	n, again, err := r.src.Read(r.buf[r.bufEnd:])
	return r.applyReadResult(n, again, err)
}

func (r *Reader) applyReadResult(n int, again bool, err error) fillResult {
	if err != nil {
		r.readErr = err
		return fillError
	}
	if again {
		return fillAgain
	}
	if n == 0 {
		return fillEOF
	}
	r.bufEnd += n
	return fillFilled
}

func (r *Reader) misaligned(kind string) error {
	return errors.Wrapf(ErrMisaligned, "not aligned to %s at %s", kind, r.Position())
}

func (r *Reader) misalignedAt(origin events.Origin, kind string) error {
	return errors.Wrapf(ErrMisaligned, "not aligned to %s at %s", kind, origin)
}

// ParseError is returned by a recognizer when the token itself is
// malformed (as opposed to the source simply running dry).
type ParseError struct {
	Origin events.Origin
	Name   string
	Detail string
}

func (e *ParseError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("Error on line %d, column %d (offset %d): %s",
			e.Origin.Line, e.Origin.Column, e.Origin.Offset, e.Detail)
	}
	return fmt.Sprintf("Error on line %d, column %d (offset %d) of %s: %s",
		e.Origin.Line, e.Origin.Column, e.Origin.Offset, e.Name, e.Detail)
}

func (r *Reader) parseErr(origin events.Origin, detail string) error {
	return &ParseError{Origin: origin, Detail: detail}
}
