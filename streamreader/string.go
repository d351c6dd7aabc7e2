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

package streamreader

import (
	"github.com/pkg/errors"

	"github.com/tomault/pistis-json-go/bytewindow"
	"github.com/tomault/pistis-json-go/events"
)

// NextString recognizes a string literal starting at the cursor, which
// must hold a double quote. On the first call for a token, pass
// resumed = false; if it returns (zero, false, nil), the source needs
// more data -- call again with resumed = true once more is available.
//
// Strings in this dialect tolerate a literal newline inside the quotes
// (see DESIGN.md); this matches the behavior of the source this reader
// was ported from rather than strict RFC 8259.
func (r *Reader) NextString(resumed bool) (bytewindow.Slice, bool, error) {
	if r.cursor == r.bufEnd || r.buf[r.cursor] != '"' {
		return bytewindow.Slice{}, false, r.misaligned("string")
	}

	anchor := r.snapshot()
	origin := r.Position()

	if resumed {
		r.restore(r.saved)
	} else {
		r.stringBuf.Clear()
		r.lastCopyAnchor = -1
		r.cursor++
	}

	for {
		if r.cursor == r.bufEnd {
			preShift := anchor.cursor
			res := r.fillBuffer(&anchor)
			if r.lastCopyAnchor >= 0 {
				r.lastCopyAnchor -= preShift
			}
			switch res {
			case fillAgain:
				r.saved = r.snapshot()
				r.restore(anchor)
				return bytewindow.Slice{}, false, nil
			case fillEOF:
				return bytewindow.Slice{}, false, r.parseErr(origin, "unterminated string")
			case fillError:
				return bytewindow.Slice{}, false, errors.Wrap(r.readErr, "streamreader: reading string")
			}
		}

		switch c := r.buf[r.cursor]; c {
		case '"':
			text, err := r.closeString(anchor)
			if err != nil {
				return bytewindow.Slice{}, false, err
			}
			r.cursor++
			return text, true, nil

		case '\n':
			r.lineNumber++
			r.lineStart = r.baseOffset + uint64(r.cursor) + 1
			r.cursor++

		case '\\':
			if r.lastCopyAnchor < 0 {
				r.lastCopyAnchor = anchor.cursor + 1
			}
			if err := r.flushRawRun(); err != nil {
				return bytewindow.Slice{}, false, err
			}
			r.lastCopyAnchor = r.cursor
			done, err := r.decodeEscapeSequence(&anchor, origin)
			if err != nil {
				return bytewindow.Slice{}, false, err
			}
			if !done {
				r.saved = r.snapshot()
				r.restore(anchor)
				return bytewindow.Slice{}, false, nil
			}
			r.lastCopyAnchor = r.cursor

		default:
			r.cursor++
		}
	}
}

// flushRawRun copies any unescaped bytes accumulated since lastCopyAnchor
// into stringBuf. It is a no-op when nothing new has accumulated.
func (r *Reader) flushRawRun() error {
	if r.cursor <= r.lastCopyAnchor {
		return nil
	}
	if err := r.stringBuf.Write(r.buf[r.lastCopyAnchor:r.cursor]); err != nil {
		return errors.Wrap(err, "streamreader: decoding string")
	}
	return nil
}

// closeString produces the final token text once the closing quote has
// been found. If any escape was seen, it flushes the final unescaped run
// (the text between the last escape and the closing quote) before
// returning the accumulated decoded buffer; otherwise the token is
// returned as a zero-copy slice of the raw buffer.
func (r *Reader) closeString(anchor snapshot) (bytewindow.Slice, error) {
	if r.lastCopyAnchor < 0 {
		return bytewindow.New(r.buf[anchor.cursor+1 : r.cursor]), nil
	}
	if err := r.flushRawRun(); err != nil {
		return bytewindow.Slice{}, err
	}
	return bytewindow.New(r.stringBuf.Bytes()), nil
}

// decodeEscapeSequence decodes a single escape sequence starting at the
// backslash already positioned at r.cursor, leaving the cursor one past
// the fully-consumed sequence on success. It returns done == false when
// the source ran dry mid-escape; the caller is responsible for saving
// state and returning Again in that case.
func (r *Reader) decodeEscapeSequence(anchor *snapshot, origin events.Origin) (bool, error) {
	r.cursor++ // consume '\'
	if r.cursor == r.bufEnd {
		switch r.fillBuffer(anchor) {
		case fillAgain:
			r.cursor--
			return false, nil
		case fillEOF:
			return false, r.parseErr(origin, "invalid escape sequence")
		case fillError:
			return false, errors.Wrap(r.readErr, "streamreader: reading escape sequence")
		}
	}

	switch r.buf[r.cursor] {
	case '"', '\\', '/':
		if err := r.stringBuf.WriteByte(r.buf[r.cursor]); err != nil {
			return false, errors.Wrap(err, "streamreader: decoding string")
		}
		r.cursor++
	case 'b':
		if err := r.stringBuf.WriteByte('\b'); err != nil {
			return false, errors.Wrap(err, "streamreader: decoding string")
		}
		r.cursor++
	case 'f':
		if err := r.stringBuf.WriteByte('\f'); err != nil {
			return false, errors.Wrap(err, "streamreader: decoding string")
		}
		r.cursor++
	case 'n':
		if err := r.stringBuf.WriteByte('\n'); err != nil {
			return false, errors.Wrap(err, "streamreader: decoding string")
		}
		r.cursor++
	case 'r':
		if err := r.stringBuf.WriteByte('\r'); err != nil {
			return false, errors.Wrap(err, "streamreader: decoding string")
		}
		r.cursor++
	case 't':
		if err := r.stringBuf.WriteByte('\t'); err != nil {
			return false, errors.Wrap(err, "streamreader: decoding string")
		}
		r.cursor++
	case 'u':
		return r.decodeHexSequence(anchor, origin)
	default:
		return false, r.parseErr(origin, "invalid escape sequence")
	}
	return true, nil
}

// decodeHexSequence decodes the 4 hex digits of a \uXXXX escape, with the
// 'u' already positioned at r.cursor. It assembles the digits MSB-first,
// reading the next hex digit on each iteration rather than rereading the
// first one as the source this reader was ported from does (see
// DESIGN.md decision 4).
func (r *Reader) decodeHexSequence(anchor *snapshot, origin events.Origin) (bool, error) {
	r.cursor++ // consume 'u'
	for r.bufEnd-r.cursor < 4 {
		// fillBuffer leaves the cursor at the end of the preserved bytes;
		// put it back on the first hex digit within the relocated token.
		rel := r.cursor - anchor.cursor
		res := r.fillBuffer(anchor)
		r.cursor = anchor.cursor + rel
		switch res {
		case fillAgain:
			r.cursor -= 2 // back up to '\', restart the whole escape later
			return false, nil
		case fillEOF:
			return false, r.parseErr(origin, `invalid escape sequence "\u"`)
		case fillError:
			return false, errors.Wrap(r.readErr, "streamreader: reading unicode escape")
		}
	}

	var codePoint uint32
	for i := 0; i < 4; i++ {
		d, ok := hexDigit(r.buf[r.cursor+i])
		if !ok {
			return false, r.parseErr(origin, "invalid escape sequence")
		}
		codePoint = (codePoint << 4) | uint32(d)
	}
	if codePoint > 0x10FFFF {
		return false, r.parseErr(origin, "not a legal unicode character")
	}
	if err := r.encoder.Encode(r.stringBuf, rune(codePoint)); err != nil {
		return false, errors.Wrap(err, "streamreader: encoding escaped code point")
	}
	r.cursor += 4
	return true, nil
}

func hexDigit(c byte) (uint32, bool) {
	switch {
	case c >= '0' && c <= '9':
		return uint32(c - '0'), true
	case c >= 'a' && c <= 'f':
		return uint32(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return uint32(c-'A') + 10, true
	default:
		return 0, false
	}
}
