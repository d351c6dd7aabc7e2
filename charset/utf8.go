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

// Package charset encodes decoded \uXXXX code points into a byte buffer.
// The default (and only implementation the pack's corpus gives precedent
// for) is UTF-8; Encoder is an interface so an alternative encoding could
// be plugged into a streamreader.Reader in the future.
package charset

import (
	"fmt"

	"github.com/pkg/errors"
)

// Writer is the minimal sink an Encoder writes encoded bytes into.
// growbuf.Buffer satisfies it.
type Writer interface {
	WriteByte(c byte) error
}

// Encoder encodes a single Unicode code point into w.
type Encoder interface {
	Encode(w Writer, codePoint rune) error
}

// ErrIllegalCodePoint is returned when a code point exceeds the 21-bit
// range UTF-8 can represent (> 0x10FFFF).
var ErrIllegalCodePoint = errors.New("charset: illegal code point")

// UTF8Encoder is the default Encoder. It does not reject the UTF-16
// surrogate range (0xD800-0xDFFF) at encode time -- a lone surrogate
// decoded from a \uXXXX escape is encoded as though it were a valid code
// point, matching the streaming reader's surrogate-pair open question
// (see DESIGN.md).
type UTF8Encoder struct{}

// Encode writes codePoint to w using standard UTF-8 byte rules (1-4
// bytes depending on range).
func (UTF8Encoder) Encode(w Writer, codePoint rune) error {
	c := uint32(codePoint)
	switch {
	case c < 0x80:
		return w.WriteByte(byte(c))
	case c < 0x800:
		if err := w.WriteByte(byte(0xC0 | (c >> 6))); err != nil {
			return err
		}
		return w.WriteByte(byte(0x80 | (c & 0x3F)))
	case c < 0x10000:
		if err := w.WriteByte(byte(0xE0 | (c >> 12))); err != nil {
			return err
		}
		if err := w.WriteByte(byte(0x80 | ((c >> 6) & 0x3F))); err != nil {
			return err
		}
		return w.WriteByte(byte(0x80 | (c & 0x3F)))
	case c <= 0x10FFFF:
		if err := w.WriteByte(byte(0xF0 | (c >> 18))); err != nil {
			return err
		}
		if err := w.WriteByte(byte(0x80 | ((c >> 12) & 0x3F))); err != nil {
			return err
		}
		if err := w.WriteByte(byte(0x80 | ((c >> 6) & 0x3F))); err != nil {
			return err
		}
		return w.WriteByte(byte(0x80 | (c & 0x3F)))
	default:
		return errors.Wrap(ErrIllegalCodePoint, fmt.Sprintf("0x%X has more than 21 bits", c))
	}
}
