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
)

// RecognizeWord matches the literal word (e.g. "true", "false", "null")
// starting at the cursor, which must already hold word[0] or its upper-case
// form (so "True" matches "true"). On success the cursor advances past the
// word; the byte immediately following it, if any, must not be
// alphanumeric.
func (r *Reader) RecognizeWord(word string, resumed bool) (bool, error) {
	lead := word[0]
	if r.cursor == r.bufEnd || (r.buf[r.cursor] != lead && r.buf[r.cursor] != lead-('a'-'A')) {
		return false, r.misaligned("word " + word)
	}

	anchor := r.snapshot()
	origin := r.Position()
	length := len(word)

	if resumed {
		r.restore(r.saved)
	}

	for r.bufEnd-r.cursor < length {
		switch r.fillBuffer(&anchor) {
		case fillAgain:
			r.saved = r.snapshot()
			r.restore(anchor)
			return false, nil
		case fillEOF:
			return false, r.misalignedAt(origin, "word "+word)
		case fillError:
			return false, errors.Wrap(r.readErr, "streamreader: reading keyword")
		}
	}

	for r.bufEnd-r.cursor < length+1 {
		switch r.fillBuffer(&anchor) {
		case fillAgain:
			r.saved = r.snapshot()
			r.restore(anchor)
			return false, nil
		case fillEOF:
			if !bytesEqual(r.buf[anchor.cursor+1:anchor.cursor+length], word[1:]) {
				return false, r.misalignedAt(origin, "word "+word)
			}
			r.cursor = anchor.cursor + length
			return true, nil
		case fillError:
			return false, errors.Wrap(r.readErr, "streamreader: reading keyword")
		}
	}

	if !bytesEqual(r.buf[anchor.cursor+1:anchor.cursor+length], word[1:]) || isAlnum(r.buf[anchor.cursor+length]) {
		return false, r.misalignedAt(origin, "word "+word)
	}
	r.cursor = anchor.cursor + length
	return true, nil
}

func bytesEqual(b []byte, s string) bool {
	if len(b) != len(s) {
		return false
	}
	for i := 0; i < len(b); i++ {
		if b[i] != s[i] {
			return false
		}
	}
	return true
}

func isAlnum(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
