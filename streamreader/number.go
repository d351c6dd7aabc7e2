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

// digitScanResult reports the outcome of scanning a run of ASCII digits.
type digitScanResult int

const (
	digitsNone digitScanResult = iota
	digitsRead
	digitsAgain
	digitsEOF
)

// NextNumber recognizes an int or float literal starting at the cursor,
// which must hold a digit or '-'. It runs the 6-state sub-machine: 1
// leading digits, 2 look for '.'/'e'/'E', 3 fractional digits, 4 look for
// 'e'/'E' after the fraction, 5 optional exponent sign, 6 exponent digits.
func (r *Reader) NextNumber(resumed bool) (events.Kind, bytewindow.Slice, bool, error) {
	if r.cursor == r.bufEnd || !(isDigit(r.buf[r.cursor]) || r.buf[r.cursor] == '-') {
		return events.IntValue, bytewindow.Slice{}, false, r.misaligned("number")
	}

	anchor := r.snapshot()
	origin := r.Position()

	if resumed {
		r.restore(r.saved)
	} else {
		if r.buf[r.cursor] == '-' {
			r.cursor++
		}
		r.numberState = 1
		r.numberKind = events.IntValue
	}

	for r.numberState != 0 {
		switch r.numberState {
		case 1: // leading digits
			switch res := r.scanDigits(&anchor); res {
			case digitsNone, digitsEOF:
				return events.IntValue, bytewindow.Slice{}, false, r.parseErr(origin, "invalid number")
			case digitsAgain:
				r.saved = r.snapshot()
				r.restore(anchor)
				return events.IntValue, bytewindow.Slice{}, false, nil
			}
			r.numberState = 2
			fallthrough

		case 2: // after integer digits: '.', 'e'/'E', or done
			if r.cursor == r.bufEnd {
				switch r.fillBuffer(&anchor) {
				case fillAgain:
					r.saved = r.snapshot()
					r.restore(anchor)
					return events.IntValue, bytewindow.Slice{}, false, nil
				case fillError:
					return events.IntValue, bytewindow.Slice{}, false, errors.Wrap(r.readErr, "streamreader: reading number")
				}
			}
			if r.cursor == r.bufEnd {
				r.numberState = 0
				break
			}
			switch r.buf[r.cursor] {
			case 'e', 'E':
				r.numberKind = events.FloatValue
				r.numberState = 5
				r.cursor++
			case '.':
				r.numberKind = events.FloatValue
				r.numberState = 3
				r.cursor++
			default:
				r.numberState = 0
			}
			if r.numberState != 3 {
				break
			}
			fallthrough

		case 3: // digits after '.'
			switch res := r.scanDigits(&anchor); res {
			case digitsNone, digitsEOF:
				return events.IntValue, bytewindow.Slice{}, false, r.parseErr(origin, "invalid number")
			case digitsAgain:
				r.saved = r.snapshot()
				r.restore(anchor)
				return events.IntValue, bytewindow.Slice{}, false, nil
			}
			r.numberState = 4
			fallthrough

		case 4: // after fractional digits: 'e'/'E' or done
			if r.cursor == r.bufEnd {
				switch r.fillBuffer(&anchor) {
				case fillAgain:
					r.saved = r.snapshot()
					r.restore(anchor)
					return events.IntValue, bytewindow.Slice{}, false, nil
				case fillError:
					return events.IntValue, bytewindow.Slice{}, false, errors.Wrap(r.readErr, "streamreader: reading number")
				}
			}
			if r.cursor == r.bufEnd || (r.buf[r.cursor] != 'e' && r.buf[r.cursor] != 'E') {
				r.numberState = 0
				break
			}
			r.numberState = 5
			r.cursor++
			fallthrough

		case 5: // optional sign after exponent letter
			if r.cursor == r.bufEnd {
				switch r.fillBuffer(&anchor) {
				case fillAgain:
					r.saved = r.snapshot()
					r.restore(anchor)
					return events.IntValue, bytewindow.Slice{}, false, nil
				case fillError:
					return events.IntValue, bytewindow.Slice{}, false, errors.Wrap(r.readErr, "streamreader: reading number")
				}
			}
			if r.cursor == r.bufEnd {
				return events.IntValue, bytewindow.Slice{}, false, r.parseErr(origin, "invalid number")
			}
			if r.buf[r.cursor] == '+' || r.buf[r.cursor] == '-' {
				r.cursor++
			}
			r.numberState = 6
			fallthrough

		case 6: // exponent digits
			switch res := r.scanDigits(&anchor); res {
			case digitsNone, digitsEOF:
				return events.IntValue, bytewindow.Slice{}, false, r.parseErr(origin, "invalid number")
			case digitsAgain:
				r.saved = r.snapshot()
				r.restore(anchor)
				return events.IntValue, bytewindow.Slice{}, false, nil
			}
			r.numberState = 0
		}
	}

	kind := r.numberKind
	text := bytewindow.New(r.buf[anchor.cursor:r.cursor])
	return kind, text, true, nil
}

// scanDigits consumes a run of >=1 ASCII digits at the cursor. A run
// resumed after Again counts the digits it already consumed before the
// suspension toward that minimum.
func (r *Reader) scanDigits(anchor *snapshot) digitScanResult {
	start := r.cursor
	progressed := func() bool {
		return r.cursor > start || (r.cursor > anchor.cursor && isDigit(r.buf[r.cursor-1]))
	}
	for {
		if r.cursor == r.bufEnd {
			preShift := anchor.cursor
			res := r.fillBuffer(anchor)
			// fillBuffer relocated the preserved region (and anchor
			// along with it); start must move by the same delta.
			start -= preShift
			switch res {
			case fillAgain:
				return digitsAgain
			case fillEOF, fillError:
				if progressed() {
					return digitsRead
				}
				return digitsEOF
			}
		}

		if r.cursor < r.bufEnd && isDigit(r.buf[r.cursor]) {
			r.cursor++
		} else if progressed() {
			return digitsRead
		} else {
			return digitsNone
		}
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
