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

package charset

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/tomault/pistis-json-go/growbuf"
)

// TestUTF8EncoderMatchesStandardLibrary checks that the encoder's output
// equals the canonical Unicode encoding for a representative sample of
// code points across all four UTF-8 length classes.
func TestUTF8EncoderMatchesStandardLibrary(t *testing.T) {
	tests := []rune{
		0x0041,   // 'A', 1 byte
		0x00E9,   // 'é', 2 bytes
		0x4E2D,   // '中', 3 bytes
		0x1F600,  // emoji, 4 bytes
		0x10FFFF, // max legal code point
		0,
	}

	for _, cp := range tests {
		buf := growbuf.New(8, 0)
		err := UTF8Encoder{}.Encode(buf, cp)
		assert.NoError(t, err)

		want := make([]byte, utf8.RuneLen(cp))
		utf8.EncodeRune(want, cp)
		assert.Equal(t, want, buf.Bytes())
		buf.Release()
	}
}

func TestUTF8EncoderRejectsOutOfRange(t *testing.T) {
	buf := growbuf.New(8, 0)
	defer buf.Release()

	err := UTF8Encoder{}.Encode(buf, 0x110000)
	assert.ErrorIs(t, err, ErrIllegalCodePoint)
}

func TestUTF8EncoderToleratesSurrogateRange(t *testing.T) {
	// Lone surrogates are not rejected at encode time (open question,
	// see DESIGN.md) -- the original source does not guard against them.
	buf := growbuf.New(8, 0)
	defer buf.Release()

	err := UTF8Encoder{}.Encode(buf, 0xD800)
	assert.NoError(t, err)
	assert.Equal(t, 3, buf.Len())
}
