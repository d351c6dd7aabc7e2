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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomault/pistis-json-go/events"
	"github.com/tomault/pistis-json-go/source"
)

// chunkedSource hands back one chunk of text per successful Read call,
// reporting AGAIN (n==0, again==true) between chunks -- used to drive the
// resumable recognizers through real suspend/resume cycles.
type chunkedSource struct {
	chunks [][]byte
	idx    int
	toggle bool
}

func newChunkedSource(chunks ...string) *chunkedSource {
	cs := &chunkedSource{}
	for _, c := range chunks {
		cs.chunks = append(cs.chunks, []byte(c))
	}
	return cs
}

// Read hands back each chunk's bytes in turn, reporting AGAIN once between
// every pair of chunks so the very first call (typically a LookAhead
// priming the buffer) always sees real data.
func (s *chunkedSource) Read(dst []byte) (int, bool, error) {
	if s.idx >= len(s.chunks) {
		return 0, false, nil
	}
	if s.toggle {
		s.toggle = false
		return 0, true, nil
	}
	n := copy(dst, s.chunks[s.idx])
	s.idx++
	s.toggle = true
	return n, false, nil
}

func TestLookAheadSkipsWhitespaceAndTracksLines(t *testing.T) {
	r := New(source.NewString("  \n\t{\"a\":1}"), 16, 0, nil)
	c, status := lookAhead(t, r)
	require.Equal(t, Ready, status)
	assert.Equal(t, byte('{'), c)

	pos := r.Position()
	assert.EqualValues(t, 2, pos.Line)
	assert.EqualValues(t, 2, pos.Column)
}

func lookAhead(t *testing.T, r *Reader) (byte, LookAheadStatus) {
	t.Helper()
	c, status, err := r.LookAhead()
	require.NoError(t, err)
	return c, status
}

func TestNextStringFastPath(t *testing.T) {
	r := New(source.NewString(`"hello world"`), 16, 0, nil)
	lookAhead(t, r)
	s, ok, err := r.NextString(false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "hello world", s.String())
}

func TestNextStringEscapes(t *testing.T) {
	r := New(source.NewString(`"a\nb\tc\"d\\e"`), 16, 0, nil)
	lookAhead(t, r)
	s, ok, err := r.NextString(false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a\nb\tc\"d\\e", s.String())
}

func TestNextStringEscapeFollowedByTrailingText(t *testing.T) {
	r := New(source.NewString(`"a\nbc"`), 16, 0, nil)
	lookAhead(t, r)
	s, ok, err := r.NextString(false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a\nbc", s.String())
}

func TestNextStringUnicodeEscape(t *testing.T) {
	r := New(source.NewString(`"\`+`u4e2d\`+`u0041"`), 16, 0, nil)
	lookAhead(t, r)
	s, ok, err := r.NextString(false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "中A", s.String())
}

func TestNextStringUnterminated(t *testing.T) {
	r := New(source.NewString(`"abc`), 16, 0, nil)
	lookAhead(t, r)
	_, ok, err := r.NextString(false)
	assert.False(t, ok)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated string")
}

func TestNextStringResumesAcrossAgain(t *testing.T) {
	r := New(source.NewString(""), 16, 0, nil)
	r.src = newChunkedSource(`"hel`, `lo"`)
	lookAhead(t, r)

	s, ok, err := r.NextString(false)
	require.NoError(t, err)
	require.False(t, ok)

	s, ok, err = r.NextString(true)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "hello", s.String())
}

func TestNextStringResumesAcrossAgainMidEscape(t *testing.T) {
	r := New(source.NewString(""), 16, 0, nil)
	r.src = newChunkedSource(`"a\`, `nb"`)
	lookAhead(t, r)

	_, ok, err := r.NextString(false)
	require.NoError(t, err)
	require.False(t, ok)

	s, ok, err := r.NextString(true)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a\nb", s.String())
}

func TestNextNumberInt(t *testing.T) {
	r := New(source.NewString(`12345,`), 16, 0, nil)
	lookAhead(t, r)
	kind, s, ok, err := r.NextNumber(false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, events.IntValue, kind)
	assert.Equal(t, "12345", s.String())
}

func TestNextNumberNegative(t *testing.T) {
	r := New(source.NewString(`-42}`), 16, 0, nil)
	lookAhead(t, r)
	kind, s, ok, err := r.NextNumber(false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, events.IntValue, kind)
	assert.Equal(t, "-42", s.String())
}

func TestNextNumberFloat(t *testing.T) {
	tests := []string{"3.14", "2.5e10", "1e-9", "1E+9", "0.001"}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			r := New(source.NewString(in+" "), 16, 0, nil)
			lookAhead(t, r)
			kind, s, ok, err := r.NextNumber(false)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, events.FloatValue, kind)
			assert.Equal(t, in, s.String())
		})
	}
}

func TestNextNumberAtEndOfStream(t *testing.T) {
	r := New(source.NewString(`999`), 16, 0, nil)
	lookAhead(t, r)
	kind, s, ok, err := r.NextNumber(false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, events.IntValue, kind)
	assert.Equal(t, "999", s.String())
}

func TestNextNumberInvalidExponent(t *testing.T) {
	r := New(source.NewString(`1e`), 16, 0, nil)
	lookAhead(t, r)
	_, _, ok, err := r.NextNumber(false)
	assert.False(t, ok)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid number")
}

func TestNextNumberResumesAcrossAgain(t *testing.T) {
	r := New(source.NewString(""), 16, 0, nil)
	r.src = newChunkedSource(`12`, `34 `)
	lookAhead(t, r)

	_, _, ok, err := r.NextNumber(false)
	require.NoError(t, err)
	require.False(t, ok)

	kind, s, ok, err := r.NextNumber(true)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, events.IntValue, kind)
	assert.Equal(t, "1234", s.String())
}

func TestRecognizeWordTrueFalseNull(t *testing.T) {
	for _, word := range []string{"true", "false", "null"} {
		t.Run(word, func(t *testing.T) {
			r := New(source.NewString(word+","), 16, 0, nil)
			lookAhead(t, r)
			ok, err := r.RecognizeWord(word, false)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestRecognizeWordCapitalLead(t *testing.T) {
	r := New(source.NewString(`True,`), 16, 0, nil)
	lookAhead(t, r)
	ok, err := r.RecognizeWord("True", false)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRecognizeWordRejectsTrailingAlnum(t *testing.T) {
	r := New(source.NewString(`trueish`), 16, 0, nil)
	lookAhead(t, r)
	_, err := r.RecognizeWord("true", false)
	require.Error(t, err)
}

func TestRecognizeWordAtEndOfStream(t *testing.T) {
	r := New(source.NewString(`null`), 16, 0, nil)
	lookAhead(t, r)
	ok, err := r.RecognizeWord("null", false)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRecognizeWordResumesAcrossAgain(t *testing.T) {
	r := New(source.NewString(""), 16, 0, nil)
	r.src = newChunkedSource(`tr`, `ue `)
	lookAhead(t, r)

	ok, err := r.RecognizeWord("true", false)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = r.RecognizeWord("true", true)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMisalignedRecognizers(t *testing.T) {
	r := New(source.NewString(`123`), 16, 0, nil)
	_, _, err := r.NextString(false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMisaligned)
}

func TestChunkingInvarianceAcrossManySmallReads(t *testing.T) {
	// Refilling one byte at a time should reconstruct the same token a
	// single-shot read would produce.
	const text = `"the quick brown fox jumps over the lazy dog, 12345 times"`
	r := New(source.NewString(""), 4, 0, nil)
	r.src = &oneAtATimeSource{data: []byte(text)}
	lookAhead(t, r)

	resumed := false
	for {
		s, ok, err := r.NextString(resumed)
		require.NoError(t, err)
		if ok {
			assert.Equal(t, text[1:len(text)-1], s.String())
			return
		}
		resumed = true
	}
}

// oneAtATimeSource hands back a single byte per successful Read call,
// reporting AGAIN between every pair of bytes.
type oneAtATimeSource struct {
	data   []byte
	pos    int
	toggle bool
}

func (s *oneAtATimeSource) Read(dst []byte) (int, bool, error) {
	if s.pos >= len(s.data) {
		return 0, false, nil
	}
	if s.toggle {
		s.toggle = false
		return 0, true, nil
	}
	n := copy(dst, s.data[s.pos:s.pos+1])
	s.pos += n
	s.toggle = true
	return n, false, nil
}
