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

package bytewindow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSliceCmp(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "Equal", a: "abc", b: "abc", want: 0},
		{name: "ShorterPrefixSortsFirst", a: "ab", b: "abc", want: -1},
		{name: "LongerPrefixSortsLast", a: "abc", b: "ab", want: 1},
		{name: "Empty vs non-empty", a: "", b: "a", want: -1},
		{name: "Both empty", a: "", b: "", want: 0},
		{name: "DivergingBytes", a: "abd", b: "abc", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New([]byte(tt.a)).Cmp(New([]byte(tt.b)))
			if tt.want < 0 {
				assert.Negative(t, got)
			} else if tt.want > 0 {
				assert.Positive(t, got)
			} else {
				assert.Zero(t, got)
			}
		})
	}
}

func TestSliceEqual(t *testing.T) {
	assert.True(t, New([]byte("hello")).Equal(New([]byte("hello"))))
	assert.False(t, New([]byte("hello")).Equal(New([]byte("world"))))
	assert.True(t, New([]byte("hi")).EqualString("hi"))
}

// TestSliceHashConsistency checks that equal slices always hash equal.
func TestSliceHashConsistency(t *testing.T) {
	inputs := []string{"", "a", "hello world", "\x00\x01\x02", "unicode: éè"}
	for _, in := range inputs {
		a := New([]byte(in))
		b := New(append([]byte{}, []byte(in)...))
		require := assert.New(t)
		require.True(a.Equal(b))
		require.Equal(a.Hash(), b.Hash())
	}
}

func TestSliceHashRollingAlgorithm(t *testing.T) {
	s := New([]byte("ab"))
	var want uint64
	want = want*31 + 'a'
	want = want*31 + 'b'
	assert.Equal(t, want, s.Hash())
}

func TestSliceLenAndEmpty(t *testing.T) {
	assert.Equal(t, 0, New(nil).Len())
	assert.True(t, New(nil).Empty())
	assert.Equal(t, 3, New([]byte("abc")).Len())
	assert.False(t, New([]byte("abc")).Empty())
}
