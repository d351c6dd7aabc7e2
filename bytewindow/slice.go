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

// Package bytewindow provides Slice, a non-owning view over a contiguous
// byte range produced by the streaming reader. A Slice aliases someone
// else's backing array; it never copies on construction, which is what
// lets the parser hand out token text without buffering whole documents.
package bytewindow

// Slice is a non-owning view [begin, end) over a byte range. Its validity
// is bounded by the lifetime of the backing array it was cut from -- once
// the reader that produced it refills its buffer, a retained Slice may
// alias stale or reused bytes. Callers that need to keep a Slice across a
// parser operation must copy it first (this is what PayloadFactory.
// StringValue is for).
type Slice struct {
	b []byte
}

// New wraps b as a Slice. b is aliased, not copied.
func New(b []byte) Slice {
	return Slice{b: b}
}

// Len returns the number of bytes in the slice.
func (s Slice) Len() int { return len(s.b) }

// Bytes returns the aliased byte range. Callers must not retain it past
// the next operation on the reader that produced it.
func (s Slice) Bytes() []byte { return s.b }

// String copies the slice into a new Go string.
func (s Slice) String() string { return string(s.b) }

// Empty reports whether the slice has zero length.
func (s Slice) Empty() bool { return len(s.b) == 0 }

// Cmp compares a and b lexicographically over their shared prefix length,
// then tie-breaks on length (the shorter slice sorts first). Returns a
// negative number, zero, or a positive number as a < b, a == b, or a > b.
func (s Slice) Cmp(other Slice) int {
	return cmpBytes(s.b, other.b)
}

// CmpBytes compares the slice against a raw byte slice using the same
// rule as Cmp.
func (s Slice) CmpBytes(other []byte) int {
	return cmpBytes(s.b, other)
}

// CmpString compares the slice against a string using the same rule as
// Cmp, without allocating.
func (s Slice) CmpString(other string) int {
	return cmpBytesString(s.b, other)
}

// Equal reports whether two slices hold byte-for-byte identical content.
func (s Slice) Equal(other Slice) bool {
	return s.Cmp(other) == 0
}

// EqualString reports whether the slice holds the same bytes as other.
func (s Slice) EqualString(other string) bool {
	return s.CmpString(other) == 0
}

// Hash computes the multiplicative rolling hash h = h*31 + b over every
// byte in the slice, seeded from zero. This is the exact algorithm
// required by the slice-hash/cmp consistency property (equal slices must
// hash equal); it is intentionally not delegated to a faster
// general-purpose hash, since no such library implements this specific
// rolling recurrence.
func (s Slice) Hash() uint64 {
	var h uint64
	for _, c := range s.b {
		h = h*31 + uint64(c)
	}
	return h
}

func cmpBytes(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return int(a[i]) - int(b[i])
		}
	}
	return len(a) - len(b)
}

func cmpBytesString(a []byte, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return int(a[i]) - int(b[i])
		}
	}
	return len(a) - len(b)
}
