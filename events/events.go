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

// Package events defines the closed set of syntactic events the streaming
// parser emits, and Origin, the line/column/offset triple attached to
// each one.
package events

import "fmt"

// Kind enumerates every event the parser can emit.
type Kind int

const (
	// End is the final event in the stream; it has no payload.
	End Kind = iota

	// Again signals the source has no bytes available right now but may
	// have some later. It is not an error -- callers should retry.
	Again

	// BeginObject marks the start of a JSON object.
	BeginObject
	// EndObject marks the end of a JSON object.
	EndObject
	// BeginArray marks the start of a JSON array.
	BeginArray
	// EndArray marks the end of a JSON array.
	EndArray

	// FieldName carries the name of an object field as its payload.
	FieldName
	// IntValue carries an integer literal's text as its payload.
	IntValue
	// FloatValue carries a floating-point literal's text as its payload.
	FloatValue
	// StringValue carries a string literal's decoded text as its payload.
	StringValue
	// TrueValue has no payload.
	TrueValue
	// FalseValue has no payload.
	FalseValue
	// NullValue has no payload.
	NullValue
)

var kindNames = [...]string{
	End:         "END",
	Again:       "AGAIN",
	BeginObject: "BEGIN_OBJECT",
	EndObject:   "END_OBJECT",
	BeginArray:  "BEGIN_ARRAY",
	EndArray:    "END_ARRAY",
	FieldName:   "FIELD_NAME",
	IntValue:    "INT_VALUE",
	FloatValue:  "FLOAT_VALUE",
	StringValue: "STRING_VALUE",
	TrueValue:   "TRUE_VALUE",
	FalseValue:  "FALSE_VALUE",
	NullValue:   "NULL_VALUE",
}

// String renders the event kind's name, matching the names in spec.md.
func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// HasPayload reports whether an event of this kind carries token text the
// caller can resolve through a PayloadFactory.
func (k Kind) HasPayload() bool {
	switch k {
	case FieldName, IntValue, FloatValue, StringValue:
		return true
	default:
		return false
	}
}

// Origin identifies the position of a token's first byte in the input
// stream: a 1-based line, a 1-based column, and a 0-based byte offset
// from the start of the stream.
type Origin struct {
	Line   uint32
	Column uint32
	Offset uint64
}

// String renders the origin the way diagnostics quote it:
// "line L, column C (offset O)".
func (o Origin) String() string {
	return fmt.Sprintf("line %d, column %d (offset %d)", o.Line, o.Column, o.Offset)
}
