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

// Package valuetree supplies a reference PayloadFactory and pair of
// builders that materialize a parsed document as plain Go values:
// map[string]any for objects, []any for arrays, int64/float64/string for
// scalars. It exists so jsonstream's generic EventStream has a concrete,
// testable consumer that doesn't require every caller to write their own
// factory and builders first.
package valuetree

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/tomault/pistis-json-go/bytewindow"
	"github.com/tomault/pistis-json-go/events"
	"github.com/tomault/pistis-json-go/jsonstream"
)

// Factory implements jsonstream.PayloadFactory[int64, float64, string]
// using the standard library's strconv. Overflow and malformed-literal
// behavior is whatever strconv.ParseInt/ParseFloat does; jsonstream only
// guarantees the token's lexical shape (digits, optional sign, optional
// fraction/exponent), never its numeric validity range.
type Factory struct{}

var _ jsonstream.PayloadFactory[int64, float64, string] = Factory{}

// IntValue parses an INT_VALUE token as a base-10 signed integer.
func (Factory) IntValue(text bytewindow.Slice) (int64, error) {
	n, err := strconv.ParseInt(text.String(), 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "valuetree: parsing integer")
	}
	return n, nil
}

// FloatValue parses a FLOAT_VALUE token as a 64-bit float.
func (Factory) FloatValue(text bytewindow.Slice) (float64, error) {
	f, err := strconv.ParseFloat(text.String(), 64)
	if err != nil {
		return 0, errors.Wrap(err, "valuetree: parsing float")
	}
	return f, nil
}

// StringValue copies a STRING_VALUE token's decoded bytes into an owned
// Go string.
func (Factory) StringValue(text bytewindow.Slice) (string, error) {
	return text.String(), nil
}

// Array materializes one JSON array as a []any.
type Array struct {
	origin events.Origin
	values []any
}

var _ jsonstream.ArrayBuilder[any] = (*Array)(nil)

// NewArray constructs an empty Array anchored at origin.
func NewArray(origin events.Origin) jsonstream.ArrayBuilder[any] {
	return &Array{origin: origin}
}

// AddValue appends v to the array.
func (a *Array) AddValue(v any) { a.values = append(a.values, v) }

// AddNullValue appends a JSON null.
func (a *Array) AddNullValue() { a.values = append(a.values, nil) }

// Done returns the materialized []any, never nil (an empty array
// materializes as an empty, non-nil slice).
func (a *Array) Done() any {
	if a.values == nil {
		return []any{}
	}
	return a.values
}

// Origin returns the position of the array's opening '['.
func (a *Array) Origin() events.Origin { return a.origin }

// Object materializes one JSON object as a map[string]any.
type Object struct {
	origin events.Origin
	fields map[string]any
}

var _ jsonstream.ObjectBuilder[any] = (*Object)(nil)

// NewObject constructs an empty Object anchored at origin.
func NewObject(origin events.Origin) jsonstream.ObjectBuilder[any] {
	return &Object{origin: origin, fields: make(map[string]any)}
}

// SetField records v under name, overwriting any prior value for a
// repeated key (last write wins, matching the teacher's decoders'
// general handling of repeated map keys).
func (o *Object) SetField(name string, v any) { o.fields[name] = v }

// SetFieldToNull records a JSON null under name.
func (o *Object) SetFieldToNull(name string) { o.fields[name] = nil }

// Done returns the materialized map[string]any.
func (o *Object) Done() any { return o.fields }

// Origin returns the position of the object's opening '{'.
func (o *Object) Origin() events.Origin { return o.origin }
