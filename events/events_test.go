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

package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		k    Kind
		want string
	}{
		{End, "END"},
		{Again, "AGAIN"},
		{BeginObject, "BEGIN_OBJECT"},
		{EndObject, "END_OBJECT"},
		{BeginArray, "BEGIN_ARRAY"},
		{EndArray, "END_ARRAY"},
		{FieldName, "FIELD_NAME"},
		{IntValue, "INT_VALUE"},
		{FloatValue, "FLOAT_VALUE"},
		{StringValue, "STRING_VALUE"},
		{TrueValue, "TRUE_VALUE"},
		{FalseValue, "FALSE_VALUE"},
		{NullValue, "NULL_VALUE"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.k.String())
		})
	}
}

func TestKindStringOutOfRange(t *testing.T) {
	assert.Equal(t, "Kind(99)", Kind(99).String())
}

func TestKindHasPayload(t *testing.T) {
	withPayload := []Kind{FieldName, IntValue, FloatValue, StringValue}
	withoutPayload := []Kind{End, Again, BeginObject, EndObject, BeginArray, EndArray, TrueValue, FalseValue, NullValue}

	for _, k := range withPayload {
		assert.True(t, k.HasPayload(), k.String())
	}
	for _, k := range withoutPayload {
		assert.False(t, k.HasPayload(), k.String())
	}
}

func TestOriginString(t *testing.T) {
	o := Origin{Line: 3, Column: 7, Offset: 42}
	assert.Equal(t, "line 3, column 7 (offset 42)", o.String())
}
