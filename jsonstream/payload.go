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

package jsonstream

import (
	"github.com/pkg/errors"

	"github.com/tomault/pistis-json-go/bytewindow"
	"github.com/tomault/pistis-json-go/events"
)

// PayloadFactory converts raw token text into caller-owned values. The
// EventStream never retains its own copy of a materialized value; it
// only calls through to the factory when the caller asks for one.
type PayloadFactory[I, F, S any] interface {
	IntValue(bytewindow.Slice) (I, error)
	FloatValue(bytewindow.Slice) (F, error)
	StringValue(bytewindow.Slice) (S, error)
}

// ArrayBuilder accumulates the elements of one JSON array.
type ArrayBuilder[V any] interface {
	AddValue(v V)
	AddNullValue()
	Done() V
}

// ObjectBuilder accumulates the fields of one JSON object.
type ObjectBuilder[V any] interface {
	SetField(name string, v V)
	SetFieldToNull(name string)
	Done() V
}

// ReadObject drives s synchronously from just after a BeginObject event
// to the matching EndObject, materializing nested structures through the
// supplied builder factories. It is the Go rendering of
// FlexibleEventStream::readObject.
func ReadObject[I, F, S, V any](
	s *EventStream[I, F, S],
	newArray func(events.Origin) ArrayBuilder[V],
	newObject func(events.Origin) ObjectBuilder[V],
) (V, error) {
	builder := newObject(s.Origin())
	for {
		kind, err := s.Next()
		if err != nil {
			var zero V
			return zero, err
		}
		switch kind {
		case events.Again:
			continue
		case events.EndObject:
			return builder.Done(), nil
		case events.FieldName:
			fieldName := s.PayloadText().String()
			if err := readObjectField(s, builder, fieldName, newArray, newObject); err != nil {
				var zero V
				return zero, err
			}
		default:
			var zero V
			return zero, errors.Errorf("jsonstream: illegal state: unexpected event %s while reading object", kind)
		}
	}
}

func readObjectField[I, F, S, V any](
	s *EventStream[I, F, S],
	builder ObjectBuilder[V],
	fieldName string,
	newArray func(events.Origin) ArrayBuilder[V],
	newObject func(events.Origin) ObjectBuilder[V],
) error {
	var kind events.Kind
	var err error
	for {
		kind, err = s.Next()
		if err != nil {
			return err
		}
		if kind != events.Again {
			break
		}
	}

	switch kind {
	case events.IntValue:
		v, err := s.IntPayload()
		if err != nil {
			return err
		}
		builder.SetField(fieldName, any(v).(V))
	case events.FloatValue:
		v, err := s.FloatPayload()
		if err != nil {
			return err
		}
		builder.SetField(fieldName, any(v).(V))
	case events.StringValue:
		v, err := s.StringPayload()
		if err != nil {
			return err
		}
		builder.SetField(fieldName, any(v).(V))
	case events.TrueValue:
		builder.SetField(fieldName, any(true).(V))
	case events.FalseValue:
		builder.SetField(fieldName, any(false).(V))
	case events.NullValue:
		builder.SetFieldToNull(fieldName)
	case events.BeginArray:
		v, err := ReadArray(s, newArray, newObject)
		if err != nil {
			return err
		}
		builder.SetField(fieldName, v)
	case events.BeginObject:
		v, err := ReadObject(s, newArray, newObject)
		if err != nil {
			return err
		}
		builder.SetField(fieldName, v)
	default:
		return errors.Errorf("jsonstream: illegal state: unexpected event %s for field %q", kind, fieldName)
	}
	return nil
}

// ReadArray drives s synchronously from just after a BeginArray event to
// the matching EndArray, materializing nested structures through the
// supplied builder factories.
func ReadArray[I, F, S, V any](
	s *EventStream[I, F, S],
	newArray func(events.Origin) ArrayBuilder[V],
	newObject func(events.Origin) ObjectBuilder[V],
) (V, error) {
	builder := newArray(s.Origin())
	for {
		kind, err := s.Next()
		if err != nil {
			var zero V
			return zero, err
		}
		switch kind {
		case events.Again:
			continue
		case events.EndArray:
			return builder.Done(), nil
		case events.IntValue:
			v, err := s.IntPayload()
			if err != nil {
				var zero V
				return zero, err
			}
			builder.AddValue(any(v).(V))
		case events.FloatValue:
			v, err := s.FloatPayload()
			if err != nil {
				var zero V
				return zero, err
			}
			builder.AddValue(any(v).(V))
		case events.StringValue:
			v, err := s.StringPayload()
			if err != nil {
				var zero V
				return zero, err
			}
			builder.AddValue(any(v).(V))
		case events.TrueValue:
			builder.AddValue(any(true).(V))
		case events.FalseValue:
			builder.AddValue(any(false).(V))
		case events.NullValue:
			builder.AddNullValue()
		case events.BeginArray:
			v, err := ReadArray(s, newArray, newObject)
			if err != nil {
				var zero V
				return zero, err
			}
			builder.AddValue(v)
		case events.BeginObject:
			v, err := ReadObject(s, newArray, newObject)
			if err != nil {
				var zero V
				return zero, err
			}
			builder.AddValue(v)
		default:
			var zero V
			return zero, errors.Errorf("jsonstream: illegal state: unexpected event %s while reading array", kind)
		}
	}
}
