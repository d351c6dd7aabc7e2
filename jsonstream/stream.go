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

// Package jsonstream implements the structural event-stream state machine
// that sits on top of package streamreader. An EventStream pulls one
// lexical event at a time from a byte source, never blocking: when the
// source has nothing available, Next returns events.Again and a later
// call resumes exactly where parsing left off.
package jsonstream

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/tomault/pistis-json-go/bytewindow"
	"github.com/tomault/pistis-json-go/events"
	"github.com/tomault/pistis-json-go/streamreader"
)

// contTag names a suspend point in the structural state machine. Each one
// corresponds to a point where Next may return events.Again and a later
// call must resume without repeating work already done (in particular,
// without re-running LookAhead over bytes already consumed by an
// in-progress recognizer -- see DESIGN.md decision 7).
type contTag int

const (
	contDone contTag = iota
	contParseInitialValue
	contParseFirstKey
	contAfterCommaKey
	contResumeKey
	contParseObjectValue
	contAfterColonValue
	contParseNextKey
	contParseFirstArrayValue
	contAfterCommaArrayValue
	contParseNextArrayValue
	contResumeValue
)

// recognizerKind records which token recognizer a contResumeValue
// suspension is waiting on, so resumeValue can re-enter it without being
// told the lookahead byte again.
type recognizerKind int

const (
	recNone recognizerKind = iota
	recString
	recNumber
	recWord
)

// Logger is the minimal tracing sink an EventStream can be given via
// WithLogger; it is satisfied by a zap SugaredLogger, among others.
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
}

// ParseError is returned by Next when the document itself is malformed.
// It matches streamreader.ParseError's message shape, with the stream's
// name (if any) filled in.
type ParseError struct {
	Origin events.Origin
	Name   string
	Detail string
}

func (e *ParseError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("Error on line %d, column %d (offset %d): %s",
			e.Origin.Line, e.Origin.Column, e.Origin.Offset, e.Detail)
	}
	return fmt.Sprintf("Error on line %d, column %d (offset %d) of %s: %s",
		e.Origin.Line, e.Origin.Column, e.Origin.Offset, e.Name, e.Detail)
}

// EventStream pulls JSON events from a reader, materializing scalar
// payloads through factory only when the caller asks for them.
type EventStream[I, F, S any] struct {
	name    string
	reader  *streamreader.Reader
	factory PayloadFactory[I, F, S]
	log     Logger

	current  contTag
	stack    []contTag
	maxDepth int

	pendingRecognizer recognizerKind
	pendingFollow     contTag
	pendingWord       string
	pendingWordEvent  events.Kind

	payload bytewindow.Slice
	origin  events.Origin

	err error
}

func newEventStream[I, F, S any](name string, reader *streamreader.Reader, factory PayloadFactory[I, F, S], log Logger, maxDepth int) *EventStream[I, F, S] {
	return &EventStream[I, F, S]{
		name:     name,
		reader:   reader,
		factory:  factory,
		log:      log,
		current:  contParseInitialValue,
		maxDepth: maxDepth,
	}
}

// Close releases the underlying reader and its source.
func (s *EventStream[I, F, S]) Close() error { return s.reader.Close() }

// Origin returns the origin of the most recently emitted event's token.
func (s *EventStream[I, F, S]) Origin() events.Origin { return s.origin }

// PayloadText returns the raw token text backing the most recent
// FieldName/IntValue/FloatValue/StringValue event.
func (s *EventStream[I, F, S]) PayloadText() bytewindow.Slice { return s.payload }

// IntPayload converts the current token through the configured factory.
func (s *EventStream[I, F, S]) IntPayload() (I, error) { return s.factory.IntValue(s.payload) }

// FloatPayload converts the current token through the configured factory.
func (s *EventStream[I, F, S]) FloatPayload() (F, error) { return s.factory.FloatValue(s.payload) }

// StringPayload converts the current token through the configured factory.
func (s *EventStream[I, F, S]) StringPayload() (S, error) { return s.factory.StringValue(s.payload) }

// Next advances the state machine by one step. Once it returns a non-nil
// error the stream is poisoned: every subsequent call returns the same
// error. Once events.End is reached, subsequent calls keep returning
// events.End.
func (s *EventStream[I, F, S]) Next() (events.Kind, error) {
	if s.err != nil {
		return events.End, s.err
	}
	if s.current == contDone {
		return events.End, nil
	}

	kind, err := s.step()
	if err != nil {
		s.err = err
		s.current = contDone
		return events.End, err
	}
	if s.log != nil {
		s.log.Debugw("jsonstream: event", "kind", kind.String(), "origin", s.origin.String())
	}
	return kind, nil
}

func (s *EventStream[I, F, S]) step() (events.Kind, error) {
	switch s.current {
	case contParseInitialValue:
		return s.parseInitialValue()
	case contParseFirstKey:
		return s.parseFirstKey()
	case contAfterCommaKey:
		return s.afterCommaKey()
	case contResumeKey:
		return s.resumeKey()
	case contParseObjectValue:
		return s.parseObjectValue()
	case contAfterColonValue:
		return s.afterColonValue()
	case contParseNextKey:
		return s.parseNextKey()
	case contParseFirstArrayValue:
		return s.parseFirstArrayValue()
	case contAfterCommaArrayValue:
		return s.afterCommaArrayValue()
	case contParseNextArrayValue:
		return s.parseNextArrayValue()
	case contResumeValue:
		return s.resumeValue()
	default:
		return 0, errors.New("jsonstream: illegal state: unknown continuation")
	}
}

func (s *EventStream[I, F, S]) popFollow() contTag {
	n := len(s.stack) - 1
	f := s.stack[n]
	s.stack = s.stack[:n]
	return f
}

// parseInitialValue parses the document's root value.
func (s *EventStream[I, F, S]) parseInitialValue() (events.Kind, error) {
	lead, status, err := s.reader.LookAhead()
	if err != nil {
		return 0, s.wrapReaderErr(err, false)
	}
	switch status {
	case streamreader.Again:
		return events.Again, nil
	case streamreader.EndOfStream:
		return 0, s.errorAt(s.reader.Position(), "value expected")
	}
	return s.dispatchValue(lead, contDone)
}

func (s *EventStream[I, F, S]) parseFirstKey() (events.Kind, error) {
	lead, status, err := s.reader.LookAhead()
	if err != nil {
		return 0, s.wrapReaderErr(err, false)
	}
	switch status {
	case streamreader.Again:
		return events.Again, nil
	case streamreader.EndOfStream:
		return 0, s.errorAt(s.reader.Position(), "value expected")
	}
	if lead == '}' {
		s.origin = s.reader.Position()
		s.reader.Advance()
		s.current = s.popFollow()
		return events.EndObject, nil
	}
	return s.parseKeyDispatch(lead, false)
}

func (s *EventStream[I, F, S]) afterCommaKey() (events.Kind, error) {
	lead, status, err := s.reader.LookAhead()
	if err != nil {
		return 0, s.wrapReaderErr(err, false)
	}
	switch status {
	case streamreader.Again:
		s.current = contAfterCommaKey
		return events.Again, nil
	case streamreader.EndOfStream:
		return 0, s.errorAt(s.reader.Position(), "value expected")
	}
	return s.parseKeyDispatch(lead, false)
}

func (s *EventStream[I, F, S]) parseKeyDispatch(lead byte, resumed bool) (events.Kind, error) {
	if !resumed {
		if lead != '"' {
			return 0, s.errorAt(s.reader.Position(), `'"' missing`)
		}
		s.origin = s.reader.Position()
	}
	text, ok, err := s.reader.NextString(resumed)
	if err != nil {
		return 0, s.wrapReaderErr(err, true)
	}
	if !ok {
		s.current = contResumeKey
		return events.Again, nil
	}
	s.payload = text
	s.current = contParseObjectValue
	return events.FieldName, nil
}

func (s *EventStream[I, F, S]) resumeKey() (events.Kind, error) {
	return s.parseKeyDispatch(0, true)
}

func (s *EventStream[I, F, S]) parseObjectValue() (events.Kind, error) {
	lead, status, err := s.reader.LookAhead()
	if err != nil {
		return 0, s.wrapReaderErr(err, false)
	}
	switch status {
	case streamreader.Again:
		return events.Again, nil
	case streamreader.EndOfStream:
		return 0, s.errorAt(s.reader.Position(), "value expected")
	}
	if lead != ':' {
		return 0, s.errorAt(s.reader.Position(), `":" missing`)
	}
	s.reader.Advance()
	return s.afterColonValue()
}

func (s *EventStream[I, F, S]) afterColonValue() (events.Kind, error) {
	lead, status, err := s.reader.LookAhead()
	if err != nil {
		return 0, s.wrapReaderErr(err, false)
	}
	switch status {
	case streamreader.Again:
		s.current = contAfterColonValue
		return events.Again, nil
	case streamreader.EndOfStream:
		return 0, s.errorAt(s.reader.Position(), "value expected")
	}
	return s.dispatchValue(lead, contParseNextKey)
}

func (s *EventStream[I, F, S]) parseNextKey() (events.Kind, error) {
	lead, status, err := s.reader.LookAhead()
	if err != nil {
		return 0, s.wrapReaderErr(err, false)
	}
	switch status {
	case streamreader.Again:
		return events.Again, nil
	case streamreader.EndOfStream:
		return 0, s.errorAt(s.reader.Position(), "value expected")
	}
	if lead == '}' {
		s.origin = s.reader.Position()
		s.reader.Advance()
		s.current = s.popFollow()
		return events.EndObject, nil
	}
	if lead != ',' {
		return 0, s.errorAt(s.reader.Position(), `"," missing`)
	}
	s.reader.Advance()
	return s.afterCommaKey()
}

func (s *EventStream[I, F, S]) parseFirstArrayValue() (events.Kind, error) {
	lead, status, err := s.reader.LookAhead()
	if err != nil {
		return 0, s.wrapReaderErr(err, false)
	}
	switch status {
	case streamreader.Again:
		return events.Again, nil
	case streamreader.EndOfStream:
		return 0, s.errorAt(s.reader.Position(), "value expected")
	}
	if lead == ']' {
		s.origin = s.reader.Position()
		s.reader.Advance()
		s.current = s.popFollow()
		return events.EndArray, nil
	}
	return s.dispatchValue(lead, contParseNextArrayValue)
}

func (s *EventStream[I, F, S]) afterCommaArrayValue() (events.Kind, error) {
	lead, status, err := s.reader.LookAhead()
	if err != nil {
		return 0, s.wrapReaderErr(err, false)
	}
	switch status {
	case streamreader.Again:
		s.current = contAfterCommaArrayValue
		return events.Again, nil
	case streamreader.EndOfStream:
		return 0, s.errorAt(s.reader.Position(), "value expected")
	}
	return s.dispatchValue(lead, contParseNextArrayValue)
}

func (s *EventStream[I, F, S]) parseNextArrayValue() (events.Kind, error) {
	lead, status, err := s.reader.LookAhead()
	if err != nil {
		return 0, s.wrapReaderErr(err, false)
	}
	switch status {
	case streamreader.Again:
		return events.Again, nil
	case streamreader.EndOfStream:
		return 0, s.errorAt(s.reader.Position(), "value expected")
	}
	if lead == ']' {
		s.origin = s.reader.Position()
		s.reader.Advance()
		s.current = s.popFollow()
		return events.EndArray, nil
	}
	if lead != ',' {
		return 0, s.errorAt(s.reader.Position(), `"," expected`)
	}
	s.reader.Advance()
	return s.afterCommaArrayValue()
}

// dispatchValue interprets lead as the start of a value and either
// produces a structural event immediately ({, [) or starts a recognizer.
// follow is the continuation to resume once a scalar value or a closed
// nested structure hands control back.
func (s *EventStream[I, F, S]) dispatchValue(lead byte, follow contTag) (events.Kind, error) {
	s.origin = s.reader.Position()
	switch {
	case lead == '"':
		return s.runString(false, follow)
	case isDigit(lead) || lead == '-':
		return s.runNumber(false, follow)
	case lead == '{':
		if s.maxDepth > 0 && len(s.stack) >= s.maxDepth {
			return 0, s.errorAt(s.origin, "maximum nesting depth exceeded")
		}
		s.reader.Advance()
		s.stack = append(s.stack, follow)
		s.current = contParseFirstKey
		return events.BeginObject, nil
	case lead == '[':
		if s.maxDepth > 0 && len(s.stack) >= s.maxDepth {
			return 0, s.errorAt(s.origin, "maximum nesting depth exceeded")
		}
		s.reader.Advance()
		s.stack = append(s.stack, follow)
		s.current = contParseFirstArrayValue
		return events.BeginArray, nil
	case lead == 't' || lead == 'T':
		return s.runWord("true", events.TrueValue, false, follow)
	case lead == 'f' || lead == 'F':
		return s.runWord("false", events.FalseValue, false, follow)
	case lead == 'n' || lead == 'N':
		return s.runWord("null", events.NullValue, false, follow)
	default:
		return 0, s.errorAt(s.origin, "value expected")
	}
}

func (s *EventStream[I, F, S]) resumeValue() (events.Kind, error) {
	switch s.pendingRecognizer {
	case recString:
		return s.runString(true, s.pendingFollow)
	case recNumber:
		return s.runNumber(true, s.pendingFollow)
	case recWord:
		return s.runWord(s.pendingWord, s.pendingWordEvent, true, s.pendingFollow)
	default:
		return 0, errors.New("jsonstream: illegal state: resume with no pending recognizer")
	}
}

func (s *EventStream[I, F, S]) runString(resumed bool, follow contTag) (events.Kind, error) {
	text, ok, err := s.reader.NextString(resumed)
	if err != nil {
		return 0, s.wrapReaderErr(err, false)
	}
	if !ok {
		s.pendingRecognizer = recString
		s.pendingFollow = follow
		s.current = contResumeValue
		return events.Again, nil
	}
	s.payload = text
	s.pendingRecognizer = recNone
	s.current = follow
	return events.StringValue, nil
}

func (s *EventStream[I, F, S]) runNumber(resumed bool, follow contTag) (events.Kind, error) {
	kind, text, ok, err := s.reader.NextNumber(resumed)
	if err != nil {
		return 0, s.wrapReaderErr(err, false)
	}
	if !ok {
		s.pendingRecognizer = recNumber
		s.pendingFollow = follow
		s.current = contResumeValue
		return events.Again, nil
	}
	s.payload = text
	s.pendingRecognizer = recNone
	s.current = follow
	return kind, nil
}

func (s *EventStream[I, F, S]) runWord(word string, event events.Kind, resumed bool, follow contTag) (events.Kind, error) {
	ok, err := s.reader.RecognizeWord(word, resumed)
	if err != nil {
		return 0, s.wrapReaderErr(err, false)
	}
	if !ok {
		s.pendingRecognizer = recWord
		s.pendingWord = word
		s.pendingWordEvent = event
		s.pendingFollow = follow
		s.current = contResumeValue
		return events.Again, nil
	}
	s.pendingRecognizer = recNone
	s.current = follow
	return event, nil
}

func (s *EventStream[I, F, S]) errorAt(origin events.Origin, detail string) error {
	return &ParseError{Origin: origin, Name: s.name, Detail: detail}
}

// wrapReaderErr translates an error surfaced by streamreader into a
// *ParseError carrying this stream's name, retargeting "unterminated
// string" to "field name not terminated" when it happened while
// recognizing an object key (keyContext == true).
func (s *EventStream[I, F, S]) wrapReaderErr(err error, keyContext bool) error {
	var pe *streamreader.ParseError
	if errors.As(err, &pe) {
		detail := pe.Detail
		if keyContext && detail == "unterminated string" {
			detail = "field name not terminated"
		}
		return &ParseError{Origin: pe.Origin, Name: s.name, Detail: detail}
	}
	return errors.Wrapf(err, "jsonstream: stream %q", s.name)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
