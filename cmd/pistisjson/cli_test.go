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

package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomault/pistis-json-go/events"
	"github.com/tomault/pistis-json-go/jsonstream"
	"github.com/tomault/pistis-json-go/valuetree"
)

func writeTempFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestValidateFileAcceptsWellFormedDocument(t *testing.T) {
	path := writeTempFile(t, `{"a":1,"b":[true,null,"x"]}`)
	validateChunkSize = jsonstream.DefaultChunkSize
	assert.NoError(t, validateFile(path))
}

func TestValidateFileRejectsMalformedDocument(t *testing.T) {
	path := writeTempFile(t, `{"a":1`)
	validateChunkSize = jsonstream.DefaultChunkSize
	err := validateFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "value expected")
}

func TestBuildValueRoundTripsObject(t *testing.T) {
	parser := jsonstream.NewParser[int64, float64, string](valuetree.Factory{})
	stream := parser.ParseString("t", `{"a":1,"b":[true,null,"x"]}`)

	value, err := buildValue(stream)
	require.NoError(t, err)

	obj, ok := value.(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 1, obj["a"])
}

func TestBuildValueHandlesBareScalar(t *testing.T) {
	parser := jsonstream.NewParser[int64, float64, string](valuetree.Factory{})
	stream := parser.ParseString("t", `42`)

	value, err := buildValue(stream)
	require.NoError(t, err)
	assert.EqualValues(t, 42, value)
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	orig := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestPrintEventHandlesEveryPayloadKind(t *testing.T) {
	parser := jsonstream.NewParser[int64, float64, string](valuetree.Factory{})
	stream := parser.ParseString("t", `{"a":1,"b":2.5}`)

	out := captureStdout(t, func() {
		for {
			kind, err := stream.Next()
			require.NoError(t, err)
			if kind == events.Again {
				continue
			}
			require.NoError(t, printEvent(stream, kind))
			if kind == events.End {
				return
			}
		}
	})

	assert.Contains(t, out, `"a"`)
	assert.Contains(t, out, "1")
	assert.Contains(t, out, `"b"`)
	assert.Contains(t, out, "2.5")
}
