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

package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSource(t *testing.T) {
	s := NewString("hello")
	buf := make([]byte, 3)

	n, again, err := s.Read(buf)
	require.NoError(t, err)
	assert.False(t, again)
	assert.Equal(t, 3, n)
	assert.Equal(t, "hel", string(buf[:n]))

	n, again, err = s.Read(buf)
	require.NoError(t, err)
	assert.False(t, again)
	assert.Equal(t, 2, n)
	assert.Equal(t, "lo", string(buf[:n]))

	n, again, err = s.Read(buf)
	require.NoError(t, err)
	assert.False(t, again)
	assert.Equal(t, 0, n)
}

func TestReaderSource(t *testing.T) {
	s := NewReader(strings.NewReader("abc"))
	buf := make([]byte, 8)
	n, again, err := s.Read(buf)
	require.NoError(t, err)
	assert.False(t, again)
	assert.Equal(t, "abc", string(buf[:n]))
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a":1}`), 0o600))

	s, err := NewFile(path)
	require.NoError(t, err)
	defer s.(interface{ Close() error }).Close()

	buf := make([]byte, 64)
	n, again, err := s.Read(buf)
	require.NoError(t, err)
	assert.False(t, again)
	assert.Equal(t, `{"a":1}`, string(buf[:n]))
}

func TestNonBlockingSource(t *testing.T) {
	calls := 0
	s := NewNonBlocking(strings.NewReader("xy"), func() bool {
		calls++
		return calls == 1
	})

	buf := make([]byte, 4)
	n, again, err := s.Read(buf)
	require.NoError(t, err)
	assert.True(t, again)
	assert.Equal(t, 0, n)

	n, again, err = s.Read(buf)
	require.NoError(t, err)
	assert.False(t, again)
	assert.Equal(t, "xy", string(buf[:n]))
}
