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

package common

const (
	// App is the CLI's program name.
	App = "pistisjson"

	// Version is the CLI's release version.
	Version = "v0.1.0"

	// DefaultChunkSize is a refill size for a streamreader.Reader. The CLI's
	// --chunk-size flag does not use it; its default is
	// jsonstream.DefaultChunkSize.
	DefaultChunkSize = 4096

	// DefaultMaxDepth is a nesting bound for an EventStream. The CLI's
	// --max-depth flag does not use it; its default is 0 (unbounded).
	DefaultMaxDepth = 512
)
