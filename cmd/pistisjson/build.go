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
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/tomault/pistis-json-go/events"
	"github.com/tomault/pistis-json-go/jsonstream"
	"github.com/tomault/pistis-json-go/valuetree"
)

var (
	buildChunkSize int
	buildMaxDepth  int
)

var buildCmd = &cobra.Command{
	Use:   "build <file>",
	Short: "Parse a document into a value tree and re-serialize it",
	Args:  cobra.ExactArgs(1),
	Example: "  pistisjson build document.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := jsonstream.NewParser[int64, float64, string](
			valuetree.Factory{},
			jsonstream.WithChunkSize(buildChunkSize),
			jsonstream.WithMaxDepth(buildMaxDepth),
		)
		stream, err := parser.ParseFile(args[0])
		if err != nil {
			return err
		}
		defer stream.Close()

		value, err := buildValue(stream)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return errors.Wrap(err, "pistisjson: re-serializing value")
		}
		fmt.Println(string(out))
		return nil
	},
}

// buildValue dispatches on the root value's first lookahead: an object or
// array drives jsonstream.ReadObject/ReadArray; any other kind is a bare
// scalar, read directly.
func buildValue(stream *jsonstream.EventStream[int64, float64, string]) (any, error) {
	kind, err := stream.Next()
	for kind == events.Again {
		kind, err = stream.Next()
	}
	if err != nil {
		return nil, err
	}

	switch kind {
	case events.BeginObject:
		return jsonstream.ReadObject(stream, valuetree.NewArray, valuetree.NewObject)
	case events.BeginArray:
		return jsonstream.ReadArray(stream, valuetree.NewArray, valuetree.NewObject)
	case events.IntValue:
		return stream.IntPayload()
	case events.FloatValue:
		return stream.FloatPayload()
	case events.StringValue:
		return stream.StringPayload()
	case events.TrueValue:
		return true, nil
	case events.FalseValue:
		return false, nil
	case events.NullValue:
		return nil, nil
	default:
		return nil, errors.Errorf("pistisjson: unexpected root event %s", kind)
	}
}

func init() {
	buildCmd.Flags().IntVar(&buildChunkSize, "chunk-size", jsonstream.DefaultChunkSize, "Reader buffer growth increment")
	buildCmd.Flags().IntVar(&buildMaxDepth, "max-depth", 0, "Maximum nesting depth (0 = unbounded)")
	rootCmd.AddCommand(buildCmd)
}
