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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomault/pistis-json-go/events"
	"github.com/tomault/pistis-json-go/jsonstream"
	"github.com/tomault/pistis-json-go/valuetree"
)

var (
	eventsChunkSize int
	eventsMaxDepth  int
)

var eventsCmd = &cobra.Command{
	Use:   "events <file>",
	Short: "Stream raw parser events to stdout, one per line",
	Args:  cobra.ExactArgs(1),
	Example: "  pistisjson events document.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := jsonstream.NewParser[int64, float64, string](
			valuetree.Factory{},
			jsonstream.WithChunkSize(eventsChunkSize),
			jsonstream.WithMaxDepth(eventsMaxDepth),
		)
		stream, err := parser.ParseFile(args[0])
		if err != nil {
			return err
		}
		defer stream.Close()

		for {
			kind, err := stream.Next()
			if err != nil {
				return err
			}
			if kind == events.Again {
				continue
			}
			if err := printEvent(stream, kind); err != nil {
				return err
			}
			if kind == events.End {
				return nil
			}
		}
	},
}

func printEvent(stream *jsonstream.EventStream[int64, float64, string], kind events.Kind) error {
	origin := stream.Origin()
	if !kind.HasPayload() {
		fmt.Printf("%s %s\n", kind, origin)
		return nil
	}

	switch kind {
	case events.FieldName, events.StringValue:
		text, err := stream.StringPayload()
		if err != nil {
			return err
		}
		fmt.Printf("%s %s %q\n", kind, origin, text)
	case events.IntValue:
		n, err := stream.IntPayload()
		if err != nil {
			return err
		}
		fmt.Printf("%s %s %d\n", kind, origin, n)
	case events.FloatValue:
		f, err := stream.FloatPayload()
		if err != nil {
			return err
		}
		fmt.Printf("%s %s %g\n", kind, origin, f)
	}
	return nil
}

func init() {
	eventsCmd.Flags().IntVar(&eventsChunkSize, "chunk-size", jsonstream.DefaultChunkSize, "Reader buffer growth increment")
	eventsCmd.Flags().IntVar(&eventsMaxDepth, "max-depth", 0, "Maximum nesting depth (0 = unbounded)")
	rootCmd.AddCommand(eventsCmd)
}
