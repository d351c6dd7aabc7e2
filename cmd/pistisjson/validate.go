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
	"os"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/tomault/pistis-json-go/common"
	"github.com/tomault/pistis-json-go/events"
	"github.com/tomault/pistis-json-go/jsonstream"
	"github.com/tomault/pistis-json-go/valuetree"
)

var (
	validateChunkSize int
	validateMaxDepth  int
)

var validateCmd = &cobra.Command{
	Use:   "validate <file...>",
	Short: "Parse each file to completion, reporting every failure",
	Args:  cobra.MinimumNArgs(1),
	Example: "  pistisjson validate a.json b.json c.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		return validateFiles(args)
	},
}

// validateFiles parses each path to completion in a bounded worker pool,
// collecting one error per failed file instead of stopping at the first.
func validateFiles(paths []string) error {
	jobs := make(chan string)
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		result *multierror.Error
	)

	workers := common.Concurrency()
	if workers > len(paths) {
		workers = len(paths)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				if err := validateFile(path); err != nil {
					mu.Lock()
					result = multierror.Append(result, err)
					mu.Unlock()
				}
			}
		}()
	}
	for _, path := range paths {
		jobs <- path
	}
	close(jobs)
	wg.Wait()

	if result != nil {
		for _, err := range result.Errors {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
	return nil
}

func validateFile(path string) error {
	parser := jsonstream.NewParser[int64, float64, string](
		valuetree.Factory{},
		jsonstream.WithChunkSize(validateChunkSize),
		jsonstream.WithMaxDepth(validateMaxDepth),
	)
	stream, err := parser.ParseFile(path)
	if err != nil {
		return errors.Wrapf(err, "%s", path)
	}
	defer stream.Close()

	for {
		kind, err := stream.Next()
		if err != nil {
			return errors.Wrapf(err, "%s", path)
		}
		if kind == events.End {
			return nil
		}
	}
}

func init() {
	validateCmd.Flags().IntVar(&validateChunkSize, "chunk-size", jsonstream.DefaultChunkSize, "Reader buffer growth increment")
	validateCmd.Flags().IntVar(&validateMaxDepth, "max-depth", 0, "Maximum nesting depth (0 = unbounded)")
	rootCmd.AddCommand(validateCmd)
}
