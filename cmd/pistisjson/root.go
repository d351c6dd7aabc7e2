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

// Command pistisjson drives jsonstream from the command line: stream raw
// events, build a value tree, or batch-validate a set of files.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tomault/pistis-json-go/common"
	"github.com/tomault/pistis-json-go/logger"
)

var (
	logLevel string
	logFile  string

	// requestID correlates one CLI invocation's log lines, grounded on
	// the teacher's use of google/uuid for job/session correlation.
	requestID = uuid.NewString()
)

var rootCmd = &cobra.Command{
	Use:           common.App,
	Short:         "Stream, build, and validate JSON documents",
	Version:       common.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		opt := logger.Options{Level: logLevel}
		if logFile == "" {
			opt.Stdout = true
		} else {
			opt.Filename = logFile
			opt.MaxSize = 100
			opt.MaxBackups = 5
			opt.MaxAge = 7
		}
		logger.SetOptions(opt)
		logger.Debugf("request %s: %s %v", requestID, cmd.Name(), args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path (defaults to stdout)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", common.App, err)
		os.Exit(1)
	}
}
