// Copyright 2019 The Wuffs Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// ----------------

/*
bgcode converts between Prusa's binary bgcode container format and its
canonical ASCII G-code rendering.

Usage:

	bgcode [flags] input_filename

The direction is chosen from input_filename's extension: ".bgcode" decodes
to ASCII, ".gcode" encodes to bgcode, and any other extension is rejected
with a non-zero exit. Use -o to
force an explicit output path; by default output is written next to the
input with the opposite extension.
*/
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/prusa3d/bgcode/lib/bgcode"
)

var (
	outputFlag     string
	thumbnailsFlag bool
	verboseFlag    bool

	log = logrus.New()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.WithError(err).Error("bgcode failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bgcode [flags] input_filename",
		Short:         "Convert between binary bgcode and canonical ASCII G-code",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0])
		},
	}
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "output path (default: input path with extension swapped)")
	cmd.Flags().BoolVar(&thumbnailsFlag, "thumbnails", true, "include thumbnails when rendering to ASCII")
	cmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	return cmd
}

func run(inputPath string) error {
	if verboseFlag {
		log.SetLevel(logrus.DebugLevel)
	}

	input, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("bgcode: reading %s: %w", inputPath, err)
	}

	var toBinary bool
	switch ext := strings.ToLower(filepath.Ext(inputPath)); ext {
	case ".gcode":
		toBinary = true
	case ".bgcode":
		toBinary = false
	default:
		return fmt.Errorf("bgcode: %s: unsupported extension %q (want .gcode or .bgcode)", inputPath, ext)
	}
	outputPath := outputFlag
	if outputPath == "" {
		outputPath = defaultOutputPath(inputPath, toBinary)
	}

	log.WithFields(logrus.Fields{
		"input":     inputPath,
		"output":    outputPath,
		"toBinary":  toBinary,
		"inputSize": len(input),
	}).Debug("starting conversion")

	var output []byte
	if toBinary {
		output, err = bgcode.ASCIIToBinary(string(input))
	} else {
		text, convErr := bgcode.BinaryToASCII(input, bgcode.ConvertOptions{
			IncludeThumbnails: thumbnailsFlag,
		})
		output, err = []byte(text), convErr
	}
	if err != nil {
		return fmt.Errorf("bgcode: converting %s: %w", inputPath, err)
	}

	if err := os.WriteFile(outputPath, output, 0o644); err != nil {
		return fmt.Errorf("bgcode: writing %s: %w", outputPath, err)
	}
	log.WithField("output", outputPath).Info("wrote file")
	return nil
}

func defaultOutputPath(inputPath string, toBinary bool) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(inputPath, ext)
	if toBinary {
		return base + ".bgcode"
	}
	return base + ".gcode"
}
