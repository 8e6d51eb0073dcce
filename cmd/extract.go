/*
 *     Copyright 2025 The CNAI Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/star-archive/star/pkg/archiver"
	"github.com/star-archive/star/pkg/backend"
	"github.com/star-archive/star/pkg/codec"
	"github.com/star-archive/star/pkg/config"
)

var extractConfig = config.NewExtract()

// extractCmd represents the star command for extract, the archive type is
// detected from the file extension.
var extractCmd = &cobra.Command{
	Use:                "extract <file> [flags]",
	Short:              "Extract a compressed tar archive, detecting its type from the extension",
	Args:               cobra.ExactArgs(1),
	DisableAutoGenTag:  true,
	SilenceUsage:       true,
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract(context.Background(), args[0], codec.KindFromPath(args[0]))
	},
}

// newExtractKindCmd creates the extract command of a fixed archive kind,
// such as extract-gz.
func newExtractKindCmd(kind codec.Kind) *cobra.Command {
	cmd := &cobra.Command{
		Use:                fmt.Sprintf("extract-%s <file> [flags]", kind),
		Short:              fmt.Sprintf("Extract a %s archive", kind.Extension()),
		Args:               cobra.ExactArgs(1),
		DisableAutoGenTag:  true,
		SilenceUsage:       true,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(context.Background(), args[0], kind)
		},
	}

	bindExtractFlags(cmd)
	return cmd
}

// init initializes extract command.
func init() {
	bindExtractFlags(extractCmd)
}

func bindExtractFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.BoolVarP(&extractConfig.Verbose, "verbose", "v", extractConfig.Verbose, "print each entry before extracting it")
	flags.StringVarP(&extractConfig.Output, "output", "o", extractConfig.Output, "specify the directory to extract into")

	if err := viper.BindPFlags(flags); err != nil {
		panic(fmt.Errorf("bind extract flags to viper: %w", err))
	}
}

// runExtract runs the extract star.
func runExtract(ctx context.Context, path string, kind codec.Kind) error {
	if err := extractConfig.Validate(); err != nil {
		return err
	}

	b, err := backend.New()
	if err != nil {
		return err
	}

	result, err := b.Extract(ctx, path, kind, extractConfig)
	if err != nil {
		return err
	}

	printFailures(os.Stderr, result)
	fmt.Printf("Files extracted successfully to %s\n", extractConfig.Output)
	return nil
}

// printFailures reports the entries which could not be extracted.
func printFailures(w io.Writer, result *archiver.ExtractResult) {
	for _, failure := range result.Failures {
		fmt.Fprintf(w, "Error unpacking file %s: %v\n", failure.Name, failure.Err)
	}
}
