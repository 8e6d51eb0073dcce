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
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/star-archive/star/internal/prompt"
	"github.com/star-archive/star/pkg/backend"
	"github.com/star-archive/star/pkg/config"
)

var searchConfig = config.NewSearch()

// searchCmd represents the star command for search.
var searchCmd = &cobra.Command{
	Use:                "search <keyword> [flags]",
	Short:              "Search the current directory for archives by keyword and extract the selected one",
	Args:               cobra.ExactArgs(1),
	DisableAutoGenTag:  true,
	SilenceUsage:       true,
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch(context.Background(), args[0])
	},
}

// init initializes search command.
func init() {
	flags := searchCmd.Flags()
	flags.BoolVarP(&searchConfig.Verbose, "verbose", "v", searchConfig.Verbose, "print each entry before extracting it")
	flags.StringVarP(&searchConfig.Output, "output", "o", searchConfig.Output, "specify the directory to extract into")
	flags.StringVar(&searchConfig.Dir, "dir", searchConfig.Dir, "specify the directory to search in")

	if err := viper.BindPFlags(flags); err != nil {
		panic(fmt.Errorf("bind search flags to viper: %w", err))
	}
}

// runSearch runs the search star.
func runSearch(ctx context.Context, keyword string) error {
	if err := searchConfig.Validate(); err != nil {
		return err
	}

	b, err := backend.New()
	if err != nil {
		return err
	}

	result, err := b.SearchAndExtract(ctx, keyword, prompt.NewSelector(), searchConfig)
	if err != nil {
		return err
	}

	if len(result.Matches) == 0 {
		fmt.Println("No files found")
		return nil
	}

	printFailures(os.Stderr, result.Extract)
	fmt.Printf("Files extracted successfully to %s\n", searchConfig.Output)
	return nil
}
