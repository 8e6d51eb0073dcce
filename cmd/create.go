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

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/star-archive/star/pkg/backend"
	"github.com/star-archive/star/pkg/config"
)

var createConfig = config.NewCreate()

// createCmd represents the star command for create.
var createCmd = &cobra.Command{
	Use:                "create <type> <dir> [flags]",
	Short:              "Create a compressed tar archive of type gz, xz, bz2 or lz4 from a directory",
	Args:               cobra.ExactArgs(2),
	DisableAutoGenTag:  true,
	SilenceUsage:       true,
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreate(context.Background(), args[0], args[1])
	},
}

// init initializes create command.
func init() {
	flags := createCmd.Flags()
	flags.BoolVarP(&createConfig.Verbose, "verbose", "v", createConfig.Verbose, "print each file before adding it")
	flags.StringVarP(&createConfig.Output, "output", "o", createConfig.Output, "specify the directory to write the archive into")
	flags.StringArrayVarP(&createConfig.Excludes, "exclude", "e", createConfig.Excludes, "exclude paths matching the glob, relative to the directory, can be repeated")

	if err := viper.BindPFlags(flags); err != nil {
		panic(fmt.Errorf("bind create flags to viper: %w", err))
	}
}

// runCreate runs the create star.
func runCreate(ctx context.Context, archiveType, dir string) error {
	if err := createConfig.Validate(); err != nil {
		return err
	}

	b, err := backend.New()
	if err != nil {
		return err
	}

	result, err := b.Create(ctx, archiveType, dir, createConfig)
	if err != nil {
		return err
	}

	fmt.Printf("Successfully created archive %s (%d files, %s, %s)\n", result.Path, len(result.Entries), humanize.IBytes(uint64(result.Size)), result.Digest)
	return nil
}
