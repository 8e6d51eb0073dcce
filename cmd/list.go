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
	"text/tabwriter"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/star-archive/star/pkg/archiver"
	"github.com/star-archive/star/pkg/backend"
	"github.com/star-archive/star/pkg/config"
)

var listConfig = config.NewList()

// listCmd represents the star command for list.
var listCmd = &cobra.Command{
	Use:                "list <file> [flags]",
	Aliases:            []string{"ls"},
	Short:              "List the entries of a compressed tar archive",
	Args:               cobra.ExactArgs(1),
	DisableAutoGenTag:  true,
	SilenceUsage:       true,
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(context.Background(), args[0])
	},
}

// init initializes list command.
func init() {
	flags := listCmd.Flags()
	flags.BoolVarP(&listConfig.Long, "long", "l", listConfig.Long, "print mode, size and modification time of each entry")

	if err := viper.BindPFlags(flags); err != nil {
		panic(fmt.Errorf("bind list flags to viper: %w", err))
	}
}

// runList runs the list star.
func runList(ctx context.Context, path string) error {
	b, err := backend.New()
	if err != nil {
		return err
	}

	entries, err := b.List(ctx, path)
	if err != nil {
		return err
	}

	printEntries(os.Stdout, entries, listConfig.Long)
	return nil
}

func printEntries(w io.Writer, entries []*archiver.Entry, long bool) {
	if !long {
		for _, entry := range entries {
			fmt.Fprintln(w, entry.Name)
		}

		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 4, ' ', 0)
	defer tw.Flush()
	fmt.Fprintln(tw, "MODE\tSIZE\tMODIFIED\tNAME")

	for _, entry := range entries {
		name := entry.Name
		if entry.Linkname != "" {
			name = fmt.Sprintf("%s -> %s", name, entry.Linkname)
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", entry.Mode, humanize.IBytes(uint64(entry.Size)), humanize.Time(entry.ModTime), name)
	}
}
