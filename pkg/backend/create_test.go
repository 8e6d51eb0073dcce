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

package backend

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/star-archive/star/pkg/codec"
	"github.com/star-archive/star/pkg/config"
)

var datasetFiles = map[string]string{
	"README.md":             "# dataset",
	"train/part-0000.csv":   "a,b,c\n1,2,3\n",
	"train/part-0001.csv":   "a,b,c\n4,5,6\n",
	"eval/labels/gold.json": `{"labels":[1,0,1]}`,
	"empty.txt":             "",
}

func TestCreateExtractRoundTrip(t *testing.T) {
	ctx := context.Background()

	for _, kind := range codec.Kinds {
		t.Run(kind.String(), func(t *testing.T) {
			workDir := t.TempDir()
			srcDir := filepath.Join(workDir, "dataset")
			writeTree(t, srcDir, datasetFiles)

			b := &backend{stdout: io.Discard}
			result, err := b.Create(ctx, kind.String(), srcDir, &config.Create{Output: workDir})
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(workDir, "dataset"+kind.Extension()), result.Path)
			assert.Equal(t, []string{
				"dataset/README.md",
				"dataset/empty.txt",
				"dataset/eval/labels/gold.json",
				"dataset/train/part-0000.csv",
				"dataset/train/part-0001.csv",
			}, result.Entries)

			data, err := os.ReadFile(result.Path)
			require.NoError(t, err)
			assert.Equal(t, int64(len(data)), result.Size)
			assert.Equal(t, fmt.Sprintf("sha256:%x", sha256.Sum256(data)), result.Digest.String())

			entries, err := b.List(ctx, result.Path)
			require.NoError(t, err)
			var names []string
			for _, entry := range entries {
				names = append(names, entry.Name)
			}
			assert.Equal(t, result.Entries, names)

			destDir := t.TempDir()
			extracted, err := b.Extract(ctx, result.Path, kind, &config.Extract{Output: destDir})
			require.NoError(t, err)
			assert.Empty(t, extracted.Failures)
			assert.Equal(t, result.Entries, extracted.Extracted)

			for name, content := range datasetFiles {
				got, err := os.ReadFile(filepath.Join(destDir, "dataset", filepath.FromSlash(name)))
				require.NoError(t, err, name)
				assert.Equal(t, content, string(got), name)
			}
		})
	}
}

func TestCreateEmptyDirectory(t *testing.T) {
	ctx := context.Background()
	workDir := t.TempDir()
	srcDir := filepath.Join(workDir, "nothing")
	require.NoError(t, os.MkdirAll(srcDir, 0755))

	b := &backend{stdout: io.Discard}
	result, err := b.Create(ctx, "xz", srcDir, &config.Create{Output: workDir})
	require.NoError(t, err)
	assert.Empty(t, result.Entries)
	assert.FileExists(t, result.Path)

	entries, err := b.List(ctx, result.Path)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCreateUnsupportedType(t *testing.T) {
	workDir := t.TempDir()
	srcDir := filepath.Join(workDir, "src")
	writeTree(t, srcDir, map[string]string{"a.txt": "a"})
	outDir := filepath.Join(workDir, "out")
	require.NoError(t, os.MkdirAll(outDir, 0755))

	b := &backend{stdout: io.Discard}
	result, err := b.Create(context.Background(), "zip", srcDir, &config.Create{Output: outDir})
	assert.ErrorIs(t, err, codec.ErrUnknownKind)
	assert.Nil(t, result)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no output file must be created")
}

func TestCreateInvalidSource(t *testing.T) {
	workDir := t.TempDir()
	writeTree(t, workDir, map[string]string{"file.txt": "not a directory"})

	b := &backend{stdout: io.Discard}
	_, err := b.Create(context.Background(), "gz", filepath.Join(workDir, "file.txt"), &config.Create{Output: workDir})
	assert.Error(t, err)

	_, err = b.Create(context.Background(), "gz", filepath.Join(workDir, "missing"), &config.Create{Output: workDir})
	assert.Error(t, err)

	_, err = b.Create(context.Background(), "gz", workDir, &config.Create{Output: workDir, Excludes: []string{"[bad"}})
	assert.Error(t, err)
}

func TestCreateFilesystemRoot(t *testing.T) {
	outDir := t.TempDir()

	b := &backend{stdout: io.Discard}
	result, err := b.Create(context.Background(), "gz", string(filepath.Separator), &config.Create{Output: outDir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no name")
	assert.Nil(t, result)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no output file must be created")
}

func TestCreateIntoSourceDirectory(t *testing.T) {
	ctx := context.Background()
	srcDir := filepath.Join(t.TempDir(), "logs")
	writeTree(t, srcDir, map[string]string{
		"app.log":      "started",
		"app.log.1":    "rotated",
		"debug/trace":  "trace",
		"debug/x.tmp":  "tmp",
		"notes/readme": "readme",
	})

	var stdout bytes.Buffer
	b := &backend{stdout: &stdout}
	cfg := &config.Create{Output: srcDir, Verbose: true, Excludes: []string{"**/*.tmp"}}

	first, err := b.Create(ctx, "bz2", srcDir, cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(srcDir, "logs.tar.bz2"), first.Path)

	// The archive of the previous run lives in the source and is skipped.
	second, err := b.Create(ctx, "bz2", srcDir, cfg)
	require.NoError(t, err)
	assert.Equal(t, first.Entries, second.Entries)
	assert.Equal(t, []string{"logs/app.log", "logs/app.log.1", "logs/debug/trace", "logs/notes/readme"}, second.Entries)
	assert.Contains(t, stdout.String(), "Adding file: logs/debug/trace\n")
	assert.NotContains(t, stdout.String(), "x.tmp")
}

func TestCreateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := &backend{stdout: io.Discard}
	_, err := b.Create(ctx, "gz", t.TempDir(), config.NewCreate())
	assert.ErrorIs(t, err, context.Canceled)
}
