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
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/star-archive/star/pkg/codec"
	"github.com/star-archive/star/pkg/config"
)

func TestList(t *testing.T) {
	ctx := context.Background()
	workDir := t.TempDir()
	srcDir := filepath.Join(workDir, "photos")
	writeTree(t, srcDir, map[string]string{
		"2023/beach.jpg": "jpeg",
		"2024/snow.jpg":  "jpeg jpeg",
		"index.txt":      "index",
	})

	b := &backend{stdout: io.Discard}
	created, err := b.Create(ctx, "lz4", srcDir, &config.Create{Output: workDir})
	require.NoError(t, err)

	entries, err := b.List(ctx, created.Path)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "photos/2023/beach.jpg", entries[0].Name)
	assert.Equal(t, "photos/2024/snow.jpg", entries[1].Name)
	assert.Equal(t, int64(len("jpeg jpeg")), entries[1].Size)
	assert.Equal(t, "photos/index.txt", entries[2].Name)
	assert.False(t, entries[2].IsDir)
}

func TestListUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.zip")
	require.NoError(t, os.WriteFile(path, []byte("PK"), 0644))

	b := &backend{stdout: io.Discard}
	_, err := b.List(context.Background(), path)
	assert.ErrorIs(t, err, codec.ErrUnknownKind)

	_, err = b.List(context.Background(), filepath.Join(t.TempDir(), "missing.tar.bz2"))
	assert.Error(t, err)
}
