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
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	sha256 "github.com/minio/sha256-simd"
	godigest "github.com/opencontainers/go-digest"
	"github.com/sirupsen/logrus"

	"github.com/star-archive/star/internal/pb"
	"github.com/star-archive/star/pkg/archiver"
	"github.com/star-archive/star/pkg/codec"
	"github.com/star-archive/star/pkg/config"
)

const promptCreating = "Creating"

// CreateResult describes a created archive.
type CreateResult struct {
	// Path is the path of the archive file.
	Path string

	// Entries are the names written into the archive in order.
	Entries []string

	// Size is the size of the archive file in bytes.
	Size int64

	// Digest is the sha256 digest of the archive file.
	Digest godigest.Digest
}

// Create creates the archive named after srcDir from its immediate children.
func (b *backend) Create(ctx context.Context, archiveType, srcDir string, cfg *config.Create) (*CreateResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	kind := codec.KindFromName(archiveType)
	if kind == codec.Unknown {
		logrus.Errorf("failed to select codec for type %q", archiveType)
		return nil, fmt.Errorf("%w: %s", codec.ErrUnknownKind, archiveType)
	}

	filter, err := archiver.NewPathFilter(cfg.Excludes...)
	if err != nil {
		return nil, err
	}

	absSrc, err := filepath.Abs(srcDir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path of %s: %w", srcDir, err)
	}

	// The directory name doubles as the archive name and its root folder.
	baseFolder := filepath.Base(absSrc)
	if baseFolder == string(filepath.Separator) || baseFolder == "." {
		logrus.Errorf("failed to name archive of %s", srcDir)
		return nil, fmt.Errorf("cannot create archive of %s: the directory has no name", srcDir)
	}

	files, err := fileSet(absSrc)
	if err != nil {
		logrus.Errorf("failed to read source directory %s: %v", srcDir, err)
		return nil, err
	}
	name := baseFolder + kind.Extension()
	outputPath, err := filepath.Abs(filepath.Join(cfg.Output, name))
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path of output: %w", err)
	}

	logrus.Infof("Creating %s archive %s from %s", kind, outputPath, absSrc)

	bar := pb.NewProgressBar()
	defer bar.Stop()
	if total := totalSize(absSrc); total > 0 {
		bar.Track(pb.NormalizePrompt(promptCreating), name, total)
	}

	opts := []archiver.Option{
		archiver.WithFilter(filter),
		archiver.WithSkipPaths(outputPath),
		archiver.WithProxyReader(func(r io.Reader) io.Reader {
			return bar.Proxy(name, r)
		}),
	}
	if cfg.Verbose {
		opts = append(opts, archiver.WithVerbose(b.stdout))
	}

	result, err := createArchive(outputPath, kind, files, baseFolder, opts...)
	if err != nil {
		bar.Abort(name)
		logrus.Errorf("failed to create archive %s: %v", outputPath, err)
		return result, fmt.Errorf("failed to create archive %s: %w", outputPath, err)
	}

	bar.Complete(name, fmt.Sprintf("%s %s", pb.NormalizePrompt("Created"), name))
	logrus.Infof("Created archive %s with %d entries [digest: %s]", outputPath, len(result.Entries), result.Digest)
	return result, nil
}

// createArchive writes the archive file. The codec stream and the file are
// closed on every return so a failed entry never leaves a truncated stream.
func createArchive(outputPath string, kind codec.Kind, files []string, baseFolder string, opts ...archiver.Option) (result *CreateResult, err error) {
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", closeErr)
		}
	}()

	hash := sha256.New()
	counter := &countingWriter{}
	writer, err := codec.NewWriter(kind, io.MultiWriter(file, hash, counter))
	if err != nil {
		return nil, err
	}

	result = &CreateResult{Path: outputPath}
	result.Entries, err = archiver.Tar(writer, files, baseFolder, opts...)
	if closeErr := writer.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("failed to close %s writer: %w", kind, closeErr)
	}
	if err != nil {
		return result, err
	}

	result.Size = counter.n
	result.Digest = godigest.NewDigest(godigest.SHA256, hash)
	return result, nil
}

// fileSet returns the immediate children of dir in lexical order.
func fileSet(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat source directory: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("source %s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read source directory: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		files = append(files, filepath.Join(dir, entry.Name()))
	}

	return files, nil
}

// totalSize sums the size of the regular files under dir, it is only used
// to size the progress bar so unreadable paths are ignored.
func totalSize(dir string) int64 {
	var total int64
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		if d.Type().IsRegular() {
			if info, err := d.Info(); err == nil {
				total += info.Size()
			}
		}

		return nil
	})

	return total
}

type countingWriter struct {
	n int64
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += int64(len(p))
	return len(p), nil
}
