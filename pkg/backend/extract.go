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
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/star-archive/star/internal/pb"
	"github.com/star-archive/star/pkg/archiver"
	"github.com/star-archive/star/pkg/codec"
	"github.com/star-archive/star/pkg/config"
)

const (
	// defaultBufferSize is the default buffer size for reading the archive, default is 4MB.
	defaultBufferSize = 4 * 1024 * 1024

	promptExtracting = "Extracting"
)

// Extract extracts the archive.
func (b *backend) Extract(ctx context.Context, path string, kind codec.Kind, cfg *config.Extract) (*archiver.ExtractResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if kind == codec.Unknown {
		logrus.Errorf("failed to select codec for %s", path)
		return nil, fmt.Errorf("%w: %s", codec.ErrUnknownKind, path)
	}

	logrus.Infof("Extracting %s archive %s to %s", kind, path, cfg.Output)

	file, err := os.Open(path)
	if err != nil {
		logrus.Errorf("failed to open archive %s: %v", path, err)
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat archive: %w", err)
	}

	name := filepath.Base(path)
	bar := pb.NewProgressBar()
	defer bar.Stop()

	reader, err := codec.NewReader(kind, bufio.NewReaderSize(bar.Add(pb.NormalizePrompt(promptExtracting), name, info.Size(), file), defaultBufferSize))
	if err != nil {
		bar.Abort(name)
		logrus.Errorf("failed to open %s stream of %s: %v", kind, path, err)
		return nil, fmt.Errorf("failed to open %s stream: %w", kind, err)
	}
	defer reader.Close()

	var opts []archiver.Option
	if cfg.Verbose {
		opts = append(opts, archiver.WithVerbose(b.stdout))
	}

	result, err := archiver.Untar(reader, cfg.Output, opts...)
	if err != nil {
		bar.Abort(name)
		logrus.Errorf("failed to extract archive %s: %v", path, err)
		return result, fmt.Errorf("failed to extract archive %s: %w", path, err)
	}

	bar.Complete(name, fmt.Sprintf("%s %s", pb.NormalizePrompt("Extracted"), name))
	logrus.Infof("Extracted %d entries from %s, %d failed", len(result.Extracted), path, len(result.Failures))
	return result, nil
}
