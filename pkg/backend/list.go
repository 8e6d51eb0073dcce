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

	"github.com/sirupsen/logrus"

	"github.com/star-archive/star/pkg/archiver"
	"github.com/star-archive/star/pkg/codec"
)

// List lists the entries of the archive without extracting them.
func (b *backend) List(ctx context.Context, path string) ([]*archiver.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	kind := codec.KindFromPath(path)
	if kind == codec.Unknown {
		logrus.Errorf("failed to detect archive type of %s", path)
		return nil, fmt.Errorf("%w: %s", codec.ErrUnknownKind, path)
	}

	file, err := os.Open(path)
	if err != nil {
		logrus.Errorf("failed to open archive %s: %v", path, err)
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer file.Close()

	reader, err := codec.NewReader(kind, bufio.NewReaderSize(file, defaultBufferSize))
	if err != nil {
		logrus.Errorf("failed to open %s stream of %s: %v", kind, path, err)
		return nil, fmt.Errorf("failed to open %s stream: %w", kind, err)
	}
	defer reader.Close()

	entries, err := archiver.List(reader)
	if err != nil {
		logrus.Errorf("failed to list archive %s: %v", path, err)
		return nil, fmt.Errorf("failed to list archive %s: %w", path, err)
	}

	return entries, nil
}
