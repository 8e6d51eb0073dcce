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
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/star-archive/star/pkg/archiver"
	"github.com/star-archive/star/pkg/codec"
	"github.com/star-archive/star/pkg/config"
)

const promptSelect = "Select a file ⭐"

// SearchResult is the outcome of a search, Selected and Extract are empty
// when nothing matched.
type SearchResult struct {
	Matches  []string
	Selected string
	Extract  *archiver.ExtractResult
}

// Search returns the names of the archives directly under dir whose
// lowercased name contains keyword. The keyword itself is used as is.
func (b *backend) Search(ctx context.Context, dir, keyword string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		logrus.Errorf("failed to read directory %s: %v", dir, err)
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var matches []string
	for _, entry := range entries {
		// Follow symlinks, only regular files are candidates.
		info, err := os.Stat(filepath.Join(dir, entry.Name()))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		name := strings.ToLower(entry.Name())
		if strings.Contains(name, keyword) && codec.KindFromPath(name) != codec.Unknown {
			matches = append(matches, entry.Name())
		}
	}

	logrus.Infof("Found %d archives matching %q in %s", len(matches), keyword, dir)
	return matches, nil
}

// SearchAndExtract searches for archives matching keyword, asks the selector
// to pick one and extracts it. No match is not an error.
func (b *backend) SearchAndExtract(ctx context.Context, keyword string, selector Selector, cfg *config.Search) (*SearchResult, error) {
	matches, err := b.Search(ctx, cfg.Dir, keyword)
	if err != nil {
		return nil, err
	}

	result := &SearchResult{Matches: matches}
	if len(matches) == 0 {
		return result, nil
	}

	idx, err := selector.Select(promptSelect, matches)
	if err != nil {
		logrus.Errorf("failed to select archive: %v", err)
		return result, fmt.Errorf("failed to select archive: %w", err)
	}

	if idx < 0 || idx >= len(matches) {
		return result, fmt.Errorf("invalid selection: %d", idx)
	}

	result.Selected = matches[idx]
	kind := codec.KindFromPath(result.Selected)
	if kind == codec.Unknown {
		logrus.Errorf("failed to detect archive type of %s", result.Selected)
		return result, fmt.Errorf("%w: %s", codec.ErrUnknownKind, result.Selected)
	}

	result.Extract, err = b.Extract(ctx, filepath.Join(cfg.Dir, result.Selected), kind, cfg.Extract())
	if err != nil {
		return result, err
	}

	return result, nil
}
