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

package archiver

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// PathFilter matches archive-relative paths against exclude patterns.
// Patterns use doublestar syntax, so "**/*.log" matches at any depth.
type PathFilter struct {
	patterns []string
}

func NewPathFilter(patterns ...string) (*PathFilter, error) {
	var cleaned []string
	for _, p := range patterns {
		p = filepath.ToSlash(p)
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid exclude pattern: %q", p)
		}
		// walked paths never carry a trailing separator.
		cleaned = append(cleaned, strings.TrimRight(p, "/"))
	}

	return &PathFilter{patterns: cleaned}, nil
}

// Match reports whether the slash separated path is excluded.
func (pf *PathFilter) Match(path string) bool {
	if pf == nil || len(pf.patterns) == 0 {
		return false
	}

	for _, pattern := range pf.patterns {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			// Patterns were validated when creating the filter.
			return false
		}
		if matched {
			return true
		}
	}

	return false
}
