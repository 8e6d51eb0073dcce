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

	"github.com/star-archive/star/pkg/archiver"
	"github.com/star-archive/star/pkg/codec"
	"github.com/star-archive/star/pkg/config"
)

// Backend is the interface to represent the backend.
type Backend interface {
	// Extract extracts the archive of the given kind into the output directory.
	Extract(ctx context.Context, path string, kind codec.Kind, cfg *config.Extract) (*archiver.ExtractResult, error)

	// Create creates an archive of the given type from the children of srcDir.
	Create(ctx context.Context, archiveType, srcDir string, cfg *config.Create) (*CreateResult, error)

	// List lists the entries of the archive, the kind is detected by extension.
	List(ctx context.Context, path string) ([]*archiver.Entry, error)

	// Search finds the archives in dir whose name contains the keyword.
	Search(ctx context.Context, dir, keyword string) ([]string, error)

	// SearchAndExtract searches for archives, prompts for one and extracts it.
	SearchAndExtract(ctx context.Context, keyword string, selector Selector, cfg *config.Search) (*SearchResult, error)
}

// Selector picks one of the items interactively.
type Selector interface {
	Select(title string, items []string) (int, error)
}

// backend is the implementation of Backend.
type backend struct {
	stdout io.Writer
}

// New creates a new backend.
func New(opts ...Option) (Backend, error) {
	options := &Options{
		stdout: os.Stdout,
	}
	for _, opt := range opts {
		opt(options)
	}

	return &backend{
		stdout: options.stdout,
	}, nil
}
