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
	"io"
	"io/fs"
	"time"
)

// Entry is a record within a tar stream.
type Entry struct {
	// Name is the archive-relative path of the entry.
	Name string

	// Size is the size of the entry content in bytes.
	Size int64

	// Mode is the file mode and permission bits of the entry.
	Mode fs.FileMode

	// ModTime is the modification time of the entry.
	ModTime time.Time

	// IsDir reports whether the entry is a directory.
	IsDir bool

	// Linkname is the target of a symlink entry.
	Linkname string
}

// EntryError records a failure to unpack a single entry.
type EntryError struct {
	Name string
	Err  error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("failed to extract %s: %v", e.Name, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

// ExtractResult is the outcome of an extraction. Failures holds the entries
// which could not be unpacked, extraction continued past them.
type ExtractResult struct {
	Extracted []string
	Failures  []*EntryError
}

func (r *ExtractResult) fail(name string, err error) {
	r.Failures = append(r.Failures, &EntryError{Name: name, Err: err})
}

type Option func(*options)

type options struct {
	verbose io.Writer
	filter  *PathFilter
	skip    map[string]struct{}
	proxy   func(io.Reader) io.Reader
}

// WithVerbose reports each processed entry to w.
func WithVerbose(w io.Writer) Option {
	return func(o *options) {
		o.verbose = w
	}
}

// WithFilter skips the paths matched by the filter when creating an archive.
func WithFilter(filter *PathFilter) Option {
	return func(o *options) {
		o.filter = filter
	}
}

// WithSkipPaths skips the exact filesystem paths when creating an archive.
func WithSkipPaths(paths ...string) Option {
	return func(o *options) {
		for _, path := range paths {
			o.skip[path] = struct{}{}
		}
	}
}

// WithProxyReader wraps the reader of every file added to an archive.
func WithProxyReader(proxy func(io.Reader) io.Reader) Option {
	return func(o *options) {
		o.proxy = proxy
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		skip: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(o)
	}

	return o
}
