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
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Tar writes the files into w as a tar stream. Every path is stored as
// <baseFolder>/<path relative to the parent of files[0]>, directories are
// walked recursively and only their files are stored. The tar writer is
// closed on every return so the stream is always terminated, Tar returns
// the names of the entries written in order.
func Tar(w io.Writer, files []string, baseFolder string, opts ...Option) (added []string, err error) {
	o := newOptions(opts)
	tw := tar.NewWriter(w)
	defer func() {
		if closeErr := tw.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close tar writer: %w", closeErr)
		}
	}()

	// An empty file set has no base path and produces an empty archive.
	var basePath string
	if len(files) > 0 {
		basePath = filepath.Dir(files[0])
	}

	t := &tarWriter{
		tw:         tw,
		opts:       o,
		basePath:   basePath,
		baseFolder: baseFolder,
	}

	for _, file := range files {
		if err := t.add(file); err != nil {
			return t.added, err
		}
	}

	return t.added, nil
}

type tarWriter struct {
	tw         *tar.Writer
	opts       *options
	basePath   string
	baseFolder string
	added      []string
}

func (t *tarWriter) add(srcPath string) error {
	if _, ok := t.opts.skip[srcPath]; ok {
		return nil
	}

	info, err := os.Lstat(srcPath)
	if err != nil {
		return fmt.Errorf("failed to stat source path: %w", err)
	}

	relPath, err := filepath.Rel(t.basePath, srcPath)
	if err != nil {
		return fmt.Errorf("failed to get relative path: %w", err)
	}
	relPath = filepath.ToSlash(relPath)

	if t.opts.filter.Match(relPath) {
		logrus.Debugf("excluding %s from archive", relPath)
		return nil
	}

	name := path.Join(t.baseFolder, relPath)
	switch {
	case info.IsDir():
		children, err := os.ReadDir(srcPath)
		if err != nil {
			return fmt.Errorf("failed to read directory %s: %w", srcPath, err)
		}

		for _, child := range children {
			if err := t.add(filepath.Join(srcPath, child.Name())); err != nil {
				return err
			}
		}

		return nil
	case info.Mode()&os.ModeSymlink != 0:
		link, err := os.Readlink(srcPath)
		if err != nil {
			return fmt.Errorf("failed to read symlink %s: %w", srcPath, err)
		}

		return t.writeHeader(info, name, link)
	case info.Mode().IsRegular():
		return t.writeFile(srcPath, info, name)
	default:
		logrus.Warnf("skipping %s with unsupported file mode %s", srcPath, info.Mode())
		return nil
	}
}

func (t *tarWriter) writeHeader(info os.FileInfo, name, link string) error {
	if t.opts.verbose != nil {
		fmt.Fprintf(t.opts.verbose, "Adding file: %s\n", name)
	}

	header, err := tar.FileInfoHeader(info, link)
	if err != nil {
		return fmt.Errorf("failed to create tar header: %w", err)
	}

	// Set the header name to place the entry under the base folder.
	header.Name = name
	if err := t.tw.WriteHeader(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	t.added = append(t.added, name)
	return nil
}

func (t *tarWriter) writeFile(srcPath string, info os.FileInfo, name string) error {
	file, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", srcPath, err)
	}
	defer file.Close()

	if err := t.writeHeader(info, name, ""); err != nil {
		return err
	}

	var reader io.Reader = file
	if t.opts.proxy != nil {
		reader = t.opts.proxy(reader)
	}

	if _, err := io.Copy(t.tw, reader); err != nil {
		return fmt.Errorf("failed to write file %s to tar: %w", srcPath, err)
	}

	return nil
}
