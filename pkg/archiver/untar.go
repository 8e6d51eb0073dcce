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
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Untar extracts the contents of a tar archive from the provided reader
// to the specified destination path. A failure to unpack a single entry is
// recorded in the result and extraction continues with the next entry, only
// errors reading the stream itself or creating directories abort it.
//
// All filesystem access goes through an os.Root opened at destPath, so no
// entry can reach outside of it, including through symlinks written by
// earlier entries or already present in the destination.
func Untar(reader io.Reader, destPath string, opts ...Option) (*ExtractResult, error) {
	o := newOptions(opts)
	tarReader := tar.NewReader(reader)
	result := &ExtractResult{}

	// Ensure destination directory exists.
	if err := os.MkdirAll(destPath, 0755); err != nil {
		return result, fmt.Errorf("failed to create destination directory: %w", err)
	}

	root, err := os.OpenRoot(destPath)
	if err != nil {
		return result, fmt.Errorf("failed to open destination directory: %w", err)
	}
	defer root.Close()

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		// Insecure names still come with a valid header, they are
		// rejected per entry below.
		if err != nil && !errors.Is(err, tar.ErrInsecurePath) {
			return result, fmt.Errorf("error reading tar: %w", err)
		}

		if o.verbose != nil {
			fmt.Fprintf(o.verbose, "Extracting file: %s\n", header.Name)
		}

		name, err := sanitizePath(header.Name)
		if err != nil {
			logrus.Warnf("skipping entry %s: %v", header.Name, err)
			result.fail(header.Name, err)
			continue
		}

		// Create directories for all path components.
		if dirPath := filepath.Dir(name); dirPath != "." {
			if err := checkDir(root, dirPath); err != nil {
				logrus.Warnf("skipping entry %s: %v", header.Name, err)
				result.fail(header.Name, err)
				continue
			}
			if err := root.MkdirAll(dirPath, 0755); err != nil {
				return result, fmt.Errorf("failed to create directory %s: %w", dirPath, err)
			}
		}

		switch header.Typeflag {
		case tar.TypeDir:
			// "./" is the destination itself.
			if name == "." {
				break
			}
			if err := checkDir(root, name); err != nil {
				logrus.Warnf("skipping entry %s: %v", header.Name, err)
				result.fail(header.Name, err)
				continue
			}
			if err := root.MkdirAll(name, 0755); err != nil {
				return result, fmt.Errorf("failed to create directory %s: %w", name, err)
			}
		case tar.TypeReg:
			if err := writeFile(root, name, header, tarReader); err != nil {
				logrus.Warnf("failed to unpack file %s: %v", header.Name, err)
				result.fail(header.Name, err)
				continue
			}
		case tar.TypeSymlink:
			if err := writeSymlink(root, name, header); err != nil {
				logrus.Warnf("failed to unpack symlink %s: %v", header.Name, err)
				result.fail(header.Name, err)
				continue
			}
		default:
			logrus.Warnf("skipping entry %s with unsupported type %q", header.Name, header.Typeflag)
			continue
		}

		result.Extracted = append(result.Extracted, header.Name)
	}

	return result, nil
}

// sanitizePath returns the entry name relative to the destination,
// rejecting names which are absolute or climb out of it.
func sanitizePath(name string) (string, error) {
	cleanPath := filepath.Clean(filepath.FromSlash(name))
	if !filepath.IsLocal(cleanPath) {
		return "", fmt.Errorf("tar file contains invalid path: %s", name)
	}

	return cleanPath, nil
}

// checkDir verifies that an existing dir resolves inside the root. A missing
// dir is fine, it is created afterwards.
func checkDir(root *os.Root, dir string) error {
	if _, err := root.Stat(dir); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("tar file contains invalid path: %s: %w", dir, err)
	}

	return nil
}

// writeFile replaces whatever is at name with a fresh file, an existing
// symlink is removed rather than followed.
func writeFile(root *os.Root, name string, header *tar.Header, reader io.Reader) error {
	if info, err := root.Lstat(name); err == nil && info.IsDir() {
		return fmt.Errorf("failed to create file %s: is a directory", name)
	}

	if err := root.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}

	mode := header.FileInfo().Mode().Perm()
	file, err := root.OpenFile(name, os.O_CREATE|os.O_EXCL|os.O_WRONLY, mode)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", name, err)
	}

	if _, err := io.Copy(file, reader); err != nil {
		file.Close()
		return fmt.Errorf("failed to write to file %s: %w", name, err)
	}

	// OpenFile applies umask to a new file.
	if err := file.Chmod(mode); err != nil {
		file.Close()
		return fmt.Errorf("failed to set file permissions %s: %w", name, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close file %s: %w", name, err)
	}

	if err := root.Chtimes(name, header.ModTime, header.ModTime); err != nil {
		return fmt.Errorf("failed to set file mtime %s: %w", name, err)
	}

	return nil
}

func writeSymlink(root *os.Root, name string, header *tar.Header) error {
	// The link target must stay inside the destination as well.
	target := filepath.Join(filepath.Dir(name), filepath.FromSlash(header.Linkname))
	if filepath.IsAbs(header.Linkname) || !filepath.IsLocal(target) {
		return fmt.Errorf("symlink %s points outside of destination: %s", header.Name, header.Linkname)
	}

	if info, err := root.Lstat(name); err == nil && info.IsDir() {
		return fmt.Errorf("failed to create symlink %s: is a directory", name)
	}

	if err := root.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}

	if err := root.Symlink(header.Linkname, name); err != nil {
		return fmt.Errorf("failed to create symlink %s: %w", name, err)
	}

	return nil
}
