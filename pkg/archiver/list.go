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
)

// List returns the entries of the tar stream in order without reading
// their content.
func List(reader io.Reader) ([]*Entry, error) {
	tarReader := tar.NewReader(reader)

	var entries []*Entry
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil && !errors.Is(err, tar.ErrInsecurePath) {
			return entries, fmt.Errorf("error reading tar: %w", err)
		}

		info := header.FileInfo()
		entries = append(entries, &Entry{
			Name:     header.Name,
			Size:     header.Size,
			Mode:     info.Mode(),
			ModTime:  header.ModTime,
			IsDir:    info.IsDir(),
			Linkname: header.Linkname,
		})
	}

	return entries, nil
}
