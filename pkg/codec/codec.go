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

package codec

import (
	"errors"
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// ErrUnknownKind is returned when no codec is available for the archive kind.
var ErrUnknownKind = errors.New("unknown archive type")

// NewReader returns a reader which decompresses r according to the kind.
// Closing the returned reader does not close r.
func NewReader(kind Kind, r io.Reader) (io.ReadCloser, error) {
	switch kind {
	case Gzip:
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}

		return gr, nil
	case Xz:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}

		return io.NopCloser(xr), nil
	case Bzip2:
		br, err := bzip2.NewReader(r, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create bzip2 reader: %w", err)
		}

		return br, nil
	case Lz4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, ErrUnknownKind
	}
}

// NewWriter returns a writer which compresses into w according to the kind.
// Close must be called to flush the trailer, it does not close w.
func NewWriter(kind Kind, w io.Writer) (io.WriteCloser, error) {
	switch kind {
	case Gzip:
		return gzip.NewWriter(w), nil
	case Xz:
		xw, err := xz.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz writer: %w", err)
		}

		return xw, nil
	case Bzip2:
		bw, err := bzip2.NewWriter(w, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create bzip2 writer: %w", err)
		}

		return bw, nil
	case Lz4:
		return lz4.NewWriter(w), nil
	default:
		return nil, ErrUnknownKind
	}
}
