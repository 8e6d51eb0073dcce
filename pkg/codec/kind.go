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
	"path/filepath"
	"strings"
)

// Kind is the compression container wrapping a tar stream.
type Kind int

const (
	// Unknown is an unsupported or unrecognized archive kind.
	Unknown Kind = iota

	// Gzip is the gzip compressed tar archive.
	Gzip

	// Xz is the xz (LZMA2) compressed tar archive.
	Xz

	// Bzip2 is the bzip2 compressed tar archive.
	Bzip2

	// Lz4 is the lz4 frame compressed tar archive.
	Lz4
)

// Kinds lists all supported archive kinds.
var Kinds = []Kind{Gzip, Xz, Bzip2, Lz4}

// String returns the short name of the kind as accepted by KindFromName.
func (k Kind) String() string {
	switch k {
	case Gzip:
		return "gz"
	case Xz:
		return "xz"
	case Bzip2:
		return "bz2"
	case Lz4:
		return "lz4"
	default:
		return "unknown"
	}
}

// Extension returns the canonical double extension of the kind,
// return empty string for Unknown.
func (k Kind) Extension() string {
	if k == Unknown {
		return ""
	}

	return ".tar." + k.String()
}

// KindFromName returns the kind from a user supplied type name such as "gz",
// return Unknown if not supported.
func KindFromName(name string) Kind {
	switch strings.ToLower(name) {
	case "gz", "gzip":
		return Gzip
	case "xz":
		return Xz
	case "bz2", "bzip2":
		return Bzip2
	case "lz4":
		return Lz4
	default:
		return Unknown
	}
}

// KindFromPath returns the kind from the file extension of path,
// return Unknown if the extension is not recognized.
func KindFromPath(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".tgz":
		return Gzip
	case ".xz", ".txz":
		return Xz
	case ".bz2", ".tbz2", ".tbz":
		return Bzip2
	case ".lz4":
		return Lz4
	default:
		return Unknown
	}
}
