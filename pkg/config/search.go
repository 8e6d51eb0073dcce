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

package config

import "fmt"

type Search struct {
	// Dir is the directory scanned for archives, not recursively.
	Dir     string
	Output  string
	Verbose bool
}

func NewSearch() *Search {
	return &Search{
		Dir:     ".",
		Output:  ".",
		Verbose: false,
	}
}

func (s *Search) Validate() error {
	if len(s.Dir) == 0 {
		return fmt.Errorf("search directory is required")
	}

	if len(s.Output) == 0 {
		return fmt.Errorf("output directory is required")
	}

	return nil
}

// Extract returns the extract configuration for the selected archive.
func (s *Search) Extract() *Extract {
	return &Extract{
		Output:  s.Output,
		Verbose: s.Verbose,
	}
}
