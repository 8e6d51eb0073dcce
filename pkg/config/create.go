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

type Create struct {
	Output   string
	Verbose  bool
	Excludes []string
}

func NewCreate() *Create {
	return &Create{
		Output:   ".",
		Verbose:  false,
		Excludes: []string{},
	}
}

func (c *Create) Validate() error {
	if len(c.Output) == 0 {
		return fmt.Errorf("output directory is required")
	}

	for _, exclude := range c.Excludes {
		if len(exclude) == 0 {
			return fmt.Errorf("exclude pattern must not be empty")
		}
	}

	return nil
}
