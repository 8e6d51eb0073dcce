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

package prompt

import (
	"errors"
	"fmt"

	huh "charm.land/huh/v2"
)

// ErrNoItems is returned when there is nothing to select from.
var ErrNoItems = errors.New("no items to select")

// Selector asks the user to pick one of the items.
type Selector struct {
	// Height limits the number of visible options, zero shows them all.
	Height int
}

// NewSelector creates a new interactive selector.
func NewSelector() *Selector {
	return &Selector{Height: 10}
}

// Select renders a single-choice list with title and returns the index of
// the chosen item.
func (s *Selector) Select(title string, items []string) (int, error) {
	if len(items) == 0 {
		return -1, ErrNoItems
	}

	options := make([]huh.Option[int], 0, len(items))
	for i, item := range items {
		options = append(options, huh.NewOption(item, i))
	}

	var choice int
	field := huh.NewSelect[int]().
		Title(title).
		Options(options...).
		Value(&choice)
	if s.Height > 0 && len(items) > s.Height {
		field = field.Height(s.Height)
	}

	if err := huh.NewForm(huh.NewGroup(field)).Run(); err != nil {
		return -1, fmt.Errorf("failed to prompt for selection: %w", err)
	}

	return choice, nil
}
