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

import (
	"testing"
)

func TestNewRoot(t *testing.T) {
	root, err := NewRoot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if root.LogLevel != "info" {
		t.Errorf("expected LogLevel to be 'info', got %s", root.LogLevel)
	}

	if root.LogDir == "" {
		t.Errorf("expected LogDir to be set")
	}

	if root.DisableProgress {
		t.Errorf("expected DisableProgress to be false")
	}

	if err := root.Validate(); err != nil {
		t.Errorf("expected default root to be valid, got %v", err)
	}
}

func TestRoot_Validate(t *testing.T) {
	tests := []struct {
		name      string
		root      *Root
		expectErr bool
	}{
		{
			name:      "valid root",
			root:      &Root{LogDir: "/tmp/star", LogLevel: "debug"},
			expectErr: false,
		},
		{
			name:      "missing log dir",
			root:      &Root{LogDir: "", LogLevel: "info"},
			expectErr: true,
		},
		{
			name:      "invalid log level",
			root:      &Root{LogDir: "/tmp/star", LogLevel: "loud"},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.root.Validate()
			if (err != nil) != tt.expectErr {
				t.Errorf("expected error: %v, got: %v", tt.expectErr, err)
			}
		})
	}
}

func TestCreate_Validate(t *testing.T) {
	create := NewCreate()
	if create.Output != "." {
		t.Errorf("expected Output to be '.', got %s", create.Output)
	}

	tests := []struct {
		name      string
		create    *Create
		expectErr bool
	}{
		{
			name:      "valid create",
			create:    &Create{Output: ".", Excludes: []string{"*.log"}},
			expectErr: false,
		},
		{
			name:      "missing output",
			create:    &Create{Output: ""},
			expectErr: true,
		},
		{
			name:      "empty exclude",
			create:    &Create{Output: ".", Excludes: []string{""}},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.create.Validate()
			if (err != nil) != tt.expectErr {
				t.Errorf("expected error: %v, got: %v", tt.expectErr, err)
			}
		})
	}
}

func TestExtract_Validate(t *testing.T) {
	if err := NewExtract().Validate(); err != nil {
		t.Errorf("expected default extract to be valid, got %v", err)
	}

	if err := (&Extract{}).Validate(); err == nil {
		t.Errorf("expected error for missing output")
	}
}

func TestSearch(t *testing.T) {
	search := NewSearch()
	if err := search.Validate(); err != nil {
		t.Errorf("expected default search to be valid, got %v", err)
	}

	search.Output = "out"
	search.Verbose = true
	extract := search.Extract()
	if extract.Output != "out" || !extract.Verbose {
		t.Errorf("unexpected extract config: %+v", extract)
	}

	if err := (&Search{Dir: "", Output: "."}).Validate(); err == nil {
		t.Errorf("expected error for missing dir")
	}
}
