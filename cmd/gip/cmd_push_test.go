// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"testing"

	"github.com/AleutianAI/gip/cmd/gip/internal/config"
)

// TestNotesRemote checks remote selection from a push or fetch argv.
func TestNotesRemote(t *testing.T) {
	saved := appConfig
	defer func() { appConfig = saved }()
	appConfig = config.Default()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no args", nil, "origin"},
		{"remote only", []string{"upstream"}, "upstream"},
		{"remote and refspec", []string{"upstream", "main"}, "upstream"},
		{"flags before remote", []string{"--force-with-lease", "upstream"}, "upstream"},
		{"flags only", []string{"--tags"}, "origin"},
		{"double dash stops the scan", []string{"--", "upstream"}, "origin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := notesRemote(tt.args); got != tt.want {
				t.Errorf("notesRemote(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}
