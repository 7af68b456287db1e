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
	"errors"
	"fmt"
	"testing"
)

// TestCommandErrorFormat checks the three message shapes: stderr first,
// wrapped error second, bare exit code last.
func TestCommandErrorFormat(t *testing.T) {
	tests := []struct {
		name string
		err  *CommandError
		want string
	}{
		{
			name: "stderr wins over wrapped",
			err:  NewCommandError("git push origin", 1, "remote rejected\n", errors.New("ignored")),
			want: "git push origin (exit 1): remote rejected",
		},
		{
			name: "wrapped when no stderr",
			err:  NewCommandError("git merge", -1, "", errors.New("git not found")),
			want: "git merge (exit -1): git not found",
		},
		{
			name: "bare exit code",
			err:  NewCommandError("git fetch", 128, "   ", nil),
			want: "git fetch (exit 128)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestCommandErrorUnwrap verifies errors.Is sees through the wrapper.
func TestCommandErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := NewCommandError("git commit", 1, "", inner)

	if !errors.Is(err, inner) {
		t.Error("errors.Is did not find the wrapped error")
	}
	if err.Unwrap() != inner {
		t.Error("Unwrap did not return the wrapped error")
	}
}

func TestHasStderr(t *testing.T) {
	if NewCommandError("git", 1, "", nil).HasStderr() {
		t.Error("HasStderr returned true without stderr")
	}
	if !NewCommandError("git", 1, "fatal: oops", nil).HasStderr() {
		t.Error("HasStderr returned false with stderr")
	}
}

// TestWrapCommandError verifies nil handling and the no-double-wrap rule.
func TestWrapCommandError(t *testing.T) {
	if WrapCommandError(nil, "git", 1, "") != nil {
		t.Error("wrapping nil should stay nil")
	}

	orig := NewCommandError("git push", 1, "rejected", nil)
	if got := WrapCommandError(orig, "git fetch", 2, "other"); got != orig {
		t.Error("an existing CommandError should pass through unchanged")
	}

	plain := errors.New("exec failed")
	wrapped := WrapCommandError(plain, "git status", -1, "")
	if wrapped.Command != "git status" || wrapped.ExitCode != -1 {
		t.Errorf("unexpected fields: %+v", wrapped)
	}
	if !errors.Is(wrapped, plain) {
		t.Error("wrapped error lost the original")
	}
}

// TestExtractStderr walks chains built with fmt.Errorf and nested
// CommandErrors.
func TestExtractStderr(t *testing.T) {
	cmdErr := NewCommandError("git merge", 1, "CONFLICT (content): auth.go", nil)

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain error", errors.New("nope"), ""},
		{"direct", cmdErr, "CONFLICT (content): auth.go"},
		{"one wrap", fmt.Errorf("merge leg: %w", cmdErr), "CONFLICT (content): auth.go"},
		{"two wraps", fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", cmdErr)), "CONFLICT (content): auth.go"},
		{"empty stderr skipped", NewCommandError("git", 1, "", cmdErr), "CONFLICT (content): auth.go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractStderr(tt.err); got != tt.want {
				t.Errorf("ExtractStderr() = %q, want %q", got, tt.want)
			}
		})
	}
}
