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
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/AleutianAI/gip/cmd/gip/internal/gitx"
)

// fakeRunner scripts the outcome of git invocations and records what was
// asked of it.
type fakeRunner struct {
	mu    sync.Mutex
	calls [][]string
	code  int
	err   error
}

func (f *fakeRunner) Run(ctx context.Context, dir string, args ...string) (gitx.Result, error) {
	f.record(args)
	return gitx.Result{ExitCode: f.code}, f.err
}

func (f *fakeRunner) RunPassthrough(ctx context.Context, dir string, args ...string) (int, error) {
	f.record(args)
	return f.code, f.err
}

func (f *fakeRunner) record(args []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, args)
}

// TestIsPassthrough checks the dispatch rule: registered names and flags
// stay with cobra, everything else goes to git.
func TestIsPassthrough(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"no args", nil, false},
		{"help flag", []string{"--help"}, false},
		{"short flag", []string{"-h"}, false},
		{"registered init", []string{"init"}, false},
		{"registered commit", []string{"commit", "-m", "x"}, false},
		{"registered merge", []string{"merge", "feature"}, false},
		{"registered rebase", []string{"rebase", "main"}, false},
		{"registered push", []string{"push"}, false},
		{"registered fetch", []string{"fetch"}, false},
		{"registered context", []string{"context"}, false},
		{"cobra help", []string{"help"}, false},
		{"cobra completion", []string{"completion", "bash"}, false},
		{"git status", []string{"status"}, true},
		{"git log", []string{"log", "--oneline"}, true},
		{"git checkout", []string{"checkout", "-b", "topic"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isPassthrough(tt.args); got != tt.want {
				t.Errorf("isPassthrough(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

func TestGitPassthrough(t *testing.T) {
	t.Run("clean exit", func(t *testing.T) {
		r := &fakeRunner{}
		if err := gitPassthrough(context.Background(), r, "status", "-sb"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(r.calls) != 1 {
			t.Fatalf("expected 1 git call, got %d", len(r.calls))
		}
		got := r.calls[0]
		if len(got) != 2 || got[0] != "status" || got[1] != "-sb" {
			t.Errorf("unexpected argv: %v", got)
		}
	})

	t.Run("non-zero exit", func(t *testing.T) {
		r := &fakeRunner{code: 3}
		err := gitPassthrough(context.Background(), r, "merge", "feature")

		var cmdErr *CommandError
		if !errors.As(err, &cmdErr) {
			t.Fatalf("expected CommandError, got %T", err)
		}
		if cmdErr.ExitCode != 3 {
			t.Errorf("ExitCode = %d, want 3", cmdErr.ExitCode)
		}
		if cmdErr.Command != "git merge feature" {
			t.Errorf("Command = %q", cmdErr.Command)
		}
		if cmdErr.Wrapped != nil {
			t.Error("exit-status errors should not wrap anything")
		}
	})

	t.Run("start failure", func(t *testing.T) {
		startErr := errors.New("executable file not found")
		r := &fakeRunner{err: startErr}
		err := gitPassthrough(context.Background(), r, "status")

		var cmdErr *CommandError
		if !errors.As(err, &cmdErr) {
			t.Fatalf("expected CommandError, got %T", err)
		}
		if cmdErr.ExitCode != -1 {
			t.Errorf("ExitCode = %d, want -1", cmdErr.ExitCode)
		}
		if !errors.Is(err, startErr) {
			t.Error("start failure lost the original error")
		}
	})
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 1},
		{"plain error", errors.New("x"), 1},
		{"exit status", NewCommandError("git merge", 2, "", nil), 2},
		{"zero status", NewCommandError("git merge", 0, "", nil), 0},
		{"unknown status", NewCommandError("git merge", -1, "", errors.New("spawn")), 1},
		{"wrapped status", fmt.Errorf("leg: %w", NewCommandError("git push", 128, "", nil)), 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
