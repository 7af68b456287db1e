// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package gitx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Result holds the captured output of one git invocation. A non-zero
// ExitCode is data, not an error: callers that treat it as failure wrap it
// themselves.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner is the narrow capability interface through which all git
// invocations flow. Nothing above this interface shells out directly, so
// tests substitute a fake and never touch a real repository.
//
// # Thread Safety
//
// Implementations must be safe for concurrent use.
type Runner interface {
	// Run executes git with the given arguments in dir, capturing output.
	// Returns a non-nil error only when git could not be started at all;
	// a non-zero exit status is reported through Result.ExitCode.
	Run(ctx context.Context, dir string, args ...string) (Result, error)

	// RunPassthrough executes git with inherited stdin/stdout/stderr, for
	// subcommands that are interactive or stream their own progress.
	// Returns git's exit status.
	RunPassthrough(ctx context.Context, dir string, args ...string) (int, error)
}

// ExecRunner runs the real git binary via os/exec.
type ExecRunner struct{}

// NewExecRunner creates a Runner backed by the git binary on PATH.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes git with captured stdout and stderr.
//
// # Inputs
//
//   - ctx: Context for cancellation. Must not be nil.
//   - dir: Working directory. Empty means the process working directory.
//   - args: git arguments, without the leading "git".
//
// # Outputs
//
//   - Result: Captured output and exit status.
//   - error: Non-nil only if git could not be executed.
func (r *ExecRunner) Run(ctx context.Context, dir string, args ...string) (Result, error) {
	if ctx == nil {
		return Result{}, fmt.Errorf("ctx must not be nil")
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, fmt.Errorf("%w: %v", ErrToolUnavailable, err)
	}

	return res, nil
}

// RunPassthrough executes git with the current process's stdio attached, so
// prompts, editors, and progress output reach the terminal directly.
func (r *ExecRunner) RunPassthrough(ctx context.Context, dir string, args ...string) (int, error) {
	if ctx == nil {
		return 0, fmt.Errorf("ctx must not be nil")
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, fmt.Errorf("%w: %v", ErrToolUnavailable, err)
	}

	return 0, nil
}
