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

import "errors"

// Sentinel errors for git operations.
var (
	// ErrNotRepo indicates the working directory is not inside a git
	// repository.
	ErrNotRepo = errors.New("not a git repository")

	// ErrNoNote indicates no note exists for the requested commit in the
	// notes namespace.
	ErrNoNote = errors.New("no note for commit")

	// ErrToolUnavailable indicates the git binary could not be started at
	// all, as opposed to running and exiting non-zero.
	ErrToolUnavailable = errors.New("git binary unavailable")

	// ErrGitFailed indicates git ran and exited non-zero for an operation
	// that expected success.
	ErrGitFailed = errors.New("git command failed")
)
