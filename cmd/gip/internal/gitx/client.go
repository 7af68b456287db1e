// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package gitx wraps all interaction with the git binary behind a narrow
// Runner capability, so every caller above it can be tested against a fake
// without a real repository.
package gitx

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/AleutianAI/gip/pkg/validation"
)

// DefaultNotesRef is the short name of the notes namespace manifests are
// stored under (refs/notes/gip).
const DefaultNotesRef = "gip"

// Client provides typed git operations for gip.
//
// # Thread Safety
//
// Client is safe for concurrent use; it holds no mutable state.
type Client struct {
	runner   Runner
	workDir  string
	notesRef string
}

// NewClient creates a git client rooted at workDir.
//
// # Inputs
//
//   - runner: Command runner. Must not be nil.
//   - workDir: Working directory for git invocations. Empty means the
//     process working directory.
//   - notesRef: Short notes namespace name. Empty means DefaultNotesRef.
//
// # Outputs
//
//   - *Client: The client instance.
func NewClient(runner Runner, workDir, notesRef string) *Client {
	if notesRef == "" {
		notesRef = DefaultNotesRef
	}
	return &Client{runner: runner, workDir: workDir, notesRef: notesRef}
}

// NotesRef returns the short notes namespace name the client operates on.
func (c *Client) NotesRef() string {
	return c.notesRef
}

// output runs git and returns trimmed stdout, treating any non-zero exit as
// an error carrying the captured stderr.
func (c *Client) output(ctx context.Context, args ...string) (string, error) {
	res, err := c.runner.Run(ctx, c.workDir, args...)
	if err != nil {
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	if res.ExitCode != 0 {
		return "", fmt.Errorf("git %s: %w: %s",
			strings.Join(args, " "), ErrGitFailed, strings.TrimSpace(res.Stderr))
	}
	return strings.TrimSpace(res.Stdout), nil
}

// IsRepo reports whether the working directory is inside a git repository.
func (c *Client) IsRepo(ctx context.Context) bool {
	res, err := c.runner.Run(ctx, c.workDir, "rev-parse", "--git-dir")
	return err == nil && res.ExitCode == 0
}

// RepoRoot returns the absolute path of the repository root.
//
// # Outputs
//
//   - string: Top-level directory of the working tree.
//   - error: ErrNotRepo if the directory is not inside a repository.
func (c *Client) RepoRoot(ctx context.Context) (string, error) {
	root, err := c.output(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotRepo, err)
	}
	return root, nil
}

// CurrentCommit returns the full SHA of HEAD.
func (c *Client) CurrentCommit(ctx context.Context) (string, error) {
	return c.output(ctx, "rev-parse", "HEAD")
}

// CurrentBranch returns the short name of the checked-out branch, or "HEAD"
// when detached.
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	return c.output(ctx, "rev-parse", "--abbrev-ref", "HEAD")
}

// ResolveCommit resolves a user-supplied revision to a full SHA. The
// revision is validated before it reaches argv.
func (c *Client) ResolveCommit(ctx context.Context, rev string) (string, error) {
	safe, err := validation.SanitizeRev(rev)
	if err != nil {
		return "", err
	}
	return c.output(ctx, "rev-parse", safe)
}

// MergeHead returns the SHA of the incoming side of an in-progress merge.
// Fails when no merge is in progress.
func (c *Client) MergeHead(ctx context.Context) (string, error) {
	return c.output(ctx, "rev-parse", "MERGE_HEAD")
}

// RebaseHead returns the SHA of the commit currently being replayed by an
// in-progress rebase. Fails when no rebase is in progress.
func (c *Client) RebaseHead(ctx context.Context) (string, error) {
	return c.output(ctx, "rev-parse", "REBASE_HEAD")
}

// HasStagedChanges reports whether the index differs from HEAD.
func (c *Client) HasStagedChanges(ctx context.Context) (bool, error) {
	res, err := c.runner.Run(ctx, c.workDir, "diff", "--cached", "--quiet")
	if err != nil {
		return false, fmt.Errorf("git diff --cached --quiet: %w", err)
	}
	// --quiet exits 1 when differences exist.
	return res.ExitCode != 0, nil
}

// StagedDiff returns the unified diff of staged changes.
func (c *Client) StagedDiff(ctx context.Context) (string, error) {
	res, err := c.runner.Run(ctx, c.workDir, "diff", "--cached")
	if err != nil {
		return "", fmt.Errorf("git diff --cached: %w", err)
	}
	if res.ExitCode != 0 {
		return "", fmt.Errorf("git diff --cached: %w: %s",
			ErrGitFailed, strings.TrimSpace(res.Stderr))
	}
	return res.Stdout, nil
}

// ConflictedFiles returns repository-relative paths of files currently in
// an unresolved-merge state. Never cached; callers re-query between
// invocations because git owns this state.
//
// # Outputs
//
//   - []string: Conflicted paths. Empty, not an error, when no conflicts
//     exist.
//   - error: Non-nil if git fails.
func (c *Client) ConflictedFiles(ctx context.Context) ([]string, error) {
	out, err := c.output(ctx, "diff", "--name-only", "--diff-filter=U")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}

	var files []string
	for _, line := range strings.Split(out, "\n") {
		if f := strings.TrimSpace(line); f != "" {
			files = append(files, f)
		}
	}
	return files, nil
}

// RecentCommits returns up to limit commit SHAs reachable from HEAD, newest
// first. An optional path restricts the walk to commits touching it.
func (c *Client) RecentCommits(ctx context.Context, limit int, path string) ([]string, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than 0")
	}

	args := []string{"log", "--format=%H", "-n", strconv.Itoa(limit)}
	if path != "" {
		args = append(args, "--", path)
	}

	out, err := c.output(ctx, args...)
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// CommitSubject returns the subject line of a commit.
func (c *Client) CommitSubject(ctx context.Context, sha string) (string, error) {
	safe, err := validation.SanitizeRev(sha)
	if err != nil {
		return "", err
	}
	return c.output(ctx, "log", "-1", "--format=%s", safe)
}
