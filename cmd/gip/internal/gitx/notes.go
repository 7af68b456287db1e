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
	"context"
	"fmt"
	"strings"

	"github.com/AleutianAI/gip/pkg/validation"
)

// refArg returns the --ref flag for the client's notes namespace.
func (c *Client) refArg() string {
	return "--ref=" + c.notesRef
}

// refspec returns the full refname of the client's notes namespace.
func (c *Client) refspec() string {
	return "refs/notes/" + c.notesRef
}

// AddNote attaches content to a commit in the notes namespace, replacing
// any prior note for that commit.
//
// # Inputs
//
//   - ctx: Context for cancellation. Must not be nil.
//   - commit: Full or abbreviated commit SHA.
//   - content: Note payload. Stored verbatim.
//
// # Outputs
//
//   - error: Non-nil if the commit does not exist or git fails.
func (c *Client) AddNote(ctx context.Context, commit, content string) error {
	safe, err := validation.SanitizeRev(commit)
	if err != nil {
		return err
	}

	_, err = c.output(ctx, "notes", c.refArg(), "add", "-f", "-m", content, safe)
	return err
}

// ShowNote returns the note content for a commit.
//
// # Outputs
//
//   - string: The stored note payload.
//   - error: ErrNoNote if the commit has no note in the namespace.
func (c *Client) ShowNote(ctx context.Context, commit string) (string, error) {
	safe, err := validation.SanitizeRev(commit)
	if err != nil {
		return "", err
	}

	res, err := c.runner.Run(ctx, c.workDir, "notes", c.refArg(), "show", safe)
	if err != nil {
		return "", fmt.Errorf("git notes show: %w", err)
	}
	if res.ExitCode != 0 {
		return "", fmt.Errorf("%w: %s", ErrNoNote, safe)
	}
	return res.Stdout, nil
}

// ListNotedCommits returns the SHAs of all commits carrying a note in the
// namespace. Order is not meaningful.
func (c *Client) ListNotedCommits(ctx context.Context) ([]string, error) {
	res, err := c.runner.Run(ctx, c.workDir, "notes", c.refArg(), "list")
	if err != nil {
		return nil, fmt.Errorf("git notes list: %w", err)
	}
	if res.ExitCode != 0 {
		// The namespace does not exist until the first note is added.
		return nil, nil
	}

	var commits []string
	for _, line := range strings.Split(strings.TrimSpace(res.Stdout), "\n") {
		// Format: <note object> <annotated commit>
		fields := strings.Fields(line)
		if len(fields) == 2 {
			commits = append(commits, fields[1])
		}
	}
	return commits, nil
}

// PushNotes pushes the notes namespace to a remote.
func (c *Client) PushNotes(ctx context.Context, remote string) error {
	if err := validation.ValidateRemote(remote); err != nil {
		return err
	}

	_, err := c.output(ctx, "push", remote, c.refspec())
	return err
}

// FetchNotes fetches the notes namespace from a remote into the same local
// refname.
func (c *Client) FetchNotes(ctx context.Context, remote string) error {
	if err := validation.ValidateRemote(remote); err != nil {
		return err
	}

	_, err := c.output(ctx, "fetch", remote, c.refspec()+":"+c.refspec())
	return err
}
