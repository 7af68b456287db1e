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
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/gip/pkg/ux"
)

func runPush(cmd *cobra.Command, args []string) {
	if wantsHelp(args) {
		_ = cmd.Help()
		return
	}
	requireRepo()

	ctx := context.Background()
	ux.Info("Pushing code...")

	if err := gitPassthrough(ctx, appRunner, append([]string{"push"}, args...)...); err != nil {
		var cmdErr *CommandError
		if !errors.As(err, &cmdErr) || cmdErr.Wrapped != nil {
			ux.Error(fmt.Sprintf("Failed to run git push: %v", err))
		}
		os.Exit(exitCode(err))
	}

	remote := notesRemote(args)
	ux.Info("Pushing context notes to " + remote + "...")
	if err := appGit.PushNotes(ctx, remote); err != nil {
		// Code is already on the remote; a notes failure must not turn
		// the push into an error.
		ux.Warning(fmt.Sprintf("Could not push context notes: %v", err))
		return
	}
	ux.Success("Context notes pushed")
}

func runFetch(cmd *cobra.Command, args []string) {
	if wantsHelp(args) {
		_ = cmd.Help()
		return
	}
	requireRepo()

	ctx := context.Background()
	ux.Info("Fetching code...")

	if err := gitPassthrough(ctx, appRunner, append([]string{"fetch"}, args...)...); err != nil {
		var cmdErr *CommandError
		if !errors.As(err, &cmdErr) || cmdErr.Wrapped != nil {
			ux.Error(fmt.Sprintf("Failed to run git fetch: %v", err))
		}
		os.Exit(exitCode(err))
	}

	remote := notesRemote(args)
	ux.Info("Fetching context notes from " + remote + "...")
	if err := appGit.FetchNotes(ctx, remote); err != nil {
		ux.Warning(fmt.Sprintf("Could not fetch context notes: %v", err))
		return
	}
	ux.Success("Context notes fetched")
}

// notesRemote picks the remote for the notes leg: the first non-flag
// argument of the push/fetch argv, falling back to the configured remote.
// Git's own argv shape puts the remote first among the positionals.
func notesRemote(args []string) string {
	for _, a := range args {
		if a == "--" {
			break
		}
		if !strings.HasPrefix(a, "-") {
			return a
		}
	}
	return appConfig.Remote
}
