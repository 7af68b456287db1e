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

	"github.com/spf13/cobra"

	"github.com/AleutianAI/gip/pkg/ux"
)

// conflictOp parameterizes the merge and rebase legs, which differ only
// in labels and in which pseudo-ref names the incoming commit.
type conflictOp struct {
	gitCmd   string
	progress string
	success  string
	conflict string
	headName string
	head     func(context.Context) (string, error)
}

func runMerge(cmd *cobra.Command, args []string) {
	runConflictCommand(cmd, args, conflictOp{
		gitCmd:   "merge",
		progress: "Merging with gip...",
		success:  "Merge successful",
		conflict: "Merge conflict detected. Enriching markers...",
		headName: "MERGE_HEAD",
		head:     func(ctx context.Context) (string, error) { return appGit.MergeHead(ctx) },
	})
}

func runRebase(cmd *cobra.Command, args []string) {
	runConflictCommand(cmd, args, conflictOp{
		gitCmd:   "rebase",
		progress: "Rebasing with gip...",
		success:  "Rebase successful",
		conflict: "Rebase conflict detected. Enriching markers...",
		headName: "REBASE_HEAD",
		head:     func(ctx context.Context) (string, error) { return appGit.RebaseHead(ctx) },
	})
}

// runConflictCommand hands the operation to git, and on a conflicted exit
// annotates the working-tree markers before mirroring git's exit code.
func runConflictCommand(cmd *cobra.Command, args []string, op conflictOp) {
	if wantsHelp(args) {
		_ = cmd.Help()
		return
	}
	requireRepo()

	ctx := context.Background()
	ux.Info(op.progress)

	gitErr := gitPassthrough(ctx, appRunner, append([]string{op.gitCmd}, args...)...)
	if gitErr == nil {
		ux.Success(op.success)
		return
	}

	var cmdErr *CommandError
	if !errors.As(gitErr, &cmdErr) || cmdErr.Wrapped != nil {
		fail("Failed to run git "+op.gitCmd, gitErr)
	}

	// A non-zero exit is not necessarily a conflict, but enrichment is a
	// no-op when nothing is conflicted, so the optimistic path is safe.
	ux.Warning(op.conflict)

	theirs, err := op.head(ctx)
	if err != nil {
		ux.Error("Could not determine " + op.headName + ". Skipping enrichment.")
		os.Exit(exitCode(gitErr))
	}

	enrichConflicts(ctx, theirs)
	os.Exit(exitCode(gitErr))
}

// enrichConflicts annotates conflict markers in the working tree with
// manifest context from both sides. theirs names the incoming commit.
func enrichConflicts(ctx context.Context, theirs string) {
	ours, err := appGit.CurrentCommit(ctx)
	if err != nil {
		ux.Error(fmt.Sprintf("Could not resolve HEAD: %v", err))
		return
	}

	sum, err := newEnricher().EnrichAll(ctx, ours, theirs)
	if err != nil {
		ux.Error(fmt.Sprintf("Enrichment failed: %v", err))
		return
	}

	appLog.Info("conflict enrichment finished",
		"ours", ours, "theirs", theirs,
		"enriched", sum.Enriched, "failed", sum.Failed, "total", sum.Total)

	if sum.Enriched > 0 {
		ux.Success(fmt.Sprintf("Enriched %d conflicted files with context", sum.Enriched))
	} else {
		ux.Warning("No context available for conflicts")
	}
	ux.Summary(sum.Enriched, sum.Total-sum.Enriched, sum.Total)
}
