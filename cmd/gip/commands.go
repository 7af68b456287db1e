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
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	personalityLevel string // UX personality level (standard/minimal/machine)
	verboseLogging   bool   // Debug-level logging on stderr

	contextToon     bool   // Export manifest in compact notation
	contextJSON     bool   // Export manifest as canonical JSON
	contextFile     string // Per-file semantic history mode
	contextAll      bool   // Every noted commit
	contextBehavior string // Behavior class filter
	contextLimit    int    // History scan depth

	rootCmd = &cobra.Command{
		Use:   "gip",
		Short: "Git with intent preservation",
		Long: `Gip is a git wrapper that records the intent behind each commit in a
manifest stored as a git note, then replays that intent into merge and
rebase conflict markers so whoever resolves the conflict knows why both
sides changed.

Any subcommand gip does not recognize is passed to git untouched.`,
		PersistentPreRun: setupRun,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Initialize gip in the current repository",
		Run:   runInit, // Defined in cmd_init.go
	}

	// --- Commit Workflow ---
	//
	// Flag parsing is disabled so unrecognized flags flow to git.
	commitCmd = &cobra.Command{
		Use:   "commit [-m message] [git args...]",
		Short: "Commit with manifest attachment",
		Long: `Commit validates the authoring manifest, runs git commit, and attaches
the manifest to the new commit as a git note.

Gip owns these flags; everything else is forwarded to git commit:
  -m, --message      commit message (forwarded to git)
  -f, --force        commit without a completed manifest
      --suggest      pre-fill the authoring file from the staged diff
  -i, --interactive  author the manifest through a terminal form
                     (use --include for git's -i)`,
		DisableFlagParsing: true,
		Run:                runCommit, // Defined in cmd_commit.go
	}

	// --- Conflict Enrichment ---
	mergeCmd = &cobra.Command{
		Use:                "merge [git args...]",
		Short:              "Merge with enriched conflict markers",
		DisableFlagParsing: true,
		Run:                runMerge, // Defined in cmd_merge.go
	}
	rebaseCmd = &cobra.Command{
		Use:                "rebase [git args...]",
		Short:              "Rebase with enriched conflict markers",
		DisableFlagParsing: true,
		Run:                runRebase, // Defined in cmd_merge.go
	}

	// --- Note Transfer ---
	pushCmd = &cobra.Command{
		Use:                "push [git args...]",
		Short:              "Push code and context notes to the remote",
		DisableFlagParsing: true,
		Run:                runPush, // Defined in cmd_push.go
	}
	fetchCmd = &cobra.Command{
		Use:                "fetch [git args...]",
		Short:              "Fetch code and context notes from the remote",
		DisableFlagParsing: true,
		Run:                runFetch, // Defined in cmd_push.go
	}

	// --- Context Display ---
	contextCmd = &cobra.Command{
		Use:   "context [rev]",
		Short: "Show the semantic context attached to commits",
		Long: `Context shows the manifest attached to a commit (HEAD by default),
the manifest history of a file (--file), or every commit carrying a
manifest (--all).`,
		Args: cobra.MaximumNArgs(1),
		Run:  runContext, // Defined in cmd_context.go
	}
)

// init runs when the Go program starts
func init() {
	// Global UX and logging flags
	rootCmd.PersistentFlags().StringVar(&personalityLevel, "personality", "",
		"Output style: standard (default), minimal, or machine (scripting)")
	rootCmd.PersistentFlags().BoolVar(&verboseLogging, "verbose", false,
		"Enable debug logging on stderr")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(rebaseCmd)
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(fetchCmd)

	rootCmd.AddCommand(contextCmd)
	contextCmd.Flags().BoolVar(&contextToon, "toon", false,
		"Export the manifest in compact notation")
	contextCmd.Flags().BoolVar(&contextJSON, "json", false,
		"Export the manifest as canonical JSON")
	contextCmd.Flags().StringVar(&contextFile, "file", "",
		"Show manifest history for a file path")
	contextCmd.Flags().BoolVar(&contextAll, "all", false,
		"Show every commit carrying a manifest")
	contextCmd.Flags().StringVar(&contextBehavior, "behavior", "",
		"Only show entries with this behavior class (e.g. bugfix, security)")
	contextCmd.Flags().IntVar(&contextLimit, "limit", 50,
		"Maximum commits to scan in history mode")
}
