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
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/gip/cmd/gip/internal/config"
	"github.com/AleutianAI/gip/cmd/gip/internal/conflict"
	"github.com/AleutianAI/gip/cmd/gip/internal/gitx"
	"github.com/AleutianAI/gip/cmd/gip/internal/store"
	"github.com/AleutianAI/gip/pkg/logging"
	"github.com/AleutianAI/gip/pkg/ux"
)

// --- Shared Command State ---
//
// One command runs per process, so handlers share state through these
// rather than threading it through every call. setupRun populates them
// before any Run function executes.
var (
	appRunner gitx.Runner
	appGit    *gitx.Client
	appStore  *store.Store
	appConfig config.Config
	appLog    *logging.Logger
)

// setupRun prepares the shared command state: locate the repository, load
// configuration, then wire personality and logging. Commands invoked
// outside a repository get defaults and a nil store.
func setupRun(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	appRunner = gitx.NewExecRunner()
	appConfig = config.Default()
	appGit = gitx.NewClient(appRunner, "", "")
	appStore = nil

	var cfgErr error
	if root, err := appGit.RepoRoot(ctx); err == nil {
		var cfg config.Config
		cfg, cfgErr = config.Load(filepath.Join(root, store.GipDirName))
		if cfgErr == nil {
			appConfig = cfg
		}
		appGit = gitx.NewClient(appRunner, root, appConfig.NotesRef)
		appStore = store.New(appGit, root)
	}

	// Flag beats config beats terminal detection.
	if personalityLevel != "" {
		ux.SetPersonalityLevel(ux.ParsePersonalityLevel(personalityLevel))
	} else if appConfig.Personality != "" {
		ux.SetPersonalityLevel(ux.ParsePersonalityLevel(appConfig.Personality))
	} else {
		ux.InitPersonality()
	}

	logCfg := logging.Config{
		Level:  logging.LevelInfo,
		LogDir: os.Getenv("GIP_LOG_DIR"),
	}
	if verboseLogging {
		logCfg.Level = logging.LevelDebug
	}
	appLog = logging.New(logCfg).With(
		"run_id", uuid.NewString(),
		"command", cmd.Name(),
	)

	if cfgErr != nil {
		ux.Warning(fmt.Sprintf("Ignoring %s: %v", config.FileName, cfgErr))
	}
}

// requireRepo exits when the working directory is not inside a git
// repository. Handlers that touch the store call this first.
func requireRepo() {
	if appStore == nil {
		ux.Error("Not a git repository. Run 'git init' first.")
		os.Exit(1)
	}
}

// newEnricher builds the conflict enricher over the shared state.
func newEnricher() *conflict.Enricher {
	return conflict.NewEnricher(appGit, appStore, appLog)
}

// fail reports a fatal command error and exits, mirroring the exit status
// carried by err when it wraps a git exit.
func fail(msg string, err error) {
	ux.Error(fmt.Sprintf("%s: %v", msg, err))
	if stderr := ExtractStderr(err); stderr != "" {
		ux.Muted(stderr)
	}
	os.Exit(exitCode(err))
}

// wantsHelp scans a raw argv for help flags, which cobra cannot see on
// commands that disable flag parsing.
func wantsHelp(args []string) bool {
	for _, a := range args {
		if a == "-h" || a == "--help" {
			return true
		}
	}
	return false
}
