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
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/gip/cmd/gip/internal/store"
	"github.com/AleutianAI/gip/pkg/ux"
)

// runInit prepares a repository for gip: the control directory with the
// authoring template, and a .gitignore entry so neither is ever committed.
// Safe to re-run; existing files are left alone.
func runInit(cmd *cobra.Command, args []string) {
	ux.Info("Initializing gip...")

	requireRepo()

	wroteTemplate, err := appStore.EnsureTemplate()
	if err != nil {
		fail("Failed to write authoring template", err)
	}
	if wroteTemplate {
		ux.Info("Created " + filepath.Join(store.GipDirName, store.AuthoringFileName) + " (template)")
	}

	wroteIgnore, err := appStore.EnsureGitignore()
	if err != nil {
		fail("Failed to update .gitignore", err)
	}
	if wroteIgnore {
		ux.Info("Added " + store.GipDirName + " to .gitignore")
	}

	ux.Success("Gip initialized successfully")
	ux.Muted("Authoring file: " + appStore.AuthoringPath())
}
