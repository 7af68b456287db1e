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
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/gip/cmd/gip/internal/manifest"
	"github.com/AleutianAI/gip/cmd/gip/internal/notation"
	"github.com/AleutianAI/gip/cmd/gip/internal/store"
	"github.com/AleutianAI/gip/pkg/ux"
)

// historyFanOut bounds concurrent note loads; each load is a git exec.
const historyFanOut = 8

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runContext(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	requireRepo()

	if contextBehavior != "" && !validBehaviorClass(contextBehavior) {
		ux.Error(fmt.Sprintf("Unknown behavior class %q. Valid classes: %s",
			contextBehavior, strings.Join(behaviorClassNames(), ", ")))
		os.Exit(1)
	}

	switch {
	case contextFile != "":
		runContextHistory(ctx)
	case contextAll:
		runContextAll(ctx)
	default:
		rev := "HEAD"
		if len(args) > 0 {
			rev = args[0]
		}
		runContextShow(ctx, rev)
	}
}

// runContextShow prints the manifest bound to a single commit.
func runContextShow(ctx context.Context, rev string) {
	sha, err := appGit.ResolveCommit(ctx, rev)
	if err != nil {
		fail("Failed to resolve "+rev, err)
	}

	m, err := appStore.Load(ctx, sha)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ux.Warning("No context found for commit " + sha)
			return
		}
		fail("Failed to load context", err)
	}

	m = filterManifest(m, contextBehavior)
	if contextBehavior != "" && len(m.Entries) == 0 {
		ux.Warning("No entries with behavior class " + contextBehavior)
		return
	}

	switch {
	case contextJSON:
		data, err := notation.EncodeCanonical(m)
		if err != nil {
			fail("Failed to encode context", err)
		}
		fmt.Println(string(data))
	case contextToon:
		fmt.Print(notation.EncodeCompact(m))
	default:
		printManifest(m)
	}
}

// runContextHistory walks the commits touching one file and prints the
// manifest entries anchored there.
func runContextHistory(ctx context.Context) {
	shas, err := appGit.RecentCommits(ctx, contextLimit, contextFile)
	if err != nil {
		fail("Failed to list commits for "+contextFile, err)
	}
	if len(shas) == 0 {
		ux.Info("No commits touch " + contextFile)
		return
	}

	shown := 0
	for _, row := range collectManifests(ctx, shas) {
		if printHistoryRow(row, contextFile) {
			shown++
		}
	}
	if shown == 0 {
		ux.Warning("No context found for " + contextFile)
	}
}

// runContextAll lists every commit carrying a context note.
func runContextAll(ctx context.Context) {
	shas, err := appGit.ListNotedCommits(ctx)
	if err != nil {
		fail("Failed to list noted commits", err)
	}
	if len(shas) == 0 {
		ux.Info("No commits carry context notes yet")
		return
	}
	if contextLimit > 0 && len(shas) > contextLimit {
		shas = shas[:contextLimit]
	}

	shown := 0
	for _, row := range collectManifests(ctx, shas) {
		if printHistoryRow(row, "") {
			shown++
		}
	}
	if shown == 0 {
		ux.Warning("No context matched the filters")
	}
}

// =============================================================================
// NOTE COLLECTION
// =============================================================================

type manifestRow struct {
	sha     string
	subject string
	m       *manifest.Manifest
}

// collectManifests loads subjects and manifests for a batch of commits.
// Order of the input is preserved; a commit without a note yields a row
// with a nil manifest.
func collectManifests(ctx context.Context, shas []string) []manifestRow {
	rows := make([]manifestRow, len(shas))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(historyFanOut)
	for i, sha := range shas {
		i, sha := i, sha // Capture loop variables
		g.Go(func() error {
			row := manifestRow{sha: sha}
			if subj, err := appGit.CommitSubject(gCtx, sha); err == nil {
				row.subject = subj
			}
			if m, err := appStore.Load(gCtx, sha); err == nil {
				row.m = m
			}
			rows[i] = row
			return nil // A commit without context is not an error here
		})
	}
	_ = g.Wait()

	return rows
}

// =============================================================================
// OUTPUT FUNCTIONS
// =============================================================================

// printManifest renders one manifest as a framed block.
func printManifest(m *manifest.Manifest) {
	ux.BlockStart(fmt.Sprintf("Commit %s (schema v%s)", shortSHA(m.Commit), m.SchemaVersion))

	if gi := m.GlobalIntent; gi != nil {
		if len(gi.BehaviorClass) > 0 {
			ux.BlockField("Behavior", manifest.JoinBehavior(gi.BehaviorClass))
		}
		if gi.Rationale != "" {
			ux.BlockField("Rationale", gi.Rationale)
		}
	}

	for i := range m.Entries {
		e := &m.Entries[i]
		ux.BlockLine("")
		ux.BlockField("File", e.Anchor.File)
		if e.Anchor.Symbol != "" {
			ux.BlockField("Symbol", e.Anchor.Symbol)
		}
		ux.BlockField("Change", string(e.ChangeType))
		if e.Rationale != "" {
			ux.BlockField("Rationale", e.Rationale)
		}
		if len(e.BehaviorClass) > 0 {
			ux.BlockField("Behavior", manifest.JoinBehavior(e.BehaviorClass))
		}
		if len(e.Contract.Preconditions) > 0 {
			ux.BlockField("Preconditions", strings.Join(e.Contract.Preconditions, "; "))
		}
		if len(e.Contract.Postconditions) > 0 {
			ux.BlockField("Postconditions", strings.Join(e.Contract.Postconditions, "; "))
		}
		if e.Compatibility != nil && e.Compatibility.Breaking {
			ux.BlockField("Breaking", "yes")
		}
	}

	ux.BlockEnd()
}

// printHistoryRow prints one commit line plus its matching entries.
// Returns false when filters leave nothing to show for the commit.
func printHistoryRow(r manifestRow, file string) bool {
	if r.m == nil {
		return false
	}
	m := filterManifest(r.m, contextBehavior)

	var lines []string
	for i := range m.Entries {
		e := &m.Entries[i]
		if file != "" && !matchesFile(e.Anchor.File, file) {
			continue
		}
		line := "  " + e.Anchor.File
		if e.Anchor.Symbol != "" {
			line += " " + e.Anchor.Symbol
		}
		line += " (" + string(e.ChangeType) + ")"
		if e.Rationale != "" {
			line += ": " + e.Rationale
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		if file != "" || contextBehavior != "" {
			return false
		}
		if gi := r.m.GlobalIntent; gi != nil && gi.Rationale != "" {
			lines = append(lines, "  "+gi.Rationale)
		}
	}

	ux.Info(fmt.Sprintf("%s %s", shortSHA(r.sha), r.subject))
	for _, line := range lines {
		ux.Muted(line)
	}
	return true
}

// =============================================================================
// FILTER HELPERS
// =============================================================================

// filterManifest returns a copy keeping only entries tagged with the
// given behavior class. An empty class keeps everything.
func filterManifest(m *manifest.Manifest, class string) *manifest.Manifest {
	if class == "" {
		return m
	}
	out := *m
	out.Entries = nil
	for _, e := range m.Entries {
		for _, bc := range e.BehaviorClass {
			if string(bc) == class {
				out.Entries = append(out.Entries, e)
				break
			}
		}
	}
	return &out
}

// matchesFile accepts exact repository paths and bare file names, so
// "--file auth.go" finds entries anchored at "src/auth.go".
func matchesFile(anchor, query string) bool {
	if anchor == query {
		return true
	}
	return filepath.Base(anchor) == filepath.Base(query)
}

func shortSHA(sha string) string {
	if len(sha) > 12 {
		return sha[:12]
	}
	return sha
}

func behaviorClassNames() []string {
	names := make([]string, 0, len(manifest.AllBehaviorClasses()))
	for _, bc := range manifest.AllBehaviorClasses() {
		names = append(names, string(bc))
	}
	return names
}

func validBehaviorClass(name string) bool {
	for _, bc := range manifest.AllBehaviorClasses() {
		if string(bc) == name {
			return true
		}
	}
	return false
}
