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

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/gip/cmd/gip/internal/diffscan"
	"github.com/AleutianAI/gip/cmd/gip/internal/manifest"
	"github.com/AleutianAI/gip/cmd/gip/internal/notation"
	"github.com/AleutianAI/gip/cmd/gip/internal/store"
	"github.com/AleutianAI/gip/pkg/ux"
)

// =============================================================================
// ARGUMENT PARSING
// =============================================================================

// commitOptions holds the gip-owned flags parsed out of a commit argv.
// Flag parsing is disabled on the cobra command so everything gip does not
// recognize flows to git untouched.
type commitOptions struct {
	message     string
	force       bool
	suggest     bool
	interactive bool
	help        bool
	gitArgs     []string
}

// parseCommitArgs splits argv into gip options and git passthrough args.
// A "--" separator ends option scanning; git treats what follows as
// pathspecs and so do we.
func parseCommitArgs(args []string) (commitOptions, error) {
	var opts commitOptions

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			opts.gitArgs = append(opts.gitArgs, args[i:]...)
			return opts, nil
		case arg == "-m" || arg == "--message":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("%s requires a value", arg)
			}
			i++
			opts.message = args[i]
		case strings.HasPrefix(arg, "--message="):
			opts.message = strings.TrimPrefix(arg, "--message=")
		case arg == "-f" || arg == "--force":
			opts.force = true
		case arg == "--suggest":
			opts.suggest = true
		case arg == "-i" || arg == "--interactive":
			opts.interactive = true
		case arg == "-h" || arg == "--help":
			opts.help = true
		default:
			opts.gitArgs = append(opts.gitArgs, arg)
		}
	}

	return opts, nil
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

// runCommit drives the manifest-gated commit workflow: obtain a validated
// manifest (authoring file, interactive form, or none when forced), run
// git commit, then bind the manifest to the new commit as a note.
func runCommit(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	opts, err := parseCommitArgs(args)
	if err != nil {
		ux.Error(err.Error())
		os.Exit(1)
	}
	if opts.help {
		_ = cmd.Help()
		return
	}

	requireRepo()

	if opts.suggest {
		if err := writeSuggestedManifest(ctx); err != nil {
			fail("Suggestion failed", err)
		}
		return
	}

	var m *manifest.Manifest
	if opts.interactive {
		m = reusePending()
		if m == nil {
			m, err = runManifestForm()
			if err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					ux.Warning("Commit aborted.")
					os.Exit(1)
				}
				fail("Interactive authoring failed", err)
			}
		}
		// Persist before the commit so a hook rejection or editor abort
		// does not lose the answers.
		if err := appStore.SavePending(m); err != nil {
			ux.Warning(fmt.Sprintf("Could not save pending manifest: %v", err))
		}
	} else {
		m = loadAuthoredManifest(opts.force)
	}

	if m != nil {
		ux.Success("Manifest validated")
	}

	gitArgs := []string{"commit"}
	if opts.message != "" {
		gitArgs = append(gitArgs, "-m", opts.message)
	}
	gitArgs = append(gitArgs, opts.gitArgs...)

	if err := gitPassthrough(ctx, appRunner, gitArgs...); err != nil {
		var cmdErr *CommandError
		if !errors.As(err, &cmdErr) || cmdErr.Wrapped != nil {
			ux.Error(fmt.Sprintf("Failed to run git: %v", err))
		}
		os.Exit(exitCode(err))
	}

	if m == nil {
		return // forced commit without context
	}

	sha, err := appGit.CurrentCommit(ctx)
	if err != nil {
		fail("Failed to resolve HEAD after commit", err)
	}

	m.Commit = sha
	if err := appStore.Save(ctx, m, sha); err != nil {
		fail("Failed to attach manifest note", err)
	}

	ux.Success("Changes committed with context")
	ux.Success("Manifest attached as git note")
	appLog.Info("manifest attached", "commit", sha, "entries", len(m.Entries))

	// Reset authoring state so the next commit starts clean instead of
	// silently re-attaching this manifest.
	if err := appStore.WriteTemplate(); err != nil {
		ux.Warning(fmt.Sprintf("Could not reset authoring template: %v", err))
	}
	if err := appStore.ClearPending(); err != nil {
		ux.Warning(fmt.Sprintf("Could not clear pending manifest: %v", err))
	}
}

// =============================================================================
// AUTHORING FILE WORKFLOW
// =============================================================================

// loadAuthoredManifest runs the authoring-file validation workflow and
// returns the manifest to attach. On rejection it prints remediation
// guidance and exits. Returns nil only when force excuses a missing file.
func loadAuthoredManifest(force bool) *manifest.Manifest {
	content, err := appStore.ReadAuthoring()
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			fail("Failed to read authoring file", err)
		}
		if force {
			ux.Warning("No authoring file found. Committing without context.")
			return nil
		}
		if werr := appStore.WriteTemplate(); werr != nil {
			fail("Failed to write authoring template", werr)
		}
		rejectCommit("Authoring file was missing. Created a fresh template at " +
			appStore.AuthoringPath())
	}

	if !force {
		switch err := store.CheckAuthoring(content); {
		case errors.Is(err, store.ErrTemplateUnedited):
			rejectCommit("Authoring file is unchanged from the template")
		case errors.Is(err, store.ErrSentinelPresent):
			rejectCommit("Authoring file still contains the placeholder '" + store.Sentinel + "'")
		case err != nil:
			fail("Authoring file rejected", err)
		}
	}

	m, err := notation.DecodeCompact(content)
	if err != nil {
		fail("Failed to parse authoring file", err)
	}

	if !force {
		if err := m.Validate(); err != nil {
			fail("Manifest failed validation", err)
		}
	}

	return m
}

// rejectCommit prints the agent-facing remediation block and exits. The
// full template is included so an agent can rebuild the file without
// another round trip.
func rejectCommit(reason string) {
	ux.Error("Commit rejected due to missing or incomplete manifest.")

	path := appStore.AuthoringPath()
	var b strings.Builder
	b.WriteString("Reason: " + reason + "\n\n")
	b.WriteString("To commit, fill out the manifest file at:\n")
	b.WriteString("  " + path + "\n\n")
	b.WriteString("This file describes the intent of your changes in compact notation.\n")
	b.WriteString("Template structure:\n")
	b.WriteString("---------------------------------------------------\n")
	b.WriteString(store.Template)
	b.WriteString("---------------------------------------------------\n\n")
	b.WriteString("INSTRUCTIONS FOR AGENT/LLM:\n")
	b.WriteString("1. Read the file at: " + path + "\n")
	b.WriteString("2. Understand the code changes you are committing.\n")
	b.WriteString("3. Fill out the 'rationale', 'changeType', and 'behaviorClass' fields.\n")
	b.WriteString("4. Save the file.\n")
	b.WriteString("5. Retry the commit command.\n\n")
	b.WriteString("To commit without a manifest, use the --force flag.\n")
	fmt.Fprint(os.Stderr, b.String())

	os.Exit(1)
}

// =============================================================================
// SUGGESTED ENTRIES (--suggest)
// =============================================================================

// suggestHeader tops the authoring file written by --suggest.
const suggestHeader = `; Gip suggested manifest (generated from the staged diff)
; Replace every '` + store.Sentinel + `' rationale with the real
; reason for the change, then run 'gip commit' again.

`

// writeSuggestedManifest scans the staged diff and rewrites the authoring
// file with one entry per changed symbol. Rationales are left as the
// sentinel so an unedited suggestion can never be committed.
func writeSuggestedManifest(ctx context.Context) error {
	staged, err := appGit.HasStagedChanges(ctx)
	if err != nil {
		return err
	}
	if !staged {
		return errors.New("no staged changes to scan; stage your changes first")
	}

	diff, err := appGit.StagedDiff(ctx)
	if err != nil {
		return err
	}

	symbols, err := diffscan.Analyze(diff)
	if err != nil {
		return err
	}

	m := manifest.New(manifest.CommitPlaceholder)
	m.Entries = diffscan.Entries(symbols, store.Sentinel)
	if len(m.Entries) == 0 {
		return errors.New("no recognizable symbols in the staged diff")
	}

	if err := os.MkdirAll(appStore.GipDir(), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", store.GipDirName, err)
	}
	content := suggestHeader + notation.EncodeCompact(m)
	if err := os.WriteFile(appStore.AuthoringPath(), []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing suggested manifest: %w", err)
	}

	ux.Success(fmt.Sprintf("Suggested %d entries from the staged diff", len(m.Entries)))
	for i := range m.Entries {
		e := &m.Entries[i]
		label := e.Anchor.File
		if e.Anchor.Symbol != "" {
			label += ": " + e.Anchor.Symbol
		}
		ux.FileStatus(label, ux.IconPending, string(e.ChangeType))
	}
	ux.Info("Fill in each rationale in " + appStore.AuthoringPath() + ", then run 'gip commit'")
	return nil
}

// =============================================================================
// INTERACTIVE AUTHORING (--interactive)
// =============================================================================

// reusePending offers a pending manifest left by an earlier failed
// attempt. Returns nil when there is none or the user declines.
func reusePending() *manifest.Manifest {
	prev, err := appStore.LoadPending()
	if err != nil {
		return nil
	}

	reuse := true
	confirm := huh.NewConfirm().
		Title("Reuse pending manifest?").
		Description("A manifest from an earlier commit attempt was found.").
		Value(&reuse)
	if err := confirm.Run(); err != nil || !reuse {
		return nil
	}
	return prev
}

// runManifestForm authors a single-entry manifest through a terminal form
// instead of the authoring file.
func runManifestForm() (*manifest.Manifest, error) {
	if !ux.IsInteractive() {
		return nil, errors.New("interactive authoring requires a terminal; edit the authoring file instead")
	}

	var (
		file      string
		symbol    string
		change    = string(manifest.ChangeModify)
		classes   []string
		rationale string
		breaking  bool
	)

	changeOpts := make([]string, 0, len(manifest.AllChangeTypes()))
	for _, ct := range manifest.AllChangeTypes() {
		changeOpts = append(changeOpts, string(ct))
	}
	classOpts := make([]string, 0, len(manifest.AllBehaviorClasses()))
	for _, bc := range manifest.AllBehaviorClasses() {
		classOpts = append(classOpts, string(bc))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("File").
				Description("Repository-relative path of the main change").
				Value(&file).
				Validate(requireValue("file path")),
			huh.NewInput().
				Title("Symbol").
				Description("Function or type changed (optional)").
				Value(&symbol),
			huh.NewSelect[string]().
				Title("Change type").
				Options(huh.NewOptions(changeOpts...)...).
				Value(&change),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Behavior classes").
				Options(huh.NewOptions(classOpts...)...).
				Value(&classes),
			huh.NewText().
				Title("Rationale").
				Description("Why this change was made").
				Value(&rationale).
				Validate(requireValue("rationale")),
			huh.NewConfirm().
				Title("Breaking change?").
				Value(&breaking),
		),
	)

	if err := form.Run(); err != nil {
		return nil, err
	}

	entry := manifest.Entry{
		Anchor: manifest.Anchor{
			File:   strings.TrimSpace(file),
			Symbol: strings.TrimSpace(symbol),
			HunkID: "H#1",
		},
		ChangeType: manifest.ChangeType(change),
		Rationale:  strings.TrimSpace(rationale),
	}
	for _, c := range classes {
		entry.BehaviorClass = append(entry.BehaviorClass, manifest.BehaviorClass(c))
	}
	if breaking {
		entry.Compatibility = &manifest.Compatibility{Breaking: true}
	}

	m := manifest.New(manifest.CommitPlaceholder)
	m.Entries = append(m.Entries, entry)

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// requireValue validates that a form field is neither blank nor the
// template placeholder.
func requireValue(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", what)
		}
		if strings.Contains(s, store.Sentinel) {
			return fmt.Errorf("replace the placeholder with the real %s", what)
		}
		return nil
	}
}
