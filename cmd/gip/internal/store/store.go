// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package store persists manifests in two places: a commit-keyed git notes
// namespace for committed manifests, and a transient pending file under the
// working-tree .gip directory for manifests not yet bound to a commit.
// Keying by commit identity makes stored manifests immutable and shareable
// by pushing and fetching the notes namespace.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AleutianAI/gip/cmd/gip/internal/gitx"
	"github.com/AleutianAI/gip/cmd/gip/internal/manifest"
	"github.com/AleutianAI/gip/cmd/gip/internal/notation"
)

// Working-tree control directory layout.
const (
	// GipDirName is the control directory at the repository root.
	GipDirName = ".gip"

	// PendingFileName holds a manifest not yet bound to a commit.
	PendingFileName = "pending.json"

	// AuthoringFileName is the compact-notation authoring file.
	AuthoringFileName = "manifest.toon"
)

// Store reads and writes manifests for one repository checkout.
//
// # Thread Safety
//
// Store is safe for concurrent use; all state lives in git and the
// filesystem.
type Store struct {
	git  *gitx.Client
	root string
}

// New creates a Store for the repository rooted at root.
//
// # Inputs
//
//   - git: Git client for the same repository. Must not be nil.
//   - root: Absolute repository root path. Must not be empty.
//
// # Outputs
//
//   - *Store: The store instance.
func New(git *gitx.Client, root string) *Store {
	return &Store{git: git, root: root}
}

// Root returns the repository root the store was created for.
func (s *Store) Root() string {
	return s.root
}

// GipDir returns the absolute path of the control directory.
func (s *Store) GipDir() string {
	return filepath.Join(s.root, GipDirName)
}

// pendingPath returns the absolute path of the pending manifest file.
func (s *Store) pendingPath() string {
	return filepath.Join(s.GipDir(), PendingFileName)
}

// =============================================================================
// Commit-keyed storage (git notes)
// =============================================================================

// Save serializes a manifest to canonical notation and attaches it to a
// commit in the notes namespace, overwriting any prior manifest for that
// commit.
//
// # Inputs
//
//   - ctx: Context for cancellation. Must not be nil.
//   - m: Manifest to store. Must not be nil.
//   - commitID: Full or abbreviated commit SHA.
//
// # Outputs
//
//   - error: Non-nil if serialization or the notes write fails.
func (s *Store) Save(ctx context.Context, m *manifest.Manifest, commitID string) error {
	data, err := notation.EncodeCanonical(m)
	if err != nil {
		return fmt.Errorf("serializing manifest: %w", err)
	}

	if err := s.git.AddNote(ctx, commitID, string(data)); err != nil {
		return fmt.Errorf("saving manifest to notes: %w", err)
	}

	return nil
}

// Load reads the manifest attached to a commit, parses it, and migrates
// legacy schema versions to current. Every caller therefore sees a
// current-version manifest.
//
// # Outputs
//
//   - *manifest.Manifest: The stored manifest, migrated to the current
//     schema version.
//   - error: ErrNotFound if the commit has no manifest; a notation
//     ErrParse wrap if the payload is malformed.
func (s *Store) Load(ctx context.Context, commitID string) (*manifest.Manifest, error) {
	data, err := s.git.ShowNote(ctx, commitID)
	if err != nil {
		if errors.Is(err, gitx.ErrNoNote) {
			return nil, fmt.Errorf("%w: commit %s", ErrNotFound, commitID)
		}
		return nil, fmt.Errorf("reading manifest note: %w", err)
	}

	m, err := notation.DecodeCanonical([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("manifest for commit %s: %w", commitID, err)
	}

	if manifest.NeedsMigration(m) {
		m = manifest.Migrate(m)
	}

	return m, nil
}

// =============================================================================
// Pending storage (working-tree file)
// =============================================================================

// SavePending writes a manifest to the pending file, creating the control
// directory if needed. Used for manifests authored before their commit
// exists.
func (s *Store) SavePending(m *manifest.Manifest) error {
	data, err := notation.EncodeCanonical(m)
	if err != nil {
		return fmt.Errorf("serializing pending manifest: %w", err)
	}

	if err := os.MkdirAll(s.GipDir(), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", GipDirName, err)
	}

	if err := os.WriteFile(s.pendingPath(), data, 0o644); err != nil {
		return fmt.Errorf("writing pending manifest: %w", err)
	}

	return nil
}

// LoadPending reads the pending manifest. The payload is returned as
// stored; pending manifests are authored against the current schema and
// are not migrated.
//
// # Outputs
//
//   - *manifest.Manifest: The pending manifest.
//   - error: ErrNotFound if no pending file exists.
func (s *Store) LoadPending() (*manifest.Manifest, error) {
	data, err := os.ReadFile(s.pendingPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no pending manifest", ErrNotFound)
		}
		return nil, fmt.Errorf("reading pending manifest: %w", err)
	}

	m, err := notation.DecodeCanonical(data)
	if err != nil {
		return nil, fmt.Errorf("pending manifest: %w", err)
	}

	return m, nil
}

// ClearPending removes the pending file. Removing an absent file is not an
// error.
func (s *Store) ClearPending() error {
	if err := os.Remove(s.pendingPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clearing pending manifest: %w", err)
	}
	return nil
}
