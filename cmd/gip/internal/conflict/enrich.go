// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package conflict

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AleutianAI/gip/cmd/gip/internal/gitx"
	"github.com/AleutianAI/gip/cmd/gip/internal/manifest"
	"github.com/AleutianAI/gip/cmd/gip/internal/store"
	"github.com/AleutianAI/gip/pkg/logging"
)

// Summary reports the outcome of one enrichment run.
type Summary struct {
	// Total is the number of conflicted files git reported.
	Total int

	// Enriched is the number of files rewritten with context blocks.
	Enriched int

	// Failed is the number of files skipped because of I/O errors.
	Failed int
}

// Enricher walks conflicted files and injects manifest context into their
// conflict markers.
//
// # Thread Safety
//
// Enricher is safe for concurrent use, but enrichment itself processes
// files strictly sequentially: there is no shared mutable state between
// files and git remains the single source of truth for conflict state.
type Enricher struct {
	git *gitx.Client
	st  *store.Store
	log *logging.Logger
}

// NewEnricher creates an Enricher.
//
// # Inputs
//
//   - git: Git client. Must not be nil.
//   - st: Manifest store for the same repository. Must not be nil.
//   - log: Logger. Nil means the package default.
//
// # Outputs
//
//   - *Enricher: The enricher instance.
func NewEnricher(git *gitx.Client, st *store.Store, log *logging.Logger) *Enricher {
	if log == nil {
		log = logging.Default()
	}
	return &Enricher{git: git, st: st, log: log}
}

// EnrichAll enriches every currently conflicted file.
//
// # Description
//
// Queries git for the conflicted file list, then processes the files one
// by one: load the manifests for both sides (a missing or unparseable
// manifest is "no context", never a failure), rewrite the conflict
// markers, write the file back. An I/O failure is fatal to that file only;
// the remaining files still run and the failure is counted in the summary.
//
// # Inputs
//
//   - ctx: Context for cancellation. Must not be nil.
//   - oursSHA: Commit SHA of the HEAD side.
//   - theirsSHA: Commit SHA of the incoming side.
//
// # Outputs
//
//   - Summary: Counts of total, enriched, and failed files.
//   - error: Non-nil only when the conflicted-file listing itself fails.
func (e *Enricher) EnrichAll(ctx context.Context, oursSHA, theirsSHA string) (Summary, error) {
	files, err := e.git.ConflictedFiles(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("listing conflicted files: %w", err)
	}

	sum := Summary{Total: len(files)}
	for _, file := range files {
		modified, err := e.enrichFile(ctx, file, oursSHA, theirsSHA)
		if err != nil {
			e.log.Warn("skipping conflicted file", "file", file, "error", err)
			sum.Failed++
			continue
		}
		if modified {
			sum.Enriched++
		}
	}

	return sum, nil
}

// enrichFile rewrites one conflicted file in place. Returns false without
// error when the file needs no rewrite or no longer exists in the working
// tree (delete/modify conflicts).
func (e *Enricher) enrichFile(ctx context.Context, relPath, oursSHA, theirsSHA string) (bool, error) {
	path := filepath.Join(e.st.Root(), relPath)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading %s: %w", relPath, err)
	}

	ours := e.loadBestEffort(ctx, oursSHA)
	theirs := e.loadBestEffort(ctx, theirsSHA)

	rewritten, modified := Rewrite(string(data), relPath, ours, theirs)
	if !modified {
		return false, nil
	}

	if err := os.WriteFile(path, []byte(rewritten), 0o644); err != nil {
		return false, fmt.Errorf("writing %s: %w", relPath, err)
	}
	return true, nil
}

// loadBestEffort loads a manifest for enrichment. Missing or malformed
// manifests mean "no context for this side", never a failure.
func (e *Enricher) loadBestEffort(ctx context.Context, sha string) *manifest.Manifest {
	m, err := e.st.Load(ctx, sha)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			e.log.Debug("manifest unavailable for enrichment", "commit", sha, "error", err)
		}
		return nil
	}
	return m
}
