// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package conflict enriches git conflict markers with manifest context.
//
// When a merge or rebase stops on conflicts, the Enricher loads the
// manifests stored for both sides and rewrites each conflicted file so
// that every conflict region carries the intent recorded for its code:
//
//	<<<<<<< HEAD
//	||| Gip CONTEXT (HEAD - Your changes)
//	||| Commit: abc1234
//	||| behaviorClass: refactor
//	||| rationale: Extract token validation into its own helper
//	||| symbol: validateToken
//	    ... your side ...
//	=======
//	    ... their side ...
//	||| Gip CONTEXT (feature/login - Their changes)
//	||| Commit: def5678
//	||| behaviorClass: feature
//	||| rationale: Add expiry check before validation
//	||| symbol: validateToken
//	>>>>>>> feature/login
//
// Enrichment lines use the "||| " prefix, so they cannot be mistaken for
// delimiters and are trivially strippable.
//
// # Rewrite State Machine
//
// Each file is rewritten in a single forward pass:
//
//	            ┌──────────┐  <<<<<<<   ┌─────────────┐
//	      ─────▶│ OUTSIDE  │───────────▶│ INSIDE_OURS │
//	            └──────────┘ +ours blk  └─────────────┘
//	                  ▲                        │ =======
//	                  │ +theirs blk            ▼
//	                  │ >>>>>>>        ┌───────────────┐
//	                  └────────────────│ INSIDE_THEIRS │
//	                                   └───────────────┘
//
// The ours block is placed after the start delimiter with a 50-line
// context window; the theirs block is placed before the end delimiter
// with a 100-line window, wide enough to reach past the conflict body to
// the enclosing symbol.
//
// # Thread Safety
//
// Files are processed strictly sequentially. Conflict state is re-queried
// from git on every run and never cached.
package conflict
