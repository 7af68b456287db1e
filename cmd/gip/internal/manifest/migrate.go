// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package manifest

// Migrate upgrades a manifest in place to the current schema version.
//
// # Description
//
// Total and idempotent: migrating an already-current manifest leaves it
// structurally unchanged, and migrating twice equals migrating once. Every
// loader runs this before handing a manifest to anything else, so no other
// component needs to special-case legacy versions. Rules, in order:
//
//  1. schemaVersion becomes the current version.
//  2. Entries with a compatibility block get deprecations/migrations
//     initialized to empty lists when absent; a true legacy binaryBreaking
//     or sourceBreaking forces breaking=true. The legacy fields themselves
//     are inputs only and are never cleared.
//  3. Entries with an empty anchor hunk label get DefaultHunkID.
//
// # Inputs
//
//   - m: Manifest to upgrade. Must not be nil.
//
// # Outputs
//
//   - *Manifest: The same manifest, upgraded. Never fails; malformed input
//     is a parse-time concern caught before this runs.
func Migrate(m *Manifest) *Manifest {
	m.SchemaVersion = SchemaVersionCurrent

	for i := range m.Entries {
		entry := &m.Entries[i]

		if compat := entry.Compatibility; compat != nil {
			if compat.Deprecations == nil {
				compat.Deprecations = []string{}
			}
			if compat.Migrations == nil {
				compat.Migrations = []string{}
			}
			if boolVal(compat.BinaryBreaking) || boolVal(compat.SourceBreaking) {
				compat.Breaking = true
			}
		}

		if entry.Anchor.HunkID == "" {
			entry.Anchor.HunkID = DefaultHunkID
		}
	}

	return m
}

// NeedsMigration reports whether a manifest declares a legacy or unknown
// schema version.
func NeedsMigration(m *Manifest) bool {
	return m.SchemaVersion != SchemaVersionCurrent
}

func boolVal(b *bool) bool {
	return b != nil && *b
}
