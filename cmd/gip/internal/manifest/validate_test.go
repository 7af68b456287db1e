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

import "testing"

// createValidManifest builds a manifest that should pass validation.
func createValidManifest() *Manifest {
	return &Manifest{
		SchemaVersion: SchemaVersion20,
		Commit:        "abc123",
		Entries: []Entry{
			{
				Anchor: Anchor{
					File:   "src/main.go",
					Symbol: "main",
					HunkID: "H#1",
				},
				ChangeType:    ChangeModify,
				Rationale:     "Tighten input handling",
				BehaviorClass: []BehaviorClass{BehaviorBugfix, BehaviorValidation},
			},
		},
	}
}

// TestValidate_ValidManifest verifies a well-formed manifest passes.
func TestValidate_ValidManifest(t *testing.T) {
	if err := createValidManifest().Validate(); err != nil {
		t.Errorf("valid manifest rejected: %v", err)
	}
}

// TestValidate_EmptyEntries verifies entries are optional (a global-intent
// only manifest is legal).
func TestValidate_EmptyEntries(t *testing.T) {
	m := &Manifest{
		SchemaVersion: SchemaVersion20,
		Commit:        "abc123",
		GlobalIntent: &GlobalIntent{
			BehaviorClass: []BehaviorClass{BehaviorRefactor},
			Rationale:     "Module-wide rename",
		},
	}
	if err := m.Validate(); err != nil {
		t.Errorf("global-intent manifest rejected: %v", err)
	}
}

// TestValidate_Rejections covers each structural rule.
func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Manifest)
	}{
		{"empty schema version", func(m *Manifest) { m.SchemaVersion = "" }},
		{"unknown schema version", func(m *Manifest) { m.SchemaVersion = "9.9" }},
		{"empty commit", func(m *Manifest) { m.Commit = "" }},
		{"empty anchor file", func(m *Manifest) { m.Entries[0].Anchor.File = "" }},
		{"empty change type", func(m *Manifest) { m.Entries[0].ChangeType = "" }},
		{"unknown change type", func(m *Manifest) { m.Entries[0].ChangeType = "tweak" }},
		{"unknown behavior class", func(m *Manifest) {
			m.Entries[0].BehaviorClass = []BehaviorClass{"vibes"}
		}},
		{"unknown global behavior class", func(m *Manifest) {
			m.GlobalIntent = &GlobalIntent{BehaviorClass: []BehaviorClass{"wat"}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := createValidManifest()
			tt.mutate(m)
			if err := m.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

// TestValidate_AllVocabularyValues verifies every documented vocabulary
// value is accepted.
func TestValidate_AllVocabularyValues(t *testing.T) {
	for _, ct := range AllChangeTypes() {
		m := createValidManifest()
		m.Entries[0].ChangeType = ct
		if err := m.Validate(); err != nil {
			t.Errorf("changeType %q rejected: %v", ct, err)
		}
	}

	m := createValidManifest()
	m.Entries[0].BehaviorClass = AllBehaviorClasses()
	if err := m.Validate(); err != nil {
		t.Errorf("full behavior vocabulary rejected: %v", err)
	}
}
