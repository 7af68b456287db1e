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
	"testing"

	"github.com/AleutianAI/gip/cmd/gip/internal/manifest"
	"github.com/stretchr/testify/assert"
)

// =============================================================================
// Block Formatting Tests
// =============================================================================

// TestFormatBlock_FullEntry pins the exact block layout for an entry with
// every renderable field.
func TestFormatBlock_FullEntry(t *testing.T) {
	m := &manifest.Manifest{
		SchemaVersion: manifest.SchemaVersionCurrent,
		Commit:        "abc1234",
		Entries: []manifest.Entry{
			{
				Anchor: manifest.Anchor{
					File:   "src/payment.go",
					Symbol: "processPayment",
					HunkID: "H#1",
				},
				ChangeType: manifest.ChangeModify,
				Contract: manifest.Contract{
					Inputs:     []string{"amount: float", "currency: string"},
					Outputs:    "bool success",
					ErrorModel: []string{"throws PaymentException"},
				},
				BehaviorClass: []manifest.BehaviorClass{manifest.BehaviorFeature},
				Compatibility: &manifest.Compatibility{
					Breaking:   true,
					Migrations: []string{"Update payment config"},
				},
				Rationale: "Added new payment method",
			},
		},
	}

	block := formatBlock("HEAD", "Your changes", m, "src/payment.go", nil)

	want := `||| Gip CONTEXT (HEAD - Your changes)
||| Commit: abc1234
||| behaviorClass: feature
||| rationale: Added new payment method
||| breaking: true
||| migrations[0]: Update payment config
||| inputs[0]: amount: float
||| inputs[1]: currency: string
||| outputs: bool success
||| errorModel[0]: throws PaymentException
||| symbol: processPayment
`
	assert.Equal(t, want, block)
}

// TestFormatBlock_MultipleBehaviorClasses verifies the comma-space join.
func TestFormatBlock_MultipleBehaviorClasses(t *testing.T) {
	m := &manifest.Manifest{
		SchemaVersion: manifest.SchemaVersionCurrent,
		Commit:        "abc",
		Entries: []manifest.Entry{
			{
				Anchor:     manifest.Anchor{File: "a.go", Symbol: "A", HunkID: "H#1"},
				ChangeType: manifest.ChangeModify,
				BehaviorClass: []manifest.BehaviorClass{
					manifest.BehaviorSecurity,
					manifest.BehaviorBugfix,
				},
			},
		},
	}

	block := formatBlock("HEAD", "Your changes", m, "a.go", nil)

	assert.Contains(t, block, "||| behaviorClass: security, bugfix\n")
}

// TestFormatBlock_GlobalIntentFallback verifies the fallback when no entry
// is anchored to the file.
func TestFormatBlock_GlobalIntentFallback(t *testing.T) {
	m := &manifest.Manifest{
		SchemaVersion: manifest.SchemaVersionCurrent,
		Commit:        "xyz789",
		GlobalIntent: &manifest.GlobalIntent{
			BehaviorClass: []manifest.BehaviorClass{manifest.BehaviorRefactor},
			Rationale:     "Repository-wide cleanup",
		},
		Entries: []manifest.Entry{
			{Anchor: manifest.Anchor{File: "other.go", Symbol: "X", HunkID: "H#1"}, ChangeType: manifest.ChangeModify},
		},
	}

	block := formatBlock("feature", "Their changes", m, "unrelated.go", nil)

	want := `||| Gip CONTEXT (feature - Their changes)
||| Commit: xyz789
||| behaviorClass: refactor
||| rationale: Repository-wide cleanup
`
	assert.Equal(t, want, block)
}

// TestFormatBlock_HeaderOnly verifies the minimal block when nothing can
// be attributed.
func TestFormatBlock_HeaderOnly(t *testing.T) {
	m := &manifest.Manifest{
		SchemaVersion: manifest.SchemaVersionCurrent,
		Commit:        "bare123",
	}

	block := formatBlock("HEAD", "Your changes", m, "any.go", nil)

	want := "||| Gip CONTEXT (HEAD - Your changes)\n||| Commit: bare123\n"
	assert.Equal(t, want, block)
}

// TestFormatBlock_SkipsEmptyFields verifies optional lines are omitted,
// while the symbol line always closes an attributed block.
func TestFormatBlock_SkipsEmptyFields(t *testing.T) {
	m := &manifest.Manifest{
		SchemaVersion: manifest.SchemaVersionCurrent,
		Commit:        "min123",
		Entries: []manifest.Entry{
			{
				Anchor:     manifest.Anchor{File: "tiny.go", Symbol: "Tiny", HunkID: "H#1"},
				ChangeType: manifest.ChangeAdd,
			},
		},
	}

	block := formatBlock("HEAD", "Your changes", m, "tiny.go", nil)

	want := `||| Gip CONTEXT (HEAD - Your changes)
||| Commit: min123
||| symbol: Tiny
`
	assert.Equal(t, want, block)
}
