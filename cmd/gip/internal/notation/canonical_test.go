// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package notation

import (
	"strings"
	"testing"

	"github.com/AleutianAI/gip/cmd/gip/internal/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Fixtures
// =============================================================================

// fullManifest exercises every field the canonical notation carries.
func fullManifest() *manifest.Manifest {
	inherits := false
	latency := 25
	cpu := -3
	return &manifest.Manifest{
		SchemaVersion: manifest.SchemaVersion20,
		Commit:        "abc123def456",
		GlobalIntent: &manifest.GlobalIntent{
			BehaviorClass: []manifest.BehaviorClass{manifest.BehaviorRefactor},
			Rationale:     "Split the handler into transport and domain layers",
		},
		Entries: []manifest.Entry{
			{
				Anchor: manifest.Anchor{
					File:   "src/process.go",
					Symbol: "Process",
					HunkID: "H#42",
				},
				ChangeType: manifest.ChangeModify,
				Rationale:  "Add support for a second parameter",
				SignatureDelta: &manifest.SignatureDelta{
					Before: "func Process(x int)",
					After:  "func Process(x, y int)",
				},
				BehaviorClass: []manifest.BehaviorClass{
					manifest.BehaviorFeature,
					manifest.BehaviorPerf,
				},
				Contract: manifest.Contract{
					Inputs:         []string{"x: int", "y: int"},
					Outputs:        "int",
					Preconditions:  []string{"x > 0"},
					Postconditions: []string{"returns sum"},
					ErrorModel:     []string{"none"},
				},
				SideEffects: []string{"logs:stdout"},
				Compatibility: &manifest.Compatibility{
					Breaking:     true,
					Deprecations: []string{"old signature deprecated"},
					Migrations:   []string{"add second parameter"},
				},
				TestsTouched:         []string{"process_test.go"},
				PerfBudget:           &manifest.PerfBudget{ExpectedMaxLatencyMs: &latency, CPUDeltaPct: &cpu},
				SecurityNotes:        []string{"input length capped"},
				FeatureFlags:         []string{"FLAG_A"},
				InheritsGlobalIntent: &inherits,
			},
		},
	}
}

// =============================================================================
// Round-Trip Tests
// =============================================================================

// TestCanonical_RoundTrip_Full verifies decode(encode(m)) == m with every
// field populated.
func TestCanonical_RoundTrip_Full(t *testing.T) {
	m := fullManifest()

	data, err := EncodeCanonical(m)
	require.NoError(t, err)

	decoded, err := DecodeCanonical(data)
	require.NoError(t, err)

	assert.Equal(t, m, decoded)
}

// TestCanonical_RoundTrip_Minimal verifies round-trip with only required
// fields set.
func TestCanonical_RoundTrip_Minimal(t *testing.T) {
	m := &manifest.Manifest{
		SchemaVersion: manifest.SchemaVersion20,
		Commit:        "test123",
	}

	data, err := EncodeCanonical(m)
	require.NoError(t, err)

	decoded, err := DecodeCanonical(data)
	require.NoError(t, err)

	assert.Equal(t, m, decoded)
}

// TestCanonical_RoundTrip_GlobalIntentOnly covers a manifest with no entries.
func TestCanonical_RoundTrip_GlobalIntentOnly(t *testing.T) {
	m := &manifest.Manifest{
		SchemaVersion: manifest.SchemaVersion20,
		Commit:        "commit789",
		GlobalIntent: &manifest.GlobalIntent{
			BehaviorClass: []manifest.BehaviorClass{manifest.BehaviorRefactor},
			Rationale:     "Refactor entire module",
		},
	}

	data, err := EncodeCanonical(m)
	require.NoError(t, err)

	decoded, err := DecodeCanonical(data)
	require.NoError(t, err)

	assert.Equal(t, m, decoded)
	assert.NotNil(t, decoded.GlobalIntent)
}

// =============================================================================
// Wire Format Tests
// =============================================================================

// TestCanonical_CamelCaseFieldNames pins the wire field naming.
func TestCanonical_CamelCaseFieldNames(t *testing.T) {
	data, err := EncodeCanonical(fullManifest())
	require.NoError(t, err)

	text := string(data)
	for _, want := range []string{
		`"schemaVersion": "2.0"`,
		`"commit": "abc123def456"`,
		`"globalIntent"`,
		`"behaviorClass"`,
		`"changeType"`,
		`"hunkId"`,
		`"signatureDelta"`,
		`"errorModel"`,
		`"sideEffects"`,
		`"inheritsGlobalIntent"`,
		`"expectedMaxLatencyMs"`,
	} {
		assert.Contains(t, text, want)
	}
}

// TestCanonical_OmitsAbsentFields verifies optional blocks vanish from the
// wire instead of appearing as null.
func TestCanonical_OmitsAbsentFields(t *testing.T) {
	m := &manifest.Manifest{
		SchemaVersion: manifest.SchemaVersion20,
		Commit:        "bare",
		Entries: []manifest.Entry{
			{
				Anchor:     manifest.Anchor{File: "a.go", Symbol: "A", HunkID: "H#0"},
				ChangeType: manifest.ChangeAdd,
			},
		},
	}

	data, err := EncodeCanonical(m)
	require.NoError(t, err)

	text := string(data)
	assert.NotContains(t, text, "globalIntent")
	assert.NotContains(t, text, "signatureDelta")
	assert.NotContains(t, text, "compatibility")
	assert.NotContains(t, text, "perfBudget")
}

// TestCanonical_LegacyFieldsSurvive verifies the v1.0 compatibility booleans
// pass through both directions untouched.
func TestCanonical_LegacyFieldsSurvive(t *testing.T) {
	binaryBreaking := true
	m := &manifest.Manifest{
		SchemaVersion: manifest.SchemaVersion10,
		Commit:        "legacy",
		Entries: []manifest.Entry{
			{
				Anchor:     manifest.Anchor{File: "old.go", Symbol: "Old", HunkID: "H#1"},
				ChangeType: manifest.ChangeModify,
				Compatibility: &manifest.Compatibility{
					Deprecations:   []string{},
					Migrations:     []string{},
					BinaryBreaking: &binaryBreaking,
				},
			},
		},
	}

	data, err := EncodeCanonical(m)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"binaryBreaking": true`)

	decoded, err := DecodeCanonical(data)
	require.NoError(t, err)
	require.NotNil(t, decoded.Entries[0].Compatibility.BinaryBreaking)
	assert.True(t, *decoded.Entries[0].Compatibility.BinaryBreaking)
}

// =============================================================================
// Decode Error Tests
// =============================================================================

// TestDecodeCanonical_MalformedInput verifies parse failures wrap ErrParse.
func TestDecodeCanonical_MalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "this is not canonical notation"},
		{"truncated", `{"schemaVersion": "2.0", "commit":`},
		{"wrong shape", `{"schemaVersion": ["2.0"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := DecodeCanonical([]byte(tt.input))
			require.Error(t, err)
			assert.Nil(t, decoded)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

// TestDecodeCanonical_UnknownFieldsIgnored verifies forward tolerance for
// payloads written by newer versions.
func TestDecodeCanonical_UnknownFieldsIgnored(t *testing.T) {
	input := `{"schemaVersion": "2.0", "commit": "x", "futureField": 7}`

	decoded, err := DecodeCanonical([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, "x", decoded.Commit)
}

// TestDecodeCanonical_NotMigrated verifies the codec leaves migration to the
// loader.
func TestDecodeCanonical_NotMigrated(t *testing.T) {
	input := `{"schemaVersion": "1.0", "commit": "legacy", "entries": []}`

	decoded, err := DecodeCanonical([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, manifest.SchemaVersion10, decoded.SchemaVersion)
}

// TestEncodeCanonical_Indented pins the storage format as readable indented
// text, since notes are shown by plain git tooling too.
func TestEncodeCanonical_Indented(t *testing.T) {
	data, err := EncodeCanonical(fullManifest())
	require.NoError(t, err)

	lines := strings.Split(string(data), "\n")
	assert.Greater(t, len(lines), 10)
	assert.Equal(t, "{", lines[0])
}
