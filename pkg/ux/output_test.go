// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

// Helper to capture stdout
func captureStdout(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

// Helper to capture stderr
func captureStderr(f func()) string {
	old := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	f()

	w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

// =============================================================================
// Icon.Render Tests
// =============================================================================

func TestIcon_Render_Success(t *testing.T) {
	result := IconSuccess.Render()
	if result == "" {
		t.Error("expected non-empty result for IconSuccess")
	}
}

func TestIcon_Render_Warning(t *testing.T) {
	result := IconWarning.Render()
	if result == "" {
		t.Error("expected non-empty result for IconWarning")
	}
}

func TestIcon_Render_Error(t *testing.T) {
	result := IconError.Render()
	if result == "" {
		t.Error("expected non-empty result for IconError")
	}
}

func TestIcon_Render_Default(t *testing.T) {
	// Icons without dedicated styling render as their raw rune
	icons := []Icon{IconArrow, IconBullet, IconAnchor}
	for _, icon := range icons {
		result := icon.Render()
		if result != string(icon) {
			t.Errorf("expected %q for %q, got %q", string(icon), icon, result)
		}
	}
}

// =============================================================================
// Title Tests
// =============================================================================

func TestTitle_MachineMode(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)

	output := captureStdout(func() {
		Title("Test Title")
	})

	// In machine mode, Title should output nothing
	if output != "" {
		t.Errorf("expected no output in machine mode, got %q", output)
	}
}

func TestTitle_StandardMode(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityStandard)

	output := captureStdout(func() {
		Title("Test Title")
	})

	if !strings.Contains(output, "Test Title") {
		t.Errorf("expected output to contain title text, got %q", output)
	}
}

// =============================================================================
// Success / Warning / Error Tests
// =============================================================================

func TestSuccess_MachineMode(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)

	output := captureStdout(func() {
		Success("notes pushed")
	})

	if output != "OK: notes pushed\n" {
		t.Errorf("expected 'OK: notes pushed', got %q", output)
	}
}

func TestSuccess_StandardMode(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityStandard)

	output := captureStdout(func() {
		Success("notes pushed")
	})

	if !strings.Contains(output, "notes pushed") {
		t.Errorf("expected output to contain message, got %q", output)
	}
}

func TestWarning_MachineMode_GoesToStderr(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)

	stderr := captureStderr(func() {
		Warning("no manifest found")
	})

	if stderr != "WARN: no manifest found\n" {
		t.Errorf("expected 'WARN: no manifest found' on stderr, got %q", stderr)
	}
}

func TestError_MachineMode_GoesToStderr(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)

	stderr := captureStderr(func() {
		Error("git exited with status 1")
	})

	if stderr != "ERROR: git exited with status 1\n" {
		t.Errorf("expected 'ERROR: ...' on stderr, got %q", stderr)
	}
}

func TestError_StandardMode_GoesToStdout(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityStandard)

	output := captureStdout(func() {
		Error("git exited with status 1")
	})

	if !strings.Contains(output, "git exited with status 1") {
		t.Errorf("expected output to contain message, got %q", output)
	}
}

// =============================================================================
// Info / Muted Tests
// =============================================================================

func TestInfo_MachineMode(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)

	output := captureStdout(func() {
		Info("3 files staged")
	})

	if output != "3 files staged\n" {
		t.Errorf("expected plain text in machine mode, got %q", output)
	}
}

func TestMuted_MachineMode_Silent(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)

	output := captureStdout(func() {
		Muted("hint: run gip commit")
	})

	if output != "" {
		t.Errorf("expected no output in machine mode, got %q", output)
	}
}

// =============================================================================
// Box Tests
// =============================================================================

func TestBox_MachineMode(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)

	output := captureStdout(func() {
		Box("Manifest", "3 entries")
	})

	if output != "Manifest: 3 entries\n" {
		t.Errorf("expected 'Manifest: 3 entries', got %q", output)
	}
}

func TestBox_StandardMode(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityStandard)

	output := captureStdout(func() {
		Box("Manifest", "3 entries")
	})

	if !strings.Contains(output, "Manifest") || !strings.Contains(output, "3 entries") {
		t.Errorf("expected box to contain title and content, got %q", output)
	}
}

func TestWarningBox_MachineMode_GoesToStderr(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)

	stderr := captureStderr(func() {
		WarningBox("Skipped", "malformed manifest")
	})

	if stderr != "WARN Skipped: malformed manifest\n" {
		t.Errorf("expected 'WARN Skipped: malformed manifest', got %q", stderr)
	}
}

// =============================================================================
// Block Helper Tests
// =============================================================================

func TestBlock_MachineMode(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)

	output := captureStdout(func() {
		BlockStart("Commit abc1234")
		BlockField("Behavior", "feat")
		BlockLine("raw line")
		BlockEnd()
	})

	want := "== Commit abc1234\nBehavior: feat\nraw line\n"
	if output != want {
		t.Errorf("expected %q, got %q", want, output)
	}
}

func TestBlock_StandardMode(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityStandard)

	output := captureStdout(func() {
		BlockStart("Commit abc1234")
		BlockField("Behavior", "feat")
		BlockEnd()
	})

	if !strings.Contains(output, "Commit abc1234") {
		t.Errorf("expected block title in output, got %q", output)
	}
	if !strings.Contains(output, "Behavior:") {
		t.Errorf("expected field label in output, got %q", output)
	}
	if !strings.Contains(output, "└─") {
		t.Errorf("expected closing rule in output, got %q", output)
	}
}

// =============================================================================
// FileStatus Tests
// =============================================================================

func TestFileStatus_MachineMode(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)

	output := captureStdout(func() {
		FileStatus("src/auth.rs", IconSuccess, "enriched")
	})

	want := "✓\tsrc/auth.rs\tenriched\n"
	if output != want {
		t.Errorf("expected %q, got %q", want, output)
	}
}

func TestFileStatus_StandardMode_WithReason(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityStandard)

	output := captureStdout(func() {
		FileStatus("src/auth.rs", IconWarning, "no manifest")
	})

	if !strings.Contains(output, "src/auth.rs") {
		t.Errorf("expected path in output, got %q", output)
	}
	if !strings.Contains(output, "no manifest") {
		t.Errorf("expected reason in output, got %q", output)
	}
}

func TestFileStatus_MinimalMode_OmitsReason(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMinimal)

	output := captureStdout(func() {
		FileStatus("src/auth.rs", IconSuccess, "enriched")
	})

	if strings.Contains(output, "enriched") {
		t.Errorf("minimal mode should omit reason, got %q", output)
	}
	if !strings.Contains(output, "src/auth.rs") {
		t.Errorf("expected path in output, got %q", output)
	}
}

// =============================================================================
// Summary Tests
// =============================================================================

func TestSummary_MachineMode(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)

	output := captureStdout(func() {
		Summary(2, 1, 3)
	})

	want := "SUMMARY: enriched=2 skipped=1 total=3\n"
	if output != want {
		t.Errorf("expected %q, got %q", want, output)
	}
}

func TestSummary_StandardMode(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityStandard)

	output := captureStdout(func() {
		Summary(2, 1, 3)
	})

	for _, want := range []string{"2", "enriched", "1", "skipped", "3", "total"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected summary to contain %q, got %q", want, output)
		}
	}
}
