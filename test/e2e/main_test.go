// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package e2e

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

var cliBinary string

func TestMain(m *testing.M) {
	// 1. Build the binary
	cwd, _ := os.Getwd()
	cliBinary = filepath.Join(cwd, "gip_e2e")

	// Assuming running from test/e2e/, go up to root
	cmd := exec.Command("go", "build", "-o", cliBinary, "../../cmd/gip")
	if out, err := cmd.CombinedOutput(); err != nil {
		fmt.Printf("Failed to build CLI: %v\n%s\n", err, out)
		os.Exit(1)
	}

	// 2. Run Tests
	exitCode := m.Run()

	// 3. Cleanup
	os.Remove(cliBinary)
	os.Exit(exitCode)
}

// run executes a binary inside repo with an isolated environment: the
// repository doubles as HOME so user-level git config and hooks cannot
// leak in, and the machine personality pins gip's output format.
func run(t *testing.T, repo, bin string, args ...string) (string, int) {
	t.Helper()

	cmd := exec.Command(bin, args...)
	cmd.Dir = repo
	cmd.Env = append(os.Environ(),
		"HOME="+repo,
		"XDG_CONFIG_HOME="+filepath.Join(repo, ".xdg"),
		"GIT_CONFIG_NOSYSTEM=1",
		"GIP_PERSONALITY=machine",
	)

	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(out), exitErr.ExitCode()
		}
		t.Fatalf("%s %v did not start: %v", bin, args, err)
	}
	return string(out), 0
}

func runGit(t *testing.T, repo string, args ...string) (string, int) {
	return run(t, repo, "git", args...)
}

func runGip(t *testing.T, repo string, args ...string) (string, int) {
	return run(t, repo, cliBinary, args...)
}

func mustGit(t *testing.T, repo string, args ...string) string {
	t.Helper()
	out, code := runGit(t, repo, args...)
	if code != 0 {
		t.Fatalf("git %v failed (%d):\n%s", args, code, out)
	}
	return out
}

func mustGip(t *testing.T, repo string, args ...string) string {
	t.Helper()
	out, code := runGip(t, repo, args...)
	if code != 0 {
		t.Fatalf("gip %v failed (%d):\n%s", args, code, out)
	}
	return out
}

// newRepo creates an isolated repository with one baseline commit.
func newRepo(t *testing.T) string {
	t.Helper()
	repo := t.TempDir()

	mustGit(t, repo, "init", "-b", "main")
	mustGit(t, repo, "config", "user.email", "dev@example.com")
	mustGit(t, repo, "config", "user.name", "Dev")
	mustGit(t, repo, "config", "commit.gpgsign", "false")

	writeFile(t, repo, "README.md", "# demo\n")
	mustGit(t, repo, "add", ".")
	mustGit(t, repo, "commit", "-m", "init")

	return repo
}

func writeFile(t *testing.T, repo, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(repo, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// writeManifest fills the authoring file so the next gip commit passes
// validation.
func writeManifest(t *testing.T, repo, file, symbol, rationale string) {
	t.Helper()

	content := fmt.Sprintf(`(manifest
  (schemaVersion 2.0)
  (commit #HEAD)
  (entries
    (entry
      (anchor
        (file %s)
        (symbol %s)
        (hunk H#1))
      (changeType modify)
      (behaviorClass [ feature ])
      (rationale """%s""")
    )
  )
)
`, file, symbol, rationale)

	if err := os.MkdirAll(filepath.Join(repo, ".gip"), 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(repo, ".gip", "manifest.toon")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
