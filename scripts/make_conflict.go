// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

//go:build ignore

// make_conflict scaffolds a throwaway repository two commits away from a
// conflicting merge, with intent notes attached to both sides. Useful for
// eyeballing the enriched markers without setting up a repository by hand.
//
// Usage:
//
//	go run scripts/make_conflict.go /tmp/gip-demo
//	cd /tmp/gip-demo && gip merge formal
//
// Notes are written directly with git so the script works before gip is
// built; the merge itself is the part left for gip.
package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

func main() {
	dir := "gip-demo"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	if err := build(dir); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Demo repository ready.\n\nNext:\n  cd %s\n  gip merge formal\n", dir)
}

func build(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	steps := [][]string{
		{"init", "-b", "main"},
		{"config", "user.email", "demo@example.com"},
		{"config", "user.name", "Gip Demo"},
		{"config", "commit.gpgsign", "false"},
	}
	for _, s := range steps {
		if _, err := git(dir, s...); err != nil {
			return err
		}
	}

	// Base commit both branches will edit.
	if err := commitGreet(dir, "hello", "base"); err != nil {
		return err
	}

	// Formal branch.
	if _, err := git(dir, "checkout", "-b", "formal"); err != nil {
		return err
	}
	if err := commitGreet(dir, "good day", "formal greeting"); err != nil {
		return err
	}
	if err := attachNote(dir, "Use a formal salutation"); err != nil {
		return err
	}

	// Conflicting change on main.
	if _, err := git(dir, "checkout", "main"); err != nil {
		return err
	}
	if err := commitGreet(dir, "hey", "casual greeting"); err != nil {
		return err
	}
	return attachNote(dir, "Keep the greeting casual")
}

func commitGreet(dir, ret, msg string) error {
	src := fmt.Sprintf("package main\n\nfunc Greet() string {\n\treturn %q\n}\n", ret)
	if err := os.WriteFile(filepath.Join(dir, "greet.go"), []byte(src), 0o644); err != nil {
		return err
	}
	if _, err := git(dir, "add", "."); err != nil {
		return err
	}
	_, err := git(dir, "commit", "-m", msg)
	return err
}

func attachNote(dir, rationale string) error {
	sha, err := git(dir, "rev-parse", "HEAD")
	if err != nil {
		return err
	}
	_, err = git(dir, "notes", "--ref=gip", "add", "-f", "-m", manifestJSON(sha, rationale), "HEAD")
	return err
}

func manifestJSON(sha, rationale string) string {
	return fmt.Sprintf(`{
  "schemaVersion": "2.0",
  "commit": %q,
  "entries": [
    {
      "anchor": {"file": "greet.go", "symbol": "Greet", "hunkId": "H#1"},
      "changeType": "modify",
      "rationale": %q,
      "behaviorClass": ["feature"],
      "contract": {}
    }
  ]
}`, sha, rationale)
}

func git(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return strings.TrimSpace(string(out)), nil
}
