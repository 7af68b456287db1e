// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package validation provides input validation utilities for security-critical operations.
//
// This package contains validators for user-provided inputs that are passed
// to the git binary as subprocess arguments. Using these validators prevents
// argument injection (a revision or remote name starting with "-" would be
// parsed by git as a flag) and keeps clearly malformed refs out of argv.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// revPattern matches revision specifiers gip is willing to hand to git.
// Allows: hex object names, symbolic refs (HEAD, MERGE_HEAD), branch and tag
// names with path separators, and trailing ^/~ navigation (HEAD~2).
// Max length: 128 characters.
var revPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._/^~\-]{0,127}$`)

// remotePattern matches git remote names (origin, upstream, fork-1).
// Max length: 64 characters.
var remotePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._\-]{0,63}$`)

// notesRefPattern matches the short name of a notes namespace, i.e. the
// <name> in refs/notes/<name>. Path separators are allowed for nested
// namespaces. Max length: 64 characters.
var notesRefPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._/\-]{0,63}$`)

// ValidateRev validates a revision specifier before it is used as a git
// subprocess argument.
//
// Valid revisions:
//   - 1-128 characters, first character alphanumeric
//   - Hex object names (full or abbreviated)
//   - Symbolic refs such as HEAD, MERGE_HEAD, REBASE_HEAD
//   - Branch/tag names including slashes (feature/login)
//   - Trailing navigation suffixes (HEAD~1, main^2)
//
// Returns an error if the revision is empty, starts with "-", or contains
// characters outside the allowed set.
//
// Example:
//
//	if err := validation.ValidateRev(rev); err != nil {
//	    return fmt.Errorf("invalid revision: %w", err)
//	}
//	// Safe to pass to git argv
func ValidateRev(rev string) error {
	if rev == "" {
		return fmt.Errorf("revision cannot be empty")
	}

	if strings.Contains(rev, "..") {
		return fmt.Errorf("invalid revision %q: range syntax is not accepted here", rev)
	}

	if !revPattern.MatchString(rev) {
		return fmt.Errorf("invalid revision format: %q (must be 1-128 chars, alphanumeric start, no leading dash)", rev)
	}

	return nil
}

// ValidateRemote validates a git remote name (e.g. "origin").
//
// Returns an error if the name is empty, starts with "-", or contains
// characters outside [A-Za-z0-9._-].
func ValidateRemote(name string) error {
	if name == "" {
		return fmt.Errorf("remote name cannot be empty")
	}

	if !remotePattern.MatchString(name) {
		return fmt.Errorf("invalid remote name: %q (must be 1-64 alphanumeric chars, dots, underscores, or hyphens)", name)
	}

	return nil
}

// ValidateNotesRef validates the short name of a notes namespace, the <name>
// part of refs/notes/<name>.
//
// Returns an error if the name is empty, contains "..", or falls outside the
// allowed character set.
func ValidateNotesRef(name string) error {
	if name == "" {
		return fmt.Errorf("notes ref cannot be empty")
	}

	if strings.Contains(name, "..") {
		return fmt.Errorf("invalid notes ref %q: must not contain \"..\"", name)
	}

	if !notesRefPattern.MatchString(name) {
		return fmt.Errorf("invalid notes ref format: %q (must be 1-64 chars, alphanumeric start)", name)
	}

	return nil
}

// SanitizeRev normalizes and validates a revision specifier.
// Returns the trimmed revision if valid, or an error if invalid.
//
// Use this when the revision comes straight from user input:
//
//	safeRev, err := validation.SanitizeRev(userInput)
//	if err != nil {
//	    return err
//	}
//	// safeRev is trimmed and validated
func SanitizeRev(rev string) (string, error) {
	normalized := strings.TrimSpace(rev)
	if err := ValidateRev(normalized); err != nil {
		return "", err
	}
	return normalized, nil
}
