// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel is the placeholder rationale in the authoring template. Its
// presence anywhere in the authoring file rejects a commit, regardless of
// other edits.
const Sentinel = "Describe your changes here"

// Template is the authoring file written by init and by a commit attempt
// that found no authoring file. It is valid compact notation with one
// placeholder entry.
const Template = `; Gip Manifest Template
; This file describes the semantic intent of your changes.
; It is used to enrich merge conflicts with context.
;
; INSTRUCTIONS FOR LLM/AGENTS:
; 1. Analyze the code changes in the current commit.
; 2. Update the fields below to reflect the actual changes.
; 3. 'rationale' should explain WHY the change was made.
; 4. 'behaviorClass' options: feature, bugfix, refactor, perf, security, config.
; 5. 'changeType' options: add, modify, delete, rename.
; 6. Remove these instruction comments if desired, but keep the structure.

(manifest
  (schemaVersion 2.0)
  (commit #HEAD)
  (entries
    (entry
      (anchor
        (file src/main.go)
        (symbol main)
        (hunk H#1))
      (changeType modify)
      (contract
        (preconditions
          [ """none""" ]
        )
        (postconditions
          [ """program runs""" ]
        )
        (errorModel
          [ """errors returned to caller""" ]
        )
      )
      (behaviorClass [ feature ])
      (rationale """Describe your changes here""")
    )
  )
)
`

// AuthoringPath returns the absolute path of the authoring file.
func (s *Store) AuthoringPath() string {
	return filepath.Join(s.GipDir(), AuthoringFileName)
}

// ReadAuthoring returns the authoring file content.
//
// # Outputs
//
//   - string: File content.
//   - error: ErrNotFound if the file does not exist.
func (s *Store) ReadAuthoring() (string, error) {
	data, err := os.ReadFile(s.AuthoringPath())
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: no authoring file", ErrNotFound)
		}
		return "", fmt.Errorf("reading authoring file: %w", err)
	}
	return string(data), nil
}

// WriteTemplate writes a fresh template to the authoring file, creating
// the control directory if needed and overwriting any existing content.
func (s *Store) WriteTemplate() error {
	if err := os.MkdirAll(s.GipDir(), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", GipDirName, err)
	}
	if err := os.WriteFile(s.AuthoringPath(), []byte(Template), 0o644); err != nil {
		return fmt.Errorf("writing authoring template: %w", err)
	}
	return nil
}

// EnsureTemplate writes the template only when no authoring file exists.
//
// # Outputs
//
//   - bool: True if a template was written.
//   - error: Non-nil on I/O failure.
func (s *Store) EnsureTemplate() (bool, error) {
	if _, err := os.Stat(s.AuthoringPath()); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking authoring file: %w", err)
	}

	if err := s.WriteTemplate(); err != nil {
		return false, err
	}
	return true, nil
}

// CheckAuthoring validates authoring file content for the commit workflow.
// Line endings are normalized before the template comparison so a CRLF
// checkout does not defeat the unedited check.
//
// # Outputs
//
//   - error: ErrTemplateUnedited if the content equals the template;
//     ErrSentinelPresent if the placeholder text remains; nil otherwise.
func CheckAuthoring(content string) error {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	template := strings.ReplaceAll(Template, "\r\n", "\n")

	if strings.TrimSpace(normalized) == strings.TrimSpace(template) {
		return ErrTemplateUnedited
	}
	if strings.Contains(content, Sentinel) {
		return ErrSentinelPresent
	}
	return nil
}

// EnsureGitignore appends the control directory to the repository's
// .gitignore when not already mentioned, creating the file if needed.
//
// # Outputs
//
//   - bool: True if .gitignore was modified.
//   - error: Non-nil on I/O failure.
func (s *Store) EnsureGitignore() (bool, error) {
	path := filepath.Join(s.root, ".gitignore")

	var content string
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		content = string(data)
	case os.IsNotExist(err):
		content = ""
	default:
		return false, fmt.Errorf("reading .gitignore: %w", err)
	}

	if strings.Contains(content, GipDirName) {
		return false, nil
	}

	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += GipDirName + "\n"

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("writing .gitignore: %w", err)
	}
	return true, nil
}
