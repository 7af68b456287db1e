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
	"strings"

	"github.com/AleutianAI/gip/cmd/gip/internal/manifest"
)

// Conflict delimiter tokens, matched at line start.
const (
	delimOurs      = "<<<<<<<"
	delimSeparator = "======="
	delimEnd       = ">>>>>>>"
)

// Context window sizes in lines. The theirs window is wider because the
// conflict body sits between the end delimiter and the enclosing symbol.
const (
	oursWindowLines   = 50
	theirsWindowLines = 100
)

// rewriteState tracks position relative to the current conflict region.
type rewriteState int

const (
	stateOutside rewriteState = iota
	stateInsideOurs
	stateInsideTheirs
)

// Rewrite inserts enrichment blocks into a conflicted file's content.
//
// # Description
//
// Single forward pass over the lines. An ours delimiter emits the line
// followed by the ours enrichment block; the separator passes through; an
// end delimiter emits the theirs enrichment block first, then the line.
// Every original line, delimiters included, is preserved exactly,
// trailing branch label and all; the label on the end delimiter becomes
// the theirs side's display name. Multiple conflict regions cycle the same
// state machine. Delimiter tokens in unexpected states pass through as
// plain text.
//
// # Inputs
//
//   - content: Full file text.
//   - filePath: Repository-relative path, used for entry resolution.
//   - ours: Manifest for the HEAD side. May be nil.
//   - theirs: Manifest for the incoming side. May be nil.
//
// # Outputs
//
//   - string: Rewritten text. Byte-identical to content when not modified.
//   - bool: False when the content has no ours delimiter or both
//     manifests are nil; the file must then be left untouched.
func Rewrite(content, filePath string, ours, theirs *manifest.Manifest) (string, bool) {
	if ours == nil && theirs == nil {
		return content, false
	}
	if !strings.Contains(content, delimOurs) {
		return content, false
	}

	lines := strings.Split(content, "\n")
	trailingNewline := false
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
		trailingNewline = true
	}

	var out strings.Builder
	state := stateOutside

	for idx, line := range lines {
		switch {
		case state == stateOutside && strings.HasPrefix(line, delimOurs):
			out.WriteString(line)
			out.WriteByte('\n')
			if ours != nil {
				window := contextWindow(lines, idx, oursWindowLines)
				out.WriteString(formatBlock("HEAD", "Your changes", ours, filePath, window))
			}
			state = stateInsideOurs

		case state == stateInsideOurs && strings.HasPrefix(line, delimSeparator):
			out.WriteString(line)
			out.WriteByte('\n')
			state = stateInsideTheirs

		case state == stateInsideTheirs && strings.HasPrefix(line, delimEnd):
			if theirs != nil {
				label := strings.TrimSpace(strings.TrimPrefix(line, delimEnd))
				window := contextWindow(lines, idx, theirsWindowLines)
				out.WriteString(formatBlock(label, "Their changes", theirs, filePath, window))
			}
			out.WriteString(line)
			out.WriteByte('\n')
			state = stateOutside

		default:
			out.WriteString(line)
			out.WriteByte('\n')
		}
	}

	result := out.String()
	if !trailingNewline {
		result = strings.TrimSuffix(result, "\n")
	}
	return result, true
}

// contextWindow returns up to max lines preceding index idx.
func contextWindow(lines []string, idx, max int) []string {
	start := 0
	if idx > max {
		start = idx - max
	}
	return lines[start:idx]
}
