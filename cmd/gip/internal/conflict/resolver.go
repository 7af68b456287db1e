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
	"math"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/AleutianAI/gip/cmd/gip/internal/manifest"
)

// ResolveEntry picks the manifest entry most likely to describe the code
// around a conflict.
//
// # Description
//
// Candidates are entries anchored to filePath, matched exactly or by base
// name. When a window of preceding lines is available, it is scanned from
// the conflict boundary backward: every line containing a candidate's
// symbol as a substring is scored by its leading-whitespace count, and the
// entry at the smallest indentation wins. An enclosing definition is
// indented less than the code nested inside it or calls made from it, so
// the shallowest mention is the most likely enclosing symbol. Strictly
// smaller indentation replaces the running winner; an equal one does not.
//
// Without a window match the first candidate is returned as a stable
// fallback. The result is best-effort attribution with no confidence
// value, never ground truth.
//
// # Outputs
//
//   - *manifest.Entry: The resolved entry, or nil when no entry is
//     anchored to the file.
func ResolveEntry(m *manifest.Manifest, filePath string, window []string) *manifest.Entry {
	if filePath == "" {
		return nil
	}
	base := filepath.Base(filePath)

	var candidates []*manifest.Entry
	for i := range m.Entries {
		e := &m.Entries[i]
		if e.Anchor.File == filePath || filepath.Base(e.Anchor.File) == base {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	if len(window) > 0 {
		var best *manifest.Entry
		minIndent := math.MaxInt

		for i := len(window) - 1; i >= 0; i-- {
			line := window[i]
			indent := leadingWhitespace(line)
			for _, e := range candidates {
				if strings.Contains(line, e.Anchor.Symbol) && indent < minIndent {
					best = e
					minIndent = indent
				}
			}
		}

		if best != nil {
			return best
		}
	}

	return candidates[0]
}

// leadingWhitespace counts the whitespace runes at the start of a line.
func leadingWhitespace(line string) int {
	n := 0
	for _, r := range line {
		if !unicode.IsSpace(r) {
			break
		}
		n++
	}
	return n
}
