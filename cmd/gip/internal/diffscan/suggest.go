// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package diffscan

import (
	"fmt"

	"github.com/AleutianAI/gip/cmd/gip/internal/manifest"
)

// Entries converts extracted symbols into manifest entries for the
// authoring file. One entry per distinct (file, symbol) pair, in diff
// order, with hunk labels numbered H#1..H#n within each file. Every entry
// carries the given rationale; pass the template sentinel so commit
// validation still forces a human description.
func Entries(symbols []Symbol, rationale string) []manifest.Entry {
	if len(symbols) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(symbols))
	hunks := make(map[string]int)
	entries := make([]manifest.Entry, 0, len(symbols))

	for _, s := range symbols {
		key := s.File + "\x00" + s.Name
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		hunks[s.File]++
		entries = append(entries, manifest.Entry{
			Anchor: manifest.Anchor{
				File:   s.File,
				Symbol: s.Name,
				HunkID: fmt.Sprintf("H#%d", hunks[s.File]),
			},
			ChangeType: s.Change,
			Rationale:  rationale,
		})
	}
	return entries
}
