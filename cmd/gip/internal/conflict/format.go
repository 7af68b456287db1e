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
	"fmt"
	"strings"

	"github.com/AleutianAI/gip/cmd/gip/internal/manifest"
)

// blockPrefix marks every enrichment line. It is distinct from the three
// conflict delimiter tokens, so enriched text can never be misparsed as a
// delimiter and a consumer can strip it to recover the raw conflict.
const blockPrefix = "||| "

// formatBlock renders the enrichment block for one side of a conflict.
// Every line ends with a newline. The block names the commit, then either
// the fields of the entry resolved for this file and window, or the
// manifest's global intent when no entry matches.
func formatBlock(side, description string, m *manifest.Manifest, filePath string, window []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%sGip CONTEXT (%s - %s)\n", blockPrefix, side, description)
	fmt.Fprintf(&b, "%sCommit: %s\n", blockPrefix, m.Commit)

	entry := ResolveEntry(m, filePath, window)
	if entry == nil {
		if gi := m.GlobalIntent; gi != nil {
			fmt.Fprintf(&b, "%sbehaviorClass: %s\n", blockPrefix, manifest.JoinBehavior(gi.BehaviorClass))
			fmt.Fprintf(&b, "%srationale: %s\n", blockPrefix, gi.Rationale)
		}
		return b.String()
	}

	if len(entry.BehaviorClass) > 0 {
		fmt.Fprintf(&b, "%sbehaviorClass: %s\n", blockPrefix, manifest.JoinBehavior(entry.BehaviorClass))
	}
	if entry.Rationale != "" {
		fmt.Fprintf(&b, "%srationale: %s\n", blockPrefix, entry.Rationale)
	}

	if compat := entry.Compatibility; compat != nil {
		fmt.Fprintf(&b, "%sbreaking: %t\n", blockPrefix, compat.Breaking)
		for i, mig := range compat.Migrations {
			fmt.Fprintf(&b, "%smigrations[%d]: %s\n", blockPrefix, i, mig)
		}
	}

	for i, in := range entry.Contract.Inputs {
		fmt.Fprintf(&b, "%sinputs[%d]: %s\n", blockPrefix, i, in)
	}
	if entry.Contract.Outputs != "" {
		fmt.Fprintf(&b, "%soutputs: %s\n", blockPrefix, entry.Contract.Outputs)
	}
	for i, pre := range entry.Contract.Preconditions {
		fmt.Fprintf(&b, "%spreconditions[%d]: %s\n", blockPrefix, i, pre)
	}
	for i, post := range entry.Contract.Postconditions {
		fmt.Fprintf(&b, "%spostconditions[%d]: %s\n", blockPrefix, i, post)
	}
	for i, em := range entry.Contract.ErrorModel {
		fmt.Fprintf(&b, "%serrorModel[%d]: %s\n", blockPrefix, i, em)
	}
	for i, se := range entry.SideEffects {
		fmt.Fprintf(&b, "%ssideEffects[%d]: %s\n", blockPrefix, i, se)
	}

	fmt.Fprintf(&b, "%ssymbol: %s\n", blockPrefix, entry.Anchor.Symbol)

	return b.String()
}
