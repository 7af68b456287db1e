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
	"fmt"
	"strings"

	"github.com/AleutianAI/gip/cmd/gip/internal/manifest"
)

// EncodeCompact renders a manifest in the compact line-oriented notation:
// parenthesized sections with labeled fields, triple-quoted free text,
// bracketed inline lists, and ";"-prefixed comment lines. Optimized for low
// visual and token overhead; omitted fields simply produce no line.
func EncodeCompact(m *manifest.Manifest) string {
	var out strings.Builder

	out.WriteString("; Gip Manifest\n")
	out.WriteString("(manifest\n")
	fmt.Fprintf(&out, "  (schemaVersion %s)\n", m.SchemaVersion)
	fmt.Fprintf(&out, "  (commit #%s)\n", m.Commit)

	if gi := m.GlobalIntent; gi != nil {
		out.WriteString("  (globalIntent\n")
		if len(gi.BehaviorClass) > 0 {
			fmt.Fprintf(&out, "    (behaviorClass [ %s ])\n", joinClasses(gi.BehaviorClass))
		}
		if gi.Rationale != "" {
			fmt.Fprintf(&out, "    (rationale \"\"\"%s\"\"\")\n", gi.Rationale)
		}
		out.WriteString("  )\n")
	}

	out.WriteString("  (entries\n")
	for i := range m.Entries {
		encodeEntry(&out, &m.Entries[i])
	}
	out.WriteString("  )\n")
	out.WriteString(")\n")

	return out.String()
}

func encodeEntry(out *strings.Builder, e *manifest.Entry) {
	out.WriteString("    (entry\n")

	out.WriteString("      (anchor\n")
	fmt.Fprintf(out, "        (file %s)\n", e.Anchor.File)
	fmt.Fprintf(out, "        (symbol %s)\n", e.Anchor.Symbol)
	fmt.Fprintf(out, "        (hunk %s))\n", e.Anchor.HunkID)

	fmt.Fprintf(out, "      (changeType %s)\n", e.ChangeType)

	if delta := e.SignatureDelta; delta != nil {
		out.WriteString("      (signatureDelta\n")
		fmt.Fprintf(out, "        (before %s)\n", delta.Before)
		fmt.Fprintf(out, "        (after %s))\n", delta.After)
	}

	out.WriteString("      (contract\n")
	encodeTextList(out, "inputs", e.Contract.Inputs)
	if e.Contract.Outputs != "" {
		fmt.Fprintf(out, "        (outputs \"\"\"%s\"\"\")\n", e.Contract.Outputs)
	}
	encodeTextList(out, "preconditions", e.Contract.Preconditions)
	encodeTextList(out, "postconditions", e.Contract.Postconditions)
	encodeTextList(out, "errorModel", e.Contract.ErrorModel)
	out.WriteString("      )\n")

	if len(e.BehaviorClass) > 0 {
		fmt.Fprintf(out, "      (behaviorClass [ %s ])\n", joinClasses(e.BehaviorClass))
	}

	if len(e.SideEffects) > 0 {
		fmt.Fprintf(out, "      (sideEffects [ %s ])\n", strings.Join(e.SideEffects, " "))
	}

	if compat := e.Compatibility; compat != nil {
		out.WriteString("      (compatibility\n")
		fmt.Fprintf(out, "        (breaking %t)\n", compat.Breaking)
		if len(compat.Deprecations) > 0 {
			encodeTextList(out, "deprecations", compat.Deprecations)
		}
		if len(compat.Migrations) > 0 {
			encodeTextList(out, "migrations", compat.Migrations)
		}
		out.WriteString("      )\n")
	}

	if len(e.TestsTouched) > 0 {
		fmt.Fprintf(out, "      (testsTouched [ %s ])\n", strings.Join(e.TestsTouched, " "))
	}

	if len(e.FeatureFlags) > 0 {
		fmt.Fprintf(out, "      (featureFlags [ %s ])\n", strings.Join(e.FeatureFlags, " "))
	}

	if e.Rationale != "" {
		fmt.Fprintf(out, "      (rationale \"\"\"%s\"\"\")\n", e.Rationale)
	}

	if e.InheritsGlobalIntent != nil {
		fmt.Fprintf(out, "      (inheritsGlobalIntent %t)\n", *e.InheritsGlobalIntent)
	}

	out.WriteString("    )\n")
}

// encodeTextList writes a block list section, one triple-quoted item per
// line. Items may contain spaces, which inline lists cannot carry.
func encodeTextList(out *strings.Builder, name string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(out, "        (%s\n", name)
	for _, item := range items {
		fmt.Fprintf(out, "          [ \"\"\"%s\"\"\" ]\n", item)
	}
	out.WriteString("        )\n")
}

func joinClasses(classes []manifest.BehaviorClass) string {
	parts := make([]string, len(classes))
	for i, c := range classes {
		parts[i] = string(c)
	}
	return strings.Join(parts, " ")
}
