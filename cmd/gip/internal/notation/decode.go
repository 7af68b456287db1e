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
	"strconv"
	"strings"

	"github.com/AleutianAI/gip/cmd/gip/internal/manifest"
)

// DecodeCompact parses compact notation into a manifest.
//
// # Description
//
// Line-oriented, single forward pass. Comment lines (";" prefix) and blank
// lines are skipped. Unknown fields and sections are ignored rather than
// rejected, so authoring files may carry extra annotations. Scalar values
// may contain parentheses as long as they are balanced within the value;
// the parser counts unmatched closers to find where enclosing sections end.
//
// # Outputs
//
//   - *manifest.Manifest: The parsed manifest, not migrated or validated.
//   - error: Non-nil on structural problems (no manifest section,
//     unterminated strings or lists, unbalanced sections).
func DecodeCompact(input string) (*manifest.Manifest, error) {
	d := &compactDecoder{lines: strings.Split(input, "\n")}

	for d.idx < len(d.lines) {
		raw := d.lines[d.idx]
		if err := d.processLine(raw); err != nil {
			return nil, fmt.Errorf("line %d: %w", d.idx+1, err)
		}
		d.idx++
	}

	if d.m == nil {
		return nil, ErrNoManifest
	}
	if len(d.stack) != 0 {
		return nil, fmt.Errorf("%w: %d sections left open", ErrUnbalanced, len(d.stack))
	}
	return d.m, nil
}

// compactDecoder walks the input line by line, tracking the open section
// stack and the entry currently under construction.
type compactDecoder struct {
	lines []string
	idx   int

	m     *manifest.Manifest
	stack []string
	entry *manifest.Entry
	list  *[]string
}

func (d *compactDecoder) processLine(raw string) error {
	line := strings.TrimSpace(raw)

	switch {
	case line == "" || strings.HasPrefix(line, ";"):
		return nil
	case strings.HasPrefix(line, ")"):
		return d.popN(strings.Count(line, ")"))
	case strings.HasPrefix(line, "["):
		return d.listItem(line)
	case strings.HasPrefix(line, "("):
		return d.openOrField(line)
	default:
		// Stray text outside any construct; tolerate like a comment.
		return nil
	}
}

// openOrField handles a "(" line: a bare name opens a section, a name
// followed by content is a field.
func (d *compactDecoder) openOrField(line string) error {
	body := line[1:]
	name := body
	rest := ""
	if i := strings.IndexAny(body, " )"); i >= 0 {
		name = body[:i]
		rest = strings.TrimLeft(body[i:], " ")
	}

	if rest == "" {
		d.openSection(name)
		return nil
	}

	switch {
	case strings.HasPrefix(rest, `"""`):
		text, closes, err := d.scanTriple(rest[3:])
		if err != nil {
			return err
		}
		if closes < 1 {
			return fmt.Errorf("%w: field %q not closed", ErrUnbalanced, name)
		}
		if err := d.setField(name, text); err != nil {
			return err
		}
		return d.popN(closes - 1)

	case strings.HasPrefix(rest, "["):
		end := strings.Index(rest, "]")
		if end < 0 {
			return fmt.Errorf("%w: field %q", ErrUnterminatedList, name)
		}
		items := strings.Fields(rest[1:end])
		closes := strings.Count(rest[end:], ")")
		if closes < 1 {
			return fmt.Errorf("%w: field %q not closed", ErrUnbalanced, name)
		}
		if err := d.setListField(name, items); err != nil {
			return err
		}
		return d.popN(closes - 1)

	default:
		// Value-internal parens are balanced, so unmatched closers on the
		// line are structural: one ends the field, the rest pop sections.
		opens := strings.Count(line, "(")
		closes := strings.Count(line, ")")
		structural := closes - (opens - 1)
		if structural < 1 || structural > countTrailing(rest, ')') {
			return fmt.Errorf("%w: field %q not closed", ErrUnbalanced, name)
		}
		value := strings.TrimSpace(rest[:len(rest)-structural])
		if err := d.setField(name, value); err != nil {
			return err
		}
		return d.popN(structural - 1)
	}
}

// scanTriple consumes a triple-quoted string starting after the opening
// quotes, advancing across lines when the closing quotes are not on this
// one. Returns the text and the count of structural closers after the
// closing quotes.
func (d *compactDecoder) scanTriple(body string) (string, int, error) {
	if i := strings.Index(body, `"""`); i >= 0 {
		return body[:i], strings.Count(body[i+3:], ")"), nil
	}

	var text strings.Builder
	text.WriteString(body)
	for d.idx+1 < len(d.lines) {
		d.idx++
		raw := d.lines[d.idx]
		if i := strings.Index(raw, `"""`); i >= 0 {
			text.WriteString("\n")
			text.WriteString(raw[:i])
			return text.String(), strings.Count(raw[i+3:], ")"), nil
		}
		text.WriteString("\n")
		text.WriteString(raw)
	}
	return "", 0, ErrUnterminatedString
}

// listItem handles a "[ ... ]" block list line inside an open list section.
func (d *compactDecoder) listItem(line string) error {
	if d.list == nil {
		// Item inside an unknown section; ignore.
		return nil
	}

	inner := line[1:]
	if strings.HasPrefix(strings.TrimSpace(inner), `"""`) {
		trimmed := strings.TrimSpace(inner)
		text, err := d.scanTripleItem(trimmed[3:])
		if err != nil {
			return err
		}
		*d.list = append(*d.list, text)
		return nil
	}

	end := strings.LastIndex(inner, "]")
	if end < 0 {
		return ErrUnterminatedList
	}
	item := strings.TrimSpace(inner[:end])
	*d.list = append(*d.list, item)
	return nil
}

// scanTripleItem consumes a triple-quoted list item, requiring the closing
// bracket after the closing quotes.
func (d *compactDecoder) scanTripleItem(body string) (string, error) {
	if i := strings.Index(body, `"""`); i >= 0 {
		if !strings.Contains(body[i+3:], "]") {
			return "", ErrUnterminatedList
		}
		return body[:i], nil
	}

	var text strings.Builder
	text.WriteString(body)
	for d.idx+1 < len(d.lines) {
		d.idx++
		raw := d.lines[d.idx]
		if i := strings.Index(raw, `"""`); i >= 0 {
			if !strings.Contains(raw[i+3:], "]") {
				return "", ErrUnterminatedList
			}
			text.WriteString("\n")
			text.WriteString(raw[:i])
			return text.String(), nil
		}
		text.WriteString("\n")
		text.WriteString(raw)
	}
	return "", ErrUnterminatedString
}

func (d *compactDecoder) openSection(name string) {
	switch name {
	case "manifest":
		d.m = &manifest.Manifest{Entries: []manifest.Entry{}}
	case "globalIntent":
		if d.m != nil {
			d.m.GlobalIntent = &manifest.GlobalIntent{}
		}
	case "entry":
		d.entry = &manifest.Entry{}
	case "signatureDelta":
		if d.entry != nil {
			d.entry.SignatureDelta = &manifest.SignatureDelta{}
		}
	case "compatibility":
		if d.entry != nil {
			d.entry.Compatibility = &manifest.Compatibility{
				Deprecations: []string{},
				Migrations:   []string{},
			}
		}
	case "inputs":
		if d.entry != nil {
			d.list = &d.entry.Contract.Inputs
		}
	case "preconditions":
		if d.entry != nil {
			d.list = &d.entry.Contract.Preconditions
		}
	case "postconditions":
		if d.entry != nil {
			d.list = &d.entry.Contract.Postconditions
		}
	case "errorModel":
		if d.entry != nil {
			d.list = &d.entry.Contract.ErrorModel
		}
	case "deprecations":
		if d.entry != nil && d.entry.Compatibility != nil {
			d.list = &d.entry.Compatibility.Deprecations
		}
	case "migrations":
		if d.entry != nil && d.entry.Compatibility != nil {
			d.list = &d.entry.Compatibility.Migrations
		}
	}
	d.stack = append(d.stack, name)
}

func (d *compactDecoder) popN(n int) error {
	for i := 0; i < n; i++ {
		if len(d.stack) == 0 {
			return fmt.Errorf("%w: close with no open section", ErrUnbalanced)
		}
		top := d.stack[len(d.stack)-1]
		d.stack = d.stack[:len(d.stack)-1]

		switch top {
		case "entry":
			if d.m != nil && d.entry != nil {
				d.m.Entries = append(d.m.Entries, *d.entry)
			}
			d.entry = nil
		case "inputs", "preconditions", "postconditions", "errorModel",
			"deprecations", "migrations":
			d.list = nil
		}
	}
	return nil
}

func (d *compactDecoder) setField(name, value string) error {
	if d.m == nil {
		return ErrNoManifest
	}

	switch name {
	case "schemaVersion":
		d.m.SchemaVersion = value
	case "commit":
		d.m.Commit = strings.TrimPrefix(value, "#")
	case "rationale":
		if d.top() == "globalIntent" {
			d.m.GlobalIntent.Rationale = value
			return nil
		}
		if d.entry == nil {
			return fmt.Errorf("%w: rationale outside entry", ErrUnbalanced)
		}
		d.entry.Rationale = value
	case "file":
		if err := d.needEntry(name); err != nil {
			return err
		}
		d.entry.Anchor.File = value
	case "symbol":
		if err := d.needEntry(name); err != nil {
			return err
		}
		d.entry.Anchor.Symbol = value
	case "hunk":
		if err := d.needEntry(name); err != nil {
			return err
		}
		d.entry.Anchor.HunkID = value
	case "changeType":
		if err := d.needEntry(name); err != nil {
			return err
		}
		d.entry.ChangeType = manifest.ChangeType(value)
	case "before":
		if d.entry == nil || d.entry.SignatureDelta == nil {
			return fmt.Errorf("%w: before outside signatureDelta", ErrUnbalanced)
		}
		d.entry.SignatureDelta.Before = value
	case "after":
		if d.entry == nil || d.entry.SignatureDelta == nil {
			return fmt.Errorf("%w: after outside signatureDelta", ErrUnbalanced)
		}
		d.entry.SignatureDelta.After = value
	case "outputs":
		if err := d.needEntry(name); err != nil {
			return err
		}
		d.entry.Contract.Outputs = value
	case "breaking":
		if d.entry == nil || d.entry.Compatibility == nil {
			return fmt.Errorf("%w: breaking outside compatibility", ErrUnbalanced)
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("parsing breaking flag: %w", err)
		}
		d.entry.Compatibility.Breaking = b
	case "inheritsGlobalIntent":
		if err := d.needEntry(name); err != nil {
			return err
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("parsing inheritsGlobalIntent flag: %w", err)
		}
		d.entry.InheritsGlobalIntent = &b
	}
	// Unknown field names fall through untouched.
	return nil
}

func (d *compactDecoder) setListField(name string, items []string) error {
	if d.m == nil {
		return ErrNoManifest
	}

	switch name {
	case "behaviorClass":
		classes := make([]manifest.BehaviorClass, len(items))
		for i, item := range items {
			classes[i] = manifest.BehaviorClass(item)
		}
		if d.top() == "globalIntent" {
			d.m.GlobalIntent.BehaviorClass = classes
			return nil
		}
		if err := d.needEntry(name); err != nil {
			return err
		}
		d.entry.BehaviorClass = classes
	case "sideEffects":
		if err := d.needEntry(name); err != nil {
			return err
		}
		d.entry.SideEffects = items
	case "testsTouched":
		if err := d.needEntry(name); err != nil {
			return err
		}
		d.entry.TestsTouched = items
	case "featureFlags":
		if err := d.needEntry(name); err != nil {
			return err
		}
		d.entry.FeatureFlags = items
	}
	return nil
}

func (d *compactDecoder) needEntry(field string) error {
	if d.entry == nil {
		return fmt.Errorf("%w: %s outside entry", ErrUnbalanced, field)
	}
	return nil
}

func (d *compactDecoder) top() string {
	if len(d.stack) == 0 {
		return ""
	}
	return d.stack[len(d.stack)-1]
}

func countTrailing(s string, c byte) int {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == c; i-- {
		n++
	}
	return n
}
