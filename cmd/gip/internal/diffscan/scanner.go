// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package diffscan extracts changed symbols from staged unified diffs.
// The scan is regex-based and line-oriented: it recognizes definition
// lines (functions, methods, types, classes) among added and context
// lines, which is enough to pre-fill manifest anchors. It is deliberately
// not a parser; misattributed or missed symbols are acceptable because
// every suggestion still passes through human editing.
package diffscan

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/sourcegraph/go-diff/diff"

	"github.com/AleutianAI/gip/cmd/gip/internal/manifest"
)

// ErrBadPatch reports unified diff input the parser could not read.
var ErrBadPatch = errors.New("malformed diff")

const devNull = "/dev/null"

// SymbolKind classifies an extracted symbol.
type SymbolKind string

const (
	KindFunction SymbolKind = "function"
	KindType     SymbolKind = "type"
)

// Symbol is one definition found in a file's staged changes.
type Symbol struct {
	// File is the repository-relative path, diff prefixes stripped.
	File string

	// Name is the identifier on the definition line.
	Name string

	// Kind distinguishes callables from type declarations.
	Kind SymbolKind

	// Change is the file-level change classification.
	Change manifest.ChangeType

	// Line is the definition's line number in the post-change file.
	Line int
}

// Definition patterns per language. Function patterns are tried before
// type patterns, matching the first definition on a line.
var (
	cppFuncPattern    = regexp.MustCompile(`(?:[\w:]+\s+)+(\w+)\s*\([^)]*\)\s*(?:const)?\s*(?:\{|$)`)
	classPattern      = regexp.MustCompile(`class\s+(\w+)`)
	pythonFuncPattern = regexp.MustCompile(`def\s+(\w+)\s*\(`)
	jsFuncPattern     = regexp.MustCompile(`function\s+(\w+)|(?:const|let|var)\s+(\w+)\s*=\s*(?:async\s*)?\(|(\w+)\s*\([^)]*\)\s*\{`)
	rustFuncPattern   = regexp.MustCompile(`fn\s+(\w+)`)
	rustTypePattern   = regexp.MustCompile(`(?:struct|enum|impl)\s+(\w+)`)
	goFuncPattern     = regexp.MustCompile(`func\s+(?:\([^)]+\)\s*)?(\w+)`)
	goTypePattern     = regexp.MustCompile(`type\s+(\w+)\s+struct`)
	jvmFuncPattern    = regexp.MustCompile(`(?:public|private|protected|static|\s)+[\w<>\[\]]+\s+(\w+)\s*\(`)
	rubyFuncPattern   = regexp.MustCompile(`def\s+(\w+)`)
)

// Analyze extracts changed symbols from a unified diff.
//
// # Description
//
// Parses the diff into per-file hunks, classifies each file as an add,
// delete, or modify, then scans added and context lines for definition
// patterns in the file's language. Consecutive mentions of the same
// symbol collapse to one. Files in unrecognized languages contribute
// nothing.
//
// # Inputs
//
//   - patch: Unified diff text, typically `git diff --cached` output.
//
// # Outputs
//
//   - []Symbol: Symbols in diff order. Nil for an empty patch.
//   - error: Non-nil when the diff itself cannot be parsed.
func Analyze(patch string) ([]Symbol, error) {
	if strings.TrimSpace(patch) == "" {
		return nil, nil
	}

	fileDiffs, err := diff.NewMultiFileDiffReader(strings.NewReader(patch)).ReadAllFiles()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPatch, err)
	}

	var symbols []Symbol
	for _, fd := range fileDiffs {
		symbols = append(symbols, scanFileDiff(fd)...)
	}
	return symbols, nil
}

// scanFileDiff extracts symbols from one file's hunks.
func scanFileDiff(fd *diff.FileDiff) []Symbol {
	change := manifest.ChangeModify
	switch {
	case fd.OrigName == devNull:
		change = manifest.ChangeAdd
	case fd.NewName == devNull:
		change = manifest.ChangeDelete
	}

	path := fd.NewName
	if path == "" || path == devNull {
		path = fd.OrigName
	}
	path = strings.TrimPrefix(path, "a/")
	path = strings.TrimPrefix(path, "b/")

	lang := DetectLanguage(path)
	if lang == LangUnknown {
		return nil
	}

	var out []Symbol
	lastName := ""
	for _, hunk := range fd.Hunks {
		lineNum := int(hunk.NewStartLine)
		for _, raw := range strings.Split(string(hunk.Body), "\n") {
			if raw == "" || raw[0] == '\\' {
				continue
			}
			if raw[0] == '-' {
				continue
			}
			if name, kind := extractName(raw[1:], lang); name != "" && name != lastName {
				lastName = name
				out = append(out, Symbol{
					File:   path,
					Name:   name,
					Kind:   kind,
					Change: change,
					Line:   lineNum,
				})
			}
			lineNum++
		}
	}
	return out
}

// extractName returns the first definition identifier on a line, or "".
func extractName(line string, lang Language) (string, SymbolKind) {
	switch lang {
	case LangCPP:
		if m := cppFuncPattern.FindStringSubmatch(line); m != nil {
			return m[1], KindFunction
		}
		if m := classPattern.FindStringSubmatch(line); m != nil {
			return m[1], KindType
		}
	case LangPython:
		if m := pythonFuncPattern.FindStringSubmatch(line); m != nil {
			return m[1], KindFunction
		}
		if m := classPattern.FindStringSubmatch(line); m != nil {
			return m[1], KindType
		}
	case LangJavaScript:
		if m := jsFuncPattern.FindStringSubmatch(line); m != nil {
			for _, group := range m[1:] {
				if group != "" {
					return group, KindFunction
				}
			}
		}
		if m := classPattern.FindStringSubmatch(line); m != nil {
			return m[1], KindType
		}
	case LangRust:
		if m := rustFuncPattern.FindStringSubmatch(line); m != nil {
			return m[1], KindFunction
		}
		if m := rustTypePattern.FindStringSubmatch(line); m != nil {
			return m[1], KindType
		}
	case LangGo:
		if m := goFuncPattern.FindStringSubmatch(line); m != nil {
			return m[1], KindFunction
		}
		if m := goTypePattern.FindStringSubmatch(line); m != nil {
			return m[1], KindType
		}
	case LangJava, LangCSharp:
		if m := jvmFuncPattern.FindStringSubmatch(line); m != nil {
			return m[1], KindFunction
		}
		if m := classPattern.FindStringSubmatch(line); m != nil {
			return m[1], KindType
		}
	case LangRuby:
		if m := rubyFuncPattern.FindStringSubmatch(line); m != nil {
			return m[1], KindFunction
		}
		if m := classPattern.FindStringSubmatch(line); m != nil {
			return m[1], KindType
		}
	}
	return "", ""
}
