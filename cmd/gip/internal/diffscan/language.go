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
	"path/filepath"
	"strings"
)

// Language identifies the source language of a changed file.
type Language string

const (
	LangCPP        Language = "cpp"
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangRust       Language = "rust"
	LangGo         Language = "go"
	LangJava       Language = "java"
	LangRuby       Language = "ruby"
	LangCSharp     Language = "csharp"
	LangUnknown    Language = "unknown"
)

// DetectLanguage maps a file path to its language by extension. TypeScript
// shares the JavaScript patterns; C and C++ headers share the C++ patterns.
func DetectLanguage(path string) Language {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "cpp", "cc", "cxx", "c", "h", "hpp":
		return LangCPP
	case "py":
		return LangPython
	case "js", "jsx", "ts", "tsx":
		return LangJavaScript
	case "rs":
		return LangRust
	case "go":
		return LangGo
	case "java":
		return LangJava
	case "rb":
		return LangRuby
	case "cs":
		return LangCSharp
	}
	return LangUnknown
}
