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

import "errors"

var (
	// ErrParse indicates a payload that is not valid notation. Callers
	// whose loads are best-effort match on this to skip instead of abort.
	ErrParse = errors.New("notation parse error")

	// ErrNoManifest indicates compact input with no manifest section.
	ErrNoManifest = errors.New("no manifest section found")

	// ErrUnterminatedString indicates a triple-quoted string with no
	// closing quotes before end of input.
	ErrUnterminatedString = errors.New("unterminated triple-quoted string")

	// ErrUnterminatedList indicates a bracketed list with no closing
	// bracket.
	ErrUnterminatedList = errors.New("unterminated list")

	// ErrUnbalanced indicates section opens and closes that do not pair
	// up.
	ErrUnbalanced = errors.New("unbalanced sections")
)
