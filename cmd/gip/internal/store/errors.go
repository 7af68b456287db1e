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

import "errors"

// Sentinel errors for manifest storage and authoring validation.
var (
	// ErrNotFound indicates no manifest exists for the requested commit or
	// pending slot. Best-effort lookups treat this as "no context
	// available", not a failure.
	ErrNotFound = errors.New("no manifest found")

	// ErrTemplateMissing indicates the authoring file did not exist. The
	// caller has just written a fresh template in its place.
	ErrTemplateMissing = errors.New("authoring file was missing, template written")

	// ErrTemplateUnedited indicates the authoring file is byte-equal to the
	// template after line-ending normalization and trimming.
	ErrTemplateUnedited = errors.New("authoring file is unchanged from template")

	// ErrSentinelPresent indicates the authoring file still contains the
	// placeholder rationale text, regardless of other edits.
	ErrSentinelPresent = errors.New("authoring file still contains placeholder text")
)

// IsValidationError reports whether err belongs to the authoring validation
// family: the commit workflow rejects the commit and prints remediation
// text for these, rather than failing hard.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrTemplateMissing) ||
		errors.Is(err, ErrTemplateUnedited) ||
		errors.Is(err, ErrSentinelPresent)
}
