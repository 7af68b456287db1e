// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package manifest

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// manifestValidate is the validator instance for manifest types.
// Initialized in init() so struct tag parsing happens once.
var manifestValidate *validator.Validate

func init() {
	manifestValidate = validator.New()
}

// Validate checks the manifest against its structural rules.
//
// # Description
//
// Performs validation using go-playground/validator tags: schema version
// must be a known value, commit must be set, every entry needs an anchor
// file and a change type from the fixed vocabulary, and behavior class tags
// must come from the fixed vocabulary. Free-text fields are not constrained.
//
// # Outputs
//
//   - error: Non-nil if validation failed, with details about which field.
func (m *Manifest) Validate() error {
	if err := manifestValidate.Struct(m); err != nil {
		return fmt.Errorf("manifest validation: %w", err)
	}
	return nil
}
