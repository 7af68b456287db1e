// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package notation provides the two serializations of a manifest: the
// canonical structured notation used for storage and exact round-trips, and
// the compact line-oriented notation used for display and authoring.
//
// Both codecs operate on the one manifest type; neither defines its own data
// model. The canonical codec guarantees DecodeCanonical(EncodeCanonical(m))
// equals m for every valid manifest. The compact codec is parse-and-validate
// only: whitespace, comments, and list item boundaries inside inline lists
// are not preserved byte-for-byte.
package notation

import (
	"encoding/json"
	"fmt"

	"github.com/AleutianAI/gip/cmd/gip/internal/manifest"
)

// EncodeCanonical serializes a manifest to the canonical structured
// notation. This is the format persisted by the store.
func EncodeCanonical(m *manifest.Manifest) ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding canonical notation: %w", err)
	}
	return data, nil
}

// DecodeCanonical parses canonical notation back into a manifest. The result
// is not migrated; loaders run the migrator themselves.
func DecodeCanonical(data []byte) (*manifest.Manifest, error) {
	var m manifest.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return &m, nil
}
