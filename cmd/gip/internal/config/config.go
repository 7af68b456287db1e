// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config reads the optional per-repository configuration file.
// Configuration is never required: a missing file yields defaults, and
// every field has one.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/gip/pkg/validation"
)

// FileName is the configuration file inside the control directory.
const FileName = "config.yaml"

// Config is the per-repository configuration.
//
// Thread Safety: Safe to read concurrently. Not safe to modify after
// creation.
type Config struct {
	// Remote is the git remote used when pushing and fetching manifest
	// notes.
	Remote string `json:"remote" yaml:"remote"`

	// NotesRef is the notes namespace manifests are stored under,
	// without the refs/notes/ prefix.
	NotesRef string `json:"notes_ref" yaml:"notes_ref"`

	// Personality selects the output style: standard, minimal, or
	// machine. Empty means auto-detect from the terminal.
	Personality string `json:"personality" yaml:"personality"`

	// Editor overrides the editor suggested for the authoring file.
	// Empty falls back to the EDITOR environment variable.
	Editor string `json:"editor" yaml:"editor"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Remote:   "origin",
		NotesRef: "gip",
	}
}

// Load reads configuration with priority: env > file > defaults.
//
// # Inputs
//
//   - dir: The repository's control directory (the .gip directory). The
//     file read is <dir>/config.yaml.
//
// # Outputs
//
//   - Config: Merged configuration. Valid even on error.
//   - error: Non-nil only when the file exists but cannot be parsed, or
//     the merged values fail validation.
func Load(dir string) (Config, error) {
	cfg := Default()

	if err := loadFile(filepath.Join(dir, FileName), &cfg); err != nil {
		return cfg, fmt.Errorf("load config file: %w", err)
	}

	loadEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// loadFile merges file contents into cfg. A missing file is not an error.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	// Try YAML first, then JSON. Tab-indented JSON is valid JSON but not
	// valid YAML.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return fmt.Errorf("parse config (tried YAML and JSON): YAML error: %v, JSON error: %w", err, jsonErr)
		}
	}
	return nil
}

// loadEnv applies environment variable overrides.
func loadEnv(cfg *Config) {
	if v := os.Getenv("GIP_REMOTE"); v != "" {
		cfg.Remote = v
	}
	if v := os.Getenv("GIP_NOTES_REF"); v != "" {
		cfg.NotesRef = v
	}
	if v := os.Getenv("GIP_PERSONALITY"); v != "" {
		cfg.Personality = v
	}
	if v := os.Getenv("GIP_EDITOR"); v != "" {
		cfg.Editor = v
	}
}

// Validate checks the fields that end up in git argv. Personality and
// editor are display-layer values with forgiving parsers and are not
// checked here.
func (c Config) Validate() error {
	if err := validation.ValidateRemote(c.Remote); err != nil {
		return fmt.Errorf("remote: %w", err)
	}
	if err := validation.ValidateNotesRef(c.NotesRef); err != nil {
		return fmt.Errorf("notes_ref: %w", err)
	}
	return nil
}
