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

// Schema versions. A manifest with an empty or unrecognized version is
// normalized to the current version by Migrate before anything else reads it.
const (
	SchemaVersion10      = "1.0"
	SchemaVersion20      = "2.0"
	SchemaVersionCurrent = SchemaVersion20
)

// CommitPlaceholder is the symbolic commit value carried by a manifest that
// has not been bound to a real revision yet. It is replaced with the actual
// hash at commit time.
const CommitPlaceholder = "HEAD"

// DefaultHunkID is assigned to anchors whose hunk label is missing.
const DefaultHunkID = "H#0"

// BehaviorClass tags what kind of change an entry describes. Multiple tags
// are allowed per entry.
type BehaviorClass string

const (
	BehaviorBugfix     BehaviorClass = "bugfix"
	BehaviorFeature    BehaviorClass = "feature"
	BehaviorRefactor   BehaviorClass = "refactor"
	BehaviorPerf       BehaviorClass = "perf"
	BehaviorSecurity   BehaviorClass = "security"
	BehaviorValidation BehaviorClass = "validation"
	BehaviorDocs       BehaviorClass = "docs"
	BehaviorConfig     BehaviorClass = "config"
	BehaviorMigration  BehaviorClass = "migration"
)

// ChangeType classifies how the anchored code was touched.
type ChangeType string

const (
	ChangeAdd    ChangeType = "add"
	ChangeModify ChangeType = "modify"
	ChangeDelete ChangeType = "delete"
	ChangeRename ChangeType = "rename"
)

// Manifest is the intent record for one commit.
//
// # Description
//
// A manifest captures why each localized change in a commit was made, keyed
// by the commit it describes. It is authored before the commit (with Commit
// holding CommitPlaceholder), bound to the real hash at commit time, and is
// immutable history afterwards. Wire field names are camelCase in both the
// canonical and the compact notation.
type Manifest struct {
	SchemaVersion string        `json:"schemaVersion" validate:"required,oneof=1.0 2.0"`
	Commit        string        `json:"commit" validate:"required"`
	GlobalIntent  *GlobalIntent `json:"globalIntent,omitempty"`
	Entries       []Entry       `json:"entries" validate:"dive"`
}

// GlobalIntent carries commit-wide rationale for multi-function changes.
// Display falls back to it when no entry-level match exists.
type GlobalIntent struct {
	BehaviorClass []BehaviorClass `json:"behaviorClass" validate:"dive,oneof=bugfix feature refactor perf security validation docs config migration"`
	Rationale     string          `json:"rationale"`
}

// Entry describes one localized change within the commit.
type Entry struct {
	Anchor               Anchor          `json:"anchor"`
	ChangeType           ChangeType      `json:"changeType" validate:"required,oneof=add modify delete rename"`
	Rationale            string          `json:"rationale"`
	SignatureDelta       *SignatureDelta `json:"signatureDelta,omitempty"`
	BehaviorClass        []BehaviorClass `json:"behaviorClass" validate:"dive,oneof=bugfix feature refactor perf security validation docs config migration"`
	Contract             Contract        `json:"contract"`
	SideEffects          []string        `json:"sideEffects,omitempty"`
	Compatibility        *Compatibility  `json:"compatibility,omitempty"`
	TestsTouched         []string        `json:"testsTouched,omitempty"`
	PerfBudget           *PerfBudget     `json:"perfBudget,omitempty"`
	SecurityNotes        []string        `json:"securityNotes,omitempty"`
	FeatureFlags         []string        `json:"featureFlags,omitempty"`
	InheritsGlobalIntent *bool           `json:"inheritsGlobalIntent,omitempty"`
}

// Anchor locates an entry's change. Symbol is a human-readable identifier
// with no cross-file uniqueness guarantee; HunkID is a short stable label of
// the form H#<n>.
type Anchor struct {
	File   string `json:"file" validate:"required"`
	Symbol string `json:"symbol"`
	HunkID string `json:"hunkId"`
}

// SignatureDelta captures an API surface change as before/after text.
type SignatureDelta struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// Contract defines the behavioral contract of the anchored code.
type Contract struct {
	Inputs         []string `json:"inputs,omitempty"`
	Outputs        string   `json:"outputs,omitempty"`
	Preconditions  []string `json:"preconditions,omitempty"`
	Postconditions []string `json:"postconditions,omitempty"`
	ErrorModel     []string `json:"errorModel,omitempty"`
}

// Compatibility flags the downstream impact of an entry. The trailing three
// booleans are v1.0 inputs consumed by Migrate; new code never writes them
// and migration never clears them.
type Compatibility struct {
	Breaking     bool     `json:"breaking"`
	Deprecations []string `json:"deprecations"`
	Migrations   []string `json:"migrations"`

	BinaryBreaking     *bool `json:"binaryBreaking,omitempty"`
	SourceBreaking     *bool `json:"sourceBreaking,omitempty"`
	DataModelMigration *bool `json:"dataModelMigration,omitempty"`
}

// PerfBudget captures performance expectations for the changed code.
type PerfBudget struct {
	ExpectedMaxLatencyMs *int `json:"expectedMaxLatencyMs,omitempty"`
	CPUDeltaPct          *int `json:"cpuDeltaPct,omitempty"`
}

// New creates an empty Manifest at the current schema version for the given
// commit identity (or CommitPlaceholder when the hash is not known yet).
func New(commit string) *Manifest {
	return &Manifest{
		SchemaVersion: SchemaVersionCurrent,
		Commit:        commit,
		Entries:       []Entry{},
	}
}

// AllBehaviorClasses returns the full behavior class vocabulary.
func AllBehaviorClasses() []BehaviorClass {
	return []BehaviorClass{
		BehaviorBugfix,
		BehaviorFeature,
		BehaviorRefactor,
		BehaviorPerf,
		BehaviorSecurity,
		BehaviorValidation,
		BehaviorDocs,
		BehaviorConfig,
		BehaviorMigration,
	}
}

// AllChangeTypes returns the full change type vocabulary.
func AllChangeTypes() []ChangeType {
	return []ChangeType{ChangeAdd, ChangeModify, ChangeDelete, ChangeRename}
}

// JoinBehavior renders a behavior class list as a comma-separated string for
// display contexts.
func JoinBehavior(classes []BehaviorClass) string {
	if len(classes) == 0 {
		return ""
	}
	out := string(classes[0])
	for _, c := range classes[1:] {
		out += ", " + string(c)
	}
	return out
}
