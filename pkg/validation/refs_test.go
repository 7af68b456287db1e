package validation

import (
	"strings"
	"testing"
)

func TestValidateRev(t *testing.T) {
	tests := []struct {
		name    string
		rev     string
		wantErr bool
	}{
		// Valid revisions
		{"head", "HEAD", false},
		{"merge head", "MERGE_HEAD", false},
		{"full sha", "4f2a9c11d8be07a3c5d2e6f4a1b0c9d8e7f6a5b4", false},
		{"short sha", "4f2a9c1", false},
		{"branch", "main", false},
		{"slashed branch", "feature/login", false},
		{"navigation tilde", "HEAD~2", false},
		{"navigation caret", "main^1", false},
		{"dotted tag", "v1.2.3", false},

		// Invalid revisions - injection attempts
		{"empty", "", true},
		{"leading dash flag", "--upload-pack=/bin/sh", true},
		{"single dash", "-f", true},
		{"range syntax", "main..feature", true},
		{"shell metachars", "HEAD;rm -rf", true},
		{"spaces", "HEAD HEAD", true},
		{"newline", "HEAD\n--force", true},
		{"too long", strings.Repeat("a", 200), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRev(tt.rev)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRev(%q) error = %v, wantErr %v", tt.rev, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRemote(t *testing.T) {
	tests := []struct {
		name    string
		remote  string
		wantErr bool
	}{
		{"origin", "origin", false},
		{"upstream", "upstream", false},
		{"with hyphen", "fork-1", false},
		{"with dot", "backup.remote", false},

		{"empty", "", true},
		{"leading dash", "--mirror", true},
		{"slash", "bad/remote", true},
		{"shell metachars", "origin;ls", true},
		{"spaces", "my remote", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRemote(tt.remote)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRemote(%q) error = %v, wantErr %v", tt.remote, err, tt.wantErr)
			}
		})
	}
}

func TestValidateNotesRef(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		wantErr bool
	}{
		{"default namespace", "gip", false},
		{"nested", "gip/review", false},
		{"dotted", "gip.v2", false},

		{"empty", "", true},
		{"dotdot traversal", "gip/../commits", true},
		{"leading dash", "-gip", true},
		{"spaces", "gip notes", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNotesRef(tt.ref)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNotesRef(%q) error = %v, wantErr %v", tt.ref, err, tt.wantErr)
			}
		})
	}
}

func TestSanitizeRev(t *testing.T) {
	tests := []struct {
		name    string
		rev     string
		want    string
		wantErr bool
	}{
		{"passthrough", "HEAD", "HEAD", false},
		{"trimmed", "  main  ", "main", false},
		{"invalid rejected", "--force", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeRev(tt.rev)
			if (err != nil) != tt.wantErr {
				t.Errorf("SanitizeRev(%q) error = %v, wantErr %v", tt.rev, err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("SanitizeRev(%q) = %q, want %q", tt.rev, got, tt.want)
			}
		})
	}
}
