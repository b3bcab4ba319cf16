package errors

import (
	"strings"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid file", "top-langs.svg", false},
		{"valid nested", "images/top-langs.svg", false},
		{"valid dotfile dir", ".github/langs.svg", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 501), true},
		{"absolute", "/etc/passwd", true},
		{"traversal", "images/../secret", true},
		{"backslash", "images\\chart.svg", true},
		{"null byte", "chart\x00.svg", true},
		{"newline", "chart\n.svg", true},
		{"directory", "images/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateBranch(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"master", "master", false},
		{"main", "main", false},
		{"nested", "feature/charts", false},
		{"dotted", "release-1.2", false},

		{"empty", "", true},
		{"space", "my branch", true},
		{"double dot", "a..b", true},
		{"tilde", "main~1", true},
		{"caret", "main^", true},
		{"colon", "a:b", true},
		{"reflog", "main@{1}", true},
		{"leading slash", "/main", true},
		{"trailing slash", "main/", true},
		{"lock suffix", "main.lock", true},
		{"leading dash", "-main", true},
		{"too long", strings.Repeat("b", 256), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBranch(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBranch(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRepoName(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"octocat", false},
		{"my-repo_2.0", false},
		{"", true},
		{".", true},
		{"..", true},
		{"a/b", true},
		{"name with space", true},
		{strings.Repeat("r", 101), true},
	}

	for _, tt := range tests {
		if err := ValidateRepoName(tt.input); (err != nil) != tt.wantErr {
			t.Errorf("ValidateRepoName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
