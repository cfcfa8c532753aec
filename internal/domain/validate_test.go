package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid https", input: "https://example.com/path", wantErr: false},
		{name: "valid http", input: "http://example.com", wantErr: false},
		{name: "query and fragment", input: "https://example.com/a?b=c#d", wantErr: false},
		{name: "empty", input: "", wantErr: true},
		{name: "no scheme", input: "example.com", wantErr: true},
		{name: "ftp scheme", input: "ftp://example.com", wantErr: true},
		{name: "scheme only", input: "https://", wantErr: true},
		{name: "too long", input: "https://example.com/" + strings.Repeat("a", MaxURLLength), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidURL) {
				t.Errorf("ValidateURL(%q) error should wrap ErrInvalidURL, got %v", tt.input, err)
			}
		})
	}
}

func TestValidateAlias(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "simple", input: "meet", want: "meet"},
		{name: "case folded", input: "Meet", want: "meet"},
		{name: "digits and hyphens", input: "q3-review", want: "q3-review"},
		{name: "max length", input: strings.Repeat("a", MaxAliasLength), want: strings.Repeat("a", MaxAliasLength)},
		{name: "empty", input: "", wantErr: true},
		{name: "too long", input: strings.Repeat("a", MaxAliasLength+1), wantErr: true},
		{name: "underscore", input: "my_meet", wantErr: true},
		{name: "space", input: "my meet", wantErr: true},
		{name: "slash", input: "work/meet", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateAlias(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateAlias(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrInvalidAlias) {
					t.Errorf("error should wrap ErrInvalidAlias, got %v", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ValidateAlias(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateFolder(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "empty is root", input: "", wantErr: false},
		{name: "simple", input: "work", wantErr: false},
		{name: "underscore allowed", input: "side_projects", wantErr: false},
		{name: "max length", input: strings.Repeat("a", MaxFolderLength), wantErr: false},
		{name: "too long", input: strings.Repeat("a", MaxFolderLength+1), wantErr: true},
		{name: "space", input: "my work", wantErr: true},
		{name: "slash", input: "a/b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateFolder(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFolder(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTag(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple", input: "gsuite"},
		{name: "hyphen", input: "team-calls"},
		{name: "empty", input: "", wantErr: true},
		{name: "uppercase rejected", input: "GSuite", wantErr: true},
		{name: "underscore rejected", input: "team_calls", wantErr: true},
		{name: "too long", input: strings.Repeat("a", MaxTagLength+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTag(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTag(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    []string
		wantErr bool
	}{
		{
			name:  "sorted and deduplicated",
			input: []string{"zeta", "alpha", "zeta"},
			want:  []string{"alpha", "zeta"},
		},
		{
			name:  "case-insensitive dedupe",
			input: []string{"Calls", "calls", "CALLS"},
			want:  []string{"calls"},
		},
		{
			name:  "trims and drops empties",
			input: []string{" calls ", "", "  "},
			want:  []string{"calls"},
		},
		{
			name:  "nil input",
			input: nil,
			want:  []string{},
		},
		{
			name:    "invalid charset",
			input:   []string{"ok", "not ok"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeTags(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeTags(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !slicesEqual(got, tt.want) {
				t.Errorf("NormalizeTags(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeTagsMaxCount(t *testing.T) {
	input := make([]string, MaxTags+1)
	for i := range input {
		input[i] = "tag-" + string(rune('a'+i%26)) + string(rune('a'+i/26))
	}
	if _, err := NormalizeTags(input); err == nil {
		t.Error("NormalizeTags() should reject more than MaxTags tags")
	}
}

func TestValidateTagsCSV(t *testing.T) {
	got, err := ValidateTags("beta, Alpha ,beta,")
	if err != nil {
		t.Fatalf("ValidateTags() error = %v", err)
	}
	want := []string{"alpha", "beta"}
	if !slicesEqual(got, want) {
		t.Errorf("ValidateTags() = %v, want %v", got, want)
	}

	empty, err := ValidateTags("   ")
	if err != nil {
		t.Fatalf("ValidateTags() error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("ValidateTags(blank) = %v, want empty", empty)
	}
}

func slicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
