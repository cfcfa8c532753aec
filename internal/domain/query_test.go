package domain

import "testing"

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantKind   QueryKind
		wantNorm   string
		wantFolder string
		wantAlias  string
	}{
		{name: "empty", input: "", wantKind: QueryEmpty},
		{name: "whitespace only", input: "   ", wantKind: QueryEmpty},
		{name: "plain", input: "meet", wantKind: QueryPlain, wantNorm: "meet"},
		{name: "plain trimmed and folded", input: "  MeEt ", wantKind: QueryPlain, wantNorm: "meet"},
		{name: "folder listing", input: "work/", wantKind: QueryFolderListing, wantNorm: "work/", wantFolder: "work"},
		{name: "folder scoped", input: "work/me", wantKind: QueryFolderScoped, wantNorm: "work/me", wantFolder: "work", wantAlias: "me"},
		{name: "bare slash lists all folders", input: "/", wantKind: QueryFolderListing, wantNorm: "/"},
		{name: "leading slash scopes to root", input: "/meet", wantKind: QueryFolderScoped, wantNorm: "/meet", wantAlias: "meet"},
		{name: "splits on first slash only", input: "a/b/c", wantKind: QueryFolderScoped, wantNorm: "a/b/c", wantFolder: "a", wantAlias: "b/c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ParseQuery(tt.input)
			if q.Kind != tt.wantKind {
				t.Errorf("ParseQuery(%q).Kind = %v, want %v", tt.input, q.Kind, tt.wantKind)
			}
			if q.Normalized != tt.wantNorm {
				t.Errorf("ParseQuery(%q).Normalized = %q, want %q", tt.input, q.Normalized, tt.wantNorm)
			}
			if q.FolderPart != tt.wantFolder {
				t.Errorf("ParseQuery(%q).FolderPart = %q, want %q", tt.input, q.FolderPart, tt.wantFolder)
			}
			if q.AliasPart != tt.wantAlias {
				t.Errorf("ParseQuery(%q).AliasPart = %q, want %q", tt.input, q.AliasPart, tt.wantAlias)
			}
			if q.Raw != tt.input {
				t.Errorf("ParseQuery(%q).Raw = %q, want the original input", tt.input, q.Raw)
			}
		})
	}
}
