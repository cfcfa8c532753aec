package domain

import "strings"

// QueryKind classifies a parsed search query.
type QueryKind int

const (
	// QueryEmpty is an empty or whitespace-only query.
	QueryEmpty QueryKind = iota
	// QueryPlain matches against the whole candidate set.
	QueryPlain
	// QueryFolderListing lists every shortcut in matching folders
	// (query ends in "/").
	QueryFolderListing
	// QueryFolderScoped restricts candidates by folder, then matches
	// the alias part ("folder/alias").
	QueryFolderScoped
)

// Query represents a parsed user search input.
type Query struct {
	Raw        string    // original input
	Normalized string    // trimmed, lowercased
	Kind       QueryKind // classification, first match wins
	FolderPart string    // folder filter (folder-listing / folder-scoped)
	AliasPart  string    // alias filter (folder-scoped only)
}

// ParseQuery parses user input into a structured query.
// Classification order:
//  1. empty after trimming -> QueryEmpty
//  2. contains "/" -> split on the first "/"; empty alias part means
//     folder-listing, otherwise folder-scoped
//  3. everything else -> plain
//
// Examples:
//   - "meet"      -> plain
//   - "work/"     -> folder-listing, folder filter "work"
//   - "work/me"   -> folder-scoped, folder "work", alias "me"
func ParseQuery(input string) *Query {
	norm := strings.ToLower(strings.TrimSpace(input))
	q := &Query{Raw: input, Normalized: norm}

	if norm == "" {
		q.Kind = QueryEmpty
		return q
	}

	i := strings.Index(norm, "/")
	if i < 0 {
		q.Kind = QueryPlain
		return q
	}

	q.FolderPart = norm[:i]
	q.AliasPart = norm[i+1:]
	if q.AliasPart == "" {
		q.Kind = QueryFolderListing
	} else {
		q.Kind = QueryFolderScoped
	}
	return q
}
