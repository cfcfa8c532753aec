package domain

import (
	"strings"
	"time"
)

// Shortcut represents a named alias pointing at a full URL.
//
// A Shortcut is uniquely identified by the case-insensitive pair
// (Folder, Alias); Alias and Folder keep the casing the user typed,
// comparisons always go through CompositeKey.
type Shortcut struct {
	// ─────────────────────────────
	// Identity
	// ─────────────────────────────

	// ID is the opaque unique identifier, assigned at creation.
	ID string

	// Alias is the short memorable name, unique within its folder.
	// Example: "meet"
	Alias string

	// Folder is the optional single-level grouping name.
	// Empty string means root (no folder). No nesting.
	Folder string

	// ─────────────────────────────
	// Target & classification
	// ─────────────────────────────

	// URL is the absolute http/https URL the alias resolves to.
	URL string

	// Tags is the normalized, deduplicated, sorted tag set.
	// Always lowercase; never mutated outside NormalizeTags.
	Tags []string

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	// CreatedAt is set once when the shortcut is created.
	CreatedAt time.Time

	// UpdatedAt is refreshed on every namespace mutation.
	UpdatedAt time.Time

	// ─────────────────────────────
	// Usage (written only by the frequency tracker)
	// ─────────────────────────────

	// LastAccessedAt is the time of the most recent access.
	// Zero value means the shortcut was never accessed.
	LastAccessedAt time.Time

	// AccessCount is the number of recorded accesses.
	AccessCount int64
}

// Folder is the optional explicit record behind a folder name.
// Folder existence is derived from shortcuts referencing the name;
// the record only carries metadata.
type Folder struct {
	// Name is unique case-insensitively.
	Name string

	// CreatedAt is set when the folder is first created,
	// explicitly or by the first shortcut referencing it.
	CreatedAt time.Time
}

// Draft carries the caller-supplied fields for a new shortcut.
type Draft struct {
	URL    string
	Alias  string
	Folder string
	Tags   []string
}

// Patch carries a partial update. Nil fields are left untouched.
type Patch struct {
	URL    *string
	Alias  *string
	Folder *string
	Tags   *[]string
}

// FullAlias is the human-facing identity string:
// "folder/alias", or just "alias" when folder is empty.
func FullAlias(folder, alias string) string {
	if folder == "" {
		return alias
	}
	return folder + "/" + alias
}

// CompositeKey is the case-insensitive normalized form of the full
// alias, used for all uniqueness checks.
func CompositeKey(folder, alias string) string {
	return strings.ToLower(FullAlias(folder, alias))
}

// FullAlias returns the shortcut's human-facing identity string.
func (s *Shortcut) FullAlias() string {
	return FullAlias(s.Folder, s.Alias)
}

// Key returns the shortcut's composite uniqueness key.
func (s *Shortcut) Key() string {
	return CompositeKey(s.Folder, s.Alias)
}

// Clone returns a deep copy of the shortcut.
func (s *Shortcut) Clone() *Shortcut {
	if s == nil {
		return nil
	}
	c := *s
	if s.Tags != nil {
		c.Tags = make([]string, len(s.Tags))
		copy(c.Tags, s.Tags)
	}
	return &c
}
