package domain

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Field limits for everything that participates in the namespace.
const (
	MaxURLLength    = 2048
	MaxAliasLength  = 50
	MaxFolderLength = 30
	MaxTagLength    = 20
	MaxTags         = 50
)

// ValidateURL checks that raw is an absolute http/https URL within the
// length limit. Structural check only: no network access, no redirects.
func ValidateURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: empty", ErrInvalidURL)
	}
	if len(raw) > MaxURLLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrInvalidURL, MaxURLLength)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("%w: scheme must be http or https", ErrInvalidURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	return nil
}

// ValidateAlias checks length and charset (letters, digits, hyphens)
// and returns the case-folded comparison form. The caller keeps the
// original casing for display.
func ValidateAlias(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidAlias)
	}
	if len(raw) > MaxAliasLength {
		return "", fmt.Errorf("%w: exceeds %d characters", ErrInvalidAlias, MaxAliasLength)
	}
	for _, r := range raw {
		if !isAliasRune(r) {
			return "", fmt.Errorf("%w: character %q not allowed", ErrInvalidAlias, r)
		}
	}
	return strings.ToLower(raw), nil
}

// ValidateFolder checks a folder name. Empty is always valid (root).
// Non-empty names allow letters, digits, hyphens and underscores.
func ValidateFolder(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	if len(raw) > MaxFolderLength {
		return "", fmt.Errorf("%w: exceeds %d characters", ErrInvalidFolder, MaxFolderLength)
	}
	for _, r := range raw {
		if !isFolderRune(r) {
			return "", fmt.Errorf("%w: character %q not allowed", ErrInvalidFolder, r)
		}
	}
	return strings.ToLower(raw), nil
}

// ValidateTag checks a single tag in canonical form: already lowercase,
// within length, letters/digits/hyphens only.
func ValidateTag(raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: empty", ErrInvalidTag)
	}
	if len(raw) > MaxTagLength {
		return fmt.Errorf("%w: %q exceeds %d characters", ErrInvalidTag, raw, MaxTagLength)
	}
	for _, r := range raw {
		if !isTagRune(r) {
			return fmt.Errorf("%w: character %q not allowed in %q", ErrInvalidTag, r, raw)
		}
	}
	return nil
}

// NormalizeTags canonicalizes a tag list: trims whitespace, drops
// empties, lowercases, validates each tag, deduplicates and returns the
// sorted set, or the first validation error encountered.
func NormalizeTags(items []string) ([]string, error) {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		tag := strings.ToLower(strings.TrimSpace(item))
		if tag == "" {
			continue
		}
		if err := ValidateTag(tag); err != nil {
			return nil, err
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	if len(out) > MaxTags {
		return nil, fmt.Errorf("%w: more than %d tags", ErrInvalidTag, MaxTags)
	}
	sort.Strings(out)
	return out, nil
}

// ValidateTags splits comma-separated input and normalizes it like
// NormalizeTags.
func ValidateTags(csv string) ([]string, error) {
	if strings.TrimSpace(csv) == "" {
		return []string{}, nil
	}
	return NormalizeTags(strings.Split(csv, ","))
}

func isAliasRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') || r == '-'
}

func isFolderRune(r rune) bool {
	return isAliasRune(r) || r == '_'
}

func isTagRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
}
