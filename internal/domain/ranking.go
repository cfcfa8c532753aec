package domain

import (
	"sort"
	"strings"
)

// Tier is one of the four mutually exclusive relevance buckets a
// result falls into. Lower is more relevant.
type Tier int

const (
	// TierExact: alias or full alias equals the query.
	TierExact Tier = iota + 1
	// TierPartial: alias, full alias or folder contains the query.
	TierPartial
	// TierTag: a tag contains the query.
	TierTag
	// TierURL: the URL contains the query.
	TierURL
)

func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierPartial:
		return "partial"
	case TierTag:
		return "tag"
	case TierURL:
		return "url"
	default:
		return "none"
	}
}

// Match is a single ranked search result.
type Match struct {
	Shortcut *Shortcut
	Tier     Tier
	// FolderExact is set on folder-scoped matches whose folder equals
	// the folder filter exactly; those rank above partial-folder
	// matches within the same tier.
	FolderExact bool
}

// Rank resolves a query against a candidate snapshot into an ordered
// result list. Pure function: same inputs always produce the same
// output, no I/O. Empty queries produce an empty list; the caller is
// expected to substitute a frequent/favorites view for that case.
func Rank(q *Query, shortcuts []*Shortcut) []Match {
	if q == nil {
		return nil
	}
	switch q.Kind {
	case QueryFolderListing:
		return rankFolderListing(q, shortcuts)
	case QueryFolderScoped:
		return rankFolderScoped(q, shortcuts)
	case QueryPlain:
		return rankPlain(q, shortcuts)
	default:
		return nil
	}
}

// rankFolderListing returns every shortcut whose folder contains the
// folder filter, ordered by alias ascending (folder as secondary key
// for equal aliases across folders).
func rankFolderListing(q *Query, shortcuts []*Shortcut) []Match {
	matches := make([]Match, 0)
	for _, s := range shortcuts {
		folder := strings.ToLower(s.Folder)
		if s.Folder == "" || !strings.Contains(folder, q.FolderPart) {
			continue
		}
		matches = append(matches, Match{
			Shortcut:    s,
			Tier:        TierPartial,
			FolderExact: folder == q.FolderPart,
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i].Shortcut, matches[j].Shortcut
		ai, bi := strings.ToLower(a.Alias), strings.ToLower(b.Alias)
		if ai != bi {
			return ai < bi
		}
		return strings.ToLower(a.Folder) < strings.ToLower(b.Folder)
	})
	return matches
}

// rankFolderScoped restricts candidates to shortcuts whose folder
// contains the folder filter, then matches the alias part with the
// same exact/partial tiering as plain queries. Within a tier, exact
// folder matches rank above partial folder matches.
func rankFolderScoped(q *Query, shortcuts []*Shortcut) []Match {
	matches := make([]Match, 0)
	for _, s := range shortcuts {
		folder := strings.ToLower(s.Folder)
		if s.Folder == "" || !strings.Contains(folder, q.FolderPart) {
			continue
		}
		alias := strings.ToLower(s.Alias)
		var tier Tier
		switch {
		case alias == q.AliasPart:
			tier = TierExact
		case strings.Contains(alias, q.AliasPart):
			tier = TierPartial
		default:
			continue
		}
		matches = append(matches, Match{
			Shortcut:    s,
			Tier:        tier,
			FolderExact: folder == q.FolderPart,
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Tier != b.Tier {
			return a.Tier < b.Tier
		}
		if a.FolderExact != b.FolderExact {
			return a.FolderExact
		}
		return lessFullAlias(a.Shortcut, b.Shortcut)
	})
	return matches
}

// rankPlain scores every candidate into one of the four tiers.
// First match wins; a shortcut appears in at most one tier.
func rankPlain(q *Query, shortcuts []*Shortcut) []Match {
	matches := make([]Match, 0)
	for _, s := range shortcuts {
		tier, ok := classifyPlain(q.Normalized, s)
		if !ok {
			continue
		}
		matches = append(matches, Match{Shortcut: s, Tier: tier})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Tier != b.Tier {
			return a.Tier < b.Tier
		}
		return lessFullAlias(a.Shortcut, b.Shortcut)
	})
	return matches
}

func classifyPlain(query string, s *Shortcut) (Tier, bool) {
	alias := strings.ToLower(s.Alias)
	full := strings.ToLower(s.FullAlias())
	folder := strings.ToLower(s.Folder)

	if alias == query || full == query {
		return TierExact, true
	}
	if strings.Contains(alias, query) || strings.Contains(full, query) ||
		(folder != "" && strings.Contains(folder, query)) {
		return TierPartial, true
	}
	for _, tag := range s.Tags {
		if strings.Contains(tag, query) {
			return TierTag, true
		}
	}
	if strings.Contains(strings.ToLower(s.URL), query) {
		return TierURL, true
	}
	return 0, false
}

func lessFullAlias(a, b *Shortcut) bool {
	return strings.ToLower(a.FullAlias()) < strings.ToLower(b.FullAlias())
}
