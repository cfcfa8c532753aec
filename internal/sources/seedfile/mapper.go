package seedfile

import "github.com/dartlinks/dart/internal/domain"

// Mapper converts seed file entries to domain drafts.
type Mapper struct{}

// NewMapper creates a new mapper instance.
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapShortcuts converts shortcut entries to drafts. Entries without an
// alias or URL are skipped; everything else is validated downstream by
// the namespace manager.
func (m *Mapper) MapShortcuts(f *File) []domain.Draft {
	drafts := make([]domain.Draft, 0, len(f.Shortcuts))
	for _, entry := range f.Shortcuts {
		if entry.Alias == "" || entry.URL == "" {
			continue
		}
		drafts = append(drafts, domain.Draft{
			Alias:  entry.Alias,
			URL:    entry.URL,
			Folder: entry.Folder,
			Tags:   entry.Tags,
		})
	}
	return drafts
}

// MapFolders returns the declared folder names, empties dropped.
func (m *Mapper) MapFolders(f *File) []string {
	names := make([]string, 0, len(f.Folders))
	for _, entry := range f.Folders {
		if entry.Name == "" {
			continue
		}
		names = append(names, entry.Name)
	}
	return names
}
