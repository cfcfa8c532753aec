package seedfile

// File is the root structure of a seed YAML file.
//
// Example:
//
//	folders:
//	  - name: work
//	shortcuts:
//	  - alias: meet
//	    url: https://meet.google.com
//	    folder: work
//	    tags: [calls, gsuite]
type File struct {
	Folders   []FolderEntry   `yaml:"folders,omitempty"`
	Shortcuts []ShortcutEntry `yaml:"shortcuts"`
}

// FolderEntry declares a folder up front. Folders referenced by
// shortcuts are created implicitly either way; declaring one only
// pins its casing and creation order.
type FolderEntry struct {
	Name string `yaml:"name"`
}

// ShortcutEntry is a single shortcut definition.
type ShortcutEntry struct {
	Alias  string   `yaml:"alias"`
	URL    string   `yaml:"url"`
	Folder string   `yaml:"folder,omitempty"`
	Tags   []string `yaml:"tags,omitempty"`
}
