package redis

import "strings"

const (
	// KeyPrefixShortcut is the prefix for shortcut records.
	KeyPrefixShortcut = "dart:shortcut:"
	// KeyPrefixFolder is the prefix for folder records.
	KeyPrefixFolder = "dart:folder:"
	// KeyAllShortcuts is the set of all shortcut IDs.
	KeyAllShortcuts = "dart:shortcuts:all"
	// KeyAllFolders is the set of all folder names (lowercased).
	KeyAllFolders = "dart:folders:all"
)

// ShortcutKey returns the Redis key for a shortcut by ID.
func ShortcutKey(id string) string {
	return KeyPrefixShortcut + id
}

// FolderKey returns the Redis key for a folder. Folder names are
// unique case-insensitively, so the key is always lowercased.
func FolderKey(name string) string {
	return KeyPrefixFolder + strings.ToLower(name)
}
