package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for every failure kind the core can report.
// Validation and uniqueness failures are caller-input errors;
// only ErrStoreUnavailable is potentially transient.
var (
	ErrInvalidURL    = errors.New("invalid url")
	ErrInvalidAlias  = errors.New("invalid alias")
	ErrInvalidFolder = errors.New("invalid folder")
	ErrInvalidTag    = errors.New("invalid tag")

	ErrDuplicateAlias       = errors.New("duplicate alias")
	ErrNotFound             = errors.New("not found")
	ErrFolderNotEmpty       = errors.New("folder not empty")
	ErrFolderRenameConflict = errors.New("folder rename conflict")

	ErrStoreUnavailable = errors.New("store unavailable")
)

// DuplicateAliasError reports a uniqueness violation, naming the
// conflicting full alias.
type DuplicateAliasError struct {
	FullAlias string
}

func (e *DuplicateAliasError) Error() string {
	return fmt.Sprintf("duplicate alias %q", e.FullAlias)
}

func (e *DuplicateAliasError) Unwrap() error { return ErrDuplicateAlias }

// FolderRenameConflictError reports the first collision that makes a
// folder rename impossible. The rename is rejected as a whole; no
// shortcut is moved.
type FolderRenameConflictError struct {
	OldName   string
	NewName   string
	FullAlias string // the already-existing alias in the target folder
}

func (e *FolderRenameConflictError) Error() string {
	return fmt.Sprintf("cannot rename folder %q to %q: %q already exists",
		e.OldName, e.NewName, e.FullAlias)
}

func (e *FolderRenameConflictError) Unwrap() error { return ErrFolderRenameConflict }
