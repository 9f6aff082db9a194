package domain

import "errors"

var (
	// ErrNotFound indicates a lookup matched no record.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate indicates a write violated a uniqueness constraint, such
	// as a second work item for the same plan and scheduled date.
	ErrDuplicate = errors.New("already exists")
)
