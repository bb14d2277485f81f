package directory

import "errors"

var (
	// ErrUserNotFound is returned when a directory user cannot be found.
	ErrUserNotFound = errors.New("directory user not found")

	// ErrGroupNotFound is returned when a directory group cannot be found.
	ErrGroupNotFound = errors.New("directory group not found")

	// ErrCompanyNotFound is returned when a directory company cannot be found.
	ErrCompanyNotFound = errors.New("directory company not found")

	// ErrGroupExists is returned when creating a group whose identifier or DN
	// is already taken. A duplicate-creation race surfaces as this error for
	// the loser through the store uniqueness constraint.
	ErrGroupExists = errors.New("directory group already exists")

	// ErrGroupHasChildren is returned when deleting a group that still has
	// child groups. Cascade deletion is not supported.
	ErrGroupHasChildren = errors.New("directory group still has children")

	// ErrUnknownAlgorithm is returned when a node is configured with an
	// unsupported hash algorithm name.
	ErrUnknownAlgorithm = errors.New("unknown hash algorithm")

	// ErrInvalidBaseDN is returned when a node is configured with a base
	// DN that does not parse as a distinguished name.
	ErrInvalidBaseDN = errors.New("invalid base dn")
)
