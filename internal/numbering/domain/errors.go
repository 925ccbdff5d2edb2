package domain

import "errors"

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidConfig       = errors.New("invalid_numbering_config")
	ErrNotFound            = errors.New("not_found")

	// ErrUnavailable means the authoritative numbering store could not
	// reserve a number. Document creation must halt on it; callers never
	// substitute a placeholder number.
	ErrUnavailable = errors.New("numbering_unavailable")
)
