package usecase

import crerr "github.com/cockroachdb/errors"

var (
	ErrInvalidInput = crerr.New("invalid input")
	ErrNotFound     = crerr.New("resource not found")
	// ErrSchemaMismatch marks payloads that arrived but lacked the fields we need.
	ErrSchemaMismatch = crerr.New("upstream schema mismatch")
	// ErrNotResolvable is the terminal "nothing found after every fallback" state.
	ErrNotResolvable         = crerr.New("not resolvable")
	ErrDependencyUnavailable = crerr.New("dependency unavailable")
)
