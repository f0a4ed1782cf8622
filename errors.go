package epsg

import "github.com/jward/epsg/internal/registry"

// Failure taxonomy, matchable with errors.Is. Every resolution error wraps
// exactly one of these together with the attempted table and code.
var (
	ErrNotFound            = registry.ErrNotFound
	ErrAmbiguousName       = registry.ErrAmbiguousName
	ErrDuplicateIdentifier = registry.ErrDuplicateIdentifier
	ErrRecursiveResolution = registry.ErrRecursiveResolution
	ErrMalformedData       = registry.ErrMalformedData
	ErrUnsupported         = registry.ErrUnsupported
	ErrClosed              = registry.ErrClosed
)
