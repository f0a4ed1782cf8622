package registry

import (
	"errors"
	"fmt"
)

// Failure taxonomy. Every resolution error wraps exactly one of these
// sentinels together with the attempted table and code, so callers can
// branch with errors.Is while keeping the diagnostic context.
var (
	// ErrNotFound: no row matches the code or name in the codespace.
	ErrNotFound = errors.New("no such authority code")

	// ErrAmbiguousName: a name or alias matches two or more distinct
	// primary keys.
	ErrAmbiguousName = errors.New("name matches more than one object")

	// ErrDuplicateIdentifier: two or more rows for one primary key
	// produce non-equal objects.
	ErrDuplicateIdentifier = errors.New("duplicate definitions for authority code")

	// ErrRecursiveResolution: a cyclic foreign-key chain was detected
	// while resolving dependencies.
	ErrRecursiveResolution = errors.New("recursive resolution of authority code")

	// ErrMalformedData: a required column is null, two columns contradict
	// each other, or a numeric/date value is unparsable.
	ErrMalformedData = errors.New("malformed registry data")

	// ErrUnsupported: the row is well formed but its kind discriminator
	// names a composition the object-construction layer does not build.
	ErrUnsupported = errors.New("unsupported object composition")

	// ErrClosed: the resolver has released its connection.
	ErrClosed = errors.New("resolver is closed")
)

// resolveError wraps cause with the table and code under resolution.
func resolveError(table string, code any, cause error) error {
	return fmt.Errorf("%s %v: %w", table, code, cause)
}

// malformed builds an ErrMalformedData with a formatted detail message.
func malformed(table string, code any, format string, args ...any) error {
	detail := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s %v: %s: %w", table, code, detail, ErrMalformedData)
}

// unsupported builds an ErrUnsupported naming the offending discriminator.
func unsupported(table string, code any, what, kind string) error {
	return fmt.Errorf("%s %v: %s %q: %w", table, code, what, kind, ErrUnsupported)
}
