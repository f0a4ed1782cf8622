package registry

import "fmt"

// resolveContext threads per-call state through the recursive builders: the
// set of in-flight (table, code) resolutions for cycle detection, and the
// flags governing deprecated-CRS substitution. A fresh context is created by
// every public entry point and destroyed when the call returns; it is never
// shared across calls.
type resolveContext struct {
	inFlight map[objKey]bool
	stack    []objKey

	// quiet suppresses deprecation warnings; substituteCS replaces
	// unsupported legacy coordinate-system/unit combinations with
	// supported equivalents; relaxed disables parameter range checks.
	// All three are enabled together while resolving the deprecated base
	// CRS of a projected CRS.
	quiet        bool
	substituteCS bool
	relaxed      bool
}

func newResolveContext() *resolveContext {
	return &resolveContext{inFlight: make(map[objKey]bool)}
}

// substituting derives a context for resolving a deprecated base CRS. The
// in-flight set is shared: the derived resolution belongs to the same call
// chain for cycle-detection purposes.
func (rc *resolveContext) substituting() *resolveContext {
	c := *rc
	c.quiet = true
	c.substituteCS = true
	c.relaxed = true
	return &c
}

// push registers (table, code) as in flight, failing with
// ErrRecursiveResolution when the same resolution is already on the chain.
// The caller must pop (usually via defer) on every exit path.
func (rc *resolveContext) push(table string, code int) error {
	key := objKey{table, code}
	if rc.inFlight[key] {
		return fmt.Errorf("%s %d (chain %v): %w", table, code, rc.stack, ErrRecursiveResolution)
	}
	rc.inFlight[key] = true
	rc.stack = append(rc.stack, key)
	return nil
}

func (rc *resolveContext) pop(table string, code int) {
	key := objKey{table, code}
	delete(rc.inFlight, key)
	for i := len(rc.stack) - 1; i >= 0; i-- {
		if rc.stack[i] == key {
			rc.stack = append(rc.stack[:i], rc.stack[i+1:]...)
			break
		}
	}
}
