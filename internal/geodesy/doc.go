// Package geodesy defines the immutable reference-object model produced by
// the EPSG resolver: identifiers, units of measure, ellipsoids, prime
// meridians, datums and datum ensembles, coordinate systems and axes,
// coordinate reference systems, operation methods, parameters, and
// coordinate operations.
//
// Objects are constructed once by the resolver and never mutated afterwards.
// The root epsg package re-exports these types via aliases.
package geodesy
