// Package epsg resolves EPSG geodetic authority codes into richly-typed
// reference objects: coordinate reference systems, datums and datum
// ensembles, ellipsoids, prime meridians, coordinate systems and axes,
// units of measure, operation methods, parameters, and coordinate
// operations.
//
// # Usage
//
// Open a Factory on an EPSG dataset (the SQLite distribution by default),
// resolve codes, and close when done:
//
//	f, err := epsg.Open("epsg.db")
//	if err != nil { ... }
//	defer f.Close()
//
//	crs, err := f.CRS("4326")        // by code
//	crs, err = f.CRS("WGS 84")       // or by name/alias
//
//	ops, err := f.OperationsBetween("4258", "4326")
//
// Every resolve method accepts either a numeric code or a case- and
// accent-insensitive name or alias. Results are immutable and cached for
// the life of the Factory.
//
// # Errors
//
// Failures are typed: [ErrNotFound], [ErrAmbiguousName],
// [ErrDuplicateIdentifier], [ErrRecursiveResolution], [ErrMalformedData],
// [ErrUnsupported] and [ErrClosed], all matchable with errors.Is. Database
// failures are wrapped with the attempted table and code.
//
// # Concurrency
//
// A Factory serializes all calls under one mutex and owns one database
// connection. For parallel workloads, run a pool of independent Factory
// instances; consult [Factory.Closeable] before retiring one, since
// enumeration handles returned by [Factory.EnumerateCodes] pin the
// connection until released.
//
// # Datasets in other databases
//
// The dialect package adapts the resolver's generic query text to a
// concrete schema; dialect/postgres targets a Postgres-hosted dataset.
package epsg
