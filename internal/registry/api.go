package registry

import "github.com/jward/epsg/internal/geodesy"

// Public resolution entry points. Each accepts a numeric code or a
// name/alias string, resolves the primary key, and runs the kind's plan
// under a fresh recursion guard. The epsg.Factory serializes these calls;
// they must not run concurrently on one DataAccess.

// checkOpen fails fast after Close.
func (d *DataAccess) checkOpen(table tableInfo, code string) error {
	if d.closed {
		return resolveError(table.logical, code, ErrClosed)
	}
	return nil
}

// CRS resolves a coordinate reference system of any kind.
func (d *DataAccess) CRS(code string) (geodesy.CRS, error) {
	if err := d.checkOpen(tableCRS, code); err != nil {
		return nil, err
	}
	key, err := d.resolveCode(tableCRS, code)
	if err != nil {
		return nil, err
	}
	return d.crs(newResolveContext(), key)
}

// GeodeticCRS resolves a CRS that must be geographic or geocentric. Codes of
// any other CRS kind fail with ErrNotFound: as far as the geodetic view of
// the dataset is concerned, such a code does not exist.
func (d *DataAccess) GeodeticCRS(code string) (geodesy.GeodeticCRS, error) {
	crs, err := d.CRS(code)
	if err != nil {
		return nil, err
	}
	g, ok := crs.(geodesy.GeodeticCRS)
	if !ok {
		return nil, resolveError(tableCRS.logical, code, ErrNotFound)
	}
	return g, nil
}

// Datum resolves a code from the datum table. The result is a *Datum or a
// *DatumEnsemble; the two share one table and code space.
func (d *DataAccess) Datum(code string) (geodesy.Frame, error) {
	if err := d.checkOpen(tableDatum, code); err != nil {
		return nil, err
	}
	key, err := d.resolveCode(tableDatum, code)
	if err != nil {
		return nil, err
	}
	return d.datumOrEnsemble(newResolveContext(), key)
}

// Ellipsoid resolves a reference ellipsoid.
func (d *DataAccess) Ellipsoid(code string) (*geodesy.Ellipsoid, error) {
	if err := d.checkOpen(tableEllipsoid, code); err != nil {
		return nil, err
	}
	key, err := d.resolveCode(tableEllipsoid, code)
	if err != nil {
		return nil, err
	}
	return d.ellipsoid(newResolveContext(), key)
}

// PrimeMeridian resolves a prime meridian.
func (d *DataAccess) PrimeMeridian(code string) (*geodesy.PrimeMeridian, error) {
	if err := d.checkOpen(tablePrimeMeridian, code); err != nil {
		return nil, err
	}
	key, err := d.resolveCode(tablePrimeMeridian, code)
	if err != nil {
		return nil, err
	}
	return d.primeMeridian(newResolveContext(), key)
}

// CoordinateSystem resolves a coordinate system and its axes.
func (d *DataAccess) CoordinateSystem(code string) (*geodesy.CoordinateSystem, error) {
	if err := d.checkOpen(tableCS, code); err != nil {
		return nil, err
	}
	key, err := d.resolveCode(tableCS, code)
	if err != nil {
		return nil, err
	}
	return d.coordinateSystem(newResolveContext(), key)
}

// Axis resolves a single coordinate axis by its own code.
func (d *DataAccess) Axis(code string) (*geodesy.Axis, error) {
	if err := d.checkOpen(tableAxis, code); err != nil {
		return nil, err
	}
	key, err := d.resolveCode(tableAxis, code)
	if err != nil {
		return nil, err
	}
	return d.axis(newResolveContext(), key)
}

// Unit resolves a unit of measure.
func (d *DataAccess) Unit(code string) (*geodesy.Unit, error) {
	if err := d.checkOpen(tableUnit, code); err != nil {
		return nil, err
	}
	key, err := d.resolveCode(tableUnit, code)
	if err != nil {
		return nil, err
	}
	return d.unit(newResolveContext(), key)
}

// Method resolves a coordinate operation method.
func (d *DataAccess) Method(code string) (*geodesy.Method, error) {
	if err := d.checkOpen(tableMethod, code); err != nil {
		return nil, err
	}
	key, err := d.resolveCode(tableMethod, code)
	if err != nil {
		return nil, err
	}
	return d.method(newResolveContext(), key)
}

// Parameter resolves an operation parameter descriptor without a
// using-method context.
func (d *DataAccess) Parameter(code string) (*geodesy.ParameterDescriptor, error) {
	if err := d.checkOpen(tableParameter, code); err != nil {
		return nil, err
	}
	key, err := d.resolveCode(tableParameter, code)
	if err != nil {
		return nil, err
	}
	return d.parameter(newResolveContext(), key)
}

// ParameterForMethod resolves the descriptor variant of a parameter as used
// by one operation method.
func (d *DataAccess) ParameterForMethod(code, method string) (*geodesy.ParameterDescriptor, error) {
	if err := d.checkOpen(tableParameter, code); err != nil {
		return nil, err
	}
	key, err := d.resolveCode(tableParameter, code)
	if err != nil {
		return nil, err
	}
	methodKey, err := d.resolveCode(tableMethod, method)
	if err != nil {
		return nil, err
	}
	return d.parameterVariant(newResolveContext(), key, methodKey)
}

// Operation resolves a coordinate operation.
func (d *DataAccess) Operation(code string) (*geodesy.Operation, error) {
	if err := d.checkOpen(tableOperation, code); err != nil {
		return nil, err
	}
	key, err := d.resolveCode(tableOperation, code)
	if err != nil {
		return nil, err
	}
	return d.operation(newResolveContext(), key)
}

// Extent resolves an extent.
func (d *DataAccess) Extent(code string) (*geodesy.Extent, error) {
	if err := d.checkOpen(tableExtent, code); err != nil {
		return nil, err
	}
	key, err := d.resolveCode(tableExtent, code)
	if err != nil {
		return nil, err
	}
	return d.createExtent(newResolveContext(), key)
}

// OperationsBetween returns the operations from the source CRS to the
// target CRS, defining conversions first, then transformations in
// supersession order, deprecated candidates hidden when a current one
// exists.
func (d *DataAccess) OperationsBetween(source, target string) ([]*geodesy.Operation, error) {
	if err := d.checkOpen(tableOperation, source+"->"+target); err != nil {
		return nil, err
	}
	src, err := d.resolveCode(tableCRS, source)
	if err != nil {
		return nil, err
	}
	tgt, err := d.resolveCode(tableCRS, target)
	if err != nil {
		return nil, err
	}
	return d.operationsBetween(newResolveContext(), src, tgt)
}

// EnumerateCodes returns the non-deprecated codes of a kind as a counted
// handle; the resolver refuses pool retirement until every handle is closed.
func (d *DataAccess) EnumerateCodes(kind Kind) (*CodeSet, error) {
	if err := d.checkOpen(kind.table, kind.name); err != nil {
		return nil, err
	}
	return d.enumerateCodes(kind)
}

// Describe returns the display name of (kind, code), or "" when absent.
func (d *DataAccess) Describe(kind Kind, code string) (string, error) {
	if err := d.checkOpen(kind.table, code); err != nil {
		return "", err
	}
	key, err := d.resolveCode(kind.table, code)
	if err != nil {
		return "", err
	}
	return d.describe(kind, key)
}
