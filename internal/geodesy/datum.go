package geodesy

import "time"

// Ellipsoid is an oblate reference ellipsoid. Exactly one of SemiMinor and
// InverseFlattening is read from the dataset; the other is derived. The
// IvfDefinitive flag records which one is authoritative.
type Ellipsoid struct {
	Properties
	SemiMajor         float64
	SemiMinor         float64
	InverseFlattening float64
	IvfDefinitive     bool
	Sphere            bool
	Unit              *Unit
}

// PrimeMeridian is the origin meridian of geodetic longitudes.
type PrimeMeridian struct {
	Properties
	GreenwichLongitude float64
	Unit               *Unit
}

// DatumType discriminates the datum kinds sharing one table and code space.
type DatumType string

const (
	DatumGeodetic    DatumType = "geodetic"
	DatumDynamic     DatumType = "dynamic geodetic"
	DatumVertical    DatumType = "vertical"
	DatumTemporal    DatumType = "temporal"
	DatumEngineering DatumType = "engineering"
	DatumParametric  DatumType = "parametric"
)

// Frame is the datum-or-ensemble a CRS is referenced to. Callers
// disambiguate by type switch: *Datum for a concrete realization,
// *DatumEnsemble for an aggregate of interchangeable realizations.
type Frame interface {
	Identification() *Properties
	frame()
}

// Datum is a concrete datum of any type. Ellipsoid and PrimeMeridian are
// non-nil only for geodetic and dynamic geodetic datums; Origin is set only
// for temporal datums.
type Datum struct {
	Properties
	Type          DatumType
	Anchor        string  // origin description
	Epoch         float64 // frame reference or realization epoch, decimal year; 0 when absent
	Ellipsoid     *Ellipsoid
	PrimeMeridian *PrimeMeridian
	Origin        time.Time
}

func (*Datum) frame() {}

// DatumEnsemble is a set of datums treated as interchangeable at the stated
// positional accuracy (metres). It occupies the same code space as Datum.
type DatumEnsemble struct {
	Properties
	Members  []*Datum
	Accuracy float64
}

func (*DatumEnsemble) frame() {}
