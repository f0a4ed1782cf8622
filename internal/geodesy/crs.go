package geodesy

// CRS is a coordinate reference system of any kind. Concrete variants:
// *GeographicCRS, *GeocentricCRS, *ProjectedCRS, *VerticalCRS, *TemporalCRS,
// *EngineeringCRS, *ParametricCRS, *CompoundCRS.
type CRS interface {
	Identification() *Properties
	CoordinateSystem() *CoordinateSystem // nil for compound CRS
}

// GeodeticCRS is a CRS referenced to a geodetic frame: *GeographicCRS or
// *GeocentricCRS.
type GeodeticCRS interface {
	CRS
	GeodeticFrame() Frame
}

// GeographicCRS references an ellipsoidal coordinate system (2D or 3D) to a
// geodetic datum or ensemble.
type GeographicCRS struct {
	Properties
	Frame Frame
	CS    *CoordinateSystem
}

func (c *GeographicCRS) CoordinateSystem() *CoordinateSystem { return c.CS }
func (c *GeographicCRS) GeodeticFrame() Frame                { return c.Frame }

// ThreeD reports whether the CRS carries an ellipsoidal height axis.
func (c *GeographicCRS) ThreeD() bool { return c.CS.Dimension() == 3 }

// GeocentricCRS references an Earth-centred Cartesian or spherical
// coordinate system to a geodetic datum or ensemble.
type GeocentricCRS struct {
	Properties
	Frame Frame
	CS    *CoordinateSystem
}

func (c *GeocentricCRS) CoordinateSystem() *CoordinateSystem { return c.CS }
func (c *GeocentricCRS) GeodeticFrame() Frame                { return c.Frame }

// ProjectedCRS is a Cartesian system derived from a geographic base CRS by a
// defining conversion (a map projection).
type ProjectedCRS struct {
	Properties
	Base       *GeographicCRS
	Conversion *Operation
	CS         *CoordinateSystem
}

func (c *ProjectedCRS) CoordinateSystem() *CoordinateSystem { return c.CS }

// VerticalCRS references a one-axis vertical coordinate system to a vertical
// datum or ensemble.
type VerticalCRS struct {
	Properties
	Frame Frame
	CS    *CoordinateSystem
}

func (c *VerticalCRS) CoordinateSystem() *CoordinateSystem { return c.CS }

// TemporalCRS references a time coordinate system to a temporal datum.
type TemporalCRS struct {
	Properties
	Datum *Datum
	CS    *CoordinateSystem
}

func (c *TemporalCRS) CoordinateSystem() *CoordinateSystem { return c.CS }

// EngineeringCRS is a contextually local system (site grids, platforms).
type EngineeringCRS struct {
	Properties
	Datum *Datum
	CS    *CoordinateSystem
}

func (c *EngineeringCRS) CoordinateSystem() *CoordinateSystem { return c.CS }

// ParametricCRS references a parametric coordinate system (e.g. pressure)
// to a parametric datum.
type ParametricCRS struct {
	Properties
	Datum *Datum
	CS    *CoordinateSystem
}

func (c *ParametricCRS) CoordinateSystem() *CoordinateSystem { return c.CS }

// CompoundCRS aggregates two or more component CRS, horizontal first.
type CompoundCRS struct {
	Properties
	Components []CRS
}

// CoordinateSystem returns nil: a compound CRS has no coordinate system of
// its own, only those of its components.
func (c *CompoundCRS) CoordinateSystem() *CoordinateSystem { return nil }
