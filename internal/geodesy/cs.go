package geodesy

// CSType discriminates coordinate-system kinds.
type CSType string

const (
	CSEllipsoidal CSType = "ellipsoidal"
	CSCartesian   CSType = "Cartesian"
	CSVertical    CSType = "vertical"
	CSSpherical   CSType = "spherical"
	CSTime        CSType = "time"
	CSOrdinal     CSType = "ordinal"
	CSParametric  CSType = "parametric"
	CSAffine      CSType = "affine"
)

// Axis is one coordinate-system axis. Name comes from the shared axis-name
// table; Direction is the dataset's orientation string ("north", "east",
// "up", "future", ...).
type Axis struct {
	Code         int
	Name         string
	Abbreviation string
	Direction    string
	Unit         *Unit
}

// CoordinateSystem is an ordered set of axes of one type.
type CoordinateSystem struct {
	Properties
	Type CSType
	Axes []*Axis
}

// Dimension returns the number of axes.
func (cs *CoordinateSystem) Dimension() int { return len(cs.Axes) }
