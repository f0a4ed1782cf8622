package geodesy

// UnitType classifies a unit of measure by the quantity it measures.
type UnitType string

const (
	UnitLength UnitType = "length"
	UnitAngle  UnitType = "angle"
	UnitScale  UnitType = "scale"
	UnitTime   UnitType = "time"
)

// Unit is a unit of measure, expressed as an affine function of a base unit
// of the same type (metre, radian, unity or second). Non-linear units such
// as sexagesimal degree encodings carry Sexagesimal=true and a zero Scale;
// they cannot be converted by multiplication.
type Unit struct {
	Properties
	Type        UnitType
	Symbol      string
	BaseCode    int     // code of the base unit this one is defined against
	Scale       float64 // base = value*Scale + Offset
	Offset      float64
	Sexagesimal bool
}

// Linear reports whether values in this unit convert to the base unit by an
// affine function.
func (u *Unit) Linear() bool { return !u.Sexagesimal && u.Scale != 0 }

// ToBase converts a value in this unit to the base unit. The caller must
// have checked Linear.
func (u *Unit) ToBase(v float64) float64 { return v*u.Scale + u.Offset }
