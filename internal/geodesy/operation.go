package geodesy

// ParameterValueType says what a parameter legally holds. The same parameter
// code may have different types under different operation methods.
type ParameterValueType int

const (
	ValueNumeric ParameterValueType = iota // floating point, possibly with unit
	ValueInteger                           // integer code reference
	ValueFile                              // grid file reference or URI
)

func (t ParameterValueType) String() string {
	switch t {
	case ValueInteger:
		return "integer"
	case ValueFile:
		return "file"
	default:
		return "numeric"
	}
}

// ParameterDescriptor describes one operation parameter as used by one
// method: its legal value type, dominant unit, and whether its sign flips
// when the operation is inverted. These are per-context variants, not fixed
// attributes of the parameter code.
type ParameterDescriptor struct {
	Properties
	ValueType      ParameterValueType
	Unit           *Unit // nil for file references and unitless integers
	SignReversible bool
}

// ParameterValue is one concrete value bound to a descriptor. Value is valid
// for numeric and integer types; File for file references.
type ParameterValue struct {
	Descriptor *ParameterDescriptor
	Value      float64
	File       string
	Unit       *Unit
}

// Method is a coordinate operation method: the named algorithm plus the
// ordered descriptors of the parameters it takes.
type Method struct {
	Properties
	Formula    string
	Reversible bool
	Parameters []*ParameterDescriptor
}

// OperationType discriminates coordinate-operation kinds.
type OperationType string

const (
	OpConversion     OperationType = "conversion"
	OpTransformation OperationType = "transformation"
	OpPointMotion    OperationType = "point motion operation"
	OpConcatenated   OperationType = "concatenated operation"
)

// Operation is a coordinate operation. Conversions used as the defining
// conversion of a projected CRS have nil source and target. Concatenated
// operations carry their steps and no method of their own. Accuracy is the
// positional uncertainty in metres; nil when the dataset records none
// (exact conversions).
type Operation struct {
	Properties
	Type       OperationType
	SourceCRS  CRS
	TargetCRS  CRS
	Method     *Method
	Parameters []*ParameterValue
	Accuracy   *float64
	Version    string
	Steps      []*Operation
}
