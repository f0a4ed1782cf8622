package epsg

import (
	"github.com/jward/epsg/internal/geodesy"
	"github.com/jward/epsg/internal/registry"
)

// Public type aliases for the internal object model and registry handles.
// These are Go type aliases (=) — identical to the internal types at compile
// time, so no conversion is ever needed.

type Identifier = geodesy.Identifier
type Alias = geodesy.Alias
type Domain = geodesy.Domain
type Extent = geodesy.Extent
type Properties = geodesy.Properties

type Unit = geodesy.Unit
type UnitType = geodesy.UnitType
type Ellipsoid = geodesy.Ellipsoid
type PrimeMeridian = geodesy.PrimeMeridian
type Datum = geodesy.Datum
type DatumType = geodesy.DatumType
type DatumEnsemble = geodesy.DatumEnsemble
type Frame = geodesy.Frame

type Axis = geodesy.Axis
type CoordinateSystem = geodesy.CoordinateSystem
type CSType = geodesy.CSType

type CRS = geodesy.CRS
type GeodeticCRS = geodesy.GeodeticCRS
type GeographicCRS = geodesy.GeographicCRS
type GeocentricCRS = geodesy.GeocentricCRS
type ProjectedCRS = geodesy.ProjectedCRS
type VerticalCRS = geodesy.VerticalCRS
type TemporalCRS = geodesy.TemporalCRS
type EngineeringCRS = geodesy.EngineeringCRS
type ParametricCRS = geodesy.ParametricCRS
type CompoundCRS = geodesy.CompoundCRS

type Method = geodesy.Method
type ParameterDescriptor = geodesy.ParameterDescriptor
type ParameterValue = geodesy.ParameterValue
type ParameterValueType = geodesy.ParameterValueType
type Operation = geodesy.Operation
type OperationType = geodesy.OperationType

type Kind = registry.Kind
type CodeSet = registry.CodeSet

// Unit types.
const (
	UnitLength = geodesy.UnitLength
	UnitAngle  = geodesy.UnitAngle
	UnitScale  = geodesy.UnitScale
	UnitTime   = geodesy.UnitTime
)

// Parameter value types.
const (
	ValueNumeric = geodesy.ValueNumeric
	ValueInteger = geodesy.ValueInteger
	ValueFile    = geodesy.ValueFile
)

// Operation types.
const (
	OpConversion     = geodesy.OpConversion
	OpTransformation = geodesy.OpTransformation
	OpPointMotion    = geodesy.OpPointMotion
	OpConcatenated   = geodesy.OpConcatenated
)

// Datum types.
const (
	DatumGeodetic    = geodesy.DatumGeodetic
	DatumDynamic     = geodesy.DatumDynamic
	DatumVertical    = geodesy.DatumVertical
	DatumTemporal    = geodesy.DatumTemporal
	DatumEngineering = geodesy.DatumEngineering
	DatumParametric  = geodesy.DatumParametric
)

// Enumerable kinds. Subtypes of one table cover their supertype:
// enumerating KindCRS equals the deduplicated union of every CRS subtype.
var (
	KindCRS            = registry.KindCRS
	KindGeographicCRS  = registry.KindGeographicCRS
	KindGeocentricCRS  = registry.KindGeocentricCRS
	KindProjectedCRS   = registry.KindProjectedCRS
	KindVerticalCRS    = registry.KindVerticalCRS
	KindTemporalCRS    = registry.KindTemporalCRS
	KindEngineeringCRS = registry.KindEngineeringCRS
	KindParametricCRS  = registry.KindParametricCRS
	KindCompoundCRS    = registry.KindCompoundCRS

	KindDatum         = registry.KindDatum
	KindGeodeticDatum = registry.KindGeodeticDatum
	KindVerticalDatum = registry.KindVerticalDatum
	KindDatumEnsemble = registry.KindDatumEnsemble

	KindEllipsoid        = registry.KindEllipsoid
	KindPrimeMeridian    = registry.KindPrimeMeridian
	KindCoordinateSystem = registry.KindCoordinateSystem
	KindUnit             = registry.KindUnit

	KindOperation      = registry.KindOperation
	KindConversion     = registry.KindConversion
	KindTransformation = registry.KindTransformation
	KindMethod         = registry.KindMethod
	KindParameter      = registry.KindParameter
)
