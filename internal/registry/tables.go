package registry

import "github.com/jward/epsg/dialect"

// tableInfo is the metadata the resolver needs about one logical table:
// its dataset identity, primary-key and display-name columns, and the
// discriminator column when several kinds share the table.
type tableInfo struct {
	logical string // bracket-quoted in generic query text
	codeCol string
	nameCol string
	kindCol string // "" when the table holds a single kind
}

var (
	tableCRS = tableInfo{
		logical: "Coordinate Reference System",
		codeCol: "coord_ref_sys_code",
		nameCol: "coord_ref_sys_name",
		kindCol: "coord_ref_sys_kind",
	}
	tableCS = tableInfo{
		logical: "Coordinate System",
		codeCol: "coord_sys_code",
		nameCol: "coord_sys_name",
		kindCol: "coord_sys_type",
	}
	tableAxis = tableInfo{
		logical: "Coordinate Axis",
		codeCol: "coord_axis_code",
		nameCol: "", // names live in the axis-name table
	}
	tableAxisName = tableInfo{
		logical: "Coordinate Axis Name",
		codeCol: "coord_axis_name_code",
		nameCol: "coord_axis_name",
	}
	tableDatum = tableInfo{
		logical: "Datum",
		codeCol: "datum_code",
		nameCol: "datum_name",
		kindCol: "datum_type",
	}
	tableEllipsoid = tableInfo{
		logical: "Ellipsoid",
		codeCol: "ellipsoid_code",
		nameCol: "ellipsoid_name",
	}
	tablePrimeMeridian = tableInfo{
		logical: "Prime Meridian",
		codeCol: "prime_meridian_code",
		nameCol: "prime_meridian_name",
	}
	tableUnit = tableInfo{
		logical: "Unit of Measure",
		codeCol: "uom_code",
		nameCol: "unit_of_meas_name",
		kindCol: "unit_of_meas_type",
	}
	tableOperation = tableInfo{
		logical: "Coordinate_Operation",
		codeCol: "coord_op_code",
		nameCol: "coord_op_name",
		kindCol: "coord_op_type",
	}
	tableMethod = tableInfo{
		logical: "Coordinate_Operation Method",
		codeCol: "coord_op_method_code",
		nameCol: "coord_op_method_name",
	}
	tableParameter = tableInfo{
		logical: "Coordinate_Operation Parameter",
		codeCol: "parameter_code",
		nameCol: "parameter_name",
	}
	tableExtent = tableInfo{
		logical: "Extent",
		codeCol: "extent_code",
		nameCol: "extent_name",
	}
	tableScope = tableInfo{
		logical: "Scope",
		codeCol: "scope_code",
		nameCol: "scope",
	}
)

// objectTableName returns the concrete SQL-distribution table name as stored
// in the alias, deprecation, supersession and usage association columns.
// Those columns always hold the unqualified epsg_* form regardless of which
// schema the dataset lives in, so this always uses the unqualified form.
func objectTableName(t tableInfo) string {
	return dialect.SQL{}.TableName(t.logical)
}
