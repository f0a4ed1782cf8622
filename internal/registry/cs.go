package registry

import (
	"database/sql"

	"github.com/jward/epsg/internal/geodesy"
)

// axisName is one memoized row of the shared axis-name table.
type axisName struct {
	name        string
	description string
}

// csReplacements substitutes coordinate systems whose axis/unit combination
// predates the supported catalogue. Only consulted while resolving the
// deprecated base CRS of a projected CRS: the usual geographic 2D and 3D
// systems stand in for their withdrawn ancestors.
var csReplacements = map[int]int{
	6402: 6422,
	6403: 6422,
	6405: 6422,
	6406: 6423,
}

// axisNameOf resolves an axis-name code, memoized for the life of the
// resolver: the same few names are shared by thousands of axes.
func (d *DataAccess) axisNameOf(code int) (axisName, error) {
	if an, ok := d.axisNames[code]; ok {
		return an, nil
	}
	rows, err := d.query("AxisName",
		`SELECT coord_axis_name, description FROM [Coordinate Axis Name] WHERE coord_axis_name_code = ?`, code)
	if err != nil {
		return axisName{}, err
	}
	type axisNameRow struct {
		name string
		desc sql.NullString
	}
	row, err := scanSingle(d, rows, tableAxisName, code, func(rows *sql.Rows) (axisNameRow, error) {
		var r axisNameRow
		err := rows.Scan(&r.name, &r.desc)
		return r, err
	})
	if err != nil {
		return axisName{}, err
	}
	an := axisName{name: row.name, description: row.desc.String}
	d.axisNames[code] = an
	return an, nil
}

// axisRow is one fully extracted coordinate-axis row.
type axisRow struct {
	code        int
	nameCode    int
	orientation string
	abbrev      string
	uom         int
}

// finishAxis resolves an axis row's name and unit into the final object.
func (d *DataAccess) finishAxis(rc *resolveContext, r axisRow) (*geodesy.Axis, error) {
	an, err := d.axisNameOf(r.nameCode)
	if err != nil {
		return nil, resolveError(tableAxis.logical, r.code, err)
	}
	unit, err := d.unit(rc, r.uom)
	if err != nil {
		return nil, resolveError(tableAxis.logical, r.code, err)
	}
	return &geodesy.Axis{
		Code:         r.code,
		Name:         an.name,
		Abbreviation: r.abbrev,
		Direction:    r.orientation,
		Unit:         unit,
	}, nil
}

// axis resolves a single coordinate axis by its own code.
func (d *DataAccess) axis(rc *resolveContext, code int) (*geodesy.Axis, error) {
	key := objKey{tableAxis.logical, code}
	if cached, ok := d.objects[key]; ok {
		return cached.(*geodesy.Axis), nil
	}
	rows, err := d.query("Axis",
		`SELECT coord_axis_name_code, coord_axis_orientation, coord_axis_abbreviation, uom_code
		 FROM [Coordinate Axis] WHERE coord_axis_code = ?`, code)
	if err != nil {
		return nil, err
	}
	r, err := scanSingle(d, rows, tableAxis, code, func(rows *sql.Rows) (axisRow, error) {
		r := axisRow{code: code}
		err := rows.Scan(&r.nameCode, &r.orientation, &r.abbrev, &r.uom)
		return r, err
	})
	if err != nil {
		return nil, err
	}
	a, err := d.finishAxis(rc, r)
	if err != nil {
		return nil, err
	}
	d.objects[key] = a
	return a, nil
}

// coordinateSystem resolves a coordinate system and its ordered axes. Inside
// a substitution scope, withdrawn axis/unit combinations are replaced by
// their supported equivalents before resolution.
func (d *DataAccess) coordinateSystem(rc *resolveContext, code int) (*geodesy.CoordinateSystem, error) {
	if rc.substituteCS {
		if repl, ok := csReplacements[code]; ok {
			code = repl
		}
	}
	key := objKey{tableCS.logical, code}
	if cached, ok := d.objects[key]; ok {
		return cached.(*geodesy.CoordinateSystem), nil
	}

	csRows, err := d.query("CoordinateSystem",
		`SELECT coord_sys_name, coord_sys_type, dimension, remarks, deprecated
		 FROM [Coordinate System] WHERE coord_sys_code = ?`, code)
	if err != nil {
		return nil, err
	}
	type csRow struct {
		name       string
		csType     string
		dimension  int
		remarks    sql.NullString
		deprecated bool
	}
	row, err := scanSingle(d, csRows, tableCS, code, func(rows *sql.Rows) (csRow, error) {
		var r csRow
		err := rows.Scan(&r.name, &r.csType, &r.dimension, &r.remarks, &r.deprecated)
		return r, err
	})
	if err != nil {
		return nil, err
	}

	rows, err := d.query("AxesOfCS",
		`SELECT coord_axis_code, coord_axis_name_code, coord_axis_orientation, coord_axis_abbreviation, uom_code
		 FROM [Coordinate Axis] WHERE coord_sys_code = ? ORDER BY coord_axis_order`, code)
	if err != nil {
		return nil, err
	}
	var raw []axisRow
	for rows.Next() {
		var r axisRow
		if err := rows.Scan(&r.code, &r.nameCode, &r.orientation, &r.abbrev, &r.uom); err != nil {
			rows.Close()
			return nil, resolveError(tableCS.logical, code, err)
		}
		raw = append(raw, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, resolveError(tableCS.logical, code, err)
	}
	rows.Close()

	if len(raw) != row.dimension {
		return nil, malformed(tableCS.logical, code,
			"declared dimension %d but %d axes", row.dimension, len(raw))
	}

	cs := &geodesy.CoordinateSystem{Type: geodesy.CSType(row.csType)}
	for _, r := range raw {
		a, err := d.finishAxis(rc, r)
		if err != nil {
			return nil, resolveError(tableCS.logical, code, err)
		}
		cs.Axes = append(cs.Axes, a)
	}

	props, err := d.assembleProperties(rc, propertySource{
		table: tableCS, code: code, name: row.name,
		remarks: row.remarks.String, deprecated: row.deprecated,
	})
	if err != nil {
		return nil, err
	}
	cs.Properties = props
	d.objects[key] = cs
	return cs, nil
}
