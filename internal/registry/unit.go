package registry

import (
	"database/sql"
	"math"
	"strings"

	"github.com/jward/epsg/internal/geodesy"
)

// canonicalUnits is the hard-coded fast path for the units that dominate the
// dataset. Scales are relative to the base unit of each type (metre, radian,
// unity, second). Codes outside this table derive from the unit table's
// affine coefficients.
var canonicalUnits = map[int]geodesy.Unit{
	9001: canonical(9001, "metre", "m", geodesy.UnitLength, 9001, 1),
	9002: canonical(9002, "foot", "ft", geodesy.UnitLength, 9001, 0.3048),
	9003: canonical(9003, "US survey foot", "ftUS", geodesy.UnitLength, 9001, 12.0/39.37),
	9036: canonical(9036, "kilometre", "km", geodesy.UnitLength, 9001, 1000),
	9101: canonical(9101, "radian", "rad", geodesy.UnitAngle, 9101, 1),
	9102: canonical(9102, "degree", "°", geodesy.UnitAngle, 9101, math.Pi/180),
	9104: canonical(9104, "arc-second", "″", geodesy.UnitAngle, 9101, math.Pi/648000),
	9109: canonical(9109, "microradian", "µrad", geodesy.UnitAngle, 9101, 1e-6),
	9122: canonical(9122, "degree (supplier to define representation)", "°", geodesy.UnitAngle, 9101, math.Pi/180),
	9201: canonical(9201, "unity", "", geodesy.UnitScale, 9201, 1),
	9202: canonical(9202, "parts per million", "ppm", geodesy.UnitScale, 9201, 1e-6),
	1040: canonical(1040, "second", "s", geodesy.UnitTime, 1040, 1),
	1029: canonical(1029, "year", "a", geodesy.UnitTime, 1040, 31556925.445),
}

func canonical(code int, name, symbol string, typ geodesy.UnitType, base int, scale float64) geodesy.Unit {
	u := geodesy.Unit{Type: typ, Symbol: symbol, BaseCode: base, Scale: scale}
	u.Name = name
	u.Identifier = geodesy.Identifier{CodeSpace: "EPSG", Code: code}
	return u
}

// unit resolves a unit of measure: hard-coded canonical units first, then an
// affine derivation from the unit table, then a textual parse of the unit
// name for non-linear encodings.
func (d *DataAccess) unit(rc *resolveContext, code int) (*geodesy.Unit, error) {
	if u, ok := d.units[code]; ok {
		return u, nil
	}
	if cu, ok := canonicalUnits[code]; ok {
		u := cu // copy; the map stays pristine
		d.units[code] = &u
		return &u, nil
	}

	rows, err := d.query("Unit",
		`SELECT unit_of_meas_name, unit_of_meas_type, target_uom_code, factor_b, factor_c, remarks, deprecated
		 FROM [Unit of Measure] WHERE uom_code = ?`, code)
	if err != nil {
		return nil, err
	}
	type unitRow struct {
		name       string
		typ        string
		target     sql.NullInt64
		fb, fc     sql.NullFloat64
		remarks    sql.NullString
		deprecated bool
	}
	row, err := scanSingle(d, rows, tableUnit, code, func(rows *sql.Rows) (unitRow, error) {
		var r unitRow
		err := rows.Scan(&r.name, &r.typ, &r.target, &r.fb, &r.fc, &r.remarks, &r.deprecated)
		return r, err
	})
	if err != nil {
		return nil, err
	}

	u := &geodesy.Unit{
		Type:     geodesy.UnitType(row.typ),
		BaseCode: int(row.target.Int64),
	}
	switch {
	case row.fb.Valid && row.fc.Valid && row.fc.Float64 != 0:
		u.Scale = row.fb.Float64 / row.fc.Float64
	default:
		// Non-linear conversion (sexagesimal encodings store no affine
		// coefficients): fall back to the textual unit name.
		if !parseUnitName(row.name, u) {
			return nil, malformed(tableUnit.logical, code,
				"no conversion factors and unrecognized unit name %q", row.name)
		}
	}

	props, err := d.assembleProperties(rc, propertySource{
		table:      tableUnit,
		code:       code,
		name:       row.name,
		remarks:    row.remarks.String,
		deprecated: row.deprecated,
	})
	if err != nil {
		return nil, err
	}
	u.Properties = props
	d.units[code] = u
	return u, nil
}

// parseUnitName recognizes units whose conversion is not affine, currently
// the sexagesimal degree encodings. Reports whether the name was understood.
func parseUnitName(name string, u *geodesy.Unit) bool {
	n := strings.ToLower(name)
	if strings.Contains(n, "sexagesimal") {
		u.Sexagesimal = true
		u.Type = geodesy.UnitAngle
		switch {
		case strings.Contains(n, "dms"):
			u.Symbol = "D.MS"
		case strings.Contains(n, "dm"):
			u.Symbol = "D.M"
		}
		return true
	}
	return false
}
