package registry

import (
	"database/sql"
	"math"

	"github.com/jward/epsg/internal/geodesy"
)

// paramKey is the composite cache key for parameter-descriptor variants.
// The same parameter code resolves to different descriptors under different
// operation methods (different unit, value type or sign reversal); variants
// that agree on all of these share one cached descriptor.
type paramKey struct {
	code     int
	unit     int
	vtype    geodesy.ParameterValueType
	reversal bool
}

// parameter resolves a parameter descriptor with no using-method context:
// numeric, unitless, not sign-reversible. Context-bound variants come from
// parameterVariant.
func (d *DataAccess) parameter(rc *resolveContext, code int) (*geodesy.ParameterDescriptor, error) {
	return d.buildParameter(rc, paramKey{code: code, vtype: geodesy.ValueNumeric})
}

// parameterVariant resolves the descriptor of a parameter as used by one
// operation method: sign reversal from the usage association, value type and
// dominant unit from the population of recorded values.
func (d *DataAccess) parameterVariant(rc *resolveContext, code, methodCode int) (*geodesy.ParameterDescriptor, error) {
	key := paramKey{code: code}

	stmt, err := d.stmt("ParamUsage",
		`SELECT param_sign_reversal FROM [Coordinate_Operation Parameter Usage]
		 WHERE coord_op_method_code = ? AND parameter_code = ?`)
	if err != nil {
		return nil, err
	}
	var reversal sql.NullString
	if err := stmt.QueryRow(methodCode, code).Scan(&reversal); err != nil {
		if err == sql.ErrNoRows {
			return nil, resolveError(tableParameter.logical, code, ErrNotFound)
		}
		return nil, resolveError(tableParameter.logical, code, err)
	}
	switch reversal.String {
	case "Yes":
		key.reversal = true
	case "No", "":
		// An absent flag is a harmless anomaly; proceed as not reversible.
		if !reversal.Valid {
			d.log.Warn("ambiguous sign-reversal flag",
				"parameter", code, "method", methodCode)
		}
	default:
		d.log.Warn("ambiguous sign-reversal flag",
			"parameter", code, "method", methodCode, "value", reversal.String)
	}

	// Value type from the recorded population: file references dominate
	// when present; otherwise unitless whole numbers are code references.
	stmt, err = d.stmt("ParamPopulation",
		`SELECT COUNT(parameter_value), COUNT(param_value_file_ref)
		 FROM [Coordinate_Operation Parameter Value]
		 WHERE coord_op_method_code = ? AND parameter_code = ?`)
	if err != nil {
		return nil, err
	}
	var numeric, files int
	if err := stmt.QueryRow(methodCode, code).Scan(&numeric, &files); err != nil {
		return nil, resolveError(tableParameter.logical, code, err)
	}
	if files > 0 && files >= numeric {
		key.vtype = geodesy.ValueFile
	} else {
		unit, integral, err := d.dominantUnit(code, methodCode)
		if err != nil {
			return nil, err
		}
		key.unit = unit
		if unit == 0 && integral && numeric > 0 {
			key.vtype = geodesy.ValueInteger
		}
	}

	return d.buildParameter(rc, key)
}

// dominantUnit returns the most frequent unit among the values recorded for
// (parameter, method), and whether every recorded value is a whole number.
func (d *DataAccess) dominantUnit(code, methodCode int) (int, bool, error) {
	rows, err := d.query("ParamUnits",
		`SELECT uom_code, parameter_value FROM [Coordinate_Operation Parameter Value]
		 WHERE coord_op_method_code = ? AND parameter_code = ?`, methodCode, code)
	if err != nil {
		return 0, false, err
	}
	defer rows.Close()
	counts := make(map[int]int)
	integral := true
	for rows.Next() {
		var uom sql.NullInt64
		var value sql.NullFloat64
		if err := rows.Scan(&uom, &value); err != nil {
			return 0, false, resolveError(tableParameter.logical, code, err)
		}
		if uom.Valid {
			counts[int(uom.Int64)]++
		}
		if value.Valid && value.Float64 != math.Trunc(value.Float64) {
			integral = false
		}
	}
	if err := rows.Err(); err != nil {
		return 0, false, resolveError(tableParameter.logical, code, err)
	}
	best, bestCount := 0, 0
	for uom, n := range counts {
		if n > bestCount || (n == bestCount && uom < best) {
			best, bestCount = uom, n
		}
	}
	return best, integral, nil
}

// buildParameter constructs (or returns the cached) descriptor for a fully
// determined variant key.
func (d *DataAccess) buildParameter(rc *resolveContext, key paramKey) (*geodesy.ParameterDescriptor, error) {
	if p, ok := d.params[key]; ok {
		return p, nil
	}
	rows, err := d.query("Parameter",
		`SELECT parameter_name, description, deprecated
		 FROM [Coordinate_Operation Parameter] WHERE parameter_code = ?`, key.code)
	if err != nil {
		return nil, err
	}
	type parameterRow struct {
		name       string
		desc       sql.NullString
		deprecated bool
	}
	row, err := scanSingle(d, rows, tableParameter, key.code, func(rows *sql.Rows) (parameterRow, error) {
		var r parameterRow
		err := rows.Scan(&r.name, &r.desc, &r.deprecated)
		return r, err
	})
	if err != nil {
		return nil, err
	}

	p := &geodesy.ParameterDescriptor{
		ValueType:      key.vtype,
		SignReversible: key.reversal,
	}
	if key.unit != 0 {
		unit, err := d.unit(rc, key.unit)
		if err != nil {
			return nil, resolveError(tableParameter.logical, key.code, err)
		}
		p.Unit = unit
	}
	props, err := d.assembleProperties(rc, propertySource{
		table: tableParameter, code: key.code, name: row.name,
		description: row.desc.String, deprecated: row.deprecated,
	})
	if err != nil {
		return nil, err
	}
	p.Properties = props
	d.params[key] = p
	return p, nil
}

// valueRow is one fully extracted parameter-value row.
type valueRow struct {
	param int
	value sql.NullFloat64
	file  sql.NullString
	uom   sql.NullInt64
}

// parameterValues resolves the concrete parameter values of one operation,
// ordered by the method's usage order.
func (d *DataAccess) parameterValues(rc *resolveContext, opCode, methodCode int) ([]*geodesy.ParameterValue, error) {
	rows, err := d.query("ParamValues",
		`SELECT v.parameter_code, v.parameter_value, v.param_value_file_ref, v.uom_code
		 FROM [Coordinate_Operation Parameter Value] v
		 JOIN [Coordinate_Operation Parameter Usage] u
		   ON u.coord_op_method_code = v.coord_op_method_code
		  AND u.parameter_code = v.parameter_code
		 WHERE v.coord_op_code = ? AND v.coord_op_method_code = ?
		 ORDER BY u.sort_order`, opCode, methodCode)
	if err != nil {
		return nil, err
	}
	var raw []valueRow
	for rows.Next() {
		var r valueRow
		if err := rows.Scan(&r.param, &r.value, &r.file, &r.uom); err != nil {
			rows.Close()
			return nil, err
		}
		raw = append(raw, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	var out []*geodesy.ParameterValue
	for _, r := range raw {
		desc, err := d.parameterVariant(rc, r.param, methodCode)
		if err != nil {
			return nil, err
		}
		pv := &geodesy.ParameterValue{Descriptor: desc}
		switch {
		case r.file.Valid && r.file.String != "":
			pv.File = r.file.String
		case r.value.Valid:
			pv.Value = r.value.Float64
			if r.uom.Valid {
				unit, err := d.unit(rc, int(r.uom.Int64))
				if err != nil {
					return nil, err
				}
				pv.Unit = unit
			}
		default:
			return nil, malformed(tableParameter.logical, r.param,
				"parameter value row carries neither value nor file reference")
		}
		if err := validateParameterValue(rc, pv); err != nil {
			return nil, err
		}
		out = append(out, pv)
	}
	return out, nil
}

// validateParameterValue applies the coarse range check for angular values.
// Relaxed scopes skip it: deprecated rows may carry the out-of-range values
// that caused the deprecation.
func validateParameterValue(rc *resolveContext, pv *geodesy.ParameterValue) error {
	if rc.relaxed || pv.Unit == nil || pv.Unit.Type != geodesy.UnitAngle || !pv.Unit.Linear() {
		return nil
	}
	if rad := pv.Unit.ToBase(pv.Value); math.Abs(rad) > 2*math.Pi {
		return malformed(tableParameter.logical, pv.Descriptor.Code(),
			"angular value %g %s out of range", pv.Value, pv.Unit.Name)
	}
	return nil
}
