package registry

import (
	"database/sql"

	"github.com/jward/epsg/internal/geodesy"
)

// operationRow holds every column of one operation-table row, extracted in
// full before any recursive resolution.
type operationRow struct {
	name       string
	kind       string
	source     sql.NullInt64
	target     sql.NullInt64
	method     sql.NullInt64
	accuracy   sql.NullFloat64
	version    sql.NullString
	remarks    sql.NullString
	deprecated bool
	scope      sql.NullString // legacy schema only
	area       sql.NullInt64  // legacy schema only
}

// operation resolves a coordinate operation: a conversion (possibly a
// defining conversion with no source or target), a transformation, a point
// motion operation, or a concatenated operation resolved step by step.
//
// Results produced inside a relaxed scope (deprecated defining conversions)
// are not canonical and are never cached.
func (d *DataAccess) operation(rc *resolveContext, code int) (*geodesy.Operation, error) {
	key := objKey{tableOperation.logical, code}
	if !rc.relaxed {
		if cached, ok := d.objects[key]; ok {
			return cached.(*geodesy.Operation), nil
		}
	}
	if err := rc.push(tableOperation.logical, code); err != nil {
		return nil, err
	}
	defer rc.pop(tableOperation.logical, code)

	legacy := `NULL, NULL`
	if !d.usageSchema() {
		legacy = `coord_op_scope, area_of_use_code`
	}
	rows, err := d.query("Operation",
		`SELECT coord_op_name, coord_op_type, source_crs_code, target_crs_code,
		        coord_op_method_code, coord_op_accuracy, coord_op_version,
		        remarks, deprecated, `+legacy+`
		 FROM [Coordinate_Operation] WHERE coord_op_code = ?`, code)
	if err != nil {
		return nil, err
	}
	row, err := scanSingle(d, rows, tableOperation, code, func(rows *sql.Rows) (operationRow, error) {
		var r operationRow
		err := rows.Scan(&r.name, &r.kind, &r.source, &r.target, &r.method,
			&r.accuracy, &r.version, &r.remarks, &r.deprecated, &r.scope, &r.area)
		return r, err
	})
	if err != nil {
		return nil, err
	}

	op := &geodesy.Operation{
		Type:    geodesy.OperationType(row.kind),
		Version: row.version.String,
	}
	if row.accuracy.Valid {
		acc := row.accuracy.Float64
		op.Accuracy = &acc
	}

	switch op.Type {
	case geodesy.OpConversion:
		// Defining conversions have no source or target of their own.
	case geodesy.OpTransformation, geodesy.OpPointMotion:
		if !row.source.Valid || !row.target.Valid {
			return nil, malformed(tableOperation.logical, code, "%s lacks source or target CRS", row.kind)
		}
	case geodesy.OpConcatenated:
		if !row.source.Valid || !row.target.Valid {
			return nil, malformed(tableOperation.logical, code, "concatenated operation lacks source or target CRS")
		}
	default:
		return nil, unsupported(tableOperation.logical, code, "operation type", row.kind)
	}

	if op.Type == geodesy.OpConcatenated {
		steps, err := d.operationSteps(rc, code)
		if err != nil {
			return nil, err
		}
		op.Steps = steps
	} else {
		if !row.method.Valid {
			return nil, malformed(tableOperation.logical, code, "operation lacks a method")
		}
		methodCode := int(row.method.Int64)
		method, err := d.method(rc, methodCode)
		if err != nil {
			return nil, resolveError(tableOperation.logical, code, err)
		}
		op.Method = method
		values, err := d.parameterValues(rc, code, methodCode)
		if err != nil {
			return nil, resolveError(tableOperation.logical, code, err)
		}
		op.Parameters = values
	}

	// Source and target resolve last: they may themselves reference this
	// operation (a projected CRS and its defining conversion).
	if row.source.Valid {
		src, err := d.crs(rc, int(row.source.Int64))
		if err != nil {
			return nil, resolveError(tableOperation.logical, code, err)
		}
		op.SourceCRS = src
	}
	if row.target.Valid {
		tgt, err := d.crs(rc, int(row.target.Int64))
		if err != nil {
			return nil, resolveError(tableOperation.logical, code, err)
		}
		op.TargetCRS = tgt
	}

	props, err := d.assembleProperties(rc, propertySource{
		table: tableOperation, code: code, name: row.name,
		remarks: row.remarks.String, deprecated: row.deprecated,
		legacyScope: row.scope.String, legacyExtent: int(row.area.Int64),
	})
	if err != nil {
		return nil, err
	}
	op.Properties = props
	if !rc.relaxed {
		d.objects[key] = op
	}
	return op, nil
}

// operationSteps resolves the ordered single operations of a concatenated
// operation through the path association.
func (d *DataAccess) operationSteps(rc *resolveContext, code int) ([]*geodesy.Operation, error) {
	rows, err := d.query("OperationPath",
		`SELECT single_operation_code FROM [Coordinate_Operation Path]
		 WHERE concat_operation_code = ? ORDER BY op_path_step`, code)
	if err != nil {
		return nil, err
	}
	var stepCodes []int
	for rows.Next() {
		var sc int
		if err := rows.Scan(&sc); err != nil {
			rows.Close()
			return nil, resolveError(tableOperation.logical, code, err)
		}
		stepCodes = append(stepCodes, sc)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, resolveError(tableOperation.logical, code, err)
	}
	rows.Close()
	if len(stepCodes) < 2 {
		return nil, malformed(tableOperation.logical, code,
			"concatenated operation has %d step(s)", len(stepCodes))
	}
	var steps []*geodesy.Operation
	for _, sc := range stepCodes {
		step, err := d.operation(rc, sc)
		if err != nil {
			return nil, resolveError(tableOperation.logical, code, err)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// method resolves an operation method and the descriptors of its parameters,
// memoized for the life of the resolver.
func (d *DataAccess) method(rc *resolveContext, code int) (*geodesy.Method, error) {
	if m, ok := d.methods[code]; ok {
		return m, nil
	}
	methodRows, err := d.query("Method",
		`SELECT coord_op_method_name, reverse_op, formula, remarks, deprecated
		 FROM [Coordinate_Operation Method] WHERE coord_op_method_code = ?`, code)
	if err != nil {
		return nil, err
	}
	type methodRow struct {
		name       string
		reverse    bool
		formula    sql.NullString
		remarks    sql.NullString
		deprecated bool
	}
	mrow, err := scanSingle(d, methodRows, tableMethod, code, func(rows *sql.Rows) (methodRow, error) {
		var r methodRow
		err := rows.Scan(&r.name, &r.reverse, &r.formula, &r.remarks, &r.deprecated)
		return r, err
	})
	if err != nil {
		return nil, err
	}

	rows, err := d.query("MethodParams",
		`SELECT parameter_code FROM [Coordinate_Operation Parameter Usage]
		 WHERE coord_op_method_code = ? ORDER BY sort_order`, code)
	if err != nil {
		return nil, err
	}
	var paramCodes []int
	for rows.Next() {
		var pc int
		if err := rows.Scan(&pc); err != nil {
			rows.Close()
			return nil, resolveError(tableMethod.logical, code, err)
		}
		paramCodes = append(paramCodes, pc)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, resolveError(tableMethod.logical, code, err)
	}
	rows.Close()

	m := &geodesy.Method{
		Formula:    mrow.formula.String,
		Reversible: mrow.reverse,
	}
	for _, pc := range paramCodes {
		desc, err := d.parameterVariant(rc, pc, code)
		if err != nil {
			return nil, resolveError(tableMethod.logical, code, err)
		}
		m.Parameters = append(m.Parameters, desc)
	}

	props, err := d.assembleProperties(rc, propertySource{
		table: tableMethod, code: code, name: mrow.name,
		remarks: mrow.remarks.String, deprecated: mrow.deprecated,
	})
	if err != nil {
		return nil, err
	}
	m.Properties = props
	d.methods[code] = m
	return m, nil
}
