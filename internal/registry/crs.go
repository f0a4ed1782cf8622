package registry

import (
	"database/sql"

	"github.com/jward/epsg/internal/geodesy"
)

// crsRow holds every column of one CRS-table row, extracted in full before
// any recursive resolution is issued.
type crsRow struct {
	name       string
	kind       string
	cs         sql.NullInt64
	datum      sql.NullInt64
	base       sql.NullInt64
	projConv   sql.NullInt64
	horiz      sql.NullInt64
	vert       sql.NullInt64
	remarks    sql.NullString
	deprecated bool
	scope      sql.NullString // legacy schema only
	area       sql.NullInt64  // legacy schema only
}

// crs resolves a coordinate reference system of any kind. This is the single
// construction site dispatching on the dataset's kind discriminator; each
// arm owns only the columns its plan needs.
//
// Inside a substitution scope the result is a stand-in for the canonical
// object (its coordinate system may have been replaced), so the cache is
// neither consulted nor populated.
func (d *DataAccess) crs(rc *resolveContext, code int) (geodesy.CRS, error) {
	key := objKey{tableCRS.logical, code}
	if !rc.substituteCS {
		if cached, ok := d.objects[key]; ok {
			return cached.(geodesy.CRS), nil
		}
	}
	if err := rc.push(tableCRS.logical, code); err != nil {
		return nil, err
	}
	defer rc.pop(tableCRS.logical, code)

	legacy := `NULL, NULL`
	if !d.usageSchema() {
		legacy = `crs_scope, area_of_use_code`
	}
	rows, err := d.query("CRS",
		`SELECT coord_ref_sys_name, coord_ref_sys_kind, coord_sys_code, datum_code,
		        base_crs_code, projection_conv_code, cmpd_horizcrs_code, cmpd_vertcrs_code,
		        remarks, deprecated, `+legacy+`
		 FROM [Coordinate Reference System] WHERE coord_ref_sys_code = ?`, code)
	if err != nil {
		return nil, err
	}
	row, err := scanSingle(d, rows, tableCRS, code, func(rows *sql.Rows) (crsRow, error) {
		var r crsRow
		err := rows.Scan(&r.name, &r.kind, &r.cs, &r.datum, &r.base, &r.projConv,
			&r.horiz, &r.vert, &r.remarks, &r.deprecated, &r.scope, &r.area)
		return r, err
	})
	if err != nil {
		return nil, err
	}

	src := propertySource{
		table: tableCRS, code: code, name: row.name,
		remarks: row.remarks.String, deprecated: row.deprecated,
		legacyScope: row.scope.String, legacyExtent: int(row.area.Int64),
	}

	var built geodesy.CRS
	switch row.kind {
	case "geographic 2D", "geographic 3D":
		built, err = d.finishGeographic(rc, code, row, src)
	case "geocentric":
		built, err = d.finishGeocentric(rc, code, row, src)
	case "projected":
		built, err = d.finishProjected(rc, code, row, src)
	case "vertical":
		built, err = d.finishVertical(rc, code, row, src)
	case "temporal":
		built, err = d.finishTemporal(rc, code, row, src)
	case "engineering":
		built, err = d.finishEngineering(rc, code, row, src)
	case "parametric":
		built, err = d.finishParametric(rc, code, row, src)
	case "compound":
		built, err = d.finishCompound(rc, code, row, src)
	default:
		return nil, unsupported(tableCRS.logical, code, "CRS kind", row.kind)
	}
	if err != nil {
		return nil, err
	}
	if !rc.substituteCS {
		d.objects[key] = built
	}
	return built, nil
}

// geodeticFrame resolves the datum-or-ensemble of a geodetic CRS row. When
// the row carries no datum of its own (geographic 3D linked to its 2D base),
// the frame is inherited from the base CRS.
func (d *DataAccess) geodeticFrame(rc *resolveContext, code int, row crsRow) (geodesy.Frame, error) {
	if row.datum.Valid {
		return d.datumOrEnsemble(rc, int(row.datum.Int64))
	}
	if !row.base.Valid {
		return nil, malformed(tableCRS.logical, code, "neither datum nor base CRS")
	}
	base, err := d.crs(rc, int(row.base.Int64))
	if err != nil {
		return nil, resolveError(tableCRS.logical, code, err)
	}
	switch b := base.(type) {
	case *geodesy.GeographicCRS:
		return b.Frame, nil
	case *geodesy.GeocentricCRS:
		return b.Frame, nil
	default:
		return nil, malformed(tableCRS.logical, code, "base CRS %d is not geodetic", row.base.Int64)
	}
}

func (d *DataAccess) finishGeographic(rc *resolveContext, code int, row crsRow, src propertySource) (geodesy.CRS, error) {
	if !row.cs.Valid {
		return nil, malformed(tableCRS.logical, code, "geographic CRS lacks coordinate system")
	}
	cs, err := d.coordinateSystem(rc, int(row.cs.Int64))
	if err != nil {
		return nil, resolveError(tableCRS.logical, code, err)
	}
	if cs.Type != geodesy.CSEllipsoidal {
		return nil, malformed(tableCRS.logical, code,
			"geographic CRS with %s coordinate system", cs.Type)
	}
	frame, err := d.geodeticFrame(rc, code, row)
	if err != nil {
		return nil, err
	}
	props, err := d.assembleProperties(rc, src)
	if err != nil {
		return nil, err
	}
	return &geodesy.GeographicCRS{Properties: props, Frame: frame, CS: cs}, nil
}

func (d *DataAccess) finishGeocentric(rc *resolveContext, code int, row crsRow, src propertySource) (geodesy.CRS, error) {
	if !row.cs.Valid {
		return nil, malformed(tableCRS.logical, code, "geocentric CRS lacks coordinate system")
	}
	cs, err := d.coordinateSystem(rc, int(row.cs.Int64))
	if err != nil {
		return nil, resolveError(tableCRS.logical, code, err)
	}
	if cs.Type != geodesy.CSCartesian && cs.Type != geodesy.CSSpherical {
		return nil, malformed(tableCRS.logical, code,
			"geocentric CRS with %s coordinate system", cs.Type)
	}
	frame, err := d.geodeticFrame(rc, code, row)
	if err != nil {
		return nil, err
	}
	props, err := d.assembleProperties(rc, src)
	if err != nil {
		return nil, err
	}
	return &geodesy.GeocentricCRS{Properties: props, Frame: frame, CS: cs}, nil
}

// finishProjected builds a projected CRS from its base and its defining
// conversion. When either is deprecated, the base resolves inside a
// substitution scope: withdrawn coordinate systems get supported stand-ins,
// deprecation logging is suppressed, and parameter range checks are relaxed
// because deprecated rows may carry the very values that got them deprecated.
func (d *DataAccess) finishProjected(rc *resolveContext, code int, row crsRow, src propertySource) (geodesy.CRS, error) {
	if !row.cs.Valid || !row.base.Valid || !row.projConv.Valid {
		return nil, malformed(tableCRS.logical, code,
			"projected CRS lacks coordinate system, base CRS or conversion")
	}
	baseCode := int(row.base.Int64)
	convCode := int(row.projConv.Int64)

	baseDeprecated, err := d.isDeprecated(tableCRS, baseCode)
	if err != nil {
		return nil, resolveError(tableCRS.logical, code, err)
	}
	convDeprecated, err := d.isDeprecated(tableOperation, convCode)
	if err != nil {
		return nil, resolveError(tableCRS.logical, code, err)
	}
	sub := rc
	if baseDeprecated || convDeprecated {
		sub = rc.substituting()
	}

	base, err := d.crs(sub, baseCode)
	if err != nil {
		return nil, resolveError(tableCRS.logical, code, err)
	}
	geographic, ok := base.(*geodesy.GeographicCRS)
	if !ok {
		return nil, malformed(tableCRS.logical, code, "base CRS %d is not geographic", baseCode)
	}
	conv, err := d.operation(sub, convCode)
	if err != nil {
		return nil, resolveError(tableCRS.logical, code, err)
	}
	if conv.Type != geodesy.OpConversion {
		return nil, malformed(tableCRS.logical, code,
			"defining conversion %d is a %s", convCode, conv.Type)
	}
	cs, err := d.coordinateSystem(rc, int(row.cs.Int64))
	if err != nil {
		return nil, resolveError(tableCRS.logical, code, err)
	}
	if cs.Type != geodesy.CSCartesian {
		return nil, malformed(tableCRS.logical, code,
			"projected CRS with %s coordinate system", cs.Type)
	}
	props, err := d.assembleProperties(rc, src)
	if err != nil {
		return nil, err
	}
	return &geodesy.ProjectedCRS{Properties: props, Base: geographic, Conversion: conv, CS: cs}, nil
}

func (d *DataAccess) finishVertical(rc *resolveContext, code int, row crsRow, src propertySource) (geodesy.CRS, error) {
	if !row.cs.Valid || !row.datum.Valid {
		return nil, malformed(tableCRS.logical, code, "vertical CRS lacks coordinate system or datum")
	}
	cs, err := d.coordinateSystem(rc, int(row.cs.Int64))
	if err != nil {
		return nil, resolveError(tableCRS.logical, code, err)
	}
	if cs.Type != geodesy.CSVertical {
		return nil, malformed(tableCRS.logical, code,
			"vertical CRS with %s coordinate system", cs.Type)
	}
	frame, err := d.datumOrEnsemble(rc, int(row.datum.Int64))
	if err != nil {
		return nil, resolveError(tableCRS.logical, code, err)
	}
	props, err := d.assembleProperties(rc, src)
	if err != nil {
		return nil, err
	}
	return &geodesy.VerticalCRS{Properties: props, Frame: frame, CS: cs}, nil
}

// concreteDatum insists on a single datum (not an ensemble) of the given type.
func concreteDatum(frame geodesy.Frame, want geodesy.DatumType, code int) (*geodesy.Datum, error) {
	datum, ok := frame.(*geodesy.Datum)
	if !ok {
		return nil, malformed(tableCRS.logical, code, "%s CRS referenced to a datum ensemble", want)
	}
	if datum.Type != want {
		return nil, malformed(tableCRS.logical, code, "%s CRS referenced to %s datum", want, datum.Type)
	}
	return datum, nil
}

func (d *DataAccess) finishTemporal(rc *resolveContext, code int, row crsRow, src propertySource) (geodesy.CRS, error) {
	if !row.cs.Valid || !row.datum.Valid {
		return nil, malformed(tableCRS.logical, code, "temporal CRS lacks coordinate system or datum")
	}
	cs, err := d.coordinateSystem(rc, int(row.cs.Int64))
	if err != nil {
		return nil, resolveError(tableCRS.logical, code, err)
	}
	frame, err := d.datumOrEnsemble(rc, int(row.datum.Int64))
	if err != nil {
		return nil, resolveError(tableCRS.logical, code, err)
	}
	datum, err := concreteDatum(frame, geodesy.DatumTemporal, code)
	if err != nil {
		return nil, err
	}
	props, err := d.assembleProperties(rc, src)
	if err != nil {
		return nil, err
	}
	return &geodesy.TemporalCRS{Properties: props, Datum: datum, CS: cs}, nil
}

func (d *DataAccess) finishEngineering(rc *resolveContext, code int, row crsRow, src propertySource) (geodesy.CRS, error) {
	if !row.cs.Valid || !row.datum.Valid {
		return nil, malformed(tableCRS.logical, code, "engineering CRS lacks coordinate system or datum")
	}
	cs, err := d.coordinateSystem(rc, int(row.cs.Int64))
	if err != nil {
		return nil, resolveError(tableCRS.logical, code, err)
	}
	frame, err := d.datumOrEnsemble(rc, int(row.datum.Int64))
	if err != nil {
		return nil, resolveError(tableCRS.logical, code, err)
	}
	datum, err := concreteDatum(frame, geodesy.DatumEngineering, code)
	if err != nil {
		return nil, err
	}
	props, err := d.assembleProperties(rc, src)
	if err != nil {
		return nil, err
	}
	return &geodesy.EngineeringCRS{Properties: props, Datum: datum, CS: cs}, nil
}

func (d *DataAccess) finishParametric(rc *resolveContext, code int, row crsRow, src propertySource) (geodesy.CRS, error) {
	if !row.cs.Valid || !row.datum.Valid {
		return nil, malformed(tableCRS.logical, code, "parametric CRS lacks coordinate system or datum")
	}
	cs, err := d.coordinateSystem(rc, int(row.cs.Int64))
	if err != nil {
		return nil, resolveError(tableCRS.logical, code, err)
	}
	frame, err := d.datumOrEnsemble(rc, int(row.datum.Int64))
	if err != nil {
		return nil, resolveError(tableCRS.logical, code, err)
	}
	datum, err := concreteDatum(frame, geodesy.DatumParametric, code)
	if err != nil {
		return nil, err
	}
	props, err := d.assembleProperties(rc, src)
	if err != nil {
		return nil, err
	}
	return &geodesy.ParametricCRS{Properties: props, Datum: datum, CS: cs}, nil
}

func (d *DataAccess) finishCompound(rc *resolveContext, code int, row crsRow, src propertySource) (geodesy.CRS, error) {
	if !row.horiz.Valid || !row.vert.Valid {
		return nil, malformed(tableCRS.logical, code, "compound CRS lacks component codes")
	}
	horiz, err := d.crs(rc, int(row.horiz.Int64))
	if err != nil {
		return nil, resolveError(tableCRS.logical, code, err)
	}
	vert, err := d.crs(rc, int(row.vert.Int64))
	if err != nil {
		return nil, resolveError(tableCRS.logical, code, err)
	}
	props, err := d.assembleProperties(rc, src)
	if err != nil {
		return nil, err
	}
	return &geodesy.CompoundCRS{Properties: props, Components: []geodesy.CRS{horiz, vert}}, nil
}

// isDeprecated peeks at a row's deprecation flag without resolving it.
func (d *DataAccess) isDeprecated(table tableInfo, code int) (bool, error) {
	stmt, err := d.stmt("Deprecated:"+table.logical,
		`SELECT deprecated FROM [`+table.logical+`] WHERE `+table.codeCol+` = ?`)
	if err != nil {
		return false, err
	}
	var deprecated bool
	if err := stmt.QueryRow(code).Scan(&deprecated); err != nil {
		if err == sql.ErrNoRows {
			return false, resolveError(table.logical, code, ErrNotFound)
		}
		return false, err
	}
	return deprecated, nil
}
