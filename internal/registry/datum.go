package registry

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/jward/epsg/internal/geodesy"
)

// ellipsoid resolves a reference ellipsoid. Exactly one of the inverse
// flattening and the semi-minor axis is authoritative in the dataset; the
// other is derived here.
func (d *DataAccess) ellipsoid(rc *resolveContext, code int) (*geodesy.Ellipsoid, error) {
	key := objKey{tableEllipsoid.logical, code}
	if cached, ok := d.objects[key]; ok {
		return cached.(*geodesy.Ellipsoid), nil
	}
	rows, err := d.query("Ellipsoid",
		`SELECT ellipsoid_name, semi_major_axis, uom_code, inv_flattening, semi_minor_axis, remarks, deprecated
		 FROM [Ellipsoid] WHERE ellipsoid_code = ?`, code)
	if err != nil {
		return nil, err
	}
	type ellipsoidRow struct {
		name       string
		semiMajor  float64
		uom        int
		invFlat    sql.NullFloat64
		semiMinor  sql.NullFloat64
		remarks    sql.NullString
		deprecated bool
	}
	row, err := scanSingle(d, rows, tableEllipsoid, code, func(rows *sql.Rows) (ellipsoidRow, error) {
		var r ellipsoidRow
		err := rows.Scan(&r.name, &r.semiMajor, &r.uom, &r.invFlat, &r.semiMinor, &r.remarks, &r.deprecated)
		return r, err
	})
	if err != nil {
		return nil, err
	}

	e := &geodesy.Ellipsoid{SemiMajor: row.semiMajor}
	switch {
	case row.invFlat.Valid && row.invFlat.Float64 != 0:
		e.IvfDefinitive = true
		e.InverseFlattening = row.invFlat.Float64
		e.SemiMinor = row.semiMajor - row.semiMajor/row.invFlat.Float64
	case row.semiMinor.Valid:
		e.SemiMinor = row.semiMinor.Float64
		if row.semiMinor.Float64 == row.semiMajor {
			e.Sphere = true
		} else {
			e.InverseFlattening = row.semiMajor / (row.semiMajor - row.semiMinor.Float64)
		}
	default:
		return nil, malformed(tableEllipsoid.logical, code,
			"neither inverse flattening nor semi-minor axis present")
	}

	unit, err := d.unit(rc, row.uom)
	if err != nil {
		return nil, resolveError(tableEllipsoid.logical, code, err)
	}
	e.Unit = unit

	props, err := d.assembleProperties(rc, propertySource{
		table: tableEllipsoid, code: code, name: row.name,
		remarks: row.remarks.String, deprecated: row.deprecated,
	})
	if err != nil {
		return nil, err
	}
	e.Properties = props
	d.objects[key] = e
	return e, nil
}

// primeMeridian resolves a prime meridian.
func (d *DataAccess) primeMeridian(rc *resolveContext, code int) (*geodesy.PrimeMeridian, error) {
	key := objKey{tablePrimeMeridian.logical, code}
	if cached, ok := d.objects[key]; ok {
		return cached.(*geodesy.PrimeMeridian), nil
	}
	rows, err := d.query("PrimeMeridian",
		`SELECT prime_meridian_name, greenwich_longitude, uom_code, remarks, deprecated
		 FROM [Prime Meridian] WHERE prime_meridian_code = ?`, code)
	if err != nil {
		return nil, err
	}
	type meridianRow struct {
		name       string
		longitude  float64
		uom        int
		remarks    sql.NullString
		deprecated bool
	}
	row, err := scanSingle(d, rows, tablePrimeMeridian, code, func(rows *sql.Rows) (meridianRow, error) {
		var r meridianRow
		err := rows.Scan(&r.name, &r.longitude, &r.uom, &r.remarks, &r.deprecated)
		return r, err
	})
	if err != nil {
		return nil, err
	}
	unit, err := d.unit(rc, row.uom)
	if err != nil {
		return nil, resolveError(tablePrimeMeridian.logical, code, err)
	}
	props, err := d.assembleProperties(rc, propertySource{
		table: tablePrimeMeridian, code: code, name: row.name,
		remarks: row.remarks.String, deprecated: row.deprecated,
	})
	if err != nil {
		return nil, err
	}
	pm := &geodesy.PrimeMeridian{
		Properties:         props,
		GreenwichLongitude: row.longitude,
		Unit:               unit,
	}
	d.objects[key] = pm
	return pm, nil
}

// datumRow holds every column of one datum-table row, extracted before any
// recursive resolution.
type datumRow struct {
	name       string
	kind       string
	anchor     sql.NullString
	realEpoch  sql.NullString
	ellipsoid  sql.NullInt64
	meridian   sql.NullInt64
	frameEpoch sql.NullFloat64
	accuracy   sql.NullFloat64
	remarks    sql.NullString
	deprecated bool
	scope      sql.NullString // legacy schema only
	area       sql.NullInt64  // legacy schema only
}

// datumOrEnsemble resolves a code from the datum table, which concrete
// datums and datum ensembles share. The returned Frame is a *Datum or a
// *DatumEnsemble; callers that require one or the other type-switch after
// construction.
func (d *DataAccess) datumOrEnsemble(rc *resolveContext, code int) (geodesy.Frame, error) {
	key := objKey{tableDatum.logical, code}
	if cached, ok := d.objects[key]; ok {
		return cached.(geodesy.Frame), nil
	}
	if err := rc.push(tableDatum.logical, code); err != nil {
		return nil, err
	}
	defer rc.pop(tableDatum.logical, code)

	legacy := `NULL, NULL`
	if !d.usageSchema() {
		legacy = `datum_scope, area_of_use_code`
	}
	rows, err := d.query("Datum",
		`SELECT datum_name, datum_type, origin_description, realization_epoch,
		        ellipsoid_code, prime_meridian_code, frame_reference_epoch,
		        ensemble_accuracy, remarks, deprecated, `+legacy+`
		 FROM [Datum] WHERE datum_code = ?`, code)
	if err != nil {
		return nil, err
	}
	row, err := scanSingle(d, rows, tableDatum, code, func(rows *sql.Rows) (datumRow, error) {
		var r datumRow
		err := rows.Scan(&r.name, &r.kind, &r.anchor, &r.realEpoch,
			&r.ellipsoid, &r.meridian, &r.frameEpoch,
			&r.accuracy, &r.remarks, &r.deprecated, &r.scope, &r.area)
		return r, err
	})
	if err != nil {
		return nil, err
	}

	src := propertySource{
		table: tableDatum, code: code, name: row.name,
		remarks: row.remarks.String, deprecated: row.deprecated,
		legacyScope: row.scope.String, legacyExtent: int(row.area.Int64),
	}

	if row.kind == "ensemble" {
		return d.finishEnsemble(rc, key, src, row)
	}

	datum := &geodesy.Datum{
		Type:   geodesy.DatumType(row.kind),
		Anchor: row.anchor.String,
	}
	switch datum.Type {
	case geodesy.DatumGeodetic, geodesy.DatumDynamic:
		if !row.ellipsoid.Valid || !row.meridian.Valid {
			return nil, malformed(tableDatum.logical, code,
				"geodetic datum lacks ellipsoid or prime meridian")
		}
		e, err := d.ellipsoid(rc, int(row.ellipsoid.Int64))
		if err != nil {
			return nil, resolveError(tableDatum.logical, code, err)
		}
		pm, err := d.primeMeridian(rc, int(row.meridian.Int64))
		if err != nil {
			return nil, resolveError(tableDatum.logical, code, err)
		}
		datum.Ellipsoid, datum.PrimeMeridian = e, pm
	case geodesy.DatumVertical, geodesy.DatumEngineering, geodesy.DatumParametric:
		// No dependent objects.
	case geodesy.DatumTemporal:
		origin, err := parseDatumOrigin(row.anchor.String)
		if err != nil {
			return nil, malformed(tableDatum.logical, code,
				"unparsable temporal origin %q", row.anchor.String)
		}
		datum.Origin = origin
	default:
		return nil, unsupported(tableDatum.logical, code, "datum type", row.kind)
	}

	switch {
	case row.frameEpoch.Valid:
		datum.Epoch = row.frameEpoch.Float64
	case row.realEpoch.Valid:
		datum.Epoch = epochYear(row.realEpoch.String)
	}

	props, err := d.assembleProperties(rc, src)
	if err != nil {
		return nil, err
	}
	datum.Properties = props
	d.objects[key] = datum
	return datum, nil
}

// finishEnsemble resolves the members and accuracy of a datum ensemble. The
// declared accuracy is surfaced as a first-class attribute.
func (d *DataAccess) finishEnsemble(rc *resolveContext, key objKey, src propertySource, row datumRow) (geodesy.Frame, error) {
	if !row.accuracy.Valid {
		return nil, malformed(tableDatum.logical, key.code, "ensemble lacks declared accuracy")
	}
	rows, err := d.query("EnsembleMember",
		`SELECT datum_code FROM [Datum Ensemble Member]
		 WHERE datum_ensemble_code = ? ORDER BY datum_sequence`, key.code)
	if err != nil {
		return nil, err
	}
	var memberCodes []int
	for rows.Next() {
		var mc int
		if err := rows.Scan(&mc); err != nil {
			rows.Close()
			return nil, err
		}
		memberCodes = append(memberCodes, mc)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	ens := &geodesy.DatumEnsemble{Accuracy: row.accuracy.Float64}
	for _, mc := range memberCodes {
		frame, err := d.datumOrEnsemble(rc, mc)
		if err != nil {
			return nil, resolveError(tableDatum.logical, key.code, err)
		}
		member, ok := frame.(*geodesy.Datum)
		if !ok {
			return nil, malformed(tableDatum.logical, key.code,
				"ensemble member %d is itself an ensemble", mc)
		}
		ens.Members = append(ens.Members, member)
	}

	props, err := d.assembleProperties(rc, src)
	if err != nil {
		return nil, err
	}
	ens.Properties = props
	d.objects[key] = ens
	return ens, nil
}

// parseDatumOrigin parses the origin of a temporal datum.
func parseDatumOrigin(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006-01", "2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, malformed(tableDatum.logical, s, "no known date layout")
}

// epochYear extracts a decimal year from a realization-epoch column, which
// older editions store as a date string. Unparsable values yield zero.
func epochYear(s string) float64 {
	if len(s) >= 4 {
		if y, err := strconv.Atoi(s[:4]); err == nil {
			return float64(y)
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return 0
}
