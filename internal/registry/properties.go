package registry

import (
	"database/sql"
	"fmt"

	"github.com/jward/epsg/internal/geodesy"
)

// propertySource carries the raw metadata columns a builder extracted from
// its object row, before assembly into the generic property bag.
type propertySource struct {
	table       tableInfo
	code        int
	name        string
	description string
	remarks     string
	deprecated  bool

	// Legacy schema only: scope text and extent code stored directly on
	// the object row. Ignored when the dataset has the usage association.
	legacyScope  string
	legacyExtent int
}

// assembleProperties builds the metadata bag shared by every constructed
// object. It returns a freshly constructed value per call; nothing here is
// shared between recursive frames. Callers must invoke it only after their
// own row loop has drained, because domain resolution can recursively
// resolve a vertical CRS.
func (d *DataAccess) assembleProperties(rc *resolveContext, src propertySource) (geodesy.Properties, error) {
	p := geodesy.Properties{
		Name:       src.name,
		Remarks:    src.remarks,
		Deprecated: src.deprecated,
	}

	aliases, err := d.aliasesOf(src.table, src.code)
	if err != nil {
		return p, resolveError(src.table.logical, src.code, err)
	}
	want := foldKey(src.name)
	for _, a := range aliases {
		if foldKey(a.Value) == want {
			// The accent-rich spelling wins for display; insensitive
			// matching keeps finding both.
			p.Name = a.Value
			continue
		}
		p.Aliases = append(p.Aliases, a)
	}

	p.Identifier = geodesy.Identifier{
		Authority:   d.authority,
		CodeSpace:   d.codeSpace,
		Code:        src.code,
		Version:     d.Version(),
		Description: src.description,
	}

	if src.deprecated {
		rec, err := d.deprecation(src.table, src.code)
		if err != nil {
			return p, resolveError(src.table.logical, src.code, err)
		}
		p.Identifier.Deprecated = true
		if rec != nil {
			p.Identifier.ReplacedBy = rec.replacedBy
			p.Identifier.Reason = rec.reason
			if rec.replacedBy != 0 {
				p.Identifier.Replacement = fmt.Sprintf("superseded by %d", rec.replacedBy)
			}
		}
		d.warnDeprecated(rc, src.table.logical, src.code, p.Identifier.Replacement)
	}

	domains, err := d.domainsOf(rc, src)
	if err != nil {
		return p, err
	}
	p.Domains = domains
	return p, nil
}

// aliasesOf queries the alias association for (table, code), resolving each
// alias's naming-system namespace through the namespace cache.
func (d *DataAccess) aliasesOf(table tableInfo, code int) ([]geodesy.Alias, error) {
	rows, err := d.query("Alias",
		`SELECT naming_system_code, alias FROM [Alias] WHERE object_table_name = ? AND object_code = ?`,
		objectTableName(table), code)
	if err != nil {
		return nil, err
	}
	type aliasRow struct {
		ns    sql.NullInt64
		alias string
	}
	var raw []aliasRow
	for rows.Next() {
		var r aliasRow
		if err := rows.Scan(&r.ns, &r.alias); err != nil {
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

	// Namespace lookups issue their own queries, so they run only after
	// the alias cursor is drained.
	var out []geodesy.Alias
	for _, r := range raw {
		a := geodesy.Alias{Value: r.alias}
		if r.ns.Valid {
			ns, err := d.namingSystem(int(r.ns.Int64))
			if err != nil {
				return nil, err
			}
			a.Namespace = ns
		}
		out = append(out, a)
	}
	return out, nil
}

// namingSystem resolves a naming-system code to its namespace name, cached
// for the life of the resolver.
func (d *DataAccess) namingSystem(code int) (string, error) {
	if ns, ok := d.namespaces[code]; ok {
		return ns, nil
	}
	stmt, err := d.stmt("NamingSystem",
		`SELECT naming_system_name FROM [Naming System] WHERE naming_system_code = ?`)
	if err != nil {
		return "", err
	}
	var name string
	if err := stmt.QueryRow(code).Scan(&name); err != nil {
		if err == sql.ErrNoRows {
			// A dangling naming-system reference is non-fatal.
			name = ""
		} else {
			return "", err
		}
	}
	d.namespaces[code] = name
	return name, nil
}

// deprecationRecord is one resolved deprecation association entry.
type deprecationRecord struct {
	replacedBy int
	reason     string
}

// deprecation returns the preferred deprecation record for (table, code):
// the newest record carrying a concrete replacement code, or the newest
// record at all when none names a replacement. nil when the association has
// no row (the object row's flag is then the only evidence).
func (d *DataAccess) deprecation(table tableInfo, code int) (*deprecationRecord, error) {
	rows, err := d.query("Deprecation",
		`SELECT replaced_by, deprecation_reason FROM [Deprecation]
		 WHERE object_table_name = ? AND object_code = ?
		 ORDER BY deprecation_date DESC, deprecation_id DESC`,
		objectTableName(table), code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var first *deprecationRecord
	for rows.Next() {
		var replaced sql.NullInt64
		var reason sql.NullString
		if err := rows.Scan(&replaced, &reason); err != nil {
			return nil, err
		}
		rec := &deprecationRecord{replacedBy: int(replaced.Int64), reason: reason.String}
		if first == nil {
			first = rec
		}
		if replaced.Valid && replaced.Int64 != 0 {
			return rec, rows.Err()
		}
	}
	return first, rows.Err()
}

// domainsOf resolves the object's (scope, extent) domain pairs: the usage
// association on modern datasets, the object row's own columns on legacy
// ones.
func (d *DataAccess) domainsOf(rc *resolveContext, src propertySource) ([]geodesy.Domain, error) {
	if !d.usageSchema() {
		if src.legacyScope == "" && src.legacyExtent == 0 {
			return nil, nil
		}
		dom := geodesy.Domain{Scope: src.legacyScope}
		if src.legacyExtent != 0 {
			ext, err := d.createExtent(rc, src.legacyExtent)
			if err != nil {
				return nil, err
			}
			dom.Extent = ext
		}
		return []geodesy.Domain{dom}, nil
	}

	rows, err := d.query("Usage",
		`SELECT scope_code, extent_code FROM [Usage]
		 WHERE object_table_name = ? AND object_code = ? ORDER BY usage_code`,
		objectTableName(src.table), src.code)
	if err != nil {
		return nil, err
	}
	type usageRow struct {
		scope  sql.NullInt64
		extent sql.NullInt64
	}
	var raw []usageRow
	for rows.Next() {
		var r usageRow
		if err := rows.Scan(&r.scope, &r.extent); err != nil {
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

	// Scope and extent resolution run after the usage cursor is drained:
	// extent resolution may recursively resolve a vertical CRS.
	var domains []geodesy.Domain
	for _, r := range raw {
		var dom geodesy.Domain
		if r.scope.Valid {
			scope, err := d.scopeText(int(r.scope.Int64))
			if err != nil {
				return nil, err
			}
			dom.Scope = scope
		}
		if r.extent.Valid {
			ext, err := d.createExtent(rc, int(r.extent.Int64))
			if err != nil {
				return nil, err
			}
			dom.Extent = ext
		}
		domains = append(domains, dom)
	}
	return domains, nil
}

// scopeText resolves a scope code to its description, cached.
func (d *DataAccess) scopeText(code int) (string, error) {
	key := objKey{tableScope.logical, code}
	if s, ok := d.descriptions[key]; ok {
		return s, nil
	}
	stmt, err := d.stmt("Scope",
		`SELECT scope FROM [Scope] WHERE scope_code = ?`)
	if err != nil {
		return "", err
	}
	var scope string
	if err := stmt.QueryRow(code).Scan(&scope); err != nil {
		if err == sql.ErrNoRows {
			return "", resolveError(tableScope.logical, code, ErrNotFound)
		}
		return "", err
	}
	d.descriptions[key] = scope
	return scope, nil
}

// createExtent resolves an extent code: geographic bounding box, vertical
// range (whose CRS resolves recursively), and temporal range.
func (d *DataAccess) createExtent(rc *resolveContext, code int) (*geodesy.Extent, error) {
	key := objKey{tableExtent.logical, code}
	if cached, ok := d.objects[key]; ok {
		return cached.(*geodesy.Extent), nil
	}
	// An extent can reach itself through its vertical CRS's own domain.
	if err := rc.push(tableExtent.logical, code); err != nil {
		return nil, err
	}
	defer rc.pop(tableExtent.logical, code)
	rows, err := d.query("Extent",
		`SELECT extent_description,
		        bbox_south_bound_lat, bbox_west_bound_lon, bbox_north_bound_lat, bbox_east_bound_lon,
		        vertical_extent_min, vertical_extent_max, vertical_extent_crs_code,
		        temporal_extent_begin, temporal_extent_end
		 FROM [Extent] WHERE extent_code = ?`, code)
	if err != nil {
		return nil, err
	}
	type extentRow struct {
		desc                     sql.NullString
		south, west, north, east sql.NullFloat64
		vmin, vmax               sql.NullFloat64
		vcrs                     sql.NullInt64
		tbegin, tend             sql.NullString
	}
	row, err := scanSingle(d, rows, tableExtent, code, func(rows *sql.Rows) (extentRow, error) {
		var r extentRow
		err := rows.Scan(&r.desc, &r.south, &r.west, &r.north, &r.east,
			&r.vmin, &r.vmax, &r.vcrs, &r.tbegin, &r.tend)
		return r, err
	})
	if err != nil {
		return nil, err
	}

	ext := &geodesy.Extent{
		Code:          code,
		Description:   row.desc.String,
		TemporalBegin: row.tbegin.String,
		TemporalEnd:   row.tend.String,
	}
	if row.south.Valid && row.west.Valid && row.north.Valid && row.east.Valid {
		ext.HasBBox = true
		ext.SouthLat, ext.WestLon = row.south.Float64, row.west.Float64
		ext.NorthLat, ext.EastLon = row.north.Float64, row.east.Float64
	}
	if row.vmin.Valid && row.vmax.Valid {
		ext.HasVertical = true
		ext.VerticalMin, ext.VerticalMax = row.vmin.Float64, row.vmax.Float64
	}

	// The vertical CRS resolves only now, after the extent cursor is
	// drained.
	if row.vcrs.Valid {
		crs, err := d.crs(rc, int(row.vcrs.Int64))
		if err != nil {
			return nil, resolveError(tableExtent.logical, code, err)
		}
		vertical, ok := crs.(*geodesy.VerticalCRS)
		if !ok {
			return nil, malformed(tableExtent.logical, code,
				"vertical extent references non-vertical CRS %d", row.vcrs.Int64)
		}
		ext.VerticalCRS = vertical
	}

	d.objects[key] = ext
	return ext, nil
}
