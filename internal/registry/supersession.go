package registry

import (
	"database/sql"

	"github.com/jward/epsg/internal/geodesy"
)

// supersessions returns the outgoing "replaced by" targets of (table, code),
// most recent supersession year first.
func (d *DataAccess) supersessions(table tableInfo, code int) ([]int, error) {
	rows, err := d.query("Supersession",
		`SELECT superseded_by FROM [Supersession]
		 WHERE object_table_name = ? AND object_code = ?
		 ORDER BY supersession_year DESC`,
		objectTableName(table), code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var targets []int
	for rows.Next() {
		var t sql.NullInt64
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		if t.Valid {
			targets = append(targets, int(t.Int64))
		}
	}
	return targets, rows.Err()
}

// orderBySupersession reorders candidate codes so that superseding entries
// precede the entries they replace, preserving relative order otherwise.
// Relaxation passes repeat until stable or until the iteration cap; the cap
// bounds malformed or cyclic supersession data, which yields a best-effort
// order and a warning rather than an error.
func (d *DataAccess) orderBySupersession(table tableInfo, codes []int) ([]int, error) {
	if len(codes) < 2 {
		return codes, nil
	}
	edges := make(map[int][]int, len(codes))
	for _, c := range codes {
		targets, err := d.supersessions(table, c)
		if err != nil {
			return nil, resolveError(table.logical, c, err)
		}
		edges[c] = targets
	}

	maxPasses := len(codes) + 1
	pass := 0
	for ; pass < maxPasses; pass++ {
		changed := false
		for i := 0; i < len(codes); i++ {
			for _, target := range edges[codes[i]] {
				for j := i + 1; j < len(codes); j++ {
					if codes[j] != target {
						continue
					}
					// Move the superseding entry immediately before
					// the entry it replaces.
					moved := codes[j]
					copy(codes[i+1:j+1], codes[i:j])
					codes[i] = moved
					changed = true
					break
				}
			}
		}
		if !changed {
			break
		}
	}
	if pass == maxPasses {
		d.log.Warn("supersession order did not stabilize; data may be cyclic",
			"table", table.logical, "candidates", len(codes))
	}
	return codes, nil
}

// operationsBetween returns the coordinate operations from one CRS to
// another: defining-conversion projections first (exact, no positional
// uncertainty), then transformations ordered by supersession precedence.
// Deprecated candidates are hidden whenever a current one exists.
func (d *DataAccess) operationsBetween(rc *resolveContext, source, target int) ([]*geodesy.Operation, error) {
	var convCodes []int
	rows, err := d.query("DefiningConversions",
		`SELECT projection_conv_code FROM [Coordinate Reference System]
		 WHERE base_crs_code = ? AND coord_ref_sys_code = ? AND projection_conv_code IS NOT NULL`,
		source, target)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var c int
		if err := rows.Scan(&c); err != nil {
			rows.Close()
			return nil, err
		}
		convCodes = append(convCodes, c)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	type candidate struct {
		code       int
		deprecated bool
	}
	var candidates []candidate
	rows, err = d.query("OperationsBetween",
		`SELECT coord_op_code, deprecated FROM [Coordinate_Operation]
		 WHERE source_crs_code = ? AND target_crs_code = ?
		 ORDER BY coord_op_code`, source, target)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var c candidate
		if err := rows.Scan(&c.code, &c.deprecated); err != nil {
			rows.Close()
			return nil, err
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	current := false
	for _, c := range candidates {
		if !c.deprecated {
			current = true
			break
		}
	}
	var opCodes []int
	for _, c := range candidates {
		if current && c.deprecated {
			continue
		}
		opCodes = append(opCodes, c.code)
	}
	opCodes, err = d.orderBySupersession(tableOperation, opCodes)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool)
	var out []*geodesy.Operation
	for _, code := range append(convCodes, opCodes...) {
		if seen[code] {
			continue
		}
		seen[code] = true
		op, err := d.operation(rc, code)
		if err != nil {
			return nil, err
		}
		out = append(out, op)
	}
	return out, nil
}
