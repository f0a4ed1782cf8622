package registry

import "database/sql"

// scanSingle drains a cursor that must describe exactly one logical object.
// No row fails not-found. Extra rows that compare equal to the first are a
// harmless anomaly and are logged; extra rows that differ violate the
// single-definition-per-code invariant and fail duplicate-identifier.
// The cursor is always closed before returning, so callers are free to issue
// recursive resolutions afterwards.
func scanSingle[T comparable](d *DataAccess, rows *sql.Rows, table tableInfo, code int, scan func(*sql.Rows) (T, error)) (T, error) {
	defer rows.Close()
	var zero T
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return zero, resolveError(table.logical, code, err)
		}
		return zero, resolveError(table.logical, code, ErrNotFound)
	}
	first, err := scan(rows)
	if err != nil {
		return zero, resolveError(table.logical, code, err)
	}
	for rows.Next() {
		next, err := scan(rows)
		if err != nil {
			return zero, resolveError(table.logical, code, err)
		}
		if next != first {
			return zero, resolveError(table.logical, code, ErrDuplicateIdentifier)
		}
		d.log.Warn("duplicate but identical definition",
			"table", table.logical, "code", code)
	}
	if err := rows.Err(); err != nil {
		return zero, resolveError(table.logical, code, err)
	}
	return first, nil
}
