// Package dialect adapts the resolver's generic query text to a concrete
// database's naming conventions.
//
// The resolver writes its queries against logical table identities quoted in
// square brackets, following the EPSG dataset's original table names:
//
//	SELECT COORD_REF_SYS_NAME FROM [Coordinate Reference System] WHERE ...
//
// A Translator rewrites each bracketed identity to the concrete table name
// used by the target database. The bundled translators target the SQL
// distribution of the dataset, whose tables are named epsg_* in lower case
// with spaces and punctuation removed (e.g. epsg_coordinatereferencesystem).
package dialect

import "strings"

// Translator adapts generic query text and logical table identities to a
// concrete schema.
type Translator interface {
	// TranslateQuery rewrites every bracket-quoted logical table identity
	// in the generic query text to a concrete, ready-to-prepare form.
	TranslateQuery(generic string) string

	// TableName returns the concrete table or view name for a logical
	// table identity (without brackets).
	TableName(logical string) string
}

// SQL translates to the standard epsg_* SQL-distribution naming. Schema, if
// non-empty, is prefixed to every table name. The zero value targets an
// unqualified schema, which is what the SQLite distribution uses.
type SQL struct {
	Schema string
}

// TableName lowercases the logical identity, strips spaces, hyphens and
// underscores, and prefixes epsg_ (and the schema when configured). The
// operation tables are the one irregularity: the SQL distribution renames
// the "Coordinate_Operation" family to coordoperation* and abbreviates
// "parameter" to "param" within it (epsg_coordoperationparamvalue, not
// epsg_coordoperationparametervalue).
func (t SQL) TableName(logical string) string {
	var b strings.Builder
	if t.Schema != "" {
		b.WriteString(t.Schema)
		b.WriteByte('.')
	}
	b.WriteString("epsg_")
	lower := strings.ToLower(logical)
	if rest, ok := strings.CutPrefix(lower, "coordinate_operation"); ok {
		lower = "coordoperation" + strings.ReplaceAll(rest, "parameter", "param")
	}
	for _, r := range lower {
		switch r {
		case ' ', '-', '_':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// TranslateQuery replaces every [Logical Name] occurrence with the concrete
// table name. Text outside brackets passes through untouched.
func (t SQL) TranslateQuery(generic string) string {
	var b strings.Builder
	rest := generic
	for {
		open := strings.IndexByte(rest, '[')
		if open < 0 {
			b.WriteString(rest)
			return b.String()
		}
		close := strings.IndexByte(rest[open:], ']')
		if close < 0 {
			b.WriteString(rest)
			return b.String()
		}
		b.WriteString(rest[:open])
		b.WriteString(t.TableName(rest[open+1 : open+close]))
		rest = rest[open+close+1:]
	}
}
