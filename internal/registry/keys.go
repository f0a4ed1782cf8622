package registry

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents strips combining marks: "Ancienne Triangulation Française"
// becomes "Ancienne Triangulation Francaise".
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldKey reduces a name to its significant characters: accents folded,
// lower-cased, everything that is not a letter or digit dropped. Two names
// with equal fold keys are considered the same name.
func foldKey(name string) string {
	folded, _, err := transform.String(foldAccents, name)
	if err != nil {
		folded = name
	}
	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// likePattern builds a permissive LIKE pattern from a free-form name: runs
// of non-alphanumeric characters become %, so punctuation, spacing and
// accent differences cannot prevent a match. The overly permissive matches
// this admits are discarded by the foldKey post-filter.
func likePattern(name string) string {
	folded, _, err := transform.String(foldAccents, name)
	if err != nil {
		folded = name
	}
	var b strings.Builder
	wildcard := true // leading wildcard folds away any decorated prefix
	b.WriteByte('%')
	for _, r := range strings.ToLower(folded) {
		if r < 128 && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			wildcard = false
		} else if !wildcard {
			b.WriteByte('%')
			wildcard = true
		}
	}
	if !wildcard {
		b.WriteByte('%')
	}
	return b.String()
}

// allDigits reports whether s is a non-empty run of ASCII digits.
func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// resolveCode turns a code-or-name into the table's numeric primary key.
// All-digit input parses directly. Otherwise the primary-name column is
// searched with a case/accent-insensitive pattern, then the cross-table
// alias association. Zero surviving matches fail not-found; two or more
// distinct keys fail ambiguous.
func (d *DataAccess) resolveCode(table tableInfo, input string) (int, error) {
	input = strings.TrimSpace(input)
	if allDigits(input) {
		code, err := strconv.Atoi(input)
		if err != nil {
			return 0, resolveError(table.logical, input, ErrNotFound)
		}
		return code, nil
	}
	if table.nameCol == "" {
		return 0, resolveError(table.logical, input, ErrNotFound)
	}
	want := foldKey(input)
	if want == "" {
		return 0, resolveError(table.logical, input, ErrNotFound)
	}
	pattern := likePattern(input)

	keys := make(map[int]bool)
	collect := func(rows nameRows) {
		for _, r := range rows {
			if foldKey(r.name) == want {
				keys[r.code] = true
			}
		}
	}

	named, err := d.searchNames(table, pattern)
	if err != nil {
		return 0, resolveError(table.logical, input, err)
	}
	collect(named)
	if len(keys) == 0 {
		aliased, err := d.searchAliases(table, pattern)
		if err != nil {
			return 0, resolveError(table.logical, input, err)
		}
		collect(aliased)
	}

	switch len(keys) {
	case 0:
		return 0, resolveError(table.logical, input, ErrNotFound)
	case 1:
		for code := range keys {
			return code, nil
		}
	}
	return 0, fmt.Errorf("%s %q matches %d objects: %w",
		table.logical, input, len(keys), ErrAmbiguousName)
}

type nameRow struct {
	code int
	name string
}

type nameRows []nameRow

// searchNames scans the table's primary-name column for the pattern.
func (d *DataAccess) searchNames(table tableInfo, pattern string) (nameRows, error) {
	op := "NameSearch:" + table.logical
	generic := fmt.Sprintf(`SELECT %s, %s FROM [%s] WHERE %s LIKE ?`,
		table.codeCol, table.nameCol, table.logical, table.nameCol)
	rows, err := d.query(op, generic, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out nameRows
	for rows.Next() {
		var r nameRow
		if err := rows.Scan(&r.code, &r.name); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// searchAliases scans the cross-table alias association for the pattern.
func (d *DataAccess) searchAliases(table tableInfo, pattern string) (nameRows, error) {
	rows, err := d.query("AliasSearch",
		`SELECT object_code, alias FROM [Alias] WHERE object_table_name = ? AND alias LIKE ?`,
		objectTableName(table), pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out nameRows
	for rows.Next() {
		var r nameRow
		if err := rows.Scan(&r.code, &r.name); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
