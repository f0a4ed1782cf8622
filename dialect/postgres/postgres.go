// Package postgres provides the query translator for an EPSG dataset hosted
// in PostgreSQL, and registers the pq driver as a side effect so callers can
// sql.Open("postgres", ...) after importing this package.
package postgres

import (
	_ "github.com/lib/pq" // driver registration

	"github.com/jward/epsg/dialect"
)

// Translator targets the PostgreSQL distribution of the dataset. Postgres
// folds unquoted identifiers to lower case, so the epsg_* names need no
// quoting. pq does not rewrite ?-style placeholders, so the resolver
// renumbers them to $1..$N when NumberedPlaceholders reports true.
type Translator struct {
	dialect.SQL
}

// New returns a Translator for the given schema ("" for the search path).
func New(schema string) Translator {
	return Translator{dialect.SQL{Schema: schema}}
}

// NumberedPlaceholders reports that this dialect needs $1..$N placeholders
// instead of ?.
func (Translator) NumberedPlaceholders() bool { return true }
