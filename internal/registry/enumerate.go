package registry

import (
	"database/sql"
	"fmt"
	"sort"
)

// Kind names an enumerable entity kind: a table, optionally narrowed by a
// discriminator condition. Subtype kinds of one table partition (or at least
// cover) their supertype, so enumerating the supertype equals the
// deduplicated union of the subtypes.
type Kind struct {
	name   string
	table  tableInfo
	filter string // extra WHERE condition on the discriminator, "" for all
}

func (k Kind) String() string { return k.name }

// narrowed builds a subtype Kind whose filter matches the table's
// discriminator column against the given condition.
func narrowed(name string, table tableInfo, condition string) Kind {
	return Kind{name, table, table.kindCol + " " + condition}
}

var (
	KindCRS            = Kind{"CRS", tableCRS, ""}
	KindGeographicCRS  = narrowed("geographic CRS", tableCRS, `LIKE 'geographic%'`)
	KindGeocentricCRS  = narrowed("geocentric CRS", tableCRS, `= 'geocentric'`)
	KindProjectedCRS   = narrowed("projected CRS", tableCRS, `= 'projected'`)
	KindVerticalCRS    = narrowed("vertical CRS", tableCRS, `= 'vertical'`)
	KindTemporalCRS    = narrowed("temporal CRS", tableCRS, `= 'temporal'`)
	KindEngineeringCRS = narrowed("engineering CRS", tableCRS, `= 'engineering'`)
	KindParametricCRS  = narrowed("parametric CRS", tableCRS, `= 'parametric'`)
	KindCompoundCRS    = narrowed("compound CRS", tableCRS, `= 'compound'`)

	KindDatum         = Kind{"datum", tableDatum, ""}
	KindGeodeticDatum = narrowed("geodetic datum", tableDatum, `IN ('geodetic', 'dynamic geodetic')`)
	KindVerticalDatum = narrowed("vertical datum", tableDatum, `= 'vertical'`)
	KindDatumEnsemble = narrowed("datum ensemble", tableDatum, `= 'ensemble'`)

	KindEllipsoid        = Kind{"ellipsoid", tableEllipsoid, ""}
	KindPrimeMeridian    = Kind{"prime meridian", tablePrimeMeridian, ""}
	KindCoordinateSystem = Kind{"coordinate system", tableCS, ""}
	KindUnit             = Kind{"unit of measure", tableUnit, ""}

	KindOperation      = Kind{"coordinate operation", tableOperation, ""}
	KindConversion     = narrowed("conversion", tableOperation, `= 'conversion'`)
	KindTransformation = narrowed("transformation", tableOperation, `= 'transformation'`)
	KindMethod         = Kind{"operation method", tableMethod, ""}
	KindParameter      = Kind{"operation parameter", tableParameter, ""}
)

// CodeSet is an enumeration handle: the sorted, deduplicated codes of one
// kind, excluding deprecated entries (deprecated objects stay individually
// resolvable but are hidden from enumeration). The resolver counts live
// handles and reports itself closeable only when every handle has been
// released.
type CodeSet struct {
	kind     Kind
	codes    []int
	d        *DataAccess
	released bool
}

// Kind returns the enumerated kind.
func (s *CodeSet) Kind() Kind { return s.kind }

// Len returns the number of codes.
func (s *CodeSet) Len() int { return len(s.codes) }

// Codes returns the codes in ascending order. The slice is shared; callers
// must not modify it.
func (s *CodeSet) Codes() []int { return s.codes }

// Contains reports whether the set holds code.
func (s *CodeSet) Contains(code int) bool {
	i := sort.SearchInts(s.codes, code)
	return i < len(s.codes) && s.codes[i] == code
}

// Close releases the handle. Closing twice is harmless.
func (s *CodeSet) Close() {
	if s.released {
		return
	}
	s.released = true
	if s.d.liveSets > 0 {
		s.d.liveSets--
	}
}

// enumerateCodes materializes the code set of a kind and lends it out as a
// counted handle.
func (d *DataAccess) enumerateCodes(kind Kind) (*CodeSet, error) {
	generic := fmt.Sprintf(`SELECT DISTINCT %s FROM [%s] WHERE deprecated = 0`,
		kind.table.codeCol, kind.table.logical)
	if kind.filter != "" {
		generic += ` AND ` + kind.filter
	}
	rows, err := d.query("Enumerate:"+kind.name, generic)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var codes []int
	for rows.Next() {
		var c int
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		codes = append(codes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Ints(codes)
	d.liveSets++
	return &CodeSet{kind: kind, codes: codes, d: d}, nil
}

// describe returns the display name of (kind, code), or the empty string
// when the code does not exist. Descriptions are cached.
func (d *DataAccess) describe(kind Kind, code int) (string, error) {
	key := objKey{kind.table.logical, code}
	if s, ok := d.descriptions[key]; ok {
		return s, nil
	}
	if kind.table.nameCol == "" {
		return "", nil
	}
	stmt, err := d.stmt("Describe:"+kind.table.logical,
		fmt.Sprintf(`SELECT %s FROM [%s] WHERE %s = ?`,
			kind.table.nameCol, kind.table.logical, kind.table.codeCol))
	if err != nil {
		return "", err
	}
	var name string
	if err := stmt.QueryRow(code).Scan(&name); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", resolveError(kind.table.logical, code, err)
	}
	d.descriptions[key] = name
	return name, nil
}
