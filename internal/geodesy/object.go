package geodesy

// Identifier is the canonical reference of an object within an authority's
// codespace, e.g. EPSG:4326 under a given dataset edition.
type Identifier struct {
	Authority   string // citation of the issuing authority
	CodeSpace   string // e.g. "EPSG"
	Code        int
	Version     string // dataset edition the object was read from
	Description string

	// Deprecation. ReplacedBy is zero when the dataset records no
	// replacement; Replacement is the human-readable description and is
	// non-nil (possibly empty) whenever Deprecated is true.
	Deprecated  bool
	ReplacedBy  int
	Replacement string
	Reason      string
}

// Alias is an alternative name attached to a naming-system namespace.
type Alias struct {
	Namespace string
	Value     string
}

// Domain associates an object with a scope of use and the extent over which
// that scope applies. Either field may be absent.
type Domain struct {
	Scope  string
	Extent *Extent
}

// Extent describes where an object is valid: a geographic bounding box,
// a vertical range expressed in some vertical CRS, or a temporal range.
type Extent struct {
	Code        int
	Description string

	HasBBox            bool
	SouthLat, NorthLat float64
	WestLon, EastLon   float64

	HasVertical              bool
	VerticalMin, VerticalMax float64
	VerticalCRS              *VerticalCRS

	TemporalBegin string
	TemporalEnd   string
}

// Properties is the generic metadata bag shared by every constructed object.
// Each concrete type embeds it; the shared Identification method lets
// heterogeneous collections be inspected uniformly.
type Properties struct {
	Identifier Identifier
	Name       string
	Aliases    []Alias
	Remarks    string
	Deprecated bool
	Domains    []Domain
}

// Identification returns the object's metadata. Defined on Properties so
// every embedding type satisfies interfaces that require it.
func (p *Properties) Identification() *Properties { return p }

// Code is shorthand for the authority code of the object.
func (p *Properties) Code() int { return p.Identifier.Code }
