package epsg

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jward/epsg/dialect"
	"github.com/jward/epsg/internal/registry"
)

// Factory is the public resolver. It owns one database connection and one
// internal data-access layer, and serializes every call under one coarse
// mutex: resolution is re-entrant internally, so the lock is taken only at
// this surface.
type Factory struct {
	mu sync.Mutex
	da *registry.DataAccess
}

// Option configures a Factory.
type Option func(*registry.Config)

// WithTranslator sets the dialect translator adapting generic query text to
// the dataset's concrete schema. The default targets the SQLite
// distribution's epsg_* naming.
func WithTranslator(tr dialect.Translator) Option {
	return func(c *registry.Config) { c.Translator = tr }
}

// WithLogger sets the logger for deprecation and data-anomaly warnings.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *registry.Config) { c.Logger = logger }
}

// WithMaxStatements bounds the prepared-statement cache.
func WithMaxStatements(n int) Option {
	return func(c *registry.Config) { c.MaxStatements = n }
}

// WithCodeSpace overrides the codespace stamped on resolved identifiers,
// for datasets republished under another naming authority.
func WithCodeSpace(codeSpace, citation string) Option {
	return func(c *registry.Config) {
		c.CodeSpace = codeSpace
		c.Authority = citation
	}
}

// Open opens the SQLite distribution of the dataset at dbPath.
func Open(dbPath string, opts ...Option) (*Factory, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("epsg: open dataset: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("epsg: ping dataset: %w", err)
	}
	return NewWithDB(db, opts...)
}

// NewWithDB wraps an already-open connection to a dataset in any supported
// database; pair it with the matching dialect translator. The Factory owns
// the connection until Close.
func NewWithDB(db *sql.DB, opts ...Option) (*Factory, error) {
	var cfg registry.Config
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Factory{da: registry.New(db, cfg)}, nil
}

// CodeSpace returns the codespace of every identifier this Factory resolves.
func (f *Factory) CodeSpace() string {
	return f.da.CodeSpace()
}

// Authority returns the citation of the authority publishing the dataset,
// "EPSG Geodetic Parameter Dataset" unless overridden by WithCodeSpace.
func (f *Factory) Authority() string {
	return f.da.Authority()
}

// Version returns the dataset edition, or "" when the dataset does not
// record one.
func (f *Factory) Version() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.da.Version()
}

// CRS resolves a coordinate reference system of any kind.
func (f *Factory) CRS(code string) (CRS, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.da.CRS(code)
}

// GeodeticCRS resolves a CRS that must be geographic or geocentric; codes of
// any other CRS kind fail with ErrNotFound.
func (f *Factory) GeodeticCRS(code string) (GeodeticCRS, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.da.GeodeticCRS(code)
}

// Datum resolves a datum-or-ensemble code. The result is a *Datum or a
// *DatumEnsemble; type-switch to tell them apart.
func (f *Factory) Datum(code string) (Frame, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.da.Datum(code)
}

// Ellipsoid resolves a reference ellipsoid.
func (f *Factory) Ellipsoid(code string) (*Ellipsoid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.da.Ellipsoid(code)
}

// PrimeMeridian resolves a prime meridian.
func (f *Factory) PrimeMeridian(code string) (*PrimeMeridian, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.da.PrimeMeridian(code)
}

// CoordinateSystem resolves a coordinate system and its ordered axes.
func (f *Factory) CoordinateSystem(code string) (*CoordinateSystem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.da.CoordinateSystem(code)
}

// Axis resolves a single coordinate axis.
func (f *Factory) Axis(code string) (*Axis, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.da.Axis(code)
}

// Unit resolves a unit of measure.
func (f *Factory) Unit(code string) (*Unit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.da.Unit(code)
}

// Method resolves a coordinate operation method.
func (f *Factory) Method(code string) (*Method, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.da.Method(code)
}

// Parameter resolves an operation parameter descriptor with no using-method
// context.
func (f *Factory) Parameter(code string) (*ParameterDescriptor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.da.Parameter(code)
}

// ParameterForMethod resolves the descriptor variant of a parameter as used
// by one operation method. Variants that agree on unit, value type and sign
// reversal share one cached descriptor.
func (f *Factory) ParameterForMethod(code, method string) (*ParameterDescriptor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.da.ParameterForMethod(code, method)
}

// Operation resolves a coordinate operation: a conversion, transformation,
// point motion operation, or concatenated operation.
func (f *Factory) Operation(code string) (*Operation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.da.Operation(code)
}

// Extent resolves an extent.
func (f *Factory) Extent(code string) (*Extent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.da.Extent(code)
}

// OperationsBetween returns the coordinate operations from the source CRS
// to the target CRS: defining conversions first (exact, no positional
// uncertainty), then transformations in supersession order. Deprecated
// candidates are hidden whenever a current one exists.
func (f *Factory) OperationsBetween(source, target string) ([]*Operation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.da.OperationsBetween(source, target)
}

// EnumerateCodes returns the non-deprecated codes of a kind. The returned
// handle must be closed; unclosed handles keep Closeable false.
func (f *Factory) EnumerateCodes(kind Kind) (*CodeSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.da.EnumerateCodes(kind)
}

// Describe returns the display name of (kind, code), or "" when the code
// does not exist.
func (f *Factory) Describe(kind Kind, code string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.da.Describe(kind, code)
}

// Closeable reports whether the Factory can be retired: true only when
// every enumeration handle has been released. Pools enforcing idle timeouts
// must consult this before retiring an instance.
func (f *Factory) Closeable() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.da.Closeable()
}

// Close releases prepared statements, caches and the connection. Every
// failure encountered is aggregated into the returned error; closing twice
// is harmless.
func (f *Factory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.da.Close()
}
