// Package registry implements the resolver core: the schema-driven data
// access layer that turns EPSG authority codes into reference objects by
// issuing a bounded set of parameterized queries, dispatching on the
// dataset's kind discriminators, recursively resolving referenced objects
// under a cycle guard, reconciling deprecated and superseded entries, and
// caching results for the life of the connection.
//
// A DataAccess is not safe for concurrent use; the public epsg.Factory
// serializes calls under one mutex. Internal methods therefore never lock,
// which is what makes the pervasive re-entrant resolution (a CRS resolving
// its datum resolving its ellipsoid resolving its unit) straightforward.
package registry

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jward/epsg/dialect"
	"github.com/jward/epsg/internal/geodesy"
)

// defaultMaxStatements bounds the prepared-statement cache.
const defaultMaxStatements = 30

// Config carries construction parameters from the public facade.
type Config struct {
	Translator    dialect.Translator
	Logger        *slog.Logger
	MaxStatements int
	CodeSpace     string // defaults to "EPSG"
	Authority     string // citation; defaults to the EPSG dataset citation
}

// objKey identifies one logical object: a table identity plus primary key.
type objKey struct {
	table string
	code  int
}

// preparedStmt is one cache entry of the bounded statement pool.
type preparedStmt struct {
	stmt    *sql.Stmt
	lastUse int64
}

// DataAccess resolves authority codes against one live database connection.
type DataAccess struct {
	db  *sql.DB
	tr  dialect.Translator
	log *slog.Logger

	numbered  bool // translator wants $1..$N placeholders
	codeSpace string
	authority string
	maxStmt   int

	// version is the dataset edition, read lazily from the version
	// history table; versionRead guards against re-probing on datasets
	// that have no such table.
	version     string
	versionRead bool

	// hasUsage records whether the modern usage association exists;
	// probed once. Legacy datasets store scope and extent directly on
	// object rows.
	hasUsage    bool
	usageProbed bool

	// Bounded prepared-statement pool keyed by logical operation name.
	stmts  map[string]*preparedStmt
	useSeq int64

	// Strong caches, cleared only on Close.
	objects      map[objKey]any
	descriptions map[objKey]string
	units        map[int]*geodesy.Unit
	axisNames    map[int]axisName
	namespaces   map[int]string
	methods      map[int]*geodesy.Method
	params       map[paramKey]*geodesy.ParameterDescriptor
	warned       map[objKey]bool

	// liveSets counts enumeration handles not yet released by callers.
	liveSets int

	closed bool
}

// New wraps an open connection. The connection is owned by the DataAccess
// until Close.
func New(db *sql.DB, cfg Config) *DataAccess {
	tr := cfg.Translator
	if tr == nil {
		tr = dialect.SQL{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxStmt := cfg.MaxStatements
	if maxStmt <= 0 {
		maxStmt = defaultMaxStatements
	}
	codeSpace := cfg.CodeSpace
	if codeSpace == "" {
		codeSpace = "EPSG"
	}
	authority := cfg.Authority
	if authority == "" {
		authority = "EPSG Geodetic Parameter Dataset"
	}
	type numberer interface{ NumberedPlaceholders() bool }
	numbered := false
	if n, ok := tr.(numberer); ok {
		numbered = n.NumberedPlaceholders()
	}
	return &DataAccess{
		db:           db,
		tr:           tr,
		log:          logger,
		numbered:     numbered,
		codeSpace:    codeSpace,
		authority:    authority,
		maxStmt:      maxStmt,
		stmts:        make(map[string]*preparedStmt),
		objects:      make(map[objKey]any),
		descriptions: make(map[objKey]string),
		units:        make(map[int]*geodesy.Unit),
		axisNames:    make(map[int]axisName),
		namespaces:   make(map[int]string),
		methods:      make(map[int]*geodesy.Method),
		params:       make(map[paramKey]*geodesy.ParameterDescriptor),
		warned:       make(map[objKey]bool),
	}
}

// CodeSpace returns the codespace all resolved identifiers belong to.
func (d *DataAccess) CodeSpace() string { return d.codeSpace }

// Authority returns the citation of the authority publishing the dataset.
func (d *DataAccess) Authority() string { return d.authority }

// translate rewrites generic query text for the target dialect, renumbering
// placeholders when the dialect needs $N style.
func (d *DataAccess) translate(generic string) string {
	q := d.tr.TranslateQuery(generic)
	if !d.numbered {
		return q
	}
	var b strings.Builder
	n := 0
	for i := 0; i < len(q); i++ {
		if q[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		} else {
			b.WriteByte(q[i])
		}
	}
	return b.String()
}

// stmt returns the prepared statement for the logical operation, preparing
// and caching it on first use. Past the cap, the least-recently-used entry
// is closed and evicted.
func (d *DataAccess) stmt(op, generic string) (*sql.Stmt, error) {
	if d.closed {
		return nil, ErrClosed
	}
	d.useSeq++
	if e, ok := d.stmts[op]; ok {
		e.lastUse = d.useSeq
		return e.stmt, nil
	}
	if len(d.stmts) >= d.maxStmt {
		var lruOp string
		var lruUse int64
		for name, e := range d.stmts {
			if lruOp == "" || e.lastUse < lruUse {
				lruOp, lruUse = name, e.lastUse
			}
		}
		d.stmts[lruOp].stmt.Close()
		delete(d.stmts, lruOp)
	}
	stmt, err := d.db.Prepare(d.translate(generic))
	if err != nil {
		return nil, fmt.Errorf("prepare %s: %w", op, err)
	}
	d.stmts[op] = &preparedStmt{stmt: stmt, lastUse: d.useSeq}
	return stmt, nil
}

// query executes the named logical operation through the statement pool.
func (d *DataAccess) query(op, generic string, args ...any) (*sql.Rows, error) {
	stmt, err := d.stmt(op, generic)
	if err != nil {
		return nil, err
	}
	rows, err := stmt.Query(args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rows, nil
}

// Version returns the dataset edition, probing the version history table on
// first call. Datasets without that table yield an empty version.
func (d *DataAccess) Version() string {
	if d.versionRead {
		return d.version
	}
	d.versionRead = true
	if d.closed {
		return ""
	}
	row := d.db.QueryRow(d.translate(
		`SELECT version_number FROM [Version History] ORDER BY version_date DESC, version_history_code DESC`))
	if err := row.Scan(&d.version); err != nil {
		d.version = ""
	}
	return d.version
}

// usageSchema reports whether the dataset carries the modern usage
// association. Probed once per connection.
func (d *DataAccess) usageSchema() bool {
	if d.usageProbed {
		return d.hasUsage
	}
	d.usageProbed = true
	rows, err := d.db.Query(d.translate(`SELECT object_code FROM [Usage] WHERE object_code = -1`))
	if err == nil {
		rows.Close()
		d.hasUsage = true
	}
	return d.hasUsage
}

// warnDeprecated logs the deprecation of (table, code) at most once for the
// life of the resolver, and not at all inside quiet scopes.
func (d *DataAccess) warnDeprecated(rc *resolveContext, table string, code int, replacement string) {
	if rc.quiet {
		return
	}
	key := objKey{table, code}
	if d.warned[key] {
		return
	}
	d.warned[key] = true
	d.log.Warn("deprecated authority code",
		"table", table, "code", code, "replacement", replacement)
}

// Closeable reports whether the resolver can be retired: true only when
// every enumeration handle lent to callers has been released.
func (d *DataAccess) Closeable() bool {
	return d.liveSets == 0
}

// Close releases the statement pool, the caches and the connection. Every
// failure encountered is aggregated into the returned error rather than
// stopping at the first. Closing twice is harmless: resources already
// released are skipped.
func (d *DataAccess) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	var errs []error
	for op, e := range d.stmts {
		if err := e.stmt.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close statement %s: %w", op, err))
		}
	}
	d.stmts = make(map[string]*preparedStmt)
	if d.liveSets > 0 {
		errs = append(errs, fmt.Errorf("%d enumeration handle(s) still held at close", d.liveSets))
		d.liveSets = 0
	}
	d.objects = nil
	d.descriptions = nil
	d.units = nil
	d.axisNames = nil
	d.namespaces = nil
	d.methods = nil
	d.params = nil
	if err := d.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close connection: %w", err))
	}
	return errors.Join(errs...)
}
