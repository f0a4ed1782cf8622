package registry

import (
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// fixtureSchema mirrors the SQLite distribution's table shapes, reduced to
// the columns the resolver reads. The CRS table deliberately has no primary
// key so the duplicate-row tests can insert conflicting definitions.
const fixtureSchema = `
CREATE TABLE epsg_versionhistory (
	version_history_code INTEGER,
	version_date         TEXT,
	version_number       TEXT
);
CREATE TABLE epsg_namingsystem (
	naming_system_code INTEGER,
	naming_system_name TEXT
);
CREATE TABLE epsg_alias (
	alias_code         INTEGER,
	object_table_name  TEXT,
	object_code        INTEGER,
	naming_system_code INTEGER,
	alias              TEXT
);
CREATE TABLE epsg_deprecation (
	deprecation_id     INTEGER,
	deprecation_date   TEXT,
	object_table_name  TEXT,
	object_code        INTEGER,
	replaced_by        INTEGER,
	deprecation_reason TEXT
);
CREATE TABLE epsg_supersession (
	supersession_id    INTEGER,
	object_table_name  TEXT,
	object_code        INTEGER,
	superseded_by      INTEGER,
	supersession_type  TEXT,
	supersession_year  INTEGER
);
CREATE TABLE epsg_unitofmeasure (
	uom_code          INTEGER,
	unit_of_meas_name TEXT,
	unit_of_meas_type TEXT,
	target_uom_code   INTEGER,
	factor_b          REAL,
	factor_c          REAL,
	remarks           TEXT,
	deprecated        INTEGER DEFAULT 0
);
CREATE TABLE epsg_ellipsoid (
	ellipsoid_code  INTEGER,
	ellipsoid_name  TEXT,
	semi_major_axis REAL,
	uom_code        INTEGER,
	inv_flattening  REAL,
	semi_minor_axis REAL,
	remarks         TEXT,
	deprecated      INTEGER DEFAULT 0
);
CREATE TABLE epsg_primemeridian (
	prime_meridian_code INTEGER,
	prime_meridian_name TEXT,
	greenwich_longitude REAL,
	uom_code            INTEGER,
	remarks             TEXT,
	deprecated          INTEGER DEFAULT 0
);
CREATE TABLE epsg_datum (
	datum_code            INTEGER,
	datum_name            TEXT,
	datum_type            TEXT,
	origin_description    TEXT,
	realization_epoch     TEXT,
	ellipsoid_code        INTEGER,
	prime_meridian_code   INTEGER,
	frame_reference_epoch REAL,
	ensemble_accuracy     REAL,
	remarks               TEXT,
	deprecated            INTEGER DEFAULT 0
);
CREATE TABLE epsg_datumensemblemember (
	datum_ensemble_code INTEGER,
	datum_code          INTEGER,
	datum_sequence      INTEGER
);
CREATE TABLE epsg_coordinateaxisname (
	coord_axis_name_code INTEGER,
	coord_axis_name      TEXT,
	description          TEXT
);
CREATE TABLE epsg_coordinateaxis (
	coord_axis_code         INTEGER,
	coord_sys_code          INTEGER,
	coord_axis_name_code    INTEGER,
	coord_axis_orientation  TEXT,
	coord_axis_abbreviation TEXT,
	uom_code                INTEGER,
	coord_axis_order        INTEGER
);
CREATE TABLE epsg_coordinatesystem (
	coord_sys_code INTEGER,
	coord_sys_name TEXT,
	coord_sys_type TEXT,
	dimension      INTEGER,
	remarks        TEXT,
	deprecated     INTEGER DEFAULT 0
);
CREATE TABLE epsg_coordinatereferencesystem (
	coord_ref_sys_code   INTEGER,
	coord_ref_sys_name   TEXT,
	coord_ref_sys_kind   TEXT,
	coord_sys_code       INTEGER,
	datum_code           INTEGER,
	base_crs_code        INTEGER,
	projection_conv_code INTEGER,
	cmpd_horizcrs_code   INTEGER,
	cmpd_vertcrs_code    INTEGER,
	remarks              TEXT,
	deprecated           INTEGER DEFAULT 0
);
CREATE TABLE epsg_coordoperationmethod (
	coord_op_method_code INTEGER,
	coord_op_method_name TEXT,
	reverse_op           INTEGER,
	formula              TEXT,
	remarks              TEXT,
	deprecated           INTEGER DEFAULT 0
);
CREATE TABLE epsg_coordoperationparam (
	parameter_code INTEGER,
	parameter_name TEXT,
	description    TEXT,
	deprecated     INTEGER DEFAULT 0
);
CREATE TABLE epsg_coordoperationparamusage (
	coord_op_method_code INTEGER,
	parameter_code       INTEGER,
	sort_order           INTEGER,
	param_sign_reversal  TEXT
);
CREATE TABLE epsg_coordoperationparamvalue (
	coord_op_code        INTEGER,
	coord_op_method_code INTEGER,
	parameter_code       INTEGER,
	parameter_value      REAL,
	param_value_file_ref TEXT,
	uom_code             INTEGER
);
CREATE TABLE epsg_coordoperation (
	coord_op_code        INTEGER,
	coord_op_name        TEXT,
	coord_op_type        TEXT,
	source_crs_code      INTEGER,
	target_crs_code      INTEGER,
	coord_op_method_code INTEGER,
	coord_op_accuracy    REAL,
	coord_op_version     TEXT,
	remarks              TEXT,
	deprecated           INTEGER DEFAULT 0
);
CREATE TABLE epsg_coordoperationpath (
	concat_operation_code INTEGER,
	single_operation_code INTEGER,
	op_path_step          INTEGER
);
CREATE TABLE epsg_extent (
	extent_code              INTEGER,
	extent_name              TEXT,
	extent_description       TEXT,
	bbox_south_bound_lat     REAL,
	bbox_west_bound_lon      REAL,
	bbox_north_bound_lat     REAL,
	bbox_east_bound_lon      REAL,
	vertical_extent_min      REAL,
	vertical_extent_max      REAL,
	vertical_extent_crs_code INTEGER,
	temporal_extent_begin    TEXT,
	temporal_extent_end      TEXT
);
CREATE TABLE epsg_scope (
	scope_code INTEGER,
	scope      TEXT
);
CREATE TABLE epsg_usage (
	usage_code        INTEGER,
	object_table_name TEXT,
	object_code       INTEGER,
	extent_code       INTEGER,
	scope_code        INTEGER
);
`

// fixtureData is a small but structurally faithful slice of the dataset: the
// WGS 84 family, an ensemble, a projected zone with its defining conversion,
// deprecated entries with replacements, a supersession chain, and the
// synthetic rows the edge-case tests need (code range 60000+).
const fixtureData = `
INSERT INTO epsg_versionhistory VALUES (1, '2024-09-02', '11.016');

INSERT INTO epsg_namingsystem VALUES (7302, 'EPSG abbreviation');

INSERT INTO epsg_unitofmeasure VALUES (9001, 'metre', 'length', 9001, 1, 1, NULL, 0);
INSERT INTO epsg_unitofmeasure VALUES (9101, 'radian', 'angle', 9101, 1, 1, NULL, 0);
INSERT INTO epsg_unitofmeasure VALUES (9102, 'degree', 'angle', 9101, 3.14159265358979, 180, NULL, 0);
INSERT INTO epsg_unitofmeasure VALUES (9122, 'degree (supplier to define representation)', 'angle', 9101, 3.14159265358979, 180, NULL, 0);
INSERT INTO epsg_unitofmeasure VALUES (9201, 'unity', 'scale', 9201, 1, 1, NULL, 0);
INSERT INTO epsg_unitofmeasure VALUES (9105, 'grad', 'angle', 9101, 3.14159265358979, 200, NULL, 0);
INSERT INTO epsg_unitofmeasure VALUES (9110, 'sexagesimal DMS', 'angle', NULL, NULL, NULL, 'Special encoding.', 0);
INSERT INTO epsg_unitofmeasure VALUES (1025, 'millimetre', 'length', 9001, 1, 1000, NULL, 0);
INSERT INTO epsg_unitofmeasure VALUES (9062, 'chain (obsolete)', 'length', 9001, 20.1168, 1, NULL, 1);
INSERT INTO epsg_unitofmeasure VALUES (60091, 'conflicting fathom', 'length', 9001, 1.828, 1, NULL, 1);
INSERT INTO epsg_unitofmeasure VALUES (60091, 'conflicting fathom', 'length', 9001, 1.829, 1, NULL, 1);

INSERT INTO epsg_ellipsoid VALUES (7030, 'WGS 84', 6378137, 9001, 298.257223563, NULL, NULL, 0);
INSERT INTO epsg_ellipsoid VALUES (7019, 'GRS 1980', 6378137, 9001, 298.257222101, NULL, NULL, 0);
INSERT INTO epsg_ellipsoid VALUES (7011, 'Clarke 1880 (IGN)', 6378249.2, 9001, NULL, 6356515, NULL, 0);
INSERT INTO epsg_ellipsoid VALUES (7035, 'Sphere', 6371000, 9001, NULL, 6371000, NULL, 0);
INSERT INTO epsg_ellipsoid VALUES (60090, 'Dup ellipsoid', 6378137, 9001, 298.3, NULL, 'first', 0);
INSERT INTO epsg_ellipsoid VALUES (60090, 'Dup ellipsoid', 6378136, 9001, 298.3, NULL, 'second', 0);

INSERT INTO epsg_primemeridian VALUES (8901, 'Greenwich', 0, 9102, NULL, 0);
INSERT INTO epsg_primemeridian VALUES (8903, 'Paris', 2.5969213, 9105, NULL, 0);
INSERT INTO epsg_primemeridian VALUES (60003, 'Paris', 2.59692, 9105, NULL, 0);

INSERT INTO epsg_datum VALUES (6326, 'World Geodetic System 1984', 'geodetic', NULL, '1984', 7030, 8901, NULL, NULL, NULL, 0);
INSERT INTO epsg_datum VALUES (1178, 'European Terrestrial Reference Frame 1989', 'geodetic', NULL, '1989', 7019, 8901, NULL, NULL, NULL, 0);
INSERT INTO epsg_datum VALUES (1179, 'European Terrestrial Reference Frame 1990', 'geodetic', NULL, '1990', 7019, 8901, NULL, NULL, NULL, 0);
INSERT INTO epsg_datum VALUES (6258, 'European Terrestrial Reference System 1989', 'ensemble', NULL, NULL, NULL, NULL, NULL, 0.1, NULL, 0);
INSERT INTO epsg_datum VALUES (5100, 'Mean Sea Level', 'vertical', NULL, NULL, NULL, NULL, NULL, NULL, NULL, 0);
INSERT INTO epsg_datum VALUES (1200, 'Unix epoch', 'temporal', '1970-01-01', NULL, NULL, NULL, NULL, NULL, NULL, 0);
INSERT INTO epsg_datum VALUES (6275, 'Nouvelle Triangulation Francaise', 'geodetic', NULL, NULL, 7011, 8903, NULL, NULL, NULL, 0);

INSERT INTO epsg_datumensemblemember VALUES (6258, 1178, 1);
INSERT INTO epsg_datumensemblemember VALUES (6258, 1179, 2);

INSERT INTO epsg_alias VALUES (1, 'epsg_datum', 6326, 7302, 'WGS 84');
INSERT INTO epsg_alias VALUES (2, 'epsg_datum', 6275, 7302, 'Nouvelle Triangulation Française');
INSERT INTO epsg_alias VALUES (3, 'epsg_coordinatereferencesystem', 4258, 7302, 'European Terrestrial Reference System 1989');

INSERT INTO epsg_coordinateaxisname VALUES (9901, 'Geodetic latitude', NULL);
INSERT INTO epsg_coordinateaxisname VALUES (9902, 'Geodetic longitude', NULL);
INSERT INTO epsg_coordinateaxisname VALUES (9903, 'Ellipsoidal height', NULL);
INSERT INTO epsg_coordinateaxisname VALUES (9904, 'Gravity-related height', NULL);
INSERT INTO epsg_coordinateaxisname VALUES (9906, 'Easting', NULL);
INSERT INTO epsg_coordinateaxisname VALUES (9907, 'Northing', NULL);
INSERT INTO epsg_coordinateaxisname VALUES (9908, 'Geocentric X', NULL);
INSERT INTO epsg_coordinateaxisname VALUES (9909, 'Geocentric Y', NULL);
INSERT INTO epsg_coordinateaxisname VALUES (9910, 'Geocentric Z', NULL);
INSERT INTO epsg_coordinateaxisname VALUES (9950, 'Time', NULL);

INSERT INTO epsg_coordinatesystem VALUES (6422, 'Ellipsoidal 2D CS. Axes: latitude, longitude. UoM: degree', 'ellipsoidal', 2, NULL, 0);
INSERT INTO epsg_coordinatesystem VALUES (6423, 'Ellipsoidal 3D CS. Axes: latitude, longitude, height.', 'ellipsoidal', 3, NULL, 0);
INSERT INTO epsg_coordinatesystem VALUES (6405, 'Ellipsoidal 2D CS. Axes: longitude, latitude (legacy).', 'ellipsoidal', 2, NULL, 1);
INSERT INTO epsg_coordinatesystem VALUES (4400, 'Cartesian 2D CS. Axes: easting, northing.', 'Cartesian', 2, NULL, 0);
INSERT INTO epsg_coordinatesystem VALUES (6499, 'Vertical CS. Axis: height (up).', 'vertical', 1, NULL, 0);
INSERT INTO epsg_coordinatesystem VALUES (6500, 'Earth centred Cartesian 3D CS.', 'Cartesian', 3, NULL, 0);
INSERT INTO epsg_coordinatesystem VALUES (6510, 'Time 1D CS. Axis: time (future).', 'time', 1, NULL, 0);

INSERT INTO epsg_coordinateaxis VALUES (106, 6422, 9901, 'north', 'Lat', 9122, 1);
INSERT INTO epsg_coordinateaxis VALUES (107, 6422, 9902, 'east', 'Lon', 9122, 2);
INSERT INTO epsg_coordinateaxis VALUES (108, 6423, 9901, 'north', 'Lat', 9122, 1);
INSERT INTO epsg_coordinateaxis VALUES (109, 6423, 9902, 'east', 'Lon', 9122, 2);
INSERT INTO epsg_coordinateaxis VALUES (110, 6423, 9903, 'up', 'h', 9001, 3);
INSERT INTO epsg_coordinateaxis VALUES (111, 6405, 9902, 'east', 'Lon', 9122, 1);
INSERT INTO epsg_coordinateaxis VALUES (112, 6405, 9901, 'north', 'Lat', 9122, 2);
INSERT INTO epsg_coordinateaxis VALUES (1, 4400, 9906, 'east', 'E', 9001, 1);
INSERT INTO epsg_coordinateaxis VALUES (2, 4400, 9907, 'north', 'N', 9001, 2);
INSERT INTO epsg_coordinateaxis VALUES (114, 6499, 9904, 'up', 'H', 9001, 1);
INSERT INTO epsg_coordinateaxis VALUES (115, 6500, 9908, 'geocentricX', 'X', 9001, 1);
INSERT INTO epsg_coordinateaxis VALUES (116, 6500, 9909, 'geocentricY', 'Y', 9001, 2);
INSERT INTO epsg_coordinateaxis VALUES (117, 6500, 9910, 'geocentricZ', 'Z', 9001, 3);
INSERT INTO epsg_coordinateaxis VALUES (118, 6510, 9950, 'future', 't', 1040, 1);

INSERT INTO epsg_coordinatereferencesystem VALUES (4326, 'WGS 84', 'geographic 2D', 6422, 6326, NULL, NULL, NULL, NULL, NULL, 0);
INSERT INTO epsg_coordinatereferencesystem VALUES (4979, 'WGS 84 (3D)', 'geographic 3D', 6423, NULL, 4326, NULL, NULL, NULL, NULL, 0);
INSERT INTO epsg_coordinatereferencesystem VALUES (4978, 'WGS 84 (geocentric)', 'geocentric', 6500, 6326, NULL, NULL, NULL, NULL, NULL, 0);
INSERT INTO epsg_coordinatereferencesystem VALUES (4258, 'ETRS89', 'geographic 2D', 6422, 6258, NULL, NULL, NULL, NULL, NULL, 0);
INSERT INTO epsg_coordinatereferencesystem VALUES (4275, 'NTF', 'geographic 2D', 6422, 6275, NULL, NULL, NULL, NULL, NULL, 0);
INSERT INTO epsg_coordinatereferencesystem VALUES (32631, 'WGS 84 / UTM zone 31N', 'projected', 4400, NULL, 4326, 16031, NULL, NULL, NULL, 0);
INSERT INTO epsg_coordinatereferencesystem VALUES (5714, 'MSL height', 'vertical', 6499, 5100, NULL, NULL, NULL, NULL, NULL, 0);
INSERT INTO epsg_coordinatereferencesystem VALUES (9705, 'WGS 84 + MSL height', 'compound', NULL, NULL, NULL, NULL, 4326, 5714, NULL, 0);
INSERT INTO epsg_coordinatereferencesystem VALUES (9800, 'Unix time', 'temporal', 6510, 1200, NULL, NULL, NULL, NULL, NULL, 0);
INSERT INTO epsg_coordinatereferencesystem VALUES (4120, 'Greek', 'geographic 2D', 6405, 6326, NULL, NULL, NULL, NULL, NULL, 1);
INSERT INTO epsg_coordinatereferencesystem VALUES (4121, 'GGRS87', 'geographic 2D', 6422, 6326, NULL, NULL, NULL, NULL, NULL, 0);
INSERT INTO epsg_coordinatereferencesystem VALUES (2100, 'GGRS87 / Greek Grid', 'projected', 4400, NULL, 4120, 16031, NULL, NULL, NULL, 0);
INSERT INTO epsg_coordinatereferencesystem VALUES (60001, 'Loop A', 'geographic 3D', 6423, NULL, 60002, NULL, NULL, NULL, NULL, 0);
INSERT INTO epsg_coordinatereferencesystem VALUES (60002, 'Loop B', 'geographic 3D', 6423, NULL, 60001, NULL, NULL, NULL, NULL, 0);
INSERT INTO epsg_coordinatereferencesystem VALUES (60050, 'Dup equal', 'geographic 2D', 6422, 6326, NULL, NULL, NULL, NULL, NULL, 0);
INSERT INTO epsg_coordinatereferencesystem VALUES (60050, 'Dup equal', 'geographic 2D', 6422, 6326, NULL, NULL, NULL, NULL, NULL, 0);
INSERT INTO epsg_coordinatereferencesystem VALUES (60060, 'Derived example', 'derived', 6422, NULL, 4326, NULL, NULL, NULL, NULL, 1);
INSERT INTO epsg_coordinatereferencesystem VALUES (60051, 'Dup conflict', 'geographic 2D', 6422, 6326, NULL, NULL, NULL, NULL, 'first', 0);
INSERT INTO epsg_coordinatereferencesystem VALUES (60051, 'Dup conflict', 'geographic 2D', 6422, 6326, NULL, NULL, NULL, NULL, 'second', 0);

INSERT INTO epsg_deprecation VALUES (1, '2002-11-29', 'epsg_coordinatereferencesystem', 4120, 4121, 'Axis order reversed');

INSERT INTO epsg_coordoperationmethod VALUES (9807, 'Transverse Mercator', 1, 'See Guidance Note 7-2.', NULL, 0);
INSERT INTO epsg_coordoperationmethod VALUES (9808, 'Transverse Mercator (South Orientated)', 1, NULL, NULL, 0);
INSERT INTO epsg_coordoperationmethod VALUES (9801, 'Lambert Conic Conformal (1SP)', 1, NULL, NULL, 0);
INSERT INTO epsg_coordoperationmethod VALUES (9603, 'Geocentric translations (geog2D domain)', 1, NULL, NULL, 0);
INSERT INTO epsg_coordoperationmethod VALUES (9615, 'NTv2', 1, NULL, NULL, 0);
INSERT INTO epsg_coordoperationmethod VALUES (60201, 'Zone picker', 0, NULL, NULL, 0);

INSERT INTO epsg_coordoperationparam VALUES (8801, 'Latitude of natural origin', NULL, 0);
INSERT INTO epsg_coordoperationparam VALUES (8802, 'Longitude of natural origin', NULL, 0);
INSERT INTO epsg_coordoperationparam VALUES (8805, 'Scale factor at natural origin', NULL, 0);
INSERT INTO epsg_coordoperationparam VALUES (8806, 'False easting', NULL, 0);
INSERT INTO epsg_coordoperationparam VALUES (8807, 'False northing', NULL, 0);
INSERT INTO epsg_coordoperationparam VALUES (8605, 'X-axis translation', NULL, 0);
INSERT INTO epsg_coordoperationparam VALUES (8606, 'Y-axis translation', NULL, 0);
INSERT INTO epsg_coordoperationparam VALUES (8607, 'Z-axis translation', NULL, 0);
INSERT INTO epsg_coordoperationparam VALUES (8656, 'Latitude and longitude difference file', NULL, 0);
INSERT INTO epsg_coordoperationparam VALUES (60202, 'Zone number', NULL, 0);

INSERT INTO epsg_coordoperationparamusage VALUES (9807, 8801, 1, 'No');
INSERT INTO epsg_coordoperationparamusage VALUES (9807, 8802, 2, 'No');
INSERT INTO epsg_coordoperationparamusage VALUES (9807, 8805, 3, 'No');
INSERT INTO epsg_coordoperationparamusage VALUES (9807, 8806, 4, 'No');
INSERT INTO epsg_coordoperationparamusage VALUES (9807, 8807, 5, 'No');
INSERT INTO epsg_coordoperationparamusage VALUES (9808, 8801, 1, 'No');
INSERT INTO epsg_coordoperationparamusage VALUES (9808, 8802, 2, 'No');
INSERT INTO epsg_coordoperationparamusage VALUES (9808, 8805, 3, 'No');
INSERT INTO epsg_coordoperationparamusage VALUES (9808, 8806, 4, 'No');
INSERT INTO epsg_coordoperationparamusage VALUES (9808, 8807, 5, 'No');
INSERT INTO epsg_coordoperationparamusage VALUES (9801, 8801, 1, 'No');
INSERT INTO epsg_coordoperationparamusage VALUES (9801, 8802, 2, 'No');
INSERT INTO epsg_coordoperationparamusage VALUES (9801, 8805, 3, 'No');
INSERT INTO epsg_coordoperationparamusage VALUES (9801, 8806, 4, 'No');
INSERT INTO epsg_coordoperationparamusage VALUES (9801, 8807, 5, 'No');
INSERT INTO epsg_coordoperationparamusage VALUES (9603, 8605, 1, 'Yes');
INSERT INTO epsg_coordoperationparamusage VALUES (9603, 8606, 2, 'Yes');
INSERT INTO epsg_coordoperationparamusage VALUES (9603, 8607, 3, 'Yes');
INSERT INTO epsg_coordoperationparamusage VALUES (9615, 8656, 1, 'No');
INSERT INTO epsg_coordoperationparamusage VALUES (60201, 60202, 1, 'No');

INSERT INTO epsg_coordoperation VALUES (16031, 'UTM zone 31N', 'conversion', NULL, NULL, 9807, NULL, NULL, NULL, 0);
INSERT INTO epsg_coordoperation VALUES (17529, 'South African Survey Grid zone 29', 'conversion', NULL, NULL, 9808, NULL, NULL, NULL, 0);
INSERT INTO epsg_coordoperation VALUES (19905, 'Lambert zone I', 'conversion', NULL, NULL, 9801, NULL, NULL, NULL, 0);
INSERT INTO epsg_coordoperation VALUES (1149, 'ETRS89 to WGS 84 (1)', 'transformation', 4258, 4326, 9603, 1.0, 'OGP-Eur', NULL, 0);
INSERT INTO epsg_coordoperation VALUES (15001, 'ETRS89 to WGS 84 (old)', 'transformation', 4258, 4326, 9603, 2.0, NULL, NULL, 0);
INSERT INTO epsg_coordoperation VALUES (15002, 'ETRS89 to WGS 84 (new)', 'transformation', 4258, 4326, 9603, 1.5, NULL, NULL, 0);
INSERT INTO epsg_coordoperation VALUES (15003, 'ETRS89 to WGS 84 (bad)', 'transformation', 4258, 4326, 9603, 10.0, NULL, NULL, 1);
INSERT INTO epsg_coordoperation VALUES (15010, 'NTF to WGS 84 (old)', 'transformation', 4275, 4326, 9603, 5.0, NULL, NULL, 1);
INSERT INTO epsg_coordoperation VALUES (1112, 'Greek to WGS 84 (NTv2)', 'transformation', 4120, 4326, 9615, 0.1, NULL, NULL, 0);
INSERT INTO epsg_coordoperation VALUES (60020, 'ETRS89 to WGS 84 (concat)', 'concatenated operation', 4258, 4326, NULL, NULL, NULL, NULL, 0);
INSERT INTO epsg_coordoperation VALUES (60030, 'Bad angle', 'conversion', NULL, NULL, 9807, NULL, NULL, NULL, 0);
INSERT INTO epsg_coordoperation VALUES (60203, 'Zone pick 31', 'conversion', NULL, NULL, 60201, NULL, NULL, NULL, 0);

INSERT INTO epsg_coordoperationpath VALUES (60020, 1149, 1);
INSERT INTO epsg_coordoperationpath VALUES (60020, 15002, 2);

INSERT INTO epsg_coordoperationparamvalue VALUES (16031, 9807, 8801, 0, NULL, 9102);
INSERT INTO epsg_coordoperationparamvalue VALUES (16031, 9807, 8802, 3, NULL, 9102);
INSERT INTO epsg_coordoperationparamvalue VALUES (16031, 9807, 8805, 0.9996, NULL, 9201);
INSERT INTO epsg_coordoperationparamvalue VALUES (16031, 9807, 8806, 500000, NULL, 9001);
INSERT INTO epsg_coordoperationparamvalue VALUES (16031, 9807, 8807, 0, NULL, 9001);
INSERT INTO epsg_coordoperationparamvalue VALUES (17529, 9808, 8801, 0, NULL, 9102);
INSERT INTO epsg_coordoperationparamvalue VALUES (17529, 9808, 8802, 29, NULL, 9102);
INSERT INTO epsg_coordoperationparamvalue VALUES (17529, 9808, 8805, 1, NULL, 9201);
INSERT INTO epsg_coordoperationparamvalue VALUES (17529, 9808, 8806, 0, NULL, 9001);
INSERT INTO epsg_coordoperationparamvalue VALUES (17529, 9808, 8807, 0, NULL, 9001);
INSERT INTO epsg_coordoperationparamvalue VALUES (19905, 9801, 8801, 55, NULL, 9105);
INSERT INTO epsg_coordoperationparamvalue VALUES (19905, 9801, 8802, 0, NULL, 9105);
INSERT INTO epsg_coordoperationparamvalue VALUES (19905, 9801, 8805, 0.999877341, NULL, 9201);
INSERT INTO epsg_coordoperationparamvalue VALUES (19905, 9801, 8806, 600000, NULL, 9001);
INSERT INTO epsg_coordoperationparamvalue VALUES (19905, 9801, 8807, 200000, NULL, 9001);
INSERT INTO epsg_coordoperationparamvalue VALUES (1149, 9603, 8605, 0, NULL, 9001);
INSERT INTO epsg_coordoperationparamvalue VALUES (1149, 9603, 8606, 0, NULL, 9001);
INSERT INTO epsg_coordoperationparamvalue VALUES (1149, 9603, 8607, 0, NULL, 9001);
INSERT INTO epsg_coordoperationparamvalue VALUES (15001, 9603, 8605, 0, NULL, 9001);
INSERT INTO epsg_coordoperationparamvalue VALUES (15001, 9603, 8606, 0, NULL, 9001);
INSERT INTO epsg_coordoperationparamvalue VALUES (15001, 9603, 8607, 0, NULL, 9001);
INSERT INTO epsg_coordoperationparamvalue VALUES (15002, 9603, 8605, 0, NULL, 9001);
INSERT INTO epsg_coordoperationparamvalue VALUES (15002, 9603, 8606, 0, NULL, 9001);
INSERT INTO epsg_coordoperationparamvalue VALUES (15002, 9603, 8607, 0, NULL, 9001);
INSERT INTO epsg_coordoperationparamvalue VALUES (15010, 9603, 8605, -168, NULL, 9001);
INSERT INTO epsg_coordoperationparamvalue VALUES (15010, 9603, 8606, -60, NULL, 9001);
INSERT INTO epsg_coordoperationparamvalue VALUES (15010, 9603, 8607, 320, NULL, 9001);
INSERT INTO epsg_coordoperationparamvalue VALUES (1112, 9615, 8656, NULL, 'greek.gsb', NULL);
INSERT INTO epsg_coordoperationparamvalue VALUES (60030, 9807, 8801, 500, NULL, 9102);
INSERT INTO epsg_coordoperationparamvalue VALUES (60203, 60201, 60202, 31, NULL, NULL);

INSERT INTO epsg_supersession VALUES (1, 'epsg_coordoperation', 15001, 15002, 'Supersession', 2005);
INSERT INTO epsg_supersession VALUES (2, 'epsg_coordoperation', 60101, 60102, 'Supersession', 2001);
INSERT INTO epsg_supersession VALUES (3, 'epsg_coordoperation', 60102, 60101, 'Supersession', 2002);

INSERT INTO epsg_scope VALUES (1183, 'Geodesy.');
INSERT INTO epsg_scope VALUES (1024, 'Not known.');

INSERT INTO epsg_extent VALUES (1262, 'World', 'World.', -90, -180, 90, 180, NULL, NULL, NULL, NULL, NULL);
INSERT INTO epsg_extent VALUES (1306, 'World vertical', 'World vertical domain.', NULL, NULL, NULL, NULL, -10, 10, 5714, NULL, NULL);
INSERT INTO epsg_extent VALUES (60040, 'Modern era', 'Since 2000.', NULL, NULL, NULL, NULL, NULL, NULL, NULL, '2000-01-01', NULL);

INSERT INTO epsg_usage VALUES (1, 'epsg_coordinatereferencesystem', 4326, 1262, 1183);
INSERT INTO epsg_usage VALUES (2, 'epsg_coordoperation', 1149, 1306, 1183);
INSERT INTO epsg_usage VALUES (3, 'epsg_datum', 6326, 1262, 1183);
INSERT INTO epsg_usage VALUES (4, 'epsg_coordinatereferencesystem', 4258, 1262, 1183);
`

// legacySchema models the pre-usage editions: no usage association, scope
// text and extent code stored directly on the object rows.
const legacySchema = `
CREATE TABLE epsg_alias (
	alias_code         INTEGER,
	object_table_name  TEXT,
	object_code        INTEGER,
	naming_system_code INTEGER,
	alias              TEXT
);
CREATE TABLE epsg_unitofmeasure (
	uom_code          INTEGER,
	unit_of_meas_name TEXT,
	unit_of_meas_type TEXT,
	target_uom_code   INTEGER,
	factor_b          REAL,
	factor_c          REAL,
	remarks           TEXT,
	deprecated        INTEGER DEFAULT 0
);
CREATE TABLE epsg_ellipsoid (
	ellipsoid_code  INTEGER,
	ellipsoid_name  TEXT,
	semi_major_axis REAL,
	uom_code        INTEGER,
	inv_flattening  REAL,
	semi_minor_axis REAL,
	remarks         TEXT,
	deprecated      INTEGER DEFAULT 0
);
CREATE TABLE epsg_primemeridian (
	prime_meridian_code INTEGER,
	prime_meridian_name TEXT,
	greenwich_longitude REAL,
	uom_code            INTEGER,
	remarks             TEXT,
	deprecated          INTEGER DEFAULT 0
);
CREATE TABLE epsg_datum (
	datum_code            INTEGER,
	datum_name            TEXT,
	datum_type            TEXT,
	origin_description    TEXT,
	realization_epoch     TEXT,
	ellipsoid_code        INTEGER,
	prime_meridian_code   INTEGER,
	frame_reference_epoch REAL,
	ensemble_accuracy     REAL,
	remarks               TEXT,
	deprecated            INTEGER DEFAULT 0,
	datum_scope           TEXT,
	area_of_use_code      INTEGER
);
CREATE TABLE epsg_coordinateaxisname (
	coord_axis_name_code INTEGER,
	coord_axis_name      TEXT,
	description          TEXT
);
CREATE TABLE epsg_coordinateaxis (
	coord_axis_code         INTEGER,
	coord_sys_code          INTEGER,
	coord_axis_name_code    INTEGER,
	coord_axis_orientation  TEXT,
	coord_axis_abbreviation TEXT,
	uom_code                INTEGER,
	coord_axis_order        INTEGER
);
CREATE TABLE epsg_coordinatesystem (
	coord_sys_code INTEGER,
	coord_sys_name TEXT,
	coord_sys_type TEXT,
	dimension      INTEGER,
	remarks        TEXT,
	deprecated     INTEGER DEFAULT 0
);
CREATE TABLE epsg_coordinatereferencesystem (
	coord_ref_sys_code   INTEGER,
	coord_ref_sys_name   TEXT,
	coord_ref_sys_kind   TEXT,
	coord_sys_code       INTEGER,
	datum_code           INTEGER,
	base_crs_code        INTEGER,
	projection_conv_code INTEGER,
	cmpd_horizcrs_code   INTEGER,
	cmpd_vertcrs_code    INTEGER,
	remarks              TEXT,
	deprecated           INTEGER DEFAULT 0,
	crs_scope            TEXT,
	area_of_use_code     INTEGER
);
CREATE TABLE epsg_extent (
	extent_code              INTEGER,
	extent_name              TEXT,
	extent_description       TEXT,
	bbox_south_bound_lat     REAL,
	bbox_west_bound_lon      REAL,
	bbox_north_bound_lat     REAL,
	bbox_east_bound_lon      REAL,
	vertical_extent_min      REAL,
	vertical_extent_max      REAL,
	vertical_extent_crs_code INTEGER,
	temporal_extent_begin    TEXT,
	temporal_extent_end      TEXT
);
`

const legacyData = `
INSERT INTO epsg_ellipsoid VALUES (7030, 'WGS 84', 6378137, 9001, 298.257223563, NULL, NULL, 0);
INSERT INTO epsg_primemeridian VALUES (8901, 'Greenwich', 0, 9102, NULL, 0);
INSERT INTO epsg_datum VALUES (6326, 'World Geodetic System 1984', 'geodetic', NULL, '1984', 7030, 8901, NULL, NULL, NULL, 0, 'Satellite navigation.', 1262);
INSERT INTO epsg_coordinateaxisname VALUES (9901, 'Geodetic latitude', NULL);
INSERT INTO epsg_coordinateaxisname VALUES (9902, 'Geodetic longitude', NULL);
INSERT INTO epsg_coordinatesystem VALUES (6422, 'Ellipsoidal 2D CS.', 'ellipsoidal', 2, NULL, 0);
INSERT INTO epsg_coordinateaxis VALUES (106, 6422, 9901, 'north', 'Lat', 9122, 1);
INSERT INTO epsg_coordinateaxis VALUES (107, 6422, 9902, 'east', 'Lon', 9122, 2);
INSERT INTO epsg_coordinatereferencesystem VALUES (4326, 'WGS 84', 'geographic 2D', 6422, 6326, NULL, NULL, NULL, NULL, NULL, 0, 'Geodesy.', 1262);
INSERT INTO epsg_extent VALUES (1262, 'World', 'World.', -90, -180, 90, 180, NULL, NULL, NULL, NULL, NULL);
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openFixture(t *testing.T, schema, data string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	_, err = db.Exec(schema)
	require.NoError(t, err)
	_, err = db.Exec(data)
	require.NoError(t, err)
	return db
}

func newTestAccess(t *testing.T) *DataAccess {
	t.Helper()
	d := New(openFixture(t, fixtureSchema, fixtureData), Config{Logger: discardLogger()})
	t.Cleanup(func() { d.Close() })
	return d
}

func newLegacyAccess(t *testing.T) *DataAccess {
	t.Helper()
	d := New(openFixture(t, legacySchema, legacyData), Config{Logger: discardLogger()})
	t.Cleanup(func() { d.Close() })
	return d
}
