package profile

import (
	"context"
	"database/sql"
	"fmt"
)

// maxDeviceID is the largest value representable as a USB vendor/product id.
const maxDeviceID = 0xFFFF

// schema is the SQLite schema for the profiles store. Columns are nullable on
// purpose: a NULL mirrors a missing key in the file format, and the loader
// rejects it the same way.
const schema = `
CREATE TABLE IF NOT EXISTS profiles (
	id    INTEGER PRIMARY KEY AUTOINCREMENT,
	login TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS profile_devices (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	profile_id INTEGER NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
	position   INTEGER NOT NULL DEFAULT 0,
	vendor_id  INTEGER,
	product_id INTEGER,
	serial     TEXT
);

CREATE INDEX IF NOT EXISTS idx_profile_devices_profile
	ON profile_devices(profile_id, position);
`

// SQLiteRepository loads profiles from a SQLite database.
//
// It implements Source: Load produces the same Record shape as the YAML file
// source, so validation and model construction are identical regardless of
// where profiles are stored.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a SQLite-backed profiles source.
// The db parameter should be an open SQLite connection.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// EnsureSchema creates the profiles tables if they do not exist.
func (r *SQLiteRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating profiles schema: %w", err)
	}
	return nil
}

// Load reads all profiles into a Record, users in insertion order and each
// user's devices in position order.
func (r *SQLiteRepository) Load(ctx context.Context) (Record, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, login FROM profiles ORDER BY id`)
	if err != nil {
		return Record{}, fmt.Errorf("querying profiles: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only cursor

	type profileRow struct {
		id    int64
		login string
	}
	var profiles []profileRow
	for rows.Next() {
		var p profileRow
		if err := rows.Scan(&p.id, &p.login); err != nil {
			return Record{}, fmt.Errorf("scanning profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return Record{}, fmt.Errorf("iterating profiles: %w", err)
	}

	// A store with zero rows is still a present (empty) user list, unlike a
	// missing file section. Authenticates nobody.
	rec := Record{Users: make([]UserRecord, 0, len(profiles))}

	for _, p := range profiles {
		devices, err := r.loadDevices(ctx, p.id, p.login)
		if err != nil {
			return Record{}, err
		}
		login := p.login
		rec.Users = append(rec.Users, UserRecord{Login: &login, Devices: devices})
	}

	return rec, nil
}

// loadDevices reads one profile's device entries in position order.
func (r *SQLiteRepository) loadDevices(ctx context.Context, profileID int64, login string) ([]DeviceRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT vendor_id, product_id, serial
		FROM profile_devices
		WHERE profile_id = ?
		ORDER BY position, id`, profileID)
	if err != nil {
		return nil, fmt.Errorf("querying devices for %q: %w", login, err)
	}
	defer rows.Close() //nolint:errcheck // Read-only cursor

	devices := make([]DeviceRecord, 0)
	for rows.Next() {
		var (
			vendor  sql.NullInt64
			product sql.NullInt64
			serial  sql.NullString
		)
		if err := rows.Scan(&vendor, &product, &serial); err != nil {
			return nil, fmt.Errorf("scanning device for %q: %w", login, err)
		}

		var dr DeviceRecord
		if vendor.Valid {
			v, err := toDeviceID(vendor.Int64)
			if err != nil {
				return nil, fmt.Errorf("%w: user %q: vendor id %v", ErrConfigInvalid, login, err)
			}
			dr.VendorID = &v
		}
		if product.Valid {
			p, err := toDeviceID(product.Int64)
			if err != nil {
				return nil, fmt.Errorf("%w: user %q: product id %v", ErrConfigInvalid, login, err)
			}
			dr.ProductID = &p
		}
		if serial.Valid {
			s := serial.String
			dr.Serial = &s
		}
		devices = append(devices, dr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating devices for %q: %w", login, err)
	}

	return devices, nil
}

// toDeviceID range-checks a stored id against the 16-bit USB id space.
func toDeviceID(v int64) (uint16, error) {
	if v < 0 || v > maxDeviceID {
		return 0, fmt.Errorf("%d out of range", v)
	}
	return uint16(v), nil
}
