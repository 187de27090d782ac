package soiltest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/agrotech-lab/soiltrack/internal/model/entities"
)

// ErrNotFound is returned when a test id does not exist in the store.
var ErrNotFound = errors.New("soil test not found")

// Store persists soil test records in a single SQLite table. Identifier
// assignment is the store's responsibility, never the engine's.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = "soil_tests.db"
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS soil_tests (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		location TEXT NOT NULL,
		latitude REAL,
		longitude REAL,
		ph REAL NOT NULL,
		nitrogen REAL NOT NULL,
		phosphorus REAL NOT NULL,
		potassium REAL NOT NULL,
		notes TEXT,
		test_date TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return nil, fmt.Errorf("create soil_tests table: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// Create inserts a new record and returns its assigned id.
func (s *Store) Create(ctx context.Context, t *entities.SoilTest) (int64, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO soil_tests
		(location, latitude, longitude, ph, nitrogen, phosphorus, potassium, notes, test_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Location, t.Latitude, t.Longitude, t.PH, t.Nitrogen, t.Phosphorus, t.Potassium, t.Notes, t.TestDate)
	if err != nil {
		return 0, fmt.Errorf("insert soil test: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	t.ID = id
	return id, nil
}

const selectColumns = `id, location, latitude, longitude, ph, nitrogen, phosphorus, potassium, notes, test_date`

// GetByID fetches a single record; ErrNotFound when the id is unknown.
func (s *Store) GetByID(ctx context.Context, id int64) (*entities.SoilTest, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM soil_tests WHERE id = ?`, id)
	t, err := scanTest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select soil test %d: %w", id, err)
	}
	return t, nil
}

// List returns all records, newest test date first (id breaks ties).
func (s *Store) List(ctx context.Context) ([]entities.SoilTest, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM soil_tests ORDER BY test_date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("select soil tests: %w", err)
	}
	return collect(rows)
}

// SearchByLocation returns records whose location partially matches loc.
func (s *Store) SearchByLocation(ctx context.Context, loc string) ([]entities.SoilTest, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM soil_tests WHERE location LIKE ? ORDER BY test_date DESC, id DESC`,
		"%"+loc+"%")
	if err != nil {
		return nil, fmt.Errorf("search soil tests: %w", err)
	}
	return collect(rows)
}

// Update overwrites an existing record; ErrNotFound when the id is unknown.
func (s *Store) Update(ctx context.Context, t *entities.SoilTest) error {
	res, err := s.db.ExecContext(ctx, `UPDATE soil_tests
		SET location = ?, latitude = ?, longitude = ?, ph = ?,
		    nitrogen = ?, phosphorus = ?, potassium = ?, notes = ?, test_date = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		t.Location, t.Latitude, t.Longitude, t.PH, t.Nitrogen, t.Phosphorus, t.Potassium, t.Notes, t.TestDate, t.ID)
	if err != nil {
		return fmt.Errorf("update soil test %d: %w", t.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a record; ErrNotFound when the id is unknown.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM soil_tests WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete soil test %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTest(r rowScanner) (*entities.SoilTest, error) {
	var (
		t        entities.SoilTest
		lat, lon sql.NullFloat64
		notes    sql.NullString
	)
	if err := r.Scan(&t.ID, &t.Location, &lat, &lon,
		&t.PH, &t.Nitrogen, &t.Phosphorus, &t.Potassium, &notes, &t.TestDate); err != nil {
		return nil, err
	}
	if lat.Valid {
		t.Latitude = &lat.Float64
	}
	if lon.Valid {
		t.Longitude = &lon.Float64
	}
	t.Notes = notes.String
	return &t, nil
}

func collect(rows *sql.Rows) ([]entities.SoilTest, error) {
	defer func() { _ = rows.Close() }()
	out := make([]entities.SoilTest, 0)
	for rows.Next() {
		t, err := scanTest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate: %w", err)
	}
	return out, nil
}
