package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/goodeyes/frontdesk/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/goodeyes/frontdesk/internal/core/domain"
	"github.com/goodeyes/frontdesk/internal/core/ports/driven"
)

// DatabaseFile is the cache database file name inside the data directory.
const DatabaseFile = "cache.db"

// Ensure Store implements the interface.
var _ driven.RecordCache = (*Store)(nil)

// Table names, one per record kind.
const (
	tablePatients    = "patients"
	tableConsumables = "consumables"
	tableStaff       = "staff"
)

// Store is a SQLite-based implementation of driven.RecordCache.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.frontdesk/data/cache.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".frontdesk", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	// WAL lets the TUI read while a background sync writes.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
		now:  time.Now,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// SchemaVersion returns the highest applied migration version.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	err := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("getting schema version: %w", err)
	}
	return version, nil
}

// ==================== Patients ====================

// SavePatients stores or updates patients by ID.
func (s *Store) SavePatients(ctx context.Context, patients []domain.Patient) error {
	return saveRecords(ctx, s, tablePatients, patients, func(p domain.Patient) int64 { return p.ID })
}

// ListPatients returns every cached patient in first-cached order.
func (s *Store) ListPatients(ctx context.Context) ([]domain.Patient, error) {
	return listRecords[domain.Patient](ctx, s, tablePatients)
}

// ==================== Consumables ====================

// SaveConsumables stores or updates consumable items by ID.
func (s *Store) SaveConsumables(ctx context.Context, items []domain.ConsumableItem) error {
	return saveRecords(ctx, s, tableConsumables, items, func(c domain.ConsumableItem) int64 { return c.ID })
}

// ListConsumables returns every cached consumable item in first-cached order.
func (s *Store) ListConsumables(ctx context.Context) ([]domain.ConsumableItem, error) {
	return listRecords[domain.ConsumableItem](ctx, s, tableConsumables)
}

// ==================== Staff ====================

// SaveStaff stores or updates staff members by ID.
func (s *Store) SaveStaff(ctx context.Context, staff []domain.StaffMember) error {
	return saveRecords(ctx, s, tableStaff, staff, func(m domain.StaffMember) int64 { return m.ID })
}

// ListStaff returns every cached staff member in first-cached order.
func (s *Store) ListStaff(ctx context.Context) ([]domain.StaffMember, error) {
	return listRecords[domain.StaffMember](ctx, s, tableStaff)
}

// ==================== Maintenance ====================

// Stats returns per-kind counts and the most recent cache time.
func (s *Store) Stats(ctx context.Context) ([]domain.CacheStats, error) {
	tables := map[domain.RecordKind]string{
		domain.RecordKindPatient:    tablePatients,
		domain.RecordKindConsumable: tableConsumables,
		domain.RecordKindStaff:      tableStaff,
	}

	stats := make([]domain.CacheStats, 0, len(tables))
	for _, kind := range domain.RecordKinds() {
		var (
			count    int
			lastSync sql.NullInt64
		)
		//nolint:gosec // table names are package constants
		query := fmt.Sprintf("SELECT COUNT(*), MAX(cached_at) FROM %s", tables[kind])
		if err := s.db.QueryRowContext(ctx, query).Scan(&count, &lastSync); err != nil {
			return nil, fmt.Errorf("counting %s: %w", kind, err)
		}

		st := domain.CacheStats{Kind: kind, Count: count}
		if lastSync.Valid {
			st.LastSync = time.Unix(0, lastSync.Int64)
		}
		stats = append(stats, st)
	}
	return stats, nil
}

// Clear removes every cached record.
func (s *Store) Clear(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{tablePatients, tableConsumables, tableStaff} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return tx.Commit()
}

// ==================== Helpers ====================

// saveRecords upserts records into table inside one transaction. New rows
// are appended after the current last position; existing rows keep theirs.
func saveRecords[T any](ctx context.Context, s *Store, table string, records []T, id func(T) int64) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	//nolint:gosec // table names are package constants
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`
		INSERT INTO %[1]s (id, payload, cached_at, position)
		VALUES (?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM %[1]s))
		ON CONFLICT(id) DO UPDATE SET
			payload = excluded.payload,
			cached_at = excluded.cached_at
	`, table))
	if err != nil {
		return fmt.Errorf("preparing %s insert: %w", table, err)
	}
	defer stmt.Close()

	cachedAt := s.now().UnixNano()
	for _, rec := range records {
		payload, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshalling %s record: %w", table, err)
		}
		if _, err := stmt.ExecContext(ctx, id(rec), string(payload), cachedAt); err != nil {
			return fmt.Errorf("saving %s record %d: %w", table, id(rec), err)
		}
	}

	return tx.Commit()
}

func listRecords[T any](ctx context.Context, s *Store, table string) ([]T, error) {
	//nolint:gosec // table names are package constants
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT payload FROM %s ORDER BY position", table))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", table, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", table, err)
		}
		var rec T
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			return nil, fmt.Errorf("unmarshalling %s record: %w", table, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
