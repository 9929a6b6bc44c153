package history

import (
	"database/sql"
	"embed"
	"os"
	"path/filepath"
	"time"

	"renamer/internal/errors"
	"renamer/pkg/types"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed db/schema.sql
var dbFS embed.FS

// SQLiteStorage keeps history in an embedded SQLite database, one row per
// entry ordered by position
type SQLiteStorage struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed creates) the database at dbPath.
// An empty dbPath opens an in-memory database.
func OpenSQLite(dbPath string) (*SQLiteStorage, error) {
	connectionString := dbPath
	if connectionString == "" {
		connectionString = ":memory:"
	} else if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, errors.NewDatabaseError("failed to create database directory", err).
			WithContext("path", dbPath)
	}

	db, err := sql.Open("sqlite3", connectionString)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to open SQLite database", err).
			WithContext("connectionString", connectionString)
	}
	// an in-memory database exists per connection
	db.SetMaxOpenConns(1)

	schemaSQL, err := dbFS.ReadFile("db/schema.sql")
	if err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("failed to read schema SQL", err)
	}
	if _, err := db.Exec(string(schemaSQL)); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("failed to initialize database schema", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func (s *SQLiteStorage) Load() ([]types.HistoryEntry, error) {
	query := `
		SELECT pattern, replacement, is_regex, case_insensitive, timestamp
		FROM history
		ORDER BY position ASC
	`
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to query history", err).WithOperation("select")
	}
	defer rows.Close()

	var entries []types.HistoryEntry
	for rows.Next() {
		var (
			entry        types.HistoryEntry
			timestampStr string
		)
		err := rows.Scan(
			&entry.Pattern,
			&entry.Replacement,
			&entry.IsRegex,
			&entry.CaseInsensitive,
			&timestampStr,
		)
		if err != nil {
			return nil, errors.NewDatabaseError("failed to scan history row", err)
		}
		entry.Timestamp, err = time.Parse(time.RFC3339Nano, timestampStr)
		if err != nil {
			return nil, errors.NewDatabaseError("failed to parse timestamp", err).
				WithContext("timestamp", timestampStr)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDatabaseError("failed to iterate history rows", err)
	}
	return entries, nil
}

// Save replaces the table contents in one transaction
func (s *SQLiteStorage) Save(entries []types.HistoryEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.NewDatabaseError("failed to begin transaction", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(`DELETE FROM history`); err != nil {
		return errors.NewDatabaseError("failed to clear history", err).WithOperation("delete")
	}

	stmt, err := tx.Prepare(`
		INSERT INTO history (
			id, position, pattern, replacement, is_regex, case_insensitive, timestamp
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return errors.NewDatabaseError("failed to prepare insert", err)
	}
	defer stmt.Close()

	for i, entry := range entries {
		_, err := stmt.Exec(
			uuid.New().String(),
			i,
			entry.Pattern,
			entry.Replacement,
			entry.IsRegex,
			entry.CaseInsensitive,
			entry.Timestamp.Format(time.RFC3339Nano),
		)
		if err != nil {
			return errors.NewDatabaseError("failed to save history entry", err).
				WithOperation("insert").
				WithContext("pattern", entry.Pattern)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewDatabaseError("failed to commit history", err)
	}
	return nil
}

// Close releases the database
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
