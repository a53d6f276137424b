package infrastructure

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"runtime"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/klyne/auralis/internal/modules/library/application/ports"
)

// Compile-time check that SqliteStore implements ports.Store.
var _ ports.Store = (*SqliteStore)(nil)

// SqliteStore persists namespaced JSON documents in a sqlite database.
// Reads and writes use separate handles; sqlite needs a single writer.
type SqliteStore struct {
	readHandle  *sqlx.DB
	writeHandle *sqlx.DB
}

// NewSqliteStore opens (or creates) the database at filename and
// initializes the schema.
func NewSqliteStore(filename string) (*SqliteStore, error) {
	if filename == "" {
		return nil, fmt.Errorf("database filename not set")
	}

	readDB, err := sqlx.Connect("sqlite3", filename)
	if err != nil {
		return nil, err
	}
	readDB.SetMaxOpenConns(max(4, runtime.NumCPU()))

	writeDB, err := sqlx.Connect("sqlite3", filename)
	if err != nil {
		_ = readDB.Close()
		return nil, err
	}
	writeDB.SetMaxOpenConns(1)

	if err := initSchema(writeDB); err != nil {
		_ = readDB.Close()
		_ = writeDB.Close()
		return nil, err
	}

	return &SqliteStore{
		readHandle:  readDB,
		writeHandle: writeDB,
	}, nil
}

func initSchema(d *sqlx.DB) error {
	schema := []string{
		// This is needed to improve concurrent reads and writes.
		`PRAGMA journal_mode = WAL;`,

		`CREATE TABLE IF NOT EXISTS documents (
namespace TEXT NOT NULL PRIMARY KEY,
body TEXT NOT NULL,
updated DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP);`,
	}

	for _, statement := range schema {
		if _, err := d.Exec(statement); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}

// Load reads the document stored under namespace into v. A missing
// namespace is not an error; v keeps its zero value.
func (s *SqliteStore) Load(ctx context.Context, namespace string, v any) error {
	var body string
	err := s.readHandle.GetContext(ctx, &body,
		`SELECT body FROM documents WHERE namespace = ?`, namespace)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load namespace %s: %w", namespace, err)
	}

	if err := json.Unmarshal([]byte(body), v); err != nil {
		return fmt.Errorf("corrupt document in namespace %s: %w", namespace, err)
	}
	return nil
}

// Save replaces the document stored under namespace with v.
func (s *SqliteStore) Save(ctx context.Context, namespace string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode document for namespace %s: %w", namespace, err)
	}

	_, err = s.writeHandle.ExecContext(ctx,
		`INSERT INTO documents (namespace, body, updated) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT (namespace) DO UPDATE SET body = excluded.body, updated = excluded.updated`,
		namespace, string(body))
	if err != nil {
		return fmt.Errorf("failed to save namespace %s: %w", namespace, err)
	}
	return nil
}

// Close closes both database handles.
func (s *SqliteStore) Close() error {
	readErr := s.readHandle.Close()
	writeErr := s.writeHandle.Close()
	if readErr != nil {
		return readErr
	}
	return writeErr
}
