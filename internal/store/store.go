// # internal/store/store.go
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"classmap/internal/index"
)

const sqliteDriverName = "sqlite"

// ClassMapStore persists a built index into SQLite so other tools can
// query class locations without re-parsing the tree. Rows are scoped by a
// project key; saving replaces the project's previous snapshot.
type ClassMapStore struct {
	db         *sql.DB
	projectKey string
}

func Open(path, projectKey string) (*ClassMapStore, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("class map store path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("class map store path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create class map store directory %q: %w", dir, err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cleanPath)
	db, err := sql.Open(sqliteDriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open class map store %q: %w", cleanPath, err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping class map store %q: %w", cleanPath, err)
	}

	if err := migrateSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	key := strings.TrimSpace(projectKey)
	if key == "" {
		key = "default"
	}

	return &ClassMapStore{db: db, projectKey: key}, nil
}

func migrateSchema(db *sql.DB) error {
	var version int
	_ = db.QueryRow(`PRAGMA user_version`).Scan(&version)

	if version == 0 {
		_, err := db.Exec(`
CREATE TABLE classes (
  project_key TEXT NOT NULL,
  class_name TEXT NOT NULL,
  kind TEXT NOT NULL,
  file_path TEXT NOT NULL,
  PRIMARY KEY (project_key, class_name)
);
CREATE INDEX idx_classes_project_file ON classes(project_key, file_path);

CREATE TABLE file_deps (
  project_key TEXT NOT NULL,
  file_path TEXT NOT NULL,
  dependency TEXT NOT NULL,
  PRIMARY KEY (project_key, file_path, dependency)
);

PRAGMA user_version = 1;
`)
		if err != nil {
			return fmt.Errorf("create v1 schema: %w", err)
		}
	}

	return nil
}

// SaveIndex replaces the project's persisted snapshot with the current
// contents of the index.
func (s *ClassMapStore) SaveIndex(idx *index.Index) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("store not initialized")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin class map save tx: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM classes WHERE project_key = ?`, s.projectKey); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear class rows: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM file_deps WHERE project_key = ?`, s.projectKey); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear dependency rows: %w", err)
	}

	classStmt, err := tx.Prepare(`INSERT INTO classes (project_key, class_name, kind, file_path) VALUES (?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare class insert: %w", err)
	}
	defer classStmt.Close()

	for _, sym := range idx.Symbols() {
		if _, err := classStmt.Exec(s.projectKey, sym.Name, sym.Kind.String(), sym.File); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert class row %q: %w", sym.Name, err)
		}
	}

	depStmt, err := tx.Prepare(`INSERT INTO file_deps (project_key, file_path, dependency) VALUES (?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare dependency insert: %w", err)
	}
	defer depStmt.Close()

	for path, deps := range idx.AllFileDependencies() {
		for _, dep := range deps {
			if _, err := depStmt.Exec(s.projectKey, path, dep); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("insert dependency row (%s -> %s): %w", path, dep, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit class map save tx: %w", err)
	}
	return nil
}

// LookupClass returns the persisted file path for a canonical class name,
// or the empty string when unknown.
func (s *ClassMapStore) LookupClass(name string) (string, error) {
	if s == nil || s.db == nil {
		return "", fmt.Errorf("store not initialized")
	}

	var path string
	err := s.db.QueryRow(`SELECT file_path FROM classes WHERE project_key = ? AND class_name = ?`, s.projectKey, name).Scan(&path)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("lookup class %q: %w", name, err)
	}
	return path, nil
}

// FileDependencies returns the persisted dependency list for a file.
func (s *ClassMapStore) FileDependencies(path string) ([]string, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("store not initialized")
	}

	rows, err := s.db.Query(`SELECT dependency FROM file_deps WHERE project_key = ? AND file_path = ? ORDER BY dependency`, s.projectKey, path)
	if err != nil {
		return nil, fmt.Errorf("query dependencies for %q: %w", path, err)
	}
	defer rows.Close()

	var deps []string
	for rows.Next() {
		var dep string
		if err := rows.Scan(&dep); err != nil {
			return nil, fmt.Errorf("scan dependency row: %w", err)
		}
		deps = append(deps, dep)
	}
	return deps, rows.Err()
}

func (s *ClassMapStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
