// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cds answers read-only lookups against the CDS knowledge base: a
// SQLite file mapping CDS views onto DDIC tables and fields. The file is
// built by an external process; this package never writes to it.
package cds

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const (
	dataDir = "data"
	dbFile  = "cds_knowledge.db"
)

// ErrStoreNotFound is matched by errors.Is when the knowledge base file
// does not exist.
var ErrStoreNotFound = errors.New("database not found")

// NotFoundError reports a missing knowledge base file.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return "Database not found at " + e.Path
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrStoreNotFound
}

// DefaultDBPath returns data/cds_knowledge.db next to the running
// executable. When the executable cannot be located it falls back to the
// working directory.
func DefaultDBPath() string {
	exe, err := os.Executable()
	if err != nil {
		return filepath.Join(dataDir, dbFile)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), dataDir, dbFile)
}

// Store runs lookups against one knowledge base file. It holds no
// connection: every operation opens the file read-only, queries, and
// closes it again.
type Store struct {
	path string
}

// NewStore returns a Store for the file at path. An empty path selects
// DefaultDBPath. The file is not touched until the first operation.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultDBPath()
	}
	return &Store{path: path}
}

// Path returns the knowledge base file the store reads.
func (s *Store) Path() string {
	return s.path
}

var uriReplacer = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// dsn builds a read-only URI for the mattn driver. _cslike turns on
// case_sensitive_like for every pooled connection.
func dsn(path string) string {
	return "file:" + uriReplacer.Replace(path) + "?mode=ro&_cslike=true"
}

// connect opens the knowledge base. The caller must close the returned
// handle.
func (s *Store) connect(ctx context.Context) (*sql.DB, error) {
	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &NotFoundError{Path: s.path}
		}
		return nil, fmt.Errorf("checking database %s: %w", s.path, err)
	}

	db, err := sql.Open("sqlite3", dsn(s.path))
	if err != nil {
		return nil, err
	}
	// One connection per operation, never shared.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// withDB runs fn on a fresh connection and closes it afterwards.
func withDB[T any](ctx context.Context, s *Store, fn func(*sql.DB) (T, error)) (T, error) {
	db, err := s.connect(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	defer db.Close()
	return fn(db)
}
