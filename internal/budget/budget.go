// Package budget manages the directory that holds one database file per
// budget and opens ledger sessions on them.
package budget

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Fooshman135/BensBudget/internal/ledger"
	"github.com/Fooshman135/BensBudget/internal/models"
	"gorm.io/gorm"
)

var (
	ErrNameInvalid = errors.New("budget names must not be empty, start with '.', or contain '/' or ':'")
	ErrExists      = errors.New("a budget with this name already exists")
	ErrNotFound    = errors.New("there is no budget with this name")
)

// Registry is a directory of budget database files, one per budget.
type Registry struct {
	dir string
}

// NewRegistry creates the budget directory if needed and returns a registry
// over it.
func NewRegistry(dir string) (*Registry, error) {
	err := os.MkdirAll(dir, os.ModePerm)
	if err != nil {
		return nil, fmt.Errorf("could not create budget directory: %w", err)
	}

	return &Registry{dir: dir}, nil
}

// List returns the names of all budgets, sorted.
func (r *Registry) List() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(r.dir, "*.db"))
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(matches))
	for _, match := range matches {
		base := filepath.Base(match)
		names = append(names, strings.TrimSuffix(base, filepath.Ext(base)))
	}

	sort.Strings(names)
	return names, nil
}

// Create sets up an empty budget and opens a session on it.
func (r *Registry) Create(name string) (*Session, error) {
	if !validName(name) {
		return nil, ErrNameInvalid
	}

	path := r.path(name)
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrExists, name)
	}

	return open(name, path)
}

// Open opens a session on an existing budget.
func (r *Registry) Open(name string) (*Session, error) {
	if !validName(name) {
		return nil, ErrNameInvalid
	}

	path := r.path(name)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	return open(name, path)
}

// Delete removes a budget file. The caller has to make sure no session on it
// is still open.
func (r *Registry) Delete(name string) error {
	if !validName(name) {
		return ErrNameInvalid
	}

	path := r.path(name)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	return os.Remove(path)
}

func (r *Registry) path(name string) string {
	return filepath.Join(r.dir, name+".db")
}

// validName reports whether name can be used as a file name: non-empty, no
// leading dot, no path separator and no colon.
func validName(name string) bool {
	if name == "" || strings.HasPrefix(name, ".") {
		return false
	}

	return !strings.ContainsAny(name, "/:")
}

func open(name, path string) (*Session, error) {
	db, err := models.Connect(path)
	if err != nil {
		return nil, err
	}

	l, err := ledger.New(db)
	if err != nil {
		return nil, err
	}

	return &Session{Name: name, Ledger: l, db: db}, nil
}

// Session is one open budget.
type Session struct {
	Name   string
	Ledger *ledger.Ledger

	db *gorm.DB
}

// Close closes the underlying database connection.
func (s *Session) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
