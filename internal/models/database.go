package models

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Connect opens the SQLite database for one budget and configures the
// connection pool.
//
// Every budget lives in its own database file, so the handle is returned to
// the caller instead of being stored in a package variable. This also keeps
// the derived ledger state checkable, it can only ever be built on top of an
// explicit handle.
func Connect(dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: &logger{
			Logger: log.Logger,
		},
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
	}

	dsn = fmt.Sprintf("%s?_pragma=foreign_keys(1)", dsn)
	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// This is done to prevent SQLITE_BUSY errors.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(Category{}, Account{}, Transaction{})
	if err != nil {
		return nil, fmt.Errorf("error during DB migration: %w", err)
	}

	// Query callbacks
	err = db.Callback().Query().After("*").Register("bensbudget:after_query", queryCallback)
	if err != nil {
		return nil, err
	}

	err = db.Callback().Query().After("*").Register("bensbudget:after_query_general", generalCallback)
	if err != nil {
		return nil, err
	}

	// Create callbacks
	err = db.Callback().Create().After("*").Register("bensbudget:after_create", createUpdateCallback)
	if err != nil {
		return nil, err
	}

	err = db.Callback().Create().After("*").Register("bensbudget:after_create_general", generalCallback)
	if err != nil {
		return nil, err
	}

	// Update callbacks
	err = db.Callback().Update().After("*").Register("bensbudget:after_update", createUpdateCallback)
	if err != nil {
		return nil, err
	}

	err = db.Callback().Update().After("*").Register("bensbudget:after_update_general", generalCallback)
	if err != nil {
		return nil, err
	}

	// Delete callbacks
	err = db.Callback().Delete().After("*").Register("bensbudget:after_delete_general", generalCallback)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		// and replace "_" with "[space]"
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")

		// Replace pluralized "ies" with "y"
		match := regexp.MustCompile("ies$")
		name = match.ReplaceAllString(name, "y")

		// Remove plural "s"
		name = strings.TrimRight(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// createUpdateCallback inspects errors returned by the database for create
// and update calls and replaces them with user friendly ones
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	if strings.Contains(db.Error.Error(), "UNIQUE constraint failed: accounts.name") {
		db.Error = ErrAccountNameNotUnique
	}

	if strings.Contains(db.Error.Error(), "UNIQUE constraint failed: categories.name") {
		db.Error = ErrCategoryNameNotUnique
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message, so that
// server admins can debug the issue while users are not confused.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	// "sql: database is closed" is hard-coded in the sql module, see
	// https://cs.opensource.google/go/go/+/master:src/database/sql/sql.go;l=1298;drc=0d018b49e33b1383dc0ae5cc968e800dffeeaf7d
	if db.Error.Error() == "sql: database is closed" || reflect.TypeOf(db.Error) == reflect.TypeOf(&go_sqlite.Error{}) {
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral

		return
	}
}
