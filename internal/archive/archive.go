// Package archive records summaries of finished dossiers in an optional SQL store.
package archive

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/cybercompass/internal/contract"
	"github.com/huangsam/cybercompass/schema"
)

// StoreManager holds the configured archive store.
type StoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	store        contract.ArchiveStore
}

var _ contract.ArchiveManager = &StoreManager{} // Compile-time check

// Global Manager instance for main logic.
var (
	Manager   = &StoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// GetArchiveStore returns the archive store, or nil before InitArchive.
func (mgr *StoreManager) GetArchiveStore() contract.ArchiveStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.store
}

// InitArchive initializes the global manager once.
func InitArchive(backend schema.DatabaseBackend, connStr string) error {
	var initErr error
	initOnce.Do(func() {
		store, err := NewArchiveStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize dossier archive: %w", err)
			return
		}
		Manager.Lock()
		Manager.store = store
		Manager.Unlock()
	})
	return initErr
}

// CloseArchive should be called on application shutdown.
func CloseArchive() {
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.store != nil {
			_ = Manager.store.Close()
		}
	})
}

// ClearArchive removes archived dossiers for the specified backend.
// For SQLite, it deletes the database file.
// For MySQL and PostgreSQL, it drops the archive tables.
func ClearArchive(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		driverName, _ := driverFor(backend)
		normalized, err := normalizeConnStr(backend, connStr, false)
		if err != nil {
			return err
		}
		// Scores before dossiers
		for _, table := range []string{dossierScoresTable, dossiersTable} {
			if err := clearSQLTable(driverName, normalized, quoteTableName(table, backend)); err != nil {
				return err
			}
		}
		return nil

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported archive backend for clearing: %s", backend)
	}
}

// clearSQLTable connects to the SQL database and drops the table if it exists.
func clearSQLTable(driverName, connStr, tableName string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	if _, err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}
	return nil
}
