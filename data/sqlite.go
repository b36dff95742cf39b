package data

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLite database handle
var (
	db     *sql.DB
	dbOnce sync.Once
	dbPath string
)

// initDB initializes the SQLite database
func initDB() error {
	var initErr error
	dbOnce.Do(func() {
		dbPath = filepath.Join(Dir(), "desa.db")
		os.MkdirAll(filepath.Dir(dbPath), 0700)

		var err error
		db, err = sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=10000")
		if err != nil {
			initErr = fmt.Errorf("failed to open database: %w", err)
			return
		}

		// SQLite works best with limited connections
		db.SetMaxOpenConns(1) // Serialize all access to avoid locks
		db.SetMaxIdleConns(1)

		_, err = db.Exec(`
			CREATE TABLE IF NOT EXISTS snapshots (
				name TEXT PRIMARY KEY,
				snapshot_id TEXT NOT NULL,
				fetched_at DATETIME NOT NULL,
				payload TEXT NOT NULL
			);
		`)
		if err != nil {
			initErr = fmt.Errorf("failed to create tables: %w", err)
			return
		}
	})
	return initErr
}

// getDB returns the database handle, initializing if needed
func getDB() (*sql.DB, error) {
	if err := initDB(); err != nil {
		return nil, err
	}
	return db, nil
}

// StoreSnapshot replaces the snapshot stored under name. The write happens in
// a transaction so a reader never sees a truncated payload.
func StoreSnapshot(name, snapshotID string, fetchedAt time.Time, payload []byte) error {
	db, err := getDB()
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO snapshots (name, snapshot_id, fetched_at, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			snapshot_id = excluded.snapshot_id,
			fetched_at = excluded.fetched_at,
			payload = excluded.payload
	`, name, snapshotID, fetchedAt, string(payload))
	if err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// LoadSnapshot returns the stored snapshot payload, or nil if none exists.
func LoadSnapshot(name string) (payload []byte, snapshotID string, fetchedAt time.Time, err error) {
	db, err := getDB()
	if err != nil {
		return nil, "", time.Time{}, err
	}

	var body string
	err = db.QueryRow(`
		SELECT snapshot_id, fetched_at, payload FROM snapshots WHERE name = ?
	`, name).Scan(&snapshotID, &fetchedAt, &body)

	if err == sql.ErrNoRows {
		return nil, "", time.Time{}, nil
	}
	if err != nil {
		return nil, "", time.Time{}, err
	}

	return []byte(body), snapshotID, fetchedAt, nil
}

// DeleteSnapshot removes the snapshot stored under name.
func DeleteSnapshot(name string) error {
	db, err := getDB()
	if err != nil {
		return err
	}
	_, err = db.Exec(`DELETE FROM snapshots WHERE name = ?`, name)
	return err
}

// ResetForTest closes and clears the handle so tests can point HOME elsewhere.
func ResetForTest() {
	if db != nil {
		db.Close()
	}
	db = nil
	dbOnce = sync.Once{}
}
