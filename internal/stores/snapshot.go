package stores

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// StorageKey is the fixed identifier the blob is stored under. It matches
// the key the original web client used for its persisted state, so a
// snapshot database can be seeded from an exported web-store blob.
const StorageKey = "colonymind-storage"

//go:embed schema.sql
var schema string

// Snapshot is the full persisted state: one namespaced blob holding every
// record array.
type Snapshot struct {
	Cards      []Card         `json:"cards"`
	Decks      []Deck         `json:"decks"`
	Sessions   []StudySession `json:"sessions"`
	DailyStats []DailyStats   `json:"dailyStats"`
}

// SQLiteSnapshots persists snapshots as JSON blobs in a single-table SQLite
// database. It satisfies Snapshotter.
type SQLiteSnapshots struct {
	db  *sql.DB
	key string
}

// OpenSnapshots opens (creating if needed) the snapshot database at path.
func OpenSnapshots(path string) (*SQLiteSnapshots, error) {
	return OpenSnapshotsWithKey(path, StorageKey)
}

// OpenSnapshotsWithKey opens a snapshot database using a non-default
// storage key. Tests use this to isolate state.
func OpenSnapshotsWithKey(path, key string) (*SQLiteSnapshots, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init snapshot schema: %w", err)
	}
	return &SQLiteSnapshots{db: db, key: key}, nil
}

// Save writes the snapshot, replacing any previous one under the same key.
func (s *SQLiteSnapshots) Save(snap Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	_, err = s.db.Exec(
		"INSERT OR REPLACE INTO snapshots (key, payload, updated_at) VALUES (?, ?, ?)",
		s.key, payload, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Load reads the latest committed snapshot. ok is false when nothing has
// been saved yet.
func (s *SQLiteSnapshots) Load() (snap Snapshot, ok bool, err error) {
	var payload []byte
	err = s.db.QueryRow(
		"SELECT payload FROM snapshots WHERE key = ?", s.key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("read snapshot: %w", err)
	}
	if err := json.Unmarshal(payload, &snap); err != nil {
		return Snapshot{}, false, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return snap, true, nil
}

// Close closes the underlying database.
func (s *SQLiteSnapshots) Close() error {
	return s.db.Close()
}
