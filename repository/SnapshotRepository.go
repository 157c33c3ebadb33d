package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"time"

	"storegate/models"

	_ "github.com/mattn/go-sqlite3"
)

// SnapshotRepository persists the last-known-good collection of each store
// so a restart begins from stale-but-available data instead of a blank
// state. Collections are replaced wholesale, matching store semantics.
type SnapshotRepository interface {
	SaveSnapshot(name string, payload any) error
	LoadSnapshot(name string, dest any) (ok bool, err error)
}

type SnapshotRepo struct {
	db *sql.DB
}

func NewSnapshotRepository(path string) (SnapshotRepository, error) {
	if path == "" {
		return nil, errors.New("path must be non-empty")
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS snapshots (
		name TEXT PRIMARY KEY,
		body TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`)
	if err != nil {
		return nil, err
	}
	return &SnapshotRepo{db: db}, nil
}

func (s *SnapshotRepo) SaveSnapshot(name string, payload any) (err error) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("SaveSnapshot: %v", err)
		return models.ErrServerError
	}
	_, err = s.db.Exec(
		"INSERT INTO snapshots (name, body, updated_at) VALUES ($1, $2, $3) ON CONFLICT(name) DO UPDATE SET body=$2, updated_at=$3",
		name, string(data), time.Now().UTC())
	if err != nil {
		log.Printf("SaveSnapshot: %v", err)
		err = models.ErrServerError
	}
	return
}

func (s *SnapshotRepo) LoadSnapshot(name string, dest any) (ok bool, err error) {
	var body string
	row := s.db.QueryRow("SELECT body FROM snapshots WHERE name = $1", name)
	err = row.Scan(&body)
	if err != nil {
		if err == sql.ErrNoRows {
			err = nil
			return
		}
		log.Printf("LoadSnapshot: %v", err)
		err = models.ErrServerError
		return
	}
	if err = json.Unmarshal([]byte(body), dest); err != nil {
		log.Printf("LoadSnapshot: %v", err)
		err = models.ErrServerError
		return
	}
	ok = true
	return
}
