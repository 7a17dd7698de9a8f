package unitconv

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // register driver
)

// Cache stores finished documents keyed by the SHA-1 of their input and the
// options used to convert it.
type Cache struct {
	db *sql.DB
}

// NewCache opens or creates the cache database in file.
func NewCache(file string) (*Cache, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS document (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL, options TEXT NOT NULL, body TEXT NOT NULL, UNIQUE(sha1, options))"); err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{
		db: db,
	}, nil
}

// Find returns the cached document, if any.
func (c *Cache) Find(sha1, options string) (string, bool, error) {
	var body string
	switch err := c.db.QueryRow("SELECT body FROM document WHERE sha1 = ? AND options = ?", sha1, options).Scan(&body); err {
	case sql.ErrNoRows:
		return "", false, nil
	case nil:
		return body, true, nil
	default:
		return "", false, err
	}
}

// Store saves a document, replacing any previous one.
func (c *Cache) Store(sha1, options, body string) error {
	if _, err := c.db.Exec("INSERT OR REPLACE INTO document (sha1, options, body) VALUES (?, ?, ?)", sha1, options, body); err != nil {
		return err
	}
	return nil
}

// Close closes the database.
func (c *Cache) Close() error {
	return c.db.Close()
}
