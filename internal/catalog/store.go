package catalog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/Aurelbuche/skill-mode/internal/logging"
)

// Store persists a built catalog so classification can run without
// re-scanning the trees. The catalog is rebuilt wholesale, so saves replace
// the stored symbols in one transaction; there is no incremental update.
type Store struct {
	conn   *sql.DB
	logger *logging.Logger
	dbPath string
}

// OpenStore opens or creates the catalog database at dbPath.
func OpenStore(dbPath string, logger *logging.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create catalog directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	s := &Store{conn: conn, logger: logger, dbPath: dbPath}
	if err := s.initializeSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) initializeSchema() error {
	return s.withTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			CREATE TABLE IF NOT EXISTS symbols (
				name     TEXT NOT NULL,
				category TEXT NOT NULL,
				PRIMARY KEY (name, category)
			)`)
		if err != nil {
			return err
		}
		_, err = tx.Exec(`
			CREATE TABLE IF NOT EXISTS meta (
				key   TEXT PRIMARY KEY,
				value TEXT NOT NULL
			)`)
		return err
	})
}

// withTx runs fn inside a transaction, rolling back on error.
func (s *Store) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Save replaces the stored symbols with the catalog's current contents.
func (s *Store) Save(c *Catalog) error {
	err := s.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM symbols`); err != nil {
			return err
		}
		stmt, err := tx.Prepare(`INSERT INTO symbols (name, category) VALUES (?, ?)`)
		if err != nil {
			return err
		}
		defer func() { _ = stmt.Close() }()

		total := 0
		for _, cat := range Categories() {
			for _, name := range c.Get(cat) {
				if _, err := stmt.Exec(name, string(cat)); err != nil {
					return err
				}
				total++
			}
		}
		_, err = tx.Exec(
			`INSERT INTO meta (key, value) VALUES ('builtAt', ?)
			 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
			time.Now().UTC().Format(time.RFC3339))
		if err != nil {
			return err
		}

		s.logger.Info("Catalog saved", map[string]interface{}{
			"path":    s.dbPath,
			"symbols": total,
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}

// Load restores a catalog from the database.
func (s *Store) Load() (*Catalog, error) {
	rows, err := s.conn.Query(`SELECT name, category FROM symbols`)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	defer func() { _ = rows.Close() }()

	c := New()
	for rows.Next() {
		var name, cat string
		if err := rows.Scan(&name, &cat); err != nil {
			return nil, err
		}
		c.Add(Category(cat), name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

// BuiltAt returns the timestamp of the last save, or zero when never saved.
func (s *Store) BuiltAt() (time.Time, error) {
	var value string
	err := s.conn.QueryRow(`SELECT value FROM meta WHERE key = 'builtAt'`).Scan(&value)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, value)
}
