// Package migrations applies the versioned schema for the task database.
// Scripts are embedded as NNNNNN_name.up.sql / .down.sql pairs and applied
// in version order exactly once, tracked in a migrations table.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"sort"
	"strings"

	"todo-tracker/internal/errors"
)

//go:embed *.sql
var scriptsFS embed.FS

// Migration is one versioned schema change with its rollback script.
type Migration struct {
	Version int
	Up      string
	Down    string
}

// RunMigrations brings the database schema up to date. Each pending
// version is applied inside its own transaction, so a failure leaves the
// schema at the last fully applied version.
func RunMigrations(db *sql.DB) error {
	if err := ensureVersionTable(db); err != nil {
		return errors.NewStorageError("create migrations table", err)
	}

	scripts, err := loadScripts()
	if err != nil {
		return errors.NewStorageError("load migration scripts", err)
	}

	applied, err := appliedVersions(db)
	if err != nil {
		return errors.NewStorageError("read applied migrations", err)
	}

	for _, m := range scripts {
		if applied[m.Version] {
			continue
		}
		if err := apply(db, m); err != nil {
			return errors.NewStorageError(fmt.Sprintf("apply migration %d", m.Version), err)
		}
	}

	return nil
}

func ensureVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	return err
}

// loadScripts reads the embedded script pairs in version order. Every up
// script must carry a numeric version prefix and a matching down script.
func loadScripts() ([]Migration, error) {
	entries, err := scriptsFS.ReadDir(".")
	if err != nil {
		return nil, err
	}

	var scripts []Migration
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".up.sql") {
			continue
		}

		version := scriptVersion(name)
		if version == 0 {
			return nil, fmt.Errorf("unversioned migration script: %s", name)
		}

		up, err := scriptsFS.ReadFile(name)
		if err != nil {
			return nil, err
		}
		down, err := scriptsFS.ReadFile(strings.TrimSuffix(name, ".up.sql") + ".down.sql")
		if err != nil {
			return nil, err
		}

		scripts = append(scripts, Migration{
			Version: version,
			Up:      string(up),
			Down:    string(down),
		})
	}

	sort.Slice(scripts, func(i, j int) bool {
		return scripts[i].Version < scripts[j].Version
	})

	return scripts, nil
}

func appliedVersions(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query(`SELECT version FROM migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func apply(db *sql.DB, m Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(m.Up); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec(`INSERT INTO migrations (version) VALUES (?)`, m.Version); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func scriptVersion(name string) int {
	var version int
	fmt.Sscanf(name, "%d_", &version)
	return version
}
