package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// migrationLockKey is the advisory lock guarding concurrent migration runs
const migrationLockKey = 7101

// RunMigrations applies the *.sql files in dir in numeric order. The number
// before the first underscore in a file name is its version; versions already
// recorded in schema_migrations are skipped.
func RunMigrations(ctx context.Context, db *sql.DB, dir string) error {
	if _, err := db.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, migrationLockKey); err != nil {
		return fmt.Errorf("acquire migration lock: %w", err)
	}
	defer db.ExecContext(ctx, `SELECT pg_advisory_unlock($1)`, migrationLockKey)

	applied := map[int]bool{}
	rows, err := db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err == nil { // table absent on a fresh database, the first migration creates it
		defer rows.Close()
		for rows.Next() {
			var v int
			if err := rows.Scan(&v); err != nil {
				return err
			}
			applied[v] = true
		}
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		base := filepath.Base(file)
		version, ok := migrationVersion(base)
		if !ok || applied[version] {
			continue
		}

		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", base, err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		if _, err := tx.ExecContext(ctx, string(sqlBytes)); err != nil {
			tx.Rollback()
			return fmt.Errorf("exec migration %s: %w", base, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %s: %w", base, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", base, err)
		}
	}
	return nil
}

// migrationVersion parses the numeric prefix of a migration file name
func migrationVersion(name string) (int, bool) {
	prefix, _, found := strings.Cut(name, "_")
	if !found {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimLeft(prefix, "0"))
	if err != nil {
		return 0, false
	}
	return v, true
}
