package postgres

import (
	"cmp"
	"context"
	"crypto/sha256"
	"database/sql"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

const (
	migrationsDir = "sql/migrations"
	// migrationLockKey — ключ pg_advisory_lock, сериализует миграции между репликами.
	migrationLockKey = int64(0x6f6d735f6d6967) // "oms_mig"

	migrationTableDDL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version BIGINT PRIMARY KEY,
    name TEXT NOT NULL,
    checksum TEXT NOT NULL DEFAULT '',
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
ALTER TABLE schema_migrations ADD COLUMN IF NOT EXISTS checksum TEXT NOT NULL DEFAULT ''`
)

var (
	//go:embed sql/migrations/*.sql
	embeddedMigrations embed.FS

	migrationFileRe = regexp.MustCompile(`^(\d+)_([a-z0-9_]+)\.(up|down)\.sql$`)
)

// ErrMigrationChecksum — применённая миграция отличается от файла в сборке.
var ErrMigrationChecksum = errors.New("applied migration was modified")

// migration — пара up/down-скриптов одной версии схемы.
type migration struct {
	version  int64
	name     string
	up       string
	down     string
	checksum string
}

func (m migration) String() string {
	return fmt.Sprintf("%04d_%s", m.version, m.name)
}

// loadMigrations читает каталог миграций и сортирует их по версии.
func loadMigrations(fsys fs.FS) ([]migration, error) {
	entries, err := fs.ReadDir(fsys, migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}

	byVersion := make(map[int64]*migration)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		parts := migrationFileRe.FindStringSubmatch(entry.Name())
		if parts == nil {
			return nil, fmt.Errorf("invalid migration file name: %s", entry.Name())
		}
		version, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse migration version of %s: %w", entry.Name(), err)
		}

		raw, err := fs.ReadFile(fsys, path.Join(migrationsDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		body := strings.TrimSpace(string(raw))
		if body == "" {
			return nil, fmt.Errorf("migration %s is empty", entry.Name())
		}

		m, ok := byVersion[version]
		if !ok {
			m = &migration{version: version, name: parts[2]}
			byVersion[version] = m
		}
		if m.name != parts[2] {
			return nil, fmt.Errorf("migration %d has two names: %s and %s", version, m.name, parts[2])
		}

		target := &m.up
		if parts[3] == "down" {
			target = &m.down
		}
		if *target != "" {
			return nil, fmt.Errorf("duplicate %s script for migration %d", parts[3], version)
		}
		*target = body
	}
	if len(byVersion) == 0 {
		return nil, errors.New("no migration files found")
	}

	result := make([]migration, 0, len(byVersion))
	for _, m := range byVersion {
		if m.up == "" || m.down == "" {
			return nil, fmt.Errorf("migration %s needs both up and down scripts", m)
		}
		sum := sha256.Sum256([]byte(m.up))
		m.checksum = hex.EncodeToString(sum[:])
		result = append(result, *m)
	}
	slices.SortFunc(result, func(a, b migration) int { return cmp.Compare(a.version, b.version) })
	return result, nil
}

// verifyApplied сверяет контрольные суммы применённых миграций.
// Пустая сумма означает запись, сделанную до появления колонки checksum.
func verifyApplied(known []migration, applied map[int64]string) error {
	for _, m := range known {
		sum, ok := applied[m.version]
		if ok && sum != "" && sum != m.checksum {
			return fmt.Errorf("%s: %w", m, ErrMigrationChecksum)
		}
	}
	return nil
}

// pendingOf возвращает неприменённые миграции в порядке применения.
func pendingOf(known []migration, applied map[int64]string) []migration {
	var pending []migration
	for _, m := range known {
		if _, ok := applied[m.version]; !ok {
			pending = append(pending, m)
		}
	}
	return pending
}

// rollbackOrder возвращает до steps последних применённых миграций, начиная с новейшей.
func rollbackOrder(known []migration, applied map[int64]string, steps int) ([]migration, error) {
	index := make(map[int64]migration, len(known))
	for _, m := range known {
		index[m.version] = m
	}
	versions := make([]int64, 0, len(applied))
	for v := range applied {
		versions = append(versions, v)
	}
	slices.Sort(versions)
	slices.Reverse(versions)

	var result []migration
	for _, v := range versions {
		if len(result) == steps {
			break
		}
		m, ok := index[v]
		if !ok {
			return nil, fmt.Errorf("cannot roll back migration %d: no scripts in this build", v)
		}
		result = append(result, m)
	}
	return result, nil
}

// MigrateUp применяет неприменённые миграции; steps=0 применяет все.
func (s *Store) MigrateUp(ctx context.Context, steps int) error {
	return s.withMigrationLock(ctx, func(conn *sql.Conn, known []migration, applied map[int64]string) error {
		if err := verifyApplied(known, applied); err != nil {
			return err
		}
		pending := pendingOf(known, applied)
		if steps > 0 && len(pending) > steps {
			pending = pending[:steps]
		}
		for _, m := range pending {
			if err := runMigration(ctx, conn, m, true); err != nil {
				return err
			}
		}
		return nil
	})
}

// MigrateDown откатывает steps последних миграций; steps<=0 откатывает одну.
func (s *Store) MigrateDown(ctx context.Context, steps int) error {
	if steps <= 0 {
		steps = 1
	}
	return s.withMigrationLock(ctx, func(conn *sql.Conn, known []migration, applied map[int64]string) error {
		order, err := rollbackOrder(known, applied, steps)
		if err != nil {
			return err
		}
		for _, m := range order {
			if err := runMigration(ctx, conn, m, false); err != nil {
				return err
			}
		}
		return nil
	})
}

// MigrationStatus возвращает последнюю применённую версию и число применённых миграций.
func (s *Store) MigrationStatus(ctx context.Context) (int64, int, error) {
	var (
		version int64
		count   int
	)
	err := s.withMigrationConn(ctx, func(conn *sql.Conn) error {
		applied, err := appliedMigrations(ctx, conn)
		if err != nil {
			return err
		}
		for v := range applied {
			version = max(version, v)
		}
		count = len(applied)
		return nil
	})
	return version, count, err
}

// PendingMigrations возвращает имена неприменённых миграций.
func (s *Store) PendingMigrations(ctx context.Context) ([]string, error) {
	known, err := loadMigrations(embeddedMigrations)
	if err != nil {
		return nil, err
	}
	var names []string
	err = s.withMigrationConn(ctx, func(conn *sql.Conn) error {
		applied, err := appliedMigrations(ctx, conn)
		if err != nil {
			return err
		}
		for _, m := range pendingOf(known, applied) {
			names = append(names, m.String())
		}
		return nil
	})
	return names, err
}

// withMigrationConn выделяет отдельное соединение и гарантирует таблицу schema_migrations.
func (s *Store) withMigrationConn(ctx context.Context, fn func(conn *sql.Conn) error) error {
	if s == nil || s.db == nil {
		return errors.New("postgres store is not initialized")
	}
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire db connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, migrationTableDDL); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}
	return fn(conn)
}

// withMigrationLock держит advisory lock на время fn. Lock привязан к соединению,
// поэтому все шаги идут через один conn.
func (s *Store) withMigrationLock(ctx context.Context, fn func(conn *sql.Conn, known []migration, applied map[int64]string) error) error {
	known, err := loadMigrations(embeddedMigrations)
	if err != nil {
		return err
	}
	return s.withMigrationConn(ctx, func(conn *sql.Conn) error {
		lockCtx, cancel := context.WithTimeout(ctx, opTimeout)
		defer cancel()
		if _, err := conn.ExecContext(lockCtx, `SELECT pg_advisory_lock($1)`, migrationLockKey); err != nil {
			return fmt.Errorf("acquire migration lock: %w", err)
		}
		defer func() {
			_, _ = conn.ExecContext(context.WithoutCancel(ctx), `SELECT pg_advisory_unlock($1)`, migrationLockKey)
		}()

		applied, err := appliedMigrations(ctx, conn)
		if err != nil {
			return err
		}
		return fn(conn, known, applied)
	})
}

func appliedMigrations(ctx context.Context, conn *sql.Conn) (map[int64]string, error) {
	rows, err := conn.QueryContext(ctx, `SELECT version, checksum FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("query applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int64]string)
	for rows.Next() {
		var (
			version  int64
			checksum string
		)
		if err := rows.Scan(&version, &checksum); err != nil {
			return nil, fmt.Errorf("scan applied migration: %w", err)
		}
		applied[version] = checksum
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applied migrations: %w", err)
	}
	return applied, nil
}

// runMigration выполняет скрипт и запись в schema_migrations одной транзакцией.
func runMigration(ctx context.Context, conn *sql.Conn, m migration, up bool) (err error) {
	direction, script := "down", m.down
	if up {
		direction, script = "up", m.up
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s migration %s: %w", direction, m, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, script); err != nil {
		return fmt.Errorf("run %s migration %s: %w", direction, m, err)
	}
	if up {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO schema_migrations (version, name, checksum) VALUES ($1, $2, $3)`,
			m.version, m.name, m.checksum)
	} else {
		_, err = tx.ExecContext(ctx, `DELETE FROM schema_migrations WHERE version = $1`, m.version)
	}
	if err != nil {
		return fmt.Errorf("record %s migration %s: %w", direction, m, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit %s migration %s: %w", direction, m, err)
	}
	return nil
}
