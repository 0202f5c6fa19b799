// Package database хранит журнал обработанных вопросов.
// Журнал только пишется при обработке и читается админкой; на очистку
// и оценку вопросов он не влияет.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	// pgx-драйвер в режиме database/sql
	_ "github.com/jackc/pgx/v5/stdlib"
	log "github.com/sirupsen/logrus"
	// sqlite без cgo
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"

	DefaultPageSize = 20
	MaxPageSize     = 100
	dbQueryTimeout  = 5 * time.Second
)

// ErrUnknownDriver — DB_DRIVER не поддерживается.
var ErrUnknownDriver = errors.New("unknown database driver")

// Store — журнал вопросов поверх database/sql.
type Store struct {
	db     *sql.DB
	driver string
}

// Open открывает пул соединений, проверяет подключение и создаёт схему.
// driver: "sqlite" или "postgres"/"pgx". Пустой dsn для postgres собирается из PG_*.
func Open(driver, dsn string) (*Store, error) {
	driver, err := normalizeDriver(driver)
	if err != nil {
		return nil, err
	}
	if dsn == "" {
		dsn = defaultDSN(driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}

	// Параметры пула
	if driver == DriverSQLite {
		// sqlite не любит параллельную запись
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	// Проверяем подключение (тайм-аут 3 с)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db.Ping: %w", err)
	}

	s := &Store{db: db, driver: driver}
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Printf("[database] %s connected ✓", driver)
	return s, nil
}

// Close закрывает пул.
func (s *Store) Close() error { return s.db.Close() }

// Migrate создаёт таблицы, если их ещё нет.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS questions (
		id         TEXT PRIMARY KEY,
		created_at TIMESTAMP NOT NULL,
		source     TEXT NOT NULL,
		char_count INTEGER NOT NULL,
		removed    TEXT NOT NULL DEFAULT '',
		score      INTEGER NOT NULL,
		question   TEXT NOT NULL,
		model      TEXT NOT NULL DEFAULT '',
		replied    BOOLEAN NOT NULL DEFAULT FALSE,
		error      TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_questions_created_at ON questions (created_at)`,
}

// rebind переводит плейсхолдеры «?» в «$n» для postgres.
func (s *Store) rebind(q string) string {
	if s.driver != DriverPostgres {
		return q
	}
	var sb strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// ─────────────────────────────── helpers

func normalizeDriver(driver string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "pgx", "postgres", "postgresql":
		return DriverPostgres, nil
	case "sqlite", "sqlite3":
		return DriverSQLite, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

func defaultDSN(driver string) string {
	if driver == DriverSQLite {
		return env("SQLITE_PATH", "ecoprompt.db")
	}
	return buildDSN()
}

func buildDSN() string {
	host := env("PG_HOST", "localhost")
	port := env("PG_PORT", "5432")
	user := env("PG_USER", "postgres")
	password := os.Getenv("PG_PASSWORD") // может быть пустым
	dbname := env("PG_DATABASE", "ecoprompt")
	sslmode := env("PG_SSL_MODE", "disable")

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
	)
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
