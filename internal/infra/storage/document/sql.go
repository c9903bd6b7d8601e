package document

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

const documentsTable = "documents"

var schema = map[string]string{
	psqlbuilder.DialectPostgres: `CREATE TABLE IF NOT EXISTS documents (
	name       TEXT PRIMARY KEY,
	version    BIGINT NOT NULL,
	payload    TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`,
	psqlbuilder.DialectSQLite: `CREATE TABLE IF NOT EXISTS documents (
	name       TEXT PRIMARY KEY,
	version    INTEGER NOT NULL,
	payload    TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`,
}

// DBExecutor интерфейс для выполнения запросов (*sql.DB)
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// SQLStore хранит документы в таблице documents (PostgreSQL или SQLite).
// Версия - счетчик, Put выполняет compare-and-swap одним запросом.
type SQLStore struct {
	db      DBExecutor
	builder squirrel.StatementBuilderType
	dialect string
}

// NewSQLStore создает хранилище и таблицу documents, если ее нет
func NewSQLStore(ctx context.Context, db DBExecutor, dialect string) (*SQLStore, error) {
	builder, err := psqlbuilder.ForDialect(dialect)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedDriver, err)
	}

	if _, err := db.ExecContext(ctx, schema[dialect]); err != nil {
		return nil, fmt.Errorf("%w: NewSQLStore - create table: %v", ErrExecQuery, err)
	}

	return &SQLStore{db: db, builder: builder, dialect: dialect}, nil
}

// OpenSQLite открывает файл базы SQLite
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: OpenSQLite - %s: %v", ErrRead, path, err)
	}
	// SQLite допускает одного писателя
	db.SetMaxOpenConns(1)
	return db, nil
}

// Get читает документ
func (s *SQLStore) Get(ctx context.Context, name string) ([]byte, int64, error) {
	if err := validateName(name); err != nil {
		return nil, 0, err
	}

	query, args, err := s.builder.Select("payload", "version").
		From(documentsTable).
		Where(squirrel.Eq{"name": name}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var (
		payload string
		version int64
	)
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&payload, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%w: Get - scan %s: %v", ErrScanRow, name, err)
	}

	return []byte(payload), version, nil
}

// Put вставляет документ (expectedVersion == 0) или обновляет его при совпадении версии
func (s *SQLStore) Put(ctx context.Context, name string, payload []byte, expectedVersion int64) (int64, error) {
	if err := validateName(name); err != nil {
		return 0, err
	}

	var (
		query string
		args  []interface{}
		err   error
	)
	next := expectedVersion + 1
	updatedAt := s.timestamp()

	if expectedVersion == 0 {
		query, args, err = s.builder.Insert(documentsTable).
			Columns("name", "version", "payload", "updated_at").
			Values(name, next, string(payload), updatedAt).
			Suffix("ON CONFLICT (name) DO NOTHING").
			ToSql()
	} else {
		query, args, err = s.builder.Update(documentsTable).
			Set("payload", string(payload)).
			Set("version", next).
			Set("updated_at", updatedAt).
			Where(squirrel.Eq{"name": name, "version": expectedVersion}).
			ToSql()
	}
	if err != nil {
		return 0, fmt.Errorf("%w: Put - build query: %v", ErrBuildQuery, err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: Put - execute %s: %v", ErrExecQuery, name, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: Put - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return 0, fmt.Errorf("%w: Put - %s: expected version %d", ErrVersionConflict, name, expectedVersion)
	}

	return next, nil
}

func (s *SQLStore) timestamp() interface{} {
	now := time.Now().UTC()
	if s.dialect == psqlbuilder.DialectSQLite {
		return now.Format(time.RFC3339Nano)
	}
	return now
}
