package psqlbuilder

import (
	"fmt"

	"github.com/Masterminds/squirrel"
)

// Поддерживаемые SQL-диалекты
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// psql билдер с плейсхолдерами $1, $2 для PostgreSQL
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// ForDialect возвращает билдер с плейсхолдерами нужного диалекта
func ForDialect(dialect string) (squirrel.StatementBuilderType, error) {
	switch dialect {
	case DialectPostgres:
		return psql, nil
	case DialectSQLite:
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question), nil
	default:
		return squirrel.StatementBuilderType{}, fmt.Errorf("psqlbuilder: unsupported dialect %q", dialect)
	}
}
