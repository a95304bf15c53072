// Package warehouse runs query identities as SQL against the activity warehouse.
package warehouse

import (
	"context"

	"github.com/cdolfi/explorer/internal/core/domain"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"           // Postgres driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"go.trai.ch/zerr"
)

// DriverName maps a warehouse source to its database/sql driver.
func DriverName(source string) (string, error) {
	switch source {
	case domain.SourcePostgres:
		return "postgres", nil
	case domain.SourceSQLite:
		return "sqlite3", nil
	default:
		return "", zerr.With(zerr.With(domain.ErrConfigInvalid, "field", "warehouse.source"), "value", source)
	}
}

// Open returns a lazily connecting handle for source and dsn.
func Open(source, dsn string) (*sqlx.DB, error) {
	driver, err := DriverName(source)
	if err != nil {
		return nil, err
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrWarehouseConnectFailed.Error()), "driver", driver)
	}
	return db, nil
}

// Executor implements ports.QueryExecutor for one statement.
type Executor struct {
	db   *sqlx.DB
	stmt Statement
}

// NewExecutor creates an executor for the statement registered under query.
func NewExecutor(db *sqlx.DB, query domain.QueryID) (*Executor, error) {
	stmt, ok := Statements[query]
	if !ok {
		return nil, zerr.With(domain.ErrUnknownQuery, "query", query.String())
	}
	return &Executor{db: db, stmt: stmt}, nil
}

// Execute runs the statement for repos and returns its rows as a table.
func (e *Executor) Execute(ctx context.Context, repos domain.RepoSet) (*domain.Table, error) {
	if repos.Empty() {
		return nil, domain.ErrEmptyRepoSet
	}

	query, args, err := sqlx.In(e.stmt.SQL, repos.IDs())
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrWarehouseQueryFailed.Error())
	}

	rows, err := e.db.QueryxContext(ctx, e.db.Rebind(query), args...)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrWarehouseQueryFailed.Error()), "repos", repos.String())
	}
	defer func() { _ = rows.Close() }()

	table := domain.NewTable(e.stmt.Columns...)
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, zerr.Wrap(err, domain.ErrWarehouseQueryFailed.Error())
		}
		if err := table.Append(values...); err != nil {
			return nil, zerr.Wrap(err, domain.ErrWarehouseQueryFailed.Error())
		}
	}
	if err := rows.Err(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrWarehouseQueryFailed.Error())
	}
	return table, nil
}
