package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/Roster/internal/database/common"
	"github.com/Rana718/Roster/internal/types"
	_ "github.com/mattn/go-sqlite3"
)

type Adapter struct {
	db *sql.DB
	qb squirrel.StatementBuilderType
}

func New() *Adapter {
	return &Adapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

func quote(name string) string {
	return `"` + name + `"`
}

func (s *Adapter) Connect(ctx context.Context, url string) error {
	dbPath := strings.TrimPrefix(url, "sqlite://")
	if !strings.Contains(dbPath, "?") {
		dbPath += "?_journal_mode=WAL"
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open SQLite connection: %w", err)
	}

	// one writer keeps the file lock uncontended
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(5 * time.Minute)

	s.db = db
	return nil
}

func (s *Adapter) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Adapter) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Adapter) GetAllTableNames(ctx context.Context) ([]string, error) {
	query := s.qb.Select("name").From("sqlite_master").
		Where(squirrel.Eq{"type": "table"}).
		Where(squirrel.NotLike{"name": "sqlite_%"}).
		OrderBy("name")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

func (s *Adapter) GetTableData(ctx context.Context, tableName string) (*types.Table, error) {
	sql, args, err := s.qb.Select("*").From(quote(tableName)).OrderBy("rowid").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", tableName, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	table, err := common.ScanTable(tableName, columns, rows.Next, rows.Scan)
	if err != nil {
		return nil, err
	}
	return table, rows.Err()
}

func (s *Adapter) DropTable(ctx context.Context, tableName string) error {
	_, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+quote(tableName))
	return err
}

func (s *Adapter) ReplaceTable(ctx context.Context, table *types.Table) error {
	if err := common.ValidateTable(table); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	name := quote(table.Name)
	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+name); err != nil {
		return fmt.Errorf("failed to drop %s: %w", table.Name, err)
	}
	create := fmt.Sprintf("CREATE TABLE %s (%s)", name, common.TextColumnDefs(table.Columns, quote))
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("failed to create %s: %w", table.Name, err)
	}

	columns := common.QuoteAll(table.Columns, quote)
	for _, batch := range common.Batches(table.Rows, len(columns)) {
		insert := s.qb.Insert(name).Columns(columns...)
		for _, row := range batch {
			insert = insert.Values(common.Args(row)...)
		}
		sql, args, err := insert.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, sql, args...); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table.Name, err)
		}
	}

	return tx.Commit()
}
