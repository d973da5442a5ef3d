package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/Roster/internal/database/common"
	"github.com/Rana718/Roster/internal/types"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type Adapter struct {
	pool *pgxpool.Pool
	qb   squirrel.StatementBuilderType
}

func New() *Adapter {
	return &Adapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (p *Adapter) Connect(ctx context.Context, url string) error {
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return fmt.Errorf("failed to parse connection URL: %w", err)
	}

	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	config.MaxConns = 2
	config.MinConns = 0
	config.MaxConnLifetime = 15 * time.Minute
	config.MaxConnIdleTime = 3 * time.Minute
	config.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	p.pool = pool
	return nil
}

func (p *Adapter) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

func (p *Adapter) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Adapter) GetAllTableNames(ctx context.Context) ([]string, error) {
	query := p.qb.Select("table_name").From("information_schema.tables").
		Where("table_schema = current_schema()").
		Where(squirrel.Eq{"table_type": "BASE TABLE"}).
		OrderBy("table_name")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := p.pool.Query(ctx, sql, args...)
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

func (p *Adapter) GetTableData(ctx context.Context, tableName string) (*types.Table, error) {
	sql, args, err := p.qb.Select("*").From(pq.QuoteIdentifier(tableName)).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", tableName, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}
	table, err := common.ScanTable(tableName, columns, rows.Next, rows.Scan)
	if err != nil {
		return nil, err
	}
	return table, rows.Err()
}

func (p *Adapter) DropTable(ctx context.Context, tableName string) error {
	_, err := p.pool.Exec(ctx, "DROP TABLE IF EXISTS "+pq.QuoteIdentifier(tableName))
	return err
}

// ReplaceTable recreates the table and streams its rows with COPY.
func (p *Adapter) ReplaceTable(ctx context.Context, table *types.Table) error {
	if err := common.ValidateTable(table); err != nil {
		return err
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	name := pq.QuoteIdentifier(table.Name)
	if _, err := tx.Exec(ctx, "DROP TABLE IF EXISTS "+name); err != nil {
		return fmt.Errorf("failed to drop %s: %w", table.Name, err)
	}
	create := fmt.Sprintf("CREATE TABLE %s (%s)", name, common.TextColumnDefs(table.Columns, pq.QuoteIdentifier))
	if _, err := tx.Exec(ctx, create); err != nil {
		return fmt.Errorf("failed to create %s: %w", table.Name, err)
	}

	rows := make([][]interface{}, len(table.Rows))
	for i, row := range table.Rows {
		rows[i] = common.Args(row)
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{table.Name}, table.Columns, pgx.CopyFromRows(rows)); err != nil {
		return fmt.Errorf("copy into %s: %w", table.Name, err)
	}

	return tx.Commit(ctx)
}
