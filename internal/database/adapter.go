package database

import (
	"context"

	"github.com/Rana718/Roster/internal/types"
)

// DatabaseAdapter loads whole tables into a database and reads them back.
// Every column is stored as text.
type DatabaseAdapter interface {
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error

	GetAllTableNames(ctx context.Context) ([]string, error)
	GetTableData(ctx context.Context, tableName string) (*types.Table, error)

	// ReplaceTable drops any table of the same name, recreates it and
	// inserts every row inside one transaction.
	ReplaceTable(ctx context.Context, table *types.Table) error
	DropTable(ctx context.Context, tableName string) error
}
