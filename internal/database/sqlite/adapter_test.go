package sqlite

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Rana718/Roster/internal/types"
)

func connect(t *testing.T) *Adapter {
	t.Helper()
	adapter := New()
	path := filepath.Join(t.TempDir(), "roster.db")
	if err := adapter.Connect(context.Background(), "sqlite://"+path); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	t.Cleanup(func() { adapter.Close() })
	return adapter
}

func TestReplaceTableRoundTrip(t *testing.T) {
	ctx := context.Background()
	adapter := connect(t)

	table := types.NewTable("students", "student_id", "first_name", "grade_level")
	table.Append("1", "Ada", "3")
	table.Append("2", "Grace", "")

	if err := adapter.ReplaceTable(ctx, table); err != nil {
		t.Fatalf("ReplaceTable failed: %v", err)
	}

	got, err := adapter.GetTableData(ctx, "students")
	if err != nil {
		t.Fatalf("GetTableData failed: %v", err)
	}
	if !reflect.DeepEqual(got.Columns, table.Columns) {
		t.Errorf("Expected columns %v, got %v", table.Columns, got.Columns)
	}
	if !reflect.DeepEqual(got.Rows, table.Rows) {
		t.Errorf("Expected rows %v, got %v", table.Rows, got.Rows)
	}
}

func TestReplaceTableDropsPreviousContents(t *testing.T) {
	ctx := context.Background()
	adapter := connect(t)

	first := types.NewTable("fees", "fee_id", "amount")
	first.Append("FEE01", "100")
	first.Append("FEE02", "25")
	if err := adapter.ReplaceTable(ctx, first); err != nil {
		t.Fatalf("ReplaceTable failed: %v", err)
	}

	second := types.NewTable("fees", "fee_id")
	second.Append("FEE03")
	if err := adapter.ReplaceTable(ctx, second); err != nil {
		t.Fatalf("ReplaceTable failed: %v", err)
	}

	got, err := adapter.GetTableData(ctx, "fees")
	if err != nil {
		t.Fatalf("GetTableData failed: %v", err)
	}
	if len(got.Columns) != 1 || got.Len() != 1 || got.Rows[0][0] != "FEE03" {
		t.Errorf("Expected only the second load, got %v %v", got.Columns, got.Rows)
	}
}

func TestReplaceTableLargeBatch(t *testing.T) {
	ctx := context.Background()
	adapter := connect(t)

	table := types.NewTable("attendance", "attendance_id", "student_id", "date", "status")
	for i := 0; i < 2500; i++ {
		table.Append("T", "1", "2015-09-01", "Present")
	}
	if err := adapter.ReplaceTable(ctx, table); err != nil {
		t.Fatalf("ReplaceTable failed: %v", err)
	}

	got, err := adapter.GetTableData(ctx, "attendance")
	if err != nil {
		t.Fatalf("GetTableData failed: %v", err)
	}
	if got.Len() != 2500 {
		t.Errorf("Expected 2500 rows, got %d", got.Len())
	}

	names, err := adapter.GetAllTableNames(ctx)
	if err != nil {
		t.Fatalf("GetAllTableNames failed: %v", err)
	}
	if len(names) != 1 || names[0] != "attendance" {
		t.Errorf("Expected [attendance], got %v", names)
	}
}

func TestReplaceTableRejectsBadIdentifiers(t *testing.T) {
	adapter := connect(t)
	table := types.NewTable("bad name", "id")
	if err := adapter.ReplaceTable(context.Background(), table); err == nil {
		t.Error("Expected invalid table name to be rejected")
	}
}
