package types

import "testing"

func TestAppendChecksWidth(t *testing.T) {
	table := NewTable("fees", "fee_id", "amount")
	if err := table.Append("FEE01", "100"); err != nil {
		t.Fatalf("Failed to append row: %v", err)
	}
	if err := table.Append("FEE02"); err == nil {
		t.Error("Expected an error for a short row")
	}
	if table.Len() != 1 {
		t.Errorf("Expected 1 row, got %d", table.Len())
	}
}

func TestColumnLookup(t *testing.T) {
	table := NewTable("fees", "fee_id", "amount")
	if idx := table.ColumnIndex("amount"); idx != 1 {
		t.Errorf("Expected amount at 1, got %d", idx)
	}
	if table.HasColumn("currency") {
		t.Error("Expected currency to be absent")
	}
}
