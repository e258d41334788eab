package store

import (
	"context"
	"testing"
)

func TestNextSerial_EmptyTable(t *testing.T) {
	s := createTestStore(t)

	for _, table := range []string{"orders", "workers"} {
		next, err := s.NextSerial(context.Background(), table)
		if err != nil {
			t.Fatalf("NextSerial(%s) failed: %v", table, err)
		}
		if next != 1 {
			t.Errorf("NextSerial(%s) = %d on empty table, want 1", table, next)
		}
	}
}

func TestNextSerial_MaxPlusOne(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, formNo := range []string{"JF-101", "JF-102", "JF-103"} {
		if _, err := s.CreateOrder(ctx, createTestOrder(formNo, "2024-25")); err != nil {
			t.Fatalf("CreateOrder(%s) failed: %v", formNo, err)
		}
	}

	next, err := s.NextSerial(ctx, "orders")
	if err != nil {
		t.Fatalf("NextSerial() failed: %v", err)
	}
	if next != 4 {
		t.Errorf("NextSerial() = %d, want 4 (1 + max serial)", next)
	}
}

func TestNextSerial_GapAfterDelete(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	id1, err := s.CreateOrder(ctx, createTestOrder("JF-101", "2024-25"))
	if err != nil {
		t.Fatalf("CreateOrder() failed: %v", err)
	}
	if _, err := s.CreateOrder(ctx, createTestOrder("JF-102", "2024-25")); err != nil {
		t.Fatalf("CreateOrder() failed: %v", err)
	}
	if err := s.DeleteOrder(ctx, id1); err != nil {
		t.Fatalf("DeleteOrder() failed: %v", err)
	}

	// Serial follows the surviving maximum, not the row count.
	next, err := s.NextSerial(ctx, "orders")
	if err != nil {
		t.Fatalf("NextSerial() failed: %v", err)
	}
	if next != 3 {
		t.Errorf("NextSerial() = %d, want 3", next)
	}
}

func TestNextSerial_FallsBackToIDWithoutColumn(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateOrder(ctx, createTestOrder("JF-101", "2024-25")); err != nil {
		t.Fatalf("CreateOrder() failed: %v", err)
	}

	// Pre-migration store: no serial_no column.
	if _, err := s.db.Exec("ALTER TABLE orders DROP COLUMN serial_no"); err != nil {
		t.Fatalf("drop column: %v", err)
	}

	next, err := s.NextSerial(ctx, "orders")
	if err != nil {
		t.Fatalf("NextSerial() failed: %v", err)
	}
	if next != 2 {
		t.Errorf("NextSerial() = %d, want 2 (1 + max id)", next)
	}
}

func TestNextSerial_UnknownTable(t *testing.T) {
	s := createTestStore(t)

	if _, err := s.NextSerial(context.Background(), "settings"); err == nil {
		t.Error("expected error for table without a serial sequence")
	}
	if _, err := s.NextSerial(context.Background(), "orders; DROP TABLE orders"); err == nil {
		t.Error("expected error for table outside the allowlist")
	}
}
