package store

import (
	"path/filepath"
	"testing"

	"orderdesk/internal/model"
)

// createTestStore creates a fresh store in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestOrder builds a valid order for the given form number.
func createTestOrder(formNo, fy string) model.Order {
	return model.Order{
		CustomerName:         "ASHA MEHTA",
		Phone:                "9876543210",
		FormNo:               formNo,
		OrderDate:            "01/06/2024",
		Item:                 "GOLD BANGLE",
		CustomerDeliveryDate: "15/06/2024",
		WorkerDeliveryDate:   "10/06/2024",
		IssuedTo:             "RAMESH",
		FinancialYear:        fy,
	}
}

// createTestWorker builds a valid worker profile.
func createTestWorker(name string) model.Worker {
	return model.Worker{
		Name:        name,
		Alias:       "R",
		CompanyName: "SHREE GOLD WORKS",
		Address:     "12 MARKET LANE",
		WorkType:    "BANGLES",
		Contact:     "9800000000",
	}
}
