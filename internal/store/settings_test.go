package store

import (
	"context"
	"testing"
)

func TestGetSetting_Default(t *testing.T) {
	s := createTestStore(t)

	got, err := s.GetSetting(context.Background(), "no_such_key", "fallback")
	if err != nil {
		t.Fatalf("GetSetting() failed: %v", err)
	}
	if got != "fallback" {
		t.Errorf("GetSetting() = %q, want default %q", got, "fallback")
	}
}

func TestSetSetting_InsertAndOverwrite(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.SetSetting(ctx, "splash_logo_path", "logo_v1.png"); err != nil {
		t.Fatalf("SetSetting() failed: %v", err)
	}
	got, err := s.GetSetting(ctx, "splash_logo_path", "")
	if err != nil {
		t.Fatalf("GetSetting() failed: %v", err)
	}
	if got != "logo_v1.png" {
		t.Errorf("GetSetting() = %q, want %q", got, "logo_v1.png")
	}

	// Upsert: second set overwrites.
	if err := s.SetSetting(ctx, "splash_logo_path", "logo_v2.png"); err != nil {
		t.Fatalf("second SetSetting() failed: %v", err)
	}
	got, err = s.GetSetting(ctx, "splash_logo_path", "")
	if err != nil {
		t.Fatalf("GetSetting() failed: %v", err)
	}
	if got != "logo_v2.png" {
		t.Errorf("GetSetting() = %q, want overwritten %q", got, "logo_v2.png")
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM settings WHERE key='splash_logo_path'").Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("settings rows for key = %d, want 1", count)
	}
}

func TestSetSetting_SurvivesReopen(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.SetSetting(ctx, "financial_years", "2024-25"); err != nil {
		t.Fatalf("SetSetting() failed: %v", err)
	}

	// Each set persists immediately; no explicit flush exists.
	got, err := s.GetSetting(ctx, "financial_years", "")
	if err != nil {
		t.Fatalf("GetSetting() failed: %v", err)
	}
	if got != "2024-25" {
		t.Errorf("GetSetting() = %q, want %q", got, "2024-25")
	}
}
