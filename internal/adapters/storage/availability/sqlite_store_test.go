package availability

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"fastbreak/internal/adapters/storage"
	domain "fastbreak/internal/domain/availability"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.MigrateDB(db, ":memory:"); err != nil {
		t.Fatalf("MigrateDB failed: %v", err)
	}
	return NewSQLiteStore(db)
}

// TestStore_UnsetIsAbsence verifies an undeclared slot reads as unset
// with no error, and clearing returns a declared slot to that state.
func TestStore_UnsetIsAbsence(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	state, err := s.Get(ctx, "c-1", "2026-07-13", domain.SessionMorning)
	if err != nil {
		t.Fatalf("Get on empty store: %v", err)
	}
	if state != domain.StateUnset {
		t.Errorf("state = %s, want unset", state)
	}

	rec := domain.Record{CounselorID: "c-1", Date: "2026-07-13", Session: domain.SessionMorning, State: domain.StateAvailable}
	if err := s.Set(ctx, rec); err != nil {
		t.Fatalf("Set: %v", err)
	}
	state, _ = s.Get(ctx, "c-1", "2026-07-13", domain.SessionMorning)
	if state != domain.StateAvailable {
		t.Errorf("state = %s, want available", state)
	}

	if err := s.Clear(ctx, "c-1", "2026-07-13", domain.SessionMorning); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	state, _ = s.Get(ctx, "c-1", "2026-07-13", domain.SessionMorning)
	if state != domain.StateUnset {
		t.Errorf("state after clear = %s, want unset", state)
	}
}

// TestStore_SetIsUpsert verifies repeated sets on one slot keep a
// single row holding the latest state.
func TestStore_SetIsUpsert(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := domain.Record{CounselorID: "c-1", Date: "2026-07-13", Session: domain.SessionAfternoon, State: domain.StateAvailable}
	if err := s.Set(ctx, rec); err != nil {
		t.Fatalf("first Set: %v", err)
	}
	rec.State = domain.StateUnavailable
	if err := s.Set(ctx, rec); err != nil {
		t.Fatalf("second Set: %v", err)
	}

	records, err := s.ListMonth(ctx, "c-1", "2026-07")
	if err != nil {
		t.Fatalf("ListMonth: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("rows = %d, want 1", len(records))
	}
	if records[0].State != domain.StateUnavailable {
		t.Errorf("state = %s, want unavailable", records[0].State)
	}
}

// TestStore_RejectsUnsetRecord verifies unset is never storable.
func TestStore_RejectsUnsetRecord(t *testing.T) {
	s := openTestStore(t)

	rec := domain.Record{CounselorID: "c-1", Date: "2026-07-13", Session: domain.SessionMorning, State: domain.StateUnset}
	if err := s.Set(context.Background(), rec); err == nil {
		t.Fatal("Set accepted an unset record")
	}
}

// TestStore_MonthOps verifies bulk mark, month listing boundaries, and
// bulk clear.
func TestStore_MonthOps(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var records []domain.Record
	for _, date := range domain.MonthDates(2026, 7) {
		records = append(records, domain.Record{
			CounselorID: "c-1", Date: date, Session: domain.SessionMorning, State: domain.StateAvailable,
		})
	}
	if err := s.SetMonth(ctx, "c-1", records); err != nil {
		t.Fatalf("SetMonth: %v", err)
	}

	// A neighboring month's row must not leak in.
	s.Set(ctx, domain.Record{CounselorID: "c-1", Date: "2026-08-01", Session: domain.SessionMorning, State: domain.StateAvailable})
	// Nor another counselor's.
	s.Set(ctx, domain.Record{CounselorID: "c-2", Date: "2026-07-13", Session: domain.SessionMorning, State: domain.StateAvailable})

	got, err := s.ListMonth(ctx, "c-1", "2026-07")
	if err != nil {
		t.Fatalf("ListMonth: %v", err)
	}
	if len(got) != 31 {
		t.Errorf("July rows = %d, want 31", len(got))
	}

	if err := s.ClearMonth(ctx, "c-1", "2026-07"); err != nil {
		t.Fatalf("ClearMonth: %v", err)
	}
	got, _ = s.ListMonth(ctx, "c-1", "2026-07")
	if len(got) != 0 {
		t.Errorf("rows after ClearMonth = %d, want 0", len(got))
	}
	// August row and the other counselor survive.
	aug, _ := s.ListMonth(ctx, "c-1", "2026-08")
	if len(aug) != 1 {
		t.Errorf("August rows = %d, want 1", len(aug))
	}
	other, _ := s.ListMonth(ctx, "c-2", "2026-07")
	if len(other) != 1 {
		t.Errorf("other counselor rows = %d, want 1", len(other))
	}
}

// TestStore_DeleteByCounselor verifies the cascade helper removes only
// the target counselor's rows.
func TestStore_DeleteByCounselor(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	s.Set(ctx, domain.Record{CounselorID: "c-1", Date: "2026-07-13", Session: domain.SessionMorning, State: domain.StateAvailable})
	s.Set(ctx, domain.Record{CounselorID: "c-1", Date: "2026-07-14", Session: domain.SessionAfternoon, State: domain.StateUnavailable})
	s.Set(ctx, domain.Record{CounselorID: "c-2", Date: "2026-07-13", Session: domain.SessionMorning, State: domain.StateAvailable})

	if err := s.DeleteByCounselor(ctx, "c-1"); err != nil {
		t.Fatalf("DeleteByCounselor: %v", err)
	}

	gone, _ := s.ListMonth(ctx, "c-1", "2026-07")
	if len(gone) != 0 {
		t.Errorf("deleted counselor rows = %d, want 0", len(gone))
	}
	kept, _ := s.ListMonth(ctx, "c-2", "2026-07")
	if len(kept) != 1 {
		t.Errorf("other counselor rows = %d, want 1", len(kept))
	}
}
