package db

import (
	"testing"
)

func TestOpen_AppliesMigrations(t *testing.T) {
	d, err := Open("file:dbtest_apply?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer d.Close()

	for _, table := range []string{"sos_requests", "help_offers", "relief_camps"} {
		var n int
		if err := d.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&n); err != nil {
			t.Fatalf("query %s: %v", table, err)
		}
		if n != 1 {
			t.Fatalf("table %s missing", table)
		}
	}

	st, err := Status(d)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if len(st) == 0 || !st[0].Applied || st[0].Version != 1 || st[0].Name != "intake" {
		t.Fatalf("unexpected status: %+v", st)
	}

	// Applying again is a no-op.
	done, err := ApplyMigrations(d)
	if err != nil {
		t.Fatalf("re-apply: %v", err)
	}
	if len(done) != 0 {
		t.Fatalf("expected nothing applied, got %v", done)
	}
}

func TestRollbackLast(t *testing.T) {
	d, err := Open("file:dbtest_rollback?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer d.Close()

	v, err := RollbackLast(d)
	if err != nil {
		t.Fatalf("rollback: %v", err)
	}
	if v != 1 {
		t.Fatalf("rolled back version = %d, want 1", v)
	}
	var n int
	if err := d.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='sos_requests'`).Scan(&n); err != nil {
		t.Fatalf("query: %v", err)
	}
	if n != 0 {
		t.Fatalf("sos_requests should be dropped")
	}

	// Nothing left to roll back.
	if v, err := RollbackLast(d); err != nil || v != 0 {
		t.Fatalf("second rollback = %d, %v", v, err)
	}

	done, err := ApplyMigrations(d)
	if err != nil {
		t.Fatalf("re-apply: %v", err)
	}
	if len(done) != 1 || done[0] != 1 {
		t.Fatalf("re-applied = %v", done)
	}
}

func TestIsConstraintViolation(t *testing.T) {
	d, err := Open("file:dbtest_constraint?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer d.Close()

	_, err = d.Exec(`INSERT INTO relief_camps (name, district, location_description, capacity, current_occupancy, created_at, updated_at)
		VALUES ('Camp', 'Kandy', 'Hall', -1, 0, '', '')`)
	if err == nil {
		t.Fatalf("expected CHECK failure for negative capacity")
	}
	if !IsConstraintViolation(err) {
		t.Fatalf("expected constraint violation, got %v", err)
	}
}
