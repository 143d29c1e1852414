package repositories

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/desertthunder/showtime/internal/models"
	"github.com/desertthunder/showtime/internal/shared"
	tu "github.com/desertthunder/showtime/internal/testing"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	shared.ConfigureDatabase(db, 1, 1)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func TestClientStateRepository(t *testing.T) {
	t.Run("Get Missing Key", func(t *testing.T) {
		repo := NewClientStateRepository(setupTestDB(t))

		v, ok, err := repo.Get("missing")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok || v != nil {
			t.Errorf("expected absent key, got %q", v)
		}
	})

	t.Run("Put Get Delete", func(t *testing.T) {
		repo := NewClientStateRepository(setupTestDB(t))

		if err := repo.Put("k", []byte("one")); err != nil {
			t.Fatalf("failed to put: %v", err)
		}
		if err := repo.Put("k", []byte("two")); err != nil {
			t.Fatalf("failed to overwrite: %v", err)
		}

		v, ok, err := repo.Get("k")
		if err != nil || !ok {
			t.Fatalf("expected key to exist, err=%v", err)
		}
		if string(v) != "two" {
			t.Errorf("expected overwritten value 'two', got %q", v)
		}

		if err := repo.Delete("k"); err != nil {
			t.Fatalf("failed to delete: %v", err)
		}
		if _, ok, _ := repo.Get("k"); ok {
			t.Error("expected key to be gone after delete")
		}
		if err := repo.Delete("k"); err != nil {
			t.Errorf("deleting an absent key should not fail: %v", err)
		}
	})

	t.Run("Bound Store", func(t *testing.T) {
		repo := NewClientStateRepository(setupTestDB(t))
		store := repo.Bind(SessionKey)

		if v, err := store.Load(); err != nil || v != nil {
			t.Fatalf("expected empty load, got %q, %v", v, err)
		}

		payload := []byte(`{"userId":"U1","name":"Asha"}`)
		if err := store.Save(payload); err != nil {
			t.Fatalf("failed to save: %v", err)
		}

		v, err := store.Load()
		if err != nil {
			t.Fatalf("failed to load: %v", err)
		}
		if string(v) != string(payload) {
			t.Errorf("expected %s, got %s", payload, v)
		}

		if raw, ok, _ := repo.Get("user"); !ok || string(raw) != string(payload) {
			t.Error("expected session to be stored under the user key")
		}

		if err := store.Clear(); err != nil {
			t.Fatalf("failed to clear: %v", err)
		}
		if v, _ := store.Load(); v != nil {
			t.Errorf("expected nothing after clear, got %q", v)
		}
	})

	t.Run("Closed Database", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewClientStateRepository(db)
		db.Close()

		if _, _, err := repo.Get("k"); err == nil {
			t.Error("expected error reading from closed database")
		}
		if err := repo.Put("k", nil); err == nil {
			t.Error("expected error writing to closed database")
		}
	})
}

func TestBookingRepository(t *testing.T) {
	fixed := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	orig := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = orig })

	t.Run("Empty Cache", func(t *testing.T) {
		repo := NewBookingRepository(setupTestDB(t))

		cached, err := repo.ListByUser("U1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cached.Bookings) != 0 {
			t.Errorf("expected no bookings, got %d", len(cached.Bookings))
		}
		if !cached.FetchedAt.IsZero() {
			t.Errorf("expected zero fetch time, got %v", cached.FetchedAt)
		}
	})

	t.Run("Replace And List", func(t *testing.T) {
		repo := NewBookingRepository(setupTestDB(t))

		if err := repo.Replace("U1", tu.SampleBookings()); err != nil {
			t.Fatalf("failed to replace: %v", err)
		}

		cached, err := repo.ListByUser("U1")
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(cached.Bookings) != 1 {
			t.Fatalf("expected 1 booking, got %d", len(cached.Bookings))
		}

		b := cached.Bookings[0]
		if b.BookingID != "BK1" || b.ShowID != "S1" || b.MovieID != "M1" {
			t.Errorf("unexpected booking ids: %+v", b)
		}
		if len(b.SelectedSeats) != 2 || b.SelectedSeats[0] != "A1" || b.SelectedSeats[1] != "A2" {
			t.Errorf("expected seats [A1 A2], got %v", b.SelectedSeats)
		}
		if !b.TotalAmount.Equal(decimal.NewFromInt(400)) {
			t.Errorf("expected total 400, got %s", b.TotalAmount)
		}
		if !cached.FetchedAt.Equal(fixed) {
			t.Errorf("expected fetched at %v, got %v", fixed, cached.FetchedAt)
		}
	})

	t.Run("Replace Drops Stale Rows", func(t *testing.T) {
		repo := NewBookingRepository(setupTestDB(t))

		first := []models.Booking{
			{BookingID: "BK1", SelectedSeats: []string{"A1"}, TotalAmount: decimal.NewFromInt(200)},
			{BookingID: "BK2", SelectedSeats: []string{"B1"}, TotalAmount: decimal.NewFromInt(200)},
		}
		if err := repo.Replace("U1", first); err != nil {
			t.Fatalf("failed to replace: %v", err)
		}
		if err := repo.Replace("U1", first[1:]); err != nil {
			t.Fatalf("failed to replace: %v", err)
		}

		cached, _ := repo.ListByUser("U1")
		if len(cached.Bookings) != 1 || cached.Bookings[0].BookingID != "BK2" {
			t.Errorf("expected only BK2 to remain, got %+v", cached.Bookings)
		}
	})

	t.Run("Users Are Isolated", func(t *testing.T) {
		repo := NewBookingRepository(setupTestDB(t))

		if err := repo.Replace("U1", tu.SampleBookings()); err != nil {
			t.Fatalf("failed to replace: %v", err)
		}
		if err := repo.Replace("U2", nil); err != nil {
			t.Fatalf("failed to replace: %v", err)
		}

		cached, _ := repo.ListByUser("U1")
		if len(cached.Bookings) != 1 {
			t.Errorf("expected U1 cache untouched, got %d bookings", len(cached.Bookings))
		}
	})

	t.Run("Clear", func(t *testing.T) {
		repo := NewBookingRepository(setupTestDB(t))

		if err := repo.Replace("U1", tu.SampleBookings()); err != nil {
			t.Fatalf("failed to replace: %v", err)
		}

		n, err := repo.Clear("U1")
		if err != nil {
			t.Fatalf("failed to clear: %v", err)
		}
		if n != 1 {
			t.Errorf("expected 1 cleared booking, got %d", n)
		}

		cached, _ := repo.ListByUser("U1")
		if len(cached.Bookings) != 0 {
			t.Errorf("expected empty cache, got %d bookings", len(cached.Bookings))
		}
	})
}
