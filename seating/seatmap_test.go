package seating

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"train-reservations/config"
	"train-reservations/database"
	"train-reservations/models"
)

func newSeatMap(t *testing.T, capacity int) (*SeatMap, *database.Store) {
	t.Helper()
	ctx := context.Background()
	store, err := database.Open(ctx, config.DriverSQLite, filepath.Join(t.TempDir(), "seats.db"),
		database.Options{Retries: 1, Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	m := New(store, "101")
	if err := m.Initialize(ctx, capacity); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return m, store
}

var alice = models.Passenger{Name: "Alice", Age: 30, Gender: models.Female}

func TestInitializeSeedsUnbookedSeats(t *testing.T) {
	m, _ := newSeatMap(t, DefaultCapacity)
	seats, err := m.ListSeats(context.Background())
	if err != nil {
		t.Fatalf("list seats: %v", err)
	}
	if len(seats) != DefaultCapacity {
		t.Fatalf("expected %d seats, got %d", DefaultCapacity, len(seats))
	}
	for i, seat := range seats {
		if seat.Number != i+1 || seat.Booked || seat.Category != Categorize(seat.Number) {
			t.Fatalf("unexpected seat %+v", seat)
		}
	}

	free, err := m.Availability(context.Background())
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if free[models.Window] != 20 || free[models.Aisle] != 20 || free[models.Middle] != 10 {
		t.Fatalf("unexpected availability %v", free)
	}
}

func TestInitializeTwiceFails(t *testing.T) {
	m, _ := newSeatMap(t, 10)
	err := m.Initialize(context.Background(), 10)
	if !errors.Is(err, models.ErrSeatMapExists) || !errors.Is(err, models.ErrStorage) {
		t.Fatalf("expected seat map exists, got %v", err)
	}
}

func TestFindNextAvailableLowestSeat(t *testing.T) {
	m, _ := newSeatMap(t, DefaultCapacity)
	ctx := context.Background()

	wantWindows := []int{4, 5, 9, 10}
	for _, want := range wantWindows {
		got, err := m.FindNextAvailable(ctx, models.Window)
		if err != nil {
			t.Fatalf("find window: %v", err)
		}
		if got != want {
			t.Fatalf("expected window seat %d, got %d", want, got)
		}
		if err := m.Book(ctx, got, alice); err != nil {
			t.Fatalf("book %d: %v", got, err)
		}
	}

	// freeing an earlier seat makes it the next candidate again
	if err := m.Cancel(ctx, 5); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	got, err := m.FindNextAvailable(ctx, models.Window)
	if err != nil || got != 5 {
		t.Fatalf("expected seat 5 after cancel, got %d (%v)", got, err)
	}
}

func TestFindNextAvailableExhausted(t *testing.T) {
	m, _ := newSeatMap(t, 10)
	ctx := context.Background()
	for _, n := range []int{1, 8} {
		if err := m.Book(ctx, n, alice); err != nil {
			t.Fatalf("book middle %d: %v", n, err)
		}
	}
	if _, err := m.FindNextAvailable(ctx, models.Middle); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := m.FindNextAvailable(ctx, models.Aisle); err != nil {
		t.Fatalf("aisle should still be available: %v", err)
	}
}

func TestBookTwiceIsUnavailable(t *testing.T) {
	m, _ := newSeatMap(t, 10)
	ctx := context.Background()
	if err := m.Book(ctx, 3, alice); err != nil {
		t.Fatalf("book: %v", err)
	}
	bob := models.Passenger{Name: "Bob", Age: 41, Gender: models.Male}
	if err := m.Book(ctx, 3, bob); !errors.Is(err, models.ErrSeatUnavailable) {
		t.Fatalf("expected seat unavailable, got %v", err)
	}
	seats, _ := m.ListSeats(ctx)
	if seats[2].Passenger != alice {
		t.Fatalf("failed booking must not mutate the seat, got %+v", seats[2])
	}
}

func TestBookOutOfRange(t *testing.T) {
	m, _ := newSeatMap(t, 10)
	for _, n := range []int{0, -1, 11} {
		if err := m.Book(context.Background(), n, alice); !errors.Is(err, models.ErrNotFound) {
			t.Fatalf("seat %d: expected not found, got %v", n, err)
		}
	}
}

func TestStoredRowsDefineSeats(t *testing.T) {
	_, store := newSeatMap(t, 60)
	ctx := context.Background()

	// a fresh binding knows nothing about the size the map was seeded with
	m := New(store, "101")
	if err := m.Book(ctx, 55, alice); err != nil {
		t.Fatalf("book seat 55: %v", err)
	}
	if err := m.Cancel(ctx, 55); err != nil {
		t.Fatalf("cancel seat 55: %v", err)
	}
	if err := m.Book(ctx, 61, alice); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("seat 61: expected not found, got %v", err)
	}
	seats, err := m.ListSeats(ctx)
	if err != nil || len(seats) != 60 {
		t.Fatalf("expected 60 seats, got %d (%v)", len(seats), err)
	}
}

func TestInitializeDefaultsCapacity(t *testing.T) {
	_, store := newSeatMap(t, 10)
	m := New(store, "202")
	if err := m.Initialize(context.Background(), 0); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	seats, err := m.ListSeats(context.Background())
	if err != nil || len(seats) != DefaultCapacity {
		t.Fatalf("expected %d seats, got %d (%v)", DefaultCapacity, len(seats), err)
	}
}

func TestBookCancelRoundTrip(t *testing.T) {
	m, _ := newSeatMap(t, 10)
	ctx := context.Background()
	before, _ := m.ListSeats(ctx)

	if err := m.Book(ctx, 7, alice); err != nil {
		t.Fatalf("book: %v", err)
	}
	if err := m.Cancel(ctx, 7); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	// cancelling a free seat is a silent success
	if err := m.Cancel(ctx, 7); err != nil {
		t.Fatalf("second cancel: %v", err)
	}

	after, _ := m.ListSeats(ctx)
	if after[6] != before[6] {
		t.Fatalf("round trip changed seat: before %+v after %+v", before[6], after[6])
	}
}

func TestCancelOutOfRange(t *testing.T) {
	m, _ := newSeatMap(t, 10)
	if err := m.Cancel(context.Background(), 51); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDestroyIsIdempotent(t *testing.T) {
	m, _ := newSeatMap(t, 10)
	ctx := context.Background()
	if err := m.Destroy(ctx); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if err := m.Destroy(ctx); err != nil {
		t.Fatalf("second destroy: %v", err)
	}
	seats, err := m.ListSeats(ctx)
	if err != nil || len(seats) != 0 {
		t.Fatalf("expected empty map, got %d seats (%v)", len(seats), err)
	}
	if err := m.Cancel(ctx, 1); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("cancel on destroyed map: expected not found, got %v", err)
	}
	if err := m.Initialize(ctx, 10); err != nil {
		t.Fatalf("re-initialize after destroy: %v", err)
	}
}
