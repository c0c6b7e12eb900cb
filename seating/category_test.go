package seating

import (
	"testing"

	"train-reservations/models"
)

func TestCategorizeTable(t *testing.T) {
	want := map[int]models.Category{
		0: models.Window, 1: models.Middle, 2: models.Aisle, 3: models.Aisle, 4: models.Window,
		5: models.Window, 6: models.Aisle, 7: models.Aisle, 8: models.Middle, 9: models.Window,
	}
	for block := 0; block < 5; block++ {
		for mod, cat := range want {
			n := block*10 + mod
			if n == 0 {
				continue
			}
			if got := Categorize(n); got != cat {
				t.Errorf("Categorize(%d) = %s, want %s", n, got, cat)
			}
		}
	}
}

func TestCategorizeExamples(t *testing.T) {
	cases := []struct {
		seat int
		want models.Category
	}{
		{1, models.Middle},
		{10, models.Window},
		{23, models.Aisle},
		{48, models.Middle},
		{1009, models.Window},
	}
	for _, c := range cases {
		if got := Categorize(c.seat); got != c.want {
			t.Errorf("Categorize(%d) = %s, want %s", c.seat, got, c.want)
		}
	}
}

func TestLayoutDistribution(t *testing.T) {
	seats := Layout(DefaultCapacity)
	if len(seats) != DefaultCapacity {
		t.Fatalf("expected %d seats, got %d", DefaultCapacity, len(seats))
	}
	counts := map[models.Category]int{}
	for i, seat := range seats {
		if seat.Number != i+1 {
			t.Fatalf("seat at index %d numbered %d", i, seat.Number)
		}
		if seat.Booked || seat.Passenger != (models.Passenger{}) {
			t.Fatalf("seat %d should start unbooked and empty", seat.Number)
		}
		counts[seat.Category]++
	}
	if counts[models.Window] != 20 || counts[models.Aisle] != 20 || counts[models.Middle] != 10 {
		t.Fatalf("unexpected distribution %v", counts)
	}
}
