package metrics

import (
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"train-reservations/models"
)

func TestOutcomeOf(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, OutcomeSuccess},
		{fmt.Errorf("train 101: %w", models.ErrDuplicateTrain), OutcomeDuplicate},
		{fmt.Errorf("Window: %w", models.ErrNoSeatAvailable), OutcomeNoSeat},
		{models.ErrSeatUnavailable, OutcomeUnavailable},
		{fmt.Errorf("seat 60: %w", models.ErrNotFound), OutcomeNotFound},
		{&models.StorageError{Op: "insert", Err: errors.New("disk full")}, OutcomeError},
	}
	for _, c := range cases {
		if got := OutcomeOf(c.err); got != c.want {
			t.Errorf("OutcomeOf(%v) = %s, want %s", c.err, got, c.want)
		}
	}
}

func TestCountersAndHandler(t *testing.T) {
	m := New()
	m.Bookings.WithLabelValues("Window", OutcomeSuccess).Inc()
	m.Bookings.WithLabelValues("Window", OutcomeSuccess).Inc()
	m.Cancellations.WithLabelValues(OutcomeSuccess).Inc()
	m.Observe("book_ticket", time.Now())

	if got := testutil.ToFloat64(m.Bookings.WithLabelValues("Window", OutcomeSuccess)); got != 2 {
		t.Fatalf("expected 2 bookings, got %v", got)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "railways_bookings_total") {
		t.Fatalf("metrics output missing bookings counter:\n%s", body)
	}
}

func TestObserveOnNilMetrics(t *testing.T) {
	var m *Metrics
	m.Observe("noop", time.Now())
}
