package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestPostgresRebind(t *testing.T) {
	got := postgresDialect{}.rebind("SELECT a FROM t WHERE x = ? AND y = ?")
	want := "SELECT a FROM t WHERE x = $1 AND y = $2"
	if got != want {
		t.Fatalf("rebind = %q, want %q", got, want)
	}
	if q := (sqliteDialect{}).rebind("x = ?"); q != "x = ?" {
		t.Fatalf("sqlite rebind should be identity, got %q", q)
	}
}

func TestLockClause(t *testing.T) {
	if got := (postgresDialect{}).lockClause(); got != " FOR UPDATE" {
		t.Errorf("postgres lock clause = %q", got)
	}
	if got := (sqliteDialect{}).lockClause(); got != "" {
		t.Errorf("sqlite lock clause = %q, want empty", got)
	}
}

func TestPostgresUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"unique violation", &pq.Error{Code: "23505"}, true},
		{"wrapped unique violation", fmt.Errorf("insert train: %w", &pq.Error{Code: "23505"}), true},
		{"foreign key violation", &pq.Error{Code: "23503"}, false},
		{"not null violation", &pq.Error{Code: "23502"}, false},
		{"plain error", errors.New("duplicate key"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (postgresDialect{}).isUniqueViolation(tt.err); got != tt.want {
				t.Fatalf("isUniqueViolation(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestSQLiteUniqueViolation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	insert := `INSERT INTO trains (train_number, train_name, start_destination, end_destination, departure_date)
		VALUES ('101', 'Coastal Express', 'Chennai', 'Mumbai', '2026-11-02')`
	if _, err := store.DB().ExecContext(ctx, insert); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	_, err := store.DB().ExecContext(ctx, insert)
	if err == nil {
		t.Fatalf("expected duplicate key error")
	}
	if !(sqliteDialect{}).isUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}

	_, err = store.DB().ExecContext(ctx, `INSERT INTO trains (train_number) VALUES ('202')`)
	if err == nil || (sqliteDialect{}).isUniqueViolation(err) {
		t.Fatalf("not null failure should not count as unique violation, got %v", err)
	}

	if (sqliteDialect{}).isUniqueViolation(&pq.Error{Code: "23505"}) {
		t.Fatalf("sqlite dialect must ignore postgres errors")
	}
	if (postgresDialect{}).isUniqueViolation(err) {
		t.Fatalf("postgres dialect must ignore sqlite errors")
	}
}
