package database

import (
	"errors"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// dialect papers over the differences between the supported SQL engines
type dialect interface {
	// rebind rewrites ? placeholders into the engine's native form
	rebind(query string) string
	// lockClause is appended to selects that precede an update in the same tx
	lockClause() string
	isUniqueViolation(err error) bool
}

type sqliteDialect struct{}

func (sqliteDialect) rebind(query string) string { return query }

// SQLite locks the whole database for the writing transaction
func (sqliteDialect) lockClause() string { return "" }

func (sqliteDialect) isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return true
	}
	return false
}

type postgresDialect struct{}

func (postgresDialect) rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (postgresDialect) lockClause() string { return " FOR UPDATE" }

func (postgresDialect) isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
