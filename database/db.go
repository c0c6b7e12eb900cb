package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"train-reservations/config"
)

// Options controls how Open establishes the connection
type Options struct {
	Retries    int
	RetryDelay time.Duration
	Logger     zerolog.Logger
}

// Store is the SQL-backed persistence gateway. It is safe for concurrent use.
type Store struct {
	*queries
	db     *sql.DB
	driver string
	log    zerolog.Logger
}

// Connect opens the store described by cfg and ensures its schema exists
func Connect(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Store, error) {
	store, err := Open(ctx, cfg.StoreDriver, cfg.DSN(), Options{
		Retries:    cfg.ConnectRetries,
		RetryDelay: cfg.ConnectRetryDelay,
		Logger:     log,
	})
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// Open establishes a connection using driver "sqlite" or "postgres"
func Open(ctx context.Context, driver, dsn string, opts Options) (*Store, error) {
	var d dialect
	switch driver {
	case config.DriverSQLite:
		d = sqliteDialect{}
		if dsn == "" {
			dsn = "railways.db"
		}
		if dsn != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(dsn), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
				return nil, fmt.Errorf("create dirs: %w", err)
			}
		}
	case config.DriverPostgres:
		d = postgresDialect{}
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Configure connection pool
	if driver == config.DriverSQLite {
		// a single connection serializes writers and keeps :memory: databases alive
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	store := &Store{
		queries: &queries{q: db, dialect: d},
		db:      db,
		driver:  driver,
		log:     opts.Logger,
	}

	if err := store.ping(ctx, opts); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// ping tests the connection with retries
func (s *Store) ping(ctx context.Context, opts Options) error {
	maxRetries := opts.Retries
	if maxRetries < 1 {
		maxRetries = 1
	}
	var err error
	for i := 0; i < maxRetries; i++ {
		err = s.db.PingContext(ctx)
		if err == nil {
			s.log.Info().Str("driver", s.driver).Msg("Successfully connected to database")
			return nil
		}
		s.log.Warn().Err(err).Msgf("Failed to connect to database (attempt %d/%d)", i+1, maxRetries)
		if i+1 == maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(opts.RetryDelay):
		}
	}
	return fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Driver reports which SQL driver backs the store
func (s *Store) Driver() string {
	return s.driver
}

// DB returns the underlying connection pool
func (s *Store) DB() *sql.DB {
	return s.db
}

// RunInTx executes fn inside one transaction. The Gateway handed to fn is
// bound to that transaction; any error returned by fn rolls everything back.
func (s *Store) RunInTx(ctx context.Context, fn func(Gateway) error) (retErr error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin transaction", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	if err := fn(&queries{q: tx, dialect: s.dialect}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return storageErr("commit transaction", err)
	}
	return nil
}
