package storage

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/duitku/duitku-server/internal/config"
	"github.com/duitku/duitku-server/internal/storage/category"
	"github.com/duitku/duitku-server/internal/storage/savings"
	"github.com/duitku/duitku-server/internal/storage/transaction"
)

// Pool limits. Each request handles at most one connection at a time; ten
// is plenty for the expected load and bounds the damage of a stampede.
const (
	maxOpenConns    = 10
	maxIdleConns    = 5
	connMaxIdleTime = 5 * time.Minute
	connMaxLifetime = 30 * time.Minute
)

// Storage bundles the pooled database handle and per-entity tables.
// Tables are interfaces so tests can swap in mocks.
type Storage struct {
	DB           *sql.DB
	bobDB        bob.DB
	Transactions transaction.ITransactionTable
	Savings      savings.ISavingsTable
	Categories   category.ICategoryTable
}

func NewStorage(env *config.Config) (*Storage, error) {
	db, err := sql.Open("postgres", env.PostgresDSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxIdleTime(connMaxIdleTime)
	db.SetConnMaxLifetime(connMaxLifetime)

	bobDB := bob.NewDB(db)
	return &Storage{
		DB:           db,
		bobDB:        bobDB,
		Transactions: transaction.NewTable(bobDB),
		Savings:      savings.NewTable(bobDB),
		Categories:   category.NewTable(bobDB),
	}, nil
}

// Write begins a database transaction and returns a Writer over it. The
// caller must Commit or Rollback.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.bobDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return NewWriter(tx), nil
}
