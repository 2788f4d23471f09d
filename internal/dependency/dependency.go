package dependency

import (
	"context"
	"database/sql"

	"github.com/jekabolt/grbpwr-waitlist/internal/entity"
	"github.com/jmoiron/sqlx"
)

type (
	ContextStore interface {
		Tx(ctx context.Context, fn func(ctx context.Context, store Repository) error) error
	}

	// Waitlist is the entry store adapter.
	// Lookups of a missing entry return an error wrapping sql.ErrNoRows.
	Waitlist interface {
		// AddWaitlistEntry inserts a new entry. A duplicate email returns entity.ErrWaitlistEmailTaken.
		AddWaitlistEntry(ctx context.Context, entry *entity.WaitlistEntry) error
		// GetWaitlistEntryById returns an entry by its id.
		GetWaitlistEntryById(ctx context.Context, id string) (*entity.WaitlistEntry, error)
		// GetWaitlistEntryByEmail returns an entry by its email.
		GetWaitlistEntryByEmail(ctx context.Context, email string) (*entity.WaitlistEntry, error)
		// ListWaitlistEntries returns a page of entries matching the query.
		ListWaitlistEntries(ctx context.Context, q entity.WaitlistQuery) ([]entity.WaitlistEntry, error)
		// CountWaitlistEntries counts entries matching all filters.
		CountWaitlistEntries(ctx context.Context, filters []entity.WaitlistFilter) (int, error)
		// ProcessWaitlistEntry moves a pending entry to a terminal status.
		// An entry already out of pending returns entity.ErrWaitlistEntryProcessed.
		ProcessWaitlistEntry(ctx context.Context, id string, p entity.WaitlistProcess) (*entity.WaitlistEntry, error)
	}

	Repository interface {
		Waitlist() Waitlist
		Tx(ctx context.Context, f func(context.Context, Repository) error) error
		Ping(ctx context.Context) error
		Close()
	}

	// DB represents database interface.
	DB interface {
		BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
		GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
		QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
		SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	}
)
