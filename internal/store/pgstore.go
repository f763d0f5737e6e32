package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vintagecoffee/internal/apperr"
)

// pgMaxRetries bounds the optimistic-write retry loop. Contention here is a
// handful of counter terminals, so a lost race resolves within a retry or two.
const pgMaxRetries = 16

// PGStore keeps each collection as a single versioned jsonb row. Updates are
// compare-and-swap on the version column, retried a bounded number of times;
// exhausting the retries surfaces a Conflict to the caller.
type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(ctx context.Context, pool *pgxpool.Pool) (*PGStore, error) {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS collections (
			name    text PRIMARY KEY,
			version bigint NOT NULL DEFAULT 0,
			data    jsonb  NOT NULL
		)`)
	if err != nil {
		return nil, fmt.Errorf("prepare collections table: %w", err)
	}
	return &PGStore{pool: pool}, nil
}

func (s *PGStore) Read(ctx context.Context, col Collection) ([]byte, error) {
	data, _, err := s.snapshot(ctx, col)
	return data, err
}

func (s *PGStore) Update(ctx context.Context, col Collection, fn func(current []byte) ([]byte, error)) error {
	return casUpdate(ctx, s, col, fn)
}

// casBackend is the row-level surface the retry loop drives, split from the
// loop itself so the bounded-retry behavior has coverage without a database.
type casBackend interface {
	// snapshot returns the current data and version, with version -1 when
	// the collection has never been written.
	snapshot(ctx context.Context, col Collection) ([]byte, int64, error)
	// insert creates the collection row at version 0; false means another
	// writer created it first.
	insert(ctx context.Context, col Collection, data []byte) (bool, error)
	// replace swaps the row's data iff the version still matches; false
	// means the CAS lost a race.
	replace(ctx context.Context, col Collection, data []byte, version int64) (bool, error)
}

func casUpdate(ctx context.Context, b casBackend, col Collection, fn func(current []byte) ([]byte, error)) error {
	for attempt := 0; attempt < pgMaxRetries; attempt++ {
		current, version, err := b.snapshot(ctx, col)
		if err != nil {
			return err
		}
		next, err := fn(current)
		if err != nil {
			return err
		}

		if version < 0 {
			// First write for this collection; a concurrent first writer
			// wins the insert and we retry against its row.
			ok, err := b.insert(ctx, col, next)
			if err != nil {
				return err
			}
			if ok {
				return nil
			}
			continue
		}

		ok, err := b.replace(ctx, col, next, version)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return apperr.New(apperr.Conflict, "collection %s is under contention, please retry", col)
}

func (s *PGStore) snapshot(ctx context.Context, col Collection) ([]byte, int64, error) {
	var data []byte
	var version int64
	err := s.pool.QueryRow(ctx,
		"SELECT data, version FROM collections WHERE name = $1", string(col),
	).Scan(&data, &version)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, -1, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("read collection %s: %w", col, err)
	}
	return data, version, nil
}

func (s *PGStore) insert(ctx context.Context, col Collection, data []byte) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		"INSERT INTO collections (name, version, data) VALUES ($1, 0, $2) ON CONFLICT (name) DO NOTHING",
		string(col), data)
	if err != nil {
		return false, fmt.Errorf("insert collection %s: %w", col, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (s *PGStore) replace(ctx context.Context, col Collection, data []byte, version int64) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		"UPDATE collections SET data = $2, version = version + 1 WHERE name = $1 AND version = $3",
		string(col), data, version)
	if err != nil {
		return false, fmt.Errorf("replace collection %s: %w", col, err)
	}
	return tag.RowsAffected() == 1, nil
}
