// Package store provides the persistence contract backing all collections:
// whole-collection read and whole-collection replace, with the
// read-modify-write cycle made safe against concurrent requests. Two
// adapters exist: a JSON file store with per-collection locks and a
// Postgres store with versioned compare-and-swap writes.
package store

import (
	"context"
	"encoding/json"
	"fmt"
)

type Collection string

const (
	Catalog  Collection = "menu"
	Users    Collection = "users"
	Orders   Collection = "orders"
	Invoices Collection = "invoices"
	Payments Collection = "payments"
	Reviews  Collection = "reviews"
)

// Store is the durable persistence capability. Read returns the current
// snapshot of a collection (nil if it has never been written). Update runs
// fn inside the collection's critical section: fn receives the current
// snapshot and returns the replacement, and no concurrent Update on the
// same collection can interleave with the read-modify-write cycle. An
// error from fn aborts the update and is returned verbatim.
type Store interface {
	Read(ctx context.Context, col Collection) ([]byte, error)
	Update(ctx context.Context, col Collection, fn func(current []byte) ([]byte, error)) error
}

// View reads a collection and decodes it into T. A collection that has
// never been written decodes to T's zero value.
func View[T any](ctx context.Context, s Store, col Collection) (T, error) {
	var v T
	data, err := s.Read(ctx, col)
	if err != nil {
		return v, err
	}
	if len(data) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("decode collection %s: %w", col, err)
	}
	return v, nil
}

// Mutate runs fn against the decoded collection and persists the result
// atomically. It returns the value as persisted.
func Mutate[T any](ctx context.Context, s Store, col Collection, fn func(*T) error) (T, error) {
	var out T
	err := s.Update(ctx, col, func(current []byte) ([]byte, error) {
		var v T
		if len(current) > 0 {
			if err := json.Unmarshal(current, &v); err != nil {
				return nil, fmt.Errorf("decode collection %s: %w", col, err)
			}
		}
		if err := fn(&v); err != nil {
			return nil, err
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode collection %s: %w", col, err)
		}
		out = v
		return data, nil
	})
	return out, err
}
