package store

import (
	"context"

	"github.com/giannigrespan/FInance-tracker-Gemini/internal/core"
)

// Ports for the transaction store. Implementations own id assignment,
// ordering and durability; the engines only ever see the List snapshot.
type (
	Appender interface {
		// Append assigns a fresh unique id to the entry and inserts it at
		// the front of the ledger (newest first).
		Append(ctx context.Context, t core.Transaction) (core.Transaction, error)
	}

	Remover interface {
		// Remove deletes the entry with the given id. Removing an unknown
		// id is a no-op, not an error.
		Remove(ctx context.Context, id string) error
	}

	Lister interface {
		// List returns a snapshot of the ledger in insertion order, newest
		// entry first.
		List(ctx context.Context) ([]core.Transaction, error)
	}

	Store interface {
		Appender
		Remover
		Lister
	}
)
