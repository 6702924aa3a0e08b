// Package ledger applies delivery and checkout lines to the per-item
// inventory quantities.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"Gin_postgres_redis_inventory_ledger/models"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNotInInventory    = errors.New("item not in inventory")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
)

type Direction int

const (
	Inbound Direction = iota
	Outbound
)

func (d Direction) String() string {
	if d == Outbound {
		return "outbound"
	}
	return "inbound"
}

// Store mutates one ledger entry atomically. AddStock creates the entry when it
// is missing. RemoveStock must leave the entry untouched and return
// ErrNotInInventory or ErrInsufficientStock when the decrement is not possible.
// Both return the quantity after the change.
type Store interface {
	AddStock(ctx context.Context, itemID string, qty int) (int, error)
	RemoveStock(ctx context.Context, itemID string, qty int) (int, error)
}

// LineError is returned when a line could not be applied. Lines before Index
// stay applied.
type LineError struct {
	Index  int
	ItemID string
	Err    error
}

func (e *LineError) Error() string {
	switch {
	case errors.Is(e.Err, ErrInsufficientStock):
		return "Not enough stock for item: " + e.ItemID
	case errors.Is(e.Err, ErrNotInInventory):
		return "Item not found in inventory: " + e.ItemID
	}
	return fmt.Sprintf("apply line %d (item %s): %v", e.Index, e.ItemID, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// IsStockError reports whether err is a business-rule rejection rather than a
// store failure.
func IsStockError(err error) bool {
	return errors.Is(err, ErrInsufficientStock) || errors.Is(err, ErrNotInInventory)
}

type Ledger struct {
	store Store
	log   zerolog.Logger
}

func New(store Store) *Ledger {
	return &Ledger{store: store, log: log.With().Str("component", "ledger").Logger()}
}

// Apply walks lines in order and persists each one before the next. The first
// failing line stops the walk; it returns how many lines were applied.
func (l *Ledger) Apply(ctx context.Context, dir Direction, lines []models.MovementLine) (int, error) {
	for i, line := range lines {
		if line.Quantity <= 0 {
			return i, &LineError{Index: i, ItemID: line.ItemID, Err: ErrInvalidQuantity}
		}

		var (
			qty int
			err error
		)
		if dir == Outbound {
			qty, err = l.store.RemoveStock(ctx, line.ItemID, line.Quantity)
		} else {
			qty, err = l.store.AddStock(ctx, line.ItemID, line.Quantity)
		}
		if err != nil {
			l.log.Warn().Err(err).
				Str("direction", dir.String()).
				Str("item", line.ItemID).
				Int("line", i).
				Int("applied", i).
				Msg("ledger line rejected")
			return i, &LineError{Index: i, ItemID: line.ItemID, Err: err}
		}

		l.log.Debug().
			Str("direction", dir.String()).
			Str("item", line.ItemID).
			Int("delta", line.Quantity).
			Int("quantity", qty).
			Msg("ledger line applied")
	}
	return len(lines), nil
}
