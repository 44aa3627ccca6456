// Package repository holds the roster grid: the editable list of player rows
// the organizer imports and edits before generating teams.
package repository

import (
	"context"

	"github.com/okian/lineup/internal/domain/roster"
)

// Row is a stored grid row; ID is assigned by the store.
type Row = roster.Row

// RosterStore provides read/write access to the roster grid.
type RosterStore interface {
	// Replace discards every row and stores rows in order with fresh IDs.
	Replace(ctx context.Context, rows []Row) ([]Row, error)

	// Add appends a row and returns it with its assigned ID.
	// Returns ErrRosterFull when the store is at capacity.
	Add(ctx context.Context, row Row) (Row, error)

	// Update overwrites the row with the given id, keeping its place.
	// Returns ErrNotFound if the id is unknown.
	Update(ctx context.Context, id string, row Row) (Row, error)

	// Delete removes the row with the given id.
	// Returns ErrNotFound if the id is unknown.
	Delete(ctx context.Context, id string) error

	// List returns a copy of all rows in grid order.
	List(ctx context.Context) []Row

	// Clear removes every row.
	Clear(ctx context.Context)

	// Count returns the number of rows.
	Count(ctx context.Context) int
}
