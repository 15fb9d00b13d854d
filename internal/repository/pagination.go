// Package repository provides data access layer implementations for the application.
package repository

import "gorm.io/gorm"

// DefaultPageLimit is used when a caller passes a non-positive limit.
const DefaultPageLimit = 10

// MaxPageLimit caps page sizes regardless of what the client asks for.
const MaxPageLimit = 50

// Page is one page of a cursor-paginated listing. NextCursor is the id of the
// last returned item, or nil when no further page exists.
type Page[T any] struct {
	Data       []T   `json:"data"`
	NextCursor *uint `json:"nextCursor"`
}

// ClampLimit normalizes a requested page size into [1, MaxPageLimit].
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageLimit
	}
	if limit > MaxPageLimit {
		return MaxPageLimit
	}
	return limit
}

// applyCursor bounds a query to rows strictly below the cursor id, descending.
// A cursor pointing at a deleted row is fine: it is a pure ordering bound, not
// a foreign key.
func applyCursor(db *gorm.DB, column string, cursor *uint) *gorm.DB {
	if cursor != nil {
		db = db.Where(column+" < ?", *cursor)
	}
	return db.Order(column + " DESC")
}

// buildPage converts a limit+1 fetch into a page: if the extra row is present
// it is dropped and the id of the last kept row becomes the next cursor.
func buildPage[T any](rows []T, limit int, id func(T) uint) Page[T] {
	if len(rows) <= limit {
		return Page[T]{Data: rows}
	}
	rows = rows[:limit]
	last := id(rows[len(rows)-1])
	return Page[T]{Data: rows, NextCursor: &last}
}
