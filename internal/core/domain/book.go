package domain

import (
	"errors"
	"time"
)

// ErrBookNotFound is returned when a book does not exist or belongs to a
// different owner. The two cases are deliberately indistinguishable: revealing
// that an id exists under another account would leak information.
var ErrBookNotFound = errors.New("book not found")

// Book is an owned resource. OwnerID is set once at creation from the caller's
// identity and never changes afterwards.
type Book struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	OwnerID   string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
