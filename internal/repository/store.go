package repository

import "database/sql"

// Store combines the booking and profile repositories into the single
// persistence capability set consumed by the lifecycle engine.
type Store struct {
    *BookingRepo
    *ProfileRepo
}

// NewStore returns a Store backed by the given database.
func NewStore(db *sql.DB) *Store {
    return &Store{
        BookingRepo: NewBookingRepo(db),
        ProfileRepo: NewProfileRepo(db),
    }
}
