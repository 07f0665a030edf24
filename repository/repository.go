// Package repository holds the persistence layer used by the booking
// services. Two interchangeable implementations exist: GormRepository on
// MySQL and MemoryRepository for local runs and tests.
package repository

import (
	"context"
	"errors"
	"time"

	"hotel-booking/models"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrStaleStatus is returned when a status update finds the row in a
	// different state than the caller expected.
	ErrStaleStatus = errors.New("reservation status changed")
	// ErrLockConflict is returned when the store aborts a transaction
	// because of a deadlock or lock wait timeout.
	ErrLockConflict = errors.New("transaction lock conflict")
)

type RoomFilter struct {
	MinCapacity int
	MinPrice    float64
	MaxPrice    float64
}

type ReservationFilter struct {
	RoomID     string
	GuestEmail string
	Status     models.ReservationStatus
}

type Repository interface {
	ListRooms(ctx context.Context, filter RoomFilter) ([]models.Room, error)
	GetRoom(ctx context.Context, id string) (*models.Room, error)
	GetRoomBySlug(ctx context.Context, slug string) (*models.Room, error)

	GetReservation(ctx context.Context, id string) (*models.Reservation, error)
	ListReservations(ctx context.Context, filter ReservationFilter) ([]models.Reservation, error)
	// ListConfirmedReservations returns confirmed reservations of roomID
	// overlapping [checkIn, checkOut).
	ListConfirmedReservations(ctx context.Context, roomID string, checkIn, checkOut time.Time) ([]models.Reservation, error)
	UpdateReservationStatus(ctx context.Context, id string, from, to models.ReservationStatus) (*models.Reservation, error)

	CreateContactInquiry(ctx context.Context, inquiry *models.ContactInquiry) error

	// RunInTx runs fn in a single transaction. Nothing fn wrote is kept
	// when it returns an error.
	RunInTx(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the write side available inside RunInTx.
type Tx interface {
	// LockRoom blocks other transactions that lock the same room until
	// this one finishes.
	LockRoom(ctx context.Context, roomID string) error
	ListConfirmedReservations(ctx context.Context, roomID string, checkIn, checkOut time.Time) ([]models.Reservation, error)
	CreateReservation(ctx context.Context, reservation *models.Reservation) error
}
