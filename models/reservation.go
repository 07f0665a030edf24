package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
)

func (s ReservationStatus) Valid() bool {
	return s == StatusConfirmed || s == StatusCancelled
}

// Reservation is a stay over the half-open date range [CheckIn, CheckOut).
type Reservation struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	RoomID string `gorm:"column:room_id;size:36;index:idx_room_status_dates" json:"roomId"`

	GuestName  string `gorm:"column:guest_name;size:100" json:"guestName"`
	GuestEmail string `gorm:"column:guest_email;size:255;index" json:"guestEmail"`

	CheckIn  time.Time `gorm:"column:check_in;type:date;index:idx_room_status_dates" json:"checkIn"`
	CheckOut time.Time `gorm:"column:check_out;type:date" json:"checkOut"`

	Nights     int               `gorm:"column:nights" json:"nights"`
	TotalPrice float64           `gorm:"column:total_price;type:decimal(10,2)" json:"totalPrice"`
	Status     ReservationStatus `gorm:"column:status;size:16;index:idx_room_status_dates" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Overlaps reports whether the reservation intersects [checkIn, checkOut).
// A stay ending on day D does not overlap one starting on day D.
func (r Reservation) Overlaps(checkIn, checkOut time.Time) bool {
	return r.CheckIn.Before(checkOut) && r.CheckOut.After(checkIn)
}
