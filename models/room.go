package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Room struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Slug        string `gorm:"uniqueIndex;size:120" json:"slug"`
	Name        string `gorm:"size:255" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	BedType     string `gorm:"column:bed_type;size:20" json:"bedType"`

	// nightly rate is never changed by the booking flow
	NightlyRate float64 `gorm:"column:nightly_rate;type:decimal(10,2)" json:"nightlyRate"`
	Capacity    int     `gorm:"column:capacity" json:"capacity"`

	Amenities datatypes.JSON `gorm:"column:amenities" json:"amenities"`
	Images    datatypes.JSON `gorm:"column:images" json:"images"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
