package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContactInquiry struct {
	ID      string  `gorm:"primaryKey;size:36" json:"id"`
	Name    string  `gorm:"size:255" json:"name"`
	Email   string  `gorm:"size:255" json:"email"`
	Phone   *string `gorm:"size:50" json:"phone"`
	Subject string  `gorm:"size:255" json:"subject"`
	Message string  `gorm:"type:text" json:"message"`

	CreatedAt time.Time `json:"createdAt"`
}

func (c *ContactInquiry) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
