package repository

import (
	"gorm.io/datatypes"

	"hotel-booking/models"
)

// DefaultRooms is the starting room catalog used to seed an empty store.
func DefaultRooms() []models.Room {
	return []models.Room{
		{
			Slug:        "deluxe-ocean-view",
			Name:        "Deluxe Ocean View",
			Description: "Spacious room with stunning ocean views and premium amenities",
			BedType:     "king",
			NightlyRate: 299.99,
			Capacity:    2,
			Amenities:   datatypes.JSON(`["WiFi","TV","Mini Bar","Ocean View","Balcony"]`),
			Images:      datatypes.JSON(`["https://images.unsplash.com/photo-1590490360182-c33d57733427"]`),
		},
		{
			Slug:        "standard-suite",
			Name:        "Standard Suite",
			Description: "Comfortable suite perfect for business travelers",
			BedType:     "queen",
			NightlyRate: 149.99,
			Capacity:    2,
			Amenities:   datatypes.JSON(`["WiFi","TV","Desk","Coffee Maker"]`),
			Images:      datatypes.JSON(`["https://images.unsplash.com/photo-1631049307264-da0ec9d70304"]`),
		},
		{
			Slug:        "family-room",
			Name:        "Family Room",
			Description: "Large room with two queen beds, ideal for families",
			BedType:     "queen",
			NightlyRate: 199.99,
			Capacity:    4,
			Amenities:   datatypes.JSON(`["WiFi","TV","Mini Fridge","Two Queen Beds"]`),
			Images:      datatypes.JSON(`["https://images.unsplash.com/photo-1566665797739-1674de7a421a"]`),
		},
	}
}
