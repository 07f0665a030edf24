package services

import (
	"time"

	"hotel-booking/models"
	"hotel-booking/repository"
	"hotel-booking/utils"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	repo         *repository.MemoryRepository
	validator    *Validator
	availability *AvailabilityService
	reservations *ReservationService
	rooms        *RoomService
	contact      *ContactService
}

func testRooms() []models.Room {
	return []models.Room{
		{ID: "room-a", Slug: "room-a", Name: "Room A", NightlyRate: 100, Capacity: 2},
		{ID: "room-b", Slug: "room-b", Name: "Room B", NightlyRate: 250, Capacity: 4},
		{ID: "room-c", Slug: "room-c", Name: "Room C", NightlyRate: 80, Capacity: 1},
	}
}

func newTestEnv() *testEnv {
	repo := repository.NewMemoryRepository(testRooms()...)
	v := NewValidator(utils.FixedClock{T: testNow}, time.UTC, DefaultMaxStayNights)
	availability := NewAvailabilityService(repo, v)
	return &testEnv{
		repo:         repo,
		validator:    v,
		availability: availability,
		reservations: NewReservationService(repo, availability, v, nil),
		rooms:        NewRoomService(repo, v),
		contact:      NewContactService(repo, v, nil),
	}
}

// day returns testNow's date shifted by n days, formatted for requests.
func day(n int) string {
	return testNow.AddDate(0, 0, n).Format(dateLayout)
}

func booking(roomID string, checkIn, checkOut int) CreateReservationInput {
	return CreateReservationInput{
		RoomID:     roomID,
		GuestName:  "Jane Doe",
		GuestEmail: "jane@example.com",
		CheckIn:    day(checkIn),
		CheckOut:   day(checkOut),
	}
}
