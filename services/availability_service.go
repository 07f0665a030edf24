package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-booking/repository"
)

// AvailabilityService answers whether rooms are free for a stay. It never
// writes and holds no locks, so its answers are advisory.
type AvailabilityService struct {
	Repo      repository.Repository
	Validator *Validator
}

func NewAvailabilityService(repo repository.Repository, v *Validator) *AvailabilityService {
	return &AvailabilityService{Repo: repo, Validator: v}
}

type Quote struct {
	Available   bool    `json:"available"`
	RoomID      string  `json:"roomId"`
	RoomName    string  `json:"roomName"`
	CheckIn     string  `json:"checkIn"`
	CheckOut    string  `json:"checkOut"`
	Nights      int     `json:"nights"`
	NightlyRate float64 `json:"pricePerNight"`
	TotalPrice  float64 `json:"totalPrice"`
}

// IsAvailable reports whether no confirmed reservation of roomID overlaps
// [checkIn, checkOut). Room existence is not checked here.
func (s *AvailabilityService) IsAvailable(ctx context.Context, roomID string, checkIn, checkOut time.Time) (bool, error) {
	conflicts, err := s.Repo.ListConfirmedReservations(ctx, roomID, checkIn, checkOut)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

// FindAvailableRooms returns the ids of rooms holding at least minCapacity
// guests that are free for the stay. minCapacity <= 0 means any size.
func (s *AvailabilityService) FindAvailableRooms(ctx context.Context, checkIn, checkOut time.Time, minCapacity int) ([]string, error) {
	rooms, err := s.Repo.ListRooms(ctx, repository.RoomFilter{MinCapacity: minCapacity})
	if err != nil {
		return nil, err
	}

	ids := []string{}
	for _, room := range rooms {
		ok, err := s.IsAvailable(ctx, room.ID, checkIn, checkOut)
		if err != nil {
			return nil, fmt.Errorf("availability of room %s: %w", room.ID, err)
		}
		if ok {
			ids = append(ids, room.ID)
		}
	}
	return ids, nil
}

// Quote validates an availability query and prices the stay.
func (s *AvailabilityService) Quote(ctx context.Context, in AvailabilityQueryInput) (*Quote, error) {
	in.RoomID = strings.TrimSpace(in.RoomID)

	ve := &ValidationError{}
	s.Validator.Struct(ve, in)
	checkIn, checkOut := s.Validator.Stay(ve, in.CheckIn, in.CheckOut)
	if err := ve.orNil(); err != nil {
		return nil, err
	}

	room, err := s.Repo.GetRoom(ctx, in.RoomID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Resource: "Room", ID: in.RoomID}
		}
		return nil, err
	}

	available, err := s.IsAvailable(ctx, room.ID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	return &Quote{
		Available:   available,
		RoomID:      room.ID,
		RoomName:    room.Name,
		CheckIn:     in.CheckIn,
		CheckOut:    in.CheckOut,
		Nights:      Nights(checkIn, checkOut),
		NightlyRate: room.NightlyRate,
		TotalPrice:  TotalPrice(room.NightlyRate, checkIn, checkOut),
	}, nil
}

// AvailableRooms validates a stay query and runs FindAvailableRooms.
func (s *AvailabilityService) AvailableRooms(ctx context.Context, in StayQueryInput) ([]string, error) {
	ve := &ValidationError{}
	s.Validator.Struct(ve, in)
	checkIn, checkOut := s.Validator.Stay(ve, in.CheckIn, in.CheckOut)
	if err := ve.orNil(); err != nil {
		return nil, err
	}
	return s.FindAvailableRooms(ctx, checkIn, checkOut, in.Capacity)
}
