package services

import (
	"context"
	"errors"

	"hotel-booking/models"
	"hotel-booking/repository"
)

type RoomService struct {
	Repo      repository.Repository
	Validator *Validator
}

func NewRoomService(repo repository.Repository, v *Validator) *RoomService {
	return &RoomService{Repo: repo, Validator: v}
}

// List returns rooms matching the query, cheapest first.
func (s *RoomService) List(ctx context.Context, in RoomQueryInput) ([]models.Room, error) {
	ve := &ValidationError{}
	s.Validator.Struct(ve, in)
	if in.MinPrice != nil && in.MaxPrice != nil && *in.MinPrice > *in.MaxPrice {
		ve.Add("maxPrice", "must not be lower than minPrice")
	}
	if err := ve.orNil(); err != nil {
		return nil, err
	}

	var filter repository.RoomFilter
	if in.Capacity != nil {
		filter.MinCapacity = *in.Capacity
	}
	if in.MinPrice != nil {
		filter.MinPrice = *in.MinPrice
	}
	if in.MaxPrice != nil {
		filter.MaxPrice = *in.MaxPrice
	}
	return s.Repo.ListRooms(ctx, filter)
}

func (s *RoomService) GetByID(ctx context.Context, id string) (*models.Room, error) {
	room, err := s.Repo.GetRoom(ctx, id)
	return room, roomErr(err, id)
}

func (s *RoomService) GetBySlug(ctx context.Context, slug string) (*models.Room, error) {
	room, err := s.Repo.GetRoomBySlug(ctx, slug)
	return room, roomErr(err, slug)
}

func roomErr(err error, key string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFoundError{Resource: "Room", ID: key}
	}
	return err
}
