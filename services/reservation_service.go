package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"hotel-booking/models"
	"hotel-booking/repository"
	"hotel-booking/utils"
)

type ReservationQueryInput struct {
	RoomID     string `form:"roomId" json:"roomId"`
	GuestEmail string `form:"email" json:"email" validate:"omitempty,email"`
	Status     string `form:"status" json:"status" validate:"omitempty,oneof=confirmed cancelled"`
}

// ReservationService owns the reservation lifecycle:
// none -> confirmed -> cancelled.
type ReservationService struct {
	Repo         repository.Repository
	Availability *AvailabilityService
	Validator    *Validator
	Logger       log.Logger
}

func NewReservationService(repo repository.Repository, availability *AvailabilityService, v *Validator, logger log.Logger) *ReservationService {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &ReservationService{
		Repo:         repo,
		Availability: availability,
		Validator:    v,
		Logger:       log.With(logger, "component", "reservations"),
	}
}

// Create books a room. The availability check before the transaction is
// only a fast path; the overlap query repeated under the room lock inside
// the transaction is what keeps confirmed stays from overlapping.
func (s *ReservationService) Create(ctx context.Context, in CreateReservationInput) (*models.Reservation, error) {
	in.RoomID = strings.TrimSpace(in.RoomID)
	in.GuestName = strings.TrimSpace(in.GuestName)
	in.GuestEmail = strings.TrimSpace(in.GuestEmail)

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

	if in.NumberOfGuests > room.Capacity {
		ve.Add("numberOfGuests", fmt.Sprintf("Room capacity is %d guests", room.Capacity))
		return nil, ve
	}

	available, err := s.Availability.IsAvailable(ctx, room.ID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, fmt.Errorf("room %s: %w", room.ID, ErrConflict)
	}

	reservation := &models.Reservation{
		RoomID:     room.ID,
		GuestName:  in.GuestName,
		GuestEmail: in.GuestEmail,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Nights:     Nights(checkIn, checkOut),
		TotalPrice: TotalPrice(room.NightlyRate, checkIn, checkOut),
		Status:     models.StatusConfirmed,
	}

	err = s.Repo.RunInTx(ctx, func(tx repository.Tx) error {
		if err := tx.LockRoom(ctx, room.ID); err != nil {
			return err
		}
		conflicts, err := tx.ListConfirmedReservations(ctx, room.ID, checkIn, checkOut)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return fmt.Errorf("room %s no longer available: %w", room.ID, ErrConflict)
		}
		return tx.CreateReservation(ctx, reservation)
	})
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrLockConflict):
		level.Warn(s.Logger).Log("msg", "booking transaction lost lock race", "room", room.ID, "err", err)
		return nil, fmt.Errorf("room %s: %w", room.ID, ErrConflict)
	case errors.Is(err, repository.ErrNotFound):
		return nil, &NotFoundError{Resource: "Room", ID: room.ID}
	default:
		return nil, err
	}

	level.Info(s.Logger).Log(
		"msg", "reservation created",
		"reservation", reservation.ID,
		"room", room.ID,
		"guest", utils.MaskEmail(reservation.GuestEmail),
		"check_in", in.CheckIn,
		"check_out", in.CheckOut,
		"total", reservation.TotalPrice,
	)
	return reservation, nil
}

// Cancel moves a confirmed reservation to cancelled. Cancelling twice is an
// error, not a no-op.
func (s *ReservationService) Cancel(ctx context.Context, id string) (*models.Reservation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		ve := &ValidationError{}
		ve.Add("id", "is required")
		return nil, ve
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == models.StatusCancelled {
		return nil, ErrAlreadyCancelled
	}

	updated, err := s.Repo.UpdateReservationStatus(ctx, id, models.StatusConfirmed, models.StatusCancelled)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrStaleStatus):
		return nil, ErrAlreadyCancelled
	case errors.Is(err, repository.ErrNotFound):
		return nil, &NotFoundError{Resource: "Reservation", ID: id}
	default:
		return nil, err
	}

	level.Info(s.Logger).Log("msg", "reservation cancelled", "reservation", id, "room", updated.RoomID)
	return updated, nil
}

func (s *ReservationService) Get(ctx context.Context, id string) (*models.Reservation, error) {
	res, err := s.Repo.GetReservation(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Resource: "Reservation", ID: id}
		}
		return nil, err
	}
	return res, nil
}

func (s *ReservationService) List(ctx context.Context, in ReservationQueryInput) ([]models.Reservation, error) {
	in.GuestEmail = strings.TrimSpace(in.GuestEmail)

	ve := &ValidationError{}
	s.Validator.Struct(ve, in)
	if err := ve.orNil(); err != nil {
		return nil, err
	}

	return s.Repo.ListReservations(ctx, repository.ReservationFilter{
		RoomID:     strings.TrimSpace(in.RoomID),
		GuestEmail: in.GuestEmail,
		Status:     models.ReservationStatus(in.Status),
	})
}
