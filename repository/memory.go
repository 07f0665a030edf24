package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"hotel-booking/models"
)

// MemoryRepository keeps everything in process memory. Access is
// serialized by a single mutex, so it is only safe inside one process.
type MemoryRepository struct {
	mu           sync.Mutex
	rooms        []models.Room
	reservations map[string]models.Reservation
	inquiries    []models.ContactInquiry
	now          func() time.Time
}

func NewMemoryRepository(rooms ...models.Room) *MemoryRepository {
	r := &MemoryRepository{
		reservations: make(map[string]models.Reservation),
		now:          func() time.Time { return time.Now().UTC() },
	}
	for _, room := range rooms {
		if room.ID == "" {
			room.ID = uuid.NewString()
		}
		r.rooms = append(r.rooms, room)
	}
	return r
}

func (r *MemoryRepository) ListRooms(_ context.Context, filter RoomFilter) ([]models.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		if filter.MinCapacity > 0 && room.Capacity < filter.MinCapacity {
			continue
		}
		if filter.MinPrice > 0 && room.NightlyRate < filter.MinPrice {
			continue
		}
		if filter.MaxPrice > 0 && room.NightlyRate > filter.MaxPrice {
			continue
		}
		out = append(out, room)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].NightlyRate < out[j].NightlyRate })
	return out, nil
}

func (r *MemoryRepository) GetRoom(_ context.Context, id string) (*models.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.roomLocked(id)
}

func (r *MemoryRepository) roomLocked(id string) (*models.Room, error) {
	for i := range r.rooms {
		if r.rooms[i].ID == id {
			room := r.rooms[i]
			return &room, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRepository) GetRoomBySlug(_ context.Context, slug string) (*models.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.rooms {
		if r.rooms[i].Slug == slug {
			room := r.rooms[i]
			return &room, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRepository) GetReservation(_ context.Context, id string) (*models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.reservations[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &res, nil
}

func (r *MemoryRepository) ListReservations(_ context.Context, filter ReservationFilter) ([]models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []models.Reservation{}
	for _, res := range r.reservations {
		if filter.RoomID != "" && res.RoomID != filter.RoomID {
			continue
		}
		if filter.GuestEmail != "" && !strings.EqualFold(res.GuestEmail, filter.GuestEmail) {
			continue
		}
		if filter.Status != "" && res.Status != filter.Status {
			continue
		}
		out = append(out, res)
	}
	sortByCheckIn(out)
	return out, nil
}

func (r *MemoryRepository) ListConfirmedReservations(_ context.Context, roomID string, checkIn, checkOut time.Time) ([]models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.confirmedLocked(roomID, checkIn, checkOut), nil
}

func (r *MemoryRepository) confirmedLocked(roomID string, checkIn, checkOut time.Time) []models.Reservation {
	out := []models.Reservation{}
	for _, res := range r.reservations {
		if res.RoomID != roomID || res.Status != models.StatusConfirmed {
			continue
		}
		if res.Overlaps(checkIn, checkOut) {
			out = append(out, res)
		}
	}
	sortByCheckIn(out)
	return out
}

func (r *MemoryRepository) UpdateReservationStatus(_ context.Context, id string, from, to models.ReservationStatus) (*models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.reservations[id]
	if !ok {
		return nil, ErrNotFound
	}
	if res.Status != from {
		return &res, ErrStaleStatus
	}
	res.Status = to
	res.UpdatedAt = r.now()
	r.reservations[id] = res
	return &res, nil
}

func (r *MemoryRepository) CreateContactInquiry(_ context.Context, inquiry *models.ContactInquiry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if inquiry.ID == "" {
		inquiry.ID = uuid.NewString()
	}
	inquiry.CreatedAt = r.now()
	r.inquiries = append(r.inquiries, *inquiry)
	return nil
}

// ContactInquiries returns a copy of the stored inquiries.
func (r *MemoryRepository) ContactInquiries() []models.ContactInquiry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.ContactInquiry, len(r.inquiries))
	copy(out, r.inquiries)
	return out
}

// RunInTx holds the repository lock for the whole of fn. Writes are staged
// and applied only when fn succeeds.
func (r *MemoryRepository) RunInTx(ctx context.Context, fn func(tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tx := &memoryTx{repo: r}
	if err := fn(tx); err != nil {
		return err
	}
	for _, res := range tx.pending {
		r.reservations[res.ID] = res
	}
	return nil
}

type memoryTx struct {
	repo    *MemoryRepository
	pending []models.Reservation
}

func (t *memoryTx) LockRoom(_ context.Context, roomID string) error {
	_, err := t.repo.roomLocked(roomID)
	return err
}

func (t *memoryTx) ListConfirmedReservations(_ context.Context, roomID string, checkIn, checkOut time.Time) ([]models.Reservation, error) {
	out := t.repo.confirmedLocked(roomID, checkIn, checkOut)
	for _, res := range t.pending {
		if res.RoomID == roomID && res.Status == models.StatusConfirmed && res.Overlaps(checkIn, checkOut) {
			out = append(out, res)
		}
	}
	return out, nil
}

func (t *memoryTx) CreateReservation(_ context.Context, reservation *models.Reservation) error {
	if reservation.ID == "" {
		reservation.ID = uuid.NewString()
	}
	now := t.repo.now()
	reservation.CreatedAt = now
	reservation.UpdatedAt = now
	t.pending = append(t.pending, *reservation)
	return nil
}

func sortByCheckIn(list []models.Reservation) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].CheckIn.Equal(list[j].CheckIn) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].CheckIn.Before(list[j].CheckIn)
	})
}
