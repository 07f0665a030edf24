package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-booking/models"
)

// MySQL error numbers that mean the transaction lost a lock race.
const (
	mysqlLockWaitTimeout = 1205
	mysqlDeadlock        = 1213
)

// GormRepository is the Repository backed by a gorm connection.
type GormRepository struct {
	DB *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{DB: db}
}

func (r *GormRepository) ListRooms(ctx context.Context, filter RoomFilter) ([]models.Room, error) {
	q := r.DB.WithContext(ctx).Model(&models.Room{})
	if filter.MinCapacity > 0 {
		q = q.Where("capacity >= ?", filter.MinCapacity)
	}
	if filter.MinPrice > 0 {
		q = q.Where("nightly_rate >= ?", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		q = q.Where("nightly_rate <= ?", filter.MaxPrice)
	}

	var rooms []models.Room
	if err := q.Order("nightly_rate ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

func (r *GormRepository) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	var room models.Room
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&room).Error; err != nil {
		return nil, notFound(err, "room")
	}
	return &room, nil
}

func (r *GormRepository) GetRoomBySlug(ctx context.Context, slug string) (*models.Room, error) {
	var room models.Room
	if err := r.DB.WithContext(ctx).Where("slug = ?", slug).First(&room).Error; err != nil {
		return nil, notFound(err, "room")
	}
	return &room, nil
}

func (r *GormRepository) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	var res models.Reservation
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&res).Error; err != nil {
		return nil, notFound(err, "reservation")
	}
	return &res, nil
}

func (r *GormRepository) ListReservations(ctx context.Context, filter ReservationFilter) ([]models.Reservation, error) {
	q := r.DB.WithContext(ctx).Model(&models.Reservation{})
	if filter.RoomID != "" {
		q = q.Where("room_id = ?", filter.RoomID)
	}
	if filter.GuestEmail != "" {
		q = q.Where("LOWER(guest_email) = LOWER(?)", filter.GuestEmail)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var list []models.Reservation
	if err := q.Order("check_in ASC").Order("created_at ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return list, nil
}

func (r *GormRepository) ListConfirmedReservations(ctx context.Context, roomID string, checkIn, checkOut time.Time) ([]models.Reservation, error) {
	return listConfirmed(r.DB.WithContext(ctx), roomID, checkIn, checkOut)
}

// listConfirmed uses the general interval test, which is the same as the
// three-way check (check-in inside, check-out inside, containment).
func listConfirmed(db *gorm.DB, roomID string, checkIn, checkOut time.Time) ([]models.Reservation, error) {
	var list []models.Reservation
	err := db.
		Where("room_id = ? AND status = ?", roomID, models.StatusConfirmed).
		Where("check_in < ? AND check_out > ?", checkOut, checkIn).
		Order("check_in ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query overlapping reservations: %w", err)
	}
	return list, nil
}

func (r *GormRepository) UpdateReservationStatus(ctx context.Context, id string, from, to models.ReservationStatus) (*models.Reservation, error) {
	db := r.DB.WithContext(ctx)

	result := db.Model(&models.Reservation{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{"status": to, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update reservation %s: %w", id, result.Error)
	}

	res, err := r.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if result.RowsAffected == 0 {
		return res, ErrStaleStatus
	}
	return res, nil
}

func (r *GormRepository) CreateContactInquiry(ctx context.Context, inquiry *models.ContactInquiry) error {
	if err := r.DB.WithContext(ctx).Create(inquiry).Error; err != nil {
		return fmt.Errorf("failed to create contact inquiry: %w", err)
	}
	return nil
}

func (r *GormRepository) RunInTx(ctx context.Context, fn func(tx Tx) error) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTx{db: tx})
	})
	if isLockConflict(err) {
		return fmt.Errorf("%w: %v", ErrLockConflict, err)
	}
	return err
}

type gormTx struct {
	db *gorm.DB
}

func (t *gormTx) LockRoom(ctx context.Context, roomID string) error {
	var room models.Room
	err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", roomID).
		First(&room).Error
	if err != nil {
		return notFound(err, "room")
	}
	return nil
}

func (t *gormTx) ListConfirmedReservations(ctx context.Context, roomID string, checkIn, checkOut time.Time) ([]models.Reservation, error) {
	return listConfirmed(t.db.WithContext(ctx), roomID, checkIn, checkOut)
}

func (t *gormTx) CreateReservation(ctx context.Context, reservation *models.Reservation) error {
	if err := t.db.WithContext(ctx).Create(reservation).Error; err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	return nil
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("failed to load %s: %w", what, err)
}

func isLockConflict(err error) bool {
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == mysqlDeadlock || merr.Number == mysqlLockWaitTimeout
	}
	return false
}
