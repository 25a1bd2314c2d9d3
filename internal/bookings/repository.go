package bookings

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tourly/internal/tours"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrPaymentNotFound = errors.New("payment not found")
)

// PendingStats summarizes the pending load on an instance
type PendingStats struct {
	Count int64
	Seats int64
}

// Repository handles booking persistence. Methods taking a tx handle must be
// called inside WithTransaction so seat counters, booking rows, and ledger
// writes commit atomically.
type Repository interface {
	WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error

	CreateBooking(ctx context.Context, tx *gorm.DB, booking *Booking) error
	GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetBookingByRef(ctx context.Context, ref string) (*Booking, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, page, limit int) ([]Booking, int64, error)
	UpdateBookingStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status Status) error
	GetUserPendingForTour(ctx context.Context, userID, tourID uuid.UUID) (*Booking, error)

	// Seat accounting on tour instances
	GetInstanceForUpdate(ctx context.Context, tx *gorm.DB, instanceID uuid.UUID) (*tours.TourInstance, error)
	ConfirmSeats(ctx context.Context, tx *gorm.DB, instanceID uuid.UUID, seats int) (bool, error)
	AdjustSeatCounters(ctx context.Context, tx *gorm.DB, instanceID uuid.UUID, bookedDelta, heldDelta int) error
	UpdateInstanceStatus(ctx context.Context, tx *gorm.DB, instanceID uuid.UUID, status tours.InstanceStatus) error

	// Auto-rejection support
	ListPendingByInstance(ctx context.Context, tx *gorm.DB, instanceID uuid.UUID) ([]Booking, error)
	CountPendingByInstance(ctx context.Context, instanceID uuid.UUID) (*PendingStats, error)
	RejectBookings(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error

	// Payments
	CreatePayment(ctx context.Context, tx *gorm.DB, payment *Payment) error
	GetPaymentByBookingID(ctx context.Context, bookingID uuid.UUID) (*Payment, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *repository) CreateBooking(ctx context.Context, tx *gorm.DB, booking *Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *repository) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Services").
		Preload("Payment").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetBookingByRef(ctx context.Context, ref string) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Services").
		Preload("Payment").
		Where("booking_ref = ?", ref).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetUserBookings(ctx context.Context, userID uuid.UUID, page, limit int) ([]Booking, int64, error) {
	var result []Booking
	var totalCount int64

	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	baseQuery := r.db.WithContext(ctx).Model(&Booking{}).Where("user_id = ?", userID)

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := baseQuery.
		Preload("Services").
		Preload("Payment").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error

	return result, totalCount, err
}

func (r *repository) UpdateBookingStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status Status) error {
	res := tx.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// GetUserPendingForTour finds a user's existing pending booking on any
// departure of the given tour.
func (r *repository) GetUserPendingForTour(ctx context.Context, userID, tourID uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Joins("JOIN tour_instances ON tour_instances.id = bookings.instance_id").
		Where("bookings.user_id = ?", userID).
		Where("bookings.status = ?", StatusPending).
		Where("tour_instances.tour_id = ?", tourID).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// GetInstanceForUpdate row-locks the instance for the rest of the transaction
func (r *repository) GetInstanceForUpdate(ctx context.Context, tx *gorm.DB, instanceID uuid.UUID) (*tours.TourInstance, error) {
	var instance tours.TourInstance
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", instanceID).
		First(&instance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tours.ErrNotFound
		}
		return nil, err
	}
	return &instance, nil
}

// ConfirmSeats moves seats from held to booked only if capacity allows,
// reporting whether the conditional update took effect.
func (r *repository) ConfirmSeats(ctx context.Context, tx *gorm.DB, instanceID uuid.UUID, seats int) (bool, error) {
	res := tx.WithContext(ctx).
		Model(&tours.TourInstance{}).
		Where("id = ?", instanceID).
		Where("seats_booked + ? <= capacity", seats).
		Updates(map[string]interface{}{
			"seats_booked": gorm.Expr("seats_booked + ?", seats),
			"seats_held":   gorm.Expr("GREATEST(seats_held - ?, 0)", seats),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// AdjustSeatCounters applies deltas to the seat counters, floored at zero
func (r *repository) AdjustSeatCounters(ctx context.Context, tx *gorm.DB, instanceID uuid.UUID, bookedDelta, heldDelta int) error {
	updates := map[string]interface{}{}
	if bookedDelta != 0 {
		updates["seats_booked"] = gorm.Expr("GREATEST(seats_booked + ?, 0)", bookedDelta)
	}
	if heldDelta != 0 {
		updates["seats_held"] = gorm.Expr("GREATEST(seats_held + ?, 0)", heldDelta)
	}
	if len(updates) == 0 {
		return nil
	}
	return tx.WithContext(ctx).
		Model(&tours.TourInstance{}).
		Where("id = ?", instanceID).
		Updates(updates).Error
}

func (r *repository) UpdateInstanceStatus(ctx context.Context, tx *gorm.DB, instanceID uuid.UUID, status tours.InstanceStatus) error {
	return tx.WithContext(ctx).
		Model(&tours.TourInstance{}).
		Where("id = ?", instanceID).
		Update("status", status).Error
}

// ListPendingByInstance returns pending bookings oldest first, the order
// auto-rejection walks them in.
func (r *repository) ListPendingByInstance(ctx context.Context, tx *gorm.DB, instanceID uuid.UUID) ([]Booking, error) {
	var result []Booking
	err := tx.WithContext(ctx).
		Where("instance_id = ?", instanceID).
		Where("status = ?", StatusPending).
		Order("created_at ASC").
		Find(&result).Error
	return result, err
}

func (r *repository) CountPendingByInstance(ctx context.Context, instanceID uuid.UUID) (*PendingStats, error) {
	var stats PendingStats
	err := r.db.WithContext(ctx).
		Model(&Booking{}).
		Select("COUNT(*) AS count, COALESCE(SUM(seat_count), 0) AS seats").
		Where("instance_id = ?", instanceID).
		Where("status = ?", StatusPending).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *repository) RejectBookings(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return tx.WithContext(ctx).
		Model(&Booking{}).
		Where("id IN ?", ids).
		Update("status", StatusRejected).Error
}

func (r *repository) CreatePayment(ctx context.Context, tx *gorm.DB, payment *Payment) error {
	return tx.WithContext(ctx).Create(payment).Error
}

func (r *repository) GetPaymentByBookingID(ctx context.Context, bookingID uuid.UUID) (*Payment, error) {
	var payment Payment
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}
