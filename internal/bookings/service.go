package bookings

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tourly/internal/catalog"
	"tourly/internal/notifications"
	"tourly/internal/pricing"
	"tourly/internal/promotions"
	"tourly/internal/shared/config"
	"tourly/internal/tours"
	"tourly/pkg/logger"
)

type Service interface {
	CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*OperationResult, error)
	GetBooking(ctx context.Context, userID, bookingID uuid.UUID) (*BookingResponse, error)
	GetBookingByRef(ctx context.Context, ref string) (*BookingResponse, error)
	ListUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) (*PaginatedBookings, error)
	CancelBooking(ctx context.Context, userID, bookingID uuid.UUID) (*OperationResult, error)
	UpdateBookingStatus(ctx context.Context, bookingID uuid.UUID, target Status) (*OperationResult, error)
	ProcessPayment(ctx context.Context, userID, bookingID uuid.UUID, req ProcessPaymentRequest) (*OperationResult, error)
	GetPendingBookingID(ctx context.Context, userID, tourID uuid.UUID) (*uuid.UUID, error)
	IsBookingPaid(ctx context.Context, bookingID uuid.UUID) (bool, error)
}

type service struct {
	repo       Repository
	calculator pricing.Calculator
	ledger     promotions.Ledger
	producer   notifications.Producer
	cfg        config.BookingConfig
	logger     *logger.Logger
}

// NewService wires the booking engine. producer may be nil; events are then
// dropped and the booking flow is unaffected.
func NewService(repo Repository, calculator pricing.Calculator, ledger promotions.Ledger, producer notifications.Producer, cfg config.BookingConfig) Service {
	return &service{
		repo:       repo,
		calculator: calculator,
		ledger:     ledger,
		producer:   producer,
		cfg:        cfg,
		logger:     logger.GetDefault(),
	}
}

func (s *service) CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*OperationResult, error) {
	calc, err := s.calculator.Calculate(ctx, userID, pricing.QuoteRequest{
		InstanceID: req.InstanceID,
		SeatCount:  req.SeatCount,
		Services:   req.Services,
		CouponCode: req.CouponCode,
	})
	if err != nil {
		// Bad references in the request are rule violations, not faults
		if errors.Is(err, pricing.ErrInstanceNotFound) {
			return &OperationResult{Success: false, Message: "tour instance not found"}, nil
		}
		if errors.Is(err, catalog.ErrServiceNotFound) {
			return &OperationResult{Success: false, Message: err.Error()}, nil
		}
		return nil, err
	}

	// A coupon that did not resolve to a promotion fails the whole attempt
	// rather than silently charging full price.
	if req.CouponCode != "" && calc.PromotionID == nil {
		return &OperationResult{Success: false, Message: calc.DiscountMessage}, nil
	}

	if existing, err := s.repo.GetUserPendingForTour(ctx, userID, calc.TourID); err == nil {
		return &OperationResult{
			Success: false,
			Message: fmt.Sprintf("you already have a pending booking %s for this tour", existing.BookingRef),
		}, nil
	} else if !errors.Is(err, ErrBookingNotFound) {
		return nil, err
	}

	booking := &Booking{
		BookingRef:     s.generateBookingRef(),
		UserID:         userID,
		InstanceID:     req.InstanceID,
		SeatCount:      req.SeatCount,
		Status:         StatusPending,
		TotalAmount:    calc.TotalBeforeDiscount,
		DiscountAmount: calc.DiscountAmount,
		FinalAmount:    calc.FinalTotal,
		Currency:       calc.Currency,
	}
	for _, line := range calc.ServiceLines {
		booking.Services = append(booking.Services, BookingService{
			ServiceID:      line.ServiceID,
			ServiceName:    line.Name,
			Quantity:       line.Quantity,
			PriceAtBooking: line.UnitPrice,
			LineTotal:      line.LineTotal,
		})
	}

	var failMessage string
	err = s.repo.WithTransaction(ctx, func(tx *gorm.DB) error {
		instance, err := s.repo.GetInstanceForUpdate(ctx, tx, req.InstanceID)
		if err != nil {
			return err
		}
		if !instance.IsOpen() {
			failMessage = fmt.Sprintf("instance is %s and not accepting bookings", instance.Status)
			return nil
		}
		// A single booking can never ask for more than total capacity,
		// independent of current occupancy.
		if req.SeatCount > instance.Capacity {
			failMessage = fmt.Sprintf("requested %d seats exceeds the instance capacity of %d", req.SeatCount, instance.Capacity)
			return nil
		}

		s.warnOnPendingLoad(ctx, instance)

		if err := s.repo.CreateBooking(ctx, tx, booking); err != nil {
			return err
		}
		// Holds are uncapped; pending demand may exceed capacity and is
		// resolved at confirmation time.
		if err := s.repo.AdjustSeatCounters(ctx, tx, req.InstanceID, 0, req.SeatCount); err != nil {
			return err
		}

		if calc.PromotionID != nil {
			return s.ledger.Record(ctx, tx, promotions.RedemptionEntry{
				PromotionID:    *calc.PromotionID,
				BookingID:      booking.ID,
				UserID:         userID,
				CouponID:       calc.CouponID,
				DiscountAmount: calc.DiscountAmount,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if failMessage != "" {
		return &OperationResult{Success: false, Message: failMessage}, nil
	}

	s.logger.LogBookingCreated(ctx, booking.ID.String(), booking.InstanceID.String(), userID.String())
	s.publishEvent(ctx, booking, notifications.EventBookingCreated)

	resp := booking.ToResponse()
	return &OperationResult{Success: true, Booking: &resp}, nil
}

func (s *service) GetBooking(ctx context.Context, userID, bookingID uuid.UUID) (*BookingResponse, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrBookingNotFound
	}
	resp := booking.ToResponse()
	return &resp, nil
}

func (s *service) GetBookingByRef(ctx context.Context, ref string) (*BookingResponse, error) {
	booking, err := s.repo.GetBookingByRef(ctx, ref)
	if err != nil {
		return nil, err
	}
	resp := booking.ToResponse()
	return &resp, nil
}

func (s *service) ListUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) (*PaginatedBookings, error) {
	result, totalCount, err := s.repo.GetUserBookings(ctx, userID, query.Page, query.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	responses := make([]BookingResponse, 0, len(result))
	for i := range result {
		responses = append(responses, result[i].ToResponse())
	}

	return &PaginatedBookings{
		Bookings:   responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
	}, nil
}

func (s *service) CancelBooking(ctx context.Context, userID, bookingID uuid.UUID) (*OperationResult, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrBookingNotFound
	}
	return s.transition(ctx, booking, StatusCancelled)
}

func (s *service) UpdateBookingStatus(ctx context.Context, bookingID uuid.UUID, target Status) (*OperationResult, error) {
	if !target.IsValid() {
		return &OperationResult{Success: false, Message: fmt.Sprintf("invalid status %s", target)}, nil
	}
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, booking, target)
}

func (s *service) ProcessPayment(ctx context.Context, userID, bookingID uuid.UUID, req ProcessPaymentRequest) (*OperationResult, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrBookingNotFound
	}
	if booking.Status != StatusConfirmed {
		return &OperationResult{
			Success: false,
			Message: fmt.Sprintf("booking is %s; only confirmed bookings can be paid", booking.Status),
		}, nil
	}
	if booking.IsPaid() {
		return &OperationResult{Success: false, Message: "booking is already paid"}, nil
	}

	payment := &Payment{
		BookingID:     booking.ID,
		Amount:        booking.FinalAmount,
		Currency:      booking.Currency,
		Status:        PaymentStatusCompleted,
		TransactionID: generateTransactionID(),
	}

	err = s.repo.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.repo.CreatePayment(ctx, tx, payment); err != nil {
			return err
		}
		return s.repo.UpdateBookingStatus(ctx, tx, booking.ID, StatusCompleted)
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogBookingStatusChanged(ctx, booking.ID.String(), string(StatusConfirmed), string(StatusCompleted))
	booking.Status = StatusCompleted
	booking.Payment = payment
	s.publishEvent(ctx, booking, notifications.EventBookingCompleted)

	resp := booking.ToResponse()
	return &OperationResult{Success: true, Booking: &resp}, nil
}

// GetPendingBookingID reports the user's outstanding pending booking for a
// tour, if any. Callers use it to dedupe before retrying a create.
func (s *service) GetPendingBookingID(ctx context.Context, userID, tourID uuid.UUID) (*uuid.UUID, error) {
	booking, err := s.repo.GetUserPendingForTour(ctx, userID, tourID)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking.ID, nil
}

func (s *service) IsBookingPaid(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	payment, err := s.repo.GetPaymentByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			return false, nil
		}
		return false, err
	}
	return payment.Status == PaymentStatusCompleted, nil
}

// transition applies a lifecycle change with its seat accounting and ledger
// side effects inside one transaction.
func (s *service) transition(ctx context.Context, booking *Booking, target Status) (*OperationResult, error) {
	if !booking.Status.CanTransitionTo(target) {
		return &OperationResult{
			Success: false,
			Message: fmt.Sprintf("cannot transition booking from %s to %s", booking.Status, target),
		}, nil
	}

	from := booking.Status
	var failMessage string
	err := s.repo.WithTransaction(ctx, func(tx *gorm.DB) error {
		switch target {
		case StatusConfirmed:
			confirmed, msg, err := s.confirmTx(ctx, tx, booking)
			if err != nil {
				return err
			}
			if !confirmed {
				failMessage = msg
			}
			return nil

		case StatusCancelled:
			instance, err := s.repo.GetInstanceForUpdate(ctx, tx, booking.InstanceID)
			if err != nil {
				return err
			}
			if from == StatusPending {
				if err := s.repo.AdjustSeatCounters(ctx, tx, booking.InstanceID, 0, -booking.SeatCount); err != nil {
					return err
				}
			} else {
				if err := s.repo.AdjustSeatCounters(ctx, tx, booking.InstanceID, -booking.SeatCount, 0); err != nil {
					return err
				}
				// Freed confirmed seats may reopen a sold-out departure
				newStatus := tours.DeriveStatus(instance.Capacity, instance.SeatsBooked-booking.SeatCount, instance.Status)
				if newStatus != instance.Status {
					if err := s.repo.UpdateInstanceStatus(ctx, tx, booking.InstanceID, newStatus); err != nil {
						return err
					}
				}
			}
			if err := s.ledger.Void(ctx, tx, booking.ID); err != nil {
				return err
			}
			return s.repo.UpdateBookingStatus(ctx, tx, booking.ID, StatusCancelled)

		case StatusRejected:
			if _, err := s.repo.GetInstanceForUpdate(ctx, tx, booking.InstanceID); err != nil {
				return err
			}
			if err := s.repo.AdjustSeatCounters(ctx, tx, booking.InstanceID, 0, -booking.SeatCount); err != nil {
				return err
			}
			if err := s.ledger.Void(ctx, tx, booking.ID); err != nil {
				return err
			}
			return s.repo.UpdateBookingStatus(ctx, tx, booking.ID, StatusRejected)

		case StatusCompleted:
			return s.repo.UpdateBookingStatus(ctx, tx, booking.ID, StatusCompleted)
		}
		return fmt.Errorf("unsupported transition target %s", target)
	})
	if err != nil {
		return nil, err
	}
	if failMessage != "" {
		return &OperationResult{Success: false, Message: failMessage}, nil
	}

	s.logger.LogBookingStatusChanged(ctx, booking.ID.String(), string(from), string(target))
	booking.Status = target
	s.publishEvent(ctx, booking, eventForStatus(target))

	resp := booking.ToResponse()
	return &OperationResult{Success: true, Booking: &resp}, nil
}

// confirmTx attempts the capacity-checked confirmation of a pending booking.
// On success it also auto-rejects pending bookings that can no longer fit
// and re-derives the instance status. Returns false with a message when
// capacity is insufficient.
func (s *service) confirmTx(ctx context.Context, tx *gorm.DB, booking *Booking) (bool, string, error) {
	instance, err := s.repo.GetInstanceForUpdate(ctx, tx, booking.InstanceID)
	if err != nil {
		return false, "", err
	}

	ok, err := s.repo.ConfirmSeats(ctx, tx, booking.InstanceID, booking.SeatCount)
	if err != nil {
		return false, "", err
	}
	if !ok {
		return false, fmt.Sprintf("only %d seats remain on this departure", instance.AvailableSeats()), nil
	}

	if err := s.repo.UpdateBookingStatus(ctx, tx, booking.ID, StatusConfirmed); err != nil {
		return false, "", err
	}
	if err := s.ledger.Confirm(ctx, tx, booking.ID); err != nil {
		return false, "", err
	}

	newBooked := instance.SeatsBooked + booking.SeatCount
	if err := s.autoRejectTx(ctx, tx, instance, newBooked, booking.ID); err != nil {
		return false, "", err
	}

	newStatus := tours.DeriveStatus(instance.Capacity, newBooked, instance.Status)
	if newStatus != instance.Status {
		if err := s.repo.UpdateInstanceStatus(ctx, tx, booking.InstanceID, newStatus); err != nil {
			return false, "", err
		}
	}
	return true, "", nil
}

// autoRejectTx walks remaining pending bookings oldest first and rejects
// every one that no longer fits in the remaining capacity. Seats of rejected
// bookings are released from the held counter; their redemptions are voided.
func (s *service) autoRejectTx(ctx context.Context, tx *gorm.DB, instance *tours.TourInstance, seatsBooked int, confirmedID uuid.UUID) error {
	pending, err := s.repo.ListPendingByInstance(ctx, tx, instance.ID)
	if err != nil {
		return err
	}

	remaining := instance.Capacity - seatsBooked
	var rejectedIDs []uuid.UUID
	releasedSeats := 0
	for i := range pending {
		b := &pending[i]
		if b.ID == confirmedID {
			continue
		}
		if b.SeatCount > remaining {
			rejectedIDs = append(rejectedIDs, b.ID)
			releasedSeats += b.SeatCount
			continue
		}
		remaining -= b.SeatCount
	}

	if len(rejectedIDs) == 0 {
		return nil
	}

	if err := s.repo.RejectBookings(ctx, tx, rejectedIDs); err != nil {
		return err
	}
	if err := s.repo.AdjustSeatCounters(ctx, tx, instance.ID, 0, -releasedSeats); err != nil {
		return err
	}
	for _, id := range rejectedIDs {
		if err := s.ledger.Void(ctx, tx, id); err != nil {
			return err
		}
	}

	s.logger.LogBookingsAutoRejected(ctx, instance.ID.String(), len(rejectedIDs), releasedSeats)
	return nil
}

// warnOnPendingLoad flags instances drowning in pending demand. Advisory
// only; the booking still goes through.
func (s *service) warnOnPendingLoad(ctx context.Context, instance *tours.TourInstance) {
	stats, err := s.repo.CountPendingByInstance(ctx, instance.ID)
	if err != nil {
		return
	}
	if stats.Count >= int64(s.cfg.PendingCountWarnAt) ||
		stats.Seats >= int64(instance.Capacity*s.cfg.PendingSeatsWarnFactor) {
		s.logger.InfoWithContext(ctx, "High Pending Load", map[string]interface{}{
			"instance_id":   instance.ID.String(),
			"pending_count": stats.Count,
			"pending_seats": stats.Seats,
			"capacity":      instance.Capacity,
		})
	}
}

func (s *service) publishEvent(ctx context.Context, booking *Booking, eventType notifications.EventType) {
	if s.producer == nil {
		return
	}
	event := &notifications.BookingEvent{
		EventType:  eventType,
		BookingID:  booking.ID,
		BookingRef: booking.BookingRef,
		UserID:     booking.UserID,
		InstanceID: booking.InstanceID,
		SeatCount:  booking.SeatCount,
		Amount:     booking.FinalAmount,
		Currency:   booking.Currency,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.producer.PublishBookingEvent(ctx, event); err != nil {
		s.logger.ErrorWithContext(ctx, "failed to publish booking event", err, map[string]interface{}{
			"booking_id": booking.ID.String(),
			"event_type": string(eventType),
		})
	}
}

func eventForStatus(status Status) notifications.EventType {
	switch status {
	case StatusConfirmed:
		return notifications.EventBookingConfirmed
	case StatusRejected:
		return notifications.EventBookingRejected
	case StatusCancelled:
		return notifications.EventBookingCancelled
	case StatusCompleted:
		return notifications.EventBookingCompleted
	}
	return notifications.EventBookingCreated
}

// generateBookingRef builds refs like TBK-20260829-4F2A9
func (s *service) generateBookingRef() string {
	prefix := s.cfg.RefPrefix
	if prefix == "" {
		prefix = "TBK"
	}
	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().UTC().Format("20060102"), randomHex(5))
}

func generateTransactionID() string {
	return fmt.Sprintf("TXN-%d-%s", time.Now().UTC().Unix(), randomHex(6))
}

func randomHex(n int) string {
	buf := make([]byte, (n+1)/2)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the process is in serious trouble;
		// fall back to a time-derived suffix rather than panicking.
		return fmt.Sprintf("%X", time.Now().UnixNano())[:n]
	}
	return strings.ToUpper(hex.EncodeToString(buf))[:n]
}
