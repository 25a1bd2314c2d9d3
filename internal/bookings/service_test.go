package bookings

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tourly/internal/catalog"
	"tourly/internal/pricing"
	"tourly/internal/promotions"
	"tourly/internal/shared/config"
	"tourly/internal/tours"
)

// fakeRepo is an in-memory Repository. Transaction handles are ignored;
// every mutation applies immediately.
type fakeRepo struct {
	instances map[uuid.UUID]*tours.TourInstance
	bookings  map[uuid.UUID]*Booking
	payments  map[uuid.UUID]*Payment
	seq       int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		instances: map[uuid.UUID]*tours.TourInstance{},
		bookings:  map[uuid.UUID]*Booking{},
		payments:  map[uuid.UUID]*Payment{},
	}
}

func (f *fakeRepo) addInstance(capacity int, status tours.InstanceStatus) *tours.TourInstance {
	instance := &tours.TourInstance{
		ID:        uuid.New(),
		TourID:    uuid.New(),
		Capacity:  capacity,
		PriceBase: 100,
		Currency:  "USD",
		Status:    status,
	}
	f.instances[instance.ID] = instance
	return instance
}

func (f *fakeRepo) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (f *fakeRepo) CreateBooking(ctx context.Context, tx *gorm.DB, booking *Booking) error {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	f.seq++
	booking.CreatedAt = time.Unix(int64(f.seq), 0)
	f.bookings[booking.ID] = booking
	return nil
}

func (f *fakeRepo) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	if b, ok := f.bookings[id]; ok {
		copied := *b
		if p, ok := f.payments[id]; ok {
			copied.Payment = p
		}
		return &copied, nil
	}
	return nil, ErrBookingNotFound
}

func (f *fakeRepo) GetBookingByRef(ctx context.Context, ref string) (*Booking, error) {
	for _, b := range f.bookings {
		if b.BookingRef == ref {
			copied := *b
			return &copied, nil
		}
	}
	return nil, ErrBookingNotFound
}

func (f *fakeRepo) GetUserBookings(ctx context.Context, userID uuid.UUID, page, limit int) ([]Booking, int64, error) {
	var result []Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			result = append(result, *b)
		}
	}
	return result, int64(len(result)), nil
}

func (f *fakeRepo) UpdateBookingStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status Status) error {
	b, ok := f.bookings[id]
	if !ok {
		return ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (f *fakeRepo) GetUserPendingForTour(ctx context.Context, userID, tourID uuid.UUID) (*Booking, error) {
	for _, b := range f.bookings {
		instance, ok := f.instances[b.InstanceID]
		if ok && instance.TourID == tourID && b.UserID == userID && b.Status == StatusPending {
			copied := *b
			return &copied, nil
		}
	}
	return nil, ErrBookingNotFound
}

func (f *fakeRepo) GetInstanceForUpdate(ctx context.Context, tx *gorm.DB, instanceID uuid.UUID) (*tours.TourInstance, error) {
	if instance, ok := f.instances[instanceID]; ok {
		copied := *instance
		return &copied, nil
	}
	return nil, tours.ErrNotFound
}

func (f *fakeRepo) ConfirmSeats(ctx context.Context, tx *gorm.DB, instanceID uuid.UUID, seats int) (bool, error) {
	instance := f.instances[instanceID]
	if instance.SeatsBooked+seats > instance.Capacity {
		return false, nil
	}
	instance.SeatsBooked += seats
	instance.SeatsHeld -= seats
	if instance.SeatsHeld < 0 {
		instance.SeatsHeld = 0
	}
	return true, nil
}

func (f *fakeRepo) AdjustSeatCounters(ctx context.Context, tx *gorm.DB, instanceID uuid.UUID, bookedDelta, heldDelta int) error {
	instance := f.instances[instanceID]
	instance.SeatsBooked += bookedDelta
	if instance.SeatsBooked < 0 {
		instance.SeatsBooked = 0
	}
	instance.SeatsHeld += heldDelta
	if instance.SeatsHeld < 0 {
		instance.SeatsHeld = 0
	}
	return nil
}

func (f *fakeRepo) UpdateInstanceStatus(ctx context.Context, tx *gorm.DB, instanceID uuid.UUID, status tours.InstanceStatus) error {
	f.instances[instanceID].Status = status
	return nil
}

func (f *fakeRepo) ListPendingByInstance(ctx context.Context, tx *gorm.DB, instanceID uuid.UUID) ([]Booking, error) {
	var result []Booking
	for _, b := range f.bookings {
		if b.InstanceID == instanceID && b.Status == StatusPending {
			result = append(result, *b)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (f *fakeRepo) CountPendingByInstance(ctx context.Context, instanceID uuid.UUID) (*PendingStats, error) {
	stats := &PendingStats{}
	for _, b := range f.bookings {
		if b.InstanceID == instanceID && b.Status == StatusPending {
			stats.Count++
			stats.Seats += int64(b.SeatCount)
		}
	}
	return stats, nil
}

func (f *fakeRepo) RejectBookings(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	for _, id := range ids {
		f.bookings[id].Status = StatusRejected
	}
	return nil
}

func (f *fakeRepo) CreatePayment(ctx context.Context, tx *gorm.DB, payment *Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	f.payments[payment.BookingID] = payment
	return nil
}

func (f *fakeRepo) GetPaymentByBookingID(ctx context.Context, bookingID uuid.UUID) (*Payment, error) {
	if p, ok := f.payments[bookingID]; ok {
		return p, nil
	}
	return nil, ErrPaymentNotFound
}

// fakeCalculator prices seats at the instance base price. Coupon code "GOOD"
// resolves to a promotion with a 10 unit discount; any other code fails.
type fakeCalculator struct {
	instances map[uuid.UUID]*tours.TourInstance
	promoID   uuid.UUID
	failWith  error
}

func (f *fakeCalculator) Calculate(ctx context.Context, userID uuid.UUID, req pricing.QuoteRequest) (*pricing.PriceCalculation, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	instance, ok := f.instances[req.InstanceID]
	if !ok {
		return nil, pricing.ErrInstanceNotFound
	}
	calc := &pricing.PriceCalculation{
		InstanceID:          instance.ID,
		TourID:              instance.TourID,
		Currency:            instance.Currency,
		SeatCount:           req.SeatCount,
		PricePerSeat:        instance.PriceBase,
		SeatsSubtotal:       instance.PriceBase * float64(req.SeatCount),
		TotalBeforeDiscount: instance.PriceBase * float64(req.SeatCount),
	}
	calc.FinalTotal = calc.TotalBeforeDiscount
	switch req.CouponCode {
	case "":
	case "GOOD":
		calc.DiscountAmount = 10
		calc.PromotionID = &f.promoID
		calc.FinalTotal -= 10
	default:
		calc.DiscountMessage = "coupon code is invalid or not applicable to this booking"
	}
	return calc, nil
}

// fakeLedger records which bookings went through each ledger operation
type fakeLedger struct {
	recorded  []promotions.RedemptionEntry
	confirmed []uuid.UUID
	voided    []uuid.UUID
}

func (f *fakeLedger) Record(ctx context.Context, tx *gorm.DB, entry promotions.RedemptionEntry) error {
	f.recorded = append(f.recorded, entry)
	return nil
}

func (f *fakeLedger) Confirm(ctx context.Context, tx *gorm.DB, bookingID uuid.UUID) error {
	f.confirmed = append(f.confirmed, bookingID)
	return nil
}

func (f *fakeLedger) Void(ctx context.Context, tx *gorm.DB, bookingID uuid.UUID) error {
	f.voided = append(f.voided, bookingID)
	return nil
}

func testConfig() config.BookingConfig {
	return config.BookingConfig{
		RefPrefix:              "TBK",
		PendingCountWarnAt:     50,
		PendingSeatsWarnFactor: 5,
	}
}

func newTestService() (Service, *fakeRepo, *fakeLedger) {
	repo := newFakeRepo()
	ledger := &fakeLedger{}
	calculator := &fakeCalculator{instances: repo.instances, promoID: uuid.New()}
	svc := NewService(repo, calculator, ledger, nil, testConfig())
	return svc, repo, ledger
}

func TestCreateBooking(t *testing.T) {
	svc, repo, ledger := newTestService()
	instance := repo.addInstance(10, tours.InstanceStatusOpen)

	result, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		InstanceID: instance.ID,
		SeatCount:  2,
	})
	require.NoError(t, err)
	require.True(t, result.Success)
	require.NotNil(t, result.Booking)

	assert.Equal(t, StatusPending, result.Booking.Status)
	assert.True(t, strings.HasPrefix(result.Booking.BookingRef, "TBK-"))
	assert.Equal(t, 200.0, result.Booking.TotalAmount)
	assert.Equal(t, 200.0, result.Booking.FinalAmount)

	// pending bookings hold seats without consuming capacity
	assert.Equal(t, 2, instance.SeatsHeld)
	assert.Equal(t, 0, instance.SeatsBooked)
	assert.Empty(t, ledger.recorded)
}

func TestCreateBookingUnknownInstance(t *testing.T) {
	svc, _, _ := newTestService()

	result, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		InstanceID: uuid.New(),
		SeatCount:  2,
	})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "not found")
}

func TestCreateBookingUnknownService(t *testing.T) {
	repo := newFakeRepo()
	calculator := &fakeCalculator{
		instances: repo.instances,
		failWith:  fmt.Errorf("service %s is not available: %w", uuid.New(), catalog.ErrServiceNotFound),
	}
	svc := NewService(repo, calculator, &fakeLedger{}, nil, testConfig())

	result, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		InstanceID: uuid.New(),
		SeatCount:  2,
	})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "not available")
	assert.Empty(t, repo.bookings)
}

func TestCreateBookingSeatsExceedCapacity(t *testing.T) {
	svc, repo, _ := newTestService()
	instance := repo.addInstance(10, tours.InstanceStatusOpen)

	result, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		InstanceID: instance.ID,
		SeatCount:  11,
	})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "exceeds the instance capacity")
	assert.Equal(t, 0, instance.SeatsHeld)
}

func TestGetPendingBookingID(t *testing.T) {
	svc, repo, _ := newTestService()
	instance := repo.addInstance(10, tours.InstanceStatusOpen)
	userID := uuid.New()

	id, err := svc.GetPendingBookingID(context.Background(), userID, instance.TourID)
	require.NoError(t, err)
	assert.Nil(t, id)

	created, err := svc.CreateBooking(context.Background(), userID, CreateBookingRequest{
		InstanceID: instance.ID,
		SeatCount:  2,
	})
	require.NoError(t, err)

	id, err = svc.GetPendingBookingID(context.Background(), userID, instance.TourID)
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, created.Booking.ID, *id)
}

func TestCreateBookingClosedInstance(t *testing.T) {
	svc, repo, _ := newTestService()
	instance := repo.addInstance(10, tours.InstanceStatusClosed)

	result, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		InstanceID: instance.ID,
		SeatCount:  2,
	})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "CLOSED")
	assert.Equal(t, 0, instance.SeatsHeld)
}

func TestCreateBookingInvalidCoupon(t *testing.T) {
	svc, repo, ledger := newTestService()
	instance := repo.addInstance(10, tours.InstanceStatusOpen)

	result, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		InstanceID: instance.ID,
		SeatCount:  2,
		CouponCode: "BOGUS",
	})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Message)
	assert.Empty(t, repo.bookings)
	assert.Empty(t, ledger.recorded)
}

func TestCreateBookingWithCouponRecordsRedemption(t *testing.T) {
	svc, repo, ledger := newTestService()
	instance := repo.addInstance(10, tours.InstanceStatusOpen)
	userID := uuid.New()

	result, err := svc.CreateBooking(context.Background(), userID, CreateBookingRequest{
		InstanceID: instance.ID,
		SeatCount:  2,
		CouponCode: "GOOD",
	})
	require.NoError(t, err)
	require.True(t, result.Success)

	assert.Equal(t, 10.0, result.Booking.DiscountAmount)
	assert.Equal(t, 190.0, result.Booking.FinalAmount)
	require.Len(t, ledger.recorded, 1)
	assert.Equal(t, result.Booking.ID, ledger.recorded[0].BookingID)
	assert.Equal(t, userID, ledger.recorded[0].UserID)
	assert.Equal(t, 10.0, ledger.recorded[0].DiscountAmount)
}

func TestCreateBookingDuplicatePendingForTour(t *testing.T) {
	svc, repo, _ := newTestService()
	instance := repo.addInstance(10, tours.InstanceStatusOpen)
	userID := uuid.New()

	first, err := svc.CreateBooking(context.Background(), userID, CreateBookingRequest{
		InstanceID: instance.ID,
		SeatCount:  2,
	})
	require.NoError(t, err)
	require.True(t, first.Success)

	second, err := svc.CreateBooking(context.Background(), userID, CreateBookingRequest{
		InstanceID: instance.ID,
		SeatCount:  1,
	})
	require.NoError(t, err)
	assert.False(t, second.Success)
	assert.Contains(t, second.Message, "pending booking")

	// a different user is unaffected
	third, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		InstanceID: instance.ID,
		SeatCount:  1,
	})
	require.NoError(t, err)
	assert.True(t, third.Success)
}

// Capacity 10 with three pending six seat bookings: confirming the first
// must reject the other two because neither fits the remaining four seats.
func TestConfirmAutoRejectsOverflowingPendings(t *testing.T) {
	svc, repo, ledger := newTestService()
	instance := repo.addInstance(10, tours.InstanceStatusOpen)

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		result, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
			InstanceID: instance.ID,
			SeatCount:  6,
		})
		require.NoError(t, err)
		require.True(t, result.Success)
		ids = append(ids, result.Booking.ID)
	}
	assert.Equal(t, 18, instance.SeatsHeld)

	result, err := svc.UpdateBookingStatus(context.Background(), ids[0], StatusConfirmed)
	require.NoError(t, err)
	require.True(t, result.Success)

	assert.Equal(t, StatusConfirmed, repo.bookings[ids[0]].Status)
	assert.Equal(t, StatusRejected, repo.bookings[ids[1]].Status)
	assert.Equal(t, StatusRejected, repo.bookings[ids[2]].Status)

	assert.Equal(t, 6, instance.SeatsBooked)
	assert.Equal(t, 0, instance.SeatsHeld)
	assert.Equal(t, tours.InstanceStatusOpen, instance.Status)

	assert.ElementsMatch(t, []uuid.UUID{ids[1], ids[2]}, ledger.voided)
	assert.Equal(t, []uuid.UUID{ids[0]}, ledger.confirmed)
}

func TestConfirmKeepsPendingsThatStillFit(t *testing.T) {
	svc, repo, _ := newTestService()
	instance := repo.addInstance(10, tours.InstanceStatusOpen)

	big, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		InstanceID: instance.ID,
		SeatCount:  6,
	})
	require.NoError(t, err)
	small, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		InstanceID: instance.ID,
		SeatCount:  3,
	})
	require.NoError(t, err)

	result, err := svc.UpdateBookingStatus(context.Background(), big.Booking.ID, StatusConfirmed)
	require.NoError(t, err)
	require.True(t, result.Success)

	// three seats still fit in the remaining four
	assert.Equal(t, StatusPending, repo.bookings[small.Booking.ID].Status)
	assert.Equal(t, 3, instance.SeatsHeld)
}

func TestConfirmInsufficientCapacity(t *testing.T) {
	svc, repo, _ := newTestService()
	instance := repo.addInstance(10, tours.InstanceStatusOpen)

	first, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		InstanceID: instance.ID,
		SeatCount:  6,
	})
	require.NoError(t, err)
	require.True(t, first.Success)

	confirmed, err := svc.UpdateBookingStatus(context.Background(), first.Booking.ID, StatusConfirmed)
	require.NoError(t, err)
	require.True(t, confirmed.Success)

	// Overbooking is allowed at create time even against a mostly full
	// departure; the conditional update at confirm is the hard gate.
	second, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		InstanceID: instance.ID,
		SeatCount:  6,
	})
	require.NoError(t, err)
	require.True(t, second.Success)

	result, err := svc.UpdateBookingStatus(context.Background(), second.Booking.ID, StatusConfirmed)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "seats remain")

	// nothing moved: booking stays pending, counters untouched
	assert.Equal(t, StatusPending, repo.bookings[second.Booking.ID].Status)
	assert.Equal(t, 6, instance.SeatsBooked)
	assert.Equal(t, 6, instance.SeatsHeld)
}

func TestConfirmDerivesSoldOut(t *testing.T) {
	svc, repo, _ := newTestService()
	instance := repo.addInstance(6, tours.InstanceStatusOpen)

	created, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		InstanceID: instance.ID,
		SeatCount:  6,
	})
	require.NoError(t, err)

	result, err := svc.UpdateBookingStatus(context.Background(), created.Booking.ID, StatusConfirmed)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, tours.InstanceStatusSoldOut, instance.Status)
}

func TestCancelPendingReleasesHold(t *testing.T) {
	svc, repo, ledger := newTestService()
	instance := repo.addInstance(10, tours.InstanceStatusOpen)
	userID := uuid.New()

	created, err := svc.CreateBooking(context.Background(), userID, CreateBookingRequest{
		InstanceID: instance.ID,
		SeatCount:  4,
	})
	require.NoError(t, err)

	result, err := svc.CancelBooking(context.Background(), userID, created.Booking.ID)
	require.NoError(t, err)
	require.True(t, result.Success)

	assert.Equal(t, StatusCancelled, repo.bookings[created.Booking.ID].Status)
	assert.Equal(t, 0, instance.SeatsHeld)
	assert.Contains(t, ledger.voided, created.Booking.ID)
}

func TestCancelConfirmedFreesSeatsAndReopens(t *testing.T) {
	svc, repo, _ := newTestService()
	instance := repo.addInstance(6, tours.InstanceStatusOpen)
	userID := uuid.New()

	created, err := svc.CreateBooking(context.Background(), userID, CreateBookingRequest{
		InstanceID: instance.ID,
		SeatCount:  6,
	})
	require.NoError(t, err)
	_, err = svc.UpdateBookingStatus(context.Background(), created.Booking.ID, StatusConfirmed)
	require.NoError(t, err)
	require.Equal(t, tours.InstanceStatusSoldOut, instance.Status)

	result, err := svc.CancelBooking(context.Background(), userID, created.Booking.ID)
	require.NoError(t, err)
	require.True(t, result.Success)

	assert.Equal(t, 0, instance.SeatsBooked)
	assert.Equal(t, tours.InstanceStatusOpen, instance.Status)
}

func TestInvalidTransitionRejected(t *testing.T) {
	svc, repo, _ := newTestService()
	instance := repo.addInstance(10, tours.InstanceStatusOpen)
	userID := uuid.New()

	created, err := svc.CreateBooking(context.Background(), userID, CreateBookingRequest{
		InstanceID: instance.ID,
		SeatCount:  2,
	})
	require.NoError(t, err)

	// pending cannot complete without confirmation
	result, err := svc.UpdateBookingStatus(context.Background(), created.Booking.ID, StatusCompleted)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "cannot transition")
	assert.Equal(t, StatusPending, repo.bookings[created.Booking.ID].Status)
}

func TestProcessPaymentCompletesConfirmedBooking(t *testing.T) {
	svc, repo, _ := newTestService()
	instance := repo.addInstance(10, tours.InstanceStatusOpen)
	userID := uuid.New()

	created, err := svc.CreateBooking(context.Background(), userID, CreateBookingRequest{
		InstanceID: instance.ID,
		SeatCount:  2,
	})
	require.NoError(t, err)
	_, err = svc.UpdateBookingStatus(context.Background(), created.Booking.ID, StatusConfirmed)
	require.NoError(t, err)

	result, err := svc.ProcessPayment(context.Background(), userID, created.Booking.ID, ProcessPaymentRequest{PaymentMethod: "card"})
	require.NoError(t, err)
	require.True(t, result.Success)

	assert.Equal(t, StatusCompleted, repo.bookings[created.Booking.ID].Status)
	payment := repo.payments[created.Booking.ID]
	require.NotNil(t, payment)
	assert.Equal(t, PaymentStatusCompleted, payment.Status)
	assert.Equal(t, created.Booking.FinalAmount, payment.Amount)

	paid, err := svc.IsBookingPaid(context.Background(), created.Booking.ID)
	require.NoError(t, err)
	assert.True(t, paid)
}

func TestProcessPaymentOnPendingBooking(t *testing.T) {
	svc, repo, _ := newTestService()
	instance := repo.addInstance(10, tours.InstanceStatusOpen)
	userID := uuid.New()

	created, err := svc.CreateBooking(context.Background(), userID, CreateBookingRequest{
		InstanceID: instance.ID,
		SeatCount:  2,
	})
	require.NoError(t, err)

	result, err := svc.ProcessPayment(context.Background(), userID, created.Booking.ID, ProcessPaymentRequest{PaymentMethod: "card"})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "only confirmed")
	assert.Equal(t, StatusPending, repo.bookings[created.Booking.ID].Status)
}

func TestProcessPaymentTwice(t *testing.T) {
	svc, repo, _ := newTestService()
	instance := repo.addInstance(10, tours.InstanceStatusOpen)
	userID := uuid.New()

	created, err := svc.CreateBooking(context.Background(), userID, CreateBookingRequest{
		InstanceID: instance.ID,
		SeatCount:  2,
	})
	require.NoError(t, err)
	_, err = svc.UpdateBookingStatus(context.Background(), created.Booking.ID, StatusConfirmed)
	require.NoError(t, err)

	first, err := svc.ProcessPayment(context.Background(), userID, created.Booking.ID, ProcessPaymentRequest{PaymentMethod: "card"})
	require.NoError(t, err)
	require.True(t, first.Success)

	// the booking is COMPLETED now, so the state guard trips before the
	// duplicate payment check does
	second, err := svc.ProcessPayment(context.Background(), userID, created.Booking.ID, ProcessPaymentRequest{PaymentMethod: "card"})
	require.NoError(t, err)
	assert.False(t, second.Success)
	require.Len(t, repo.payments, 1)
}

func TestProcessPaymentAlreadyPaid(t *testing.T) {
	svc, repo, _ := newTestService()
	instance := repo.addInstance(10, tours.InstanceStatusOpen)
	userID := uuid.New()

	booking := &Booking{
		ID:          uuid.New(),
		BookingRef:  "TBK-20260829-4F2A9",
		UserID:      userID,
		InstanceID:  instance.ID,
		SeatCount:   2,
		Status:      StatusConfirmed,
		FinalAmount: 200,
		Currency:    "USD",
	}
	repo.bookings[booking.ID] = booking
	repo.payments[booking.ID] = &Payment{
		ID:        uuid.New(),
		BookingID: booking.ID,
		Amount:    200,
		Currency:  "USD",
		Status:    PaymentStatusCompleted,
	}

	result, err := svc.ProcessPayment(context.Background(), userID, booking.ID, ProcessPaymentRequest{PaymentMethod: "card"})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "already paid")
	require.Len(t, repo.payments, 1)
}

func TestGetBookingOwnership(t *testing.T) {
	svc, repo, _ := newTestService()
	instance := repo.addInstance(10, tours.InstanceStatusOpen)
	owner := uuid.New()

	created, err := svc.CreateBooking(context.Background(), owner, CreateBookingRequest{
		InstanceID: instance.ID,
		SeatCount:  2,
	})
	require.NoError(t, err)

	_, err = svc.GetBooking(context.Background(), uuid.New(), created.Booking.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	booking, err := svc.GetBooking(context.Background(), owner, created.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Booking.ID, booking.ID)
}
