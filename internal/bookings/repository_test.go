package bookings

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (Repository, *gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewRepository(gdb), gdb, mock
}

func TestConfirmSeatsSucceedsWithinCapacity(t *testing.T) {
	repo, gdb, mock := setupMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "tour_instances" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.ConfirmSeats(context.Background(), gdb, uuid.New(), 4)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmSeatsFailsWhenFull(t *testing.T) {
	repo, gdb, mock := setupMockDB(t)

	// the guarded update touches no row when seats_booked + n > capacity
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "tour_instances" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.ConfirmSeats(context.Background(), gdb, uuid.New(), 4)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRejectBookingsEmptySliceIsNoOp(t *testing.T) {
	repo, gdb, mock := setupMockDB(t)

	err := repo.RejectBookings(context.Background(), gdb, nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRejectBookings(t *testing.T) {
	repo, gdb, mock := setupMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "bookings" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := repo.RejectBookings(context.Background(), gdb, []uuid.UUID{uuid.New(), uuid.New()})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountPendingByInstance(t *testing.T) {
	repo, _, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) AS count, COALESCE(SUM(seat_count), 0) AS seats FROM "bookings"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count", "seats"}).AddRow(3, 14))

	stats, err := repo.CountPendingByInstance(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Count)
	assert.Equal(t, int64(14), stats.Seats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBookingStatusNotFound(t *testing.T) {
	repo, gdb, mock := setupMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "bookings" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateBookingStatus(context.Background(), gdb, uuid.New(), StatusConfirmed)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetBookingByIDNotFound(t *testing.T) {
	repo, _, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "bookings"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetBookingByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
