package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type stubRepository struct {
	set domain.ReservationSet
	err error
}

func (r stubRepository) Load(context.Context) (domain.Snapshot, error) {
	return domain.Snapshot{Set: r.set, Version: 1}, r.err
}

func newUseCase(set domain.ReservationSet, now time.Time) *UseCase {
	uc := NewUseCase(stubRepository{set: set}, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func fullyBook(set domain.ReservationSet, date types.Date, t types.TimeString) {
	for _, slot := range domain.SlotIndexes {
		set.Add(domain.Reservation{Date: date, Time: t, Slot: slot, Username: "x"})
	}
}

func TestExecute_ListsFutureTimesWithFreeSlots(t *testing.T) {
	date := types.MustDate("2024-08-04")
	set := domain.NewReservationSet()
	fullyBook(set, date, "15:00")
	set.Add(domain.Reservation{Date: date, Time: "13:00", Slot: 2, Username: "a"})

	now := time.Date(2024, 8, 4, 11, 0, 0, 0, time.Local)
	resp, err := newUseCase(set, now).Execute(context.Background(), &Request{Date: date})

	require.NoError(t, err)
	require.Len(t, resp.Times, 5)
	assert.Equal(t, TimeSlots{Time: "13:00", Slots: []domain.SlotIndex{1, 3}}, resp.Times[0])
	assert.Equal(t, types.TimeString("17:00"), resp.Times[1].Time)
	assert.Equal(t, types.TimeString("23:00"), resp.Times[4].Time)
}

func TestExecute_SpecificTime(t *testing.T) {
	date := types.MustDate("2024-08-05")
	set := domain.NewReservationSet()
	fullyBook(set, date, "09:00")
	now := time.Date(2024, 8, 4, 11, 0, 0, 0, time.Local)
	uc := newUseCase(set, now)

	resp, err := uc.Execute(context.Background(), &Request{Date: date, Time: ptr.Ptr(types.TimeString("09:00"))})
	require.NoError(t, err)
	assert.Equal(t, []TimeSlots{{Time: "09:00", Slots: []domain.SlotIndex{}}}, resp.Times)

	resp, err = uc.Execute(context.Background(), &Request{Date: date, Time: ptr.Ptr(types.TimeString("11:00"))})
	require.NoError(t, err)
	assert.Equal(t, []TimeSlots{{Time: "11:00", Slots: []domain.SlotIndex{1, 2, 3}}}, resp.Times)
}

func TestExecute_PastDateHasNoTimes(t *testing.T) {
	now := time.Date(2024, 8, 4, 11, 0, 0, 0, time.Local)
	resp, err := newUseCase(domain.NewReservationSet(), now).Execute(context.Background(), &Request{Date: types.MustDate("2024-08-03")})

	require.NoError(t, err)
	assert.Empty(t, resp.Times)
}

func TestExecute_Errors(t *testing.T) {
	uc := newUseCase(domain.NewReservationSet(), time.Now())

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Date: types.MustDate("2024-08-05"), Time: ptr.Ptr(types.TimeString("10:00"))})
	assert.ErrorIs(t, err, ErrInvalidInput)

	broken := NewUseCase(stubRepository{err: errors.New("corrupt")}, nopLogger{})
	_, err = broken.Execute(context.Background(), &Request{Date: types.MustDate("2024-08-05")})
	assert.ErrorIs(t, err, ErrPersistence)
}
