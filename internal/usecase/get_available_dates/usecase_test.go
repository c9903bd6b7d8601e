package get_available_dates

import (
	"context"
	"errors"
	"math"
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
	return domain.Snapshot{Set: r.set}, r.err
}

func newUseCase(set domain.ReservationSet, now time.Time) *UseCase {
	uc := NewUseCase(stubRepository{set: set}, domain.DefaultWindowDays, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func dates(resp *Response) []string {
	result := make([]string, 0, len(resp.Dates))
	for _, d := range resp.Dates {
		result = append(result, d.Date.String())
	}
	return result
}

func TestExecute_FirstWeek(t *testing.T) {
	// Воскресенье, 12:00: на сегодня остались времена после полудня
	now := time.Date(2024, 8, 4, 12, 0, 0, 0, time.Local)

	resp, err := newUseCase(domain.NewReservationSet(), now).Execute(context.Background(), &Request{})

	require.NoError(t, err)
	assert.Equal(t, []string{
		"2024-08-04", "2024-08-05", "2024-08-06", "2024-08-07",
		"2024-08-08", "2024-08-09", "2024-08-10",
	}, dates(resp))
	assert.Equal(t, time.Sunday, resp.Dates[0].Weekday)
	assert.False(t, resp.HasPrevious)
}

func TestExecute_HidesFullyBookedAndElapsedDates(t *testing.T) {
	now := time.Date(2024, 8, 4, 23, 30, 0, 0, time.Local)
	set := domain.NewReservationSet()
	booked := types.MustDate("2024-08-06")
	for _, tm := range domain.CanonicalTimes {
		for _, slot := range domain.SlotIndexes {
			set.Add(domain.Reservation{Date: booked, Time: tm, Slot: slot, Username: "x"})
		}
	}

	resp, err := newUseCase(set, now).Execute(context.Background(), &Request{WindowDays: 3})

	require.NoError(t, err)
	// Сегодня все времена прошли, 6-е полностью занято
	assert.Equal(t, []string{"2024-08-05"}, dates(resp))
}

func TestExecute_Paging(t *testing.T) {
	now := time.Date(2024, 8, 4, 8, 0, 0, 0, time.Local)
	uc := newUseCase(domain.NewReservationSet(), now)

	resp, err := uc.Execute(context.Background(), &Request{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, types.MustDate("2024-08-18"), resp.Start)
	assert.Equal(t, "2024-08-18", dates(resp)[0])
	assert.Len(t, resp.Dates, 7)
	assert.True(t, resp.HasPrevious)

	resp, err = uc.Execute(context.Background(), &Request{Start: ptr.Ptr(types.MustDate("2024-09-01")), WindowDays: 2, Page: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-09-03", "2024-09-04"}, dates(resp))
}

func TestExecute_Errors(t *testing.T) {
	uc := newUseCase(domain.NewReservationSet(), time.Now())

	_, err := uc.Execute(context.Background(), &Request{Page: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Page: domain.MaxPage + 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Page: math.MaxInt / 2})
	assert.ErrorIs(t, err, ErrInvalidInput)

	resp, err := uc.Execute(context.Background(), &Request{Page: domain.MaxPage})
	require.NoError(t, err)
	assert.Equal(t, domain.MaxPage, resp.Page)

	_, err = uc.Execute(context.Background(), &Request{WindowDays: domain.MaxWindowDays + 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	broken := NewUseCase(stubRepository{err: errors.New("io")}, 7, nopLogger{})
	_, err = broken.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrPersistence)
}
