package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/service/reports/models"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

// 2024-08-04 - воскресенье
const sample = `{
  "2024-08-04 10:00": [{"slot": 1, "username": "a"}, {"slot": 2, "username": "b"}],
  "2024-08-04 11:00": [{"slot": 1, "username": "a"}],
  "2024-08-05 10:00": [{"slot": 1, "username": "a"}]
}`

func sampleSet(t *testing.T) domain.ReservationSet {
	t.Helper()
	set, err := reservation.Decode([]byte(sample))
	require.NoError(t, err)
	return set
}

func TestRankByDayOfWeek(t *testing.T) {
	assert.Equal(t, []domain.DayCount{
		{Day: time.Sunday, Count: 3},
		{Day: time.Monday, Count: 1},
	}, RankByDayOfWeek(sampleSet(t), nil, 5))
}

func TestRankByDayAndTime(t *testing.T) {
	assert.Equal(t, []domain.DayTimeCount{
		{DayTime: domain.DayTime{Day: time.Sunday, Time: "10:00"}, Count: 2},
		{DayTime: domain.DayTime{Day: time.Sunday, Time: "11:00"}, Count: 1},
		{DayTime: domain.DayTime{Day: time.Monday, Time: "10:00"}, Count: 1},
	}, RankByDayAndTime(sampleSet(t), nil, 5))
}

func TestRankByTimeOfDay(t *testing.T) {
	assert.Equal(t, []domain.TimeCount{
		{Time: "10:00", Count: 3},
		{Time: "11:00", Count: 1},
	}, RankByTimeOfDay(sampleSet(t), nil, 5))
}

func TestRanking_UsernameFilter(t *testing.T) {
	set := sampleSet(t)

	assert.Equal(t, []domain.DayCount{{Day: time.Sunday, Count: 1}}, RankByDayOfWeek(set, ptr.Ptr(domain.Identity("b")), 5))
	assert.Equal(t, []domain.TimeCount{{Time: "10:00", Count: 2}, {Time: "11:00", Count: 1}}, RankByTimeOfDay(set, ptr.Ptr(domain.Identity("a")), 5))
	assert.Empty(t, RankByDayAndTime(set, ptr.Ptr(domain.Identity("nobody")), 5))
}

func TestRanking_TopNAndTies(t *testing.T) {
	set := sampleSet(t)

	assert.Equal(t, []domain.DayTimeCount{
		{DayTime: domain.DayTime{Day: time.Sunday, Time: "10:00"}, Count: 2},
		{DayTime: domain.DayTime{Day: time.Sunday, Time: "11:00"}, Count: 1},
	}, RankByDayAndTime(set, nil, 2))

	assert.Len(t, RankByDayAndTime(set, nil, 0), 3)
}

func TestRanking_IsDeterministic(t *testing.T) {
	// Равные счетчики: порядок определяется хронологией ключей, а не порядком в документе
	set, err := reservation.Decode([]byte(`{
		"2024-08-07 09:00": [{"slot": 1, "username": "a"}],
		"2024-08-06 09:00": [{"slot": 1, "username": "a"}],
		"2024-08-05 09:00": [{"slot": 1, "username": "a"}]
	}`))
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		assert.Equal(t, []domain.DayCount{
			{Day: time.Monday, Count: 1},
			{Day: time.Tuesday, Count: 1},
			{Day: time.Wednesday, Count: 1},
		}, RankByDayOfWeek(set, nil, 5))
	}
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubRepository struct {
	set domain.ReservationSet
	err error
}

func (r stubRepository) Load(context.Context) (domain.Snapshot, error) {
	return domain.Snapshot{Set: r.set}, r.err
}

func TestGenerate(t *testing.T) {
	svc := NewService(stubRepository{set: sampleSet(t)}, txmanager.NewTransactionManager(txmanager.NewLocalLocker()), domain.DefaultTopN, nopLogger{})

	t.Run("all tables for all users", func(t *testing.T) {
		resp, err := svc.Generate(context.Background(), &models.ReportRequest{})
		require.NoError(t, err)
		assert.Equal(t, "Reservation Report for All Users", resp.Title)
		assert.Equal(t, domain.DefaultTopN, resp.TopN)
		assert.Len(t, resp.Days, 2)
		assert.Len(t, resp.Times, 2)
		assert.Len(t, resp.Weekly, 3)
	})

	t.Run("one table for one user", func(t *testing.T) {
		resp, err := svc.Generate(context.Background(), &models.ReportRequest{
			Kind:     domain.ReportTimes,
			Username: ptr.Ptr(domain.Identity("b")),
			TopN:     1,
		})
		require.NoError(t, err)
		assert.Equal(t, "Reservation Report for b", resp.Title)
		assert.Nil(t, resp.Days)
		assert.Nil(t, resp.Weekly)
		assert.Equal(t, []domain.TimeCount{{Time: "10:00", Count: 1}}, resp.Times)
		assert.False(t, resp.IsEmpty())
	})

	t.Run("empty report", func(t *testing.T) {
		resp, err := svc.Generate(context.Background(), &models.ReportRequest{Username: ptr.Ptr(domain.Identity("nobody"))})
		require.NoError(t, err)
		assert.True(t, resp.IsEmpty())
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err := svc.Generate(context.Background(), &models.ReportRequest{Kind: "monthly"})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = svc.Generate(context.Background(), &models.ReportRequest{TopN: -1})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("persistence error", func(t *testing.T) {
		broken := NewService(stubRepository{err: errors.New("io")}, txmanager.NewTransactionManager(txmanager.NewLocalLocker()), domain.DefaultTopN, nopLogger{})
		_, err := broken.Generate(context.Background(), &models.ReportRequest{})
		assert.ErrorIs(t, err, ErrPersistence)
	})
}
