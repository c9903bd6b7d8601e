package get_available_dates

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/calendar"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// UseCase use case для получения дат, на которые есть хотя бы один свободный слот
type UseCase struct {
	reservationRepo   ReservationRepository
	defaultWindowDays int
	timeProvider      TimeProvider
	logger            Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reservationRepo ReservationRepository, defaultWindowDays int, logger Logger) *UseCase {
	return &UseCase{
		reservationRepo:   reservationRepo,
		defaultWindowDays: defaultWindowDays,
		timeProvider:      &RealTimeProvider{},
		logger:            logger,
	}
}

// Execute возвращает даты окна, на которых есть свободная пара (время, слот) в будущем
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableDates: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и границы окна
	now := uc.timeProvider.Now()

	window := req.WindowDays
	if window == 0 {
		window = uc.defaultWindowDays
	}

	first := types.DateOf(now)
	if req.Start != nil {
		first = *req.Start
	}
	start := first.AddDays(req.Page * window)

	uc.logger.Info("GetAvailableDates: start=%s, window=%d, page=%d", start, window, req.Page)

	// 3. Читаем набор бронирований
	snapshot, err := uc.reservationRepo.Load(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to load reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to load reservations: %v", ErrPersistence, err)
	}

	// 4. Оставляем даты, которые стоит предлагать
	dates := make([]AvailableDate, 0, window)
	for _, date := range calendar.DateWindow(start, window) {
		if calendar.HasAnyBookableSlot(snapshot.Set, date, now) {
			dates = append(dates, AvailableDate{Date: date, Weekday: date.Weekday()})
		}
	}

	return &Response{
		Start:       start,
		WindowDays:  window,
		Page:        req.Page,
		HasPrevious: req.Page > 0,
		Dates:       dates,
	}, nil
}
