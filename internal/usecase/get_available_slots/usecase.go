package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/calendar"
)

// UseCase use case для выбора времени и слота на конкретную дату
type UseCase struct {
	reservationRepo ReservationRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reservationRepo ReservationRepository, logger Logger) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute возвращает времена даты, у которых есть свободный слот в будущем, и их свободные слоты.
// Если в запросе указано время, оно возвращается всегда, даже без свободных слотов.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: date=%s", req.Date)

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Читаем набор бронирований (атомарная замена документа дает согласованный снимок)
	snapshot, err := uc.reservationRepo.Load(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to load reservations: %v", ErrPersistence, err)
	}

	resp := &Response{Date: req.Date, Times: []TimeSlots{}}

	// 4. Конкретное время: только его слоты
	if req.Time != nil {
		resp.Times = append(resp.Times, TimeSlots{
			Time:  *req.Time,
			Slots: calendar.AvailableSlotsFor(snapshot.Set, req.Date, *req.Time, now),
		})
		return resp, nil
	}

	// 5. Все времена, у которых остался хотя бы один слот
	for _, t := range calendar.AvailableTimesFor(snapshot.Set, req.Date, now) {
		resp.Times = append(resp.Times, TimeSlots{
			Time:  t,
			Slots: calendar.AvailableSlotsFor(snapshot.Set, req.Date, t, now),
		})
	}

	uc.logger.Info("GetAvailableSlots: date=%s has %d available times", req.Date, len(resp.Times))

	return resp, nil
}
