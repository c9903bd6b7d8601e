package book_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/calendar"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

const operation = "book"

// UseCase use case для бронирования слота
type UseCase struct {
	reservationRepo ReservationRepository
	txManager       TransactionManager
	metrics         MetricsRecorder
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет бронирование.
// Load, проверка доступности и Save выполняются в сериализуемой транзакции,
// поэтому два конкурентных бронирования одного слота не могут оба завершиться успешно.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookSlot: validation failed: %v", err)
		uc.metrics.ObserveReservation(operation, metrics.OutcomeRejected)
		return nil, err
	}

	uc.logger.Info("BookSlot: user=%s, date=%s, time=%s, slot=%d", req.Username, req.Date, req.Time, req.Slot)

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	reservation := domain.Reservation{
		Date:     req.Date,
		Time:     req.Time,
		Slot:     req.Slot,
		Username: req.Username,
	}

	// 3. Load, повторная проверка и Save под одной блокировкой
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Читаем актуальный набор бронирований
		snapshot, err := uc.reservationRepo.Load(txCtx)
		if err != nil {
			uc.logger.Error("BookSlot: failed to load reservations: %v", err)
			return fmt.Errorf("%w: failed to load reservations: %w", ErrPersistence, err)
		}

		// 3.2. Проверяем, что слот свободен и еще не наступил
		if !calendar.IsBookable(snapshot.Set, req.Date, req.Time, req.Slot, now) {
			uc.logger.Warn("BookSlot: slot %s slot=%d is not available", reservation.Key(), req.Slot)
			return ErrSlotUnavailable
		}

		// 3.3. Добавляем бронирование в копию набора
		set := snapshot.Set.Clone()
		set.Add(reservation)

		// 3.4. Сохраняем с проверкой версии
		if _, err := uc.reservationRepo.Save(txCtx, domain.Snapshot{Set: set, Version: snapshot.Version}); err != nil {
			if errors.Is(err, txmanager.ErrConflict) {
				uc.logger.Warn("BookSlot: reservations changed concurrently, retrying")
			} else {
				uc.logger.Error("BookSlot: failed to save reservations: %v", err)
			}
			return fmt.Errorf("%w: failed to save reservations: %w", ErrPersistence, err)
		}

		return nil
	})

	if err != nil {
		return nil, uc.fail(err)
	}

	uc.metrics.ObserveReservation(operation, metrics.OutcomeSuccess)
	uc.logger.Info("BookSlot: committed %s slot=%d for user=%s", reservation.Key(), req.Slot, req.Username)

	return &Response{
		Reservation: reservation,
		StartsAt:    calendar.StartsAt(reservation, time.Local),
	}, nil
}

// fail приводит ошибку транзакции к ошибкам use case и учитывает исход
func (uc *UseCase) fail(err error) error {
	switch {
	case errors.Is(err, ErrSlotUnavailable):
		uc.metrics.ObserveReservation(operation, metrics.OutcomeRejected)
		return err
	case errors.Is(err, txmanager.ErrRetryExhausted):
		uc.logger.Error("BookSlot: %v", err)
		uc.metrics.ObserveReservation(operation, metrics.OutcomeError)
		return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
	case errors.Is(err, ErrPersistence):
		uc.metrics.ObserveReservation(operation, metrics.OutcomeError)
		return err
	default:
		uc.logger.Error("BookSlot: transaction failed: %v", err)
		uc.metrics.ObserveReservation(operation, metrics.OutcomeError)
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
}
