package cancel_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

const operation = "cancel"

// UseCase use case для отмены бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	txManager       TransactionManager
	metrics         MetricsRecorder
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
		logger:          logger,
	}
}

// Execute удаляет бронирование, точно совпадающее с (date, time, slot, username).
// Чужое и несуществующее бронирование неразличимы: в обоих случаях ErrNotFound.
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelReservation: validation failed: %v", err)
		uc.metrics.ObserveReservation(operation, metrics.OutcomeRejected)
		return err
	}

	key := req.Key()
	uc.logger.Info("CancelReservation: user=%s, key=%s, slot=%d", req.Username, key, req.Slot)

	// 2. Load, удаление и Save под одной блокировкой
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Читаем актуальный набор бронирований
		snapshot, err := uc.reservationRepo.Load(txCtx)
		if err != nil {
			uc.logger.Error("CancelReservation: failed to load reservations: %v", err)
			return fmt.Errorf("%w: failed to load reservations: %w", ErrPersistence, err)
		}

		// 2.2. Удаляем из копии; пустой ключ удаляется вместе с бронированием
		set := snapshot.Set.Clone()
		if !set.Remove(key, req.Slot, req.Username) {
			uc.logger.Warn("CancelReservation: no reservation %s slot=%d for user=%s", key, req.Slot, req.Username)
			return ErrNotFound
		}

		// 2.3. Сохраняем с проверкой версии
		if _, err := uc.reservationRepo.Save(txCtx, domain.Snapshot{Set: set, Version: snapshot.Version}); err != nil {
			if errors.Is(err, txmanager.ErrConflict) {
				uc.logger.Warn("CancelReservation: reservations changed concurrently, retrying")
			} else {
				uc.logger.Error("CancelReservation: failed to save reservations: %v", err)
			}
			return fmt.Errorf("%w: failed to save reservations: %w", ErrPersistence, err)
		}

		return nil
	})

	switch {
	case err == nil:
		uc.metrics.ObserveReservation(operation, metrics.OutcomeSuccess)
		uc.logger.Info("CancelReservation: cancelled %s slot=%d for user=%s", key, req.Slot, req.Username)
		return nil
	case errors.Is(err, ErrNotFound):
		uc.metrics.ObserveReservation(operation, metrics.OutcomeRejected)
		return err
	case errors.Is(err, txmanager.ErrRetryExhausted):
		uc.logger.Error("CancelReservation: %v", err)
		uc.metrics.ObserveReservation(operation, metrics.OutcomeError)
		return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
	case errors.Is(err, ErrPersistence):
		uc.metrics.ObserveReservation(operation, metrics.OutcomeError)
		return err
	default:
		uc.logger.Error("CancelReservation: transaction failed: %v", err)
		uc.metrics.ObserveReservation(operation, metrics.OutcomeError)
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
}
