package reservations

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/calendar"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

// Service сервис для просмотра бронирований пользователя
type Service struct {
	reservationRepo ReservationRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(reservationRepo ReservationRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// ListReservations возвращает бронирования пользователя по горизонту относительно req.Now.
// Past - начало строго раньше Now, Future - в Now или позже. Порядок - по возрастанию (дата, время).
func (s *Service) ListReservations(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	if req == nil || strings.TrimSpace(string(req.Username)) == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if !req.Horizon.IsValid() {
		return nil, fmt.Errorf("%w: unknown horizon %q", ErrInvalidInput, req.Horizon)
	}
	if req.Now.IsZero() {
		return nil, fmt.Errorf("%w: now is required", ErrInvalidInput)
	}

	s.logger.Info("ListReservations: user=%s, horizon=%s", req.Username, req.Horizon)

	var snapshot domain.Snapshot
	err := s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		snapshot, err = s.reservationRepo.Load(ctx)
		return err
	})
	if err != nil {
		s.logger.Error("ListReservations: failed to load reservations: %v", err)
		return nil, fmt.Errorf("%w: ListReservations - load: %v", ErrPersistence, err)
	}

	loc := req.Now.Location()
	result := make([]models.ReservationResponse, 0)

	// All() уже упорядочен по (дата, время)
	for _, r := range snapshot.Set.All() {
		if r.Username != req.Username {
			continue
		}

		past := calendar.StartsAt(r, loc).Before(req.Now)
		if past == (req.Horizon == domain.HorizonPast) {
			result = append(result, models.FromDomainReservation(r, loc))
		}
	}

	s.logger.Info("ListReservations: user=%s has %d %s reservations", req.Username, len(result), req.Horizon)

	return &models.ReservationListResponse{
		Horizon:      req.Horizon,
		Reservations: result,
	}, nil
}
