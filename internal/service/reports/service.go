package reports

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reports/models"
)

// Service сервис отчетов по бронированиям; только чтение
type Service struct {
	reservationRepo ReservationRepository
	txManager       TransactionManager
	defaultTopN     int
	logger          Logger
}

// NewService создает новый экземпляр сервиса отчетов
func NewService(reservationRepo ReservationRepository, txManager TransactionManager, defaultTopN int, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		txManager:       txManager,
		defaultTopN:     defaultTopN,
		logger:          logger,
	}
}

// Generate строит выбранные таблицы по всем пользователям или по одному
func (s *Service) Generate(ctx context.Context, req *models.ReportRequest) (*models.ReportResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	kind := req.Kind
	if kind == "" {
		kind = domain.ReportAllKinds
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown report kind %q", ErrInvalidInput, req.Kind)
	}

	n := req.TopN
	if n == 0 {
		n = s.defaultTopN
	}
	if n < domain.MinTopN {
		return nil, fmt.Errorf("%w: top must be at least %d", ErrInvalidInput, domain.MinTopN)
	}

	if req.Username != nil && *req.Username == "" {
		return nil, fmt.Errorf("%w: username filter is empty", ErrInvalidInput)
	}

	title := "Reservation Report for All Users"
	if req.Username != nil {
		title = fmt.Sprintf("Reservation Report for %s", *req.Username)
	}

	s.logger.Info("Generate: kind=%s, top=%d, %s", kind, n, title)

	var snapshot domain.Snapshot
	err := s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		snapshot, err = s.reservationRepo.Load(ctx)
		return err
	})
	if err != nil {
		s.logger.Error("Generate: failed to load reservations: %v", err)
		return nil, fmt.Errorf("%w: Generate - load: %v", ErrPersistence, err)
	}

	resp := &models.ReportResponse{Title: title, Kind: kind, TopN: n}
	if kind.Includes(domain.ReportDays) {
		resp.Days = RankByDayOfWeek(snapshot.Set, req.Username, n)
	}
	if kind.Includes(domain.ReportTimes) {
		resp.Times = RankByTimeOfDay(snapshot.Set, req.Username, n)
	}
	if kind.Includes(domain.ReportWeekly) {
		resp.Weekly = RankByDayAndTime(snapshot.Set, req.Username, n)
	}

	return resp, nil
}
