package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/auth/models"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

// Service регистрирует пользователей и проверяет их пароли.
// Движок бронирований получает от него только domain.Identity.
type Service struct {
	userRepo     UserRepository
	txManager    TransactionManager
	bcryptCost   int
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(userRepo UserRepository, txManager TransactionManager, bcryptCost int, logger Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo:     userRepo,
		txManager:    txManager,
		bcryptCost:   bcryptCost,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// SignUp создает пользователя с bcrypt-хешем пароля
func (s *Service) SignUp(ctx context.Context, req *models.SignUpRequest) (*models.UserResponse, error) {
	// 1. Валидация входных данных
	if err := validateSignUp(req); err != nil {
		s.logger.Warn("SignUp: validation failed: %v", err)
		return nil, err
	}

	username := domain.Identity(req.Username)
	s.logger.Info("SignUp: username=%s", username)

	// 2. Хешируем пароль до транзакции: bcrypt медленный
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		s.logger.Error("SignUp: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: SignUp - hash password: %v", ErrPersistence, err)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		CreatedAt:    s.timeProvider.Now(),
	}

	// 3. Проверка уникальности и запись под одной блокировкой
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		snapshot, err := s.userRepo.Load(txCtx)
		if err != nil {
			return fmt.Errorf("%w: SignUp - load users: %w", ErrPersistence, err)
		}

		if snapshot.Users.Exists(username) {
			return ErrUsernameTaken
		}

		users := make(domain.UserSet, len(snapshot.Users)+1)
		for k, v := range snapshot.Users {
			users[k] = v
		}
		users[username] = user

		if _, err := s.userRepo.Save(txCtx, domain.UserSnapshot{Users: users, Version: snapshot.Version}); err != nil {
			return fmt.Errorf("%w: SignUp - save users: %w", ErrPersistence, err)
		}
		return nil
	})

	switch {
	case err == nil:
	case errors.Is(err, ErrUsernameTaken):
		s.logger.Warn("SignUp: username=%s already exists", username)
		return nil, err
	case errors.Is(err, txmanager.ErrRetryExhausted):
		s.logger.Error("SignUp: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrRetryExhausted, err)
	default:
		s.logger.Error("SignUp: %v", err)
		if errors.Is(err, ErrPersistence) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.logger.Info("SignUp: created user=%s id=%s", username, user.ID)
	return models.FromDomainUser(&user), nil
}

// LogIn проверяет пароль. Неизвестный пользователь и неверный пароль неразличимы.
func (s *Service) LogIn(ctx context.Context, req *models.LogInRequest) (*models.UserResponse, error) {
	if req == nil || req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	s.logger.Info("LogIn: username=%s", req.Username)

	user, err := s.userRepo.GetByUsername(ctx, domain.Identity(req.Username))
	if err != nil {
		s.logger.Error("LogIn: failed to load users: %v", err)
		return nil, fmt.Errorf("%w: LogIn - load users: %v", ErrPersistence, err)
	}
	if user == nil {
		s.logger.Warn("LogIn: unknown username=%s", req.Username)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)); err != nil {
		s.logger.Warn("LogIn: wrong password for username=%s", req.Username)
		return nil, ErrInvalidCredentials
	}

	return models.FromDomainUser(user), nil
}
