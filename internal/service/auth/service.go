package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/PrismCRM/internal/domain"
	"github.com/m04kA/PrismCRM/internal/infra/sessions"
	"github.com/m04kA/PrismCRM/internal/infra/users"
	"github.com/m04kA/PrismCRM/internal/service/auth/models"
	"github.com/m04kA/PrismCRM/pkg/metrics"
)

// Результаты попытки входа для метрики
const (
	resultSuccess = "success"
	resultFailure = "failure"
	resultError   = "error"
)

// Service сервис входа и сессий админки
type Service struct {
	users        UserStore
	sessions     SessionStore
	role         string
	ttl          time.Duration
	newToken     TokenGenerator
	timeProvider TimeProvider
	metrics      *metrics.Metrics
	logger       Logger
}

// NewService создает сервис авторизации; m может быть nil
func NewService(
	userStore UserStore,
	sessionStore SessionStore,
	role string,
	ttl time.Duration,
	m *metrics.Metrics,
	logger Logger,
) *Service {
	if role == "" {
		role = domain.DefaultRole
	}
	return &Service{
		users:        userStore,
		sessions:     sessionStore,
		role:         role,
		ttl:          ttl,
		newToken:     uuid.NewString,
		timeProvider: &RealTimeProvider{},
		metrics:      m,
		logger:       logger,
	}
}

// Login проверяет учётные данные и открывает сессию
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	username := strings.TrimSpace(req.Username)

	if err := s.users.Authenticate(username, req.Password); err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidCredentials):
			s.observe(resultFailure)
			s.logger.Warn("Login: invalid credentials for user=%q", username)
			return nil, ErrInvalidCredentials
		case errors.Is(err, users.ErrNotInitialized):
			s.observe(resultError)
			s.logger.Error("Login: user db not initialized: %v", err)
			return nil, ErrUserDBNotInitialized
		case errors.Is(err, users.ErrCorrupted):
			s.observe(resultError)
			s.logger.Error("Login: user db corrupted: %v", err)
			return nil, ErrUserDBCorrupted
		default:
			s.observe(resultError)
			s.logger.Error("Login: authenticate failed: %v", err)
			return nil, fmt.Errorf("%w: authenticate: %v", ErrInternal, err)
		}
	}

	session := &domain.Session{
		Token:     s.newToken(),
		User:      domain.User{Username: username, Role: s.role},
		ExpiresAt: s.timeProvider.Now().Add(s.ttl).UTC(),
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		s.observe(resultError)
		s.logger.Error("Login: failed to save session for user=%q: %v", username, err)
		return nil, fmt.Errorf("%w: save session: %v", ErrInternal, err)
	}

	s.observe(resultSuccess)
	s.logger.Info("Login: user=%q logged in, session expires at %s", username, session.ExpiresAt.Format(time.RFC3339))

	return &models.LoginResponse{
		Success:   true,
		User:      models.UserResponse{Username: session.User.Username, Role: session.User.Role},
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// Resolve возвращает пользователя сессии по токену
func (s *Service) Resolve(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, sessions.ErrSessionNotFound) {
			return nil, ErrUnauthorized
		}
		s.logger.Error("Resolve: session lookup failed: %v", err)
		return nil, fmt.Errorf("%w: get session: %v", ErrInternal, err)
	}

	if session.IsExpired(s.timeProvider.Now()) {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrUnauthorized
	}

	return &session.User, nil
}

// Logout закрывает сессию
func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		s.logger.Error("Logout: failed to delete session: %v", err)
		return fmt.Errorf("%w: delete session: %v", ErrInternal, err)
	}
	return nil
}

func (s *Service) observe(result string) {
	if s.metrics != nil {
		s.metrics.LoginAttempts.WithLabelValues(result).Inc()
	}
}
