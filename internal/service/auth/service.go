package auth

import (
	"context"
	"errors"
	"fmt"

	userRepo "github.com/v0ron/DLS-LaundryService/internal/infra/storage/user"
	"github.com/v0ron/DLS-LaundryService/internal/service/auth/models"
	"github.com/v0ron/DLS-LaundryService/pkg/password"
)

// Service сервис аутентификации
type Service struct {
	userRepo     UserRepository
	tokenManager TokenManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(userRepo UserRepository, tokenManager TokenManager, logger Logger) *Service {
	return &Service{
		userRepo:     userRepo,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

// Login проверяет учетные данные и выдает токен.
// Неизвестный пользователь и неверный пароль дают одну и ту же ошибку.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: unknown username=%s", req.Username)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error for username=%s: %v", req.Username, err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if err := password.Compare(user.PasswordHash, req.Password); err != nil {
		s.logger.Warn("Login: wrong password for username=%s", req.Username)
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokenManager.CreateToken(user.ID, user.Name, string(user.Role), user.Building)
	if err != nil {
		s.logger.Error("Login: failed to create token for user=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: Login - failed to create token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: user=%d logged in", user.ID)
	return &models.LoginResponse{
		Token: token,
		User: models.UserInfo{
			ID:       user.ID,
			Name:     user.Name,
			Role:     string(user.Role),
			Building: user.Building,
		},
	}, nil
}
