package blacklist

import (
	"context"
	"errors"
	"fmt"

	userRepo "github.com/v0ron/DLS-LaundryService/internal/infra/storage/user"
	"github.com/v0ron/DLS-LaundryService/internal/service/blacklist/models"
)

// Service сервис управления черным списком
type Service struct {
	userRepo UserRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса черного списка
func NewService(userRepo UserRepository, logger Logger) *Service {
	return &Service{
		userRepo: userRepo,
		logger:   logger,
	}
}

// List возвращает пользователей с установленной блокировкой.
// Истекшие блокировки тоже попадают в список, пока не сняты явно.
func (s *Service) List(ctx context.Context) (*models.BannedListResponse, error) {
	users, err := s.userRepo.ListBanned(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainUsers(users), nil
}

// Set устанавливает блокировку пользователя до указанного момента.
// Нулевой BannedUntil снимает блокировку.
func (s *Service) Set(ctx context.Context, req *models.SetBanRequest) error {
	s.logger.Info("Set: user=%d, bannedUntil=%v", req.UserID, req.BannedUntil)

	if req.UserID <= 0 {
		return fmt.Errorf("%w: user ID must be positive, got %d", ErrInvalidInput, req.UserID)
	}

	if err := s.userRepo.SetBannedUntil(ctx, req.UserID, req.BannedUntil); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Set: user id=%d not found", req.UserID)
			return ErrUserNotFound
		}
		s.logger.Error("Set: repository error for user=%d: %v", req.UserID, err)
		return fmt.Errorf("%w: Set - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Set: blacklist updated for user=%d", req.UserID)
	return nil
}
