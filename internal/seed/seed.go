package seed

import (
	"context"
	"fmt"

	"github.com/v0ron/DLS-LaundryService/internal/domain"
	"github.com/v0ron/DLS-LaundryService/pkg/password"
)

// MachineRepository интерфейс репозитория машин
type MachineRepository interface {
	CreateBatch(ctx context.Context, machines []*domain.Machine) (int, error)
	Count(ctx context.Context) (int, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	Count(ctx context.Context) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Seeder наполняет пустую базу стартовыми данными
type Seeder struct {
	machineRepo MachineRepository
	userRepo    UserRepository
	logger      Logger
}

// NewSeeder создает новый экземпляр сидера
func NewSeeder(machineRepo MachineRepository, userRepo UserRepository, logger Logger) *Seeder {
	return &Seeder{
		machineRepo: machineRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// Run засевает машины и пользователей, если их таблицы пусты.
// Повторный запуск на непустой базе ничего не меняет.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.seedMachines(ctx); err != nil {
		return err
	}
	return s.seedUsers(ctx)
}

func (s *Seeder) seedMachines(ctx context.Context) error {
	count, err := s.machineRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed: failed to count machines: %w", err)
	}
	if count > 0 {
		return nil
	}

	created, err := s.machineRepo.CreateBatch(ctx, initialMachines())
	if err != nil {
		return fmt.Errorf("seed: failed to create machines: %w", err)
	}
	s.logger.Info("Seed: created %d machines", created)
	return nil
}

func (s *Seeder) seedUsers(ctx context.Context) error {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed: failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, u := range initialUsers() {
		hash, err := password.Hash(u.plain)
		if err != nil {
			return fmt.Errorf("seed: failed to hash password for %s: %w", u.user.Username, err)
		}
		u.user.PasswordHash = hash
		if _, err := s.userRepo.Create(ctx, u.user); err != nil {
			return fmt.Errorf("seed: failed to create user %s: %w", u.user.Username, err)
		}
	}
	s.logger.Info("Seed: created default admin and student accounts")
	return nil
}

// initialMachines стартовый парк машин
func initialMachines() []*domain.Machine {
	return []*domain.Machine{
		{Name: "A区-01号", Building: "A区", Floor: "1层", Location: "宿舍A楼1层", Status: domain.MachineIdle, Guide: "放入衣物，加入洗衣液，选择模式后启动。"},
		{Name: "A区-02号", Building: "A区", Floor: "1层", Location: "宿舍A楼1层", Status: domain.MachineBusy, Guide: "忙碌时请耐心等待或选择其它机器。"},
		{Name: "A区-03号", Building: "A区", Floor: "2层", Location: "宿舍A楼2层", Status: domain.MachineIdle, Guide: "请先检查内筒是否有遗留物。"},
		{Name: "A区-04号", Building: "A区", Floor: "3层", Location: "宿舍A楼3层", Status: domain.MachineIdle, Guide: "使用完毕请及时取走衣物。"},
		{Name: "B区-01号", Building: "B区", Floor: "1层", Location: "宿舍B楼1层", Status: domain.MachineIdle, Guide: "建议轻薄衣物选择快速模式。"},
		{Name: "B区-02号", Building: "B区", Floor: "2层", Location: "宿舍B楼2层", Status: domain.MachineIdle, Guide: "请勿超负荷使用。"},
		{Name: "B区-03号", Building: "B区", Floor: "3层", Location: "宿舍B楼3层", Status: domain.MachineBusy, Guide: "维护保养中请勿操作。"},
		{Name: "C区-01号", Building: "C区", Floor: "1层", Location: "宿舍C楼1层", Status: domain.MachineIdle, Guide: "使用完毕请清理滤网。"},
		{Name: "C区-02号", Building: "C区", Floor: "3层", Location: "宿舍C楼3层", Status: domain.MachineIdle, Guide: "请先检查内筒是否有遗留物。"},
		{Name: "C区-03号", Building: "C区", Floor: "4层", Location: "宿舍C楼4层", Status: domain.MachineIdle, Guide: "夜间请降低噪音影响他人。"},
	}
}

type seedUser struct {
	user  *domain.User
	plain string
}

// initialUsers стартовые учетные записи
func initialUsers() []seedUser {
	return []seedUser{
		{
			user:  &domain.User{Username: "admin", Name: "管理员", Role: domain.RoleAdmin, Building: "A区"},
			plain: "admin123",
		},
		{
			user:  &domain.User{Username: "student", Name: "学生", Role: domain.RoleUser, Building: "B区"},
			plain: "123456",
		},
	}
}
