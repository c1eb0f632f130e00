package create_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v0ron/DLS-LaundryService/internal/domain"
	machineRepo "github.com/v0ron/DLS-LaundryService/internal/infra/storage/machine"
	reservationRepo "github.com/v0ron/DLS-LaundryService/internal/infra/storage/reservation"
	userRepo "github.com/v0ron/DLS-LaundryService/internal/infra/storage/user"
	"github.com/v0ron/DLS-LaundryService/pkg/ptr"
	"github.com/v0ron/DLS-LaundryService/pkg/types"
)

// fakeLedger хранит брони в памяти и воспроизводит контракт хранилища,
// включая уникальность (machine_id, date, start_hour) при вставке
type fakeLedger struct {
	nextID       int64
	reservations []*domain.Reservation
}

func (f *fakeLedger) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	for _, r := range f.reservations {
		if r.MachineID == res.MachineID && r.Date == res.Date && r.Start == res.Start {
			return nil, reservationRepo.ErrSlotTaken
		}
	}
	f.nextID++
	created := *res
	created.ID = f.nextID
	f.reservations = append(f.reservations, &created)
	return &created, nil
}

func (f *fakeLedger) GetByUserAndDate(ctx context.Context, userID int64, date string, excludeID *int64) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, r := range f.reservations {
		if r.UserID != userID || r.Date != date {
			continue
		}
		if excludeID != nil && r.ID == *excludeID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeLedger) FindByMachineDateStart(ctx context.Context, machineID int64, date string, startHour int, excludeID *int64) (*domain.Reservation, error) {
	for _, r := range f.reservations {
		if excludeID != nil && r.ID == *excludeID {
			continue
		}
		if r.MachineID == machineID && r.Date == date && r.Start.MustHour() == startHour {
			return r, nil
		}
	}
	return nil, reservationRepo.ErrReservationNotFound
}

func (f *fakeLedger) GetLastByUser(ctx context.Context, userID int64) (*domain.Reservation, error) {
	var last *domain.Reservation
	for _, r := range f.reservations {
		if r.UserID != userID {
			continue
		}
		if last == nil || r.CreatedAt.After(last.CreatedAt) {
			last = r
		}
	}
	if last == nil {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return last, nil
}

type fakeMachines struct {
	machines map[int64]*domain.Machine
}

func (f *fakeMachines) GetByID(ctx context.Context, id int64) (*domain.Machine, error) {
	m, ok := f.machines[id]
	if !ok {
		return nil, machineRepo.ErrMachineNotFound
	}
	return m, nil
}

type fakeUsers struct {
	users map[int64]*domain.User
}

func (f *fakeUsers) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixture struct {
	uc     *UseCase
	ledger *fakeLedger
	users  *fakeUsers
	now    time.Time
}

func newFixture(cooldownMinutes int) *fixture {
	now := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)
	ledger := &fakeLedger{}
	users := &fakeUsers{users: map[int64]*domain.User{
		7: {ID: 7, Username: "student7", Role: domain.RoleUser},
		8: {ID: 8, Username: "student8", Role: domain.RoleUser},
	}}
	uc := NewUseCase(
		ledger,
		&fakeMachines{machines: map[int64]*domain.Machine{
			3: {ID: 3, Name: "A区-03号", Building: "A区"},
		}},
		users,
		fakeTxManager{},
		Config{DailyStartHour: 8, DailyEndHour: 22, DailyLimitPerUser: 2, CooldownMinutes: cooldownMinutes},
		nopLogger{},
	)
	uc.timeProvider = &fixedTime{now: now}
	return &fixture{uc: uc, ledger: ledger, users: users, now: now}
}

// slotFor возвращает ID слота машины 3 с началом в startHour
func slotFor(startHour int) int64 {
	return domain.SlotID(3, startHour-8)
}

func TestExecute_Success(t *testing.T) {
	fx := newFixture(0)

	resp, err := fx.uc.Execute(context.Background(), &Request{
		UserID:    7,
		MachineID: 3,
		SlotID:    slotFor(9),
		DateKey:   "2024-05-01",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, int64(7), resp.UserID)
	assert.Equal(t, "A区-03号", resp.MachineName, "machine name is snapshotted")
	assert.Equal(t, types.HourString("9:00"), resp.Start)
	assert.Equal(t, types.HourString("10:00"), resp.End)
	assert.Equal(t, domain.StatusPending, resp.Status)
	assert.Equal(t, fx.now, resp.CreatedAt)
}

func TestExecute_SlotTakenByOtherUser(t *testing.T) {
	fx := newFixture(0)

	_, err := fx.uc.Execute(context.Background(), &Request{
		UserID: 7, MachineID: 3, SlotID: slotFor(9), DateKey: "2024-05-01",
	})
	require.NoError(t, err)

	_, err = fx.uc.Execute(context.Background(), &Request{
		UserID: 8, MachineID: 3, SlotID: slotFor(9), DateKey: "2024-05-01",
	})
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_SecondBookingAfterFirst(t *testing.T) {
	// Сценарий: пользователь 7 бронирует 9:00, пользователь 8 получает
	// отказ на тот же слот, затем пользователь 7 успешно берет 10:00
	fx := newFixture(0)
	ctx := context.Background()

	_, err := fx.uc.Execute(ctx, &Request{UserID: 7, MachineID: 3, SlotID: slotFor(9), DateKey: "2024-05-01"})
	require.NoError(t, err)

	_, err = fx.uc.Execute(ctx, &Request{UserID: 8, MachineID: 3, SlotID: slotFor(9), DateKey: "2024-05-01"})
	require.ErrorIs(t, err, ErrSlotTaken)

	resp, err := fx.uc.Execute(ctx, &Request{UserID: 7, MachineID: 3, SlotID: slotFor(10), DateKey: "2024-05-01"})
	require.NoError(t, err)
	assert.Equal(t, types.HourString("10:00"), resp.Start)
}

func TestExecute_BannedUser(t *testing.T) {
	fx := newFixture(0)
	until := fx.now.Add(24 * time.Hour)
	fx.users.users[7].BannedUntil = &until

	_, err := fx.uc.Execute(context.Background(), &Request{
		UserID: 7, MachineID: 3, SlotID: slotFor(9), DateKey: "2024-05-01",
	})
	assert.ErrorIs(t, err, ErrUserBanned)
}

func TestExecute_ExpiredBanDoesNotBlock(t *testing.T) {
	fx := newFixture(0)
	until := fx.now.Add(-time.Hour)
	fx.users.users[7].BannedUntil = &until

	_, err := fx.uc.Execute(context.Background(), &Request{
		UserID: 7, MachineID: 3, SlotID: slotFor(9), DateKey: "2024-05-01",
	})
	assert.NoError(t, err)
}

func TestExecute_CooldownActive(t *testing.T) {
	fx := newFixture(30)
	fx.ledger.reservations = append(fx.ledger.reservations, &domain.Reservation{
		ID: 100, UserID: 7, MachineID: 3, Date: "2024-04-30",
		Start: types.NewHourString(20), End: types.NewHourString(21),
		CreatedAt: fx.now.Add(-10 * time.Minute),
	})

	_, err := fx.uc.Execute(context.Background(), &Request{
		UserID: 7, MachineID: 3, SlotID: slotFor(9), DateKey: "2024-05-01",
	})
	require.ErrorIs(t, err, ErrCooldownActive)

	var cooldownErr *CooldownError
	require.ErrorAs(t, err, &cooldownErr)
	assert.Equal(t, 20, cooldownErr.RemainingMinutes)
}

func TestExecute_CooldownElapsed(t *testing.T) {
	fx := newFixture(30)
	fx.ledger.reservations = append(fx.ledger.reservations, &domain.Reservation{
		ID: 100, UserID: 7, MachineID: 3, Date: "2024-04-30",
		Start: types.NewHourString(20), End: types.NewHourString(21),
		CreatedAt: fx.now.Add(-30 * time.Minute),
	})

	_, err := fx.uc.Execute(context.Background(), &Request{
		UserID: 7, MachineID: 3, SlotID: slotFor(9), DateKey: "2024-05-01",
	})
	assert.NoError(t, err, "exactly cooldown minutes elapsed allows booking")
}

func TestExecute_CooldownDisabled(t *testing.T) {
	fx := newFixture(0)
	fx.ledger.reservations = append(fx.ledger.reservations, &domain.Reservation{
		ID: 100, UserID: 7, MachineID: 3, Date: "2024-04-30",
		Start: types.NewHourString(20), End: types.NewHourString(21),
		CreatedAt: fx.now.Add(-time.Minute),
	})

	_, err := fx.uc.Execute(context.Background(), &Request{
		UserID: 7, MachineID: 3, SlotID: slotFor(9), DateKey: "2024-05-01",
	})
	assert.NoError(t, err)
}

func TestExecute_DailyLimit(t *testing.T) {
	fx := newFixture(0)
	ctx := context.Background()

	_, err := fx.uc.Execute(ctx, &Request{UserID: 7, MachineID: 3, SlotID: slotFor(9), DateKey: "2024-05-01"})
	require.NoError(t, err)
	_, err = fx.uc.Execute(ctx, &Request{UserID: 7, MachineID: 3, SlotID: slotFor(12), DateKey: "2024-05-01"})
	require.NoError(t, err, "second reservation of the day is within the limit")

	_, err = fx.uc.Execute(ctx, &Request{UserID: 7, MachineID: 3, SlotID: slotFor(15), DateKey: "2024-05-01"})
	assert.ErrorIs(t, err, ErrDailyLimitReached)

	// Лимит действует на дату, другой день свободен
	_, err = fx.uc.Execute(ctx, &Request{UserID: 7, MachineID: 3, SlotID: slotFor(9), DateKey: "2024-05-02"})
	assert.NoError(t, err)
}

func TestExecute_TimeOverlap(t *testing.T) {
	fx := newFixture(0)
	// Чужая бронь не мешает, своя с тем же интервалом на другой машине - мешает
	fx.ledger.reservations = append(fx.ledger.reservations, &domain.Reservation{
		ID: 100, UserID: 7, MachineID: 5, Date: "2024-05-01",
		Start: types.NewHourString(9), End: types.NewHourString(10),
		CreatedAt: fx.now.Add(-2 * time.Hour),
	})

	_, err := fx.uc.Execute(context.Background(), &Request{
		UserID: 7, MachineID: 3, SlotID: slotFor(9), DateKey: "2024-05-01",
	})
	assert.ErrorIs(t, err, ErrTimeOverlap)
}

func TestExecute_SlotNotFound(t *testing.T) {
	fx := newFixture(0)

	// Слот другой машины
	_, err := fx.uc.Execute(context.Background(), &Request{
		UserID: 7, MachineID: 3, SlotID: domain.SlotID(5, 0), DateKey: "2024-05-01",
	})
	assert.ErrorIs(t, err, ErrSlotNotFound)

	// Индекс за пределами рабочего окна
	_, err = fx.uc.Execute(context.Background(), &Request{
		UserID: 7, MachineID: 3, SlotID: domain.SlotID(3, 14), DateKey: "2024-05-01",
	})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestExecute_SlotExpired(t *testing.T) {
	// Сейчас 2024-05-01 10:30: слот 8:00-9:00 и 9:00-10:00 прошли
	fx := newFixture(0)
	fx.uc.timeProvider = &fixedTime{now: time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)}

	_, err := fx.uc.Execute(context.Background(), &Request{
		UserID: 7, MachineID: 3, SlotID: slotFor(9), DateKey: "2024-05-01",
	})
	assert.ErrorIs(t, err, ErrSlotExpired)

	// Текущий час еще бронируем: конец 11:00 > 10
	_, err = fx.uc.Execute(context.Background(), &Request{
		UserID: 7, MachineID: 3, SlotID: slotFor(10), DateKey: "2024-05-01",
	})
	assert.NoError(t, err)
}

func TestExecute_PastHourOnFutureDateAllowed(t *testing.T) {
	fx := newFixture(0)
	fx.uc.timeProvider = &fixedTime{now: time.Date(2024, 5, 1, 21, 0, 0, 0, time.UTC)}

	_, err := fx.uc.Execute(context.Background(), &Request{
		UserID: 7, MachineID: 3, SlotID: slotFor(8), DateKey: "2024-05-02",
	})
	assert.NoError(t, err)
}

func TestExecute_MachineNotFound(t *testing.T) {
	fx := newFixture(0)

	_, err := fx.uc.Execute(context.Background(), &Request{
		UserID: 7, MachineID: 99, SlotID: domain.SlotID(99, 0), DateKey: "2024-05-01",
	})
	assert.ErrorIs(t, err, ErrMachineNotFound)
}

func TestExecute_UserNotFound(t *testing.T) {
	fx := newFixture(0)

	_, err := fx.uc.Execute(context.Background(), &Request{
		UserID: 42, MachineID: 3, SlotID: slotFor(9), DateKey: "2024-05-01",
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestExecute_RaceLostAtInsert(t *testing.T) {
	// Предварительная проверка занятости ничего не нашла, но вставка
	// уперлась в уникальный индекс: исход тот же, ErrSlotTaken
	fx := newFixture(0)
	ctx := context.Background()

	_, err := fx.uc.Execute(ctx, &Request{UserID: 7, MachineID: 3, SlotID: slotFor(9), DateKey: "2024-05-01"})
	require.NoError(t, err)

	// Симулируем гонку: прямая вставка поверх леджера с тем же слотом
	_, err = fx.ledger.Create(ctx, &domain.Reservation{
		UserID: 8, MachineID: 3, Date: "2024-05-01",
		Start: types.NewHourString(9), End: types.NewHourString(10),
	})
	assert.ErrorIs(t, err, reservationRepo.ErrSlotTaken)
}

func TestExecute_ExcludeFilterInLedger(t *testing.T) {
	fx := newFixture(0)
	ctx := context.Background()

	resp, err := fx.uc.Execute(ctx, &Request{UserID: 7, MachineID: 3, SlotID: slotFor(9), DateKey: "2024-05-01"})
	require.NoError(t, err)

	// Исключение собственной записи убирает её из выборки
	list, err := fx.ledger.GetByUserAndDate(ctx, 7, "2024-05-01", ptr.Ptr(resp.ID))
	require.NoError(t, err)
	assert.Empty(t, list)
}
