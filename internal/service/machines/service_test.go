package machines

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v0ron/DLS-LaundryService/internal/domain"
	machineRepo "github.com/v0ron/DLS-LaundryService/internal/infra/storage/machine"
	reservationRepo "github.com/v0ron/DLS-LaundryService/internal/infra/storage/reservation"
	"github.com/v0ron/DLS-LaundryService/internal/service/machines/models"
	"github.com/v0ron/DLS-LaundryService/pkg/ptr"
	"github.com/v0ron/DLS-LaundryService/pkg/types"
)

type fakeMachineRepo struct {
	nextID   int64
	machines map[int64]*domain.Machine
}

func (f *fakeMachineRepo) Create(ctx context.Context, m *domain.Machine) (*domain.Machine, error) {
	f.nextID++
	created := *m
	created.ID = f.nextID
	f.machines[created.ID] = &created
	return &created, nil
}

func (f *fakeMachineRepo) CreateBatch(ctx context.Context, machines []*domain.Machine) (int, error) {
	for _, m := range machines {
		if _, err := f.Create(ctx, m); err != nil {
			return 0, err
		}
	}
	return len(machines), nil
}

func (f *fakeMachineRepo) GetByID(ctx context.Context, id int64) (*domain.Machine, error) {
	m, ok := f.machines[id]
	if !ok {
		return nil, machineRepo.ErrMachineNotFound
	}
	return m, nil
}

func (f *fakeMachineRepo) List(ctx context.Context) ([]*domain.Machine, error) {
	out := make([]*domain.Machine, 0, len(f.machines))
	for _, m := range f.machines {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMachineRepo) Count(ctx context.Context) (int, error) {
	return len(f.machines), nil
}

func (f *fakeMachineRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.machines[id]; !ok {
		return machineRepo.ErrMachineNotFound
	}
	delete(f.machines, id)
	return nil
}

type fakeReservationRepo struct {
	reservations map[int64]*domain.Reservation
}

func (f *fakeReservationRepo) FindByMachineDateStart(ctx context.Context, machineID int64, date string, startHour int, excludeID *int64) (*domain.Reservation, error) {
	for _, r := range f.reservations {
		if r.MachineID == machineID && r.Date == date && r.Start.MustHour() == startHour {
			return r, nil
		}
	}
	return nil, reservationRepo.ErrReservationNotFound
}

func (f *fakeReservationRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.reservations[id]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	delete(f.reservations, id)
	return nil
}

func (f *fakeReservationRepo) DeleteByMachine(ctx context.Context, machineID int64) (int64, error) {
	var removed int64
	for id, r := range f.reservations {
		if r.MachineID == machineID {
			delete(f.reservations, id)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeReservationRepo) DeleteByMachineAndDate(ctx context.Context, machineID int64, date string) (int64, error) {
	var removed int64
	for id, r := range f.reservations {
		if r.MachineID == machineID && r.Date == date {
			delete(f.reservations, id)
			removed++
		}
	}
	return removed, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
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

func newTestService() (*Service, *fakeMachineRepo, *fakeReservationRepo) {
	machines := &fakeMachineRepo{machines: map[int64]*domain.Machine{}}
	reservations := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{}}
	svc := NewService(machines, reservations, fakeTxManager{},
		Config{DailyStartHour: 8, DailyEndHour: 22}, nopLogger{})
	svc.timeProvider = &fixedTime{now: time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)}
	return svc, machines, reservations
}

func TestCreate_DefaultsApplied(t *testing.T) {
	svc, _, _ := newTestService()

	resp, err := svc.Create(context.Background(), &models.CreateMachineRequest{
		Name:     "A区-01号",
		Location: "宿舍A楼1层",
		Building: "A区",
	})
	require.NoError(t, err)

	assert.Equal(t, "idle", resp.Status, "status defaults to idle")
	assert.Equal(t, "A区", resp.Building)
}

func TestCreate_BuildingGuessedFromLocation(t *testing.T) {
	svc, _, _ := newTestService()

	resp, err := svc.Create(context.Background(), &models.CreateMachineRequest{
		Name:     "B区-05号",
		Location: "B区宿舍楼3层",
	})
	require.NoError(t, err)
	assert.Equal(t, "B区", resp.Building)

	resp, err = svc.Create(context.Background(), &models.CreateMachineRequest{
		Name:     "车库洗衣机",
		Location: "地下车库",
	})
	require.NoError(t, err)
	assert.Equal(t, "未知", resp.Building, "unmatched location falls back to unknown")
}

func TestCreate_MissingFields(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(context.Background(), &models.CreateMachineRequest{Name: "A区-01号"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), &models.CreateMachineRequest{Location: "宿舍A楼1层"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_InvalidStatus(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(context.Background(), &models.CreateMachineRequest{
		Name: "A区-01号", Location: "宿舍A楼1层", Status: "broken",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete_CascadesReservations(t *testing.T) {
	svc, machines, reservations := newTestService()
	machines.machines[3] = &domain.Machine{ID: 3, Name: "A区-03号"}
	reservations.reservations[1] = &domain.Reservation{ID: 1, MachineID: 3, Date: "2025-10-15", Start: types.NewHourString(9)}
	reservations.reservations[2] = &domain.Reservation{ID: 2, MachineID: 3, Date: "2025-10-16", Start: types.NewHourString(10)}
	reservations.reservations[3] = &domain.Reservation{ID: 3, MachineID: 4, Date: "2025-10-15", Start: types.NewHourString(9)}

	err := svc.Delete(context.Background(), 3)
	require.NoError(t, err)

	assert.NotContains(t, machines.machines, int64(3))
	assert.Len(t, reservations.reservations, 1, "only the other machine's reservation survives")
	assert.Contains(t, reservations.reservations, int64(3))
}

func TestDelete_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, ErrMachineNotFound)
}

func TestRelease_WholeDay(t *testing.T) {
	svc, _, reservations := newTestService()
	reservations.reservations[1] = &domain.Reservation{ID: 1, MachineID: 3, Date: "2025-10-15", Start: types.NewHourString(9)}
	reservations.reservations[2] = &domain.Reservation{ID: 2, MachineID: 3, Date: "2025-10-15", Start: types.NewHourString(14)}
	reservations.reservations[3] = &domain.Reservation{ID: 3, MachineID: 3, Date: "2025-10-16", Start: types.NewHourString(9)}

	resp, err := svc.Release(context.Background(), &models.ReleaseSlotsRequest{
		MachineID: 3, DateKey: "2025-10-15",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), resp.Released)
	assert.Contains(t, reservations.reservations, int64(3), "next day's reservation stays")
}

func TestRelease_SingleSlot(t *testing.T) {
	svc, _, reservations := newTestService()
	reservations.reservations[1] = &domain.Reservation{ID: 1, MachineID: 3, Date: "2025-10-15", Start: types.NewHourString(9)}
	reservations.reservations[2] = &domain.Reservation{ID: 2, MachineID: 3, Date: "2025-10-15", Start: types.NewHourString(14)}

	resp, err := svc.Release(context.Background(), &models.ReleaseSlotsRequest{
		MachineID: 3, DateKey: "2025-10-15",
		SlotID: ptr.Ptr(domain.SlotID(3, 1)), // 9:00
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.Released)
	assert.NotContains(t, reservations.reservations, int64(1))
	assert.Contains(t, reservations.reservations, int64(2))
}

func TestRelease_EmptySlotIsNoop(t *testing.T) {
	svc, _, _ := newTestService()

	resp, err := svc.Release(context.Background(), &models.ReleaseSlotsRequest{
		MachineID: 3, DateKey: "2025-10-15",
		SlotID: ptr.Ptr(domain.SlotID(3, 1)),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Released)
}

func TestRelease_UnknownSlot(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Release(context.Background(), &models.ReleaseSlotsRequest{
		MachineID: 3, DateKey: "2025-10-15",
		SlotID: ptr.Ptr(domain.SlotID(3, 14)),
	})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestRelease_EmptyDateDefaultsToToday(t *testing.T) {
	svc, _, reservations := newTestService()
	reservations.reservations[1] = &domain.Reservation{ID: 1, MachineID: 3, Date: "2025-10-15", Start: types.NewHourString(9)}

	resp, err := svc.Release(context.Background(), &models.ReleaseSlotsRequest{MachineID: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Released)
}

func TestSeedDemo_Defaults(t *testing.T) {
	svc, machines, _ := newTestService()

	resp, err := svc.SeedDemo(context.Background(), &models.SeedDemoRequest{})
	require.NoError(t, err)

	assert.Equal(t, 45, resp.Created, "3 buildings x 5 floors x 3 machines")
	assert.Len(t, machines.machines, 45)
}

func TestSeedDemo_CustomLayout(t *testing.T) {
	svc, _, _ := newTestService()

	resp, err := svc.SeedDemo(context.Background(), &models.SeedDemoRequest{
		Buildings:         []string{"D区"},
		FloorsPerBuilding: 2,
		MachinesPerFloor:  4,
	})
	require.NoError(t, err)
	assert.Equal(t, 8, resp.Created)
}

func TestGenerateDemoMachines(t *testing.T) {
	machines := GenerateDemoMachines([]string{"A区"}, 2, 2)
	require.Len(t, machines, 4)

	first := machines[0]
	assert.Equal(t, "A区-01号", first.Name)
	assert.Equal(t, "A区", first.Building)
	assert.Equal(t, "1层", first.Floor)
	assert.Equal(t, "宿舍A楼1层", first.Location)
	assert.Equal(t, domain.MachineIdle, first.Status)

	last := machines[3]
	assert.Equal(t, "A区-02号", last.Name)
	assert.Equal(t, "2层", last.Floor)
}

func TestGuessBuilding(t *testing.T) {
	tests := []struct {
		location string
		want     string
	}{
		{"宿舍A区楼1层", "A区"},
		{"B区3层走廊", "B区"},
		{"地下车库", "未知"},
		{"", "未知"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, guessBuilding(tt.location), "location %q", tt.location)
	}
}
