package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v0ron/DLS-LaundryService/internal/domain"
	machineRepo "github.com/v0ron/DLS-LaundryService/internal/infra/storage/machine"
	"github.com/v0ron/DLS-LaundryService/pkg/types"
)

type fakeReservationRepo struct {
	reservations []*domain.Reservation
	err          error
}

func (f *fakeReservationRepo) GetByMachineAndDate(ctx context.Context, machineID int64, date string) ([]*domain.Reservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Reservation
	for _, r := range f.reservations {
		if r.MachineID == machineID && r.Date == date {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeMachineRepo struct {
	machines map[int64]*domain.Machine
}

func (f *fakeMachineRepo) GetByID(ctx context.Context, id int64) (*domain.Machine, error) {
	m, ok := f.machines[id]
	if !ok {
		return nil, machineRepo.ErrMachineNotFound
	}
	return m, nil
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

func newTestUseCase(reservations []*domain.Reservation, now time.Time) *UseCase {
	uc := NewUseCase(
		&fakeReservationRepo{reservations: reservations},
		&fakeMachineRepo{machines: map[int64]*domain.Machine{
			3: {ID: 3, Name: "A区-03号", Building: "A区"},
		}},
		Config{DailyStartHour: 8, DailyEndHour: 22},
		nopLogger{},
	)
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

func TestExecute_GeneratesFullDay(t *testing.T) {
	now := time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(nil, now)

	resp, err := uc.Execute(context.Background(), &Request{MachineID: 3, DateKey: "2025-10-15"})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 14, "window 8..22 yields 14 slots")
	assert.Equal(t, int64(3000), resp.Slots[0].ID)
	assert.Equal(t, types.HourString("8:00"), resp.Slots[0].Start)
	assert.Equal(t, types.HourString("9:00"), resp.Slots[0].End)
	assert.Equal(t, int64(3013), resp.Slots[13].ID)
	assert.Equal(t, types.HourString("21:00"), resp.Slots[13].Start)
	assert.Equal(t, types.HourString("22:00"), resp.Slots[13].End)

	// Слоты упорядочены и уникальны по ID
	seen := make(map[int64]bool)
	for i, s := range resp.Slots {
		assert.False(t, seen[s.ID], "duplicate slot id %d", s.ID)
		seen[s.ID] = true
		if i > 0 {
			assert.True(t, s.Start.IsAfter(resp.Slots[i-1].Start))
		}
		assert.True(t, s.Available)
	}
}

func TestExecute_MasksPastHoursToday(t *testing.T) {
	// Сейчас 12:30: слоты с концом <= 12 недоступны
	now := time.Date(2025, 10, 15, 12, 30, 0, 0, time.UTC)
	uc := newTestUseCase(nil, now)

	resp, err := uc.Execute(context.Background(), &Request{MachineID: 3, DateKey: "2025-10-15"})
	require.NoError(t, err)

	for _, s := range resp.Slots {
		if s.End.MustHour() <= 12 {
			assert.False(t, s.Available, "slot %s-%s should be masked", s.Start, s.End)
		} else {
			assert.True(t, s.Available, "slot %s-%s should stay available", s.Start, s.End)
		}
	}
}

func TestExecute_NoPastMaskingForFutureDate(t *testing.T) {
	now := time.Date(2025, 10, 15, 20, 0, 0, 0, time.UTC)
	uc := newTestUseCase(nil, now)

	resp, err := uc.Execute(context.Background(), &Request{MachineID: 3, DateKey: "2025-10-16"})
	require.NoError(t, err)

	for _, s := range resp.Slots {
		assert.True(t, s.Available)
	}
}

func TestExecute_MasksReservedSlots(t *testing.T) {
	now := time.Date(2025, 10, 14, 9, 0, 0, 0, time.UTC)
	reservations := []*domain.Reservation{
		{ID: 1, MachineID: 3, Date: "2025-10-15", Start: types.NewHourString(9), End: types.NewHourString(10)},
		{ID: 2, MachineID: 3, Date: "2025-10-15", Start: types.NewHourString(14), End: types.NewHourString(15)},
	}
	uc := newTestUseCase(reservations, now)

	resp, err := uc.Execute(context.Background(), &Request{MachineID: 3, DateKey: "2025-10-15"})
	require.NoError(t, err)

	for _, s := range resp.Slots {
		switch s.Start.MustHour() {
		case 9, 14:
			assert.False(t, s.Available)
		default:
			assert.True(t, s.Available)
		}
	}
}

func TestExecute_EmptyDateDefaultsToToday(t *testing.T) {
	now := time.Date(2025, 10, 15, 10, 30, 0, 0, time.UTC)
	uc := newTestUseCase(nil, now)

	resp, err := uc.Execute(context.Background(), &Request{MachineID: 3})
	require.NoError(t, err)

	assert.Equal(t, "2025-10-15", resp.Date)
	// Маскировка прошедших часов применилась: сегодня
	assert.False(t, resp.Slots[0].Available)
}

func TestExecute_MachineNotFound(t *testing.T) {
	now := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)
	uc := newTestUseCase(nil, now)

	_, err := uc.Execute(context.Background(), &Request{MachineID: 99, DateKey: "2025-10-15"})
	assert.ErrorIs(t, err, ErrMachineNotFound)
}

func TestExecute_InvalidDate(t *testing.T) {
	now := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)
	uc := newTestUseCase(nil, now)

	_, err := uc.Execute(context.Background(), &Request{MachineID: 3, DateKey: "15.10.2025"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
