package reports

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v0ron/DLS-LaundryService/internal/domain"
	reservationRepo "github.com/v0ron/DLS-LaundryService/internal/infra/storage/reservation"
	"github.com/v0ron/DLS-LaundryService/internal/service/reports/models"
	"github.com/v0ron/DLS-LaundryService/pkg/types"
)

type fakeReservations struct {
	rows       []*domain.Reservation
	lastFilter reservationRepo.Filter
}

func (f *fakeReservations) FindWithFilter(ctx context.Context, filter reservationRepo.Filter) ([]*domain.Reservation, error) {
	f.lastFilter = filter
	var out []*domain.Reservation
	for _, r := range f.rows {
		if filter.Date != nil && r.Date != *filter.Date {
			continue
		}
		if filter.DateFrom != nil && r.Date < *filter.DateFrom {
			continue
		}
		if filter.DateTo != nil && r.Date > *filter.DateTo {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

type fakeMachines struct {
	machines map[int64]*domain.Machine
}

func (f *fakeMachines) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Machine, error) {
	var out []*domain.Machine
	for _, id := range ids {
		if m, ok := f.machines[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
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

type recordingLogger struct {
	nopLogger
	infos []string
}

func (l *recordingLogger) Info(format string, v ...interface{}) {
	l.infos = append(l.infos, fmt.Sprintf(format, v...))
}

func newTestService() (*Service, *fakeReservations) {
	reservations := &fakeReservations{rows: []*domain.Reservation{
		{
			ID: 1, UserID: 7, MachineID: 3, MachineName: "A区-03号",
			Date: "2025-10-15", Start: types.NewHourString(9), End: types.NewHourString(10),
		},
		{
			ID: 2, UserID: 8, MachineID: 4, MachineName: "B区-01号",
			Date: "2025-10-15", Start: types.NewHourString(9), End: types.NewHourString(10),
		},
		{
			// Машина 99 удалена
			ID: 3, UserID: 7, MachineID: 99, MachineName: "C区-02号",
			Date: "2025-10-15", Start: types.NewHourString(14), End: types.NewHourString(15),
		},
		{
			ID: 4, UserID: 9, MachineID: 3, MachineName: "A区-03号",
			Date: "2025-10-16", Start: types.NewHourString(8), End: types.NewHourString(9),
		},
	}}
	machines := &fakeMachines{machines: map[int64]*domain.Machine{
		3: {ID: 3, Name: "A区-03号", Building: "A区", Floor: "2"},
		4: {ID: 4, Name: "B区-01号", Building: "B区", Floor: "1"},
	}}
	svc := NewService(reservations, machines, nopLogger{})
	svc.timeProvider = &fixedTime{now: time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)}
	return svc, reservations
}

func TestStats_GroupsByHourAndBuilding(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Stats(context.Background(), "2025-10-15")
	require.NoError(t, err)

	assert.Equal(t, "2025-10-15", resp.Date)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, map[string]int{"9": 2, "14": 1}, resp.ByHour)
	assert.Equal(t, map[string]int{"A区": 1, "B区": 1, "未知": 1}, resp.ByBuilding)
}

func TestStats_EmptyDateDefaultsToToday(t *testing.T) {
	svc, reservations := newTestService()

	resp, err := svc.Stats(context.Background(), "")
	require.NoError(t, err)

	require.NotNil(t, reservations.lastFilter.Date)
	assert.Equal(t, "2025-10-15", *reservations.lastFilter.Date)
	assert.Equal(t, 3, resp.Total)
}

func TestStats_NoReservations(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Stats(context.Background(), "2025-12-31")
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Total)
	assert.Empty(t, resp.ByHour)
	assert.Empty(t, resp.ByBuilding)
}

func TestExport_SingleDate(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Export(context.Background(), &models.ExportRequest{Date: "2025-10-15"})
	require.NoError(t, err)

	assert.Equal(t, "reservations-2025-10-15.csv", resp.Filename)

	content := string(resp.Content)
	require.True(t, strings.HasPrefix(content, "\xEF\xBB\xBF"), "file starts with UTF-8 BOM")

	lines := strings.Split(strings.TrimSuffix(strings.TrimPrefix(content, "\xEF\xBB\xBF"), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "id,userId,machineId,machineName,building,floor,date,start,end", lines[0])
	assert.Equal(t, "1,7,3,A区-03号,A区,2,2025-10-15,9:00,10:00", lines[1])
	assert.Equal(t, "3,7,99,C区-02号,,,2025-10-15,14:00,15:00", lines[3], "deleted machine leaves building and floor empty")
}

func TestExport_DateRange(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Export(context.Background(), &models.ExportRequest{
		DateFrom: "2025-10-16", DateTo: "2025-10-17",
	})
	require.NoError(t, err)

	assert.Equal(t, "reservations-2025-10-16_to_2025-10-17.csv", resp.Filename)
	lines := strings.Split(strings.TrimSuffix(string(resp.Content), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "2025-10-16")
}

func TestExport_BuildingFilter(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Export(context.Background(), &models.ExportRequest{
		Date: "2025-10-15", Building: "A区",
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(resp.Content), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], ",A区,")
}

func TestExport_LogsEmittedRowCount(t *testing.T) {
	// Фильтр по корпусу применяется после выборки: в лог должно
	// попадать число строк, реально записанных в файл
	svc, _ := newTestService()
	log := &recordingLogger{}
	svc.logger = log

	resp, err := svc.Export(context.Background(), &models.ExportRequest{
		Date: "2025-10-15", Building: "A区",
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(resp.Content), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, log.infos, "Export: exported 1 reservations")
}

func TestExport_NoFilters(t *testing.T) {
	svc, reservations := newTestService()

	resp, err := svc.Export(context.Background(), &models.ExportRequest{})
	require.NoError(t, err)

	assert.Equal(t, "reservations-all.csv", resp.Filename)
	assert.Nil(t, reservations.lastFilter.Date)
	assert.Nil(t, reservations.lastFilter.DateFrom)
	lines := strings.Split(strings.TrimSuffix(string(resp.Content), "\n"), "\n")
	assert.Len(t, lines, 5)
}

func TestExport_DateWinsOverRange(t *testing.T) {
	svc, reservations := newTestService()

	_, err := svc.Export(context.Background(), &models.ExportRequest{
		Date: "2025-10-15", DateFrom: "2025-01-01", DateTo: "2025-12-31",
	})
	require.NoError(t, err)

	require.NotNil(t, reservations.lastFilter.Date)
	assert.Nil(t, reservations.lastFilter.DateFrom)
	assert.Nil(t, reservations.lastFilter.DateTo)
}
