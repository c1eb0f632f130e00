package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v0ron/DLS-LaundryService/internal/domain"
	reservationRepo "github.com/v0ron/DLS-LaundryService/internal/infra/storage/reservation"
	"github.com/v0ron/DLS-LaundryService/internal/service/reservations/models"
	"github.com/v0ron/DLS-LaundryService/pkg/ptr"
	"github.com/v0ron/DLS-LaundryService/pkg/types"
)

type fakeRepo struct {
	reservations map[int64]*domain.Reservation
	deleted      []int64
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return r, nil
}

func (f *fakeRepo) GetByUser(ctx context.Context, userID int64) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, r := range f.reservations {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindWithFilter(ctx context.Context, filter reservationRepo.Filter) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, r := range f.reservations {
		if filter.UserID != nil && r.UserID != *filter.UserID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.reservations[id]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	delete(f.reservations, id)
	f.deleted = append(f.deleted, id)
	return nil
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

func newTestService() (*Service, *fakeRepo) {
	now := time.Date(2025, 10, 15, 9, 30, 0, 0, time.UTC)
	repo := &fakeRepo{reservations: map[int64]*domain.Reservation{
		1: {
			ID: 1, UserID: 7, MachineID: 3, MachineName: "A区-03号",
			Date:  "2025-10-15",
			Start: types.NewHourString(9), End: types.NewHourString(10),
			CreatedAt: now.Add(-time.Hour),
		},
		2: {
			ID: 2, UserID: 8, MachineID: 4, MachineName: "B区-01号",
			Date:  "2025-10-16",
			Start: types.NewHourString(12), End: types.NewHourString(13),
			CreatedAt: now.Add(-2 * time.Hour),
		},
	}}
	svc := NewService(repo, nopLogger{})
	svc.timeProvider = &fixedTime{now: now}
	return svc, repo
}

func TestList_UserSeesOnlyOwn(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.List(context.Background(), &models.ListReservationsRequest{
		Caller: domain.Identity{UserID: 7, Role: domain.RoleUser},
	})
	require.NoError(t, err)

	require.Equal(t, 1, resp.Total)
	assert.Equal(t, int64(1), resp.Reservations[0].ID)
	assert.Equal(t, "ongoing", resp.Reservations[0].Status, "9:00-10:00 at 9:30 is in progress")
}

func TestList_UserFilterIgnoredForNonAdmin(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.List(context.Background(), &models.ListReservationsRequest{
		Caller: domain.Identity{UserID: 7, Role: domain.RoleUser},
		UserID: ptr.Ptr(int64(8)),
	})
	require.NoError(t, err)

	require.Equal(t, 1, resp.Total)
	assert.Equal(t, int64(7), resp.Reservations[0].UserID)
}

func TestList_AdminSeesAll(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.List(context.Background(), &models.ListReservationsRequest{
		Caller: domain.Identity{UserID: 99, Role: domain.RoleAdmin},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
}

func TestList_AdminFiltersByUser(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.List(context.Background(), &models.ListReservationsRequest{
		Caller: domain.Identity{UserID: 99, Role: domain.RoleAdmin},
		UserID: ptr.Ptr(int64(8)),
	})
	require.NoError(t, err)

	require.Equal(t, 1, resp.Total)
	assert.Equal(t, int64(8), resp.Reservations[0].UserID)
	assert.Equal(t, "pending", resp.Reservations[0].Status, "tomorrow's slot has not started")
}

func TestCancel_Owner(t *testing.T) {
	svc, repo := newTestService()

	err := svc.Cancel(context.Background(), 1, domain.Identity{UserID: 7, Role: domain.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, repo.deleted)
}

func TestCancel_Admin(t *testing.T) {
	svc, repo := newTestService()

	err := svc.Cancel(context.Background(), 1, domain.Identity{UserID: 99, Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, repo.deleted)
}

func TestCancel_NotOwnerDenied(t *testing.T) {
	svc, repo := newTestService()

	err := svc.Cancel(context.Background(), 1, domain.Identity{UserID: 8, Role: domain.RoleUser})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.deleted)
}

func TestCancel_MissingIsIdempotent(t *testing.T) {
	svc, _ := newTestService()

	err := svc.Cancel(context.Background(), 42, domain.Identity{UserID: 7, Role: domain.RoleUser})
	assert.NoError(t, err)
}

func TestCancel_TwiceIsIdempotent(t *testing.T) {
	svc, _ := newTestService()
	caller := domain.Identity{UserID: 7, Role: domain.RoleUser}

	require.NoError(t, svc.Cancel(context.Background(), 1, caller))
	assert.NoError(t, svc.Cancel(context.Background(), 1, caller))
}
