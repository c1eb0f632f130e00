package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/v0ron/DLS-LaundryService/internal/domain"
	"github.com/v0ron/DLS-LaundryService/pkg/dbmetrics"
	"github.com/v0ron/DLS-LaundryService/pkg/psqlbuilder"
	"github.com/v0ron/DLS-LaundryService/pkg/types"
)

// pgUniqueViolation код ошибки PostgreSQL "duplicate key value violates unique constraint"
const pgUniqueViolation = "23505"

const reservationColumns = "id, user_id, machine_id, machine_name, date, start_hour, end_hour, created_at"

// Repository репозиторий для работы с бронями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория броней
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create вставляет новую бронь. Занятость слота гарантируется уникальным
// индексом (machine_id, date, start_hour): конкурирующая вставка того же
// слота завершится ErrSlotTaken независимо от предварительных проверок.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns("user_id", "machine_id", "machine_name", "date", "start_hour", "end_hour").
		Values(
			res.UserID,
			res.MachineID,
			res.MachineName,
			res.Date,
			res.Start.MustHour(),
			res.End.MustHour(),
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return res, nil
}

// GetByID получает бронь по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectReservations().
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	res, err := scanReservation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %w", ErrScanRow, err)
	}
	return res, nil
}

// GetByUser получает все брони пользователя, отсортированные по дате и часу начала
func (r *Repository) GetByUser(ctx context.Context, userID int64) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectReservations().
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("date ASC, start_hour ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUser - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetByUserAndDate получает брони пользователя на дату.
// excludeID исключает из выборки переносимую бронь.
// Внутри транзакции строки блокируются (FOR UPDATE) - выборка используется
// для проверок квоты и пересечений перед вставкой.
func (r *Repository) GetByUserAndDate(ctx context.Context, userID int64, date string, excludeID *int64) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectReservations().
		Where(squirrel.Eq{"user_id": userID, "date": date}).
		OrderBy("start_hour ASC")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserAndDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetByMachineAndDate получает брони машины на дату (для маскировки занятости слотов)
func (r *Repository) GetByMachineAndDate(ctx context.Context, machineID int64, date string) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectReservations().
		Where(squirrel.Eq{"machine_id": machineID, "date": date}).
		OrderBy("start_hour ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMachineAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMachineAndDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// FindByMachineDateStart ищет бронь, занимающую слот (machine, date, start).
// excludeID исключает переносимую бронь. Возвращает ErrReservationNotFound,
// если слот свободен.
func (r *Repository) FindByMachineDateStart(ctx context.Context, machineID int64, date string, startHour int, excludeID *int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectReservations().
		Where(squirrel.Eq{"machine_id": machineID, "date": date, "start_hour": startHour})

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindByMachineDateStart - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	res, err := scanReservation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindByMachineDateStart - scan reservation: %w", ErrScanRow, err)
	}
	return res, nil
}

// CountByUserAndDate подсчитывает брони пользователя на дату (проверка квоты)
func (r *Repository) CountByUserAndDate(ctx context.Context, userID int64, date string) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("reservations").
		Where(squirrel.Eq{"user_id": userID, "date": date}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByUserAndDate - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByUserAndDate - scan count: %w", ErrScanRow, err)
	}
	return count, nil
}

// GetLastByUser получает последнюю по времени создания бронь пользователя
// (для проверки cooldown). Возвращает ErrReservationNotFound, если броней нет.
func (r *Repository) GetLastByUser(ctx context.Context, userID int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectReservations().
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetLastByUser - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	res, err := scanReservation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetLastByUser - scan reservation: %w", ErrScanRow, err)
	}
	return res, nil
}

// FindWithFilter получает брони по фильтру отчетов, отсортированные по дате и часу
func (r *Repository) FindWithFilter(ctx context.Context, filter Filter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectReservations().OrderBy("date ASC, start_hour ASC")

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"date": *filter.Date})
	} else {
		if filter.DateFrom != nil {
			selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
		}
		if filter.DateTo != nil {
			selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"date": *filter.DateTo})
		}
	}
	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// UpdateSchedule переносит бронь на новые дату и часы.
// ID и created_at не меняются - перенос не сбрасывает cooldown.
func (r *Repository) UpdateSchedule(ctx context.Context, id int64, date string, start, end types.HourString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("date", date).
		Set("start_hour", start.MustHour()).
		Set("end_hour", end.MustHour()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: UpdateSchedule - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// Delete удаляет бронь по ID
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// DeleteByMachine удаляет все брони машины (каскад при удалении машины)
func (r *Repository) DeleteByMachine(ctx context.Context, machineID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"machine_id": machineID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByMachine - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByMachine - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByMachine - get rows affected: %w", ErrExecQuery, err)
	}
	return rowsAffected, nil
}

// DeleteByMachineAndDate удаляет все брони машины на дату (админ-освобождение дня)
func (r *Repository) DeleteByMachineAndDate(ctx context.Context, machineID int64, date string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"machine_id": machineID, "date": date}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByMachineAndDate - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByMachineAndDate - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByMachineAndDate - get rows affected: %w", ErrExecQuery, err)
	}
	return rowsAffected, nil
}

// selectReservations возвращает builder выборки всех колонок брони
func selectReservations() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"user_id",
		"machine_id",
		"machine_name",
		"date",
		"start_hour",
		"end_hour",
		"created_at",
	).From("reservations")
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanReservation сканирует одну бронь
func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var startHour, endHour int

	err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.MachineID,
		&res.MachineName,
		&res.Date,
		&startHour,
		&endHour,
		&res.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.Start = types.NewHourString(startHour)
	res.End = types.NewHourString(endHour)
	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс броней
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %w", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %w", ErrScanRow, err)
	}
	return reservations, nil
}

// isUniqueViolation проверяет, что ошибка - нарушение уникального индекса
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}
	return false
}
