package machine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/v0ron/DLS-LaundryService/internal/domain"
	"github.com/v0ron/DLS-LaundryService/pkg/dbmetrics"
	"github.com/v0ron/DLS-LaundryService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с машинами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория машин
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую машину
func (r *Repository) Create(ctx context.Context, m *domain.Machine) (*domain.Machine, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("machines").
		Columns("name", "location", "building", "floor", "status", "guide").
		Values(m.Name, m.Location, m.Building, m.Floor, m.Status, m.Guide).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&m.ID, &m.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	return m, nil
}

// CreateBatch создает несколько машин за один запрос (демо-наполнение)
func (r *Repository) CreateBatch(ctx context.Context, machines []*domain.Machine) (int, error) {
	if len(machines) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("machines").
		Columns("name", "location", "building", "floor", "status", "guide")
	for _, m := range machines {
		insertBuilder = insertBuilder.Values(m.Name, m.Location, m.Building, m.Floor, m.Status, m.Guide)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - execute insert: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - get rows affected: %w", ErrExecQuery, err)
	}
	return int(rowsAffected), nil
}

// GetByID получает машину по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Machine, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectMachines().
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var m domain.Machine
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&m.ID, &m.Name, &m.Location, &m.Building, &m.Floor, &m.Status, &m.Guide, &m.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMachineNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan machine: %w", ErrScanRow, err)
	}
	return &m, nil
}

// List получает все машины, отсортированные по ID
func (r *Repository) List(ctx context.Context) ([]*domain.Machine, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectMachines().
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanMachines(rows)
}

// GetByIDs получает машины по списку ID (join для отчетов)
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Machine, error) {
	if len(ids) == 0 {
		return []*domain.Machine{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectMachines().
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanMachines(rows)
}

// Count возвращает количество машин (проверка необходимости демо-наполнения)
func (r *Repository) Count(ctx context.Context) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").From("machines").ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: Count - scan count: %w", ErrScanRow, err)
	}
	return count, nil
}

// Delete удаляет машину. Брони машины удаляются вызывающим кодом
// в той же транзакции (каскадная композиция: машина владеет существованием броней).
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("machines").
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
		return ErrMachineNotFound
	}
	return nil
}

func selectMachines() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"name",
		"location",
		"building",
		"floor",
		"status",
		"guide",
		"created_at",
	).From("machines")
}

// scanMachines сканирует результаты запроса в слайс машин
func scanMachines(rows *sql.Rows) ([]*domain.Machine, error) {
	machines := make([]*domain.Machine, 0)

	for rows.Next() {
		var m domain.Machine
		err := rows.Scan(&m.ID, &m.Name, &m.Location, &m.Building, &m.Floor, &m.Status, &m.Guide, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: scanMachines - scan row: %w", ErrScanRow, err)
		}
		machines = append(machines, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanMachines - rows error: %w", ErrScanRow, err)
	}
	return machines, nil
}
