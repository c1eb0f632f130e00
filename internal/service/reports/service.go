package reports

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/v0ron/DLS-LaundryService/internal/domain"
	reservationRepo "github.com/v0ron/DLS-LaundryService/internal/infra/storage/reservation"
	"github.com/v0ron/DLS-LaundryService/internal/service/reports/models"
)

const (
	// Корпус для броней на машинах, которых больше нет
	unknownBuilding = "未知"

	// BOM нужен, чтобы Excel корректно открывал файлы с CJK-символами
	utf8BOM = "\xEF\xBB\xBF"

	csvHeader = "id,userId,machineId,machineName,building,floor,date,start,end"
)

// Service сервис отчетности: статистика и выгрузка CSV.
// Только чтение, собственных инвариантов не имеет.
type Service struct {
	reservationRepo ReservationRepository
	machineRepo     MachineRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса отчетности
func NewService(reservationRepo ReservationRepository, machineRepo MachineRepository, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		machineRepo:     machineRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Stats считает агрегаты броней за дату: всего, по часу начала
// и по корпусу машины. Пустая дата = сегодня.
func (s *Service) Stats(ctx context.Context, dateKey string) (*models.StatsResponse, error) {
	if dateKey == "" {
		dateKey = domain.ToDateKey(s.timeProvider.Now())
	}
	s.logger.Info("Stats: date=%s", dateKey)

	rows, err := s.reservationRepo.FindWithFilter(ctx, reservationRepo.Filter{Date: &dateKey})
	if err != nil {
		s.logger.Error("Stats: repository error: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %v", ErrInternal, err)
	}

	byHour := make(map[string]int)
	for _, r := range rows {
		byHour[strconv.Itoa(r.Start.MustHour())]++
	}

	idToMachine, err := s.machineIndex(ctx, rows)
	if err != nil {
		s.logger.Error("Stats: failed to load machines: %v", err)
		return nil, fmt.Errorf("%w: Stats - failed to load machines: %v", ErrInternal, err)
	}

	byBuilding := make(map[string]int)
	for _, r := range rows {
		building := unknownBuilding
		if m, ok := idToMachine[r.MachineID]; ok && m.Building != "" {
			building = m.Building
		}
		byBuilding[building]++
	}

	return &models.StatsResponse{
		Date:       dateKey,
		Total:      len(rows),
		ByHour:     byHour,
		ByBuilding: byBuilding,
	}, nil
}

// Export выгружает брони в CSV: строка заголовка, по строке на бронь,
// UTF-8 с BOM. Корпус и этаж берутся из текущего состояния машины,
// для удаленных машин - пустые.
func (s *Service) Export(ctx context.Context, req *models.ExportRequest) (*models.ExportResponse, error) {
	s.logger.Info("Export: date=%s, from=%s, to=%s, building=%s",
		req.Date, req.DateFrom, req.DateTo, req.Building)

	filter := reservationRepo.Filter{}
	switch {
	case req.Date != "":
		filter.Date = &req.Date
	default:
		if req.DateFrom != "" {
			filter.DateFrom = &req.DateFrom
		}
		if req.DateTo != "" {
			filter.DateTo = &req.DateTo
		}
	}

	rows, err := s.reservationRepo.FindWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("Export: repository error: %v", err)
		return nil, fmt.Errorf("%w: Export - repository error: %v", ErrInternal, err)
	}

	idToMachine, err := s.machineIndex(ctx, rows)
	if err != nil {
		s.logger.Error("Export: failed to load machines: %v", err)
		return nil, fmt.Errorf("%w: Export - failed to load machines: %v", ErrInternal, err)
	}

	var buf bytes.Buffer
	buf.WriteString(utf8BOM)
	buf.WriteString(csvHeader)
	buf.WriteByte('\n')
	exported := 0
	for _, r := range rows {
		var building, floor string
		if m, ok := idToMachine[r.MachineID]; ok {
			building, floor = m.Building, m.Floor
		}
		if req.Building != "" && building != req.Building {
			continue
		}
		fmt.Fprintf(&buf, "%d,%d,%d,%s,%s,%s,%s,%s,%s\n",
			r.ID, r.UserID, r.MachineID, r.MachineName, building, floor, r.Date, r.Start, r.End)
		exported++
	}

	s.logger.Info("Export: exported %d reservations", exported)
	return &models.ExportResponse{
		Filename: exportFilename(req),
		Content:  buf.Bytes(),
	}, nil
}

// machineIndex загружает машины броней и индексирует их по ID
func (s *Service) machineIndex(ctx context.Context, rows []*domain.Reservation) (map[int64]*domain.Machine, error) {
	seen := make(map[int64]struct{}, len(rows))
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		if _, ok := seen[r.MachineID]; ok {
			continue
		}
		seen[r.MachineID] = struct{}{}
		ids = append(ids, r.MachineID)
	}

	machines, err := s.machineRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	index := make(map[int64]*domain.Machine, len(machines))
	for _, m := range machines {
		index[m.ID] = m
	}
	return index, nil
}

// exportFilename строит имя файла выгрузки по параметрам запроса
func exportFilename(req *models.ExportRequest) string {
	switch {
	case req.Date != "":
		return fmt.Sprintf("reservations-%s.csv", req.Date)
	case req.DateFrom != "" && req.DateTo != "":
		return fmt.Sprintf("reservations-%s_to_%s.csv", req.DateFrom, req.DateTo)
	case req.DateFrom != "":
		return fmt.Sprintf("reservations-%s.csv", req.DateFrom)
	case req.DateTo != "":
		return fmt.Sprintf("reservations-all_to_%s.csv", req.DateTo)
	default:
		return "reservations-all.csv"
	}
}
