package models

import "github.com/v0ron/DLS-LaundryService/internal/domain"

// Request модели

// CreateMachineRequest запрос на создание машины
type CreateMachineRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Building string `json:"building,omitempty"` // Пустое значение выводится из location
	Floor    string `json:"floor,omitempty"`
	Status   string `json:"status,omitempty"` // idle по умолчанию
	Guide    string `json:"guide,omitempty"`
}

// ReleaseSlotsRequest запрос на принудительное освобождение слотов машины
type ReleaseSlotsRequest struct {
	MachineID int64
	DateKey   string // Пустая строка = сегодня
	SlotID    *int64 // nil = все слоты машины на дату
}

// SeedDemoRequest запрос на генерацию демо-машин
type SeedDemoRequest struct {
	Buildings         []string `json:"buildings,omitempty"`
	FloorsPerBuilding int      `json:"floorsPerBuilding,omitempty"`
	MachinesPerFloor  int      `json:"machinesPerFloor,omitempty"`
}

// Response модели

// MachineResponse ответ с данными машины
type MachineResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Building string `json:"building"`
	Floor    string `json:"floor"`
	Status   string `json:"status"`
	Guide    string `json:"guide"`
}

// MachineListResponse ответ со списком машин
type MachineListResponse struct {
	Machines []MachineResponse `json:"machines"`
	Total    int               `json:"total"`
}

// ReleaseSlotsResponse результат освобождения слотов
type ReleaseSlotsResponse struct {
	Released int64 `json:"released"`
}

// SeedDemoResponse результат генерации демо-машин
type SeedDemoResponse struct {
	Created int `json:"created"`
}

// FromDomainMachine конвертирует domain машину в response
func FromDomainMachine(m *domain.Machine) MachineResponse {
	return MachineResponse{
		ID:       m.ID,
		Name:     m.Name,
		Location: m.Location,
		Building: m.Building,
		Floor:    m.Floor,
		Status:   string(m.Status),
		Guide:    m.Guide,
	}
}

// FromDomainMachines конвертирует список domain машин в response
func FromDomainMachines(list []*domain.Machine) *MachineListResponse {
	resp := &MachineListResponse{
		Machines: make([]MachineResponse, 0, len(list)),
		Total:    len(list),
	}
	for _, m := range list {
		resp.Machines = append(resp.Machines, FromDomainMachine(m))
	}
	return resp
}
