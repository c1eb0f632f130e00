package domain

import "time"

// MachineStatus информационный статус машины.
// Движком бронирования не интерпретируется - busy машина остается бронируемой.
type MachineStatus string

const (
	MachineIdle MachineStatus = "idle"
	MachineBusy MachineStatus = "busy"
)

// Machine стиральная машина - ресурс с вместимостью одна бронь на слот
type Machine struct {
	ID       int64
	Name     string
	Location string
	Building string
	Floor    string
	Status   MachineStatus
	Guide    string

	CreatedAt time.Time
}

// IsValidMachineStatus проверяет допустимость статуса машины
func IsValidMachineStatus(s MachineStatus) bool {
	return s == MachineIdle || s == MachineBusy
}
