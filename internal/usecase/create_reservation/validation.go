package create_reservation

import (
	"fmt"
	"time"

	"github.com/v0ron/DLS-LaundryService/internal/domain"
)

// validateRequest проверяет корректность входных данных запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: user ID must be positive, got %d", ErrInvalidInput, req.UserID)
	}
	if req.MachineID <= 0 {
		return fmt.Errorf("%w: machine ID must be positive, got %d", ErrInvalidInput, req.MachineID)
	}
	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slot ID must be positive, got %d", ErrInvalidInput, req.SlotID)
	}
	if req.DateKey != "" {
		if _, err := time.Parse(domain.DateFormat, req.DateKey); err != nil {
			return fmt.Errorf("%w: date must be in YYYY-MM-DD format, got %q", ErrInvalidInput, req.DateKey)
		}
	}
	return nil
}

// resolveSlotHours восстанавливает часы начала и конца из ID слота.
// ID слота кодируется как machineID*1000 + индекс часа внутри рабочего окна.
// Возвращает ErrSlotNotFound, если ID не принадлежит машине или выходит
// за пределы окна.
func resolveSlotHours(machineID, slotID int64, startHour, endHour int) (int, int, error) {
	idx := slotID - domain.SlotID(machineID, 0)
	if idx < 0 || idx >= int64(endHour-startHour) {
		return 0, 0, fmt.Errorf("%w: slot %d does not exist on machine %d", ErrSlotNotFound, slotID, machineID)
	}
	start := startHour + int(idx)
	return start, start + 1, nil
}
