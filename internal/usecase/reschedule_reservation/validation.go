package reschedule_reservation

import (
	"fmt"
	"time"

	"github.com/v0ron/DLS-LaundryService/internal/domain"
)

// validateRequest проверяет корректность входных данных запроса
func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservation ID must be positive, got %d", ErrInvalidInput, req.ReservationID)
	}
	if req.Caller.UserID <= 0 {
		return fmt.Errorf("%w: caller ID must be positive, got %d", ErrInvalidInput, req.Caller.UserID)
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
func resolveSlotHours(machineID, slotID int64, startHour, endHour int) (int, int, error) {
	idx := slotID - domain.SlotID(machineID, 0)
	if idx < 0 || idx >= int64(endHour-startHour) {
		return 0, 0, fmt.Errorf("%w: slot %d does not exist on machine %d", ErrSlotNotFound, slotID, machineID)
	}
	start := startHour + int(idx)
	return start, start + 1, nil
}
