package get_available_slots

import (
	"fmt"
	"time"

	"github.com/v0ron/DLS-LaundryService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.MachineID <= 0 {
		return fmt.Errorf("%w: machineID must be positive", ErrInvalidInput)
	}
	if req.DateKey != "" {
		if _, err := time.Parse(domain.DateFormat, req.DateKey); err != nil {
			return fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
		}
	}
	return nil
}
