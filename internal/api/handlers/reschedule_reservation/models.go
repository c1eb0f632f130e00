package reschedule_reservation

import (
	"time"

	rescheduleReservation "github.com/v0ron/DLS-LaundryService/internal/usecase/reschedule_reservation"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	SlotID int64  `json:"slotId"`
	Date   string `json:"date,omitempty"` // Пустая строка = сегодня
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"userId"`
	MachineID   int64  `json:"machineId"`
	MachineName string `json:"machineName"`
	Date        string `json:"date"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:          resp.ID,
		UserID:      resp.UserID,
		MachineID:   resp.MachineID,
		MachineName: resp.MachineName,
		Date:        resp.Date,
		Start:       string(resp.Start),
		End:         string(resp.End),
		Status:      string(resp.Status),
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}
}
