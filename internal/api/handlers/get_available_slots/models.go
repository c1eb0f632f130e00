package get_available_slots

import (
	getSlots "github.com/v0ron/DLS-LaundryService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	ID        int64  `json:"id"`
	Start     string `json:"start"` // "9:00"
	End       string `json:"end"`   // "10:00"
	Available bool   `json:"available"`
}

// SlotsResponse HTTP ответ со слотами машины на дату
type SlotsResponse struct {
	MachineID int64          `json:"machineId"`
	Date      string         `json:"date"`
	Slots     []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlots.Response) *SlotsResponse {
	out := &SlotsResponse{
		MachineID: resp.MachineID,
		Date:      resp.Date,
		Slots:     make([]SlotResponse, 0, len(resp.Slots)),
	}
	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			ID:        s.ID,
			Start:     string(s.Start),
			End:       string(s.End),
			Available: s.Available,
		})
	}
	return out
}
