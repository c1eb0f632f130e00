package get_available_slots

import (
	"time"

	"github.com/v0ron/DLS-LaundryService/internal/domain"
	"github.com/v0ron/DLS-LaundryService/pkg/types"
)

// generateDailySlots генерирует последовательность часовых слотов машины на день.
// Для каждого часа h рабочего окна [startHour, endHour) создается слот
// с ID = machineID*1000 + индекс часа. Детерминирована: один и тот же вход
// всегда дает одну и ту же последовательность.
func generateDailySlots(machineID int64, startHour, endHour int) []domain.Slot {
	slots := make([]domain.Slot, 0, endHour-startHour)
	idx := 0
	for h := startHour; h < endHour; h++ {
		slots = append(slots, domain.Slot{
			ID:        domain.SlotID(machineID, idx),
			Start:     types.NewHourString(h),
			End:       types.NewHourString(h + 1),
			Available: true,
		})
		idx++
	}
	return slots
}

// maskPastSlots помечает недоступными слоты, чей час уже прошел.
// Применяется только когда запрошенная дата - сегодня: слот считается
// прошедшим, если его конец не позже текущего часа.
// Выполняется ДО маскировки занятости.
func maskPastSlots(slots []domain.Slot, dateKey string, now time.Time) {
	if domain.ToDateKey(now) != dateKey {
		return
	}
	currentHour := now.Hour()
	for i := range slots {
		if slots[i].End.MustHour() <= currentHour {
			slots[i].Available = false
		}
	}
}

// maskReservedSlots помечает недоступными слоты, занятые бронями.
// Занятость определяется точным совпадением часа начала - слоты
// не пересекаются по построению, интервальная математика не нужна.
func maskReservedSlots(slots []domain.Slot, reservations []*domain.Reservation) {
	for _, r := range reservations {
		for i := range slots {
			if slots[i].Start == r.Start {
				slots[i].Available = false
				break
			}
		}
	}
}
