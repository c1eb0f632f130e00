package domain

import "github.com/v0ron/DLS-LaundryService/pkg/types"

// Slot часовой слот бронирования на конкретной машине и дате.
// Слоты не хранятся - они детерминированно выводятся из ID машины,
// даты и рабочего окна при каждом запросе.
type Slot struct {
	ID        int64
	Start     types.HourString
	End       types.HourString
	Available bool
}

// SlotID кодирует ID слота из ID машины и индекса часа в рабочем окне
func SlotID(machineID int64, hourIndex int) int64 {
	return machineID*slotIDMachineFactor + int64(hourIndex)
}
