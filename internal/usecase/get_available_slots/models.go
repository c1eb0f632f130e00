package get_available_slots

import "github.com/v0ron/DLS-LaundryService/internal/domain"

// Request модель запроса доступных слотов
type Request struct {
	MachineID int64
	DateKey   string // YYYY-MM-DD, пустая строка = сегодня
}

// Response модель ответа со слотами на день
type Response struct {
	MachineID int64
	Date      string
	Slots     []domain.Slot
}

// Config параметры рабочего окна бронирования
type Config struct {
	DailyStartHour int
	DailyEndHour   int
}
