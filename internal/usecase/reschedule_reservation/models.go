package reschedule_reservation

import (
	"time"

	"github.com/v0ron/DLS-LaundryService/internal/domain"
	"github.com/v0ron/DLS-LaundryService/pkg/types"
)

// Request модель запроса на перенос брони
type Request struct {
	ReservationID int64
	Caller        domain.Identity // вызывающий из токена
	SlotID        int64           // новый слот на машине брони
	DateKey       string          // новая дата YYYY-MM-DD, пустая строка = сегодня
}

// Response модель ответа с перенесенной бронью
type Response struct {
	ID          int64
	UserID      int64
	MachineID   int64
	MachineName string
	Date        string
	Start       types.HourString
	End         types.HourString
	Status      domain.ReservationStatus
	CreatedAt   time.Time // сохраняется неизменным при переносе
}

// Config параметры движка бронирования
type Config struct {
	DailyStartHour int
	DailyEndHour   int
}
