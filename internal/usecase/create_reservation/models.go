package create_reservation

import (
	"time"

	"github.com/v0ron/DLS-LaundryService/internal/domain"
	"github.com/v0ron/DLS-LaundryService/pkg/types"
)

// Request модель запроса на создание брони
type Request struct {
	UserID    int64  // ID пользователя из токена
	MachineID int64  // ID машины
	SlotID    int64  // ID слота (machineID*1000 + индекс часа)
	DateKey   string // Дата YYYY-MM-DD, пустая строка = сегодня
}

// Response модель ответа с созданной бронью
type Response struct {
	ID          int64
	UserID      int64
	MachineID   int64
	MachineName string // снимок имени машины
	Date        string
	Start       types.HourString
	End         types.HourString
	Status      domain.ReservationStatus // вычислен на момент создания
	CreatedAt   time.Time
}

// Config параметры движка бронирования
type Config struct {
	DailyStartHour    int
	DailyEndHour      int
	DailyLimitPerUser int
	CooldownMinutes   int // 0 = проверка отключена
}
