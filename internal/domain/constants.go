package domain

// Дефолтные параметры движка бронирования.
// Фактические значения приходят из конфигурации (internal/config).
const (
	DefaultDailyStartHour    = 8
	DefaultDailyEndHour      = 22
	DefaultDailyLimitPerUser = 2
	DefaultCooldownMinutes   = 0 // в production - 30
)

// Формат даты бронирования
const DateFormat = "2006-01-02" // YYYY-MM-DD

// slotIDMachineFactor множитель кодирования ID слота:
// slotID = machineID * slotIDMachineFactor + индекс часа.
// Кодирование корректно, пока рабочее окно короче 1000 слотов -
// это проверяется при загрузке конфигурации.
const slotIDMachineFactor = 1000
