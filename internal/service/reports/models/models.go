package models

// Request модели

// ExportRequest параметры выгрузки броней в CSV
type ExportRequest struct {
	Date     string // Конкретная дата; при заполнении диапазон игнорируется
	DateFrom string // Начало диапазона (включительно)
	DateTo   string // Конец диапазона (включительно)
	Building string // Фильтр по корпусу, пустая строка = все
}

// Response модели

// StatsResponse агрегированная статистика броней за дату
type StatsResponse struct {
	Date       string         `json:"date"`
	Total      int            `json:"total"`
	ByHour     map[string]int `json:"byHour"`     // Ключ - час начала без суффикса, например "9"
	ByBuilding map[string]int `json:"byBuilding"` // Ключ - корпус машины
}

// ExportResponse результат выгрузки CSV
type ExportResponse struct {
	Filename string
	Content  []byte
}
