package reservation

import "github.com/v0ron/DLS-LaundryService/pkg/dbmetrics"

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// Filter фильтр выборки броней для отчетов и выгрузок
type Filter struct {
	Date     *string // конкретная дата YYYY-MM-DD
	DateFrom *string // начало диапазона (включительно)
	DateTo   *string // конец диапазона (включительно)
	UserID   *int64
}
