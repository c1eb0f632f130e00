package domain

import (
	"time"

	"github.com/v0ron/DLS-LaundryService/pkg/types"
)

// ReservationStatus статус брони, вычисляемый из текущего времени.
// Никогда не хранится - каждый читающий путь выводит его заново.
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusOngoing   ReservationStatus = "ongoing"
	StatusCompleted ReservationStatus = "completed"
)

// Reservation бронь слота на машине
type Reservation struct {
	ID          int64
	UserID      int64
	MachineID   int64
	MachineName string // снимок имени машины на момент создания
	Date        string // YYYY-MM-DD
	Start       types.HourString
	End         types.HourString
	CreatedAt   time.Time
}

// ComputeStatus выводит статус брони из границ слота и текущего времени:
// now < start - pending, start <= now < end - ongoing, иначе completed.
// Чистая функция, граница суток берется в таймзоне now.
func ComputeStatus(date string, start, end types.HourString, now time.Time) ReservationStatus {
	startAt := hourInstant(date, start, now.Location())
	endAt := hourInstant(date, end, now.Location())

	switch {
	case now.Before(startAt):
		return StatusPending
	case now.Before(endAt):
		return StatusOngoing
	default:
		return StatusCompleted
	}
}

// Status возвращает вычисленный статус брони на момент now
func (r *Reservation) Status(now time.Time) ReservationStatus {
	return ComputeStatus(r.Date, r.Start, r.End, now)
}

// hourInstant превращает (дата, "H:00") в момент локального времени.
// Некорректная дата дает нулевой time.Time - такие записи в хранилище
// не появляются, валидация выполняется на входе.
func hourInstant(date string, hour types.HourString, loc *time.Location) time.Time {
	d, err := time.ParseInLocation(DateFormat, date, loc)
	if err != nil {
		return time.Time{}
	}
	return d.Add(time.Duration(hour.MustHour()) * time.Hour)
}

// HasTimeOverlap проверяет пересечение часовых полуоткрытых интервалов
// [aStart, aEnd) и [bStart, bEnd). Граничащие интервалы не пересекаются.
func HasTimeOverlap(aStart, aEnd, bStart, bEnd types.HourString) bool {
	aS, aE := aStart.MustHour(), aEnd.MustHour()
	bS, bE := bStart.MustHour(), bEnd.MustHour()
	return !(aE <= bS || bE <= aS)
}

// ToDateKey форматирует дату в ключ YYYY-MM-DD
func ToDateKey(t time.Time) string {
	return t.Format(DateFormat)
}

// IsSameDay проверяет, что два момента относятся к одному календарному дню
func IsSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
