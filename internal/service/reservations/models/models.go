package models

import (
	"time"

	"github.com/v0ron/DLS-LaundryService/internal/domain"
)

// Request модели

// ListReservationsRequest запрос на получение списка броней
type ListReservationsRequest struct {
	Caller domain.Identity
	UserID *int64 // Фильтр по пользователю, доступен только администратору
}

// Response модели

// ReservationResponse ответ с данными брони
type ReservationResponse struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"userId"`
	MachineID   int64  `json:"machineId"`
	MachineName string `json:"machineName"`
	Date        string `json:"date"`      // "2025-10-15"
	Start       string `json:"start"`     // "9:00"
	End         string `json:"end"`       // "10:00"
	Status      string `json:"status"`    // pending | ongoing | completed
	CreatedAt   string `json:"createdAt"` // RFC3339
}

// ReservationListResponse ответ со списком броней
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Total        int                   `json:"total"`
}

// FromDomainReservation конвертирует domain бронь в response.
// Статус вычисляется на момент now.
func FromDomainReservation(r *domain.Reservation, now time.Time) ReservationResponse {
	return ReservationResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		MachineID:   r.MachineID,
		MachineName: r.MachineName,
		Date:        r.Date,
		Start:       string(r.Start),
		End:         string(r.End),
		Status:      string(r.Status(now)),
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainReservations конвертирует список domain броней в response
func FromDomainReservations(list []*domain.Reservation, now time.Time) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(list)),
		Total:        len(list),
	}
	for _, r := range list {
		resp.Reservations = append(resp.Reservations, FromDomainReservation(r, now))
	}
	return resp
}
