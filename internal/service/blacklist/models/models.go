package models

import (
	"time"

	"github.com/v0ron/DLS-LaundryService/internal/domain"
)

// Request модели

// SetBanRequest запрос на установку или снятие блокировки пользователя
type SetBanRequest struct {
	UserID      int64      `json:"userId"`
	BannedUntil *time.Time `json:"bannedUntil,omitempty"` // nil снимает блокировку
}

// Response модели

// BannedUserResponse запись черного списка
type BannedUserResponse struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	BannedUntil string `json:"bannedUntil"` // RFC3339
}

// BannedListResponse ответ со списком заблокированных пользователей
type BannedListResponse struct {
	Users []BannedUserResponse `json:"users"`
	Total int                  `json:"total"`
}

// FromDomainUsers конвертирует список заблокированных пользователей в response
func FromDomainUsers(users []*domain.User) *BannedListResponse {
	resp := &BannedListResponse{
		Users: make([]BannedUserResponse, 0, len(users)),
		Total: len(users),
	}
	for _, u := range users {
		item := BannedUserResponse{
			ID:       u.ID,
			Username: u.Username,
			Name:     u.Name,
		}
		if u.BannedUntil != nil {
			item.BannedUntil = u.BannedUntil.Format(time.RFC3339)
		}
		resp.Users = append(resp.Users, item)
	}
	return resp
}
