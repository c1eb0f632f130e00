package domain

import "time"

// Role роль пользователя
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User пользователь системы
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Name         string
	Role         Role
	Building     string
	BannedUntil  *time.Time

	CreatedAt time.Time
}

// IsBanned проверяет, действует ли для пользователя блокировка на момент now.
// BannedUntil = nil или в прошлом означает отсутствие блокировки.
func (u *User) IsBanned(now time.Time) bool {
	return u.BannedUntil != nil && now.Before(*u.BannedUntil)
}

// IsAdmin проверяет, что пользователь - администратор
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Identity идентичность вызывающего, полученная от провайдера токенов
type Identity struct {
	UserID   int64
	Name     string
	Role     Role
	Building string
}

// IsAdmin проверяет, что вызывающий - администратор
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
