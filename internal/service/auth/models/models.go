package models

// Request модели

// LoginRequest запрос на вход
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Response модели

// UserInfo публичные данные пользователя
type UserInfo struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Building string `json:"building"`
}

// LoginResponse ответ с токеном и данными пользователя
type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}
