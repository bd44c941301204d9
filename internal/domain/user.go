package domain

import "time"

// User локальная проекция пользователя из внешнего identity-провайдера.
// Сервис только читает пользователей, выдача сессий вне его зоны.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
