// Package models содержит доменную модель сервиса заметок:
// пользователей, арендаторов и заметки. Структуры используются
// в бизнес-логике и при работе с хранилищем.
package models

import "time"

// Роли пользователей внутри арендатора.
const (
	RoleAdmin  = "admin"  // может приглашать участников и менять тариф
	RoleMember = "member" // работает только с заметками своего арендатора
)

// User представляет пользователя, принадлежащего ровно одному арендатору.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"` // Уникальна по всей системе
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"` // admin или member, фиксируется при создании
	TenantID     string    `json:"tenant_id"`
	CreatedAt    time.Time `json:"created_at"`
}
