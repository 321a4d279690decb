package models

import "time"

// Note представляет заметку. Принадлежит ровно одному арендатору;
// tenant_id заметки всегда совпадает с tenant_id автора и не меняется
// за всё время жизни записи.
type Note struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	TenantID    string    `json:"tenant_id"`
	AuthorID    string    `json:"author_id"`
	AuthorEmail string    `json:"author_email,omitempty"` // Заполняется при чтении из хранилища
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DummyNote используется для приёма данных заметки из JSON-запроса
// до передачи в бизнес-логику.
type DummyNote struct {
	Title   string `json:"title" validate:"required,min=1,max=200"` // Заголовок (обязателен)
	Content string `json:"content" validate:"max=10000"`            // Текст (опционален)
}
