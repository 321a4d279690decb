package models

// Тарифные планы арендатора. Переход free -> pro монотонный,
// пути обратно нет.
const (
	PlanFree = "free"
	PlanPro  = "pro"
)

// FreeNoteLimit максимум заметок на бесплатном плане.
const FreeNoteLimit = 3

// Tenant представляет изолированного арендатора — единицу изоляции
// данных и тарификации. Владеет своими пользователями и заметками.
type Tenant struct {
	ID   string `json:"id"`
	Slug string `json:"slug"` // URL-безопасный уникальный идентификатор
	Name string `json:"name"`
	Plan string `json:"plan"` // free или pro
}
