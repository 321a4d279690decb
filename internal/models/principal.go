package models

// Principal — проверенный контекст личности и полномочий одного запроса.
// Собирается заново на каждый запрос из валидного токена и свежих данных
// хранилища; за пределами запроса не кешируется. Claims токена источником
// роли и тарифа не являются.
type Principal struct {
	UserID string
	Email  string
	Role   string
	Tenant Tenant
}
