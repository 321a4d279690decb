// Package jwt реализует генерацию и парсинг JWT токенов с claim-полями
// пользователя и арендатора.
//
// Maker определяет интерфейс кодека токенов; MakerImpl — реализация
// на симметричном секрете (HS256) со сроком жизни. Секрет передаётся
// при создании, глобального состояния пакет не держит. Смена секрета
// инвалидирует все выданные токены.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
//
// Кодек не интерпретирует роль и арендатора — claims для него
// непрозрачны, их актуальность проверяет вызывающий слой.
type Maker interface {
	// GenerateToken выпускает подписанный токен с данными пользователя и арендатора.
	GenerateToken(userID, role, tenantID, tenantSlug string) (string, error)
	// ParseToken возвращает *CustomClaims, если подпись и срок действия в порядке.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// DefaultTokenTTL срок жизни токена по умолчанию — 7 дней.
const DefaultTokenTTL = 7 * 24 * time.Hour

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов
	tokenTTL  time.Duration // Время жизни токена
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
// При нулевом TTL используется DefaultTokenTTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
