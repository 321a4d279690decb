package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims описывает данные, зашитые в токен. Криптографически они
// аутентичны, но могут устареть: актуальные роль и тариф перечитываются
// из хранилища на каждый запрос, доверять здесь можно только UserID.
type CustomClaims struct {
	UserID               string `json:"user_id"`     // Идентификатор пользователя
	Role                 string `json:"role"`        // Роль на момент выпуска
	TenantID             string `json:"tenant_id"`   // Арендатор на момент выпуска
	TenantSlug           string `json:"tenant_slug"` // Slug арендатора на момент выпуска
	jwt.RegisteredClaims        // Стандартные claims (ExpiresAt, IssuedAt и пр.)
}

// GenerateToken создает JWT с заданными claims, подписывая его секретным ключом.
// Срок действия — now + tokenTTL.
func (j *MakerImpl) GenerateToken(userID, role, tenantID, tenantSlug string) (string, error) {
	const op = "jwt.GenerateToken"
	claims := CustomClaims{
		UserID:     userID,
		Role:       role,
		TenantID:   tenantID,
		TenantSlug: tenantSlug,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// ParseToken парсит JWT, проверяет подпись и срок действия и возвращает
// CustomClaims. Истёкший, подделанный и повреждённый токены неразличимы
// для вызывающего — во всех случаях возвращается ошибка.
func (j *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
