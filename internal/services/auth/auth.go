// Package auth содержит логику аутентификации: вход по паролю и
// превращение bearer-токена в проверенный Principal запроса.
package auth

import (
	"context"
	"database/sql"
	"errors"

	"github.com/magabrotheeeer/notes-saas/internal/apperr"
	"github.com/magabrotheeeer/notes-saas/internal/lib/jwt"
	"github.com/magabrotheeeer/notes-saas/internal/lib/password"
	"github.com/magabrotheeeer/notes-saas/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// GetUserByEmail возвращает пользователя с его арендатором по email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, *models.Tenant, error)

	// GetUserWithTenant возвращает пользователя с его арендатором по ID.
	GetUserWithTenant(ctx context.Context, userID string) (*models.User, *models.Tenant, error)
}

// Service отвечает за вход пользователей и резолв токенов в Principal.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// New создает новый экземпляр Service.
func New(users UserRepository, jwtMaker jwt.Maker) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Login проверяет учётные данные и выдаёт подписанный токен вместе
// с принципалом пользователя.
//
// "Нет такого пользователя" и "неверный пароль" сведены в один путь
// отказа: наружу в обоих случаях уходит одинаковый результат, чтобы
// по ответу нельзя было перечислять аккаунты.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (string, *models.Principal, error) {
	user, tenant, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, apperr.ErrInvalidCredentials
		}
		return "", nil, apperr.Wrap(apperr.KindInternal, "login failed", err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, apperr.ErrInvalidCredentials
	}

	token, err := s.jwtMaker.GenerateToken(user.ID, user.Role, tenant.ID, tenant.Slug)
	if err != nil {
		return "", nil, apperr.Wrap(apperr.KindInternal, "failed to sign token", err)
	}

	principal := &models.Principal{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Tenant: *tenant,
	}
	return token, principal, nil
}

// ResolveToken превращает bearer-токен в Principal запроса.
//
// Криптографическая проверка отделена от проверки актуальности:
// после разбора токена пользователь и арендатор перечитываются из
// хранилища, и роль с тарифом берутся оттуда, а не из claims. Токен,
// выпущенный до смены тарифа или роли, таким образом не даёт устаревших
// полномочий. Любой отказ сводится к единому "не аутентифицирован".
func (s *Service) ResolveToken(ctx context.Context, token string) (*models.Principal, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, apperr.ErrUnauthenticated
	}

	user, tenant, err := s.users.GetUserWithTenant(ctx, claims.UserID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// Пользователь удалён после выпуска токена.
		return nil, apperr.ErrUnauthenticated
	case err != nil:
		return nil, apperr.Wrap(apperr.KindInternal, "failed to resolve principal", err)
	}

	return &models.Principal{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Tenant: *tenant,
	}, nil
}
