// Команда seed наполняет базу тестовыми арендаторами и пользователями:
// арендаторы acme и globex, в каждом admin@<slug>.test и user@<slug>.test
// с паролем "password". Повторный запуск безопасен.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/magabrotheeeer/notes-saas/internal/config"
	"github.com/magabrotheeeer/notes-saas/internal/lib/password"
	"github.com/magabrotheeeer/notes-saas/internal/lib/sl"
	"github.com/magabrotheeeer/notes-saas/internal/migrations"
	"github.com/magabrotheeeer/notes-saas/internal/models"
	"github.com/magabrotheeeer/notes-saas/internal/storage/repository"
)

const seedPassword = "password"

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		logger.Error("failed to connect to storage", sl.Err(err))
		os.Exit(1)
	}
	defer func() {
		_ = db.DB.Close()
	}()

	if err := migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		logger.Error("failed to run migrations", sl.Err(err))
		os.Exit(1)
	}

	hash, err := password.GetHash(seedPassword)
	if err != nil {
		logger.Error("failed to hash seed password", sl.Err(err))
		os.Exit(1)
	}

	ctx := context.Background()
	for _, tenant := range []struct{ slug, name string }{
		{slug: "acme", name: "Acme"},
		{slug: "globex", name: "Globex"},
	} {
		tenantID, err := upsertTenant(ctx, db.DB, tenant.slug, tenant.name)
		if err != nil {
			logger.Error("failed to seed tenant", slog.String("slug", tenant.slug), sl.Err(err))
			os.Exit(1)
		}

		for _, user := range []struct{ prefix, role string }{
			{prefix: "admin", role: models.RoleAdmin},
			{prefix: "user", role: models.RoleMember},
		} {
			email := user.prefix + "@" + tenant.slug + ".test"
			if err := upsertUser(ctx, db.DB, email, hash, user.role, tenantID); err != nil {
				logger.Error("failed to seed user", slog.String("email", email), sl.Err(err))
				os.Exit(1)
			}
			logger.Info("seeded user", slog.String("email", email), slog.String("role", user.role))
		}
	}

	logger.Info("seed completed")
}

func upsertTenant(ctx context.Context, db *sql.DB, slug, name string) (string, error) {
	var id string
	query := `INSERT INTO tenants (slug, name, plan)
			  VALUES ($1, $2, 'free')
			  ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
			  RETURNING id;`
	if err := db.QueryRowContext(ctx, query, slug, name).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func upsertUser(ctx context.Context, db *sql.DB, email, passwordHash, role, tenantID string) error {
	query := `INSERT INTO users (email, password_hash, role, tenant_id)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash, role = EXCLUDED.role;`
	_, err := db.ExecContext(ctx, query, email, passwordHash, role, tenantID)
	return err
}
