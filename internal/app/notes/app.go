// Package notes собирает API-сервер заметок: хранилище, миграции, кеш,
// брокер событий, сервисы и HTTP-маршруты.
package notes

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/notes-saas/internal/cache"
	"github.com/magabrotheeeer/notes-saas/internal/config"
	"github.com/magabrotheeeer/notes-saas/internal/lib/jwt"
	"github.com/magabrotheeeer/notes-saas/internal/lib/sl"
	"github.com/magabrotheeeer/notes-saas/internal/migrations"
	"github.com/magabrotheeeer/notes-saas/internal/rabbitmq"
	authservice "github.com/magabrotheeeer/notes-saas/internal/services/auth"
	notesservice "github.com/magabrotheeeer/notes-saas/internal/services/notes"
	tenantsservice "github.com/magabrotheeeer/notes-saas/internal/services/tenants"
	"github.com/magabrotheeeer/notes-saas/internal/storage/repository"
)

// App агрегирует все зависимости API-сервера.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	amqp   *amqp.Connection
}

// New инициализирует зависимости и собирает App.
//
// Кеш и брокер необязательны: при недоступном Redis чтения идут в базу,
// при недоступном RabbitMQ события не публикуются. Сервер в обоих
// случаях поднимается.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}
	if err = repository.CheckDatabaseReady(db); err != nil {
		return nil, err
	}

	var noteCache notesservice.NoteCache
	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		logger.Warn("redis unavailable, note cache disabled", sl.Err(err))
	} else {
		noteCache = cacheRedis
	}

	var publisher tenantsservice.Publisher
	var conn *amqp.Connection
	if cfg.RabbitMQURL != "" {
		conn, err = rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
		if err != nil {
			logger.Warn("rabbitmq unavailable, events disabled", sl.Err(err))
		} else {
			ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
			if err != nil {
				logger.Warn("failed to setup rabbitmq channel, events disabled", sl.Err(err))
			} else {
				publisher = rabbitmq.NewEventPublisher(ch)
			}
		}
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.New(db, jwtMaker)
	notesService := notesservice.New(logger, db, noteCache)
	tenantsService := tenantsservice.New(logger, db, publisher)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, notesService, tenantsService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		amqp:   conn,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до отмены контекста
// или ошибки сервера.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.amqp != nil {
			_ = a.amqp.Close()
		}
		_ = a.db.DB.Close()
		return err
	}
}
