package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/templui/diary/internal/cache"
	"github.com/templui/diary/internal/config"
	"github.com/templui/diary/internal/db"
	"github.com/templui/diary/internal/repository"
	"github.com/templui/diary/internal/service"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type App struct {
	Cfg   *config.Config
	DB    *sqlx.DB
	Mongo *mongo.Client
	Redis *redis.Client

	AuthService         *service.AuthService
	UserService         *service.UserService
	VerificationService *service.VerificationService
	DiaryService        *service.DiaryService
	EmailService        *service.EmailService
}

type repositories struct {
	users   repository.UserRepository
	diaries repository.DiaryRepository
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Cfg: cfg}

	repos, err := a.openStore(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	// Cache is optional; a nil interface disables it
	var diaryCache service.DiaryCache
	if cfg.RedisURL != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("failed to initialize cache: %w", err)
		}
		a.Redis = rdb
		diaryCache = cache.NewDiaryCache(rdb, cfg.DiaryCacheTTL)
		slog.Info("diary cache enabled", "ttl", cfg.DiaryCacheTTL)
	}

	// Services
	a.EmailService = service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.EmailLogOnly,
	)
	a.AuthService = service.NewAuthService(
		repos.users,
		a.EmailService,
		cfg.JWTSecret,
		cfg.IsProduction(),
		cfg.JWTExpiry,
	)
	a.UserService = service.NewUserService(repos.users)
	a.VerificationService = service.NewVerificationService(repos.users)
	a.DiaryService = service.NewDiaryService(repos.diaries, diaryCache)

	return a, nil
}

// openStore connects the backend named by DB_DRIVER.
func (a *App) openStore(ctx context.Context) (repositories, error) {
	cfg := a.Cfg

	switch cfg.DBDriver {
	case "memory":
		slog.Warn("using in-memory store, data is lost on restart")
		return repositories{
			users:   repository.NewMemoryUserRepository(),
			diaries: repository.NewMemoryDiaryRepository(),
		}, nil

	case "mongo":
		client, database, err := db.InitMongo(ctx, cfg.DBConnection, cfg.MongoDatabase)
		if err != nil {
			return repositories{}, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.Mongo = client

		err = repository.EnsureMongoIndexes(ctx, database)
		if err != nil {
			return repositories{}, fmt.Errorf("failed to ensure indexes: %w", err)
		}
		return repositories{
			users:   repository.NewMongoUserRepository(database),
			diaries: repository.NewMongoDiaryRepository(database),
		}, nil

	case "sqlite", "pgx":
		database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
		if err != nil {
			return repositories{}, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.DB = database

		err = db.RunMigrations(database.DB, cfg.DBDriver)
		if err != nil {
			return repositories{}, fmt.Errorf("failed to run migrations: %w", err)
		}
		return repositories{
			users:   repository.NewUserRepository(database),
			diaries: repository.NewDiaryRepository(database),
		}, nil

	default:
		return repositories{}, fmt.Errorf("unsupported DB_DRIVER %q (want mongo, sqlite, pgx or memory)", cfg.DBDriver)
	}
}

// Ping checks the primary store. The memory store is always healthy.
func (a *App) Ping(ctx context.Context) error {
	switch {
	case a.Mongo != nil:
		return a.Mongo.Ping(ctx, readpref.Primary())
	case a.DB != nil:
		return a.DB.PingContext(ctx)
	default:
		return nil
	}
}

func (a *App) Close() error {
	var errs []error
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.Mongo != nil {
		errs = append(errs, a.Mongo.Disconnect(context.Background()))
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}
