package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v4/pgxpool"

	authservice "github.com/trandrew/microblog/internal/auth/service"
	"github.com/trandrew/microblog/internal/common/clock"
	"github.com/trandrew/microblog/internal/common/config"
	"github.com/trandrew/microblog/internal/common/constants"
	commoncrypto "github.com/trandrew/microblog/internal/common/crypto"
	"github.com/trandrew/microblog/internal/common/db"
	"github.com/trandrew/microblog/internal/common/logger"
	"github.com/trandrew/microblog/internal/common/resilience"
	feedservice "github.com/trandrew/microblog/internal/feed/service"
	graphrepo "github.com/trandrew/microblog/internal/graph/repository"
	graphservice "github.com/trandrew/microblog/internal/graph/service"
	postrepo "github.com/trandrew/microblog/internal/post/repository"
	postservice "github.com/trandrew/microblog/internal/post/service"
	userrepo "github.com/trandrew/microblog/internal/user/repository"
	userservice "github.com/trandrew/microblog/internal/user/service"
)

// App wires the four core components and their shared infrastructure.
type App struct {
	Log           *logger.Logger
	Config        config.Config
	Pool          *pgxpool.Pool
	Clock         clock.Clock
	Users         *userservice.Service
	Graph         *graphservice.Service
	Posts         *postservice.Service
	Feed          *feedservice.Service
	PasswordReset *authservice.PasswordResetService
	LastSeen      *userservice.LastSeenUpdater
}

func New(ctx context.Context) (*App, error) {
	log, err := logger.New(os.Getenv("LOG_DIR"), "microblog", os.Getenv("LOG_LEVEL"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Errorf("failed to load config: %v", err)
		return nil, err
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	if pool == nil {
		return nil, fmt.Errorf("failed to initialize database pool")
	}

	clk := clock.NewRealClock()
	hasher := &commoncrypto.BcryptHasher{}
	idGenerator := commoncrypto.NewUUIDGenerator()

	userRepo := userrepo.NewPgRepository(pool)
	graphRepo := graphrepo.NewPgRepository(pool)
	postRepo := postrepo.NewPgRepository(pool)

	users := userservice.NewService(userservice.Deps{
		Repo:   userRepo,
		Hasher: hasher,
		Clock:  clk,
		Log:    log,
	})

	graph := graphservice.NewService(graphRepo, log)
	posts := postservice.NewService(postRepo, clk, log)
	feed := feedservice.NewService(postRepo, cfg.PostsPerPage, log)

	passwordReset := authservice.NewPasswordResetService(
		authservice.Deps{
			Users:       userRepo,
			Hasher:      hasher,
			IDGenerator: idGenerator,
			Clock:       clk,
			Log:         log,
		},
		authservice.Config{
			SecretKey: cfg.SecretKey,
			TokenTTL:  cfg.ResetTokenTTL,
		},
	)

	lastSeenBreaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Threshold:  constants.DefaultCircuitBreakerThreshold,
		Timeout:    constants.DefaultCircuitBreakerTimeout,
		ResetAfter: constants.DefaultCircuitBreakerReset,
		Name:       "last_seen",
		Logger:     log,
	})

	lastSeen := userservice.NewLastSeenUpdater(
		ctx,
		userRepo,
		log,
		constants.DefaultLastSeenInterval,
		lastSeenBreaker,
		clk,
	)

	return &App{
		Log:           log,
		Config:        cfg,
		Pool:          pool,
		Clock:         clk,
		Users:         users,
		Graph:         graph,
		Posts:         posts,
		Feed:          feed,
		PasswordReset: passwordReset,
		LastSeen:      lastSeen,
	}, nil
}

// Close flushes pending last_seen updates and releases the pool.
func (a *App) Close() {
	a.LastSeen.Stop()
	a.Pool.Close()
}
