package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hongminglow/user-auth-be/internal/auth"
	"github.com/hongminglow/user-auth-be/internal/config"
	"github.com/hongminglow/user-auth-be/internal/server"
	"github.com/hongminglow/user-auth-be/internal/storage"
	"github.com/hongminglow/user-auth-be/internal/storage/memory"
	postgres "github.com/hongminglow/user-auth-be/internal/storage/postgres"
	"github.com/hongminglow/user-auth-be/internal/storage/sqlite"
	"github.com/joho/godotenv"
)

const connectTimeout = 30 * time.Second

func main() {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	hasher, err := auth.NewPasswordHasher(cfg.BcryptCost)
	if err != nil {
		log.Fatalf("init password hasher: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	userStore, closeStore, err := openStore(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	defer closeStore()
	log.Printf("database connected (dialect=%s)", cfg.Dialect)

	srv := server.New(cfg, userStore, hasher)

	go func() {
		log.Printf("auth service listening on %s", cfg.HTTPAddress())
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}

// openStore connects the store selected by DB_DIALECT and returns its closer.
func openStore(ctx context.Context, cfg config.Config) (storage.UserStore, func(), error) {
	switch cfg.Dialect {
	case config.DialectPostgres:
		s, err := postgres.NewUserStore(ctx, cfg.PostgresURL(), postgres.PoolOptions{
			MaxConns:        cfg.DBMaxConns,
			MinConns:        cfg.DBMinConns,
			MaxConnLifetime: cfg.DBMaxConnLifetime,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.DialectSQLite:
		s, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {
			if err := s.Close(); err != nil {
				log.Printf("close sqlite: %v", err)
			}
		}, nil
	case config.DialectMemory:
		log.Println("using in-memory store; data is lost on exit")
		s := memory.NewUserStore()
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported dialect %q", cfg.Dialect)
	}
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
