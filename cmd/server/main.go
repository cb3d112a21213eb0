package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"authweb/internal/config"
	"authweb/internal/db"
	"authweb/internal/password"
	"authweb/internal/session"
	"authweb/internal/users"
	"authweb/internal/web"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	logger := log.New(os.Stdout, "authweb: ", log.LstdFlags)

	if err := run(*configPath, logger); err != nil {
		logger.Fatal(err)
	}
}

func run(configPath string, logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	conn, err := db.Open(ctx, cfg.Database.DSN, cfg.Database.MaxOpenConns)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := db.RunMigrations(ctx, conn); err != nil {
		return err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	sessions := session.NewStore(rdb, cfg.Session.KeyPrefix, cfg.Session.TTL.Std())
	if latency, err := sessions.Ping(ctx); err != nil {
		return err
	} else {
		logger.Printf("session store reachable (%s)", latency)
	}

	hasher, err := password.NewArgon2(password.DefaultConfig())
	if err != nil {
		return err
	}

	creds := users.NewPostgresStore(conn, hasher)
	handler := web.NewHandler(sessions, creds, cfg.Session.CookieName, logger)

	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: web.NewRouter(handler),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("listening on %s", cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
