package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/a2sv-g68/admissions-service/internal/auth"
	"github.com/a2sv-g68/admissions-service/internal/config"
	"github.com/a2sv-g68/admissions-service/internal/mailer"
	"github.com/a2sv-g68/admissions-service/internal/repository/postgres"
	"github.com/a2sv-g68/admissions-service/internal/service"
	"github.com/a2sv-g68/admissions-service/internal/storage"
	myhttp "github.com/a2sv-g68/admissions-service/internal/transport/http"

	"github.com/a2sv-g68/admissions-service/pkg/logger/slogpretty"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.MustLoad()
	log := slogpretty.SetupLogger(cfg.Env)

	log.Info("starting admissions-service", slog.String("env", cfg.Env))

	errChan := make(chan error, 1)

	db, err := postgres.NewDB(cfg.Postgres)
	if err != nil {
		return fmt.Errorf("failed to init db: %v", err)
	}
	defer func() {
		err = db.Close()
		if err != nil {
			errChan <- fmt.Errorf("db close failed: %v", err)
		}
	}()

	userRepo := postgres.NewUserRepository(db, log)
	cycleRepo := postgres.NewCycleRepository(db, log)
	appRepo := postgres.NewApplicationRepository(db, log)
	reviewRepo := postgres.NewReviewRepository(db, log)

	tokens := auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL, cfg.Auth.ResetTTL)
	mail := mailer.NewSMTPSender(cfg.Mail)

	uploader, err := storage.NewLocalUploader(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to init upload storage: %v", err)
	}

	base := service.NewBaseService(db, log)

	authService := service.NewAuthService(log, userRepo, tokens, mail, cfg.Mail.ResetURL)
	userService := service.NewUserService(log, userRepo, uploader)
	cycleService := service.NewCycleService(log, cycleRepo)
	appService := service.NewApplicationService(base, appRepo, cycleRepo, userRepo, reviewRepo, uploader)
	reviewService := service.NewReviewService(log, appRepo, reviewRepo)

	srv := myhttp.NewServer(log, tokens, authService, userService, cycleService, appService, reviewService,
		cfg.Storage.BaseURL, cfg.Storage.UploadDir)

	httpServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      srv.Routes(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go startServer(log, httpServer, errChan)

	select {
	case err := <-errChan:
		return fmt.Errorf("http server error: %v", err)

	case <-ctx.Done():
		log.Info("stopping server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shuting down http server: %v", err)
	}

	return nil
}

func startServer(log *slog.Logger, httpServer *http.Server, errChan chan error) {
	defer close(errChan)

	log.Info("service started", slog.String("addr", httpServer.Addr))

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		errChan <- fmt.Errorf("error listening and serving: %v", err)
	}
}
