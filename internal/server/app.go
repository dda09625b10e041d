// Package server initializes and runs the portal application: it opens the
// database, builds the object store and mailer, wires services into the
// HTTP server and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gpai/case-portal/internal/logging"
	"github.com/gpai/case-portal/internal/server/config"
	"github.com/gpai/case-portal/internal/server/db"
	"github.com/gpai/case-portal/internal/server/mail"
	"github.com/gpai/case-portal/internal/server/repositories/repomanager"
	"github.com/gpai/case-portal/internal/server/services"
	"github.com/gpai/case-portal/internal/server/storage"
	"github.com/gpai/case-portal/internal/server/web"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *web.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	conn, err := db.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	store, err := storage.NewS3ObjectStore(ctx, storage.S3Config{
		AccessKey:    cfg.S3AccessKey,
		SecretKey:    cfg.S3SecretKey,
		Bucket:       cfg.S3Bucket,
		Region:       cfg.S3Region,
		BaseEndpoint: cfg.S3BaseEndpoint,
	}, logger.With("component", "storage"))
	if err != nil {
		return nil, fmt.Errorf("object store init error: %w", err)
	}

	mailer := mail.NewSMTPMailer(mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
	})

	rm := repomanager.NewPostgresRepositoryManager()
	us := services.NewUserService(conn, rm, mailer, logger.With("component", "users"), cfg)
	ss := services.NewSubmissionService(conn, rm, store, logger.With("component", "submissions"))

	srv := web.NewServer(cfg, logger.With("component", "web"), us, ss)

	return &App{config: cfg, logger: logger, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
