package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/config"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/calendarsync"
	appHTTP "github.com/cmlabs-hris/leave-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/gcalendar"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/leave-backend-go/internal/repository/postgresql"
	absenceService "github.com/cmlabs-hris/leave-backend-go/internal/service/absence"
	serviceAuth "github.com/cmlabs-hris/leave-backend-go/internal/service/auth"
	calendarSyncService "github.com/cmlabs-hris/leave-backend-go/internal/service/calendarsync"
	"github.com/cmlabs-hris/leave-backend-go/internal/service/file"
	leaveService "github.com/cmlabs-hris/leave-backend-go/internal/service/leave"
	"github.com/cmlabs-hris/leave-backend-go/internal/service/notification"
	sicknessService "github.com/cmlabs-hris/leave-backend-go/internal/service/sickness"
	userService "github.com/cmlabs-hris/leave-backend-go/internal/service/user"
)

const version = "v1.0.0"

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.App.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dsn := cfg.DatabaseURL()
	if cfg.Database.AutoMigrate {
		if err := migrateUp(ctx, dsn); err != nil {
			return err
		}
	}

	db, err := database.NewPostgreSQLDB(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	absenceRepo := postgresql.NewAbsenceRequestRepository(db)
	sicknessRepo := postgresql.NewSicknessDeclarationRepository(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return fmt.Errorf("invalid JWT configuration: %w", err)
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath)
	if err != nil {
		return fmt.Errorf("initialize local storage: %w", err)
	}
	fileService := file.NewFileService(fileStorage, cfg.Storage.MaxFileSize)

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		return fmt.Errorf("initialize email service: %w", err)
	}
	if cfg.SMTP.Host == "" {
		slog.Warn("SMTP is not configured, notification emails are disabled")
	}

	notificationService := notification.NewNotificationService(userRepo, notification.Config{
		FallbackEmail: cfg.Notification.FallbackEmail,
	})
	defer notificationService.Stop()

	// Assigned only when enabled so a disabled publisher stays a nil interface.
	var publisher calendarsync.EventPublisher
	if cfg.GoogleCalendar.Enabled() {
		client, err := gcalendar.NewClient(ctx, cfg.GoogleCalendar)
		if err != nil {
			return fmt.Errorf("initialize google calendar client: %w", err)
		}
		publisher = client
		slog.Info("Google Calendar sync enabled", "calendar_id", cfg.GoogleCalendar.CalendarID)
	}

	authService := serviceAuth.NewAuthService(userRepo, JWTService)
	usersService := userService.NewUserService(userRepo, postgresql.NewTransactor(db))
	leavesService := leaveService.NewLeaveService(userRepo, absenceRepo, sicknessRepo, nil)
	absencesService := absenceService.NewAbsenceService(absenceRepo, userRepo, sicknessRepo, emailService, notificationService, publisher)
	sicknessesService := sicknessService.NewSicknessService(sicknessRepo, userRepo, fileService, emailService, notificationService)
	syncService := calendarSyncService.NewCalendarSyncService(absenceRepo, publisher, cfg.GoogleCalendar.CalendarID)

	scheduler := cron.NewScheduler()
	if publisher != nil {
		cron.RegisterCalendarSync(scheduler, syncService, cfg.GoogleCalendar.SyncInterval)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		Env:            cfg.App.Env,
		Version:        version,
		AllowedOrigins: cfg.App.AllowedOrigins,
		StaticDir:      cfg.App.StaticDir,
	}, JWTService, db, appHTTP.Handlers{
		Auth:           appHTTP.NewAuthHandler(authService),
		User:           appHTTP.NewUserHandler(usersService, leavesService),
		Absence:        appHTTP.NewAbsenceHandler(absencesService),
		Sickness:       appHTTP.NewSicknessHandler(sicknessesService, cfg.Storage.MaxFileSize),
		Dashboard:      appHTTP.NewDashboardHandler(leavesService),
		Calendar:       appHTTP.NewCalendarHandler(leavesService, nil),
		GoogleCalendar: appHTTP.NewGoogleCalendarHandler(syncService),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env, "version", version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

func migrateUp(ctx context.Context, dsn string) error {
	migrator, err := database.NewMigrator(dsn)
	if err != nil {
		return err
	}
	defer migrator.Close()
	return migrator.Up(ctx)
}
