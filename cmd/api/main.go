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

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/config"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/attendance"
	appHTTP "github.com/cmlabs-hris/attendance-dashboard-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/sse"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/repository/fixture"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/attendance-dashboard-go/internal/service/attendance"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := appHTTP.NewLogger(os.Stdout, cfg.App, cfg.SlogLevel())
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	location, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone: %w", err)
	}

	var (
		attendanceRepo attendance.AttendanceRepository
		fixtureRepo    *fixture.AttendanceRepository
	)
	switch cfg.Attendance.Source {
	case config.SourcePostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()
		attendanceRepo = postgresql.NewAttendanceRepository(db, cfg.App.Timezone)
	case config.SourceFile:
		fixtureRepo, err = fixture.NewAttendanceRepository(cfg.Attendance.FilePath)
		if err != nil {
			return fmt.Errorf("load attendance fixture: %w", err)
		}
		attendanceRepo = fixtureRepo
	}
	slog.Info("Attendance source ready", "source", cfg.Attendance.Source)

	checkIns := attendanceService.NewCheckInTracker()
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, checkIns, sse.NewHub(), cfg.Attendance, cfg.App.Timezone)

	scheduler := cron.NewScheduler()
	var reloader cron.FixtureReloader
	if fixtureRepo != nil {
		reloader = fixtureRepo
	}
	cron.NewAttendanceJobs(reloader, checkIns, cfg.Attendance.ReloadInterval, location).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	router := appHTTP.NewRouter(cfg.App, logger, attendanceHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
