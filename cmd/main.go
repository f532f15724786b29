// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/Shivanand-hulikatti/event-reservations/internal/clock"
	"github.com/Shivanand-hulikatti/event-reservations/internal/config"
	"github.com/Shivanand-hulikatti/event-reservations/internal/database"
	"github.com/Shivanand-hulikatti/event-reservations/internal/handler"
	"github.com/Shivanand-hulikatti/event-reservations/internal/repository"
	"github.com/Shivanand-hulikatti/event-reservations/internal/repository/memory"
	"github.com/Shivanand-hulikatti/event-reservations/internal/service"
)

// stores is the persistence backend handed to the services.
type stores struct {
	users        service.UserStore
	organizers   service.OrganizerStore
	eventTypes   service.EventTypeStore
	events       service.EventStore
	reservations service.ReservationStore
}

func main() {
	cfg := config.MustLoad()
	log := newLogger(cfg.Logger, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// ── 1. Open the store ─────────────────────────────────────────────────
	st, closeStore, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	// ── 2. Wire up layers ────────────────────────────────────────────────
	v := service.NewValidator()
	clk := clock.NewSystem()
	h := handler.Handlers{
		Users:        handler.NewUserHandler(service.NewUserService(st.users, st.events, v)),
		Organizers:   handler.NewOrganizerHandler(service.NewOrganizerService(st.organizers, v)),
		EventTypes:   handler.NewEventTypeHandler(service.NewEventTypeService(st.eventTypes, v)),
		Events:       handler.NewEventHandler(service.NewEventService(st.events, st.eventTypes, st.organizers, clk, v)),
		Reservations: handler.NewReservationHandler(service.NewReservationService(st.reservations, st.events, st.users, v)),
	}

	// ── 3. Build the router ───────────────────────────────────────────────
	router := handler.NewRouter(h, handler.RouterConfig{
		Logger:         log,
		CORSOrigins:    cfg.CORS.Origins,
		RequestTimeout: cfg.Server.RequestTimeout,
	})

	// ── 4. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("store", cfg.Store.Driver).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

// openStores connects the configured backend. For Postgres it also applies
// pending migrations.
func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (stores, func(), error) {
	if cfg.Store.Driver == "memory" {
		log.Warn().Msg("using in-memory store; data is lost on exit")
		m := memory.New()
		return stores{
			users:        m.Users(),
			organizers:   m.Organizers(),
			eventTypes:   m.EventTypes(),
			events:       m.Events(),
			reservations: m.Reservations(),
		}, func() {}, nil
	}

	pool, err := database.NewPool(ctx, cfg.Postgres, log)
	if err != nil {
		return stores{}, nil, fmt.Errorf("database: %w", err)
	}
	log.Info().Str("host", cfg.Postgres.Host).Str("db", cfg.Postgres.DBName).Msg("connected to postgres")

	results, err := database.Migrate(ctx, pool)
	if err != nil {
		pool.Close()
		return stores{}, nil, fmt.Errorf("migrate: %w", err)
	}
	for _, r := range results {
		log.Info().Str("migration", r.Source.Path).Dur("took", r.Duration).Msg("migration applied")
	}

	return postgresStores(pool), pool.Close, nil
}

func postgresStores(pool *pgxpool.Pool) stores {
	return stores{
		users:        repository.NewUserRepository(pool),
		organizers:   repository.NewOrganizerRepository(pool),
		eventTypes:   repository.NewEventTypeRepository(pool),
		events:       repository.NewEventRepository(pool),
		reservations: repository.NewReservationRepository(pool),
	}
}

// newLogger builds the process logger. An unparsable level falls back to info;
// config validation rejects those before this point.
func newLogger(cfg config.LoggerConfig, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano

	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Str("service", "event-reservations").Logger()
}
