package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"booking_service/internal/booking"
	"booking_service/internal/config"
	createbooking "booking_service/internal/http-server/handlers/create_booking"
	getbookings "booking_service/internal/http-server/handlers/get_bookings"
	getclients "booking_service/internal/http-server/handlers/get_clients"
	registerclient "booking_service/internal/http-server/handlers/register_client"
	resp "booking_service/internal/lib/api/response"
	"booking_service/internal/lib/logger/sl"
	"booking_service/internal/models"
	"booking_service/internal/notifier"
	"booking_service/internal/pipeline"
	"booking_service/internal/queue"
	"booking_service/internal/rabbitmq"
	"booking_service/internal/storage/memory"
	"booking_service/internal/storage/postgres"
	"booking_service/internal/storage/redis"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// messageQueue joins the producer and consumer halves of the queue; both the
// in-process queue and the RabbitMQ client satisfy it.
type messageQueue interface {
	Enqueue(ctx context.Context, req models.BookingRequest) error
	Dequeue(ctx context.Context) (models.BookingRequest, error)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad("./config/local.yaml")
	log := setupLogger(cfg.Env)

	log.Info("starting booking service", slog.String("env", cfg.Env))

	// * Storage
	var store booking.Store
	switch cfg.Storage.Mode {
	case config.StorageModePostgres:
		connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		repo, err := postgres.Connect(connectCtx, cfg)
		cancel()
		if err != nil {
			log.Error("failed to connect to postgres", sl.Err(err))
			os.Exit(1)
		}
		defer repo.Close()
		store = repo
	default:
		store = memory.New()
	}

	// * Queue
	var q messageQueue
	switch cfg.Queue.Mode {
	case config.QueueModeRabbitMQ:
		client, err := rabbitmq.New(cfg.Queue.RabbitMQ.URL, cfg.Queue.RabbitMQ.QueueName)
		if err != nil {
			log.Error("failed to init RabbitMQ", sl.Err(err))
			os.Exit(1)
		}
		defer client.Close()
		q = client
	default:
		q = queue.NewMemory()
	}

	// * Redis slot guard
	var guard booking.SlotGuard
	if cfg.Redis.Enabled {
		slotGuard, err := redis.New(ctx, cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Error("failed to connect to redis", sl.Err(err))
			os.Exit(1)
		}
		defer slotGuard.Close()
		guard = slotGuard
	}

	// * Notifier
	var sink notifier.Sink
	switch cfg.Notifier.Mode {
	case config.NotifierModeSMTP:
		sink = notifier.NewSMTPSink(
			cfg.Notifier.Email.Host,
			cfg.Notifier.Email.Port,
			cfg.Notifier.Email.Username,
			cfg.Notifier.Email.Password,
			log,
		)
	default:
		sink = notifier.NewLogSink(log)
	}

	pipe := pipeline.New(
		log,
		q,
		booking.NewValidator(store, guard),
		notifier.New(sink, cfg.Notifier.BarberDomain),
	)

	pipelineDone := make(chan struct{})
	go func() {
		defer close(pipelineDone)

		if err := pipe.Run(ctx); err != nil {
			log.Error("pipeline stopped", sl.Err(err))
			stop()
		}
	}()

	service := booking.NewService(store, q)

	// * Routing
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// * Handlers
	r.Post("/client/register", registerclient.New(log, service))
	r.Post("/booking", createbooking.New(log, service))
	r.Get("/bookings", getbookings.New(log, service))
	r.Get("/clients", getclients.New(log, service))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, resp.OK())
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      r,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("HTTP server starting", slog.String("addr", cfg.HTTPServer.Address))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server failed", sl.Err(err))
		os.Exit(1)
	}

	<-pipelineDone
	log.Info("booking service gracefully stopped")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}
