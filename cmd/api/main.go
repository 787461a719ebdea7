package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barber-queue/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-queue/internal/db"
	"github.com/BruksfildServices01/barber-queue/internal/domain/booking"
	"github.com/BruksfildServices01/barber-queue/internal/infra/memstore"
	"github.com/BruksfildServices01/barber-queue/internal/infra/repository"
	"github.com/BruksfildServices01/barber-queue/internal/logging"
	"github.com/BruksfildServices01/barber-queue/internal/metrics"
	"github.com/BruksfildServices01/barber-queue/internal/models"
	"github.com/BruksfildServices01/barber-queue/internal/notify"
	"github.com/BruksfildServices01/barber-queue/internal/queue"
	"github.com/BruksfildServices01/barber-queue/internal/routes"
	"github.com/BruksfildServices01/barber-queue/internal/sweeper"
	"github.com/BruksfildServices01/barber-queue/internal/timezone"
	"github.com/BruksfildServices01/barber-queue/internal/token"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logging.New(logging.Config{})
		boot.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// 📈 METRICS
	// ======================================================
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// ======================================================
	// 💾 STORE
	// ======================================================
	var (
		store   booking.Store
		senders = notify.MultiSender{notify.NewLogSender(log)}
	)
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		mem := memstore.New()
		barber := mem.PutUser(models.User{Name: "Barber", Email: "barber@localhost", Role: models.RoleBarber})
		log.Warn().Uint("barber_id", barber.ID).Msg("using in-memory store, data is lost on exit")
		store = mem
	default:
		db, err := dbpkg.NewDB(cfg, log)
		if err != nil {
			return err
		}
		store = repository.NewStore(db)
		senders = append(senders, notify.NewStoreSender(db))
	}

	// ======================================================
	// 🔁 REDIS (OPTIONAL)
	// ======================================================
	redisClient, err := dbpkg.NewRedis(ctx, cfg)
	if err != nil {
		return err
	}

	var (
		alloc  queue.PositionAllocator = queue.StoreAllocator{}
		locker sweeper.Locker          = sweeper.NoopLocker{}
	)
	if redisClient != nil {
		defer redisClient.Close()
		alloc = queue.NewRedisAllocator(redisClient, 0)
		locker = sweeper.NewRedisLocker(redisClient)
		log.Info().Str("addr", cfg.RedisAddr).Msg("redis enabled")
	}

	// ======================================================
	// 🧠 ENGINE
	// ======================================================
	dispatcher := notify.NewDispatcher(senders, notify.DefaultBuffer, log, m)
	defer dispatcher.Close()

	clock := timezone.NewShopClock(cfg.Timezone)
	tokens := token.NewGenerator(token.Config{
		AppointmentPrefix: cfg.Token.AppointmentPrefix,
		WalkInPrefix:      cfg.Token.WalkInPrefix,
		Delimiter:         cfg.Token.Delimiter,
	})

	manager := queue.NewManager(store, tokens, queue.Options{
		Allocator:     alloc,
		Notifier:      dispatcher,
		Clock:         clock,
		Metrics:       m,
		Logger:        log,
		TokenAttempts: cfg.Token.MaxAttempts,
	})

	sweep := sweeper.New(store, manager, sweeper.Config{
		PendingTimeLimit:  cfg.Sweeper.PendingTimeLimit,
		Interval:          cfg.Sweeper.Interval,
		ReconcileInterval: cfg.Sweeper.ReconcileInterval,
	}, sweeper.Options{
		Notifier: dispatcher,
		Clock:    clock,
		Locker:   locker,
		Metrics:  m,
		Logger:   log,
	})
	if err := sweep.Start(); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		sweep.Stop(stopCtx)
	}()

	// ======================================================
	// 🌐 HTTP
	// ======================================================
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, cfg, routes.Deps{
		Store:    store,
		Manager:  manager,
		Notifier: dispatcher,
		Clock:    clock,
		Metrics:  m,
		Gatherer: reg,
		Logger:   log,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
