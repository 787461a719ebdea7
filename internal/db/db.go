package db

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-queue/internal/config"
	"github.com/BruksfildServices01/barber-queue/internal/infra/repository"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// oneOngoingDDL keeps at most one ongoing entry per (barber, date) queue.
var oneOngoingDDL = fmt.Sprintf(
	`CREATE UNIQUE INDEX IF NOT EXISTS %s ON waiting_queue (barber_id, date) WHERE status = 'ongoing'`,
	repository.OneOngoingIndex,
)

func NewDB(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.WorkingHours{},
		&models.BlockedSlot{},
		&models.Appointment{},
		&models.WalkIn{},
		&models.QueueEntry{},
		&models.Notification{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if err := db.Exec(oneOngoingDDL).Error; err != nil {
		return nil, fmt.Errorf("create %s: %w", repository.OneOngoingIndex, err)
	}

	log.Info().Msg("database ready")
	return db, nil
}

// NewRedis connects to cfg.RedisAddr. It returns nil when no address is
// configured.
func NewRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
