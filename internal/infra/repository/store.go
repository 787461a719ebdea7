package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-queue/internal/domain/booking"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

const uniqueViolation = "23505"

// Store is the Postgres-backed booking.Store.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Transaction runs fn inside a database transaction. On a transactional
// store gorm turns the nested call into a savepoint.
func (s *Store) Transaction(ctx context.Context, fn func(tx booking.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// --------------------------------------------------
// Barbers
// --------------------------------------------------

func (s *Store) IsBarber(ctx context.Context, userID uint) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND role = ?", userID, models.RoleBarber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

// translate maps driver errors onto the booking errors. dup is returned for
// unique violations that are not about tokens or the serving slot.
func translate(err error, dup error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return booking.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch {
		case strings.Contains(pgErr.ConstraintName, "token"):
			return booking.ErrDuplicateToken
		case pgErr.ConstraintName == OneOngoingIndex:
			return booking.ErrAlreadyServing
		case dup != nil:
			return dup
		}
		return booking.ErrAlreadyExists
	}
	return err
}

// mustAffect turns an update that matched no row into ErrNotFound.
func mustAffect(res *gorm.DB, dup error) error {
	if res.Error != nil {
		return translate(res.Error, dup)
	}
	if res.RowsAffected == 0 {
		return booking.ErrNotFound
	}
	return nil
}

func queueLockKey(barberID uint, date string) string {
	return fmt.Sprintf("queue:%d:%s", barberID, date)
}

// Compile-time check
var _ booking.Store = (*Store)(nil)
