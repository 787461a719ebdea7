package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-queue/internal/domain/booking"
)

func TestTranslate(t *testing.T) {
	unique := func(constraint string) error {
		return fmt.Errorf("insert: %w", &pgconn.PgError{Code: uniqueViolation, ConstraintName: constraint})
	}
	other := errors.New("connection reset")

	cases := []struct {
		name string
		err  error
		dup  error
		want error
	}{
		{"nil", nil, nil, nil},
		{"not found", gorm.ErrRecordNotFound, nil, booking.ErrNotFound},
		{"token", unique("idx_waiting_queue_token_number"), booking.ErrAlreadyExists, booking.ErrDuplicateToken},
		{"serving", unique(OneOngoingIndex), booking.ErrAlreadyExists, booking.ErrAlreadyServing},
		{"appointment slot", unique("idx_appointment_customer_slot"), booking.ErrDuplicateAppointment, booking.ErrDuplicateAppointment},
		{"no dup given", unique("idx_working_hours_barber_date"), nil, booking.ErrAlreadyExists},
		{"other", other, nil, other},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, translate(tc.err, tc.dup), tc.want)
			if tc.want == nil {
				assert.NoError(t, translate(tc.err, tc.dup))
			}
		})
	}
}

func TestTranslateIgnoresOtherCodes(t *testing.T) {
	err := &pgconn.PgError{Code: "23503", ConstraintName: "fk_walk_ins_barber"}
	assert.Same(t, error(err), translate(err, booking.ErrAlreadyExists))
}

func TestQueueLockKey(t *testing.T) {
	assert.Equal(t, "queue:7:2025-06-02", queueLockKey(7, "2025-06-02"))
}
