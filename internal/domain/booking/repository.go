package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// AppointmentFilter narrows ListAppointments. Zero fields match everything.
type AppointmentFilter struct {
	BarberID      uint
	Date          string
	Statuses      []Status
	CreatedBefore time.Time
}

// QueueKey names one barber's queue for one day.
type QueueKey struct {
	BarberID uint
	Date     string
}

// AvailabilityReader is everything the availability calculator reads.
type AvailabilityReader interface {
	// GetWorkingHours returns ErrNotFound when the barber has no hours for
	// the date.
	GetWorkingHours(ctx context.Context, barberID uint, date string) (*models.WorkingHours, error)
	ListBlockedSlots(ctx context.Context, barberID uint, date string) ([]models.BlockedSlot, error)
	ListAppointments(ctx context.Context, f AppointmentFilter) ([]models.Appointment, error)
	ListWalkIns(ctx context.Context, barberID uint, date string, statuses ...Status) ([]models.WalkIn, error)
}

type RecordRepository interface {
	// -------- Barbers --------
	IsBarber(ctx context.Context, userID uint) (bool, error)

	// -------- Appointments --------
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	// CreateAppointment returns ErrDuplicateAppointment when the customer
	// already booked the same date and time.
	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error
	DeleteAppointment(ctx context.Context, id uint) error

	// -------- Walk-ins --------
	GetWalkIn(ctx context.Context, id uint) (*models.WalkIn, error)
	CreateWalkIn(ctx context.Context, w *models.WalkIn) error
	UpdateWalkIn(ctx context.Context, w *models.WalkIn) error
}

type QueueRepository interface {
	// LockQueue serializes writers of one (barber, date) queue until the
	// surrounding transaction ends.
	LockQueue(ctx context.Context, barberID uint, date string) error

	FindEntryBySource(ctx context.Context, src Source) (*models.QueueEntry, error)
	GetEntry(ctx context.Context, id uint) (*models.QueueEntry, error)
	MaxPosition(ctx context.Context, barberID uint, date string) (int, error)
	// ListEntries returns entries ordered by position. No statuses means all.
	ListEntries(ctx context.Context, barberID uint, date string, statuses ...Status) ([]models.QueueEntry, error)
	// CreateEntry returns ErrDuplicateToken when the token is taken.
	CreateEntry(ctx context.Context, e *models.QueueEntry) error
	UpdateEntry(ctx context.Context, e *models.QueueEntry) error
	ListQueueKeys(ctx context.Context, date string) ([]QueueKey, error)
}

type ScheduleRepository interface {
	// -------- Working hours --------
	ListWorkingHours(ctx context.Context, barberID uint) ([]models.WorkingHours, error)
	GetWorkingHoursByID(ctx context.Context, id uint) (*models.WorkingHours, error)
	// CreateWorkingHours returns ErrAlreadyExists when the barber already
	// has hours for the date.
	CreateWorkingHours(ctx context.Context, wh *models.WorkingHours) error
	UpdateWorkingHours(ctx context.Context, wh *models.WorkingHours) error
	DeleteWorkingHours(ctx context.Context, id uint) error
	DeleteAllWorkingHours(ctx context.Context, barberID uint) error
	// CountWorkingHours counts entries dated fromDate or later.
	CountWorkingHours(ctx context.Context, barberID uint, fromDate string) (int64, error)

	// -------- Blocked slots --------
	ListBlockedSlotsForBarber(ctx context.Context, barberID uint) ([]models.BlockedSlot, error)
	GetBlockedSlot(ctx context.Context, id uint) (*models.BlockedSlot, error)
	ExistsBlockedSlot(ctx context.Context, barberID uint, date, start, end string) (bool, error)
	CreateBlockedSlot(ctx context.Context, bs *models.BlockedSlot) error
	UpdateBlockedSlot(ctx context.Context, bs *models.BlockedSlot) error
	DeleteBlockedSlot(ctx context.Context, id uint) error
	DeleteAllBlockedSlots(ctx context.Context, barberID uint) error
	// CountBlockedSlots counts entries dated fromDate or later.
	CountBlockedSlots(ctx context.Context, barberID uint, fromDate string) (int64, error)
}

// Store is the record store. Transaction runs fn against a store bound to a
// single transaction; fn's error rolls it back. Calling Transaction on a
// transactional store opens a nested savepoint.
type Store interface {
	AvailabilityReader
	RecordRepository
	QueueRepository
	ScheduleRepository

	Transaction(ctx context.Context, fn func(tx Store) error) error
}
