// Package memstore is an in-memory booking.Store. A transaction holds the
// store-wide lock for its whole duration and is rolled back by restoring a
// snapshot.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/BruksfildServices01/barber-queue/internal/domain/booking"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

type data struct {
	nextID uint

	users        map[uint]models.User
	appointments map[uint]models.Appointment
	walkIns      map[uint]models.WalkIn
	entries      map[uint]models.QueueEntry
	workingHours map[uint]models.WorkingHours
	blocked      map[uint]models.BlockedSlot
}

func newData() *data {
	return &data{
		users:        map[uint]models.User{},
		appointments: map[uint]models.Appointment{},
		walkIns:      map[uint]models.WalkIn{},
		entries:      map[uint]models.QueueEntry{},
		workingHours: map[uint]models.WorkingHours{},
		blocked:      map[uint]models.BlockedSlot{},
	}
}

func (d *data) clone() *data {
	c := newData()
	c.nextID = d.nextID
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.appointments {
		c.appointments[k] = v
	}
	for k, v := range d.walkIns {
		c.walkIns[k] = v
	}
	for k, v := range d.entries {
		c.entries[k] = v
	}
	for k, v := range d.workingHours {
		c.workingHours[k] = v
	}
	for k, v := range d.blocked {
		c.blocked[k] = v
	}
	return c
}

func (d *data) id() uint {
	d.nextID++
	return d.nextID
}

type db struct {
	mu    sync.Mutex
	state *data
	now   func() time.Time
}

type Store struct {
	db   *db
	inTx bool
}

var _ booking.Store = (*Store)(nil)

func New() *Store {
	return &Store{db: &db{state: newData(), now: time.Now}}
}

// lock guards a single call outside a transaction. Inside one the lock is
// already held.
func (s *Store) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.db.mu.Lock()
	return s.db.mu.Unlock
}

func (s *Store) Transaction(ctx context.Context, fn func(tx booking.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	unlock := s.lock()
	defer unlock()

	snapshot := s.db.state.clone()
	if err := fn(&Store{db: s.db, inTx: true}); err != nil {
		s.db.state = snapshot
		return err
	}
	return nil
}

// PutUser seeds a user. IDs of zero are assigned.
func (s *Store) PutUser(u models.User) models.User {
	defer s.lock()()
	if u.ID == 0 {
		u.ID = s.db.state.id()
	} else if u.ID > s.db.state.nextID {
		s.db.state.nextID = u.ID
	}
	s.db.state.users[u.ID] = u
	return u
}

func (s *Store) IsBarber(_ context.Context, userID uint) (bool, error) {
	defer s.lock()()
	u, ok := s.db.state.users[userID]
	return ok && u.Role == models.RoleBarber, nil
}

func (s *Store) stamp(created, updated *time.Time) {
	now := s.db.now()
	if created != nil && created.IsZero() {
		*created = now
	}
	*updated = now
}

func hasStatus(s string, statuses []booking.Status) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, st := range statuses {
		if string(st) == s {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[uint]V) []uint {
	keys := make([]uint, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
