package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/campverse/camp-booking/internal/model"
	"github.com/google/uuid"
)

// DefaultLockWait bounds how long a reservation waits for a contended
// unit before failing with model.ErrInventoryUnavailable.
const DefaultLockWait = 3 * time.Second

// MemoryStore keeps the whole catalog and all seat counters in process.
// It implements both Catalog and Ledger over the same unit records, so
// a reservation is immediately visible to the next GetUnit.
type MemoryStore struct {
	mu       sync.RWMutex
	camps    map[string]model.Camp
	units    map[string]*unitRecord
	tokens   map[model.ReservationToken]string
	lockWait time.Duration
}

// unitRecord guards one unit's state behind a size-1 semaphore. The
// semaphore (rather than a mutex) lets acquisition carry a deadline.
type unitRecord struct {
	sem  chan struct{}
	unit model.Unit
}

// NewMemoryStore returns an empty store with the default lock wait.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		camps:    make(map[string]model.Camp),
		units:    make(map[string]*unitRecord),
		tokens:   make(map[model.ReservationToken]string),
		lockWait: DefaultLockWait,
	}
}

// SetLockWait overrides the per-unit lock acquisition timeout.
func (m *MemoryStore) SetLockWait(d time.Duration) {
	m.lockWait = d
}

// AddCamp publishes a camp.
func (m *MemoryStore) AddCamp(c model.Camp) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.camps[c.ID] = c
}

// AddUnit publishes a bookable unit.
func (m *MemoryStore) AddUnit(u model.Unit) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.units[u.ID] = &unitRecord{sem: make(chan struct{}, 1), unit: u}
}

// GetCamp implements Catalog.
func (m *MemoryStore) GetCamp(ctx context.Context, id string) (*model.Camp, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.camps[id]
	if !ok {
		return nil, model.ErrCampNotFound
	}
	return &c, nil
}

// GetUnit implements Catalog. The returned unit is a copy; callers
// never see counters move underneath them.
func (m *MemoryStore) GetUnit(ctx context.Context, id string) (*model.Unit, error) {
	rec, err := m.record(id)
	if err != nil {
		return nil, err
	}
	if err := m.acquire(ctx, rec); err != nil {
		return nil, err
	}
	u := rec.unit
	m.releaseLock(rec)
	return &u, nil
}

// ListUnits implements Catalog. Each unit is snapshotted under its own
// semaphore so counter reads never race with an in-flight reservation.
func (m *MemoryStore) ListUnits(ctx context.Context, campID string) ([]model.Unit, error) {
	m.mu.RLock()
	var recs []*unitRecord
	for _, rec := range m.units {
		recs = append(recs, rec)
	}
	m.mu.RUnlock()

	var units []model.Unit
	for _, rec := range recs {
		if err := m.acquire(ctx, rec); err != nil {
			return nil, err
		}
		u := rec.unit
		m.releaseLock(rec)
		if u.CampID == campID {
			units = append(units, u)
		}
	}

	sort.Slice(units, func(i, j int) bool {
		return units[i].StartDate.Before(units[j].StartDate)
	})
	return units, nil
}

// Reserve implements Ledger. The capacity check and the increment
// happen under the unit's semaphore, so two racing calls for the last
// seat can never both succeed.
func (m *MemoryStore) Reserve(ctx context.Context, unitID string) (model.ReservationToken, error) {
	rec, err := m.record(unitID)
	if err != nil {
		return "", err
	}
	if err := m.acquire(ctx, rec); err != nil {
		return "", err
	}
	defer m.releaseLock(rec)

	u := &rec.unit
	if u.SeatsTotal <= 0 || u.SeatsBooked < 0 || u.SeatsBooked > u.SeatsTotal {
		return "", fmt.Errorf("%w: unit %s booked=%d total=%d",
			model.ErrInvalidInventory, unitID, u.SeatsBooked, u.SeatsTotal)
	}
	if u.SeatsBooked == u.SeatsTotal {
		return "", model.ErrSoldOut
	}
	u.SeatsBooked++

	token := model.ReservationToken(uuid.New().String())
	m.mu.Lock()
	m.tokens[token] = unitID
	m.mu.Unlock()
	return token, nil
}

// Release implements Ledger. The token survives until the unit lock is
// held: a transient acquire failure leaves it valid so the release can
// be retried, while consume-and-decrement under the lock keeps a double
// release failing on the second call without decrementing twice.
func (m *MemoryStore) Release(ctx context.Context, token model.ReservationToken) error {
	m.mu.RLock()
	unitID, ok := m.tokens[token]
	m.mu.RUnlock()
	if !ok {
		return model.ErrInvalidToken
	}

	rec, err := m.record(unitID)
	if err != nil {
		return err
	}
	if err := m.acquire(ctx, rec); err != nil {
		return err
	}
	defer m.releaseLock(rec)

	m.mu.Lock()
	_, ok = m.tokens[token]
	if ok {
		delete(m.tokens, token)
	}
	m.mu.Unlock()
	if !ok {
		return model.ErrInvalidToken
	}

	if rec.unit.SeatsBooked <= 0 {
		return fmt.Errorf("%w: release on unit %s with booked=%d",
			model.ErrInvalidInventory, unitID, rec.unit.SeatsBooked)
	}
	rec.unit.SeatsBooked--
	return nil
}

func (m *MemoryStore) record(unitID string) (*unitRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.units[unitID]
	if !ok {
		return nil, model.ErrUnitNotFound
	}
	return rec, nil
}

func (m *MemoryStore) acquire(ctx context.Context, rec *unitRecord) error {
	select {
	case rec.sem <- struct{}{}:
		return nil
	case <-time.After(m.lockWait):
		return model.ErrInventoryUnavailable
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", model.ErrInventoryUnavailable, ctx.Err())
	}
}

func (m *MemoryStore) releaseLock(rec *unitRecord) {
	<-rec.sem
}
