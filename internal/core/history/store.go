package history

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sadopc/qrdeck/internal/common"
	"github.com/sadopc/qrdeck/internal/logging"
)

// MaxEntries bounds the log. Appending past it evicts the oldest record.
const MaxEntries = 100

// Store owns the scan/generate log: newest record first, at most
// MaxEntries long. All access goes through one mutex and every mutation
// persists the full log before the lock is released.
type Store struct {
	mu       sync.Mutex
	backend  Backend
	records  []Record
	degraded error

	log   logging.Logger
	now   func() time.Time
	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report storage failures.
func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithClock overrides the time source for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a store over backend and loads the persisted log. A
// backend that cannot be read leaves the store running in memory; the
// failure is reported by Degraded. A nil backend means memory only.
func NewStore(backend Backend, opts ...Option) *Store {
	if backend == nil {
		backend = NewMemoryBackend()
	}
	s := &Store{
		backend: backend,
		log:     logging.Nop(),
		now:     time.Now,
		newID:   newID,
	}
	for _, opt := range opts {
		opt(s)
	}

	recs, err := backend.Load()
	switch {
	case errors.Is(err, ErrCorruptLog):
		s.log.Warn(context.Background(), "discarding unreadable history", "err", err)
	case err != nil:
		s.degraded = err
		s.log.Warn(context.Background(), "history storage unavailable, using memory", "err", err)
	default:
		s.records = recs
	}
	return s
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Append records text at the front of the log and evicts the oldest
// record if the log grows past MaxEntries. Text is stored as given; it
// only has to be non-blank. When persisting fails the record is still
// kept in memory and returned together with an ErrStorageUnavailable error.
func (s *Store) Append(text string, origin Origin) (Record, error) {
	if strings.TrimSpace(text) == "" {
		return Record{}, fmt.Errorf("%w: text is empty", common.ErrInvalidInput)
	}
	if !origin.Valid() {
		return Record{}, fmt.Errorf("%w: unknown origin %q", common.ErrInvalidInput, origin)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := Record{
		ID:        s.newID(),
		Text:      text,
		CreatedAt: s.now().UTC(),
		Origin:    origin,
	}

	next := make([]Record, 0, min(len(s.records)+1, MaxEntries))
	next = append(next, rec)
	next = append(next, s.records...)
	if len(next) > MaxEntries {
		next = next[:MaxEntries]
	}
	s.records = next

	return rec, s.persistLocked(s.backend.Save(s.records))
}

// List returns a snapshot of the log, newest first.
func (s *Store) List() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// FindByText returns the most recent record whose text equals text.
func (s *Store) FindByText(text string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.records {
		if r.Text == text {
			return r, true
		}
	}
	return Record{}, false
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.records {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

// Remove deletes the record with the given id. Unknown ids are ignored.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, r := range s.records {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	next := make([]Record, 0, len(s.records)-1)
	next = append(next, s.records[:idx]...)
	next = append(next, s.records[idx+1:]...)
	s.records = next

	return s.persistLocked(s.backend.Save(s.records))
}

// Clear empties the log.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	return s.persistLocked(s.backend.Reset())
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Degraded returns the last storage error, or nil if the most recent
// load or write reached the backend.
func (s *Store) Degraded() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

func (s *Store) persistLocked(err error) error {
	if err != nil {
		s.degraded = err
		s.log.Warn(context.Background(), "persisting history failed", "err", err, "len", len(s.records))
		return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	s.degraded = nil
	return nil
}
