package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dafibh/fortuna/networth/internal/domain"
	"github.com/dafibh/fortuna/networth/internal/websocket"
	"github.com/rs/zerolog"
)

// Mutation changes data in place. It reports whether any asset, liability or credit card
// balance may have changed, which is what makes the history tracker look at the result.
type Mutation func(data *domain.FinanceData, now time.Time) (accountsChanged bool, err error)

// ApplyMutation runs m against a copy of state. On error state is returned untouched
// along with the error; on success the new state carries any snapshot the change earned.
func ApplyMutation(state *domain.FinanceData, m Mutation, now time.Time) (*domain.FinanceData, *domain.NetWorthSnapshot, error) {
	next := state.Clone()
	accountsChanged, err := m(next, now)
	if err != nil {
		return state, nil, err
	}
	if !accountsChanged {
		return next, nil, nil
	}
	if snapshot, ok := MaybeAppendSnapshot(state, next, now); ok {
		return next, &snapshot, nil
	}
	return next, nil, nil
}

// Store owns the single FinanceData aggregate. Every operation runs to completion under
// its mutex; the aggregate is replaced copy-on-write and persisted before it becomes
// visible to readers.
type Store struct {
	mu             sync.Mutex
	repo           domain.FinanceRepository
	clock          domain.Clock
	eventPublisher websocket.EventPublisher
	logger         zerolog.Logger
	data           *domain.FinanceData
}

// NewStore creates a new Store
func NewStore(repo domain.FinanceRepository, clock domain.Clock, logger zerolog.Logger) *Store {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &Store{
		repo:   repo,
		clock:  clock,
		logger: logger.With().Str("component", "store").Logger(),
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *Store) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// publishEvent publishes a WebSocket event if a publisher is configured
func (s *Store) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

// Now returns the store clock's current time
func (s *Store) Now() time.Time {
	return s.clock.Now()
}

// Load reads the aggregate from the repository, starting empty when nothing is stored
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) error {
	data, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load finance data: %w", err)
	}
	if data == nil {
		data = domain.NewFinanceData()
	}
	data.Normalize()
	s.data = data

	s.logger.Debug().
		Int("assets", len(data.Assets)).
		Int("liabilities", len(data.Liabilities)).
		Int("credit_cards", len(data.CreditCards)).
		Int("transactions", len(data.Transactions)).
		Int("snapshots", len(data.NetWorthHistory)).
		Msg("Finance data loaded")
	return nil
}

func (s *Store) ensureLoaded(ctx context.Context) error {
	if s.data != nil {
		return nil
	}
	return s.load(ctx)
}

// Read returns a private copy of the current aggregate
func (s *Store) Read(ctx context.Context) (*domain.FinanceData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return s.data.Clone(), nil
}

// Mutate applies m, persists the result and commits it. The returned snapshot is the
// history entry appended by this mutation, if any. A failed mutation or save leaves the
// committed aggregate untouched.
func (s *Store) Mutate(ctx context.Context, m Mutation) (*domain.NetWorthSnapshot, error) {
	s.mu.Lock()
	if err := s.ensureLoaded(ctx); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	next, snapshot, err := ApplyMutation(s.data, m, s.clock.Now())
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if err := s.repo.Save(ctx, next); err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("failed to save finance data: %w", err)
	}
	s.data = next
	s.mu.Unlock()

	if snapshot != nil {
		s.logger.Debug().
			Str("net_worth", snapshot.NetWorth.String()).
			Time("date", snapshot.Date).
			Msg("Net worth snapshot appended")
		s.publishEvent(websocket.SnapshotAppended(*snapshot))
	}
	return snapshot, nil
}

// FailurePayload is the payload of a <entity>.failed event
type FailurePayload struct {
	Operation string `json:"operation"`
	Error     string `json:"error"`
}

// publishFailure tells listeners an operation was rejected
func (s *Store) publishFailure(entity websocket.EntityType, operation string, err error) {
	s.publishEvent(websocket.OperationFailed(entity, FailurePayload{Operation: operation, Error: err.Error()}))
}
