package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dafibh/fortuna/networth/internal/domain"
	"github.com/dafibh/fortuna/networth/internal/websocket"
)

// MockFinanceRepository is a mock implementation of domain.FinanceRepository.
// It keeps an encoded copy of the last saved aggregate so tests observe exactly what
// would have been persisted.
type MockFinanceRepository struct {
	mu        sync.Mutex
	Raw       []byte
	SaveCount int
	LoadErr   error
	SaveErr   error
}

// NewMockFinanceRepository creates an empty MockFinanceRepository
func NewMockFinanceRepository() *MockFinanceRepository {
	return &MockFinanceRepository{}
}

// NewMockFinanceRepositoryWith creates a MockFinanceRepository holding data
func NewMockFinanceRepositoryWith(data *domain.FinanceData) *MockFinanceRepository {
	raw, err := domain.EncodeFinanceData(data)
	if err != nil {
		panic(fmt.Sprintf("encode seed data: %v", err))
	}
	return &MockFinanceRepository{Raw: raw}
}

// Load returns the stored aggregate, or nil when nothing was saved
func (m *MockFinanceRepository) Load(ctx context.Context) (*domain.FinanceData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Raw == nil {
		return nil, nil
	}
	return domain.DecodeFinanceData(m.Raw)
}

// Save stores the aggregate
func (m *MockFinanceRepository) Save(ctx context.Context, data *domain.FinanceData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	raw, err := domain.EncodeFinanceData(data)
	if err != nil {
		return err
	}
	m.Raw = raw
	m.SaveCount++
	return nil
}

// Saved decodes the last saved aggregate
func (m *MockFinanceRepository) Saved() *domain.FinanceData {
	data, err := m.Load(context.Background())
	if err != nil || data == nil {
		return nil
	}
	return data
}

// FixedClock is a domain.Clock that returns a settable instant
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock creates a FixedClock at now
func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now}
}

// Now returns the current fixed instant
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to t
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the clock forward by d
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// RecordingPublisher is a websocket.EventPublisher that records every event
type RecordingPublisher struct {
	mu     sync.Mutex
	Events []websocket.Event
}

// NewRecordingPublisher creates an empty RecordingPublisher
func NewRecordingPublisher() *RecordingPublisher {
	return &RecordingPublisher{}
}

// Publish records the event
func (p *RecordingPublisher) Publish(event websocket.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, event)
}

// Types returns the recorded event types in order
func (p *RecordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.Events))
	for _, e := range p.Events {
		types = append(types, e.Type)
	}
	return types
}

// MockBackupRepository is a mock implementation of domain.BackupRepository
type MockBackupRepository struct {
	mu        sync.Mutex
	Objects   map[string][]byte
	UploadErr error
}

// NewMockBackupRepository creates an empty MockBackupRepository
func NewMockBackupRepository() *MockBackupRepository {
	return &MockBackupRepository{Objects: make(map[string][]byte)}
}

// Upload stores the object in memory
func (m *MockBackupRepository) Upload(ctx context.Context, name string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UploadErr != nil {
		return "", m.UploadErr
	}
	m.Objects[name] = append([]byte(nil), data...)
	return "mock://" + name, nil
}
