package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dafibh/fortuna/networth/internal/domain"
	"github.com/dafibh/fortuna/networth/internal/service"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	runs atomic.Int32
	err  error
}

func (j *countingJob) Run() error {
	j.runs.Add(1)
	return j.err
}

func (j *countingJob) Name() string {
	return "counting"
}

func TestScheduler_AddJob_InvalidSchedule(t *testing.T) {
	s := New(zerolog.Nop(), time.UTC)

	err := s.AddJob("not a schedule", &countingJob{})
	assert.Error(t, err)
}

func TestScheduler_RunsJobs(t *testing.T) {
	s := New(zerolog.Nop(), time.UTC)
	job := &countingJob{err: errors.New("failing jobs keep their schedule")}
	require.NoError(t, s.AddJob("@every 1s", job))

	s.Start()
	defer s.Stop()

	require.Eventually(t, func() bool {
		return job.runs.Load() >= 2
	}, 5*time.Second, 50*time.Millisecond)
}

func TestScheduler_RunNow(t *testing.T) {
	s := New(zerolog.Nop(), nil)
	job := &countingJob{}

	require.NoError(t, s.RunNow(job))
	assert.Equal(t, int32(1), job.runs.Load())
}

type stubBackupper struct {
	err error
}

func (b *stubBackupper) Backup(ctx context.Context) (*service.BackupResult, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &service.BackupResult{Key: "k", Location: "s3://bucket/k", Size: 10}, nil
}

type stubNotifier struct {
	due []domain.DueTransaction
	err error
}

func (n *stubNotifier) NotifyDue(ctx context.Context) ([]domain.DueTransaction, error) {
	return n.due, n.err
}

func TestBackupJob(t *testing.T) {
	job := NewBackupJob(&stubBackupper{}, zerolog.Nop())
	assert.Equal(t, "backup", job.Name())
	assert.NoError(t, job.Run())

	failing := NewBackupJob(&stubBackupper{err: errors.New("offline")}, zerolog.Nop())
	assert.EqualError(t, failing.Run(), "offline")
}

func TestDueReminderJob(t *testing.T) {
	job := NewDueReminderJob(&stubNotifier{due: []domain.DueTransaction{{Overdue: true}, {}}}, zerolog.Nop())
	assert.Equal(t, "due_reminder", job.Name())
	assert.NoError(t, job.Run())

	failing := NewDueReminderJob(&stubNotifier{err: errors.New("load failed")}, zerolog.Nop())
	assert.Error(t, failing.Run())
}
