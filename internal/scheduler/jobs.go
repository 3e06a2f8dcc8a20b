package scheduler

import (
	"context"
	"time"

	"github.com/dafibh/fortuna/networth/internal/domain"
	"github.com/dafibh/fortuna/networth/internal/service"
	"github.com/rs/zerolog"
)

// jobTimeout bounds a single job run
const jobTimeout = 2 * time.Minute

// Backupper takes a backup of the tracker
type Backupper interface {
	Backup(ctx context.Context) (*service.BackupResult, error)
}

// DueNotifier publishes the list of due transactions
type DueNotifier interface {
	NotifyDue(ctx context.Context) ([]domain.DueTransaction, error)
}

// BackupJob uploads an export on schedule
type BackupJob struct {
	backups Backupper
	log     zerolog.Logger
}

// NewBackupJob creates a new BackupJob
func NewBackupJob(backups Backupper, log zerolog.Logger) *BackupJob {
	return &BackupJob{
		backups: backups,
		log:     log.With().Str("job", "backup").Logger(),
	}
}

// Name implements Job
func (j *BackupJob) Name() string {
	return "backup"
}

// Run implements Job
func (j *BackupJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	result, err := j.backups.Backup(ctx)
	if err != nil {
		return err
	}

	j.log.Info().
		Str("location", result.Location).
		Int("bytes", result.Size).
		Msg("Backup uploaded")
	return nil
}

// DueReminderJob pushes the due list to connected clients
type DueReminderJob struct {
	notifier DueNotifier
	log      zerolog.Logger
}

// NewDueReminderJob creates a new DueReminderJob
func NewDueReminderJob(notifier DueNotifier, log zerolog.Logger) *DueReminderJob {
	return &DueReminderJob{
		notifier: notifier,
		log:      log.With().Str("job", "due_reminder").Logger(),
	}
}

// Name implements Job
func (j *DueReminderJob) Name() string {
	return "due_reminder"
}

// Run implements Job
func (j *DueReminderJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	due, err := j.notifier.NotifyDue(ctx)
	if err != nil {
		return err
	}

	overdue := 0
	for _, d := range due {
		if d.Overdue {
			overdue++
		}
	}
	j.log.Info().
		Int("due", len(due)).
		Int("overdue", overdue).
		Msg("Due transactions checked")
	return nil
}
