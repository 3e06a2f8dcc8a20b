package domain

import (
	"context"
	"time"
)

// FinanceRepository persists the whole aggregate as one blob.
// Load returns nil, nil when nothing has been stored yet.
type FinanceRepository interface {
	Load(ctx context.Context) (*FinanceData, error)
	Save(ctx context.Context, data *FinanceData) error
}

// BackupRepository stores export blobs outside the primary storage
type BackupRepository interface {
	Upload(ctx context.Context, name string, data []byte) (string, error)
}

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in Location, or in the local zone when Location is nil
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}
