package service

import (
	"context"

	"github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/sync/types"
)

// SyncService is the top-level pull/push coordinator. lastPulledAt is the
// client watermark in Unix-epoch seconds; nil means a full initial sync and is
// distinct from zero.
type SyncService interface {
	Pull(ctx context.Context, userID string, lastPulledAt *int64) (*types.PullResponse, error)
	Push(ctx context.Context, userID string, changes types.Changes) (*types.PushResponse, error)
}
