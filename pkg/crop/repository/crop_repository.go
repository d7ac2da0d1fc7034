package repository

import (
	"context"
	"errors"

	"github.com/m-u-l-a-s/ClimaMonitor-Backend/entities"
)

// ErrNotFound is returned when no crop matches the given id.
var ErrNotFound = errors.New("crop not found")

// CropRepository is the persistence port for crops. Finders that report
// tombstones say so explicitly: delta building needs soft-deleted rows,
// everything else does not.
type CropRepository interface {
	Insert(ctx context.Context, c *entities.Crop) error
	Update(ctx context.Context, c *entities.Crop) error
	FindByID(ctx context.Context, id string) (*entities.Crop, error)
	// FindByUser returns every crop owned by the user, tombstones included.
	FindByUser(ctx context.Context, userID string) ([]entities.Crop, error)
	// FindLiveByUser returns only non-deleted crops owned by the user.
	FindLiveByUser(ctx context.Context, userID string) ([]entities.Crop, error)
}
