package serviceImp

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m-u-l-a-s/ClimaMonitor-Backend/entities"
	"github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/crop/repository"
	"github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/sync/service"
	"github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/sync/types"
	"github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/weather"
)

type syncSvc struct {
	crops   repository.CropRepository
	refresh *weather.RefreshService
	loc     *time.Location
	now     func() time.Time
}

func New(crops repository.CropRepository, refresh *weather.RefreshService, loc *time.Location) service.SyncService {
	return &syncSvc{crops: crops, refresh: refresh, loc: loc, now: time.Now}
}

// Pull refreshes every live crop of the user, then reports the delta since
// lastPulledAt and stamps the response with the instant the client must
// present on its next pull. Store failures abort the pull; climate source
// failures do not (they degrade to stale weather data inside the refresh).
func (s *syncSvc) Pull(ctx context.Context, userID string, lastPulledAt *int64) (*types.PullResponse, error) {
	live, err := s.crops.FindLiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var wg sync.WaitGroup
	errCh := make(chan error, len(live))
	for i := range live {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if _, err := s.refresh.RefreshIfStale(ctx, id, now); err != nil {
				errCh <- err
			}
		}(live[i].ID)
	}
	wg.Wait()
	close(errCh)
	if err := <-errCh; err != nil {
		return nil, err
	}

	all, err := s.crops.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &types.PullResponse{
		Changes:   buildChanges(all, lastPulledAt, s.loc),
		Timestamp: s.now().Unix(),
	}, nil
}

// Push applies the client batch in create, update, delete order so a record
// created and deleted in the same batch ends up tombstoned. Only the Cultura
// collection is authoritative input; child rows are regenerated server-side
// and ignored here. Store failures abort the batch; unknown or malformed ids
// are reported per item.
func (s *syncSvc) Push(ctx context.Context, userID string, changes types.Changes) (*types.PushResponse, error) {
	resp := &types.PushResponse{Failures: []types.PushFailure{}}
	now := s.now()

	for _, row := range changes.Crops.Created {
		if err := s.applyCreate(ctx, userID, row, now, resp); err != nil {
			return nil, err
		}
	}
	for _, row := range changes.Crops.Updated {
		if err := s.applyUpdate(ctx, userID, row, now, resp); err != nil {
			return nil, err
		}
	}
	for _, id := range changes.Crops.Deleted {
		if err := s.applyDelete(ctx, userID, id, now, resp); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

// applyCreate upserts by id: replaying a push with the same client-chosen id
// must not produce a duplicate. Location and createdAt stay as first written.
func (s *syncSvc) applyCreate(ctx context.Context, userID string, row types.CropRow, now time.Time, resp *types.PushResponse) error {
	id := row.CropID
	if id == "" {
		id = uuid.NewString()
	} else if !validID(id) {
		resp.Failures = append(resp.Failures, types.PushFailure{Collection: "Cultura", ID: row.CropID, Reason: "invalid id"})
		return nil
	}

	existing, err := s.crops.FindByID(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		crop := &entities.Crop{
			ID:                id,
			UserID:            userID,
			Name:              row.Name,
			Location:          entities.Location{Latitude: row.Latitude, Longitude: row.Longitude},
			TemperatureMin:    row.TemperatureMin,
			TemperatureMax:    row.TemperatureMax,
			RainfallMin:       row.RainfallMin,
			RainfallMax:       row.RainfallMax,
			Temperatures:      []entities.Temperature{},
			Rainfalls:         []entities.Rainfall{},
			TemperatureAlerts: []entities.Temperature{},
			RainfallAlerts:    []entities.Rainfall{},
			CreatedAt:         now,
		}
		if err := s.crops.Insert(ctx, crop); err != nil {
			return err
		}
		// initial best-effort backfill for today
		if _, err := s.refresh.RefreshIfStale(ctx, id, now); err != nil {
			return err
		}
		resp.Applied++
		return nil
	case err != nil:
		return err
	}

	if existing.UserID != userID {
		resp.Failures = append(resp.Failures, types.PushFailure{Collection: "Cultura", ID: id, Reason: "not found"})
		return nil
	}
	applyMutable(existing, row)
	existing.LastUpdate = now
	if err := s.crops.Update(ctx, existing); err != nil {
		return err
	}
	resp.Applied++
	return nil
}

func (s *syncSvc) applyUpdate(ctx context.Context, userID string, row types.CropRow, now time.Time, resp *types.PushResponse) error {
	if !validID(row.CropID) {
		resp.Failures = append(resp.Failures, types.PushFailure{Collection: "Cultura", ID: row.CropID, Reason: "invalid id"})
		return nil
	}
	crop, err := s.crops.FindByID(ctx, row.CropID)
	if errors.Is(err, repository.ErrNotFound) {
		resp.Failures = append(resp.Failures, types.PushFailure{Collection: "Cultura", ID: row.CropID, Reason: "not found"})
		return nil
	}
	if err != nil {
		return err
	}
	if crop.UserID != userID {
		resp.Failures = append(resp.Failures, types.PushFailure{Collection: "Cultura", ID: row.CropID, Reason: "not found"})
		return nil
	}
	if crop.Deleted() {
		resp.Failures = append(resp.Failures, types.PushFailure{Collection: "Cultura", ID: row.CropID, Reason: "deleted"})
		return nil
	}
	applyMutable(crop, row)
	crop.LastUpdate = now
	if err := s.crops.Update(ctx, crop); err != nil {
		return err
	}
	resp.Applied++
	return nil
}

func (s *syncSvc) applyDelete(ctx context.Context, userID string, id string, now time.Time, resp *types.PushResponse) error {
	if !validID(id) {
		resp.Failures = append(resp.Failures, types.PushFailure{Collection: "Cultura", ID: id, Reason: "invalid id"})
		return nil
	}
	crop, err := s.crops.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		resp.Failures = append(resp.Failures, types.PushFailure{Collection: "Cultura", ID: id, Reason: "not found"})
		return nil
	}
	if err != nil {
		return err
	}
	if crop.UserID != userID {
		resp.Failures = append(resp.Failures, types.PushFailure{Collection: "Cultura", ID: id, Reason: "not found"})
		return nil
	}
	if crop.Deleted() {
		resp.Applied++ // idempotent replay
		return nil
	}
	// tombstone: history is cleared to shrink the payload, the row stays
	// queryable for delta reporting
	crop.Temperatures = []entities.Temperature{}
	crop.Rainfalls = []entities.Rainfall{}
	crop.TemperatureAlerts = []entities.Temperature{}
	crop.RainfallAlerts = []entities.Rainfall{}
	crop.DeletedAt = &now
	if err := s.crops.Update(ctx, crop); err != nil {
		return err
	}
	resp.Applied++
	return nil
}

// applyMutable copies the owner-editable fields only; series, alerts and
// timestamps are never accepted from the client.
func applyMutable(crop *entities.Crop, row types.CropRow) {
	crop.Name = row.Name
	crop.TemperatureMin = row.TemperatureMin
	crop.TemperatureMax = row.TemperatureMax
	crop.RainfallMin = row.RainfallMin
	crop.RainfallMax = row.RainfallMax
	crop.Location = entities.Location{Latitude: row.Latitude, Longitude: row.Longitude}
}

func validID(id string) bool {
	return id != "" && len(id) <= 64 && !strings.ContainsAny(id, " \t\n")
}
