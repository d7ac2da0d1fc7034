package serviceImp

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m-u-l-a-s/ClimaMonitor-Backend/entities"
	"github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/catalog"
	"github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/crop/repository"
	"github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/crop/service"
	"github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/weather"
)

// ErrNotOwner is returned when a crop exists but belongs to another user.
// Controllers report it the same way as a missing crop.
var ErrNotOwner = errors.New("crop not owned by user")

type cropSvc struct {
	crops   repository.CropRepository
	refresh *weather.RefreshService
	presets *catalog.Catalog
	now     func() time.Time
}

func New(crops repository.CropRepository, refresh *weather.RefreshService, presets *catalog.Catalog) service.CropService {
	return &cropSvc{crops: crops, refresh: refresh, presets: presets, now: time.Now}
}

// Create registers a crop and kicks off a best-effort weather backfill for
// today. When the owner supplies no thresholds, the species catalog fills in
// defaults matched by name.
func (s *cropSvc) Create(ctx context.Context, userID string, in service.NewCrop) (*entities.Crop, error) {
	id := in.ID
	if id == "" {
		id = uuid.NewString()
	}
	crop := &entities.Crop{
		ID:                id,
		UserID:            userID,
		Name:              in.Name,
		Location:          in.Location,
		TemperatureMin:    in.TemperatureMin,
		TemperatureMax:    in.TemperatureMax,
		RainfallMin:       in.RainfallMin,
		RainfallMax:       in.RainfallMax,
		Temperatures:      []entities.Temperature{},
		Rainfalls:         []entities.Rainfall{},
		TemperatureAlerts: []entities.Temperature{},
		RainfallAlerts:    []entities.Rainfall{},
		CreatedAt:         s.now(),
	}
	if crop.TemperatureMin == 0 && crop.TemperatureMax == 0 && crop.RainfallMin == 0 && crop.RainfallMax == 0 {
		if tol, ok := s.presets.Lookup(crop.Name); ok {
			crop.TemperatureMin = tol.TemperatureMin
			crop.TemperatureMax = tol.TemperatureMax
			crop.RainfallMin = tol.RainfallMin
			crop.RainfallMax = tol.RainfallMax
		}
	}
	if err := s.crops.Insert(ctx, crop); err != nil {
		return nil, err
	}
	return s.refresh.RefreshIfStale(ctx, crop.ID, s.now())
}

func (s *cropSvc) Get(ctx context.Context, userID, id string) (*entities.Crop, error) {
	return s.owned(ctx, userID, id)
}

func (s *cropSvc) List(ctx context.Context, userID string) ([]entities.Crop, error) {
	return s.crops.FindLiveByUser(ctx, userID)
}

func (s *cropSvc) Update(ctx context.Context, userID, id string, in service.NewCrop) (*entities.Crop, error) {
	crop, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	crop.Name = in.Name
	crop.TemperatureMin = in.TemperatureMin
	crop.TemperatureMax = in.TemperatureMax
	crop.RainfallMin = in.RainfallMin
	crop.RainfallMax = in.RainfallMax
	crop.Location = in.Location
	crop.LastUpdate = s.now()
	if err := s.crops.Update(ctx, crop); err != nil {
		return nil, err
	}
	return crop, nil
}

func (s *cropSvc) Delete(ctx context.Context, userID, id string) error {
	crop, err := s.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	if crop.Deleted() {
		return nil
	}
	now := s.now()
	crop.Temperatures = []entities.Temperature{}
	crop.Rainfalls = []entities.Rainfall{}
	crop.TemperatureAlerts = []entities.Temperature{}
	crop.RainfallAlerts = []entities.Rainfall{}
	crop.DeletedAt = &now
	return s.crops.Update(ctx, crop)
}

func (s *cropSvc) owned(ctx context.Context, userID, id string) (*entities.Crop, error) {
	crop, err := s.crops.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if crop.UserID != userID {
		return nil, ErrNotOwner
	}
	return crop, nil
}
