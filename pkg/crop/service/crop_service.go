package service

import (
	"context"

	"github.com/m-u-l-a-s/ClimaMonitor-Backend/entities"
)

// NewCrop carries the owner-supplied fields of a crop registration.
type NewCrop struct {
	ID             string
	Name           string
	Location       entities.Location
	TemperatureMin float64
	TemperatureMax float64
	RainfallMin    float64
	RainfallMax    float64
}

type CropService interface {
	Create(ctx context.Context, userID string, in NewCrop) (*entities.Crop, error)
	Get(ctx context.Context, userID, id string) (*entities.Crop, error)
	List(ctx context.Context, userID string) ([]entities.Crop, error)
	Update(ctx context.Context, userID, id string, in NewCrop) (*entities.Crop, error)
	Delete(ctx context.Context, userID, id string) error
}
