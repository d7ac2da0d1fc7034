// pkg/climate/mock_client.go

package climate

import (
	"context"
	"time"

	"github.com/m-u-l-a-s/ClimaMonitor-Backend/entities"
)

type mockClient struct{}

// NewMock returns a client with deterministic canned observations so the
// server can run without network access.
func NewMock() Client { return &mockClient{} }

func (m *mockClient) DailyTemperatures(ctx context.Context, lat, lon string, start, end time.Time) ([]entities.Temperature, error) {
	out := []entities.Temperature{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, entities.Temperature{Date: d.Format(entities.DateLayout), Avg: 24, Min: 18, Max: 30})
	}
	return out, nil
}

func (m *mockClient) DailyRainfall(ctx context.Context, lat, lon string, start, end time.Time) ([]entities.Rainfall, error) {
	out := []entities.Rainfall{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, entities.Rainfall{Date: d.Format(entities.DateLayout), Mm: 5})
	}
	return out, nil
}
