// pkg/climate/client.go

package climate

import (
	"context"
	"time"

	"github.com/m-u-l-a-s/ClimaMonitor-Backend/entities"
)

// Client fetches daily weather observations for a coordinate and an inclusive
// date range. Implementations must honor the context deadline and return an
// empty slice (not an error) when the source simply has no data for the range.
type Client interface {
	DailyTemperatures(ctx context.Context, lat, lon string, start, end time.Time) ([]entities.Temperature, error)
	DailyRainfall(ctx context.Context, lat, lon string, start, end time.Time) ([]entities.Rainfall, error)
}
