package weather

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/m-u-l-a-s/ClimaMonitor-Backend/entities"
	"github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/climate"
	"github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/crop/repository"
)

// RefreshService brings a crop's weather series up to date, at most once per
// calendar day and at most one in-flight refresh per crop id. Climate source
// failures degrade to "no new data": the freshness watermark still advances so
// a failing source is not hammered on every sync the same day.
type RefreshService struct {
	climate climate.Client
	crops   repository.CropRepository
	loc     *time.Location

	mu       sync.Mutex
	inflight map[string]*cropLock
}

type cropLock struct {
	mu   sync.Mutex
	refs int
}

func NewRefreshService(c climate.Client, r repository.CropRepository, loc *time.Location) *RefreshService {
	return &RefreshService{
		climate:  c,
		crops:    r,
		loc:      loc,
		inflight: make(map[string]*cropLock),
	}
}

// lock serializes refresh-then-persist per crop id. Slots are reference
// counted so the arena does not grow with every crop ever refreshed.
func (s *RefreshService) lock(id string) func() {
	s.mu.Lock()
	slot, ok := s.inflight[id]
	if !ok {
		slot = &cropLock{}
		s.inflight[id] = slot
	}
	slot.refs++
	s.mu.Unlock()

	slot.mu.Lock()
	return func() {
		slot.mu.Unlock()
		s.mu.Lock()
		slot.refs--
		if slot.refs == 0 {
			delete(s.inflight, id)
		}
		s.mu.Unlock()
	}
}

// RefreshIfStale fetches the observations missing since the crop's last
// refresh and merges them in. It re-reads the crop under the per-id lock so
// concurrent pulls from two devices see each other's merge. Only store
// failures are returned as errors.
func (s *RefreshService) RefreshIfStale(ctx context.Context, id string, now time.Time) (*entities.Crop, error) {
	unlock := s.lock(id)
	defer unlock()

	crop, err := s.crops.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if crop.Deleted() {
		return crop, nil
	}

	today := now.In(s.loc)
	todayDate := today.Format(entities.DateLayout)
	if !crop.LastUpdate.IsZero() && crop.LastUpdate.In(s.loc).Format(entities.DateLayout) == todayDate {
		return crop, nil // already refreshed today
	}

	start := startOfDay(today, s.loc)
	if !crop.LastUpdate.IsZero() {
		start = startOfDay(crop.LastUpdate.In(s.loc), s.loc).AddDate(0, 0, 1)
	}

	temps, err := s.climate.DailyTemperatures(ctx, crop.Location.Latitude, crop.Location.Longitude, start, today)
	if err != nil {
		log.Printf("[weather] temperature fetch %s: %v", id, err)
		temps = nil
	}
	rains, err := s.climate.DailyRainfall(ctx, crop.Location.Latitude, crop.Location.Longitude, start, today)
	if err != nil {
		log.Printf("[weather] rainfall fetch %s: %v", id, err)
		rains = nil
	}

	crop.Temperatures, crop.TemperatureAlerts = Merge(
		crop.Temperatures, crop.TemperatureAlerts, temps,
		TemperatureDate, TemperatureBreach(crop.TemperatureMin, crop.TemperatureMax))
	crop.Rainfalls, crop.RainfallAlerts = Merge(
		crop.Rainfalls, crop.RainfallAlerts, rains,
		RainfallDate, RainfallBreach(crop.RainfallMin, crop.RainfallMax))

	crop.LastUpdate = now
	if err := s.crops.Update(ctx, crop); err != nil {
		return nil, err
	}
	return crop, nil
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
