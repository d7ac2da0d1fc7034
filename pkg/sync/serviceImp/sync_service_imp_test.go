package serviceImp

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/m-u-l-a-s/ClimaMonitor-Backend/entities"
	"github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/crop/repository"
	"github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/sync/types"
	"github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/weather"
)

type memRepo struct {
	mu    sync.Mutex
	crops map[string]*entities.Crop
}

func newMemRepo(crops ...*entities.Crop) *memRepo {
	r := &memRepo{crops: map[string]*entities.Crop{}}
	for _, c := range crops {
		cp := *c
		r.crops[c.ID] = &cp
	}
	return r
}

func (r *memRepo) Insert(ctx context.Context, c *entities.Crop) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.crops[c.ID] = &cp
	return nil
}

func (r *memRepo) Update(ctx context.Context, c *entities.Crop) error {
	return r.Insert(ctx, c)
}

func (r *memRepo) FindByID(ctx context.Context, id string) (*entities.Crop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.crops[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memRepo) FindByUser(ctx context.Context, userID string) ([]entities.Crop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.Crop
	for _, c := range r.crops {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memRepo) FindLiveByUser(ctx context.Context, userID string) ([]entities.Crop, error) {
	all, _ := r.FindByUser(ctx, userID)
	out := all[:0]
	for _, c := range all {
		if !c.Deleted() {
			out = append(out, c)
		}
	}
	return out, nil
}

// stubClimate returns one observation per requested day.
type stubClimate struct{}

func (stubClimate) DailyTemperatures(ctx context.Context, lat, lon string, start, end time.Time) ([]entities.Temperature, error) {
	var out []entities.Temperature
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, entities.Temperature{Date: d.Format(entities.DateLayout), Avg: 24, Min: 18, Max: 30})
	}
	return out, nil
}

func (stubClimate) DailyRainfall(ctx context.Context, lat, lon string, start, end time.Time) ([]entities.Rainfall, error) {
	var out []entities.Rainfall
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, entities.Rainfall{Date: d.Format(entities.DateLayout), Mm: 5})
	}
	return out, nil
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestSvc(repo *memRepo, base time.Time) *syncSvc {
	return &syncSvc{
		crops:   repo,
		refresh: weather.NewRefreshService(stubClimate{}, repo, time.UTC),
		loc:     time.UTC,
		now:     (&fakeClock{t: base}).Now,
	}
}

func TestPull_InitialSyncThenEmptyDelta(t *testing.T) {
	yesterday := time.Date(2024, 1, 4, 10, 0, 0, 0, time.UTC)
	repo := newMemRepo(&entities.Crop{
		ID: "c1", UserID: "u1", Name: "Milho",
		Location:       entities.Location{Latitude: "-23.5505", Longitude: "-46.6333"},
		TemperatureMin: 15, TemperatureMax: 35,
		RainfallMin: 30, RainfallMax: 100,
		CreatedAt: yesterday,
	})
	svc := newTestSvc(repo, time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC))

	first, err := svc.Pull(context.Background(), "u1", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(first.Changes.Crops.Created) != 1 {
		t.Fatalf("initial pull created = %d, want 1", len(first.Changes.Crops.Created))
	}
	if len(first.Changes.Crops.Updated)+len(first.Changes.Crops.Deleted) != 0 {
		t.Fatal("initial pull must have empty updated/deleted")
	}
	if len(first.Changes.Temperatures.Created) == 0 {
		t.Fatal("pull must refresh the crop before building changes")
	}

	second, err := svc.Pull(context.Background(), "u1", &first.Timestamp)
	if err != nil {
		t.Fatal(err)
	}
	ch := second.Changes
	empty := len(ch.Crops.Created) + len(ch.Crops.Updated) + len(ch.Crops.Deleted) +
		len(ch.Temperatures.Created) + len(ch.Temperatures.Updated) +
		len(ch.Rainfall.Created) + len(ch.Rainfall.Updated)
	if empty != 0 {
		t.Fatalf("pull with no intervening change must be empty, got %+v", ch)
	}
	if second.Timestamp <= first.Timestamp {
		t.Fatal("response watermark must move forward")
	}
}

func TestPush_CreateRunsInitialRefresh(t *testing.T) {
	repo := newMemRepo()
	svc := newTestSvc(repo, time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC))

	changes := emptyChanges()
	changes.Crops.Created = append(changes.Crops.Created, types.CropRow{
		CropID: "c1", Name: "Milho",
		Latitude: "-23.5505", Longitude: "-46.6333",
		TemperatureMin: 15, TemperatureMax: 35,
		RainfallMin: 30, RainfallMax: 100,
	})

	resp, err := svc.Push(context.Background(), "u1", changes)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Applied != 1 || len(resp.Failures) != 0 {
		t.Fatalf("push = %+v, want 1 applied", resp)
	}
	crop, err := repo.FindByID(context.Background(), "c1")
	if err != nil {
		t.Fatal(err)
	}
	if crop.UserID != "u1" {
		t.Fatal("created crop must belong to the pushing user")
	}
	if len(crop.Temperatures) == 0 || crop.LastUpdate.IsZero() {
		t.Fatal("create must trigger the initial weather backfill")
	}
}

func TestPush_CreateReplayIsUpsert(t *testing.T) {
	repo := newMemRepo()
	svc := newTestSvc(repo, time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC))

	changes := emptyChanges()
	changes.Crops.Created = append(changes.Crops.Created, types.CropRow{
		CropID: "c1", Name: "Milho",
		Latitude: "-23.5505", Longitude: "-46.6333",
		TemperatureMin: 15, TemperatureMax: 35,
	})

	if _, err := svc.Push(context.Background(), "u1", changes); err != nil {
		t.Fatal(err)
	}
	changes.Crops.Created[0].Name = "Milho Verde"
	if _, err := svc.Push(context.Background(), "u1", changes); err != nil {
		t.Fatal(err)
	}

	all, _ := repo.FindByUser(context.Background(), "u1")
	if len(all) != 1 {
		t.Fatalf("replayed create must not duplicate, got %d crops", len(all))
	}
	if all[0].Name != "Milho Verde" {
		t.Fatal("replayed create must apply mutable fields")
	}
}

func TestPush_CreateThenDeleteSameBatchEndsTombstoned(t *testing.T) {
	repo := newMemRepo()
	svc := newTestSvc(repo, time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC))

	changes := emptyChanges()
	changes.Crops.Created = append(changes.Crops.Created, types.CropRow{
		CropID: "c1", Name: "Milho",
		Latitude: "-23.5505", Longitude: "-46.6333",
	})
	changes.Crops.Deleted = append(changes.Crops.Deleted, "c1")

	resp, err := svc.Push(context.Background(), "u1", changes)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Applied != 2 {
		t.Fatalf("applied = %d, want 2 (create then delete)", resp.Applied)
	}
	crop, _ := repo.FindByID(context.Background(), "c1")
	if !crop.Deleted() {
		t.Fatal("deletes run last: the record must end up tombstoned")
	}
	if len(crop.Temperatures)+len(crop.Rainfalls)+len(crop.TemperatureAlerts)+len(crop.RainfallAlerts) != 0 {
		t.Fatal("tombstoning must clear series and alerts")
	}
}

func TestPush_UnknownUpdateIsPerItemFailure(t *testing.T) {
	repo := newMemRepo(&entities.Crop{ID: "c1", UserID: "u1", Name: "Milho",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)})
	svc := newTestSvc(repo, time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC))

	changes := emptyChanges()
	changes.Crops.Updated = append(changes.Crops.Updated,
		types.CropRow{CropID: "ghost", Name: "Nada"},
		types.CropRow{CropID: "c1", Name: "Soja"},
	)

	resp, err := svc.Push(context.Background(), "u1", changes)
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Failures) != 1 || resp.Failures[0].ID != "ghost" || resp.Failures[0].Reason != "not found" {
		t.Fatalf("failures = %+v, want single not-found for ghost", resp.Failures)
	}
	if resp.Applied != 1 {
		t.Fatal("a bad item must not abort the rest of the batch")
	}
	crop, _ := repo.FindByID(context.Background(), "c1")
	if crop.Name != "Soja" {
		t.Fatal("valid update in the same batch must apply")
	}
}

func TestPush_MalformedIDRejectedPerItem(t *testing.T) {
	repo := newMemRepo()
	svc := newTestSvc(repo, time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC))

	changes := emptyChanges()
	changes.Crops.Deleted = append(changes.Crops.Deleted, "bad id with spaces")

	resp, err := svc.Push(context.Background(), "u1", changes)
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Failures) != 1 || resp.Failures[0].Reason != "invalid id" {
		t.Fatalf("failures = %+v, want invalid id", resp.Failures)
	}
}

func TestPush_ChildCollectionsAreIgnored(t *testing.T) {
	repo := newMemRepo(&entities.Crop{ID: "c1", UserID: "u1", Name: "Milho",
		Temperatures: []entities.Temperature{{Date: "2024-01-04", Avg: 20}},
		CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)})
	svc := newTestSvc(repo, time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC))

	changes := emptyChanges()
	changes.Temperatures.Created = append(changes.Temperatures.Created,
		types.TemperatureRow{CropID: "c1", Date: "2024-01-04", Avg: 99})

	resp, err := svc.Push(context.Background(), "u1", changes)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Applied != 0 {
		t.Fatal("child rows are server-derived and must not count as applied")
	}
	crop, _ := repo.FindByID(context.Background(), "c1")
	if crop.Temperatures[0].Avg != 20 {
		t.Fatal("client-submitted observations must never overwrite server data")
	}
}

func TestPush_UpdateOfForeignCropReportsNotFound(t *testing.T) {
	repo := newMemRepo(&entities.Crop{ID: "c1", UserID: "someone-else", Name: "Milho",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)})
	svc := newTestSvc(repo, time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC))

	changes := emptyChanges()
	changes.Crops.Updated = append(changes.Crops.Updated, types.CropRow{CropID: "c1", Name: "Roubo"})

	resp, err := svc.Push(context.Background(), "u1", changes)
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Failures) != 1 || resp.Failures[0].Reason != "not found" {
		t.Fatalf("failures = %+v, want not-found (ownership hidden)", resp.Failures)
	}
	crop, _ := repo.FindByID(context.Background(), "c1")
	if crop.Name != "Milho" {
		t.Fatal("foreign crop must stay untouched")
	}
}
