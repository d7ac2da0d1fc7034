package serviceImp

import (
	"time"

	"github.com/m-u-l-a-s/ClimaMonitor-Backend/entities"
	"github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/sync/types"
)

// buildChanges partitions the user's crops against the watermark and flattens
// the child series into per-collection rows. crops must include tombstones.
//
// Rules:
//   - no watermark: every live crop (and its full series) is "created".
//   - createdAt > watermark               -> created
//   - createdAt <= watermark, lastUpdate > watermark -> updated (a weather
//     append alone counts: freshness refresh is an update)
//   - deletedAt > watermark, createdAt <= watermark  -> deleted; a crop
//     created and deleted inside the window is reported as neither
//   - series entries dated on or after the watermark's calendar date go into
//     the child "updated" lists even when the parent crop is in "created"
//   - a deleted crop id lands in every child collection's deleted list
func buildChanges(crops []entities.Crop, lastPulledAt *int64, loc *time.Location) types.Changes {
	ch := emptyChanges()

	if lastPulledAt == nil {
		live := make([]entities.Crop, 0, len(crops))
		for i := range crops {
			if !crops[i].Deleted() {
				live = append(live, crops[i])
			}
		}
		for i := range live {
			ch.Crops.Created = append(ch.Crops.Created, cropRow(&live[i], loc))
		}
		fillChildCreated(&ch, live)
		return ch
	}

	wm := time.Unix(*lastPulledAt, 0)
	wmDate := wm.In(loc).Format(entities.DateLayout)

	var created, updated []entities.Crop
	for i := range crops {
		c := crops[i]
		switch {
		case c.Deleted():
			if c.DeletedAt.After(wm) && !c.CreatedAt.After(wm) {
				ch.Crops.Deleted = append(ch.Crops.Deleted, c.ID)
			}
		case c.CreatedAt.After(wm):
			created = append(created, c)
		case c.LastUpdate.After(wm):
			updated = append(updated, c)
		}
	}

	for i := range created {
		ch.Crops.Created = append(ch.Crops.Created, cropRow(&created[i], loc))
	}
	for i := range updated {
		ch.Crops.Updated = append(ch.Crops.Updated, cropRow(&updated[i], loc))
	}

	fillChildCreated(&ch, created)

	touched := append(append([]entities.Crop{}, created...), updated...)
	onOrAfterWM := func(date string) bool { return date >= wmDate }
	ch.Temperatures.Updated = flattenSeries(touched, temperatures, tempRow,
		func(t entities.Temperature) bool { return onOrAfterWM(t.Date) })
	ch.Rainfall.Updated = flattenSeries(touched, rainfalls, rainRow,
		func(r entities.Rainfall) bool { return onOrAfterWM(r.Date) })
	ch.TemperatureAlerts.Updated = flattenSeries(touched, temperatureAlerts, tempRow,
		func(t entities.Temperature) bool { return onOrAfterWM(t.Date) })
	ch.RainfallAlerts.Updated = flattenSeries(touched, rainfallAlerts, rainRow,
		func(r entities.Rainfall) bool { return onOrAfterWM(r.Date) })

	// Cascading tombstones: a client dropping the parent must purge its
	// cached child rows too.
	ch.Temperatures.Deleted = append(ch.Temperatures.Deleted, ch.Crops.Deleted...)
	ch.Rainfall.Deleted = append(ch.Rainfall.Deleted, ch.Crops.Deleted...)
	ch.TemperatureAlerts.Deleted = append(ch.TemperatureAlerts.Deleted, ch.Crops.Deleted...)
	ch.RainfallAlerts.Deleted = append(ch.RainfallAlerts.Deleted, ch.Crops.Deleted...)

	return ch
}

func fillChildCreated(ch *types.Changes, crops []entities.Crop) {
	ch.Temperatures.Created = flattenSeries(crops, temperatures, tempRow, nil)
	ch.Rainfall.Created = flattenSeries(crops, rainfalls, rainRow, nil)
	ch.TemperatureAlerts.Created = flattenSeries(crops, temperatureAlerts, tempRow, nil)
	ch.RainfallAlerts.Created = flattenSeries(crops, rainfallAlerts, rainRow, nil)
}

// flattenSeries turns one embedded series of every crop into transport rows.
// The row id is the entry's position in the current snapshot, kept even for
// filtered rows so ids stay stable within a single response.
func flattenSeries[T, R any](crops []entities.Crop, pick func(*entities.Crop) []T, row func(string, int, T) R, keep func(T) bool) []R {
	out := make([]R, 0)
	for i := range crops {
		c := &crops[i]
		for idx, v := range pick(c) {
			if keep != nil && !keep(v) {
				continue
			}
			out = append(out, row(c.ID, idx, v))
		}
	}
	return out
}

func temperatures(c *entities.Crop) []entities.Temperature      { return c.Temperatures }
func rainfalls(c *entities.Crop) []entities.Rainfall            { return c.Rainfalls }
func temperatureAlerts(c *entities.Crop) []entities.Temperature { return c.TemperatureAlerts }
func rainfallAlerts(c *entities.Crop) []entities.Rainfall       { return c.RainfallAlerts }

func tempRow(cropID string, idx int, t entities.Temperature) types.TemperatureRow {
	return types.TemperatureRow{ID: idx, CropID: cropID, Date: t.Date, Avg: t.Avg, Max: t.Max, Min: t.Min}
}

func rainRow(cropID string, idx int, r entities.Rainfall) types.RainfallRow {
	return types.RainfallRow{ID: idx, CropID: cropID, Date: r.Date, Mm: r.Mm}
}

func cropRow(c *entities.Crop, loc *time.Location) types.CropRow {
	deletedAt := ""
	if c.DeletedAt != nil {
		deletedAt = c.DeletedAt.In(loc).Format(time.RFC3339)
	}
	lastUpdate := ""
	if !c.LastUpdate.IsZero() {
		lastUpdate = c.LastUpdate.In(loc).Format(time.RFC3339)
	}
	return types.CropRow{
		CropID:         c.ID,
		Latitude:       c.Location.Latitude,
		Longitude:      c.Location.Longitude,
		Name:           c.Name,
		TemperatureMax: c.TemperatureMax,
		RainfallMax:    c.RainfallMax,
		TemperatureMin: c.TemperatureMin,
		RainfallMin:    c.RainfallMin,
		LastUpdate:     lastUpdate,
		CreatedAt:      c.CreatedAt.In(loc).Format(time.RFC3339),
		DeletedAt:      deletedAt,
		UserID:         c.UserID,
	}
}

func emptyChanges() types.Changes {
	return types.Changes{
		Crops:             types.Collection[types.CropRow]{Created: []types.CropRow{}, Updated: []types.CropRow{}, Deleted: []string{}},
		Temperatures:      types.Collection[types.TemperatureRow]{Created: []types.TemperatureRow{}, Updated: []types.TemperatureRow{}, Deleted: []string{}},
		Rainfall:          types.Collection[types.RainfallRow]{Created: []types.RainfallRow{}, Updated: []types.RainfallRow{}, Deleted: []string{}},
		TemperatureAlerts: types.Collection[types.TemperatureRow]{Created: []types.TemperatureRow{}, Updated: []types.TemperatureRow{}, Deleted: []string{}},
		RainfallAlerts:    types.Collection[types.RainfallRow]{Created: []types.RainfallRow{}, Updated: []types.RainfallRow{}, Deleted: []string{}},
	}
}
