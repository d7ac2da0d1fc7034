package weather

import "github.com/m-u-l-a-s/ClimaMonitor-Backend/entities"

// Merge appends incoming observations onto an existing date-keyed series.
// An observation is skipped when its date already exists in the series, or
// when it falls before the latest existing date (backfilling the open gap at
// the tail is the only accepted append). Every appended observation that
// breaches a threshold is also appended to the alert list. Existing entries
// are never mutated or removed; an empty incoming list returns both inputs
// verbatim.
func Merge[T any](series, alerts, incoming []T, dateOf func(T) string, breaches func(T) bool) ([]T, []T) {
	if len(incoming) == 0 {
		return series, alerts
	}
	seen := make(map[string]bool, len(series))
	latest := ""
	for _, v := range series {
		d := dateOf(v)
		seen[d] = true
		if d > latest {
			latest = d
		}
	}
	for _, v := range incoming {
		d := dateOf(v)
		if seen[d] || d < latest {
			continue
		}
		seen[d] = true
		latest = d
		series = append(series, v)
		if breaches(v) {
			alerts = append(alerts, v)
		}
	}
	return series, alerts
}

// TemperatureBreach evaluates the daily average against the crop's band.
func TemperatureBreach(min, max float64) func(entities.Temperature) bool {
	return func(t entities.Temperature) bool { return t.Avg < min || t.Avg > max }
}

// RainfallBreach evaluates the daily total against the crop's band.
func RainfallBreach(min, max float64) func(entities.Rainfall) bool {
	return func(r entities.Rainfall) bool { return r.Mm < min || r.Mm > max }
}

// TemperatureDate and RainfallDate are the date accessors used by Merge.
func TemperatureDate(t entities.Temperature) string { return t.Date }

func RainfallDate(r entities.Rainfall) string { return r.Date }
