// pkg/climate/openmeteo_client.go

package climate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m-u-l-a-s/ClimaMonitor-Backend/entities"
)

type openMeteo struct {
	baseURL string
	tz      string
	httpc   *http.Client
}

// NewOpenMeteo builds a client for the Open-Meteo archive API. The timeout
// bounds the whole call; there is no internal retry (a failed fetch degrades
// to "no new data" at the refresh layer).
func NewOpenMeteo(baseURL, timezone string, timeout time.Duration) Client {
	return &openMeteo{
		baseURL: strings.TrimRight(baseURL, "/"),
		tz:      timezone,
		httpc:   &http.Client{Timeout: timeout},
	}
}

type dailyPayload struct {
	Daily struct {
		Time     []string   `json:"time"`
		TempMean []*float64 `json:"temperature_2m_mean"`
		TempMin  []*float64 `json:"temperature_2m_min"`
		TempMax  []*float64 `json:"temperature_2m_max"`
		Precip   []*float64 `json:"precipitation_sum"`
	} `json:"daily"`
}

func (c *openMeteo) fetch(ctx context.Context, lat, lon, daily string, start, end time.Time) (*dailyPayload, error) {
	q := url.Values{}
	q.Set("latitude", lat)
	q.Set("longitude", lon)
	q.Set("start_date", start.Format(entities.DateLayout))
	q.Set("end_date", end.Format(entities.DateLayout))
	q.Set("daily", daily)
	q.Set("timezone", c.tz)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("climate api status %d", resp.StatusCode)
	}
	var out dailyPayload
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("climate api decode: %w", err)
	}
	return &out, nil
}

func (c *openMeteo) DailyTemperatures(ctx context.Context, lat, lon string, start, end time.Time) ([]entities.Temperature, error) {
	p, err := c.fetch(ctx, lat, lon, "temperature_2m_mean,temperature_2m_min,temperature_2m_max", start, end)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Temperature, 0, len(p.Daily.Time))
	for i, d := range p.Daily.Time {
		avg := at(p.Daily.TempMean, i)
		min := at(p.Daily.TempMin, i)
		max := at(p.Daily.TempMax, i)
		if avg == nil && min == nil && max == nil {
			continue // day not yet published
		}
		out = append(out, entities.Temperature{Date: d, Avg: deref(avg), Min: deref(min), Max: deref(max)})
	}
	return out, nil
}

func (c *openMeteo) DailyRainfall(ctx context.Context, lat, lon string, start, end time.Time) ([]entities.Rainfall, error) {
	p, err := c.fetch(ctx, lat, lon, "precipitation_sum", start, end)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Rainfall, 0, len(p.Daily.Time))
	for i, d := range p.Daily.Time {
		mm := at(p.Daily.Precip, i)
		if mm == nil {
			continue
		}
		out = append(out, entities.Rainfall{Date: d, Mm: *mm})
	}
	return out, nil
}

func at(vs []*float64, i int) *float64 {
	if i < len(vs) {
		return vs[i]
	}
	return nil
}

func deref(v *float64) float64 {
	if v != nil {
		return *v
	}
	return 0
}
