package climate_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/climate"
)

func TestOpenMeteo_DailyTemperatures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("latitude"); got != "-23.5505" {
			t.Errorf("latitude = %q", got)
		}
		if got := r.URL.Query().Get("start_date"); got != "2024-01-04" {
			t.Errorf("start_date = %q", got)
		}
		if got := r.URL.Query().Get("timezone"); got != "America/Sao_Paulo" {
			t.Errorf("timezone = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"daily":{
			"time":["2024-01-04","2024-01-05"],
			"temperature_2m_mean":[22.5,null],
			"temperature_2m_min":[18.1,null],
			"temperature_2m_max":[27.9,null]}}`))
	}))
	defer srv.Close()

	c := climate.NewOpenMeteo(srv.URL, "America/Sao_Paulo", 2*time.Second)
	got, err := c.DailyTemperatures(context.Background(), "-23.5505", "-46.6333",
		time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	// the all-null day is not yet published and must be dropped
	if len(got) != 1 {
		t.Fatalf("observations = %d, want 1", len(got))
	}
	if got[0].Date != "2024-01-04" || got[0].Avg != 22.5 {
		t.Fatalf("observation = %+v", got[0])
	}
}

func TestOpenMeteo_DailyRainfall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"daily":{"time":["2024-01-04"],"precipitation_sum":[12.3]}}`))
	}))
	defer srv.Close()

	c := climate.NewOpenMeteo(srv.URL, "America/Sao_Paulo", 2*time.Second)
	got, err := c.DailyRainfall(context.Background(), "-23.5505", "-46.6333",
		time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Mm != 12.3 {
		t.Fatalf("observations = %+v", got)
	}
}

func TestOpenMeteo_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := climate.NewOpenMeteo(srv.URL, "America/Sao_Paulo", 2*time.Second)
	if _, err := c.DailyRainfall(context.Background(), "0", "0",
		time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)); err == nil {
		t.Fatal("non-200 must return an error")
	}
}
