package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/catalog"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "presets.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFromFiles_CSV(t *testing.T) {
	path := writeCSV(t, "species,temp_min,temp_max,rain_min,rain_max\nMilho,15,35,30,100\nSoja,10,32,25,90\n")

	c, err := catalog.LoadFromFiles(path, "")
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 2 {
		t.Fatalf("catalog size = %d, want 2", c.Len())
	}
	tol, ok := c.Lookup("Milho")
	if !ok {
		t.Fatal("Milho not found")
	}
	if tol.TemperatureMin != 15 || tol.TemperatureMax != 35 || tol.RainfallMin != 30 || tol.RainfallMax != 100 {
		t.Fatalf("tolerance = %+v", tol)
	}
}

func TestLookup_NormalizesNames(t *testing.T) {
	path := writeCSV(t, "especie,temperatura_min,temperatura_max,pluviometria_min,pluviometria_max\nMilho Verde,15,35,30,100\n")

	c, err := catalog.LoadFromFiles(path, "")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Lookup("milho-verde"); !ok {
		t.Fatal("lookup must ignore case, spaces and dashes")
	}
	if _, ok := c.Lookup("MILHO VERDE"); !ok {
		t.Fatal("lookup must ignore case")
	}
}

func TestLoadFromFiles_EmptyPathsGiveEmptyCatalog(t *testing.T) {
	c, err := catalog.LoadFromFiles("", "")
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 0 {
		t.Fatal("empty catalog expected")
	}
	if _, ok := c.Lookup("Milho"); ok {
		t.Fatal("empty catalog must miss")
	}
}
