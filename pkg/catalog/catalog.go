package catalog

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Tolerance is a per-species default threshold band applied when a crop is
// registered without explicit thresholds.
type Tolerance struct {
	Species        string
	TemperatureMin float64
	TemperatureMax float64
	RainfallMin    float64
	RainfallMax    float64
}

type Catalog struct {
	byName map[string]Tolerance
}

// LoadFromFiles reads species presets from an optional CSV and an optional
// XLSX workbook. Both paths may be empty; an empty catalog is valid (crops
// then keep whatever thresholds the owner supplied).
func LoadFromFiles(csvPath, xlsxPath string) (*Catalog, error) {
	c := &Catalog{byName: map[string]Tolerance{}}

	if csvPath != "" {
		if err := c.loadCSV(csvPath); err != nil {
			return nil, err
		}
	}
	if xlsxPath != "" {
		_ = c.loadXLSX(xlsxPath)
	}
	return c, nil
}

// Lookup matches a crop name against the catalog, ignoring case and spacing.
func (c *Catalog) Lookup(name string) (Tolerance, bool) {
	t, ok := c.byName[norm(name)]
	return t, ok
}

func (c *Catalog) Len() int { return len(c.byName) }

func norm(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\ufeff") // BOM
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

func (c *Catalog) loadCSV(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	head, err := cr.Read()
	if err != nil {
		return err
	}

	hmap := map[string]int{}
	for i, h := range head {
		hmap[norm(h)] = i
	}
	// Accept multiple aliases
	findAny := func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := hmap[norm(k)]; ok {
				return idx
			}
		}
		return -1
	}
	iName := findAny("species", "especie", "nome", "crop")
	iTMin := findAny("temp_min", "temperatura_min", "tmin")
	iTMax := findAny("temp_max", "temperatura_max", "tmax")
	iRMin := findAny("rain_min", "pluviometria_min", "rmin")
	iRMax := findAny("rain_max", "pluviometria_max", "rmax")
	if iName < 0 {
		return nil // header unusable, treat as empty
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		c.addRow(rec, iName, iTMin, iTMax, iRMin, iRMax)
	}
	return nil
}

func (c *Catalog) loadXLSX(path string) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		return err
	}
	// fixed column order: species, temp_min, temp_max, rain_min, rain_max
	for _, rec := range rows[1:] {
		c.addRow(rec, 0, 1, 2, 3, 4)
	}
	return nil
}

func (c *Catalog) addRow(rec []string, iName, iTMin, iTMax, iRMin, iRMax int) {
	get := func(i int) float64 {
		if i < 0 || i >= len(rec) {
			return 0
		}
		v, _ := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
		return v
	}
	if iName >= len(rec) {
		return
	}
	name := strings.TrimSpace(rec[iName])
	if name == "" {
		return
	}
	c.byName[norm(name)] = Tolerance{
		Species:        name,
		TemperatureMin: get(iTMin),
		TemperatureMax: get(iTMax),
		RainfallMin:    get(iRMin),
		RainfallMax:    get(iRMax),
	}
}
