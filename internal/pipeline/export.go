package pipeline

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/agrisight/agristat-cli/internal/model"
)

// outputColumns defines the ordered output table columns.
var outputColumns = []string{
	"county",
	"total_households",
	"area_sq_km",
	"farming_households",
	"crop_households",
	"livestock_households",
	"aquaculture_households",
	"fishing_households",
	"population",
	"population_density",
	"primary_sector",
	"crop_intensity",
	"engagement_rate",
}

// ExportCSV writes the output table to a CSV file, one row per retained
// county in insertion order.
func ExportCSV(rows []model.MetricRow, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create file")
	}
	defer f.Close()

	return WriteCSV(rows, f)
}

// WriteCSV writes the output table to w. Numeric formatting is minimal
// round-trip, so identical inputs serialize byte-identically.
func WriteCSV(rows []model.MetricRow, w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(outputColumns); err != nil {
		return eris.Wrap(err, "export: write header")
	}
	for _, row := range rows {
		if err := cw.Write(buildRow(row)); err != nil {
			return eris.Wrapf(err, "export: write row %s", row.Name)
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush")
}

func buildRow(r model.MetricRow) []string {
	return []string{
		r.Name,
		strconv.FormatInt(r.TotalHouseholds, 10),
		formatFloat(r.AreaSqKm),
		strconv.FormatInt(r.FarmingHouseholds, 10),
		strconv.FormatInt(r.CropHouseholds, 10),
		strconv.FormatInt(r.LivestockHouseholds, 10),
		strconv.FormatInt(r.AquacultureHouseholds, 10),
		strconv.FormatInt(r.FishingHouseholds, 10),
		strconv.FormatInt(r.Population, 10),
		formatFloat(r.PopulationDensity),
		string(r.PrimarySector),
		formatFloat(r.CropIntensity),
		formatFloat(r.EngagementRate),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
