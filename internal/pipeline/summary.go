package pipeline

import "github.com/agrisight/agristat-cli/internal/model"

// Aggregate computes the descriptive statistics of the run summary from
// the final metric rows. Read-only: it never touches upstream data. The
// remaining summary fields (input rows, drop counts, correlation) are filled
// by Run.
func Aggregate(rows []model.MetricRow) model.RunSummary {
	s := model.RunSummary{
		CountiesRetained: len(rows),
		SectorCounts:     make(map[model.Sector]int, len(model.Sectors)),
	}
	for _, sector := range model.Sectors {
		s.SectorCounts[sector] = 0
	}

	var sumHouseholdSize, sumEngagement float64
	for _, row := range rows {
		s.TotalFarmingHouseholds += row.FarmingHouseholds
		sumHouseholdSize += float64(row.Population) / float64(row.TotalHouseholds)
		sumEngagement += row.EngagementRate
		s.SectorCounts[row.PrimarySector]++
	}

	if len(rows) > 0 {
		s.AvgHouseholdSize = sumHouseholdSize / float64(len(rows))
		s.AvgEngagementRate = sumEngagement / float64(len(rows))
	}

	return s
}
