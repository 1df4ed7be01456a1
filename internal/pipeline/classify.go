package pipeline

import (
	"sort"

	"github.com/agrisight/agristat-cli/internal/model"
)

// Classification thresholds.
const (
	// dominanceRatio: the top sub-sector must have at least 50% more
	// households than the runner-up to be dominant.
	dominanceRatio = 1.5
	// cropLivestockGap: crop and livestock within 20% of each other,
	// relative to the larger count.
	cropLivestockGap = 0.20
)

// dominantLabels maps a sub-sector to its dominance label.
var dominantLabels = map[string]model.Sector{
	"crop":        model.SectorCropDominant,
	"livestock":   model.SectorLivestockDominant,
	"aquaculture": model.SectorAquacultureDominant,
	"fishing":     model.SectorFishingDominant,
}

// Classify returns the primary agricultural sector for one county's four
// sub-sector household counts. Pure and reproducible: ranking ties break
// by the fixed priority crop > livestock > aquaculture > fishing.
// Rules, first match wins:
//   - dominance: top > 0 and top >= 1.5 x second
//   - crop-livestock mixed: top two are exactly {crop, livestock} and
//     |crop - livestock| / max(crop, livestock) <= 0.20
//   - otherwise mixed agriculture (including the all-zero case)
func Classify(crop, livestock, aquaculture, fishing int64) model.Sector {
	type ranked struct {
		name  string
		count int64
	}
	sectors := []ranked{
		{"crop", crop},
		{"livestock", livestock},
		{"aquaculture", aquaculture},
		{"fishing", fishing},
	}
	sort.SliceStable(sectors, func(i, j int) bool {
		return sectors[i].count > sectors[j].count
	})

	top, second := sectors[0], sectors[1]

	if top.count > 0 && float64(top.count) >= dominanceRatio*float64(second.count) {
		return dominantLabels[top.name]
	}

	topTwoCropLivestock := (top.name == "crop" && second.name == "livestock") ||
		(top.name == "livestock" && second.name == "crop")
	if topTwoCropLivestock && top.count > 0 {
		gap := float64(top.count-second.count) / float64(top.count)
		if gap <= cropLivestockGap {
			return model.SectorCropLivestockMixed
		}
	}

	return model.SectorMixedAgriculture
}
