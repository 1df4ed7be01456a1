package model

// Sector is a county's primary agricultural sector label. The set is
// closed: downstream aggregation never sees a value outside these six.
type Sector string

const (
	SectorCropDominant        Sector = "Crop Dominant"
	SectorLivestockDominant   Sector = "Livestock Dominant"
	SectorAquacultureDominant Sector = "Aquaculture Dominant"
	SectorFishingDominant     Sector = "Fishing Dominant"
	SectorCropLivestockMixed  Sector = "Crop-Livestock Mixed"
	SectorMixedAgriculture    Sector = "Mixed Agriculture"
)

// Sectors lists all labels in a fixed display order.
var Sectors = []Sector{
	SectorCropDominant,
	SectorLivestockDominant,
	SectorAquacultureDominant,
	SectorFishingDominant,
	SectorCropLivestockMixed,
	SectorMixedAgriculture,
}

// Valid reports whether s is one of the six enumerated labels.
func (s Sector) Valid() bool {
	switch s {
	case SectorCropDominant, SectorLivestockDominant, SectorAquacultureDominant,
		SectorFishingDominant, SectorCropLivestockMixed, SectorMixedAgriculture:
		return true
	}
	return false
}
