package chart

// SectorConfig is the compliance baseline a sector imposes on its charts.
type SectorConfig struct {
	HierarchyLevelsDefault int      `json:"hierarchy_levels_default"`
	MandatoryPositions     []string `json:"mandatory_positions"`
	MandatoryCommittees    []string `json:"mandatory_committees"`
}

// Sector is the economic sector a chart belongs to (HEALTH, EDUCATION, ...).
type Sector struct {
	Code          string       `json:"code"`
	Name          string       `json:"name"`
	DefaultConfig SectorConfig `json:"default_config"`
}

// MandatoryCommittees returns the committee codes the sector requires.
func (s *Sector) MandatoryCommittees() []string {
	if s == nil {
		return nil
	}
	return s.DefaultConfig.MandatoryCommittees
}

// MandatoryPositions returns the position types the sector requires.
func (s *Sector) MandatoryPositions() []string {
	if s == nil {
		return nil
	}
	return s.DefaultConfig.MandatoryPositions
}

// MinimumHierarchyLevels returns the sector's configured hierarchy floor,
// zero when the sector does not constrain it.
func (s *Sector) MinimumHierarchyLevels() int {
	if s == nil {
		return 0
	}
	return s.DefaultConfig.HierarchyLevelsDefault
}
