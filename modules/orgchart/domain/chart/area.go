package chart

import "github.com/google/uuid"

type AreaType string

const (
	AreaTypeDirection    AreaType = "DIRECTION"
	AreaTypeBoard        AreaType = "BOARD"
	AreaTypeSubdirection AreaType = "SUBDIRECTION"
	AreaTypeDepartment   AreaType = "DEPARTMENT"
	AreaTypeUnit         AreaType = "UNIT"
	AreaTypeService      AreaType = "SERVICE"
	AreaTypeOffice       AreaType = "OFFICE"
)

// Area is one node of the chart's area tree. Parent is nil for root areas.
// The tree is not guaranteed acyclic by construction; cycle detection is a
// validation concern.
type Area struct {
	ID             uuid.UUID `json:"id"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	Parent         *Area     `json:"-"`
	HierarchyLevel int       `json:"hierarchy_level"`
	AreaType       AreaType  `json:"area_type"`
	MainPurpose    string    `json:"main_purpose,omitempty"`
	Description    string    `json:"description,omitempty"`
	IsActive       bool      `json:"is_active"`

	Positions []*Position `json:"positions,omitempty"`
}

// ActivePositions returns the area's positions with IsActive set.
func (a *Area) ActivePositions() []*Position {
	out := make([]*Position, 0, len(a.Positions))
	for _, p := range a.Positions {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out
}
