package chart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type HierarchyLevel string

const (
	LevelBoard            HierarchyLevel = "BOARD"
	LevelExecutive        HierarchyLevel = "EXECUTIVE"
	LevelSeniorManagement HierarchyLevel = "SENIOR_MANAGEMENT"
	LevelMiddleManagement HierarchyLevel = "MIDDLE_MANAGEMENT"
	LevelProfessional     HierarchyLevel = "PROFESSIONAL"
	LevelTechnical        HierarchyLevel = "TECHNICAL"
	LevelOperational      HierarchyLevel = "OPERATIONAL"
)

// IsSenior reports whether the level belongs to top management, the tier
// that must carry explicit authorities.
func (l HierarchyLevel) IsSenior() bool {
	return l == LevelExecutive || l == LevelSeniorManagement
}

// Requirements describes the qualification profile of a position. Zero-value
// fields count as missing for completeness checks.
type Requirements struct {
	Education    string   `json:"education,omitempty"`
	Experience   string   `json:"experience,omitempty"`
	Competencies []string `json:"competencies,omitempty"`
	Licenses     []string `json:"licenses,omitempty"`
}

// IsEmpty reports whether no requirement field is set at all.
func (r Requirements) IsEmpty() bool {
	return r.Education == "" && r.Experience == "" && len(r.Competencies) == 0 && len(r.Licenses) == 0
}

// MissingFields lists the core requirement keys a complete profile needs.
func (r Requirements) MissingFields() []string {
	var missing []string
	if r.Education == "" {
		missing = append(missing, "education")
	}
	if r.Experience == "" {
		missing = append(missing, "experience")
	}
	if len(r.Competencies) == 0 {
		missing = append(missing, "competencies")
	}
	return missing
}

// Position is one cargo inside an area. ReportsTo is nil for the top of the
// reporting chain; acyclicity is a validation concern.
type Position struct {
	ID                          uuid.UUID        `json:"id"`
	Code                        string           `json:"code"`
	Name                        string           `json:"name"`
	PositionType                string           `json:"position_type,omitempty"`
	AreaID                      uuid.UUID        `json:"area_id"`
	ReportsTo                   *Position        `json:"-"`
	HierarchyLevel              HierarchyLevel   `json:"hierarchy_level"`
	MainPurpose                 string           `json:"main_purpose,omitempty"`
	IsCritical                  bool             `json:"is_critical"`
	IsProcessOwner              bool             `json:"is_process_owner"`
	RequiresProfessionalLicense bool             `json:"requires_professional_license"`
	AuthorizedPositions         int              `json:"authorized_positions"`
	Requirements                Requirements     `json:"requirements"`
	SalaryRangeMin              *decimal.Decimal `json:"salary_range_min,omitempty"`
	SalaryRangeMax              *decimal.Decimal `json:"salary_range_max,omitempty"`
	IsActive                    bool             `json:"is_active"`

	Assignments      []*Assignment     `json:"assignments,omitempty"`
	Responsibilities []*Responsibility `json:"responsibilities,omitempty"`
	Authorities      []*Authority      `json:"authorities,omitempty"`
}

// CurrentAssignments returns active assignments with no end date set.
func (p *Position) CurrentAssignments() []*Assignment {
	out := make([]*Assignment, 0, len(p.Assignments))
	for _, a := range p.Assignments {
		if a.IsActive && a.EndDate == nil {
			out = append(out, a)
		}
	}
	return out
}

// ActiveResponsibilities returns the position's responsibilities with IsActive set.
func (p *Position) ActiveResponsibilities() []*Responsibility {
	out := make([]*Responsibility, 0, len(p.Responsibilities))
	for _, r := range p.Responsibilities {
		if r.IsActive {
			out = append(out, r)
		}
	}
	return out
}

// ActiveAuthorities returns the position's authorities with IsActive set.
func (p *Position) ActiveAuthorities() []*Authority {
	out := make([]*Authority, 0, len(p.Authorities))
	for _, a := range p.Authorities {
		if a.IsActive {
			out = append(out, a)
		}
	}
	return out
}

// Assignment is one person occupying a position. An open-ended active
// assignment (EndDate nil) counts as current.
type Assignment struct {
	ID         uuid.UUID  `json:"id"`
	PositionID uuid.UUID  `json:"position_id"`
	PersonID   uuid.UUID  `json:"person_id"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	IsActive   bool       `json:"is_active"`
}
