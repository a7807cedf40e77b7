package chart

import (
	"time"

	"github.com/google/uuid"
)

// Chart is the read model of one organizational-chart version. It is
// assembled by the persistence layer with its full area/committee graph
// loaded; validators only traverse it.
type Chart struct {
	ID                       uuid.UUID      `json:"id"`
	OrganizationID           uuid.UUID      `json:"organization_id"`
	Name                     string         `json:"name"`
	Version                  string         `json:"version"`
	SectorCode               string         `json:"sector_code"`
	OrganizationType         string         `json:"organization_type"`
	HierarchyLevels          int            `json:"hierarchy_levels"`
	IsActive                 bool           `json:"is_active"`
	IsCurrent                bool           `json:"is_current"`
	UsesRACIMatrix           bool           `json:"uses_raci_matrix"`
	AllowsTemporaryPositions bool           `json:"allows_temporary_positions"`
	SectorConfig             map[string]any `json:"sector_config,omitempty"`
	ComplianceStatus         map[string]any `json:"compliance_status,omitempty"`
	LastValidationDate       *time.Time     `json:"last_validation_date,omitempty"`
	ApprovedBy               *uuid.UUID     `json:"approved_by,omitempty"`
	ApprovalDate             *time.Time     `json:"approval_date,omitempty"`
	EffectiveDate            time.Time      `json:"effective_date"`
	EndDate                  *time.Time     `json:"end_date,omitempty"`

	Areas      []*Area      `json:"areas,omitempty"`
	Committees []*Committee `json:"committees,omitempty"`
	Services   []*Service   `json:"services,omitempty"`
}

// ActiveAreas returns the chart's areas with IsActive set.
func (c *Chart) ActiveAreas() []*Area {
	out := make([]*Area, 0, len(c.Areas))
	for _, a := range c.Areas {
		if a.IsActive {
			out = append(out, a)
		}
	}
	return out
}

// ActiveCommittees returns the chart's committees with IsActive set.
func (c *Chart) ActiveCommittees() []*Committee {
	out := make([]*Committee, 0, len(c.Committees))
	for _, cm := range c.Committees {
		if cm.IsActive {
			out = append(out, cm)
		}
	}
	return out
}

// ActivePositions walks every active area and returns its active positions.
func (c *Chart) ActivePositions() []*Position {
	var out []*Position
	for _, a := range c.ActiveAreas() {
		out = append(out, a.ActivePositions()...)
	}
	return out
}

// ActiveServices returns the chart's health-service mappings with IsActive set.
func (c *Chart) ActiveServices() []*Service {
	out := make([]*Service, 0, len(c.Services))
	for _, s := range c.Services {
		if s.IsActive {
			out = append(out, s)
		}
	}
	return out
}
