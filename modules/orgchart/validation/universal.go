package validation

import (
	"fmt"
	"strings"

	"github.com/zentraqms/zentraqms/modules/orgchart/domain/chart"
)

// Keyword tables drive role detection by name. This is the actual business
// rule, not a shortcut: charts carry free-text position names (mostly in
// Spanish) and no structured type covers every mandated role, so matching is
// heuristic and locale-sensitive.
var qualityRoleKeywords = []string{"quality", "calidad"}

// UniversalValidator applies the ISO 9001:2015 clause 5.3 baseline that
// every sector must satisfy.
type UniversalValidator struct{}

func NewUniversalValidator() *UniversalValidator {
	return &UniversalValidator{}
}

func (u *UniversalValidator) SectorCode() string { return "UNIVERSAL" }

func (u *UniversalValidator) Rules() []string {
	return []string{
		"iso_hierarchy_depth",
		"iso_area_purpose",
		"iso_top_management",
		"iso_quality_roles",
		"iso_position_purpose",
		"iso_position_requirements",
		"mandatory_committees",
		"committee_composition",
		"critical_assignments",
		"senior_authorities",
		"responsibilities",
		"validation_staleness",
	}
}

func (u *UniversalValidator) MandatoryCommittees() []string {
	return []string{"QUALITY_COMMITTEE"}
}

func (u *UniversalValidator) MandatoryPositions() []PositionRequirement {
	return []PositionRequirement{
		{
			PositionType:        "CEO",
			Name:                "Director General",
			Description:         "Top management accountable for the quality management system",
			HierarchyLevel:      chart.LevelExecutive,
			IsCritical:          true,
			MinQuantity:         1,
			RegulatoryReference: "ISO 9001:2015 5.1",
		},
		{
			PositionType:        "QUALITY_MANAGER",
			Name:                "Quality Manager",
			Description:         "Owns the quality management system and its processes",
			HierarchyLevel:      chart.LevelSeniorManagement,
			IsCritical:          true,
			MinQuantity:         1,
			RegulatoryReference: "ISO 9001:2015 5.3",
		},
		{
			PositionType:        "MANAGEMENT_REPRESENTATIVE",
			Name:                "Management Representative",
			Description:         "Reports QMS performance to top management",
			HierarchyLevel:      chart.LevelSeniorManagement,
			IsCritical:          false,
			MinQuantity:         1,
			RegulatoryReference: "ISO 9001:2015 5.3",
		},
	}
}

func (u *UniversalValidator) Validate(c *chart.Chart) *Result {
	return runPipeline(u, c)
}

func (u *UniversalValidator) validateStructure(c *chart.Chart, r *Result) {
	if c.HierarchyLevels < 3 {
		r.AddWarning("ISO_HIERARCHY_TOO_FLAT",
			fmt.Sprintf("chart declares %d hierarchy levels; fewer than 3 rarely separates responsibilities", c.HierarchyLevels),
			"structure", map[string]any{"hierarchy_levels": c.HierarchyLevels})
	} else if c.HierarchyLevels > 8 {
		r.AddWarning("ISO_HIERARCHY_TOO_DEEP",
			fmt.Sprintf("chart declares %d hierarchy levels; more than 8 obscures accountability", c.HierarchyLevels),
			"structure", map[string]any{"hierarchy_levels": c.HierarchyLevels})
	}

	hasTopLevel := false
	hasDirection := false
	for _, a := range c.ActiveAreas() {
		if a.MainPurpose == "" && a.Description == "" {
			r.AddCriticalError("ISO_AREA_PURPOSE_UNDEFINED",
				fmt.Sprintf("area %s defines neither a main purpose nor a description", a.Name),
				"structure", map[string]any{"area_code": a.Code, "area_name": a.Name})
		}
		if a.HierarchyLevel == 1 {
			hasTopLevel = true
			if a.AreaType == chart.AreaTypeDirection || a.AreaType == chart.AreaTypeBoard {
				hasDirection = true
			}
		}
	}
	if !hasTopLevel {
		r.AddCriticalError("ISO_NO_TOP_MANAGEMENT",
			"chart has no level-1 area representing top management",
			"structure", nil)
	} else if !hasDirection {
		r.AddWarning("ISO_NO_DIRECTION_AREA",
			"no level-1 area is typed as a direction or board",
			"structure", nil)
	}
}

func (u *UniversalValidator) validatePositions(c *chart.Chart, r *Result) {
	u.validateQualityRoles(c, r)
	for _, p := range c.ActivePositions() {
		if p.MainPurpose == "" {
			r.AddCriticalError("ISO_POSITION_PURPOSE_UNDEFINED",
				fmt.Sprintf("position %s has no main purpose", p.Name),
				"positions", map[string]any{"position_code": p.Code})
		}
		if p.Requirements.IsEmpty() {
			r.AddWarning("ISO_REQUIREMENTS_MISSING",
				fmt.Sprintf("position %s has no qualification requirements", p.Name),
				"positions", map[string]any{"position_code": p.Code})
		} else if missing := p.Requirements.MissingFields(); len(missing) > 0 {
			r.AddWarning("ISO_REQUIREMENTS_INCOMPLETE",
				fmt.Sprintf("position %s is missing requirement fields: %s", p.Name, strings.Join(missing, ", ")),
				"positions", map[string]any{"position_code": p.Code, "missing_fields": missing})
		}
	}
}

func (u *UniversalValidator) validateQualityRoles(c *chart.Chart, r *Result) {
	hasQualityManager := false
	hasProcessOwner := false
	for _, p := range c.ActivePositions() {
		if matchesAny(p.Name, qualityRoleKeywords) || matchesAny(p.PositionType, qualityRoleKeywords) {
			hasQualityManager = true
		}
		if p.IsProcessOwner {
			hasProcessOwner = true
		}
	}
	if !hasQualityManager {
		r.AddCriticalError("ISO_NO_QUALITY_MANAGER",
			"no position is identifiable as responsible for quality management",
			"positions", nil)
	}
	if c.UsesRACIMatrix && !hasProcessOwner {
		r.AddWarning("ISO_NO_PROCESS_OWNERS",
			"chart uses a RACI matrix but no position is flagged as a process owner",
			"positions", nil)
	}
}

func (u *UniversalValidator) validateCommittees(c *chart.Chart, r *Result) {
	validateMandatoryCommittees(u, c, r)
	validateCommitteeComposition(c, r)
}

// The ISO baseline carries no sector-specific overlay.
func (u *UniversalValidator) validateSectorSpecific(c *chart.Chart, r *Result) {}

// ValidateRACIMatrix is an opt-in check invoked by the facade/service layer,
// not part of the default pipeline. It verifies that a chart claiming a RACI
// matrix actually tags responsibilities with RACI roles, and that tagged
// positions keep at least one RESPONSIBLE entry.
func (u *UniversalValidator) ValidateRACIMatrix(c *chart.Chart, r *Result) {
	if c == nil || !c.UsesRACIMatrix {
		return
	}
	tagged := 0
	for _, p := range c.ActivePositions() {
		positionTagged := 0
		hasResponsible := false
		for _, resp := range p.ActiveResponsibilities() {
			if resp.RACIRole == "" {
				continue
			}
			tagged++
			positionTagged++
			if resp.RACIRole == chart.RACIResponsible {
				hasResponsible = true
			}
		}
		if positionTagged > 0 && !hasResponsible {
			r.AddWarning("RACI_NO_RESPONSIBLE_ROLE",
				fmt.Sprintf("position %s has RACI-tagged responsibilities but none marked RESPONSIBLE", p.Name),
				"raci", map[string]any{"position_code": p.Code})
		}
	}
	if tagged == 0 {
		r.AddError("RACI_MATRIX_EMPTY",
			"chart declares a RACI matrix but no responsibility carries a RACI role",
			"raci", nil)
	}
}

// ValidateAuthorityDelegation is an opt-in check: senior positions must hold
// authorities (critical here, unlike the pipeline's warning), and every
// authority must state its scope.
func (u *UniversalValidator) ValidateAuthorityDelegation(c *chart.Chart, r *Result) {
	if c == nil {
		return
	}
	for _, p := range c.ActivePositions() {
		auths := p.ActiveAuthorities()
		if p.HierarchyLevel.IsSenior() && len(auths) == 0 {
			r.AddCriticalError("AUTHORITY_DELEGATION_MISSING",
				fmt.Sprintf("senior position %s holds no delegated authority", p.Name),
				"authorities", map[string]any{"position_code": p.Code})
		}
		for _, a := range auths {
			if strings.TrimSpace(a.Scope) == "" {
				r.AddWarning("AUTHORITY_SCOPE_EMPTY",
					fmt.Sprintf("an authority of %s has no scope defined", p.Name),
					"authorities", map[string]any{"position_code": p.Code, "authority_id": a.ID.String()})
			}
		}
	}
}

// matchesAny reports whether s contains any of the keywords,
// case-insensitively.
func matchesAny(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
