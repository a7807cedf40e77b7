package validation

import (
	"fmt"
	"time"

	"github.com/zentraqms/zentraqms/modules/orgchart/domain/chart"
)

// staleValidationAge is how old a previous validation may get before the
// chart is flagged for re-validation.
const staleValidationAge = 365 * 24 * time.Hour

// PositionRequirement describes one position a sector mandates.
type PositionRequirement struct {
	PositionType           string               `json:"position_type"`
	Name                   string               `json:"name"`
	Description            string               `json:"description,omitempty"`
	HierarchyLevel         chart.HierarchyLevel `json:"hierarchy_level"`
	IsCritical             bool                 `json:"is_critical"`
	RequiredQualifications []string             `json:"required_qualifications,omitempty"`
	RequiredLicenses       []string             `json:"required_licenses,omitempty"`
	MinQuantity            int                  `json:"min_quantity"`
	RegulatoryReference    string               `json:"regulatory_reference,omitempty"`
}

// Validator is the public contract of a sector rule-set. Validate never
// returns an error: internal failures surface as a critical VALIDATION_ERROR
// finding inside the result.
type Validator interface {
	Validate(c *chart.Chart) *Result
	SectorCode() string
	Rules() []string
	MandatoryCommittees() []string
	MandatoryPositions() []PositionRequirement
}

// sectorHooks are the steps a sector validator customizes. The shared
// pipeline in runPipeline drives them in a fixed order; the generic
// assignment/authority/responsibility/staleness rules are not hooks and run
// identically for every sector.
type sectorHooks interface {
	Validator
	validateStructure(c *chart.Chart, r *Result)
	validatePositions(c *chart.Chart, r *Result)
	validateCommittees(c *chart.Chart, r *Result)
	validateSectorSpecific(c *chart.Chart, r *Result)
}

// runPipeline executes the full validation sequence. A panic anywhere in the
// pipeline is converted into a single critical VALIDATION_ERROR finding and
// the remaining steps are skipped; the caller always gets a result.
func runPipeline(v sectorHooks, c *chart.Chart) (result *Result) {
	result = NewResult()
	defer func() {
		if rec := recover(); rec != nil {
			result.AddCriticalError("VALIDATION_ERROR",
				fmt.Sprintf("validation aborted by internal failure: %v", rec),
				"validator", nil)
		}
		recordValidation(v.SectorCode(), result)
	}()

	if !preValidate(c, result) {
		return result
	}

	v.validateStructure(c, result)
	v.validatePositions(c, result)
	v.validateCommittees(c, result)
	validateAssignments(c, result)
	validateAuthorities(c, result)
	validateResponsibilities(c, result)
	validateStaleness(c, result)
	v.validateSectorSpecific(c, result)

	postValidate(v, c, result)
	return result
}

// preValidate rejects charts that cannot be validated at all. Returns false
// when the pipeline must abort.
func preValidate(c *chart.Chart, r *Result) bool {
	if c == nil {
		r.AddCriticalError("CHART_REQUIRED", "no organizational chart provided", "chart", nil)
		return false
	}
	if len(c.ActiveAreas()) == 0 {
		r.AddCriticalError("CHART_EMPTY", "chart has no active areas", "chart", nil)
		return false
	}
	if !c.IsActive {
		r.AddWarning("CHART_INACTIVE", "chart is not active", "chart", nil)
	}
	return true
}

// validateMandatoryCommittees reports every mandated committee code absent
// from the chart, one critical error per missing code.
func validateMandatoryCommittees(v Validator, c *chart.Chart, r *Result) {
	present := map[string]bool{}
	for _, cm := range c.ActiveCommittees() {
		present[cm.Code] = true
	}
	for _, code := range v.MandatoryCommittees() {
		if !present[code] {
			r.AddCriticalError("MISSING_MANDATORY_COMMITTEE",
				fmt.Sprintf("mandatory committee %s is not constituted", code),
				"committees", map[string]any{"committee_code": code})
		}
	}
}

// validateCommitteeComposition checks quorum, chair and secretary of every
// active committee. Quorum shortfall is critical only for mandatory
// committees; missing officers are always critical.
func validateCommitteeComposition(c *chart.Chart, r *Result) {
	for _, cm := range c.ActiveCommittees() {
		details := map[string]any{"committee_code": cm.Code, "committee_name": cm.Name}
		if members := len(cm.ActiveMembers()); members < cm.MinimumQuorum {
			quorumDetails := map[string]any{
				"committee_code": cm.Code,
				"committee_name": cm.Name,
				"active_members": members,
				"minimum_quorum": cm.MinimumQuorum,
			}
			msg := fmt.Sprintf("committee %s has %d active members, below its quorum of %d",
				cm.Name, members, cm.MinimumQuorum)
			if cm.CommitteeType == chart.CommitteeMandatory {
				r.AddCriticalError("COMMITTEE_BELOW_QUORUM", msg, "committees", quorumDetails)
			} else {
				r.AddError("COMMITTEE_BELOW_QUORUM", msg, "committees", quorumDetails)
			}
		}
		if cm.Chairperson == nil {
			r.AddCriticalError("COMMITTEE_NO_CHAIRPERSON",
				fmt.Sprintf("committee %s has no chairperson", cm.Name),
				"committees", details)
		}
		if cm.Secretary == nil {
			r.AddCriticalError("COMMITTEE_NO_SECRETARY",
				fmt.Sprintf("committee %s has no secretary", cm.Name),
				"committees", details)
		}
	}
}

// validateAssignments checks staffing: vacant critical positions are
// critical errors, over-assignment against the authorized headcount is a
// warning.
func validateAssignments(c *chart.Chart, r *Result) {
	for _, p := range c.ActivePositions() {
		current := len(p.CurrentAssignments())
		details := map[string]any{"position_code": p.Code, "position_name": p.Name}
		if p.IsCritical && current == 0 {
			r.AddCriticalError("CRITICAL_POSITION_VACANT",
				fmt.Sprintf("critical position %s has no current assignment", p.Name),
				"assignments", details)
		}
		if p.AuthorizedPositions > 0 && current > p.AuthorizedPositions {
			r.AddWarning("POSITION_OVER_ASSIGNED",
				fmt.Sprintf("position %s has %d assignments against %d authorized",
					p.Name, current, p.AuthorizedPositions),
				"assignments", map[string]any{
					"position_code": p.Code,
					"assignments":   current,
					"authorized":    p.AuthorizedPositions,
				})
		}
	}
}

// validateAuthorities warns when a senior-management position carries no
// explicit authority.
func validateAuthorities(c *chart.Chart, r *Result) {
	for _, p := range c.ActivePositions() {
		if p.HierarchyLevel.IsSenior() && len(p.ActiveAuthorities()) == 0 {
			r.AddWarning("SENIOR_POSITION_NO_AUTHORITIES",
				fmt.Sprintf("senior position %s has no defined authorities", p.Name),
				"authorities", map[string]any{"position_code": p.Code})
		}
	}
}

// validateResponsibilities warns on positions without responsibilities and
// on normative responsibilities that do not cite their norm.
func validateResponsibilities(c *chart.Chart, r *Result) {
	for _, p := range c.ActivePositions() {
		resps := p.ActiveResponsibilities()
		if len(resps) == 0 {
			r.AddWarning("POSITION_NO_RESPONSIBILITIES",
				fmt.Sprintf("position %s has no defined responsibilities", p.Name),
				"responsibilities", map[string]any{"position_code": p.Code})
			continue
		}
		for _, resp := range resps {
			if resp.IsNormativeRequirement && resp.NormativeReference == "" {
				r.AddWarning("NORMATIVE_REFERENCE_MISSING",
					fmt.Sprintf("normative responsibility of %s lacks its normative reference", p.Name),
					"responsibilities", map[string]any{
						"position_code":     p.Code,
						"responsibility_id": resp.ID.String(),
					})
			}
		}
	}
}

// validateStaleness warns when the chart was last validated over a year ago,
// or never.
func validateStaleness(c *chart.Chart, r *Result) {
	if c.LastValidationDate == nil {
		r.AddWarning("NO_PREVIOUS_VALIDATION", "chart has never been validated", "compliance", nil)
		return
	}
	if time.Since(*c.LastValidationDate) > staleValidationAge {
		r.AddWarning("OUTDATED_VALIDATION",
			fmt.Sprintf("last validation was on %s, over a year ago",
				c.LastValidationDate.Format("2006-01-02")),
			"compliance", map[string]any{"last_validation_date": *c.LastValidationDate})
	}
}

// postValidate merges structural statistics into the result summary.
func postValidate(v Validator, c *chart.Chart, r *Result) {
	r.Summary["validator_type"] = fmt.Sprintf("%T", v)
	r.Summary["sector_code"] = v.SectorCode()
	r.Summary["total_areas"] = len(c.ActiveAreas())
	r.Summary["total_positions"] = len(c.ActivePositions())
	r.Summary["total_committees"] = len(c.ActiveCommittees())
	r.Summary["validation_rules_applied"] = v.Rules()
}
