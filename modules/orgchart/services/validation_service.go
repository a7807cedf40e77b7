package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/zentraqms/zentraqms/modules/orgchart/domain/chart"
)

type ValidationType string

const (
	ValidationStructure    ValidationType = "structure"
	ValidationCompliance   ValidationType = "compliance"
	ValidationCompleteness ValidationType = "completeness"
	ValidationConsistency  ValidationType = "consistency"
)

// AllValidationTypes is the default set ValidateChart runs.
var AllValidationTypes = []ValidationType{
	ValidationStructure,
	ValidationCompliance,
	ValidationCompleteness,
	ValidationConsistency,
}

// SubResult is the outcome of one validation pass.
type SubResult struct {
	ValidationType ValidationType `json:"validation_type"`
	Status         string         `json:"status"` // passed | failed
	Errors         []string       `json:"errors"`
	Warnings       []string       `json:"warnings"`
	CriticalErrors int            `json:"critical_errors"`
	Details        map[string]any `json:"details,omitempty"`
}

// ValidationReport aggregates the sub-results of one ValidateChart call.
// Every error of every pass counts as critical for the aggregate verdict.
type ValidationReport struct {
	ChartID uuid.UUID      `json:"chart_id"`
	IsValid bool           `json:"is_valid"`
	Results []SubResult    `json:"results"`
	Summary map[string]any `json:"summary"`
}

// FailedResults returns the sub-results whose status is failed.
func (r *ValidationReport) FailedResults() []SubResult {
	var out []SubResult
	for _, sr := range r.Results {
		if sr.Status == "failed" {
			out = append(out, sr)
		}
	}
	return out
}

// ChartValidationService runs the structural/compliance/completeness/
// consistency pass that complements the sector validators. It works on an
// already-loaded chart aggregate and performs no I/O.
type ChartValidationService struct{}

func NewChartValidationService() *ChartValidationService {
	return &ChartValidationService{}
}

// ValidateChart runs the requested passes (all of them when types is empty)
// and aggregates the outcome. The sector argument supplies the compliance
// baseline and may be nil, which skips the sector cross-checks.
func (s *ChartValidationService) ValidateChart(c *chart.Chart, sector *chart.Sector, types []ValidationType) *ValidationReport {
	if len(types) == 0 {
		types = AllValidationTypes
	}
	report := &ValidationReport{Summary: map[string]any{}}
	if c != nil {
		report.ChartID = c.ID
	}

	for _, t := range types {
		var sr SubResult
		switch t {
		case ValidationStructure:
			sr = s.validateStructure(c)
		case ValidationCompliance:
			sr = s.validateCompliance(c, sector)
		case ValidationCompleteness:
			sr = s.validateCompleteness(c)
		case ValidationConsistency:
			sr = s.validateConsistency(c)
		default:
			continue
		}
		report.Results = append(report.Results, sr)
	}

	critical := 0
	warnings := 0
	for _, sr := range report.Results {
		critical += len(sr.Errors)
		warnings += len(sr.Warnings)
	}
	report.IsValid = critical == 0
	report.Summary["critical_errors"] = critical
	report.Summary["total_warnings"] = warnings
	report.Summary["validations_run"] = len(report.Results)
	return report
}

func newSubResult(t ValidationType) SubResult {
	return SubResult{
		ValidationType: t,
		Status:         "passed",
		Errors:         []string{},
		Warnings:       []string{},
		Details:        map[string]any{},
	}
}

func (sr *SubResult) addError(msg string) {
	sr.Errors = append(sr.Errors, msg)
	sr.Status = "failed"
	sr.CriticalErrors++
}

func (sr *SubResult) addWarning(msg string) {
	sr.Warnings = append(sr.Warnings, msg)
}

// validateStructure checks the shape of the two graphs the chart carries:
// the area tree and the position reporting chain. Cycle walks track visited
// nodes so a malformed graph terminates with an error instead of looping.
func (s *ChartValidationService) validateStructure(c *chart.Chart) SubResult {
	sr := newSubResult(ValidationStructure)
	if c == nil {
		sr.addError("no chart provided")
		return sr
	}

	for _, a := range c.ActiveAreas() {
		if a.Parent != nil && a.HierarchyLevel <= a.Parent.HierarchyLevel {
			sr.addError(fmt.Sprintf(
				"area %s is at level %d, not below its parent %s at level %d",
				a.Name, a.HierarchyLevel, a.Parent.Name, a.Parent.HierarchyLevel))
		}
		if c.HierarchyLevels > 0 && a.HierarchyLevel > c.HierarchyLevels {
			sr.addError(fmt.Sprintf(
				"area %s is at level %d, beyond the chart's declared %d levels",
				a.Name, a.HierarchyLevel, c.HierarchyLevels))
		}
		if a.Parent == nil && a.HierarchyLevel > 1 {
			sr.addWarning(fmt.Sprintf("area %s at level %d has no parent area", a.Name, a.HierarchyLevel))
		}
		if cycleAt, ok := areaCycle(a); ok {
			sr.addError(fmt.Sprintf("circular parent reference detected at area %s", cycleAt.Name))
		}
	}

	for _, p := range c.ActivePositions() {
		if cycleAt, ok := reportingCycle(p); ok {
			sr.addError(fmt.Sprintf("circular reporting chain detected at position %s", cycleAt.Name))
		}
	}
	return sr
}

// areaCycle walks the parent chain from a; it returns the first revisited
// area when the chain loops.
func areaCycle(a *chart.Area) (*chart.Area, bool) {
	visited := map[uuid.UUID]bool{}
	for cur := a; cur != nil; cur = cur.Parent {
		if visited[cur.ID] {
			return cur, true
		}
		visited[cur.ID] = true
	}
	return nil, false
}

// reportingCycle walks the reports-to chain from p; it returns the first
// revisited position when the chain loops.
func reportingCycle(p *chart.Position) (*chart.Position, bool) {
	visited := map[uuid.UUID]bool{}
	for cur := p; cur != nil; cur = cur.ReportsTo {
		if visited[cur.ID] {
			return cur, true
		}
		visited[cur.ID] = true
	}
	return nil, false
}

// validateCompliance cross-checks the chart against the sector's configured
// baseline.
func (s *ChartValidationService) validateCompliance(c *chart.Chart, sector *chart.Sector) SubResult {
	sr := newSubResult(ValidationCompliance)
	if c == nil {
		sr.addError("no chart provided")
		return sr
	}
	if sector == nil {
		sr.Details["sector"] = "not configured"
		return sr
	}
	sr.Details["sector"] = sector.Code

	positionTypes := map[string]bool{}
	for _, p := range c.ActivePositions() {
		if p.PositionType != "" {
			positionTypes[p.PositionType] = true
		}
	}
	for _, required := range sector.MandatoryPositions() {
		if !positionTypes[required] {
			sr.addError(fmt.Sprintf("mandatory position type %s is not defined in the chart", required))
		}
	}

	committeeCodes := map[string]bool{}
	for _, cm := range c.ActiveCommittees() {
		committeeCodes[cm.Code] = true
	}
	for _, required := range sector.MandatoryCommittees() {
		if !committeeCodes[required] {
			sr.addError(fmt.Sprintf("mandatory committee %s is not constituted", required))
		}
	}

	if min := sector.MinimumHierarchyLevels(); min > 0 && c.HierarchyLevels < min {
		sr.addError(fmt.Sprintf(
			"chart declares %d hierarchy levels; sector %s requires at least %d",
			c.HierarchyLevels, sector.Code, min))
	}
	return sr
}

// validateCompleteness emits warnings only; an incomplete chart is usable
// but flagged.
func (s *ChartValidationService) validateCompleteness(c *chart.Chart) SubResult {
	sr := newSubResult(ValidationCompleteness)
	if c == nil {
		sr.addWarning("no chart provided")
		return sr
	}

	hasCritical := false
	for _, a := range c.ActiveAreas() {
		if len(a.ActivePositions()) == 0 {
			sr.addWarning(fmt.Sprintf("area %s has no positions", a.Name))
		}
	}
	for _, p := range c.ActivePositions() {
		if p.MainPurpose == "" {
			sr.addWarning(fmt.Sprintf("position %s has no main purpose", p.Name))
		}
		if p.Requirements.IsEmpty() {
			sr.addWarning(fmt.Sprintf("position %s has no qualification requirements", p.Name))
		}
		if p.IsCritical {
			hasCritical = true
		}
	}
	if !hasCritical {
		sr.addWarning("chart flags no position as critical")
	}
	return sr
}

// validateConsistency checks internal data coherence: duplicate codes and
// inverted salary ranges.
func (s *ChartValidationService) validateConsistency(c *chart.Chart) SubResult {
	sr := newSubResult(ValidationConsistency)
	if c == nil {
		sr.addError("no chart provided")
		return sr
	}

	areaCodes := map[string]int{}
	for _, a := range c.ActiveAreas() {
		areaCodes[a.Code]++
	}
	for code, n := range areaCodes {
		if n > 1 {
			sr.addError(fmt.Sprintf("area code %s is used by %d areas", code, n))
		}
	}

	for _, a := range c.ActiveAreas() {
		positionCodes := map[string]int{}
		for _, p := range a.ActivePositions() {
			positionCodes[p.Code]++
		}
		for code, n := range positionCodes {
			if n > 1 {
				sr.addError(fmt.Sprintf("position code %s is used by %d positions within area %s", code, n, a.Name))
			}
		}
	}

	for _, p := range c.ActivePositions() {
		if p.SalaryRangeMin != nil && p.SalaryRangeMax != nil &&
			p.SalaryRangeMin.GreaterThan(*p.SalaryRangeMax) {
			sr.addError(fmt.Sprintf(
				"position %s has salary range minimum %s above maximum %s",
				p.Name, p.SalaryRangeMin.String(), p.SalaryRangeMax.String()))
		}
	}
	return sr
}
