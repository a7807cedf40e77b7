package validation

import (
	"fmt"
	"time"

	"github.com/zentraqms/zentraqms/modules/orgchart/domain/chart"
	"github.com/zentraqms/zentraqms/modules/orgchart/domain/organization"
)

// Options steer a facade validation run. SectorCode, when set, overrides the
// organization's and chart's own sector. Chained additionally runs the ISO
// baseline alongside the sector overlay.
type Options struct {
	SectorCode string
	Chained    bool
}

// ChartValidator is the single entry point the rest of the system uses to
// validate a chart.
type ChartValidator struct {
	factory *Factory
}

func NewChartValidator(f *Factory) *ChartValidator {
	if f == nil {
		f = NewFactory()
	}
	return &ChartValidator{factory: f}
}

// Validate resolves the right validator (or chain) and runs it. It never
// returns an error; internal failures surface inside the result.
func (cv *ChartValidator) Validate(c *chart.Chart, org *organization.Organization, opts Options) *Result {
	if opts.Chained {
		if org == nil && c != nil {
			org = &organization.Organization{SectorEconomico: c.SectorCode}
		}
		return NewChainedForOrganization(cv.factory, org).Validate(c)
	}
	return cv.factory.Get(cv.resolveSector(c, org, opts)).Validate(c)
}

func (cv *ChartValidator) resolveSector(c *chart.Chart, org *organization.Organization, opts Options) string {
	if opts.SectorCode != "" {
		return opts.SectorCode
	}
	if org != nil {
		return org.SectorCode()
	}
	if c != nil {
		return c.SectorCode
	}
	return ""
}

// ComplianceSummary validates the chart and flattens the outcome into the
// report shape consumed by dashboards: compliance verdict, linear penalty
// score (100 − errors·10 − warnings·2, floored at 0 — an inherited business
// policy, not a derived constant) and counts.
func (cv *ChartValidator) ComplianceSummary(c *chart.Chart, org *organization.Organization, opts Options) map[string]any {
	sector := cv.resolveSector(c, org, opts)
	result := cv.Validate(c, org, opts)

	score := 100 - len(result.Errors)*10 - len(result.Warnings)*2
	if score < 0 {
		score = 0
	}

	var lastValidation *time.Time
	if c != nil {
		lastValidation = c.LastValidationDate
	}
	return map[string]any{
		"is_compliant":          result.CompliesWithRegulations(),
		"compliance_score":      score,
		"total_errors":          len(result.Errors),
		"total_warnings":        len(result.Warnings),
		"total_recommendations": len(result.Recommendations),
		"critical_errors":       len(result.CriticalErrors()),
		"last_validation":       lastValidation,
		"validator_used":        result.Summary["validator_type"],
		"sector_code":           sector,
	}
}

// ValidationChecklist lists the rules, mandatory committees and mandatory
// positions the given sector's validator will enforce, for authoring UIs.
func (cv *ChartValidator) ValidationChecklist(sectorCode string) map[string]any {
	v := cv.factory.Get(sectorCode)
	positions := make([]map[string]any, 0, len(v.MandatoryPositions()))
	for _, p := range v.MandatoryPositions() {
		positions = append(positions, map[string]any{
			"position_type":        p.PositionType,
			"name":                 p.Name,
			"hierarchy_level":      string(p.HierarchyLevel),
			"is_critical":          p.IsCritical,
			"min_quantity":         p.MinQuantity,
			"regulatory_reference": p.RegulatoryReference,
		})
	}
	return map[string]any{
		"sector_code":          v.SectorCode(),
		"validator_type":       fmt.Sprintf("%T", v),
		"rules":                v.Rules(),
		"mandatory_committees": v.MandatoryCommittees(),
		"mandatory_positions":  positions,
	}
}
