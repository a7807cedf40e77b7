package validation

import (
	"github.com/zentraqms/zentraqms/modules/orgchart/domain/chart"
	"github.com/zentraqms/zentraqms/modules/orgchart/domain/organization"
)

// ChainedValidator runs several validators over the same chart and merges
// their results into one report, recording per-validator provenance in the
// summary.
type ChainedValidator struct {
	validators []Validator
}

func NewChainedValidator(validators ...Validator) *ChainedValidator {
	return &ChainedValidator{validators: validators}
}

// NewChainedForOrganization always includes the ISO baseline and adds the
// organization's sector validator when it differs, so the baseline is never
// double-counted for universal-sector organizations.
func NewChainedForOrganization(f *Factory, org *organization.Organization) *ChainedValidator {
	universal := NewUniversalValidator()
	sector := f.ForOrganization(org)
	if sector.SectorCode() == universal.SectorCode() {
		return NewChainedValidator(universal)
	}
	return NewChainedValidator(universal, sector)
}

// Validate runs every constituent validator's full pipeline and merges the
// findings. The combined result is invalid if any constituent failed.
func (cv *ChainedValidator) Validate(c *chart.Chart) *Result {
	combined := NewResult()
	provenance := make([]map[string]any, 0, len(cv.validators))
	for _, v := range cv.validators {
		res := v.Validate(c)
		combined.Merge(res)
		provenance = append(provenance, map[string]any{
			"sector_code":    v.SectorCode(),
			"is_valid":       res.Valid,
			"total_errors":   len(res.Errors),
			"total_warnings": len(res.Warnings),
		})
	}
	combined.Summary["validators_applied"] = provenance
	return combined
}
