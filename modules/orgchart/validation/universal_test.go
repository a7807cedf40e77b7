package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zentraqms/zentraqms/modules/orgchart/domain/chart"
)

func TestUniversalValidator_CompliantChart_Passes(t *testing.T) {
	result := NewUniversalValidator().Validate(compliantUniversalChart())

	require.Empty(t, result.Errors, "unexpected errors: %v", findingCodes(result.Errors))
	require.Empty(t, result.Warnings, "unexpected warnings: %v", findingCodes(result.Warnings))
	require.True(t, result.Valid)
	require.True(t, result.CompliesWithRegulations())
	require.Equal(t, "UNIVERSAL", result.Summary["sector_code"])
	require.Equal(t, 1, result.Summary["total_areas"])
	require.Equal(t, 2, result.Summary["total_positions"])
}

func TestUniversalValidator_NilChart_AbortsWithCriticalError(t *testing.T) {
	result := NewUniversalValidator().Validate(nil)

	require.False(t, result.Valid)
	require.True(t, result.HasCriticalErrors())
	require.True(t, hasFinding(result.Errors, "CHART_REQUIRED"))
	require.Len(t, result.Errors, 1)
}

func TestUniversalValidator_ChartWithoutActiveAreas_AbortsWithCriticalError(t *testing.T) {
	c := compliantUniversalChart()
	for _, a := range c.Areas {
		a.IsActive = false
	}
	result := NewUniversalValidator().Validate(c)

	require.True(t, hasFinding(result.Errors, "CHART_EMPTY"))
	require.Len(t, result.Errors, 1, "pipeline must abort before structural checks")
}

func TestUniversalValidator_InactiveChart_WarnsButValidates(t *testing.T) {
	c := compliantUniversalChart()
	c.IsActive = false
	result := NewUniversalValidator().Validate(c)

	require.True(t, hasFinding(result.Warnings, "CHART_INACTIVE"))
	require.True(t, result.Valid)
}

func TestUniversalValidator_MissingQualityRole_Critical(t *testing.T) {
	c := compliantUniversalChart()
	for _, p := range c.ActivePositions() {
		if p.Name == "Coordinador de Calidad" {
			p.IsActive = false
		}
	}
	result := NewUniversalValidator().Validate(c)

	f, ok := findFinding(result.Errors, "ISO_NO_QUALITY_MANAGER")
	require.True(t, ok)
	require.True(t, f.IsCritical())
}

func TestUniversalValidator_MissingMandatoryCommittee_Critical(t *testing.T) {
	c := compliantUniversalChart()
	c.Committees = nil
	result := NewUniversalValidator().Validate(c)

	f, ok := findFinding(result.Errors, "MISSING_MANDATORY_COMMITTEE")
	require.True(t, ok)
	require.True(t, f.IsCritical())
	require.Equal(t, "QUALITY_COMMITTEE", f.Details["committee_code"])
}

func TestUniversalValidator_QuorumShortfall_CriticalOnlyForMandatoryCommittees(t *testing.T) {
	c := compliantUniversalChart()
	mandatory := c.Committees[0]
	mandatory.Members = mandatory.Members[:1] // below quorum of 2

	voluntary := testCommittee("INNOVATION_COMMITTEE", "Comité de Innovación",
		mandatory.Chairperson, mandatory.Secretary)
	voluntary.CommitteeType = chart.CommitteeVoluntary
	voluntary.Members = voluntary.Members[:1]
	c.Committees = append(c.Committees, voluntary)

	result := NewUniversalValidator().Validate(c)

	quorumFindings := []Finding{}
	for _, e := range result.Errors {
		if e.Code == "COMMITTEE_BELOW_QUORUM" {
			quorumFindings = append(quorumFindings, e)
		}
	}
	require.Len(t, quorumFindings, 2)

	bySeverity := map[bool]int{}
	for _, f := range quorumFindings {
		bySeverity[f.IsCritical()]++
	}
	require.Equal(t, 1, bySeverity[true], "mandatory committee shortfall must be critical")
	require.Equal(t, 1, bySeverity[false], "voluntary committee shortfall must stay non-critical")
}

func TestUniversalValidator_CommitteeWithoutOfficers_Critical(t *testing.T) {
	c := compliantUniversalChart()
	c.Committees[0].Chairperson = nil
	c.Committees[0].Secretary = nil
	result := NewUniversalValidator().Validate(c)

	require.True(t, hasFinding(result.Errors, "COMMITTEE_NO_CHAIRPERSON"))
	require.True(t, hasFinding(result.Errors, "COMMITTEE_NO_SECRETARY"))
}

func TestUniversalValidator_VacantCriticalPosition_Critical(t *testing.T) {
	c := compliantUniversalChart()
	for _, p := range c.ActivePositions() {
		if p.IsCritical {
			p.Assignments = nil
		}
	}
	result := NewUniversalValidator().Validate(c)

	f, ok := findFinding(result.Errors, "CRITICAL_POSITION_VACANT")
	require.True(t, ok)
	require.True(t, f.IsCritical())
}

func TestUniversalValidator_ClosedAssignmentDoesNotCountAsCurrent(t *testing.T) {
	c := compliantUniversalChart()
	ended := time.Now().UTC().AddDate(0, -1, 0)
	for _, p := range c.ActivePositions() {
		if p.IsCritical {
			for _, a := range p.Assignments {
				a.EndDate = &ended
			}
		}
	}
	result := NewUniversalValidator().Validate(c)

	require.True(t, hasFinding(result.Errors, "CRITICAL_POSITION_VACANT"))
}

func TestUniversalValidator_OverAssignedPosition_Warns(t *testing.T) {
	c := compliantUniversalChart()
	for _, p := range c.ActivePositions() {
		if p.IsCritical {
			p.AuthorizedPositions = 1
			assign(p) // second current assignment
		}
	}
	result := NewUniversalValidator().Validate(c)

	require.True(t, hasFinding(result.Warnings, "POSITION_OVER_ASSIGNED"))
}

func TestUniversalValidator_FlatAndDeepHierarchies_Warn(t *testing.T) {
	flat := compliantUniversalChart()
	flat.HierarchyLevels = 2
	require.True(t, hasFinding(NewUniversalValidator().Validate(flat).Warnings, "ISO_HIERARCHY_TOO_FLAT"))

	deep := compliantUniversalChart()
	deep.HierarchyLevels = 9
	require.True(t, hasFinding(NewUniversalValidator().Validate(deep).Warnings, "ISO_HIERARCHY_TOO_DEEP"))
}

func TestUniversalValidator_AreaWithoutPurpose_Critical(t *testing.T) {
	c := compliantUniversalChart()
	c.Areas[0].MainPurpose = ""
	c.Areas[0].Description = ""
	result := NewUniversalValidator().Validate(c)

	f, ok := findFinding(result.Errors, "ISO_AREA_PURPOSE_UNDEFINED")
	require.True(t, ok)
	require.True(t, f.IsCritical())
}

func TestUniversalValidator_NoTopLevelArea_Critical(t *testing.T) {
	c := compliantUniversalChart()
	c.Areas[0].HierarchyLevel = 2
	result := NewUniversalValidator().Validate(c)

	require.True(t, hasFinding(result.Errors, "ISO_NO_TOP_MANAGEMENT"))
}

func TestUniversalValidator_TopLevelNotDirection_Warns(t *testing.T) {
	c := compliantUniversalChart()
	c.Areas[0].AreaType = chart.AreaTypeDepartment
	result := NewUniversalValidator().Validate(c)

	require.True(t, hasFinding(result.Warnings, "ISO_NO_DIRECTION_AREA"))
}

func TestUniversalValidator_IncompleteRequirements_Warn(t *testing.T) {
	c := compliantUniversalChart()
	p := c.ActivePositions()[0]
	p.Requirements.Experience = ""
	result := NewUniversalValidator().Validate(c)

	f, ok := findFinding(result.Warnings, "ISO_REQUIREMENTS_INCOMPLETE")
	require.True(t, ok)
	require.Contains(t, f.Details["missing_fields"], "experience")
}

func TestUniversalValidator_StaleValidation_Warns(t *testing.T) {
	never := compliantUniversalChart()
	never.LastValidationDate = nil
	require.True(t, hasFinding(NewUniversalValidator().Validate(never).Warnings, "NO_PREVIOUS_VALIDATION"))

	stale := compliantUniversalChart()
	old := time.Now().UTC().AddDate(-2, 0, 0)
	stale.LastValidationDate = &old
	require.True(t, hasFinding(NewUniversalValidator().Validate(stale).Warnings, "OUTDATED_VALIDATION"))
}

func TestUniversalValidator_RACIMatrixDeclaredButUntagged_Error(t *testing.T) {
	c := compliantUniversalChart()
	c.UsesRACIMatrix = true
	for _, p := range c.ActivePositions() {
		p.IsProcessOwner = true // silence the process-owner warning
	}

	r := NewResult()
	NewUniversalValidator().ValidateRACIMatrix(c, r)
	require.True(t, hasFinding(r.Errors, "RACI_MATRIX_EMPTY"))
}

func TestUniversalValidator_RACITaggedWithoutResponsible_Warns(t *testing.T) {
	c := compliantUniversalChart()
	c.UsesRACIMatrix = true
	p := c.ActivePositions()[0]
	p.Responsibilities[0].RACIRole = chart.RACIConsulted

	r := NewResult()
	NewUniversalValidator().ValidateRACIMatrix(c, r)
	require.True(t, hasFinding(r.Warnings, "RACI_NO_RESPONSIBLE_ROLE"))
	require.False(t, hasFinding(r.Errors, "RACI_MATRIX_EMPTY"))
}

func TestUniversalValidator_AuthorityDelegation_SeniorWithoutAuthorityIsCritical(t *testing.T) {
	c := compliantUniversalChart()
	for _, p := range c.ActivePositions() {
		p.Authorities = nil
	}

	r := NewResult()
	NewUniversalValidator().ValidateAuthorityDelegation(c, r)
	require.True(t, hasFinding(r.Errors, "AUTHORITY_DELEGATION_MISSING"))
}

func TestUniversalValidator_MandatoryChecklist(t *testing.T) {
	u := NewUniversalValidator()
	require.Equal(t, []string{"QUALITY_COMMITTEE"}, u.MandatoryCommittees())

	types := map[string]bool{}
	for _, p := range u.MandatoryPositions() {
		types[p.PositionType] = true
	}
	require.True(t, types["CEO"])
	require.True(t, types["QUALITY_MANAGER"])
	require.True(t, types["MANAGEMENT_REPRESENTATIVE"])
}
