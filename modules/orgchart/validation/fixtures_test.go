package validation

import (
	"time"

	"github.com/google/uuid"

	"github.com/zentraqms/zentraqms/modules/orgchart/domain/chart"
)

// testPosition builds a fully-documented active position. Senior levels get a
// delegated authority so the baseline authority check passes.
func testPosition(code, name string, level chart.HierarchyLevel) *chart.Position {
	p := &chart.Position{
		ID:             uuid.New(),
		Code:           code,
		Name:           name,
		HierarchyLevel: level,
		MainPurpose:    "Responsable de " + name,
		IsActive:       true,
		Requirements: chart.Requirements{
			Education:    "Profesional universitario",
			Experience:   "3 años en el cargo o equivalente",
			Competencies: []string{"liderazgo", "gestión"},
		},
		Responsibilities: []*chart.Responsibility{{
			ID:                 uuid.New(),
			Description:        "Gestionar las funciones de " + name,
			ResponsibilityType: chart.ResponsibilityOperational,
			IsActive:           true,
		}},
	}
	if level.IsSenior() {
		p.Authorities = []*chart.Authority{{
			ID:           uuid.New(),
			PositionID:   p.ID,
			DecisionType: chart.DecisionOperational,
			Scope:        "institucional",
			IsActive:     true,
		}}
	}
	return p
}

func assign(p *chart.Position) *chart.Position {
	p.Assignments = append(p.Assignments, &chart.Assignment{
		ID:         uuid.New(),
		PositionID: p.ID,
		PersonID:   uuid.New(),
		StartDate:  time.Now().UTC().AddDate(-1, 0, 0),
		IsActive:   true,
	})
	return p
}

// testCommittee builds a quorate mandatory committee with both officers set.
func testCommittee(code, name string, chair, secretary *chart.Position) *chart.Committee {
	id := uuid.New()
	return &chart.Committee{
		ID:            id,
		Code:          code,
		Name:          name,
		CommitteeType: chart.CommitteeMandatory,
		MinimumQuorum: 2,
		Chairperson:   chair,
		Secretary:     secretary,
		IsActive:      true,
		Members: []*chart.Member{
			{ID: uuid.New(), CommitteeID: id, Position: chair, HasVotingRights: true, IsActive: true},
			{ID: uuid.New(), CommitteeID: id, Position: secretary, HasVotingRights: true, IsActive: true},
		},
	}
}

// compliantUniversalChart satisfies every rule of the ISO baseline: zero
// errors, zero warnings.
func compliantUniversalChart() *chart.Chart {
	director := assign(testPosition("POS-001", "Director General", chart.LevelExecutive))
	director.IsCritical = true
	quality := testPosition("POS-002", "Coordinador de Calidad", chart.LevelSeniorManagement)

	direction := &chart.Area{
		ID:             uuid.New(),
		Code:           "DIR",
		Name:           "Dirección General",
		HierarchyLevel: 1,
		AreaType:       chart.AreaTypeDirection,
		MainPurpose:    "Dirección estratégica de la organización",
		IsActive:       true,
		Positions:      []*chart.Position{director, quality},
	}

	now := time.Now().UTC()
	return &chart.Chart{
		ID:                 uuid.New(),
		OrganizationID:     uuid.New(),
		Name:               "Organigrama General",
		Version:            "1.0",
		SectorCode:         "UNIVERSAL",
		HierarchyLevels:    4,
		IsActive:           true,
		IsCurrent:          true,
		LastValidationDate: &now,
		EffectiveDate:      now,
		Areas:              []*chart.Area{direction},
		Committees: []*chart.Committee{
			testCommittee("QUALITY_COMMITTEE", "Comité de Calidad", director, quality),
		},
	}
}

// compliantHealthChart models an ambulatory IPS that satisfies both the ISO
// baseline and the SOGCS overlay.
func compliantHealthChart() *chart.Chart {
	director := assign(testPosition("POS-001", "Director General", chart.LevelExecutive))
	director.IsCritical = true

	medicalDirector := assign(testPosition("POS-002", "Director Médico", chart.LevelSeniorManagement))
	medicalDirector.IsCritical = true
	medicalDirector.RequiresProfessionalLicense = true
	medicalDirector.Requirements.Licenses = []string{"Tarjeta profesional de médico", "Registro ReTHUS"}

	nursingDirector := testPosition("POS-003", "Director de Enfermería", chart.LevelSeniorManagement)
	nursingDirector.RequiresProfessionalLicense = true
	nursingDirector.Requirements.Licenses = []string{"Tarjeta profesional de enfermería", "Registro ReTHUS"}

	safetyOfficer := assign(testPosition("POS-004", "Referente de Seguridad del Paciente", chart.LevelMiddleManagement))
	safetyOfficer.IsCritical = true
	safetyOfficer.Responsibilities = append(safetyOfficer.Responsibilities, &chart.Responsibility{
		ID:                 uuid.New(),
		Description:        "Liderar el programa de seguridad del paciente",
		ResponsibilityType: chart.ResponsibilityNormative,
		NormativeReference: "Resolución 3100 de 2019",
		IsActive:           true,
	})

	qualityCoordinator := testPosition("POS-005", "Coordinador de Calidad en Salud", chart.LevelMiddleManagement)
	auditor := testPosition("POS-006", "Auditor de Calidad", chart.LevelProfessional)

	areas := []*chart.Area{
		{
			ID: uuid.New(), Code: "DIR", Name: "Dirección General",
			HierarchyLevel: 1, AreaType: chart.AreaTypeDirection,
			MainPurpose: "Dirección estratégica de la IPS", IsActive: true,
			Positions: []*chart.Position{director},
		},
		{
			ID: uuid.New(), Code: "MED", Name: "Subdirección Médica",
			HierarchyLevel: 2, AreaType: chart.AreaTypeSubdirection,
			MainPurpose: "Gobierno clínico y prestación asistencial", IsActive: true,
			Positions: []*chart.Position{medicalDirector, nursingDirector, safetyOfficer},
		},
		{
			ID: uuid.New(), Code: "CAL", Name: "Oficina de Calidad",
			HierarchyLevel: 2, AreaType: chart.AreaTypeOffice,
			MainPurpose: "Gestión del sistema de calidad y PAMEC", IsActive: true,
			Positions: []*chart.Position{qualityCoordinator, auditor},
		},
	}

	committees := []*chart.Committee{
		testCommittee("QUALITY_COMMITTEE", "Comité de Calidad", director, qualityCoordinator),
		testCommittee("PATIENT_SAFETY_COMMITTEE", "Comité de Seguridad del Paciente", medicalDirector, safetyOfficer),
		testCommittee("MEDICAL_HISTORY_COMMITTEE", "Comité de Historia Clínica", medicalDirector, nursingDirector),
		testCommittee("INFECTION_CONTROL_COMMITTEE", "Comité de Infecciones", medicalDirector, nursingDirector),
		testCommittee("MEDICAL_COMMITTEE", "Comité Médico", medicalDirector, director),
		testCommittee("NURSING_COMMITTEE", "Comité de Enfermería", nursingDirector, safetyOfficer),
		testCommittee("ETHICS_COMMITTEE", "Comité de Ética", director, medicalDirector),
		testCommittee("TRANSFUSION_COMMITTEE", "Comité de Transfusión", medicalDirector, nursingDirector),
		testCommittee("PHARMACY_COMMITTEE", "Comité de Farmacia y Terapéutica", medicalDirector, qualityCoordinator),
	}

	now := time.Now().UTC()
	return &chart.Chart{
		ID:                 uuid.New(),
		OrganizationID:     uuid.New(),
		Name:               "Organigrama IPS",
		Version:            "2.0",
		SectorCode:         "HEALTH",
		OrganizationType:   "IPS ambulatoria",
		HierarchyLevels:    4,
		IsActive:           true,
		IsCurrent:          true,
		LastValidationDate: &now,
		EffectiveDate:      now,
		Areas:              areas,
		Committees:         committees,
	}
}

func findingCodes(findings []Finding) []string {
	codes := make([]string, 0, len(findings))
	for _, f := range findings {
		codes = append(codes, f.Code)
	}
	return codes
}

func hasFinding(findings []Finding, code string) bool {
	for _, f := range findings {
		if f.Code == code {
			return true
		}
	}
	return false
}

func findFinding(findings []Finding, code string) (Finding, bool) {
	for _, f := range findings {
		if f.Code == code {
			return f, true
		}
	}
	return Finding{}, false
}
