package validation

import (
	"fmt"
	"strings"

	"github.com/zentraqms/zentraqms/modules/orgchart/domain/chart"
)

// SOGCS role and committee detection runs on name substrings, accented and
// unaccented variants included. Charts name their positions in free-text
// Spanish; the keyword tables below are the regulatory matching rule itself
// and misclassify charts authored in other languages or conventions.
var (
	medicalAreaKeywords      = []string{"med", "médic"}
	qualityAreaKeywords      = []string{"calidad", "quality"}
	healthProfessionKeywords = []string{
		"médico", "medico",
		"enfermer",
		"odontólog", "odontolog",
		"psicólog", "psicolog",
		"fisioterapeut",
		"bacteriólog", "bacteriolog",
		"nutricionist",
		"terapeuta",
		"instrumentador",
		"fonoaudiólog", "fonoaudiolog",
	}
	medicalDirectorLeadKeywords  = []string{"director", "jefe"}
	medicalDirectorFieldKeywords = []string{"médico", "medico", "clínico", "clinico", "asistencial"}
	healthQualityFieldKeywords   = []string{"salud", "médica", "medica", "clínica", "clinica", "asistencial"}
	licenseEvidenceKeywords      = []string{"profesional", "rethus"}
	inpatientOrgKeywords         = []string{"hospital", "clínica", "clinica"}
)

// HealthValidator overlays Colombia's SOGCS requirements on top of the ISO
// baseline. It runs every universal check first, then the health-specific
// ones.
type HealthValidator struct {
	*UniversalValidator
}

func NewHealthValidator() *HealthValidator {
	return &HealthValidator{UniversalValidator: NewUniversalValidator()}
}

func (h *HealthValidator) SectorCode() string { return "HEALTH" }

func (h *HealthValidator) Rules() []string {
	return append(h.UniversalValidator.Rules(),
		"sogcs_medical_direction",
		"sogcs_quality_area",
		"sogcs_service_habilitation",
		"sogcs_professional_licenses",
		"sogcs_mandatory_health_positions",
		"sogcs_mandatory_health_committees",
		"sogcs_pamec",
		"sogcs_patient_safety_responsibility",
	)
}

func (h *HealthValidator) MandatoryCommittees() []string {
	codes := h.UniversalValidator.MandatoryCommittees()
	seen := map[string]bool{}
	for _, c := range codes {
		seen[c] = true
	}
	for _, c := range []string{
		"PATIENT_SAFETY_COMMITTEE",
		"QUALITY_COMMITTEE",
		"MEDICAL_HISTORY_COMMITTEE",
		"INFECTION_CONTROL_COMMITTEE",
		"MEDICAL_COMMITTEE",
		"NURSING_COMMITTEE",
		"ETHICS_COMMITTEE",
		"TRANSFUSION_COMMITTEE",
		"PHARMACY_COMMITTEE",
	} {
		if !seen[c] {
			seen[c] = true
			codes = append(codes, c)
		}
	}
	return codes
}

func (h *HealthValidator) MandatoryPositions() []PositionRequirement {
	return append(h.UniversalValidator.MandatoryPositions(),
		PositionRequirement{
			PositionType:           "MEDICAL_DIRECTOR",
			Name:                   "Director Médico",
			Description:            "Leads clinical governance and the medical staff",
			HierarchyLevel:         chart.LevelSeniorManagement,
			IsCritical:             true,
			RequiredQualifications: []string{"Medicina", "Especialización en áreas administrativas o clínicas"},
			RequiredLicenses:       []string{"Tarjeta profesional de médico", "Registro ReTHUS"},
			MinQuantity:            1,
			RegulatoryReference:    "SOGCS - Decreto 1011 de 2006",
		},
		PositionRequirement{
			PositionType:           "PATIENT_SAFETY_OFFICER",
			Name:                   "Referente de Seguridad del Paciente",
			Description:            "Operates the patient-safety program and event reporting",
			HierarchyLevel:         chart.LevelMiddleManagement,
			IsCritical:             true,
			RequiredQualifications: []string{"Profesional de la salud", "Formación en seguridad del paciente"},
			RequiredLicenses:       []string{"Registro ReTHUS"},
			MinQuantity:            1,
			RegulatoryReference:    "SOGCS - Resolución 3100 de 2019",
		},
		PositionRequirement{
			PositionType:           "NURSING_DIRECTOR",
			Name:                   "Director de Enfermería",
			Description:            "Leads the nursing staff and care standards",
			HierarchyLevel:         chart.LevelSeniorManagement,
			IsCritical:             false,
			RequiredQualifications: []string{"Enfermería", "Experiencia en gestión asistencial"},
			RequiredLicenses:       []string{"Tarjeta profesional de enfermería", "Registro ReTHUS"},
			MinQuantity:            1,
			RegulatoryReference:    "SOGCS - Resolución 3100 de 2019",
		},
		PositionRequirement{
			PositionType:           "HEALTH_QUALITY_COORDINATOR",
			Name:                   "Coordinador de Calidad en Salud",
			Description:            "Runs PAMEC and habilitation self-assessment",
			HierarchyLevel:         chart.LevelMiddleManagement,
			IsCritical:             false,
			RequiredQualifications: []string{"Profesional de la salud o áreas administrativas", "Formación en auditoría en salud"},
			RequiredLicenses:       []string{"Registro ReTHUS cuando aplique"},
			MinQuantity:            1,
			RegulatoryReference:    "SOGCS - Decreto 1011 de 2006, componente PAMEC",
		},
	)
}

func (h *HealthValidator) Validate(c *chart.Chart) *Result {
	return runPipeline(h, c)
}

func (h *HealthValidator) validateStructure(c *chart.Chart, r *Result) {
	h.UniversalValidator.validateStructure(c, r)

	hasMedicalDirection := false
	hasQualityArea := false
	for _, a := range c.ActiveAreas() {
		if (a.AreaType == chart.AreaTypeDirection || a.AreaType == chart.AreaTypeSubdirection) &&
			matchesAny(a.Name, medicalAreaKeywords) {
			hasMedicalDirection = true
		}
		if matchesAny(a.Name, qualityAreaKeywords) {
			hasQualityArea = true
		}
	}
	if !hasMedicalDirection {
		r.AddCriticalError("SOGCS_NO_MEDICAL_DIRECTION",
			"no direction or subdirection area evidences a medical direction",
			"structure", nil)
	}
	if !hasQualityArea {
		r.AddCriticalError("SOGCS_NO_QUALITY_AREA",
			"no area is identifiable as quality management",
			"structure", nil)
	}

	for _, s := range c.ActiveServices() {
		details := map[string]any{"service_code": s.Code, "service_name": s.Name}
		if s.ResponsibleArea == nil {
			r.AddCriticalError("SOGCS_SERVICE_NO_RESPONSIBLE_AREA",
				fmt.Sprintf("habilitated service %s has no responsible area", s.Name),
				"structure", details)
		}
		if s.ResponsiblePosition == nil {
			r.AddWarning("SOGCS_SERVICE_NO_RESPONSIBLE_POSITION",
				fmt.Sprintf("habilitated service %s has no responsible position", s.Name),
				"structure", details)
		} else if !s.ResponsiblePosition.RequiresProfessionalLicense {
			r.AddCriticalError("SOGCS_SERVICE_RESPONSIBLE_UNLICENSED",
				fmt.Sprintf("responsible position for service %s does not require a professional license", s.Name),
				"structure", map[string]any{
					"service_code":  s.Code,
					"position_code": s.ResponsiblePosition.Code,
				})
		}
	}
}

func (h *HealthValidator) validatePositions(c *chart.Chart, r *Result) {
	h.UniversalValidator.validatePositions(c, r)

	positions := c.ActivePositions()
	for _, p := range positions {
		if !matchesAny(p.Name, healthProfessionKeywords) && !matchesAny(p.PositionType, healthProfessionKeywords) {
			continue
		}
		if !p.RequiresProfessionalLicense {
			r.AddCriticalError("SOGCS_LICENSE_FLAG_MISSING",
				fmt.Sprintf("health-professional position %s is not flagged as requiring a professional license", p.Name),
				"positions", map[string]any{"position_code": p.Code})
		}
		if !licensesInclude(p.Requirements.Licenses, licenseEvidenceKeywords) {
			r.AddWarning("SOGCS_LICENSE_EVIDENCE_MISSING",
				fmt.Sprintf("position %s lists no professional-license or ReTHUS requirement", p.Name),
				"positions", map[string]any{"position_code": p.Code})
		}
	}

	hasMedicalDirector := false
	hasPatientSafetyOfficer := false
	hasHealthQualityManager := false
	for _, p := range positions {
		name := strings.ToLower(p.Name)
		if matchesAny(name, medicalDirectorLeadKeywords) && matchesAny(name, medicalDirectorFieldKeywords) {
			hasMedicalDirector = true
		}
		if strings.Contains(name, "seguridad") && strings.Contains(name, "paciente") {
			hasPatientSafetyOfficer = true
		}
		if strings.Contains(name, "calidad") && matchesAny(name, healthQualityFieldKeywords) {
			hasHealthQualityManager = true
		}
	}
	if !hasMedicalDirector {
		r.AddCriticalError("SOGCS_NO_MEDICAL_DIRECTOR",
			"no position is identifiable as the medical director",
			"positions", nil)
	}
	if !hasPatientSafetyOfficer {
		r.AddCriticalError("SOGCS_NO_PATIENT_SAFETY_OFFICER",
			"no position is identifiable as the patient-safety officer",
			"positions", nil)
	}
	if !hasHealthQualityManager {
		r.AddWarning("SOGCS_NO_HEALTH_QUALITY_MANAGER",
			"no position is identifiable as quality management specific to health services",
			"positions", nil)
	}
}

func (h *HealthValidator) validateCommittees(c *chart.Chart, r *Result) {
	validateMandatoryCommittees(h, c, r)
	validateCommitteeComposition(c, r)

	hasPatientSafety := false
	hasPAMEC := false
	hasMedicalHistory := false
	hasInfectionControl := false
	for _, cm := range c.ActiveCommittees() {
		name := strings.ToLower(cm.Name)
		if strings.Contains(name, "seguridad") && strings.Contains(name, "paciente") {
			hasPatientSafety = true
		}
		if strings.Contains(name, "calidad") || strings.Contains(name, "pamec") {
			hasPAMEC = true
		}
		if strings.Contains(name, "historia") && (strings.Contains(name, "clínica") || strings.Contains(name, "clinica")) {
			hasMedicalHistory = true
		}
		if strings.Contains(name, "infeccion") || strings.Contains(name, "infección") {
			hasInfectionControl = true
		}
	}
	if !hasPatientSafety {
		r.AddCriticalError("SOGCS_NO_PATIENT_SAFETY_COMMITTEE",
			"no committee is identifiable as the patient-safety committee",
			"committees", nil)
	}
	if !hasPAMEC {
		r.AddCriticalError("SOGCS_NO_PAMEC_COMMITTEE",
			"no committee is identifiable as the quality/PAMEC committee",
			"committees", nil)
	}
	if !hasMedicalHistory {
		r.AddWarning("SOGCS_NO_MEDICAL_HISTORY_COMMITTEE",
			"no committee is identifiable as the medical-history committee",
			"committees", nil)
	}
	if matchesAny(c.OrganizationType, inpatientOrgKeywords) && !hasInfectionControl {
		r.AddWarning("SOGCS_NO_INFECTION_CONTROL_COMMITTEE",
			"inpatient institution has no identifiable infection-control committee",
			"committees", nil)
	}
}

func (h *HealthValidator) validateSectorSpecific(c *chart.Chart, r *Result) {
	h.validatePAMEC(c, r)
	h.validatePatientSafetyResponsibility(c, r)
	h.validateServiceProfessionals(c, r)
}

// validatePAMEC checks that the quality-improvement audit program has an
// organizational home: a quality area staffed with at least one auditor.
func (h *HealthValidator) validatePAMEC(c *chart.Chart, r *Result) {
	var qualityArea *chart.Area
	for _, a := range c.ActiveAreas() {
		if matchesAny(a.Name, qualityAreaKeywords) {
			qualityArea = a
			break
		}
	}
	if qualityArea == nil {
		r.AddCriticalError("SOGCS_PAMEC_NO_QUALITY_AREA",
			"PAMEC cannot operate: chart has no quality area",
			"sector_specific", nil)
		return
	}
	for _, p := range qualityArea.ActivePositions() {
		if strings.Contains(strings.ToLower(p.Name), "auditor") {
			return
		}
	}
	r.AddWarning("SOGCS_PAMEC_NO_AUDITOR",
		fmt.Sprintf("quality area %s has no auditor position for PAMEC", qualityArea.Name),
		"sector_specific", map[string]any{"area_code": qualityArea.Code})
}

func (h *HealthValidator) validatePatientSafetyResponsibility(c *chart.Chart, r *Result) {
	for _, p := range c.ActivePositions() {
		for _, resp := range p.ActiveResponsibilities() {
			desc := strings.ToLower(resp.Description)
			if strings.Contains(desc, "seguridad") && strings.Contains(desc, "paciente") {
				return
			}
		}
	}
	r.AddWarning("SOGCS_NO_PATIENT_SAFETY_RESPONSIBILITY",
		"no position carries an explicit patient-safety responsibility",
		"sector_specific", nil)
}

func (h *HealthValidator) validateServiceProfessionals(c *chart.Chart, r *Result) {
	for _, s := range c.ActiveServices() {
		if s.ResponsiblePosition == nil {
			r.AddWarning("SOGCS_SERVICE_NO_RESPONSIBLE_PROFESSIONAL",
				fmt.Sprintf("habilitated service %s has no responsible professional assigned", s.Name),
				"sector_specific", map[string]any{"service_code": s.Code})
		}
	}
}

// licensesInclude reports whether any license entry contains any of the
// keywords.
func licensesInclude(licenses []string, keywords []string) bool {
	for _, l := range licenses {
		if matchesAny(l, keywords) {
			return true
		}
	}
	return false
}
