package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/zentraqms/zentraqms/modules/orgchart/domain/organization"
	"github.com/zentraqms/zentraqms/pkg/eventbus"
)

// Compliance status tri-state.
const (
	StatusCompliant          = "compliant"
	StatusPartiallyCompliant = "partially_compliant"
	StatusNonCompliant       = "non_compliant"
	StatusNoChart            = "no_chart"
)

// Recommendation is one remediation suggestion derived from a failing
// validation category.
type Recommendation struct {
	Type           string   `json:"type"`
	Priority       string   `json:"priority"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	SpecificIssues []string `json:"specific_issues"`
}

// ComplianceService computes an organization's compliance standing from its
// current chart. The score formula (100 − critical·10 − warnings·2, floored
// at 0) is an inherited business policy kept for report compatibility.
type ComplianceService struct {
	repo       ChartRepository
	validation *ChartValidationService
	publisher  eventbus.EventBus
}

func NewComplianceService(repo ChartRepository, validation *ChartValidationService, publisher eventbus.EventBus) *ComplianceService {
	if validation == nil {
		validation = NewChartValidationService()
	}
	return &ComplianceService{repo: repo, validation: validation, publisher: publisher}
}

// CheckComplianceStatus returns the compliance report for the organization's
// current chart, recomputing and writing back the cached status when the
// chart carries none. The write-back is best-effort: a failure leaves stale
// cache, and the next call revalidates.
func (s *ComplianceService) CheckComplianceStatus(ctx context.Context, org *organization.Organization) (map[string]any, error) {
	if org == nil {
		return nil, newServiceError(400, "ORG_REQUIRED", "organization is required", nil)
	}

	current, err := s.repo.CurrentChart(ctx, org.ID)
	if err != nil {
		if errors.Is(err, ErrNoCurrentChart) {
			return map[string]any{
				"status": StatusNoChart,
				"score":  0,
				"recommendations": []Recommendation{{
					Type:        "structure",
					Priority:    "high",
					Title:       "Create an organizational chart",
					Description: "The organization has no current organizational chart; compliance cannot be assessed.",
				}},
			}, nil
		}
		return nil, err
	}
	if current == nil || !current.IsCurrent {
		return map[string]any{"status": StatusNoChart, "score": 0}, nil
	}

	if cached, ok := current.ComplianceStatus["status"]; ok && cached != nil {
		return current.ComplianceStatus, nil
	}

	sector, err := s.repo.SectorByCode(ctx, current.SectorCode)
	if err != nil {
		logWithFields(ctx, logrus.WarnLevel, "sector baseline unavailable, compliance cross-checks skipped", logrus.Fields{
			"sector_code": current.SectorCode,
			"error":       err.Error(),
		})
		sector = nil
	}

	report := s.validation.ValidateChart(current, sector, nil)
	critical, _ := report.Summary["critical_errors"].(int)
	warnings, _ := report.Summary["total_warnings"].(int)

	score := 100 - critical*10 - warnings*2
	if score < 0 {
		score = 0
	}

	status := StatusCompliant
	switch {
	case critical > 0:
		status = StatusNonCompliant
	case warnings > 0:
		status = StatusPartiallyCompliant
	}

	result := map[string]any{
		"status":          status,
		"score":           score,
		"critical_errors": critical,
		"warnings":        warnings,
		"checked_at":      time.Now().UTC(),
		"chart_id":        current.ID,
		"chart_version":   current.Version,
		"recommendations": s.generateRecommendations(report),
	}

	now := time.Now().UTC()
	if err := s.repo.SaveComplianceStatus(ctx, current.ID, result, now); err != nil {
		logWithFields(ctx, logrus.WarnLevel, "compliance status write-back failed", logrus.Fields{
			"chart_id": current.ID,
			"error":    err.Error(),
		})
	}

	if s.publisher != nil {
		s.publisher.Publish(ctx, &ChartValidated{
			ChartID:        current.ID,
			OrganizationID: org.ID,
			Status:         status,
			Score:          score,
			ValidatedAt:    now,
		})
	}
	return result, nil
}

// generateRecommendations maps each failing validation category onto a
// remediation entry. Structure and compliance failures block regulatory
// standing and rank high; completeness gaps rank medium.
func (s *ComplianceService) generateRecommendations(report *ValidationReport) []Recommendation {
	recs := []Recommendation{}
	for _, sr := range report.FailedResults() {
		issues := append([]string{}, sr.Errors...)
		switch sr.ValidationType {
		case ValidationStructure:
			recs = append(recs, Recommendation{
				Type:           "structure",
				Priority:       "high",
				Title:          "Fix structural defects",
				Description:    "The chart's hierarchy or reporting chains are inconsistent and must be corrected.",
				SpecificIssues: issues,
			})
		case ValidationCompliance:
			recs = append(recs, Recommendation{
				Type:           "compliance",
				Priority:       "high",
				Title:          "Cover sector requirements",
				Description:    "Mandatory positions or committees required by the sector are missing.",
				SpecificIssues: issues,
			})
		case ValidationConsistency:
			recs = append(recs, Recommendation{
				Type:           "consistency",
				Priority:       "high",
				Title:          "Resolve data inconsistencies",
				Description:    "Duplicate codes or contradictory values must be cleaned up.",
				SpecificIssues: issues,
			})
		}
	}
	for _, sr := range report.Results {
		if sr.ValidationType == ValidationCompleteness && len(sr.Warnings) > 0 {
			recs = append(recs, Recommendation{
				Type:           "completeness",
				Priority:       "medium",
				Title:          "Complete the chart's documentation",
				Description:    fmt.Sprintf("%d completeness gaps were found (missing purposes, requirements or positions).", len(sr.Warnings)),
				SpecificIssues: sr.Warnings,
			})
		}
	}
	return recs
}
