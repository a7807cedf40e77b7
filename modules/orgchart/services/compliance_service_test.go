package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/zentraqms/zentraqms/modules/orgchart/domain/chart"
	"github.com/zentraqms/zentraqms/modules/orgchart/domain/organization"
	"github.com/zentraqms/zentraqms/pkg/eventbus"
)

func testOrg() *organization.Organization {
	return &organization.Organization{ID: uuid.New(), Name: "Org de Prueba"}
}

func TestCheckComplianceStatus_NilOrganization_Rejected(t *testing.T) {
	svc := NewComplianceService(newFakeChartRepo(), nil, nil)

	_, err := svc.CheckComplianceStatus(context.Background(), nil)
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, 400, svcErr.Status)
	require.Equal(t, "ORG_REQUIRED", svcErr.Code)
}

func TestCheckComplianceStatus_NoCurrentChart_ReturnsNoChartWithRecommendation(t *testing.T) {
	repo := newFakeChartRepo()
	repo.currentErr = ErrNoCurrentChart
	svc := NewComplianceService(repo, nil, nil)

	result, err := svc.CheckComplianceStatus(context.Background(), testOrg())
	require.NoError(t, err)
	require.Equal(t, StatusNoChart, result["status"])
	require.Equal(t, 0, result["score"])

	recs, ok := result["recommendations"].([]Recommendation)
	require.True(t, ok)
	require.Len(t, recs, 1)
	require.Equal(t, "high", recs[0].Priority)
}

func TestCheckComplianceStatus_RepositoryFailure_Propagates(t *testing.T) {
	repo := newFakeChartRepo()
	repo.currentErr = errors.New("connection refused")
	svc := NewComplianceService(repo, nil, nil)

	_, err := svc.CheckComplianceStatus(context.Background(), testOrg())
	require.Error(t, err)
}

func TestCheckComplianceStatus_SupersededChart_ReportsNoChart(t *testing.T) {
	repo := newFakeChartRepo()
	c := completeChart()
	c.IsCurrent = false
	repo.current = c
	svc := NewComplianceService(repo, nil, nil)

	result, err := svc.CheckComplianceStatus(context.Background(), testOrg())
	require.NoError(t, err)
	require.Equal(t, StatusNoChart, result["status"])
}

func TestCheckComplianceStatus_NilChartWithoutError_ReportsNoChart(t *testing.T) {
	// A lax repository implementation may signal "no chart" as (nil, nil)
	// instead of ErrNoCurrentChart; the service must not dereference it.
	svc := NewComplianceService(newFakeChartRepo(), nil, nil)

	result, err := svc.CheckComplianceStatus(context.Background(), testOrg())
	require.NoError(t, err)
	require.Equal(t, StatusNoChart, result["status"])
	require.Equal(t, 0, result["score"])
}

func TestCheckComplianceStatus_CachedStatusReused(t *testing.T) {
	repo := newFakeChartRepo()
	c := completeChart()
	c.ComplianceStatus = map[string]any{"status": StatusCompliant, "score": 96}
	repo.current = c
	svc := NewComplianceService(repo, nil, nil)

	result, err := svc.CheckComplianceStatus(context.Background(), testOrg())
	require.NoError(t, err)
	require.Equal(t, StatusCompliant, result["status"])
	require.Equal(t, 96, result["score"])
	require.Empty(t, repo.savedStatus, "cached status must not be recomputed or written back")
}

func TestCheckComplianceStatus_CleanChart_CompliantFullScoreAndPersisted(t *testing.T) {
	repo := newFakeChartRepo()
	repo.current = completeChart()

	publisher := eventbus.NewEventPublisher(logrus.New())
	var published *ChartValidated
	publisher.Subscribe(func(ctx context.Context, e *ChartValidated) {
		published = e
	})

	org := testOrg()
	svc := NewComplianceService(repo, NewChartValidationService(), publisher)
	result, err := svc.CheckComplianceStatus(context.Background(), org)
	require.NoError(t, err)

	require.Equal(t, StatusCompliant, result["status"])
	require.Equal(t, 100, result["score"])
	require.Equal(t, 0, result["critical_errors"])
	require.Contains(t, repo.savedStatus, repo.current.ID)

	require.NotNil(t, published)
	require.Equal(t, repo.current.ID, published.ChartID)
	require.Equal(t, org.ID, published.OrganizationID)
	require.Equal(t, StatusCompliant, published.Status)
	require.Equal(t, 100, published.Score)
}

func TestCheckComplianceStatus_WarningsOnly_PartiallyCompliant(t *testing.T) {
	repo := newFakeChartRepo()
	c := completeChart()
	c.Areas[0].Positions[0].MainPurpose = "" // completeness warning
	repo.current = c
	svc := NewComplianceService(repo, nil, nil)

	result, err := svc.CheckComplianceStatus(context.Background(), testOrg())
	require.NoError(t, err)
	require.Equal(t, StatusPartiallyCompliant, result["status"])
	require.Equal(t, 98, result["score"])
	require.Equal(t, 1, result["warnings"])
}

func TestCheckComplianceStatus_CriticalErrors_NonCompliantWithRecommendations(t *testing.T) {
	repo := newFakeChartRepo()
	c := completeChart()
	dup := &chart.Area{
		ID: uuid.New(), Code: "DIR", Name: "Dirección Duplicada",
		HierarchyLevel: 2, Parent: c.Areas[0], MainPurpose: "x", IsActive: true,
		Positions: []*chart.Position{{
			ID: uuid.New(), Code: "POS-002", Name: "Analista", MainPurpose: "x", IsActive: true,
			Requirements: chart.Requirements{Education: "Técnico", Experience: "1 año", Competencies: []string{"análisis"}},
		}},
	}
	c.Areas = append(c.Areas, dup)
	repo.current = c
	svc := NewComplianceService(repo, nil, nil)

	result, err := svc.CheckComplianceStatus(context.Background(), testOrg())
	require.NoError(t, err)
	require.Equal(t, StatusNonCompliant, result["status"])
	require.Equal(t, 90, result["score"])

	recs := result["recommendations"].([]Recommendation)
	require.Len(t, recs, 1)
	require.Equal(t, "consistency", recs[0].Type)
	require.Equal(t, "high", recs[0].Priority)
}

func TestCheckComplianceStatus_SectorLookupFailure_SkipsCrossChecks(t *testing.T) {
	repo := newFakeChartRepo()
	repo.current = completeChart()
	repo.sectorErr = errors.New("sector catalog unavailable")
	svc := NewComplianceService(repo, nil, nil)

	result, err := svc.CheckComplianceStatus(context.Background(), testOrg())
	require.NoError(t, err)
	require.Equal(t, StatusCompliant, result["status"])
}

func TestCheckComplianceStatus_WriteBackFailure_StillReturnsResult(t *testing.T) {
	repo := newFakeChartRepo()
	repo.current = completeChart()
	repo.saveErr = errors.New("disk full")
	svc := NewComplianceService(repo, nil, nil)

	result, err := svc.CheckComplianceStatus(context.Background(), testOrg())
	require.NoError(t, err)
	require.Equal(t, StatusCompliant, result["status"])
}
