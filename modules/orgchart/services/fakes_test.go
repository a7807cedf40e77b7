package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zentraqms/zentraqms/modules/orgchart/domain/chart"
)

// fakeChartRepo is an in-memory ChartRepository for service tests.
type fakeChartRepo struct {
	current    *chart.Chart
	currentErr error
	byID       map[uuid.UUID]*chart.Chart
	versions   []*chart.Chart
	sector     *chart.Sector
	sectorErr  error

	inserted    []*chart.Chart
	insertErr   error
	savedStatus map[uuid.UUID]map[string]any
	saveErr     error
}

func newFakeChartRepo() *fakeChartRepo {
	return &fakeChartRepo{
		byID:        map[uuid.UUID]*chart.Chart{},
		savedStatus: map[uuid.UUID]map[string]any{},
	}
}

func (f *fakeChartRepo) CurrentChart(ctx context.Context, organizationID uuid.UUID) (*chart.Chart, error) {
	if f.currentErr != nil {
		return nil, f.currentErr
	}
	return f.current, nil
}

func (f *fakeChartRepo) ChartByID(ctx context.Context, id uuid.UUID) (*chart.Chart, error) {
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, ErrNoCurrentChart
}

func (f *fakeChartRepo) ListVersions(ctx context.Context, organizationID uuid.UUID) ([]*chart.Chart, error) {
	return f.versions, nil
}

func (f *fakeChartRepo) SectorByCode(ctx context.Context, code string) (*chart.Sector, error) {
	if f.sectorErr != nil {
		return nil, f.sectorErr
	}
	return f.sector, nil
}

func (f *fakeChartRepo) InsertVersion(ctx context.Context, c *chart.Chart) (uuid.UUID, error) {
	if f.insertErr != nil {
		return uuid.Nil, f.insertErr
	}
	f.inserted = append(f.inserted, c)
	return c.ID, nil
}

func (f *fakeChartRepo) SaveComplianceStatus(ctx context.Context, chartID uuid.UUID, status map[string]any, validatedAt time.Time) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedStatus[chartID] = status
	return nil
}

// completeChart builds a chart that passes every validation pass cleanly.
func completeChart() *chart.Chart {
	director := &chart.Position{
		ID:             uuid.New(),
		Code:           "POS-001",
		Name:           "Director General",
		PositionType:   "CEO",
		HierarchyLevel: chart.LevelExecutive,
		MainPurpose:    "Dirección estratégica",
		IsCritical:     true,
		IsActive:       true,
		Requirements: chart.Requirements{
			Education:    "Profesional universitario",
			Experience:   "5 años",
			Competencies: []string{"liderazgo"},
		},
	}
	area := &chart.Area{
		ID:             uuid.New(),
		Code:           "DIR",
		Name:           "Dirección General",
		HierarchyLevel: 1,
		AreaType:       chart.AreaTypeDirection,
		MainPurpose:    "Dirección de la organización",
		IsActive:       true,
		Positions:      []*chart.Position{director},
	}
	now := time.Now().UTC()
	return &chart.Chart{
		ID:              uuid.New(),
		OrganizationID:  uuid.New(),
		Name:            "Organigrama",
		Version:         "1.0",
		SectorCode:      "UNIVERSAL",
		HierarchyLevels: 3,
		IsActive:        true,
		IsCurrent:       true,
		EffectiveDate:   now,
		Areas:           []*chart.Area{area},
	}
}
