package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zentraqms/zentraqms/modules/orgchart/domain/chart"
)

// ChartRepository is the persistence contract the orgchart services depend
// on. Read methods return the chart aggregate fully assembled (areas,
// positions, committees, services); InsertVersion commits the new chart row
// and its sector-config annotation atomically. CurrentChart reports a missing
// current chart as ErrNoCurrentChart, never as a nil chart with a nil error.
type ChartRepository interface {
	CurrentChart(ctx context.Context, organizationID uuid.UUID) (*chart.Chart, error)
	ChartByID(ctx context.Context, id uuid.UUID) (*chart.Chart, error)
	ListVersions(ctx context.Context, organizationID uuid.UUID) ([]*chart.Chart, error)
	SectorByCode(ctx context.Context, code string) (*chart.Sector, error)
	InsertVersion(ctx context.Context, c *chart.Chart) (uuid.UUID, error)
	SaveComplianceStatus(ctx context.Context, chartID uuid.UUID, status map[string]any, validatedAt time.Time) error
}

// ChartValidated is published after a compliance check ran against a chart.
type ChartValidated struct {
	ChartID        uuid.UUID
	OrganizationID uuid.UUID
	Status         string
	Score          int
	ValidatedAt    time.Time
}

// VersionCreated is published after a new chart version is persisted.
type VersionCreated struct {
	ChartID         uuid.UUID
	OrganizationID  uuid.UUID
	Version         string
	PreviousVersion string
	CreatedAt       time.Time
}
