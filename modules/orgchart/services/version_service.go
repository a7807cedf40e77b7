package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/zentraqms/zentraqms/modules/orgchart/domain/chart"
	"github.com/zentraqms/zentraqms/pkg/eventbus"
)

// CreateVersionInput describes a new chart version request.
type CreateVersionInput struct {
	OrganizationID uuid.UUID `validate:"required"`
	Changes        string    `validate:"required,min=3"`
	CreatedBy      uuid.UUID `validate:"required"`
}

// VersionInfo is one row of an organization's version history.
type VersionInfo struct {
	ChartID        uuid.UUID  `json:"chart_id"`
	Version        string     `json:"version"`
	IsCurrent      bool       `json:"is_current"`
	AreasCount     int        `json:"areas_count"`
	PositionsCount int        `json:"positions_count"`
	ApprovedBy     *uuid.UUID `json:"approved_by,omitempty"`
	ApprovalDate   *time.Time `json:"approval_date,omitempty"`
	EffectiveDate  time.Time  `json:"effective_date"`
	EndDate        *time.Time `json:"end_date,omitempty"`
}

// VersionService creates chart versions, diffs them and lists history.
type VersionService struct {
	repo      ChartRepository
	publisher eventbus.EventBus
	validate  *validator.Validate
}

func NewVersionService(repo ChartRepository, publisher eventbus.EventBus) *VersionService {
	return &VersionService{
		repo:      repo,
		publisher: publisher,
		validate:  validator.New(),
	}
}

// NextVersion computes the successor of a "major.minor" version string.
// Anything unparsable, including the empty string, restarts at "1.0".
func NextVersion(current string) string {
	parts := strings.Split(strings.TrimSpace(current), ".")
	if len(parts) != 2 {
		return "1.0"
	}
	major, errMajor := strconv.Atoi(parts[0])
	minor, errMinor := strconv.Atoi(parts[1])
	if errMajor != nil || errMinor != nil {
		return "1.0"
	}
	return fmt.Sprintf("%d.%d", major, minor+1)
}

// CreateNewVersion copies the organization's current chart into a new,
// not-yet-current version annotated with the change description. The
// repository persists the new row and its annotation in one transaction.
func (s *VersionService) CreateNewVersion(ctx context.Context, input CreateVersionInput) (*chart.Chart, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, newServiceError(400, "VERSION_INVALID_INPUT", "invalid version request", err)
	}

	current, err := s.repo.CurrentChart(ctx, input.OrganizationID)
	if err != nil && !errors.Is(err, ErrNoCurrentChart) {
		return nil, err
	}

	previousVersion := ""
	next := "1.0"
	if current != nil {
		previousVersion = current.Version
		next = NextVersion(current.Version)
	}

	newChart := &chart.Chart{
		ID:             uuid.New(),
		OrganizationID: input.OrganizationID,
		Version:        next,
		IsActive:       true,
		IsCurrent:      false, // becomes current on approval
		EffectiveDate:  time.Now().UTC(),
		SectorConfig: map[string]any{
			"version_changes":  input.Changes,
			"previous_version": previousVersion,
			"created_by":       input.CreatedBy.String(),
		},
	}
	if current != nil {
		newChart.Name = current.Name
		newChart.SectorCode = current.SectorCode
		newChart.OrganizationType = current.OrganizationType
		newChart.HierarchyLevels = current.HierarchyLevels
		newChart.UsesRACIMatrix = current.UsesRACIMatrix
		newChart.AllowsTemporaryPositions = current.AllowsTemporaryPositions
	}

	id, err := s.repo.InsertVersion(ctx, newChart)
	if err != nil {
		return nil, err
	}
	newChart.ID = id

	logWithFields(ctx, logrus.InfoLevel, "chart version created", logrus.Fields{
		"organization_id":  input.OrganizationID,
		"version":          next,
		"previous_version": previousVersion,
	})
	if s.publisher != nil {
		s.publisher.Publish(ctx, &VersionCreated{
			ChartID:         newChart.ID,
			OrganizationID:  input.OrganizationID,
			Version:         next,
			PreviousVersion: previousVersion,
			CreatedAt:       newChart.EffectiveDate,
		})
	}
	return newChart, nil
}

type codeName struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// CompareVersions reports the added/removed areas and positions between two
// chart versions (matched by code+name pairs) and the scalar settings that
// changed.
func (s *VersionService) CompareVersions(v1, v2 *chart.Chart) (map[string]any, error) {
	if v1 == nil || v2 == nil {
		return nil, newServiceError(400, "VERSION_COMPARE_INVALID", "both versions are required", nil)
	}

	areasAdded, areasRemoved := diffCodeNames(collectAreas(v1), collectAreas(v2))
	positionsAdded, positionsRemoved := diffCodeNames(collectPositions(v1), collectPositions(v2))

	changes := map[string]any{
		"areas": map[string]any{
			"added":   areasAdded,
			"removed": areasRemoved,
		},
		"positions": map[string]any{
			"added":   positionsAdded,
			"removed": positionsRemoved,
		},
	}
	settings := map[string]any{}
	if v1.HierarchyLevels != v2.HierarchyLevels {
		settings["hierarchy_levels"] = map[string]any{"from": v1.HierarchyLevels, "to": v2.HierarchyLevels}
	}
	if v1.AllowsTemporaryPositions != v2.AllowsTemporaryPositions {
		settings["allows_temporary_positions"] = map[string]any{"from": v1.AllowsTemporaryPositions, "to": v2.AllowsTemporaryPositions}
	}
	changes["settings"] = settings

	return map[string]any{
		"from_version": v1.Version,
		"to_version":   v2.Version,
		"changes":      changes,
	}, nil
}

// VersionHistory lists every chart version of the organization with its
// structural stats and approval metadata.
func (s *VersionService) VersionHistory(ctx context.Context, organizationID uuid.UUID) ([]VersionInfo, error) {
	if organizationID == uuid.Nil {
		return nil, newServiceError(400, "ORG_REQUIRED", "organization_id is required", nil)
	}
	charts, err := s.repo.ListVersions(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	history := make([]VersionInfo, 0, len(charts))
	for _, c := range charts {
		history = append(history, VersionInfo{
			ChartID:        c.ID,
			Version:        c.Version,
			IsCurrent:      c.IsCurrent,
			AreasCount:     len(c.ActiveAreas()),
			PositionsCount: len(c.ActivePositions()),
			ApprovedBy:     c.ApprovedBy,
			ApprovalDate:   c.ApprovalDate,
			EffectiveDate:  c.EffectiveDate,
			EndDate:        c.EndDate,
		})
	}
	return history, nil
}

func collectAreas(c *chart.Chart) map[codeName]bool {
	out := map[codeName]bool{}
	for _, a := range c.ActiveAreas() {
		out[codeName{Code: a.Code, Name: a.Name}] = true
	}
	return out
}

func collectPositions(c *chart.Chart) map[codeName]bool {
	out := map[codeName]bool{}
	for _, p := range c.ActivePositions() {
		out[codeName{Code: p.Code, Name: p.Name}] = true
	}
	return out
}

func diffCodeNames(from, to map[codeName]bool) (added, removed []codeName) {
	added = []codeName{}
	removed = []codeName{}
	for cn := range to {
		if !from[cn] {
			added = append(added, cn)
		}
	}
	for cn := range from {
		if !to[cn] {
			removed = append(removed, cn)
		}
	}
	return added, removed
}
