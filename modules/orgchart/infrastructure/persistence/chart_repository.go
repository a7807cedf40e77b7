package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/zentraqms/zentraqms/modules/orgchart/domain/chart"
	"github.com/zentraqms/zentraqms/modules/orgchart/services"
)

// ChartRepository loads and stores organizational-chart aggregates. Read
// methods assemble the full in-memory graph (areas with parents, positions
// with reporting chains, committees with officers) the validators traverse.
type ChartRepository struct {
	pool *pgxpool.Pool
}

func NewChartRepository(pool *pgxpool.Pool) *ChartRepository {
	return &ChartRepository{pool: pool}
}

const chartColumns = `
	id, organization_id, name, version, sector_code, organization_type,
	hierarchy_levels, is_active, is_current, uses_raci_matrix,
	allows_temporary_positions, sector_config, compliance_status,
	last_validation_date, approved_by, approval_date, effective_date, end_date
`

func (r *ChartRepository) CurrentChart(ctx context.Context, organizationID uuid.UUID) (*chart.Chart, error) {
	row := r.pool.QueryRow(ctx, `
SELECT`+chartColumns+`
FROM org_charts
WHERE organization_id = $1 AND is_current
`, organizationID)
	c, err := scanChart(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, services.ErrNoCurrentChart
		}
		return nil, mapPgError(err)
	}
	if err := r.loadGraph(ctx, c); err != nil {
		return nil, mapPgError(err)
	}
	return c, nil
}

func (r *ChartRepository) ChartByID(ctx context.Context, id uuid.UUID) (*chart.Chart, error) {
	row := r.pool.QueryRow(ctx, `
SELECT`+chartColumns+`
FROM org_charts
WHERE id = $1
`, id)
	c, err := scanChart(row)
	if err != nil {
		return nil, mapPgError(err)
	}
	if err := r.loadGraph(ctx, c); err != nil {
		return nil, mapPgError(err)
	}
	return c, nil
}

func (r *ChartRepository) ListVersions(ctx context.Context, organizationID uuid.UUID) ([]*chart.Chart, error) {
	rows, err := r.pool.Query(ctx, `
SELECT`+chartColumns+`
FROM org_charts
WHERE organization_id = $1
ORDER BY effective_date DESC
`, organizationID)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	out := make([]*chart.Chart, 0, 8)
	for rows.Next() {
		c, err := scanChart(rows)
		if err != nil {
			return nil, mapPgError(err)
		}
		out = append(out, c)
	}
	if rows.Err() != nil {
		return nil, mapPgError(rows.Err())
	}
	for _, c := range out {
		if err := r.loadGraph(ctx, c); err != nil {
			return nil, mapPgError(err)
		}
	}
	return out, nil
}

func (r *ChartRepository) SectorByCode(ctx context.Context, code string) (*chart.Sector, error) {
	var s chart.Sector
	var config []byte
	err := r.pool.QueryRow(ctx, `
SELECT code, name, default_config
FROM sectors
WHERE code = $1
`, code).Scan(&s.Code, &s.Name, &config)
	if err != nil {
		return nil, mapPgError(err)
	}
	if len(config) > 0 {
		if err := json.Unmarshal(config, &s.DefaultConfig); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

// InsertVersion persists the new chart row together with its sector-config
// annotation in one transaction.
func (r *ChartRepository) InsertVersion(ctx context.Context, c *chart.Chart) (uuid.UUID, error) {
	id := c.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		sectorConfig, err := json.Marshal(c.SectorConfig)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
INSERT INTO org_charts (
	id, organization_id, name, version, sector_code, organization_type,
	hierarchy_levels, is_active, is_current, uses_raci_matrix,
	allows_temporary_positions, sector_config, effective_date
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
`, id, c.OrganizationID, c.Name, c.Version, c.SectorCode, c.OrganizationType,
			c.HierarchyLevels, c.IsActive, c.IsCurrent, c.UsesRACIMatrix,
			c.AllowsTemporaryPositions, sectorConfig, c.EffectiveDate)
		return err
	})
	if err != nil {
		return uuid.Nil, mapPgError(err)
	}
	return id, nil
}

func (r *ChartRepository) SaveComplianceStatus(ctx context.Context, chartID uuid.UUID, status map[string]any, validatedAt time.Time) error {
	payload, err := json.Marshal(status)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
UPDATE org_charts
SET compliance_status = $2, last_validation_date = $3
WHERE id = $1
`, chartID, payload, validatedAt)
	return mapPgError(err)
}

func scanChart(row pgx.Row) (*chart.Chart, error) {
	var c chart.Chart
	var sectorConfig, complianceStatus []byte
	var lastValidation, approvalDate, endDate pgtype.Timestamptz
	var approvedBy pgtype.UUID
	err := row.Scan(
		&c.ID, &c.OrganizationID, &c.Name, &c.Version, &c.SectorCode, &c.OrganizationType,
		&c.HierarchyLevels, &c.IsActive, &c.IsCurrent, &c.UsesRACIMatrix,
		&c.AllowsTemporaryPositions, &sectorConfig, &complianceStatus,
		&lastValidation, &approvedBy, &approvalDate, &c.EffectiveDate, &endDate,
	)
	if err != nil {
		return nil, err
	}
	if len(sectorConfig) > 0 {
		if err := json.Unmarshal(sectorConfig, &c.SectorConfig); err != nil {
			return nil, err
		}
	}
	if len(complianceStatus) > 0 {
		if err := json.Unmarshal(complianceStatus, &c.ComplianceStatus); err != nil {
			return nil, err
		}
	}
	if lastValidation.Valid {
		t := lastValidation.Time
		c.LastValidationDate = &t
	}
	if approvedBy.Valid {
		id := uuid.UUID(approvedBy.Bytes)
		c.ApprovedBy = &id
	}
	if approvalDate.Valid {
		t := approvalDate.Time
		c.ApprovalDate = &t
	}
	if endDate.Valid {
		t := endDate.Time
		c.EndDate = &t
	}
	return &c, nil
}

// loadGraph assembles the chart's full object graph: areas and their parent
// links, positions with assignments/responsibilities/authorities and
// reporting chains, committees with officers and members, and health-service
// mappings.
func (r *ChartRepository) loadGraph(ctx context.Context, c *chart.Chart) error {
	areas, areaByID, err := r.loadAreas(ctx, c.ID)
	if err != nil {
		return err
	}
	c.Areas = areas

	positionByID, err := r.loadPositions(ctx, c.ID, areaByID)
	if err != nil {
		return err
	}
	if err := r.loadPositionDetails(ctx, c.ID, positionByID); err != nil {
		return err
	}
	if err := r.loadCommittees(ctx, c, positionByID); err != nil {
		return err
	}
	return r.loadServices(ctx, c, areaByID, positionByID)
}

func (r *ChartRepository) loadAreas(ctx context.Context, chartID uuid.UUID) ([]*chart.Area, map[uuid.UUID]*chart.Area, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, code, name, parent_area_id, hierarchy_level, area_type,
	main_purpose, description, is_active
FROM org_areas
WHERE chart_id = $1
ORDER BY hierarchy_level, code
`, chartID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	areas := make([]*chart.Area, 0, 16)
	byID := map[uuid.UUID]*chart.Area{}
	parents := map[uuid.UUID]uuid.UUID{}
	for rows.Next() {
		var a chart.Area
		var parent pgtype.UUID
		if err := rows.Scan(&a.ID, &a.Code, &a.Name, &parent, &a.HierarchyLevel,
			&a.AreaType, &a.MainPurpose, &a.Description, &a.IsActive); err != nil {
			return nil, nil, err
		}
		if parent.Valid {
			parents[a.ID] = uuid.UUID(parent.Bytes)
		}
		areas = append(areas, &a)
		byID[a.ID] = &a
	}
	if rows.Err() != nil {
		return nil, nil, rows.Err()
	}
	for id, parentID := range parents {
		byID[id].Parent = byID[parentID]
	}
	return areas, byID, nil
}

func (r *ChartRepository) loadPositions(ctx context.Context, chartID uuid.UUID, areaByID map[uuid.UUID]*chart.Area) (map[uuid.UUID]*chart.Position, error) {
	rows, err := r.pool.Query(ctx, `
SELECT p.id, p.code, p.name, p.position_type, p.area_id, p.reports_to_id,
	p.hierarchy_level, p.main_purpose, p.is_critical, p.is_process_owner,
	p.requires_professional_license, p.authorized_positions, p.requirements,
	p.salary_range_min, p.salary_range_max, p.is_active
FROM org_positions p
JOIN org_areas a ON a.id = p.area_id
WHERE a.chart_id = $1
`, chartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := map[uuid.UUID]*chart.Position{}
	reportsTo := map[uuid.UUID]uuid.UUID{}
	for rows.Next() {
		var p chart.Position
		var reports pgtype.UUID
		var requirements []byte
		var salaryMin, salaryMax *float64
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.PositionType, &p.AreaID, &reports,
			&p.HierarchyLevel, &p.MainPurpose, &p.IsCritical, &p.IsProcessOwner,
			&p.RequiresProfessionalLicense, &p.AuthorizedPositions, &requirements,
			&salaryMin, &salaryMax, &p.IsActive); err != nil {
			return nil, err
		}
		if salaryMin != nil {
			d := decimal.NewFromFloat(*salaryMin)
			p.SalaryRangeMin = &d
		}
		if salaryMax != nil {
			d := decimal.NewFromFloat(*salaryMax)
			p.SalaryRangeMax = &d
		}
		if len(requirements) > 0 {
			if err := json.Unmarshal(requirements, &p.Requirements); err != nil {
				return nil, err
			}
		}
		if reports.Valid {
			reportsTo[p.ID] = uuid.UUID(reports.Bytes)
		}
		byID[p.ID] = &p
		if area, ok := areaByID[p.AreaID]; ok {
			area.Positions = append(area.Positions, &p)
		}
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	for id, bossID := range reportsTo {
		byID[id].ReportsTo = byID[bossID]
	}
	return byID, nil
}

func (r *ChartRepository) loadPositionDetails(ctx context.Context, chartID uuid.UUID, positionByID map[uuid.UUID]*chart.Position) error {
	rows, err := r.pool.Query(ctx, `
SELECT s.id, s.position_id, s.person_id, s.start_date, s.end_date, s.is_active
FROM org_assignments s
JOIN org_positions p ON p.id = s.position_id
JOIN org_areas a ON a.id = p.area_id
WHERE a.chart_id = $1
`, chartID)
	if err != nil {
		return err
	}
	for rows.Next() {
		var asg chart.Assignment
		var endDate pgtype.Timestamptz
		if err := rows.Scan(&asg.ID, &asg.PositionID, &asg.PersonID, &asg.StartDate, &endDate, &asg.IsActive); err != nil {
			rows.Close()
			return err
		}
		if endDate.Valid {
			t := endDate.Time
			asg.EndDate = &t
		}
		if p, ok := positionByID[asg.PositionID]; ok {
			p.Assignments = append(p.Assignments, &asg)
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	rows, err = r.pool.Query(ctx, `
SELECT t.id, t.position_id, t.description, t.responsibility_type,
	t.is_normative_requirement, t.normative_reference, t.raci_role, t.is_active
FROM org_responsibilities t
JOIN org_positions p ON p.id = t.position_id
JOIN org_areas a ON a.id = p.area_id
WHERE a.chart_id = $1
`, chartID)
	if err != nil {
		return err
	}
	for rows.Next() {
		var resp chart.Responsibility
		if err := rows.Scan(&resp.ID, &resp.PositionID, &resp.Description, &resp.ResponsibilityType,
			&resp.IsNormativeRequirement, &resp.NormativeReference, &resp.RACIRole, &resp.IsActive); err != nil {
			rows.Close()
			return err
		}
		if p, ok := positionByID[resp.PositionID]; ok {
			p.Responsibilities = append(p.Responsibilities, &resp)
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	rows, err = r.pool.Query(ctx, `
SELECT u.id, u.position_id, u.decision_type, u.scope, u.financial_limit,
	u.valid_from, u.valid_until, u.is_active
FROM org_authorities u
JOIN org_positions p ON p.id = u.position_id
JOIN org_areas a ON a.id = p.area_id
WHERE a.chart_id = $1
`, chartID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var auth chart.Authority
		var validFrom, validUntil pgtype.Timestamptz
		var financialLimit *float64
		if err := rows.Scan(&auth.ID, &auth.PositionID, &auth.DecisionType, &auth.Scope,
			&financialLimit, &validFrom, &validUntil, &auth.IsActive); err != nil {
			return err
		}
		if financialLimit != nil {
			d := decimal.NewFromFloat(*financialLimit)
			auth.FinancialLimit = &d
		}
		if validFrom.Valid {
			t := validFrom.Time
			auth.ValidFrom = &t
		}
		if validUntil.Valid {
			t := validUntil.Time
			auth.ValidUntil = &t
		}
		if p, ok := positionByID[auth.PositionID]; ok {
			p.Authorities = append(p.Authorities, &auth)
		}
	}
	return rows.Err()
}

func (r *ChartRepository) loadCommittees(ctx context.Context, c *chart.Chart, positionByID map[uuid.UUID]*chart.Position) error {
	rows, err := r.pool.Query(ctx, `
SELECT id, chart_id, code, name, committee_type, minimum_quorum,
	chairperson_id, secretary_id, is_active
FROM org_committees
WHERE chart_id = $1
`, c.ID)
	if err != nil {
		return err
	}
	committeeByID := map[uuid.UUID]*chart.Committee{}
	for rows.Next() {
		var cm chart.Committee
		var chair, secretary pgtype.UUID
		if err := rows.Scan(&cm.ID, &cm.ChartID, &cm.Code, &cm.Name, &cm.CommitteeType,
			&cm.MinimumQuorum, &chair, &secretary, &cm.IsActive); err != nil {
			rows.Close()
			return err
		}
		if chair.Valid {
			cm.Chairperson = positionByID[uuid.UUID(chair.Bytes)]
		}
		if secretary.Valid {
			cm.Secretary = positionByID[uuid.UUID(secretary.Bytes)]
		}
		c.Committees = append(c.Committees, &cm)
		committeeByID[cm.ID] = &cm
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	rows, err = r.pool.Query(ctx, `
SELECT m.id, m.committee_id, m.position_id, m.has_voting_rights, m.end_date, m.is_active
FROM org_committee_members m
JOIN org_committees c ON c.id = m.committee_id
WHERE c.chart_id = $1
`, c.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var m chart.Member
		var positionID pgtype.UUID
		var endDate pgtype.Timestamptz
		if err := rows.Scan(&m.ID, &m.CommitteeID, &positionID, &m.HasVotingRights, &endDate, &m.IsActive); err != nil {
			return err
		}
		if positionID.Valid {
			m.Position = positionByID[uuid.UUID(positionID.Bytes)]
		}
		if endDate.Valid {
			t := endDate.Time
			m.EndDate = &t
		}
		if cm, ok := committeeByID[m.CommitteeID]; ok {
			cm.Members = append(cm.Members, &m)
		}
	}
	return rows.Err()
}

func (r *ChartRepository) loadServices(ctx context.Context, c *chart.Chart, areaByID map[uuid.UUID]*chart.Area, positionByID map[uuid.UUID]*chart.Position) error {
	rows, err := r.pool.Query(ctx, `
SELECT id, chart_id, code, name, responsible_area_id, responsible_position_id, is_active
FROM org_health_services
WHERE chart_id = $1
`, c.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var s chart.Service
		var areaID, positionID pgtype.UUID
		if err := rows.Scan(&s.ID, &s.ChartID, &s.Code, &s.Name, &areaID, &positionID, &s.IsActive); err != nil {
			return err
		}
		if areaID.Valid {
			s.ResponsibleArea = areaByID[uuid.UUID(areaID.Bytes)]
		}
		if positionID.Valid {
			s.ResponsiblePosition = positionByID[uuid.UUID(positionID.Bytes)]
		}
		c.Services = append(c.Services, &s)
	}
	return rows.Err()
}
