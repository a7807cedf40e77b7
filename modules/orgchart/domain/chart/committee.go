package chart

import (
	"time"

	"github.com/google/uuid"
)

type CommitteeType string

const (
	CommitteeMandatory CommitteeType = "MANDATORY"
	CommitteeVoluntary CommitteeType = "VOLUNTARY"
	CommitteeTemporary CommitteeType = "TEMPORARY"
)

// Committee is a standing body of the chart with a chair, a secretary and a
// quorum rule. Code carries the regulatory identity (e.g. QUALITY_COMMITTEE).
type Committee struct {
	ID            uuid.UUID     `json:"id"`
	ChartID       uuid.UUID     `json:"chart_id"`
	Code          string        `json:"code"`
	Name          string        `json:"name"`
	CommitteeType CommitteeType `json:"committee_type"`
	MinimumQuorum int           `json:"minimum_quorum"`
	Chairperson   *Position     `json:"-"`
	Secretary     *Position     `json:"-"`
	IsActive      bool          `json:"is_active"`

	Members []*Member `json:"members,omitempty"`
}

// ActiveMembers returns members that are active and have no end date.
func (c *Committee) ActiveMembers() []*Member {
	out := make([]*Member, 0, len(c.Members))
	for _, m := range c.Members {
		if m.IsActive && m.EndDate == nil {
			out = append(out, m)
		}
	}
	return out
}

// Member ties a position into a committee.
type Member struct {
	ID              uuid.UUID  `json:"id"`
	CommitteeID     uuid.UUID  `json:"committee_id"`
	Position        *Position  `json:"-"`
	HasVotingRights bool       `json:"has_voting_rights"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	IsActive        bool       `json:"is_active"`
}

// Service is a health-service habilitation mapping attached to the chart:
// which area and position answer for one enabled health service.
type Service struct {
	ID                  uuid.UUID `json:"id"`
	ChartID             uuid.UUID `json:"chart_id"`
	Code                string    `json:"code"`
	Name                string    `json:"name"`
	ResponsibleArea     *Area     `json:"-"`
	ResponsiblePosition *Position `json:"-"`
	IsActive            bool      `json:"is_active"`
}
