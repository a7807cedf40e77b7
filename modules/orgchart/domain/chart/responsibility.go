package chart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ResponsibilityType string

const (
	ResponsibilityStrategic   ResponsibilityType = "STRATEGIC"
	ResponsibilityOperational ResponsibilityType = "OPERATIONAL"
	ResponsibilityNormative   ResponsibilityType = "NORMATIVE"
	ResponsibilitySupport     ResponsibilityType = "SUPPORT"
)

type RACIRole string

const (
	RACIResponsible RACIRole = "RESPONSIBLE"
	RACIAccountable RACIRole = "ACCOUNTABLE"
	RACIConsulted   RACIRole = "CONSULTED"
	RACIInformed    RACIRole = "INFORMED"
)

// Responsibility is one duty assigned to a position. RACIRole is empty when
// the chart does not tag the responsibility into a RACI matrix.
type Responsibility struct {
	ID                     uuid.UUID          `json:"id"`
	PositionID             uuid.UUID          `json:"position_id"`
	Description            string             `json:"description"`
	ResponsibilityType     ResponsibilityType `json:"responsibility_type"`
	IsNormativeRequirement bool               `json:"is_normative_requirement"`
	NormativeReference     string             `json:"normative_reference,omitempty"`
	RACIRole               RACIRole           `json:"raci_role,omitempty"`
	IsActive               bool               `json:"is_active"`
}

type DecisionType string

const (
	DecisionFinancial   DecisionType = "FINANCIAL"
	DecisionOperational DecisionType = "OPERATIONAL"
	DecisionPersonnel   DecisionType = "PERSONNEL"
	DecisionTechnical   DecisionType = "TECHNICAL"
)

// Authority is one decision power granted to a position, optionally bounded
// by a financial limit and a validity window.
type Authority struct {
	ID             uuid.UUID        `json:"id"`
	PositionID     uuid.UUID        `json:"position_id"`
	DecisionType   DecisionType     `json:"decision_type"`
	Scope          string           `json:"scope,omitempty"`
	FinancialLimit *decimal.Decimal `json:"financial_limit,omitempty"`
	ValidFrom      *time.Time       `json:"valid_from,omitempty"`
	ValidUntil     *time.Time       `json:"valid_until,omitempty"`
	IsActive       bool             `json:"is_active"`
}
