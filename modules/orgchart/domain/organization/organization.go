package organization

import (
	"strings"

	"github.com/google/uuid"
)

// Organization is the read model the validation layer needs from the
// organization registry: identity, declared economic sector and whether a
// health profile (IPS registration) is linked.
type Organization struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	SectorEconomico  string    `json:"sector_economico"`
	OrganizationType string    `json:"organization_type,omitempty"`
	HasHealthProfile bool      `json:"has_health_profile"`
}

// SectorCode resolves the sector used for validator selection. A linked
// health profile overrides the declared sector: an IPS is validated under
// health rules no matter how its registry entry is classified.
func (o *Organization) SectorCode() string {
	if o == nil {
		return ""
	}
	if o.HasHealthProfile {
		return "HEALTH"
	}
	return strings.ToUpper(strings.TrimSpace(o.SectorEconomico))
}
