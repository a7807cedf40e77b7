package validation

import (
	"fmt"
	"strings"

	"github.com/zentraqms/zentraqms/modules/orgchart/domain/organization"
	"github.com/zentraqms/zentraqms/pkg/serrors"
)

// Factory resolves a sector code to its validator. It is an injected,
// per-instance registry rather than a process-wide mutable table, so tests
// and callers can extend it without cross-polluting each other. New sectors
// plug in through Register/RegisterAlias without touching existing
// validators.
type Factory struct {
	constructors map[string]func() Validator
	aliases      map[string]string
}

// NewFactory builds a factory preloaded with the universal and health
// validators and the sector aliases the registry knows today.
func NewFactory() *Factory {
	f := &Factory{
		constructors: map[string]func() Validator{},
		aliases:      map[string]string{},
	}
	f.Register("UNIVERSAL", func() Validator { return NewUniversalValidator() })
	f.Register("HEALTH", func() Validator { return NewHealthValidator() })
	f.RegisterAlias("SALUD", "HEALTH")
	f.RegisterAlias("HEALTHCARE", "HEALTH")
	f.RegisterAlias("IPS", "HEALTH")
	f.RegisterAlias("MANUFACTURA", "MANUFACTURING")
	f.RegisterAlias("EDUCACION", "EDUCATION")
	return f
}

// Register binds a sector code to a validator constructor.
func (f *Factory) Register(code string, ctor func() Validator) {
	f.constructors[normalizeSectorCode(code)] = ctor
}

// RegisterAlias maps an alternative sector spelling onto a registered code.
func (f *Factory) RegisterAlias(alias, code string) {
	f.aliases[normalizeSectorCode(alias)] = normalizeSectorCode(code)
}

// Resolve returns the validator for a sector code. Unknown codes fall back
// to the universal validator unless strict is set, in which case an error
// with code VALIDATOR_NOT_REGISTERED is returned.
func (f *Factory) Resolve(sectorCode string, strict bool) (Validator, error) {
	code := normalizeSectorCode(sectorCode)
	if alias, ok := f.aliases[code]; ok {
		code = alias
	}
	if ctor, ok := f.constructors[code]; ok {
		return ctor(), nil
	}
	if strict {
		return nil, serrors.NewError("VALIDATOR_NOT_REGISTERED",
			fmt.Sprintf("no validator registered for sector %q", sectorCode), "")
	}
	return NewUniversalValidator(), nil
}

// Get resolves with fallback; it never fails.
func (f *Factory) Get(sectorCode string) Validator {
	v, _ := f.Resolve(sectorCode, false)
	return v
}

// ForOrganization derives the sector from the organization (a linked health
// profile forces HEALTH) and resolves with fallback.
func (f *Factory) ForOrganization(org *organization.Organization) Validator {
	return f.Get(org.SectorCode())
}

func normalizeSectorCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
