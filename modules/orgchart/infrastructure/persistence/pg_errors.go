package persistence

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/zentraqms/zentraqms/modules/orgchart/services"
)

// mapPgError translates driver errors into the coded errors the service
// layer expects.
func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return &services.ServiceError{Status: 404, Code: "CHART_NOT_FOUND", Message: "not found", Cause: err}
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "23505": // unique_violation
		switch pgErr.ConstraintName {
		case "org_charts_org_current_unique":
			return &services.ServiceError{Status: 409, Code: "CHART_CURRENT_CONFLICT", Message: "organization already has a current chart", Cause: err}
		case "org_charts_org_version_unique":
			return &services.ServiceError{Status: 409, Code: "CHART_VERSION_CONFLICT", Message: "chart version already exists", Cause: err}
		default:
			return &services.ServiceError{Status: 409, Code: "CHART_CONFLICT", Message: "unique constraint violated", Cause: err}
		}
	case "23503": // foreign_key_violation
		return &services.ServiceError{Status: 422, Code: "CHART_INVALID_REFERENCE", Message: "referenced row does not exist", Cause: err}
	default:
		return err
	}
}
