package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/zentraqms/zentraqms/modules/orgchart/domain/organization"
	"github.com/zentraqms/zentraqms/modules/orgchart/infrastructure/persistence"
	"github.com/zentraqms/zentraqms/modules/orgchart/services"
	"github.com/zentraqms/zentraqms/pkg/configuration"
	"github.com/zentraqms/zentraqms/pkg/eventbus"
)

func newComplianceCmd() *cobra.Command {
	var (
		orgID         string
		sector        string
		healthProfile bool
	)

	cmd := &cobra.Command{
		Use:   "compliance",
		Short: "Check an organization's compliance status against its current chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			oid, err := uuid.Parse(orgID)
			if err != nil {
				return fmt.Errorf("invalid --org: %w", err)
			}

			pool, err := connectDB(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			repo := persistence.NewChartRepository(pool)
			publisher := eventbus.NewEventPublisher(configuration.Use().Logger())
			svc := services.NewComplianceService(repo, services.NewChartValidationService(), publisher)

			org := &organization.Organization{
				ID:               oid,
				SectorEconomico:  sector,
				HasHealthProfile: healthProfile,
			}
			status, err := svc.CheckComplianceStatus(cmd.Context(), org)
			if err != nil {
				return err
			}
			return writeJSON(status)
		},
	}

	cmd.Flags().StringVar(&orgID, "org", "", "Organization UUID (required)")
	cmd.Flags().StringVar(&sector, "sector", "", "Organization's declared economic sector")
	cmd.Flags().BoolVar(&healthProfile, "health-profile", false, "Organization has a linked health profile")
	_ = cmd.MarkFlagRequired("org")
	return cmd
}
