package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/zentraqms/zentraqms/modules/orgchart/infrastructure/persistence"
	"github.com/zentraqms/zentraqms/modules/orgchart/validation"
)

func newValidateCmd() *cobra.Command {
	var (
		chartID string
		sector  string
		chained bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Run sector validation against a chart and print the full report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cid, err := uuid.Parse(chartID)
			if err != nil {
				return fmt.Errorf("invalid --chart: %w", err)
			}

			pool, err := connectDB(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			repo := persistence.NewChartRepository(pool)
			c, err := repo.ChartByID(cmd.Context(), cid)
			if err != nil {
				return err
			}

			facade := validation.NewChartValidator(validation.NewFactory())
			result := facade.Validate(c, nil, validation.Options{SectorCode: sector, Chained: chained})
			return writeJSON(result.ToMap())
		},
	}

	cmd.Flags().StringVar(&chartID, "chart", "", "Chart UUID (required)")
	cmd.Flags().StringVar(&sector, "sector", "", "Sector code override (defaults to the chart's sector)")
	cmd.Flags().BoolVar(&chained, "chained", false, "Run the ISO baseline alongside the sector overlay")
	_ = cmd.MarkFlagRequired("chart")
	return cmd
}

func newChecklistCmd() *cobra.Command {
	var sector string

	cmd := &cobra.Command{
		Use:   "checklist",
		Short: "Print the rule checklist a sector's validator enforces",
		RunE: func(cmd *cobra.Command, args []string) error {
			facade := validation.NewChartValidator(validation.NewFactory())
			return writeJSON(facade.ValidationChecklist(sector))
		},
	}

	cmd.Flags().StringVar(&sector, "sector", "UNIVERSAL", "Sector code")
	return cmd
}
