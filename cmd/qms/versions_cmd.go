package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/zentraqms/zentraqms/modules/orgchart/infrastructure/persistence"
	"github.com/zentraqms/zentraqms/modules/orgchart/services"
)

func newVersionsCmd() *cobra.Command {
	var orgID string

	cmd := &cobra.Command{
		Use:   "versions",
		Short: "List an organization's chart version history",
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

			svc := services.NewVersionService(persistence.NewChartRepository(pool), nil)
			history, err := svc.VersionHistory(cmd.Context(), oid)
			if err != nil {
				return err
			}
			return writeJSON(history)
		},
	}

	cmd.Flags().StringVar(&orgID, "org", "", "Organization UUID (required)")
	_ = cmd.MarkFlagRequired("org")
	return cmd
}

func newCompareCmd() *cobra.Command {
	var fromID, toID string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Diff two chart versions (areas, positions, settings)",
		RunE: func(cmd *cobra.Command, args []string) error {
			fid, err := uuid.Parse(fromID)
			if err != nil {
				return fmt.Errorf("invalid --from: %w", err)
			}
			tid, err := uuid.Parse(toID)
			if err != nil {
				return fmt.Errorf("invalid --to: %w", err)
			}

			pool, err := connectDB(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			repo := persistence.NewChartRepository(pool)
			from, err := repo.ChartByID(cmd.Context(), fid)
			if err != nil {
				return err
			}
			to, err := repo.ChartByID(cmd.Context(), tid)
			if err != nil {
				return err
			}

			svc := services.NewVersionService(repo, nil)
			diff, err := svc.CompareVersions(from, to)
			if err != nil {
				return err
			}
			return writeJSON(diff)
		},
	}

	cmd.Flags().StringVar(&fromID, "from", "", "Older chart UUID (required)")
	cmd.Flags().StringVar(&toID, "to", "", "Newer chart UUID (required)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
