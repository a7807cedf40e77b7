package main

import "github.com/spf13/cobra"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qms",
		Short: "ZentraQMS organizational-chart validation tools",
	}
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newComplianceCmd())
	cmd.AddCommand(newVersionsCmd())
	cmd.AddCommand(newCompareCmd())
	cmd.AddCommand(newChecklistCmd())
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// cobra already printed the error
		return
	}
}
