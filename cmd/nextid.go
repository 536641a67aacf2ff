package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"pve-bootstrap/inventory"
)

// nextIDCmd represents the next-id command.
var nextIDCmd = &cobra.Command{
	Use:   "next-id",
	Short: "print the next free container ID",
	Long: `print one past the highest container ID in the cluster inventory, or 100
when no containers exist. The sole output line is the ID, so the result can
be captured directly. The allocation is a best-effort read: another run in
parallel can pick the same ID.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNextID(cmd)
	},
}

func init() {
	rootCmd.AddCommand(nextIDCmd)
}

func runNextID(cmd *cobra.Command) error {
	api, _, err := apiClient()
	if err != nil {
		return err
	}
	id, err := inventory.NextID(cmd.Context(), api)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}
