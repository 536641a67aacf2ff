package cmd

import (
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pve-bootstrap/utils"
)

// listCmd represents the list command.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list containers and VMs in the cluster",
	Long:  `list all guest resources known to the cluster inventory as a table`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runListResources(cmd)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runListResources(cmd *cobra.Command) error {
	api, _, err := apiClient()
	if err != nil {
		return err
	}

	resources, err := api.ClusterResources(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 1, '\t', 0)
	if err := utils.TabWriteResources(w, resources); err != nil {
		return err
	}
	return w.Flush()
}
