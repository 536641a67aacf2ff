package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"pve-bootstrap/inventory"
	"pve-bootstrap/wizard"
)

// templatesCmd represents the templates command.
var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "list container templates on a storage",
	Long: `list the container template volume IDs available on a node's storage,
one per line, in the order the API reports them. A storage with no templates
prints nothing and exits 0.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runListTemplates(cmd)
	},
}

func init() {
	templatesCmd.Flags().StringP("node", "n", wizard.DefaultNode, "node to query")
	templatesCmd.Flags().StringP("storage", "s", wizard.DefaultStorage, "storage pool to query")
	rootCmd.AddCommand(templatesCmd)
}

func runListTemplates(cmd *cobra.Command) error {
	node, err := cmd.Flags().GetString("node")
	if err != nil {
		return err
	}
	storage, err := cmd.Flags().GetString("storage")
	if err != nil {
		return err
	}

	api, _, err := apiClient()
	if err != nil {
		return err
	}

	templates, err := inventory.Templates(cmd.Context(), api, node, storage)
	if err != nil {
		return err
	}
	for _, volid := range templates {
		fmt.Fprintln(cmd.OutOrStdout(), volid)
	}
	return nil
}
