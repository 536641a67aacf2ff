package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"k8s.io/klog/v2"

	"pve-bootstrap/varfile"
	"pve-bootstrap/wizard"
)

// generateCmd represents the generate command.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "interactively generate the provisioning variable file",
	Long: `walk through an interactive session collecting every provisioning
variable (host, node, template, storage, credentials, addressing) and write
them as a variable file for the provision command. Any existing file at the
output path is replaced. Choosing the quit menu entry exits cleanly without
writing anything.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd)
	},
}

func init() {
	generateCmd.Flags().StringP("output", "o", "provision.tfvars",
		"path of the variable file to write")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	api, cfg, err := apiClient()
	if err != nil {
		return err
	}

	session := wizard.NewSession(cmd.InOrStdin(), cmd.OutOrStdout())
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		session.ReadSecret = func() (string, error) {
			secret, err := term.ReadPassword(fd)
			return string(secret), err
		}
	}

	values, err := session.Run(cmd.Context(), api, wizard.HostFromURL(cfg.BaseURL))
	if err != nil {
		return err
	}
	if values == nil {
		// clean operator-initiated cancellation
		return nil
	}

	if err := varfile.Write(output, *values); err != nil {
		return err
	}
	klog.Infof("wrote %s", output)
	fmt.Fprintf(cmd.OutOrStdout(), "\n%s", varfile.Render(varfile.Redacted(*values)))
	return nil
}
