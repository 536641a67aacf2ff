package cmd

import (
	"errors"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"pve-bootstrap/provision"
	"pve-bootstrap/varfile"
)

// provisionCmd represents the provision command.
var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "create and bootstrap the container described by a variable file",
	Long: `create the container described by the wizard-generated variable file,
wait for the creation task, install an SSH server inside the container via
the virtualization host, then run the configuration-management playbook
against the container address.

The two bootstrap steps run in fixed order with no retry and no rollback; a
partial failure leaves the container behind (destroy it before re-running).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProvision(cmd)
	},
}

func init() {
	provisionCmd.Flags().StringP("var-file", "f", "provision.tfvars",
		"variable file produced by the generate command")
	provisionCmd.Flags().String("spec", "",
		"optional YAML file with container sizing and bootstrap settings")
	rootCmd.AddCommand(provisionCmd)
}

func runProvision(cmd *cobra.Command) error {
	varFile, err := cmd.Flags().GetString("var-file")
	if err != nil {
		return err
	}
	specFile, err := cmd.Flags().GetString("spec")
	if err != nil {
		return err
	}

	values, err := varfile.Load(varFile)
	if err != nil {
		return err
	}
	spec, err := provision.LoadSpec(specFile)
	if err != nil {
		return err
	}

	api, _, err := apiClient()
	if err != nil {
		return err
	}

	if err := provision.New(api, spec).Run(cmd.Context(), values); err != nil {
		// a failing bootstrap tool decides the process exit code
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			klog.Error(err)
			os.Exit(exitErr.ExitCode())
		}
		return err
	}
	klog.Infof("container %s provisioned", values.Hostname)
	return nil
}
