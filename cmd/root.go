package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pve-bootstrap/client"
)

const (
	AppName = "pve-bootstrap"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   AppName,
	Short: "provision and bootstrap LXC containers on Proxmox VE",
	Long: `pve-bootstrap provisions a single-purpose LXC container on a Proxmox VE
host and hands it to configuration management.

Connection settings come from the environment: PM_API_URL, PM_API_TOKEN_ID,
PM_API_TOKEN_SECRET and optionally PM_TLS_INSECURE. Subcommands that query
the API write machine-consumable results to stdout and every diagnostic to
stderr, so their output can be captured safely by scripts.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(version, commit, date string) {
	appVersion = fmt.Sprintf("%s - %s %s %s", AppName, version, commit, date)
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// apiClient builds the API client from the environment. Missing credentials
// fail here, before any network call is attempted.
func apiClient() (*client.PVE, client.Config, error) {
	cfg, err := client.FromEnv()
	if err != nil {
		return nil, cfg, err
	}
	return client.New(cfg), cfg, nil
}
