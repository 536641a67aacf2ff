package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"pve-bootstrap/provision"
)

// destroyCmd represents the destroy command.
var destroyCmd = &cobra.Command{
	Use:   "destroy <vmid>",
	Short: "stop and delete a container",
	Long: `stop and delete the container with the given ID. Use this to clean up
after a partially failed provisioning run before trying again.`,
	Args: func(_ *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errors.New("please specify a container ID")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDestroy(cmd, args[0])
	},
}

func init() {
	destroyCmd.Flags().BoolP("force", "f", false,
		"delete the container without confirming")
	rootCmd.AddCommand(destroyCmd)
}

func runDestroy(cmd *cobra.Command, arg string) error {
	ctx := cmd.Context()
	vmid, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("invalid container ID %q", arg)
	}

	api, _, err := apiClient()
	if err != nil {
		return err
	}

	resources, err := api.ClusterResources(ctx)
	if err != nil {
		return err
	}
	var node string
	for _, r := range resources {
		if r.Type == "lxc" && r.VMID == vmid {
			node = r.Node
			break
		}
	}
	if node == "" {
		return fmt.Errorf("container %d not found in the cluster inventory", vmid)
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}
	if !force {
		fmt.Fprintf(cmd.OutOrStdout(), "Destroy container %d on %s? [y/N]: ", vmid, node)
		answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil {
			return err
		}
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			klog.Info("aborted")
			return nil
		}
	}

	if upid, err := api.StopContainer(ctx, node, vmid); err != nil {
		klog.Warningf("stop container %d: %v", vmid, err)
	} else if err := provision.WaitTask(ctx, api, node, upid); err != nil {
		klog.Warningf("stop container %d: %v", vmid, err)
	}

	upid, err := api.DeleteContainer(ctx, node, vmid)
	if err != nil {
		return err
	}
	if err := provision.WaitTask(ctx, api, node, upid); err != nil {
		return err
	}
	klog.Infof("container %d destroyed", vmid)
	return nil
}
