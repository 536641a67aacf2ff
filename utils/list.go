package utils

import (
	"fmt"
	"io"

	"pve-bootstrap/types"
)

// TabWriteResources writes the guest resources (containers and VMs) from an
// inventory snapshot as a table. Non-guest kinds are skipped. The caller owns
// the tabwriter and its Flush.
func TabWriteResources(w io.Writer, resources []types.ClusterResource) error {
	numBytes, err := fmt.Fprintln(w, "VMID\tName\tType\tNode\tStatus")
	if err != nil || numBytes == 0 {
		return err
	}
	for _, r := range resources {
		if r.Type != "lxc" && r.Type != "qemu" {
			continue
		}
		numBytes, err = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", r.VMID, r.Name, r.Type, r.Node, r.Status)
		if err != nil || numBytes == 0 {
			return err
		}
	}
	return nil
}
