// Package inventory implements the read-only queries against the cluster
// inventory: container template enumeration and container ID allocation.
package inventory

import (
	"context"
	"fmt"

	"pve-bootstrap/client"
)

const (
	// IDFloor is the allocation floor used when no containers exist yet; the
	// first allocated ID is IDFloor+1.
	IDFloor = 99

	typeContainer   = "lxc"
	contentTemplate = "vztmpl"
)

// NextID returns the next container ID: one past the highest vmid of any
// existing container in the cluster inventory. The maximum is computed over
// all matched entries; API result ordering is not trusted. The allocation is
// best-effort only: nothing locks the inventory against a concurrent run.
func NextID(ctx context.Context, c client.Client) (int, error) {
	resources, err := c.ClusterResources(ctx)
	if err != nil {
		return 0, err
	}

	max := 0
	for _, r := range resources {
		if r.Type != typeContainer {
			continue
		}
		if r.VMID <= 0 {
			return 0, fmt.Errorf("container %q has invalid vmid %d", r.ID, r.VMID)
		}
		if r.VMID > max {
			max = r.VMID
		}
	}
	if max == 0 {
		// no containers yet; the floor stands in for the missing maximum
		max = IDFloor
	}
	return max + 1, nil
}

// Templates returns the volume IDs of every container template on the given
// node and storage, in the order the API reported them. An empty result is
// not an error; storage with no templates is a valid state.
func Templates(ctx context.Context, c client.Client, node, storage string) ([]string, error) {
	content, err := c.StorageContent(ctx, node, storage)
	if err != nil {
		return nil, err
	}

	var volids []string
	for _, entry := range content {
		if entry.Content == contentTemplate {
			volids = append(volids, entry.VolID)
		}
	}
	return volids, nil
}
