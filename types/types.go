package types

// ClusterResource is one element of the cluster-wide inventory returned by
// GET /cluster/resources. Only the fields this tool reads are declared.
type ClusterResource struct {
	// ID is the platform's composite identifier, e.g. "lxc/105"
	ID string `json:"id"`
	// Type distinguishes resource kinds: "lxc", "qemu", "node", "storage"
	Type string `json:"type"`
	// VMID is the numeric guest identifier, unique across the cluster
	VMID   int    `json:"vmid"`
	Name   string `json:"name"`
	Node   string `json:"node"`
	Status string `json:"status"`
}

// StorageContent is one element returned by
// GET /nodes/{node}/storage/{storage}/content.
type StorageContent struct {
	// VolID is the opaque volume identifier, e.g. "local:vztmpl/debian-12.tar.zst"
	VolID string `json:"volid"`
	// Content is the content type: "vztmpl", "iso", "backup", ...
	Content string `json:"content"`
	Size    int64  `json:"size"`
}

// TaskStatus is the status object of an asynchronous node task (UPID).
type TaskStatus struct {
	// Status is "running" until the task finishes, then "stopped"
	Status string `json:"status"`
	// ExitStatus is "OK" on success, an error string otherwise; only present
	// once Status is "stopped"
	ExitStatus string `json:"exitstatus"`
}

// ContainerConfig is the subset of a container's configuration read back
// after creation.
type ContainerConfig struct {
	Hostname string `json:"hostname"`
	// Net0 is the first network interface line, e.g.
	// "name=eth0,bridge=vmbr0,ip=192.168.0.105/24,gw=192.168.0.1"
	Net0 string `json:"net0"`
}

// ContainerInterface is one element of GET /nodes/{node}/lxc/{vmid}/interfaces.
type ContainerInterface struct {
	Name string `json:"name"`
	// Inet is the IPv4 address with mask suffix, e.g. "10.0.3.17/24"
	Inet  string `json:"inet"`
	Inet6 string `json:"inet6"`
}

// CreateContainerOptions carries every parameter posted to the container
// creation endpoint.
type CreateContainerOptions struct {
	VMID       int
	Hostname   string
	OSTemplate string
	Password   string
	// RootFS is the root filesystem spec, "storage:sizeGB"
	RootFS string
	// Net0 is the rendered first network interface line
	Net0         string
	Cores        int
	Memory       int
	Unprivileged bool
	// Start requests the container be started once created
	Start       bool
	Description string
}

// Values holds every assignment of the generated variable file, the contract
// between the wizard and the provisioning step.
type Values struct {
	// ProxmoxHostIP is the virtualization host address used for the SSH
	// bootstrap step
	ProxmoxHostIP string
	TargetNode    string
	Hostname      string
	OSTemplate    string
	RootFSStorage string
	RootPassword  string

	// DHCP marks dynamic addressing: the four fields below are written as
	// null markers and left zero here
	DHCP bool

	// ContainerID is the chosen guest identifier (static mode only)
	ContainerID int
	// IPPrefix is everything left of the mask slash, i.e. the full static
	// host address
	IPPrefix   string
	CIDRSuffix string
	Gateway    string
}
