package provision

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Spec carries the host-side provisioning tunables that are not part of the
// wizard-generated variable file: container sizing, the bridge, the bootstrap
// SSH login on the virtualization host, and the playbook handoff.
type Spec struct {
	Cores        int    `yaml:"cores"`
	MemoryMB     int    `yaml:"memory_mb"`
	DiskGB       int    `yaml:"disk_gb"`
	Bridge       string `yaml:"bridge"`
	Unprivileged bool   `yaml:"unprivileged"`
	// SettleSeconds is the fixed wait after creation before the bootstrap
	// command runs; a wait, not a readiness poll, so a slow-booting container
	// can still fail the bootstrap step.
	SettleSeconds int      `yaml:"settle_seconds"`
	SSH           SSHSpec  `yaml:"ssh"`
	Ansible       PlaySpec `yaml:"ansible"`
}

// SSHSpec is the pre-provisioned administrative login on the virtualization
// host used for the in-container bootstrap command.
type SSHSpec struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	KeyPath  string `yaml:"key_path"`
	Port     int    `yaml:"port"`
}

// PlaySpec is the configuration-management handoff.
type PlaySpec struct {
	Playbook string `yaml:"playbook"`
	// User is the explicit non-default administrative login ansible connects as
	User string `yaml:"user"`
}

// DefaultSpec returns the working defaults applied when no spec file is given.
func DefaultSpec() Spec {
	return Spec{
		Cores:         2,
		MemoryMB:      2048,
		DiskGB:        8,
		Bridge:        "vmbr0",
		Unprivileged:  true,
		SettleSeconds: 30,
		SSH:           SSHSpec{User: "root", Port: 22},
		Ansible:       PlaySpec{Playbook: "site.yml", User: "ansible"},
	}
}

// LoadSpec reads a YAML spec file over the defaults. An empty path returns
// the defaults unchanged.
func LoadSpec(path string) (Spec, error) {
	spec := DefaultSpec()
	if path == "" {
		return spec, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return spec, fmt.Errorf("read spec file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &spec); err != nil {
		return spec, fmt.Errorf("parse spec file %s: %w", path, err)
	}
	return spec, nil
}
