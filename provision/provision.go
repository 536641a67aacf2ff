// Package provision creates the container on the platform and runs the two
// fixed-order bootstrap steps against it: install an SSH server inside the
// container via the virtualization host, then hand the container address to
// the configuration-management engine. No step is retried and a partial
// failure is not rolled back.
package provision

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/drone/envsubst"
	"github.com/google/uuid"
	sshclient "github.com/helloyi/go-sshclient"
	"k8s.io/klog/v2"

	"pve-bootstrap/client"
	"pve-bootstrap/inventory"
	"pve-bootstrap/types"
)

// bootstrapTemplate is the privileged in-container command run on the
// virtualization host. It installs and starts the SSH server the
// configuration-management engine needs for first contact.
const bootstrapTemplate = `pct exec ${VMID} -- sh -c 'apt-get update && apt-get -y upgrade && DEBIAN_FRONTEND=noninteractive apt-get -y install openssh-server && systemctl enable --now ssh'`

const taskPollInterval = 2 * time.Second

// ShellRunner runs commands on the virtualization host over SSH.
type ShellRunner interface {
	Run(cmd string) error
	Close() error
}

type sshRunner struct {
	c *sshclient.Client
}

func (r sshRunner) Run(cmd string) error {
	return r.c.Cmd(cmd).SetStdio(os.Stdout, os.Stderr).Run()
}

func (r sshRunner) Close() error { return r.c.Close() }

// DialShell opens an SSH session to the virtualization host as the
// administrative account from spec. Key auth wins when a key path is set.
func DialShell(host string, spec SSHSpec) (ShellRunner, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(spec.Port))
	var (
		c   *sshclient.Client
		err error
	)
	if spec.KeyPath != "" {
		c, err = sshclient.DialWithKey(addr, spec.User, spec.KeyPath)
	} else {
		c, err = sshclient.DialWithPasswd(addr, spec.User, spec.Password)
	}
	if err != nil {
		return nil, fmt.Errorf("dial %s@%s: %w", spec.User, addr, err)
	}
	return sshRunner{c: c}, nil
}

// Provisioner sequences one provisioning run. The Shell, Exec and Sleep
// fields are swappable for tests.
type Provisioner struct {
	API   client.Client
	Spec  Spec
	RunID string

	Shell func(host string, spec SSHSpec) (ShellRunner, error)
	Exec  func(name string, args ...string) error
	Sleep func(d time.Duration)
}

// New builds a Provisioner wired to the real SSH dialer and command runner.
func New(api client.Client, spec Spec) *Provisioner {
	return &Provisioner{
		API:   api,
		Spec:  spec,
		RunID: uuid.NewString(),
		Shell: DialShell,
		Exec: func(name string, args ...string) error {
			cmd := exec.Command(name, args...)
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
			return cmd.Run()
		},
		Sleep: time.Sleep,
	}
}

// Run executes the whole provisioning sequence for v.
func (p *Provisioner) Run(ctx context.Context, v *types.Values) error {
	vmid := v.ContainerID
	if vmid == 0 {
		// dynamic mode writes no ID; allocate one now
		id, err := inventory.NextID(ctx, p.API)
		if err != nil {
			return fmt.Errorf("allocate container ID: %w", err)
		}
		vmid = id
	}

	opts := p.createOptions(v, vmid)
	klog.Infof("creating container %d (%s) on node %s", vmid, v.Hostname, v.TargetNode)
	upid, err := p.API.CreateContainer(ctx, v.TargetNode, opts)
	if err != nil {
		return err
	}

	if err := p.waitTask(ctx, v.TargetNode, upid); err != nil {
		return fmt.Errorf("container creation task: %w", err)
	}
	klog.Infof("container %d created", vmid)

	klog.Infof("waiting %ds for the container network to come up", p.Spec.SettleSeconds)
	p.Sleep(time.Duration(p.Spec.SettleSeconds) * time.Second)

	if err := p.bootstrap(v.ProxmoxHostIP, vmid); err != nil {
		return fmt.Errorf("bootstrap container %d: %w", vmid, err)
	}

	addr, err := p.containerAddr(ctx, v, vmid)
	if err != nil {
		return err
	}
	klog.Infof("running playbook %s against %s", p.Spec.Ansible.Playbook, addr)
	return p.Exec("ansible-playbook",
		"-i", addr+",",
		"-u", p.Spec.Ansible.User,
		"--ssh-extra-args", "-o StrictHostKeyChecking=no",
		p.Spec.Ansible.Playbook,
	)
}

func (p *Provisioner) createOptions(v *types.Values, vmid int) types.CreateContainerOptions {
	net0 := fmt.Sprintf("name=eth0,bridge=%s,ip=dhcp", p.Spec.Bridge)
	if !v.DHCP {
		net0 = fmt.Sprintf("name=eth0,bridge=%s,ip=%s/%s,gw=%s",
			p.Spec.Bridge, v.IPPrefix, v.CIDRSuffix, v.Gateway)
	}
	return types.CreateContainerOptions{
		VMID:         vmid,
		Hostname:     v.Hostname,
		OSTemplate:   v.OSTemplate,
		Password:     v.RootPassword,
		RootFS:       fmt.Sprintf("%s:%d", v.RootFSStorage, p.Spec.DiskGB),
		Net0:         net0,
		Cores:        p.Spec.Cores,
		Memory:       p.Spec.MemoryMB,
		Unprivileged: p.Spec.Unprivileged,
		Start:        true,
		Description:  fmt.Sprintf("provisioned by pve-bootstrap run %s", p.RunID),
	}
}

func (p *Provisioner) waitTask(ctx context.Context, node, upid string) error {
	return WaitTask(ctx, p.API, node, upid)
}

// WaitTask polls a node task until the platform reports it stopped, then
// checks its exit status.
func WaitTask(ctx context.Context, api client.Client, node, upid string) error {
	for {
		status, err := api.TaskStatus(ctx, node, upid)
		if err != nil {
			return err
		}
		if status.Status == "stopped" {
			if status.ExitStatus != "OK" {
				return fmt.Errorf("task %s failed: %s", upid, status.ExitStatus)
			}
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(taskPollInterval):
		}
	}
}

func (p *Provisioner) bootstrap(host string, vmid int) error {
	cmd, err := BootstrapCommand(vmid)
	if err != nil {
		return err
	}
	shell, err := p.Shell(host, p.Spec.SSH)
	if err != nil {
		return err
	}
	defer shell.Close()
	klog.Infof("installing SSH server inside container %d via %s", vmid, host)
	return shell.Run(cmd)
}

// BootstrapCommand renders the in-container bootstrap command for vmid.
func BootstrapCommand(vmid int) (string, error) {
	sub := map[string]string{"VMID": strconv.Itoa(vmid)}
	return envsubst.Eval(bootstrapTemplate, func(s string) string { return sub[s] })
}

// containerAddr resolves the address the configuration-management engine
// connects to. Static mode reads the configured net0 line; dynamic mode asks
// the guest for its leased address. Either way the mask suffix is stripped.
func (p *Provisioner) containerAddr(ctx context.Context, v *types.Values, vmid int) (string, error) {
	if !v.DHCP {
		cfg, err := p.API.ContainerConfig(ctx, v.TargetNode, vmid)
		if err != nil {
			return "", err
		}
		addr := ParseNet0IP(cfg.Net0)
		if addr == "" {
			return "", fmt.Errorf("container %d reports no address in net0 %q", vmid, cfg.Net0)
		}
		return addr, nil
	}

	ifaces, err := p.API.ContainerInterfaces(ctx, v.TargetNode, vmid)
	if err != nil {
		return "", err
	}
	for _, iface := range ifaces {
		if iface.Name == "lo" || iface.Inet == "" {
			continue
		}
		return stripMask(iface.Inet), nil
	}
	return "", fmt.Errorf("container %d has no leased address yet", vmid)
}

// ParseNet0IP extracts the bare address from a net0 configuration line,
// e.g. "name=eth0,bridge=vmbr0,ip=192.168.0.105/24,gw=192.168.0.1" ->
// "192.168.0.105". Returns "" for dhcp or when no ip= field is present.
func ParseNet0IP(net0 string) string {
	for _, field := range strings.Split(net0, ",") {
		key, val, found := strings.Cut(field, "=")
		if !found || strings.TrimSpace(key) != "ip" {
			continue
		}
		if val == "dhcp" {
			return ""
		}
		return stripMask(val)
	}
	return ""
}

func stripMask(addr string) string {
	addr, _, _ = strings.Cut(addr, "/")
	return addr
}
