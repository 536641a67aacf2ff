package provision

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"pve-bootstrap/client/mock"
	"pve-bootstrap/types"
)

type fakeShell struct {
	commands []string
	runErr   error
	closed   bool
}

func (f *fakeShell) Run(cmd string) error {
	f.commands = append(f.commands, cmd)
	return f.runErr
}

func (f *fakeShell) Close() error {
	f.closed = true
	return nil
}

type execCall struct {
	name string
	args []string
}

func newTestProvisioner(api *mock.MockClient, shell *fakeShell) (*Provisioner, *[]execCall, *[]time.Duration) {
	var calls []execCall
	var sleeps []time.Duration
	p := &Provisioner{
		API:   api,
		Spec:  DefaultSpec(),
		RunID: "test-run",
		Shell: func(string, SSHSpec) (ShellRunner, error) { return shell, nil },
		Exec: func(name string, args ...string) error {
			calls = append(calls, execCall{name: name, args: args})
			return nil
		},
		Sleep: func(d time.Duration) { sleeps = append(sleeps, d) },
	}
	return p, &calls, &sleeps
}

func staticValues() *types.Values {
	return &types.Values{
		ProxmoxHostIP: "10.0.0.5",
		TargetNode:    "pve",
		Hostname:      "webserver",
		OSTemplate:    "local:vztmpl/debian-12.tar.zst",
		RootFSStorage: "local-lvm",
		RootPassword:  "hunter2",
		ContainerID:   105,
		IPPrefix:      "192.168.0.105",
		CIDRSuffix:    "24",
		Gateway:       "192.168.0.1",
	}
}

func stoppedOK() *types.TaskStatus {
	return &types.TaskStatus{Status: "stopped", ExitStatus: "OK"}
}

func TestRun_Static(t *testing.T) {
	api := mock.NewMockClient(gomock.NewController(t))
	shell := &fakeShell{}
	p, calls, sleeps := newTestProvisioner(api, shell)

	api.EXPECT().CreateContainer(gomock.Any(), "pve", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, opts types.CreateContainerOptions) (string, error) {
			assert.Equal(t, 105, opts.VMID)
			assert.Equal(t, "name=eth0,bridge=vmbr0,ip=192.168.0.105/24,gw=192.168.0.1", opts.Net0)
			assert.Equal(t, "local-lvm:8", opts.RootFS)
			assert.True(t, opts.Start)
			assert.Contains(t, opts.Description, "test-run")
			return "UPID:pve:1234:", nil
		})
	api.EXPECT().TaskStatus(gomock.Any(), "pve", "UPID:pve:1234:").Return(stoppedOK(), nil)
	api.EXPECT().ContainerConfig(gomock.Any(), "pve", 105).Return(&types.ContainerConfig{
		Net0: "name=eth0,bridge=vmbr0,ip=192.168.0.105/24,gw=192.168.0.1",
	}, nil)

	require.NoError(t, p.Run(context.Background(), staticValues()))

	// fixed settling delay before bootstrap
	assert.Equal(t, []time.Duration{30 * time.Second}, *sleeps)

	require.Len(t, shell.commands, 1)
	assert.Equal(t, `pct exec 105 -- sh -c 'apt-get update && apt-get -y upgrade && DEBIAN_FRONTEND=noninteractive apt-get -y install openssh-server && systemctl enable --now ssh'`, shell.commands[0])
	assert.True(t, shell.closed)

	require.Len(t, *calls, 1)
	assert.Equal(t, "ansible-playbook", (*calls)[0].name)
	assert.Equal(t, []string{
		"-i", "192.168.0.105,",
		"-u", "ansible",
		"--ssh-extra-args", "-o StrictHostKeyChecking=no",
		"site.yml",
	}, (*calls)[0].args)
}

func TestRun_DHCPAllocatesIDAndReadsLease(t *testing.T) {
	api := mock.NewMockClient(gomock.NewController(t))
	shell := &fakeShell{}
	p, calls, _ := newTestProvisioner(api, shell)

	v := staticValues()
	v.DHCP = true
	v.ContainerID = 0
	v.IPPrefix = ""
	v.CIDRSuffix = ""
	v.Gateway = ""

	api.EXPECT().ClusterResources(gomock.Any()).Return([]types.ClusterResource{
		{ID: "lxc/110", Type: "lxc", VMID: 110},
	}, nil)
	api.EXPECT().CreateContainer(gomock.Any(), "pve", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, opts types.CreateContainerOptions) (string, error) {
			assert.Equal(t, 111, opts.VMID)
			assert.Equal(t, "name=eth0,bridge=vmbr0,ip=dhcp", opts.Net0)
			return "UPID:pve:5678:", nil
		})
	api.EXPECT().TaskStatus(gomock.Any(), "pve", "UPID:pve:5678:").Return(stoppedOK(), nil)
	api.EXPECT().ContainerInterfaces(gomock.Any(), "pve", 111).Return([]types.ContainerInterface{
		{Name: "lo", Inet: "127.0.0.1/8"},
		{Name: "eth0", Inet: "10.0.3.17/24"},
	}, nil)

	require.NoError(t, p.Run(context.Background(), v))
	require.Len(t, *calls, 1)
	assert.Equal(t, "10.0.3.17,", (*calls)[0].args[1])
}

func TestRun_FailedCreationTaskAborts(t *testing.T) {
	api := mock.NewMockClient(gomock.NewController(t))
	shell := &fakeShell{}
	p, calls, _ := newTestProvisioner(api, shell)

	api.EXPECT().CreateContainer(gomock.Any(), "pve", gomock.Any()).Return("UPID:pve:1234:", nil)
	api.EXPECT().TaskStatus(gomock.Any(), "pve", "UPID:pve:1234:").
		Return(&types.TaskStatus{Status: "stopped", ExitStatus: "unable to create CT 105"}, nil)

	err := p.Run(context.Background(), staticValues())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to create CT 105")
	assert.Empty(t, shell.commands)
	assert.Empty(t, *calls)
}

func TestRun_BootstrapFailureSkipsPlaybook(t *testing.T) {
	api := mock.NewMockClient(gomock.NewController(t))
	shell := &fakeShell{runErr: errors.New("connection reset")}
	p, calls, _ := newTestProvisioner(api, shell)

	api.EXPECT().CreateContainer(gomock.Any(), "pve", gomock.Any()).Return("UPID:pve:1234:", nil)
	api.EXPECT().TaskStatus(gomock.Any(), "pve", "UPID:pve:1234:").Return(stoppedOK(), nil)

	err := p.Run(context.Background(), staticValues())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bootstrap container 105")
	assert.Empty(t, *calls)
}

func TestParseNet0IP(t *testing.T) {
	type test struct {
		net0 string
		want string
	}
	tests := []test{
		{net0: "name=eth0,bridge=vmbr0,ip=192.168.0.105/24,gw=192.168.0.1", want: "192.168.0.105"},
		{net0: "name=eth0,bridge=vmbr0,ip=dhcp", want: ""},
		{net0: "name=eth0,bridge=vmbr0", want: ""},
		{net0: "", want: ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ParseNet0IP(tc.net0), "input %q", tc.net0)
	}
}

func TestLoadSpec(t *testing.T) {
	spec, err := LoadSpec("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSpec(), spec)

	_, err = LoadSpec("does-not-exist.yaml")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "spec.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bridge: vmbr1\nssh:\n  user: provision\n  key_path: /root/.ssh/id_ed25519\n"), 0o600))
	spec, err = LoadSpec(path)
	require.NoError(t, err)
	assert.Equal(t, "vmbr1", spec.Bridge)
	assert.Equal(t, "provision", spec.SSH.User)
	assert.Equal(t, "/root/.ssh/id_ed25519", spec.SSH.KeyPath)
	// untouched fields keep their defaults
	assert.Equal(t, 2048, spec.MemoryMB)
	assert.Equal(t, 22, spec.SSH.Port)
}
