package varfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pve-bootstrap/types"
)

func staticValues() types.Values {
	return types.Values{
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

func TestRender_Static(t *testing.T) {
	want := `proxmox_host_ip = "10.0.0.5"
target_node = "pve"
hostname = "webserver"
ostemplate = "local:vztmpl/debian-12.tar.zst"
rootfs_storage = "local-lvm"
root_password = "hunter2"
container_id = 105
ip_prefix = "192.168.0.105"
cidr_suffix = "24"
gateway = "192.168.0.1"
`
	assert.Equal(t, want, Render(staticValues()))
}

func TestRender_DynamicWritesNullMarkers(t *testing.T) {
	v := staticValues()
	v.DHCP = true

	got := Render(v)
	for _, k := range []string{KeyContainerID, KeyIPPrefix, KeyCIDRSuffix, KeyGateway} {
		assert.Contains(t, got, k+" = null\n")
	}
	assert.NotContains(t, got, "192.168.0.105")
}

func TestRedacted_MasksPassword(t *testing.T) {
	got := Render(Redacted(staticValues()))
	assert.Contains(t, got, `root_password = "<redacted>"`)
	assert.NotContains(t, got, "hunter2")
}

func TestParse_RoundTrip(t *testing.T) {
	type test struct {
		name  string
		input types.Values
	}
	tests := []test{
		{name: "static", input: staticValues()},
		{name: "dynamic", input: types.Values{
			ProxmoxHostIP: "10.0.0.5",
			TargetNode:    "pve",
			Hostname:      "webserver",
			OSTemplate:    "local:vztmpl/debian-12.tar.zst",
			RootFSStorage: "local-lvm",
			RootPassword:  "hunter2",
			DHCP:          true,
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(Render(tc.input)))
			require.NoError(t, err)
			assert.Equal(t, &tc.input, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	type test struct {
		name    string
		input   string
		wantErr string
	}
	static := Render(staticValues())
	tests := []test{
		{
			name:    "missing key",
			input:   strings.Replace(static, `gateway = "192.168.0.1"`+"\n", "", 1),
			wantErr: "missing key gateway",
		},
		{
			name:    "malformed line",
			input:   static + "not an assignment\n",
			wantErr: `malformed line "not an assignment"`,
		},
		{
			name:    "mixed null and concrete addressing",
			input:   strings.Replace(static, `gateway = "192.168.0.1"`, "gateway = null", 1),
			wantErr: "addressing fields must be all null or all set, found 1 null",
		},
		{
			name:    "non-numeric container id",
			input:   strings.Replace(static, "container_id = 105", "container_id = abc", 1),
			wantErr: `invalid container_id "abc"`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.input))
			assert.EqualError(t, err, tc.wantErr)
		})
	}
}

func TestWrite_ReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "provision.tfvars")
	require.NoError(t, os.WriteFile(path, []byte("stale = true\n"), 0o600))

	require.NoError(t, Write(path, staticValues()))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 105, loaded.ContainerID)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "stale")
}
