// Package varfile renders and parses the variable file handed from the
// interactive wizard to the provisioning step. The file is an ordered list of
// tfvars-style `key = value` assignments, written whole on every run.
package varfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"pve-bootstrap/types"
)

// Null is the explicit marker written for the four addressing fields when
// dynamic addressing is chosen.
const Null = "null"

// Keys in file order.
const (
	KeyProxmoxHostIP = "proxmox_host_ip"
	KeyTargetNode    = "target_node"
	KeyHostname      = "hostname"
	KeyOSTemplate    = "ostemplate"
	KeyRootFSStorage = "rootfs_storage"
	KeyRootPassword  = "root_password"
	KeyContainerID   = "container_id"
	KeyIPPrefix      = "ip_prefix"
	KeyCIDRSuffix    = "cidr_suffix"
	KeyGateway       = "gateway"
)

// Render returns the full variable file content for v.
func Render(v types.Values) string {
	var b strings.Builder
	str := func(k, val string) { fmt.Fprintf(&b, "%s = %q\n", k, val) }

	str(KeyProxmoxHostIP, v.ProxmoxHostIP)
	str(KeyTargetNode, v.TargetNode)
	str(KeyHostname, v.Hostname)
	str(KeyOSTemplate, v.OSTemplate)
	str(KeyRootFSStorage, v.RootFSStorage)
	str(KeyRootPassword, v.RootPassword)
	if v.DHCP {
		for _, k := range []string{KeyContainerID, KeyIPPrefix, KeyCIDRSuffix, KeyGateway} {
			fmt.Fprintf(&b, "%s = %s\n", k, Null)
		}
		return b.String()
	}
	fmt.Fprintf(&b, "%s = %d\n", KeyContainerID, v.ContainerID)
	str(KeyIPPrefix, v.IPPrefix)
	str(KeyCIDRSuffix, v.CIDRSuffix)
	str(KeyGateway, v.Gateway)
	return b.String()
}

// RedactedSecret is the placeholder printed instead of the root password when
// values are echoed back to the terminal.
const RedactedSecret = "<redacted>"

// Redacted returns a copy of v with the root password masked, for on-screen
// display. The written file keeps the real value.
func Redacted(v types.Values) types.Values {
	v.RootPassword = RedactedSecret
	return v
}

// Write replaces any prior file at path with the rendered content of v.
func Write(path string, v types.Values) error {
	if err := os.WriteFile(path, []byte(Render(v)), 0o600); err != nil {
		return fmt.Errorf("write variable file: %w", err)
	}
	return nil
}

// Load reads and parses the variable file at path.
func Load(path string) (*types.Values, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open variable file: %w", err)
	}
	defer f.Close()
	v, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse variable file %s: %w", path, err)
	}
	return v, nil
}

// Parse reads `key = value` assignments from r. Blank lines and #-comments
// are skipped. All ten keys must be present; the four addressing keys must be
// either all null (dynamic mode) or all concrete (static mode).
func Parse(r io.Reader) (*types.Values, error) {
	seen := map[string]string{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, raw, found := strings.Cut(line, "=")
		if !found {
			return nil, fmt.Errorf("malformed line %q", line)
		}
		key = strings.TrimSpace(key)
		raw = strings.TrimSpace(raw)
		if strings.HasPrefix(raw, `"`) {
			unquoted, err := strconv.Unquote(raw)
			if err != nil {
				return nil, fmt.Errorf("malformed value for %s: %w", key, err)
			}
			raw = unquoted
		}
		seen[key] = raw
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	for _, k := range []string{
		KeyProxmoxHostIP, KeyTargetNode, KeyHostname, KeyOSTemplate,
		KeyRootFSStorage, KeyRootPassword, KeyContainerID, KeyIPPrefix,
		KeyCIDRSuffix, KeyGateway,
	} {
		if _, ok := seen[k]; !ok {
			return nil, fmt.Errorf("missing key %s", k)
		}
	}

	v := &types.Values{
		ProxmoxHostIP: seen[KeyProxmoxHostIP],
		TargetNode:    seen[KeyTargetNode],
		Hostname:      seen[KeyHostname],
		OSTemplate:    seen[KeyOSTemplate],
		RootFSStorage: seen[KeyRootFSStorage],
		RootPassword:  seen[KeyRootPassword],
	}

	nulls := 0
	for _, k := range []string{KeyContainerID, KeyIPPrefix, KeyCIDRSuffix, KeyGateway} {
		if seen[k] == Null {
			nulls++
		}
	}
	switch nulls {
	case 4:
		v.DHCP = true
		return v, nil
	case 0:
		// static mode below
	default:
		return nil, fmt.Errorf("addressing fields must be all null or all set, found %d null", nulls)
	}

	id, err := strconv.Atoi(seen[KeyContainerID])
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("invalid %s %q", KeyContainerID, seen[KeyContainerID])
	}
	v.ContainerID = id
	v.IPPrefix = seen[KeyIPPrefix]
	v.CIDRSuffix = seen[KeyCIDRSuffix]
	v.Gateway = seen[KeyGateway]
	return v, nil
}
