// Package wizard implements the interactive session that collects the
// provisioning variables. The session is strictly sequential; every answer is
// validated as it is read and the first invalid one terminates the run. I/O
// goes through an injectable reader/writer pair so the session can be driven
// by a scripted source in tests.
package wizard

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"

	"pve-bootstrap/client"
	"pve-bootstrap/inventory"
	"pve-bootstrap/types"
)

// Prompt defaults.
const (
	DefaultNode     = "pve"
	DefaultStorage  = "local"
	DefaultHostname = "webserver"
	DefaultIPPrefix = "192.168.0"
	DefaultCIDR     = "24"
)

// Session drives one wizard run.
type Session struct {
	In  *bufio.Reader
	Out io.Writer
	// ReadSecret reads the root password without echoing it. When nil the
	// session falls back to a plain line read from In (non-TTY input).
	ReadSecret func() (string, error)
}

// NewSession wraps in/out for a run.
func NewSession(in io.Reader, out io.Writer) *Session {
	return &Session{In: bufio.NewReader(in), Out: out}
}

// Run walks the prompt sequence and returns the collected values. A nil
// Values with nil error means the operator chose the quit menu entry; no file
// should be written and the process should exit cleanly.
func (s *Session) Run(ctx context.Context, api client.Client, hostDefault string) (*types.Values, error) {
	suggested, err := inventory.NextID(ctx, api)
	if err != nil {
		return nil, fmt.Errorf("allocate container ID: %w", err)
	}
	fmt.Fprintf(s.Out, "Suggested container ID: %d\n", suggested)

	host, err := s.promptRequired("Proxmox host address", hostDefault)
	if err != nil {
		return nil, err
	}

	node, err := s.prompt("Target node", DefaultNode)
	if err != nil {
		return nil, err
	}
	storage, err := s.prompt("Template storage", DefaultStorage)
	if err != nil {
		return nil, err
	}

	templates, err := inventory.Templates(ctx, api, node, storage)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("no container templates found on %s/%s", node, storage)
	}

	hostname, err := s.prompt("Container hostname", DefaultHostname)
	if err != nil {
		return nil, err
	}

	template, quit, err := s.selectTemplate(templates)
	if err != nil {
		return nil, err
	}
	if quit {
		fmt.Fprintln(s.Out, "Aborted, nothing written.")
		return nil, nil
	}

	rootfs, err := s.promptRequired("Root disk storage", "")
	if err != nil {
		return nil, err
	}

	password, err := s.secret("Root password")
	if err != nil {
		return nil, err
	}

	v := &types.Values{
		ProxmoxHostIP: host,
		TargetNode:    node,
		Hostname:      hostname,
		OSTemplate:    template,
		RootFSStorage: rootfs,
		RootPassword:  password,
	}

	mode, err := s.prompt("Addressing mode (static/dhcp)", "static")
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(mode) {
	case "dhcp":
		v.DHCP = true
		return v, nil
	case "static":
	default:
		return nil, fmt.Errorf("invalid addressing mode %q", mode)
	}

	idStr, err := s.promptRequired("Container ID", strconv.Itoa(suggested))
	if err != nil {
		return nil, err
	}
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("invalid container ID %q", idStr)
	}

	prefix, err := s.promptRequired("Address prefix", DefaultIPPrefix)
	if err != nil {
		return nil, err
	}
	cidr, err := s.promptRequired("CIDR suffix", DefaultCIDR)
	if err != nil {
		return nil, err
	}
	host4, err := s.promptRequired("Host address octet", hostPart(idStr))
	if err != nil {
		return nil, err
	}
	gateway, err := s.promptRequired("Gateway", prefix+".1")
	if err != nil {
		return nil, err
	}

	v.ContainerID = id
	v.IPPrefix = prefix + "." + host4
	v.CIDRSuffix = cidr
	v.Gateway = gateway
	return v, nil
}

// selectTemplate prints the numbered menu plus a quit entry one past the last
// template and reads one selection. Non-numeric or out-of-range answers are
// fatal; the quit entry is a clean early exit.
func (s *Session) selectTemplate(templates []string) (string, bool, error) {
	fmt.Fprintln(s.Out, "Available templates:")
	for i, volid := range templates {
		fmt.Fprintf(s.Out, "  %d) %s\n", i+1, volid)
	}
	quitChoice := len(templates) + 1
	fmt.Fprintf(s.Out, "  %d) quit\n", quitChoice)

	answer, err := s.prompt("Template", "")
	if err != nil {
		return "", false, err
	}
	choice, err := strconv.Atoi(answer)
	if err != nil {
		return "", false, fmt.Errorf("invalid template selection %q", answer)
	}
	if choice < 1 || choice > quitChoice {
		return "", false, fmt.Errorf("template selection %d out of range", choice)
	}
	if choice == quitChoice {
		return "", true, nil
	}
	return templates[choice-1], false, nil
}

func (s *Session) prompt(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(s.Out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(s.Out, "%s: ", label)
	}
	line, err := s.In.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}

func (s *Session) promptRequired(label, def string) (string, error) {
	v, err := s.prompt(label, def)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", fmt.Errorf("%s must not be empty", strings.ToLower(label))
	}
	return v, nil
}

func (s *Session) secret(label string) (string, error) {
	fmt.Fprintf(s.Out, "%s: ", label)
	if s.ReadSecret != nil {
		v, err := s.ReadSecret()
		fmt.Fprintln(s.Out)
		return v, err
	}
	line, err := s.In.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// HostFromURL extracts a bare host from an API base URL by stripping the
// scheme and any trailing port or path, e.g.
// "https://10.0.0.5:8006/api2/json" -> "10.0.0.5". Returns "" when raw is
// empty so the prompt simply has no default.
func HostFromURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.Index(raw, "://"); i >= 0 {
		raw = raw[i+3:]
	}
	if i := strings.IndexByte(raw, '/'); i >= 0 {
		raw = raw[:i]
	}
	if h, _, err := net.SplitHostPort(raw); err == nil {
		raw = h
	}
	return raw
}

// hostPart derives the default last address octet from the trailing segment
// of the container ID string, the common homelab convention of matching the
// container IP to its ID.
func hostPart(id string) string {
	for _, n := range []int{3, 2, 1} {
		if len(id) < n {
			continue
		}
		seg := id[len(id)-n:]
		if v, err := strconv.Atoi(seg); err == nil && v >= 1 && v <= 254 {
			return strconv.Itoa(v)
		}
	}
	return id
}
