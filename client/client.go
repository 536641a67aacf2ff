// Package client wraps the Proxmox VE HTTP API behind an interface that can
// be mocked out for testing.
package client

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"pve-bootstrap/types"
)

// Environment variables read once at process start.
const (
	EnvAPIURL      = "PM_API_URL"
	EnvTokenID     = "PM_API_TOKEN_ID"
	EnvTokenSecret = "PM_API_TOKEN_SECRET"
	EnvTLSInsecure = "PM_TLS_INSECURE"
)

// Config is the API connection configuration, constructed once and passed to
// every collaborator instead of being read ad hoc from the environment.
type Config struct {
	BaseURL     string
	TokenID     string
	TokenSecret string
	// InsecureTLS skips certificate verification. Verification is opt-in:
	// only the literal value "false" in PM_TLS_INSECURE enables it.
	InsecureTLS bool
}

// FromEnv builds a Config from the PM_* environment variables. All three
// credentials are required; a descriptive error names every missing one.
func FromEnv() (Config, error) {
	cfg := Config{
		BaseURL:     os.Getenv(EnvAPIURL),
		TokenID:     os.Getenv(EnvTokenID),
		TokenSecret: os.Getenv(EnvTokenSecret),
		InsecureTLS: os.Getenv(EnvTLSInsecure) != "false",
	}

	var missing []string
	if cfg.BaseURL == "" {
		missing = append(missing, EnvAPIURL)
	}
	if cfg.TokenID == "" {
		missing = append(missing, EnvTokenID)
	}
	if cfg.TokenSecret == "" {
		missing = append(missing, EnvTokenSecret)
	}
	if len(missing) > 0 {
		return cfg, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

// Client is an interface that includes all Proxmox API calls made by this
// tool, so they can be mocked out for testing.
type Client interface {
	ClusterResources(ctx context.Context) ([]types.ClusterResource, error)
	StorageContent(ctx context.Context, node, storage string) ([]types.StorageContent, error)
	CreateContainer(ctx context.Context, node string, opts types.CreateContainerOptions) (string, error)
	TaskStatus(ctx context.Context, node, upid string) (*types.TaskStatus, error)
	ContainerConfig(ctx context.Context, node string, vmid int) (*types.ContainerConfig, error)
	ContainerInterfaces(ctx context.Context, node string, vmid int) ([]types.ContainerInterface, error)
	StopContainer(ctx context.Context, node string, vmid int) (string, error)
	DeleteContainer(ctx context.Context, node string, vmid int) (string, error)
}

// PVE is the real Client backed by a resty HTTP client.
type PVE struct {
	rest *resty.Client
}

// New builds a PVE client from cfg. Every request carries the API token
// authorization header.
func New(cfg Config) *PVE {
	rc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Authorization", fmt.Sprintf("PVEAPIToken=%s=%s", cfg.TokenID, cfg.TokenSecret))
	if cfg.InsecureTLS {
		rc.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}) //nolint:gosec // self-signed certs are the PVE default
	}
	return &PVE{rest: rc}
}

func (p *PVE) ClusterResources(ctx context.Context) ([]types.ClusterResource, error) {
	resp, err := p.rest.R().SetContext(ctx).Get("/cluster/resources")
	var resources []types.ClusterResource
	if err := decodeData("list cluster resources", resp, err, &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

func (p *PVE) StorageContent(ctx context.Context, node, storage string) ([]types.StorageContent, error) {
	resp, err := p.rest.R().SetContext(ctx).
		SetPathParams(map[string]string{"node": node, "storage": storage}).
		Get("/nodes/{node}/storage/{storage}/content")
	var content []types.StorageContent
	if err := decodeData("list storage content", resp, err, &content); err != nil {
		return nil, err
	}
	return content, nil
}

func (p *PVE) CreateContainer(ctx context.Context, node string, opts types.CreateContainerOptions) (string, error) {
	form := map[string]string{
		"vmid":       strconv.Itoa(opts.VMID),
		"hostname":   opts.Hostname,
		"ostemplate": opts.OSTemplate,
		"password":   opts.Password,
		"rootfs":     opts.RootFS,
		"net0":       opts.Net0,
		"cores":      strconv.Itoa(opts.Cores),
		"memory":     strconv.Itoa(opts.Memory),
	}
	if opts.Unprivileged {
		form["unprivileged"] = "1"
	}
	if opts.Start {
		form["start"] = "1"
	}
	if opts.Description != "" {
		form["description"] = opts.Description
	}

	resp, err := p.rest.R().SetContext(ctx).
		SetPathParam("node", node).
		SetFormData(form).
		Post("/nodes/{node}/lxc")
	var upid string
	if err := decodeData("create container", resp, err, &upid); err != nil {
		return "", err
	}
	return upid, nil
}

func (p *PVE) TaskStatus(ctx context.Context, node, upid string) (*types.TaskStatus, error) {
	resp, err := p.rest.R().SetContext(ctx).
		SetPathParams(map[string]string{"node": node, "upid": upid}).
		Get("/nodes/{node}/tasks/{upid}/status")
	var status types.TaskStatus
	if err := decodeData("query task status", resp, err, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (p *PVE) ContainerConfig(ctx context.Context, node string, vmid int) (*types.ContainerConfig, error) {
	resp, err := p.rest.R().SetContext(ctx).
		SetPathParams(map[string]string{"node": node, "vmid": strconv.Itoa(vmid)}).
		Get("/nodes/{node}/lxc/{vmid}/config")
	var config types.ContainerConfig
	if err := decodeData("read container config", resp, err, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

func (p *PVE) ContainerInterfaces(ctx context.Context, node string, vmid int) ([]types.ContainerInterface, error) {
	resp, err := p.rest.R().SetContext(ctx).
		SetPathParams(map[string]string{"node": node, "vmid": strconv.Itoa(vmid)}).
		Get("/nodes/{node}/lxc/{vmid}/interfaces")
	var ifaces []types.ContainerInterface
	if err := decodeData("list container interfaces", resp, err, &ifaces); err != nil {
		return nil, err
	}
	return ifaces, nil
}

func (p *PVE) StopContainer(ctx context.Context, node string, vmid int) (string, error) {
	resp, err := p.rest.R().SetContext(ctx).
		SetPathParams(map[string]string{"node": node, "vmid": strconv.Itoa(vmid)}).
		Post("/nodes/{node}/lxc/{vmid}/status/stop")
	var upid string
	if err := decodeData("stop container", resp, err, &upid); err != nil {
		return "", err
	}
	return upid, nil
}

func (p *PVE) DeleteContainer(ctx context.Context, node string, vmid int) (string, error) {
	resp, err := p.rest.R().SetContext(ctx).
		SetPathParams(map[string]string{"node": node, "vmid": strconv.Itoa(vmid)}).
		Delete("/nodes/{node}/lxc/{vmid}")
	var upid string
	if err := decodeData("delete container", resp, err, &upid); err != nil {
		return "", err
	}
	return upid, nil
}

// decodeData folds transport errors, non-2xx responses and malformed bodies
// into a single error naming the attempted operation. Every API response must
// be a JSON object with a data field; a body that does not decode, or one
// without data, is fatal and the diagnostic carries the raw body for
// operator debugging.
func decodeData(op string, resp *resty.Response, err error, out any) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if resp.IsError() {
		body := strings.TrimSpace(resp.String())
		if body == "" {
			return fmt.Errorf("%s: unexpected status %s", op, resp.Status())
		}
		return fmt.Errorf("%s: unexpected status %s: %s", op, resp.Status(), body)
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return fmt.Errorf("%s: malformed response: %w (body: %s)", op, err, strings.TrimSpace(resp.String()))
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return fmt.Errorf("%s: response has no data field (body: %s)", op, strings.TrimSpace(resp.String()))
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("%s: malformed response: %w (body: %s)", op, err, strings.TrimSpace(resp.String()))
	}
	return nil
}
