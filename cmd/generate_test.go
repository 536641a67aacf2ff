package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunGenerate_RedactsPasswordOnScreen(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/cluster/resources":
			_, _ = w.Write([]byte(`{"data":[{"id":"lxc/105","type":"lxc","vmid":105,"node":"pve"}]}`))
		case "/nodes/pve/storage/local/content":
			_, _ = w.Write([]byte(`{"data":[{"volid":"local:vztmpl/debian-12.tar.zst","content":"vztmpl"}]}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()
	setClientEnv(t, srv.URL)

	output := filepath.Join(t.TempDir(), "provision.tfvars")
	require.NoError(t, generateCmd.Flags().Set("output", output))
	generateCmd.SetContext(context.Background())

	answers := []string{
		"",        // host, defaulted from the API URL
		"",        // node
		"",        // storage
		"",        // hostname
		"1",       // template
		"local-lvm",
		"s3cret!", // root password
		"dhcp",
	}
	generateCmd.SetIn(strings.NewReader(strings.Join(answers, "\n") + "\n"))
	out := &bytes.Buffer{}
	generateCmd.SetOut(out)

	require.NoError(t, runGenerate(generateCmd))

	assert.Contains(t, out.String(), `root_password = "<redacted>"`)
	assert.NotContains(t, out.String(), "s3cret!")

	raw, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `root_password = "s3cret!"`)
	assert.NotContains(t, string(raw), "<redacted>")
}
