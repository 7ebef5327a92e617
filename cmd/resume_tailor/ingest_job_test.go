package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestJobCommand_FlagsValidation(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "ingest-job")
	cmd.Env = cleanEnv()
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "required")
}

func TestIngestJobCommand_WritesJobFile(t *testing.T) {
	binaryPath := getBinaryPath(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><main><h1>Platform Engineer</h1>
<p>You will build the deployment platform used by every team at the company.</p>
<p>Experience with Go, Kubernetes and PostgreSQL is expected.</p></main></body></html>`))
	}))
	defer server.Close()

	outPath := filepath.Join(t.TempDir(), "job_description.txt")
	cmd := exec.Command(binaryPath, "ingest-job", "--url", server.URL, "--position", "Platform Engineer", "--out", outPath)
	cmd.Env = cleanEnv()
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, string(output))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Platform Engineer\n")
	assert.Contains(t, string(data), "deployment platform")
}
