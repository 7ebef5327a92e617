package ingestion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postingServer(t *testing.T, html string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestIngestFromURL_UsesHeadingAsPosition(t *testing.T) {
	server := postingServer(t, `<html><head><title>Careers</title></head><body>
		<h1>ML Engineer</h1>
		<div class="job-description"><p>We need Python.</p><p>PyTorch a plus.</p></div>
	</body></html>`)

	record, err := IngestFromURL(context.Background(), server.URL, URLOptions{})
	require.NoError(t, err)
	assert.Equal(t, "ML Engineer", record.Position)
	assert.Equal(t, "We need Python.PyTorch a plus.", record.Description)
}

func TestIngestFromURL_PositionOverride(t *testing.T) {
	server := postingServer(t, `<html><body><main><p>Build APIs</p></main></body></html>`)

	record, err := IngestFromURL(context.Background(), server.URL, URLOptions{Position: "Backend"})
	require.NoError(t, err)
	assert.Equal(t, "Backend", record.Position)
	assert.Equal(t, "Build APIs", record.Description)
}

func TestIngestFromURL_NoPosition(t *testing.T) {
	server := postingServer(t, `<html><body><main><p>Build APIs</p></main></body></html>`)

	_, err := IngestFromURL(context.Background(), server.URL, URLOptions{})
	var malformed *MalformedInputError
	require.True(t, errors.As(err, &malformed))
}

func TestIngestFromURL_FetchError(t *testing.T) {
	_, err := IngestFromURL(context.Background(), "not-a-url", URLOptions{Position: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch job posting")
}
