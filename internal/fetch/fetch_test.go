package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><p>hello</p></body></html>"))
	}))
	defer server.Close()

	page, err := Get(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, page.StatusCode)
	assert.Contains(t, page.HTML, "hello")
	assert.Equal(t, "text/html", page.ContentType)
}

func TestGet_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := Get(context.Background(), server.URL, nil)
	require.Error(t, err)
	var fetchErr *Error
	require.True(t, errors.As(err, &fetchErr))
	assert.Contains(t, fetchErr.Message, "404")
}

func TestGet_InvalidURL(t *testing.T) {
	for _, raw := range []string{"", "not a url", "example.com/jobs"} {
		_, err := Get(context.Background(), raw, nil)
		var fetchErr *Error
		require.True(t, errors.As(err, &fetchErr), raw)
		assert.Equal(t, "invalid URL", fetchErr.Message)
	}
}

func TestMainText_PrefersContentSelector(t *testing.T) {
	html := `<html><body>
		<nav>Menu</nav>
		<div class="job-description">
			<h2>About the role</h2>
			<p>Build ML systems.</p>
		</div>
		<footer>Copyright</footer>
	</body></html>`

	text, err := MainText(html, ContentSelectors(BoardUnknown))
	require.NoError(t, err)
	assert.Equal(t, "About the role\nBuild ML systems.", text)
}

func TestMainText_FallsBackToBody(t *testing.T) {
	html := `<html><body><script>var x = 1;</script><p>Only body</p></body></html>`

	text, err := MainText(html, []string{".missing"})
	require.NoError(t, err)
	assert.Equal(t, "Only body", text)
}

func TestMainText_RemovesNoise(t *testing.T) {
	html := `<html><body><main><p>Keep</p><div id="application">Apply form</div></main></body></html>`

	text, err := MainText(html, []string{"main"}, NoiseSelectors(BoardGreenhouse)...)
	require.NoError(t, err)
	assert.Equal(t, "Keep", text)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "ML Engineer", Title("<html><head><title>Jobs</title></head><body><h1> ML Engineer </h1></body></html>"))
	assert.Equal(t, "Jobs", Title("<html><head><title>Jobs</title></head><body></body></html>"))
	assert.Equal(t, "", Title(""))
}

func TestDetectBoard(t *testing.T) {
	tests := []struct {
		url      string
		expected Board
	}{
		{"https://boards.greenhouse.io/acme/jobs/1", BoardGreenhouse},
		{"https://job-boards.greenhouse.io/acme/jobs/1", BoardGreenhouse},
		{"https://jobs.lever.co/acme/123", BoardLever},
		{"https://acme.wd5.myworkdayjobs.com/en-US/careers/job/1", BoardWorkday},
		{"https://jobs.ashbyhq.com/acme/1", BoardAshby},
		{"https://example.com/careers", BoardUnknown},
		{"https://notgreenhouse.io.example.com", BoardUnknown},
		{"::bad", BoardUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectBoard(tt.url))
		})
	}
}

func TestNeedsBrowser(t *testing.T) {
	assert.True(t, NeedsBrowser("   short   "))
	assert.False(t, NeedsBrowser(strings.Repeat("x", MinContentLength)))
}

func TestRender_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Render(ctx, "https://example.com/jobs/1", time.Second)
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "https://example.com/jobs/1", fetchErr.URL)
}
