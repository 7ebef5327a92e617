package ingestion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/resume-tailor/internal/fetch"
	"github.com/jonathan/resume-tailor/internal/types"
	"go.uber.org/zap"
)

// URLOptions configures ingestion of a posting from the web
type URLOptions struct {
	// Position overrides the position taken from the page title
	Position string
	// UseBrowser allows a headless browser fallback for JavaScript-rendered boards
	UseBrowser     bool
	BrowserTimeout time.Duration
	Fetch          *fetch.Options
}

// IngestFromURL fetches a job posting and turns it into a JobRecord.
// The description is the posting's main text; the position is opts.Position or the page heading.
func IngestFromURL(ctx context.Context, rawURL string, opts URLOptions) (*types.JobRecord, error) {
	log := zap.S().Named("ingestion")

	page, err := fetch.Get(ctx, rawURL, opts.Fetch)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch job posting: %w", err)
	}

	board := fetch.DetectBoard(rawURL)
	log.Debugw("fetched job posting", "url", rawURL, "board", board, "bytes", len(page.HTML))

	html := page.HTML
	text, err := fetch.MainText(html, fetch.ContentSelectors(board), fetch.NoiseSelectors(board)...)
	if err != nil {
		return nil, fmt.Errorf("failed to extract job posting text: %w", err)
	}

	if opts.UseBrowser && fetch.NeedsBrowser(text) {
		timeout := opts.BrowserTimeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		log.Infow("posting text too short, rendering with browser", "chars", len(text))
		rendered, renderErr := fetch.Render(ctx, rawURL, timeout)
		if renderErr != nil {
			log.Warnw("browser rendering failed, keeping HTTP content", "error", renderErr)
		} else if renderedText, extractErr := fetch.MainText(rendered, fetch.ContentSelectors(board), fetch.NoiseSelectors(board)...); extractErr == nil {
			html = rendered
			text = renderedText
		}
	}

	position := strings.TrimSpace(opts.Position)
	if position == "" {
		position = fetch.Title(html)
	}
	if position == "" {
		return nil, &MalformedInputError{Message: fmt.Sprintf("could not determine the position from %s; provide it explicitly", rawURL)}
	}
	if strings.TrimSpace(text) == "" {
		return nil, &MalformedInputError{Message: fmt.Sprintf("no job description text found at %s", rawURL)}
	}

	return &types.JobRecord{
		Position:    position,
		Description: strings.TrimSpace(text),
	}, nil
}
