package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// MinContentLength is the shortest extracted text trusted from a plain HTTP fetch.
// Shorter text usually means the board renders the posting with JavaScript.
const MinContentLength = 500

// settleDelay gives client-side rendering time to fill the page after the body is ready
const settleDelay = 2 * time.Second

var browserFlags = []chromedp.ExecAllocatorOption{
	chromedp.Flag("headless", true),
	chromedp.Flag("disable-gpu", true),
	chromedp.Flag("no-sandbox", true),
	chromedp.Flag("disable-dev-shm-usage", true),
	chromedp.UserAgent(DefaultUserAgent),
}

// NeedsBrowser reports whether extracted text is too short to be a real posting.
func NeedsBrowser(text string) bool {
	return len(strings.TrimSpace(text)) < MinContentLength
}

// Render loads rawURL in headless Chrome and returns the rendered HTML.
// The whole render, browser start included, is bounded by timeout.
// Chrome or Chromium must be installed.
func Render(ctx context.Context, rawURL string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, append(chromedp.DefaultExecAllocatorOptions[:], browserFlags...)...)
	defer cancelAlloc()
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	start := time.Now()
	var html string
	if err := chromedp.Run(tabCtx, renderTasks(rawURL, &html)); err != nil {
		return "", &Error{URL: rawURL, Message: "browser rendering failed", Cause: err}
	}

	zap.S().Named("fetch").Debugw("rendered page", "url", rawURL, "bytes", len(html), "elapsed", time.Since(start))
	if strings.TrimSpace(html) == "" {
		return "", &Error{URL: rawURL, Message: fmt.Sprintf("browser returned an empty document after %s", time.Since(start).Round(time.Millisecond))}
	}
	return html, nil
}

func renderTasks(rawURL string, html *string) chromedp.Tasks {
	return chromedp.Tasks{
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(settleDelay),
		chromedp.OuterHTML("html", html, chromedp.ByQuery),
	}
}
