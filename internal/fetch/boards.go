package fetch

import (
	"net/url"
	"strings"
)

// Board is a known job board (applicant tracking system).
type Board string

// Known boards
const (
	BoardGreenhouse Board = "greenhouse"
	BoardLever      Board = "lever"
	BoardWorkday    Board = "workday"
	BoardAshby      Board = "ashby"
	BoardUnknown    Board = "unknown"
)

var boardHosts = []struct {
	suffix string
	board  Board
}{
	{"greenhouse.io", BoardGreenhouse},
	{"lever.co", BoardLever},
	{"myworkdayjobs.com", BoardWorkday},
	{"workday.com", BoardWorkday},
	{"ashbyhq.com", BoardAshby},
}

// DetectBoard identifies the job board from a posting URL.
func DetectBoard(rawURL string) Board {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return BoardUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	for _, h := range boardHosts {
		if host == h.suffix || strings.HasSuffix(host, "."+h.suffix) {
			return h.board
		}
	}
	return BoardUnknown
}

// ContentSelectors returns the selectors that locate the posting body on a board,
// most specific first.
func ContentSelectors(board Board) []string {
	switch board {
	case BoardGreenhouse:
		return []string{".job__description.body", ".job__description", "#content", ".job-post-container"}
	case BoardLever:
		return []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description"}
	case BoardWorkday:
		return []string{"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']"}
	case BoardAshby:
		return []string{"[class*='descriptionText']", "main"}
	}
	return []string{
		".job-description",
		"#job-description",
		".posting-content",
		".job-details",
		"[data-testid='job-description']",
		"main",
		"article",
	}
}

// NoiseSelectors returns board-specific elements to strip before text extraction.
func NoiseSelectors(board Board) []string {
	switch board {
	case BoardGreenhouse:
		return []string{"#application", ".application--container", ".eeoc_questions"}
	case BoardLever:
		return []string{".application-page", ".postings-btn-wrapper"}
	case BoardWorkday:
		return []string{"[data-automation-id='applyButton']"}
	}
	return nil
}
