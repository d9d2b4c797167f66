package scraper

import (
	"strings"

	"courtlookup/pkg/logger"
)

// Page is the read-only view of a session the detector inspects.
type Page interface {
	Has(selector string) (bool, error)
	HTML() (string, error)
}

// ChallengeDetector reports whether the loaded page is a verification
// challenge rather than case data. Implementations must be safe to call on
// any page state.
type ChallengeDetector interface {
	Present(page Page) bool
}

// Markup patterns the Delhi High Court site uses for its CAPTCHA widget.
var challengeSelectors = []string{
	"img[src*='captcha']",
	"img[alt*='captcha']",
	"#captcha",
	".captcha",
	"input[name*='captcha']",
	"canvas",
}

// Wording that indicates a human verification page.
var challengeKeywords = []string{
	"captcha",
	"verification",
	"robot",
	"human",
}

// HeuristicDetector flags known challenge markup and wording. When the page
// cannot be inspected at all it reports a challenge, so an unreadable page
// is treated as blocked rather than parsed.
type HeuristicDetector struct {
	Selectors []string
	Keywords  []string
	logger    *logger.Logger
}

func NewHeuristicDetector(log *logger.Logger) *HeuristicDetector {
	return &HeuristicDetector{
		Selectors: challengeSelectors,
		Keywords:  challengeKeywords,
		logger:    log,
	}
}

func (d *HeuristicDetector) Present(page Page) bool {
	for _, selector := range d.Selectors {
		found, err := page.Has(selector)
		if err != nil {
			d.logger.Warn("challenge check failed, assuming blocked", "selector", selector, "error", err)
			return true
		}
		if found {
			d.logger.Info("challenge element detected", "selector", selector)
			return true
		}
	}

	html, err := page.HTML()
	if err != nil {
		d.logger.Warn("challenge check failed, assuming blocked", "error", err)
		return true
	}
	lower := strings.ToLower(html)
	for _, keyword := range d.Keywords {
		if strings.Contains(lower, keyword) {
			d.logger.Info("challenge keyword detected", "keyword", keyword)
			return true
		}
	}

	return false
}
