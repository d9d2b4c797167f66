package scraper

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"courtlookup/internal/config"
	"courtlookup/internal/monitoring"
	"courtlookup/pkg/logger"
)

// Scraper turns a validated CaseQuery into a LookupResult. It tries the
// court site when live fetching is enabled and falls back to synthetic data
// on any failure, so Lookup always returns a usable result.
type Scraper struct {
	cfg      *config.Config
	logger   *logger.Logger
	launcher SessionLauncher
	detector ChallengeDetector
	parser   *Parser
}

func NewScraper(cfg *config.Config, log *logger.Logger) *Scraper {
	return &Scraper{
		cfg:      cfg,
		logger:   log,
		launcher: NewRodLauncher(cfg, log),
		detector: NewHeuristicDetector(log),
		parser:   NewParser(cfg.CourtBaseURL, log),
	}
}

// Lookup fetches case data for the query. It never returns an error: every
// failure of the live path is converted into a labeled synthetic result.
func (s *Scraper) Lookup(ctx context.Context, query CaseQuery) *LookupResult {
	if !s.cfg.EnableLiveFetch {
		s.logger.Info("live fetch disabled, returning sample data", "case", query.DisplayNumber())
		monitoring.FallbacksTotal.WithLabelValues(monitoring.ReasonDisabled).Inc()
		monitoring.LookupsTotal.WithLabelValues(SourceMock).Inc()
		result := s.syntheticFallback(query)
		result.Explanation = s.explanation()
		return result
	}

	result, err := s.liveAttempt(ctx, query)
	if err == nil {
		monitoring.LookupsTotal.WithLabelValues(SourceLive).Inc()
		return result
	}

	blocked := errors.Is(err, ErrChallengeDetected)
	reason := monitoring.ReasonError
	if blocked {
		monitoring.ChallengesDetected.Inc()
		reason = monitoring.ReasonBlocked
	}
	monitoring.FallbacksTotal.WithLabelValues(reason).Inc()
	monitoring.LookupsTotal.WithLabelValues(SourceMock).Inc()

	s.logger.Warn("live attempt failed, falling back to sample data",
		"case", query.DisplayNumber(),
		"blocked", blocked,
		"error", err,
	)
	result = s.syntheticFallback(query)
	result.Blocked = blocked
	return result
}

// liveAttempt drives a fresh browser session against the court site. The
// session is released on every return path.
func (s *Scraper) liveAttempt(ctx context.Context, query CaseQuery) (*LookupResult, error) {
	session, err := s.launcher.NewSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAutomationSetup, err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			s.logger.Warn("failed to release browser session", "error", err)
		}
	}()

	statusURL := s.cfg.CaseStatusURL()
	s.logger.Info("navigating to court website", "url", statusURL)

	navCtx, cancel := context.WithTimeout(ctx, s.cfg.NavigationTimeout)
	defer cancel()
	if err := session.Navigate(navCtx, statusURL); err != nil {
		return nil, fmt.Errorf("failed to open case status page: %w", err)
	}

	if s.detector.Present(session) {
		return nil, ErrChallengeDetected
	}

	if err := s.submitSearchForm(session, query); err != nil {
		return nil, err
	}

	html, err := session.HTML()
	if err != nil {
		return nil, fmt.Errorf("failed to read results page: %w", err)
	}

	// A clean negative from the court is a final answer, not a failure.
	if strings.Contains(strings.ToLower(html), "no record found") {
		s.logger.Info("no record found", "case", query.DisplayNumber())
		return &LookupResult{
			Success: false,
			Error:   "No case found with the provided details",
			Source:  SourceLive,
			RawHTML: html,
		}, nil
	}

	record, err := s.parser.Parse(html, query)
	if err != nil {
		return nil, err
	}

	return &LookupResult{
		Success: true,
		Data:    record,
		Source:  SourceLive,
		RawHTML: html,
	}, nil
}

// submitSearchForm fills the court's search form and submits it.
func (s *Scraper) submitSearchForm(session Session, query CaseQuery) error {
	if err := session.Select(`select[name="case_type"]`, query.CaseType); err != nil {
		return fmt.Errorf("case type select not usable: %w", err)
	}
	if err := session.Input(`input[name="case_no"]`, query.CaseNumber); err != nil {
		return fmt.Errorf("case number input not usable: %w", err)
	}
	if err := session.Input(`input[name="year"]`, query.FilingYear); err != nil {
		return fmt.Errorf("filing year input not usable: %w", err)
	}
	if err := session.Click(`input[type="submit"], button[type="submit"]`); err != nil {
		return fmt.Errorf("submit button not usable: %w", err)
	}
	return nil
}
