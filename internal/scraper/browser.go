package scraper

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"courtlookup/internal/config"
	"courtlookup/pkg/logger"
)

// Session is one live browser tab on the court site. It exposes only what a
// lookup needs: navigation, element checks, form interaction and the page
// source. Close must be called exactly once; after that the session is dead.
type Session interface {
	Navigate(ctx context.Context, url string) error
	Has(selector string) (bool, error)
	Select(selector, value string) error
	Input(selector, value string) error
	Click(selector string) error
	HTML() (string, error)
	Close() error
}

// SessionLauncher acquires sessions. Each lookup gets its own session so
// that concurrent lookups never share browser state.
type SessionLauncher interface {
	NewSession(ctx context.Context) (Session, error)
}

type rodLauncher struct {
	cfg    *config.Config
	logger *logger.Logger
}

// NewRodLauncher builds a launcher that starts a fresh headless Chromium
// per session.
func NewRodLauncher(cfg *config.Config, log *logger.Logger) SessionLauncher {
	return &rodLauncher{cfg: cfg, logger: log}
}

func (l *rodLauncher) NewSession(ctx context.Context) (Session, error) {
	chrome := launcher.New().
		Headless(l.cfg.HeadlessMode).
		Set("user-agent", l.cfg.UserAgent).
		Set("disable-blink-features", "AutomationControlled").
		Delete("enable-automation")

	if l.cfg.BrowserPath != "" {
		chrome = chrome.Bin(l.cfg.BrowserPath)
	}
	if l.cfg.LogLevel == "debug" {
		chrome = chrome.Devtools(true)
	}

	controlURL, err := chrome.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		browser.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	page = page.Timeout(l.cfg.ScraperTimeout)

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             1920,
		Height:            1080,
		DeviceScaleFactor: 1,
		Mobile:            false,
	}); err != nil {
		l.logger.Warn("failed to set viewport", "error", err)
	}
	if _, err := page.SetExtraHeaders([]string{"Accept-Language", "en-US,en;q=0.9"}); err != nil {
		l.logger.Warn("failed to set request headers", "error", err)
	}

	return &rodSession{browser: browser, page: page, logger: l.logger}, nil
}

type rodSession struct {
	browser *rod.Browser
	page    *rod.Page
	logger  *logger.Logger
}

func (s *rodSession) Navigate(ctx context.Context, url string) error {
	page := s.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		// A partially loaded page is still worth inspecting.
		s.logger.Warn("page load wait failed", "url", url, "error", err)
	}
	return nil
}

func (s *rodSession) Has(selector string) (bool, error) {
	found, _, err := s.page.Has(selector)
	return found, err
}

func (s *rodSession) Select(selector, value string) error {
	element, err := s.page.Element(selector)
	if err != nil {
		return err
	}
	return element.Select([]string{value}, true, rod.SelectorTypeText)
}

func (s *rodSession) Input(selector, value string) error {
	element, err := s.page.Element(selector)
	if err != nil {
		return err
	}
	return element.Input(value)
}

func (s *rodSession) Click(selector string) error {
	element, err := s.page.Element(selector)
	if err != nil {
		return err
	}
	if err := element.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return err
	}
	if err := s.page.WaitLoad(); err != nil {
		s.logger.Warn("post-submit load wait failed", "error", err)
	}
	return nil
}

func (s *rodSession) HTML() (string, error) {
	return s.page.HTML()
}

func (s *rodSession) Close() error {
	if err := s.page.Close(); err != nil {
		s.logger.Warn("failed to close page", "error", err)
	}
	return s.browser.Close()
}
