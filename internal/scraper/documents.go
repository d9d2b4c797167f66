package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"courtlookup/internal/config"
	"courtlookup/pkg/logger"
)

// maxDocumentSize caps downloaded court documents at 50 MB.
const maxDocumentSize = 50 * 1024 * 1024

// DocumentFetcher resolves the pdf links attached to orders. Links produced
// by the synthetic fallback are site-relative and yield a generated
// placeholder document; absolute links are downloaded from the court site.
type DocumentFetcher struct {
	cfg    *config.Config
	logger *logger.Logger
	client *http.Client
}

func NewDocumentFetcher(cfg *config.Config, log *logger.Logger) *DocumentFetcher {
	return &DocumentFetcher{
		cfg:    cfg,
		logger: log,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// Fetch returns the document behind link along with its content type.
func (d *DocumentFetcher) Fetch(ctx context.Context, link string) ([]byte, string, error) {
	if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		return d.download(ctx, link)
	}
	d.logger.Info("serving placeholder document", "link", link)
	return d.placeholder(link), "text/plain; charset=utf-8", nil
}

func (d *DocumentFetcher) download(ctx context.Context, link string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", d.cfg.UserAgent)

	d.logger.Info("downloading document", "url", link)
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("document request returned %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read document: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/pdf"
	}
	return data, contentType, nil
}

// placeholder generates the text stand-in served for sample order links.
func (d *DocumentFetcher) placeholder(link string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", strings.ToUpper(d.cfg.CourtName))
	fmt.Fprintf(&b, "Case Document: %s\n\n", strings.TrimPrefix(link, "/"))
	b.WriteString("This is a demonstration file. In a real deployment this would be\n")
	b.WriteString("the actual order document downloaded from the court website.\n\n")
	fmt.Fprintf(&b, "Generated on: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	return []byte(b.String())
}
