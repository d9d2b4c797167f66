package scraper

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"courtlookup/pkg/logger"
)

// datePattern matches dates the way the court prints them, e.g. 15/03/2024.
var datePattern = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)

// Parser extracts case metadata from a court results page. Missing sections
// leave fields at their defaults; only unreadable markup is an error.
type Parser struct {
	base   *url.URL
	logger *logger.Logger
}

// NewParser builds a parser that resolves document links against baseURL.
func NewParser(baseURL string, log *logger.Logger) *Parser {
	base, err := url.Parse(baseURL)
	if err != nil {
		log.Warn("invalid court base URL, document links stay relative", "url", baseURL, "error", err)
		base = nil
	}
	return &Parser{base: base, logger: log}
}

// Parse builds a CaseRecord from raw page markup.
func (p *Parser) Parse(html string, query CaseQuery) (*CaseRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to read results page: %w", err)
	}

	record := NewCaseRecord(query)
	p.parseParties(doc, record)
	p.parseDates(doc, record)
	p.parseStatus(doc, record)
	p.parseOrders(doc, record)

	p.logger.Debug("parsed case record",
		"case", record.CaseNumber,
		"orders", len(record.Orders),
	)
	return record, nil
}

// parseParties reads petitioner and respondent from the parties section.
// A div.parties block takes priority over table#case-details regardless of
// where each appears in the page.
func (p *Parser) parseParties(doc *goquery.Document, record *CaseRecord) {
	var section *goquery.Selection
	for _, selector := range []string{"div.parties", "table#case-details"} {
		if found := doc.Find(selector).First(); found.Length() > 0 {
			section = found
			break
		}
	}
	if section == nil {
		return
	}
	if value := adjacentCellText(section, "petitioner"); value != "" {
		record.Parties.Petitioner = value
	}
	if value := adjacentCellText(section, "respondent"); value != "" {
		record.Parties.Respondent = value
	}
}

// adjacentCellText locates the first cell in scope whose text contains label
// (case-insensitive) and returns the trimmed text of the cell next to it.
// The first matching cell decides; a label cell without a neighbor yields "".
func adjacentCellText(scope *goquery.Selection, label string) string {
	var value string
	scope.Find("td").EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		if !strings.Contains(strings.ToLower(cell.Text()), label) {
			return true
		}
		if next := cell.Next(); next.Length() > 0 {
			value = strings.TrimSpace(next.Text())
		}
		return false
	})
	return value
}

// parseDates scans cells for date-bearing text and classifies each by its
// surrounding words. The first match per field wins, and a cell whose text
// names both dates counts as the filing date only.
func (p *Parser) parseDates(doc *goquery.Document, record *CaseRecord) {
	doc.Find("td").EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		text := strings.TrimSpace(cell.Text())
		if !datePattern.MatchString(text) {
			return true
		}
		lower := strings.ToLower(text)
		switch {
		case strings.Contains(lower, "filing") || strings.Contains(lower, "filed"):
			if record.FilingDate == defaultValue {
				record.FilingDate = text
			}
		case strings.Contains(lower, "hearing") || strings.Contains(lower, "next"):
			if record.NextHearingDate == defaultValue {
				record.NextHearingDate = text
			}
		}
		return record.FilingDate == defaultValue || record.NextHearingDate == defaultValue
	})
}

// parseStatus reads the cell adjacent to the first "status" label.
func (p *Parser) parseStatus(doc *goquery.Document, record *CaseRecord) {
	if value := adjacentCellText(doc.Selection, "status"); value != "" {
		record.CaseStatus = value
	}
}

// parseOrders reads the orders table row by row, skipping the header. Rows
// with fewer than three cells are ignored.
func (p *Parser) parseOrders(doc *goquery.Document, record *CaseRecord) {
	table := doc.Find("table.orders, table#orders").First()
	if table.Length() == 0 {
		return
	}
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}
		record.Orders = append(record.Orders, Order{
			Date:        strings.TrimSpace(cells.Eq(0).Text()),
			OrderType:   strings.TrimSpace(cells.Eq(1).Text()),
			Description: strings.TrimSpace(cells.Eq(2).Text()),
			PDFLink:     p.documentLink(cells.Eq(2)),
		})
	})
}

// documentLink returns the first anchor in the cell that points at a pdf or
// download target, resolved to an absolute URL.
func (p *Parser) documentLink(cell *goquery.Selection) string {
	var link string
	cell.Find("a[href]").EachWithBreak(func(_ int, anchor *goquery.Selection) bool {
		href := strings.TrimSpace(anchor.AttrOr("href", ""))
		lower := strings.ToLower(href)
		if href == "" || (!strings.Contains(lower, "pdf") && !strings.Contains(lower, "download")) {
			return true
		}
		link = p.absoluteURL(href)
		return false
	})
	return link
}

func (p *Parser) absoluteURL(href string) string {
	if p.base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return p.base.ResolveReference(ref).String()
}
