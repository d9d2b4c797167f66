package scraper

import (
	"fmt"
	"regexp"
	"strings"
)

// Source labels for lookup results, as exposed on the API.
const (
	SourceMock = "mock_data"
	SourceLive = "real_scraping"
)

// defaultValue marks record fields the parser could not extract.
const defaultValue = "N/A"

// CaseQuery identifies a case on the court's search form.
type CaseQuery struct {
	CaseType   string `json:"case_type"`
	CaseNumber string `json:"case_number"`
	FilingYear string `json:"filing_year"`
}

var yearPattern = regexp.MustCompile(`^\d{4}$`)

// Validate checks that all fields are present and the filing year is a
// four-digit year. It has no side effects.
func (q CaseQuery) Validate() error {
	if strings.TrimSpace(q.CaseType) == "" ||
		strings.TrimSpace(q.CaseNumber) == "" ||
		strings.TrimSpace(q.FilingYear) == "" {
		return &ValidationError{Message: "All fields are required"}
	}
	if !yearPattern.MatchString(q.FilingYear) {
		return &ValidationError{Message: "Filing year must be a 4-digit year"}
	}
	return nil
}

// DisplayNumber formats the query the way the court prints case numbers,
// e.g. "WP(C) 1234/2024".
func (q CaseQuery) DisplayNumber() string {
	return fmt.Sprintf("%s %s/%s", q.CaseType, q.CaseNumber, q.FilingYear)
}

// CaseRecord is the structured case metadata extracted from a results page
// or fabricated by the synthetic fallback. It is serialized into the query
// log, never persisted as its own row.
type CaseRecord struct {
	CaseNumber      string  `json:"case_number"`
	Parties         Parties `json:"parties"`
	FilingDate      string  `json:"filing_date"`
	NextHearingDate string  `json:"next_hearing_date"`
	CaseStatus      string  `json:"case_status"`
	Orders          []Order `json:"orders"`
	CaseHistory     []Event `json:"case_history"`
}

type Parties struct {
	Petitioner string `json:"petitioner"`
	Respondent string `json:"respondent"`
}

// Order is one row of the court's orders table.
type Order struct {
	Date        string `json:"date"`
	OrderType   string `json:"order_type"`
	Description string `json:"description"`
	PDFLink     string `json:"pdf_link,omitempty"`
}

// Event is one entry of the case history.
type Event struct {
	Date        string `json:"date"`
	Description string `json:"description"`
}

// NewCaseRecord returns a record with every field at its default.
func NewCaseRecord(query CaseQuery) *CaseRecord {
	return &CaseRecord{
		CaseNumber:      query.DisplayNumber(),
		Parties:         Parties{Petitioner: defaultValue, Respondent: defaultValue},
		FilingDate:      defaultValue,
		NextHearingDate: defaultValue,
		CaseStatus:      defaultValue,
		Orders:          []Order{},
		CaseHistory:     []Event{},
	}
}

// Explanation tells the caller why synthetic data was returned and how real
// data could be obtained.
type Explanation struct {
	WhyMock           string   `json:"why_mock"`
	RealURL           string   `json:"real_url"`
	ManualSteps       []string `json:"manual_steps"`
	AutomationOptions []string `json:"automation_options"`
}

// LookupResult is the typed outcome of a lookup: real data, a clean
// negative, or labeled synthetic data. Which strategy produced it is always
// observable through Source and Blocked.
type LookupResult struct {
	Success     bool         `json:"success"`
	Data        *CaseRecord  `json:"data,omitempty"`
	Error       string       `json:"error,omitempty"`
	Source      string       `json:"source"`
	Explanation *Explanation `json:"explanation,omitempty"`
	Note        string       `json:"note,omitempty"`
	Blocked     bool         `json:"blocked,omitempty"`
	RawHTML     string       `json:"-"`
	RetryCount  int          `json:"-"`
}
