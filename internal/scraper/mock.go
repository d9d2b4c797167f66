package scraper

import "fmt"

// mockRawHTML is stored as the raw response of synthetic lookups so the
// download endpoint always has something to serve.
const mockRawHTML = `<html><body>Mock response - real scraping failed</body></html>`

// syntheticRecord fabricates a deterministic, clearly-sampled record that
// echoes the query. Same query, same record.
func syntheticRecord(query CaseQuery) *CaseRecord {
	display := query.DisplayNumber()
	return &CaseRecord{
		CaseNumber: display,
		Parties: Parties{
			Petitioner: fmt.Sprintf("Sample Petitioner %s", query.CaseNumber),
			Respondent: "State of Delhi & Others",
		},
		FilingDate:      fmt.Sprintf("15/03/%s", query.FilingYear),
		NextHearingDate: "25/12/2024",
		CaseStatus:      "Listed for hearing",
		Orders: []Order{
			{
				Date:        "20/11/2024",
				OrderType:   "Order",
				Description: fmt.Sprintf("Case %s adjourned to next date for final hearing", display),
				PDFLink:     fmt.Sprintf("/orders/%s_%s_%s_order.pdf", query.CaseType, query.CaseNumber, query.FilingYear),
			},
			{
				Date:        "15/10/2024",
				OrderType:   "Notice",
				Description: "Notice issued to all respondents to file reply",
				PDFLink:     fmt.Sprintf("/orders/%s_%s_%s_notice.pdf", query.CaseType, query.CaseNumber, query.FilingYear),
			},
		},
		CaseHistory: []Event{
			{Date: fmt.Sprintf("15/03/%s", query.FilingYear), Description: "Case filed and registered"},
			{Date: "20/03/2024", Description: "First hearing scheduled"},
		},
	}
}

// syntheticFallback wraps a synthetic record in a successful result that is
// honestly labeled as mock data.
func (s *Scraper) syntheticFallback(query CaseQuery) *LookupResult {
	return &LookupResult{
		Success: true,
		Data:    syntheticRecord(query),
		Source:  SourceMock,
		Note:    "Real scraping failed, showing sample data structure",
		RawHTML: mockRawHTML,
	}
}

// explanation describes why the service returns sample data and what it
// would take to fetch the real thing.
func (s *Scraper) explanation() *Explanation {
	statusURL := s.cfg.CaseStatusURL()
	return &Explanation{
		WhyMock: fmt.Sprintf("The %s website uses CAPTCHA verification", s.cfg.CourtName),
		RealURL: statusURL,
		ManualSteps: []string{
			fmt.Sprintf("1. Visit %s", statusURL),
			"2. Select case type and enter case number/year",
			"3. Solve CAPTCHA verification",
			"4. Submit form to get real data",
		},
		AutomationOptions: []string{
			"Drive the browser with manual CAPTCHA solving",
			"Integrate with CAPTCHA solving services (2captcha, Anti-Captcha)",
			"Use official APIs if available",
			"Implement manual intervention points",
		},
	}
}
