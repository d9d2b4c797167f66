package database

import (
	"time"

	"gorm.io/gorm"
)

// Query statuses recorded in the queries table.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// QueryLog is one row of the append-only lookup history. Rows are never
// updated; they are removed only by ClearAll.
type QueryLog struct {
	gorm.Model
	CaseType    string    `json:"case_type"`
	CaseNumber  string    `json:"case_number"`
	FilingYear  string    `json:"filing_year"`
	QueryTime   time.Time `json:"query_time"`
	RawResponse string    `json:"-" gorm:"type:text"`
	Status      string    `json:"status"`
	ParsedData  string    `json:"-" gorm:"type:text"`
	IsBlocked   bool      `json:"is_blocked"`
	RetryCount  int       `json:"retry_count"`
	ProxyUsed   string    `json:"proxy_used,omitempty"`
}

// CaseData is a reserved table for normalized case rows. Nothing populates
// it yet; it is migrated so the schema is in place when normalization lands.
type CaseData struct {
	gorm.Model
	CaseNumber      string    `json:"case_number" gorm:"index"`
	Parties         string    `json:"parties" gorm:"type:text"`
	FilingDate      string    `json:"filing_date"`
	NextHearingDate string    `json:"next_hearing_date"`
	CaseStatus      string    `json:"case_status"`
	OrdersCount     int       `json:"orders_count"`
	LastUpdated     time.Time `json:"last_updated"`
}

func (QueryLog) TableName() string {
	return "queries"
}

func (CaseData) TableName() string {
	return "case_data"
}
