package model

import (
	"time"

	"github.com/google/uuid"
)

// QueryRecord is one entry in the caller-owned question history log.
type QueryRecord struct {
	ID        string     `json:"id"`
	Question  string     `json:"question"`
	Intent    IntentKind `json:"intent"`
	Keyword   string     `json:"keyword,omitempty"`
	RowCount  int        `json:"row_count"`
	Answer    string     `json:"answer,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewQueryRecord stamps a record with a fresh ID and the current time.
func NewQueryRecord(question string, intent IntentKind, keyword string, rowCount int, answer string) QueryRecord {
	return QueryRecord{
		ID:        uuid.NewString(),
		Question:  question,
		Intent:    intent,
		Keyword:   keyword,
		RowCount:  rowCount,
		Answer:    answer,
		CreatedAt: time.Now().UTC(),
	}
}

// Table is a generic tabular result passed to rendering and export.
type Table struct {
	Title   string     `json:"title,omitempty"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}
