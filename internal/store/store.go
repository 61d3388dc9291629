// Package store persists disclosure report rows and the question history
// log. Two backends implement the same interface: SQLite for local use
// and Postgres for shared deployments.
package store

import (
	"context"

	"github.com/dart-research/disclosure-cli/internal/model"
)

// Filter specifies criteria for looking up disclosure reports. Term is
// matched as a substring against the issuer sector, target sector, and
// target business description, the way the source filings are queried.
type Filter struct {
	Term         string `json:"term,omitempty"`
	FromYear     int    `json:"from_year,omitempty"`
	ToYear       int    `json:"to_year,omitempty"`
	RequirePeers bool   `json:"require_peers,omitempty"`
	Limit        int    `json:"limit,omitempty"`
}

// ReportStore defines the persistence interface consumed by the engine.
type ReportStore interface {
	// Reports
	InsertReport(ctx context.Context, r model.Report) error
	LookupReports(ctx context.Context, f Filter) ([]model.Report, error)
	ListSectors(ctx context.Context) ([]string, error)

	// Question history
	AppendQuery(ctx context.Context, rec model.QueryRecord) error
	ListQueries(ctx context.Context, limit int) ([]model.QueryRecord, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// reportColumns is the canonical column order shared by both backends.
const reportColumns = `id, report_name, filing_date, issuer_name, issuer_sector,
	target_name, target_sector, target_business, peers, valuator, purpose, link,
	wacc, ke, kd, de_ratio, ev_sales, ev_ebitda, psr, per, pbr,
	growth_rate, pv_fraction, enterprise_value, noa_value, noa_composition`
