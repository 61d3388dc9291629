package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/dart-research/disclosure-cli/internal/model"
)

// SQLiteStore implements ReportStore using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

// Numeric columns are TEXT: values arrive as filed, with percent signs
// and thousands separators intact, and are normalized on scan.
const sqliteMigration = `
CREATE TABLE IF NOT EXISTS disclosure_reports (
	id               TEXT PRIMARY KEY,
	report_name      TEXT NOT NULL DEFAULT '',
	filing_date      TEXT NOT NULL DEFAULT '',
	issuer_name      TEXT NOT NULL DEFAULT '',
	issuer_sector    TEXT NOT NULL DEFAULT '',
	target_name      TEXT NOT NULL DEFAULT '',
	target_sector    TEXT NOT NULL DEFAULT '',
	target_business  TEXT NOT NULL DEFAULT '',
	peers            TEXT NOT NULL DEFAULT '',
	valuator         TEXT NOT NULL DEFAULT '',
	purpose          TEXT NOT NULL DEFAULT '',
	link             TEXT NOT NULL DEFAULT '',
	wacc             TEXT,
	ke               TEXT,
	kd               TEXT,
	de_ratio         TEXT,
	ev_sales         TEXT,
	ev_ebitda        TEXT,
	psr              TEXT,
	per              TEXT,
	pbr              TEXT,
	growth_rate      TEXT,
	pv_fraction      TEXT,
	enterprise_value TEXT,
	noa_value        TEXT,
	noa_composition  TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS query_log (
	id         TEXT PRIMARY KEY,
	question   TEXT NOT NULL,
	intent     TEXT NOT NULL,
	keyword    TEXT NOT NULL DEFAULT '',
	row_count  INTEGER NOT NULL DEFAULT 0,
	answer     TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_reports_filing_date ON disclosure_reports(filing_date);
CREATE INDEX IF NOT EXISTS idx_reports_issuer_sector ON disclosure_reports(issuer_sector);
CREATE INDEX IF NOT EXISTS idx_query_log_created_at ON query_log(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) InsertReport(ctx context.Context, r model.Report) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO disclosure_reports (`+reportColumns+`) VALUES
		(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.ReportName, r.FilingDate, r.IssuerName, r.IssuerSector,
		r.TargetName, r.TargetSector, r.TargetBiz, r.Peers, r.Valuator, r.Purpose, r.Link,
		numArg(r.WACC), numArg(r.Ke), numArg(r.Kd), numArg(r.DERatio),
		numArg(r.EVSales), numArg(r.EVEBITDA), numArg(r.PSR), numArg(r.PER), numArg(r.PBR),
		numArg(r.GrowthRate), numArg(r.PVFraction), numArg(r.EnterpriseV), numArg(r.NOAValue),
		r.NOAComposition,
	)
	return eris.Wrap(err, "sqlite: insert report")
}

func (s *SQLiteStore) LookupReports(ctx context.Context, f Filter) ([]model.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM disclosure_reports WHERE 1=1`
	var args []any

	if f.Term != "" {
		query += ` AND (issuer_sector LIKE ? OR target_sector LIKE ? OR target_business LIKE ?)`
		pat := "%" + f.Term + "%"
		args = append(args, pat, pat, pat)
	}
	if f.FromYear > 0 {
		query += ` AND filing_date >= ?`
		args = append(args, fmt.Sprintf("%04d-01-01", f.FromYear))
	}
	if f.ToYear > 0 {
		query += ` AND filing_date <= ?`
		args = append(args, fmt.Sprintf("%04d-12-31", f.ToYear))
	}
	if f.RequirePeers {
		query += ` AND peers != ''`
	}
	query += ` ORDER BY filing_date DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: lookup reports")
	}
	defer rows.Close()

	var reports []model.Report
	for rows.Next() {
		r, err := scanReport(rows.Scan)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan report")
		}
		reports = append(reports, r)
	}
	return reports, eris.Wrap(rows.Err(), "sqlite: iterate reports")
}

func (s *SQLiteStore) ListSectors(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT issuer_sector FROM disclosure_reports
		 WHERE issuer_sector != '' ORDER BY issuer_sector`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list sectors")
	}
	defer rows.Close()

	var sectors []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan sector")
		}
		sectors = append(sectors, s)
	}
	return sectors, eris.Wrap(rows.Err(), "sqlite: iterate sectors")
}

func (s *SQLiteStore) AppendQuery(ctx context.Context, rec model.QueryRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO query_log (id, question, intent, keyword, row_count, answer, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Question, string(rec.Intent), rec.Keyword, rec.RowCount, rec.Answer, rec.CreatedAt,
	)
	return eris.Wrap(err, "sqlite: append query")
}

func (s *SQLiteStore) ListQueries(ctx context.Context, limit int) ([]model.QueryRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, question, intent, keyword, row_count, answer, created_at
		 FROM query_log ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list queries")
	}
	defer rows.Close()

	var recs []model.QueryRecord
	for rows.Next() {
		var rec model.QueryRecord
		var intent string
		if err := rows.Scan(&rec.ID, &rec.Question, &intent, &rec.Keyword, &rec.RowCount, &rec.Answer, &rec.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan query record")
		}
		rec.Intent = model.IntentKind(intent)
		recs = append(recs, rec)
	}
	return recs, eris.Wrap(rows.Err(), "sqlite: iterate queries")
}

// numArg renders a numeric pointer for storage; nil stays NULL.
func numArg(v *float64) any {
	if v == nil {
		return nil
	}
	return model.FormatNumeric(v)
}

// scanReport reads one report row. Numeric columns come back as the raw
// filed text and are normalized here; unparsable values become nil so a
// malformed cell never aborts a lookup.
func scanReport(scan func(dest ...any) error) (model.Report, error) {
	var r model.Report
	var wacc, ke, kd, de, evSales, evEBITDA, psr, per, pbr, growth, pvFrac, ev, noa sql.NullString
	err := scan(
		&r.ID, &r.ReportName, &r.FilingDate, &r.IssuerName, &r.IssuerSector,
		&r.TargetName, &r.TargetSector, &r.TargetBiz, &r.Peers, &r.Valuator, &r.Purpose, &r.Link,
		&wacc, &ke, &kd, &de, &evSales, &evEBITDA, &psr, &per, &pbr,
		&growth, &pvFrac, &ev, &noa, &r.NOAComposition,
	)
	if err != nil {
		return model.Report{}, err
	}
	r.WACC = numField(wacc)
	r.Ke = numField(ke)
	r.Kd = numField(kd)
	r.DERatio = numField(de)
	r.EVSales = numField(evSales)
	r.EVEBITDA = numField(evEBITDA)
	r.PSR = numField(psr)
	r.PER = numField(per)
	r.PBR = numField(pbr)
	r.GrowthRate = numField(growth)
	r.PVFraction = numField(pvFrac)
	r.EnterpriseV = numField(ev)
	r.NOAValue = numField(noa)
	return r, nil
}

func numField(ns sql.NullString) *float64 {
	if !ns.Valid {
		return nil
	}
	return model.ParseNumericPtr(strings.TrimSpace(ns.String))
}
