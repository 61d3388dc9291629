package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/dart-research/disclosure-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses; pgxmock satisfies it
// in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements ReportStore using pgxpool.
type PostgresStore struct {
	pool Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
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
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_reports_filing_date ON disclosure_reports(filing_date);
CREATE INDEX IF NOT EXISTS idx_reports_issuer_sector ON disclosure_reports(issuer_sector);
CREATE INDEX IF NOT EXISTS idx_query_log_created_at ON query_log(created_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) InsertReport(ctx context.Context, r model.Report) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO disclosure_reports (`+reportColumns+`) VALUES
		($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
		 $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)`,
		r.ID, r.ReportName, r.FilingDate, r.IssuerName, r.IssuerSector,
		r.TargetName, r.TargetSector, r.TargetBiz, r.Peers, r.Valuator, r.Purpose, r.Link,
		numArg(r.WACC), numArg(r.Ke), numArg(r.Kd), numArg(r.DERatio),
		numArg(r.EVSales), numArg(r.EVEBITDA), numArg(r.PSR), numArg(r.PER), numArg(r.PBR),
		numArg(r.GrowthRate), numArg(r.PVFraction), numArg(r.EnterpriseV), numArg(r.NOAValue),
		r.NOAComposition,
	)
	return eris.Wrap(err, "postgres: insert report")
}

func (s *PostgresStore) LookupReports(ctx context.Context, f Filter) ([]model.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM disclosure_reports WHERE 1=1`
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Term != "" {
		pat := "%" + f.Term + "%"
		p1, p2, p3 := arg(pat), arg(pat), arg(pat)
		query += ` AND (issuer_sector LIKE ` + p1 + ` OR target_sector LIKE ` + p2 + ` OR target_business LIKE ` + p3 + `)`
	}
	if f.FromYear > 0 {
		query += ` AND filing_date >= ` + arg(fmt.Sprintf("%04d-01-01", f.FromYear))
	}
	if f.ToYear > 0 {
		query += ` AND filing_date <= ` + arg(fmt.Sprintf("%04d-12-31", f.ToYear))
	}
	if f.RequirePeers {
		query += ` AND peers != ''`
	}
	query += ` ORDER BY filing_date DESC`
	if f.Limit > 0 {
		query += ` LIMIT ` + arg(f.Limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: lookup reports")
	}
	defer rows.Close()

	var reports []model.Report
	for rows.Next() {
		r, err := scanReport(rows.Scan)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan report")
		}
		reports = append(reports, r)
	}
	return reports, eris.Wrap(rows.Err(), "postgres: iterate reports")
}

func (s *PostgresStore) ListSectors(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT issuer_sector FROM disclosure_reports
		 WHERE issuer_sector != '' ORDER BY issuer_sector`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list sectors")
	}
	defer rows.Close()

	var sectors []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, eris.Wrap(err, "postgres: scan sector")
		}
		sectors = append(sectors, s)
	}
	return sectors, eris.Wrap(rows.Err(), "postgres: iterate sectors")
}

func (s *PostgresStore) AppendQuery(ctx context.Context, rec model.QueryRecord) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO query_log (id, question, intent, keyword, row_count, answer, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID, rec.Question, string(rec.Intent), rec.Keyword, rec.RowCount, rec.Answer, rec.CreatedAt,
	)
	return eris.Wrap(err, "postgres: append query")
}

func (s *PostgresStore) ListQueries(ctx context.Context, limit int) ([]model.QueryRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, question, intent, keyword, row_count, answer, created_at
		 FROM query_log ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list queries")
	}
	defer rows.Close()

	var recs []model.QueryRecord
	for rows.Next() {
		var rec model.QueryRecord
		var intent string
		if err := rows.Scan(&rec.ID, &rec.Question, &intent, &rec.Keyword, &rec.RowCount, &rec.Answer, &rec.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan query record")
		}
		rec.Intent = model.IntentKind(intent)
		recs = append(recs, rec)
	}
	return recs, eris.Wrap(rows.Err(), "postgres: iterate queries")
}
