// Package engine wires the keyword catalog, search resolver, intent
// classifier, aggregate router, and report store into the question
// answering flow. All collaborators are injected explicitly; the engine
// holds no mutable state across questions, so one instance serves
// concurrent queries.
package engine

import (
	"context"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/dart-research/disclosure-cli/internal/analysis"
	"github.com/dart-research/disclosure-cli/internal/catalog"
	"github.com/dart-research/disclosure-cli/internal/intent"
	"github.com/dart-research/disclosure-cli/internal/model"
	"github.com/dart-research/disclosure-cli/internal/search"
	"github.com/dart-research/disclosure-cli/internal/store"
)

// Engine answers free-text questions over the disclosure report store.
type Engine struct {
	resolver *search.Resolver
	store    store.ReportStore
}

// New creates an Engine over the given catalog and store.
func New(c *catalog.Catalog, st store.ReportStore) *Engine {
	return &Engine{
		resolver: search.NewResolver(c),
		store:    st,
	}
}

// Resolver exposes the underlying keyword resolver for direct match
// inspection (the `resolve` command and the HTTP surface).
func (e *Engine) Resolver() *search.Resolver {
	return e.resolver
}

// Summary carries the headline metrics of a result set.
type Summary struct {
	TotalReports  int `json:"total_reports"`
	UniqueIssuers int `json:"unique_issuers"`
	UniqueTargets int `json:"unique_targets"`
}

// Answer is the full outcome of one question.
type Answer struct {
	Question   string               `json:"question"`
	Intent     model.AnalysisIntent `json:"intent"`
	Keyword    string               `json:"keyword,omitempty"`
	Reports    []model.Report       `json:"reports,omitempty"`
	Analysis   *analysis.Result     `json:"analysis,omitempty"`
	Rendering  string               `json:"rendering"`
	Summary    Summary              `json:"summary"`
	Unresolved bool                 `json:"unresolved,omitempty"`
}

// ClassifyIntent classifies the question, resolving aggregate questions
// through the routing table. An aggregate intent with a nil Aggregate
// means no routing rule matched (the unresolved case).
func (e *Engine) ClassifyIntent(question string) model.AnalysisIntent {
	kind := intent.Classify(question)
	out := model.AnalysisIntent{Kind: kind}
	if kind == model.IntentAggregate {
		if q, ok := analysis.Route(question); ok {
			out.Aggregate = &q
		}
	}
	return out
}

// fallback extraction for questions the smart search cannot resolve,
// kept from the pre-catalog behavior: a fixed business-term list, then
// "<term> 사업/업종/기업/회사/업계" patterns, then the stripped question.
var fallbackBusinesses = []string{
	"음원", "가상자산", "게임", "금융", "제조", "서비스", "it", "소프트웨어", "하드웨어",
	"바이오", "제약", "화학", "철강", "자동차", "건설", "부동산", "유통", "식품", "음료",
	"의류", "화장품", "여행", "항공", "선박", "에너지", "전력", "가스", "통신", "미디어",
	"교육", "의료", "보험", "은행", "증권", "투자", "펀드", "부동산신탁", "리츠",
	"정보보안", "사이버보안", "보안솔루션", "보안시스템", "보안",
}

var fallbackPatterns = []*regexp.Regexp{
	regexp.MustCompile(`([\p{L}\p{N}]+)\s*사업`),
	regexp.MustCompile(`([\p{L}\p{N}]+)\s*업종`),
	regexp.MustCompile(`([\p{L}\p{N}]+)\s*기업`),
	regexp.MustCompile(`([\p{L}\p{N}]+)\s*회사`),
	regexp.MustCompile(`([\p{L}\p{N}]+)\s*업계`),
}

var fallbackStrip = strings.NewReplacer(
	"유사기업", "", "유사", "", "은", "", "는", "", "무엇인가요", "", "?", "",
)

// ResolveSimilarCompanyKeyword extracts the business keyword driving a
// similar-company lookup. Returns false only when even the fallback
// extraction yields nothing.
func (e *Engine) ResolveSimilarCompanyKeyword(question string) (string, bool) {
	if best, ok := e.resolver.Best(question); ok {
		return best.Keyword, true
	}

	q := strings.ToLower(question)
	for _, b := range fallbackBusinesses {
		if strings.Contains(q, b) {
			return b, true
		}
	}
	for _, re := range fallbackPatterns {
		if m := re.FindStringSubmatch(question); m != nil {
			return m[1], true
		}
	}
	if kw := strings.TrimSpace(fallbackStrip.Replace(question)); kw != "" {
		return kw, true
	}
	return "", false
}

// Answer runs the full question flow and appends the outcome to the
// query log. Store failures propagate as errors; empty results are
// answered, not errored.
func (e *Engine) Answer(ctx context.Context, question string) (*Answer, error) {
	ans := &Answer{
		Question: question,
		Intent:   e.ClassifyIntent(question),
	}

	var err error
	switch ans.Intent.Kind {
	case model.IntentSimilarCompany:
		err = e.answerSimilarCompany(ctx, ans)
	case model.IntentAggregate:
		err = e.answerAggregate(ctx, ans)
	case model.IntentFinancialRatio:
		err = e.answerFinancialRatio(ctx, ans)
	default:
		err = e.answerSectorSearch(ctx, ans)
	}
	if err != nil {
		return nil, err
	}

	ans.Summary = summarize(ans.Reports)
	rec := model.NewQueryRecord(question, ans.Intent.Kind, ans.Keyword, len(ans.Reports), ans.Rendering)
	if err := e.store.AppendQuery(ctx, rec); err != nil {
		zap.L().Warn("engine: query log append failed", zap.Error(err))
	}
	return ans, nil
}

func (e *Engine) answerSimilarCompany(ctx context.Context, ans *Answer) error {
	keyword, ok := e.ResolveSimilarCompanyKeyword(ans.Question)
	if !ok {
		ans.Unresolved = true
		ans.Rendering = "No business keyword could be extracted from the question."
		return nil
	}
	ans.Keyword = keyword

	reports, err := e.store.LookupReports(ctx, store.Filter{Term: keyword, RequirePeers: true})
	if err != nil {
		return eris.Wrap(err, "engine: similar-company lookup")
	}
	ans.Reports = reports
	ans.Rendering = renderSimilarCompanies(keyword, reports)
	return nil
}

func (e *Engine) answerAggregate(ctx context.Context, ans *Answer) error {
	if ans.Intent.Aggregate == nil {
		ans.Unresolved = true
		ans.Rendering = "The question looks analytical, but no aggregate analysis matches it."
		return nil
	}

	reports, err := e.store.LookupReports(ctx, store.Filter{})
	if err != nil {
		return eris.Wrap(err, "engine: aggregate lookup")
	}
	ans.Reports = reports
	ans.Analysis = analysis.Run(*ans.Intent.Aggregate, reports)
	ans.Rendering = renderAnalysis(ans.Analysis)
	return nil
}

func (e *Engine) answerFinancialRatio(ctx context.Context, ans *Answer) error {
	sector := analysis.ExtractSector(ans.Question)
	if sector == "" {
		sector = "금융"
	}
	ans.Keyword = sector

	f := store.Filter{Term: sector}
	if year, ok := analysis.ExtractYear(ans.Question); ok {
		f.FromYear = year
	}
	reports, err := e.store.LookupReports(ctx, f)
	if err != nil {
		return eris.Wrap(err, "engine: financial-ratio lookup")
	}
	ans.Reports = reports
	ans.Rendering = renderFinancialRatios(sector, f.FromYear, reports)
	return nil
}

func (e *Engine) answerSectorSearch(ctx context.Context, ans *Answer) error {
	term := strings.TrimSpace(ans.Question)
	ans.Keyword = term
	reports, err := e.store.LookupReports(ctx, store.Filter{Term: term})
	if err != nil {
		return eris.Wrap(err, "engine: sector lookup")
	}
	ans.Reports = reports
	ans.Rendering = renderSectorSearch(term, reports)
	return nil
}

func summarize(reports []model.Report) Summary {
	issuers := map[string]bool{}
	targets := map[string]bool{}
	for _, r := range reports {
		if r.IssuerName != "" {
			issuers[r.IssuerName] = true
		}
		if r.TargetName != "" {
			targets[r.TargetName] = true
		}
	}
	return Summary{
		TotalReports:  len(reports),
		UniqueIssuers: len(issuers),
		UniqueTargets: len(targets),
	}
}
