package model

// IntentKind is the top-level question category.
type IntentKind string

const (
	IntentSimilarCompany IntentKind = "similar_company"
	IntentAggregate      IntentKind = "aggregate"
	IntentFinancialRatio IntentKind = "financial_ratio"
	IntentSectorSearch   IntentKind = "sector_search"
)

// AggregateKind names one of the fixed catalog of aggregate computations.
type AggregateKind string

const (
	AggIndustryWACCMedian      AggregateKind = "industry_wacc_median"
	AggValuatorWACCComparison  AggregateKind = "valuator_wacc_comparison"
	AggGrowthWACCViolation     AggregateKind = "growth_wacc_violation"
	AggDEDisclosureImpact      AggregateKind = "de_disclosure_impact"
	AggWACCTopN                AggregateKind = "wacc_top_n"
	AggRecentValuatorActivity  AggregateKind = "recent_valuator_activity"
	AggIndustryMultipleMedian  AggregateKind = "industry_multiple_median"
	AggPerpetualCashflowRatio  AggregateKind = "perpetual_cashflow_ratio"
	AggNOAComposition          AggregateKind = "noa_composition"
	AggInvestmentMapping       AggregateKind = "investment_mapping"
	AggSectorTransactionMatrix AggregateKind = "sector_transaction_matrix"
	AggNOAEVRatio              AggregateKind = "noa_ev_ratio"
	AggYearSectorAverageWACC   AggregateKind = "year_sector_average_wacc"
	AggYearlyKeyStatistics     AggregateKind = "yearly_key_statistics"
	AggWACCTrend               AggregateKind = "wacc_trend"
)

// AggregateParams carries parameters extracted from the question text.
// Zero values mean "not stated"; each aggregate applies its own defaults.
type AggregateParams struct {
	Year   int    `json:"year,omitempty"`
	Sector string `json:"sector,omitempty"`
	Metric string `json:"metric,omitempty"`
	TopN   int    `json:"top_n,omitempty"`
}

// AggregateQuery is a routed aggregate computation with its parameters.
type AggregateQuery struct {
	Kind   AggregateKind   `json:"kind"`
	Params AggregateParams `json:"params"`
}

// AnalysisIntent is the classified intent of a question. Aggregate is set
// only when Kind is IntentAggregate and the router resolved a rule.
type AnalysisIntent struct {
	Kind      IntentKind      `json:"kind"`
	Aggregate *AggregateQuery `json:"aggregate,omitempty"`
}
