package model

import (
	"strings"
	"time"
)

// Report is one external-valuation disclosure report row. Numeric columns
// are pointers because the source filings disclose them inconsistently;
// a nil field means the report did not state the value.
type Report struct {
	ID           string `json:"id"`
	ReportName   string `json:"report_name"`
	FilingDate   string `json:"filing_date"` // YYYY-MM-DD
	IssuerName   string `json:"issuer_name"`
	IssuerSector string `json:"issuer_sector"`
	TargetName   string `json:"target_name"`
	TargetSector string `json:"target_sector"`
	TargetBiz    string `json:"target_business"`
	Peers        string `json:"peers"`   // comma/semicolon-delimited peer companies
	Valuator     string `json:"valuator"`
	Purpose      string `json:"purpose"`
	Link         string `json:"link"`

	WACC        *float64 `json:"wacc,omitempty"`
	Ke          *float64 `json:"ke,omitempty"`
	Kd          *float64 `json:"kd,omitempty"`
	DERatio     *float64 `json:"de_ratio,omitempty"`
	EVSales     *float64 `json:"ev_sales,omitempty"`
	EVEBITDA    *float64 `json:"ev_ebitda,omitempty"`
	PSR         *float64 `json:"psr,omitempty"`
	PER         *float64 `json:"per,omitempty"`
	PBR         *float64 `json:"pbr,omitempty"`
	GrowthRate  *float64 `json:"growth_rate,omitempty"`  // perpetual growth g
	PVFraction  *float64 `json:"pv_fraction,omitempty"`  // present-value fraction of explicit-period cash flows
	EnterpriseV *float64 `json:"enterprise_value,omitempty"`
	NOAValue    *float64 `json:"noa_value,omitempty"`

	// NOAComposition is free text listing non-operating assets, comma-delimited.
	NOAComposition string `json:"noa_composition,omitempty"`
}

// PeerList splits the free-text peer field into trimmed company names.
// Filings delimit peers with commas or semicolons interchangeably.
func (r Report) PeerList() []string {
	if strings.TrimSpace(r.Peers) == "" {
		return nil
	}
	raw := strings.Split(strings.ReplaceAll(r.Peers, ";", ","), ",")
	var peers []string
	for _, p := range raw {
		if p = strings.TrimSpace(p); p != "" {
			peers = append(peers, p)
		}
	}
	return peers
}

// FilingTime parses the filing date. Returns false for blank or malformed dates.
func (r Report) FilingTime() (time.Time, bool) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(r.FilingDate))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FilingYear returns the calendar year of the filing date, or 0 if unknown.
func (r Report) FilingYear() int {
	t, ok := r.FilingTime()
	if !ok {
		return 0
	}
	return t.Year()
}

// Multiple returns the named valuation multiple, if disclosed.
// Recognized names: EV/EBITDA, EV/Sales, PSR, PER, PBR.
func (r Report) Multiple(name string) *float64 {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "EV/EBITDA":
		return r.EVEBITDA
	case "EV/SALES":
		return r.EVSales
	case "PSR":
		return r.PSR
	case "PER":
		return r.PER
	case "PBR":
		return r.PBR
	}
	return nil
}
