package analysis

import (
	"regexp"
	"strconv"
	"strings"
)

// yearRe matches 4-digit year tokens in the dataset's coverage decade.
var yearRe = regexp.MustCompile(`\b(202[0-9])\b`)

// topNRe extracts the N of "top 5" / "상위 10" style phrases.
var topNRe = regexp.MustCompile(`(?i)(?:top|상위)\s*(\d+)`)

// standaloneGRe matches a lone "g" token, the perpetual-growth symbol, so
// the growth-vs-WACC rule does not fire on every word containing the letter.
var standaloneGRe = regexp.MustCompile(`(?i)(?:^|[^a-z0-9])g(?:[^a-z0-9]|$)`)

// sectorKeywords is scanned in order; the first keyword contained in the
// question wins. Order is significant: broader terms sit ahead of the
// compound security terms that would otherwise never be reached.
var sectorKeywords = []string{
	"금융", "it", "제조", "서비스", "바이오", "게임", "소프트웨어", "화학", "철강",
	"자동차", "건설", "부동산신탁", "부동산", "유통", "식품", "음료", "의류", "화장품",
	"여행", "항공", "선박", "에너지", "전력", "가스", "통신", "미디어", "교육", "의료",
	"보험", "은행", "증권", "투자", "펀드", "리츠", "정보보안", "사이버보안",
	"보안솔루션", "보안시스템", "보안", "반도체", "전기차", "클라우드",
}

// multipleNames is the fixed valuation-multiple vocabulary. EV/EBITDA
// precedes EV/Sales so the shared "ev/" prefix cannot shadow it.
var multipleNames = []string{"EV/EBITDA", "EV/Sales", "PSR", "PER", "PBR"}

// ExtractYear returns the first in-range year token in the question.
func ExtractYear(question string) (int, bool) {
	m := yearRe.FindStringSubmatch(question)
	if m == nil {
		return 0, false
	}
	y, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return y, true
}

// ExtractTopN returns the N of a top-N phrase, defaulting to 10 when the
// phrase carries no number.
func ExtractTopN(question string) int {
	m := topNRe.FindStringSubmatch(question)
	if m == nil {
		return 10
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 10
	}
	return n
}

// ExtractSector returns the first sector keyword contained in the
// question, or "" when none is named.
func ExtractSector(question string) string {
	q := strings.ToLower(question)
	for _, kw := range sectorKeywords {
		if strings.Contains(q, kw) {
			return kw
		}
	}
	return ""
}

// ExtractMetric returns the first valuation multiple named in the
// question, or "" when none is; ambiguity defaults to EV/EBITDA at
// computation time.
func ExtractMetric(question string) string {
	q := strings.ToLower(question)
	for _, name := range multipleNames {
		if strings.Contains(q, strings.ToLower(name)) {
			return name
		}
	}
	return ""
}

// mentionsGrowthSymbol reports whether the question references the
// perpetual growth rate, either by symbol or by name.
func mentionsGrowthSymbol(q string) bool {
	return standaloneGRe.MatchString(q) ||
		strings.Contains(q, "성장률") ||
		strings.Contains(q, "growth")
}

// containsAny checks if s contains any of the given substrings.
func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
