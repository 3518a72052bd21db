package assistant

import "strings"

// Intent is the aggregation path a question is routed to. Summary and
// unclassified questions go to the LLM delegate; the other three are answered
// deterministically from the snapshot.
type Intent string

const (
	IntentExpense      Intent = "expense"
	IntentIncome       Intent = "income"
	IntentInvestment   Intent = "investment"
	IntentSummary      Intent = "summary"
	IntentUnclassified Intent = "unclassified"
)

// Keyword sets per intent, scored by whole-word occurrence. The sets are
// read-only after init.
var (
	expenseKeywords = []string{
		"spent", "spend", "spending", "expense", "expenses", "paid", "pay",
		"bought", "buy", "purchased", "purchase", "cost", "bill", "bills",
		"charged", "shopping",
	}
	incomeKeywords = []string{
		"earned", "earn", "income", "salary", "wages", "paycheck", "received",
		"revenue", "made money", "got paid", "bonus", "tips", "refund", "freelance",
	}
	investmentKeywords = []string{
		"invest", "invested", "investment", "investments", "portfolio", "roi",
		"stock", "stocks", "crypto", "etf", "etfs", "holdings", "shares",
		"return", "worth", "gain", "lose", "lost",
	}
	summaryKeywords = []string{
		"summary", "overview", "balance", "total", "net", "overall",
		"financial health", "finances",
	}
)

func scoreKeywords(q string, keywords []string) int {
	score := 0
	for _, kw := range keywords {
		if containsPhrase(q, kw) {
			score++
		}
	}
	return score
}

// containsPhrase is a whole-word containment test, so "paid" does not fire
// inside "prepaid" and "pay" inside "paycheck" cannot skew the score.
func containsPhrase(q, phrase string) bool {
	idx := 0
	for {
		i := strings.Index(q[idx:], phrase)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(phrase)
		if (start == 0 || !isWordChar(q[start-1])) && (end == len(q) || !isWordChar(q[end])) {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// Classify scores the question against the four keyword sets. Investment
// vocabulary is treated as unambiguous: it wins whenever present and
// tied-or-ahead of the others. Otherwise the higher of income/expense wins; a
// strict tie falls through to summary when summary vocabulary is present, and
// to unclassified when nothing scored.
func Classify(question string) Intent {
	q := strings.ToLower(question)

	expense := scoreKeywords(q, expenseKeywords)
	income := scoreKeywords(q, incomeKeywords)
	investment := scoreKeywords(q, investmentKeywords)
	summary := scoreKeywords(q, summaryKeywords)

	if investment > 0 && investment >= income && investment >= expense {
		return IntentInvestment
	}
	if income > expense {
		return IntentIncome
	}
	if expense > income {
		return IntentExpense
	}
	if summary > 0 {
		return IntentSummary
	}
	return IntentUnclassified
}
