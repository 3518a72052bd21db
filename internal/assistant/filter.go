package assistant

import (
	"strings"

	"github.com/vaulton/vaulton/internal/domain"
)

// Filters is the full set of constraints a question resolved to. Zero values
// mean "no constraint of that kind was requested".
type Filters struct {
	Type       domain.TransactionType
	Range      DateRange
	Categories []string
	Assets     []string
}

// Any reports whether at least one constraint was actually requested. The
// distinction matters for zero-row results: an empty filtered set with no
// filters is "no data at all", with filters it is "no data in that scope".
func (f Filters) Any() bool {
	return f.Type != "" || !f.Range.AllTime() || len(f.Categories) > 0 || len(f.Assets) > 0
}

// FilterTransactions applies the type, date-range, category and asset
// constraints to the snapshot. The snapshot itself is never mutated; the
// result preserves the input order.
func FilterTransactions(txs []domain.TransactionRecord, f Filters) []domain.TransactionRecord {
	var out []domain.TransactionRecord
	for _, t := range txs {
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		if !f.Range.Contains(t.Date) {
			continue
		}
		if len(f.Categories) > 0 && !containsFold(f.Categories, t.Category) {
			continue
		}
		if len(f.Assets) > 0 && !containsFold(f.Assets, t.Asset) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func containsFold(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

// presentCategories returns the distinct category names of transactions of
// the given type, in first-seen order.
func presentCategories(txs []domain.TransactionRecord, typ domain.TransactionType) []string {
	var out []string
	for _, t := range txs {
		if t.Type != typ || t.Category == "" {
			continue
		}
		out = appendUnique(out, t.Category)
	}
	return out
}

// presentAssets returns the distinct asset symbols of investment
// transactions, in first-seen order.
func presentAssets(txs []domain.TransactionRecord) []string {
	var out []string
	for _, t := range txs {
		if t.Type != domain.TypeInvestment || t.Asset == "" {
			continue
		}
		out = appendUnique(out, t.Asset)
	}
	return out
}

// dataYears returns the distinct calendar years present in the snapshot.
func dataYears(txs []domain.TransactionRecord) []int {
	var out []int
	for _, t := range txs {
		y := t.Date.Year()
		seen := false
		for _, existing := range out {
			if existing == y {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, y)
		}
	}
	return out
}
