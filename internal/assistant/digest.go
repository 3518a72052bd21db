package assistant

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vaulton/vaulton/internal/domain"
)

// standingOrderLimit caps the standing-order lines in a digest; the count
// line still reports the full number.
const standingOrderLimit = 10

// monthTotal is one row of a chronological per-month breakdown.
type monthTotal struct {
	month time.Month
	year  int
	total decimal.Decimal
}

// BuildDigest renders the structured numeric summary handed to the chat
// collaborator in place of raw transaction rows. It always covers the entire
// snapshot, never a filtered view, and carries explicit today/latest-year
// markers so the model can resolve relative time language.
func BuildDigest(txs []domain.TransactionRecord, orders []domain.StandingOrder, portfolio domain.PortfolioSummary, today time.Time) string {
	var (
		totalIncome   decimal.Decimal
		totalExpenses decimal.Decimal
		totalInvested decimal.Decimal
		earliest      time.Time
		latest        time.Time
	)
	incomeByCategory := map[string]decimal.Decimal{}
	expenseByCategory := map[string]decimal.Decimal{}
	incomeByMonth := map[string]*monthTotal{}
	expenseByMonth := map[string]*monthTotal{}

	for _, t := range txs {
		if earliest.IsZero() || t.Date.Before(earliest) {
			earliest = t.Date
		}
		if latest.IsZero() || t.Date.After(latest) {
			latest = t.Date
		}

		cat := t.Category
		if cat == "" {
			cat = "Other"
		}
		switch t.Type {
		case domain.TypeIncome:
			totalIncome = totalIncome.Add(t.Amount)
			incomeByCategory[cat] = incomeByCategory[cat].Add(t.Amount)
			addMonth(incomeByMonth, t.Date, t.Amount)
		case domain.TypeExpense:
			totalExpenses = totalExpenses.Add(t.Amount)
			expenseByCategory[cat] = expenseByCategory[cat].Add(t.Amount)
			addMonth(expenseByMonth, t.Date, t.Amount)
		case domain.TypeInvestment:
			totalInvested = totalInvested.Add(t.Amount)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "TODAY: %s\n", today.Format("2006-01-02"))
	if !latest.IsZero() {
		fmt.Fprintf(&b, "MOST RECENT DATA YEAR: %d\n", latest.Year())
		fmt.Fprintf(&b, "DATA RANGE: %s to %s\n", earliest.Format("2006-01-02"), latest.Format("2006-01-02"))
	}
	fmt.Fprintf(&b, "TOTAL TRANSACTIONS: %d\n", len(txs))

	b.WriteString("\nTOTALS:\n")
	fmt.Fprintf(&b, "- Total Income: %s\n", formatMoney(totalIncome))
	fmt.Fprintf(&b, "- Total Expenses: %s\n", formatMoney(totalExpenses))
	fmt.Fprintf(&b, "- Total Invested: %s\n", formatMoney(totalInvested))
	fmt.Fprintf(&b, "- Net Balance: %s\n", formatMoney(totalIncome.Sub(totalExpenses)))

	writeCategorySection(&b, "INCOME BY CATEGORY", incomeByCategory)
	writeCategorySection(&b, "EXPENSE BY CATEGORY", expenseByCategory)
	writeMonthSection(&b, "INCOME BY MONTH", incomeByMonth)
	writeMonthSection(&b, "EXPENSE BY MONTH", expenseByMonth)

	if len(portfolio.Holdings) > 0 {
		b.WriteString("\nINVESTMENTS:\n")
		for _, h := range portfolio.Holdings {
			fmt.Fprintf(&b, "  - %s: invested %s", h.Asset, formatMoney(h.TotalInvested))
			if h.Priced {
				fmt.Fprintf(&b, ", current value %s, profit/loss %s (%s)",
					formatMoney(h.CurrentValue), formatMoney(h.GainLoss), formatPercent(h.ROIPercent))
			} else {
				b.WriteString(", current price unavailable")
			}
			b.WriteByte('\n')
		}
		if portfolio.Priced {
			fmt.Fprintf(&b, "  Portfolio: invested %s, current value %s, profit/loss %s (%s)\n",
				formatMoney(portfolio.TotalInvested), formatMoney(portfolio.CurrentValue),
				formatMoney(portfolio.TotalGainLoss), formatPercent(portfolio.TotalROIPercent))
		}
	}

	fmt.Fprintf(&b, "\nSTANDING ORDERS (%d active):\n", len(orders))
	for i, so := range orders {
		if i == standingOrderLimit {
			break
		}
		fmt.Fprintf(&b, "  - %s: %s (%s)\n", so.Description, formatMoney(so.Amount), so.Frequency)
	}

	return b.String()
}

func addMonth(m map[string]*monthTotal, d time.Time, amount decimal.Decimal) {
	key := d.Format("2006-01")
	mt, ok := m[key]
	if !ok {
		mt = &monthTotal{month: d.Month(), year: d.Year()}
		m[key] = mt
	}
	mt.total = mt.total.Add(amount)
}

// writeCategorySection renders a per-category section sorted by name so the
// digest is byte-identical for identical snapshots.
func writeCategorySection(b *strings.Builder, title string, totals map[string]decimal.Decimal) {
	if len(totals) == 0 {
		return
	}
	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(b, "\n%s:\n", title)
	for _, name := range names {
		fmt.Fprintf(b, "  - %s: %s\n", name, formatMoney(totals[name]))
	}
}

// writeMonthSection renders a per-month section in chronological order.
func writeMonthSection(b *strings.Builder, title string, totals map[string]*monthTotal) {
	if len(totals) == 0 {
		return
	}
	keys := make([]string, 0, len(totals))
	for key := range totals {
		keys = append(keys, key)
	}
	sort.Strings(keys) // "2006-01" keys sort chronologically

	fmt.Fprintf(b, "\n%s:\n", title)
	for _, key := range keys {
		mt := totals[key]
		fmt.Fprintf(b, "  - %s %d: %s\n", mt.month, mt.year, formatMoney(mt.total))
	}
}
