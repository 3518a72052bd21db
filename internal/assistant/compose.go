package assistant

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vaulton/vaulton/internal/domain"
)

// breakdownLimit caps the per-category lines rendered in an answer; the
// total always covers every category regardless.
const breakdownLimit = 10

var englishPrinter = message.NewPrinter(language.English)

// formatMoney renders a currency amount with thousands separators and
// exactly two decimal places, e.g. "$1,234.56". The units and cents are
// formatted as integers so the value never passes through float64.
func formatMoney(d decimal.Decimal) string {
	r := d.Round(2)
	neg := r.IsNegative()
	if neg {
		r = r.Neg()
	}
	units := r.IntPart()
	cents := r.Sub(decimal.NewFromInt(units)).Mul(decimal.NewFromInt(100)).IntPart()
	s := englishPrinter.Sprintf("$%d", units) + fmt.Sprintf(".%02d", cents)
	if neg {
		return "-" + s
	}
	return s
}

// formatPercent renders a percentage with a leading sign and one decimal
// place, e.g. "+20.0%" or "-3.4%".
func formatPercent(d decimal.Decimal) string {
	s := d.Round(1).StringFixed(1)
	if !strings.HasPrefix(s, "-") {
		s = "+" + s
	}
	return s + "%"
}

// formatQuantity renders an asset quantity without trailing zero noise.
func formatQuantity(d decimal.Decimal) string {
	return d.String()
}

// scopeLabel names what the question asked about, for zero-result and
// header text: the matched categories/assets when a filter was requested,
// otherwise the transaction type.
func scopeLabel(f Filters, fallback string) string {
	if len(f.Categories) > 0 {
		return strings.Join(f.Categories, ", ")
	}
	if len(f.Assets) > 0 {
		return strings.Join(f.Assets, ", ")
	}
	return fallback
}

// composeExpenseAnswer renders the deterministic spending report for the
// already-filtered transactions.
func composeExpenseAnswer(txs []domain.TransactionRecord, f Filters) string {
	total := SumAmounts(txs)
	scope := scopeLabel(f, "expenses")

	var b strings.Builder
	fmt.Fprintf(&b, "You spent %s on %s %s.", formatMoney(total), scope, periodPhrase(f.Range))
	writeBreakdown(&b, BreakdownByCategory(txs))
	return b.String()
}

// composeIncomeAnswer renders the deterministic earnings report.
func composeIncomeAnswer(txs []domain.TransactionRecord, f Filters) string {
	total := SumAmounts(txs)
	scope := scopeLabel(f, "income")

	var b strings.Builder
	fmt.Fprintf(&b, "You earned %s from %s %s.", formatMoney(total), scope, periodPhrase(f.Range))
	writeBreakdown(&b, BreakdownByCategory(txs))
	return b.String()
}

func writeBreakdown(b *strings.Builder, rows []CategoryTotal) {
	if len(rows) < 2 {
		return
	}
	b.WriteString("\n\nBreakdown by category:")
	for i, row := range rows {
		if i == breakdownLimit {
			break
		}
		fmt.Fprintf(b, "\n- %s: %s", row.Category, formatMoney(row.Total))
	}
}

// composeInvestmentAnswer renders the per-asset investment report with
// profit/loss and ROI. When no holding could be priced it degrades to
// invested amounts and quantities with an explicit note; a price is never
// interpolated.
func composeInvestmentAnswer(summary domain.PortfolioSummary, f Filters) string {
	var b strings.Builder

	if !summary.Priced {
		fmt.Fprintf(&b, "You invested %s %s (current market prices unavailable).", formatMoney(summary.TotalInvested), periodPhrase(f.Range))
		for _, h := range summary.Holdings {
			fmt.Fprintf(&b, "\n- %s: invested %s", h.Asset, formatMoney(h.TotalInvested))
			if h.TotalQuantity.IsPositive() {
				fmt.Fprintf(&b, " (quantity %s)", formatQuantity(h.TotalQuantity))
			}
		}
		return b.String()
	}

	fmt.Fprintf(&b, "Your investments %s:", periodPhrase(f.Range))
	for _, h := range summary.Holdings {
		fmt.Fprintf(&b, "\n\n%s", h.Asset)
		fmt.Fprintf(&b, "\n- Invested: %s", formatMoney(h.TotalInvested))
		if h.TotalQuantity.IsPositive() {
			fmt.Fprintf(&b, "\n- Quantity: %s", formatQuantity(h.TotalQuantity))
			fmt.Fprintf(&b, "\n- Average price: %s", formatMoney(h.AveragePrice))
		}
		if h.Priced {
			fmt.Fprintf(&b, "\n- Current price: %s", formatMoney(h.CurrentPrice))
			fmt.Fprintf(&b, "\n- Current value: %s", formatMoney(h.CurrentValue))
			fmt.Fprintf(&b, "\n- Profit/loss: %s (%s)", formatMoney(h.GainLoss), formatPercent(h.ROIPercent))
		} else {
			b.WriteString("\n- Current price: unavailable")
		}
	}

	fmt.Fprintf(&b, "\n\nTotal invested: %s", formatMoney(summary.TotalInvested))
	fmt.Fprintf(&b, "\nCurrent value: %s", formatMoney(summary.CurrentValue))
	fmt.Fprintf(&b, "\nTotal profit/loss: %s (%s)", formatMoney(summary.TotalGainLoss), formatPercent(summary.TotalROIPercent))
	if anyUnpriced(summary.Holdings) {
		b.WriteString("\nNote: some holdings have no current market price and are excluded from the value and profit/loss totals.")
	}
	return b.String()
}

func anyUnpriced(holdings []domain.AssetHolding) bool {
	for _, h := range holdings {
		if !h.Priced {
			return true
		}
	}
	return false
}

// composeNoData renders the zero-result message, naming the scope and period
// the filters resolved to.
func composeNoData(f Filters, fallback string) string {
	return fmt.Sprintf("No %s found %s.", scopeLabel(f, fallback), periodPhrase(f.Range))
}

// composeUnknownCategory is the answer for a question that named a category
// absent from the user's own data; it lists the categories that do exist
// instead of answering as if no filter had been asked.
func composeUnknownCategory(existing []string) string {
	if len(existing) == 0 {
		return "I couldn't find that category in your transactions, and there are no recorded categories yet."
	}
	return fmt.Sprintf("I couldn't find that category in your transactions. Your categories are: %s.", strings.Join(existing, ", "))
}

// composeUnknownAsset mirrors composeUnknownCategory for asset symbols.
func composeUnknownAsset(existing []string) string {
	if len(existing) == 0 {
		return "I couldn't find that asset in your investments, and you have no recorded investments yet."
	}
	return fmt.Sprintf("I couldn't find that asset in your investments. Your assets are: %s.", strings.Join(existing, ", "))
}

// periodPhrase turns a date range into the in-sentence period wording.
// Relative labels already read like adverbials ("today", "last week") and
// take no preposition; absolute labels get "in".
func periodPhrase(r DateRange) string {
	if r.AllTime() {
		return "across all time"
	}
	if r.Label == "today" || strings.HasPrefix(r.Label, "this ") || strings.HasPrefix(r.Label, "last ") {
		return r.Label
	}
	return "in " + r.Label
}
