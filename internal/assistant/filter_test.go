package assistant

import (
	"testing"
	"time"

	"github.com/vaulton/vaulton/internal/domain"
)

func TestFilterTransactions(t *testing.T) {
	txs := []domain.TransactionRecord{
		tx(domain.TypeExpense, 50, "Groceries", "2025-01-10"),
		tx(domain.TypeExpense, 30, "Groceries", "2025-02-05"),
		tx(domain.TypeExpense, 20, "Fuel", "2025-01-12"),
		tx(domain.TypeIncome, 1000, "Salary", "2025-01-15"),
	}

	tests := []struct {
		name    string
		filters Filters
		want    int
	}{
		{"no constraints", Filters{}, 4},
		{"type only", Filters{Type: domain.TypeExpense}, 3},
		{"type and range", Filters{Type: domain.TypeExpense, Range: monthRange(2025, time.January)}, 2},
		{"type range and category", Filters{Type: domain.TypeExpense, Range: monthRange(2025, time.January), Categories: []string{"Groceries"}}, 1},
		{"category case-insensitive", Filters{Categories: []string{"groceries"}}, 2},
		{"no rows in range", Filters{Range: monthRange(2024, time.June)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterTransactions(txs, tt.filters)
			if len(got) != tt.want {
				t.Errorf("got %d rows, want %d", len(got), tt.want)
			}
		})
	}
}

func TestFilterTransactions_PreservesOrder(t *testing.T) {
	txs := []domain.TransactionRecord{
		tx(domain.TypeExpense, 1, "B", "2025-01-02"),
		tx(domain.TypeExpense, 2, "A", "2025-01-01"),
		tx(domain.TypeExpense, 3, "B", "2025-01-03"),
	}
	got := FilterTransactions(txs, Filters{Categories: []string{"B"}})
	if len(got) != 2 || !got[0].Amount.Equal(txs[0].Amount) || !got[1].Amount.Equal(txs[2].Amount) {
		t.Errorf("filtered rows out of input order: %+v", got)
	}
}

func TestFiltersAny(t *testing.T) {
	if (Filters{}).Any() {
		t.Error("zero Filters should report no constraints")
	}
	if !(Filters{Type: domain.TypeExpense}).Any() {
		t.Error("type constraint should count")
	}
	if !(Filters{Range: monthRange(2025, time.January)}).Any() {
		t.Error("range constraint should count")
	}
	if !(Filters{Categories: []string{"Groceries"}}).Any() {
		t.Error("category constraint should count")
	}
}

func TestPresentCategoriesAndAssets(t *testing.T) {
	txs := []domain.TransactionRecord{
		tx(domain.TypeExpense, 50, "Groceries", "2025-01-10"),
		tx(domain.TypeExpense, 20, "Fuel", "2025-01-12"),
		tx(domain.TypeExpense, 10, "Groceries", "2025-01-20"),
		tx(domain.TypeIncome, 1000, "Salary", "2025-01-15"),
		investment("ETH", "Crypto", 100, 2, "2025-01-05"),
		investment("ETH", "Crypto", 50, 1, "2025-02-05"),
		investment("BTC", "Crypto", 55, 0.001, "2025-01-20"),
	}

	cats := presentCategories(txs, domain.TypeExpense)
	if len(cats) != 2 || cats[0] != "Groceries" || cats[1] != "Fuel" {
		t.Errorf("expense categories = %v, want [Groceries Fuel] in first-seen order", cats)
	}

	assets := presentAssets(txs)
	if len(assets) != 2 || assets[0] != "ETH" || assets[1] != "BTC" {
		t.Errorf("assets = %v, want [ETH BTC] in first-seen order", assets)
	}
}

func TestDataYears(t *testing.T) {
	txs := []domain.TransactionRecord{
		tx(domain.TypeExpense, 1, "A", "2024-06-01"),
		tx(domain.TypeExpense, 2, "B", "2025-01-01"),
		tx(domain.TypeExpense, 3, "C", "2024-12-31"),
	}
	years := dataYears(txs)
	if len(years) != 2 {
		t.Fatalf("got %d years, want 2", len(years))
	}
}
