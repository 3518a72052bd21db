package assistant

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vaulton/vaulton/internal/domain"
)

func TestParseVoiceTransaction_Expense(t *testing.T) {
	got := ParseVoiceTransaction("spent 50 dollars on groceries")

	if !got.NeedsClarification {
		t.Fatal("category confirmation is always required")
	}
	if got.Type != domain.TypeExpense {
		t.Errorf("type = %s, want expense", got.Type)
	}
	if !got.Amount.Equal(decimal.NewFromInt(50)) {
		t.Errorf("amount = %s, want 50", got.Amount)
	}
	if len(got.MatchedCategories) == 0 || got.MatchedCategories[0] != "Groceries" {
		t.Errorf("matched categories = %v, want Groceries first", got.MatchedCategories)
	}
	if len(got.AllCategories) == 0 || got.AllCategories[0].Name != "Living & Housing" {
		t.Errorf("catalog should be the expense catalog, got %v", got.AllCategories)
	}
}

func TestParseVoiceTransaction_AmountForms(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"spent $50 on groceries", 50},
		{"spent $12.99 on lunch", 12.99},
		{"spent 20 bucks on uber", 20},
		{"earned 500 euros freelance", 500},
		{"spent €35.50 on dinner", 35.50},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := ParseVoiceTransaction(tt.text)
			if !got.AmountDetected {
				t.Fatalf("no amount detected in %q", tt.text)
			}
			if !got.Amount.Equal(decimal.NewFromFloat(tt.want)) {
				t.Errorf("amount = %s, want %v", got.Amount, tt.want)
			}
		})
	}
}

func TestParseVoiceTransaction_NoAmount(t *testing.T) {
	got := ParseVoiceTransaction("bought some groceries at walmart")
	if got.AmountDetected || got.NeedsClarification {
		t.Errorf("parse without amount = %+v, want amount prompt", got)
	}
	if !strings.Contains(got.Message, "amount") {
		t.Errorf("message = %q, want amount prompt", got.Message)
	}
}

func TestParseVoiceTransaction_TypeDetection(t *testing.T) {
	tests := []struct {
		text string
		want domain.TransactionType
	}{
		{"spent 50 dollars on groceries", domain.TypeExpense},
		{"got paid 2000 dollars salary", domain.TypeIncome},
		{"earned 300 bucks freelance", domain.TypeIncome},
		{"invested 100 dollars in crypto", domain.TypeInvestment},
		{"bought stocks for 250 dollars", domain.TypeInvestment},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := ParseVoiceTransaction(tt.text)
			if got.Type != tt.want {
				t.Errorf("type = %s, want %s", got.Type, tt.want)
			}
		})
	}
}

func TestParseVoiceTransaction_AmbiguousType(t *testing.T) {
	got := ParseVoiceTransaction("50 dollars at walmart yesterday")
	if !got.NeedsTypeClarification {
		t.Fatalf("ambiguous phrase should ask for the type, got %+v", got)
	}
	if !got.Amount.Equal(decimal.NewFromInt(50)) {
		t.Errorf("amount should survive the clarification round-trip, got %s", got.Amount)
	}
}

func TestParseVoiceTransaction_MerchantCategoryRanking(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"spent 50 at walmart", "Groceries"},
		{"spent 20 dollars on uber", "Public Transport"},
		{"spent 5 dollars at starbucks", "Restaurants / Cafes"},
		{"paid 16 dollars for netflix", "Subscriptions"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := ParseVoiceTransaction(tt.text)
			if len(got.MatchedCategories) == 0 || got.MatchedCategories[0] != tt.want {
				t.Errorf("matched = %v, want %q first", got.MatchedCategories, tt.want)
			}
		})
	}
}

func TestParseVoiceTransaction_MatchedCategoriesCapped(t *testing.T) {
	got := ParseVoiceTransaction("spent 100 dollars on groceries gas rent netflix gym movie doctor uber clothes")
	if len(got.MatchedCategories) > maxMatchedCategories {
		t.Errorf("got %d candidates, cap is %d", len(got.MatchedCategories), maxMatchedCategories)
	}
}

func TestParseVoiceTransaction_DescriptionCleanup(t *testing.T) {
	got := ParseVoiceTransaction("spent 50 dollars on groceries at walmart")
	if strings.Contains(got.Description, "50") || strings.Contains(got.Description, "dollars") || strings.Contains(got.Description, "spent") {
		t.Errorf("description not cleaned: %q", got.Description)
	}
	if !strings.Contains(got.Description, "walmart") {
		t.Errorf("description lost its substance: %q", got.Description)
	}
}

func TestParseVoiceTransaction_FallbackDescription(t *testing.T) {
	got := ParseVoiceTransaction("spent 50 dollars")
	if got.Description != "Expense via voice" {
		t.Errorf("description = %q, want fallback", got.Description)
	}
}

func TestParseVoiceTransaction_InvestmentCatalog(t *testing.T) {
	got := ParseVoiceTransaction("invested 100 dollars in etf")
	if got.Type != domain.TypeInvestment {
		t.Fatalf("type = %s, want investment", got.Type)
	}
	if len(got.AllCategories) != 1 || got.AllCategories[0].Name != "Investment Types" {
		t.Errorf("catalog = %v, want the investment types group", got.AllCategories)
	}
}
