package assistant

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vaulton/vaulton/internal/domain"
)

// VoiceParseResult is the outcome of parsing one spoken phrase into a draft
// transaction. Parsing never fully creates a transaction: the caller always
// confirms the category, so Success stays false until that round-trip.
type VoiceParseResult struct {
	Success                bool                   `json:"success"`
	Message                string                 `json:"message,omitempty"`
	NeedsClarification     bool                   `json:"needs_clarification"`
	NeedsTypeClarification bool                   `json:"needs_type_clarification"`
	AllCategories          []CategoryGroup        `json:"all_categories,omitempty"`
	MatchedCategories      []string               `json:"matched_categories,omitempty"`
	AmountDetected         bool                   `json:"-"`
	Amount                 decimal.Decimal        `json:"parsed_amount"`
	Type                   domain.TransactionType `json:"parsed_type,omitempty"`
	Description            string                 `json:"parsed_description,omitempty"`
}

// CategoryGroup is one named group of the category catalog offered back to
// the caller for confirmation.
type CategoryGroup struct {
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
}

// DefaultExpenseCategories is the built-in expense catalog, grouped the way
// it is presented for category confirmation.
var DefaultExpenseCategories = []CategoryGroup{
	{"Living & Housing", []string{"Rent / Mortgage", "Utilities", "Home Maintenance / Repairs", "Property Tax", "Home Insurance"}},
	{"Transportation", []string{"Car Payment / Lease", "Fuel / Gas", "Public Transport", "Maintenance & Repairs", "Parking & Tolls", "Insurance"}},
	{"Food & Dining", []string{"Groceries", "Restaurants / Cafes", "Takeout / Delivery", "Work Lunches / Snacks"}},
	{"Health & Wellness", []string{"Health Insurance", "Doctor / Dentist Visits", "Prescriptions", "Gym / Fitness / Sports", "Mental Health Services"}},
	{"Personal & Lifestyle", []string{"Clothing & Shoes", "Haircuts / Grooming", "Beauty & Cosmetics", "Hobbies", "Subscriptions"}},
	{"Family & Education", []string{"Childcare / School Fees", "Tuition / Courses / Learning Apps", "Pet Care"}},
	{"Financial Obligations", []string{"Debt Payments", "Savings / Investments", "Taxes", "Bank Fees", "Budget Allocation / Envelope Transfer"}},
	{"Entertainment & Leisure", []string{"Travel / Vacations", "Movies / Concerts / Events", "Gifts & Celebrations"}},
	{"Miscellaneous", []string{"Donations / Charity", "Unexpected Expenses", "Other / Uncategorized"}},
}

// DefaultIncomeCategories is the built-in income catalog.
var DefaultIncomeCategories = []CategoryGroup{
	{"Employment Income", []string{"Salary / wages", "Overtime / bonuses", "Commissions / tips"}},
	{"Self-Employment / Business", []string{"Freelance income", "Business sales", "Consulting / side hustle"}},
	{"Transfers & Support", []string{"Government benefits", "Family support / alimony", "Reimbursements"}},
	{"Other Income", []string{"Gifts", "Lottery / windfalls", "One-time payments"}},
}

// DefaultInvestmentCategories is the built-in investment catalog.
var DefaultInvestmentCategories = []CategoryGroup{
	{"Investment Types", []string{"Stocks", "Bonds", "Real Estate", "Crypto", "Retirement", "Other"}},
}

// voiceSynonyms maps a concrete category name to the spoken phrases that
// suggest it. A slice keeps ranking ties deterministic (earlier entry wins).
var voiceSynonyms = []struct {
	category string
	synonyms []string
}{
	{"Groceries", []string{"grocery", "groceries", "supermarket", "food shopping", "walmart", "costco", "trader joe", "whole foods", "aldi", "kroger", "market"}},
	{"Restaurants / Cafes", []string{"restaurant", "restaurants", "cafe", "coffee", "starbucks", "mcdonalds", "eating out", "dine", "dining", "dinner out", "lunch out", "brunch", "fast food"}},
	{"Takeout / Delivery", []string{"takeout", "delivery", "doordash", "ubereats", "grubhub", "postmates", "seamless"}},
	{"Fuel / Gas", []string{"gas", "gasoline", "fuel", "petrol", "shell", "chevron", "exxon", "bp", "filling station", "gas station"}},
	{"Public Transport", []string{"uber", "lyft", "taxi", "cab", "bus", "train", "metro", "subway", "transit", "transportation", "commute", "fare"}},
	{"Utilities", []string{"electricity", "electric", "power", "water", "gas bill", "internet", "wifi", "utility", "utilities", "cable", "phone bill", "mobile"}},
	{"Rent / Mortgage", []string{"rent", "mortgage", "housing", "apartment", "lease"}},
	{"Salary / wages", []string{"salary", "paycheck", "wages", "pay", "income", "work"}},
	{"Overtime / bonuses", []string{"bonus", "overtime", "extra pay"}},
	{"Commissions / tips", []string{"commission", "tip", "tips", "gratuity"}},
	{"Freelance income", []string{"freelance", "gig", "side hustle", "contract", "consulting"}},
	{"Subscriptions", []string{"subscription", "netflix", "spotify", "hulu", "disney", "amazon prime", "youtube premium", "apple music", "streaming"}},
	{"Gym / Fitness / Sports", []string{"gym", "fitness", "workout", "exercise", "yoga", "pilates", "crossfit", "sports", "planet fitness"}},
	{"Clothing & Shoes", []string{"clothes", "clothing", "shirt", "pants", "shoes", "dress", "jacket", "apparel", "fashion", "zara", "h&m", "nike", "adidas"}},
	{"Doctor / Dentist Visits", []string{"doctor", "dentist", "medical", "hospital", "clinic", "checkup", "appointment"}},
	{"Prescriptions", []string{"prescription", "pharmacy", "medicine", "medication", "drugs", "cvs", "walgreens"}},
	{"Movies / Concerts / Events", []string{"movie", "movies", "cinema", "concert", "show", "event", "ticket", "theater", "theatre", "entertainment"}},
	{"Travel / Vacations", []string{"travel", "vacation", "trip", "hotel", "airbnb", "flight", "airline", "booking"}},
	{"Gifts & Celebrations", []string{"gift", "gifts", "present", "birthday", "christmas", "anniversary", "celebration"}},
	{"Pet Care", []string{"pet", "dog", "cat", "vet", "veterinarian", "pet food", "pet store"}},
	{"Donations / Charity", []string{"donation", "charity", "donate", "nonprofit", "giving"}},
	{"Other / Uncategorized", []string{"other", "misc", "miscellaneous"}},
	{"Reimbursements", []string{"reimbursement", "refund", "expense report"}},
	{"Gifts", []string{"gift", "present", "birthday money"}},
}

// amountPatterns is the extraction ladder for spoken amounts, most precise
// first: explicit currency symbols, then spoken units, then a bare number.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$(\d+(?:\.\d{1,2})?)`),
	regexp.MustCompile(`€(\d+(?:\.\d{1,2})?)`),
	regexp.MustCompile(`(\d+(?:\.\d{1,2})?)\s*(?:dollars?|bucks?|euros?)`),
	regexp.MustCompile(`(\d+(?:\.\d{1,2})?)`),
}

var voiceIncomeKeywords = []string{
	"earned", "income", "salary", "wages", "paycheck",
	"paid me", "received", "got paid", "made money",
	"bonus", "commission", "tip", "tips", "refund",
	"profit", "revenue", "freelance", "gig money",
}

var voiceExpenseKeywords = []string{
	"spent", "expense", "paid for", "bought", "purchased",
	"cost me", "charged", "paid", "payment", "bill",
	"subscription", "rent", "groceries", "food", "gas",
	"utilities", "shopping",
}

var voiceInvestmentKeywords = []string{
	"invested", "investment", "bought stock", "bought stocks",
	"bought crypto", "stock purchase", "etf", "mutual fund",
}

var descriptionFiller = regexp.MustCompile(`\b(spent|paid|bought|earned|received|got|for|on|at|today|yesterday|dollars?|bucks?|euros?|add|an?)\b`)

// ParseVoiceTransaction turns a free-form spoken phrase ("spent 50 dollars
// on groceries") into a draft transaction. It extracts the amount, scores
// the transaction type, ranks candidate categories against the spoken
// words, and always asks the caller to confirm the category; when the type
// itself is ambiguous it asks for that first.
func ParseVoiceTransaction(text string) VoiceParseResult {
	text = strings.ToLower(strings.TrimSpace(text))

	amount, ok := extractAmount(text)
	if !ok {
		return VoiceParseResult{
			Message: "Could not detect amount. Please say the dollar amount clearly (e.g., '50 dollars' or '$50').",
		}
	}

	typ, confident := scoreVoiceType(text)
	if !confident {
		return VoiceParseResult{
			NeedsTypeClarification: true,
			Message:                "Is this money you received (income) or money you spent (expense)?",
			AmountDetected:         true,
			Amount:                 amount,
			Description:            truncate(text, 100),
		}
	}

	return VoiceParseResult{
		NeedsClarification: true,
		Message:            fmt.Sprintf("Which category should this %s be added to?", typ),
		AllCategories:      catalogForType(typ),
		MatchedCategories:  rankCategories(text),
		AmountDetected:     true,
		Amount:             amount,
		Type:               typ,
		Description:        cleanDescription(text, typ),
	}
}

func extractAmount(text string) (decimal.Decimal, bool) {
	for _, pattern := range amountPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		amount, err := decimal.NewFromString(m[1])
		if err != nil || !amount.IsPositive() {
			continue
		}
		return amount, true
	}
	return decimal.Decimal{}, false
}

// scoreVoiceType classifies the spoken phrase the same way Classify scores
// questions: investment wins ties, otherwise the higher of income/expense.
func scoreVoiceType(text string) (domain.TransactionType, bool) {
	income := countPhrases(text, voiceIncomeKeywords)
	expense := countPhrases(text, voiceExpenseKeywords)
	investment := countPhrases(text, voiceInvestmentKeywords)

	switch {
	case investment > 0 && investment >= income && investment >= expense:
		return domain.TypeInvestment, true
	case income > expense:
		return domain.TypeIncome, true
	case expense > income:
		return domain.TypeExpense, true
	default:
		return "", false
	}
}

func countPhrases(text string, phrases []string) int {
	n := 0
	for _, p := range phrases {
		if containsPhrase(text, p) {
			n++
		}
	}
	return n
}

// maxMatchedCategories caps the candidate list offered for confirmation.
const maxMatchedCategories = 5

// rankCategories scores every known category against the spoken words: a
// full synonym phrase counts double, a partial token overlap counts once.
// The top candidates come back best-first.
func rankCategories(text string) []string {
	words := strings.Fields(text)

	type scored struct {
		category string
		score    int
		rank     int
	}
	var candidates []scored
	for rank, entry := range voiceSynonyms {
		score := 0
		for _, syn := range entry.synonyms {
			if containsPhrase(text, syn) {
				score += 2
				continue
			}
			for _, w := range words {
				if len(w) > 2 && (strings.Contains(syn, w) || strings.Contains(w, syn)) {
					score++
					break
				}
			}
		}
		if score > 0 {
			candidates = append(candidates, scored{entry.category, score, rank})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].rank < candidates[j].rank
	})

	var out []string
	for i, c := range candidates {
		if i == maxMatchedCategories {
			break
		}
		out = appendUnique(out, c.category)
	}
	return out
}

func catalogForType(typ domain.TransactionType) []CategoryGroup {
	switch typ {
	case domain.TypeIncome:
		return DefaultIncomeCategories
	case domain.TypeInvestment:
		return DefaultInvestmentCategories
	default:
		return DefaultExpenseCategories
	}
}

// cleanDescription strips the amount and filler verbs out of the phrase;
// what remains is the draft description.
func cleanDescription(text string, typ domain.TransactionType) string {
	desc := text
	for _, pattern := range amountPatterns {
		desc = pattern.ReplaceAllString(desc, "")
	}
	desc = descriptionFiller.ReplaceAllString(desc, "")
	desc = strings.Join(strings.Fields(desc), " ")
	if len(desc) < 3 {
		return fmt.Sprintf("%s via voice", capitalize(string(typ)))
	}
	return truncate(desc, 100)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
