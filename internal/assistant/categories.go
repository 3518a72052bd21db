package assistant

import (
	"regexp"
	"strings"
)

// Match is the result of resolving free text against the identifiers that
// actually exist in the user's data. Names is ordered with the most specific
// tier first. Requested distinguishes "the question never mentioned a
// category/asset" (no filter) from "the question mentioned one that does not
// exist in the data" (dedicated no-data response).
type Match struct {
	Names     []string
	Requested bool
}

// synonymGroup expands one broad spoken term into category-name fragments.
type synonymGroup struct {
	term      string
	fragments []string
}

// categoryGroups is tier 2 of the resolver: broad vocabulary that fans out to
// every matching category the user actually has. Slices (not maps) keep the
// evaluation order, and therefore the answer text, deterministic.
var categoryGroups = []synonymGroup{
	{"food", []string{"grocer", "restaurant", "cafe", "takeout", "delivery", "dining", "lunch"}},
	{"transport", []string{"transport", "transit", "fuel", "gas", "parking", "car"}},
	{"housing", []string{"rent", "mortgage", "utilit", "home", "property"}},
	{"health", []string{"health", "doctor", "dentist", "prescription", "gym", "fitness"}},
	{"entertainment", []string{"movie", "concert", "event", "entertainment", "travel", "vacation"}},
	{"insurance", []string{"insurance"}},
	{"education", []string{"tuition", "course", "school", "learning"}},
}

// categoryKeywords is tier 3: colloquial terms, merchants and brand names,
// each pointing at a single category-name fragment. It is the most permissive
// tier and is therefore consulted last.
var categoryKeywords = []struct {
	keyword  string
	fragment string
}{
	{"grocery", "grocer"}, {"groceries", "grocer"}, {"supermarket", "grocer"},
	{"walmart", "grocer"}, {"costco", "grocer"}, {"aldi", "grocer"}, {"kroger", "grocer"},
	{"restaurant", "restaurant"}, {"restaurants", "restaurant"}, {"cafe", "restaurant"},
	{"coffee", "restaurant"}, {"starbucks", "restaurant"}, {"eating out", "restaurant"},
	{"dining", "restaurant"}, {"brunch", "restaurant"}, {"fast food", "restaurant"},
	{"takeout", "takeout"}, {"delivery", "takeout"}, {"doordash", "takeout"},
	{"ubereats", "takeout"}, {"grubhub", "takeout"},
	{"gas", "fuel"}, {"gasoline", "fuel"}, {"fuel", "fuel"}, {"petrol", "fuel"},
	{"gas station", "fuel"}, {"shell", "fuel"}, {"chevron", "fuel"},
	{"uber", "transport"}, {"lyft", "transport"}, {"taxi", "transport"}, {"cab", "transport"},
	{"bus", "transport"}, {"train", "transport"}, {"metro", "transport"},
	{"subway", "transport"}, {"commute", "transport"},
	{"electricity", "utilit"}, {"electric", "utilit"}, {"internet", "utilit"},
	{"wifi", "utilit"}, {"cable", "utilit"}, {"phone bill", "utilit"}, {"water bill", "utilit"},
	{"rent", "rent"}, {"mortgage", "rent"}, {"apartment", "rent"}, {"lease", "rent"},
	{"salary", "salary"}, {"paycheck", "salary"}, {"wages", "salary"},
	{"tip", "tip"}, {"tips", "tip"}, {"gratuity", "tip"}, {"commission", "tip"},
	{"freelance", "freelance"}, {"gig", "freelance"}, {"consulting", "freelance"},
	{"subscription", "subscription"}, {"subscriptions", "subscription"},
	{"netflix", "subscription"}, {"spotify", "subscription"}, {"hulu", "subscription"},
	{"streaming", "subscription"},
	{"gym", "gym"}, {"fitness", "gym"}, {"workout", "gym"}, {"yoga", "gym"},
	{"clothes", "cloth"}, {"clothing", "cloth"}, {"shoes", "cloth"}, {"apparel", "cloth"},
	{"doctor", "doctor"}, {"dentist", "dentist"}, {"hospital", "doctor"}, {"clinic", "doctor"},
	{"prescription", "prescription"}, {"pharmacy", "prescription"}, {"medicine", "prescription"},
	{"medication", "prescription"},
	{"movie", "movie"}, {"movies", "movie"}, {"cinema", "movie"}, {"concert", "movie"},
	{"theater", "movie"},
	{"travel", "travel"}, {"vacation", "travel"}, {"trip", "travel"}, {"hotel", "travel"},
	{"flight", "travel"}, {"airbnb", "travel"}, {"airline", "travel"},
	{"gift", "gift"}, {"gifts", "gift"}, {"present", "gift"},
	{"pet", "pet"}, {"vet", "pet"}, {"pet food", "pet"},
	{"donation", "donat"}, {"charity", "donat"}, {"donate", "donat"},
}

// cryptoSynonyms normalizes spoken cryptocurrency names to ticker symbols
// before matching against the user's actual asset list.
var cryptoSynonyms = []struct {
	name   string
	symbol string
}{
	{"bitcoin", "BTC"},
	{"ethereum", "ETH"},
	{"ether", "ETH"},
	{"solana", "SOL"},
	{"cardano", "ADA"},
	{"dogecoin", "DOGE"},
	{"doge", "DOGE"},
	{"ripple", "XRP"},
	{"polkadot", "DOT"},
	{"litecoin", "LTC"},
	{"avalanche", "AVAX"},
	{"polygon", "MATIC"},
}

// wordPatterns caches a word-boundary regexp per vocabulary term, so short
// terms like "gas" or "tip" do not fire inside unrelated words.
var wordPatterns = map[string]*regexp.Regexp{}

func init() {
	add := func(term string) {
		if _, ok := wordPatterns[term]; !ok {
			wordPatterns[term] = regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`)
		}
	}
	for _, g := range categoryGroups {
		add(g.term)
	}
	for _, kw := range categoryKeywords {
		add(kw.keyword)
	}
	for _, c := range cryptoSynonyms {
		add(c.name)
		add(strings.ToLower(c.symbol))
	}
}

func containsWord(q, term string) bool {
	p, ok := wordPatterns[term]
	if !ok {
		return strings.Contains(q, term)
	}
	return p.MatchString(q)
}

// MatchCategories resolves the question against the category names present in
// the user's data. Three tiers, each consulted only when the previous one
// produced nothing: exact containment of a category name, broad synonym-group
// expansion, then the specific keyword map.
func MatchCategories(question string, present []string) Match {
	q := strings.ToLower(question)

	// Tier 1: the category name itself appears in the question.
	var names []string
	for _, cat := range present {
		if cat != "" && strings.Contains(q, strings.ToLower(cat)) {
			names = appendUnique(names, cat)
		}
	}
	if len(names) > 0 {
		return Match{Names: names, Requested: true}
	}

	requested := false

	// Tier 2: broad terms fan out to every present category whose name
	// contains one of the group's fragments.
	for _, g := range categoryGroups {
		if !containsWord(q, g.term) {
			continue
		}
		requested = true
		for _, cat := range present {
			lower := strings.ToLower(cat)
			for _, frag := range g.fragments {
				if strings.Contains(lower, frag) {
					names = appendUnique(names, cat)
					break
				}
			}
		}
	}
	if len(names) > 0 {
		return Match{Names: names, Requested: true}
	}

	// Tier 3: one keyword, one target fragment.
	for _, kw := range categoryKeywords {
		if !containsWord(q, kw.keyword) {
			continue
		}
		requested = true
		for _, cat := range present {
			if strings.Contains(strings.ToLower(cat), kw.fragment) {
				names = appendUnique(names, cat)
			}
		}
	}

	return Match{Names: names, Requested: requested}
}

// MatchAssets resolves the question against the asset symbols present in the
// user's data. Ticker symbols match as whole words; common cryptocurrency
// names are normalized to their ticker first.
func MatchAssets(question string, present []string) Match {
	q := strings.ToLower(question)

	var names []string
	requested := false

	for _, asset := range present {
		if asset == "" {
			continue
		}
		if containsWord(q, strings.ToLower(asset)) {
			names = appendUnique(names, asset)
			requested = true
		}
	}

	for _, c := range cryptoSynonyms {
		if !containsWord(q, c.name) {
			continue
		}
		requested = true
		for _, asset := range present {
			if strings.EqualFold(asset, c.symbol) {
				names = appendUnique(names, asset)
			}
		}
	}

	// A ticker mentioned that the user does not hold still counts as an
	// asset reference, so the caller can say it was not found.
	if !requested {
		for _, c := range cryptoSynonyms {
			if containsWord(q, strings.ToLower(c.symbol)) {
				requested = true
				break
			}
		}
	}

	return Match{Names: names, Requested: requested}
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
