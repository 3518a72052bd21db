// Package quotes serves the daily financial-wisdom quote. The pick is a
// pure function of the calendar date, so every request on the same day sees
// the same quote without any storage.
package quotes

import (
	"hash/fnv"
	"time"
)

// Quote is one attributed quote.
type Quote struct {
	Quote    string `json:"quote"`
	Author   string `json:"author"`
	Date     string `json:"date"`
	Category string `json:"category"`
}

type entry struct {
	text     string
	author   string
	category string
}

// catalog is the static quote table, read-only after init.
var catalog = []entry{
	{"The stock market is a device for transferring money from the impatient to the patient.", "Warren Buffett", "investor_wisdom"},
	{"Risk comes from not knowing what you're doing.", "Warren Buffett", "investor_wisdom"},
	{"Someone's sitting in the shade today because someone planted a tree a long time ago.", "Warren Buffett", "investor_wisdom"},
	{"Price is what you pay. Value is what you get.", "Warren Buffett", "investor_wisdom"},
	{"The best investment you can make is in yourself.", "Warren Buffett", "investor_wisdom"},
	{"It's far better to buy a wonderful company at a fair price than a fair company at a wonderful price.", "Warren Buffett", "investor_wisdom"},
	{"Spend each day trying to be a little wiser than you were when you woke up.", "Charlie Munger", "investor_wisdom"},
	{"The big money is not in the buying and selling, but in the waiting.", "Charlie Munger", "investor_wisdom"},
	{"Knowing what you don't know is more useful than being brilliant.", "Charlie Munger", "investor_wisdom"},
	{"Know what you own, and know why you own it.", "Peter Lynch", "investor_wisdom"},
	{"In the short run, the market is a voting machine. In the long run, it's a weighing machine.", "Benjamin Graham", "investor_wisdom"},
	{"The four most dangerous words in investing are: 'This time it's different.'", "Sir John Templeton", "investor_wisdom"},
	{"Wealth is the ability to fully experience life.", "Henry David Thoreau", "financial_freedom"},
	{"Financial freedom is available to those who learn about it and work for it.", "Robert Kiyosaki", "financial_freedom"},
	{"Money is a terrible master but an excellent servant.", "P.T. Barnum", "financial_freedom"},
	{"Don't let making a living prevent you from making a life.", "John Wooden", "financial_freedom"},
	{"Time is more valuable than money. You can get more money, but you cannot get more time.", "Jim Rohn", "financial_freedom"},
	{"The goal isn't more money. The goal is living life on your own terms.", "Chris Brogan", "financial_freedom"},
	{"The secret to wealth is simple: Find a way to do more for others than anyone else.", "Tony Robbins", "financial_freedom"},
	{"Do not save what is left after spending; instead spend what is left after saving.", "Warren Buffett", "discipline"},
	{"A budget is telling your money where to go instead of wondering where it went.", "Dave Ramsey", "discipline"},
	{"Beware of little expenses. A small leak will sink a great ship.", "Benjamin Franklin", "discipline"},
	{"It's not your salary that makes you rich, it's your spending habits.", "Charles A. Jaffe", "discipline"},
	{"Every time you borrow money, you're robbing your future self.", "Nathan W. Morris", "discipline"},
	{"Compound interest is the eighth wonder of the world. He who understands it, earns it.", "Albert Einstein", "discipline"},
	{"The habit of saving is itself an education.", "George S. Clason", "discipline"},
	{"Formal education will make you a living; self-education will make you a fortune.", "Jim Rohn", "motivation"},
	{"Success is not final, failure is not fatal: it is the courage to continue that counts.", "Winston Churchill", "motivation"},
	{"Seek wealth, not money or status. Wealth is having assets that earn while you sleep.", "Naval Ravikant", "motivation"},
	{"Play long-term games with long-term people.", "Naval Ravikant", "motivation"},
	{"Learn to sell. Learn to build. If you can do both, you will be unstoppable.", "Naval Ravikant", "motivation"},
	{"An investment in knowledge pays the best interest.", "Benjamin Franklin", "mindset"},
	{"Wealth is not about having a lot of money; it's about having a lot of options.", "Chris Rock", "mindset"},
	{"The more you learn, the more you earn.", "Warren Buffett", "mindset"},
	{"Never depend on a single income. Make investment to create a second source.", "Warren Buffett", "mindset"},
	{"Financial peace isn't the acquisition of stuff. It's learning to live on less than you make.", "Dave Ramsey", "mindset"},
}

// OfDay returns the quote for the given calendar date.
func OfDay(day time.Time) Quote {
	date := day.Format("2006-01-02")

	h := fnv.New32a()
	h.Write([]byte(date))
	e := catalog[int(h.Sum32())%len(catalog)]

	return Quote{
		Quote:    e.text,
		Author:   e.author,
		Date:     date,
		Category: e.category,
	}
}
