package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vaulton/vaulton/internal/domain"
)

// TransactionSource supplies the point-in-time snapshot a query runs
// against. The engine owns all filtering; nothing is pushed down.
type TransactionSource interface {
	ListAllTransactions(ctx context.Context) ([]domain.TransactionRecord, error)
}

// StandingOrderSource supplies the active recurring-transaction templates,
// consumed only as digest context for the chat delegate.
type StandingOrderSource interface {
	ListActiveStandingOrders(ctx context.Context) ([]domain.StandingOrder, error)
}

// ChatDelegate is the external LLM collaborator. Its response is untrusted
// free text and is returned to the user verbatim; the engine never re-parses
// numbers out of it.
type ChatDelegate interface {
	Available() bool
	Answer(ctx context.Context, digest, question string) (string, error)
}

// Answer is the result of one question. DataProvided is false only when
// neither the deterministic path nor the chat delegate could ground the
// answer in the user's data.
type Answer struct {
	Answer       string `json:"answer"`
	DataProvided bool   `json:"data_provided"`
}

// ErrEmptyQuestion is returned before any resolution work when the question
// is empty or whitespace.
var ErrEmptyQuestion = errors.New("question is required")

const (
	chatTimeout = 30 * time.Second

	chatUnavailableAnswer = "AI assistant is not configured. Please check your API key."
	chatFailedAnswer      = "I couldn't process your question right now. Please try again."
)

// Engine answers free-text financial questions against a transaction
// snapshot. Every query is a stateless unit of work; the engine itself holds
// no per-query state and is safe for concurrent use.
type Engine struct {
	transactions TransactionSource
	orders       StandingOrderSource
	prices       PriceSource
	chat         ChatDelegate
	log          zerolog.Logger
	now          func() time.Time
}

// NewEngine wires the engine's collaborators. A nil now defaults to the
// wall clock; tests inject a fixed one.
func NewEngine(transactions TransactionSource, orders StandingOrderSource, prices PriceSource, chat ChatDelegate, log zerolog.Logger, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{
		transactions: transactions,
		orders:       orders,
		prices:       prices,
		chat:         chat,
		log:          log,
		now:          now,
	}
}

// AnswerQuestion resolves and answers one question. Expense, income and
// investment questions are answered deterministically from the snapshot;
// summary and unclassifiable questions are delegated to the chat
// collaborator with a numeric digest. Collaborator failures degrade to
// static answers; the only hard error besides a failed snapshot fetch is an
// empty question.
func (e *Engine) AnswerQuestion(ctx context.Context, question string) (Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Answer{}, ErrEmptyQuestion
	}

	txs, err := e.transactions.ListAllTransactions(ctx)
	if err != nil {
		return Answer{}, fmt.Errorf("AnswerQuestion: fetching transactions: %w", err)
	}

	today := dateOnly(e.now())
	intent := Classify(question)
	rng := ResolveDateRange(question, dataYears(txs), today)

	e.log.Debug().
		Str("intent", string(intent)).
		Str("range", rng.Label).
		Msg("Question resolved")

	switch intent {
	case IntentExpense:
		return e.answerByType(question, txs, rng, domain.TypeExpense), nil
	case IntentIncome:
		return e.answerByType(question, txs, rng, domain.TypeIncome), nil
	case IntentInvestment:
		return e.answerInvestment(ctx, question, txs, rng), nil
	default:
		return e.answerViaChat(ctx, question, txs, today), nil
	}
}

// answerByType handles the deterministic expense and income paths.
func (e *Engine) answerByType(question string, txs []domain.TransactionRecord, rng DateRange, typ domain.TransactionType) Answer {
	existing := presentCategories(txs, typ)
	match := MatchCategories(question, existing)
	if match.Requested && len(match.Names) == 0 {
		return Answer{Answer: composeUnknownCategory(existing), DataProvided: true}
	}

	filters := Filters{Type: typ, Range: rng, Categories: match.Names}
	filtered := FilterTransactions(txs, filters)
	if len(filtered) == 0 {
		fallback := "expenses"
		if typ == domain.TypeIncome {
			fallback = "income"
		}
		return Answer{Answer: composeNoData(filters, fallback), DataProvided: true}
	}

	if typ == domain.TypeIncome {
		return Answer{Answer: composeIncomeAnswer(filtered, filters), DataProvided: true}
	}
	return Answer{Answer: composeExpenseAnswer(filtered, filters), DataProvided: true}
}

// answerInvestment handles the deterministic investment path, valuing the
// holdings in scope at current market prices.
func (e *Engine) answerInvestment(ctx context.Context, question string, txs []domain.TransactionRecord, rng DateRange) Answer {
	existing := presentAssets(txs)
	match := MatchAssets(question, existing)
	if match.Requested && len(match.Names) == 0 {
		return Answer{Answer: composeUnknownAsset(existing), DataProvided: true}
	}

	filters := Filters{Type: domain.TypeInvestment, Range: rng, Assets: match.Names}
	filtered := FilterTransactions(txs, filters)
	if len(filtered) == 0 {
		return Answer{Answer: composeNoData(filters, "investments"), DataProvided: true}
	}

	summary := BuildHoldings(ctx, filtered, e.prices)
	return Answer{Answer: composeInvestmentAnswer(summary, filters), DataProvided: true}
}

// answerViaChat handles summary and unclassifiable questions: it builds the
// full-snapshot digest and hands the question to the chat delegate. An
// unconfigured or failing delegate degrades to a static answer with
// DataProvided false rather than an error.
func (e *Engine) answerViaChat(ctx context.Context, question string, txs []domain.TransactionRecord, today time.Time) Answer {
	if e.chat == nil || !e.chat.Available() {
		return Answer{Answer: chatUnavailableAnswer, DataProvided: false}
	}

	var orders []domain.StandingOrder
	if e.orders != nil {
		var err error
		orders, err = e.orders.ListActiveStandingOrders(ctx)
		if err != nil {
			e.log.Warn().Err(err).Msg("Fetching standing orders failed, digest proceeds without them")
			orders = nil
		}
	}

	portfolio := BuildHoldings(ctx, txs, e.prices)
	digest := BuildDigest(txs, orders, portfolio, today)

	chatCtx, cancel := context.WithTimeout(ctx, chatTimeout)
	defer cancel()

	text, err := e.chat.Answer(chatCtx, digest, question)
	if err != nil {
		e.log.Warn().Err(err).Msg("Chat delegate failed")
		return Answer{Answer: chatFailedAnswer, DataProvided: false}
	}
	return Answer{Answer: text, DataProvided: true}
}
