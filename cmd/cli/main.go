// Command cli asks the analytics engine questions from the terminal.
//
// Usage:
//
//	cli -project PROJECT ask "How much did I spend on groceries in January?"
//	cli -project PROJECT portfolio
//	cli price -category Crypto ETH
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"cloud.google.com/go/bigquery"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/vaulton/vaulton/internal/assistant"
	infraBQ "github.com/vaulton/vaulton/internal/infra/bigquery"
	"github.com/vaulton/vaulton/internal/llm"
	"github.com/vaulton/vaulton/internal/logger"
	"github.com/vaulton/vaulton/internal/marketdata"
)

func main() {
	_ = godotenv.Load()

	project := flag.String("project", os.Getenv("BIGQUERY_PROJECT_ID"), "GCP project holding the vaulton dataset (or set BIGQUERY_PROJECT_ID)")
	flag.Parse()

	log := logger.New()
	args := flag.Args()
	if len(args) == 0 {
		log.Fatal().Msg("Usage: cli [-project PROJECT] ask QUESTION | portfolio | price [-category CATEGORY] SYMBOL")
	}

	ctx := context.Background()
	prices := marketdata.NewService(marketdata.NewYahooFetcher(nil), log)

	switch args[0] {
	case "price":
		symbol, category, err := parsePriceArgs(args[1:])
		if err != nil {
			log.Fatal().Err(err).Msg("Usage: cli price [-category CATEGORY] SYMBOL")
		}
		quote := prices.CurrentPrice(ctx, symbol, category)
		if quote.Source == marketdata.SourceNone {
			fmt.Printf("%s: no price available\n", strings.ToUpper(symbol))
			os.Exit(1)
		}
		fmt.Printf("%s: %s (%s)\n", strings.ToUpper(symbol), quote.Price.StringFixed(2), quote.Source)
		return

	case "ask", "portfolio":
		if *project == "" {
			log.Fatal().Msg("BigQuery project is required (use -project or BIGQUERY_PROJECT_ID)")
		}

		bqClient, err := bigquery.NewClient(ctx, *project)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create BigQuery client")
		}
		defer bqClient.Close()

		store := infraBQ.NewStore(bqClient, log)

		if args[0] == "portfolio" {
			runPortfolio(ctx, store, prices, log)
			return
		}

		question := strings.TrimSpace(strings.Join(args[1:], " "))
		engine := assistant.NewEngine(store, store, prices, llm.NewGeminiDelegate(""), log, nil)

		answer, err := engine.AnswerQuestion(ctx, question)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to answer question")
		}
		fmt.Println(answer.Answer)
		if !answer.DataProvided {
			os.Exit(1)
		}
		return

	default:
		log.Fatal().Str("command", args[0]).Msg("Unknown command")
	}
}

// parsePriceArgs parses the price subcommand's arguments. Flags come before
// the symbol because flag parsing stops at the first positional argument; a
// flag placed after the symbol is an error rather than silently ignored.
func parsePriceArgs(args []string) (symbol, category string, err error) {
	fs := flag.NewFlagSet("price", flag.ContinueOnError)
	cat := fs.String("category", "", "asset category for the price lookup (e.g. Crypto)")
	if err := fs.Parse(args); err != nil {
		return "", "", fmt.Errorf("parsePriceArgs: %w", err)
	}
	if fs.NArg() != 1 {
		return "", "", fmt.Errorf("parsePriceArgs: expected exactly one symbol, got %d arguments", fs.NArg())
	}
	return fs.Arg(0), *cat, nil
}

func runPortfolio(ctx context.Context, store *infraBQ.Store, prices *marketdata.Service, log zerolog.Logger) {
	txs, err := store.ListAllTransactions(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list transactions")
	}

	summary := assistant.BuildHoldings(ctx, txs, prices)
	if len(summary.Holdings) == 0 {
		fmt.Println("No investments recorded.")
		return
	}

	for _, h := range summary.Holdings {
		fmt.Printf("%-12s invested %12s", h.Asset, h.TotalInvested.StringFixed(2))
		if h.Priced {
			fmt.Printf("  value %12s  p/l %12s (%s%%)", h.CurrentValue.StringFixed(2), h.GainLoss.StringFixed(2), h.ROIPercent.StringFixed(1))
		} else {
			fmt.Printf("  price unavailable")
		}
		fmt.Println()
	}

	fmt.Printf("\nTotal invested: %s\n", summary.TotalInvested.StringFixed(2))
	if summary.Priced {
		fmt.Printf("Current value:  %s\n", summary.CurrentValue.StringFixed(2))
		fmt.Printf("Profit/loss:    %s (%s%%)\n", summary.TotalGainLoss.StringFixed(2), summary.TotalROIPercent.StringFixed(1))
	} else {
		fmt.Println("Current market prices unavailable.")
	}
}
