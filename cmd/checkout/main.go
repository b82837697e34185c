// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command checkout plays the Mini App side of a purchase against a running API.
//
// The payment sheet is simulated: --outcome decides what it reports.
//
//	go run ./cmd/checkout --api http://localhost:3000/api/v1 --book book-1 --outcome paid
package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/openreader/storefront/internal/checkout"
	"github.com/openreader/storefront/internal/platform/constants"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		slog.Error("checkout_failed", slog.Any("error", err), slog.Bool("retryable", checkout.Retryable(err)))
		os.Exit(1)
	}
}

// newApp builds the command; output is the destination of the JSON log.
func newApp(output io.Writer) *cli.App {
	return &cli.App{
		Name:  "checkout",
		Usage: "buy a book through the storefront API with a simulated payment sheet",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api",
				Value:   "http://localhost:3000/api/v1",
				Usage:   "storefront API base URL",
				EnvVars: []string{"CHECKOUT_API_URL"},
			},
			&cli.StringFlag{
				Name:  "book",
				Value: "book-1",
				Usage: "book to purchase",
			},
			&cli.StringFlag{
				Name:  "outcome",
				Value: string(checkout.InvoicePaid),
				Usage: "simulated invoice outcome: paid, failed or cancelled",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 30 * time.Second,
				Usage: "overall deadline",
			},
		},
		Action: func(c *cli.Context) error {
			outcome, err := checkout.ParseOutcome(c.String("outcome"))
			if err != nil {
				return err
			}

			log := slog.New(slog.NewJSONHandler(output, nil)).With(slog.String("app", constants.AppName+"-checkout"))

			ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
			defer cancel()

			return run(ctx, log, c.String("api"), c.String("book"), outcome)
		},
	}
}

// errAlreadyPurchased never leaves run; it only short-circuits the happy path.
var errAlreadyPurchased = errors.New("checkout: already purchased")

func run(ctx context.Context, log *slog.Logger, apiURL, bookID string, outcome checkout.InvoiceStatus) error {
	opener := func(invoiceLink string, callback func(checkout.InvoiceStatus)) {
		log.Info("invoice_opened", slog.String("invoice_link", invoiceLink))
		callback(checkout.InvoicePending)
		callback(outcome)
	}

	flow := checkout.NewFlow(bookID, checkout.NewHTTPBackend(apiURL, nil), opener, log)
	flow.OnTransition(func(from, to checkout.State) {
		log.Info("checkout_transition", slog.String("from", string(from)), slog.String("to", string(to)))
	})

	err := purchase(ctx, flow)
	if errors.Is(err, errAlreadyPurchased) {
		log.Info("checkout_already_purchased", slog.String("book_id", bookID))
		return nil
	}
	return err
}

func purchase(ctx context.Context, flow *checkout.Flow) error {
	state, err := flow.Check(ctx)
	if err != nil {
		return err
	}
	if state == checkout.StatePurchased {
		return errAlreadyPurchased
	}
	return flow.Buy(ctx)
}
