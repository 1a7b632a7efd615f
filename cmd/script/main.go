package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"dotyield/cmd"
	"dotyield/internal/db/models/postgres/public/model"
	"dotyield/internal/repository"
	"dotyield/internal/util"

	"github.com/gocarina/gocsv"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "dotyield-script",
		Short: "operational scripts for the yield backtester",
	}
	root.AddCommand(serveCmd())
	root.AddCommand(deriveCmd())
	root.AddCommand(backfillCmd())
	root.AddCommand(importRatesCmd())

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func serveCmd() *cobra.Command {
	var port int
	c := &cobra.Command{
		Use:   "serve",
		Short: "run the http api",
		RunE: func(c *cobra.Command, args []string) error {
			handler, err := cmd.InitializeDependencies()
			if err != nil {
				return err
			}
			defer cmd.CloseDependencies(handler)
			return handler.StartApi(port)
		},
	}
	c.Flags().IntVar(&port, "port", 3009, "port to listen on")
	return c
}

func deriveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "derive [asset...]",
		Short: "derive and store the current yield snapshot for each asset",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			handler, err := cmd.InitializeDependencies()
			if err != nil {
				return err
			}
			defer cmd.CloseDependencies(handler)

			for _, asset := range args {
				snapshot, err := handler.YieldDerivationService.DeriveYield(context.Background(), asset, nil)
				if err != nil {
					return fmt.Errorf("failed to derive yield for %s: %w", asset, err)
				}
				if snapshot == nil {
					fmt.Printf("%s: no rate observations\n", asset)
					continue
				}
				util.Pprint(snapshot)
			}
			return nil
		},
	}
}

func backfillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backfill [asset...]",
		Short: "recompute the full daily yield history for each asset",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			handler, err := cmd.InitializeDependencies()
			if err != nil {
				return err
			}
			defer cmd.CloseDependencies(handler)

			for _, asset := range args {
				count, err := handler.YieldDerivationService.BackfillYieldHistory(context.Background(), asset)
				if err != nil {
					return fmt.Errorf("failed to backfill %s: %w", asset, err)
				}
				fmt.Printf("%s: %d snapshots\n", asset, count)
			}
			return nil
		},
	}
}

type rateObservationRow struct {
	Asset       string `csv:"asset"`
	ObservedAt  string `csv:"observed_at"`
	Rate        string `csv:"rate"`
	TotalPooled string `csv:"total_pooled"`
	TotalIssued string `csv:"total_issued"`
}

func importRatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import-rates [file.csv]",
		Short: "bulk load exchange-rate observations from a csv export",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			rows := []rateObservationRow{}
			if err := gocsv.UnmarshalFile(f, &rows); err != nil {
				return fmt.Errorf("failed to parse %s: %w", args[0], err)
			}

			observations := make([]model.RateObservation, 0, len(rows))
			for i, row := range rows {
				observation, err := rowToObservation(row)
				if err != nil {
					return fmt.Errorf("row %d: %w", i+1, err)
				}
				observations = append(observations, observation)
			}

			handler, err := cmd.InitializeDependencies()
			if err != nil {
				return err
			}
			defer cmd.CloseDependencies(handler)

			rateHistoryRepository := repository.NewRateHistoryRepository()
			if err := rateHistoryRepository.Add(handler.Db, observations); err != nil {
				return fmt.Errorf("failed to insert observations: %w", err)
			}

			fmt.Printf("imported %d observations\n", len(observations))
			return nil
		},
	}
}

func rowToObservation(row rateObservationRow) (model.RateObservation, error) {
	observedAt, err := time.Parse(time.RFC3339, row.ObservedAt)
	if err != nil {
		return model.RateObservation{}, fmt.Errorf("could not parse observed_at %q: %w", row.ObservedAt, err)
	}
	rate, err := decimal.NewFromString(row.Rate)
	if err != nil {
		return model.RateObservation{}, fmt.Errorf("could not parse rate %q: %w", row.Rate, err)
	}
	totalPooled, err := decimal.NewFromString(row.TotalPooled)
	if err != nil {
		return model.RateObservation{}, fmt.Errorf("could not parse total_pooled %q: %w", row.TotalPooled, err)
	}
	totalIssued, err := decimal.NewFromString(row.TotalIssued)
	if err != nil {
		return model.RateObservation{}, fmt.Errorf("could not parse total_issued %q: %w", row.TotalIssued, err)
	}

	return model.RateObservation{
		Asset:       row.Asset,
		BucketTs:    observedAt.Truncate(time.Hour),
		ObservedAt:  observedAt,
		Rate:        rate,
		TotalPooled: totalPooled,
		TotalIssued: totalIssued,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
