package main

import (
	"fmt"

	"github.com/davidlpuk/property-ledger-sub000/internal/cli"
	"github.com/davidlpuk/property-ledger-sub000/internal/recurring"
	"github.com/spf13/cobra"
)

func recurringCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recurring",
		Short: "Detect recurring transactions",
		Long: `Analyze the full transaction history and report vendors that repeat at
a stable interval and amount, with the next expected occurrence.`,
		RunE: runRecurring,
	}
}

func runRecurring(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	txns, err := store.ListTransactions(ctx)
	if err != nil {
		return err
	}

	patterns, err := recurring.NewDetector().Detect(ctx, txns)
	if err != nil {
		return err
	}

	if len(patterns) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No recurring transactions detected."))
		return nil
	}

	fmt.Println(cli.TitleStyle.Render("Recurring transactions"))
	for _, p := range patterns {
		fmt.Printf("  %s: %s every ~%.0f days (%d occurrences, next expected %s)\n",
			cli.BoldStyle.Render(p.Vendor),
			p.AverageAmount.StringFixed(2),
			p.AverageIntervalDays,
			p.OccurrenceCount,
			p.NextExpectedDate.Format("2006-01-02"))
	}

	return nil
}
