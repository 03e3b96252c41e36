package main

import (
	"fmt"

	"github.com/davidlpuk/property-ledger-sub000/internal/cli"
	"github.com/spf13/cobra"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage classification rules",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all classification rules",
		RunE:  runRulesList,
	})

	return cmd
}

func runRulesList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	advanced, err := store.ListAdvancedRules(ctx)
	if err != nil {
		return err
	}
	standard, err := store.ListStandardRules(ctx)
	if err != nil {
		return err
	}

	fmt.Println(cli.TitleStyle.Render("Advanced rules (evaluated first)"))
	if len(advanced) == 0 {
		fmt.Println(cli.SubtleStyle.Render("  none"))
	}
	for _, r := range advanced {
		state := ""
		if !r.Enabled {
			state = cli.SubtleStyle.Render(" [disabled]")
		}
		fmt.Printf("  [%d] %s %q (%s, priority %d)%s\n",
			r.ID, r.MatchType, r.DescriptionPattern, r.DateLogic.Type, r.Priority, state)
	}

	fmt.Println(cli.TitleStyle.Render("Standard rules"))
	if len(standard) == 0 {
		fmt.Println(cli.SubtleStyle.Render("  none"))
	}
	for _, r := range standard {
		state := ""
		if !r.Active {
			state = cli.SubtleStyle.Render(" [inactive]")
		}
		fmt.Printf("  [%d] %s %q (priority %d)%s\n",
			r.ID, r.MatchType, r.Pattern, r.Priority, state)
	}

	return nil
}
