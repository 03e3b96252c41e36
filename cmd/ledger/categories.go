package main

import (
	"fmt"

	"github.com/davidlpuk/property-ledger-sub000/internal/cli"
	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage transaction categories",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE:  runCategoriesList,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add [name]",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE:  runCategoriesAdd,
	})

	return cmd
}

func runCategoriesList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	categories, err := store.ListCategories(ctx)
	if err != nil {
		return err
	}

	if len(categories) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No categories configured."))
		return nil
	}

	fmt.Println(cli.TitleStyle.Render("Categories"))
	for _, c := range categories {
		fmt.Printf("  [%d] %s\n", c.ID, c.Name)
	}
	return nil
}

func runCategoriesAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	category, err := store.CreateCategory(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Added category %q (id %d)", category.Name, category.ID)))
	return nil
}
