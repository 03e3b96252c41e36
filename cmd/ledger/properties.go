package main

import (
	"fmt"
	"strings"

	"github.com/davidlpuk/property-ledger-sub000/internal/cli"
	"github.com/spf13/cobra"
)

func propertiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "properties",
		Short: "Manage rental properties",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all properties",
		RunE:  runPropertiesList,
	})

	addCmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a property",
		Args:  cobra.ExactArgs(1),
		RunE:  runPropertiesAdd,
	}
	addCmd.Flags().String("keywords", "", "comma-separated keywords matched against statement descriptions")
	cmd.AddCommand(addCmd)

	return cmd
}

func runPropertiesList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	properties, err := store.ListProperties(ctx)
	if err != nil {
		return err
	}

	if len(properties) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No properties configured."))
		return nil
	}

	fmt.Println(cli.TitleStyle.Render("Properties"))
	for _, p := range properties {
		fmt.Printf("  [%d] %s %s\n",
			p.ID,
			cli.BoldStyle.Render(p.Name),
			cli.SubtleStyle.Render(strings.Join(p.Keywords, ", ")))
	}
	return nil
}

func runPropertiesAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	keywordsFlag, _ := cmd.Flags().GetString("keywords")

	var keywords []string
	for _, kw := range strings.Split(keywordsFlag, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	property, err := store.CreateProperty(ctx, args[0], keywords)
	if err != nil {
		return err
	}

	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Added property %q (id %d)", property.Name, property.ID)))
	return nil
}
