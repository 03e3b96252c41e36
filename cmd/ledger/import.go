package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/davidlpuk/property-ledger-sub000/internal/cli"
	"github.com/davidlpuk/property-ledger-sub000/internal/importer"
	"github.com/davidlpuk/property-ledger-sub000/internal/model"
	"github.com/davidlpuk/property-ledger-sub000/internal/statement"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import transactions from bank export files",
		Long: `Import bank statement exports. Delimited text files (CSV and friends)
are parsed with header detection and a heuristic fallback; OFX/QFX files
are parsed directly. Duplicates are detected by fingerprint and skipped.

Examples:
  # Import a single export
  ledger import ~/Downloads/movements_march.csv

  # Import several files at once
  ledger import ~/Downloads/*.csv ~/Downloads/bank.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")
	cmd.Flags().Bool("strict-dates", false, "Skip rows with unrecognized date formats instead of defaulting to today")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	strictDates, _ := cmd.Flags().GetBool("strict-dates")
	ctx := cmd.Context()

	var files []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
		} else {
			files = append(files, matches...)
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found to import")
	}

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	// Load all reference data once; the pipeline itself performs no I/O.
	fingerprints, err := store.GetFingerprints(ctx)
	if err != nil {
		return err
	}
	properties, err := store.ListProperties(ctx)
	if err != nil {
		return err
	}
	advancedRules, err := store.ListAdvancedRules(ctx)
	if err != nil {
		return err
	}
	standardRules, err := store.ListStandardRules(ctx)
	if err != nil {
		return err
	}

	imp := importer.New(importer.Config{
		Options:              statement.Options{StrictDates: strictDates},
		Properties:           properties,
		AdvancedRules:        advancedRules,
		StandardRules:        standardRules,
		ExistingFingerprints: fingerprints,
	})

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription("importing"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
	)

	var summaries []model.ImportSummary
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		txns, summary, err := imp.ImportFile(ctx, string(content), filepath.Base(file))
		if err != nil {
			return fmt.Errorf("failed to import %s: %w", file, err)
		}

		if !dryRun && len(txns) > 0 {
			// Batch persistence is atomic: a failed save means nothing from
			// this file was imported.
			if err := store.SaveTransactions(ctx, txns); err != nil {
				summary.Imported = 0
				printSummary(summary)
				return fmt.Errorf("failed to save batch for %s: %w", file, err)
			}
		}

		summaries = append(summaries, summary)
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	fmt.Println(cli.TitleStyle.Render("Import summary"))
	for _, summary := range summaries {
		printSummary(summary)
	}
	if dryRun {
		fmt.Println(cli.WarningStyle.Render("dry run: nothing was saved"))
	}

	return nil
}

func printSummary(s model.ImportSummary) {
	line := fmt.Sprintf("  %s: %d imported, %d duplicates",
		cli.BoldStyle.Render(s.SourceFile), s.Imported, s.Duplicates)
	if s.Errors > 0 {
		line += cli.ErrorStyle.Render(fmt.Sprintf(", %d errors", s.Errors))
	}
	if s.AutoCategorized > 0 || s.AdvancedRuleMatches > 0 {
		line += cli.SubtleStyle.Render(fmt.Sprintf(" (%d auto-categorized, %d advanced rule matches)",
			s.AutoCategorized, s.AdvancedRuleMatches))
	}
	fmt.Println(line)
}
