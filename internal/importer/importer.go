// Package importer orchestrates statement ingestion: extraction,
// deduplication, property matching and rule classification.
package importer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/davidlpuk/property-ledger-sub000/internal/model"
	"github.com/davidlpuk/property-ledger-sub000/internal/rules"
	"github.com/davidlpuk/property-ledger-sub000/internal/statement"
)

// Importer runs uploaded files through the ingestion pipeline. Reference
// data (rules, properties, existing fingerprints) is loaded once before
// processing begins; the importer itself performs no I/O.
type Importer struct {
	extractor *statement.Extractor
	ofx       *statement.OFXParser
	engine    *rules.Engine
	propMatch *rules.PropertyMatcher
	// seen accumulates fingerprints across the whole run so a row can be a
	// duplicate of previously stored history or of an earlier row in the
	// same file.
	seen map[string]bool
}

// Config carries the reference data the pipeline needs.
type Config struct {
	Options              statement.Options
	Properties           []model.Property
	AdvancedRules        []model.AdvancedRule
	StandardRules        []model.StandardRule
	ExistingFingerprints map[string]bool
}

// New creates an importer from already-loaded reference data.
func New(cfg Config) *Importer {
	seen := make(map[string]bool, len(cfg.ExistingFingerprints))
	for fp := range cfg.ExistingFingerprints {
		seen[fp] = true
	}

	return &Importer{
		extractor: statement.NewExtractor(cfg.Options),
		ofx:       statement.NewOFXParser(),
		engine:    rules.NewEngine(cfg.AdvancedRules, cfg.StandardRules),
		propMatch: rules.NewPropertyMatcher(cfg.Properties),
		seen:      seen,
	}
}

// ImportFile processes one file's content sequentially: extract rows, drop
// duplicates, match properties by keyword, then classify with both rule
// tiers. The returned transactions are ready for persistence; the summary
// carries the per-file counters.
func (imp *Importer) ImportFile(_ context.Context, content, sourceFile string) ([]model.Transaction, model.ImportSummary, error) {
	summary := model.ImportSummary{SourceFile: sourceFile}

	var extracted []model.Transaction
	if statement.IsOFXFile(sourceFile) {
		txns, err := imp.ofx.ParseFile(strings.NewReader(content), sourceFile)
		if err != nil {
			return nil, summary, err
		}
		extracted = txns
	} else {
		res := imp.extractor.Extract(content, sourceFile)
		extracted = res.Transactions
		summary.Errors = res.Errors
	}

	// Sequential fold over rows: the fingerprint set is updated as each row
	// is accepted so the second of two identical rows in one file is caught.
	accepted := make([]model.Transaction, 0, len(extracted))
	for _, txn := range extracted {
		if imp.seen[txn.Fingerprint] {
			summary.Duplicates++
			continue
		}
		imp.seen[txn.Fingerprint] = true

		if pid := imp.propMatch.Match(txn.Description); pid != nil {
			txn.PropertyID = pid
		}
		accepted = append(accepted, txn)
	}

	outcome := imp.engine.ClassifyBatch(accepted)
	summary.Imported = len(accepted)
	summary.AdvancedRuleMatches = outcome.AdvancedRuleMatches
	summary.AutoCategorized = outcome.AutoCategorized

	slog.Info("processed statement file",
		"file", sourceFile,
		"imported", summary.Imported,
		"duplicates", summary.Duplicates,
		"errors", summary.Errors,
		"auto_categorized", summary.AutoCategorized,
		"advanced_rule_matches", summary.AdvancedRuleMatches)

	return accepted, summary, nil
}
