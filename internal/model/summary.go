package model

// ImportSummary reports what happened to one imported statement file.
// All counts are derived per run and not stored.
type ImportSummary struct {
	SourceFile          string
	Imported            int
	Duplicates          int
	Errors              int
	AutoCategorized     int
	AdvancedRuleMatches int
}
