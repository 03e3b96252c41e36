package statement

import (
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/davidlpuk/property-ledger-sub000/internal/model"
	"github.com/shopspring/decimal"
)

// Options control row extraction.
type Options struct {
	// StrictDates skips rows whose date format is unrecognized instead of
	// defaulting to the current day, and counts them as errors.
	StrictDates bool
}

// Result carries the extracted transactions and per-file counts. Skipped
// rows are unparseable lines; Errors is only populated in strict mode.
type Result struct {
	Transactions []model.Transaction
	Skipped      int
	Errors       int
}

// Extractor turns raw statement text into parsed transactions. The mode is
// chosen once per file: structured when the first line is a recognizable
// header, a heuristic line scanner otherwise.
type Extractor struct {
	opts Options
}

// NewExtractor creates an extractor with the given options.
func NewExtractor(opts Options) *Extractor {
	return &Extractor{opts: opts}
}

// Header synonyms recognized case-insensitively, English and Spanish.
var (
	dateHeaders = []string{
		"date", "transaction date", "value date", "posting date",
		"fecha", "fecha valor", "fecha operacion", "fecha operación", "f. valor",
	}
	descriptionHeaders = []string{
		"description", "details", "memo", "narrative", "reference",
		"concepto", "descripcion", "descripción", "detalle",
	}
	amountHeaders = []string{
		"amount", "value", "importe", "cantidad", "valor", "monto",
	}
)

// columnMap records where the three required columns live in a structured
// file, and which delimiter tokenizes it.
type columnMap struct {
	date        int
	description int
	amount      int
	delimiter   rune
}

// Extract parses one file's content. sourceFile is the uploaded file name
// and is carried on every transaction for provider-scoped rule matching.
func (e *Extractor) Extract(content, sourceFile string) Result {
	lines := splitLines(content)

	var header string
	var body []string
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			header = line
			body = lines[i+1:]
			break
		}
	}
	if header == "" {
		return Result{}
	}

	if cm, ok := detectHeader(header); ok {
		slog.Debug("detected structured statement",
			"file", sourceFile,
			"delimiter", string(cm.delimiter))
		return e.extractStructured(body, cm, sourceFile)
	}

	slog.Debug("no recognizable header, using fallback extractor", "file", sourceFile)
	return e.extractFallback(lines, sourceFile)
}

func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	return strings.Split(content, "\n")
}

// detectHeader tokenizes the first line and maps column positions for
// date, description and amount. All three must be found.
func detectHeader(line string) (columnMap, bool) {
	delim, ok := detectDelimiter(line)
	if !ok {
		return columnMap{}, false
	}

	cm := columnMap{date: -1, description: -1, amount: -1, delimiter: delim}
	for i, field := range splitDelimited(line, delim) {
		name := strings.ToLower(strings.TrimSpace(strings.Trim(strings.TrimSpace(field), `"`)))
		name = strings.TrimPrefix(name, "\ufeff")
		switch {
		case cm.date < 0 && containsHeader(dateHeaders, name):
			cm.date = i
		case cm.description < 0 && containsHeader(descriptionHeaders, name):
			cm.description = i
		case cm.amount < 0 && containsHeader(amountHeaders, name):
			cm.amount = i
		}
	}

	if cm.date < 0 || cm.description < 0 || cm.amount < 0 {
		return columnMap{}, false
	}
	return cm, true
}

func containsHeader(synonyms []string, name string) bool {
	for _, s := range synonyms {
		if name == s {
			return true
		}
	}
	return false
}

// detectDelimiter picks the delimiter occurring most often in the header
// line, counting only outside quoted sections.
func detectDelimiter(line string) (rune, bool) {
	counts := map[rune]int{',': 0, ';': 0, '\t': 0}
	inQuotes := false
	for _, r := range line {
		if r == '"' {
			inQuotes = !inQuotes
			continue
		}
		if inQuotes {
			continue
		}
		if _, ok := counts[r]; ok {
			counts[r]++
		}
	}

	best := rune(0)
	bestCount := 0
	for _, r := range []rune{',', ';', '\t'} {
		if counts[r] > bestCount {
			best = r
			bestCount = counts[r]
		}
	}
	if bestCount == 0 {
		return 0, false
	}
	return best, true
}

// splitDelimited tokenizes a line on the delimiter, keeping quoted fields
// intact: embedded delimiters inside quotes are not split, and the quoted
// content is preserved verbatim.
func splitDelimited(line string, delim rune) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == delim && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	fields = append(fields, cur.String())
	return fields
}

// extractStructured pulls the three mapped columns out of every body line.
// Rows with too few fields, an empty description or no parseable non-zero
// amount are skipped.
func (e *Extractor) extractStructured(lines []string, cm columnMap, sourceFile string) Result {
	var res Result

	maxIdx := cm.date
	if cm.description > maxIdx {
		maxIdx = cm.description
	}
	if cm.amount > maxIdx {
		maxIdx = cm.amount
	}

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := splitDelimited(line, cm.delimiter)
		if len(fields) <= maxIdx {
			res.Skipped++
			continue
		}

		amount := ParseAmount(fields[cm.amount])
		if amount.IsZero() {
			res.Skipped++
			continue
		}

		desc := strings.TrimSpace(fields[cm.description])
		if desc == "" {
			res.Skipped++
			continue
		}

		date, ok := ParseDateStrict(fields[cm.date])
		if !ok {
			if e.opts.StrictDates {
				res.Errors++
				continue
			}
			date = Today()
		}

		// Structured convention: negative amounts are expenses.
		kind := model.KindIncome
		if amount.IsNegative() {
			kind = model.KindExpense
		}

		res.Transactions = append(res.Transactions, newTransaction(date, desc, amount, kind, sourceFile))
	}

	return res
}

var (
	fallbackDate  = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)
	spanishAmount = regexp.MustCompile(`-?\d+(?:\.\d{3})*,\d+(?:\s*EUR)?`)
	numericToken  = regexp.MustCompile(`-?\d+(?:[.,]\d+)?`)
	trailingNums  = regexp.MustCompile(`(?:\s+-?\d+(?:[.,]\d+)?)+\s*$`)
)

// extractFallback scans each line for a DD/MM/YYYY date and an amount.
// Lines without a date are skipped. When no Spanish-format amount is
// present, the second-to-last numeric substring with magnitude above one is
// taken instead, since many statement lines repeat a running balance after
// the transaction amount.
func (e *Extractor) extractFallback(lines []string, sourceFile string) Result {
	var res Result

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		dateLoc := fallbackDate.FindStringIndex(line)
		if dateLoc == nil {
			res.Skipped++
			continue
		}

		date, err := time.Parse(layoutSlash, line[dateLoc[0]:dateLoc[1]])
		if err != nil {
			res.Skipped++
			continue
		}

		rest := line[dateLoc[1]:]
		amount, amountStart, ok := findFallbackAmount(rest)
		if !ok || amount.IsZero() {
			res.Skipped++
			continue
		}

		desc := rest[:amountStart]
		desc = spanishAmount.ReplaceAllString(desc, " ")
		desc = trailingNums.ReplaceAllString(desc, "")
		desc = strings.TrimSpace(spaceRun.ReplaceAllString(desc, " "))
		if desc == "" {
			res.Skipped++
			continue
		}

		// This statement format writes charges as positive numbers, so the
		// polarity is the inverse of the structured convention.
		kind := model.KindIncome
		if amount.IsPositive() {
			kind = model.KindExpense
		}

		res.Transactions = append(res.Transactions, newTransaction(date, desc, amount, kind, sourceFile))
	}

	return res
}

// findFallbackAmount locates the transaction amount in the text following
// the date. It returns the parsed value and the byte offset where the
// amount text begins.
func findFallbackAmount(rest string) (decimal.Decimal, int, bool) {
	if loc := spanishAmount.FindStringIndex(rest); loc != nil {
		return ParseAmount(rest[loc[0]:loc[1]]), loc[0], true
	}

	type candidate struct {
		value decimal.Decimal
		start int
	}
	var candidates []candidate
	for _, loc := range numericToken.FindAllStringIndex(rest, -1) {
		tok := strings.ReplaceAll(rest[loc[0]:loc[1]], ",", ".")
		d, err := decimal.NewFromString(tok)
		if err != nil {
			continue
		}
		if d.Abs().LessThanOrEqual(decimal.New(1, 0)) {
			continue
		}
		candidates = append(candidates, candidate{value: d, start: loc[0]})
	}

	switch len(candidates) {
	case 0:
		return decimal.Zero, 0, false
	case 1:
		c := candidates[0]
		return c.value, c.start, true
	default:
		// Second-to-last candidate: the last is usually the running balance.
		c := candidates[len(candidates)-2]
		return c.value, c.start, true
	}
}

// newTransaction builds a fingerprinted transaction with the amount stored
// as a non-negative magnitude.
func newTransaction(date time.Time, desc string, amount decimal.Decimal, kind model.TransactionKind, sourceFile string) model.Transaction {
	txn := model.Transaction{
		Date:             date,
		Description:      desc,
		DescriptionClean: NormalizeVendor(desc),
		Amount:           amount.Abs(),
		Kind:             kind,
		SourceFile:       sourceFile,
	}
	txn.Fingerprint = txn.GenerateFingerprint()
	return txn
}
