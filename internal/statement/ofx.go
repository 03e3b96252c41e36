package statement

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/davidlpuk/property-ledger-sub000/internal/model"
	"github.com/shopspring/decimal"
)

// OFXParser converts OFX/QFX bank exports into the same transaction shape
// the text extractor produces, so the rest of the pipeline treats both
// formats uniformly.
type OFXParser struct{}

// NewOFXParser creates a new OFX parser.
func NewOFXParser() *OFXParser {
	return &OFXParser{}
}

var (
	severityFix = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	openTagFix  = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// preprocess fixes common formatting issues in bank-produced OFX files:
// leading whitespace before the header, mixed-case SEVERITY values and
// SGML-style tags missing their closing bracket.
func (p *OFXParser) preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityFix.ReplaceAllStringFunc(content, strings.ToUpper)
	content = openTagFix.ReplaceAllString(content, "$1>")
	return content
}

// ParseFile parses an OFX/QFX file into transactions tagged with sourceFile.
func (p *OFXParser) ParseFile(reader io.Reader, sourceFile string) ([]model.Transaction, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var transactions []model.Transaction

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		for _, ofxTx := range stmt.BankTranList.Transactions {
			transactions = append(transactions, p.convert(ofxTx, sourceFile))
		}
	}

	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		for _, ofxTx := range stmt.BankTranList.Transactions {
			transactions = append(transactions, p.convert(ofxTx, sourceFile))
		}
	}

	slog.Info("parsed OFX file",
		"file", sourceFile,
		"transactions", len(transactions))

	return transactions, nil
}

// convert maps one OFX transaction into the pipeline's model. OFX uses
// negative amounts for debits, matching the structured-mode convention.
func (p *OFXParser) convert(ofxTx ofxgo.Transaction, sourceFile string) model.Transaction {
	name := string(ofxTx.Name)
	if ofxTx.Payee != nil && ofxTx.Payee.Name != "" {
		name = string(ofxTx.Payee.Name)
	}
	name = strings.TrimSpace(name)

	amount := decimal.NewFromBigRat(&ofxTx.TrnAmt.Rat, 2)

	kind := model.KindIncome
	if amount.IsNegative() {
		kind = model.KindExpense
	}

	posted := ofxTx.DtPosted.Time
	date := time.Date(posted.Year(), posted.Month(), posted.Day(), 0, 0, 0, 0, time.UTC)

	txn := model.Transaction{
		Date:             date,
		Description:      name,
		DescriptionClean: NormalizeVendor(name),
		Amount:           amount.Abs(),
		Kind:             kind,
		SourceFile:       sourceFile,
	}
	txn.Fingerprint = txn.GenerateFingerprint()
	return txn
}

// IsOFXFile reports whether a file name looks like an OFX/QFX export.
func IsOFXFile(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".ofx") || strings.HasSuffix(lower, ".qfx")
}
