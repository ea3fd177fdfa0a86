package ingest

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/verocta-ai/spendscore/internal/common"
	"github.com/verocta-ai/spendscore/internal/model"
)

// OFXReader parses OFX/QFX statement downloads.
type OFXReader struct{}

// NewOFXReader creates a new OFX reader.
func NewOFXReader() *OFXReader {
	return &OFXReader{}
}

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	openTagRegex  = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// preprocessOFX fixes common formatting issues in bank-produced OFX files:
// leading whitespace before the header, mixed-case SEVERITY values, and
// SGML-style opening tags missing their closing bracket.
func preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	content = openTagRegex.ReplaceAllString(content, "$1>")

	return content
}

// Read parses OFX/QFX content into raw records. Bank and credit card
// statements are both consumed; a statement that fails to convert is logged
// and skipped rather than failing the whole file.
func (r *OFXReader) Read(reader io.Reader) ([]model.RawRecord, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var records []model.RawRecord
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankTranList != nil {
			bankStmts++
			for _, tx := range stmt.BankTranList.Transactions {
				records = append(records, convertOFXTransaction(tx))
			}
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.BankTranList != nil {
			ccStmts++
			for _, tx := range stmt.BankTranList.Transactions {
				records = append(records, convertOFXTransaction(tx))
			}
		}
	}

	if len(records) == 0 {
		return nil, common.ErrEmptyFile
	}

	slog.Debug("parsed OFX file",
		"records", len(records),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return records, nil
}

// convertOFXTransaction maps one OFX transaction to a raw record. Amounts
// are flipped to positive spend figures (OFX reports debits as negative).
func convertOFXTransaction(tx ofxgo.Transaction) model.RawRecord {
	amount, _ := tx.TrnAmt.Float64()
	if amount < 0 {
		amount = -amount
	}

	vendor := strings.TrimSpace(string(tx.Name))
	if tx.Payee != nil && tx.Payee.Name != "" {
		vendor = strings.TrimSpace(string(tx.Payee.Name))
	}

	description := strings.TrimSpace(string(tx.Memo))
	if description == "" {
		description = strings.TrimSpace(string(tx.Name))
	}

	return model.RawRecord{
		"amount":      amount,
		"date":        tx.DtPosted.Time,
		"vendor":      vendor,
		"description": description,
	}
}
