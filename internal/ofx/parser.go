// Package ofx turns OFX/QFX bank and card statements into raw payment
// sheets, one sheet per account.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/Veraticus/workshop-payments/internal/model"
)

// Column labels written for each statement transaction. They are chosen
// to match the payee, reason and amount aliases of the normalizer.
const (
	LabelDate        = "Date"
	LabelPaidTo      = "Paid To"
	LabelDescription = "Description"
	LabelAmount      = "Amount"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be upper case.
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// SGML files sometimes drop the closing bracket of a bare opening tag.
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// ParseFile parses an OFX/QFX statement. Each bank or card account becomes
// a sheet whose records carry Date, Paid To, Description and Amount.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) (model.RawWorkbook, error) {
	wb := model.NewRawWorkbook()

	content, err := io.ReadAll(reader)
	if err != nil {
		return wb, fmt.Errorf("failed to read OFX file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return wb, err
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return wb, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		bankStmts++
		name := sheetName(fmt.Sprintf("%v", stmt.BankAcctFrom.AcctType), string(stmt.BankAcctFrom.AcctID))
		wb.AddSheet(name, p.records(stmt.BankTranList.Transactions))
	}

	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		ccStmts++
		name := sheetName("Card", string(stmt.CCAcctFrom.AcctID))
		wb.AddSheet(name, p.records(stmt.BankTranList.Transactions))
	}

	slog.Info("Parsed OFX file",
		"sheets", len(wb.Names),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return wb, nil
}

func (p *Parser) records(txns []ofxgo.Transaction) []model.Record {
	records := make([]model.Record, 0, len(txns))
	for _, tx := range txns {
		records = append(records, p.convertTransaction(tx))
	}
	return records
}

// convertTransaction converts an OFX transaction to a raw record. Amounts
// are recorded as positive payments.
func (p *Parser) convertTransaction(tx ofxgo.Transaction) model.Record {
	amount, _ := tx.TrnAmt.Float64()
	if amount < 0 {
		amount = -amount
	}

	return model.Record{
		{Label: LabelDate, Value: model.Text(tx.DtPosted.Format("2006-01-02"))},
		{Label: LabelPaidTo, Value: model.Text(p.extractMerchantName(tx))},
		{Label: LabelDescription, Value: model.Text(describe(tx))},
		{Label: LabelAmount, Value: model.Number(amount)},
	}
}

func describe(tx ofxgo.Transaction) string {
	if memo := strings.TrimSpace(string(tx.Memo)); memo != "" {
		return memo
	}
	if tx.CheckNum != "" {
		return "Check #" + string(tx.CheckNum)
	}
	return strings.ToLower(fmt.Sprintf("%v", tx.TrnType))
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func (p *Parser) extractMerchantName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := string(tx.Name)

	// MEMO sometimes has better merchant info than a generic NAME.
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}

	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}

	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Drop a leading "MM/DD " date.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

// isGenericDescription checks if a transaction name is too generic.
func isGenericDescription(name string) bool {
	generic := []string{
		"DEBIT",
		"CREDIT",
		"PURCHASE",
		"PAYMENT",
		"POS TRANSACTION",
		"CARD PURCHASE",
	}

	upperName := strings.ToUpper(name)
	for _, g := range generic {
		if upperName == g {
			return true
		}
	}
	return false
}

// sheetName labels an account sheet by kind and the last four digits.
func sheetName(kind, accountID string) string {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		kind = "Account"
	} else {
		kind = strings.ToUpper(kind[:1]) + strings.ToLower(kind[1:])
	}
	if len(accountID) > 4 {
		accountID = accountID[len(accountID)-4:]
	}
	if accountID == "" {
		return kind
	}
	return kind + " " + accountID
}
