package ofx

import (
	"context"
	"strings"
	"testing"

	"github.com/aclindsa/ofxgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/workshop-payments/internal/model"
	"github.com/Veraticus/workshop-payments/internal/normalize"
)

// Sample OFX data for testing.
const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2024011501
<NAME>STARBUCKS STORE #1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>-125.00
<FITID>2024012001
<NAME>Whole Foods Market
</STMTTRN>
<STMTTRN>
<TRNTYPE>CHECK
<DTPOSTED>20240125120000[0:GMT]
<TRNAMT>-500.00
<FITID>2024012501
<CHECKNUM>1234
<NAME>CHECK #1234
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

const sampleCreditCardOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>USD
<CCACCTFROM>
<ACCTID>4111111111111111
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240110120000[0:GMT]
<TRNAMT>-45.99
<FITID>CC2024011001
<NAME>AMAZON.COM*RT4Y7HG2
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-15.00
<FITID>CC2024011501
<NAME>NETFLIX.COM
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>-500.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func TestParseFile_Bank(t *testing.T) {
	wb, err := NewParser().ParseFile(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)

	require.Equal(t, []string{"Checking 7890"}, wb.Names)
	records := wb.Tables["Checking 7890"]
	require.Len(t, records, 3)

	assert.Equal(t, model.Record{
		{Label: LabelDate, Value: model.Text("2024-01-15")},
		{Label: LabelPaidTo, Value: model.Text("STARBUCKS STORE #1234")},
		{Label: LabelDescription, Value: model.Text("debit")},
		{Label: LabelAmount, Value: model.Number(25.5)},
	}, records[0])

	rows := normalize.Rows(records)
	assert.Equal(t, []model.Row{
		{Who: "STARBUCKS STORE #1234", Why: "debit", Amount: 25.5},
		{Who: "Whole Foods Market", Why: "debit", Amount: 125},
		{Who: "CHECK #1234", Why: "Check #1234", Amount: 500},
	}, rows)
}

func TestParseFile_CreditCard(t *testing.T) {
	wb, err := NewParser().ParseFile(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)

	require.Equal(t, []string{"Card 1111"}, wb.Names)
	rows := normalize.Rows(wb.Tables["Card 1111"])
	require.Len(t, rows, 2)
	assert.Equal(t, "AMAZON.COM*RT4Y7HG2", rows[0].Who)
	assert.InDelta(t, 45.99, rows[0].Amount, 1e-9)
	assert.Equal(t, "NETFLIX.COM", rows[1].Who)
}

func TestParseFile_Invalid(t *testing.T) {
	_, err := NewParser().ParseFile(context.Background(), strings.NewReader("not an ofx file"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse OFX file")
}

func TestParseFile_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewParser().ParseFile(ctx, strings.NewReader(sampleBankOFX))
	require.ErrorIs(t, err, context.Canceled)
}

func TestPreprocessOFX(t *testing.T) {
	p := NewParser()

	out := p.preprocessOFX("\n\n<SEVERITY>Info</SEVERITY>\n<CODE\n")
	assert.Equal(t, "<SEVERITY>INFO</SEVERITY>\n<CODE>\n", out)
}

func TestExtractMerchantName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		memo string
		want string
	}{
		{name: "plain", in: "Whole Foods", want: "Whole Foods"},
		{name: "pos prefix", in: "POS PURCHASE COFFEE BAR", want: "COFFEE BAR"},
		{name: "leading date", in: "01/15 HARDWARE STORE", want: "HARDWARE STORE"},
		{name: "generic with memo", in: "DEBIT", memo: "LOCAL BAKERY", want: "LOCAL BAKERY"},
	}

	p := NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := ofxTransaction(tt.in, tt.memo)
			assert.Equal(t, tt.want, p.extractMerchantName(tx))
		})
	}
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Checking 7890", sheetName("CHECKING", "1234567890"))
	assert.Equal(t, "Card 12", sheetName("Card", "12"))
	assert.Equal(t, "Account", sheetName("", ""))
}

func ofxTransaction(name, memo string) ofxgo.Transaction {
	return ofxgo.Transaction{
		Name: ofxgo.String(name),
		Memo: ofxgo.String(memo),
	}
}
