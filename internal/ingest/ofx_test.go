package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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
<MEMO>monthly groceries
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

func TestOFXReader_Read(t *testing.T) {
	tests := []struct {
		name          string
		ofxData       string
		expectedCount int
		expectedError bool
	}{
		{
			name:          "valid bank statement",
			ofxData:       sampleBankOFX,
			expectedCount: 2,
			expectedError: false,
		},
		{
			name:          "valid credit card statement",
			ofxData:       sampleCreditCardOFX,
			expectedCount: 1,
			expectedError: false,
		},
		{
			name:          "invalid OFX data",
			ofxData:       "not valid OFX",
			expectedError: true,
		},
		{
			name:          "empty OFX",
			ofxData:       "",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := NewOFXReader().Read(strings.NewReader(tt.ofxData))

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Len(t, records, tt.expectedCount)
			}
		})
	}
}

func TestOFXReader_ConvertedFields(t *testing.T) {
	records, err := NewOFXReader().Read(strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, records, 2)

	// First transaction: debit flipped positive, name fills both vendor and
	// description when there is no memo.
	assert.Equal(t, 25.50, records[0]["amount"])
	assert.Equal(t, "STARBUCKS STORE #1234", records[0]["vendor"])
	assert.Equal(t, "STARBUCKS STORE #1234", records[0]["description"])

	date, ok := records[0]["date"].(time.Time)
	require.True(t, ok)
	assert.Equal(t, 2024, date.Year())
	assert.Equal(t, time.January, date.Month())
	assert.Equal(t, 15, date.Day())

	// Second transaction carries a memo, which wins as description.
	assert.Equal(t, 125.00, records[1]["amount"])
	assert.Equal(t, "Whole Foods Market", records[1]["vendor"])
	assert.Equal(t, "monthly groceries", records[1]["description"])
}

func TestPreprocessOFX(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "leading whitespace trimmed",
			input: "\n\t  OFXHEADER:100",
			want:  "OFXHEADER:100",
		},
		{
			name:  "mixed-case severity uppercased",
			input: "<SEVERITY>Info</SEVERITY>",
			want:  "<SEVERITY>INFO</SEVERITY>",
		},
		{
			name:  "unclosed opening tag repaired",
			input: "<OFX>\n  <BANKMSGSRSV1\n</OFX>",
			want:  "<OFX>\n  <BANKMSGSRSV1>\n</OFX>",
		},
		{
			name:  "well-formed content unchanged",
			input: "<OFX>\n<STMTTRN>\n<TRNAMT>-25.50\n</STMTTRN>\n</OFX>",
			want:  "<OFX>\n<STMTTRN>\n<TRNAMT>-25.50\n</STMTTRN>\n</OFX>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, preprocessOFX(tt.input))
		})
	}
}

func ofxAmount(t *testing.T, value string) ofxgo.Amount {
	t.Helper()
	var a ofxgo.Amount
	_, ok := a.SetString(value)
	require.True(t, ok, "bad amount fixture %q", value)
	return a
}

func TestConvertOFXTransaction(t *testing.T) {
	posted := ofxgo.Date{Time: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)}

	t.Run("negative amount flipped positive", func(t *testing.T) {
		rec := convertOFXTransaction(ofxgo.Transaction{
			TrnAmt:   ofxAmount(t, "-25.50"),
			DtPosted: posted,
			Name:     ofxgo.String("STARBUCKS"),
		})

		assert.Equal(t, 25.50, rec["amount"])
		assert.Equal(t, "STARBUCKS", rec["vendor"])
	})

	t.Run("positive amount kept", func(t *testing.T) {
		rec := convertOFXTransaction(ofxgo.Transaction{
			TrnAmt:   ofxAmount(t, "100.00"),
			DtPosted: posted,
			Name:     ofxgo.String("REFUND"),
		})

		assert.Equal(t, 100.00, rec["amount"])
	})

	t.Run("payee name wins over name", func(t *testing.T) {
		rec := convertOFXTransaction(ofxgo.Transaction{
			TrnAmt:   ofxAmount(t, "-10.00"),
			DtPosted: posted,
			Name:     ofxgo.String("POS PURCHASE"),
			Payee:    &ofxgo.Payee{Name: ofxgo.String("Whole Foods Market")},
		})

		assert.Equal(t, "Whole Foods Market", rec["vendor"])
	})

	t.Run("memo preferred as description", func(t *testing.T) {
		rec := convertOFXTransaction(ofxgo.Transaction{
			TrnAmt:   ofxAmount(t, "-10.00"),
			DtPosted: posted,
			Name:     ofxgo.String("ACH DEBIT"),
			Memo:     ofxgo.String("monthly software subscription"),
		})

		assert.Equal(t, "monthly software subscription", rec["description"])
	})

	t.Run("name fallback when memo empty", func(t *testing.T) {
		rec := convertOFXTransaction(ofxgo.Transaction{
			TrnAmt:   ofxAmount(t, "-10.00"),
			DtPosted: posted,
			Name:     ofxgo.String("  NETFLIX.COM  "),
		})

		assert.Equal(t, "NETFLIX.COM", rec["description"])
	})
}
