package renderer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksismad/tallycsv/internal/models"
)

func testAccount() models.AccountDetails {
	return models.AccountDetails{
		HolderName:    "John Doe",
		AddressLine1:  "12 High Street",
		AddressLine2:  "Springfield",
		AccountNumber: "1234567890",
		CustomerID:    "C-42",
		BranchName:    "Main Branch",
		StatementFrom: "01-01-2024",
		StatementTo:   "31-01-2024",
	}
}

func TestRenderGolden(t *testing.T) {
	transactions := []models.Transaction{
		{
			Date:        "02-01-2024",
			ChqNo:       "-",
			Particulars: "Coffee",
			Dr:          "50.00",
			Cr:          "",
			Bal:         "1000.00",
			Sol:         "100",
		},
	}

	got, err := New(nil).Render(transactions, testAccount())
	require.NoError(t, err)

	// The importer validates the statement by position, so the layout is
	// frozen byte-for-byte.
	want := strings.Join([]string{
		"ACCOUNT STATEMENT",
		"Name,John Doe",
		"Address,12 High Street,Springfield",
		"Account No,1234567890",
		"Customer ID,C-42",
		"Branch,Main Branch",
		"Period,01-01-2024,31-01-2024",
		"",
		"Date,Chq No,Particulars,Dr,Cr,Bal,Sol",
		"02-01-2024,-,Coffee,50.00,,1000.00,100",
		"",
		"END OF STATEMENT",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestRenderPreservesTransactionOrderAndValues(t *testing.T) {
	transactions := []models.Transaction{
		{Date: "02-01-2024", ChqNo: "-", Particulars: "first", Dr: "1.00", Bal: "99.00", Sol: "100"},
		{Date: "03-01-2024", ChqNo: "000123", Particulars: "second", Cr: "2.00", Bal: "101.00", Sol: "100"},
		{Date: "raw-date", ChqNo: "-", Particulars: "third", Bal: "N/A", Sol: "100"},
	}

	got, err := New(nil).Render(transactions, testAccount())
	require.NoError(t, err)

	lines := strings.Split(got, "\n")
	require.Greater(t, len(lines), 11)

	// Data lines sit directly under the caption row, in input order, with
	// values serialized exactly as the normalizer produced them.
	assert.Equal(t, "Date,Chq No,Particulars,Dr,Cr,Bal,Sol", lines[8])
	assert.Equal(t, "02-01-2024,-,first,1.00,,99.00,100", lines[9])
	assert.Equal(t, "03-01-2024,000123,second,,2.00,101.00,100", lines[10])
	assert.Equal(t, "raw-date,-,third,,,N/A,100", lines[11])
}

func TestRenderQuotesDelimiterInDescriptions(t *testing.T) {
	transactions := []models.Transaction{
		{Date: "02-01-2024", ChqNo: "-", Particulars: "Transfer, savings", Cr: "10.00", Bal: "10.00", Sol: "100"},
	}

	got, err := New(nil).Render(transactions, testAccount())
	require.NoError(t, err)
	assert.Contains(t, got, `02-01-2024,-,"Transfer, savings",10.00,,10.00,100`)
}

func TestRenderEmptyTransactionList(t *testing.T) {
	got, err := New(nil).Render(nil, testAccount())
	require.NoError(t, err)

	assert.Contains(t, got, "Date,Chq No,Particulars,Dr,Cr,Bal,Sol")
	assert.Contains(t, got, "END OF STATEMENT")
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "1234567890_statement.csv", FileName(testAccount()))
	assert.Equal(t, "statement.csv", FileName(models.AccountDetails{}))
}

func TestWriteStatement(t *testing.T) {
	dir := t.TempDir()
	transactions := []models.Transaction{
		{Date: "02-01-2024", ChqNo: "-", Particulars: "Coffee", Dr: "50.00", Bal: "1000.00", Sol: "100"},
	}

	path, err := New(nil).WriteStatement(transactions, testAccount(), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "1234567890_statement.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "02-01-2024,-,Coffee,50.00,,1000.00,100")
}
