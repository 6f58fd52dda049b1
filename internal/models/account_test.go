package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAccountDetails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "account.yaml")
	content := `holder_name: John Doe
address_line_1: 12 High Street
address_line_2: Springfield
account_number: "1234567890"
customer_id: C-42
branch_name: Main Branch
statement_from: 01-01-2024
statement_to: 31-01-2024
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	account, err := LoadAccountDetails(path)
	require.NoError(t, err)

	assert.Equal(t, "John Doe", account.HolderName)
	assert.Equal(t, "12 High Street", account.AddressLine1)
	assert.Equal(t, "1234567890", account.AccountNumber)
	assert.Equal(t, "C-42", account.CustomerID)
	assert.Equal(t, "31-01-2024", account.StatementTo)
}

func TestLoadAccountDetailsErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadAccountDetails(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("holder_name: [unterminated"), 0644))
	_, err = LoadAccountDetails(bad)
	assert.Error(t, err)
}

func TestTransactionDirectionHelpers(t *testing.T) {
	debit := Transaction{Dr: "50.00"}
	assert.True(t, debit.IsDebit())
	assert.False(t, debit.IsCredit())

	credit := Transaction{Cr: "25.00"}
	assert.False(t, credit.IsDebit())
	assert.True(t, credit.IsCredit())
}
