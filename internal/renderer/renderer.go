// Package renderer serializes canonical transaction records and account
// metadata into the fixed statement schema expected by the downstream
// importer. It is a pure serializer: field values arrive fully formatted from
// the normalizer and are written as-is, because the importer validates the
// statement by position, not by name.
package renderer

import (
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/ksismad/tallycsv/internal/common"
	"github.com/ksismad/tallycsv/internal/fileutils"
	"github.com/ksismad/tallycsv/internal/logging"
	"github.com/ksismad/tallycsv/internal/models"
)

const (
	statementTitle   = "ACCOUNT STATEMENT"
	statementTrailer = "END OF STATEMENT"
)

// Renderer assembles statement documents.
type Renderer struct {
	logger logging.Logger
}

// New creates a Renderer. A nil logger falls back to the default.
func New(logger logging.Logger) *Renderer {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Renderer{logger: logger}
}

// Render produces the statement text: the account metadata header block, the
// captioned transaction table with fields in the fixed order
// Date, Chq No, Particulars, Dr, Cr, Bal, Sol, and the fixed trailer. The
// output uses the same delimiter conventions as the input side.
func (r *Renderer) Render(transactions []models.Transaction, account models.AccountDetails) (string, error) {
	var sb strings.Builder

	writer := csv.NewWriter(&sb)
	writer.Comma = common.Delimiter

	header := [][]string{
		{statementTitle},
		{"Name", account.HolderName},
		{"Address", account.AddressLine1, account.AddressLine2},
		{"Account No", account.AccountNumber},
		{"Customer ID", account.CustomerID},
		{"Branch", account.BranchName},
		{"Period", account.StatementFrom, account.StatementTo},
		{""},
	}
	for _, line := range header {
		if err := writer.Write(line); err != nil {
			return "", fmt.Errorf("error writing statement header: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error writing statement header: %w", err)
	}

	// The table caption row and data lines come straight from the
	// Transaction csv tags, so the column order is fixed in one place.
	if err := gocsv.MarshalCSV(&transactions, gocsv.NewSafeCSVWriter(writer)); err != nil {
		return "", fmt.Errorf("error writing transaction lines: %w", err)
	}

	for _, line := range [][]string{{""}, {statementTrailer}} {
		if err := writer.Write(line); err != nil {
			return "", fmt.Errorf("error writing statement trailer: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error writing statement trailer: %w", err)
	}

	r.logger.Info("Rendered statement",
		logging.Field{Key: "transactions", Value: len(transactions)},
		logging.Field{Key: "account", Value: account.AccountNumber})
	return sb.String(), nil
}

// FileName returns the statement file name for an account, embedding the
// account number per the importer's naming convention.
func FileName(account models.AccountDetails) string {
	if account.AccountNumber == "" {
		return "statement.csv"
	}
	return fmt.Sprintf("%s_statement.csv", account.AccountNumber)
}

// WriteStatement renders the statement and writes it under outputDir using
// the account-number file naming convention. It returns the path written.
func (r *Renderer) WriteStatement(transactions []models.Transaction, account models.AccountDetails, outputDir string) (string, error) {
	content, err := r.Render(transactions, account)
	if err != nil {
		return "", err
	}

	path := FileName(account)
	if outputDir != "" {
		path = filepath.Join(outputDir, path)
	}
	if err := fileutils.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("error writing statement file: %w", err)
	}

	r.logger.Info("Wrote statement file", logging.Field{Key: "file", Value: path})
	return path, nil
}
