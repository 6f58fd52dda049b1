// Package normalizer turns raw export rows into canonical transaction
// records according to a mapping descriptor. This is the data-integrity core
// of the converter: every cell access is defensive, every parse is fallible,
// and a bad row never aborts the batch.
package normalizer

import (
	"fmt"
	"strings"

	"github.com/ksismad/tallycsv/internal/amountutils"
	"github.com/ksismad/tallycsv/internal/dateutils"
	"github.com/ksismad/tallycsv/internal/logging"
	"github.com/ksismad/tallycsv/internal/models"
	"github.com/ksismad/tallycsv/internal/parsererror"
)

// debitIndicators are the type-cell values that route a single-column amount
// to the debit side. Matching is case-insensitive after trimming.
var debitIndicators = map[string]bool{
	"DR":         true,
	"DEBIT":      true,
	"WITHDRAWAL": true,
}

// parseAmount is a seam over amountutils.Parse so tests can fault a cell
// parse and exercise the row-level recovery.
var parseAmount = amountutils.Parse

// Normalizer converts raw rows into canonical Transaction records.
type Normalizer struct {
	logger logging.Logger
}

// New creates a Normalizer. A nil logger falls back to the default.
func New(logger logging.Logger) *Normalizer {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Normalizer{logger: logger}
}

// Normalize processes every row after mapping.HeaderRowIndex in input order
// and returns the canonical records. Blank rows and rows without a date are
// skipped; rows whose date or balance fail to parse keep the raw text in that
// field. Output order always equals filtered input order, and running twice
// on the same input yields identical output.
func (n *Normalizer) Normalize(rows [][]string, mapping models.MappingDescriptor) []models.Transaction {
	transactions := make([]models.Transaction, 0, len(rows))

	start := mapping.HeaderRowIndex + 1
	if start < 0 {
		start = 0
	}

	for i := start; i < len(rows); i++ {
		tx, ok := n.normalizeRow(i, rows[i], mapping)
		if ok {
			transactions = append(transactions, tx)
		}
	}

	n.logger.Info("Normalized export rows",
		logging.Field{Key: "rows", Value: len(rows)},
		logging.Field{Key: "transactions", Value: len(transactions)})
	return transactions
}

// normalizeRow converts a single row. Any panic while extracting fields is
// contained here so one malformed row cannot take down the conversion.
func (n *Normalizer) normalizeRow(index int, row []string, mapping models.MappingDescriptor) (tx models.Transaction, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			rowErr := &parsererror.RowError{Index: index, Row: row, Err: fmt.Errorf("%v", r)}
			n.logger.WithError(rowErr).Warn("Unexpected failure while processing row, skipping",
				logging.Field{Key: "row", Value: index})
			tx, ok = models.Transaction{}, false
		}
	}()

	if isBlankRow(row) {
		return models.Transaction{}, false
	}

	rawDate := strings.TrimSpace(cellAt(row, mapping.DateColumnIndex))
	if rawDate == "" {
		n.logger.Debug("Skipping row without a date", logging.Field{Key: "row", Value: index})
		return models.Transaction{}, false
	}

	tx = models.Transaction{
		Date:        n.normalizeDate(index, rawDate, mapping.DateFormat),
		ChqNo:       chequeNo(row, mapping.ChequeNoColumnIndex),
		Particulars: strings.TrimSpace(cellAt(row, mapping.DescriptionColumnIndex)),
		Bal:         n.normalizeBalance(index, row, mapping.BalanceColumnIndex),
		Sol:         models.SolID,
	}

	if mapping.IsSingleAmountColumn {
		tx.Dr, tx.Cr = n.singleAmount(index, row, mapping)
	} else {
		tx.Dr = n.positiveAmount(index, row, mapping.DebitColumnIndex)
		tx.Cr = n.positiveAmount(index, row, mapping.CreditColumnIndex)
	}

	return tx, true
}

// normalizeDate reformats a parseable date to the canonical day-month-year
// form and keeps the raw text verbatim otherwise. An unparsable date is a
// diagnostic, not a reason to drop the row.
func (n *Normalizer) normalizeDate(index int, rawDate, pattern string) string {
	parsed, err := dateutils.ParseWithPattern(rawDate, pattern)
	if err != nil {
		n.logger.WithError(err).Warn("Unparsable date, keeping raw text",
			logging.Field{Key: "row", Value: index},
			logging.Field{Key: "date", Value: rawDate})
		return rawDate
	}
	return dateutils.ToCanonical(parsed)
}

// normalizeBalance reformats a parseable balance to fixed two decimals and
// keeps the raw trimmed text otherwise.
func (n *Normalizer) normalizeBalance(index int, row []string, balanceIdx int) string {
	if balanceIdx < 0 {
		return ""
	}
	raw := strings.TrimSpace(cellAt(row, balanceIdx))
	if raw == "" {
		return ""
	}

	amount, err := parseAmount(raw)
	if err != nil {
		n.logger.WithError(err).Warn("Unparsable balance, keeping raw text",
			logging.Field{Key: "row", Value: index},
			logging.Field{Key: "balance", Value: raw})
		return raw
	}
	return amountutils.FormatFixed(amount)
}

// positiveAmount implements the dual-column policy for one side: the value
// is emitted only when it parses and is strictly greater than zero. Zero and
// blank cells stay empty; "0.00" is never fabricated.
func (n *Normalizer) positiveAmount(index int, row []string, colIdx int) string {
	if colIdx < 0 {
		return ""
	}
	raw := strings.TrimSpace(cellAt(row, colIdx))
	if raw == "" {
		return ""
	}

	amount, err := parseAmount(raw)
	if err != nil {
		n.logger.WithError(err).Debug("Unparsable amount cell, leaving side empty",
			logging.Field{Key: "row", Value: index})
		return ""
	}
	if !amountutils.IsPositive(amount) {
		return ""
	}
	return amountutils.FormatFixed(amount)
}

// singleAmount implements the single-column policy: the one amount cell is
// routed to debit or credit by the type cell when a type column exists, and
// by sign otherwise. The emitted value is always the absolute amount.
func (n *Normalizer) singleAmount(index int, row []string, mapping models.MappingDescriptor) (dr, cr string) {
	raw := strings.TrimSpace(cellAt(row, mapping.AmountColumnIndex))
	if raw == "" {
		return "", ""
	}

	amount, err := parseAmount(raw)
	if err != nil {
		n.logger.WithError(err).Debug("Unparsable amount cell, leaving both sides empty",
			logging.Field{Key: "row", Value: index})
		return "", ""
	}

	fixed := amountutils.FormatFixed(amount.Abs())

	if mapping.TypeColumnIndex >= 0 {
		typeCell := strings.ToUpper(strings.TrimSpace(cellAt(row, mapping.TypeColumnIndex)))
		if debitIndicators[typeCell] {
			return fixed, ""
		}
		return "", fixed
	}

	if amount.IsNegative() {
		return fixed, ""
	}
	return "", fixed
}

// chequeNo returns the trimmed cheque cell, or the placeholder when the
// column is absent or the cell is empty.
func chequeNo(row []string, colIdx int) string {
	if colIdx < 0 {
		return models.ChequePlaceholder
	}
	value := strings.TrimSpace(cellAt(row, colIdx))
	if value == "" {
		return models.ChequePlaceholder
	}
	return value
}

// cellAt reads a cell defensively: an absent index or a row shorter than the
// index yields an empty string.
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// isBlankRow reports whether a row is absent, zero-length or made entirely of
// empty/whitespace cells.
func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
