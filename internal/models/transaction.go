// Package models provides the data contracts shared by the conversion
// pipeline: the column-mapping descriptor, the canonical transaction record
// and the account metadata block.
package models

// Transaction is the canonical record produced by the normalizer, decoupled
// from the source export's layout. All fields are already formatted for the
// target statement schema; the renderer serializes them as-is. The csv tags
// match the captions of the statement's transaction table, in the column
// order the downstream importer validates by position.
type Transaction struct {
	Date        string `csv:"Date" json:"date"`               // canonical DD-MM-YYYY, or raw text if unparsable
	ChqNo       string `csv:"Chq No" json:"chqNo"`            // cheque/reference number, "-" when absent
	Particulars string `csv:"Particulars" json:"particulars"` // free-text description
	Dr          string `csv:"Dr" json:"dr"`                   // debit amount, "" or fixed two decimals
	Cr          string `csv:"Cr" json:"cr"`                   // credit amount, "" or fixed two decimals
	Bal         string `csv:"Bal" json:"bal"`                 // running balance as exported
	Sol         string `csv:"Sol" json:"sol"`                 // fixed branch identifier
}

// IsDebit reports whether the record carries a debit amount.
func (t Transaction) IsDebit() bool {
	return t.Dr != ""
}

// IsCredit reports whether the record carries a credit amount.
func (t Transaction) IsCredit() bool {
	return t.Cr != ""
}
