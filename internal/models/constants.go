package models

const (
	// SolID is the branch/unit identifier required on every statement line.
	// The downstream importer expects the same fixed value for all rows.
	SolID = "100"

	// ChequePlaceholder is written when the export carries no cheque or
	// reference number for a row.
	ChequePlaceholder = "-"

	// ColumnAbsent marks an index field whose column does not exist in the
	// source export.
	ColumnAbsent = -1
)
