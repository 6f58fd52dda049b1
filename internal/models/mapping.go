package models

import (
	"encoding/json"
	"fmt"
	"os"
)

// MappingDescriptor describes where the logical statement fields live in a
// raw export table. It is constructed once per conversion, either by the
// external detection service or from DefaultMapping, and passed by value into
// the normalizer; it is never mutated afterwards.
//
// Every column index uses ColumnAbsent (-1) to mean "this field does not
// exist in the export". When IsSingleAmountColumn is true the debit/credit
// indices are ignored and AmountColumnIndex (plus the optional
// TypeColumnIndex) drives amount extraction; when false the amount/type
// indices are ignored.
type MappingDescriptor struct {
	HeaderRowIndex         int    `json:"headerRowIndex"`
	DateColumnIndex        int    `json:"dateColumnIndex"`
	DescriptionColumnIndex int    `json:"descriptionColumnIndex"`
	DebitColumnIndex       int    `json:"debitColumnIndex"`
	CreditColumnIndex      int    `json:"creditColumnIndex"`
	BalanceColumnIndex     int    `json:"balanceColumnIndex"`
	ChequeNoColumnIndex    int    `json:"chequeNoColumnIndex"`
	AmountColumnIndex      int    `json:"amountColumnIndex"`
	TypeColumnIndex        int    `json:"typeColumnIndex"`
	DateFormat             string `json:"dateFormat"`
	IsSingleAmountColumn   bool   `json:"isSingleAmountColumn"`
}

// DefaultMapping is the deterministic fallback descriptor used when the
// detection service is unavailable: header in row 0, then
// date, description, debit, credit, balance in day/month/year format.
func DefaultMapping() MappingDescriptor {
	return MappingDescriptor{
		HeaderRowIndex:         0,
		DateColumnIndex:        0,
		DescriptionColumnIndex: 1,
		DebitColumnIndex:       2,
		CreditColumnIndex:      3,
		BalanceColumnIndex:     4,
		ChequeNoColumnIndex:    ColumnAbsent,
		AmountColumnIndex:      ColumnAbsent,
		TypeColumnIndex:        ColumnAbsent,
		DateFormat:             "dd/MM/yyyy",
		IsSingleAmountColumn:   false,
	}
}

// UnmarshalJSON decodes a descriptor exchanged with the detection service.
// Index fields missing from the JSON default to ColumnAbsent rather than the
// zero value, so an incomplete object never silently points at column 0.
func (m *MappingDescriptor) UnmarshalJSON(data []byte) error {
	type plain MappingDescriptor
	decoded := plain{
		DateColumnIndex:        ColumnAbsent,
		DescriptionColumnIndex: ColumnAbsent,
		DebitColumnIndex:       ColumnAbsent,
		CreditColumnIndex:      ColumnAbsent,
		BalanceColumnIndex:     ColumnAbsent,
		ChequeNoColumnIndex:    ColumnAbsent,
		AmountColumnIndex:      ColumnAbsent,
		TypeColumnIndex:        ColumnAbsent,
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*m = MappingDescriptor(decoded)
	return nil
}

// Validate checks the single invariant a descriptor must satisfy before it
// can drive amount extraction. The normalizer itself treats every index
// defensively, so validation failures only matter to callers that want to
// reject a descriptor up front (e.g. detection output).
func (m MappingDescriptor) Validate() error {
	if m.HeaderRowIndex < 0 {
		return fmt.Errorf("headerRowIndex must be >= 0, got %d", m.HeaderRowIndex)
	}
	if m.IsSingleAmountColumn && m.AmountColumnIndex < 0 {
		return fmt.Errorf("single-amount mapping requires amountColumnIndex >= 0")
	}
	return nil
}

// LoadMapping reads a MappingDescriptor from a JSON file.
func LoadMapping(path string) (MappingDescriptor, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- CLI tool reads user-provided paths
	if err != nil {
		return MappingDescriptor{}, fmt.Errorf("error reading mapping file: %w", err)
	}

	var mapping MappingDescriptor
	if err := json.Unmarshal(data, &mapping); err != nil {
		return MappingDescriptor{}, fmt.Errorf("error parsing mapping file %s: %w", path, err)
	}
	if err := mapping.Validate(); err != nil {
		return MappingDescriptor{}, fmt.Errorf("invalid mapping in %s: %w", path, err)
	}
	return mapping, nil
}
