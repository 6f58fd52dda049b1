// Package common provides the shared delimited-text plumbing: decoding raw
// exports into positional rows and the delimiter configuration used on both
// the input and output side.
package common

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/ksismad/tallycsv/internal/logging"
	"github.com/ksismad/tallycsv/internal/parsererror"
)

// Delimiter is the field separator used for reading exports and writing
// statements. Configurable because some banks ship semicolon-separated files.
var Delimiter rune = ','

// SetDelimiter changes the delimiter for subsequent reads and writes.
func SetDelimiter(delim rune) {
	if delim != 0 {
		Delimiter = delim
	}
}

// ReadRawRows tokenizes a delimited-text export into an ordered sequence of
// ordered cell sequences. Rows may be ragged (shorter or longer than the
// header); the mapping descriptor decides which cells matter. A tokenizer
// failure is fatal to the whole conversion and surfaces as a DecodeError.
func ReadRawRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = Delimiter
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &parsererror.DecodeError{Err: err}
	}
	return rows, nil
}

// ReadRawRowsFile opens a file and tokenizes it with ReadRawRows.
func ReadRawRowsFile(path string, logger logging.Logger) ([][]string, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	logger.Info("Reading export file", logging.Field{Key: "file", Value: path})

	file, err := os.Open(path) // #nosec G304 -- CLI tool reads user-provided paths
	if err != nil {
		logger.WithError(err).Error("Failed to open export file")
		return nil, &parsererror.DecodeError{Path: path, Err: err}
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	rows, err := ReadRawRows(file)
	if err != nil {
		logger.WithError(err).Error("Failed to tokenize export file")
		if decodeErr, ok := err.(*parsererror.DecodeError); ok {
			decodeErr.Path = path
		}
		return nil, err
	}

	logger.Info("Successfully read export rows", logging.Field{Key: "count", Value: len(rows)})
	return rows, nil
}
