// Package detector infers a column-mapping descriptor from a sample of
// export rows using an external AI service. The conversion core never
// depends on this package; when detection is unavailable the caller falls
// back to the deterministic default mapping.
package detector

import (
	"context"
	"errors"

	"github.com/ksismad/tallycsv/internal/logging"
	"github.com/ksismad/tallycsv/internal/models"
)

// ErrUnavailable signals that the detection service cannot be used (missing
// API key, client or network failure, unusable model output). Callers treat
// it as "use the fallback mapping", never as a conversion failure.
var ErrUnavailable = errors.New("column mapping detection unavailable")

// Detector infers a mapping descriptor from a data sample.
type Detector interface {
	Detect(ctx context.Context, sample [][]string) (models.MappingDescriptor, error)
}

// DetectOrDefault runs detection and substitutes the deterministic default
// mapping on any failure. A nil detector goes straight to the default, so
// conversion works without the external service configured at all.
func DetectOrDefault(ctx context.Context, d Detector, sample [][]string, logger logging.Logger) models.MappingDescriptor {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if d == nil {
		logger.Debug("No detector configured, using default mapping")
		return models.DefaultMapping()
	}

	mapping, err := d.Detect(ctx, sample)
	if err != nil {
		logger.WithError(err).Warn("Column detection failed, using default mapping")
		return models.DefaultMapping()
	}
	return mapping
}

// SampleRows returns at most limit rows from the top of the export, enough
// context for detection without shipping the whole file to the service.
func SampleRows(rows [][]string, limit int) [][]string {
	if limit <= 0 || len(rows) <= limit {
		return rows
	}
	return rows[:limit]
}
