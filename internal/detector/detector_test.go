package detector

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksismad/tallycsv/internal/models"
)

type stubDetector struct {
	mapping models.MappingDescriptor
	err     error
}

func (s *stubDetector) Detect(ctx context.Context, sample [][]string) (models.MappingDescriptor, error) {
	return s.mapping, s.err
}

func TestDetectOrDefaultWithoutDetector(t *testing.T) {
	mapping := DetectOrDefault(context.Background(), nil, nil, nil)
	assert.Equal(t, models.DefaultMapping(), mapping)
}

func TestDetectOrDefaultFallsBackOnError(t *testing.T) {
	stub := &stubDetector{err: fmt.Errorf("%w: model offline", ErrUnavailable)}

	mapping := DetectOrDefault(context.Background(), stub, [][]string{{"a", "b"}}, nil)
	assert.Equal(t, models.DefaultMapping(), mapping)
}

func TestDetectOrDefaultUsesDetectedMapping(t *testing.T) {
	detected := models.DefaultMapping()
	detected.DateFormat = "yyyy-MM-dd"
	detected.ChequeNoColumnIndex = 5
	stub := &stubDetector{mapping: detected}

	mapping := DetectOrDefault(context.Background(), stub, [][]string{{"a", "b"}}, nil)
	assert.Equal(t, detected, mapping)
}

func TestParseMappingResponse(t *testing.T) {
	text := "```json\n" + `{
		"headerRowIndex": 0,
		"dateColumnIndex": 0,
		"descriptionColumnIndex": 1,
		"amountColumnIndex": 2,
		"typeColumnIndex": 3,
		"dateFormat": "MM/dd/yyyy",
		"isSingleAmountColumn": true
	}` + "\n```"

	mapping, err := parseMappingResponse(text)
	require.NoError(t, err)

	assert.True(t, mapping.IsSingleAmountColumn)
	assert.Equal(t, 2, mapping.AmountColumnIndex)
	assert.Equal(t, models.ColumnAbsent, mapping.DebitColumnIndex)
	assert.Equal(t, "MM/dd/yyyy", mapping.DateFormat)
}

func TestParseMappingResponseWithSurroundingProse(t *testing.T) {
	text := `Here is the mapping you asked for:
{"dateColumnIndex": 1, "descriptionColumnIndex": 2, "debitColumnIndex": 3, "creditColumnIndex": 4, "dateFormat": "dd/MM/yyyy", "isSingleAmountColumn": false}
Let me know if you need anything else.`

	mapping, err := parseMappingResponse(text)
	require.NoError(t, err)
	assert.Equal(t, 1, mapping.DateColumnIndex)
	assert.Equal(t, 4, mapping.CreditColumnIndex)
}

func TestParseMappingResponseRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"NoJSON", "I could not determine the mapping."},
		{"MalformedJSON", "{dateColumnIndex: oops}"},
		{"InvariantViolation", `{"isSingleAmountColumn": true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseMappingResponse(tt.text)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnavailable))
		})
	}
}

func TestNewGeminiDetectorRequiresAPIKey(t *testing.T) {
	_, err := NewGeminiDetector(context.Background(), "", "gemini-2.0-flash", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt([][]string{
		{"Date", "Description", "Amount"},
		{"01/02/2024", "Coffee", "-50.00"},
	})

	assert.Contains(t, prompt, "Date,Description,Amount")
	assert.Contains(t, prompt, "01/02/2024,Coffee,-50.00")
	assert.Contains(t, prompt, "isSingleAmountColumn")
}

func TestSampleRows(t *testing.T) {
	rows := [][]string{{"1"}, {"2"}, {"3"}, {"4"}}

	assert.Len(t, SampleRows(rows, 2), 2)
	assert.Len(t, SampleRows(rows, 10), 4)
	assert.Len(t, SampleRows(rows, 0), 4)
	assert.Equal(t, rows[:2], SampleRows(rows, 2))
}
