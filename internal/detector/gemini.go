package detector

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/ksismad/tallycsv/internal/logging"
	"github.com/ksismad/tallycsv/internal/models"
)

const detectionPrompt = `You are given the first rows of a bank transaction export in delimited-text form.
Identify which column holds which field and reply with a single JSON object, no prose, with exactly these keys:
headerRowIndex (int, index of the last header row before data),
dateColumnIndex, descriptionColumnIndex, debitColumnIndex, creditColumnIndex,
balanceColumnIndex, chequeNoColumnIndex, amountColumnIndex, typeColumnIndex
(ints, 0-based, -1 when the column does not exist),
dateFormat (string pattern such as "dd/MM/yyyy", "MM/dd/yyyy" or "yyyy-MM-dd"),
isSingleAmountColumn (bool, true when one signed/typed amount column is used instead of separate debit and credit columns).

Rows:
`

// GeminiDetector implements Detector against the Google Gemini API.
type GeminiDetector struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger logging.Logger
}

// NewGeminiDetector creates a Gemini-backed detector. A missing API key or a
// client construction failure is reported as ErrUnavailable so callers can
// fall back without special-casing.
func NewGeminiDetector(ctx context.Context, apiKey, modelName string, logger logging.Logger) (*GeminiDetector, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY is not set", ErrUnavailable)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", ErrUnavailable, err)
	}
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}

	return &GeminiDetector{
		client: client,
		model:  client.GenerativeModel(modelName),
		logger: logger,
	}, nil
}

// Close releases the underlying API client.
func (d *GeminiDetector) Close() error {
	return d.client.Close()
}

// Detect sends a sample of rows to the model and parses the returned JSON
// into a validated MappingDescriptor.
func (d *GeminiDetector) Detect(ctx context.Context, sample [][]string) (models.MappingDescriptor, error) {
	d.logger.Debug("Requesting column mapping from Gemini",
		logging.Field{Key: "sample_rows", Value: len(sample)})

	resp, err := d.model.GenerateContent(ctx, genai.Text(buildPrompt(sample)))
	if err != nil {
		return models.MappingDescriptor{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	mapping, err := parseMappingResponse(responseText(resp))
	if err != nil {
		return models.MappingDescriptor{}, err
	}

	d.logger.Info("Detected column mapping",
		logging.Field{Key: "single_amount", Value: mapping.IsSingleAmountColumn},
		logging.Field{Key: "date_format", Value: mapping.DateFormat})
	return mapping, nil
}

// buildPrompt renders the sample rows beneath the detection instructions.
func buildPrompt(sample [][]string) string {
	var sb strings.Builder
	sb.WriteString(detectionPrompt)
	for _, row := range sample {
		sb.WriteString(strings.Join(row, ","))
		sb.WriteString("\n")
	}
	return sb.String()
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return sb.String()
}

// parseMappingResponse extracts the JSON object from a model reply (which may
// be fenced or wrapped in prose) and decodes it. Anything that does not yield
// a valid descriptor is reported as ErrUnavailable.
func parseMappingResponse(text string) (models.MappingDescriptor, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return models.MappingDescriptor{}, fmt.Errorf("%w: no JSON object in model response", ErrUnavailable)
	}

	var mapping models.MappingDescriptor
	if err := json.Unmarshal([]byte(text[start:end+1]), &mapping); err != nil {
		return models.MappingDescriptor{}, fmt.Errorf("%w: malformed mapping JSON: %v", ErrUnavailable, err)
	}
	if err := mapping.Validate(); err != nil {
		return models.MappingDescriptor{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return mapping, nil
}
