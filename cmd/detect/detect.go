// Package detect implements the standalone mapping-detection command, useful
// for inspecting or hand-editing a descriptor before conversion.
package detect

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ksismad/tallycsv/cmd/root"
	"github.com/ksismad/tallycsv/internal/common"
	"github.com/ksismad/tallycsv/internal/detector"
	"github.com/ksismad/tallycsv/internal/fileutils"
	"github.com/ksismad/tallycsv/internal/logging"
	"github.com/ksismad/tallycsv/internal/models"
)

const detectionSampleSize = 10

// Cmd is the detect command.
var Cmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect the column mapping of a bank export",
	Long: `Detect sends a sample of the export to the AI detection service and prints
the resulting mapping descriptor as JSON. When the service is unavailable the
deterministic default mapping is emitted and the command exits non-zero, so
scripted callers can tell a detected mapping from the fallback.`,
	RunE:         detectFunc,
	SilenceUsage: true,
}

func detectFunc(cmd *cobra.Command, args []string) error {
	logger := logging.NewLogrusAdapterFromLogger(root.Log)

	input := root.SharedFlags.Input
	if input == "" {
		return fmt.Errorf("input file is required (use --input)")
	}

	rows, err := common.ReadRawRowsFile(input, logger)
	if err != nil {
		return fmt.Errorf("error reading input file: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(root.Cfg.AI.TimeoutSeconds)*time.Second)
	defer cancel()

	mapping, detectErr := detectMapping(ctx, detector.SampleRows(rows, detectionSampleSize), logger)
	if detectErr != nil {
		logger.WithError(detectErr).Warn("Detection service unavailable, emitting default mapping")
		mapping = models.DefaultMapping()
	}

	if err := emitMapping(mapping); err != nil {
		return err
	}

	// The fallback was emitted, but the caller still needs the exit status
	// to know detection did not run.
	return detectErr
}

// detectMapping runs the Gemini detector over the sample.
func detectMapping(ctx context.Context, sample [][]string, logger logging.Logger) (models.MappingDescriptor, error) {
	d, err := detector.NewGeminiDetector(ctx, root.Cfg.AI.APIKey, root.Cfg.AI.Model, logger)
	if err != nil {
		return models.MappingDescriptor{}, err
	}
	defer func() {
		if err := d.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close detection client")
		}
	}()

	return d.Detect(ctx, sample)
}

// emitMapping writes the descriptor JSON to the output file when one was
// given, and to stdout otherwise.
func emitMapping(mapping models.MappingDescriptor) error {
	data, err := json.MarshalIndent(mapping, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding mapping: %w", err)
	}

	if root.SharedFlags.Output != "" {
		if err := fileutils.WriteFile(root.SharedFlags.Output, append(data, '\n'), 0644); err != nil {
			return fmt.Errorf("error writing mapping file: %w", err)
		}
		root.Log.Infof("Mapping written to %s", root.SharedFlags.Output)
		return nil
	}

	fmt.Println(string(data))
	return nil
}
