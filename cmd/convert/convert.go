// Package convert implements the end-to-end conversion command: export rows
// in, fixed-schema statement out.
package convert

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/ksismad/tallycsv/cmd/root"
	"github.com/ksismad/tallycsv/internal/common"
	"github.com/ksismad/tallycsv/internal/detector"
	"github.com/ksismad/tallycsv/internal/fileutils"
	"github.com/ksismad/tallycsv/internal/logging"
	"github.com/ksismad/tallycsv/internal/models"
	"github.com/ksismad/tallycsv/internal/normalizer"
	"github.com/ksismad/tallycsv/internal/renderer"
)

// detectionSampleSize caps how many rows are sent to the detection service.
const detectionSampleSize = 10

var (
	mappingFile string
	accountFile string
	useDetect   bool
)

// Cmd is the convert command.
var Cmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a bank export into a fixed-schema statement",
	Long: `Convert reads a delimited transaction export, normalizes its rows using a
column-mapping descriptor and writes the statement file. The mapping comes
from --mapping when given, from the detection service with --detect, and from
the deterministic default otherwise.`,
	Run: convertFunc,
}

func init() {
	Cmd.Flags().StringVarP(&mappingFile, "mapping", "m", "", "Mapping descriptor JSON file")
	Cmd.Flags().StringVarP(&accountFile, "account", "a", "", "Account details YAML file")
	Cmd.Flags().BoolVarP(&useDetect, "detect", "d", false, "Detect the column mapping via the AI service")
}

func convertFunc(cmd *cobra.Command, args []string) {
	logger := logging.NewLogrusAdapterFromLogger(root.Log)

	input := root.SharedFlags.Input
	if input == "" {
		root.Log.Fatal("Input file is required (use --input)")
	}

	rows, err := common.ReadRawRowsFile(input, logger)
	if err != nil {
		root.Log.Fatalf("Error reading input file: %v", err)
	}

	mapping := resolveMapping(cmd.Context(), rows, logger)

	var account models.AccountDetails
	if accountFile != "" {
		account, err = models.LoadAccountDetails(accountFile)
		if err != nil {
			root.Log.Fatalf("Error loading account details: %v", err)
		}
	}

	transactions := normalizer.New(logger).Normalize(rows, mapping)

	r := renderer.New(logger)
	if root.SharedFlags.Output != "" {
		content, err := r.Render(transactions, account)
		if err != nil {
			root.Log.Fatalf("Error rendering statement: %v", err)
		}
		if err := fileutils.WriteFile(root.SharedFlags.Output, []byte(content), 0644); err != nil {
			root.Log.Fatalf("Error writing statement: %v", err)
		}
		root.Log.Infof("Statement written to %s", root.SharedFlags.Output)
		return
	}

	path, err := r.WriteStatement(transactions, account, root.Cfg.Output.Directory)
	if err != nil {
		root.Log.Fatalf("Error writing statement: %v", err)
	}
	root.Log.Infof("Statement written to %s", path)
}

// resolveMapping picks the mapping descriptor: an explicit file wins, then
// the detection service when enabled, then the deterministic default.
func resolveMapping(ctx context.Context, rows [][]string, logger logging.Logger) models.MappingDescriptor {
	if mappingFile != "" {
		mapping, err := models.LoadMapping(mappingFile)
		if err != nil {
			root.Log.Fatalf("Error loading mapping file: %v", err)
		}
		return mapping
	}

	if !useDetect && !root.Cfg.AI.Enabled {
		logger.Debug("Detection disabled, using default mapping")
		return models.DefaultMapping()
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(root.Cfg.AI.TimeoutSeconds)*time.Second)
	defer cancel()

	d, err := detector.NewGeminiDetector(ctx, root.Cfg.AI.APIKey, root.Cfg.AI.Model, logger)
	if err != nil {
		logger.WithError(err).Warn("Detection service unavailable, using default mapping")
		return models.DefaultMapping()
	}
	defer func() {
		if err := d.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close detection client")
		}
	}()

	return detector.DetectOrDefault(ctx, d, detector.SampleRows(rows, detectionSampleSize), logger)
}
