package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"wfsort/internal/config"
	"wfsort/internal/document"
	"wfsort/internal/errors"
	"wfsort/internal/history"
	"wfsort/internal/logging"
	"wfsort/internal/normalize"
)

var (
	normalizeOutput    string
	normalizeWorkers   int
	normalizeNoHistory bool
	normalizeStdout    bool
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <reference> <file>",
	Short: "Normalize a workflow-definition document",
	Long: `Normalize a workflow-definition document into canonical form.

The reference document is parsed alongside the target but not consumed in
this version; it exists so both sides of a comparison fail early on the same
classes of input error. The second argument is the document that gets
normalized and written out.

Examples:
  wfsort normalize base.json flows.json
  wfsort normalize base.json flows.json -o canonical.json
  wfsort normalize base.json flows.yaml --stdout`,
	Args: cobra.ExactArgs(2),
	RunE: runNormalize,
}

func init() {
	normalizeCmd.Flags().StringVarP(&normalizeOutput, "output", "o", "", "Output path (default: input name with _sorted suffix)")
	normalizeCmd.Flags().IntVar(&normalizeWorkers, "workers", 1, "Per-group workers (groups are independent until the final sort)")
	normalizeCmd.Flags().BoolVar(&normalizeNoHistory, "no-history", false, "Skip recording the run in the local ledger")
	normalizeCmd.Flags().BoolVar(&normalizeStdout, "stdout", false, "Write the normalized document to stdout instead of a file")
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	start := time.Now()
	referencePath, inputPath := args[0], args[1]

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return errors.New(errors.InternalError, "failed to load config", err)
	}
	if err := cfg.Validate(); err != nil {
		return errors.New(errors.InternalError, "invalid config", err)
	}
	logger := newLogger(cfg)

	// The reference document is read and parsed but otherwise unused.
	if _, err := loadDocument(referencePath); err != nil {
		return err
	}

	input, err := os.ReadFile(inputPath)
	if err != nil {
		return readError(inputPath, err)
	}
	doc, err := document.Parse(input, inputPath)
	if err != nil {
		return errors.New(errors.ParseFailed, "failed to parse document", err)
	}

	profiles, err := normalize.LoadOverrides(filepath.Join(filepath.Dir(inputPath), normalize.OverridesFile))
	if err != nil {
		return errors.New(errors.InternalError, "failed to load profile overrides", err)
	}

	normalizer := normalize.New(normalize.Options{
		Profiles: profiles,
		Locale:   cfg.Locale,
		Workers:  normalizeWorkers,
	})
	doc = normalizer.Normalize(doc)

	var buf bytes.Buffer
	if err := document.Encode(&buf, doc); err != nil {
		return errors.New(errors.InternalError, "failed to encode document", err)
	}

	outputPath := normalizeOutput
	if outputPath == "" {
		outputPath = document.DerivedOutputPath(inputPath, cfg.Output.Suffix)
	}

	if normalizeStdout {
		if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
			return errors.New(errors.WriteFailed, "failed to write document", err)
		}
	} else {
		if err := document.Write(doc, outputPath); err != nil {
			return errors.New(errors.WriteFailed, "failed to write "+outputPath, err)
		}
	}

	groupCount := 0
	if groups, ok := doc.([]interface{}); ok {
		groupCount = len(groups)
	}

	if cfg.History.Enabled && !normalizeNoHistory && !normalizeStdout {
		recordRun(logger, cfg, history.Run{
			Duration:   time.Since(start),
			InputPath:  inputPath,
			OutputPath: outputPath,
			GroupCount: groupCount,
		}, input, buf.Bytes())
	}

	logger.Info("Document normalized", map[string]interface{}{
		"input":    inputPath,
		"output":   outputPath,
		"groups":   groupCount,
		"duration": time.Since(start).Milliseconds(),
	})
	return nil
}

// recordRun writes the ledger entry. Ledger failures are logged, never fatal;
// the normalized output is already on disk at this point.
func recordRun(logger *logging.Logger, cfg *config.Config, run history.Run, input, output []byte) {
	db, err := history.Open(".", logger)
	if err != nil {
		logger.Warn("Skipping run ledger", map[string]interface{}{"error": err.Error()})
		return
	}
	defer db.Close()

	id, err := db.Record(run, input, output, cfg.History.Keep)
	if err != nil {
		logger.Warn("Failed to record run", map[string]interface{}{"error": err.Error()})
		return
	}
	logger.Debug("Run recorded", map[string]interface{}{"id": id})
}

// loadDocument reads and parses one document, translating failures into the
// boundary error taxonomy.
func loadDocument(path string) (interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, readError(path, err)
	}
	doc, err := document.Parse(data, path)
	if err != nil {
		return nil, errors.New(errors.ParseFailed, "failed to parse document", err)
	}
	return doc, nil
}

func readError(path string, err error) error {
	if os.IsNotExist(err) || os.IsPermission(err) {
		return errors.New(errors.FileMissing, fmt.Sprintf("cannot read %s", path), err)
	}
	return errors.New(errors.InternalError, fmt.Sprintf("cannot read %s", path), err)
}
