// Command reporter extracts a report bundle from a workbook file and
// writes it as JSON to stdout or a file.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"khazna/internal/config"
	"khazna/internal/dataprocessing"
	"khazna/internal/exporter"
	"khazna/internal/infrastructure"
	"khazna/internal/services"
	"khazna/internal/validation"
	"khazna/pkg/contracts/domain"
)

type reportOutput struct {
	Data   *domain.ReportBundle     `json:"data"`
	Errors []domain.ValidationError `json:"errors"`
}

func main() {
	file := flag.String("file", "", "path to the workbook (.xlsx)")
	date := flag.String("date", "", "target date in YYYY-MM-DD format")
	out := flag.String("out", "", "output file path (defaults to stdout)")
	csvDir := flag.String("csv-dir", "", "optional directory to also export the daily ledger as CSV files")
	level := flag.String("level", "warn", "log level: debug | info | warn | error")
	flag.Parse()

	if *file == "" || *date == "" {
		fmt.Fprintln(os.Stderr, "usage: reporter -file <workbook.xlsx> -date <YYYY-MM-DD> [-out <path>]")
		os.Exit(2)
	}

	logger, err := infrastructure.InitializeLogger(config.LoggingConfig{
		Level:  *level,
		Format: "text",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		logger.Error("failed to read workbook", slog.String("file", *file), slog.String("error", err.Error()))
		os.Exit(1)
	}

	validator := validation.NewUploadValidator(config.Default().Upload, logger)
	assembler := dataprocessing.NewAssembler(logger)
	service := services.NewReportService(validator, assembler, logger)

	bundle, verrs, err := service.GenerateReport(context.Background(), filepath.Base(*file), data, *date)
	if err != nil {
		logger.Error("report generation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *csvDir != "" && bundle != nil && bundle.Daily != nil {
		if err := exporter.NewLedgerExporter(logger).Export(bundle.Daily, *csvDir); err != nil {
			logger.Error("CSV export failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	if verrs == nil {
		verrs = []domain.ValidationError{}
	}
	output, err := json.MarshalIndent(reportOutput{Data: bundle, Errors: verrs}, "", "  ")
	if err != nil {
		logger.Error("failed to encode report", slog.String("error", err.Error()))
		os.Exit(1)
	}
	output = append(output, '\n')

	if *out == "" {
		os.Stdout.Write(output)
		return
	}
	if err := os.WriteFile(*out, output, 0o644); err != nil {
		logger.Error("failed to write output file", slog.String("file", *out), slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("report written",
		slog.String("file", *out),
		slog.Int("validation_errors", len(verrs)))
}
