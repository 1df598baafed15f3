// Command pipeline runs the processing pipeline over a raw JSONL file without
// NATS or ClickHouse.
package main

import (
	"context"
	"flag"
	"log"
	"path/filepath"
	"strings"

	"empleos/common/jsonl"
	shared "empleos/common/models"
	"empleos/services/processing/internal/catalog"
	"empleos/services/processing/internal/processor"
	"empleos/services/processing/internal/summary"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	input := flag.String("input", "", "raw records JSONL file")
	output := flag.String("output", "data", "root directory for processed/ and exports/")
	name := flag.String("name", "", "output base name (defaults to the input file name)")
	validate := flag.Bool("validate", true, "drop records that fail validation")
	itOnly := flag.Bool("it-only", true, "keep only IT roles")
	wage := flag.Float64("minimum-wage", catalog.MinimumWage, "monthly minimum wage in COP")
	top := flag.Int("top-cities", summary.DefaultTopCities, "cities listed in the summary")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if *input == "" {
		logger.Fatal("-input is required")
	}
	if *name == "" {
		*name = strings.TrimSuffix(filepath.Base(*input), filepath.Ext(*input))
	}

	raws, err := jsonl.Read[shared.RawRecord](*input)
	if err != nil {
		logger.Fatal("Failed to read raw records", zap.Error(err), zap.String("input", *input))
	}

	p := processor.NewJobProcessor(logger, nil, processor.Options{
		DataDir:     *output,
		ITOnly:      *itOnly,
		Validate:    *validate,
		TopCities:   *top,
		MinimumWage: *wage,
	})

	report, err := p.Process(context.Background(), *name, raws)
	if err != nil {
		logger.Fatal("Pipeline failed", zap.Error(err))
	}

	logger.Info("Exports written",
		zap.String("jsonl", report.Paths.JSONL),
		zap.String("json", report.Paths.JSON),
		zap.String("csv", report.Paths.CSV),
		zap.String("summary", report.Paths.Summary),
	)
	for _, c := range report.Summary.TopCities {
		logger.Info("City", zap.String("name", c.City), zap.Int("postings", c.Count))
	}
}

