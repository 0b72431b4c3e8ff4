package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"idextract/internal/async"
	"idextract/internal/common"
	"idextract/internal/export"
	"idextract/internal/extract"
	"idextract/internal/ingest"
	"idextract/internal/results"
	"idextract/internal/store"
	"idextract/internal/vlm"
	"idextract/internal/vlm/fireworks"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	cfg := common.LoadConfig()

	// Parse CLI flags; flags override environment values.
	var (
		inputDir = flag.String("input_dir", "", "path to input images (required)")
		out      = flag.String("output_path", cfg.Run.OutputPath, "path to output file")
		workers  = flag.Int("max_workers", cfg.Run.MaxWorkers, "number of parallel inference workers")
		format   = flag.String("output_format", cfg.Run.OutputFormat, "output format: json, txt, csv, xlsx")
		model    = flag.String("model", cfg.VLM.Model, "vision-language model identifier")
		faceDir  = flag.String("face_dir", "", "directory to save cropped face images (optional)")
		dbPath   = flag.String("db", "", "SQLite database to also store records in (optional)")
	)
	flag.Parse()

	cfg.Run.InputDir = *inputDir
	cfg.Run.OutputPath = *out
	cfg.Run.OutputFormat = *format
	cfg.Run.MaxWorkers = *workers
	cfg.Run.FaceDir = *faceDir
	cfg.Run.DBPath = *dbPath
	cfg.VLM.Model = *model

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Configuration errors are the only fatal ones; everything past this
	// point degrades per image instead of aborting the run.
	if err := cfg.Validate(); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.Run.FaceDir != "" {
		if err := os.MkdirAll(cfg.Run.FaceDir, 0755); err != nil {
			printError("Error: cannot create face_dir: %v\n", err)
			os.Exit(1)
		}
	}

	ctx := context.Background()

	jobs, err := ingest.ListImages(cfg.Run.InputDir)
	if err != nil {
		printError("Error: cannot list input directory: %v\n", err)
		os.Exit(1)
	}
	logger.Info("run.start",
		"input_dir", cfg.Run.InputDir,
		"images", len(jobs),
		"workers", cfg.Run.MaxWorkers,
		"model", cfg.VLM.Model,
		"format", cfg.Run.OutputFormat,
	)

	// Pre-encode every image up front. A file that fails here is left
	// unencoded; the extractor rediscovers the problem and records it as
	// that image's failure rather than failing the batch.
	g := new(errgroup.Group)
	g.SetLimit(cfg.Run.MaxWorkers * 2)
	for i := range jobs {
		i := i
		g.Go(func() error {
			dataURL, _, err := vlm.ReadAsDataURL(jobs[i].Path)
			if err != nil {
				logger.Warn("encode.failed", "filename", jobs[i].Filename, "error", err)
				return nil
			}
			jobs[i].DataURL = dataURL
			return nil
		})
	}
	_ = g.Wait()

	client := fireworks.NewClient(fireworks.Config{
		APIKey:      cfg.VLM.APIKey,
		BaseURL:     cfg.VLM.BaseURL,
		Model:       cfg.VLM.Model,
		Temperature: cfg.VLM.Temperature,
		Timeout:     cfg.VLM.Timeout,
	}, logger)

	extractor := extract.NewExtractor(client, cfg.Run.FaceDir, logger)
	pool := async.NewPool(extractor, logger,
		async.WithWorkers(cfg.Run.MaxWorkers),
		async.WithTaskTimeout(cfg.VLM.Timeout),
	)
	agg := results.NewAggregator()

	start := time.Now()
	if err := pool.Run(ctx, jobs, agg); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	set := agg.ResultSet()
	succeeded, failed := agg.Counts()

	writer := export.NewWriter(logger)
	if err := writer.Write(set, cfg.Run.OutputFormat, cfg.Run.OutputPath); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.Run.DBPath != "" {
		st, err := store.Open(cfg.Run.DBPath, logger)
		if err != nil {
			logger.Error("store.open_failed", "path", cfg.Run.DBPath, "error", err)
		} else {
			st.SaveAll(set)
			if err := st.Close(); err != nil {
				logger.Warn("store.close_failed", "error", err)
			}
		}
	}

	logger.Info("run.complete",
		"images", len(jobs),
		"succeeded", succeeded,
		"failed", failed,
		"elapsed_ms", elapsed.Milliseconds(),
		"output_file", cfg.Run.OutputPath,
	)

	fmt.Printf("Processed %d images in %.2f seconds.\n", len(set), elapsed.Seconds())
	fmt.Printf("- Succeeded: %d\n", succeeded)
	fmt.Printf("- Failed: %d\n", failed)
	fmt.Printf("- Output: %s\n", cfg.Run.OutputPath)
}
