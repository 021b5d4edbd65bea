// Package main provides a CLI command for summarizing a document.
// Usage: summarize [--tier short|medium|long] [--file PATH | --url URL] [--output json]
// Without --file or --url the document is read from stdin.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"content-summarizer/internal/config"
	"content-summarizer/internal/domain/entity"
	"content-summarizer/internal/infra/fetcher"
	"content-summarizer/internal/infra/model"
	"content-summarizer/internal/infra/tokenizer"
	"content-summarizer/internal/usecase/ingest"
	"content-summarizer/internal/usecase/summarize"
)

// SummaryOutput represents the JSON output format for summary results.
type SummaryOutput struct {
	Summary          string  `json:"summary"`
	Tier             string  `json:"tier"`
	OriginalChars    int     `json:"original_chars"`
	SummaryChars     int     `json:"summary_chars"`
	CompressionRatio float64 `json:"compression_ratio"`
	Chunks           int     `json:"chunks"`
	Passes           int     `json:"passes"`
	InferenceCalls   int     `json:"inference_calls"`
	ElapsedMS        int64   `json:"elapsed_ms"`
}

func main() {
	var (
		tierName     string
		filePath     string
		urlArg       string
		outputFormat string
		timeout      time.Duration
	)

	flag.StringVar(&tierName, "tier", "medium", "Summary length tier: short, medium or long")
	flag.StringVar(&filePath, "file", "", "Read the document from a file instead of stdin")
	flag.StringVar(&urlArg, "url", "", "Fetch the document from a URL instead of stdin")
	flag.StringVar(&outputFormat, "output", "text", "Output format: text or json")
	flag.DurationVar(&timeout, "timeout", 5*time.Minute, "Overall run timeout")
	flag.Parse()

	logger := initLogger()
	_ = godotenv.Load()

	tier, err := entity.ParseLengthTier(tierName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Invalid tier '%s' (must be 'short', 'medium' or 'long')\n", tierName)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: summarize [--tier short|medium|long] [--file PATH | --url URL] [--output json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Examples:")
		fmt.Fprintln(os.Stderr, "  summarize --tier short --file article.txt")
		fmt.Fprintln(os.Stderr, "  summarize --url https://example.com/post")
		fmt.Fprintln(os.Stderr, "  cat article.txt | summarize --output json")
		os.Exit(1)
	}

	if filePath != "" && urlArg != "" {
		fmt.Fprintln(os.Stderr, "Error: --file and --url are mutually exclusive")
		os.Exit(1)
	}

	svc := buildService(logger)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	input, err := readDocument(ctx, logger, filePath, urlArg)
	if err != nil {
		logger.Error("failed to read document", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("summarizing document",
		slog.String("tier", tier.String()),
		slog.Int("input_runes", len([]rune(input))))

	result, err := svc.Summarize(ctx, input, tier)
	if err != nil {
		logger.Error("summarize failed", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Summarize failed: %v\n", err)
		os.Exit(1)
	}

	if outputFormat == "json" {
		outputJSON(input, result)
	} else {
		outputText(result)
	}
}

// buildService wires the pipeline from environment configuration.
func buildService(logger *slog.Logger) *summarize.Service {
	modelCfg, err := model.LoadConfig()
	if err != nil {
		logger.Error("failed to load model configuration", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	generator, err := model.New(modelCfg)
	if err != nil {
		logger.Error("failed to build generator", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var estimator summarize.TokenEstimator
	if modelCfg.Backend == model.BackendOpenAI {
		if tk, tkErr := tokenizer.NewTiktoken(""); tkErr == nil {
			estimator = tk
		}
	}
	if estimator == nil {
		estimator = tokenizer.NewHeuristic(0)
	}

	pipelineCfg, err := config.LoadPipelineConfig()
	if err != nil {
		logger.Error("failed to load pipeline configuration", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tiers, err := config.LoadTiers(pipelineCfg.TiersConfigPath)
	if err != nil {
		logger.Error("failed to load tier table", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	svc, err := summarize.NewService(generator, estimator, tiers,
		summarize.WithMaxPasses(pipelineCfg.MaxPasses),
		summarize.WithChunkMaxRunes(pipelineCfg.ChunkMaxRunes),
		summarize.WithLogger(logger),
	)
	if err != nil {
		logger.Error("failed to build summarization service", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return svc
}

// readDocument resolves the input source: URL, file, or stdin.
func readDocument(ctx context.Context, logger *slog.Logger, filePath, urlArg string) (string, error) {
	if urlArg != "" {
		fetchCfg, err := fetcher.LoadConfigFromEnv()
		if err != nil {
			return "", fmt.Errorf("content fetch configuration: %w", err)
		}
		ingestSvc, err := ingest.NewService(fetcher.NewReadabilityFetcher(fetchCfg), logger)
		if err != nil {
			return "", err
		}
		return ingestSvc.FetchDocument(ctx, urlArg)
	}

	if filePath != "" {
		// #nosec G304 -- path comes from the CLI invocation itself
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("read file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// outputText prints the summary in human-readable format.
func outputText(result *entity.SummaryResult) {
	fmt.Println(result.Summary)
	fmt.Fprintf(os.Stderr, "\n(tier=%s chunks=%d passes=%d calls=%d elapsed=%s)\n",
		result.Tier, result.ChunkCount, result.PassCount, result.InferenceCalls, result.Elapsed.Round(time.Millisecond))
}

// outputJSON prints the summary and its pipeline statistics as JSON.
func outputJSON(input string, result *entity.SummaryResult) {
	inputRunes := len([]rune(input))
	summaryRunes := len([]rune(result.Summary))
	ratio := 0.0
	if inputRunes > 0 {
		ratio = 1 - float64(summaryRunes)/float64(inputRunes)
	}

	output := SummaryOutput{
		Summary:          result.Summary,
		Tier:             result.Tier.String(),
		OriginalChars:    inputRunes,
		SummaryChars:     summaryRunes,
		CompressionRatio: ratio,
		Chunks:           result.ChunkCount,
		Passes:           result.PassCount,
		InferenceCalls:   result.InferenceCalls,
		ElapsedMS:        result.Elapsed.Milliseconds(),
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to encode JSON: %v\n", err)
		os.Exit(1)
	}
}

// initLogger initializes and returns a structured logger writing to stderr.
func initLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return logger
}
