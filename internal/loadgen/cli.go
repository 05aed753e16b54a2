package loadgen

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/rapporthq/rapport/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "test_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the pair test tool.
func ShowHelp() {
	os.Stdout.WriteString(`Rapport Pair Test Tool
======================

A concurrent tool for exercising the Rapport compatibility scoring service.

Usage:
  go run cmd/test-pairs/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -pairs int
        Number of profile pairs to generate and score (default 1000)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Output file for generated pairs (default: generated_pairs_TIMESTAMP.json)
  -log string
        Log file for test output (default: test_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Test with default settings
  go run cmd/test-pairs/main.go

  # Test with custom parameters
  go run cmd/test-pairs/main.go -pairs 5000 -workers 16 -url http://localhost:8080

  # Test with verbose output
  go run cmd/test-pairs/main.go -verbose -pairs 1000

  # Test with custom log file
  go run cmd/test-pairs/main.go -pairs 5000 -log my_test.log
`)
}
