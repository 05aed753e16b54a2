package loadgen

import "time"

// Config holds configuration for the pair scoring test
type Config struct {
	BaseURL    string        // Base URL of the service
	NumPairs   int           // Number of profile pairs to generate
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Output file for generated pairs
	LogFile    string        // Log file for test output
	Verbose    bool          // Enable verbose logging
}

// Stats holds test statistics
type Stats struct {
	PairsGenerated  int
	PairsSubmitted  int
	PairsSuccessful int
	PairsFailed     int
	CacheHits       int
	CacheMisses     int
	VerifyFailures  int
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
}
