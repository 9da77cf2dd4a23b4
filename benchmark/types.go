package benchmark

import (
	"time"

	claseval "github.com/FrenchMajesty/classifier-eval"
)

// MAX_DATASET_SIZE caps how many samples a run will load.
const MAX_DATASET_SIZE = 500

// RunMetrics aggregates everything a benchmark run produces.
type RunMetrics struct {
	// RunID ties the report back to the evaluation run.
	RunID string

	// Overall metrics
	TotalDuration time.Duration
	TotalSamples  int
	Failures      int

	// Scores per averaging mode, percentage points.
	Scores map[claseval.AverageMode]claseval.Scores

	// Per-class confusion counts.
	Counts claseval.Counts

	// Labels in class-id order, for reading the counts.
	Labels []string

	// Per-sample classification latency.
	Latencies []time.Duration
}

// MeanLatency returns the average per-sample latency.
func (m *RunMetrics) MeanLatency() time.Duration {
	if len(m.Latencies) == 0 {
		return 0
	}
	var total time.Duration
	for _, l := range m.Latencies {
		total += l
	}
	return total / time.Duration(len(m.Latencies))
}
