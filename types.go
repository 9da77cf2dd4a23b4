package claseval

import "time"

// Sample is one labeled example from an evaluation dataset.
type Sample struct {
	// Text is the input handed to the classifier.
	Text string

	// Label is the true class label.
	Label string
}

// Evaluation represents the outcome of one evaluation run
type Evaluation struct {
	// RunID uniquely identifies the run.
	RunID string

	// Counts are the merged per-class confusion counts.
	Counts Counts

	// Scores holds precision/recall/F1 per averaging mode, in percentage
	// points.
	Scores map[AverageMode]Scores

	// Samples is the number of samples scored.
	Samples int

	// Failures is the number of samples the classifier could not score
	// (classification errors or labels outside the registry).
	Failures int

	// Duration is the wall-clock time of the run.
	Duration time.Duration

	// Latencies holds the per-sample classification latency, in sample
	// order within each worker's share.
	Latencies []time.Duration
}
