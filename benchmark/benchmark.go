// Package benchmark runs a text classifier over a labeled CSV dataset
// and reports precision/recall/F1 per averaging mode.
package benchmark

import (
	"context"
	"fmt"

	claseval "github.com/FrenchMajesty/classifier-eval"
)

// RunConfig configures one benchmark run.
type RunConfig struct {
	// Classifier is the prediction source under evaluation. Required.
	Classifier claseval.TextClassifier

	// Registry maps the dataset's class labels to ids. Required.
	Registry *claseval.LabelRegistry

	// AliasPersistence carries learned label aliases between runs. Optional.
	AliasPersistence claseval.AliasPersistence

	// DatasetPath points at the CSV dataset (header plus text,label rows).
	DatasetPath string

	// Limit caps the number of samples; 0 means MAX_DATASET_SIZE.
	Limit int

	// Workers is the number of concurrent classification workers.
	Workers int
}

// Run loads the dataset, evaluates the classifier over it and returns the
// aggregated metrics.
func Run(ctx context.Context, cfg RunConfig) (*RunMetrics, error) {
	samples, err := LoadDataset(cfg.DatasetPath, cfg.Limit)
	if err != nil {
		return nil, err
	}

	evaluator, err := claseval.NewEvaluator(claseval.Config{
		Classifier:       cfg.Classifier,
		Registry:         cfg.Registry,
		AliasPersistence: cfg.AliasPersistence,
		Workers:          cfg.Workers,
	})
	if err != nil {
		return nil, err
	}

	eval, err := evaluator.Evaluate(ctx, samples)
	if err != nil {
		return nil, fmt.Errorf("evaluation failed: %w", err)
	}

	if err := evaluator.SaveAliases(); err != nil {
		return nil, fmt.Errorf("failed to save alias table: %w", err)
	}

	return &RunMetrics{
		RunID:         eval.RunID,
		TotalDuration: eval.Duration,
		TotalSamples:  eval.Samples,
		Failures:      eval.Failures,
		Scores:        eval.Scores,
		Counts:        eval.Counts,
		Labels:        cfg.Registry.Labels(),
		Latencies:     eval.Latencies,
	}, nil
}
