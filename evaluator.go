package claseval

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/FrenchMajesty/classifier-eval/utils/disjoint_set"
	"github.com/google/uuid"
)

// Evaluator scores a text classifier against labeled samples using a
// streaming classification report.
type Evaluator struct {
	classifier   TextClassifier
	registry     *LabelRegistry
	aliases      *disjoint_set.AliasSet
	aliasPersist AliasPersistence
	workers      int
}

// NewEvaluator creates a new Evaluator with the given configuration
func NewEvaluator(cfg Config) (*Evaluator, error) {
	cfg.applyDefaults()

	if cfg.Classifier == nil {
		return nil, &ConfigurationError{Field: "Classifier", Message: "must not be nil"}
	}
	if cfg.Registry == nil {
		return nil, &ConfigurationError{Field: "Registry", Message: "must not be nil"}
	}

	aliasPersist := cfg.AliasPersistence
	if aliasPersist == nil {
		aliasPersist = NewFileAliasPersistence(DefaultAliasFilePath, cfg.Registry.Labels())
	}

	aliases, err := aliasPersist.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load alias table: %w", err)
	}

	return &Evaluator{
		classifier:   cfg.Classifier,
		registry:     cfg.Registry,
		aliases:      aliases,
		aliasPersist: aliasPersist,
		workers:      cfg.Workers,
	}, nil
}

// workerResult carries one worker's private accumulation back to the
// merge step.
type workerResult struct {
	counts    Counts
	scored    int
	failures  int
	latencies []time.Duration
	err       error
}

// Evaluate runs the classifier over the samples and returns the merged
// scores. Samples are spread across the configured workers; each worker
// accumulates into a private report and the counts are summed afterward,
// so the unsynchronized report is never shared.
func (e *Evaluator) Evaluate(ctx context.Context, samples []Sample) (*Evaluation, error) {
	start := time.Now()

	targets, err := e.encodeTargets(samples)
	if err != nil {
		return nil, err
	}

	shares := shard(samples, e.workers)
	results := make(chan workerResult, len(shares))

	var wg sync.WaitGroup
	offset := 0
	for _, share := range shares {
		wg.Add(1)
		go func(samples []Sample, targets []int) {
			defer wg.Done()
			results <- e.runWorker(ctx, samples, targets)
		}(share, targets[offset:offset+len(share)])
		offset += len(share)
	}
	wg.Wait()
	close(results)

	merged, err := NewClassificationReport(e.registry.NumClasses(), nil)
	if err != nil {
		return nil, err
	}

	eval := &Evaluation{
		RunID:  uuid.New().String(),
		Scores: make(map[AverageMode]Scores, 3),
	}
	for res := range results {
		if res.err != nil {
			return nil, res.err
		}
		if err := merged.Merge(res.counts); err != nil {
			return nil, err
		}
		eval.Samples += res.scored
		eval.Failures += res.failures
		eval.Latencies = append(eval.Latencies, res.latencies...)
	}

	eval.Counts = merged.Counts()
	for _, mode := range []AverageMode{AverageMacro, AverageMicro, AverageWeighted} {
		scores, err := merged.Scores(mode)
		if err != nil {
			return nil, err
		}
		eval.Scores[mode] = scores
	}
	eval.Duration = time.Since(start)

	return eval, nil
}

// encodeTargets validates the whole dataset's true labels up front so a
// bad dataset fails before any classifier call.
func (e *Evaluator) encodeTargets(samples []Sample) ([]int, error) {
	labels := make([]string, len(samples))
	for i, s := range samples {
		labels[i] = s.Label
	}
	return e.registry.EncodeBatch(labels)
}

// runWorker classifies its share of samples into a private report.
func (e *Evaluator) runWorker(ctx context.Context, samples []Sample, targets []int) workerResult {
	report, err := NewClassificationReport(e.registry.NumClasses(), nil)
	if err != nil {
		return workerResult{err: err}
	}

	res := workerResult{latencies: make([]time.Duration, 0, len(samples))}
	preds := make([]int, 0, len(samples))
	scoredTargets := make([]int, 0, len(samples))

	for i, sample := range samples {
		select {
		case <-ctx.Done():
			res.err = ctx.Err()
			return res
		default:
		}

		sampleStart := time.Now()
		label, err := e.classifier.Classify(ctx, sample.Text)
		res.latencies = append(res.latencies, time.Since(sampleStart))
		if err != nil {
			log.Printf("classification failed for sample: %v", err)
			res.failures++
			continue
		}

		id, ok := e.resolveLabel(label)
		if !ok {
			log.Printf("classifier returned label %q outside the registry", label)
			res.failures++
			continue
		}

		preds = append(preds, id)
		scoredTargets = append(scoredTargets, targets[i])
	}

	counts, err := report.Ingest(preds, scoredTargets)
	if err != nil {
		res.err = err
		return res
	}

	res.counts = counts
	res.scored = len(preds)
	return res
}

// resolveLabel folds a predicted free-text label through the alias table
// and encodes it. Labels that normalize to nothing in the registry are
// unresolvable.
func (e *Evaluator) resolveLabel(label string) (int, bool) {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return 0, false
	}

	canonical := e.aliases.Canonical(label)
	id, err := e.registry.Encode(canonical)
	if err != nil {
		return 0, false
	}
	return id, true
}

// RecordAlias teaches the evaluator that a free-text label maps to one of
// the registry's class labels. Unknown canonical labels are rejected so
// every alias keeps resolving to a scorable class.
func (e *Evaluator) RecordAlias(alias, canonical string) error {
	if !e.registry.Contains(canonical) {
		return &UnknownLabelError{Label: canonical}
	}
	e.aliases.Alias(strings.ToLower(strings.TrimSpace(alias)), canonical)
	return nil
}

// SaveAliases persists the current alias table.
func (e *Evaluator) SaveAliases() error {
	return e.aliasPersist.Save(e.aliases)
}

// shard splits samples into at most n contiguous, near-equal shares.
func shard(samples []Sample, n int) [][]Sample {
	if n > len(samples) {
		n = len(samples)
	}
	if n <= 1 {
		if len(samples) == 0 {
			return nil
		}
		return [][]Sample{samples}
	}

	shares := make([][]Sample, 0, n)
	size := (len(samples) + n - 1) / n
	for start := 0; start < len(samples); start += size {
		end := start + size
		if end > len(samples) {
			end = len(samples)
		}
		shares = append(shares, samples[start:end])
	}
	return shares
}
