package claseval_test

import (
	"errors"
	"math"
	"testing"

	claseval "github.com/FrenchMajesty/classifier-eval"
)

// The reference batch: three classes a/b/c, seven samples.
var (
	refLabelIDs = map[string]int{"a": 0, "b": 1, "c": 2}
	refPreds    = []int{0, 1, 1, 1, 2, 2, 0}
	refTargets  = []int{1, 0, 0, 1, 2, 1, 0}
)

func mustReport(t *testing.T, numClasses int, labelIDs map[string]int) *claseval.ClassificationReport {
	t.Helper()
	report, err := claseval.NewClassificationReport(numClasses, labelIDs)
	if err != nil {
		t.Fatalf("Failed to create report: %v", err)
	}
	return report
}

func TestClassificationReport_ReferenceScenario(t *testing.T) {
	report := mustReport(t, 3, refLabelIDs)

	counts, err := report.Ingest(refPreds, refTargets)
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	wantTP := []int{1, 1, 1}
	wantFP := []int{1, 2, 1}
	wantFN := []int{2, 2, 0}
	for c := 0; c < 3; c++ {
		if counts.TP[c] != wantTP[c] {
			t.Errorf("class %d: expected tp %d, got %d", c, wantTP[c], counts.TP[c])
		}
		if counts.FP[c] != wantFP[c] {
			t.Errorf("class %d: expected fp %d, got %d", c, wantFP[c], counts.FP[c])
		}
		if counts.FN[c] != wantFN[c] {
			t.Errorf("class %d: expected fn %d, got %d", c, wantFN[c], counts.FN[c])
		}
	}

	// Whole-percentage values confirmed against sklearn's
	// precision_recall_fscore_support on the same batch.
	tests := []struct {
		mode                  claseval.AverageMode
		precision, recall, f1 float64
	}{
		{claseval.AverageMacro, 44, 56, 47},
		{claseval.AverageMicro, 43, 43, 43},
		{claseval.AverageWeighted, 43, 43, 41},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			scores, err := claseval.PrecisionRecallF1(counts.TP, counts.FN, counts.FP, tt.mode)
			if err != nil {
				t.Fatalf("PrecisionRecallF1 failed: %v", err)
			}

			if got := math.Round(scores.Precision); got != tt.precision {
				t.Errorf("wrong precision for %s: expected %v, got %v (%f)", tt.mode, tt.precision, got, scores.Precision)
			}
			if got := math.Round(scores.Recall); got != tt.recall {
				t.Errorf("wrong recall for %s: expected %v, got %v (%f)", tt.mode, tt.recall, got, scores.Recall)
			}
			if got := math.Round(scores.F1); got != tt.f1 {
				t.Errorf("wrong f1 for %s: expected %v, got %v (%f)", tt.mode, tt.f1, got, scores.F1)
			}
		})
	}
}

func TestNewClassificationReport_Validation(t *testing.T) {
	tests := []struct {
		name       string
		numClasses int
		labelIDs   map[string]int
	}{
		{"zero classes", 0, nil},
		{"negative classes", -2, nil},
		{"id gap", 3, map[string]int{"a": 0, "b": 1, "c": 3}},
		{"duplicate ids", 3, map[string]int{"a": 0, "b": 1, "c": 1}},
		{"too few labels", 3, map[string]int{"a": 0, "b": 1}},
		{"negative id", 2, map[string]int{"a": -1, "b": 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := claseval.NewClassificationReport(tt.numClasses, tt.labelIDs)
			if err == nil {
				t.Fatal("expected a configuration error, got nil")
			}

			var cfgErr *claseval.ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Errorf("expected *ConfigurationError, got %T (%v)", err, err)
			}
		})
	}
}

func TestNewClassificationReport_DefaultLabels(t *testing.T) {
	report := mustReport(t, 4, nil)

	if report.NumClasses() != 4 {
		t.Errorf("expected 4 classes, got %d", report.NumClasses())
	}

	id, err := report.Registry().Encode("2")
	if err != nil || id != 2 {
		t.Errorf("expected default label \"2\" to encode to 2, got %d (%v)", id, err)
	}
}

func TestIngest_ShapeMismatch(t *testing.T) {
	report := mustReport(t, 3, nil)

	_, err := report.Ingest([]int{0, 1}, []int{0})
	if err == nil {
		t.Fatal("expected shape mismatch error, got nil")
	}

	var shapeErr *claseval.ShapeMismatchError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("expected *ShapeMismatchError, got %T", err)
	}
	if shapeErr.Predictions != 2 || shapeErr.Targets != 1 {
		t.Errorf("expected lengths 2/1 in error, got %d/%d", shapeErr.Predictions, shapeErr.Targets)
	}
}

func TestIngest_OutOfRange(t *testing.T) {
	tests := []struct {
		name    string
		preds   []int
		targets []int
	}{
		{"prediction at C", []int{3}, []int{0}},
		{"negative prediction", []int{-1}, []int{0}},
		{"target at C", []int{0}, []int{3}},
		{"target above C", []int{0, 1}, []int{1, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := mustReport(t, 3, nil)

			_, err := report.Ingest(tt.preds, tt.targets)
			if err == nil {
				t.Fatal("expected out of range error, got nil")
			}

			var rangeErr *claseval.OutOfRangeError
			if !errors.As(err, &rangeErr) {
				t.Fatalf("expected *OutOfRangeError, got %T", err)
			}
			if rangeErr.NumClasses != 3 {
				t.Errorf("expected NumClasses 3 in error, got %d", rangeErr.NumClasses)
			}
		})
	}
}

// A rejected batch must leave no trace: validation happens before any
// count is incremented.
func TestIngest_AllOrNothing(t *testing.T) {
	report := mustReport(t, 3, nil)

	if _, err := report.Ingest([]int{0, 1}, []int{0, 1}); err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	before := report.Counts()

	if _, err := report.Ingest([]int{1, 5}, []int{1, 1}); err == nil {
		t.Fatal("expected out of range error, got nil")
	}

	after := report.Counts()
	for c := 0; c < 3; c++ {
		if after.TP[c] != before.TP[c] || after.FP[c] != before.FP[c] || after.FN[c] != before.FN[c] {
			t.Fatalf("rejected batch mutated counts: before %v after %v", before, after)
		}
	}
	if report.Ingested() != 2 {
		t.Errorf("expected 2 ingested samples, got %d", report.Ingested())
	}
}

func TestIngest_EmptyBatchIsNoOp(t *testing.T) {
	report := mustReport(t, 2, nil)

	counts, err := report.Ingest(nil, nil)
	if err != nil {
		t.Fatalf("Ingest of empty batch failed: %v", err)
	}

	for c := 0; c < 2; c++ {
		if counts.TP[c] != 0 || counts.FP[c] != 0 || counts.FN[c] != 0 {
			t.Errorf("empty batch produced counts: %v", counts)
		}
	}
}

// Ingest returns a snapshot, not a live reference.
func TestIngest_SnapshotIndependence(t *testing.T) {
	report := mustReport(t, 2, nil)

	counts, err := report.Ingest([]int{0, 1}, []int{0, 0})
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	counts.TP[0] = 99
	counts.FN[0] = 99

	fresh := report.Counts()
	if fresh.TP[0] != 1 {
		t.Errorf("mutating the snapshot leaked into the report: tp[0] = %d", fresh.TP[0])
	}
	if fresh.FN[0] != 1 {
		t.Errorf("mutating the snapshot leaked into the report: fn[0] = %d", fresh.FN[0])
	}
}

func TestIngest_CountInvariants(t *testing.T) {
	report := mustReport(t, 4, nil)

	batches := [][2][]int{
		{{0, 1, 2, 3}, {0, 1, 2, 3}},
		{{1, 1, 0}, {2, 1, 0}},
		{{3, 0}, {0, 3}},
	}

	total := 0
	prev := report.Counts()
	for _, batch := range batches {
		counts, err := report.Ingest(batch[0], batch[1])
		if err != nil {
			t.Fatalf("Ingest failed: %v", err)
		}
		total += len(batch[1])

		var sumTP, sumFN int
		for c := 0; c < 4; c++ {
			// Monotonically non-decreasing within a session
			if counts.TP[c] < prev.TP[c] || counts.FP[c] < prev.FP[c] || counts.FN[c] < prev.FN[c] {
				t.Fatalf("counts decreased between ingests: %v -> %v", prev, counts)
			}
			sumTP += counts.TP[c]
			sumFN += counts.FN[c]
		}

		// Every target is counted exactly once as tp or fn
		if sumTP+sumFN != total {
			t.Errorf("sum(tp)+sum(fn) = %d, expected %d", sumTP+sumFN, total)
		}
		if sumTP > total {
			t.Errorf("sum(tp) = %d exceeds total predictions %d", sumTP, total)
		}
		prev = counts
	}
}

// Accumulating two disjoint batches into one report must equal merging
// two independently accumulated reports.
func TestMerge_EquivalentToSequentialIngest(t *testing.T) {
	sequential := mustReport(t, 3, refLabelIDs)
	if _, err := sequential.Ingest(refPreds, refTargets); err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	split := 4
	first := mustReport(t, 3, refLabelIDs)
	if _, err := first.Ingest(refPreds[:split], refTargets[:split]); err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	second := mustReport(t, 3, refLabelIDs)
	if _, err := second.Ingest(refPreds[split:], refTargets[split:]); err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	// Merge in both orders to confirm commutativity
	mergedAB := mustReport(t, 3, refLabelIDs)
	if err := mergedAB.Merge(first.Counts()); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if err := mergedAB.Merge(second.Counts()); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	mergedBA := mustReport(t, 3, refLabelIDs)
	if err := mergedBA.Merge(second.Counts()); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if err := mergedBA.Merge(first.Counts()); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	want := sequential.Counts()
	for _, merged := range []*claseval.ClassificationReport{mergedAB, mergedBA} {
		got := merged.Counts()
		for c := 0; c < 3; c++ {
			if got.TP[c] != want.TP[c] || got.FP[c] != want.FP[c] || got.FN[c] != want.FN[c] {
				t.Fatalf("merged counts differ from sequential: got %v, want %v", got, want)
			}
		}
		if merged.Ingested() != sequential.Ingested() {
			t.Errorf("merged ingested %d, sequential %d", merged.Ingested(), sequential.Ingested())
		}
	}

	for _, mode := range []claseval.AverageMode{claseval.AverageMacro, claseval.AverageMicro, claseval.AverageWeighted} {
		wantScores, err := sequential.Scores(mode)
		if err != nil {
			t.Fatalf("Scores failed: %v", err)
		}
		gotScores, err := mergedAB.Scores(mode)
		if err != nil {
			t.Fatalf("Scores failed: %v", err)
		}
		if gotScores != wantScores {
			t.Errorf("%s scores differ after merge: got %+v, want %+v", mode, gotScores, wantScores)
		}
	}
}

func TestMerge_ShapeMismatch(t *testing.T) {
	report := mustReport(t, 3, nil)
	other := mustReport(t, 2, nil)

	err := report.Merge(other.Counts())
	var shapeErr *claseval.ShapeMismatchError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("expected *ShapeMismatchError, got %T (%v)", err, err)
	}
}

func TestReset(t *testing.T) {
	report := mustReport(t, 3, refLabelIDs)
	if _, err := report.Ingest(refPreds, refTargets); err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	report.Reset()

	counts := report.Counts()
	for c := 0; c < 3; c++ {
		if counts.TP[c] != 0 || counts.FP[c] != 0 || counts.FN[c] != 0 {
			t.Fatalf("Reset left counts behind: %v", counts)
		}
	}
	if report.Ingested() != 0 {
		t.Errorf("Reset left ingested at %d", report.Ingested())
	}
}

func TestCounts_Support(t *testing.T) {
	report := mustReport(t, 3, refLabelIDs)
	counts, err := report.Ingest(refPreds, refTargets)
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	want := []int{3, 3, 1}
	for c, s := range counts.Support() {
		if s != want[c] {
			t.Errorf("class %d: expected support %d, got %d", c, want[c], s)
		}
	}
}
