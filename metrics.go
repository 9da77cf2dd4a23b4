package claseval

// AverageMode selects how per-class metrics are combined into a single
// score.
type AverageMode string

const (
	// AverageMacro is the unweighted mean over all classes. Classes with
	// zero support still contribute a zero term, so adding an unused
	// class visibly drags the average down instead of being hidden.
	AverageMacro AverageMode = "macro"

	// AverageMicro pools counts across classes before computing the
	// metrics.
	AverageMicro AverageMode = "micro"

	// AverageWeighted weights each class by its support (tp + fn).
	AverageWeighted AverageMode = "weighted"
)

// Scores holds precision, recall and F1 as percentage points. Values are
// unrounded; rounding is the caller's concern.
type Scores struct {
	Precision float64
	Recall    float64
	F1        float64
}

// PrecisionRecallF1 computes precision, recall and F1 from per-class
// count vectors under the given averaging mode. The vectors may come from
// a ClassificationReport snapshot or be caller-supplied; they must share
// one length. Note the argument order: tp, fn, fp.
func PrecisionRecallF1(tp, fn, fp []int, mode AverageMode) (Scores, error) {
	if len(fn) != len(tp) {
		return Scores{}, &ShapeMismatchError{Predictions: len(fn), Targets: len(tp)}
	}
	if len(fp) != len(tp) {
		return Scores{}, &ShapeMismatchError{Predictions: len(fp), Targets: len(tp)}
	}

	switch mode {
	case AverageMacro:
		return macroScores(tp, fn, fp), nil
	case AverageMicro:
		return microScores(tp, fn, fp), nil
	case AverageWeighted:
		return weightedScores(tp, fn, fp), nil
	default:
		return Scores{}, &InvalidModeError{Mode: mode}
	}
}

// classScores computes precision, recall and F1 for a single class.
// Each value is 0 when its denominator is 0.
func classScores(tp, fn, fp int) (precision, recall, f1 float64) {
	if tp+fp > 0 {
		precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		recall = float64(tp) / float64(tp+fn)
	}
	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}
	return precision, recall, f1
}

func macroScores(tp, fn, fp []int) Scores {
	var sumP, sumR, sumF float64
	for c := range tp {
		p, r, f := classScores(tp[c], fn[c], fp[c])
		sumP += p
		sumR += r
		sumF += f
	}
	n := float64(len(tp))
	return Scores{
		Precision: sumP / n * 100,
		Recall:    sumR / n * 100,
		F1:        sumF / n * 100,
	}
}

func microScores(tp, fn, fp []int) Scores {
	var pooledTP, pooledFN, pooledFP int
	for c := range tp {
		pooledTP += tp[c]
		pooledFN += fn[c]
		pooledFP += fp[c]
	}
	p, r, f := classScores(pooledTP, pooledFN, pooledFP)
	return Scores{Precision: p * 100, Recall: r * 100, F1: f * 100}
}

func weightedScores(tp, fn, fp []int) Scores {
	var totalSupport float64
	var sumP, sumR, sumF float64
	for c := range tp {
		support := float64(tp[c] + fn[c])
		if support == 0 {
			continue
		}
		p, r, f := classScores(tp[c], fn[c], fp[c])
		sumP += support * p
		sumR += support * r
		sumF += support * f
		totalSupport += support
	}
	if totalSupport == 0 {
		return Scores{}
	}
	return Scores{
		Precision: sumP / totalSupport * 100,
		Recall:    sumR / totalSupport * 100,
		F1:        sumF / totalSupport * 100,
	}
}
