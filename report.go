package claseval

// Counts holds per-class confusion counts for multiclass single-label
// classification. Index into each slice is the class id.
type Counts struct {
	TP []int
	FP []int
	FN []int
}

// newCounts allocates zeroed count vectors for numClasses classes.
func newCounts(numClasses int) Counts {
	return Counts{
		TP: make([]int, numClasses),
		FP: make([]int, numClasses),
		FN: make([]int, numClasses),
	}
}

// Clone returns an independent copy of the counts.
func (c Counts) Clone() Counts {
	out := newCounts(len(c.TP))
	copy(out.TP, c.TP)
	copy(out.FP, c.FP)
	copy(out.FN, c.FN)
	return out
}

// NumClasses returns the number of classes the counts cover.
func (c Counts) NumClasses() int {
	return len(c.TP)
}

// Support returns the number of true instances per class (tp + fn).
func (c Counts) Support() []int {
	support := make([]int, len(c.TP))
	for i := range support {
		support[i] = c.TP[i] + c.FN[i]
	}
	return support
}

// Add sums other into c vector-wise. Addition is commutative and
// associative, so counts accumulated by independent workers can be
// combined in any order.
func (c Counts) Add(other Counts) error {
	if len(other.TP) != len(c.TP) {
		return &ShapeMismatchError{Predictions: len(other.TP), Targets: len(c.TP)}
	}
	for i := range c.TP {
		c.TP[i] += other.TP[i]
		c.FP[i] += other.FP[i]
		c.FN[i] += other.FN[i]
	}
	return nil
}

// ClassificationReport accumulates per-class confusion counts over one or
// more batches of predicted/true class ids. It is not synchronized:
// concurrent producers should each accumulate into a private report and
// Merge the results afterward.
type ClassificationReport struct {
	registry *LabelRegistry
	counts   Counts
	ingested int
}

// NewClassificationReport creates a report over numClasses classes. If
// labelIDs is nil, the string forms of 0..numClasses-1 are used as labels.
// The id range of labelIDs must exactly cover 0..numClasses-1.
func NewClassificationReport(numClasses int, labelIDs map[string]int) (*ClassificationReport, error) {
	if numClasses <= 0 {
		return nil, &ConfigurationError{Field: "numClasses", Message: "must be a positive integer"}
	}

	var registry *LabelRegistry
	var err error
	if labelIDs == nil {
		registry = DefaultLabelRegistry(numClasses)
	} else {
		registry, err = NewLabelRegistry(labelIDs)
		if err != nil {
			return nil, err
		}
		if registry.NumClasses() != numClasses {
			return nil, &ConfigurationError{
				Field:   "labelIDs",
				Message: "label ids must cover exactly 0..numClasses-1",
			}
		}
	}

	return &ClassificationReport{
		registry: registry,
		counts:   newCounts(numClasses),
	}, nil
}

// Ingest records one batch of predicted/true class ids and returns a
// snapshot of the accumulated counts. Validation happens before any count
// is touched, so a rejected batch leaves the report unchanged. An empty
// batch is a no-op.
func (r *ClassificationReport) Ingest(predictions, targets []int) (Counts, error) {
	if len(predictions) != len(targets) {
		return Counts{}, &ShapeMismatchError{Predictions: len(predictions), Targets: len(targets)}
	}

	numClasses := r.registry.NumClasses()
	for i, p := range predictions {
		if p < 0 || p >= numClasses {
			return Counts{}, &OutOfRangeError{ID: p, Index: i, NumClasses: numClasses}
		}
	}
	for i, t := range targets {
		if t < 0 || t >= numClasses {
			return Counts{}, &OutOfRangeError{ID: t, Index: i, NumClasses: numClasses}
		}
	}

	for i := range predictions {
		if predictions[i] == targets[i] {
			r.counts.TP[predictions[i]]++
		} else {
			r.counts.FP[predictions[i]]++
			r.counts.FN[targets[i]]++
		}
	}
	r.ingested += len(targets)

	return r.counts.Clone(), nil
}

// Counts returns a snapshot of the accumulated counts without resetting
// them.
func (r *ClassificationReport) Counts() Counts {
	return r.counts.Clone()
}

// Ingested returns the total number of samples recorded since the last
// reset. Every target is counted exactly once as either a true positive
// or a false negative, so sum(tp) + sum(fn) always equals this value.
func (r *ClassificationReport) Ingested() int {
	return r.ingested
}

// NumClasses returns the fixed class count.
func (r *ClassificationReport) NumClasses() int {
	return r.registry.NumClasses()
}

// Registry returns the label registry the report was built with.
func (r *ClassificationReport) Registry() *LabelRegistry {
	return r.registry
}

// Merge folds counts from an independently accumulated report into this
// one. The class count must match.
func (r *ClassificationReport) Merge(other Counts) error {
	if other.NumClasses() != r.counts.NumClasses() {
		return &ShapeMismatchError{Predictions: other.NumClasses(), Targets: r.counts.NumClasses()}
	}
	if err := r.counts.Add(other); err != nil {
		return err
	}
	for i := range other.TP {
		r.ingested += other.TP[i] + other.FN[i]
	}
	return nil
}

// Reset zeroes all counts. This is the only operation that decreases
// accumulated state.
func (r *ClassificationReport) Reset() {
	r.counts = newCounts(r.registry.NumClasses())
	r.ingested = 0
}

// Scores computes precision, recall and F1 from the current counts under
// the given averaging mode.
func (r *ClassificationReport) Scores(mode AverageMode) (Scores, error) {
	return PrecisionRecallF1(r.counts.TP, r.counts.FN, r.counts.FP, mode)
}
