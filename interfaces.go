package claseval

import (
	"context"

	"github.com/FrenchMajesty/classifier-eval/utils/disjoint_set"
)

// TextClassifier is any prediction source under evaluation.
type TextClassifier interface {
	Classify(ctx context.Context, text string) (string, error)
}

// AliasPersistence handles loading and saving the label alias table
// between evaluation runs.
type AliasPersistence interface {
	Load() (*disjoint_set.AliasSet, error)
	Save(aliases *disjoint_set.AliasSet) error
}
