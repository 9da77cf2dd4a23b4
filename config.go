package claseval

const (
	// DefaultWorkers is the default number of concurrent classification
	// workers during an evaluation run.
	DefaultWorkers = 1

	// DefaultAliasFilePath is the default location for alias table
	// persistence.
	DefaultAliasFilePath = "./alias_state.json"
)

// Config holds configuration for the Evaluator
type Config struct {
	// Classifier is the prediction source under evaluation. Required.
	Classifier TextClassifier

	// Registry maps class labels to contiguous ids. Required.
	Registry *LabelRegistry

	// AliasPersistence handles loading/saving the label alias table. If nil,
	// uses file-based persistence at ./alias_state.json seeded with the
	// registry's labels.
	AliasPersistence AliasPersistence

	// Workers is the number of goroutines classifying samples. Each worker
	// accumulates into a private report; the reports are merged after all
	// workers finish. If 0, uses DefaultWorkers.
	Workers int
}

// applyDefaults fills in default values for unset config fields
func (c *Config) applyDefaults() {
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
}
