package claseval

import (
	"sort"
	"strconv"
)

// LabelRegistry is a fixed mapping between class labels and contiguous
// non-negative ids. It is built once and never grows.
type LabelRegistry struct {
	ids    map[string]int
	labels map[int]string
}

// NewLabelRegistry builds a registry from a label-to-id mapping. The id
// set must cover exactly 0..len(labelIDs)-1 with no duplicates.
func NewLabelRegistry(labelIDs map[string]int) (*LabelRegistry, error) {
	if len(labelIDs) == 0 {
		return nil, &ConfigurationError{Field: "labelIDs", Message: "must not be empty"}
	}

	ids := make(map[string]int, len(labelIDs))
	labels := make(map[int]string, len(labelIDs))
	for label, id := range labelIDs {
		if id < 0 || id >= len(labelIDs) {
			return nil, &ConfigurationError{
				Field:   "labelIDs",
				Message: "id for " + strconv.Quote(label) + " is outside 0..C-1",
			}
		}
		if existing, ok := labels[id]; ok {
			return nil, &ConfigurationError{
				Field:   "labelIDs",
				Message: strconv.Quote(label) + " and " + strconv.Quote(existing) + " share id " + strconv.Itoa(id),
			}
		}
		ids[label] = id
		labels[id] = label
	}

	return &LabelRegistry{ids: ids, labels: labels}, nil
}

// DefaultLabelRegistry builds a registry whose labels are the string
// forms of 0..numClasses-1.
func DefaultLabelRegistry(numClasses int) *LabelRegistry {
	ids := make(map[string]int, numClasses)
	labels := make(map[int]string, numClasses)
	for i := 0; i < numClasses; i++ {
		label := strconv.Itoa(i)
		ids[label] = i
		labels[i] = label
	}
	return &LabelRegistry{ids: ids, labels: labels}
}

// NumClasses returns the fixed class count.
func (r *LabelRegistry) NumClasses() int {
	return len(r.ids)
}

// Encode returns the class id for a label.
func (r *LabelRegistry) Encode(label string) (int, error) {
	id, ok := r.ids[label]
	if !ok {
		return 0, &UnknownLabelError{Label: label}
	}
	return id, nil
}

// Decode returns the label for a class id.
func (r *LabelRegistry) Decode(id int) (string, error) {
	label, ok := r.labels[id]
	if !ok {
		return "", &OutOfRangeError{ID: id, NumClasses: len(r.labels)}
	}
	return label, nil
}

// EncodeBatch encodes a column of labels into class ids. The whole batch
// is rejected on the first unknown label.
func (r *LabelRegistry) EncodeBatch(labels []string) ([]int, error) {
	ids := make([]int, len(labels))
	for i, label := range labels {
		id, err := r.Encode(label)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

// Labels returns all labels sorted by class id.
func (r *LabelRegistry) Labels() []string {
	out := make([]string, 0, len(r.ids))
	for label := range r.ids {
		out = append(out, label)
	}
	sort.Slice(out, func(i, j int) bool {
		return r.ids[out[i]] < r.ids[out[j]]
	})
	return out
}

// Contains reports whether the registry knows the label.
func (r *LabelRegistry) Contains(label string) bool {
	_, ok := r.ids[label]
	return ok
}
