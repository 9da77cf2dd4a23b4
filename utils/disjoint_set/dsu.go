package disjoint_set

import (
	"sync"
)

// AliasSet is a union-find structure over label strings with pinned
// canonical roots. Canonical labels (the registry's class labels) always
// win a union, so resolving any alias lands on a class label. Two
// canonical labels never merge.
type AliasSet struct {
	parent    []int
	rank      []int
	ids       map[string]int
	labels    map[int]string
	canonical map[int]bool
	lock      sync.RWMutex
}

// NewAliasSet creates an alias table whose canonical members are the
// given labels.
func NewAliasSet(canonical []string) *AliasSet {
	s := &AliasSet{
		ids:       make(map[string]int),
		labels:    make(map[int]string),
		canonical: make(map[int]bool),
	}
	for _, label := range canonical {
		idx := s.add(label)
		s.canonical[idx] = true
	}
	return s
}

// add registers a new label. Caller must hold the write lock (or be the
// constructor).
func (s *AliasSet) add(label string) int {
	if idx, ok := s.ids[label]; ok {
		return idx
	}
	idx := len(s.parent)
	s.parent = append(s.parent, idx)
	s.rank = append(s.rank, 0)
	s.ids[label] = idx
	s.labels[idx] = label
	return idx
}

// find returns the root of idx with path compression. Caller must hold
// the write lock.
func (s *AliasSet) find(idx int) int {
	if s.parent[idx] == idx {
		return idx
	}
	s.parent[idx] = s.find(s.parent[idx])
	return s.parent[idx]
}

// Alias records that alias resolves to the same class as canonical.
// Both labels are registered if unseen. When one side's root is pinned
// canonical it becomes the root regardless of rank; if both roots are
// canonical the call is a no-op (distinct classes stay distinct).
func (s *AliasSet) Alias(alias, canonical string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	a := s.find(s.add(alias))
	c := s.find(s.add(canonical))
	if a == c {
		return
	}

	switch {
	case s.canonical[a] && s.canonical[c]:
		return
	case s.canonical[a]:
		s.parent[c] = a
	case s.canonical[c]:
		s.parent[a] = c
	case s.rank[a] > s.rank[c]:
		s.parent[c] = a
	case s.rank[a] < s.rank[c]:
		s.parent[a] = c
	default:
		s.parent[c] = a
		s.rank[a]++
	}
}

// Canonical resolves a label to its root label. Unknown labels resolve
// to themselves.
func (s *AliasSet) Canonical(label string) string {
	s.lock.Lock()
	defer s.lock.Unlock()

	idx, ok := s.ids[label]
	if !ok {
		return label
	}
	return s.labels[s.find(idx)]
}

// Connected reports whether two labels resolve to the same root.
func (s *AliasSet) Connected(a, b string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	idxA, okA := s.ids[a]
	idxB, okB := s.ids[b]
	if !okA || !okB {
		return false
	}
	return s.find(idxA) == s.find(idxB)
}

// Size returns the number of labels in the table.
func (s *AliasSet) Size() int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return len(s.ids)
}

// Labels returns all labels in the table.
func (s *AliasSet) Labels() []string {
	s.lock.RLock()
	defer s.lock.RUnlock()

	labels := make([]string, 0, len(s.ids))
	for label := range s.ids {
		labels = append(labels, label)
	}
	return labels
}

// CountSets returns the number of distinct label clusters.
func (s *AliasSet) CountSets() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	roots := make(map[int]bool)
	for i := range s.parent {
		roots[s.find(i)] = true
	}
	return len(roots)
}
