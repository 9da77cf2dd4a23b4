package disjoint_set

import (
	"encoding/json"
)

// MarshalJSON implements json.Marshaler interface
func (s *AliasSet) MarshalJSON() ([]byte, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	canonical := make([]string, 0, len(s.canonical))
	for idx := range s.canonical {
		canonical = append(canonical, s.labels[idx])
	}

	return json.Marshal(map[string]interface{}{
		"parent":    s.parent,
		"rank":      s.rank,
		"labels":    s.ids,
		"canonical": canonical,
	})
}

// UnmarshalJSON implements json.Unmarshaler interface
func (s *AliasSet) UnmarshalJSON(data []byte) error {
	var temp struct {
		Parent    []int          `json:"parent"`
		Rank      []int          `json:"rank"`
		Labels    map[string]int `json:"labels"`
		Canonical []string       `json:"canonical"`
	}

	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}

	s.parent = temp.Parent
	s.rank = temp.Rank
	s.ids = temp.Labels
	s.labels = make(map[int]string, len(temp.Labels))
	for label, idx := range temp.Labels {
		s.labels[idx] = label
	}
	s.canonical = make(map[int]bool, len(temp.Canonical))
	for _, label := range temp.Canonical {
		if idx, ok := s.ids[label]; ok {
			s.canonical[idx] = true
		}
	}

	return nil
}
