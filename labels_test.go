package claseval

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewLabelRegistry_Validation(t *testing.T) {
	tests := []struct {
		name     string
		labelIDs map[string]int
		wantErr  bool
	}{
		{"valid", map[string]int{"a": 0, "b": 1, "c": 2}, false},
		{"single class", map[string]int{"only": 0}, false},
		{"empty", map[string]int{}, true},
		{"nil", nil, true},
		{"gap", map[string]int{"a": 0, "b": 2}, true},
		{"duplicate id", map[string]int{"a": 0, "b": 0}, true},
		{"negative id", map[string]int{"a": -1, "b": 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLabelRegistry(tt.labelIDs)
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr {
				var cfgErr *ConfigurationError
				if !errors.As(err, &cfgErr) {
					t.Errorf("expected *ConfigurationError, got %T", err)
				}
			}
		})
	}
}

func TestLabelRegistry_EncodeDecode(t *testing.T) {
	registry, err := NewLabelRegistry(map[string]int{"a": 0, "b": 1, "c": 2})
	if err != nil {
		t.Fatalf("Failed to create registry: %v", err)
	}

	id, err := registry.Encode("b")
	if err != nil || id != 1 {
		t.Errorf("Encode(b) = %d, %v; want 1, nil", id, err)
	}

	label, err := registry.Decode(2)
	if err != nil || label != "c" {
		t.Errorf("Decode(2) = %q, %v; want \"c\", nil", label, err)
	}

	_, err = registry.Encode("d")
	var unknownErr *UnknownLabelError
	if !errors.As(err, &unknownErr) {
		t.Errorf("expected *UnknownLabelError for unknown label, got %T", err)
	}

	_, err = registry.Decode(3)
	var rangeErr *OutOfRangeError
	if !errors.As(err, &rangeErr) {
		t.Errorf("expected *OutOfRangeError for id 3, got %T", err)
	}
}

func TestLabelRegistry_EncodeBatch(t *testing.T) {
	registry, err := NewLabelRegistry(map[string]int{"a": 0, "b": 1, "c": 2})
	if err != nil {
		t.Fatalf("Failed to create registry: %v", err)
	}

	ids, err := registry.EncodeBatch([]string{"b", "a", "a", "b", "c", "b", "a"})
	if err != nil {
		t.Fatalf("EncodeBatch failed: %v", err)
	}
	if !reflect.DeepEqual(ids, []int{1, 0, 0, 1, 2, 1, 0}) {
		t.Errorf("unexpected batch encoding: %v", ids)
	}

	if _, err := registry.EncodeBatch([]string{"a", "nope"}); err == nil {
		t.Error("expected error for unknown label in batch, got nil")
	}
}

func TestLabelRegistry_LabelsOrder(t *testing.T) {
	registry, err := NewLabelRegistry(map[string]int{"gamma": 2, "alpha": 0, "beta": 1})
	if err != nil {
		t.Fatalf("Failed to create registry: %v", err)
	}

	want := []string{"alpha", "beta", "gamma"}
	if got := registry.Labels(); !reflect.DeepEqual(got, want) {
		t.Errorf("Labels() = %v, want %v", got, want)
	}
}

func TestDefaultLabelRegistry(t *testing.T) {
	registry := DefaultLabelRegistry(3)

	if registry.NumClasses() != 3 {
		t.Fatalf("expected 3 classes, got %d", registry.NumClasses())
	}
	if !reflect.DeepEqual(registry.Labels(), []string{"0", "1", "2"}) {
		t.Errorf("unexpected default labels: %v", registry.Labels())
	}
	if !registry.Contains("1") || registry.Contains("3") {
		t.Error("Contains gave wrong answers for default labels")
	}
}
