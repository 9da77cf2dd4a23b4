package voyage

import "testing"

func TestNewEmbeddingService_Defaults(t *testing.T) {
	service := NewEmbeddingService("test-key")

	if service.dimensions != EMBEDDING_DIMENSIONS {
		t.Errorf("expected default dimensions %d, got %d", EMBEDDING_DIMENSIONS, service.dimensions)
	}
	if service.model != VOYAGEAI_EMBEDDING_MODEL {
		t.Errorf("expected default model %q, got %q", VOYAGEAI_EMBEDDING_MODEL, service.model)
	}
}

func TestEmbeddingService_Setters(t *testing.T) {
	service := NewEmbeddingService("test-key")

	service.SetDimensions(256)
	if service.GetEmbeddingDimensions() != 256 {
		t.Errorf("expected 256 dimensions, got %d", service.GetEmbeddingDimensions())
	}

	service.SetModel("voyage-3-large")
	if service.model != "voyage-3-large" {
		t.Errorf("expected model override, got %q", service.model)
	}
}

func TestParseEmbeddingType(t *testing.T) {
	if got := parseEmbeddingType(VoyageEmbeddingTypeDefault); got != nil {
		t.Errorf("expected nil for default embedding type, got %q", *got)
	}

	got := parseEmbeddingType(VoyageEmbeddingTypeQuery)
	if got == nil || *got != "query" {
		t.Errorf("expected query input type, got %v", got)
	}

	got = parseEmbeddingType(VoyageEmbeddingTypeDocument)
	if got == nil || *got != "document" {
		t.Errorf("expected document input type, got %v", got)
	}
}
