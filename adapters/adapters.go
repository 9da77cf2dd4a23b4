// Package adapters wires external providers into TextClassifier
// implementations the evaluator can score.
package adapters

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/FrenchMajesty/classifier-eval/adapters/openai"
	"github.com/FrenchMajesty/classifier-eval/adapters/pinecone"
	"github.com/FrenchMajesty/classifier-eval/adapters/voyage"
	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/structpb"
)

const defaultModel = "gpt-4.1-mini"

const systemPromptTemplate = `You are a text classification assistant. Given a text, classify it into exactly one of the allowed category labels.

Allowed labels:
%s

Rules:
- Return ONLY the label, nothing else
- Use the label verbatim, lowercase
- Never invent a label outside the list`

// LLMClassifier classifies text by prompting an OpenAI-compatible chat
// model with a fixed label set.
type LLMClassifier struct {
	client       openai.LanguageModelClient
	systemPrompt string
	model        string
	temperature  *float32 // Optional temperature. If nil, omit from request.
}

// NewLLMClassifier creates an LLM-backed classifier constrained to the
// given labels. The API key falls back to OPENAI_API_KEY; baseURL may
// point at any compatible provider.
func NewLLMClassifier(apiKey *string, labels []string, model string, baseURL string, temperature *float32) (*LLMClassifier, error) {
	key, err := loadEnvVar(apiKey, "OPENAI_API_KEY")
	if err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("at least one label is required")
	}

	client := openai.NewClient(*key)
	if baseURL != "" {
		client.SetBaseURL(baseURL)
	}

	instance := &LLMClassifier{
		client:       client,
		systemPrompt: fmt.Sprintf(systemPromptTemplate, "- "+strings.Join(labels, "\n- ")),
		model:        defaultModel,
		temperature:  temperature,
	}
	if model != "" {
		instance.model = model
	}

	return instance, nil
}

// Classify asks the chat model for a single label
func (c *LLMClassifier) Classify(ctx context.Context, text string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatMessage{
			{
				Role:    openai.MessageRoleSystem,
				Content: &c.systemPrompt,
			},
			{
				Role:    openai.MessageRoleUser,
				Content: &text,
			},
		},
		MaxCompletionTokens: 50,
	}

	// Only set temperature if specified (some models don't support it)
	if c.temperature != nil {
		req.Temperature = *c.temperature
	}

	resp, err := c.client.ChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to get LLM response: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == nil {
		return "", fmt.Errorf("no response from LLM")
	}

	label := strings.TrimSpace(*resp.Choices[0].Message.Content)
	return strings.ToLower(label), nil
}

// embeddingClient is the slice of the voyage service the classifiers use
type embeddingClient interface {
	GenerateEmbedding(ctx context.Context, text string, embeddingType voyage.VoyageEmbeddingType) ([]float32, error)
}

// vectorIndex is the slice of the pinecone gateway the classifiers use
type vectorIndex interface {
	Search(ctx context.Context, queryVector []float32, topK int, filter map[string]any, includeMetadata bool) ([]pinecone.QueryMatch, error)
	Upsert(ctx context.Context, vectors []pinecone.Vector) error
}

const (
	// DefaultTopK is how many exemplars a nearest-neighbor lookup considers.
	DefaultTopK = 5

	// DefaultMinSimilarity is the floor below which a match is ignored.
	DefaultMinSimilarity = 0.70
)

// NearestNeighborClassifier labels text by majority vote among the most
// similar labeled exemplars in a vector index.
type NearestNeighborClassifier struct {
	embedding     embeddingClient
	index         vectorIndex
	topK          int
	minSimilarity float32
}

// NewNearestNeighborClassifier creates a nearest-neighbor classifier
// backed by VoyageAI embeddings and a Pinecone exemplar index. API keys
// fall back to VOYAGEAI_API_KEY and PINECONE_API_KEY; the index host
// falls back to PINECONE_HOST.
func NewNearestNeighborClassifier(voyageKey, pineconeKey, host *string, namespace string) (*NearestNeighborClassifier, error) {
	vKey, err := loadEnvVar(voyageKey, "VOYAGEAI_API_KEY")
	if err != nil {
		return nil, err
	}

	pKey, err := loadEnvVar(pineconeKey, "PINECONE_API_KEY")
	if err != nil {
		return nil, err
	}

	h, err := loadEnvVar(host, "PINECONE_HOST")
	if err != nil {
		return nil, err
	}

	service, err := pinecone.NewPineconeService(*pKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create pinecone service: %w", err)
	}

	index, err := service.ForIndex(*h, namespace)
	if err != nil {
		return nil, err
	}

	return &NearestNeighborClassifier{
		embedding:     voyage.NewEmbeddingService(*vKey),
		index:         index,
		topK:          DefaultTopK,
		minSimilarity: DefaultMinSimilarity,
	}, nil
}

// SetTopK overrides the number of exemplars considered per lookup
func (c *NearestNeighborClassifier) SetTopK(topK int) {
	c.topK = topK
}

// SetMinSimilarity overrides the similarity floor
func (c *NearestNeighborClassifier) SetMinSimilarity(min float32) {
	c.minSimilarity = min
}

// Classify embeds the text and votes among its nearest labeled exemplars
func (c *NearestNeighborClassifier) Classify(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("cannot classify empty text")
	}

	embedding, err := c.embedding.GenerateEmbedding(ctx, text, voyage.VoyageEmbeddingTypeQuery)
	if err != nil {
		return "", fmt.Errorf("failed to generate embedding: %w", err)
	}

	matches, err := c.index.Search(ctx, embedding, c.topK, nil, true)
	if err != nil {
		return "", fmt.Errorf("failed to search exemplar index: %w", err)
	}

	votes := make(map[string]int)
	best := make(map[string]float32)
	for _, match := range matches {
		if match.Score < c.minSimilarity || match.Vector == nil || match.Vector.Metadata == nil {
			continue
		}
		label, ok := match.Vector.Metadata.AsMap()["label"].(string)
		if !ok {
			continue
		}
		votes[label]++
		if match.Score > best[label] {
			best[label] = match.Score
		}
	}

	if len(votes) == 0 {
		return "", fmt.Errorf("no exemplar within similarity %.2f of text", c.minSimilarity)
	}

	// Majority vote, best similarity breaks ties
	var winner string
	for label, n := range votes {
		if winner == "" || n > votes[winner] || (n == votes[winner] && best[label] > best[winner]) {
			winner = label
		}
	}

	return winner, nil
}

// IndexExemplars embeds labeled samples and upserts them into the
// exemplar index so future lookups can vote on them.
func (c *NearestNeighborClassifier) IndexExemplars(ctx context.Context, texts, labels []string) error {
	if len(texts) != len(labels) {
		return fmt.Errorf("got %d texts but %d labels", len(texts), len(labels))
	}

	vectors := make([]pinecone.Vector, 0, len(texts))
	for i, text := range texts {
		embedding, err := c.embedding.GenerateEmbedding(ctx, text, voyage.VoyageEmbeddingTypeDocument)
		if err != nil {
			return fmt.Errorf("failed to embed exemplar %d: %w", i, err)
		}

		metadata, err := structpb.NewStruct(map[string]any{
			"vector_text": text,
			"label":       labels[i],
		})
		if err != nil {
			return err
		}

		vectors = append(vectors, pinecone.Vector{
			Id:     uuid.New().String(),
			Values: embedding,
			Metadata: &pinecone.Metadata{
				Fields: metadata.Fields,
			},
		})
	}

	return c.index.Upsert(ctx, vectors)
}

// loadEnvVar loads an environment variable into a pointer if no value is provided
func loadEnvVar(target *string, envKey string) (*string, error) {
	if target == nil {
		envVar := os.Getenv(envKey)
		if envVar == "" {
			return nil, fmt.Errorf("%s environment variable not set and no value provided", envKey)
		}
		return &envVar, nil
	}
	return target, nil
}
