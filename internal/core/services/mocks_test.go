package services

import (
	"context"

	"github.com/verity-labs/claimlens-cli/internal/core/domain"
)

// mockEmbedding is a test double for driven.EmbeddingService.
type mockEmbedding struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (m *mockEmbedding) Embed(_ context.Context, text string) ([]float32, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if v, ok := m.vectors[text]; ok {
		return v, nil
	}
	return []float32{0, 0, 1}, nil
}

func (m *mockEmbedding) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := m.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (m *mockEmbedding) Dimensions() int              { return 3 }
func (m *mockEmbedding) ModelName() string            { return "mock-embed" }
func (m *mockEmbedding) Ping(_ context.Context) error { return nil }
func (m *mockEmbedding) Close() error                 { return nil }

// mockReasoning is a test double for driven.ReasoningService.
type mockReasoning struct {
	judgment *domain.Judgment
	err      error
	calls    int
}

func (m *mockReasoning) Judge(_ context.Context, _ string, _ []domain.Chunk) (*domain.Judgment, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.judgment, nil
}

func (m *mockReasoning) ModelName() string            { return "mock-reason" }
func (m *mockReasoning) Ping(_ context.Context) error { return nil }
func (m *mockReasoning) Close() error                 { return nil }

// mockExtractor is a test double for driven.ClaimExtractor.
type mockExtractor struct {
	claims []domain.Claim
	err    error
}

func (m *mockExtractor) Extract(_ context.Context, _ string) ([]domain.Claim, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.claims, nil
}

// mockFetcher is a test double for driven.ContentFetcher.
type mockFetcher struct {
	data []byte
	err  error
}

func (m *mockFetcher) Fetch(_ context.Context, _ string) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.data, nil
}
