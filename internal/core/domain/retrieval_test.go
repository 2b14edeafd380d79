package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrievalScope_Validate(t *testing.T) {
	tests := []struct {
		name    string
		scope   RetrievalScope
		wantErr bool
	}{
		{"document scope", ScopeDocument("doc-1"), false},
		{"company scope", ScopeCompanyLatest("duo"), false},
		{"empty scope", RetrievalScope{}, true},
		{"both set", RetrievalScope{DocumentID: "doc-1", CompanyID: "duo"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.scope.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFusionWeights_Normalised(t *testing.T) {
	w := FusionWeights{Semantic: 7, Lexical: 3}.Normalised()
	assert.InDelta(t, 0.7, w.Semantic, 1e-9)
	assert.InDelta(t, 0.3, w.Lexical, 1e-9)
	assert.InDelta(t, 1.0, w.Semantic+w.Lexical, 1e-9)
}

func TestFusionWeights_NormalisedZeroFallsBackToDefaults(t *testing.T) {
	w := FusionWeights{}.Normalised()
	def := DefaultFusionWeights()
	require.Equal(t, def, w)
	assert.Greater(t, w.Semantic, w.Lexical)
}
