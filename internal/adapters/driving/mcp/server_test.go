package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("creates server with valid ports", func(t *testing.T) {
		server, err := NewServer(newTestPorts())

		require.NoError(t, err)
		assert.NotNil(t, server)
	})

	t.Run("rejects missing retrieval service", func(t *testing.T) {
		ports := newTestPorts()
		ports.Retrieval = nil

		_, err := NewServer(ports)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingRetrievalService)
	})

	t.Run("rejects missing verification service", func(t *testing.T) {
		ports := newTestPorts()
		ports.Verification = nil

		_, err := NewServer(ports)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingVerificationService)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("ingest and documents are optional", func(t *testing.T) {
		ports := newTestPorts()
		ports.Ingest = nil
		ports.Documents = nil

		assert.NoError(t, ports.Validate())
	})
}
