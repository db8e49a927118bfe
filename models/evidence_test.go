package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustodyChainAppendPreservesOrder(t *testing.T) {
	collected := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	accessed := collected.Add(2 * time.Hour)

	chain := CustodyChain{
		{Actor: "ana.silva", Action: "collected", At: collected, Note: "uploaded via API"},
	}
	chain = append(chain, CustodyEntry{Actor: "bruno.costa", Action: "accessed", At: accessed})

	raw, err := chain.Value()
	require.NoError(t, err)

	var restored CustodyChain
	require.NoError(t, restored.Scan(raw))

	require.Len(t, restored, 2)
	assert.Equal(t, "collected", restored[0].Action)
	assert.Equal(t, "ana.silva", restored[0].Actor)
	assert.Equal(t, "accessed", restored[1].Action)
	assert.True(t, restored[1].At.After(restored[0].At))
}

func TestCustodyChainScanEmpty(t *testing.T) {
	var chain CustodyChain
	require.NoError(t, chain.Scan(nil))
	assert.Empty(t, chain)

	require.NoError(t, chain.Scan([]byte("[]")))
	assert.Empty(t, chain)
}
