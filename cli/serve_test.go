package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeAddrUsesPortFlag(t *testing.T) {
	addr, err := serveAddr([]string{"-port", "8080"})
	require.NoError(t, err)
	assert.Equal(t, ":8080", addr)
}

func TestServeAddrDefaultPort(t *testing.T) {
	addr, err := serveAddr(nil)
	require.NoError(t, err)
	assert.Equal(t, ":9999", addr)
}

func TestServeAddrRejectsNonNumericPort(t *testing.T) {
	_, err := serveAddr([]string{"-port", "nope"})
	assert.Error(t, err)
}
