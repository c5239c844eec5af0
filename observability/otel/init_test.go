package otel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseHeadersSplitsKeyValuePairs(t *testing.T) {
	headers := ParseHeaders("x-api-key=abc123, x-tenant = orbit")
	require.Equal(t, "abc123", headers["x-api-key"])
	require.Equal(t, "orbit", headers["x-tenant"])
}

func TestParseHeadersIgnoresMalformedEntries(t *testing.T) {
	headers := ParseHeaders("valid=1,,nopair,  =blank")
	require.Equal(t, map[string]string{"valid": "1"}, headers)
}

func TestInitWithoutTracesReturnsNoopShutdown(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{ServiceName: "orbitd"})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestInitRequiresServiceName(t *testing.T) {
	_, err := Init(context.Background(), Config{Traces: true})
	require.Error(t, err)
}
