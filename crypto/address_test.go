package crypto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddressStringDecodeRoundTrip(t *testing.T) {
	addr := MustNewAddress(OrbitPrefix, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20})
	decoded, err := DecodeAddress(addr.String())
	require.NoError(t, err)
	require.True(t, addr.Equal(decoded))
	require.Equal(t, OrbitPrefix, decoded.Prefix())
}

func TestAddressJSONRoundTrip(t *testing.T) {
	addr := MustNewAddress(PoolPrefix, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20})

	data, err := json.Marshal(addr)
	require.NoError(t, err)

	var decoded Address
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.True(t, addr.Equal(decoded))
}

func TestAddressJSONRoundTripsZeroValue(t *testing.T) {
	var zero Address
	data, err := json.Marshal(zero)
	require.NoError(t, err)
	require.Equal(t, `""`, string(data))

	var decoded Address
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.True(t, decoded.IsZero())
}

func TestAddressEqualIgnoresPrefix(t *testing.T) {
	bytes := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}
	a := MustNewAddress(OrbitPrefix, bytes)
	b := MustNewAddress(PoolPrefix, bytes)
	require.True(t, a.Equal(b))
}
