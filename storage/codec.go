package storage

import (
	"fmt"
	"math/big"

	"orbit/core/types"
	"orbit/crypto"
)

// EncodeAddress renders addr in its bech32 form for storage. The prefix is
// carried by the encoding itself, so DecodeAddress round-trips exactly.
func EncodeAddress(addr crypto.Address) []byte { return []byte(addr.String()) }

// DecodeAddress parses a value previously written by EncodeAddress.
func DecodeAddress(b []byte) (crypto.Address, error) { return crypto.DecodeAddress(string(b)) }

// EncodeBigInt renders n in decimal form. Orbit's amounts are always
// non-negative per spec.md §3, but the encoding is sign-safe regardless.
func EncodeBigInt(n *big.Int) []byte {
	if n == nil {
		n = big.NewInt(0)
	}
	return []byte(n.Text(10))
}

// DecodeBigInt parses a value previously written by EncodeBigInt.
func DecodeBigInt(b []byte) (*big.Int, error) {
	n, ok := new(big.Int).SetString(string(b), 10)
	if !ok {
		return nil, fmt.Errorf("storage: invalid big.Int encoding %q", b)
	}
	return n, nil
}

// EncodeAsset renders an Asset descriptor as a tagged byte string: a kind
// byte followed by either the address's bech32 form or the offchain symbol.
func EncodeAsset(a types.Asset) []byte {
	switch a.Kind {
	case types.AssetOnchain:
		return append([]byte{byte(types.AssetOnchain)}, EncodeAddress(a.Onchain)...)
	default:
		return append([]byte{byte(types.AssetOffchain)}, []byte(a.Offchain)...)
	}
}

// DecodeAsset parses a value previously written by EncodeAsset.
func DecodeAsset(b []byte) (types.Asset, error) {
	if len(b) == 0 {
		return types.Asset{}, fmt.Errorf("storage: empty asset encoding")
	}
	switch types.AssetKind(b[0]) {
	case types.AssetOnchain:
		addr, err := DecodeAddress(b[1:])
		if err != nil {
			return types.Asset{}, err
		}
		return types.NewOnchainAsset(addr), nil
	case types.AssetOffchain:
		return types.NewOffchainAsset(string(b[1:])), nil
	default:
		return types.Asset{}, fmt.Errorf("storage: unknown asset kind byte %d", b[0])
	}
}
