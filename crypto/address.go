// Package crypto provides the address and key primitives shared by every
// Orbit contract. Addresses are bech32-encoded 20-byte values tagged with a
// human-readable prefix identifying which address space they belong to.
package crypto

import (
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcutil/bech32"
)

// AddressPrefix distinguishes the address spaces used across the system.
type AddressPrefix string

const (
	// OrbitPrefix tags addresses belonging to accounts, contracts, and
	// issued stablecoin tokens.
	OrbitPrefix AddressPrefix = "orbit"
	// PoolPrefix tags addresses of external lending-pool instances.
	PoolPrefix AddressPrefix = "orbitpool"
)

// Address is a 20-byte account/contract identifier carrying a human-readable
// prefix for display purposes. The zero value (no bytes) is used as the
// "unset" sentinel throughout the core contracts.
type Address struct {
	prefix AddressPrefix
	bytes  []byte
}

// NewAddress constructs an Address from exactly 20 bytes.
func NewAddress(prefix AddressPrefix, b []byte) (Address, error) {
	if len(b) != 20 {
		return Address{}, fmt.Errorf("crypto: address must be 20 bytes long, got %d", len(b))
	}
	cloned := append([]byte(nil), b...)
	return Address{prefix: prefix, bytes: cloned}, nil
}

// MustNewAddress constructs an address and panics if the input is invalid.
// Reserved for static/test addresses where the length is known at compile
// time.
func MustNewAddress(prefix AddressPrefix, b []byte) Address {
	addr, err := NewAddress(prefix, b)
	if err != nil {
		panic(err)
	}
	return addr
}

// String renders the address in bech32 form.
func (a Address) String() string {
	if len(a.bytes) == 0 {
		return ""
	}
	conv, err := bech32.ConvertBits(a.bytes, 8, 5, true)
	if err != nil {
		panic(err)
	}
	encoded, err := bech32.Encode(string(a.prefix), conv)
	if err != nil {
		panic(err)
	}
	return encoded
}

// Bytes returns a defensive copy of the address's raw bytes. A nil/empty
// slice signals the zero-address sentinel (mappings unset, fee recipients
// not configured).
func (a Address) Bytes() []byte {
	if len(a.bytes) == 0 {
		return nil
	}
	return append([]byte(nil), a.bytes...)
}

// Prefix returns the human-readable prefix associated with the address.
func (a Address) Prefix() AddressPrefix {
	return a.prefix
}

// IsZero reports whether the address carries no bytes — the sentinel for an
// unconfigured reference (e.g. a fee recipient that was never set).
func (a Address) IsZero() bool {
	return len(a.bytes) == 0
}

// Equal reports whether two addresses reference the same 20 bytes,
// regardless of prefix.
func (a Address) Equal(other Address) bool {
	if len(a.bytes) != len(other.bytes) {
		return false
	}
	for i := range a.bytes {
		if a.bytes[i] != other.bytes[i] {
			return false
		}
	}
	return true
}

// MarshalJSON renders the address as its bech32 string, so events and API
// responses carry the same representation a human operator would type.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON parses the bech32 string produced by MarshalJSON.
func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*a = Address{}
		return nil
	}
	decoded, err := DecodeAddress(s)
	if err != nil {
		return err
	}
	*a = decoded
	return nil
}

// DecodeAddress parses a bech32-encoded address string.
func DecodeAddress(addrStr string) (Address, error) {
	prefix, decoded, err := bech32.Decode(addrStr)
	if err != nil {
		return Address{}, fmt.Errorf("crypto: invalid bech32 string: %w", err)
	}
	conv, err := bech32.ConvertBits(decoded, 5, 8, false)
	if err != nil {
		return Address{}, fmt.Errorf("crypto: error converting bits: %w", err)
	}
	return NewAddress(AddressPrefix(prefix), conv)
}
