package storage

import "orbit/crypto"

// Tagged storage keys, one constructor per entry in spec.md §6's "Persisted
// state keys" list. Every engine reads/writes state exclusively through
// these constructors so the tagged-key scheme lives in one place instead of
// being re-derived ad hoc at each call site.

func tagged(tag string, parts ...string) []byte {
	out := []byte(tag)
	for _, p := range parts {
		out = append(out, 0x00)
		out = append(out, []byte(p)...)
	}
	return out
}

// AdminKey stores the governance address for a contract.
func AdminKey() []byte { return tagged("Admin") }

// PegkeeperKey stores Treasury's configured PegKeeper address.
func PegkeeperKey() []byte { return tagged("Pegkeeper") }

// TreasuryKey stores PegKeeper's configured Treasury address.
func TreasuryKey() []byte { return tagged("Treasury") }

// RouterKey stores PegKeeper's configured AMM router address.
func RouterKey() []byte { return tagged("Router") }

// FactoryKey stores Treasury's configured pool-factory address.
func FactoryKey() []byte { return tagged("Factory") }

// OracleKey stores BridgeOracle's configured upstream oracle address.
func OracleKey() []byte { return tagged("Oracle") }

// BlendPoolKey stores the pool address backing an issued stablecoin.
func BlendPoolKey(token crypto.Address) []byte { return tagged("BlendPool", token.String()) }

// TotalSupplyKey stores a token's outstanding principal.
func TotalSupplyKey(token crypto.Address) []byte { return tagged("TotalSupply", token.String()) }

// BridgeKey stores an asset's bridge mapping.
func BridgeKey(assetKey string) []byte { return tagged("Bridge", assetKey) }

// BridgeOracleKey stores the admin façade's configured BridgeOracle address.
func BridgeOracleKey() []byte { return tagged("BridgeOracle") }
