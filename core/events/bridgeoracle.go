package events

import (
	"orbit/core/types"
	"orbit/crypto"
)

const bridgeOracleContract = "BridgeOracle"

// AddAsset mirrors BridgeOracle.add_asset's arguments.
type AddAsset struct {
	From types.Asset
	To   types.Asset
}

func (AddAsset) Topic() (string, string) { return bridgeOracleContract, "add_asset" }
func (AddAsset) EventType() string       { return "bridgeoracle.add_asset" }

// SetOracle mirrors BridgeOracle.set_oracle.
type SetOracle struct {
	Oracle crypto.Address
}

func (SetOracle) Topic() (string, string) { return bridgeOracleContract, "set_oracle" }
func (SetOracle) EventType() string       { return "bridgeoracle.set_oracle" }
