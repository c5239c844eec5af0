package events

import (
	"math/big"

	"orbit/core/types"
	"orbit/crypto"
)

const adminContract = "Admin"

// NewStablecoin mirrors the admin façade's new_stablecoin passthrough,
// which composes BridgeOracle.add_asset + Treasury.add_stablecoin +
// Treasury.increase_supply into one governance call.
type NewStablecoin struct {
	Token         crypto.Address
	PeggedTo      types.Asset
	BlendPool     crypto.Address
	InitialSupply *big.Int
}

func (NewStablecoin) Topic() (string, string) { return adminContract, "new_stablecoin" }
func (NewStablecoin) EventType() string       { return "admin.new_stablecoin" }

// UpdatePegkeeper mirrors the admin façade's update_pegkeeper passthrough.
type UpdatePegkeeper struct {
	Pegkeeper crypto.Address
}

func (UpdatePegkeeper) Topic() (string, string) { return adminContract, "update_pegkeeper" }
func (UpdatePegkeeper) EventType() string       { return "admin.update_pegkeeper" }

// UpdateOracle mirrors the admin façade's update_oracle passthrough.
type UpdateOracle struct {
	Oracle crypto.Address
}

func (UpdateOracle) Topic() (string, string) { return adminContract, "update_oracle" }
func (UpdateOracle) EventType() string       { return "admin.update_oracle" }

// UpdateSupply mirrors the admin façade's update_supply passthrough; Amount
// carries the signed delta (positive increases, negative decreases).
type UpdateSupply struct {
	Token  crypto.Address
	Amount *big.Int
}

func (UpdateSupply) Topic() (string, string) { return adminContract, "update_supply" }
func (UpdateSupply) EventType() string       { return "admin.update_supply" }

// UpdatePool mirrors the admin façade's update_pool passthrough.
type UpdatePool struct {
	Pool             crypto.Address
	BackstopTakeRate uint32
	MaxPositions     uint32
}

func (UpdatePool) Topic() (string, string) { return adminContract, "update_pool" }
func (UpdatePool) EventType() string       { return "admin.update_pool" }

// SetReserve mirrors the admin façade's set_reserve passthrough.
type SetReserve struct {
	Pool     crypto.Address
	Asset    crypto.Address
	Metadata types.ReserveMetadata
}

func (SetReserve) Topic() (string, string) { return adminContract, "set_reserve" }
func (SetReserve) EventType() string       { return "admin.set_reserve" }

// SetEmissionsConfig mirrors the admin façade's set_emissions_config
// passthrough.
type SetEmissionsConfig struct {
	Pool     crypto.Address
	Metadata []types.ReserveEmissionMetadata
}

func (SetEmissionsConfig) Topic() (string, string) { return adminContract, "set_emissions_config" }
func (SetEmissionsConfig) EventType() string       { return "admin.set_emissions_config" }

// SetStatus mirrors the admin façade's set_status passthrough.
type SetStatus struct {
	Pool   crypto.Address
	Status uint32
}

func (SetStatus) Topic() (string, string) { return adminContract, "set_status" }
func (SetStatus) EventType() string       { return "admin.set_status" }
