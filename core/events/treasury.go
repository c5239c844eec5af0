package events

import (
	"math/big"

	"orbit/crypto"
)

const treasuryContract = "Treasury"

// AddStablecoin mirrors Treasury.add_stablecoin's arguments.
type AddStablecoin struct {
	Token     crypto.Address
	BlendPool crypto.Address
}

func (AddStablecoin) Topic() (string, string) { return treasuryContract, "add_stablecoin" }
func (AddStablecoin) EventType() string       { return "treasury.add_stablecoin" }

// IncreaseSupply mirrors Treasury.increase_supply's arguments.
type IncreaseSupply struct {
	Token  crypto.Address
	Amount *big.Int
}

func (IncreaseSupply) Topic() (string, string) { return treasuryContract, "increase_supply" }
func (IncreaseSupply) EventType() string       { return "treasury.increase_supply" }

// DecreaseSupply mirrors Treasury.decrease_supply's arguments.
type DecreaseSupply struct {
	Token  crypto.Address
	Amount *big.Int
}

func (DecreaseSupply) Topic() (string, string) { return treasuryContract, "decrease_supply" }
func (DecreaseSupply) EventType() string       { return "treasury.decrease_supply" }

// Claim mirrors Treasury.claim's arguments and the computed interest.
type Claim struct {
	Token    crypto.Address
	To       crypto.Address
	Interest *big.Int
}

func (Claim) Topic() (string, string) { return treasuryContract, "claim" }
func (Claim) EventType() string       { return "treasury.claim" }

// KeepPeg mirrors Treasury.keep_peg's dispatch arguments.
type KeepPeg struct {
	FnName string
	Token  crypto.Address
	Amount *big.Int
	Pool   crypto.Address
}

func (KeepPeg) Topic() (string, string) { return treasuryContract, "keep_peg" }
func (KeepPeg) EventType() string       { return "treasury.keep_peg" }

// SetPegkeeper mirrors Treasury.set_pegkeeper.
type SetPegkeeper struct {
	Pegkeeper crypto.Address
}

func (SetPegkeeper) Topic() (string, string) { return treasuryContract, "set_pegkeeper" }
func (SetPegkeeper) EventType() string       { return "treasury.set_pegkeeper" }

// SetAdmin mirrors <contract>.set_admin, reused by all three core contracts
// with the contract name supplied at construction time.
type SetAdmin struct {
	Contract string
	Admin    crypto.Address
}

func (e SetAdmin) Topic() (string, string) { return e.Contract, "set_admin" }
func (e SetAdmin) EventType() string       { return "set_admin" }

// Initialize mirrors a contract's constructor call, reused by all three core
// contracts with the contract name supplied at construction time.
type Initialize struct {
	Contract string
	Admin    crypto.Address
}

func (e Initialize) Topic() (string, string) { return e.Contract, "initialize" }
func (e Initialize) EventType() string       { return "initialize" }
