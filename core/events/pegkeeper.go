package events

import (
	"math/big"

	"orbit/crypto"
)

const pegkeeperContract = "Pegkeeper"

// FlReceive mirrors PegKeeper.fl_receive's arguments plus the realised
// profit, emitted once the handler completes successfully.
type FlReceive struct {
	Token           crypto.Address
	Amount          *big.Int
	BlendPool       crypto.Address
	Auction         crypto.Address
	CollateralToken crypto.Address
	LotAmount       *big.Int
	LiqAmountPct    uint32
	MinProfit       *big.Int
	FeeTaker        crypto.Address
	RealizedProfit  *big.Int
}

func (FlReceive) Topic() (string, string) { return pegkeeperContract, "fl_receive" }
func (FlReceive) EventType() string       { return "pegkeeper.fl_receive" }
