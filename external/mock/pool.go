package mock

import (
	"errors"
	"math/big"
	"sync"

	"orbit/core/types"
	"orbit/crypto"
)

var (
	errReserveNotFound = errors.New("mock: reserve not registered")
	errAuctionNotFound = errors.New("mock: auction not registered")
)

func oneE12() *big.Int { return big.NewInt(1_000_000_000_000) }

type reserveState struct {
	handle   *Token
	bRate    *big.Int
	metadata types.ReserveMetadata
	live     bool
}

type auctionState struct {
	borrower         crypto.Address
	lotAsset         crypto.Address
	debtAsset        crypto.Address
	lotAmount        *big.Int
	debtAmount       *big.Int
	percentAvailable uint32
}

// Pool is an in-memory stand-in for the external lending pool Treasury and
// PegKeeper drive through Submit/GetPositions/GetReserve. It tracks real
// per-reserve custodial balances against the Token handles it was
// registered with, so a caller that supplies, withdraws, repays, or fills a
// liquidation sees its own token balances move exactly as a live pool
// would. The interest-rate curve and auction-creation logic are the real
// pool's own non-goal machinery (spec.md §1); SeedAuction stands in for
// whatever process would have created one.
type Pool struct {
	mu        sync.Mutex
	self      crypto.Address
	reserves  map[string]*reserveState
	positions map[string]*types.Position
	auctions  map[string]*auctionState

	backstopTakeRate uint32
	maxPositions     uint32
	emissions        []types.ReserveEmissionMetadata
	status           uint32
}

// NewPool constructs an empty pool identified by self, the address its
// custodial balances are held under.
func NewPool(self crypto.Address) *Pool {
	return &Pool{
		self:      self,
		reserves:  make(map[string]*reserveState),
		positions: make(map[string]*types.Position),
		auctions:  make(map[string]*auctionState),
	}
}

// RegisterReserve enrolls asset as a reserve backed by handle, starting at a
// 1:1 b_rate and the given static configuration.
func (p *Pool) RegisterReserve(asset crypto.Address, handle *Token, metadata types.ReserveMetadata) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reserves[asset.String()] = &reserveState{handle: handle, bRate: oneE12(), metadata: metadata, live: true}
}

// SetBRate overrides a registered reserve's b_rate, simulating accrued pool
// interest for tests and demo scenarios.
func (p *Pool) SetBRate(asset crypto.Address, bRate *big.Int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	r, ok := p.reserves[asset.String()]
	if !ok {
		return errReserveNotFound
	}
	r.bRate = new(big.Int).Set(bRate)
	return nil
}

// SeedAuction registers a liquidation opportunity against borrower, crediting
// the pool's own custody with lotAmount of lotAsset so a subsequent
// WithdrawCollateral fill has real tokens to pay out, and recording the
// borrower's pre-liquidation position.
func (p *Pool) SeedAuction(id, borrower, lotAsset, debtAsset crypto.Address, lotAmount, debtAmount *big.Int, percentAvailable uint32) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	lotReserve, ok := p.reserves[lotAsset.String()]
	if !ok {
		return errReserveNotFound
	}
	p.auctions[id.String()] = &auctionState{
		borrower:         borrower,
		lotAsset:         lotAsset,
		debtAsset:        debtAsset,
		lotAmount:        new(big.Int).Set(lotAmount),
		debtAmount:       new(big.Int).Set(debtAmount),
		percentAvailable: percentAvailable,
	}
	borrowerPos := p.positionForLocked(borrower)
	borrowerPos.Collateral[lotAsset.String()] = new(big.Int).Set(lotAmount)
	borrowerPos.Liabilities[debtAsset.String()] = new(big.Int).Set(debtAmount)
	lotReserve.handle.Credit(p.self, lotAmount)
	return nil
}

func (p *Pool) positionForLocked(user crypto.Address) *types.Position {
	key := user.String()
	pos, ok := p.positions[key]
	if !ok {
		pos = types.NewPosition()
		p.positions[key] = pos
	}
	return pos
}

func addBig(cur *big.Int, delta *big.Int) *big.Int {
	if cur == nil {
		cur = big.NewInt(0)
	}
	return new(big.Int).Add(cur, delta)
}

func subBig(cur *big.Int, delta *big.Int) *big.Int {
	if cur == nil {
		cur = big.NewInt(0)
	}
	return new(big.Int).Sub(cur, delta)
}

// mulDivPercent computes amount*pct/100, the fill-share arithmetic Blend-style
// liquidation auctions use (spec.md §6, grounded on the upstream pool's
// percent-available convention rather than a basis-points one).
func mulDivPercent(amount *big.Int, pct uint32) *big.Int {
	product := new(big.Int).Mul(amount, big.NewInt(int64(pct)))
	return product.Quo(product, big.NewInt(100))
}

func clonePosition(pos *types.Position) *types.Position {
	clone := types.NewPosition()
	for k, v := range pos.Collateral {
		clone.Collateral[k] = new(big.Int).Set(v)
	}
	for k, v := range pos.Liabilities {
		clone.Liabilities[k] = new(big.Int).Set(v)
	}
	for k, v := range pos.Supply {
		clone.Supply[k] = new(big.Int).Set(v)
	}
	return clone
}

// Submit executes requests in order against from's position, moving real
// token balances between from/to and this pool's own custody. It implements
// external.LendingPool.
func (p *Pool) Submit(from, spender, to crypto.Address, requests []types.Request) (*types.Position, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, req := range requests {
		switch req.Type {
		case types.RequestSupply:
			reserve, ok := p.reserves[req.Address.String()]
			if !ok {
				return nil, errReserveNotFound
			}
			if err := reserve.handle.Transfer(from, p.self, req.Amount); err != nil {
				return nil, err
			}
			pos := p.positionForLocked(from)
			pos.Supply[req.Address.String()] = addBig(pos.Supply[req.Address.String()], req.Amount)

		case types.RequestWithdraw:
			reserve, ok := p.reserves[req.Address.String()]
			if !ok {
				return nil, errReserveNotFound
			}
			pos := p.positionForLocked(from)
			pos.Supply[req.Address.String()] = subBig(pos.Supply[req.Address.String()], req.Amount)
			if err := reserve.handle.Transfer(p.self, to, req.Amount); err != nil {
				return nil, err
			}

		case types.RequestWithdrawCollateral:
			reserve, ok := p.reserves[req.Address.String()]
			if !ok {
				return nil, errReserveNotFound
			}
			pos := p.positionForLocked(from)
			pos.Collateral[req.Address.String()] = subBig(pos.Collateral[req.Address.String()], req.Amount)
			if err := reserve.handle.Transfer(p.self, to, req.Amount); err != nil {
				return nil, err
			}

		case types.RequestRepay:
			reserve, ok := p.reserves[req.Address.String()]
			if !ok {
				return nil, errReserveNotFound
			}
			pos := p.positionForLocked(from)
			pos.Liabilities[req.Address.String()] = subBig(pos.Liabilities[req.Address.String()], req.Amount)
			if err := reserve.handle.Transfer(to, p.self, req.Amount); err != nil {
				return nil, err
			}

		case types.RequestFillUserLiquidationAuction:
			auction, ok := p.auctions[req.Address.String()]
			if !ok {
				return nil, errAuctionNotFound
			}
			pct := uint32(req.Amount.Int64())
			if pct > auction.percentAvailable {
				pct = auction.percentAvailable
			}
			lotShare := mulDivPercent(auction.lotAmount, pct)
			debtShare := mulDivPercent(auction.debtAmount, pct)

			fillerPos := p.positionForLocked(from)
			fillerPos.Collateral[auction.lotAsset.String()] = addBig(fillerPos.Collateral[auction.lotAsset.String()], lotShare)
			fillerPos.Liabilities[auction.debtAsset.String()] = addBig(fillerPos.Liabilities[auction.debtAsset.String()], debtShare)

			borrowerPos := p.positionForLocked(auction.borrower)
			borrowerPos.Collateral[auction.lotAsset.String()] = subBig(borrowerPos.Collateral[auction.lotAsset.String()], lotShare)
			borrowerPos.Liabilities[auction.debtAsset.String()] = subBig(borrowerPos.Liabilities[auction.debtAsset.String()], debtShare)

			auction.lotAmount = subBig(auction.lotAmount, lotShare)
			auction.debtAmount = subBig(auction.debtAmount, debtShare)
			if auction.lotAmount.Sign() <= 0 && auction.debtAmount.Sign() <= 0 {
				delete(p.auctions, req.Address.String())
			}
		}
	}

	return clonePosition(p.positionForLocked(from)), nil
}

// GetPositions implements external.LendingPool.
func (p *Pool) GetPositions(user crypto.Address) (*types.Position, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return clonePosition(p.positionForLocked(user)), nil
}

// GetReserve implements external.LendingPool.
func (p *Pool) GetReserve(asset crypto.Address) (*types.Reserve, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	reserve, ok := p.reserves[asset.String()]
	if !ok {
		return nil, errReserveNotFound
	}
	return &types.Reserve{
		Config: types.ReserveConfig{Index: reserve.metadata.Index},
		Data:   types.ReserveData{BRate: new(big.Int).Set(reserve.bRate)},
	}, nil
}
