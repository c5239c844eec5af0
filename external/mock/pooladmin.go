package mock

import (
	"errors"

	"orbit/core/types"
	"orbit/crypto"
)

var errNoQueuedReserve = errors.New("mock: no reserve queued for this asset")

// PoolAdmin implements external.PoolAdmin against a Pool's own reserve,
// status, and emissions fields, mirroring the real pool's
// queue_set_reserve/set_reserve two-step commit (admin/src/contract.rs).
// QueueSetReserve stages metadata without activating the reserve;
// SetReserveLive promotes the staged metadata and only then is the reserve
// visible to GetReserve/Submit.
type PoolAdmin struct {
	pool    *Pool
	pending map[string]types.ReserveMetadata
	tokens  map[string]*Token
}

// NewPoolAdmin wraps pool, resolving newly-queued reserves' token handles
// from tokens.
func NewPoolAdmin(pool *Pool, tokens map[string]*Token) *PoolAdmin {
	return &PoolAdmin{pool: pool, pending: make(map[string]types.ReserveMetadata), tokens: tokens}
}

// UpdatePool implements external.PoolAdmin.
func (a *PoolAdmin) UpdatePool(backstopTakeRate, maxPositions uint32) error {
	a.pool.mu.Lock()
	defer a.pool.mu.Unlock()
	a.pool.backstopTakeRate = backstopTakeRate
	a.pool.maxPositions = maxPositions
	return nil
}

// QueueSetReserve stages metadata for asset without activating it.
func (a *PoolAdmin) QueueSetReserve(asset crypto.Address, metadata types.ReserveMetadata) error {
	a.pending[asset.String()] = metadata
	return nil
}

// SetReserveLive promotes asset's queued metadata, registering the reserve
// if it is new.
func (a *PoolAdmin) SetReserveLive(asset crypto.Address) error {
	metadata, ok := a.pending[asset.String()]
	if !ok {
		return errNoQueuedReserve
	}
	delete(a.pending, asset.String())

	a.pool.mu.Lock()
	defer a.pool.mu.Unlock()
	reserve, exists := a.pool.reserves[asset.String()]
	if !exists {
		handle, ok := a.tokens[asset.String()]
		if !ok {
			return errReserveNotFound
		}
		reserve = &reserveState{handle: handle, bRate: oneE12()}
		a.pool.reserves[asset.String()] = reserve
	}
	reserve.metadata = metadata
	reserve.live = true
	return nil
}

// SetEmissionsConfig implements external.PoolAdmin.
func (a *PoolAdmin) SetEmissionsConfig(metadata []types.ReserveEmissionMetadata) error {
	a.pool.mu.Lock()
	defer a.pool.mu.Unlock()
	a.pool.emissions = append([]types.ReserveEmissionMetadata(nil), metadata...)
	return nil
}

// SetStatus implements external.PoolAdmin.
func (a *PoolAdmin) SetStatus(status uint32) error {
	a.pool.mu.Lock()
	defer a.pool.mu.Unlock()
	a.pool.status = status
	return nil
}
