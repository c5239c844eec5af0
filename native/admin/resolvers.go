package admin

import (
	"orbit/crypto"
	"orbit/external"
)

// PoolAdminResolver maps a stored pool address to a live governance handle,
// keeping storage (address-only) decoupled from runtime wiring — same
// pattern as pegkeeper.PoolResolver and treasury.PoolResolver.
type PoolAdminResolver interface {
	ResolvePoolAdmin(addr crypto.Address) (external.PoolAdmin, error)
}
