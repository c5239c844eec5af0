// Package common holds small pieces of infrastructure shared by every
// native contract engine: the module-pause guard used ahead of every
// state-changing operation.
package common

import "errors"

// ErrModulePaused is returned when Guard finds the named module paused.
var ErrModulePaused = errors.New("module paused")

// PauseView is the read-only view into governance-controlled circuit
// breakers. Treasury, PegKeeper, and BridgeOracle each check their own
// module name before mutating state, so a single incident response action
// (pausing "treasury" or "pegkeeper") halts exactly the affected surface.
type PauseView interface {
	IsPaused(module string) bool
}

// Guard aborts the caller with ErrModulePaused if module is currently
// paused. A nil PauseView or empty module name is treated as "never
// paused", which is the default for engines constructed without explicit
// pause wiring (e.g. in unit tests).
func Guard(p PauseView, module string) error {
	if p == nil || module == "" {
		return nil
	}
	if p.IsPaused(module) {
		return ErrModulePaused
	}
	return nil
}
