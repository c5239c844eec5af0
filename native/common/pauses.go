package common

import "sync"

// Pauses is the mutex-guarded module-pause registry cmd/orbitd hands to
// every engine's SetPauses, mirroring the host node's own
// modulePauses map/IsPaused pair so a single admin action pausing
// "treasury" or "pegkeeper" takes effect across every live engine sharing
// the instance.
type Pauses struct {
	mu     sync.RWMutex
	paused map[string]bool
}

// NewPauses constructs an empty registry — every module starts unpaused.
func NewPauses() *Pauses {
	return &Pauses{paused: make(map[string]bool)}
}

// IsPaused implements PauseView.
func (p *Pauses) IsPaused(module string) bool {
	if p == nil {
		return false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.paused[module]
}

// SetPaused toggles module's circuit breaker.
func (p *Pauses) SetPaused(module string, paused bool) {
	if p == nil || module == "" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paused[module] = paused
}
