package common

import "testing"

func TestPausesDefaultUnpaused(t *testing.T) {
	p := NewPauses()
	if p.IsPaused("treasury") {
		t.Fatal("expected treasury to start unpaused")
	}
}

func TestPausesSetPausedScopesByModule(t *testing.T) {
	p := NewPauses()
	p.SetPaused("treasury", true)
	if !p.IsPaused("treasury") {
		t.Fatal("expected treasury to be paused")
	}
	if p.IsPaused("pegkeeper") {
		t.Fatal("expected pegkeeper to remain unpaused")
	}
}

func TestGuardRejectsPausedModule(t *testing.T) {
	p := NewPauses()
	p.SetPaused("pegkeeper", true)
	if err := Guard(p, "pegkeeper"); err != ErrModulePaused {
		t.Fatalf("expected ErrModulePaused, got %v", err)
	}
	if err := Guard(p, "treasury"); err != nil {
		t.Fatalf("expected treasury unaffected, got %v", err)
	}
}

func TestGuardWithNilPauseViewNeverBlocks(t *testing.T) {
	if err := Guard(nil, "treasury"); err != nil {
		t.Fatalf("expected nil PauseView to never pause, got %v", err)
	}
}
