package box

import "testing"

func TestSetupNavigation(t *testing.T) {
	b, _, _, _ := newBox(t, 3)
	m := NewSetup(b)

	if l1, l2 := m.Lines(); l1 != ">Arm & lock" || l2 != " Settings >" {
		t.Fatalf("main = %q / %q", l1, l2)
	}

	m.Next()
	m.Select()
	if l1, l2 := m.Lines(); l1 != ">Tries 3" || l2 != " Service >" {
		t.Fatalf("settings = %q / %q", l1, l2)
	}

	m.Next()
	m.Select()
	m.Next()
	if l1, l2 := m.Lines(); l1 != " Open latch" || l2 != ">< Back" {
		t.Fatalf("service = %q / %q", l1, l2)
	}

	m.Select()
	if l1, _ := m.Lines(); l1 != ">Arm & lock" {
		t.Fatalf("back edge led to %q", l1)
	}
}

func TestSetupAdjustsDefaultTries(t *testing.T) {
	b, _, _, _ := newBox(t, 3)
	m := NewSetup(b)
	m.Next()
	m.Select()

	m.Select()
	m.Select()
	if b.Store().DefaultTries() != 5 {
		t.Errorf("DefaultTries = %d, want 5", b.Store().DefaultTries())
	}
	if b.Store().IsDirty() {
		t.Error("setting default tries dirtied the store")
	}

	// leave and come back: the table node kept the value
	m.Next()
	m.Select()
	m.Next()
	m.Select()
	m.Next()
	m.Select()
	if l1, _ := m.Lines(); l1 != ">Tries 5" {
		t.Errorf("settings after return = %q", l1)
	}
}

func TestSetupActions(t *testing.T) {
	b, _, latch, _ := newBox(t, 3)
	b.Attempt(0, 1)
	m := NewSetup(b)

	// Settings > Service > Open latch
	m.Next()
	m.Select()
	m.Next()
	m.Select()
	m.Select()
	if latch.locked || b.Store().Tries() != 3 {
		t.Fatal("Open latch did not reset")
	}

	// < Back, Arm & lock
	m.Next()
	m.Select()
	m.Select()
	if !latch.locked || !b.Store().IsLocked() {
		t.Error("Arm & lock did not lock")
	}
}

func TestSettingWraps(t *testing.T) {
	b, _, _, _ := newBox(t, 255)
	m := NewSetup(b)
	m.Next()
	m.Select()
	m.Select()
	if b.Store().DefaultTries() != 1 {
		t.Errorf("DefaultTries = %d, want wrap to 1", b.Store().DefaultTries())
	}
}
