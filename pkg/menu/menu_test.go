package menu

import "testing"

func TestValueKinds(t *testing.T) {
	child := &Node{}
	called := false

	tests := []struct {
		name string
		v    Value
		want Kind
	}{
		{"zero", Value{}, KindSetting},
		{"action", Action(func() { called = true }), KindAction},
		{"submenu", SubMenu(child), KindSubMenu},
		{"setting", Setting(5, 1, 10), KindSetting},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.v.Kind() != tt.want {
				t.Errorf("Kind = %v, want %v", tt.v.Kind(), tt.want)
			}
		})
	}
	if called {
		t.Error("constructing an action called it")
	}
}

func TestReassignSwitchesKind(t *testing.T) {
	v := Setting(3, 0, 9)
	v.SetSubMenu(&Node{})
	if v.Kind() != KindSubMenu {
		t.Fatalf("Kind = %v", v.Kind())
	}
	if _, _, _, ok := v.Int(); ok {
		t.Error("Int on a submenu reported ok")
	}
	if v.SetInt(1) {
		t.Error("SetInt on a submenu succeeded")
	}

	v.SetAction(nil)
	if v.Kind() != KindAction || v.sub != nil {
		t.Error("SetAction left stale payload")
	}
}

func TestSettingRange(t *testing.T) {
	v := Setting(5, 1, 10)
	if v.SetInt(11) || v.SetInt(0) {
		t.Error("out-of-range SetInt succeeded")
	}
	if got, _, _, _ := v.Int(); got != 5 {
		t.Errorf("value = %d, want 5", got)
	}
	if !v.SetInt(10) {
		t.Error("SetInt(max) failed")
	}

	v.Adjust(+5)
	if got, lo, hi, _ := v.Int(); got != 10 || lo != 1 || hi != 10 {
		t.Errorf("after Adjust(+5) = %d [%d,%d]", got, lo, hi)
	}
	v.Adjust(-20)
	if got, _, _, _ := v.Int(); got != 1 {
		t.Errorf("after Adjust(-20) = %d, want 1", got)
	}
}

func TestNextToggles(t *testing.T) {
	n := NewNode("a", Value{}, "b", Value{})
	if n.Cursor() != 0 {
		t.Fatal("cursor starts at 1")
	}
	if n.Next() != 1 || n.Next() != 0 || n.Next() != 1 {
		t.Error("Next did not toggle")
	}
	if n.Selected().Label != "b" {
		t.Errorf("Selected = %q", n.Selected().Label)
	}
}

func TestLabelsTruncated(t *testing.T) {
	n := NewNode("0123456789abcdefghij", Value{}, "ok", Value{})
	l0, l1 := n.Labels()
	if l0 != "0123456789abcdef" || l1 != "ok" {
		t.Errorf("Labels = %q, %q", l0, l1)
	}
}

func TestExecAction(t *testing.T) {
	calls := 0
	n := NewNode("run", Action(func() { calls++ }), "nil", Action(nil))

	n.Exec()
	if calls != 1 {
		t.Fatalf("calls = %d", calls)
	}
	if l0, _ := n.Labels(); l0 != "run" || n.Cursor() != 0 {
		t.Error("action changed the node")
	}

	n.Next()
	n.Exec() // nil action is a no-op
	if calls != 1 || n.Cursor() != 1 {
		t.Error("nil action changed state")
	}
}

func TestExecSubMenuReplacesNode(t *testing.T) {
	parentCalls, childCalls := 0, 0

	child := NewNode("child act", Action(func() { childCalls++ }), "child set", Setting(2, 0, 5))
	root := NewNode("parent act", Action(func() { parentCalls++ }), "go child", SubMenu(child))

	cur := *root
	cur.Next()
	cur.Exec()

	l0, l1 := cur.Labels()
	if l0 != "child act" || l1 != "child set" {
		t.Fatalf("after descent labels = %q, %q", l0, l1)
	}
	if cur.Cursor() != child.Cursor() {
		t.Error("cursor not copied from child")
	}

	cur.Exec()
	if childCalls != 1 || parentCalls != 0 {
		t.Errorf("calls parent=%d child=%d", parentCalls, childCalls)
	}

	// the referenced nodes are untouched
	if l0, _ := root.Labels(); l0 != "parent act" {
		t.Error("root modified by descent")
	}
	if root.Cursor() != 0 {
		t.Error("root cursor modified")
	}
}

func TestExecSettingNoTransition(t *testing.T) {
	n := NewNode("level", Setting(3, 0, 9), "x", Value{})
	n.Exec()
	if v, _, _, _ := n.Selected().Value.Int(); v != 3 {
		t.Errorf("setting = %d", v)
	}
	if l0, _ := n.Labels(); l0 != "level" {
		t.Error("node changed")
	}
}

func TestBackEdge(t *testing.T) {
	root := &Node{}
	settings := NewNode("option", Setting(1, 0, 1), "< back", SubMenu(root))
	*root = *NewNode("info", Action(nil), "settings >", SubMenu(settings))

	cur := *root
	cur.Next()
	cur.Exec()
	cur.Next()
	cur.Exec()

	if l0, l1 := cur.Labels(); l0 != "info" || l1 != "settings >" {
		t.Errorf("back edge led to %q, %q", l0, l1)
	}
}

func TestSelfReference(t *testing.T) {
	n := NewNode("self", Value{}, "x", Value{})
	n.Set(0, "self", SubMenu(n))
	n.Exec()
	if l0, _ := n.Labels(); l0 != "self" {
		t.Error("self reference broke node")
	}
}
