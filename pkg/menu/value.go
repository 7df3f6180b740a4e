package menu

// Kind identifies which payload a Value holds
type Kind uint8

const (
	KindSetting Kind = iota
	KindAction
	KindSubMenu
)

func (k Kind) String() string {
	switch k {
	case KindAction:
		return "action"
	case KindSubMenu:
		return "submenu"
	case KindSetting:
		return "setting"
	}
	return "unknown"
}

// Value is one of: an action to call, a reference to another Node, or an
// integer setting with an inclusive range. Payload and kind are only ever
// set together. The zero value is the setting 0 in [0, 0].
type Value struct {
	kind   Kind
	action func()
	sub    *Node
	ival   int
	min    int
	max    int
}

func Action(fn func()) Value {
	var v Value
	v.SetAction(fn)
	return v
}

// SubMenu refers to n without owning it; n must outlive the Value
func SubMenu(n *Node) Value {
	var v Value
	v.SetSubMenu(n)
	return v
}

func Setting(val, min, max int) Value {
	var v Value
	v.SetSetting(val, min, max)
	return v
}

func (v *Value) SetAction(fn func()) {
	*v = Value{kind: KindAction, action: fn}
}

func (v *Value) SetSubMenu(n *Node) {
	*v = Value{kind: KindSubMenu, sub: n}
}

func (v *Value) SetSetting(val, min, max int) {
	*v = Value{kind: KindSetting, ival: val, min: min, max: max}
}

func (v Value) Kind() Kind { return v.kind }

// Int returns a setting's value and range. ok is false for other kinds.
func (v Value) Int() (val, min, max int, ok bool) {
	if v.kind != KindSetting {
		return 0, 0, 0, false
	}
	return v.ival, v.min, v.max, true
}

// SetInt stores val in a setting if it is within the setting's range.
// Anything else is ignored.
func (v *Value) SetInt(val int) bool {
	if v.kind != KindSetting || val < v.min || val > v.max {
		return false
	}
	v.ival = val
	return true
}

// Adjust moves a setting by delta, clamped to its range
func (v *Value) Adjust(delta int) bool {
	if v.kind != KindSetting {
		return false
	}
	return v.SetInt(max(v.min, min(v.max, v.ival+delta)))
}
