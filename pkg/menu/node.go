// Package menu is a two-entry menu for a 16x2 display. Navigation has no
// stack: entering a sub-menu overwrites the current node with a copy of it,
// so a way back exists only if the graph has an explicit back entry.
package menu

// LabelWidth is the widest label kept, in bytes
const LabelWidth = 16

type Entry struct {
	Label string
	Value Value
}

type Node struct {
	entries [2]Entry
	cur     uint8
}

func NewNode(label0 string, v0 Value, label1 string, v1 Value) *Node {
	n := &Node{}
	n.Set(0, label0, v0)
	n.Set(1, label1, v1)
	return n
}

// Set replaces entry i (0 or 1)
func (n *Node) Set(i int, label string, v Value) {
	if len(label) > LabelWidth {
		label = label[:LabelWidth]
	}
	n.entries[i&1] = Entry{Label: label, Value: v}
}

// Next moves the cursor to the other entry and returns it
func (n *Node) Next() int {
	n.cur ^= 1
	return int(n.cur)
}

func (n *Node) Cursor() int { return int(n.cur) }

func (n *Node) Entry(i int) *Entry { return &n.entries[i&1] }

func (n *Node) Selected() *Entry { return &n.entries[n.cur] }

func (n *Node) Labels() (string, string) {
	return n.entries[0].Label, n.entries[1].Label
}

// Exec activates the selected entry. An action is called; a sub-menu
// replaces both entries and the cursor of n with a copy of the referenced
// node; a setting is left to the caller.
func (n *Node) Exec() {
	v := n.entries[n.cur].Value
	switch v.kind {
	case KindAction:
		if v.action != nil {
			v.action()
		}
	case KindSubMenu:
		if v.sub != nil {
			*n = *v.sub
		}
	case KindSetting:
	}
}
