package box

import (
	"fmt"
	"log"

	"geocache-firmware/pkg/menu"
)

const (
	nodeMain = iota
	nodeSettings
	nodeService
	nodeCount
)

// Setup is the owner's two-button menu. It owns the node table; navigation
// works on a copy of one node at a time.
type Setup struct {
	box   *Box
	nodes [nodeCount]menu.Node
	cur   menu.Node
}

// NewSetup builds the menu graph:
//
//	main:     Arm & lock        | Settings >
//	settings: Tries <n>         | Service >
//	service:  Open latch        | < Back (to main)
func NewSetup(b *Box) *Setup {
	m := &Setup{box: b}

	m.nodes[nodeMain] = *menu.NewNode(
		"Arm & lock", menu.Action(m.run(b.Arm)),
		"Settings >", menu.SubMenu(&m.nodes[nodeSettings]))
	m.nodes[nodeSettings] = *menu.NewNode(
		"Tries", menu.Setting(int(b.store.DefaultTries()), 1, 255),
		"Service >", menu.SubMenu(&m.nodes[nodeService]))
	m.nodes[nodeService] = *menu.NewNode(
		"Open latch", menu.Action(m.run(b.Reset)),
		"< Back", menu.SubMenu(&m.nodes[nodeMain]))

	m.cur = m.nodes[nodeMain]
	return m
}

// Next moves to the other entry
func (m *Setup) Next() {
	m.cur.Next()
}

// Select activates the current entry. A setting steps up by one and wraps
// to its minimum past the maximum.
func (m *Setup) Select() {
	e := m.cur.Selected()
	if e.Value.Kind() != menu.KindSetting {
		m.cur.Exec()
		return
	}

	v, lo, hi, _ := e.Value.Int()
	if v >= hi {
		v = lo
	} else {
		v++
	}
	e.Value.SetInt(v)
	m.nodes[nodeSettings].Entry(0).Value.SetInt(v)
	m.box.SetDefaultTries(uint8(v))
}

// Lines renders the current node with a marker on the selected entry
func (m *Setup) Lines() (string, string) {
	return m.line(0), m.line(1)
}

func (m *Setup) line(i int) string {
	e := m.cur.Entry(i)
	mark := " "
	if m.cur.Cursor() == i {
		mark = ">"
	}
	if v, _, _, ok := e.Value.Int(); ok {
		return fmt.Sprintf("%s%s %d", mark, e.Label, v)
	}
	return mark + e.Label
}

// Render shows the current node on the box display
func (m *Setup) Render() {
	m.box.show(m.Lines())
}

func (m *Setup) run(fn func() error) func() {
	return func() {
		if err := fn(); err != nil {
			log.Printf("Menu action failed: %v", err)
		}
	}
}
