package main

import (
	"fmt"
	"strings"

	"github.com/dshills/uiflow/internal/input/key"
	"github.com/dshills/uiflow/internal/ui"
)

// menuPresenter shows contextual menu items on the status line. A digit
// key runs the matching item; any other key closes the menu.
type menuPresenter struct {
	status func(string)
	items  []ui.MenuItem
	done   func()
}

func newMenuPresenter(status func(string)) *menuPresenter {
	return &menuPresenter{status: status}
}

func (m *menuPresenter) Present(evt *ui.Event, done func()) {
	m.close()
	m.items = append(m.items[:0], evt.MenuItems()...)
	m.done = done

	labels := make([]string, len(m.items))
	for i, item := range m.items {
		labels[i] = fmt.Sprintf("%d) %s", i+1, item.Label)
	}
	m.status("menu: " + strings.Join(labels, "  "))
}

// Open reports whether a menu is showing.
func (m *menuPresenter) Open() bool { return m.done != nil }

// HandleKey consumes s while a menu is open.
func (m *menuPresenter) HandleKey(s key.Stroke) bool {
	if !m.Open() {
		return false
	}
	var action func()
	if s.Key == key.KeyRune && s.Rune >= '1' && s.Rune <= '9' {
		if i := int(s.Rune - '1'); i < len(m.items) {
			action = m.items[i].Action
		}
	}
	m.close()
	m.status("")
	if action != nil {
		action()
	}
	return true
}

func (m *menuPresenter) close() {
	if m.done != nil {
		m.done()
	}
	m.done = nil
	m.items = m.items[:0]
}
