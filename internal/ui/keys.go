package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Search key.Binding
	Mode   key.Binding
	All    key.Binding
	Solo   key.Binding
	Multi  key.Binding
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Open   key.Binding
	Top    key.Binding
	Close  key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Mode:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "mode")),
		All:    key.NewBinding(key.WithKeys("1")),
		Solo:   key.NewBinding(key.WithKeys("2")),
		Multi:  key.NewBinding(key.WithKeys("3")),
		Up:     key.NewBinding(key.WithKeys("up", "k")),
		Down:   key.NewBinding(key.WithKeys("down", "j")),
		Left:   key.NewBinding(key.WithKeys("left", "h")),
		Right:  key.NewBinding(key.WithKeys("right", "l")),
		Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Top:    key.NewBinding(key.WithKeys("home", "t"), key.WithHelp("home", "top")),
		Close:  key.NewBinding(key.WithKeys("esc")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// pageKeys replaces the paginator defaults, which collide with grid movement.
func pageKeys() paginator.KeyMap {
	return paginator.KeyMap{
		PrevPage: key.NewBinding(key.WithKeys("p", "pgup")),
		NextPage: key.NewBinding(key.WithKeys("n", "pgdown")),
	}
}

func helpText(searching bool) string {
	if searching {
		return "type to search  enter/esc done"
	}
	return "/ search  tab mode  ←↑↓→ move  n/p page  enter details  home top  q quit"
}

func isCtrlC(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyCtrlC
}
