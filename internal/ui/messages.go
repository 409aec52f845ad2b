package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/novaplay/novaplay/internal/catalog"
)

type gamesLoadedMsg struct {
	games []catalog.Game
}

func loadCmd(ctx context.Context, loader *catalog.Loader) tea.Cmd {
	return func() tea.Msg {
		return gamesLoadedMsg{games: loader.Load(ctx)}
	}
}
