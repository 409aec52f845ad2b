package ui

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/novaplay/novaplay/internal/catalog"
)

func sampleGames(n int) []catalog.Game {
	games := make([]catalog.Game, n)
	for i := range games {
		mode := catalog.ModeMulti
		if i%7 == 0 {
			mode = catalog.ModeSolo
		}
		games[i] = catalog.Game{
			Title: fmt.Sprintf("Game %02d", i),
			Link:  fmt.Sprintf("https://example.com/%d", i),
			Mode:  mode,
		}
	}
	return games
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m CatalogModel, msgs ...tea.Msg) CatalogModel {
	t.Helper()
	for _, msg := range msgs {
		model, _ := m.Update(msg)
		m = model.(CatalogModel)
	}
	return m
}

func newTestModel(t *testing.T, games []catalog.Game) CatalogModel {
	t.Helper()
	m := New(context.Background(), nil, nil).WithGames(games)
	return send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
}

func TestLoadingThenLoaded(t *testing.T) {
	loader := catalog.NewLoader(nil)
	m := New(context.Background(), loader, nil)
	if !strings.Contains(m.View(), "Loading games...") {
		t.Fatal("expected loading state before the catalog arrives")
	}
	if m.Init() == nil {
		t.Fatal("expected Init to start loading")
	}

	m = send(t, m, gamesLoadedMsg{games: sampleGames(85)})
	view := m.View()
	if !strings.Contains(view, "85 games") {
		t.Fatalf("header count missing from view:\n%s", view)
	}
	if !strings.Contains(view, "Game 00") {
		t.Fatalf("first game missing from view:\n%s", view)
	}
}

func TestEmptyCatalogMessage(t *testing.T) {
	m := New(context.Background(), catalog.NewLoader(nil), nil)
	m = send(t, m, gamesLoadedMsg{})
	view := m.View()
	if !strings.Contains(view, "Oops! No games were found.") {
		t.Fatalf("expected empty catalog message, got:\n%s", view)
	}
	if !strings.Contains(view, "games.json") {
		t.Fatal("expected the games.json hint")
	}
}

func TestPagingKeys(t *testing.T) {
	m := newTestModel(t, sampleGames(85))
	if got := m.Browser().Page(); got != 1 {
		t.Fatalf("start page = %d, want 1", got)
	}

	m = send(t, m, runes("n"), runes("n"), runes("n"))
	if got := m.Browser().Page(); got != 3 {
		t.Fatalf("page after three next = %d, want 3 (clamped)", got)
	}
	if got := len(m.Browser().Items()); got != 5 {
		t.Fatalf("last page items = %d, want 5", got)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyPgUp})
	if got := m.Browser().Page(); got != 2 {
		t.Fatalf("page after pgup = %d, want 2", got)
	}
}

func TestModeFilterResetsPage(t *testing.T) {
	m := newTestModel(t, sampleGames(85))
	m = send(t, m, runes("n"), runes("2"))

	b := m.Browser()
	if b.Mode() != catalog.ModeSolo || b.Page() != 1 {
		t.Fatalf("mode %q page %d, want solo on page 1", b.Mode(), b.Page())
	}
	if len(b.Items()) != 13 {
		t.Fatalf("solo items = %d, want 13", len(b.Items()))
	}
	if strings.Contains(m.View(), "n ›") {
		t.Fatal("single page should not show pagination controls")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if got := m.Browser().Mode(); got != catalog.ModeMulti {
		t.Fatalf("tab after solo = %q, want multiplayer", got)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if got := m.Browser().Mode(); got != catalog.ModeAll {
		t.Fatalf("tab after multiplayer = %q, want all", got)
	}
}

func TestSearch(t *testing.T) {
	m := newTestModel(t, sampleGames(85))
	m = send(t, m, runes("/"))
	if !m.searching {
		t.Fatal("expected search mode after /")
	}

	m = send(t, m, runes("g"), runes("a"), runes("m"), runes("e"), runes(" "), runes("4"))
	if got := m.Browser().Query(); got != "game 4" {
		t.Fatalf("query = %q, want %q", got, "game 4")
	}
	if got := len(m.Browser().Filtered()); got != 10 {
		t.Fatalf("filtered = %d, want 10 (Game 40-49)", got)
	}

	m = send(t, m, runes("z"))
	if !strings.Contains(m.View(), "No games found.") {
		t.Fatal("expected the no match message")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.searching {
		t.Fatal("esc should leave search mode")
	}
}

func TestGridNavigationAndBackToTop(t *testing.T) {
	m := newTestModel(t, sampleGames(85))
	cols := m.columns()

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.cursor != 1 {
		t.Fatalf("cursor after right = %d, want 1", m.cursor)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 1+cols {
		t.Fatalf("cursor after down = %d, want %d", m.cursor, 1+cols)
	}

	for i := 0; i < 20; i++ {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if !m.ShowsBackToTop() {
		t.Fatalf("expected back-to-top hint after scrolling (offset %d)", m.rowOffset)
	}
	if !strings.Contains(m.View(), "back to top") {
		t.Fatal("back-to-top hint missing from view")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyHome})
	if m.cursor != 0 || m.ShowsBackToTop() {
		t.Fatalf("home left cursor %d offset %d", m.cursor, m.rowOffset)
	}
}

func TestModalOpensAndCloses(t *testing.T) {
	games := []catalog.Game{
		{Title: "Orbit", Mode: catalog.ModeSolo, HasModal: true, ModalID: "orbit",
			ModalTitle: "Orbit setup", ModalContent: "<p>Unzip <b>first</b>.</p><ul><li>Run it</li></ul>"},
		{Title: "Drift", Mode: catalog.ModeMulti, Link: "https://example.com/drift"},
	}
	m := newTestModel(t, games)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.modal == nil {
		t.Fatal("enter on a modal game should open it")
	}
	view := m.View()
	if !strings.Contains(view, "Orbit setup") || !strings.Contains(view, "Unzip first.") {
		t.Fatalf("modal view missing content:\n%s", view)
	}

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = model.(CatalogModel)
	if m.modal != nil {
		t.Fatal("esc should close the modal")
	}
	if cmd != nil {
		t.Fatal("closing the modal should not quit")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyEnter})
	if m.modal != nil {
		t.Fatal("game without modal opened one")
	}
	if !strings.Contains(m.status, "\x1b]8;;https://example.com/drift") {
		t.Fatalf("status = %q, want an OSC 8 link", m.status)
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, sampleGames(3))
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg, got %T", cmd())
	}
}

func TestHTMLText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"paragraphs", "<p>One</p><p>Two</p>", "One\n\nTwo"},
		{"inline", "Press <b>Play</b> now", "Press Play now"},
		{"list", "<ul><li>A</li><li>B</li></ul>", "• A\n• B"},
		{"break", "line<br>next", "line\nnext"},
		{"script dropped", "<script>alert(1)</script>ok", "ok"},
		{"entities", "Tom &amp; Jerry", "Tom & Jerry"},
		{"whitespace", "  lots   of\n space ", "lots of space"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := htmlText(tt.in); got != tt.want {
				t.Fatalf("htmlText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("NovaPlay", 20); got != "NovaPlay" {
		t.Fatalf("short string changed: %q", got)
	}
	if got := truncate("NovaPlay Arena", 8); got != "NovaPla…" {
		t.Fatalf("truncate = %q", got)
	}
}
