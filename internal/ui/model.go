package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/novaplay/novaplay/internal/catalog"
)

const (
	cardWidth  = 30 // including the border
	cardHeight = 5  // including the border
	chromeRows = 9  // header, search, filters, pagination, status, hint, help and gaps

	// backToTopRows is how far the grid scrolls before the top hint shows.
	backToTopRows = 2
)

var modes = []string{catalog.ModeAll, catalog.ModeSolo, catalog.ModeMulti}

// CatalogModel is the bubbletea model of the catalog browser.
type CatalogModel struct {
	ctx    context.Context
	loader *catalog.Loader

	styles styles
	keys   keyMap

	browser *catalog.Browser
	search  textinput.Model
	pager   paginator.Model

	loading   bool
	searching bool
	cursor    int // index into the current page
	rowOffset int
	modal     *catalog.Game
	modalText string
	status    string

	width, height int
}

// New returns a browser that loads its games through loader when started.
// A nil renderer uses the default lipgloss renderer.
func New(ctx context.Context, loader *catalog.Loader, r *lipgloss.Renderer) CatalogModel {
	ti := textinput.New()
	ti.Placeholder = "Search a game..."
	ti.Prompt = "⌕ "
	ti.CharLimit = 64
	ti.Width = 32

	pager := paginator.New()
	pager.Type = paginator.Arabic
	pager.PerPage = catalog.PageSize
	pager.KeyMap = pageKeys()

	return CatalogModel{
		ctx:     ctx,
		loader:  loader,
		styles:  newStyles(r),
		keys:    defaultKeyMap(),
		browser: catalog.NewBrowser(nil),
		search:  ti,
		pager:   pager,
		loading: loader != nil,
		width:   80,
		height:  24,
	}
}

// WithGames returns the model showing games without loading.
func (m CatalogModel) WithGames(games []catalog.Game) CatalogModel {
	m.loading = false
	m.loader = nil
	m.browser.SetGames(games)
	m.syncPager()
	return m
}

func (m CatalogModel) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle("NovaPlay · Games")}
	if m.loader != nil {
		ctx := m.ctx
		if ctx == nil {
			ctx = context.Background()
		}
		cmds = append(cmds, loadCmd(ctx, m.loader))
	}
	return tea.Batch(cmds...)
}

func (m CatalogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ensureVisible()
		return m, nil

	case gamesLoadedMsg:
		m.loading = false
		m.browser.SetGames(msg.games)
		m.resetView()
		return m, nil

	case tea.KeyMsg:
		if isCtrlC(msg) {
			return m, tea.Quit
		}
		if m.modal != nil {
			return m.updateModal(msg)
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateGrid(msg)
	}

	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m CatalogModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Close) || key.Matches(msg, m.keys.Quit) {
		m.modal = nil
		m.modalText = ""
	}
	return m, nil
}

func (m CatalogModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != before {
		m.browser.SetQuery(v)
		m.resetView()
	}
	return m, cmd
}

func (m CatalogModel) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.browser.Items()
	cols := m.columns()

	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Close):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Mode):
		m.setMode(modes[(modeIndex(m.browser.Mode())+1)%len(modes)])
	case key.Matches(msg, m.keys.All):
		m.setMode(catalog.ModeAll)
	case key.Matches(msg, m.keys.Solo):
		m.setMode(catalog.ModeSolo)
	case key.Matches(msg, m.keys.Multi):
		m.setMode(catalog.ModeMulti)

	case key.Matches(msg, m.keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor-cols >= 0 {
			m.cursor -= cols
		}
	case key.Matches(msg, m.keys.Down):
		if next := m.cursor + cols; next < len(items) {
			m.cursor = next
		} else if m.cursor/cols < (len(items)-1)/cols {
			m.cursor = len(items) - 1
		}

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		m.rowOffset = 0

	case key.Matches(msg, m.keys.Open):
		if m.cursor < len(items) {
			g := items[m.cursor]
			if g.HasModal {
				m.modal = &g
				m.modalText = htmlText(g.ModalContent)
			} else {
				m.status = "Open " + hyperlink(g.Link, g.Link)
			}
		}

	case key.Matches(msg, m.pager.KeyMap.NextPage), key.Matches(msg, m.pager.KeyMap.PrevPage):
		var cmd tea.Cmd
		m.pager, cmd = m.pager.Update(msg)
		m.browser.GoTo(m.pager.Page + 1)
		m.cursor, m.rowOffset = 0, 0
		return m, cmd
	}

	m.ensureVisible()
	return m, nil
}

func (m *CatalogModel) setMode(mode string) {
	m.browser.SetMode(mode)
	m.resetView()
}

// resetView returns to the top of page 1 after the result set changed.
func (m *CatalogModel) resetView() {
	m.cursor, m.rowOffset = 0, 0
	m.status = ""
	m.syncPager()
}

func (m *CatalogModel) syncPager() {
	m.pager.TotalPages = max(1, m.browser.TotalPages())
	m.pager.Page = m.browser.Page() - 1
}

func (m CatalogModel) columns() int {
	return max(1, (m.width-2)/(cardWidth+1))
}

func (m CatalogModel) visibleRows() int {
	return max(1, (m.height-chromeRows)/cardHeight)
}

func (m *CatalogModel) ensureVisible() {
	cols, rows := m.columns(), m.visibleRows()
	row := m.cursor / cols
	if row < m.rowOffset {
		m.rowOffset = row
	}
	if row >= m.rowOffset+rows {
		m.rowOffset = row - rows + 1
	}
}

func modeIndex(mode string) int {
	for i, md := range modes {
		if md == mode {
			return i
		}
	}
	return 0
}

// Browser exposes the filter and page state.
func (m CatalogModel) Browser() *catalog.Browser { return m.browser }

// ShowsBackToTop reports whether the grid is scrolled far enough to offer the
// back-to-top shortcut.
func (m CatalogModel) ShowsBackToTop() bool { return m.rowOffset >= backToTopRows }

func (m CatalogModel) View() string {
	if m.modal != nil {
		return m.modalView()
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n\n")
	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(m.filterView())
	b.WriteString("\n\n")
	b.WriteString(m.bodyView())
	b.WriteString("\n")
	if bar := m.paginationView(); bar != "" {
		b.WriteString(bar)
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(m.styles.status.Render(m.status))
		b.WriteString("\n")
	}
	if m.ShowsBackToTop() {
		b.WriteString(m.styles.top.Render("↑ home: back to top"))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.help.Render(helpText(m.searching)))
	return b.String()
}

func (m CatalogModel) headerView() string {
	head := m.styles.title.Render("NovaPlay")
	if m.loading {
		return head
	}
	n := m.browser.Total()
	noun := "games"
	if n == 1 {
		noun = "game"
	}
	return head + m.styles.count.Render(fmt.Sprintf(" · %d %s", n, noun))
}

func (m CatalogModel) filterView() string {
	labels := map[string]string{
		catalog.ModeAll:   "All",
		catalog.ModeSolo:  "Solo",
		catalog.ModeMulti: "Multi",
	}
	parts := make([]string, 0, len(modes))
	for _, md := range modes {
		if md == m.browser.Mode() {
			parts = append(parts, m.styles.filterOn.Render(labels[md]))
		} else {
			parts = append(parts, m.styles.filterOff.Render(labels[md]))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m CatalogModel) bodyView() string {
	if m.loading {
		return m.styles.hint.Render("Loading games...")
	}
	if m.browser.Total() == 0 {
		return m.styles.empty.Render("Oops! No games were found.") + "\n" +
			m.styles.hint.Render("Check that games.json is present and reachable.")
	}
	items := m.browser.Items()
	if len(items) == 0 {
		return m.styles.empty.Render("No games found.")
	}

	cols, rows := m.columns(), m.visibleRows()
	var lines []string
	for r := m.rowOffset; r < m.rowOffset+rows; r++ {
		start := r * cols
		if start >= len(items) {
			break
		}
		end := min(start+cols, len(items))
		cards := make([]string, 0, cols)
		for i := start; i < end; i++ {
			cards = append(cards, m.cardView(items[i], i == m.cursor))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, spaced(cards)...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func spaced(cards []string) []string {
	out := make([]string, 0, len(cards)*2)
	for i, c := range cards {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, c)
	}
	return out
}

func (m CatalogModel) cardView(g catalog.Game, selected bool) string {
	inner := cardWidth - 4
	badge := m.styles.multi.Render(g.ModeLabel())
	if g.ModeClass() == catalog.ModeSolo {
		badge = m.styles.solo.Render(g.ModeLabel())
	}
	action := hyperlink(g.Link, "Download ↗")
	if g.HasModal {
		action = "enter: details"
	}
	body := m.styles.cardTitle.Render(truncate(g.Title, inner)) + "\n" +
		badge + "\n" +
		m.styles.hint.Render(action)

	st := m.styles.card
	if selected {
		st = m.styles.selected
	}
	return st.Width(cardWidth - 2).Render(body)
}

func (m CatalogModel) paginationView() string {
	cur := m.browser.Page()
	numbers := m.browser.PageNumbers()
	if numbers == nil {
		return ""
	}
	var parts []string
	if m.browser.HasPrev() {
		parts = append(parts, m.styles.pageOff.Render("‹ p"))
	}
	for _, n := range numbers {
		switch {
		case n == catalog.Ellipsis:
			parts = append(parts, m.styles.pageOff.Render("…"))
		case n == cur:
			parts = append(parts, m.styles.pageOn.Render(fmt.Sprintf("[%d]", n)))
		default:
			parts = append(parts, m.styles.pageOff.Render(fmt.Sprint(n)))
		}
	}
	if m.browser.HasNext() {
		parts = append(parts, m.styles.pageOff.Render("n ›"))
	}
	return strings.Join(parts, " ") + m.styles.count.Render("   page "+m.pager.View())
}

func (m CatalogModel) modalView() string {
	width := min(72, max(20, m.width-6))
	body := m.styles.modalHead.Render(m.modal.ModalTitle) + "\n" +
		m.styles.status.Width(width-6).Render(m.modalText) + "\n\n" +
		m.styles.help.Render("esc close")
	box := m.styles.modal.Width(width).Render(body)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
