package catalog

// Browser is the filter and page state of a catalog view.
type Browser struct {
	all      []Game
	filtered []Game
	query    string
	mode     string
	page     int
	size     int
}

// NewBrowser shows every game on page 1.
func NewBrowser(games []Game) *Browser {
	b := &Browser{all: games, mode: ModeAll, size: PageSize}
	b.apply()
	return b
}

// SetGames replaces the catalog and reapplies the current filters.
func (b *Browser) SetGames(games []Game) {
	b.all = games
	b.apply()
}

// SetQuery changes the title search and returns to page 1.
func (b *Browser) SetQuery(q string) {
	b.query = q
	b.apply()
}

// SetMode changes the mode filter and returns to page 1.
func (b *Browser) SetMode(mode string) {
	b.mode = mode
	b.apply()
}

func (b *Browser) apply() {
	b.filtered = Filter(b.all, b.query, b.mode)
	b.page = 1
}

// GoTo moves to page k, clamped to the available pages.
func (b *Browser) GoTo(k int) {
	b.page = max(1, min(k, b.TotalPages()))
}

func (b *Browser) Next() { b.GoTo(b.page + 1) }
func (b *Browser) Prev() { b.GoTo(b.page - 1) }

func (b *Browser) Query() string      { return b.query }
func (b *Browser) Mode() string       { return b.mode }
func (b *Browser) Page() int          { return b.page }
func (b *Browser) Total() int         { return len(b.all) }
func (b *Browser) Filtered() []Game   { return b.filtered }
func (b *Browser) TotalPages() int    { return TotalPages(len(b.filtered), b.size) }
func (b *Browser) Items() []Game      { return PageItems(b.filtered, b.page, b.size) }
func (b *Browser) PageNumbers() []int { return PageNumbers(b.page, b.TotalPages()) }
func (b *Browser) HasPrev() bool      { return HasPrev(b.page, b.TotalPages()) }
func (b *Browser) HasNext() bool      { return HasNext(b.page, b.TotalPages()) }
