package catalog

// PageSize is the number of games on one catalog page.
const PageSize = 40

// maxVisiblePages is the widest page list shown without ellipses.
const maxVisiblePages = 7

// Ellipsis marks a gap in PageNumbers.
const Ellipsis = 0

// TotalPages returns ceil(n / size).
func TotalPages(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// PageItems returns the items of 1-based page k, clipped to the list. Pages
// out of range are empty.
func PageItems(games []Game, k, size int) []Game {
	if k < 1 || size <= 0 {
		return nil
	}
	start := (k - 1) * size
	if start >= len(games) {
		return nil
	}
	end := min(start+size, len(games))
	return games[start:end]
}

// PageNumbers lists the page buttons for the current page. Gaps are reported
// as Ellipsis. No buttons are shown when everything fits on one page.
func PageNumbers(current, total int) []int {
	if total <= 1 {
		return nil
	}
	if total <= maxVisiblePages {
		pages := make([]int, total)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages
	}

	pages := []int{1}
	if current > 3 {
		pages = append(pages, Ellipsis)
	}
	for i := max(2, current-1); i <= min(total-1, current+1); i++ {
		pages = append(pages, i)
	}
	if current < total-2 {
		pages = append(pages, Ellipsis)
	}
	return append(pages, total)
}

// HasPrev reports whether a previous-page control is shown.
func HasPrev(current, total int) bool {
	return total > 1 && current > 1
}

// HasNext reports whether a next-page control is shown.
func HasNext(current, total int) bool {
	return total > 1 && current < total
}
