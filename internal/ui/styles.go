package ui

import "github.com/charmbracelet/lipgloss"

// styles are bound to a renderer so SSH sessions get their own colour profile.
type styles struct {
	title     lipgloss.Style
	count     lipgloss.Style
	status    lipgloss.Style
	help      lipgloss.Style
	card      lipgloss.Style
	selected  lipgloss.Style
	cardTitle lipgloss.Style
	solo      lipgloss.Style
	multi     lipgloss.Style
	filterOn  lipgloss.Style
	filterOff lipgloss.Style
	pageOn    lipgloss.Style
	pageOff   lipgloss.Style
	empty     lipgloss.Style
	hint      lipgloss.Style
	modal     lipgloss.Style
	modalHead lipgloss.Style
	top       lipgloss.Style
}

var (
	violet      = lipgloss.Color("#8b5cf6")
	lightViolet = lipgloss.Color("#a78bfa")
	cyan        = lipgloss.Color("#06b6d4")
	muted       = lipgloss.AdaptiveColor{Light: "#777777", Dark: "#7a7590"}
	text        = lipgloss.AdaptiveColor{Light: "#222222", Dark: "#f4f1ff"}
)

func newStyles(r *lipgloss.Renderer) styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return styles{
		title: r.NewStyle().
			Bold(true).
			Foreground(lightViolet),
		count: r.NewStyle().
			Foreground(muted),
		status: r.NewStyle().
			Foreground(text),
		help: r.NewStyle().
			Foreground(muted),
		card: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#cccccc", Dark: "#2a2640"}).
			Padding(0, 1),
		selected: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(violet).
			Padding(0, 1),
		cardTitle: r.NewStyle().
			Bold(true).
			Foreground(text),
		solo: r.NewStyle().
			Foreground(lipgloss.Color("#050508")).
			Background(lightViolet).
			Padding(0, 1),
		multi: r.NewStyle().
			Foreground(lipgloss.Color("#050508")).
			Background(cyan).
			Padding(0, 1),
		filterOn: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#050508")).
			Background(violet).
			Padding(0, 1),
		filterOff: r.NewStyle().
			Foreground(muted).
			Padding(0, 1),
		pageOn: r.NewStyle().
			Bold(true).
			Foreground(violet),
		pageOff: r.NewStyle().
			Foreground(muted),
		empty: r.NewStyle().
			Foreground(text).
			Bold(true),
		hint: r.NewStyle().
			Foreground(muted).
			Italic(true),
		modal: r.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(violet).
			Padding(1, 2),
		modalHead: r.NewStyle().
			Bold(true).
			Foreground(lightViolet).
			MarginBottom(1),
		top: r.NewStyle().
			Foreground(cyan),
	}
}
