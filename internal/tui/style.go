package tui

import "github.com/charmbracelet/lipgloss"

const brandColor = "#0d828c"

// styles holds the palette for the active theme. Dark mode swaps the whole
// set at once rather than restyling individual widgets.
type styles struct {
	title       lipgloss.Style
	header      lipgloss.Style
	body        lipgloss.Style
	faint       lipgloss.Style
	accent      lipgloss.Style
	card        lipgloss.Style
	selected    lipgloss.Style
	danger      lipgloss.Style
	success     lipgloss.Style
	help        lipgloss.Style
	tabActive   lipgloss.Style
	tabInactive lipgloss.Style
}

func newStyles(dark bool) styles {
	fg := lipgloss.Color("#15202b")
	card := lipgloss.Color("#e2e8f0")
	if dark {
		fg = lipgloss.Color("#e2e8f0")
		card = lipgloss.Color("#334155")
	}

	return styles{
		title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color(brandColor)).
			Padding(0, 1),
		header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(brandColor)).
			Bold(true),
		body:  lipgloss.NewStyle().Foreground(fg),
		faint: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#626262", Dark: "#A49FA5"}),
		accent: lipgloss.NewStyle().
			Foreground(lipgloss.Color(brandColor)).
			Bold(true),
		card: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(card).
			Padding(0, 1),
		selected: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(brandColor)).
			Padding(0, 1),
		danger:  lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")).Bold(true),
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("#56FF4E")),
		help:    lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#626262", Dark: "#A49FA5"}),
		tabActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color(brandColor)).
			Padding(0, 1),
		tabInactive: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#626262", Dark: "#A49FA5"}).
			Padding(0, 1),
	}
}

var docStyle = lipgloss.NewStyle().Margin(1, 2)
