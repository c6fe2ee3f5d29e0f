package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Done, Selected, Help, Frame                   lipgloss.Style

	BoxUnchecked, BoxChecked string
	SymDone, SymPending      string
	Bullet                   string
	Border                   lipgloss.Border
}

var current = build("classic", true)

// SetTheme switches the palette. Unknown names fall back to classic.
// color=false strips every foreground and attribute.
func SetTheme(name string, color bool) {
	current = build(name, color)
}

// Current exposes what renderers need.
func Current() Theme { return current }

func build(name string, color bool) Theme {
	name = strings.ToLower(strings.TrimSpace(name))
	var t Theme
	switch name {
	case "neon":
		t = Theme{
			Name:         "neon",
			Title:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			Done:         lipgloss.NewStyle().Foreground(lipgloss.Color("#7cd67c")).Strikethrough(true),
			Selected:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Help:         lipgloss.NewStyle().Faint(true),
			Frame:        lipgloss.NewStyle().BorderForeground(lipgloss.Color("13")),
			BoxUnchecked: "◻", BoxChecked: "◼",
			SymDone: "✔", SymPending: "•", Bullet: "•",
			Border: lipgloss.RoundedBorder(),
		}
	case "mono":
		plain := lipgloss.NewStyle()
		t = Theme{
			Name:  "mono",
			Title: plain, Muted: plain, Accent: plain, Success: plain, Error: plain, Pending: plain,
			Done: plain, Selected: plain, Help: plain, Frame: plain,
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			SymDone: "x", SymPending: "-", Bullet: "-",
			Border: lipgloss.ASCIIBorder(),
		}
		return t
	default: // classic
		t = Theme{
			Name:         "classic",
			Title:        lipgloss.NewStyle().Bold(true),
			Muted:        lipgloss.NewStyle().Faint(true),
			Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Done:         lipgloss.NewStyle().Foreground(lipgloss.Color("#7cd67c")),
			Selected:     lipgloss.NewStyle().Bold(true).Reverse(true),
			Help:         lipgloss.NewStyle().Faint(true),
			Frame:        lipgloss.NewStyle().BorderForeground(lipgloss.Color("8")),
			BoxUnchecked: "☐", BoxChecked: "☑",
			SymDone: "✔", SymPending: "•", Bullet: "•",
			Border: lipgloss.RoundedBorder(),
		}
	}
	if !color {
		plain := lipgloss.NewStyle()
		t.Title, t.Muted, t.Accent, t.Success, t.Error, t.Pending = plain, plain, plain, plain, plain, plain
		t.Done, t.Selected, t.Help, t.Frame = plain, plain, plain, plain
	}
	return t
}
