// Package tui holds the interactive terminal views.
package tui

import (
	"fmt"
	"os"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/rnwolfe/momentum/internal/ui"
)

// Item is one selectable row.
type Item interface {
	FilterValue() string
	Title() string
	Description() string
}

// Lockable items are shown but cannot be chosen while Locked is true.
type Lockable interface {
	Locked() bool
}

// Tinted items render their title in their own color.
type Tinted interface {
	Color() lipgloss.Color
}

// PickerOption configures a Picker.
type PickerOption func(*Picker)

// WithTitle sets the heading displayed above the list.
func WithTitle(title string) PickerOption {
	return func(p *Picker) { p.title = title }
}

// WithHeight sets the maximum visible rows (0 = fit the terminal).
func WithHeight(h int) PickerOption {
	return func(p *Picker) { p.height = h }
}

// Picker is a fuzzy-filtered list selector.
type Picker struct {
	title  string
	height int

	items    []Item
	matches  []match
	query    []rune
	cursor   int
	offset   int
	chosen   Item
	canceled bool
	notice   string

	termHeight int
}

type match struct {
	item  Item
	score int
}

// NewPicker creates a Picker over items.
func NewPicker(items []Item, opts ...PickerOption) *Picker {
	p := &Picker{height: 12, items: items, termHeight: 24}
	for _, opt := range opts {
		opt(p)
	}
	p.refilter()
	return p
}

// Run shows a picker and returns the chosen item, or nil if the user
// canceled.
func Run(items []Item, opts ...PickerOption) (Item, error) {
	m, err := tea.NewProgram(NewPicker(items, opts...), tea.WithAltScreen()).Run()
	if err != nil {
		return nil, fmt.Errorf("picker: %w", err)
	}
	p := m.(*Picker)
	if p.canceled {
		return nil, nil
	}
	return p.chosen, nil
}

// IsTTY returns true when stdin is connected to a terminal.
func IsTTY() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// Query returns the current filter text.
func (p *Picker) Query() string { return string(p.query) }

func (p *Picker) Init() tea.Cmd { return nil }

func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.termHeight = msg.Height
	case tea.KeyMsg:
		p.notice = ""
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			p.canceled = true
			return p, tea.Quit
		case tea.KeyEnter:
			if len(p.matches) == 0 {
				return p, nil
			}
			it := p.matches[p.cursor].item
			if locked(it) {
				p.notice = it.Title() + " is still locked"
				return p, nil
			}
			p.chosen = it
			return p, tea.Quit
		case tea.KeyUp, tea.KeyCtrlP:
			p.move(-1)
		case tea.KeyDown, tea.KeyCtrlN:
			p.move(1)
		case tea.KeyBackspace:
			if n := len(p.query); n > 0 {
				p.query = p.query[:n-1]
				p.refilter()
			}
		case tea.KeyRunes, tea.KeySpace:
			p.query = append(p.query, msg.Runes...)
			if msg.Type == tea.KeySpace && len(msg.Runes) == 0 {
				p.query = append(p.query, ' ')
			}
			p.refilter()
		}
	}
	return p, nil
}

func (p *Picker) View() string {
	var b strings.Builder
	if p.title != "" {
		b.WriteString("  " + ui.Title.Render(p.title) + "\n\n")
	}
	b.WriteString("  " + ui.Accent.Render("> ") + string(p.query) + ui.Accent.Render("▎") + "\n\n")

	if len(p.matches) == 0 {
		b.WriteString("  " + ui.Muted.Render("No matches") + "\n")
	}
	end := min(len(p.matches), p.offset+p.visible())
	for i := p.offset; i < end; i++ {
		b.WriteString(p.row(p.matches[i].item, i == p.cursor) + "\n")
	}

	b.WriteString("\n")
	if p.notice != "" {
		b.WriteString("  " + ui.Warning.Render(p.notice) + "\n")
	}
	b.WriteString(ui.Muted.Render(fmt.Sprintf("  %d/%d · ↑↓ move · enter equip · esc cancel", len(p.matches), len(p.items))) + "\n")
	return b.String()
}

func (p *Picker) move(delta int) {
	next := p.cursor + delta
	if next < 0 || next >= len(p.matches) {
		return
	}
	p.cursor = next
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if vis := p.visible(); p.cursor >= p.offset+vis {
		p.offset = p.cursor - vis + 1
	}
}

func (p *Picker) visible() int {
	h := p.height
	if h <= 0 || h > p.termHeight-6 {
		h = p.termHeight - 6
	}
	return max(h, 3)
}

// refilter rebuilds the match list. Unlocked items rank ahead of locked ones
// at equal score; ties otherwise keep input order.
func (p *Picker) refilter() {
	p.matches = p.matches[:0]
	for _, it := range p.items {
		if ok, score := FuzzyMatch(string(p.query), it.FilterValue()); ok {
			p.matches = append(p.matches, match{item: it, score: score})
		}
	}
	sortMatches(p.matches)
	p.cursor, p.offset = 0, 0
}

func sortMatches(ms []match) {
	sort.SliceStable(ms, func(i, j int) bool {
		if ms[i].score != ms[j].score {
			return ms[i].score > ms[j].score
		}
		return !locked(ms[i].item) && locked(ms[j].item)
	})
}

func (p *Picker) row(it Item, selected bool) string {
	pointer := "  "
	title := lipgloss.NewStyle()
	if c, ok := it.(Tinted); ok {
		title = title.Foreground(c.Color())
	}
	if locked(it) {
		title = ui.Muted
	}
	if selected {
		pointer = ui.Accent.Render(ui.IconArrow + " ")
		title = title.Bold(true)
	}
	line := "  " + pointer + title.Render(it.Title())
	if d := it.Description(); d != "" {
		line += "  " + ui.Muted.Render(d)
	}
	return line
}

func locked(it Item) bool {
	l, ok := it.(Lockable)
	return ok && l.Locked()
}
