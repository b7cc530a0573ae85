package ui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/mattn/go-isatty"
	"github.com/sahilm/fuzzy"
)

// ErrCancelled is returned when the user leaves the picker without
// confirming.
var ErrCancelled = errors.New("selection cancelled")

const maxVisible = 10

// CanPrompt reports whether stdin is an interactive terminal.
func CanPrompt() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// PickApps lets the user choose environments from names. The result keeps
// the order of names.
func PickApps(names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, errors.New("no apps defined")
	}

	profile := colorprofile.Detect(os.Stderr, os.Environ())
	p := tea.NewProgram(newPicker("Select apps", names),
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(profile),
	)
	final, err := p.Run()
	if err != nil {
		return nil, err
	}

	m := final.(*picker)
	if m.cancelled {
		return nil, ErrCancelled
	}
	return m.Selected(), nil
}

// picker is a fuzzy-filtered multi-select list.
type picker struct {
	title     string
	items     []string
	filtered  []fuzzy.Match
	cursor    int
	chosen    map[int]bool
	input     textinput.Model
	done      bool
	cancelled bool
}

func newPicker(title string, items []string) *picker {
	ti := textinput.New()
	ti.Prompt = "Filter: "
	ti.Placeholder = "type to filter"
	ti.CharLimit = 100
	ti.SetWidth(40)
	ti.Focus()

	m := &picker{title: title, items: items, chosen: make(map[int]bool), input: ti}
	m.applyFilter()
	return m
}

func (m *picker) Init() tea.Cmd {
	return textinput.Blink
}

func (m *picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "ctrl+c":
		m.cancelled = true
		m.done = true
		return m, tea.Quit
	case "esc":
		if m.input.Value() != "" {
			m.input.SetValue("")
			m.applyFilter()
			return m, nil
		}
		m.cancelled = true
		m.done = true
		return m, tea.Quit
	case "enter":
		if len(m.chosen) == 0 {
			if len(m.filtered) == 0 {
				return m, nil
			}
			m.chosen[m.filtered[m.cursor].Index] = true
		}
		m.done = true
		return m, tea.Quit
	case "up", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "ctrl+n":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
	case "space", " ":
		if len(m.filtered) > 0 {
			m.toggle(m.filtered[m.cursor].Index)
		}
	case "ctrl+a":
		m.toggleVisible()
	default:
		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != before {
			m.applyFilter()
		}
		return m, cmd
	}
	return m, nil
}

func (m *picker) toggle(idx int) {
	if m.chosen[idx] {
		delete(m.chosen, idx)
		return
	}
	m.chosen[idx] = true
}

// toggleVisible selects every visible item, or clears them when all of
// them are already selected.
func (m *picker) toggleVisible() {
	all := true
	for _, match := range m.filtered {
		if !m.chosen[match.Index] {
			all = false
			break
		}
	}
	for _, match := range m.filtered {
		if all {
			delete(m.chosen, match.Index)
		} else {
			m.chosen[match.Index] = true
		}
	}
}

func (m *picker) applyFilter() {
	filter := m.input.Value()
	if filter == "" {
		m.filtered = make([]fuzzy.Match, len(m.items))
		for i, item := range m.items {
			m.filtered[i] = fuzzy.Match{Str: item, Index: i}
		}
	} else {
		m.filtered = fuzzy.Find(filter, m.items)
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
}

// Selected returns the chosen items in their original order.
func (m *picker) Selected() []string {
	var out []string
	for i, item := range m.items {
		if m.chosen[i] {
			out = append(out, item)
		}
	}
	return out
}

func (m *picker) View() tea.View {
	if m.done {
		return tea.NewView("")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%d selected)", m.title, len(m.chosen))))
	b.WriteString("\n")
	b.WriteString(m.input.View() + "\n\n")

	start := 0
	if m.cursor >= maxVisible {
		start = m.cursor - maxVisible + 1
	}
	end := min(start+maxVisible, len(m.filtered))

	if start > 0 {
		b.WriteString(optionStyle.Render("  ↑ more above") + "\n")
	}
	for i := start; i < end; i++ {
		match := m.filtered[i]
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		check := "[ ] "
		if m.chosen[match.Index] {
			check = checkStyle.Render("[✓]") + " "
		}
		b.WriteString(cursor + check + highlight(match, i == m.cursor) + "\n")
	}
	if end < len(m.filtered) {
		b.WriteString(optionStyle.Render("  ↓ more below") + "\n")
	}
	if len(m.filtered) == 0 {
		b.WriteString(optionStyle.Render("  No matching apps") + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("↑/↓ move • space toggle • ctrl+a all • enter confirm • esc cancel"))
	return tea.NewView(borderStyle.Render(b.String()))
}

func highlight(match fuzzy.Match, current bool) string {
	base := optionStyle
	if current {
		base = cursorStyle
	}
	if len(match.MatchedIndexes) == 0 {
		return base.Render(match.Str)
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}
	var b strings.Builder
	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlightStyle.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}
