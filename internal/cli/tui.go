package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/toplangs/pkg/usage"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// IgnorePickerModel - Interactive selection of hidden languages
// =============================================================================

// IgnorePickerModel is the bubbletea model that lists every language, largest
// first, and lets the user toggle which ones are hidden from the chart.
type IgnorePickerModel struct {
	Entries   []usage.Entry
	Shares    []float64
	Hidden    map[string]bool
	TopN      int // languages the chart will show, for the preview marker
	Cursor    int
	Offset    int
	Height    int
	Confirmed bool
}

// NewIgnorePickerModel creates a picker over u with the languages in ignore
// pre-selected.
func NewIgnorePickerModel(u usage.Usage, ignore usage.Set, topN int) IgnorePickerModel {
	entries := usage.Rank(u, len(u), nil)
	hidden := make(map[string]bool, len(ignore))
	for name := range ignore {
		if _, ok := u[name]; ok {
			hidden[name] = true
		}
	}
	return IgnorePickerModel{
		Entries: entries,
		Shares:  usage.Share(entries, u.Total()),
		Hidden:  hidden,
		TopN:    topN,
		Height:  15,
	}
}

// Ignored returns the selected languages as a set.
func (m IgnorePickerModel) Ignored() usage.Set {
	s := make(usage.Set, len(m.Hidden))
	for name, hidden := range m.Hidden {
		if hidden {
			s[name] = struct{}{}
		}
	}
	return s
}

// shown reports whether entry i would appear on the chart with the current
// selection.
func (m IgnorePickerModel) shown(i int) bool {
	if m.Hidden[m.Entries[i].Language] {
		return false
	}
	rank := 0
	for j := 0; j < i; j++ {
		if !m.Hidden[m.Entries[j].Language] {
			rank++
		}
	}
	return rank < m.TopN
}

func (m IgnorePickerModel) Init() tea.Cmd {
	return nil
}

func (m IgnorePickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "x":
			if len(m.Entries) > 0 {
				name := m.Entries[m.Cursor].Language
				hidden := make(map[string]bool, len(m.Hidden)+1)
				for k, v := range m.Hidden {
					hidden[k] = v
				}
				hidden[name] = !hidden[name]
				m.Hidden = hidden
			}
		case "enter":
			m.Confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m IgnorePickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select languages to hide"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  ⏎ confirm  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Entries))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := "[ ]"
		if m.Hidden[e.Language] {
			mark = "[x]"
		}
		chart := ""
		if m.shown(i) {
			chart = "●"
		}
		rows = append(rows, []string{cursor, mark, e.Language, formatBytes(e.Size), fmt.Sprintf("%.1f%%", m.Shares[i]), chart})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Hide", "Language", "Size", "Share", "Chart").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}

			idx := m.Offset + row
			if idx >= len(m.Entries) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if idx == m.Cursor {
				base = base.Bold(true)
			}
			switch {
			case m.Hidden[m.Entries[idx].Language]:
				return base.Foreground(colorDim).Strikethrough(col == 2)
			case m.shown(idx):
				return base.Foreground(colorGreen)
			}
			return base.Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %d hidden", m.Cursor+1, len(m.Entries), len(m.Ignored()))))

	return b.String()
}

// pickIgnored runs the picker on stderr. ok is false when the user quit
// without confirming.
func pickIgnored(u usage.Usage, ignore usage.Set, topN int) (usage.Set, bool, error) {
	if len(u) == 0 {
		return ignore, true, nil
	}
	final, err := tea.NewProgram(NewIgnorePickerModel(u, ignore, topN), tea.WithOutput(stderr)).Run()
	if err != nil {
		return nil, false, err
	}
	m := final.(IgnorePickerModel)
	return m.Ignored(), m.Confirmed, nil
}
