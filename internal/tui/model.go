package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vburojevic/authscan/internal/domain"
	"github.com/vburojevic/authscan/internal/output"
)

// Pane selects which table has focus
type Pane int

const (
	PaneOffenders Pane = iota
	PaneAddresses
)

func (p Pane) String() string {
	if p == PaneAddresses {
		return "Top addresses"
	}
	return "Burst offenders"
}

// Model represents the TUI state
type Model struct {
	report      *domain.Report
	offenders   table.Model
	addresses   table.Model
	textinput   textinput.Model
	active      Pane
	width       int
	height      int
	ready       bool
	searching   bool
	searchQuery string
}

// New creates a browser over a finished report
func New(r *domain.Report) Model {
	ti := textinput.New()
	ti.Placeholder = "Filter by address..."
	ti.CharLimit = 45
	ti.Width = 40

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(lipgloss.Color("39"))
	styles.Selected = output.Styles.Selected

	offenders := table.New(
		table.WithColumns([]table.Column{
			{Title: "Address", Width: 18},
			{Title: "First seen", Width: 19},
			{Title: "Last seen", Width: 19},
			{Title: "Span", Width: 8},
			{Title: "Count", Width: 6},
		}),
		table.WithFocused(true),
		table.WithStyles(styles),
	)
	addresses := table.New(
		table.WithColumns([]table.Column{
			{Title: "Address", Width: 18},
			{Title: "Failures", Width: 9},
		}),
		table.WithStyles(styles),
	)

	m := Model{
		report:    r,
		offenders: offenders,
		addresses: addresses,
		textinput: ti,
	}
	m.updateFilter()
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Active returns the focused pane
func (m Model) Active() Pane {
	return m.active
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			switch msg.String() {
			case "esc":
				m.searching = false
				m.textinput.Blur()
				m.searchQuery = ""
				m.textinput.SetValue("")
				m.updateFilter()
			case "enter":
				m.searching = false
				m.textinput.Blur()
				m.searchQuery = m.textinput.Value()
				m.updateFilter()
			default:
				m.textinput, cmd = m.textinput.Update(msg)
			}
			return m, cmd
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab", "shift+tab":
			m.toggle()
			return m, nil
		case "/":
			m.searching = true
			m.textinput.Focus()
			return m, textinput.Blink
		case "esc":
			if m.searchQuery != "" {
				m.searchQuery = ""
				m.textinput.SetValue("")
				m.updateFilter()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		headerHeight := 3
		footerHeight := 2
		h := m.height - headerHeight - footerHeight
		if h < 3 {
			h = 3
		}
		m.offenders.SetHeight(h)
		m.addresses.SetHeight(h)
		m.offenders.SetWidth(m.width)
		m.addresses.SetWidth(m.width)
		return m, nil
	}

	if m.active == PaneAddresses {
		m.addresses, cmd = m.addresses.Update(msg)
	} else {
		m.offenders, cmd = m.offenders.Update(msg)
	}
	return m, cmd
}

func (m *Model) toggle() {
	if m.active == PaneOffenders {
		m.active = PaneAddresses
		m.offenders.Blur()
		m.addresses.Focus()
		return
	}
	m.active = PaneOffenders
	m.addresses.Blur()
	m.offenders.Focus()
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	body := m.offenders.View()
	if m.active == PaneAddresses {
		body = m.addresses.View()
	}

	return fmt.Sprintf("%s\n%s\n%s", m.renderHeader(), body, m.renderFooter())
}

func (m *Model) renderHeader() string {
	titleStyle := output.Styles.Title.
		Background(lipgloss.Color("236")).
		Width(m.width)

	title := fmt.Sprintf("authscan: %s [%s]", strings.Join(m.report.Sources, ", "), m.active)

	c := m.report.Counters
	info := fmt.Sprintf("Lines: %d | FAILED LOGINs: %d | WARN: %d | ERROR: %d | window %ds, threshold %d",
		c.TotalLines, c.FailedLogins, c.WarnCount, c.ErrorCount,
		m.report.Config.WindowSeconds, m.report.Config.Threshold)
	if m.searchQuery != "" {
		info += fmt.Sprintf(" | Filter: %q", m.searchQuery)
	}

	status := output.StatusText(m.report.HasOffenders())
	return titleStyle.Render(title) + "\n" + output.Styles.Label.Render(info) + " " + status
}

func (m *Model) renderFooter() string {
	if m.searching {
		return m.textinput.View()
	}

	help := "q:quit tab:switch pane /:filter esc:clear filter j/k:scroll"
	return output.Styles.Help.Width(m.width).Render(help)
}

// updateFilter rebuilds both tables from the report and the current filter
func (m *Model) updateFilter() {
	query := strings.ToLower(m.searchQuery)

	var offenderRows []table.Row
	for _, o := range m.report.Offenders {
		if !strings.Contains(strings.ToLower(o.Key), query) {
			continue
		}
		offenderRows = append(offenderRows, table.Row{
			o.Key,
			domain.FormatTimestamp(o.WindowStart),
			domain.FormatTimestamp(o.WindowEnd),
			o.Span().String(),
			strconv.Itoa(o.Count),
		})
	}

	var addressRows []table.Row
	for _, kt := range m.report.TopAddresses {
		if !strings.Contains(strings.ToLower(kt.Key), query) {
			continue
		}
		addressRows = append(addressRows, table.Row{kt.Key, strconv.Itoa(kt.Count)})
	}

	m.offenders.SetRows(offenderRows)
	m.addresses.SetRows(addressRows)
	m.offenders.GotoTop()
	m.addresses.GotoTop()
}

// VisibleRows returns the rows of the focused pane after filtering
func (m Model) VisibleRows() []table.Row {
	if m.active == PaneAddresses {
		return m.addresses.Rows()
	}
	return m.offenders.Rows()
}
