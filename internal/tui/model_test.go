package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vburojevic/authscan/internal/domain"
)

func testReport() *domain.Report {
	r := domain.NewReport(domain.DetectionConfig{WindowSeconds: 60, Threshold: 3})
	r.Sources = []string{"auth.log"}
	r.Counters = domain.Counters{TotalLines: 12, FailedLogins: 5}
	r.TopAddresses = []domain.KeyTotal{{Key: "10.0.0.1", Count: 3}, {Key: "192.168.1.9", Count: 2}}
	r.Offenders = []domain.Offender{
		{Key: "10.0.0.1", WindowStart: 1700000000, WindowEnd: 1700000020, Count: 3},
	}
	return r
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm
}

func TestModel_ViewBeforeResize(t *testing.T) {
	m := New(testReport())
	assert.Equal(t, "Initializing...", m.View())
}

func TestModel_RendersOffenders(t *testing.T) {
	m := update(t, New(testReport()), tea.WindowSizeMsg{Width: 120, Height: 30})

	view := m.View()
	assert.Contains(t, view, "authscan: auth.log")
	assert.Contains(t, view, "FAILED LOGINs: 5")
	assert.Contains(t, view, "10.0.0.1")
	assert.Equal(t, PaneOffenders, m.Active())
	require.Len(t, m.VisibleRows(), 1)
	assert.Equal(t, "3", m.VisibleRows()[0][4])
}

func TestModel_TabSwitchesPane(t *testing.T) {
	m := update(t, New(testReport()), tea.WindowSizeMsg{Width: 120, Height: 30})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, PaneAddresses, m.Active())
	assert.Len(t, m.VisibleRows(), 2)
	assert.Contains(t, m.View(), "192.168.1.9")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, PaneOffenders, m.Active())
}

func TestModel_Filter(t *testing.T) {
	m := update(t, New(testReport()), tea.WindowSizeMsg{Width: 120, Height: 30})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})

	m = update(t, m, keyRunes("/"))
	for _, r := range "192." {
		m = update(t, m, keyRunes(string(r)))
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	rows := m.VisibleRows()
	require.Len(t, rows, 1)
	assert.Equal(t, "192.168.1.9", rows[0][0])

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Len(t, m.VisibleRows(), 2)
}

func TestModel_Quit(t *testing.T) {
	m := New(testReport())
	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
