// Package panel — терминальная панель счётчика поверх снимков ledger.
package panel

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Spok95/smartcounter/internal/domain/meter"
	"github.com/Spok95/smartcounter/internal/i18n"
)

const DefaultRefresh = 200 * time.Millisecond

type Snapshotter interface {
	Snapshot() meter.View
}

type tickMsg time.Time

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	cellStyle  = lipgloss.NewStyle().Width(26).PaddingLeft(2)
	totalStyle = lipgloss.NewStyle().Bold(true).MarginTop(1).PaddingLeft(2)
	rfidStyle  = lipgloss.NewStyle().PaddingLeft(2)
	cardStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type Model struct {
	src     Snapshotter
	refresh time.Duration
	lang    i18n.Language
	view    meter.View
	updated time.Time
	tz      *time.Location
}

func New(src Snapshotter, refresh time.Duration, lang i18n.Language, tz *time.Location) Model {
	if refresh <= 0 {
		refresh = DefaultRefresh
	}
	if tz == nil {
		tz = time.UTC
	}
	return Model{src: src, refresh: refresh, lang: lang, tz: tz, view: src.Snapshot()}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("smartcounter"), m.tick())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
		return m, nil

	case tickMsg:
		m.view = m.src.Snapshot()
		m.updated = time.Time(msg)
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	t := func(key string) string { return i18n.T(m.lang, key) }

	var rows []string
	for _, res := range meter.Resources {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			cellStyle.Render(fmt.Sprintf("%s: %d", t(string(res)), m.view.Raw.Get(res))),
			cellStyle.Render(fmt.Sprintf("%s: %.2f ₼", t(string(res)), m.view.Cost.Get(res))),
		))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Smart Counter"))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(rows, "\n"))
	b.WriteString("\n")
	b.WriteString(totalStyle.Render(fmt.Sprintf("TOTAL: %.2f ₼", m.view.Total)))
	b.WriteString("\n")
	b.WriteString(rfidStyle.Render(t("rfid") + ": " + m.rfid()))
	b.WriteString("\n\n")
	footer := "q — quit"
	if !m.updated.IsZero() {
		footer = m.updated.In(m.tz).Format("15:04:05") + "  " + footer
	}
	b.WriteString(mutedStyle.Render("  " + footer))
	b.WriteString("\n")
	return b.String()
}

func (m Model) rfid() string {
	if !m.view.CardPresent() {
		return mutedStyle.Render(i18n.T(m.lang, "rfid_none"))
	}
	return cardStyle.Render(m.view.LastCardID)
}

// Run держит панель на переднем плане до выхода пользователя или отмены ctx.
func Run(ctx context.Context, m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
