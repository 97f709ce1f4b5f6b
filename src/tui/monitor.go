// Package tui implements the interactive build monitor: a bubbletea program
// that polls the adapter's build streams and renders the normalized records
// as a live table.
package tui

import (
	"context"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"buildwatch/src/adapter"
	"buildwatch/src/provider"
	"buildwatch/src/status"
)

// defaultPollInterval is how often the monitor re-queries the adapter.
const defaultPollInterval = 10 * time.Second

// BuildSource is the slice of the adapter the monitor consumes. Satisfied by
// *adapter.Adapter; fakes satisfy it in tests and demos.
type BuildSource interface {
	FinishedBuildsSince(ctx context.Context, since *time.Time) <-chan adapter.Event
	RunningBuilds(ctx context.Context) <-chan adapter.Event
}

// pollMsg triggers the next poll cycle.
type pollMsg struct{}

// buildsMsg carries one poll's results back into the update loop.
type buildsMsg struct {
	builds []provider.BuildInfo
	err    error
	at     time.Time
}

// Monitor is the top-level bubbletea model.
type Monitor struct {
	source   BuildSource
	interval time.Duration
	header   Header
	view     View
	styles   *StyleConfig

	builds    map[string]provider.BuildInfo // by build id
	lastPoll  time.Time
	streamErr error
	width     int
	height    int
	quitting  bool
}

// NewMonitor creates a monitor for an initialized adapter. endpoint is shown
// in the header.
func NewMonitor(source BuildSource, endpoint string) Monitor {
	return Monitor{
		source:   source,
		interval: defaultPollInterval,
		header:   NewHeader(endpoint),
		view:     NewView(),
		styles:   DefaultStyles(),
		builds:   make(map[string]provider.BuildInfo),
	}
}

// Start runs the monitor as a full-screen program until the user quits.
func Start(source BuildSource, endpoint string) error {
	_, err := tea.NewProgram(NewMonitor(source, endpoint), tea.WithAltScreen()).Run()
	return err
}

// Init schedules the first poll.
func (m Monitor) Init() tea.Cmd {
	return func() tea.Msg { return pollMsg{} }
}

// poll drains both streams and returns the merged results.
func (m Monitor) poll() tea.Cmd {
	source := m.source
	since := m.lastPoll
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		msg := buildsMsg{at: time.Now()}

		var lower *time.Time
		if !since.IsZero() {
			lower = &since
		}
		for _, ch := range []<-chan adapter.Event{
			source.RunningBuilds(ctx),
			source.FinishedBuildsSince(ctx, lower),
		} {
			for ev := range ch {
				if ev.Err != nil {
					msg.err = ev.Err
					continue
				}
				msg.builds = append(msg.builds, ev.Build)
			}
		}
		return msg
	}
}

// Update handles messages.
func (m Monitor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.view.SetSize(msg.Width-2, msg.Height-4)
		return m, nil

	case pollMsg:
		return m, m.poll()

	case buildsMsg:
		m.lastPoll = msg.at
		m.streamErr = msg.err
		for _, b := range msg.builds {
			m.builds[b.ID] = b
		}
		m.header.SetLastRefresh(msg.at)
		m.refreshList()
		return m, tea.Tick(m.interval, func(time.Time) tea.Msg { return pollMsg{} })

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "f":
			m.header.CycleFilter()
			m.refreshList()
			return m, nil
		case "r":
			return m, m.poll()
		}
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

// refreshList rebuilds the visible items from the build map, applying the
// header filter and ordering by start time descending.
func (m *Monitor) refreshList() {
	running := 0
	items := make([]Item, 0, len(m.builds))
	for _, b := range m.builds {
		if b.Status == status.InProgress {
			running++
		}
		if !m.visible(b) {
			continue
		}
		items = append(items, Item{Build: b})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Build.Start.After(items[j].Build.Start)
	})

	m.header.SetCounts(running, len(m.builds)-running)
	m.view.SetItems(items)
}

func (m *Monitor) visible(b provider.BuildInfo) bool {
	switch m.header.GetFilter() {
	case FilterRunning:
		return b.Status == status.InProgress
	case FilterFinished:
		return b.Status != status.InProgress
	default:
		return true
	}
}

// View renders the monitor.
func (m Monitor) View() string {
	if m.quitting {
		return ""
	}

	header := m.header.Render(m.width)
	body := m.view.Render()

	footer := m.styles.HelpStyle().Render("q quit · f filter · r refresh")
	if m.streamErr != nil {
		errStyle := lipgloss.NewStyle().Foreground(m.styles.StatusColor(status.Failure))
		footer = errStyle.Render("stream error: " + CleanText(m.streamErr.Error()))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
