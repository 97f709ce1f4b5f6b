package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Filter names cycled by the header.
const (
	FilterAll      = "ALL"
	FilterRunning  = "RUNNING"
	FilterFinished = "FINISHED"
)

var filters = []string{FilterAll, FilterRunning, FilterFinished}

// Header represents the top status bar: watched endpoint, build counts,
// active filter and the last refresh time.
type Header struct {
	endpoint       string
	selectedFilter string
	running        int
	finished       int
	lastRefresh    time.Time
	styles         *StyleConfig
}

// NewHeader creates a new header with default styles
func NewHeader(endpoint string) Header {
	return Header{
		endpoint:       endpoint,
		selectedFilter: FilterAll,
		styles:         DefaultStyles(),
	}
}

// SetCounts updates the running/finished build counts.
func (h *Header) SetCounts(running, finished int) {
	h.running = running
	h.finished = finished
}

// SetLastRefresh records the time of the latest poll.
func (h *Header) SetLastRefresh(t time.Time) {
	h.lastRefresh = t
}

// GetFilter returns the current filter
func (h Header) GetFilter() string {
	return h.selectedFilter
}

// CycleFilter cycles to the next filter
func (h *Header) CycleFilter() {
	currentIndex := 0
	for i, f := range filters {
		if f == h.selectedFilter {
			currentIndex = i
			break
		}
	}
	h.selectedFilter = filters[(currentIndex+1)%len(filters)]
}

// Render returns the header line.
func (h Header) Render(width int) string {
	title := h.styles.TitleStyle().Render("buildwatch")
	endpoint := lipgloss.NewStyle().Foreground(h.styles.TextSecondary).Render(h.endpoint)

	counts := fmt.Sprintf("%d running · %d finished", h.running, h.finished)
	if !h.lastRefresh.IsZero() {
		counts += " · refreshed " + h.lastRefresh.Format("15:04:05")
	}
	right := lipgloss.NewStyle().Foreground(h.styles.TextSecondary).
		Render(fmt.Sprintf("[%s] %s", h.selectedFilter, counts))

	line := lipgloss.JoinHorizontal(lipgloss.Top, title, " ", endpoint, "  ", right)
	// ANSI-aware truncation; the line carries style escape sequences.
	return ansi.Truncate(line, width, "")
}
