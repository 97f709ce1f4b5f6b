package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	// listRenderingOverhead accounts for padding added by bubbles/list and
	// panel borders: panel border (2) + list internal padding/margins (8).
	listRenderingOverhead = 10

	// statusColWidth fits the longest status name ("in progress").
	statusColWidth = 11

	// revisionColWidth shows an abbreviated revision.
	revisionColWidth = 8
)

// Delegate renders builds as table rows: status, build number, description,
// revision.
type Delegate struct {
	IDWidth int
	styles  *StyleConfig
}

// NewDelegate creates a new build table delegate with default styles
func NewDelegate() Delegate {
	return Delegate{
		IDWidth: 4, // default minimum
		styles:  DefaultStyles(),
	}
}

// NewDelegateWithStyles creates a new delegate with custom styles
func NewDelegateWithStyles(styles *StyleConfig) Delegate {
	return Delegate{
		IDWidth: 4,
		styles:  styles,
	}
}

// SetColumnWidths sizes the build number column to the widest id.
func (d *Delegate) SetColumnWidths(maxIDLen int) {
	d.IDWidth = maxIDLen
	if d.IDWidth < 4 {
		d.IDWidth = 4
	}
}

// Height returns the height of a list item
func (d Delegate) Height() int {
	return 1
}

// Spacing returns spacing between items
func (d Delegate) Spacing() int {
	return 0
}

// Update handles item updates
func (d Delegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

// Render renders a list item
func (d Delegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entry, ok := item.(Item)
	if !ok {
		return
	}

	isSelected := index == m.Index()

	statusCol := TruncateAndPad(entry.Build.Status.String(), statusColWidth, false)
	idCol := TruncateAndPad("#"+CleanText(entry.Build.ID), d.IDWidth+1, false)
	revCol := TruncateAndPad(CleanText(entry.Revision()), revisionColWidth, false)

	// Fixed columns plus separators
	fixedWidth := statusColWidth + d.IDWidth + 1 + revisionColWidth + 9
	availableWidth := m.Width() - fixedWidth - listRenderingOverhead

	var descCol string
	if availableWidth > 0 {
		descCol = TruncateAndPad(CleanText(entry.Build.Description), availableWidth, true)
	}

	line := fmt.Sprintf("%s │ %s │ %s │ %s", statusCol, idCol, revCol, descCol)

	style := lipgloss.NewStyle().Foreground(d.styles.StatusColor(entry.Build.Status))
	if isSelected {
		style = style.Bold(true).Background(d.styles.SelectedColor)
	}

	fmt.Fprint(w, style.Render(line))
}
