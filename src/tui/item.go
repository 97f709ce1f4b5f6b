package tui

import "buildwatch/src/provider"

// Item represents a build displayed in the monitor list.
// It wraps the normalized BuildInfo and implements bubbles/list.Item.
type Item struct {
	Build provider.BuildInfo
}

// FilterValue is the value used for fuzzy filtering.
func (i Item) FilterValue() string { return i.Build.ID }

// Title returns the primary text for the item (required by list.Item).
func (i Item) Title() string { return i.Build.Description }

// Description returns the secondary text for the item (required by list.Item).
func (i Item) Description() string { return i.Build.URL }

// Revision returns the first associated revision, or empty.
func (i Item) Revision() string {
	if len(i.Build.Commits) == 0 {
		return ""
	}
	return i.Build.Commits[0]
}
