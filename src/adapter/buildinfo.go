package adapter

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"buildwatch/src/provider"
	"buildwatch/src/status"
)

// startSentinelOffset is applied when the server omitted the start timestamp.
// The sentinel sorts unset-start builds after every real build in
// start-ordered views; it is never a real timestamp.
const startSentinelOffset = time.Hour

// Revisions are either git commit SHAs or TFVC changesets ("C123").
var revisionPattern = regexp.MustCompile(`^(?:[0-9a-fA-F]{6,40}|C[0-9]+)$`)

// buildInfo assembles the normalized record for one raw build. A source
// version that parses as neither a commit SHA nor a changeset fails this one
// build with ErrMalformedRevision; the caller drops the item and keeps the
// stream alive.
func buildInfo(raw provider.RawBuild, now time.Time) (provider.BuildInfo, error) {
	revision, err := parseRevision(raw.SourceVersion)
	if err != nil {
		return provider.BuildInfo{}, err
	}

	st := status.MapResult(raw.Result)
	if raw.InProgress() {
		st = status.InProgress
	}

	start := now.Add(startSentinelOffset)
	if raw.StartTime != nil {
		start = *raw.StartTime
	}

	duration := status.FormatDuration(raw.Status, raw.StartTime, raw.FinishTime, now)

	return provider.BuildInfo{
		ID:           raw.BuildNumber,
		Start:        start,
		Status:       st,
		Description:  description(duration, raw.BuildNumber),
		Tooltip:      tooltip(raw, duration),
		Commits:      []string{revision},
		URL:          raw.WebURL,
		ShowInReport: false,
	}, nil
}

func parseRevision(sourceVersion string) (string, error) {
	v := strings.TrimSpace(sourceVersion)
	if !revisionPattern.MatchString(v) {
		return "", fmt.Errorf("%w: %q", provider.ErrMalformedRevision, sourceVersion)
	}
	return v, nil
}

func description(duration, buildNumber string) string {
	if duration == "" {
		return "#" + buildNumber
	}
	return duration + " #" + buildNumber
}

// tooltip renders the title-cased status word, the duration, and the build
// number, each on its own line. Empty parts are omitted.
func tooltip(raw provider.RawBuild, duration string) string {
	word := raw.Result
	if raw.InProgress() || word == "" {
		word = raw.Status
	}

	lines := make([]string, 0, 3)
	if titled := titleWords(word); titled != "" {
		lines = append(lines, titled)
	}
	if duration != "" {
		lines = append(lines, duration)
	}
	lines = append(lines, "#"+raw.BuildNumber)
	return strings.Join(lines, "\n")
}

// titleWords splits a camelCase status word and title-cases each part:
// "partiallySucceeded" becomes "Partially Succeeded".
func titleWords(word string) string {
	if word == "" {
		return ""
	}

	var b strings.Builder
	for i, r := range word {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
