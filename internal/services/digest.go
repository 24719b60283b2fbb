package services

import (
	"strings"
	"time"

	"task-board/internal/domain"
)

// NoActivityMessage is the daily report when nothing was worked on.
const NoActivityMessage = "No tasks were worked on yesterday."

// DigestWindow returns the previous calendar day relative to ref, in ref's
// location: from 00:00:00.000 to 23:59:59.999, both inclusive.
func DigestWindow(ref time.Time) (start, end time.Time) {
	y, m, d := ref.Date()
	loc := ref.Location()
	start = time.Date(y, m, d-1, 0, 0, 0, 0, loc)
	end = time.Date(y, m, d-1, 23, 59, 59, int(999*time.Millisecond), loc)
	return start, end
}

// GroupDigest collects the distinct titles of tasks that were in progress or
// done during the window, grouped by problem. Problems and titles keep the
// order in which they were first seen. Event timestamps are read as wall
// clock times in ref's location.
func GroupDigest(log []domain.MovementEvent, ref time.Time) []domain.DigestGroup {
	start, end := DigestWindow(ref)

	var groups []domain.DigestGroup
	groupIndex := make(map[string]int)
	seenTitle := make(map[string]map[string]bool)

	for _, e := range log {
		if !e.ColumnValue().IsActivity() {
			continue
		}
		at, err := e.Time(ref.Location())
		if err != nil || at.Before(start) || at.After(end) {
			continue
		}

		i, ok := groupIndex[e.Problem]
		if !ok {
			i = len(groups)
			groupIndex[e.Problem] = i
			groups = append(groups, domain.DigestGroup{Problem: e.Problem})
			seenTitle[e.Problem] = make(map[string]bool)
		}
		if seenTitle[e.Problem][e.Content] {
			continue
		}
		seenTitle[e.Problem][e.Content] = true
		groups[i].Titles = append(groups[i].Titles, e.Content)
	}

	return groups
}

// RenderDigest renders groups as the daily report text.
func RenderDigest(groups []domain.DigestGroup) string {
	if len(groups) == 0 {
		return NoActivityMessage
	}

	var b strings.Builder
	for _, g := range groups {
		b.WriteString("- " + g.Problem + "\n")
		for _, title := range g.Titles {
			b.WriteString("\t- " + title + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// BuildDigest returns the report of yesterday's activity relative to ref.
func BuildDigest(log []domain.MovementEvent, ref time.Time) string {
	return RenderDigest(GroupDigest(log, ref))
}
