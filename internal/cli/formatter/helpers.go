package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/sitemap/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// HumanDate returns a human-friendly absolute date string.
func HumanDate(t time.Time) string {
	return HumanDateFrom(t, time.Now())
}

// HumanDateFrom is HumanDate relative to now.
func HumanDateFrom(t, now time.Time) string {
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()

	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	yesterday := now.AddDate(0, 0, -1)
	y3, m3, d3 := yesterday.Date()
	if y2 == y3 && m2 == m3 && d2 == d3 {
		return "Yesterday"
	}
	return t.Format("Jan 2, 2006")
}

// HumanTimestamp returns a human-friendly relative timestamp string.
func HumanTimestamp(t time.Time) string {
	return HumanTimestampFrom(t, time.Now())
}

// HumanTimestampFrom is HumanTimestamp relative to now.
func HumanTimestampFrom(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < 0:
		return HumanDateFrom(t, now)
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return HumanDateFrom(t, now)
	}
}

// StatusPill returns a colored status indicator for project status.
func StatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectActive:
		return StyleGreen.Render("● Active")
	case domain.ProjectDone:
		return StyleDim.Render("✔ Done")
	case domain.ProjectArchived:
		return StyleDim.Render("✖ Archived")
	default:
		return StyleDim.Render(string(status))
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}
